package vktut

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

type Device struct {
	PhysicalDevice *PhysicalDevice
	VKDevice       vk.Device
}

func (d *Device) Destroy() {
	vk.DestroyDevice(d.VKDevice, nil)
}

func (d *Device) String() string {
	return fmt.Sprintf("{ PhysicalDevice: %s }", d.PhysicalDevice)
}

// WaitIdle blocks until all outstanding GPU work on this device completes.
func (d *Device) WaitIdle() error {
	return vk.Error(vk.DeviceWaitIdle(d.VKDevice))
}

func (d *Device) GetQueue(qf *QueueFamily) *Queue {
	var vkq vk.Queue
	vk.GetDeviceQueue(d.VKDevice, uint32(qf.Index), 0, &vkq)
	return &Queue{QueueFamily: qf, Device: d, VKQueue: vkq}
}

type AllocationRequirements struct {
	Size           int
	MemoryTypeBits uint32
}

// AllocateForBuffer allocates device memory suitable for b.
func (d *Device) AllocateForBuffer(b *Buffer, memoryProperties vk.MemoryPropertyFlags) (*DeviceMemory, error) {
	ar := b.AllocationRequirements()
	return d.Allocate(ar.Size, ar.MemoryTypeBits, memoryProperties)
}

// Allocate allocates device memory of the requested size from a memory type
// matching memoryTypeBits and memoryProperties.
func (d *Device) Allocate(sizeInBytes int, memoryTypeBits uint32, memoryProperties vk.MemoryPropertyFlags) (*DeviceMemory, error) {
	memoryTypeIndex, err := d.PhysicalDevice.FindMemoryType(memoryTypeBits, vk.MemoryPropertyFlagBits(memoryProperties))
	if err != nil {
		return nil, err
	}

	allocateInfo := vk.MemoryAllocateInfo{
		SType:           vk.StructureTypeMemoryAllocateInfo,
		AllocationSize:  vk.DeviceSize(sizeInBytes),
		MemoryTypeIndex: memoryTypeIndex,
	}

	var deviceMemory vk.DeviceMemory
	err = vk.Error(vk.AllocateMemory(d.VKDevice, &allocateInfo, nil, &deviceMemory))
	if err != nil {
		return nil, fmt.Errorf("allocating %d bytes of device memory: %w", sizeInBytes, err)
	}

	return &DeviceMemory{
		Size:           uint64(sizeInBytes),
		Device:         d,
		VKDeviceMemory: deviceMemory,
	}, nil
}
