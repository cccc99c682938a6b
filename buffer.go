package vktut

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// Buffer describes a hunk of data that can be bound to memory and consumed
// by the pipeline: vertex data, index data, uniforms or staging scratch.
type Buffer struct {
	Device   *Device
	VKBuffer vk.Buffer
	Size     uint64
	Usage    vk.BufferUsageFlagBits
}

func (d *Device) CreateBufferWithOptions(sizeInBytes uint64, usage vk.BufferUsageFlags, sharing vk.SharingMode) (*Buffer, error) {
	bufferCreateInfo := vk.BufferCreateInfo{
		SType:       vk.StructureTypeBufferCreateInfo,
		Size:        vk.DeviceSize(sizeInBytes),
		Usage:       usage,
		SharingMode: sharing,
	}

	var buffer vk.Buffer
	err := vk.Error(vk.CreateBuffer(d.VKDevice, &bufferCreateInfo, nil, &buffer))
	if err != nil {
		return nil, fmt.Errorf("creating buffer of %d bytes: %w", sizeInBytes, err)
	}

	return &Buffer{
		VKBuffer: buffer,
		Device:   d,
		Size:     sizeInBytes,
		Usage:    vk.BufferUsageFlagBits(usage),
	}, nil
}

func (b *Buffer) VKMemoryRequirements() vk.MemoryRequirements {
	var memoryRequirements vk.MemoryRequirements
	vk.GetBufferMemoryRequirements(b.Device.VKDevice, b.VKBuffer, &memoryRequirements)
	return memoryRequirements
}

// DSInfo returns the descriptor buffer info for binding this buffer into a
// descriptor set.
func (b *Buffer) DSInfo(offset int) vk.DescriptorBufferInfo {
	return vk.DescriptorBufferInfo{
		Buffer: b.VKBuffer,
		Offset: vk.DeviceSize(offset),
		Range:  vk.DeviceSize(b.Size),
	}
}

func (b *Buffer) AllocationRequirements() *AllocationRequirements {
	memoryRequirements := b.VKMemoryRequirements()
	mr := &memoryRequirements
	mr.Deref()

	return &AllocationRequirements{
		Size:           int(mr.Size),
		MemoryTypeBits: mr.MemoryTypeBits,
	}
}

func (b *Buffer) Bind(memory *DeviceMemory, offset uint64) error {
	return vk.Error(vk.BindBufferMemory(b.Device.VKDevice, b.VKBuffer, memory.VKDeviceMemory, vk.DeviceSize(offset)))
}

func (b *Buffer) String() string {
	return fmt.Sprintf("{ Size: %d Usage: %s }", b.Size, bufferUsageToString(b.Usage))
}

func (b *Buffer) Destroy() {
	vk.DestroyBuffer(b.Device.VKDevice, b.VKBuffer, nil)
}

func bufferUsageToString(usage vk.BufferUsageFlagBits) string {
	s := ""
	if usage&vk.BufferUsageVertexBufferBit != 0 {
		s += "vertex|"
	}
	if usage&vk.BufferUsageIndexBufferBit != 0 {
		s += "index|"
	}
	if usage&vk.BufferUsageUniformBufferBit != 0 {
		s += "uniform|"
	}
	if usage&vk.BufferUsageStorageBufferBit != 0 {
		s += "storage|"
	}
	if usage&vk.BufferUsageTransferSrcBit != 0 {
		s += "transfer-src|"
	}
	if usage&vk.BufferUsageTransferDstBit != 0 {
		s += "transfer-dst|"
	}
	if len(s) > 0 {
		return s[:len(s)-1]
	}
	return fmt.Sprintf("%x", int32(usage))
}
