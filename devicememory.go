package vktut

import (
	"fmt"
	"sync/atomic"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// DeviceMemory maps to Vulkan DeviceMemory and can live on the host or the
// device depending on the memory type it was allocated from.
type DeviceMemory struct {
	Device         *Device
	VKDeviceMemory vk.DeviceMemory
	Size           uint64
	MapCount       int32
	Ptr            unsafe.Pointer
}

// IsMapped reports whether this memory is currently mapped.
func (d *DeviceMemory) IsMapped() bool {
	return atomic.LoadInt32(&d.MapCount) > 0
}

func (d *DeviceMemory) Destroy() {
	vk.FreeMemory(d.Device.VKDevice, d.VKDeviceMemory, nil)
}

// MapCopyUnmap maps this memory, copies data into it and unmaps.
func (d *DeviceMemory) MapCopyUnmap(data []byte) error {
	pm, err := d.MapWithSize(len(data))
	if err != nil {
		return err
	}

	copy(ToBytes(pm, len(data)), data)

	d.Unmap()
	return nil
}

// Map maps the entirety of this memory and remembers the pointer, so
// sub-allocated resources can slice into it.
func (d *DeviceMemory) Map() (unsafe.Pointer, error) {
	res, err := d.MapWithOffset(d.Size, 0)
	if err != nil {
		return nil, err
	}
	d.Ptr = res
	return res, nil
}

// MapWithSize maps this memory starting at offset 0 with a particular size.
func (d *DeviceMemory) MapWithSize(size int) (unsafe.Pointer, error) {
	return d.MapWithOffset(uint64(size), 0)
}

// MapWithOffset maps size bytes of this memory starting at offset.
func (d *DeviceMemory) MapWithOffset(size uint64, offset uint64) (unsafe.Pointer, error) {
	var res unsafe.Pointer
	err := vk.Error(vk.MapMemory(d.Device.VKDevice, d.VKDeviceMemory, vk.DeviceSize(offset), vk.DeviceSize(size), 0, &res))
	if err != nil {
		return nil, fmt.Errorf("mapping %d bytes of device memory: %w", size, err)
	}
	atomic.AddInt32(&d.MapCount, 1)
	return res, nil
}

// Unmap this memory.
func (d *DeviceMemory) Unmap() {
	d.Ptr = nil
	vk.UnmapMemory(d.Device.VKDevice, d.VKDeviceMemory)
	atomic.AddInt32(&d.MapCount, -1)
}
