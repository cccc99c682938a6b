package vktut

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// BufferResource is a buffer sub-allocated from a BufferResourcePool:
// vertex data, index data, uniforms or staging scratch. The pool owns the
// memory; the resource owns the buffer handle and its reservation.
type BufferResource struct {
	Buffer
	ResourcePool    *BufferResourcePool
	Allocation      *Allocation
	StagingResource *BufferResource
}

// VKMappedMemoryRange describes this resource's slice of the pool memory,
// for use with device flush operations on non-coherent memory.
func (r *BufferResource) VKMappedMemoryRange() vk.MappedMemoryRange {
	return vk.MappedMemoryRange{
		SType:  vk.StructureTypeMappedMemoryRange,
		Memory: r.ResourcePool.Memory.VKDeviceMemory,
		Offset: vk.DeviceSize(r.Allocation.Offset),
		Size:   vk.DeviceSize(r.Allocation.Size),
	}
}

// RequiresStaging reports whether this resource lives in device-local
// memory and must be populated through a staging resource.
func (r *BufferResource) RequiresStaging() bool {
	return r.ResourcePool.NeedsStaging
}

func (r *BufferResource) String() string {
	return r.Buffer.String()
}

// AllocateStagingResource allocates a transfer-source buffer of matching
// size from the staging pool. The caller must free it once the copy has
// completed.
func (r *BufferResource) AllocateStagingResource() error {
	if !r.ResourcePool.NeedsStaging {
		return fmt.Errorf("resource in pool %q does not require staging", r.ResourcePool.Name)
	}

	stagingPool := r.ResourcePool.ResourceManager.GetStagingPool()
	if stagingPool == nil {
		return fmt.Errorf("no %q pool exists; create one before staging resources", StagingPoolName)
	}

	var err error
	r.StagingResource, err = stagingPool.AllocateBuffer(r.Buffer.Size, vk.BufferUsageTransferSrcBit)
	return err
}

// FreeStagingResource frees the staging resource, if any.
func (r *BufferResource) FreeStagingResource() {
	if r.StagingResource != nil {
		r.StagingResource.Free()
		r.StagingResource = nil
	}
}

// CmdCopyBufferFromStagedResource records a copy from the resource's staging
// buffer into the resource itself.
func (c *CommandBuffer) CmdCopyBufferFromStagedResource(resource *BufferResource) {
	vk.CmdCopyBuffer(c.VK(), resource.StagingResource.Buffer.VKBuffer, resource.Buffer.VKBuffer, 1, []vk.BufferCopy{{
		SrcOffset: 0,
		DstOffset: 0,
		Size:      vk.DeviceSize(resource.Buffer.Size),
	}})
}

// Bytes returns the slice of mapped pool memory backing this resource, or
// nil when the resource is device-local or the pool is not mapped.
func (r *BufferResource) Bytes() []byte {
	if r.RequiresStaging() {
		return nil
	}
	if r.ResourcePool.Memory.Ptr == nil {
		return nil
	}

	data := ToBytes(r.ResourcePool.Memory.Ptr, int(r.Allocation.Offset+r.Allocation.Size))
	return data[r.Allocation.Offset : r.Allocation.Offset+r.Allocation.Size]
}

func (r *BufferResource) Destroy() {
	r.Free()
}

// Free releases this resource, its reservation and any staging resource.
func (r *BufferResource) Free() {
	if r.StagingResource != nil {
		r.StagingResource.Free()
		r.StagingResource = nil
	}
	if r.Allocation != nil {
		r.ResourcePool.Allocator.Free(r.Allocation)
		r.Allocation = nil
	}
	if r.Buffer.VKBuffer != vk.NullBuffer {
		r.Buffer.Destroy()
		r.Buffer.VKBuffer = vk.NullBuffer
	}
}
