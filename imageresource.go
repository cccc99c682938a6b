package vktut

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// ImageResource is an image sub-allocated from an ImageResourcePool, or one
// carrying its own dedicated pool.
type ImageResource struct {
	Image
	ResourcePool    *ImageResourcePool
	Allocation      *Allocation
	StagingResource *BufferResource

	// IndividualPool marks resources that own their pool outright and
	// destroy it when freed.
	IndividualPool bool
}

// NewImageResourceWithOptions creates an image resource with its own
// dedicated memory allocation rather than carving one out of a shared pool.
func (r *ResourceManager) NewImageResourceWithOptions(extent vk.Extent2D, format vk.Format, tiling vk.ImageTiling, usage vk.ImageUsageFlagBits, sharing vk.SharingMode, mprops vk.MemoryPropertyFlagBits) (*ImageResource, error) {
	img, err := r.Device.CreateImageWithOptions(extent, format, tiling, usage)
	if err != nil {
		return nil, err
	}

	mr := img.VKMemoryRequirements()
	mr.Deref()

	memory, err := r.Device.Allocate(int(mr.Size), mr.MemoryTypeBits, vk.MemoryPropertyFlags(mprops))
	if err != nil {
		img.Destroy()
		return nil, err
	}

	err = vk.Error(vk.BindImageMemory(r.Device.VKDevice, img.VKImage, memory.VKDeviceMemory, 0))
	if err != nil {
		memory.Destroy()
		img.Destroy()
		return nil, fmt.Errorf("binding image memory: %w", err)
	}

	pool := &ImageResourcePool{
		Device:           r.Device,
		ResourceManager:  r,
		Usage:            usage,
		MemoryProperties: mprops,
		Sharing:          sharing,
		Memory:           memory,
		NeedsStaging:     mprops&vk.MemoryPropertyDeviceLocalBit != 0,
	}

	return &ImageResource{
		Image:          *img,
		ResourcePool:   pool,
		IndividualPool: true,
	}, nil
}

// RequiresStaging reports whether this image lives in device-local memory
// and must be populated through a staging resource.
func (r *ImageResource) RequiresStaging() bool {
	return r.ResourcePool.NeedsStaging
}

// AllocateStagingResource allocates a transfer-source buffer of matching
// size from the staging pool. The caller must free it once the copy has
// completed.
func (r *ImageResource) AllocateStagingResource() error {
	if !r.ResourcePool.NeedsStaging {
		return fmt.Errorf("image does not require staging")
	}

	stagingPool := r.ResourcePool.ResourceManager.GetStagingPool()
	if stagingPool == nil {
		return fmt.Errorf("no %q pool exists; create one before staging resources", StagingPoolName)
	}

	var err error
	r.StagingResource, err = stagingPool.AllocateBuffer(r.Image.Size, vk.BufferUsageTransferSrcBit)
	return err
}

// FreeStagingResource frees the staging resource, if any.
func (r *ImageResource) FreeStagingResource() {
	if r.StagingResource != nil {
		r.StagingResource.Free()
		r.StagingResource = nil
	}
}

func (r *ImageResource) String() string {
	return fmt.Sprintf("{ Extent: %dx%d Size: %d }", r.Extent.Width, r.Extent.Height, r.Size)
}

func (r *ImageResource) Destroy() {
	r.Free()
}

// Free releases this resource, its reservation or dedicated pool, and any
// staging resource.
func (r *ImageResource) Free() {
	if r.StagingResource != nil {
		r.StagingResource.Free()
		r.StagingResource = nil
	}
	if r.IndividualPool && r.ResourcePool != nil {
		pool := r.ResourcePool
		r.ResourcePool = nil
		r.Image.Destroy()
		pool.Memory.Destroy()
		pool.Memory = nil
		return
	}
	if r.Allocation != nil {
		r.ResourcePool.Allocator.Free(r.Allocation)
		r.Allocation = nil
	}
	r.Image.Destroy()
}

// StageImageResource records a copy from the image's staging buffer into the
// image. The image must already be in the transfer-destination layout.
func (cb *CommandBuffer) StageImageResource(img *ImageResource) error {
	if img.StagingResource == nil {
		return fmt.Errorf("no staging resource has been allocated")
	}
	vk.CmdCopyBufferToImage(cb.VK(), img.StagingResource.VKBuffer, img.VKImage, vk.ImageLayoutTransferDstOptimal, 1, []vk.BufferImageCopy{{
		BufferOffset:      0,
		BufferRowLength:   0,
		BufferImageHeight: 0,
		ImageSubresource: vk.ImageSubresourceLayers{
			AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
			MipLevel:       0,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
		ImageOffset: vk.Offset3D{},
		ImageExtent: vk.Extent3D{
			Width:  img.Extent.Width,
			Height: img.Extent.Height,
			Depth:  1,
		},
	}})
	return nil
}

// TransitionImageLayout records a pipeline barrier moving the image between
// layouts. Only the undefined-to-transfer and transfer-to-shader-read
// transitions used by texture uploads are supported.
func (cb *CommandBuffer) TransitionImageLayout(img *ImageResource, format vk.Format, oldLayout, newLayout vk.ImageLayout) error {
	barrier := vk.ImageMemoryBarrier{
		SType:               vk.StructureTypeImageMemoryBarrier,
		OldLayout:           oldLayout,
		NewLayout:           newLayout,
		SrcQueueFamilyIndex: vk.QueueFamilyIgnored,
		DstQueueFamilyIndex: vk.QueueFamilyIgnored,
		Image:               img.VKImage,
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask:     vk.ImageAspectFlags(vk.ImageAspectColorBit),
			BaseMipLevel:   0,
			LevelCount:     1,
			BaseArrayLayer: 0,
			LayerCount:     1,
		},
	}

	var sourceStage, destStage vk.PipelineStageFlags

	switch {
	case oldLayout == vk.ImageLayoutUndefined && newLayout == vk.ImageLayoutTransferDstOptimal:
		barrier.SrcAccessMask = 0
		barrier.DstAccessMask = vk.AccessFlags(vk.AccessTransferWriteBit)

		sourceStage = vk.PipelineStageFlags(vk.PipelineStageTopOfPipeBit)
		destStage = vk.PipelineStageFlags(vk.PipelineStageTransferBit)

	case oldLayout == vk.ImageLayoutTransferDstOptimal && newLayout == vk.ImageLayoutShaderReadOnlyOptimal:
		barrier.SrcAccessMask = vk.AccessFlags(vk.AccessTransferWriteBit)
		barrier.DstAccessMask = vk.AccessFlags(vk.AccessShaderReadBit)

		sourceStage = vk.PipelineStageFlags(vk.PipelineStageTransferBit)
		destStage = vk.PipelineStageFlags(vk.PipelineStageFragmentShaderBit)

	default:
		return fmt.Errorf("unsupported layout transition %d to %d", oldLayout, newLayout)
	}

	vk.CmdPipelineBarrier(cb.VK(), sourceStage, destStage, 0, 0, nil, 0, nil, 1, []vk.ImageMemoryBarrier{barrier})
	return nil
}
