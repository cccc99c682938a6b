package vktut

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// Image wraps a Vulkan image. Size and Extent are filled in when the image
// is created so pool allocators and staging code can size copies without
// re-querying the device.
type Image struct {
	Device   *Device
	VKImage  vk.Image
	VKFormat vk.Format
	Extent   vk.Extent2D
	Size     uint64
}

func (i *Image) VKMemoryRequirements() vk.MemoryRequirements {
	var memRequirements vk.MemoryRequirements
	vk.GetImageMemoryRequirements(i.Device.VKDevice, i.VKImage, &memRequirements)
	return memRequirements
}

// CreateImageWithOptions creates a 2D single-mip image. The image is not
// bound to memory.
func (d *Device) CreateImageWithOptions(extent vk.Extent2D, format vk.Format, tiling vk.ImageTiling, usage vk.ImageUsageFlagBits) (*Image, error) {
	imageInfo := vk.ImageCreateInfo{
		SType:     vk.StructureTypeImageCreateInfo,
		ImageType: vk.ImageType2d,
		Extent: vk.Extent3D{
			Width:  extent.Width,
			Height: extent.Height,
			Depth:  1,
		},
		MipLevels:     1,
		ArrayLayers:   1,
		Format:        format,
		Tiling:        tiling,
		InitialLayout: vk.ImageLayoutUndefined,
		Usage:         vk.ImageUsageFlags(usage),
		Samples:       vk.SampleCount1Bit,
		SharingMode:   vk.SharingModeExclusive,
	}

	var image vk.Image
	err := vk.Error(vk.CreateImage(d.VKDevice, &imageInfo, nil, &image))
	if err != nil {
		return nil, fmt.Errorf("creating %dx%d image: %w", extent.Width, extent.Height, err)
	}

	img := &Image{
		Device:   d,
		VKImage:  image,
		VKFormat: format,
		Extent:   extent,
	}

	mr := img.VKMemoryRequirements()
	mr.Deref()
	img.Size = uint64(mr.Size)

	return img, nil
}

func (i *Image) Destroy() {
	vk.DestroyImage(i.Device.VKDevice, i.VKImage, nil)
}

type ImageView struct {
	Device      *Device
	VKImageView vk.ImageView
}

func (i *ImageView) Destroy() {
	vk.DestroyImageView(i.Device.VKDevice, i.VKImageView, nil)
}

func (i *Image) CreateImageViewWithAspectMask(mask vk.ImageAspectFlags) (*ImageView, error) {
	imageViewCreateInfo := &vk.ImageViewCreateInfo{
		SType:    vk.StructureTypeImageViewCreateInfo,
		Image:    i.VKImage,
		ViewType: vk.ImageViewType2d,
		Format:   i.VKFormat,
		Components: vk.ComponentMapping{
			R: vk.ComponentSwizzleR,
			G: vk.ComponentSwizzleG,
			B: vk.ComponentSwizzleB,
			A: vk.ComponentSwizzleA,
		},
		SubresourceRange: vk.ImageSubresourceRange{
			AspectMask: mask,
			LevelCount: 1,
			LayerCount: 1,
		},
	}

	var view vk.ImageView
	err := vk.Error(vk.CreateImageView(i.Device.VKDevice, imageViewCreateInfo, nil, &view))
	if err != nil {
		return nil, fmt.Errorf("creating image view: %w", err)
	}

	return &ImageView{
		Device:      i.Device,
		VKImageView: view,
	}, nil
}

// CreateImageView creates a color-aspect view of this image.
func (i *Image) CreateImageView() (*ImageView, error) {
	return i.CreateImageViewWithAspectMask(vk.ImageAspectFlags(vk.ImageAspectColorBit))
}
