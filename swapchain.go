package vktut

import (
	"fmt"

	"github.com/sirupsen/logrus"
	vk "github.com/vulkan-go/vulkan"
)

type Swapchain struct {
	Extent      vk.Extent2D
	Format      vk.Format
	ColorSpace  vk.ColorSpace
	Device      *Device
	VKSwapchain vk.Swapchain
}

func (s *Swapchain) Destroy() {
	vk.DestroySwapchain(s.Device.VKDevice, s.VKSwapchain, nil)
}

// GetImages returns the presentable images owned by this swapchain. The
// images belong to the swapchain and must not be destroyed individually.
func (s *Swapchain) GetImages() ([]*Image, error) {
	var imageCount uint32
	err := vk.Error(vk.GetSwapchainImages(s.Device.VKDevice, s.VKSwapchain, &imageCount, nil))
	if err != nil {
		return nil, fmt.Errorf("querying swapchain images: %w", err)
	}

	swapchainImages := make([]vk.Image, imageCount)
	err = vk.Error(vk.GetSwapchainImages(s.Device.VKDevice, s.VKSwapchain, &imageCount, swapchainImages))
	if err != nil {
		return nil, fmt.Errorf("querying swapchain images: %w", err)
	}

	ret := make([]*Image, imageCount)
	for i := range swapchainImages {
		ret[i] = &Image{
			Device:   s.Device,
			VKImage:  swapchainImages[i],
			VKFormat: s.Format,
		}
	}

	return ret, nil
}

// ChooseSurfaceFormat prefers B8G8R8A8 sRGB and otherwise settles for the
// first format the surface offers.
func ChooseSurfaceFormat(formats []vk.SurfaceFormat) vk.SurfaceFormat {
	for _, f := range formats {
		f.Deref()
		if f.Format == vk.FormatB8g8r8a8Srgb && f.ColorSpace == vk.ColorSpaceSrgbNonlinear {
			return f
		}
	}
	first := formats[0]
	first.Deref()
	return first
}

// ChoosePresentMode prefers mailbox and falls back to FIFO, which every
// conforming implementation must support.
func ChoosePresentMode(modes []vk.PresentMode) vk.PresentMode {
	for _, m := range modes {
		if m == vk.PresentModeMailbox {
			return m
		}
	}
	return vk.PresentModeFifo
}

// ChooseExtent resolves the swapchain extent from the surface capabilities.
// When the surface leaves the extent up to the application (reported as the
// maximum uint32), the actual framebuffer size is clamped to the allowed
// bounds.
func ChooseExtent(caps *vk.SurfaceCapabilities, actual vk.Extent2D) vk.Extent2D {
	caps.CurrentExtent.Deref()
	if caps.CurrentExtent.Width != vk.MaxUint32 {
		return caps.CurrentExtent
	}

	caps.MinImageExtent.Deref()
	caps.MaxImageExtent.Deref()

	return vk.Extent2D{
		Width:  clampUint32(actual.Width, caps.MinImageExtent.Width, caps.MaxImageExtent.Width),
		Height: clampUint32(actual.Height, caps.MinImageExtent.Height, caps.MaxImageExtent.Height),
	}
}

// ChooseImageCount asks for at least three images so the presentation engine
// never starves, bounded by what the surface supports. A max of zero means
// the surface imposes no upper bound.
func ChooseImageCount(caps *vk.SurfaceCapabilities) uint32 {
	count := caps.MinImageCount
	if count < 3 {
		count = 3
	}
	if caps.MaxImageCount > 0 && count > caps.MaxImageCount {
		count = caps.MaxImageCount
	}
	return count
}

func clampUint32(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// DefaultNumSwapchainImages reports the image count a swapchain for this
// surface would be created with.
func (d *Device) DefaultNumSwapchainImages(surface vk.Surface) (int, error) {
	caps, err := d.PhysicalDevice.GetSurfaceCapabilities(surface)
	if err != nil {
		return 0, err
	}
	caps.Deref()
	return int(ChooseImageCount(caps)), nil
}

type CreateSwapchainOptions struct {
	OldSwapchain *Swapchain
	// ActualSize is the framebuffer size to use when the surface does not
	// dictate an extent of its own.
	ActualSize                vk.Extent2D
	DesiredNumSwapchainImages int
}

// CreateSwapchain creates a swapchain for the surface, selecting format,
// present mode, extent and image count from what the surface supports.
func (d *Device) CreateSwapchain(surface vk.Surface, graphicsQueue, presentQueue *Queue, options *CreateSwapchainOptions) (*Swapchain, error) {

	modes, err := d.PhysicalDevice.GetSurfacePresentModes(surface)
	if err != nil {
		return nil, err
	}
	presentMode := ChoosePresentMode(modes)

	formats, err := d.PhysicalDevice.GetSurfaceFormats(surface)
	if err != nil {
		return nil, err
	}
	if len(formats) == 0 {
		return nil, fmt.Errorf("surface reports no formats")
	}
	format := ChooseSurfaceFormat(formats)

	caps, err := d.PhysicalDevice.GetSurfaceCapabilities(surface)
	if err != nil {
		return nil, err
	}
	caps.Deref()

	var actual vk.Extent2D
	if options != nil {
		actual = options.ActualSize
	}
	extent := ChooseExtent(caps, actual)

	imageCount := ChooseImageCount(caps)
	if options != nil && options.DesiredNumSwapchainImages > 0 {
		imageCount = uint32(options.DesiredNumSwapchainImages)
	}

	createInfo := &vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          surface,
		MinImageCount:    imageCount,
		ImageFormat:      format.Format,
		ImageColorSpace:  format.ColorSpace,
		ImageExtent:      extent,
		PresentMode:      presentMode,
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		ImageArrayLayers: 1,
		Clipped:          vk.True,
		PreTransform:     caps.CurrentTransform,
		CompositeAlpha:   vk.CompositeAlphaOpaqueBit,
		OldSwapchain:     vk.NullSwapchain,
	}

	if options != nil && options.OldSwapchain != nil {
		createInfo.OldSwapchain = options.OldSwapchain.VKSwapchain
	}

	if graphicsQueue.QueueFamily.Index != presentQueue.QueueFamily.Index {
		createInfo.QueueFamilyIndexCount = 2
		createInfo.PQueueFamilyIndices = []uint32{
			uint32(graphicsQueue.QueueFamily.Index),
			uint32(presentQueue.QueueFamily.Index),
		}
		createInfo.ImageSharingMode = vk.SharingModeConcurrent
	} else {
		createInfo.ImageSharingMode = vk.SharingModeExclusive
	}

	var swapchain vk.Swapchain
	err = vk.Error(vk.CreateSwapchain(d.VKDevice, createInfo, nil, &swapchain))
	if err != nil {
		return nil, fmt.Errorf("creating swapchain: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"extent": fmt.Sprintf("%dx%d", extent.Width, extent.Height),
		"images": imageCount,
		"mode":   presentMode,
	}).Debug("swapchain created")

	return &Swapchain{
		VKSwapchain: swapchain,
		Device:      d,
		Extent:      extent,
		Format:      format.Format,
		ColorSpace:  format.ColorSpace,
	}, nil
}
