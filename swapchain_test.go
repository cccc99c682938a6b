package vktut

import (
	"testing"

	"github.com/stretchr/testify/assert"
	vk "github.com/vulkan-go/vulkan"
)

func TestChooseSurfaceFormatPrefersSRGB(t *testing.T) {
	formats := []vk.SurfaceFormat{
		{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatB8g8r8a8Srgb, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	}

	chosen := ChooseSurfaceFormat(formats)
	assert.Equal(t, vk.FormatB8g8r8a8Srgb, chosen.Format)
	assert.Equal(t, vk.ColorSpaceSrgbNonlinear, chosen.ColorSpace)
}

func TestChooseSurfaceFormatFallsBackToFirst(t *testing.T) {
	formats := []vk.SurfaceFormat{
		{Format: vk.FormatR8g8b8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
		{Format: vk.FormatB8g8r8a8Unorm, ColorSpace: vk.ColorSpaceSrgbNonlinear},
	}

	chosen := ChooseSurfaceFormat(formats)
	assert.Equal(t, vk.FormatR8g8b8a8Unorm, chosen.Format)
}

func TestChoosePresentModePrefersMailbox(t *testing.T) {
	modes := []vk.PresentMode{vk.PresentModeImmediate, vk.PresentModeMailbox, vk.PresentModeFifo}
	assert.Equal(t, vk.PresentModeMailbox, ChoosePresentMode(modes))
}

func TestChoosePresentModeFallsBackToFifo(t *testing.T) {
	modes := []vk.PresentMode{vk.PresentModeImmediate}
	assert.Equal(t, vk.PresentModeFifo, ChoosePresentMode(modes))
}

func TestChooseExtentUsesCurrentExtentWhenFixed(t *testing.T) {
	caps := &vk.SurfaceCapabilities{
		CurrentExtent: vk.Extent2D{Width: 640, Height: 480},
	}

	extent := ChooseExtent(caps, vk.Extent2D{Width: 1920, Height: 1080})
	assert.Equal(t, uint32(640), extent.Width)
	assert.Equal(t, uint32(480), extent.Height)
}

func TestChooseExtentClampsActualSize(t *testing.T) {
	caps := &vk.SurfaceCapabilities{
		CurrentExtent:  vk.Extent2D{Width: vk.MaxUint32, Height: vk.MaxUint32},
		MinImageExtent: vk.Extent2D{Width: 320, Height: 240},
		MaxImageExtent: vk.Extent2D{Width: 1280, Height: 720},
	}

	extent := ChooseExtent(caps, vk.Extent2D{Width: 4000, Height: 100})
	assert.Equal(t, uint32(1280), extent.Width)
	assert.Equal(t, uint32(240), extent.Height)

	extent = ChooseExtent(caps, vk.Extent2D{Width: 800, Height: 600})
	assert.Equal(t, uint32(800), extent.Width)
	assert.Equal(t, uint32(600), extent.Height)
}

func TestChooseImageCount(t *testing.T) {
	// At least three, bounded by the surface maximum.
	assert.Equal(t, uint32(3), ChooseImageCount(&vk.SurfaceCapabilities{MinImageCount: 2, MaxImageCount: 8}))
	assert.Equal(t, uint32(4), ChooseImageCount(&vk.SurfaceCapabilities{MinImageCount: 4, MaxImageCount: 8}))
	assert.Equal(t, uint32(2), ChooseImageCount(&vk.SurfaceCapabilities{MinImageCount: 2, MaxImageCount: 2}))

	// A zero maximum means unbounded.
	assert.Equal(t, uint32(3), ChooseImageCount(&vk.SurfaceCapabilities{MinImageCount: 1, MaxImageCount: 0}))
}
