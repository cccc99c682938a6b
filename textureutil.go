package vktut

import (
	"fmt"
	"image"
	"image/draw"
	"os"
	"time"
	"unsafe"

	// Register the decoders texture files commonly use.
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"

	vk "github.com/vulkan-go/vulkan"
)

// StageTextureFromDisk decodes an image file and uploads it into a sampled
// texture allocated from this pool. The upload is submitted on queue and
// waited on before returning.
func (p *ImageResourcePool) StageTextureFromDisk(filename string, cmd *CommandBuffer, queue *Queue) (*ImageResource, error) {
	reader, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening texture %q: %w", filename, err)
	}
	defer reader.Close()

	src, _, err := image.Decode(reader)
	if err != nil {
		return nil, fmt.Errorf("decoding texture %q: %w", filename, err)
	}

	b := src.Bounds()
	m := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(m, m.Bounds(), src, b.Min, draw.Src)

	return p.StageTextureFromImage(m, cmd, queue)
}

// StageTextureFromImage uploads an RGBA image into a sampled texture
// allocated from this pool.
func (p *ImageResourcePool) StageTextureFromImage(srcImg *image.RGBA, cmd *CommandBuffer, queue *Queue) (*ImageResource, error) {
	b := srcImg.Bounds()
	extent := vk.Extent2D{
		Width:  uint32(b.Dx()),
		Height: uint32(b.Dy()),
	}

	img, err := p.AllocateImage(extent, vk.FormatR8g8b8a8Unorm, vk.ImageTilingOptimal,
		vk.ImageUsageTransferDstBit|vk.ImageUsageSampledBit)
	if err != nil {
		return nil, err
	}

	if err := img.AllocateStagingResource(); err != nil {
		img.Free()
		return nil, err
	}
	defer img.FreeStagingResource()

	stagingPool := img.StagingResource.ResourcePool
	if !stagingPool.Memory.IsMapped() {
		if _, err := stagingPool.Memory.Map(); err != nil {
			img.Free()
			return nil, err
		}
	}

	srb := img.StagingResource.Bytes()
	if srb == nil {
		img.Free()
		return nil, fmt.Errorf("staging pool memory is not mapped")
	}
	copy(srb, ToBytes(unsafe.Pointer(&srcImg.Pix[0]), len(srcImg.Pix)))

	if err := cmd.BeginOneTime(); err != nil {
		img.Free()
		return nil, err
	}
	if err := cmd.TransitionImageLayout(img, vk.FormatR8g8b8a8Unorm, vk.ImageLayoutUndefined, vk.ImageLayoutTransferDstOptimal); err != nil {
		img.Free()
		return nil, err
	}
	if err := cmd.StageImageResource(img); err != nil {
		img.Free()
		return nil, err
	}
	if err := cmd.TransitionImageLayout(img, vk.FormatR8g8b8a8Unorm, vk.ImageLayoutTransferDstOptimal, vk.ImageLayoutShaderReadOnlyOptimal); err != nil {
		img.Free()
		return nil, err
	}
	if err := cmd.End(); err != nil {
		img.Free()
		return nil, err
	}

	f, err := p.Device.CreateFence()
	if err != nil {
		img.Free()
		return nil, err
	}
	defer f.Destroy()

	if err := queue.SubmitWithFence(f, cmd); err != nil {
		img.Free()
		return nil, err
	}

	if err := p.Device.WaitForFences(true, 100*time.Second, f); err != nil {
		img.Free()
		return nil, fmt.Errorf("waiting for texture upload: %w", err)
	}

	return img, nil
}
