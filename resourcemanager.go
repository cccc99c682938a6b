package vktut

import (
	"errors"
	"fmt"

	units "github.com/docker/go-units"
	"github.com/sirupsen/logrus"
	vk "github.com/vulkan-go/vulkan"
)

// StagingPoolName is the well known name of the host-visible pool that
// staging resources are allocated from.
const StagingPoolName = "staging"

// ErrInsufficientPoolSpace is returned when a pool cannot fit an allocation.
var ErrInsufficientPoolSpace = errors.New("insufficient space in resource pool")

// ImageResourcePool sub-allocates images out of one large device memory
// allocation.
type ImageResourcePool struct {
	Device           *Device
	Name             string
	Usage            vk.ImageUsageFlagBits
	Sharing          vk.SharingMode
	MemoryProperties vk.MemoryPropertyFlagBits
	Size             uint64
	Allocator        Allocator
	Memory           *DeviceMemory
	NeedsStaging     bool
	ResourceManager  *ResourceManager
}

// BufferResourcePool sub-allocates buffers out of one large device memory
// allocation.
type BufferResourcePool struct {
	Device           *Device
	Name             string
	Usage            vk.BufferUsageFlagBits
	Sharing          vk.SharingMode
	MemoryProperties vk.MemoryPropertyFlagBits
	Size             uint64
	Allocator        Allocator
	Memory           *DeviceMemory
	NeedsStaging     bool
	ResourceManager  *ResourceManager
}

// AllocateImage creates an image and binds it into this pool's memory.
func (p *ImageResourcePool) AllocateImage(extent vk.Extent2D, format vk.Format, tiling vk.ImageTiling, usage vk.ImageUsageFlagBits) (*ImageResource, error) {
	if p.NeedsStaging {
		usage |= vk.ImageUsageTransferDstBit
	}

	i, err := p.Device.CreateImageWithOptions(extent, format, tiling, usage)
	if err != nil {
		return nil, err
	}

	mr := i.VKMemoryRequirements()
	mr.Deref()

	allocation := p.Allocator.AllocateAligned(uint64(mr.Size), uint64(mr.Alignment))
	if allocation == nil {
		i.Destroy()
		return nil, fmt.Errorf("allocating %s image in pool %q: %w",
			units.BytesSize(float64(mr.Size)), p.Name, ErrInsufficientPoolSpace)
	}

	err = vk.Error(vk.BindImageMemory(p.Device.VKDevice, i.VKImage, p.Memory.VKDeviceMemory, vk.DeviceSize(allocation.Offset)))
	if err != nil {
		p.Allocator.Free(allocation)
		i.Destroy()
		return nil, fmt.Errorf("binding pooled image memory: %w", err)
	}

	img := &ImageResource{
		Image:        *i,
		Allocation:   allocation,
		ResourcePool: p,
	}
	allocation.Object = img

	return img, nil
}

func (p *ImageResourcePool) LogDetails() {
	logrus.WithFields(logrus.Fields{
		"pool": p.Name,
		"size": units.BytesSize(float64(p.Size)),
	}).Debug("image pool")
	p.Allocator.LogDetails()
}

func (p *ImageResourcePool) Destroy() {
	if p.Allocator != nil {
		p.Allocator.DestroyContents()
		p.Allocator = nil
	}
	if p.Memory != nil {
		p.Memory.Destroy()
		p.Memory = nil
	}
	if p.ResourceManager != nil {
		delete(p.ResourceManager.imagePools, p.Name)
	}
}

// AllocateFor allocates a pooled buffer sized and flagged for the given
// source: vertex data, index data or uniforms.
func (p *BufferResourcePool) AllocateFor(src BufferObject) (*BufferResource, error) {
	size := uint64(len(src.Bytes()))
	switch src.(type) {
	case VertexSource:
		return p.AllocateBuffer(size, vk.BufferUsageVertexBufferBit)
	case IndexSource:
		return p.AllocateBuffer(size, vk.BufferUsageIndexBufferBit)
	case UniformSource:
		return p.AllocateBuffer(size, vk.BufferUsageUniformBufferBit)
	default:
		return nil, fmt.Errorf("buffer object %T is not a vertex, index or uniform source", src)
	}
}

// AllocateBuffer creates a buffer and binds it into this pool's memory.
func (p *BufferResourcePool) AllocateBuffer(size uint64, usage vk.BufferUsageFlagBits) (*BufferResource, error) {
	if p.NeedsStaging {
		usage |= vk.BufferUsageTransferDstBit
	}

	buffer, err := p.Device.CreateBufferWithOptions(size, vk.BufferUsageFlags(usage), vk.SharingModeExclusive)
	if err != nil {
		return nil, err
	}

	mr := buffer.VKMemoryRequirements()
	mr.Deref()

	allocation := p.Allocator.AllocateAligned(uint64(mr.Size), uint64(mr.Alignment))
	if allocation == nil {
		buffer.Destroy()
		return nil, fmt.Errorf("allocating %s buffer in pool %q: %w",
			units.BytesSize(float64(size)), p.Name, ErrInsufficientPoolSpace)
	}

	err = buffer.Bind(p.Memory, allocation.Offset)
	if err != nil {
		p.Allocator.Free(allocation)
		buffer.Destroy()
		return nil, fmt.Errorf("binding pooled buffer memory: %w", err)
	}

	ret := &BufferResource{
		Buffer:       *buffer,
		Allocation:   allocation,
		ResourcePool: p,
	}
	allocation.Object = ret

	return ret, nil
}

func (p *BufferResourcePool) LogDetails() {
	logrus.WithFields(logrus.Fields{
		"pool":  p.Name,
		"size":  units.BytesSize(float64(p.Size)),
		"usage": bufferUsageToString(p.Usage),
	}).Debug("buffer pool")
	p.Allocator.LogDetails()
}

func (p *BufferResourcePool) Destroy() {
	if p.Allocator != nil {
		p.Allocator.DestroyContents()
		p.Allocator = nil
	}
	if p.Memory != nil {
		p.Memory.Destroy()
		p.Memory = nil
	}
	if p.ResourceManager != nil {
		delete(p.ResourceManager.bufferPools, p.Name)
	}
}

// ResourceManager tracks named buffer and image pools. Vulkan caps the
// number of native allocations, so all meshes, uniforms and textures are
// sub-allocated from pools created here.
type ResourceManager struct {
	Device      *Device
	bufferPools map[string]*BufferResourcePool
	imagePools  map[string]*ImageResourcePool
}

func (d *Device) CreateResourceManager() *ResourceManager {
	return &ResourceManager{
		Device:      d,
		bufferPools: make(map[string]*BufferResourcePool),
		imagePools:  make(map[string]*ImageResourcePool),
	}
}

func (r *ResourceManager) GetStagingPool() *BufferResourcePool {
	return r.bufferPools[StagingPoolName]
}

func (r *ResourceManager) HasStagingPool() bool {
	return r.bufferPools[StagingPoolName] != nil
}

// AllocateStagingPool creates the host-visible pool that staging resources
// come from.
func (r *ResourceManager) AllocateStagingPool(size uint64) (*BufferResourcePool, error) {
	return r.AllocateBufferPoolWithOptions(StagingPoolName, size,
		vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit,
		vk.BufferUsageTransferSrcBit, vk.SharingModeExclusive)
}

// AllocateDeviceTexturePool creates a device-local pool for sampled textures.
func (r *ResourceManager) AllocateDeviceTexturePool(name string, size uint64) (*ImageResourcePool, error) {
	return r.AllocateImagePoolWithOptions(name, size, vk.MemoryPropertyDeviceLocalBit,
		vk.ImageUsageTransferDstBit|vk.ImageUsageSampledBit, vk.SharingModeExclusive)
}

// AllocateHostVertexAndIndexBufferPool creates a host-visible pool suitable
// for vertex and index data that the CPU updates directly.
func (r *ResourceManager) AllocateHostVertexAndIndexBufferPool(name string, size uint64) (*BufferResourcePool, error) {
	return r.AllocateBufferPoolWithOptions(name, size,
		vk.MemoryPropertyHostVisibleBit|vk.MemoryPropertyHostCoherentBit,
		vk.BufferUsageVertexBufferBit|vk.BufferUsageIndexBufferBit, vk.SharingModeExclusive)
}

// AllocateDeviceVertexAndIndexBufferPool creates a device-local pool for
// vertex and index data uploaded through the staging pool.
func (r *ResourceManager) AllocateDeviceVertexAndIndexBufferPool(name string, size uint64) (*BufferResourcePool, error) {
	return r.AllocateBufferPoolWithOptions(name, size,
		vk.MemoryPropertyDeviceLocalBit,
		vk.BufferUsageVertexBufferBit|vk.BufferUsageIndexBufferBit|vk.BufferUsageTransferDstBit,
		vk.SharingModeExclusive)
}

// AllocateImagePoolWithOptions creates a named image pool. Device-local
// pools are flagged as needing staging.
func (r *ResourceManager) AllocateImagePoolWithOptions(name string, size uint64, mprops vk.MemoryPropertyFlagBits, usage vk.ImageUsageFlagBits, sharing vk.SharingMode) (*ImageResourcePool, error) {
	needsStaging := mprops&vk.MemoryPropertyDeviceLocalBit != 0

	p := &ImageResourcePool{
		Device:           r.Device,
		Name:             name,
		Usage:            usage,
		Sharing:          sharing,
		MemoryProperties: mprops,
		Size:             size,
		Allocator:        &PoolAllocator{Size: size},
		NeedsStaging:     needsStaging,
		ResourceManager:  r,
	}

	// A throwaway probe image supplies the memory type bits for this
	// combination of usage and tiling.
	probe, err := r.Device.CreateImageWithOptions(vk.Extent2D{Width: 16, Height: 16},
		vk.FormatR8g8b8a8Unorm, vk.ImageTilingOptimal, usage)
	if err != nil {
		return nil, err
	}
	defer probe.Destroy()

	mr := probe.VKMemoryRequirements()
	mr.Deref()

	memory, err := r.Device.Allocate(int(size), mr.MemoryTypeBits, vk.MemoryPropertyFlags(mprops))
	if err != nil {
		return nil, fmt.Errorf("allocating image pool %q: %w", name, err)
	}
	p.Memory = memory

	r.imagePools[name] = p

	logrus.WithFields(logrus.Fields{
		"pool": name,
		"size": units.BytesSize(float64(size)),
	}).Debug("allocated image pool")

	return p, nil
}

// AllocateBufferPoolWithOptions creates a named buffer pool. Device-local
// pools are flagged as needing staging.
func (r *ResourceManager) AllocateBufferPoolWithOptions(name string, size uint64, mprops vk.MemoryPropertyFlagBits, usage vk.BufferUsageFlagBits, sharing vk.SharingMode) (*BufferResourcePool, error) {
	needsStaging := mprops&vk.MemoryPropertyDeviceLocalBit != 0
	if needsStaging {
		usage |= vk.BufferUsageTransferDstBit
	}

	p := &BufferResourcePool{
		Device:           r.Device,
		Name:             name,
		Usage:            usage,
		Sharing:          sharing,
		MemoryProperties: mprops,
		Size:             size,
		Allocator:        &PoolAllocator{Size: size},
		NeedsStaging:     needsStaging,
		ResourceManager:  r,
	}

	probe, err := r.Device.CreateBufferWithOptions(size, vk.BufferUsageFlags(usage), sharing)
	if err != nil {
		return nil, err
	}
	defer probe.Destroy()

	mr := probe.VKMemoryRequirements()
	mr.Deref()

	memory, err := r.Device.Allocate(int(size), mr.MemoryTypeBits, vk.MemoryPropertyFlags(mprops))
	if err != nil {
		return nil, fmt.Errorf("allocating buffer pool %q: %w", name, err)
	}
	p.Memory = memory

	r.bufferPools[name] = p

	logrus.WithFields(logrus.Fields{
		"pool":  name,
		"size":  units.BytesSize(float64(size)),
		"usage": bufferUsageToString(usage),
	}).Debug("allocated buffer pool")

	return p, nil
}

func (r *ResourceManager) Destroy() {
	for _, p := range r.bufferPools {
		p.Destroy()
	}
	for _, p := range r.imagePools {
		p.Destroy()
	}
}

func (r *ResourceManager) LogDetails() {
	for _, pool := range r.bufferPools {
		pool.LogDetails()
	}
	for _, pool := range r.imagePools {
		pool.LogDetails()
	}
}

func (r *ResourceManager) ImagePool(name string) *ImageResourcePool {
	return r.imagePools[name]
}

func (r *ResourceManager) BufferPool(name string) *BufferResourcePool {
	return r.bufferPools[name]
}
