package vktut

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// DescriptorPool allocates descriptor sets. Pool sizes must be declared up
// front before the pool is created.
type DescriptorPool struct {
	Device               *Device
	VKDescriptorPool     vk.DescriptorPool
	VKDescriptorPoolSize []vk.DescriptorPoolSize
}

func (d *Device) NewDescriptorPool() *DescriptorPool {
	return &DescriptorPool{Device: d}
}

// AddPoolSize declares how many descriptors of a given type the pool will
// hold.
func (d *DescriptorPool) AddPoolSize(dtype vk.DescriptorType, count int) {
	d.VKDescriptorPoolSize = append(d.VKDescriptorPoolSize, vk.DescriptorPoolSize{
		Type:            dtype,
		DescriptorCount: uint32(count),
	})
}

// CreateDescriptorPool creates the native pool, sized to allocate at most
// maxSets descriptor sets.
func (d *Device) CreateDescriptorPool(pool *DescriptorPool, maxSets int) (*DescriptorPool, error) {
	descriptorPoolCreateInfo := vk.DescriptorPoolCreateInfo{
		SType:         vk.StructureTypeDescriptorPoolCreateInfo,
		MaxSets:       uint32(maxSets),
		Flags:         vk.DescriptorPoolCreateFlags(vk.DescriptorPoolCreateFreeDescriptorSetBit),
		PoolSizeCount: uint32(len(pool.VKDescriptorPoolSize)),
		PPoolSizes:    pool.VKDescriptorPoolSize,
	}

	var descriptorPool vk.DescriptorPool
	err := vk.Error(vk.CreateDescriptorPool(d.VKDevice, &descriptorPoolCreateInfo, nil, &descriptorPool))
	if err != nil {
		return nil, fmt.Errorf("creating descriptor pool: %w", err)
	}

	pool.Device = d
	pool.VKDescriptorPool = descriptorPool

	return pool, nil
}

// Allocate allocates a descriptor set from the pool for the given layouts.
func (d *DescriptorPool) Allocate(layouts ...*DescriptorSetLayout) (*DescriptorSet, error) {
	dsl := make([]vk.DescriptorSetLayout, len(layouts))
	for i, ds := range layouts {
		dsl[i] = ds.VKDescriptorSetLayout
	}

	descriptorSetAllocateInfo := vk.DescriptorSetAllocateInfo{
		SType:              vk.StructureTypeDescriptorSetAllocateInfo,
		DescriptorPool:     d.VKDescriptorPool,
		DescriptorSetCount: uint32(len(layouts)),
		PSetLayouts:        dsl,
	}

	var descriptorSet vk.DescriptorSet
	err := vk.Error(vk.AllocateDescriptorSets(d.Device.VKDevice, &descriptorSetAllocateInfo, &descriptorSet))
	if err != nil {
		return nil, fmt.Errorf("allocating descriptor set: %w", err)
	}

	return &DescriptorSet{
		Device:          d.Device,
		DescriptorPool:  d,
		VKDescriptorSet: descriptorSet,
	}, nil
}

func (d *DescriptorPool) Reset() error {
	return vk.Error(vk.ResetDescriptorPool(d.Device.VKDevice, d.VKDescriptorPool, 0))
}

func (d *DescriptorPool) Free(ds *DescriptorSet) error {
	descriptorSet := ds.VKDescriptorSet
	return vk.Error(vk.FreeDescriptorSets(d.Device.VKDevice, d.VKDescriptorPool, 1, &descriptorSet))
}

func (d *DescriptorPool) Destroy() {
	vk.DestroyDescriptorPool(d.Device.VKDevice, d.VKDescriptorPool, nil)
}
