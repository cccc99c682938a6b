package vktut

import (
	vk "github.com/vulkan-go/vulkan"
)

// DescriptorSet binds concrete resources to the bindings a
// DescriptorSetLayout declares. Writes accumulate and are applied as a batch
// by Write.
type DescriptorSet struct {
	Device                *Device
	DescriptorPool        *DescriptorPool
	VKDescriptorSet       vk.DescriptorSet
	VKWriteDescriptorSets []vk.WriteDescriptorSet
}

func (d *Device) NewDescriptorSet() *DescriptorSet {
	return &DescriptorSet{Device: d}
}

// AddBuffer queues a buffer write for the given binding.
func (du *DescriptorSet) AddBuffer(dstBinding int, dtype vk.DescriptorType, b *Buffer, offset int) {
	du.VKWriteDescriptorSets = append(du.VKWriteDescriptorSets, vk.WriteDescriptorSet{
		SType:           vk.StructureTypeWriteDescriptorSet,
		DstBinding:      uint32(dstBinding),
		DescriptorCount: 1,
		DescriptorType:  dtype,
		PBufferInfo:     []vk.DescriptorBufferInfo{b.DSInfo(offset)},
	})
}

// AddCombinedImageSampler queues an image view plus sampler write for the
// given binding, for sampling textures in shaders.
func (du *DescriptorSet) AddCombinedImageSampler(dstBinding int, layout vk.ImageLayout, imageView vk.ImageView, sampler vk.Sampler) {
	descriptorImageInfo := vk.DescriptorImageInfo{
		ImageView:   imageView,
		ImageLayout: layout,
		Sampler:     sampler,
	}

	du.VKWriteDescriptorSets = append(du.VKWriteDescriptorSets, vk.WriteDescriptorSet{
		SType:           vk.StructureTypeWriteDescriptorSet,
		DstBinding:      uint32(dstBinding),
		DescriptorCount: 1,
		DescriptorType:  vk.DescriptorTypeCombinedImageSampler,
		PImageInfo:      []vk.DescriptorImageInfo{descriptorImageInfo},
	})
}

// Write applies all queued writes to this descriptor set.
func (du *DescriptorSet) Write() {
	for i := range du.VKWriteDescriptorSets {
		du.VKWriteDescriptorSets[i].DstSet = du.VKDescriptorSet
	}
	vk.UpdateDescriptorSets(du.Device.VKDevice, uint32(len(du.VKWriteDescriptorSets)), du.VKWriteDescriptorSets, 0, nil)
}
