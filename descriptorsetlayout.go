package vktut

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// DescriptorSetLayout describes the shape of a descriptor set: which bindings
// exist, their types and which shader stages see them.
type DescriptorSetLayout struct {
	Device                        *Device
	VKDescriptorSetLayout         vk.DescriptorSetLayout
	VKDescriptorSetLayoutBindings []vk.DescriptorSetLayoutBinding
}

func (d *Device) NewDescriptorSetLayout() *DescriptorSetLayout {
	return &DescriptorSetLayout{Device: d}
}

// AddBinding adds a binding to the layout.
func (d *DescriptorSetLayout) AddBinding(binding vk.DescriptorSetLayoutBinding) {
	d.VKDescriptorSetLayoutBindings = append(d.VKDescriptorSetLayoutBindings, binding)
}

// AddUniformBuffer adds a single uniform buffer binding visible to the given
// stages.
func (d *DescriptorSetLayout) AddUniformBuffer(binding int, stages vk.ShaderStageFlagBits) {
	d.AddBinding(vk.DescriptorSetLayoutBinding{
		Binding:         uint32(binding),
		DescriptorType:  vk.DescriptorTypeUniformBuffer,
		DescriptorCount: 1,
		StageFlags:      vk.ShaderStageFlags(stages),
	})
}

// AddCombinedImageSampler adds a single combined image sampler binding
// visible to the given stages.
func (d *DescriptorSetLayout) AddCombinedImageSampler(binding int, stages vk.ShaderStageFlagBits) {
	d.AddBinding(vk.DescriptorSetLayoutBinding{
		Binding:         uint32(binding),
		DescriptorType:  vk.DescriptorTypeCombinedImageSampler,
		DescriptorCount: 1,
		StageFlags:      vk.ShaderStageFlags(stages),
	})
}

func (d *DescriptorSetLayout) Destroy() {
	vk.DestroyDescriptorSetLayout(d.Device.VKDevice, d.VKDescriptorSetLayout, nil)
}

// CreateDescriptorSetLayout creates the native layout from the accumulated
// bindings.
func (d *Device) CreateDescriptorSetLayout(layout *DescriptorSetLayout) (*DescriptorSetLayout, error) {
	descriptorSetLayoutCreateInfo := vk.DescriptorSetLayoutCreateInfo{
		SType:        vk.StructureTypeDescriptorSetLayoutCreateInfo,
		BindingCount: uint32(len(layout.VKDescriptorSetLayoutBindings)),
		PBindings:    layout.VKDescriptorSetLayoutBindings,
	}

	var descriptorSetLayout vk.DescriptorSetLayout
	err := vk.Error(vk.CreateDescriptorSetLayout(d.VKDevice, &descriptorSetLayoutCreateInfo, nil, &descriptorSetLayout))
	if err != nil {
		return nil, fmt.Errorf("creating descriptor set layout: %w", err)
	}

	layout.Device = d
	layout.VKDescriptorSetLayout = descriptorSetLayout

	return layout, nil
}
