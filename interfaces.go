package vktut

import (
	vk "github.com/vulkan-go/vulkan"
)

// Destroyer is implemented by every wrapper object that owns a native
// Vulkan handle.
type Destroyer interface {
	Destroy()
}

// BufferObject is anything that can hand its contents over as raw bytes
// for copying into device or host visible memory.
type BufferObject interface {
	Bytes() []byte
}

// IndexSource is a BufferObject holding index data.
type IndexSource interface {
	BufferObject
	IndexType() vk.IndexType
}

// VertexSource is a BufferObject holding vertex data that can also describe
// its own layout to a graphics pipeline.
type VertexSource interface {
	BufferObject
	VertexDescriptor
}

// VertexDescriptor describes how vertex data is laid out in memory.
type VertexDescriptor interface {
	GetBindingDescription() vk.VertexInputBindingDescription
	GetAttributeDescriptions() []vk.VertexInputAttributeDescription
}

// Descriptor identifies where a resource is bound for use by shaders.
type Descriptor struct {
	Type        vk.DescriptorType
	ShaderStage vk.ShaderStageFlags
	Set         int
	Binding     int
}

// DescriptorBinder is implemented by objects that know their own binding.
type DescriptorBinder interface {
	Descriptor() *Descriptor
}

// UniformSource is a BufferObject destined for a uniform buffer.
type UniformSource interface {
	BufferObject
	DescriptorBinder
}

// GraphicsPipelineConfigurer produces the create info for one graphics
// pipeline. GraphicsApp recreates pipelines from their configurers whenever
// the swapchain is rebuilt.
type GraphicsPipelineConfigurer interface {
	Destroyer
	VKGraphicsPipelineCreateInfo(extent vk.Extent2D) (vk.GraphicsPipelineCreateInfo, error)
}
