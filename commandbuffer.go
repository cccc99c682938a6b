package vktut

import (
	vk "github.com/vulkan-go/vulkan"
)

// CommandBuffer describes a sequence of commands that will be executed upon
// being sent to a device queue. Not every Vulkan command is wrapped here;
// applications record most draw commands through the native vk.Cmd* APIs
// using VK().
type CommandBuffer struct {
	VKCommandBuffer vk.CommandBuffer
}

// VK returns the native Vulkan command buffer.
func (c *CommandBuffer) VK() vk.CommandBuffer {
	return c.VKCommandBuffer
}

// Reset this command buffer so it can be re-recorded.
func (c *CommandBuffer) Reset() error {
	return vk.Error(vk.ResetCommandBuffer(c.VKCommandBuffer, 0))
}

// ResetAndRelease resets this command buffer and releases its resources
// back to the pool.
func (c *CommandBuffer) ResetAndRelease() error {
	return vk.Error(vk.ResetCommandBuffer(c.VKCommandBuffer, vk.CommandBufferResetFlags(vk.CommandBufferResetReleaseResourcesBit)))
}

// Begin recording work for this command buffer.
func (c *CommandBuffer) Begin() error {
	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
	}
	return vk.Error(vk.BeginCommandBuffer(c.VKCommandBuffer, &beginInfo))
}

// BeginOneTime begins recording with the one-time-submit hint, for transfer
// commands that are submitted once and thrown away.
func (c *CommandBuffer) BeginOneTime() error {
	beginInfo := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
		Flags: vk.CommandBufferUsageFlags(vk.CommandBufferUsageOneTimeSubmitBit),
	}
	return vk.Error(vk.BeginCommandBuffer(c.VKCommandBuffer, &beginInfo))
}

// End recording work for this command buffer.
func (c *CommandBuffer) End() error {
	return vk.Error(vk.EndCommandBuffer(c.VKCommandBuffer))
}

// CmdBindDescriptorSets binds descriptor sets for subsequent draw commands.
func (c *CommandBuffer) CmdBindDescriptorSets(bindPoint vk.PipelineBindPoint, layout *PipelineLayout, firstSet int, descriptorSets ...*DescriptorSet) {
	sets := make([]vk.DescriptorSet, len(descriptorSets))
	for i := range descriptorSets {
		sets[i] = descriptorSets[i].VKDescriptorSet
	}

	vk.CmdBindDescriptorSets(c.VKCommandBuffer, bindPoint,
		layout.VKPipelineLayout, uint32(firstSet), uint32(len(descriptorSets)), sets, 0, nil)
}

// CmdSetViewportAndScissor sets a full-extent dynamic viewport and scissor,
// for pipelines built with viewport and scissor as dynamic state.
func (c *CommandBuffer) CmdSetViewportAndScissor(extent vk.Extent2D) {
	vk.CmdSetViewport(c.VKCommandBuffer, 0, 1, []vk.Viewport{{
		X:        0,
		Y:        0,
		Width:    float32(extent.Width),
		Height:   float32(extent.Height),
		MinDepth: 0,
		MaxDepth: 1,
	}})
	vk.CmdSetScissor(c.VKCommandBuffer, 0, 1, []vk.Rect2D{{
		Offset: vk.Offset2D{X: 0, Y: 0},
		Extent: extent,
	}})
}
