package vktut

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// GraphicsPipelineConfig eases construction of graphics pipelines. The zero
// values of most knobs are filled in by CreateGraphicsPipelineConfig with the
// defaults a typical triangle-list pipeline wants.
type GraphicsPipelineConfig struct {
	Device               *Device
	ShaderStages         []vk.PipelineShaderStageCreateInfo
	DescriptorSetLayouts []*DescriptorSetLayout

	PipelineLayout *PipelineLayout

	// Configure is called as the last step of create-info generation to
	// allow arbitrary tweaks.
	Configure func(config vk.GraphicsPipelineCreateInfo)

	// PrimitiveTopology defaults to triangle lists.
	PrimitiveTopology vk.PrimitiveTopology

	// PrimitiveRestartEnable defaults to false.
	PrimitiveRestartEnable vk.Bool32

	// PolygonMode defaults to fill.
	PolygonMode vk.PolygonMode

	// LineWidth of rasterized lines, defaults to 1.0.
	LineWidth float32

	// CullMode defaults to back-face culling.
	CullMode vk.CullModeFlagBits

	// DynamicState lists pipeline state the command buffer may change at
	// record time. When it contains viewport or scissor the corresponding
	// static state is omitted and the command buffer must set it.
	DynamicState []vk.DynamicState

	// FrontFace defaults to counter-clockwise.
	FrontFace vk.FrontFace

	// BlendAttachments defaults to a single attachment with blending off.
	BlendAttachments []vk.PipelineColorBlendAttachmentState

	// DepthTestEnable defaults to true.
	DepthTestEnable bool

	// DepthWriteEnable defaults to true.
	DepthWriteEnable bool

	VertexInputBindingDescriptions   []vk.VertexInputBindingDescription
	VertexInputAttributeDescriptions []vk.VertexInputAttributeDescription

	toDestroy []Destroyer

	Viewport *vk.Viewport
}

// CreateGraphicsPipelineConfig creates a config with the usual defaults.
func (d *Device) CreateGraphicsPipelineConfig() *GraphicsPipelineConfig {
	return &GraphicsPipelineConfig{
		Device:                 d,
		PrimitiveTopology:      vk.PrimitiveTopologyTriangleList,
		PrimitiveRestartEnable: vk.False,
		PolygonMode:            vk.PolygonModeFill,
		LineWidth:              1.0,
		CullMode:               vk.CullModeBackBit,
		FrontFace:              vk.FrontFaceCounterClockwise,
		DepthTestEnable:        true,
		DepthWriteEnable:       true,
	}
}

func (g *GraphicsPipelineConfig) manageDestroy(d Destroyer) {
	g.toDestroy = append(g.toDestroy, d)
}

// Destroy releases resources the config owns, such as shader modules loaded
// through AddShaderStageFromFile.
func (g *GraphicsPipelineConfig) Destroy() {
	for _, d := range g.toDestroy {
		d.Destroy()
	}
	g.toDestroy = nil
}

// AddBlendAttachment adds a color blend attachment state.
func (g *GraphicsPipelineConfig) AddBlendAttachment(ba vk.PipelineColorBlendAttachmentState) {
	g.BlendAttachments = append(g.BlendAttachments, ba)
}

// SetCullMode sets the cull mode.
func (g *GraphicsPipelineConfig) SetCullMode(mode vk.CullModeFlagBits) *GraphicsPipelineConfig {
	g.CullMode = mode
	return g
}

// SetDynamicState specifies which pipeline state the command buffer sets at
// record time.
func (g *GraphicsPipelineConfig) SetDynamicState(states ...vk.DynamicState) *GraphicsPipelineConfig {
	g.DynamicState = states
	return g
}

// AddShaderStageFromFile loads a SPIR-V binary and adds it as a shader stage.
// The module is destroyed with the config.
func (g *GraphicsPipelineConfig) AddShaderStageFromFile(file, entryPoint string, stageType vk.ShaderStageFlagBits) error {
	shader, err := g.Device.LoadShaderModuleFromFile(file)
	if err != nil {
		return fmt.Errorf("adding shader stage: %w", err)
	}
	g.ShaderStages = append(g.ShaderStages, shader.VKPipelineShaderStageCreateInfo(stageType, entryPoint))

	g.manageDestroy(shader)

	return nil
}

// SetPipelineLayout sets the pipeline layout.
func (g *GraphicsPipelineConfig) SetPipelineLayout(layout *PipelineLayout) *GraphicsPipelineConfig {
	g.PipelineLayout = layout
	return g
}

// SetShaderStages sets the shader stages directly.
func (g *GraphicsPipelineConfig) SetShaderStages(shaderStages []vk.PipelineShaderStageCreateInfo) *GraphicsPipelineConfig {
	g.ShaderStages = shaderStages
	return g
}

// AddVertexDescriptor adds the binding and attribute descriptions a vertex
// type declares.
func (g *GraphicsPipelineConfig) AddVertexDescriptor(v VertexDescriptor) *GraphicsPipelineConfig {
	g.VertexInputBindingDescriptions = append(g.VertexInputBindingDescriptions, v.GetBindingDescription())
	g.VertexInputAttributeDescriptions = append(g.VertexInputAttributeDescriptions, v.GetAttributeDescriptions()...)
	return g
}

// AddDescriptorSetLayout adds a descriptor set layout.
func (g *GraphicsPipelineConfig) AddDescriptorSetLayout(d *DescriptorSetLayout) *GraphicsPipelineConfig {
	g.DescriptorSetLayouts = append(g.DescriptorSetLayouts, d)
	return g
}

func (g *GraphicsPipelineConfig) dynamicStateHas(s vk.DynamicState) bool {
	for _, ds := range g.DynamicState {
		if ds == s {
			return true
		}
	}
	return false
}

// VKGraphicsPipelineCreateInfo builds the native create info for the given
// swapchain extent.
func (g *GraphicsPipelineConfig) VKGraphicsPipelineCreateInfo(extent vk.Extent2D) (vk.GraphicsPipelineCreateInfo, error) {
	if len(g.ShaderStages) == 0 {
		return vk.GraphicsPipelineCreateInfo{}, fmt.Errorf("graphics pipeline config has no shader stages")
	}

	vertexInputState := vk.PipelineVertexInputStateCreateInfo{
		SType:                           vk.StructureTypePipelineVertexInputStateCreateInfo,
		VertexBindingDescriptionCount:   uint32(len(g.VertexInputBindingDescriptions)),
		PVertexBindingDescriptions:      g.VertexInputBindingDescriptions,
		VertexAttributeDescriptionCount: uint32(len(g.VertexInputAttributeDescriptions)),
		PVertexAttributeDescriptions:    g.VertexInputAttributeDescriptions,
	}

	inputAssemblyState := vk.PipelineInputAssemblyStateCreateInfo{
		SType:                  vk.StructureTypePipelineInputAssemblyStateCreateInfo,
		Topology:               g.PrimitiveTopology,
		PrimitiveRestartEnable: g.PrimitiveRestartEnable,
	}

	viewportState := vk.PipelineViewportStateCreateInfo{
		SType:         vk.StructureTypePipelineViewportStateCreateInfo,
		ViewportCount: 1,
		ScissorCount:  1,
	}

	if !g.dynamicStateHas(vk.DynamicStateViewport) {
		viewport := vk.Viewport{
			X:        0,
			Y:        0,
			Width:    float32(extent.Width),
			Height:   float32(extent.Height),
			MinDepth: 0,
			MaxDepth: 1,
		}
		if g.Viewport != nil {
			viewport = *g.Viewport
		}
		viewportState.PViewports = []vk.Viewport{viewport}
	}

	if !g.dynamicStateHas(vk.DynamicStateScissor) {
		viewportState.PScissors = []vk.Rect2D{{
			Offset: vk.Offset2D{X: 0, Y: 0},
			Extent: extent,
		}}
	}

	rasterState := vk.PipelineRasterizationStateCreateInfo{
		SType:                   vk.StructureTypePipelineRasterizationStateCreateInfo,
		DepthClampEnable:        vk.False,
		RasterizerDiscardEnable: vk.False,
		PolygonMode:             g.PolygonMode,
		LineWidth:               g.LineWidth,
		CullMode:                vk.CullModeFlags(g.CullMode),
		FrontFace:               g.FrontFace,
		DepthBiasEnable:         vk.False,
	}

	multisampleState := vk.PipelineMultisampleStateCreateInfo{
		SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
		SampleShadingEnable:  vk.False,
		RasterizationSamples: vk.SampleCount1Bit,
	}

	blendAttachments := g.BlendAttachments
	if blendAttachments == nil {
		blendAttachments = []vk.PipelineColorBlendAttachmentState{{
			ColorWriteMask: vk.ColorComponentFlags(vk.ColorComponentRBit | vk.ColorComponentGBit | vk.ColorComponentBBit | vk.ColorComponentABit),
			BlendEnable:    vk.False,
		}}
	}

	colorBlendState := vk.PipelineColorBlendStateCreateInfo{
		SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
		AttachmentCount: uint32(len(blendAttachments)),
		PAttachments:    blendAttachments,
	}

	dynamicState := vk.PipelineDynamicStateCreateInfo{
		SType:             vk.StructureTypePipelineDynamicStateCreateInfo,
		PDynamicStates:    g.DynamicState,
		DynamicStateCount: uint32(len(g.DynamicState)),
	}

	dte := vk.Bool32(vk.True)
	if !g.DepthTestEnable {
		dte = vk.False
	}

	dwe := vk.Bool32(vk.True)
	if !g.DepthWriteEnable {
		dwe = vk.False
	}

	depthStencil := vk.PipelineDepthStencilStateCreateInfo{
		SType:                 vk.StructureTypePipelineDepthStencilStateCreateInfo,
		DepthTestEnable:       dte,
		DepthWriteEnable:      dwe,
		DepthCompareOp:        vk.CompareOpLess,
		DepthBoundsTestEnable: vk.False,
		MinDepthBounds:        0,
		MaxDepthBounds:        1,
		StencilTestEnable:     vk.False,
	}

	var pipelineLayout vk.PipelineLayout
	if g.PipelineLayout != nil {
		pipelineLayout = g.PipelineLayout.VKPipelineLayout
	}

	pipelineCreateInfo := vk.GraphicsPipelineCreateInfo{
		SType:               vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount:          uint32(len(g.ShaderStages)),
		PStages:             g.ShaderStages,
		PVertexInputState:   &vertexInputState,
		PInputAssemblyState: &inputAssemblyState,
		PDepthStencilState:  &depthStencil,
		PViewportState:      &viewportState,
		PRasterizationState: &rasterState,
		PMultisampleState:   &multisampleState,
		PColorBlendState:    &colorBlendState,
		PDynamicState:       &dynamicState,
		Layout:              pipelineLayout,
		Subpass:             0,
	}

	if g.Configure != nil {
		g.Configure(pipelineCreateInfo)
	}

	return pipelineCreateInfo, nil
}
