package vktut

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// PipelineCache wraps a Vulkan pipeline cache.
type PipelineCache struct {
	Device          *Device
	VKPipelineCache vk.PipelineCache
}

func (d *Device) CreatePipelineCache() (*PipelineCache, error) {
	pipelineCacheCreateInfo := vk.PipelineCacheCreateInfo{
		SType: vk.StructureTypePipelineCacheCreateInfo,
	}

	var pipelineCache vk.PipelineCache
	err := vk.Error(vk.CreatePipelineCache(d.VKDevice, &pipelineCacheCreateInfo, nil, &pipelineCache))
	if err != nil {
		return nil, fmt.Errorf("creating pipeline cache: %w", err)
	}

	return &PipelineCache{Device: d, VKPipelineCache: pipelineCache}, nil
}

func (p *PipelineCache) Destroy() {
	vk.DestroyPipelineCache(p.Device.VKDevice, p.VKPipelineCache, nil)
}

// CreateGraphicsPipelines builds one native pipeline per configurer against
// the given render pass and extent. All pipelines are created in a single
// call so the driver can share compilation work.
func (d *Device) CreateGraphicsPipelines(cache *PipelineCache, renderPass vk.RenderPass, extent vk.Extent2D, configs ...GraphicsPipelineConfigurer) ([]vk.Pipeline, error) {
	createInfos := make([]vk.GraphicsPipelineCreateInfo, len(configs))
	for i, c := range configs {
		ci, err := c.VKGraphicsPipelineCreateInfo(extent)
		if err != nil {
			return nil, fmt.Errorf("building pipeline create info %d: %w", i, err)
		}
		ci.RenderPass = renderPass
		createInfos[i] = ci
	}

	var vkPipelineCache vk.PipelineCache
	if cache != nil {
		vkPipelineCache = cache.VKPipelineCache
	}

	pipelines := make([]vk.Pipeline, len(configs))
	err := vk.Error(vk.CreateGraphicsPipelines(d.VKDevice, vkPipelineCache,
		uint32(len(createInfos)), createInfos, nil, pipelines))
	if err != nil {
		return nil, fmt.Errorf("creating %d graphics pipelines: %w", len(configs), err)
	}

	return pipelines, nil
}
