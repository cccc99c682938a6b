package vktut

import (
	"fmt"
	"os"

	vk "github.com/vulkan-go/vulkan"
)

// ShaderModule wraps a compiled SPIR-V shader loaded into the device.
type ShaderModule struct {
	Device         *Device
	Description    string
	VKShaderModule vk.ShaderModule
}

// LoadShaderModuleFromFile reads a SPIR-V binary from disk and creates a
// shader module from it.
func (d *Device) LoadShaderModuleFromFile(file string) (*ShaderModule, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("reading shader %q: %w", file, err)
	}
	var module vk.ShaderModule
	err = vk.Error(vk.CreateShaderModule(d.VKDevice, &vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(data)),
		PCode:    sliceUint32(data),
	}, nil, &module))
	if err != nil {
		return nil, fmt.Errorf("creating shader module from %q: %w", file, err)
	}

	return &ShaderModule{
		Device:         d,
		Description:    file,
		VKShaderModule: module,
	}, nil
}

// VKPipelineShaderStageCreateInfo describes this module as a pipeline stage
// with the given entry point.
func (s *ShaderModule) VKPipelineShaderStageCreateInfo(stage vk.ShaderStageFlagBits, entryPoint string) vk.PipelineShaderStageCreateInfo {
	return vk.PipelineShaderStageCreateInfo{
		SType:  vk.StructureTypePipelineShaderStageCreateInfo,
		Stage:  stage,
		Module: s.VKShaderModule,
		PName:  safeString(entryPoint),
	}
}

func (s *ShaderModule) Destroy() {
	vk.DestroyShaderModule(s.Device.VKDevice, s.VKShaderModule, nil)
}
