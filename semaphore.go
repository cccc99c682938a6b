package vktut

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// VKCreateSemaphore creates a native Vulkan semaphore, used for GPU side
// ordering between acquire, submit and present.
func (d *Device) VKCreateSemaphore() (vk.Semaphore, error) {
	semaphoreCreateInfo := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}

	var sema vk.Semaphore
	err := vk.Error(vk.CreateSemaphore(d.VKDevice, &semaphoreCreateInfo, nil, &sema))
	if err != nil {
		return vk.NullSemaphore, fmt.Errorf("creating semaphore: %w", err)
	}
	return sema, nil
}

func (d *Device) VKDestroySemaphore(s vk.Semaphore) {
	vk.DestroySemaphore(d.VKDevice, s, nil)
}
