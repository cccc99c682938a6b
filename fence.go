package vktut

import (
	"fmt"
	"time"

	vk "github.com/vulkan-go/vulkan"
)

// Fence is a GPU to CPU completion signal.
type Fence struct {
	Device  *Device
	VKFence vk.Fence
}

func (d *Device) VKGetFenceStatus(f vk.Fence) vk.Result {
	return vk.GetFenceStatus(d.VKDevice, f)
}

func (d *Device) VKDestroyFence(f vk.Fence) {
	vk.DestroyFence(d.VKDevice, f, nil)
}

// VKCreateFence creates a native fence, optionally in the signaled state.
// Frame loop fences start signaled so the first wait on each in-flight slot
// returns immediately.
func (d *Device) VKCreateFence(signaled bool) (vk.Fence, error) {
	fenceCreateInfo := vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
	}
	if signaled {
		fenceCreateInfo.Flags = vk.FenceCreateFlags(vk.FenceCreateSignaledBit)
	}

	var fence vk.Fence
	err := vk.Error(vk.CreateFence(d.VKDevice, &fenceCreateInfo, nil, &fence))
	if err != nil {
		return vk.NullFence, fmt.Errorf("creating fence: %w", err)
	}
	return fence, nil
}

func (d *Device) CreateFence() (*Fence, error) {
	fence, err := d.VKCreateFence(false)
	if err != nil {
		return nil, err
	}
	return &Fence{VKFence: fence, Device: d}, nil
}

// WaitForFences blocks until the fences signal or the timeout expires.
func (d *Device) WaitForFences(waitForAll bool, ts time.Duration, fences ...*Fence) error {
	f := make([]vk.Fence, len(fences))
	for i := range fences {
		f[i] = fences[i].VKFence
	}

	wait := vk.Bool32(vk.False)
	if waitForAll {
		wait = vk.Bool32(vk.True)
	}

	err := vk.Error(vk.WaitForFences(d.VKDevice, uint32(len(fences)), f, wait, uint64(ts.Nanoseconds())))
	if err != nil {
		return fmt.Errorf("waiting for fences: %w", err)
	}
	return nil
}

func (f *Fence) Destroy() {
	vk.DestroyFence(f.Device.VKDevice, f.VKFence, nil)
}
