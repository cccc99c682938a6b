package vktut

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// FrameTracker is the CPU-side bookkeeping of the frame loop. It tracks
// which in-flight slot the next frame uses, which acquire semaphore to hand
// to the presentation engine, how many submissions have no signaled fence
// yet, and whether the swapchain must be rebuilt before the next frame.
//
// The tracker never touches the device, so the frame pacing rules can be
// tested without one.
type FrameTracker struct {
	framesInFlight int
	semaphoreCount int

	slot           int
	semaphoreIndex int

	inFlight []bool

	rebuildNeeded bool
	rebuilds      uint64
}

// NewFrameTracker creates a tracker for framesInFlight slots cycling through
// semaphoreCount acquire semaphores.
func NewFrameTracker(framesInFlight, semaphoreCount int) *FrameTracker {
	if framesInFlight < 1 {
		framesInFlight = 1
	}
	if semaphoreCount < 1 {
		semaphoreCount = 1
	}
	return &FrameTracker{
		framesInFlight: framesInFlight,
		semaphoreCount: semaphoreCount,
		inFlight:       make([]bool, framesInFlight),
	}
}

// FramesInFlight returns the number of frame slots.
func (t *FrameTracker) FramesInFlight() int {
	return t.framesInFlight
}

// Slot returns the in-flight slot the current frame uses. It is always in
// [0, FramesInFlight).
func (t *FrameTracker) Slot() int {
	return t.slot
}

// SemaphoreIndex returns the index of the acquire semaphore the current
// frame uses.
func (t *FrameTracker) SemaphoreIndex() int {
	return t.semaphoreIndex
}

// Outstanding returns the number of submissions whose fences have not been
// reclaimed yet. It can never exceed FramesInFlight.
func (t *FrameTracker) Outstanding() int {
	n := 0
	for _, f := range t.inFlight {
		if f {
			n++
		}
	}
	return n
}

// SlotReclaimed records that the current slot's fence wait has completed and
// its resources may be reused.
func (t *FrameTracker) SlotReclaimed() {
	t.inFlight[t.slot] = false
}

// Submitted records that work for the current slot has been handed to the
// queue with an unsignaled fence. Submitting into a slot that has not been
// reclaimed is a frame pacing bug.
func (t *FrameTracker) Submitted() error {
	if t.inFlight[t.slot] {
		return fmt.Errorf("slot %d already has an outstanding submission", t.slot)
	}
	t.inFlight[t.slot] = true
	return nil
}

// Advance moves to the next frame: the slot cycles through the in-flight
// slots and the semaphore index through the acquire semaphores.
func (t *FrameTracker) Advance() {
	t.slot = (t.slot + 1) % t.framesInFlight
	t.semaphoreIndex = (t.semaphoreIndex + 1) % t.semaphoreCount
}

// MarkStale records that the swapchain no longer matches the surface and
// must be rebuilt before the next frame is drawn.
func (t *FrameTracker) MarkStale() {
	t.rebuildNeeded = true
}

// NeedsRebuild reports whether a rebuild is pending.
func (t *FrameTracker) NeedsRebuild() bool {
	return t.rebuildNeeded
}

// BeginRebuild reports whether a rebuild may proceed at the given
// framebuffer extent. A zero-area extent means the window is minimized and
// the rebuild must wait.
func (t *FrameTracker) BeginRebuild(extent vk.Extent2D) bool {
	return extent.Width != 0 && extent.Height != 0
}

// FinishRebuild records a completed rebuild: the pending flag clears, the
// indices reset and the semaphore cycle adopts the new image count.
func (t *FrameTracker) FinishRebuild(semaphoreCount int) {
	if semaphoreCount < 1 {
		semaphoreCount = 1
	}
	t.semaphoreCount = semaphoreCount
	t.slot = 0
	t.semaphoreIndex = 0
	t.rebuildNeeded = false
	t.rebuilds++
	for i := range t.inFlight {
		t.inFlight[i] = false
	}
}

// RebuildCount returns how many rebuilds have completed.
func (t *FrameTracker) RebuildCount() uint64 {
	return t.rebuilds
}
