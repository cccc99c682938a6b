package vktut

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	vk "github.com/vulkan-go/vulkan"
)

func drawOnce(t *testing.T, ft *FrameTracker) {
	t.Helper()
	ft.SlotReclaimed()
	require.NoError(t, ft.Submitted())
	ft.Advance()
}

func TestFrameTrackerSlotCycles(t *testing.T) {
	ft := NewFrameTracker(2, 3)

	for frame := 0; frame < 20; frame++ {
		slot := ft.Slot()
		assert.GreaterOrEqual(t, slot, 0)
		assert.Less(t, slot, ft.FramesInFlight())
		assert.Equal(t, frame%2, slot)
		assert.Equal(t, frame%3, ft.SemaphoreIndex())

		drawOnce(t, ft)
	}
}

func TestFrameTrackerOutstandingNeverExceedsFramesInFlight(t *testing.T) {
	ft := NewFrameTracker(2, 3)

	for frame := 0; frame < 50; frame++ {
		drawOnce(t, ft)
		assert.LessOrEqual(t, ft.Outstanding(), ft.FramesInFlight())
	}

	// Both slots full; reusing a slot without reclaiming it must fail.
	assert.Equal(t, 2, ft.Outstanding())
	assert.Error(t, ft.Submitted())

	ft.SlotReclaimed()
	assert.Equal(t, 1, ft.Outstanding())
	assert.NoError(t, ft.Submitted())
}

func TestFrameTrackerRebuildBlockedAtZeroExtent(t *testing.T) {
	ft := NewFrameTracker(2, 3)
	ft.MarkStale()

	assert.False(t, ft.BeginRebuild(vk.Extent2D{Width: 0, Height: 600}))
	assert.False(t, ft.BeginRebuild(vk.Extent2D{Width: 800, Height: 0}))
	assert.False(t, ft.BeginRebuild(vk.Extent2D{}))
	assert.True(t, ft.NeedsRebuild(), "a blocked rebuild stays pending")

	assert.True(t, ft.BeginRebuild(vk.Extent2D{Width: 800, Height: 600}))
	ft.FinishRebuild(3)
	assert.False(t, ft.NeedsRebuild())
}

func TestFrameTrackerStaleTriggersExactlyOneRebuild(t *testing.T) {
	ft := NewFrameTracker(2, 3)

	for frame := 0; frame < 5; frame++ {
		drawOnce(t, ft)
	}

	// A resize and a stale present in the same frame still cause a single
	// rebuild before the next successful frame.
	ft.MarkStale()
	ft.MarkStale()
	require.True(t, ft.NeedsRebuild())

	require.True(t, ft.BeginRebuild(vk.Extent2D{Width: 1024, Height: 768}))
	ft.FinishRebuild(4)

	assert.Equal(t, uint64(1), ft.RebuildCount())
	assert.False(t, ft.NeedsRebuild())
	assert.Equal(t, 0, ft.Slot())
	assert.Equal(t, 0, ft.SemaphoreIndex())
	assert.Equal(t, 0, ft.Outstanding())

	// The semaphore cycle follows the new image count.
	for frame := 0; frame < 8; frame++ {
		assert.Equal(t, frame%4, ft.SemaphoreIndex())
		drawOnce(t, ft)
	}
	assert.Equal(t, uint64(1), ft.RebuildCount())
}
