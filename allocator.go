package vktut

import (
	"fmt"

	units "github.com/docker/go-units"
	"github.com/sirupsen/logrus"
)

// Allocation is a reservation of a range within a pool of device memory.
type Allocation struct {
	Offset uint64
	Size   uint64

	// Object optionally tracks the resource occupying this range so the
	// pool can destroy its contents wholesale.
	Object interface{}
}

func (a *Allocation) String() string {
	return fmt.Sprintf("[%d %d]", a.Offset, a.Size)
}

// Allocator hands out ranges of a fixed-size pool. Vulkan caps the number of
// native memory allocations an application may make, so buffers and images
// are sub-allocated out of large pools instead of allocated individually.
type Allocator interface {
	Allocate(size uint64) *Allocation
	AllocateAligned(size uint64, align uint64) *Allocation
	Free(a *Allocation)
	Used() uint64
	DestroyContents()
	LogDetails()
}

// PoolAllocator is a first-fit allocator over a contiguous range. Allocations
// are kept sorted by offset; freeing simply removes the reservation, so
// adjacent free space coalesces for free.
type PoolAllocator struct {
	Size uint64
	// Align is the default alignment applied when the caller does not
	// supply one. Zero behaves as 1.
	Align  uint64
	allocs []*Allocation
}

func makeAlignUp(a uint64, align uint64) uint64 {
	m := a % align
	if m == 0 {
		return a
	}
	return (a - m) + align
}

func (p *PoolAllocator) Free(fa *Allocation) {
	for i, a := range p.allocs {
		if a == fa {
			p.allocs = append(p.allocs[:i], p.allocs[i+1:]...)
			return
		}
	}
}

// Allocate reserves size bytes at the pool's default alignment. Returns nil
// when no contiguous range is large enough.
func (p *PoolAllocator) Allocate(size uint64) *Allocation {
	align := p.Align
	if align == 0 {
		align = 1
	}
	return p.AllocateAligned(size, align)
}

// AllocateAligned reserves size bytes at an offset aligned to align.
func (p *PoolAllocator) AllocateAligned(size uint64, align uint64) *Allocation {
	if align == 0 {
		align = 1
	}

	if len(p.allocs) == 0 {
		if size > p.Size {
			return nil
		}
		na := &Allocation{Offset: 0, Size: size}
		p.allocs = append(p.allocs, na)
		return na
	}

	// Room before the first reservation?
	if p.allocs[0].Offset >= size {
		na := &Allocation{Offset: 0, Size: size}
		p.allocs = append([]*Allocation{na}, p.allocs...)
		return na
	}

	// First fit between existing reservations.
	for i := 0; i+1 < len(p.allocs); i++ {
		c := p.allocs[i]
		n := p.allocs[i+1]

		l := makeAlignUp(c.Offset+c.Size, align)
		h := n.Offset

		if h >= l && h-l >= size {
			na := &Allocation{Offset: l, Size: size}
			p.allocs = append(p.allocs[:i+1], append([]*Allocation{na}, p.allocs[i+1:]...)...)
			return na
		}
	}

	// Tail.
	last := p.allocs[len(p.allocs)-1]
	nl := makeAlignUp(last.Offset+last.Size, align)
	if nl <= p.Size && p.Size-nl >= size {
		na := &Allocation{Offset: nl, Size: size}
		p.allocs = append(p.allocs, na)
		return na
	}

	return nil
}

// Used returns the number of bytes currently reserved.
func (p *PoolAllocator) Used() uint64 {
	var used uint64
	for _, a := range p.allocs {
		used += a.Size
	}
	return used
}

// DestroyContents destroys every resource tracked by the outstanding
// reservations and empties the pool.
func (p *PoolAllocator) DestroyContents() {
	for _, a := range p.allocs {
		if d, ok := a.Object.(Destroyer); ok {
			d.Destroy()
		}
	}
	p.allocs = nil
}

func (p *PoolAllocator) LogDetails() {
	logrus.WithFields(logrus.Fields{
		"size":   units.BytesSize(float64(p.Size)),
		"used":   units.BytesSize(float64(p.Used())),
		"allocs": len(p.allocs),
	}).Debug("pool allocator")
}

func (p *PoolAllocator) String() string {
	return fmt.Sprintf("%v", p.allocs)
}
