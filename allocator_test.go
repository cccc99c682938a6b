package vktut

import (
	"testing"
)

func TestAlign(t *testing.T) {
	if makeAlignUp(12, 3) != 12 {
		t.Fail()
	}

	if makeAlignUp(10, 3) != 12 {
		t.Fail()
	}
}

func TestAllocator(t *testing.T) {

	a := PoolAllocator{Size: 1024, Align: 1}

	ra := a.Allocate(2048)
	if ra != nil {
		t.Error("oversized allocation should fail")
	}

	fa := a.Allocate(512)
	if fa == nil {
		t.Error("first allocation should fit")
	}

	ra = a.Allocate(768)
	if ra != nil {
		t.Error("allocation past remaining space should fail")
	}

	k := a.Allocate(500)
	if k == nil {
		t.Error("second allocation should fit")
	}

	ra = a.Allocate(50)
	if ra != nil {
		t.Error("allocation bigger than the remaining tail should fail")
	}

	ra = a.Allocate(5)
	if ra == nil {
		t.Error("tail allocation should fit")
	}

	ra = a.Allocate(20)
	if ra != nil {
		t.Error("pool should be exhausted")
	}

	a.Free(k)
	ra = a.Allocate(500)
	if ra == nil {
		t.Error("freed hole should be reusable")
	}

	a.Free(fa)
	ra = a.Allocate(20)
	if ra == nil {
		t.Error("head hole should be reusable")
	}

	ra = a.Allocate(40)
	if ra == nil {
		t.Error("head hole should fit a second allocation")
	}

	ra = a.Allocate(12)
	if ra == nil {
		t.Error("head hole should fit a third allocation")
	}
	ra = a.Allocate(500)
	if ra != nil {
		t.Error("allocation bigger than any hole should fail")
	}
	ra = a.Allocate(5)
	if ra == nil {
		t.Error("small allocation should still fit")
	}
}

func TestAllocatorAlignment(t *testing.T) {
	a := PoolAllocator{Size: 1024, Align: 256}

	first := a.Allocate(10)
	if first == nil || first.Offset != 0 {
		t.Fatalf("first allocation should sit at offset 0, got %v", first)
	}

	second := a.Allocate(10)
	if second == nil {
		t.Fatal("second allocation should fit")
	}
	if second.Offset%256 != 0 {
		t.Errorf("offset %d not aligned to 256", second.Offset)
	}
}

func TestAllocatorUsed(t *testing.T) {
	a := PoolAllocator{Size: 1024, Align: 1}

	x := a.Allocate(100)
	y := a.Allocate(200)
	if a.Used() != 300 {
		t.Errorf("expected 300 bytes used, got %d", a.Used())
	}

	a.Free(x)
	a.Free(y)
	if a.Used() != 0 {
		t.Errorf("expected empty pool, got %d bytes used", a.Used())
	}
}
