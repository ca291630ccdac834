package dma

import (
	"testing"
	"unsafe"
)

// testMem is a Mem backed by ordinary memory with a made-up physical
// address, standing in for a pmem allocation.
type testMem struct {
	b    []byte
	phys uint64
}

func (m *testMem) Bytes() []byte    { return m.b }
func (m *testMem) PhysAddr() uint64 { return m.phys }

// newTestMem returns 4-byte aligned memory for n items.
func newTestMem(n int, phys uint64) *testMem {
	w := make([]uint32, n*ItemSize/4)
	b := unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(w))), len(w)*4)
	return &testMem{b: b, phys: phys}
}

func newTestPool(t *testing.T, slots int) *Pool {
	t.Helper()
	p, err := NewPool(newTestMem(slots, 0x51000000))
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestNewPool(t *testing.T) {
	p := newTestPool(t, 8)
	if p.Cap() != 8 {
		t.Errorf("cap %d, want 8", p.Cap())
	}
	if got := p.Addr(0); got != 0x51000000 {
		t.Errorf("slot 0 at %#x, want 0x51000000", got)
	}
	if got := p.Addr(3); got != 0x51000000+3*uint32(ItemSize) {
		t.Errorf("slot 3 at %#x, want %#x", got, 0x51000000+3*ItemSize)
	}
}

func TestNewPoolRejects(t *testing.T) {
	if _, err := NewPool(&testMem{b: make([]byte, ItemSize-1), phys: 0x51000000}); err == nil {
		t.Error("pool under one item accepted")
	}
	if _, err := NewPool(newTestMem(4, 0x51000002)); err == nil {
		t.Error("misaligned physical address accepted")
	}
	if _, err := NewPool(newTestMem(4, 1<<32-uint64(ItemSize))); err == nil {
		t.Error("memory beyond 32-bit space accepted")
	}
}

func TestPoolIndex(t *testing.T) {
	p := newTestPool(t, 4)
	for i := 0; i < p.Cap(); i++ {
		if got := p.index(p.Addr(i)); got != i {
			t.Errorf("index of slot %d address: %d", i, got)
		}
	}
	bad := []uint32{
		p.Addr(0) - uint32(ItemSize), // below base
		p.Addr(0) + 4,                // not slot aligned
		p.Addr(3) + uint32(ItemSize), // past the end
		0,                            // terminal sentinel
	}
	for _, addr := range bad {
		if got := p.index(addr); got != -1 {
			t.Errorf("index of %#x: %d, want -1", addr, got)
		}
	}
}
