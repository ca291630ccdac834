package dma

import (
	"errors"
	"unsafe"
)

// Item is one linked list item in the exact layout the engine fetches:
// four little-endian words. Next holds the physical address of the
// following item, or 0 to end the chain.
type Item struct {
	Src     uint32
	Dst     uint32
	Next    uint32
	Control Control
}

// ItemSize is the size of one linked list item in bytes.
const ItemSize = int(unsafe.Sizeof(Item{}))

// Mem is a region of physically contiguous memory reachable by the
// engine. *pmem.MemAlloc satisfies it.
type Mem interface {
	Bytes() []byte
	PhysAddr() uint64
}

// Pool is a fixed-capacity descriptor arena. Slots are addressed by
// index; Addr materializes the physical address the engine needs when
// it dereferences an item's Next field.
//
// The pool is owned by software while a plan is built. From the moment
// a channel is armed with a chain in the pool until completion is
// observed, the engine owns the slots reachable from that chain: they
// must not be rewritten, and the backing memory must not be released
// or relocated. The driver does not check this handoff.
type Pool struct {
	items []Item
	base  uint32
}

// NewPool creates a pool over mem. The memory must hold at least one
// item, be 4-byte aligned and lie within the engine's 32-bit address
// space.
func NewPool(mem Mem) (*Pool, error) {
	b := mem.Bytes()
	phys := mem.PhysAddr()
	n := len(b) / ItemSize
	if n == 0 {
		return nil, errors.New("dma: pool memory smaller than one item")
	}
	if phys%4 != 0 || uintptr(unsafe.Pointer(&b[0]))%4 != 0 {
		return nil, errors.New("dma: pool memory not 4-byte aligned")
	}
	if phys+uint64(n*ItemSize) > 1<<32 {
		return nil, errors.New("dma: pool memory beyond 32-bit address space")
	}
	return &Pool{
		items: unsafe.Slice((*Item)(unsafe.Pointer(&b[0])), n),
		base:  uint32(phys),
	}, nil
}

// Cap is the number of descriptor slots.
func (p *Pool) Cap() int {
	return len(p.items)
}

// Item returns slot i for inspection or mutation.
func (p *Pool) Item(i int) *Item {
	return &p.items[i]
}

// Addr is the physical address of slot i, as dereferenced by the
// engine.
func (p *Pool) Addr(i int) uint32 {
	if i < 0 || i >= len(p.items) {
		panic("dma: pool index out of range")
	}
	return p.base + uint32(i*ItemSize)
}

// index maps a physical item address back to its slot, or -1 if addr
// does not point at a slot in the pool.
func (p *Pool) index(addr uint32) int {
	off := int64(addr) - int64(p.base)
	if off < 0 || off%int64(ItemSize) != 0 {
		return -1
	}
	i := int(off) / ItemSize
	if i >= len(p.items) {
		return -1
	}
	return i
}
