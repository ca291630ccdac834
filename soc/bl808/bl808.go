// Package bl808 describes the BL808 SoC: peripheral base addresses and
// mapping of register blocks into the process running on the chip's
// Linux core.
package bl808

import (
	"errors"
	"fmt"

	"periph.io/x/host/v3/pmem"

	"bouffalo.dev/hal/driver/dma"
	"bouffalo.dev/hal/driver/glb"
)

// Peripheral base addresses.
const (
	GLBBase  = 0x20000000
	DMA0Base = 0x2000C000
	DMA1Base = 0x20071000
	DMA2Base = 0x30001000
)

var dmaBases = [...]uint64{DMA0Base, DMA1Base, DMA2Base}

// NumEngines is the number of DMA engines on the SoC.
const NumEngines = len(dmaBases)

var glbRegs *glb.RegisterBlock

// GLB maps the global configuration block. The mapping is shared and
// never unmapped.
func GLB() (*glb.RegisterBlock, error) {
	if glbRegs == nil {
		if err := pmem.MapAsPOD(GLBBase, &glbRegs); err != nil {
			return nil, fmt.Errorf("bl808: mapping GLB: %w", err)
		}
	}
	return glbRegs, nil
}

// DMA maps engine n's register block, opens its clock gates and
// returns a controller for it.
func DMA(n int) (*dma.Controller, error) {
	if n < 0 || n >= NumEngines {
		return nil, errors.New("bl808: DMA engine out of range")
	}
	g, err := GLB()
	if err != nil {
		return nil, err
	}
	if err := glb.EnableDMA(g, n); err != nil {
		return nil, err
	}
	var regs *dma.RegisterBlock
	if err := pmem.MapAsPOD(dmaBases[n], &regs); err != nil {
		return nil, fmt.Errorf("bl808: mapping DMA%d: %w", n, err)
	}
	return dma.New(regs), nil
}

// AllocPool allocates physically contiguous, locked memory for at
// least slots descriptors and wraps it in a pool. The returned memory
// must be closed once no armed chain references the pool.
func AllocPool(slots int) (*dma.Pool, *pmem.MemAlloc, error) {
	if slots <= 0 {
		return nil, nil, errors.New("bl808: pool size must be positive")
	}
	size := (slots*dma.ItemSize + 0xfff) &^ 0xfff
	mem, err := pmem.Alloc(size)
	if err != nil {
		return nil, nil, fmt.Errorf("bl808: allocating pool: %w", err)
	}
	pool, err := dma.NewPool(mem)
	if err != nil {
		mem.Close()
		return nil, nil, err
	}
	return pool, mem, nil
}

// AllocBuf allocates physically contiguous, locked memory for transfer
// payloads. PhysAddr gives the address to place in a Transfer.
func AllocBuf(size int) (*pmem.MemAlloc, error) {
	size = (size + 0xfff) &^ 0xfff
	mem, err := pmem.Alloc(size)
	if err != nil {
		return nil, fmt.Errorf("bl808: allocating buffer: %w", err)
	}
	return mem, nil
}
