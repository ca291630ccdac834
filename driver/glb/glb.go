// Package glb drives the slice of the BL808 global configuration block
// that gates the DMA engines' clocks. Gates must be opened before an
// engine is touched.
package glb

import "errors"

// RegisterBlock covers the clock generation registers of the GLB
// peripheral. Only the registers this driver needs are laid out; the
// block is much larger.
type RegisterBlock struct {
	_            [0x580]byte
	ClockConfig0 ClockConfig0
	ClockConfig1 ClockConfig1
	ClockConfig2 uint32
	ClockConfig3 uint32
}

// ClockConfig0 holds the controller-level clock gates.
type ClockConfig0 uint32

const cc0DMA ClockConfig0 = 1 << 3

// DMAEnabled reports the DMA controller clock gate.
func (c ClockConfig0) DMAEnabled() bool {
	return c&cc0DMA != 0
}

func (c ClockConfig0) SetDMAEnabled(on bool) ClockConfig0 {
	if on {
		return c | cc0DMA
	}
	return c &^ cc0DMA
}

// ClockConfig1 holds per-engine clock gates. DMA1 shares DMA0's gate
// and has no bit of its own.
type ClockConfig1 uint32

const (
	cc1DMA0 ClockConfig1 = 1 << 12
	cc1DMA2 ClockConfig1 = 1 << 24
)

// DMAEnabled reports engine n's clock gate.
func (c ClockConfig1) DMAEnabled(engine int) bool {
	switch engine {
	case 0:
		return c&cc1DMA0 != 0
	case 1:
		return true
	case 2:
		return c&cc1DMA2 != 0
	}
	panic("glb: engine out of range")
}

func (c ClockConfig1) SetDMAEnabled(engine int, on bool) ClockConfig1 {
	var bit ClockConfig1
	switch engine {
	case 0:
		bit = cc1DMA0
	case 1:
		return c
	case 2:
		bit = cc1DMA2
	default:
		panic("glb: engine out of range")
	}
	if on {
		return c | bit
	}
	return c &^ bit
}

// EnableDMA opens the clock gates for DMA engine n. It is called once
// at session setup, before the engine's registers are accessed.
func EnableDMA(regs *RegisterBlock, engine int) error {
	if engine < 0 || engine > 2 {
		return errors.New("glb: engine out of range")
	}
	regs.ClockConfig0 = regs.ClockConfig0.SetDMAEnabled(true)
	regs.ClockConfig1 = regs.ClockConfig1.SetDMAEnabled(engine, true)
	return nil
}
