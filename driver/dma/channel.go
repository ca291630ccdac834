package dma

import (
	"errors"
	"sync"
)

// Controller drives one DMA engine.
type Controller struct {
	regs *RegisterBlock

	mu       sync.Mutex
	reserved ChannelBits
}

// New returns a controller over an already-mapped register block. The
// engine's clock gates must be enabled before any channel is used; see
// package soc/bl808.
func New(regs *RegisterBlock) *Controller {
	return &Controller{regs: regs}
}

// Enabled reports the channels the engine currently runs.
func (c *Controller) Enabled() ChannelBits {
	return c.regs.EnabledChannels
}

// Channel reserves channel n and configures it for a session described
// by cfg. The configuration is read once; it seeds every descriptor
// built by Load. The channel is left disabled with no pending
// interrupt state.
func (c *Controller) Channel(n uint8, cfg ChannelConfig) (*Channel, error) {
	if n >= NumChannels {
		return nil, errors.New("dma: channel number out of range")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.reserved.Has(n) {
		return nil, errors.New("dma: channel already reserved")
	}
	c.reserved |= Bit(n)

	c.regs.GlobalConfig = c.regs.GlobalConfig.SetEnabled(true)

	tmpl := cfg.control()
	cr := &c.regs.Channels[n]
	cr.Config = cr.Config.SetEnabled(false)
	cr.Control = tmpl

	conf := cr.Config.SetMode(cfg.Direction)
	if cfg.SrcRequest != NoRequest {
		conf = conf.SetSrcPeripheral(cfg.SrcRequest)
	}
	if cfg.DstRequest != NoRequest {
		conf = conf.SetDstPeripheral(cfg.DstRequest)
	}
	cr.Config = conf.SetCompleteInterrupt(true).SetErrInterrupt(true)

	c.regs.Interrupts.CompleteClear = Bit(n)
	c.regs.Interrupts.ErrClear = Bit(n)

	return &Channel{ctrl: c, regs: cr, num: n, template: tmpl}, nil
}

// Channel is one reserved channel of an engine.
type Channel struct {
	ctrl     *Controller
	regs     *ChannelRegisters
	num      uint8
	template Control
}

// Num is the channel's number within its engine.
func (ch *Channel) Num() uint8 {
	return ch.num
}

// Start sets the channel enable bit. The engine walks the armed chain
// autonomously from here on.
func (ch *Channel) Start() {
	ch.regs.Config = ch.regs.Config.SetEnabled(true)
}

// Stop clears the channel enable bit. An in-flight transfer is cut off
// wherever the engine happens to be; no rollback is attempted.
func (ch *Channel) Stop() {
	ch.regs.Config = ch.regs.Config.SetEnabled(false)
}

// Complete reports the channel's masked completion interrupt state.
func (ch *Channel) Complete() bool {
	return ch.ctrl.regs.Interrupts.CompleteState.Has(ch.num)
}

// Err reports the channel's masked error interrupt state. The driver
// assigns the bit no further meaning.
func (ch *Channel) Err() bool {
	return ch.ctrl.regs.Interrupts.ErrState.Has(ch.num)
}

// ClearComplete acknowledges the channel's completion interrupt.
func (ch *Channel) ClearComplete() {
	ch.ctrl.regs.Interrupts.CompleteClear = Bit(ch.num)
}

// ClearErr acknowledges the channel's error interrupt.
func (ch *Channel) ClearErr() {
	ch.ctrl.regs.Interrupts.ErrClear = Bit(ch.num)
}

// Busy reports whether data remains in the channel FIFO.
func (ch *Channel) Busy() bool {
	return ch.regs.Config.FIFOActive()
}

// Release stops the channel and returns it to the controller. The
// Channel must not be used afterwards.
func (ch *Channel) Release() {
	ch.Stop()
	ch.ctrl.mu.Lock()
	ch.ctrl.reserved &^= Bit(ch.num)
	ch.ctrl.mu.Unlock()
}
