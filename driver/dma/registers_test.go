package dma

import (
	"testing"
	"unsafe"
)

// The layouts below are a fixed hardware contract; every offset must
// match the BL808 reference manual exactly.

func TestRegisterBlockOffsets(t *testing.T) {
	var r RegisterBlock
	offsets := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"Interrupts", unsafe.Offsetof(r.Interrupts), 0x00},
		{"EnabledChannels", unsafe.Offsetof(r.EnabledChannels), 0x1c},
		{"SoftBurstReq", unsafe.Offsetof(r.SoftBurstReq), 0x20},
		{"SoftSingleReq", unsafe.Offsetof(r.SoftSingleReq), 0x24},
		{"SoftLastBurstReq", unsafe.Offsetof(r.SoftLastBurstReq), 0x28},
		{"SoftLastSingleReq", unsafe.Offsetof(r.SoftLastSingleReq), 0x2c},
		{"GlobalConfig", unsafe.Offsetof(r.GlobalConfig), 0x30},
		{"Sync", unsafe.Offsetof(r.Sync), 0x34},
		{"Channels", unsafe.Offsetof(r.Channels), 0x100},
	}
	for _, o := range offsets {
		if o.got != o.want {
			t.Errorf("offset of %s: %#x, want %#x", o.name, o.got, o.want)
		}
	}
}

func TestInterruptRegistersOffsets(t *testing.T) {
	var r InterruptRegisters
	offsets := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"GlobalState", unsafe.Offsetof(r.GlobalState), 0x00},
		{"CompleteState", unsafe.Offsetof(r.CompleteState), 0x04},
		{"CompleteClear", unsafe.Offsetof(r.CompleteClear), 0x08},
		{"ErrState", unsafe.Offsetof(r.ErrState), 0x0c},
		{"ErrClear", unsafe.Offsetof(r.ErrClear), 0x10},
		{"RawComplete", unsafe.Offsetof(r.RawComplete), 0x14},
		{"RawErr", unsafe.Offsetof(r.RawErr), 0x18},
	}
	for _, o := range offsets {
		if o.got != o.want {
			t.Errorf("offset of %s: %#x, want %#x", o.name, o.got, o.want)
		}
	}
}

func TestChannelRegistersLayout(t *testing.T) {
	var r ChannelRegisters
	offsets := []struct {
		name string
		got  uintptr
		want uintptr
	}{
		{"SrcAddr", unsafe.Offsetof(r.SrcAddr), 0x00},
		{"DstAddr", unsafe.Offsetof(r.DstAddr), 0x04},
		{"LLI", unsafe.Offsetof(r.LLI), 0x08},
		{"Control", unsafe.Offsetof(r.Control), 0x0c},
		{"Config", unsafe.Offsetof(r.Config), 0x10},
	}
	for _, o := range offsets {
		if o.got != o.want {
			t.Errorf("offset of %s: %#x, want %#x", o.name, o.got, o.want)
		}
	}
	if got := unsafe.Sizeof(r); got != 0x100 {
		t.Errorf("channel register block size %#x, want 0x100", got)
	}
	var rb RegisterBlock
	if got := unsafe.Sizeof(rb); got != 0x100+NumChannels*0x100 {
		t.Errorf("register block size %#x, want %#x", got, 0x100+NumChannels*0x100)
	}
}

func TestItemLayout(t *testing.T) {
	var it Item
	if ItemSize != 16 {
		t.Fatalf("item size %d, want 16", ItemSize)
	}
	if off := unsafe.Offsetof(it.Next); off != 8 {
		t.Errorf("offset of Next: %d, want 8", off)
	}
	if off := unsafe.Offsetof(it.Control); off != 12 {
		t.Errorf("offset of Control: %d, want 12", off)
	}
}

func TestChannelBits(t *testing.T) {
	b := ChannelBits(0x10)
	if !b.Has(4) {
		t.Errorf("bit 4 not reported set in %#x", uint32(b))
	}
	if b.Has(3) {
		t.Errorf("bit 3 reported set in %#x", uint32(b))
	}
	if got := Bit(4); got != 0x10 {
		t.Errorf("Bit(4) = %#x, want 0x10", uint32(got))
	}
}

func TestGlobalConfig(t *testing.T) {
	var g GlobalConfig
	g = g.SetEndian(BigEndian)
	if g.Endian() != BigEndian || g != 0x00000002 {
		t.Errorf("big endian: word %#08x, want 0x00000002", uint32(g))
	}
	g = g.SetEndian(LittleEndian)
	if g.Endian() != LittleEndian || g != 0 {
		t.Errorf("little endian: word %#08x, want 0", uint32(g))
	}
	g = g.SetEnabled(true)
	if !g.Enabled() || g != 0x00000001 {
		t.Errorf("enabled: word %#08x, want 0x00000001", uint32(g))
	}
	g = g.SetEnabled(false)
	if g.Enabled() || g != 0 {
		t.Errorf("disabled: word %#08x, want 0", uint32(g))
	}
}
