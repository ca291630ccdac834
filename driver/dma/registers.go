// Package dma implements a driver for the BL808 Direct Memory Access
// engines.
//
// A DMA engine executes transfers described by chains of linked list
// items that it walks autonomously once a channel is started. The
// driver builds such chains in a caller-allocated descriptor Pool and
// arms a Channel with the head of the chain; see Channel.Load.
package dma

// NumChannels is the number of independent channels per engine.
const NumChannels = 8

// RegisterBlock is the engine's register layout. Field offsets are
// fixed by hardware; see TestRegisterBlockOffsets.
type RegisterBlock struct {
	Interrupts        InterruptRegisters
	EnabledChannels   ChannelBits // read-only
	SoftBurstReq      uint32
	SoftSingleReq     uint32
	SoftLastBurstReq  uint32
	SoftLastSingleReq uint32
	GlobalConfig      GlobalConfig
	Sync              uint32
	_                 [0xc8]byte
	Channels          [NumChannels]ChannelRegisters
}

// InterruptRegisters is the engine's interrupt state, mask and clear
// registers. Each holds one bit per channel in its low byte.
type InterruptRegisters struct {
	GlobalState   ChannelBits // after masking
	CompleteState ChannelBits
	CompleteClear ChannelBits // write-only
	ErrState      ChannelBits
	ErrClear      ChannelBits // write-only
	RawComplete   ChannelBits // before masking
	RawErr        ChannelBits // before masking
}

// ChannelRegisters is one channel's live register set. The first four
// registers mirror the linked list item layout; the engine reloads
// them from each fetched item.
type ChannelRegisters struct {
	SrcAddr uint32
	DstAddr uint32
	LLI     uint32
	Control Control
	Config  Config
	_       [0xec]byte
}

// ChannelBits is a per-channel bit set as held in status and clear
// registers.
type ChannelBits uint32

// Has reports whether the bit for channel ch is set.
func (b ChannelBits) Has(ch uint8) bool {
	return b>>ch&1 != 0
}

// Bit returns the set with only channel ch's bit, for clear writes.
func Bit(ch uint8) ChannelBits {
	return 1 << ch
}

// GlobalConfig is the engine-wide configuration register.
type GlobalConfig uint32

const (
	gcfgEndian GlobalConfig = 1 << 1
	gcfgEnable GlobalConfig = 1 << 0
)

// Endian is the engine's AHB master endian mode.
type Endian uint8

const (
	LittleEndian Endian = iota
	BigEndian
)

func (g GlobalConfig) Endian() Endian {
	return Endian(g & gcfgEndian >> 1)
}

func (g GlobalConfig) SetEndian(e Endian) GlobalConfig {
	return g&^gcfgEndian | GlobalConfig(e)<<1&gcfgEndian
}

func (g GlobalConfig) Enabled() bool {
	return g&gcfgEnable != 0
}

func (g GlobalConfig) SetEnabled(on bool) GlobalConfig {
	return g&^gcfgEnable | GlobalConfig(boolBit(on))
}
