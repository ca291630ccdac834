package dma

// TransferWidth selects the unit of data moved per transfer beat.
// Descriptor transfer sizes are counted in these units, not bytes.
type TransferWidth uint8

const (
	WidthByte TransferWidth = iota
	WidthHalfWord
	WidthWord
	WidthDoubleWord
)

// Bytes returns the unit size in bytes.
func (w TransferWidth) Bytes() int {
	return 1 << w
}

func (w TransferWidth) String() string {
	switch w {
	case WidthByte:
		return "byte"
	case WidthHalfWord:
		return "half-word"
	case WidthWord:
		return "word"
	case WidthDoubleWord:
		return "double-word"
	default:
		return "unknown"
	}
}

// BurstSize selects how many units are moved per bus request.
type BurstSize uint8

const (
	Burst1 BurstSize = iota
	Burst4
	Burst8
	Burst16
)

// Units returns the number of transfer units per burst.
func (b BurstSize) Units() int {
	switch b {
	case Burst1:
		return 1
	case Burst4:
		return 4
	case Burst8:
		return 8
	default:
		return 16
	}
}

// Mode is the flow control mode of a channel.
type Mode uint8

const (
	MemToMem Mode = iota
	MemToPeriph
	PeriphToMem
	PeriphToPeriph
	PeriphToPeriphByDst
	MemToPeriphByPeriph
	PeriphToMemByPeriph
	PeriphToPeriphBySrc
)

// Peripheral identifies a hardware request line. The line numbering
// differs between DMA0/DMA1 and DMA2; constants for both sets follow.
type Peripheral uint8

// NoRequest marks a side without a peripheral request line, such as
// plain memory.
const NoRequest Peripheral = 0xff

// Request lines for DMA0 and DMA1.
const (
	UART0Rx Peripheral = iota
	UART0Tx
	UART1Rx
	UART1Tx
	UART2Rx
	UART2Tx
	I2C0Rx
	I2C0Tx
	IRTx
	GPIOTx
	SPI0Rx
	SPI0Tx
	AudioRx
	AudioTx
	I2C1Rx
	I2C1Tx
	I2SRx
	I2STx
	PDMRx
)

const (
	GPADC Peripheral = 22
	GPDAC Peripheral = 23
)

// Request lines for DMA2.
const (
	UART3Rx Peripheral = 0
	UART3Tx Peripheral = 1
	SPI1Rx  Peripheral = 2
	SPI1Tx  Peripheral = 3
	I2C2Rx  Peripheral = 6
	I2C2Tx  Peripheral = 7
	I2C3Rx  Peripheral = 8
	I2C3Tx  Peripheral = 9
	DSIRx   Peripheral = 10
	DSITx   Peripheral = 11
	DBITx   Peripheral = 22
)

// Peripheral FIFO data register addresses, for the fixed-address side
// of peripheral transfers.
const (
	UART0TxData uint32 = 0x2000A000 + 0x88
	UART0RxData uint32 = 0x2000A000 + 0x8C
	UART1TxData uint32 = 0x2000A100 + 0x88
	UART1RxData uint32 = 0x2000A100 + 0x8C
	UART2TxData uint32 = 0x2000AA00 + 0x88
	UART2RxData uint32 = 0x2000AA00 + 0x8C
	UART3TxData uint32 = 0x30002000 + 0x88
	UART3RxData uint32 = 0x30002000 + 0x8C
	I2C0TxData  uint32 = 0x2000A300 + 0x88
	I2C0RxData  uint32 = 0x2000A300 + 0x8C
	I2C1TxData  uint32 = 0x2000A900 + 0x88
	I2C1RxData  uint32 = 0x2000A900 + 0x8C
	I2C2TxData  uint32 = 0x30003000 + 0x88
	I2C2RxData  uint32 = 0x30003000 + 0x8C
	I2C3TxData  uint32 = 0x30004000 + 0x88
	I2C3RxData  uint32 = 0x30004000 + 0x8C
	SPI0TxData  uint32 = 0x2000A200 + 0x88
	SPI0RxData  uint32 = 0x2000A200 + 0x8C
	SPI1TxData  uint32 = 0x30008000 + 0x88
	SPI1RxData  uint32 = 0x30008000 + 0x8C
	I2STxData   uint32 = 0x2000AB00 + 0x88
	I2SRxData   uint32 = 0x2000AB00 + 0x8C
	ADCRxData   uint32 = 0x20002000 + 0x04
	DACTxData   uint32 = 0x20002000 + 0x48
	IRTxData    uint32 = 0x2000A600 + 0x88
	WOTxData    uint32 = 0x20000000 + 0xB04
)

// Control is the packed control word of a linked list item, and of the
// channel control register that seeds it.
type Control uint32

const (
	ctlCompleteIRQ  Control = 1 << 31
	ctlDstIncrement Control = 1 << 27
	ctlSrcIncrement Control = 1 << 26
	ctlFixedCount   Control = 0x7 << 23
	ctlDstWidth     Control = 0x3 << 21
	ctlSrcWidth     Control = 0x3 << 18
	ctlDstAddMode   Control = 1 << 17
	ctlDstBurst     Control = 0x3 << 15
	ctlDstMinMode   Control = 1 << 14
	ctlSrcBurst     Control = 0x3 << 12

	transferSizeBits         = 12
	ctlTransferSize  Control = 1<<transferSizeBits - 1
)

// CompleteInterrupt reports whether the completion interrupt fires when
// this item finishes.
func (c Control) CompleteInterrupt() bool {
	return c&ctlCompleteIRQ != 0
}

func (c Control) SetCompleteInterrupt(on bool) Control {
	return c&^ctlCompleteIRQ | boolBit(on)<<31
}

// DstIncrement reports whether the destination address advances after
// every unit.
func (c Control) DstIncrement() bool {
	return c&ctlDstIncrement != 0
}

func (c Control) SetDstIncrement(on bool) Control {
	return c&^ctlDstIncrement | boolBit(on)<<27
}

// SrcIncrement reports whether the source address advances after every
// unit.
func (c Control) SrcIncrement() bool {
	return c&ctlSrcIncrement != 0
}

func (c Control) SetSrcIncrement(on bool) Control {
	return c&^ctlSrcIncrement | boolBit(on)<<26
}

// FixedCount is the number of transfers issued before address
// incrementing begins.
func (c Control) FixedCount() uint8 {
	return uint8(c & ctlFixedCount >> 23)
}

func (c Control) SetFixedCount(n uint8) Control {
	return c&^ctlFixedCount | Control(n)<<23&ctlFixedCount
}

func (c Control) DstWidth() TransferWidth {
	return TransferWidth(c & ctlDstWidth >> 21)
}

func (c Control) SetDstWidth(w TransferWidth) Control {
	return c&^ctlDstWidth | Control(w)<<21&ctlDstWidth
}

func (c Control) SrcWidth() TransferWidth {
	return TransferWidth(c & ctlSrcWidth >> 18)
}

func (c Control) SetSrcWidth(w TransferWidth) Control {
	return c&^ctlSrcWidth | Control(w)<<18&ctlSrcWidth
}

// DstAddMode reports whether remaining destination traffic is issued.
func (c Control) DstAddMode() bool {
	return c&ctlDstAddMode != 0
}

func (c Control) SetDstAddMode(on bool) Control {
	return c&^ctlDstAddMode | boolBit(on)<<17
}

func (c Control) DstBurst() BurstSize {
	return BurstSize(c & ctlDstBurst >> 15)
}

func (c Control) SetDstBurst(b BurstSize) Control {
	return c&^ctlDstBurst | Control(b)<<15&ctlDstBurst
}

// DstMinMode reports whether destination traffic is held back to the
// minimum.
func (c Control) DstMinMode() bool {
	return c&ctlDstMinMode != 0
}

func (c Control) SetDstMinMode(on bool) Control {
	return c&^ctlDstMinMode | boolBit(on)<<14
}

func (c Control) SrcBurst() BurstSize {
	return BurstSize(c & ctlSrcBurst >> 12)
}

func (c Control) SetSrcBurst(b BurstSize) Control {
	return c&^ctlSrcBurst | Control(b)<<12&ctlSrcBurst
}

// TransferSize is the item's length counted in source transfer units.
func (c Control) TransferSize() uint16 {
	return uint16(c & ctlTransferSize)
}

func (c Control) SetTransferSize(n uint16) Control {
	return c&^ctlTransferSize | Control(n)&ctlTransferSize
}

// Config is the packed channel configuration word.
type Config uint32

const (
	cfgLLICount    Config = 0x3ff << 20
	cfgHalt        Config = 1 << 18
	cfgActive      Config = 1 << 17
	cfgLock        Config = 1 << 16
	cfgCompleteIRQ Config = 1 << 15
	cfgErrIRQ      Config = 1 << 14
	cfgMode        Config = 0x7 << 11
	cfgDstPeriph   Config = 0x1f << 6
	cfgSrcPeriph   Config = 0x1f << 1
	cfgEnable      Config = 1 << 0
)

// LLICount is the hardware's count of fetched linked list items.
// Read-only; writes to the field are ignored by hardware.
func (c Config) LLICount() uint16 {
	return uint16(c & cfgLLICount >> 20)
}

// Halted reports whether the channel ignores further requests and
// drains its FIFO.
func (c Config) Halted() bool {
	return c&cfgHalt != 0
}

func (c Config) SetHalted(on bool) Config {
	return c&^cfgHalt | Config(boolBit(on))<<18
}

// FIFOActive reports whether data remains in the channel FIFO.
func (c Config) FIFOActive() bool {
	return c&cfgActive != 0
}

func (c Config) Locked() bool {
	return c&cfgLock != 0
}

func (c Config) SetLocked(on bool) Config {
	return c&^cfgLock | Config(boolBit(on))<<16
}

func (c Config) CompleteInterrupt() bool {
	return c&cfgCompleteIRQ != 0
}

func (c Config) SetCompleteInterrupt(on bool) Config {
	return c&^cfgCompleteIRQ | Config(boolBit(on))<<15
}

func (c Config) ErrInterrupt() bool {
	return c&cfgErrIRQ != 0
}

func (c Config) SetErrInterrupt(on bool) Config {
	return c&^cfgErrIRQ | Config(boolBit(on))<<14
}

func (c Config) Mode() Mode {
	return Mode(c & cfgMode >> 11)
}

func (c Config) SetMode(m Mode) Config {
	return c&^cfgMode | Config(m)<<11&cfgMode
}

func (c Config) DstPeripheral() Peripheral {
	return Peripheral(c & cfgDstPeriph >> 6)
}

func (c Config) SetDstPeripheral(p Peripheral) Config {
	return c&^cfgDstPeriph | Config(p)<<6&cfgDstPeriph
}

func (c Config) SrcPeripheral() Peripheral {
	return Peripheral(c & cfgSrcPeriph >> 1)
}

func (c Config) SetSrcPeripheral(p Peripheral) Config {
	return c&^cfgSrcPeriph | Config(p)<<1&cfgSrcPeriph
}

func (c Config) Enabled() bool {
	return c&cfgEnable != 0
}

func (c Config) SetEnabled(on bool) Config {
	return c&^cfgEnable | Config(boolBit(on))
}

// ChannelConfig is the immutable per-session configuration. It seeds
// every descriptor's control word once at session start.
type ChannelConfig struct {
	Direction    Mode
	SrcRequest   Peripheral // NoRequest for memory
	DstRequest   Peripheral // NoRequest for memory
	SrcIncrement bool
	DstIncrement bool
	SrcBurst     BurstSize
	DstBurst     BurstSize
	SrcWidth     TransferWidth
	DstWidth     TransferWidth
}

// control derives the session's descriptor seed word: widths, bursts
// and increment flags set, transfer size zero, interrupt off.
func (c ChannelConfig) control() Control {
	return Control(0).
		SetSrcIncrement(c.SrcIncrement).
		SetDstIncrement(c.DstIncrement).
		SetSrcWidth(c.SrcWidth).
		SetDstWidth(c.DstWidth).
		SetSrcBurst(c.SrcBurst).
		SetDstBurst(c.DstBurst)
}

func boolBit(on bool) Control {
	if on {
		return 1
	}
	return 0
}
