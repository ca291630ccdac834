// command dmaxfer is the internal tool for exercising the DMA engines
// on real hardware. It performs a memory-to-memory transfer and
// verifies the result, or streams memory into the UART0 transmit FIFO
// and verifies the bytes on a host serial port wired to it.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/tarm/serial"

	"bouffalo.dev/hal/driver/dma"
	"bouffalo.dev/hal/soc/bl808"
)

var (
	engine    = flag.Int("engine", 0, "DMA engine (0-2)")
	channel   = flag.Int("channel", 0, "DMA channel (0-7)")
	size      = flag.Int("size", 64<<10, "bytes per transfer")
	transfers = flag.Int("transfers", 1, "number of logical transfers")
	slots     = flag.Int("slots", 64, "descriptor pool capacity")
	dump      = flag.String("dump", "", "write the built chain as CBOR to file")
	serialDev = flag.String("device", "", "serial device for UART loopback")
	baud      = flag.Int("baud", 2000000, "serial baud rate")
	timeout   = flag.Duration("timeout", 5*time.Second, "completion timeout")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "dmaxfer: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctrl, err := bl808.DMA(*engine)
	if err != nil {
		return err
	}
	pool, poolMem, err := bl808.AllocPool(*slots)
	if err != nil {
		return err
	}
	defer poolMem.Close()

	if *serialDev != "" {
		return uartLoopback(ctrl, pool)
	}
	return memToMem(ctrl, pool)
}

func memToMem(ctrl *dma.Controller, pool *dma.Pool) error {
	src, err := bl808.AllocBuf(*size * *transfers)
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := bl808.AllocBuf(*size * *transfers)
	if err != nil {
		return err
	}
	defer dst.Close()
	sb, db := src.Bytes(), dst.Bytes()
	for i := range sb {
		sb[i] = byte(i * 7)
	}
	for i := range db {
		db[i] = 0
	}

	ch, err := ctrl.Channel(uint8(*channel), dma.ChannelConfig{
		Direction:    dma.MemToMem,
		SrcRequest:   dma.NoRequest,
		DstRequest:   dma.NoRequest,
		SrcIncrement: true,
		DstIncrement: true,
		SrcBurst:     dma.Burst16,
		DstBurst:     dma.Burst16,
		SrcWidth:     dma.WidthWord,
		DstWidth:     dma.WidthWord,
	})
	if err != nil {
		return err
	}
	defer ch.Release()

	var reqs []dma.Transfer
	for i := 0; i < *transfers; i++ {
		off := uint32(i * *size)
		reqs = append(reqs, dma.Transfer{
			Src: uint32(src.PhysAddr()) + off,
			Dst: uint32(dst.PhysAddr()) + off,
			Len: *size,
		})
	}
	used, err := ch.Load(pool, reqs)
	if err != nil {
		return err
	}
	fmt.Printf("chain of %d descriptors for %d transfers\n", used, len(reqs))
	if *dump != "" {
		if err := dumpChain(pool, used); err != nil {
			return err
		}
	}

	start := time.Now()
	ch.Start()
	for !ch.Complete() {
		if ch.Err() {
			ch.Stop()
			return fmt.Errorf("transfer error after %v", time.Since(start))
		}
		if time.Since(start) > *timeout {
			ch.Stop()
			return fmt.Errorf("timeout after %v", *timeout)
		}
	}
	ch.Stop()
	ch.ClearComplete()

	if !bytes.Equal(sb[:*size**transfers], db[:*size**transfers]) {
		return fmt.Errorf("destination mismatch")
	}
	fmt.Printf("moved %d bytes in %v\n", *size**transfers, time.Since(start))
	return nil
}

func uartLoopback(ctrl *dma.Controller, pool *dma.Pool) error {
	msg, err := bl808.AllocBuf(*size)
	if err != nil {
		return err
	}
	defer msg.Close()
	mb := msg.Bytes()[:*size]
	for i := range mb {
		mb[i] = byte('A' + i%26)
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        *serialDev,
		Baud:        *baud,
		ReadTimeout: *timeout,
	})
	if err != nil {
		return err
	}
	defer port.Close()

	ch, err := ctrl.Channel(uint8(*channel), dma.ChannelConfig{
		Direction:    dma.MemToPeriph,
		SrcRequest:   dma.NoRequest,
		DstRequest:   dma.UART0Tx,
		SrcIncrement: true,
		DstIncrement: false,
		SrcBurst:     dma.Burst1,
		DstBurst:     dma.Burst1,
		SrcWidth:     dma.WidthByte,
		DstWidth:     dma.WidthByte,
	})
	if err != nil {
		return err
	}
	defer ch.Release()

	used, err := ch.Load(pool, []dma.Transfer{{
		Src: uint32(msg.PhysAddr()),
		Dst: dma.UART0TxData,
		Len: len(mb),
	}})
	if err != nil {
		return err
	}
	if *dump != "" {
		if err := dumpChain(pool, used); err != nil {
			return err
		}
	}

	start := time.Now()
	ch.Start()
	got := make([]byte, len(mb))
	n := 0
	for n < len(got) {
		m, err := port.Read(got[n:])
		if err != nil {
			ch.Stop()
			return fmt.Errorf("serial read after %d bytes: %w", n, err)
		}
		n += m
	}
	for !ch.Complete() && ch.Busy() {
		if time.Since(start) > *timeout {
			ch.Stop()
			return fmt.Errorf("timeout after %v", *timeout)
		}
	}
	ch.Stop()
	ch.ClearComplete()

	if !bytes.Equal(mb, got) {
		return fmt.Errorf("loopback mismatch")
	}
	fmt.Printf("looped %d bytes in %v\n", len(mb), time.Since(start))
	return nil
}

// chainDump is the offline inspection format for a built chain.
type chainDump struct {
	Engine  int         `cbor:"engine"`
	Channel int         `cbor:"channel"`
	Items   []chainItem `cbor:"items"`
}

type chainItem struct {
	Src      uint32 `cbor:"src"`
	Dst      uint32 `cbor:"dst"`
	Next     uint32 `cbor:"next"`
	Size     uint16 `cbor:"size"`
	Complete bool   `cbor:"complete"`
}

func dumpChain(pool *dma.Pool, used int) error {
	d := chainDump{Engine: *engine, Channel: *channel}
	for i := 0; i < used; i++ {
		it := pool.Item(i)
		d.Items = append(d.Items, chainItem{
			Src:      it.Src,
			Dst:      it.Dst,
			Next:     it.Next,
			Size:     it.Control.TransferSize(),
			Complete: it.Control.CompleteInterrupt(),
		})
	}
	b, err := cbor.Marshal(d)
	if err != nil {
		return err
	}
	return os.WriteFile(*dump, b, 0o644)
}
