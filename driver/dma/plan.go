package dma

import "errors"

// Transfer is one logical transfer request. Len is in bytes and must
// be a multiple of the session's source transfer width.
type Transfer struct {
	Src uint32
	Dst uint32
	Len int
}

const (
	// maxTransferSize is the largest count the 12-bit transfer size
	// field encodes.
	maxTransferSize = 1<<transferSizeBits - 1

	// maxChunkSize is the per-item chunk size: the largest 32-unit
	// multiple below maxTransferSize. The headroom left by rounding
	// down lets the planner fold a short trailing remainder into the
	// final chunk without overflowing the field.
	maxChunkSize = maxTransferSize &^ 31

	// mergeThreshold is the largest remainder that still fits when
	// folded into a maxChunkSize chunk.
	mergeThreshold = maxTransferSize - maxChunkSize
)

// ErrPoolExhausted is returned by Load when the requested transfers
// need more descriptor slots than the pool holds.
var ErrPoolExhausted = errors.New("dma: descriptor pool exhausted")

// Load plans transfers into pool and arms the channel with the
// resulting chain. It returns the number of descriptor slots consumed.
//
// Each transfer is split into chunks of at most maxChunkSize transfer
// units and the chunk runs are linked into one chain. Exactly one item
// of the finished chain, the last, ends the chain and raises the
// completion interrupt. If the pool is too small, Load returns
// ErrPoolExhausted before touching the channel's registers; slots
// already written stay internally consistent but the plan must be
// discarded.
//
// Load must not be called while a previous chain is in flight.
func (ch *Channel) Load(pool *Pool, transfers []Transfer) (int, error) {
	if len(transfers) == 0 {
		return 0, nil
	}
	unit := ch.template.SrcWidth().Bytes()
	step := uint32(maxChunkSize * unit)

	used := 0
	for i, t := range transfers {
		units := t.Len / unit
		chunks := units/maxChunkSize + 1
		rem := units % maxChunkSize
		// A near-empty trailing item is folded into its predecessor.
		if chunks > 1 && rem < mergeThreshold {
			chunks--
			rem += maxChunkSize
		}
		if used+chunks > pool.Cap() {
			return 0, ErrPoolExhausted
		}
		buildRun(pool, used, chunks, t.Src, t.Dst, step, ch.template, uint16(rem))
		if i > 0 {
			// Cross-transfer link: the previous run's last item no
			// longer ends the chain.
			prev := pool.Item(used - 1)
			prev.Next = pool.Addr(used)
			prev.Control = prev.Control.SetCompleteInterrupt(false)
		}
		used += chunks
	}

	// Arm: seed the live registers from the head item. The engine
	// follows Next for the rest of the chain.
	head := pool.Item(0)
	ch.regs.SrcAddr = head.Src
	ch.regs.DstAddr = head.Dst
	ch.regs.LLI = head.Next
	ch.regs.Control = head.Control
	return used, nil
}

// buildRun fills count slots starting at off with the chunk run of a
// single transfer and links them. The caller has checked the range.
//
// Items are linked with a one-step lag: slot i-1's Next is patched
// only after slot i is written, so every written slot is consistent at
// all times. The final slot carries the exact remainder length and the
// completion interrupt.
func buildRun(pool *Pool, off, count int, src, dst, step uint32, tmpl Control, lastLen uint16) {
	ctrl := tmpl.SetTransferSize(maxChunkSize).SetCompleteInterrupt(false)
	for i := 0; i < count; i++ {
		it := pool.Item(off + i)
		it.Src = src
		it.Dst = dst
		it.Next = 0
		if ctrl.SrcIncrement() {
			src += step
		}
		if ctrl.DstIncrement() {
			dst += step
		}
		if i == count-1 {
			ctrl = ctrl.SetTransferSize(lastLen).SetCompleteInterrupt(true)
		}
		if i != 0 {
			pool.Item(off + i - 1).Next = pool.Addr(off + i)
		}
		it.Control = ctrl
	}
}
