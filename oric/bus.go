// Package oric wires a 6502, a VIA, an AY-3-8912 and a tape deck into one
// Oric-1/Atmos machine: the shared address space, the raster-paced
// machine loop, the keyboard matrix, and text-mode frame rendering.
package oric

import (
	"github.com/pugo/oric-go/memory"
	"github.com/pugo/oric-go/via"
)

// romBase marks the start of the ROM window; writes at or above this
// address are silently discarded.
const romBase = 0xC000

// viaLow/viaHigh bound the VIA's memory-mapped register window; reads and
// writes in this range bypass RAM entirely.
const (
	viaLow  = 0x0300
	viaHigh = 0x0400
)

// bus is the Oric's 64k address space: plain RAM everywhere except the VIA
// window and the ROM-protected top quarter.
type bus struct {
	ram        [65536]uint8
	via        *via.Chip
	databusVal uint8
}

func newBus(v *via.Chip) *bus {
	return &bus{via: v}
}

// Read implements memory.Bank.
func (b *bus) Read(addr uint16) uint8 {
	if addr >= viaLow && addr < viaHigh {
		b.databusVal = b.via.Read(via.Register(addr & 0x0F))
		return b.databusVal
	}
	b.databusVal = b.ram[addr]
	return b.databusVal
}

// Write implements memory.Bank. Addresses at or above romBase are
// read-only; writes within the VIA window [0x300,0x400) go to the VIA
// register only and leave the underlying RAM cell unchanged.
func (b *bus) Write(addr uint16, val uint8) {
	if addr >= romBase {
		return
	}
	b.databusVal = val
	if addr >= viaLow && addr < viaHigh {
		b.via.Write(via.Register(addr&0x0F), val)
		return
	}
	b.ram[addr] = val
}

// PowerOn implements memory.Bank.
func (b *bus) PowerOn() {
	for i := range b.ram {
		b.ram[i] = 0
	}
}

// Parent implements memory.Bank; bus is always the outermost level.
func (b *bus) Parent() memory.Bank { return nil }

// DatabusVal implements memory.Bank.
func (b *bus) DatabusVal() uint8 { return b.databusVal }

// readWordZP reads a little-endian word from zero page (the "read_word_zp"
// helper), wrapping the high-byte fetch from 0xFF to 0x00, without
// the operator-precedence bug in the original firmware (which evaluated
// `addr+1 & 0xff` as `addr + (1 & 0xff)`, effectively never wrapping).
func (b *bus) readWordZP(addr uint8) uint16 {
	lo := b.ram[addr]
	hi := b.ram[uint8(addr+1)]
	return uint16(hi)<<8 | uint16(lo)
}
