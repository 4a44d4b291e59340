// Package cpu implements the MOS 6502 as used in the Oric-1/Atmos: full
// addressing-mode dispatch, page-cross cycle accounting, BCD arithmetic and
// IRQ/NMI/RESET vectoring. Undocumented opcodes are not emulated; executing
// one is a fatal condition (see UndefinedOpcode) so that gaps in coverage
// show up immediately instead of silently behaving like a NOP.
package cpu

import (
	"fmt"

	"github.com/pugo/oric-go/irq"
	"github.com/pugo/oric-go/memory"
)

// Status register bit masks.
const (
	PNegative  = uint8(0x80)
	POverflow  = uint8(0x40)
	PUnused    = uint8(0x20) // Always reads 1.
	PBreak     = uint8(0x10) // Only set in the copy of P pushed by BRK.
	PDecimal   = uint8(0x08)
	PInterrupt = uint8(0x04)
	PZero      = uint8(0x02)
	PCarry     = uint8(0x01)
)

// Vectors.
const (
	NMIVector   = uint16(0xFFFA)
	ResetVector = uint16(0xFFFC)
	IRQVector   = uint16(0xFFFE)
)

// InvalidCPUState is returned for internal precondition failures that can
// only happen if the emulator is wired or built wrongly (a nil Ram passed to
// Init, an opcode table entry with no execute case).
type InvalidCPUState struct {
	Reason string
}

func (e InvalidCPUState) Error() string {
	return fmt.Sprintf("invalid CPU state: %s", e.Reason)
}

// UndefinedOpcode is raised whenever the fetched opcode is not one of the
// 151 documented 6502 opcodes. The design favors failing fast over treating
// unknown bytes as a NOP so that test coverage gaps surface immediately.
type UndefinedOpcode struct {
	PC uint16
	Op uint8
}

func (e UndefinedOpcode) Error() string {
	return fmt.Sprintf("undefined opcode 0x%.2X at PC 0x%.4X", e.Op, e.PC)
}

// Chip holds the full register and control state of one 6502.
type Chip struct {
	A, X, Y uint8
	S       uint8
	P       uint8
	PC      uint16

	ram memory.Bank
	irq irq.Sender
	nmi irq.Sender

	cycles int // Monotonic count of cycles executed since power on.

	quiet bool // If true Debug() emits nothing (observability only flag).

	nmiLatched bool // Edge-latched: true once since the last NMI was serviced.

	brk bool // Set on the most recently executed instruction if it was BRK.

	// working state for the instruction currently being decoded; kept on
	// the struct (rather than threaded through every helper) to mirror the
	// teacher's opVal/opAddr fields used across addressing and execute.
	opAddr      uint16
	opVal       uint8
	pageCrossed bool
}

// ChipDef defines the pieces needed to create a 6502.
type ChipDef struct {
	// Ram is the memory bank the CPU executes against.
	Ram memory.Bank
	// Irq is an optional IRQ source, checked at each instruction boundary.
	Irq irq.Sender
	// Nmi is an optional NMI source. Edge triggered: a NMI is serviced once
	// per rising transition even though the real hardware reports it as a
	// level.
	Nmi irq.Sender
	// Quiet disables Debug() output.
	Quiet bool
}

// State is a point-in-time snapshot of the CPU's architectural registers,
// used by the monitor and by tests.
type State struct {
	A, X, Y, S, P uint8
	PC            uint16
	Cycles        int
}

// Init returns a powered-on 6502.
func Init(def *ChipDef) (*Chip, error) {
	if def.Ram == nil {
		return nil, InvalidCPUState{"Ram must be non-nil"}
	}
	p := &Chip{
		ram:   def.Ram,
		irq:   def.Irq,
		nmi:   def.Nmi,
		quiet: def.Quiet,
	}
	p.Reset()
	return p, nil
}

// Reset clears the CPU to its documented post-reset state: S is moved down
// by 3 (as if P/PC were pushed without actually writing them), interrupts
// are disabled, and PC is loaded from the reset vector.
func (p *Chip) Reset() {
	p.A, p.X, p.Y = 0, 0, 0
	p.S = 0xFD
	p.P = PUnused | PInterrupt
	p.PC = p.readWord(ResetVector)
	p.cycles = 0
	p.nmiLatched = false
	p.brk = false
}

// Snapshot returns the current architectural state.
func (p *Chip) Snapshot() State {
	return State{A: p.A, X: p.X, Y: p.Y, S: p.S, P: p.P, PC: p.PC, Cycles: p.cycles}
}

// Cycles returns the running total of cycles executed since Reset.
func (p *Chip) Cycles() int {
	return p.cycles
}

// BrkFired reports whether the most recently executed instruction was BRK,
// matching the "brk fired" signal the machine loop uses to drop into the
// monitor.
func (p *Chip) BrkFired() bool {
	return p.brk
}

// Debug returns a one-line register dump, or "" if Quiet was set at Init.
func (p *Chip) Debug() string {
	if p.quiet {
		return ""
	}
	return fmt.Sprintf("PC=%.4X A=%.2X X=%.2X Y=%.2X S=%.2X P=%.2X cyc=%d", p.PC, p.A, p.X, p.Y, p.S, p.P, p.cycles)
}

func (p *Chip) readWord(addr uint16) uint16 {
	lo := p.ram.Read(addr)
	hi := p.ram.Read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

func (p *Chip) push(v uint8) {
	p.ram.Write(0x0100|uint16(p.S), v)
	p.S--
}

func (p *Chip) pop() uint8 {
	p.S++
	return p.ram.Read(0x0100 | uint16(p.S))
}

// IRQ services a maskable interrupt immediately if the I flag is clear and
// returns its cost (7 cycles); with I set it does nothing and returns 0.
//
// NOTE: in this design IRQ level state is owned by the irq.Sender passed at
// Init (normally the VIA), which Step samples at every instruction boundary
// and keeps pending (level sensitive) until I is cleared; this method exists
// only so callers that don't wire a Sender can drive one interrupt manually.
func (p *Chip) IRQ() (cycles int) {
	if p.P&PInterrupt != 0 {
		return 0
	}
	return p.runInterrupt(IRQVector, false)
}

// NMI unconditionally vectors through 0xFFFA.
func (p *Chip) NMI() (cycles int) {
	return p.runInterrupt(NMIVector, false)
}

func (p *Chip) runInterrupt(vector uint16, brk bool) int {
	p.push(uint8(p.PC >> 8))
	p.push(uint8(p.PC))
	flags := p.P &^ PBreak
	if brk {
		flags |= PBreak
	}
	flags |= PUnused
	p.push(flags)
	p.P |= PInterrupt
	p.PC = p.readWord(vector)
	return 7
}

// Step executes exactly one instruction to completion and returns the
// number of cycles it actually took (base cost plus any page-cross or
// branch-taken penalty). Interrupts are sampled at the instruction boundary
// before the opcode fetch: a pending NMI always wins over a pending IRQ,
// and an IRQ is only taken if the I flag is clear.
func (p *Chip) Step() (int, error) {
	if nmi := p.nmi != nil && p.nmi.Raised(); nmi && !p.nmiLatched {
		p.nmiLatched = true
		c := p.runInterrupt(NMIVector, false)
		p.cycles += c
		return c, nil
	}
	if p.nmi != nil && !p.nmi.Raised() {
		p.nmiLatched = false
	}
	if p.irq != nil && p.irq.Raised() && p.P&PInterrupt == 0 {
		c := p.runInterrupt(IRQVector, false)
		p.cycles += c
		return c, nil
	}

	p.brk = false
	opPC := p.PC
	op := p.ram.Read(p.PC)
	p.PC++

	entry := opcodeTable[op]
	if entry.Mnemonic == "" {
		return 0, UndefinedOpcode{PC: opPC, Op: op}
	}

	p.pageCrossed = false
	if entry.Mode != ModeRelative {
		p.resolveAddress(entry.Mode)
	}

	cycles := entry.Cycles
	if entry.PageCross && p.pageCrossed {
		cycles++
	}

	extra, err := p.execute(entry, op)
	if err != nil {
		return 0, err
	}
	cycles += extra

	p.cycles += cycles
	return cycles, nil
}
