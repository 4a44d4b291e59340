package cpu

// Mode is an addressing mode, covering all 13 forms the 6502 supports.
type Mode int

const (
	ModeImplied Mode = iota
	ModeAccumulator
	ModeImmediate
	ModeZeroPage
	ModeZeroPageX
	ModeZeroPageY
	ModeAbsolute
	ModeAbsoluteX
	ModeAbsoluteY
	ModeIndirectX
	ModeIndirectY
	ModeIndirect // JMP only
	ModeRelative // branches only
)

// readZPWord reads a little-endian word from zero page, matching the documented 6502 quirk
// that a zero-page indirect pointer read at 0xFF wraps its high-byte fetch
// to 0x00 rather than crossing into page 1.
func (p *Chip) readZPWord(addr uint8) uint16 {
	lo := p.ram.Read(uint16(addr))
	hi := p.ram.Read(uint16(uint8(addr + 1)))
	return uint16(hi)<<8 | uint16(lo)
}

// resolveAddress consumes whatever operand bytes the given mode requires,
// advancing PC, and leaves the effective address in p.opAddr (for Immediate
// that is the address of the operand byte itself). p.pageCrossed is set if the effective
// address computation crossed a page boundary (only meaningful for
// AbsoluteX/AbsoluteY/IndirectY).
func (p *Chip) resolveAddress(m Mode) {
	switch m {
	case ModeImplied, ModeAccumulator:
		// Nothing to fetch.
	case ModeImmediate:
		p.opAddr = p.PC
		p.PC++
	case ModeZeroPage:
		p.opAddr = uint16(p.ram.Read(p.PC))
		p.PC++
	case ModeZeroPageX:
		p.opAddr = uint16(uint8(p.ram.Read(p.PC) + p.X))
		p.PC++
	case ModeZeroPageY:
		p.opAddr = uint16(uint8(p.ram.Read(p.PC) + p.Y))
		p.PC++
	case ModeAbsolute:
		p.opAddr = p.readWord(p.PC)
		p.PC += 2
	case ModeAbsoluteX:
		base := p.readWord(p.PC)
		p.PC += 2
		p.opAddr = base + uint16(p.X)
		p.pageCrossed = (base & 0xFF00) != (p.opAddr & 0xFF00)
	case ModeAbsoluteY:
		base := p.readWord(p.PC)
		p.PC += 2
		p.opAddr = base + uint16(p.Y)
		p.pageCrossed = (base & 0xFF00) != (p.opAddr & 0xFF00)
	case ModeIndirectX:
		ptr := p.ram.Read(p.PC)
		p.PC++
		p.opAddr = p.readZPWord(ptr + p.X)
	case ModeIndirectY:
		ptr := p.ram.Read(p.PC)
		p.PC++
		base := p.readZPWord(ptr)
		p.opAddr = base + uint16(p.Y)
		p.pageCrossed = (base & 0xFF00) != (p.opAddr & 0xFF00)
	case ModeIndirect:
		ptr := p.readWord(p.PC)
		p.PC += 2
		// Documented page-boundary bug: if the low byte of ptr is 0xFF the
		// high byte of the target is fetched from the same page, not the
		// next one.
		lo := p.ram.Read(ptr)
		var hi uint8
		if ptr&0x00FF == 0x00FF {
			hi = p.ram.Read(ptr & 0xFF00)
		} else {
			hi = p.ram.Read(ptr + 1)
		}
		p.opAddr = uint16(hi)<<8 | uint16(lo)
	}
}

// loadOperand reads the operand byte addressed by the most recent
// resolveAddress call (or the accumulator, for ModeAccumulator).
func (p *Chip) loadOperand(m Mode) uint8 {
	if m == ModeAccumulator {
		return p.A
	}
	return p.ram.Read(p.opAddr)
}
