package cpu

// opcodeEntry describes one byte of the 256-entry dispatch table. An entry
// with an empty Mnemonic marks an undocumented/illegal opcode, which Step
// reports as a fatal UndefinedOpcode rather than emulating.
type opcodeEntry struct {
	Mnemonic  string
	Mode      Mode
	Cycles    int
	PageCross bool // Extra cycle charged when the effective address crosses a page.
}

var opcodeTable [256]opcodeEntry

func def(op uint8, mnemonic string, mode Mode, cycles int, pageCross bool) {
	opcodeTable[op] = opcodeEntry{Mnemonic: mnemonic, Mode: mode, Cycles: cycles, PageCross: pageCross}
}

// Opcode returns the dispatch table entry for a raw opcode byte, including
// whether it's a documented (emulated) opcode. Exposed for the disassembler
// and monitor.
func Opcode(op uint8) (mnemonic string, mode Mode, cycles int, documented bool) {
	e := opcodeTable[op]
	return e.Mnemonic, e.Mode, e.Cycles, e.Mnemonic != ""
}

func init() {
	// Loads.
	def(0xA9, "LDA", ModeImmediate, 2, false)
	def(0xA5, "LDA", ModeZeroPage, 3, false)
	def(0xB5, "LDA", ModeZeroPageX, 4, false)
	def(0xAD, "LDA", ModeAbsolute, 4, false)
	def(0xBD, "LDA", ModeAbsoluteX, 4, true)
	def(0xB9, "LDA", ModeAbsoluteY, 4, true)
	def(0xA1, "LDA", ModeIndirectX, 6, false)
	def(0xB1, "LDA", ModeIndirectY, 5, true)

	def(0xA2, "LDX", ModeImmediate, 2, false)
	def(0xA6, "LDX", ModeZeroPage, 3, false)
	def(0xB6, "LDX", ModeZeroPageY, 4, false)
	def(0xAE, "LDX", ModeAbsolute, 4, false)
	def(0xBE, "LDX", ModeAbsoluteY, 4, true)

	def(0xA0, "LDY", ModeImmediate, 2, false)
	def(0xA4, "LDY", ModeZeroPage, 3, false)
	def(0xB4, "LDY", ModeZeroPageX, 4, false)
	def(0xAC, "LDY", ModeAbsolute, 4, false)
	def(0xBC, "LDY", ModeAbsoluteX, 4, true)

	// Stores.
	def(0x85, "STA", ModeZeroPage, 3, false)
	def(0x95, "STA", ModeZeroPageX, 4, false)
	def(0x8D, "STA", ModeAbsolute, 4, false)
	def(0x9D, "STA", ModeAbsoluteX, 5, false)
	def(0x99, "STA", ModeAbsoluteY, 5, false)
	def(0x81, "STA", ModeIndirectX, 6, false)
	def(0x91, "STA", ModeIndirectY, 6, false)

	def(0x86, "STX", ModeZeroPage, 3, false)
	def(0x96, "STX", ModeZeroPageY, 4, false)
	def(0x8E, "STX", ModeAbsolute, 4, false)

	def(0x84, "STY", ModeZeroPage, 3, false)
	def(0x94, "STY", ModeZeroPageX, 4, false)
	def(0x8C, "STY", ModeAbsolute, 4, false)

	// Transfers.
	def(0xAA, "TAX", ModeImplied, 2, false)
	def(0xA8, "TAY", ModeImplied, 2, false)
	def(0xBA, "TSX", ModeImplied, 2, false)
	def(0x8A, "TXA", ModeImplied, 2, false)
	def(0x9A, "TXS", ModeImplied, 2, false)
	def(0x98, "TYA", ModeImplied, 2, false)

	// Stack.
	def(0x48, "PHA", ModeImplied, 3, false)
	def(0x08, "PHP", ModeImplied, 3, false)
	def(0x68, "PLA", ModeImplied, 4, false)
	def(0x28, "PLP", ModeImplied, 4, false)

	// Logic.
	def(0x29, "AND", ModeImmediate, 2, false)
	def(0x25, "AND", ModeZeroPage, 3, false)
	def(0x35, "AND", ModeZeroPageX, 4, false)
	def(0x2D, "AND", ModeAbsolute, 4, false)
	def(0x3D, "AND", ModeAbsoluteX, 4, true)
	def(0x39, "AND", ModeAbsoluteY, 4, true)
	def(0x21, "AND", ModeIndirectX, 6, false)
	def(0x31, "AND", ModeIndirectY, 5, true)

	def(0x09, "ORA", ModeImmediate, 2, false)
	def(0x05, "ORA", ModeZeroPage, 3, false)
	def(0x15, "ORA", ModeZeroPageX, 4, false)
	def(0x0D, "ORA", ModeAbsolute, 4, false)
	def(0x1D, "ORA", ModeAbsoluteX, 4, true)
	def(0x19, "ORA", ModeAbsoluteY, 4, true)
	def(0x01, "ORA", ModeIndirectX, 6, false)
	def(0x11, "ORA", ModeIndirectY, 5, true)

	def(0x49, "EOR", ModeImmediate, 2, false)
	def(0x45, "EOR", ModeZeroPage, 3, false)
	def(0x55, "EOR", ModeZeroPageX, 4, false)
	def(0x4D, "EOR", ModeAbsolute, 4, false)
	def(0x5D, "EOR", ModeAbsoluteX, 4, true)
	def(0x59, "EOR", ModeAbsoluteY, 4, true)
	def(0x41, "EOR", ModeIndirectX, 6, false)
	def(0x51, "EOR", ModeIndirectY, 5, true)

	def(0x24, "BIT", ModeZeroPage, 3, false)
	def(0x2C, "BIT", ModeAbsolute, 4, false)

	// Arithmetic.
	def(0x69, "ADC", ModeImmediate, 2, false)
	def(0x65, "ADC", ModeZeroPage, 3, false)
	def(0x75, "ADC", ModeZeroPageX, 4, false)
	def(0x6D, "ADC", ModeAbsolute, 4, false)
	def(0x7D, "ADC", ModeAbsoluteX, 4, true)
	def(0x79, "ADC", ModeAbsoluteY, 4, true)
	def(0x61, "ADC", ModeIndirectX, 6, false)
	def(0x71, "ADC", ModeIndirectY, 5, true)

	def(0xE9, "SBC", ModeImmediate, 2, false)
	def(0xE5, "SBC", ModeZeroPage, 3, false)
	def(0xF5, "SBC", ModeZeroPageX, 4, false)
	def(0xED, "SBC", ModeAbsolute, 4, false)
	def(0xFD, "SBC", ModeAbsoluteX, 4, true)
	def(0xF9, "SBC", ModeAbsoluteY, 4, true)
	def(0xE1, "SBC", ModeIndirectX, 6, false)
	def(0xF1, "SBC", ModeIndirectY, 5, true)

	// Increment/decrement.
	def(0xE6, "INC", ModeZeroPage, 5, false)
	def(0xF6, "INC", ModeZeroPageX, 6, false)
	def(0xEE, "INC", ModeAbsolute, 6, false)
	def(0xFE, "INC", ModeAbsoluteX, 7, false)
	def(0xE8, "INX", ModeImplied, 2, false)
	def(0xC8, "INY", ModeImplied, 2, false)

	def(0xC6, "DEC", ModeZeroPage, 5, false)
	def(0xD6, "DEC", ModeZeroPageX, 6, false)
	def(0xCE, "DEC", ModeAbsolute, 6, false)
	def(0xDE, "DEC", ModeAbsoluteX, 7, false)
	def(0xCA, "DEX", ModeImplied, 2, false)
	def(0x88, "DEY", ModeImplied, 2, false)

	// Shifts.
	def(0x0A, "ASL", ModeAccumulator, 2, false)
	def(0x06, "ASL", ModeZeroPage, 5, false)
	def(0x16, "ASL", ModeZeroPageX, 6, false)
	def(0x0E, "ASL", ModeAbsolute, 6, false)
	def(0x1E, "ASL", ModeAbsoluteX, 7, false)

	def(0x4A, "LSR", ModeAccumulator, 2, false)
	def(0x46, "LSR", ModeZeroPage, 5, false)
	def(0x56, "LSR", ModeZeroPageX, 6, false)
	def(0x4E, "LSR", ModeAbsolute, 6, false)
	def(0x5E, "LSR", ModeAbsoluteX, 7, false)

	def(0x2A, "ROL", ModeAccumulator, 2, false)
	def(0x26, "ROL", ModeZeroPage, 5, false)
	def(0x36, "ROL", ModeZeroPageX, 6, false)
	def(0x2E, "ROL", ModeAbsolute, 6, false)
	def(0x3E, "ROL", ModeAbsoluteX, 7, false)

	def(0x6A, "ROR", ModeAccumulator, 2, false)
	def(0x66, "ROR", ModeZeroPage, 5, false)
	def(0x76, "ROR", ModeZeroPageX, 6, false)
	def(0x6E, "ROR", ModeAbsolute, 6, false)
	def(0x7E, "ROR", ModeAbsoluteX, 7, false)

	// Compares.
	def(0xC9, "CMP", ModeImmediate, 2, false)
	def(0xC5, "CMP", ModeZeroPage, 3, false)
	def(0xD5, "CMP", ModeZeroPageX, 4, false)
	def(0xCD, "CMP", ModeAbsolute, 4, false)
	def(0xDD, "CMP", ModeAbsoluteX, 4, true)
	def(0xD9, "CMP", ModeAbsoluteY, 4, true)
	def(0xC1, "CMP", ModeIndirectX, 6, false)
	def(0xD1, "CMP", ModeIndirectY, 5, true)

	def(0xE0, "CPX", ModeImmediate, 2, false)
	def(0xE4, "CPX", ModeZeroPage, 3, false)
	def(0xEC, "CPX", ModeAbsolute, 4, false)

	def(0xC0, "CPY", ModeImmediate, 2, false)
	def(0xC4, "CPY", ModeZeroPage, 3, false)
	def(0xCC, "CPY", ModeAbsolute, 4, false)

	// Branches (base cost 2; taken/page-cross penalties applied at execute time).
	def(0x90, "BCC", ModeRelative, 2, false)
	def(0xB0, "BCS", ModeRelative, 2, false)
	def(0xF0, "BEQ", ModeRelative, 2, false)
	def(0x30, "BMI", ModeRelative, 2, false)
	def(0xD0, "BNE", ModeRelative, 2, false)
	def(0x10, "BPL", ModeRelative, 2, false)
	def(0x50, "BVC", ModeRelative, 2, false)
	def(0x70, "BVS", ModeRelative, 2, false)

	// Jumps.
	def(0x4C, "JMP", ModeAbsolute, 3, false)
	def(0x6C, "JMP", ModeIndirect, 5, false)
	def(0x20, "JSR", ModeAbsolute, 6, false)
	def(0x60, "RTS", ModeImplied, 6, false)
	def(0x40, "RTI", ModeImplied, 6, false)

	// Flags.
	def(0x18, "CLC", ModeImplied, 2, false)
	def(0x38, "SEC", ModeImplied, 2, false)
	def(0xD8, "CLD", ModeImplied, 2, false)
	def(0xF8, "SED", ModeImplied, 2, false)
	def(0x58, "CLI", ModeImplied, 2, false)
	def(0x78, "SEI", ModeImplied, 2, false)
	def(0xB8, "CLV", ModeImplied, 2, false)

	// Misc.
	def(0x00, "BRK", ModeImplied, 7, false)
	def(0xEA, "NOP", ModeImplied, 2, false)
}
