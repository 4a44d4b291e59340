// Package disassemble renders the documented 6502 opcode at a given address
// as assembler text, for the monitor's "i" (inspect) command.
package disassemble

import (
	"fmt"

	"github.com/pugo/oric-go/cpu"
	"github.com/pugo/oric-go/memory"
)

// Step disassembles the instruction at pc and returns its text along with
// the number of bytes it occupies (1-3). Undocumented opcodes render as
// "???" and are treated as single-byte so a caller scanning a range doesn't
// get stuck.
func Step(pc uint16, bank memory.Bank) (string, int) {
	op := bank.Read(pc)
	mnemonic, mode, _, documented := cpu.Opcode(op)
	if !documented {
		return fmt.Sprintf(".byte $%.2X  ; ???", op), 1
	}

	switch mode {
	case cpu.ModeImplied:
		return mnemonic, 1
	case cpu.ModeAccumulator:
		return mnemonic + " A", 1
	case cpu.ModeImmediate:
		return fmt.Sprintf("%s #$%.2X", mnemonic, bank.Read(pc+1)), 2
	case cpu.ModeZeroPage:
		return fmt.Sprintf("%s $%.2X", mnemonic, bank.Read(pc+1)), 2
	case cpu.ModeZeroPageX:
		return fmt.Sprintf("%s $%.2X,X", mnemonic, bank.Read(pc+1)), 2
	case cpu.ModeZeroPageY:
		return fmt.Sprintf("%s $%.2X,Y", mnemonic, bank.Read(pc+1)), 2
	case cpu.ModeAbsolute:
		return fmt.Sprintf("%s $%.4X", mnemonic, readWord(bank, pc+1)), 3
	case cpu.ModeAbsoluteX:
		return fmt.Sprintf("%s $%.4X,X", mnemonic, readWord(bank, pc+1)), 3
	case cpu.ModeAbsoluteY:
		return fmt.Sprintf("%s $%.4X,Y", mnemonic, readWord(bank, pc+1)), 3
	case cpu.ModeIndirectX:
		return fmt.Sprintf("%s ($%.2X,X)", mnemonic, bank.Read(pc+1)), 2
	case cpu.ModeIndirectY:
		return fmt.Sprintf("%s ($%.2X),Y", mnemonic, bank.Read(pc+1)), 2
	case cpu.ModeIndirect:
		return fmt.Sprintf("%s ($%.4X)", mnemonic, readWord(bank, pc+1)), 3
	case cpu.ModeRelative:
		offset := int8(bank.Read(pc + 1))
		target := uint16(int32(pc) + 2 + int32(offset))
		return fmt.Sprintf("%s $%.4X", mnemonic, target), 2
	}
	return mnemonic, 1
}

func readWord(bank memory.Bank, addr uint16) uint16 {
	lo := bank.Read(addr)
	hi := bank.Read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}
