package sm83

import "fmt"

var rotTable = [8]string{"rlc", "rrc", "rl", "rr", "sla", "sra", "swap", "srl"}

var extendedOpcodes = buildExtendedTable()

// DecodeCB returns the instruction of the extended opcode table that follows a 0xCB
// prefix byte. All 256 values are defined.
func DecodeCB(op byte) Instruction {
	return extendedOpcodes[op]
}

func buildExtendedTable() [256]Instruction {
	var table [256]Instruction
	for i := range table {
		op := byte(i)
		reg := regTable[Z(op)]

		var template string
		switch X(op) {
		case 0:
			template = rotTable[Y(op)] + " " + reg
		case 1:
			template = fmt.Sprintf("bit %d,%s", Y(op), reg)
		case 2:
			template = fmt.Sprintf("res %d,%s", Y(op), reg)
		default:
			template = fmt.Sprintf("set %d,%s", Y(op), reg)
		}

		ins := newInstruction(op, template, OperandNone)
		ins.Extended = true
		table[i] = ins
	}
	return table
}
