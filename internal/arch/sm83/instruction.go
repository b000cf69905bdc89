package sm83

import (
	"fmt"
	"strings"
)

// FlowKind classifies how an instruction changes the program counter.
type FlowKind uint8

const (
	FlowNone     FlowKind = iota
	FlowJump              // absolute jump, conditional or not
	FlowRelative          // relative jump by a signed displacement
	FlowCall              // subroutine call, conditional or not
	FlowReturn            // return from subroutine or interrupt
	FlowRestart           // rst to a fixed vector
)

// Instruction describes a decoded opcode of either the primary or the extended table.
type Instruction struct {
	Opcode   byte
	Template string      // mnemonic, contains a single %s where the operand is rendered
	Operand  OperandKind // kind of the operand bytes following the opcode
	Size     int         // opcode plus operand bytes, the CB lead byte is not included
	Flow     FlowKind

	Prefix   bool // opcode is the 0xCB lead byte of an extended instruction
	Extended bool // instruction is part of the CB table
	Valid    bool
}

func newInstruction(op byte, template string, operand OperandKind) Instruction {
	return Instruction{
		Opcode:   op,
		Template: template,
		Operand:  operand,
		Size:     1 + operand.Size(),
		Valid:    true,
	}
}

func (ins Instruction) withFlow(flow FlowKind) Instruction {
	ins.Flow = flow
	return ins
}

// Mnemonic returns the instruction text with the operand shown by its placeholder name,
// for example "ld a,n".
func (ins Instruction) Mnemonic() string {
	if !ins.Valid {
		return invalidMnemonic
	}
	if ins.Operand == OperandNone {
		return ins.Template
	}
	return fmt.Sprintf(ins.Template, ins.Operand.Placeholder())
}

// Render returns the instruction text with the operand bytes substituted.
func (ins Instruction) Render(operand []byte) (string, error) {
	if !ins.Valid {
		return "", fmt.Errorf("opcode $%02x is not a valid instruction", ins.Opcode)
	}
	if len(operand) != ins.Operand.Size() {
		return "", fmt.Errorf("opcode $%02x expects %d operand bytes but got %d",
			ins.Opcode, ins.Operand.Size(), len(operand))
	}
	if ins.Operand == OperandNone {
		return ins.Template, nil
	}
	return fmt.Sprintf(ins.Template, ins.Operand.Format(operand)), nil
}

// Name returns the instruction name without operands.
func (ins Instruction) Name() string {
	name, _, _ := strings.Cut(ins.Mnemonic(), " ")
	return name
}

// Target returns the destination address of a control flow instruction that is located
// at the given address. Returns false for instructions without a static destination.
func (ins Instruction) Target(address uint16, operand []byte) (uint16, bool) {
	if len(operand) != ins.Operand.Size() {
		return 0, false
	}

	switch ins.Flow {
	case FlowJump, FlowCall:
		if ins.Operand != OperandAddr16 {
			return 0, false // jp hl
		}
		return Word(operand), true

	case FlowRelative:
		next := address + uint16(ins.Size)
		return next + uint16(int8(operand[0])), true

	case FlowRestart:
		return uint16(ins.Opcode & 0b00111000), true

	default:
		return 0, false
	}
}
