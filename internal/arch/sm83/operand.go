package sm83

import "fmt"

// OperandKind describes the operand bytes that follow an opcode.
type OperandKind uint8

const (
	OperandNone   OperandKind = iota // no operand bytes
	OperandImm8                      // unsigned 8-bit immediate
	OperandDisp8                     // signed 8-bit displacement
	OperandAddr16                    // unsigned 16-bit immediate or address, little-endian
)

// Size returns the number of operand bytes.
func (k OperandKind) Size() int {
	switch k {
	case OperandImm8, OperandDisp8:
		return 1
	case OperandAddr16:
		return 2
	default:
		return 0
	}
}

// Placeholder returns the symbolic operand name used in unrendered mnemonics.
// Displacements are always rendered with a sign, the placeholder shows it.
func (k OperandKind) Placeholder() string {
	switch k {
	case OperandImm8:
		return "n"
	case OperandDisp8:
		return "+d"
	case OperandAddr16:
		return "nn"
	default:
		return ""
	}
}

// String implements fmt.Stringer.
func (k OperandKind) String() string {
	switch k {
	case OperandNone:
		return "none"
	case OperandImm8:
		return "imm8"
	case OperandDisp8:
		return "disp8"
	case OperandAddr16:
		return "addr16"
	default:
		return fmt.Sprintf("OperandKind(%d)", k)
	}
}

// Format formats the operand bytes. The caller guarantees that the slice length
// matches Size.
func (k OperandKind) Format(operand []byte) string {
	switch k {
	case OperandImm8:
		return fmt.Sprintf("$%02x", operand[0])
	case OperandDisp8:
		return fmt.Sprintf("%+d", int8(operand[0]))
	case OperandAddr16:
		return fmt.Sprintf("$%04x", Word(operand))
	default:
		return ""
	}
}

// Word combines two little-endian operand bytes into a 16-bit value.
func Word(operand []byte) uint16 {
	return uint16(operand[1])<<8 | uint16(operand[0])
}
