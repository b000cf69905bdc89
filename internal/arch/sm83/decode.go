package sm83

import "fmt"

// PrefixCB is the lead byte that selects the extended opcode table.
const PrefixCB = 0xCB

const (
	invalidMnemonic = "[invalid instruction]"
	prefixMnemonic  = "prefix cb"
)

var (
	regTable  = [8]string{"b", "c", "d", "e", "h", "l", "(hl)", "a"}
	rpTable   = [4]string{"bc", "de", "hl", "sp"}
	rp2Table  = [4]string{"bc", "de", "hl", "af"}
	condTable = [4]string{"nz", "z", "nc", "c"}
	aluTable  = [8]string{"add a,", "adc a,", "sub ", "sbc a,", "and ", "xor ", "or ", "cp "}
	accTable  = [8]string{"rlca", "rrca", "rla", "rra", "daa", "cpl", "scf", "ccf"}
)

// exceptions lists the opcodes that do not follow the regular field pattern, mostly
// places where the Game Boy replaced or dropped a Z80 instruction. Entries here take
// precedence over the field rules.
var exceptions = map[byte]Instruction{
	0x08: newInstruction(0x08, "ld (%s),sp", OperandAddr16),
	0x10: newInstruction(0x10, "stop %s", OperandImm8), // 2 bytes, the CPU skips the byte after stop
	0x22: newInstruction(0x22, "ld (hl+),a", OperandNone),
	0x2A: newInstruction(0x2A, "ld a,(hl+)", OperandNone),
	0x32: newInstruction(0x32, "ld (hl-),a", OperandNone),
	0x3A: newInstruction(0x3A, "ld a,(hl-)", OperandNone),
	0x76: newInstruction(0x76, "halt", OperandNone),

	0xCB: prefixInstruction(),
	0xD9: newInstruction(0xD9, "reti", OperandNone).withFlow(FlowReturn),

	0xE0: newInstruction(0xE0, "ld ($ff00+%s),a", OperandImm8),
	0xE2: newInstruction(0xE2, "ld ($ff00+c),a", OperandNone),
	0xE8: newInstruction(0xE8, "add sp,%s", OperandDisp8),
	0xEA: newInstruction(0xEA, "ld (%s),a", OperandAddr16),
	0xF0: newInstruction(0xF0, "ld a,($ff00+%s)", OperandImm8),
	0xF2: newInstruction(0xF2, "ld a,($ff00+c)", OperandNone),
	0xF8: newInstruction(0xF8, "ld hl,sp%s", OperandDisp8),
	0xFA: newInstruction(0xFA, "ld a,(%s)", OperandAddr16),

	// no port I/O, exchange or index register prefixes and conditions po/pe/p/m
	0xD3: invalidInstruction(0xD3),
	0xDB: invalidInstruction(0xDB),
	0xDD: invalidInstruction(0xDD),
	0xE3: invalidInstruction(0xE3),
	0xE4: invalidInstruction(0xE4),
	0xEB: invalidInstruction(0xEB),
	0xEC: invalidInstruction(0xEC),
	0xED: invalidInstruction(0xED),
	0xF4: invalidInstruction(0xF4),
	0xFC: invalidInstruction(0xFC),
	0xFD: invalidInstruction(0xFD),
}

var opcodes = buildOpcodeTable()

// Decode returns the instruction of the primary opcode table. The result is always
// defined, undefined opcodes are returned with Valid set to false.
func Decode(op byte) Instruction {
	return opcodes[op]
}

func buildOpcodeTable() [256]Instruction {
	var table [256]Instruction
	for i := range table {
		op := byte(i)
		if ins, ok := exceptions[op]; ok {
			table[i] = ins
			continue
		}

		ins, ok := decodeFields(op)
		if !ok {
			panic(fmt.Sprintf("opcode $%02x is not covered by any decoding rule", op))
		}
		table[i] = ins
	}
	return table
}

func invalidInstruction(op byte) Instruction {
	return Instruction{
		Opcode:   op,
		Template: invalidMnemonic,
	}
}

func prefixInstruction() Instruction {
	return Instruction{
		Opcode:   PrefixCB,
		Template: prefixMnemonic,
		Size:     1,
		Prefix:   true,
		Valid:    true,
	}
}

// decodeFields decodes an opcode by its x/y/z/p/q fields. It returns false for
// opcodes that only the exception table describes.
func decodeFields(op byte) (Instruction, bool) {
	switch X(op) {
	case 0:
		return decodeBlock0(op)
	case 1:
		if Y(op) == 6 && Z(op) == 6 {
			return Instruction{}, false // halt
		}
		return newInstruction(op, "ld "+regTable[Y(op)]+","+regTable[Z(op)], OperandNone), true
	case 2:
		return newInstruction(op, aluTable[Y(op)]+regTable[Z(op)], OperandNone), true
	default:
		return decodeBlock3(op)
	}
}

func decodeBlock0(op byte) (Instruction, bool) {
	y, p, q := Y(op), P(op), Q(op)

	switch Z(op) {
	case 0:
		switch {
		case y == 0:
			return newInstruction(op, "nop", OperandNone), true
		case y == 3:
			return newInstruction(op, "jr %s", OperandDisp8).withFlow(FlowRelative), true
		case y >= 4:
			return newInstruction(op, "jr "+condTable[y-4]+",%s", OperandDisp8).withFlow(FlowRelative), true
		}

	case 1:
		if q == 0 {
			return newInstruction(op, "ld "+rpTable[p]+",%s", OperandAddr16), true
		}
		return newInstruction(op, "add hl,"+rpTable[p], OperandNone), true

	case 2:
		if p > 1 {
			break // hl+ and hl- forms
		}
		if q == 0 {
			return newInstruction(op, "ld ("+rpTable[p]+"),a", OperandNone), true
		}
		return newInstruction(op, "ld a,("+rpTable[p]+")", OperandNone), true

	case 3:
		if q == 0 {
			return newInstruction(op, "inc "+rpTable[p], OperandNone), true
		}
		return newInstruction(op, "dec "+rpTable[p], OperandNone), true

	case 4:
		return newInstruction(op, "inc "+regTable[y], OperandNone), true

	case 5:
		return newInstruction(op, "dec "+regTable[y], OperandNone), true

	case 6:
		return newInstruction(op, "ld "+regTable[y]+",%s", OperandImm8), true

	case 7:
		return newInstruction(op, accTable[y], OperandNone), true
	}

	return Instruction{}, false
}

func decodeBlock3(op byte) (Instruction, bool) {
	y, p, q := Y(op), P(op), Q(op)

	switch Z(op) {
	case 0:
		if y < 4 {
			return newInstruction(op, "ret "+condTable[y], OperandNone).withFlow(FlowReturn), true
		}

	case 1:
		if q == 0 {
			return newInstruction(op, "pop "+rp2Table[p], OperandNone), true
		}
		switch p {
		case 0:
			return newInstruction(op, "ret", OperandNone).withFlow(FlowReturn), true
		case 2:
			return newInstruction(op, "jp hl", OperandNone).withFlow(FlowJump), true
		case 3:
			return newInstruction(op, "ld sp,hl", OperandNone), true
		}

	case 2:
		if y < 4 {
			return newInstruction(op, "jp "+condTable[y]+",%s", OperandAddr16).withFlow(FlowJump), true
		}

	case 3:
		switch y {
		case 0:
			return newInstruction(op, "jp %s", OperandAddr16).withFlow(FlowJump), true
		case 6:
			return newInstruction(op, "di", OperandNone), true
		case 7:
			return newInstruction(op, "ei", OperandNone), true
		}

	case 4:
		if y < 4 {
			return newInstruction(op, "call "+condTable[y]+",%s", OperandAddr16).withFlow(FlowCall), true
		}

	case 5:
		if q == 0 {
			return newInstruction(op, "push "+rp2Table[p], OperandNone), true
		}
		if p == 0 {
			return newInstruction(op, "call %s", OperandAddr16).withFlow(FlowCall), true
		}

	case 6:
		return newInstruction(op, aluTable[y]+"%s", OperandImm8), true

	case 7:
		return newInstruction(op, fmt.Sprintf("rst $%02x", y*8), OperandNone).withFlow(FlowRestart), true
	}

	return Instruction{}, false
}
