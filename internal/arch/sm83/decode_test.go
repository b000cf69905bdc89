package sm83

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

var undefinedOpcodes = []byte{0xD3, 0xDB, 0xDD, 0xE3, 0xE4, 0xEB, 0xEC, 0xED, 0xF4, 0xFC, 0xFD}

func TestFields(t *testing.T) {
	op := byte(0b11_010_001)
	assert.Equal(t, byte(3), X(op))
	assert.Equal(t, byte(2), Y(op))
	assert.Equal(t, byte(1), Z(op))
	assert.Equal(t, byte(1), P(op))
	assert.Equal(t, byte(0), Q(op))

	for i := range 256 {
		op := byte(i)
		assert.Equal(t, op, X(op)<<6|Y(op)<<3|Z(op))
		assert.Equal(t, Y(op), P(op)<<1|Q(op))
	}
}

func TestDecodeTotal(t *testing.T) {
	undefined := map[byte]bool{}
	for _, op := range undefinedOpcodes {
		undefined[op] = true
	}

	var prefixes int
	for i := range 256 {
		op := byte(i)
		ins := Decode(op)
		assert.Equal(t, op, ins.Opcode)
		assert.Equal(t, !undefined[op], ins.Valid)
		assert.False(t, ins.Extended)

		if ins.Valid {
			assert.True(t, ins.Size >= 1 && ins.Size <= 3)
			assert.Equal(t, 1+ins.Operand.Size(), ins.Size)
		}
		if ins.Prefix {
			prefixes++
		}
	}
	assert.Equal(t, 1, prefixes)
	assert.True(t, Decode(PrefixCB).Prefix)
	assert.Equal(t, 1, Decode(PrefixCB).Size)
}

func TestDecodeCBTotal(t *testing.T) {
	for i := range 256 {
		op := byte(i)
		ins := DecodeCB(op)
		assert.True(t, ins.Valid)
		assert.True(t, ins.Extended)
		assert.False(t, ins.Prefix)
		assert.Equal(t, 1, ins.Size)
		assert.Equal(t, OperandNone, ins.Operand)
	}
}

func TestDecodeMnemonics(t *testing.T) {
	tests := []struct {
		op       byte
		expected string
		size     int
	}{
		{0x00, "nop", 1},
		{0x01, "ld bc,nn", 3},
		{0x02, "ld (bc),a", 1},
		{0x08, "ld (nn),sp", 3},
		{0x09, "add hl,bc", 1},
		{0x0A, "ld a,(bc)", 1},
		{0x0B, "dec bc", 1},
		{0x10, "stop n", 2},
		{0x18, "jr +d", 2},
		{0x20, "jr nz,+d", 2},
		{0x22, "ld (hl+),a", 1},
		{0x2F, "cpl", 1},
		{0x31, "ld sp,nn", 3},
		{0x34, "inc (hl)", 1},
		{0x38, "jr c,+d", 2},
		{0x3A, "ld a,(hl-)", 1},
		{0x3E, "ld a,n", 2},
		{0x40, "ld b,b", 1},
		{0x76, "halt", 1},
		{0x7E, "ld a,(hl)", 1},
		{0x86, "add a,(hl)", 1},
		{0x90, "sub b", 1},
		{0x9F, "sbc a,a", 1},
		{0xAF, "xor a", 1},
		{0xBE, "cp (hl)", 1},
		{0xC0, "ret nz", 1},
		{0xC1, "pop bc", 1},
		{0xC3, "jp nn", 3},
		{0xC4, "call nz,nn", 3},
		{0xC6, "add a,n", 2},
		{0xC9, "ret", 1},
		{0xCD, "call nn", 3},
		{0xCF, "rst $08", 1},
		{0xD9, "reti", 1},
		{0xDA, "jp c,nn", 3},
		{0xE0, "ld ($ff00+n),a", 2},
		{0xE2, "ld ($ff00+c),a", 1},
		{0xE8, "add sp,+d", 2},
		{0xE9, "jp hl", 1},
		{0xEA, "ld (nn),a", 3},
		{0xF0, "ld a,($ff00+n)", 2},
		{0xF3, "di", 1},
		{0xF5, "push af", 1},
		{0xF8, "ld hl,sp+d", 2},
		{0xF9, "ld sp,hl", 1},
		{0xFA, "ld a,(nn)", 3},
		{0xFB, "ei", 1},
		{0xFE, "cp n", 2},
		{0xFF, "rst $38", 1},
	}

	for _, tt := range tests {
		ins := Decode(tt.op)
		assert.Equal(t, tt.expected, ins.Mnemonic())
		assert.Equal(t, tt.size, ins.Size)
	}
}

func TestDecodeCBMnemonics(t *testing.T) {
	tests := []struct {
		op       byte
		expected string
	}{
		{0x00, "rlc b"},
		{0x07, "rlc a"},
		{0x08, "rrc b"},
		{0x16, "rl (hl)"},
		{0x1F, "rr a"},
		{0x20, "sla b"},
		{0x2E, "sra (hl)"},
		{0x37, "swap a"},
		{0x38, "srl b"},
		{0x40, "bit 0,b"},
		{0x7E, "bit 7,(hl)"},
		{0x87, "res 0,a"},
		{0xB0, "res 6,b"},
		{0xC8, "set 1,b"},
		{0xFF, "set 7,a"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, DecodeCB(tt.op).Mnemonic())
	}
}

func TestExceptionsOverrideFieldRules(t *testing.T) {
	for op, ins := range exceptions {
		assert.Equal(t, ins, Decode(op))
	}

	// every opcode outside of the exception table is described by the field rules
	for i := range 256 {
		op := byte(i)
		if _, ok := exceptions[op]; ok {
			continue
		}
		_, ok := decodeFields(op)
		assert.True(t, ok)
	}
}

func TestInvalidMnemonic(t *testing.T) {
	for _, op := range undefinedOpcodes {
		ins := Decode(op)
		assert.False(t, ins.Valid)
		assert.Equal(t, invalidMnemonic, ins.Mnemonic())

		_, err := ins.Render(nil)
		assert.Error(t, err)
	}
}
