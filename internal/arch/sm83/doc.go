// Package sm83 provides Sharp SM83 (Game Boy CPU) instruction decoding for the disassembler.
//
// # Opcode Layout
//
// The SM83 is derived from the Z80 and shares its octal opcode structure. Every opcode byte
// is split into the fields used by the published Z80 decoding tables:
//
//	x = bits 7-6
//	y = bits 5-3
//	z = bits 2-0
//	p = y >> 1
//	q = y & 1
//
// The primary table is built from these fields. Opcodes where the Game Boy deviates from
// the Z80 (no shadow registers, no index registers, no port I/O, extra high page loads and
// stack pointer arithmetic) are listed explicitly in an exception table which always takes
// precedence over the regular field rules.
//
// # Instruction Set
//
//   - Primary table: 256 opcodes, 11 of them undefined, 0xCB selects the extended table
//   - Extended table: 256 opcodes after a 0xCB prefix, rotate/shift and bit operations
//   - Instructions are 1 to 3 bytes long, operands follow the opcode in little-endian order
//
// # Operands
//
// Operands are described by a small tagged kind instead of free-form text:
//   - OperandImm8: unsigned 8-bit immediate, rendered as $xx
//   - OperandDisp8: signed 8-bit displacement, rendered as signed decimal
//   - OperandAddr16: 16-bit immediate or address, rendered as $xxxx
//
// # Usage Example
//
//	ins := sm83.Decode(0xC3)
//	text, err := ins.Render([]byte{0x34, 0x12})
//	// text == "jp $1234"
//
// Both tables are built once at package initialization, decoding is an array lookup.
package sm83
