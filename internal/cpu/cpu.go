// Package cpu contains the SM83 register state as it is after power up.
// It does not execute instructions, the disassembler uses it to locate the
// cartridge entry point.
package cpu

// EntryPoint is the address the boot ROM hands control to.
const EntryPoint = 0x0100

// jumpCycles is the number of clock cycles of a jp nn.
const jumpCycles = 16

// State is the register file of the CPU. Values are copied, every state
// transformation returns a new State.
type State struct {
	A, F uint8
	B, C uint8
	D, E uint8
	H, L uint8

	SP uint16
	PC uint16

	Cycles uint64 // clock cycles since reset
}

// New returns the register state of a DMG after the boot ROM finished.
func New() State {
	return State{
		A:  0x01,
		F:  0xB0,
		B:  0x00,
		C:  0x13,
		D:  0x00,
		E:  0xD8,
		H:  0x01,
		L:  0x4D,
		SP: 0xFFFE,
		PC: EntryPoint,
	}
}

// HL returns the combined H and L registers.
func (s State) HL() uint16 {
	return uint16(s.H)<<8 | uint16(s.L)
}

// Jump returns the state after a jp nn with the little-endian operand bytes low and high.
func (s State) Jump(low, high uint8) State {
	s.PC = uint16(high)<<8 | uint16(low)
	s.Cycles += jumpCycles
	return s
}
