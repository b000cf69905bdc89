package sm83

// X returns bits 7-6 of the opcode.
func X(op byte) byte { return op >> 6 }

// Y returns bits 5-3 of the opcode.
func Y(op byte) byte { return op >> 3 & 0b111 }

// Z returns bits 2-0 of the opcode.
func Z(op byte) byte { return op & 0b111 }

// P returns the upper 2 bits of Y.
func P(op byte) byte { return Y(op) >> 1 }

// Q returns the lowest bit of Y.
func Q(op byte) byte { return Y(op) & 0b1 }
