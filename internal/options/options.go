// Package options contains the program options.
package options

// Parameters contains file path options.
type Parameters struct {
	Input  string
	Output string
	Batch  string
}

// Flags contains behavior options.
type Flags struct {
	Binary bool
	Verify bool
	Debug  bool
	Quiet  bool
}

// Program options of the disassembler.
type Program struct {
	Parameters
	Flags
}

// Disassembler defines options to control the disassembler output.
type Disassembler struct {
	Binary         bool // input has no cartridge header
	HexComments    bool
	HexDump        bool // output the raw hex view before the listing
	Labels         bool // name branch destinations and reference them by name
	OffsetComments bool
}

// NewDisassembler returns a new options instance with default options.
func NewDisassembler() Disassembler {
	return Disassembler{
		HexComments:    true,
		HexDump:        true,
		Labels:         true,
		OffsetComments: true,
	}
}
