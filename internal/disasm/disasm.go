// Package disasm implements the linear sweep disassembler for SM83 code.
package disasm

import (
	"context"
	"fmt"
	"io"
	"iter"
	"slices"

	"github.com/retroenv/gbgodisasm/internal/arch/sm83"
	"github.com/retroenv/gbgodisasm/internal/cartridge"
	"github.com/retroenv/gbgodisasm/internal/options"
	"github.com/retroenv/gbgodisasm/internal/writer"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

const (
	invalidText   = "[invalid instruction]"
	truncatedText = "[truncated instruction at end of buffer]"
)

// LineKind classifies a disassembly line.
type LineKind uint8

const (
	LineInstruction LineKind = iota
	LineInvalid
	LineTruncated
)

func (k LineKind) String() string {
	switch k {
	case LineInstruction:
		return "instruction"
	case LineInvalid:
		return "invalid"
	case LineTruncated:
		return "truncated"
	default:
		return fmt.Sprintf("LineKind(%d)", k)
	}
}

// Line is one unit of disassembly output.
type Line struct {
	Offset int
	Bytes  []byte // consumed bytes, a sub slice of the input buffer
	Text   string
	Kind   LineKind

	Instruction sm83.Instruction // descriptor of the last decoded byte, the CB table entry for extended instructions
	Target      int              // branch destination address, -1 if the line does not branch statically
}

// Lines returns a sequence of disassembly lines for the buffer. Every iteration starts
// again at the beginning of the buffer, the caller can stop at any line.
func Lines(code []byte) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		for i := 0; i < len(code); {
			line := decodeLine(code, i)
			if !yield(line) {
				return
			}
			i += len(line.Bytes)
		}
	}
}

// Disassemble returns all lines of the buffer.
func Disassemble(code []byte) []Line {
	return slices.Collect(Lines(code))
}

func decodeLine(code []byte, offset int) Line {
	ins := sm83.Decode(code[offset])

	line := Line{
		Offset:      offset,
		Instruction: ins,
		Target:      -1,
	}

	switch {
	case !ins.Valid:
		line.Bytes = code[offset : offset+1]
		line.Text = invalidText
		line.Kind = LineInvalid
		return line

	case ins.Prefix:
		if offset+2 > len(code) {
			return truncated(line, code)
		}
		line.Instruction = sm83.DecodeCB(code[offset+1])
		line.Bytes = code[offset : offset+2]
		line.Text = line.Instruction.Mnemonic()
		return line
	}

	end := offset + ins.Size
	if end > len(code) {
		return truncated(line, code)
	}

	operand := code[offset+1 : end]
	text, err := ins.Render(operand)
	if err != nil {
		panic(fmt.Sprintf("rendering opcode $%02x: %v", ins.Opcode, err)) // operand length is checked above
	}

	line.Bytes = code[offset:end]
	line.Text = text
	if target, ok := ins.Target(Address(offset), operand); ok {
		line.Target = int(target)
	}
	return line
}

func truncated(line Line, code []byte) Line {
	line.Bytes = code[line.Offset:]
	line.Text = truncatedText
	line.Kind = LineTruncated
	return line
}

// Address returns the CPU address that a file offset is mapped to. Bank 0 is fixed at
// $0000, every other bank is shown in the switchable window at $4000.
func Address(offset int) uint16 {
	if offset < cartridge.BankSize {
		return uint16(offset)
	}
	return uint16(cartridge.BankSize + offset%cartridge.BankSize)
}

// Disasm writes the listing of a cartridge.
type Disasm struct {
	logger  *log.Logger
	options options.Disassembler
	cart    *cartridge.Cartridge

	branchDestinations set.Set[int] // file offsets of all instructions that are branched to
	callDestinations   set.Set[int] // subset of branchDestinations that are called
	labelCount         int
}

// New creates a new disassembler for the cartridge.
func New(logger *log.Logger, cart *cartridge.Cartridge, options options.Disassembler) *Disasm {
	return &Disasm{
		logger:             logger,
		options:            options,
		cart:               cart,
		branchDestinations: set.New[int](),
		callDestinations:   set.New[int](),
	}
}

// Process disassembles the cartridge and writes the output. It returns the lines
// of the listing.
func (dis *Disasm) Process(ctx context.Context, w io.Writer) ([]Line, error) {
	var lines []Line
	for line := range Lines(dis.cart.Data) {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("disassembling offset $%04x: %w", line.Offset, err)
		}
		lines = append(lines, line)
	}

	if dis.options.Labels {
		dis.processJumpDestinations(lines)
	}
	dis.logStatistics(lines)

	wr := writer.New(w, writer.Options{
		HexComments:    dis.options.HexComments,
		OffsetComments: dis.options.OffsetComments,
	})

	if !dis.options.Binary {
		if err := wr.WriteCommentHeader(dis.cart); err != nil {
			return nil, fmt.Errorf("writing header: %w", err)
		}
	}
	if dis.options.HexDump {
		if err := wr.HexDump(dis.cart.Data); err != nil {
			return nil, fmt.Errorf("writing hex dump: %w", err)
		}
	}

	if err := dis.writeListing(ctx, wr, lines); err != nil {
		return nil, err
	}
	return lines, nil
}

func (dis *Disasm) writeListing(ctx context.Context, wr *writer.Writer, lines []Line) error {
	for i, line := range lines {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("writing offset $%04x: %w", line.Offset, err)
		}

		if name, ok := dis.labelName(line.Offset); ok {
			if err := wr.WriteLabel(name, i == 0); err != nil {
				return fmt.Errorf("writing label: %w", err)
			}
		}

		codeLine := writer.CodeLine{
			Offset: line.Offset,
			Data:   line.Bytes,
			Code:   dis.lineCode(line),
		}
		if line.Target >= 0 {
			codeLine.Note = fmt.Sprintf("-> $%04x", line.Target)
		}

		if err := wr.WriteCodeLine(codeLine); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}
	return nil
}

// lineCode returns the text of the line, with the branch destination replaced by its
// label name if it has one.
func (dis *Disasm) lineCode(line Line) string {
	ins := line.Instruction
	if line.Target < 0 || ins.Flow == sm83.FlowRestart {
		return line.Text
	}

	offset, ok := targetOffset(line.Offset, line.Target, len(dis.cart.Data))
	if !ok {
		return line.Text
	}
	name, ok := dis.labelName(offset)
	if !ok {
		return line.Text
	}
	return fmt.Sprintf(ins.Template, name)
}

func (dis *Disasm) labelName(offset int) (string, bool) {
	switch {
	case dis.callDestinations.Contains(offset):
		return fmt.Sprintf(funcNaming, offset), true
	case dis.branchDestinations.Contains(offset):
		return fmt.Sprintf(labelNaming, offset), true
	default:
		return "", false
	}
}

func (dis *Disasm) logStatistics(lines []Line) {
	var invalid, truncated int
	for _, line := range lines {
		switch line.Kind {
		case LineInvalid:
			invalid++
		case LineTruncated:
			truncated++
		}
	}

	dis.logger.Debug("Disassembly finished",
		log.Int("lines", len(lines)),
		log.Int("invalid", invalid),
		log.Int("truncated", truncated),
		log.Int("labels", dis.labelCount))
}
