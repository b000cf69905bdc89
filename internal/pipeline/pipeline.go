// Package pipeline orchestrates the disassembly workflow stages.
package pipeline

import (
	"context"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"
	"github.com/retroenv/gbgodisasm/internal/arch/sm83"
	"github.com/retroenv/gbgodisasm/internal/cartridge"
	"github.com/retroenv/gbgodisasm/internal/cpu"
	"github.com/retroenv/gbgodisasm/internal/detector"
	"github.com/retroenv/gbgodisasm/internal/disasm"
	"github.com/retroenv/gbgodisasm/internal/loader"
	"github.com/retroenv/gbgodisasm/internal/options"
	"github.com/retroenv/gbgodisasm/internal/verification"
	"github.com/retroenv/retrogolib/log"
)

// entryCodeSize is the size of the code area between the entry point and the logo.
const entryCodeSize = 4

// Pipeline orchestrates the complete disassembly workflow.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new disassembly pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute runs the complete disassembly pipeline.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, disasmOpts options.Disassembler,
	writer io.Writer) ([]disasm.Line, error) {

	format := p.detector.Detect(opts)

	cart, err := p.loader.Load(opts.Input, format)
	if err != nil {
		return nil, fmt.Errorf("loading cartridge: %w", err)
	}

	return p.ExecuteWithCartridge(ctx, cart, opts, disasmOpts, writer)
}

// ExecuteWithCartridge runs the disassembly pipeline with a pre-loaded cartridge.
func (p *Pipeline) ExecuteWithCartridge(ctx context.Context, cart *cartridge.Cartridge, opts options.Program,
	disasmOpts options.Disassembler, writer io.Writer) ([]disasm.Line, error) {

	disasmOpts.Binary = cart.Header == nil

	p.printInfo(opts, cart)
	if opts.Debug && cart.Header != nil {
		p.logger.Debug("Cartridge header", log.String("header", spew.Sdump(cart.Header)))
	}
	p.logEntryPoint(cart)

	dis := disasm.New(p.logger, cart, disasmOpts)
	lines, err := dis.Process(ctx, writer)
	if err != nil {
		return nil, fmt.Errorf("disassembling: %w", err)
	}

	if opts.Verify {
		if err := verification.VerifyCoverage(p.logger, cart.Data, lines); err != nil {
			return nil, fmt.Errorf("verification failed: %w", err)
		}
		p.logger.Info("Verification successful")
	}

	return lines, nil
}

// logEntryPoint logs the address that the entry point code jumps to.
func (p *Pipeline) logEntryPoint(cart *cartridge.Cartridge) {
	if cart.Header == nil {
		return
	}

	state := cpu.New()
	start := int(state.PC)
	code := cart.Data[start : start+entryCodeSize]

	for line := range disasm.Lines(code) {
		ins := line.Instruction
		if line.Kind != disasm.LineInstruction || ins.Flow != sm83.FlowJump || ins.Operand != sm83.OperandAddr16 {
			continue
		}

		next := state.Jump(line.Bytes[1], line.Bytes[2])
		p.logger.Debug("Entry point",
			log.Hex("entry", state.PC),
			log.Hex("start", next.PC),
			log.Hex("sp", next.SP),
			log.Hex("hl", next.HL()))
		return
	}

	p.logger.Debug("Entry point does not jump to an absolute address",
		log.Hex("entry", state.PC))
}

// printInfo prints information about the ROM being processed.
func (p *Pipeline) printInfo(opts options.Program, cart *cartridge.Cartridge) {
	if opts.Quiet {
		return
	}

	header := cart.Header
	if header == nil {
		p.logger.Info("Processing raw binary",
			log.String("file", opts.Input),
			log.Int("size", len(cart.Data)))
		return
	}

	p.logger.Info("Processing Game Boy ROM",
		log.String("file", opts.Input),
		log.String("title", header.Title),
		log.String("hardware", header.HardwareType()),
	)

	if !cart.HeaderChecksumValid() {
		p.logger.Warn("Header checksum mismatch", log.Uint8("checksum", header.HeaderChecksum))
	}

	size, err := header.ROMSize()
	switch {
	case err != nil:
		p.logger.Warn("Unknown ROM size", log.Err(err))
	case size != len(cart.Data):
		p.logger.Warn("ROM size does not match header",
			log.Int("header", size),
			log.Int("file", len(cart.Data)))
	}

	if len(cart.Data) > 2*cartridge.BankSize {
		p.logger.Warn("Banks above 1 are shown in the switchable window, branch targets resolve within the source bank")
	}
}
