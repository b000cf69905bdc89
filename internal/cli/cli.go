// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/retroenv/gbgodisasm/internal/options"
)

// ParseFlags parses command line flags and returns program and disassembler options
func ParseFlags() (options.Program, options.Disassembler, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	var opts options.Program
	disasmOptions := options.NewDisassembler()
	readOptionFlags(flags, &opts)
	noHexComments, noOffsets, noHexDump, noLabels := readDisasmOptionFlags(flags)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Batch == "") {
		return opts, options.Disassembler{}, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, options.Disassembler{}, err
	}

	if opts.Batch == "" {
		opts.Input = args[0]
	}

	disasmOptions.HexComments = !*noHexComments
	disasmOptions.OffsetComments = !*noOffsets
	disasmOptions.HexDump = !*noHexDump
	disasmOptions.Labels = !*noLabels
	disasmOptions.Binary = opts.Binary

	if err := validateOptionCombinations(opts); err != nil {
		return opts, options.Disassembler{}, err
	}

	return opts, disasmOptions, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: gbgodisasm [options] <file to disassemble>\n\n")
	if e.msg != "" {
		fmt.Printf("%s\n\n", e.msg)
	}
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after file to disassemble, please pass the file to disassemble as last argument", arg),
			}
		}
	}
	return nil
}

// validateOptionCombinations rejects options that can not be used together
func validateOptionCombinations(opts options.Program) error {
	if opts.Debug && opts.Quiet {
		return errors.New("debug and quiet mode can not be combined")
	}
	if opts.Batch != "" && opts.Output != "" {
		return errors.New("output file name can not be set in batch mode, names are derived from the input files")
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Output, "o", "", "name of the output .asm file, printed on console if no name given")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask and automatically .asm file naming, for example *.gb")
	flags.BoolVar(&opts.Binary, "binary", false, "read input file as raw binary file without any header")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Verify, "verify", false, "verify that the listing covers every byte of the input")
}

func readDisasmOptionFlags(flags *flag.FlagSet) (noHexComments, noOffsets, noHexDump, noLabels *bool) {
	noHexComments = flags.Bool("nohexcomments", false, "do not output opcode bytes as hex values in comments")
	noOffsets = flags.Bool("nooffsets", false, "do not output offsets in comments")
	noHexDump = flags.Bool("nohexdump", false, "do not output the raw hex view before the listing")
	noLabels = flags.Bool("nolabels", false, "do not name branch destinations")
	return noHexComments, noOffsets, noHexDump, noLabels
}
