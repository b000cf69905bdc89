package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/gbgodisasm/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestParseFlags_DisasmOptions(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want options.Disassembler
	}{
		{
			name: "default flags",
			args: []string{"prog", "tetris.gb"},
			want: options.Disassembler{HexComments: true, OffsetComments: true, HexDump: true, Labels: true},
		},
		{
			name: "nohexcomments flag",
			args: []string{"prog", "-nohexcomments", "tetris.gb"},
			want: options.Disassembler{OffsetComments: true, HexDump: true, Labels: true},
		},
		{
			name: "nooffsets flag",
			args: []string{"prog", "-nooffsets", "tetris.gb"},
			want: options.Disassembler{HexComments: true, HexDump: true, Labels: true},
		},
		{
			name: "binary without hex dump and labels",
			args: []string{"prog", "-binary", "-nohexdump", "-nolabels", "boot.bin"},
			want: options.Disassembler{Binary: true, HexComments: true, OffsetComments: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			opts, got, err := ParseFlags()
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.args[len(tt.args)-1], opts.Input)
		})
	}
}

func TestParseFlags_Usage(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"prog"}
	_, _, err := ParseFlags()

	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))

	os.Args = []string{"prog", "tetris.gb", "-q"}
	_, _, err = ParseFlags()
	assert.True(t, errors.As(err, &usageErr))
	assert.ErrorContains(t, err, "-q found after file")
}

func TestValidateOptionCombinations(t *testing.T) {
	tests := []struct {
		name        string
		opts        options.Program
		expectError bool
	}{
		{
			name:        "no conflict",
			opts:        options.Program{},
			expectError: false,
		},
		{
			name: "verify only",
			opts: options.Program{
				Flags: options.Flags{Verify: true},
			},
			expectError: false,
		},
		{
			name: "debug and quiet conflict",
			opts: options.Program{
				Flags: options.Flags{Debug: true, Quiet: true},
			},
			expectError: true,
		},
		{
			name: "batch with output file",
			opts: options.Program{
				Parameters: options.Parameters{Batch: "*.gb", Output: "out.asm"},
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateOptionCombinations(tt.opts)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
