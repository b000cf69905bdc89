package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/retroenv/gbgodisasm/internal/cartridge"
	"github.com/retroenv/gbgodisasm/internal/options"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestNew(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	assert.NotNil(t, p)
	assert.NotNil(t, p.logger)
	assert.NotNil(t, p.detector)
	assert.NotNil(t, p.loader)
}

// buildMinimalROM creates a 32 KB cartridge whose entry point jumps to $0150.
func buildMinimalROM() []byte {
	data := make([]byte, 2*cartridge.BankSize)
	copy(data[0x100:], []byte{0x00, 0xC3, 0x50, 0x01}) // nop, jp $0150
	copy(data[0x134:], "TEST")
	copy(data[0x150:], []byte{0x18, 0xFE}) // jr -2
	return data
}

func TestExecute(t *testing.T) {
	logger := log.NewTestLogger(t)
	p := New(logger)

	tmpFile := createTempFile(t, "test.gb", buildMinimalROM())

	t.Run("execute pipeline successfully", func(t *testing.T) {
		opts := options.Program{
			Parameters: options.Parameters{Input: tmpFile},
			Flags:      options.Flags{Debug: true, Verify: true},
		}

		var buf bytes.Buffer
		lines, err := p.Execute(context.Background(), opts, options.NewDisassembler(), &buf)
		assert.NoError(t, err)
		assert.NotEmpty(t, lines)

		output := buf.String()
		assert.True(t, strings.Contains(output, "; Title: TEST\n"))
		assert.True(t, strings.Contains(output, "jp _label_0150"))
		assert.True(t, strings.Contains(output, "\n_label_0150:\n  jr _label_0150"))
	})

	t.Run("execute with binary mode", func(t *testing.T) {
		opts := options.Program{
			Parameters: options.Parameters{Input: tmpFile},
			Flags:      options.Flags{Binary: true, Debug: true},
		}

		var buf bytes.Buffer
		lines, err := p.Execute(context.Background(), opts, options.NewDisassembler(), &buf)
		assert.NoError(t, err)
		assert.NotEmpty(t, lines)
		assert.False(t, strings.Contains(buf.String(), "; Title:"))
	})

	t.Run("execute with non-existent file", func(t *testing.T) {
		opts := options.Program{
			Parameters: options.Parameters{Input: "/nonexistent/file.gb"},
			Flags:      options.Flags{Quiet: true},
		}

		var buf bytes.Buffer
		_, err := p.Execute(context.Background(), opts, options.NewDisassembler(), &buf)
		assert.Error(t, err)
	})
}

func TestExecuteCancelled(t *testing.T) {
	p := New(log.NewTestLogger(t))

	cart, err := cartridge.New(buildMinimalROM())
	assert.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := options.Program{Flags: options.Flags{Quiet: true}}
	_, err = p.ExecuteWithCartridge(ctx, cart, opts, options.NewDisassembler(), &bytes.Buffer{})
	assert.ErrorContains(t, err, "context canceled")
}

func TestPrintInfo(t *testing.T) {
	large := make([]byte, 4*cartridge.BankSize)
	large[0x148] = 0x01

	short := buildMinimalROM()
	short[0x148] = 0x01

	tests := []struct {
		name     string
		data     []byte
		quiet    bool
		contains []string
		missing  []string
	}{
		{
			name:     "checksum mismatch",
			data:     buildMinimalROM(),
			contains: []string{"Processing Game Boy ROM", "TEST", "Header checksum mismatch"},
			missing:  []string{"ROM size does not match header"},
		},
		{
			name:     "rom size mismatch",
			data:     short,
			contains: []string{"ROM size does not match header"},
		},
		{
			name:     "banked cartridge",
			data:     large,
			contains: []string{"Banks above 1 are shown in the switchable window"},
			missing:  []string{"ROM size does not match header"},
		},
		{
			name:    "quiet mode",
			data:    buildMinimalROM(),
			quiet:   true,
			missing: []string{"Processing Game Boy ROM", "Header checksum mismatch"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			p := New(newBufferLogger(buf))

			cart, err := cartridge.New(tt.data)
			assert.NoError(t, err)

			opts := options.Program{Flags: options.Flags{Quiet: tt.quiet}}
			p.printInfo(opts, cart)

			output := buf.String()
			for _, s := range tt.contains {
				assert.True(t, strings.Contains(output, s), s)
			}
			for _, s := range tt.missing {
				assert.False(t, strings.Contains(output, s), s)
			}
		})
	}
}

func TestLogEntryPoint(t *testing.T) {
	buf := &bytes.Buffer{}
	cfg := log.DefaultConfig()
	cfg.Level = log.DebugLevel
	cfg.Output = buf
	p := New(log.NewWithConfig(cfg))

	cart, err := cartridge.New(buildMinimalROM())
	assert.NoError(t, err)
	p.logEntryPoint(cart)
	assert.True(t, strings.Contains(buf.String(), "Entry point"))
	assert.True(t, strings.Contains(buf.String(), "start"))

	buf.Reset()
	cart, err = cartridge.New(make([]byte, 2*cartridge.BankSize))
	assert.NoError(t, err)
	p.logEntryPoint(cart)
	assert.True(t, strings.Contains(buf.String(), "does not jump to an absolute address"))
}

func newBufferLogger(buf *bytes.Buffer) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Output = buf
	return log.NewWithConfig(cfg)
}

func createTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	return tmpFile
}
