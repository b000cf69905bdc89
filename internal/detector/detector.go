// Package detector handles input format detection.
package detector

import (
	"path/filepath"
	"strings"

	"github.com/retroenv/gbgodisasm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Format is the layout of an input file.
type Format string

const (
	// Cartridge is a Game Boy cartridge image with a header at $0100.
	Cartridge Format = "cartridge"
	// Binary is raw SM83 code without a header.
	Binary Format = "binary"
)

func (f Format) String() string {
	return string(f)
}

// Detector handles input format detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new format detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the input format. The binary option takes precedence over
// the file extension.
func (d *Detector) Detect(opts options.Program) Format {
	if opts.Binary {
		return Binary
	}

	format := d.detectFromFile(opts.Input)
	d.logger.Debug("Auto-detected format",
		log.Stringer("format", format),
		log.String("file", opts.Input))
	return format
}

func (d *Detector) detectFromFile(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".gb", ".gbc", ".sgb", ".cgb":
		return Cartridge
	default:
		return Binary
	}
}
