// Package loader handles cartridge file loading operations.
package loader

import (
	"fmt"
	"io"
	"os"

	"github.com/retroenv/gbgodisasm/internal/cartridge"
	"github.com/retroenv/gbgodisasm/internal/detector"
)

// Loader handles loading cartridge files from disk.
type Loader struct{}

// New creates a new cartridge loader.
func New() *Loader {
	return &Loader{}
}

// Load loads the input file in the given format.
func (l *Loader) Load(path string, format detector.Format) (*cartridge.Cartridge, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	return l.load(file, format)
}

func (l *Loader) load(reader io.Reader, format detector.Format) (*cartridge.Cartridge, error) {
	var (
		cart *cartridge.Cartridge
		err  error
	)

	switch format {
	case detector.Cartridge:
		cart, err = cartridge.LoadFile(reader)
	default:
		cart, err = cartridge.LoadBuffer(reader)
	}
	if err != nil {
		return nil, fmt.Errorf("loading cartridge: %w", err)
	}
	return cart, nil
}
