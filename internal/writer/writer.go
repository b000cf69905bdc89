// Package writer implements the assembly listing and hex view output.
package writer

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/gbgodisasm/internal/cartridge"
)

const dataBytesPerLine = 16

// Writer implements the listing output functionality.
type Writer struct {
	options Options
	writer  io.Writer
}

// Options of the writer.
type Options struct {
	HexComments    bool
	OffsetComments bool
}

// CodeLine is a single line of code of the listing.
type CodeLine struct {
	Offset int
	Data   []byte // raw bytes that the line represents
	Code   string
	Note   string // optional comment that is appended after offset and hex comments
}

// New creates a new writer.
func New(writer io.Writer, options Options) *Writer {
	return &Writer{
		options: options,
		writer:  writer,
	}
}

// HexDump writes the data as uppercase hex pairs, dataBytesPerLine bytes per line.
func (w Writer) HexDump(data []byte) error {
	buf := &strings.Builder{}

	for i := 0; i < len(data); i += dataBytesPerLine {
		end := min(i+dataBytesPerLine, len(data))

		buf.Reset()
		for j, b := range data[i:end] {
			if j > 0 {
				buf.WriteByte(' ')
			}
			fmt.Fprintf(buf, "%02X", b)
		}

		if _, err := fmt.Fprintf(w.writer, "%s\n", buf.String()); err != nil {
			return fmt.Errorf("writing hex line: %w", err)
		}
	}

	if _, err := fmt.Fprintln(w.writer); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

// WriteCommentHeader writes the cartridge header information and the CRC32 checksum as comments.
func (w Writer) WriteCommentHeader(cart *cartridge.Cartridge) error {
	lines := []string{
		fmt.Sprintf("CRC32 checksum: %08x", cart.Checksum()),
		fmt.Sprintf("Size: %d bytes", len(cart.Data)),
	}

	if header := cart.Header; header != nil {
		lines = append(lines,
			"Title: "+header.Title,
			"Hardware: "+header.HardwareType(),
			"Destination: "+header.DestinationName(),
			fmt.Sprintf("Color support: %t", header.ColorSupport()),
			fmt.Sprintf("Header checksum valid: %t", cart.HeaderChecksumValid()),
		)
		if banks, err := header.ROMBanks(); err == nil {
			lines = append(lines, fmt.Sprintf("ROM banks: %d", banks))
		}
		if ram, err := header.RAMSize(); err == nil {
			lines = append(lines, fmt.Sprintf("RAM size: %d bytes", ram))
		}
	}

	for _, line := range lines {
		if _, err := fmt.Fprintf(w.writer, "; %s\n", line); err != nil {
			return fmt.Errorf("writing comment header: %w", err)
		}
	}

	if _, err := fmt.Fprintln(w.writer); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}

// WriteLabel writes a label line, preceded by an empty line unless it is the first line.
func (w Writer) WriteLabel(name string, first bool) error {
	if !first {
		if _, err := fmt.Fprintln(w.writer); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}

	if _, err := fmt.Fprintf(w.writer, "%s:\n", name); err != nil {
		return fmt.Errorf("writing label: %w", err)
	}
	return nil
}

// WriteCodeLine writes a code line followed by the enabled comments.
func (w Writer) WriteCodeLine(line CodeLine) error {
	comment := w.comment(line)

	var err error
	if comment == "" {
		_, err = fmt.Fprintf(w.writer, "  %s\n", line.Code)
	} else {
		_, err = fmt.Fprintf(w.writer, "  %-30s ; %s\n", line.Code, comment)
	}
	if err != nil {
		return fmt.Errorf("writing code line: %w", err)
	}
	return nil
}

func (w Writer) comment(line CodeLine) string {
	var comments []string

	if w.options.OffsetComments {
		comments = append(comments, fmt.Sprintf("$%04X", line.Offset))
	}

	if w.options.HexComments && len(line.Data) > 0 {
		comments = append(comments, hexCodeComment(line.Data))
	}

	if line.Note != "" {
		comments = append(comments, line.Note)
	}
	return strings.Join(comments, "  ")
}

func hexCodeComment(data []byte) string {
	buf := &strings.Builder{}
	for i, b := range data {
		if i > 0 {
			buf.WriteByte(' ')
		}
		fmt.Fprintf(buf, "%02X", b)
	}
	return buf.String()
}
