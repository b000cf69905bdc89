// Package cartridge provides Game Boy cartridge image loading and header parsing.
package cartridge

import (
	"bytes"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"strings"
)

// Header field locations in the cartridge image.
const (
	titleStart     = 0x0134
	titleEnd       = 0x0144
	cgbFlag        = 0x0143
	sgbFlag        = 0x0146
	cartridgeType  = 0x0147
	romSizeCode    = 0x0148
	ramSizeCode    = 0x0149
	destination    = 0x014A
	romVersion     = 0x014C
	headerChecksum = 0x014D
	globalChecksum = 0x014E

	// HeaderEnd is the first address after the cartridge header.
	HeaderEnd = 0x0150
)

// BankSize is the size of a ROM bank.
const BankSize = 0x4000

const kilobyte = 0x0400

var errHeaderTooShort = errors.New("image is smaller than the cartridge header")

// Header contains the parsed cartridge header fields.
type Header struct {
	Title          string
	CGBFlag        byte
	SGBFlag        byte
	Type           byte
	ROMSizeCode    byte
	RAMSizeCode    byte
	Destination    byte
	Version        byte
	HeaderChecksum byte
	GlobalChecksum uint16
}

// Cartridge contains the raw image and, unless loaded as raw binary, its parsed header.
type Cartridge struct {
	Data   []byte
	Header *Header
}

// LoadFile loads a cartridge image including its header.
func LoadFile(reader io.Reader) (*Cartridge, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading cartridge: %w", err)
	}
	return New(data)
}

// LoadBuffer loads a raw binary without a cartridge header.
func LoadBuffer(reader io.Reader) (*Cartridge, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading binary: %w", err)
	}
	return &Cartridge{Data: data}, nil
}

// New parses the header of the given cartridge image.
func New(data []byte) (*Cartridge, error) {
	if len(data) < HeaderEnd {
		return nil, fmt.Errorf("%w: %d bytes", errHeaderTooShort, len(data))
	}

	header := &Header{
		Title:          parseTitle(data),
		CGBFlag:        data[cgbFlag],
		SGBFlag:        data[sgbFlag],
		Type:           data[cartridgeType],
		ROMSizeCode:    data[romSizeCode],
		RAMSizeCode:    data[ramSizeCode],
		Destination:    data[destination],
		Version:        data[romVersion],
		HeaderChecksum: data[headerChecksum],
		GlobalChecksum: uint16(data[globalChecksum])<<8 | uint16(data[globalChecksum+1]),
	}

	return &Cartridge{
		Data:   data,
		Header: header,
	}, nil
}

// parseTitle returns the title, for color cartridges the last title byte is the CGB flag.
func parseTitle(data []byte) string {
	end := titleEnd
	if data[cgbFlag]&0x80 != 0 {
		end = cgbFlag
	}
	title := data[titleStart:end]
	if i := bytes.IndexByte(title, 0); i >= 0 {
		title = title[:i]
	}
	return strings.ToValidUTF8(string(title), "?")
}

// HeaderChecksumValid returns whether the header checksum byte matches the header content.
func (c *Cartridge) HeaderChecksumValid() bool {
	if c.Header == nil {
		return false
	}
	var sum byte
	for _, b := range c.Data[titleStart:headerChecksum] {
		sum = sum - b - 1
	}
	return sum == c.Header.HeaderChecksum
}

// Checksum returns the CRC32 checksum of the whole image.
func (c *Cartridge) Checksum() uint32 {
	return crc32.ChecksumIEEE(c.Data)
}

// ROMSize returns the ROM size in bytes that the header declares.
func (h Header) ROMSize() (int, error) {
	switch code := h.ROMSizeCode; {
	case code <= 0x08:
		return BankSize << (1 + code), nil
	case code == 0x52:
		return 72 * BankSize, nil
	case code == 0x53:
		return 80 * BankSize, nil
	case code == 0x54:
		return 96 * BankSize, nil
	default:
		return 0, fmt.Errorf("invalid ROM size code $%02x", code)
	}
}

// ROMBanks returns the number of ROM banks that the header declares.
func (h Header) ROMBanks() (int, error) {
	size, err := h.ROMSize()
	if err != nil {
		return 0, err
	}
	return size / BankSize, nil
}

// RAMSize returns the external RAM size in bytes that the header declares.
func (h Header) RAMSize() (int, error) {
	switch h.RAMSizeCode {
	case 0x00:
		return 0, nil
	case 0x01:
		return 2 * kilobyte, nil
	case 0x02:
		return 8 * kilobyte, nil
	case 0x03:
		return 32 * kilobyte, nil
	case 0x04:
		return 128 * kilobyte, nil
	case 0x05:
		return 64 * kilobyte, nil
	default:
		return 0, fmt.Errorf("invalid RAM size code $%02x", h.RAMSizeCode)
	}
}

// DestinationName returns the region the cartridge was sold in.
func (h Header) DestinationName() string {
	switch h.Destination {
	case 0x00:
		return "Japanese"
	case 0x01:
		return "Non-Japanese"
	default:
		return "???"
	}
}

// ColorSupport returns whether the cartridge supports or requires the Game Boy Color.
func (h Header) ColorSupport() bool {
	return h.CGBFlag&0x80 != 0
}

var hardwareTypes = map[byte]string{
	0x00: "ROM ONLY",
	0x01: "MBC1",
	0x02: "MBC1+RAM",
	0x03: "MBC1+RAM+BATTERY",
	0x05: "MBC2",
	0x06: "MBC2+BATTERY",
	0x08: "ROM+RAM",
	0x09: "ROM+RAM+BATTERY",
	0x0B: "MMM01",
	0x0C: "MMM01+RAM",
	0x0D: "MMM01+RAM+BATTERY",
	0x0F: "MBC3+TIMER+BATTERY",
	0x10: "MBC3+TIMER+RAM+BATTERY",
	0x11: "MBC3",
	0x12: "MBC3+RAM",
	0x13: "MBC3+RAM+BATTERY",
	0x19: "MBC5",
	0x1A: "MBC5+RAM",
	0x1B: "MBC5+RAM+BATTERY",
	0x1C: "MBC5+RUMBLE",
	0x1D: "MBC5+RUMBLE+RAM",
	0x1E: "MBC5+RUMBLE+RAM+BATTERY",
	0x20: "MBC6",
	0x22: "MBC7+SENSOR+RUMBLE+RAM+BATTERY",
	0xFC: "POCKET CAMERA",
	0xFD: "BANDAI TAMA5",
	0xFE: "HuC3",
	0xFF: "HuC1+RAM+BATTERY",
}

// HardwareType returns the name of the memory bank controller and extra hardware.
func (h Header) HardwareType() string {
	name, ok := hardwareTypes[h.Type]
	if !ok {
		return "???"
	}
	return name
}
