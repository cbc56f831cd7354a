package memory

import (
	"fmt"
	"strings"
)

// Cartridge type byte (0x147) values this core understands. Anything else
// fails construction, matching the original hardware's lack of any MBC for
// unrecognized values.
const (
	cartTypeROMOnly  = 0x00
	cartTypeMBC1     = 0x01
	cartTypeMBC1RAM  = 0x02
	cartTypeMBC1RAMB = 0x03
	cartTypeMBC5     = 0x19
	cartTypeMBC5RAM  = 0x1A
	cartTypeMBC5RAMB = 0x1B
	cartTypeMBC5Rum  = 0x1C
	cartTypeMBC5RRAM = 0x1D
	cartTypeMBC5RRRB = 0x1E
)

const (
	titleAddress          = 0x134
	titleLength           = 16
	cartridgeTypeAddress  = 0x147
	romSizeAddress        = 0x148
	ramSizeAddress        = 0x149
	headerChecksumAddress = 0x14D
	headerStart           = 0x100
	headerEnd             = 0x150
)

// romBankCounts maps the byte at 0x148 to a total ROM bank count, following
// the fixed table used by every DMG cartridge (no exceptions beyond this
// range exist on real hardware).
var romBankCounts = map[uint8]int{
	0x00: 2, 0x01: 4, 0x02: 8, 0x03: 16, 0x04: 32, 0x05: 64,
	0x06: 128, 0x07: 256, 0x08: 512,
	0x52: 72, 0x53: 80, 0x54: 96,
}

// ramBankCounts maps the byte at 0x149 to a total 8KiB external RAM bank count.
var ramBankCounts = map[uint8]int{
	0x00: 0, 0x01: 1, 0x02: 1, 0x03: 4, 0x04: 16, 0x05: 8,
}

// MBCKind identifies which banking controller a cartridge requires.
type MBCKind uint8

const (
	MBCNone MBCKind = iota
	MBC1Kind
	MBC5Kind
)

// Header holds the parsed fields of a cartridge's 0x100-0x14F header block.
type Header struct {
	Title         string
	CartridgeType uint8
	Kind          MBCKind
	HasBattery    bool
	ROMBanks      int
	RAMBanks      int
	HeaderChecksum uint8
}

// ParseHeader reads the header block out of rom and validates it against the
// spec's checksum rule unless skipChecksum is set. An unsupported cartridge
// type, ROM size or RAM size byte is also an error; callers use
// Kind/RAMBanks to build the MBC.
func ParseHeader(rom []byte, skipChecksum bool) (Header, error) {
	if len(rom) <= headerEnd {
		return Header{}, fmt.Errorf("memory: rom too short for header (%d bytes)", len(rom))
	}

	computed := computeHeaderChecksum(rom)
	stored := rom[headerChecksumAddress]
	if !skipChecksum && computed != stored {
		return Header{}, fmt.Errorf("memory: header checksum mismatch: computed 0x%02X, stored 0x%02X", computed, stored)
	}

	cartType := rom[cartridgeTypeAddress]
	kind, hasBattery, err := classifyCartType(cartType)
	if err != nil {
		return Header{}, err
	}

	romBanks, ok := romBankCounts[rom[romSizeAddress]]
	if !ok {
		return Header{}, fmt.Errorf("memory: unsupported ROM size byte 0x%02X", rom[romSizeAddress])
	}
	ramBanks, ok := ramBankCounts[rom[ramSizeAddress]]
	if !ok {
		return Header{}, fmt.Errorf("memory: unsupported RAM size byte 0x%02X", rom[ramSizeAddress])
	}

	return Header{
		Title:          extractTitle(rom),
		CartridgeType:  cartType,
		Kind:           kind,
		HasBattery:     hasBattery,
		ROMBanks:       romBanks,
		RAMBanks:       ramBanks,
		HeaderChecksum: stored,
	}, nil
}

func classifyCartType(b uint8) (MBCKind, bool, error) {
	switch b {
	case cartTypeROMOnly:
		return MBCNone, false, nil
	case cartTypeMBC1:
		return MBC1Kind, false, nil
	case cartTypeMBC1RAM:
		return MBC1Kind, false, nil
	case cartTypeMBC1RAMB:
		return MBC1Kind, true, nil
	case cartTypeMBC5:
		return MBC5Kind, false, nil
	case cartTypeMBC5RAM:
		return MBC5Kind, false, nil
	case cartTypeMBC5RAMB:
		return MBC5Kind, true, nil
	case cartTypeMBC5Rum:
		return MBC5Kind, false, nil
	case cartTypeMBC5RRAM:
		return MBC5Kind, false, nil
	case cartTypeMBC5RRRB:
		return MBC5Kind, true, nil
	default:
		return MBCNone, false, fmt.Errorf("memory: unsupported cartridge type byte 0x%02X", b)
	}
}

// computeHeaderChecksum implements the DMG boot ROM's check: starting from
// zero, subtract each header byte plus one, wrapping at byte width.
func computeHeaderChecksum(rom []byte) uint8 {
	var c uint8
	for i := 0x34; i < 0x4D; i++ {
		c = c - rom[headerStart+i] - 1
	}
	return c
}

func extractTitle(rom []byte) string {
	raw := rom[titleAddress : titleAddress+titleLength]
	if idx := indexZero(raw); idx >= 0 {
		raw = raw[:idx]
	}
	return strings.TrimRight(string(raw), " \x00")
}

func indexZero(b []byte) int {
	for i, v := range b {
		if v == 0 {
			return i
		}
	}
	return -1
}
