package cpu

import "github.com/mharlton/dmgcore/dmgcore/bit"

// Flag bits of the F register. The low nibble of F is architecturally
// always zero; only these four bits are ever meaningful.
type Flag uint8

const (
	FlagZero      Flag = 0x80
	FlagSub       Flag = 0x40
	FlagHalfCarry Flag = 0x20
	FlagCarry     Flag = 0x10
)

func (c *CPU) setFlag(f Flag)          { c.f |= uint8(f) }
func (c *CPU) resetFlag(f Flag)        { c.f &^= uint8(f) }
func (c *CPU) isSet(f Flag) bool       { return c.f&uint8(f) != 0 }
func (c *CPU) setFlagIf(f Flag, v bool) {
	if v {
		c.setFlag(f)
	} else {
		c.resetFlag(f)
	}
}

func (c *CPU) getAF() uint16 { return bit.Combine(c.a, c.f&0xF0) }
func (c *CPU) getBC() uint16 { return bit.Combine(c.b, c.c) }
func (c *CPU) getDE() uint16 { return bit.Combine(c.d, c.e) }
func (c *CPU) getHL() uint16 { return bit.Combine(c.h, c.l) }

func (c *CPU) setAF(v uint16) {
	c.a = bit.High(v)
	c.f = bit.Low(v) & 0xF0
}
func (c *CPU) setBC(v uint16) { c.b, c.c = bit.High(v), bit.Low(v) }
func (c *CPU) setDE(v uint16) { c.d, c.e = bit.High(v), bit.Low(v) }
func (c *CPU) setHL(v uint16) { c.h, c.l = bit.High(v), bit.Low(v) }

// hli returns the current HL value then increments it (LDI semantics).
func (c *CPU) hli() uint16 {
	v := c.getHL()
	c.setHL(v + 1)
	return v
}

// hld returns the current HL value then decrements it (LDD semantics).
func (c *CPU) hld() uint16 {
	v := c.getHL()
	c.setHL(v - 1)
	return v
}

// r8 indices, Z80/LR35902 canonical encoding used throughout the opcode map.
const (
	regB = iota
	regC
	regD
	regE
	regH
	regL
	regHLInd
	regA
)

// getR8 reads one of the eight encoded 8-bit operands, dereferencing (HL)
// through memory when index selects it.
func (c *CPU) getR8(index uint8) uint8 {
	switch index {
	case regB:
		return c.b
	case regC:
		return c.c
	case regD:
		return c.d
	case regE:
		return c.e
	case regH:
		return c.h
	case regL:
		return c.l
	case regHLInd:
		return c.mem.Read(c.getHL())
	case regA:
		return c.a
	default:
		panic("cpu: invalid r8 index")
	}
}

func (c *CPU) setR8(index uint8, value uint8) {
	switch index {
	case regB:
		c.b = value
	case regC:
		c.c = value
	case regD:
		c.d = value
	case regE:
		c.e = value
	case regH:
		c.h = value
	case regL:
		c.l = value
	case regHLInd:
		c.mem.Write(c.getHL(), value)
	case regA:
		c.a = value
	default:
		panic("cpu: invalid r8 index")
	}
}

// r16 group used by 0x01/0x11/0x21/0x31-style opcodes (BC, DE, HL, SP).
func (c *CPU) getR16Group1(index uint8) uint16 {
	switch index {
	case 0:
		return c.getBC()
	case 1:
		return c.getDE()
	case 2:
		return c.getHL()
	default:
		return c.sp
	}
}

func (c *CPU) setR16Group1(index uint8, value uint16) {
	switch index {
	case 0:
		c.setBC(value)
	case 1:
		c.setDE(value)
	case 2:
		c.setHL(value)
	default:
		c.sp = value
	}
}

// r16 group used by PUSH/POP (BC, DE, HL, AF).
func (c *CPU) getR16Group2(index uint8) uint16 {
	switch index {
	case 0:
		return c.getBC()
	case 1:
		return c.getDE()
	case 2:
		return c.getHL()
	default:
		return c.getAF()
	}
}

func (c *CPU) setR16Group2(index uint8, value uint16) {
	switch index {
	case 0:
		c.setBC(value)
	case 1:
		c.setDE(value)
	case 2:
		c.setHL(value)
	default:
		c.setAF(value)
	}
}
