package cpu

// cbOpcodes is the CB-prefixed dispatch table. Every sub-page (rotate/shift,
// BIT, RES, SET) repeats the same eight-register pattern, so the whole table
// is built from two small loops instead of 256 named functions.
var cbOpcodes [256]Opcode

func init() {
	shiftOps := [8]func(c *CPU, v uint8) uint8{
		func(c *CPU, v uint8) uint8 { return c.rlc(v) },
		func(c *CPU, v uint8) uint8 { return c.rrc(v) },
		func(c *CPU, v uint8) uint8 { return c.rl(v) },
		func(c *CPU, v uint8) uint8 { return c.rr(v) },
		func(c *CPU, v uint8) uint8 { return c.sla(v) },
		func(c *CPU, v uint8) uint8 { return c.sra(v) },
		func(c *CPU, v uint8) uint8 { return c.swap(v) },
		func(c *CPU, v uint8) uint8 { return c.srl(v) },
	}

	for group := 0; group < 8; group++ {
		op := shiftOps[group]
		for reg := uint8(0); reg < 8; reg++ {
			reg := reg
			opcode := group*8 + int(reg)
			cbOpcodes[opcode] = func(c *CPU) int {
				c.setR8(reg, op(c, c.getR8(reg)))
				if reg == regHLInd {
					return 4
				}
				return 2
			}
		}
	}

	for bitN := uint8(0); bitN < 8; bitN++ {
		bitN := bitN
		for reg := uint8(0); reg < 8; reg++ {
			reg := reg

			bitOp := 0x40 + int(bitN)*8 + int(reg)
			cbOpcodes[bitOp] = func(c *CPU) int {
				c.testBit(c.getR8(reg), bitN)
				if reg == regHLInd {
					return 3
				}
				return 2
			}

			resOp := 0x80 + int(bitN)*8 + int(reg)
			cbOpcodes[resOp] = func(c *CPU) int {
				c.setR8(reg, c.getR8(reg)&^(1<<bitN))
				if reg == regHLInd {
					return 4
				}
				return 2
			}

			setOp := 0xC0 + int(bitN)*8 + int(reg)
			cbOpcodes[setOp] = func(c *CPU) int {
				c.setR8(reg, c.getR8(reg)|(1<<bitN))
				if reg == regHLInd {
					return 4
				}
				return 2
			}
		}
	}
}
