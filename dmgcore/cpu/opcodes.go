package cpu

// Opcode is the signature of every entry in the dispatch tables: it performs
// one instruction's effect on c and returns the machine cycles it took.
type Opcode func(c *CPU) int

// opcodes is the unprefixed 256-entry dispatch table. Mechanically regular
// blocks (register-to-register loads, ALU-against-A, RST, PUSH/POP,
// conditional branches) are filled in by loops in init; everything else gets
// an explicit entry.
var opcodes [256]Opcode

// pairBC..pairSP index the group-1 register pairs (BC, DE, HL, SP) in encoding
// order, purely for readability at the call sites below.
const (
	pairBC = 0
	pairDE = 1
	pairHL = 2
	pairSP = 3
)

func condTrue(c *CPU, cc uint8) bool {
	switch cc {
	case 0:
		return !c.isSet(FlagZero)
	case 1:
		return c.isSet(FlagZero)
	case 2:
		return !c.isSet(FlagCarry)
	default:
		return c.isSet(FlagCarry)
	}
}

func init() {
	opcodes[0x00] = func(c *CPU) int { return 1 } // NOP

	opcodes[0x08] = func(c *CPU) int { // LD (nn),SP
		addr := c.fetch16()
		c.mem.WriteWord(addr, c.sp)
		return 5
	}

	opcodes[0x10] = func(c *CPU) int { c.fetch8(); c.stop(); return 1 } // STOP (opcode is 2 bytes)

	opcodes[0x76] = func(c *CPU) int { c.halt(); return 1 } // HALT, sits inside the LD r,r' block

	opcodes[0x18] = func(c *CPU) int { // JR e
		offset := int8(c.fetch8())
		c.pc = uint16(int32(c.pc) + int32(offset))
		return 3
	}

	opcodes[0x07] = func(c *CPU) int { // RLCA
		c.a = c.rlc(c.a)
		c.resetFlag(FlagZero)
		return 1
	}
	opcodes[0x0F] = func(c *CPU) int { // RRCA
		c.a = c.rrc(c.a)
		c.resetFlag(FlagZero)
		return 1
	}
	opcodes[0x17] = func(c *CPU) int { // RLA
		c.a = c.rl(c.a)
		c.resetFlag(FlagZero)
		return 1
	}
	opcodes[0x1F] = func(c *CPU) int { // RRA
		c.a = c.rr(c.a)
		c.resetFlag(FlagZero)
		return 1
	}

	opcodes[0x22] = func(c *CPU) int { c.mem.Write(c.hli(), c.a); return 2 } // LD (HLI),A
	opcodes[0x2A] = func(c *CPU) int { c.a = c.mem.Read(c.hli()); return 2 } // LD A,(HLI)
	opcodes[0x32] = func(c *CPU) int { c.mem.Write(c.hld(), c.a); return 2 } // LD (HLD),A
	opcodes[0x3A] = func(c *CPU) int { c.a = c.mem.Read(c.hld()); return 2 } // LD A,(HLD)

	opcodes[0x27] = func(c *CPU) int { c.daa(); return 1 }
	opcodes[0x2F] = func(c *CPU) int { c.cpl(); return 1 }
	opcodes[0x37] = func(c *CPU) int { c.scf(); return 1 }
	opcodes[0x3F] = func(c *CPU) int { c.ccf(); return 1 }

	opcodes[0x02] = func(c *CPU) int { c.mem.Write(c.getBC(), c.a); return 2 }
	opcodes[0x0A] = func(c *CPU) int { c.a = c.mem.Read(c.getBC()); return 2 }
	opcodes[0x12] = func(c *CPU) int { c.mem.Write(c.getDE(), c.a); return 2 }
	opcodes[0x1A] = func(c *CPU) int { c.a = c.mem.Read(c.getDE()); return 2 }

	for pair := uint8(0); pair < 4; pair++ {
		pair := pair
		opcodes[0x01+pair*0x10] = func(c *CPU) int { // LD rr,nn
			c.setR16Group1(pair, c.fetch16())
			return 3
		}
		opcodes[0x03+pair*0x10] = func(c *CPU) int { // INC rr
			c.setR16Group1(pair, c.getR16Group1(pair)+1)
			return 2
		}
		opcodes[0x0B+pair*0x10] = func(c *CPU) int { // DEC rr
			c.setR16Group1(pair, c.getR16Group1(pair)-1)
			return 2
		}
		opcodes[0x09+pair*0x10] = func(c *CPU) int { // ADD HL,rr
			c.addHL(c.getR16Group1(pair))
			return 2
		}
	}

	// INC r / DEC r / LD r,n for B,C,D,E,H,L,(HL),A live at offsets
	// 0x04/0x05/0x06 within each of the four 0x_0 rows, in the same r8
	// index order the rest of the table uses.
	rowRegs := [4][2]uint8{{regB, regC}, {regD, regE}, {regH, regL}, {regHLInd, regA}}
	for row := uint8(0); row < 4; row++ {
		base := row * 0x10
		for col := 0; col < 2; col++ {
			reg := rowRegs[row][col]
			off := uint8(col) * 8
			opcodes[base+0x04+off] = makeInc(reg)
			opcodes[base+0x05+off] = makeDec(reg)
			opcodes[base+0x06+off] = makeLdImm(reg)
		}
	}

	// 0x40-0x7F: LD r,r' for all (dst,src) pairs except 0x76 (HALT, set above).
	for opcode := 0x40; opcode <= 0x7F; opcode++ {
		if opcode == 0x76 {
			continue
		}
		dst := uint8((opcode - 0x40) / 8)
		src := uint8((opcode - 0x40) % 8)
		opcodes[opcode] = makeLdRR(dst, src)
	}

	// 0x80-0xBF: ALU A,r across the eight operations in encoding order.
	aluOps := [8]func(c *CPU, v uint8){
		func(c *CPU, v uint8) { c.add(v, false) },
		func(c *CPU, v uint8) { c.add(v, true) },
		func(c *CPU, v uint8) { c.sub(v, false) },
		func(c *CPU, v uint8) { c.sub(v, true) },
		func(c *CPU, v uint8) { c.and(v) },
		func(c *CPU, v uint8) { c.xor(v) },
		func(c *CPU, v uint8) { c.or(v) },
		func(c *CPU, v uint8) { c.cp(v) },
	}
	for opcode := 0x80; opcode <= 0xBF; opcode++ {
		group := (opcode - 0x80) / 8
		reg := uint8((opcode - 0x80) % 8)
		op := aluOps[group]
		opcodes[opcode] = makeAluR(op, reg)
	}

	// immediate ALU forms: ADD/ADC/SUB/SBC/AND/XOR/OR/CP A,n at 0xC6,0xCE,...,0xFE
	for i, op := range aluOps {
		op := op
		opcodes[0xC6+i*8] = func(c *CPU) int {
			op(c, c.fetch8())
			return 2
		}
	}

	for cc := uint8(0); cc < 4; cc++ {
		cc := cc
		opcodes[0x20+cc*8] = func(c *CPU) int { // JR cc,e
			offset := int8(c.fetch8())
			if !condTrue(c, cc) {
				return 2
			}
			c.pc = uint16(int32(c.pc) + int32(offset))
			return 3
		}
		opcodes[0xC2+cc*8] = func(c *CPU) int { // JP cc,nn
			target := c.fetch16()
			if !condTrue(c, cc) {
				return 3
			}
			c.pc = target
			return 4
		}
		opcodes[0xC4+cc*8] = func(c *CPU) int { // CALL cc,nn
			target := c.fetch16()
			if !condTrue(c, cc) {
				return 3
			}
			c.pushStack(c.pc)
			c.pc = target
			return 6
		}
		opcodes[0xC0+cc*8] = func(c *CPU) int { // RET cc
			if !condTrue(c, cc) {
				return 2
			}
			c.pc = c.popStack()
			return 5
		}
	}

	for n := uint8(0); n < 8; n++ {
		n := n
		opcodes[0xC7+n*8] = func(c *CPU) int { // RST n*8
			c.pushStack(c.pc)
			c.pc = uint16(n) * 8
			return 4
		}
	}

	pushPopOpcodes := [4]uint8{0xC1, 0xD1, 0xE1, 0xF1}
	for i, base := range pushPopOpcodes {
		pair := uint8(i)
		opcodes[base] = func(c *CPU) int { // POP rr
			c.setR16Group2(pair, c.popStack())
			return 3
		}
		opcodes[base+4] = func(c *CPU) int { // PUSH rr
			c.pushStack(c.getR16Group2(pair))
			return 4
		}
	}

	opcodes[0xC3] = func(c *CPU) int { c.pc = c.fetch16(); return 4 }                        // JP nn
	opcodes[0xC9] = func(c *CPU) int { c.pc = c.popStack(); return 4 }                        // RET
	opcodes[0xD9] = func(c *CPU) int { c.pc = c.popStack(); c.ime = true; return 4 }          // RETI
	opcodes[0xCD] = func(c *CPU) int { target := c.fetch16(); c.pushStack(c.pc); c.pc = target; return 6 } // CALL nn
	opcodes[0xE9] = func(c *CPU) int { c.pc = c.getHL(); return 1 }                           // JP (HL)

	opcodes[0xE0] = func(c *CPU) int { c.mem.Write(0xFF00+uint16(c.fetch8()), c.a); return 3 }   // LDH (n),A
	opcodes[0xF0] = func(c *CPU) int { c.a = c.mem.Read(0xFF00 + uint16(c.fetch8())); return 3 } // LDH A,(n)
	opcodes[0xE2] = func(c *CPU) int { c.mem.Write(0xFF00+uint16(c.c), c.a); return 2 }          // LD (C),A
	opcodes[0xF2] = func(c *CPU) int { c.a = c.mem.Read(0xFF00 + uint16(c.c)); return 2 }        // LD A,(C)
	opcodes[0xEA] = func(c *CPU) int { c.mem.Write(c.fetch16(), c.a); return 4 }                 // LD (nn),A
	opcodes[0xFA] = func(c *CPU) int { c.a = c.mem.Read(c.fetch16()); return 4 }                 // LD A,(nn)

	opcodes[0xE8] = func(c *CPU) int { // ADD SP,e8
		c.sp = c.addSPSigned(int8(c.fetch8()))
		return 4
	}
	opcodes[0xF8] = func(c *CPU) int { // LD HL,SP+e8
		c.setHL(c.addSPSigned(int8(c.fetch8())))
		return 3
	}
	opcodes[0xF9] = func(c *CPU) int { c.sp = c.getHL(); return 2 } // LD SP,HL

	opcodes[0xF3] = func(c *CPU) int { c.ime = false; return 1 } // DI
	opcodes[0xFB] = func(c *CPU) int { c.ime = true; return 1 }  // EI
}

func makeInc(reg uint8) Opcode {
	return func(c *CPU) int {
		c.setR8(reg, c.inc8(c.getR8(reg)))
		if reg == regHLInd {
			return 3
		}
		return 1
	}
}

func makeDec(reg uint8) Opcode {
	return func(c *CPU) int {
		c.setR8(reg, c.dec8(c.getR8(reg)))
		if reg == regHLInd {
			return 3
		}
		return 1
	}
}

func makeLdImm(reg uint8) Opcode {
	return func(c *CPU) int {
		c.setR8(reg, c.fetch8())
		if reg == regHLInd {
			return 3
		}
		return 2
	}
}

func makeLdRR(dst, src uint8) Opcode {
	return func(c *CPU) int {
		c.setR8(dst, c.getR8(src))
		if dst == regHLInd || src == regHLInd {
			return 2
		}
		return 1
	}
}

func makeAluR(op func(c *CPU, v uint8), reg uint8) Opcode {
	return func(c *CPU) int {
		op(c, c.getR8(reg))
		if reg == regHLInd {
			return 2
		}
		return 1
	}
}
