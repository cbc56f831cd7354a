// Package cpu implements the LR35902 instruction set: registers, the ALU,
// the 256-entry unprefixed and CB-prefixed opcode tables, and interrupt
// dispatch.
package cpu

import (
	"fmt"
)

// Bus is the address-space router the CPU executes against. It is satisfied
// by *memory.MMU; the interface exists so this package never imports memory.
type Bus interface {
	Read(address uint16) byte
	Write(address uint16, value byte)
	ReadWord(address uint16) uint16
	WriteWord(address uint16, value uint16)
	IERegister() byte
	IFRegister() byte
	SetIF(value byte)
}

// CPU holds the LR35902 register file and drives fetch/decode/execute.
type CPU struct {
	a, f       uint8
	b, c       uint8
	d, e       uint8
	h, l       uint8
	sp, pc     uint16

	mem Bus

	// ime is set/cleared immediately by EI/DI; this core does not model the
	// one-instruction EI delay real hardware has.
	ime     bool
	halted  bool
	stopped bool
}

// New constructs a CPU wired to mem and seeded with the register values the
// boot ROM leaves behind when it hands off control at 0x0100.
func New(mem Bus) *CPU {
	return &CPU{
		mem: mem,
		a:   0x01, f: 0xB0,
		b: 0x00, c: 0x13,
		d: 0x00, e: 0xD8,
		h: 0x01, l: 0x4D,
		sp: 0xFFFE,
		pc: 0x0100,
	}
}

// PC returns the current program counter, mostly useful for tests and tools.
func (c *CPU) PC() uint16 { return c.pc }

// Halted reports whether the CPU is parked in HALT.
func (c *CPU) Halted() bool { return c.halted }

func (c *CPU) fetch8() uint8 {
	v := c.mem.Read(c.pc)
	c.pc++
	return v
}

func (c *CPU) fetch16() uint16 {
	v := c.mem.ReadWord(c.pc)
	c.pc += 2
	return v
}

func (c *CPU) pushStack(value uint16) {
	c.sp -= 2
	c.mem.WriteWord(c.sp, value)
}

func (c *CPU) popStack() uint16 {
	v := c.mem.ReadWord(c.sp)
	c.sp += 2
	return v
}

// Step services a pending interrupt if one applies, otherwise fetches and
// executes one instruction, and returns the machine cycles it took.
func (c *CPU) Step() int {
	if cycles, serviced := c.serviceInterrupt(); serviced {
		return cycles
	}

	if c.halted {
		return 1
	}

	opcode := c.fetch8()
	if opcode == 0xCB {
		cb := c.fetch8()
		return cbOpcodes[cb](c)
	}

	handler := opcodes[opcode]
	if handler == nil {
		panic(fmt.Sprintf("cpu: unknown opcode 0x%02X at 0x%04X", opcode, c.pc-1))
	}
	return handler(c)
}

// serviceInterrupt implements dispatch: HALT wakes on any pending-and-enabled
// bit regardless of IME, but only actually jumps to a handler when IME is
// set. Bit 5 and above have no assigned source on DMG hardware; a pending
// one reaching here means a peripheral (or RequestInterrupt) misbehaved, and
// the spec treats that as fatal rather than silently ignoring it.
func (c *CPU) serviceInterrupt() (int, bool) {
	pending := c.mem.IFRegister() & c.mem.IERegister()
	if pending == 0 {
		return 0, false
	}

	c.halted = false

	if !c.ime {
		return 0, false
	}

	var n uint8
	for n = 0; n < 8; n++ {
		if pending&(1<<n) != 0 {
			break
		}
	}

	if n >= 5 {
		panic(fmt.Sprintf("cpu: unknown interrupt bit %d pending", n))
	}

	c.ime = false
	c.mem.SetIF(c.mem.IFRegister() &^ (1 << n))

	c.pushStack(c.pc)
	c.pc = 0x0040 + uint16(n)*8

	return 5, true
}

func (c *CPU) halt() {
	c.halted = true
}

func (c *CPU) stop() {
	c.stopped = true
}
