package memory

import "github.com/mharlton/dmgcore/dmgcore/bit"

// JoypadKey names one of the eight physical buttons.
type JoypadKey uint8

const (
	JoypadRight JoypadKey = iota
	JoypadLeft
	JoypadUp
	JoypadDown
	JoypadA
	JoypadB
	JoypadSelect
	JoypadStart
)

// Joypad models the P1 button matrix: two 4-bit active-low rows (d-pad and
// buttons) and the two row-select bits written by the game. It never talks
// to the bus directly; a raised interrupt is parked in pending until the
// router drains it, keeping the router as the sole owner of IF.
type Joypad struct {
	dpad    uint8 // bits 0-3: right,left,up,down, active low
	buttons uint8 // bits 0-3: a,b,select,start, active low
	select_ uint8 // raw value written to P1, only bits 4-5 matter

	pending bool
}

func NewJoypad() *Joypad {
	return &Joypad{
		dpad:    0x0F,
		buttons: 0x0F,
		select_: 0x30,
	}
}

// WriteSelect handles a write to 0xFF00: only the row-select bits latch.
func (j *Joypad) WriteSelect(value uint8) {
	j.select_ = value & 0x30
}

// Read reconstructs the P1 register value seen by the CPU.
func (j *Joypad) Read() uint8 {
	result := uint8(0xC0) | j.select_

	selectDpad := !bit.IsSet(4, j.select_)
	selectButtons := !bit.IsSet(5, j.select_)

	switch {
	case selectDpad && selectButtons:
		result |= j.dpad & j.buttons
	case selectDpad:
		result |= j.dpad
	case selectButtons:
		result |= j.buttons
	default:
		result |= 0x0F
	}

	return result
}

func (j *Joypad) Press(key JoypadKey) {
	before := j.Read() & 0x0F
	j.setKey(key, false)
	j.raiseIfEdge(before)
}

func (j *Joypad) Release(key JoypadKey) {
	j.setKey(key, true)
}

func (j *Joypad) setKey(key JoypadKey, released bool) {
	var row *uint8
	var idx uint8

	switch key {
	case JoypadRight:
		row, idx = &j.dpad, 0
	case JoypadLeft:
		row, idx = &j.dpad, 1
	case JoypadUp:
		row, idx = &j.dpad, 2
	case JoypadDown:
		row, idx = &j.dpad, 3
	case JoypadA:
		row, idx = &j.buttons, 0
	case JoypadB:
		row, idx = &j.buttons, 1
	case JoypadSelect:
		row, idx = &j.buttons, 2
	case JoypadStart:
		row, idx = &j.buttons, 3
	default:
		return
	}

	if released {
		*row = bit.Set(idx, *row)
	} else {
		*row = bit.Reset(idx, *row)
	}
}

// raiseIfEdge latches the joypad interrupt on the low-to-high transition of
// "some button pressed" in the currently selected row(s): before has bit
// pattern 0xF (no button) transitioning to something other than 0xF.
func (j *Joypad) raiseIfEdge(before uint8) {
	after := j.Read() & 0x0F
	if before == 0x0F && after != 0x0F {
		j.pending = true
	}
}

// Pending reports whether the joypad has an unconsumed interrupt request.
func (j *Joypad) Pending() bool { return j.pending }

// ClearPending consumes the pending interrupt flag, returning its prior value.
func (j *Joypad) ClearPending() bool {
	p := j.pending
	j.pending = false
	return p
}
