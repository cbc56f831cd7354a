// Package dmgcore implements the core of a Game Boy (DMG) emulator: CPU,
// memory map with bank-switching cartridges, PPU, timer, and joypad. It
// draws frames into an in-memory framebuffer and leaves audio, persistence,
// and any UI to its caller.
package dmgcore

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mharlton/dmgcore/dmgcore/addr"
	"github.com/mharlton/dmgcore/dmgcore/cpu"
	"github.com/mharlton/dmgcore/dmgcore/memory"
)

// Emulator is the root type: it owns the CPU, the address-space router, and
// every peripheral reachable through it.
type Emulator struct {
	cpu *cpu.CPU
	mem *memory.MMU

	frameCount uint64
	logger     *slog.Logger
}

// Option configures an Emulator at construction time.
type Option func(*Emulator)

// WithLogger overrides the default slog logger (stderr, Info level).
func WithLogger(logger *slog.Logger) Option {
	return func(e *Emulator) { e.logger = logger }
}

func defaultLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// New constructs an Emulator from ROM bytes. skipChecksum allows loading
// homebrew ROMs whose header checksum was never set.
func New(rom []byte, skipChecksum bool, opts ...Option) (*Emulator, error) {
	header, err := memory.ParseHeader(rom, skipChecksum)
	if err != nil {
		return nil, fmt.Errorf("dmgcore: %w", err)
	}

	mem := memory.New(header, rom)

	e := &Emulator{
		cpu:    cpu.New(mem),
		mem:    mem,
		logger: defaultLogger(),
	}
	for _, opt := range opts {
		opt(e)
	}

	e.logger.Debug("loaded cartridge", "title", header.Title, "romBanks", header.ROMBanks, "ramBanks", header.RAMBanks)

	return e, nil
}

// NewFromFile reads path and constructs an Emulator from its contents.
func NewFromFile(path string, skipChecksum bool, opts ...Option) (*Emulator, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("dmgcore: %w", err)
	}
	return New(data, skipChecksum, opts...)
}

// RunFrame executes instructions until at least one full frame's worth of
// cycles (addr.CyclesPerFrame) has been charged, then returns.
func (e *Emulator) RunFrame() {
	total := 0
	for total < addr.CyclesPerFrame {
		cycles := e.cpu.Step() * 4 // CPU reports machine-cycles; the router and its peripherals work in clock-cycles
		e.mem.Step(cycles)
		total += cycles
	}

	e.frameCount++
	if e.frameCount%60 == 0 {
		e.logger.Debug("frame completed", "frame", e.frameCount, "pc", fmt.Sprintf("0x%04X", e.cpu.PC()))
	}
}

// Screen returns the current frame's 160x144 RGB-triplet pixel buffer.
func (e *Emulator) Screen() []byte {
	return e.mem.PPU().FrameBuffer().Bytes()
}

// Header exposes the parsed cartridge header.
func (e *Emulator) Header() memory.Header {
	return e.mem.Header()
}

// HasBattery reports whether the loaded cartridge persists RAM.
func (e *Emulator) HasBattery() bool {
	return e.mem.HasBattery()
}

// BatteryRAM returns the cartridge's external RAM, for callers that persist
// battery-backed saves between runs. It is the live backing array, not a copy.
func (e *Emulator) BatteryRAM() []byte {
	return e.mem.BatteryRAM()
}

// knownKeys maps external key names to JoypadKey, for PressKey/ReleaseKey's
// string-based entry point.
var knownKeys = map[string]memory.JoypadKey{
	"right":  memory.JoypadRight,
	"left":   memory.JoypadLeft,
	"up":     memory.JoypadUp,
	"down":   memory.JoypadDown,
	"a":      memory.JoypadA,
	"b":      memory.JoypadB,
	"select": memory.JoypadSelect,
	"start":  memory.JoypadStart,
}

// PressKey presses a named button. An unrecognized name is a recoverable
// BadInput error, returned to the caller rather than panicking.
func (e *Emulator) PressKey(name string) error {
	key, ok := knownKeys[name]
	if !ok {
		return fmt.Errorf("dmgcore: unknown key %q", name)
	}
	e.mem.PressKey(key)
	return nil
}

// ReleaseKey releases a named button; see PressKey for the name set.
func (e *Emulator) ReleaseKey(name string) error {
	key, ok := knownKeys[name]
	if !ok {
		return fmt.Errorf("dmgcore: unknown key %q", name)
	}
	e.mem.ReleaseKey(key)
	return nil
}
