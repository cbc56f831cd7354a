// Command dmgcore runs a ROM in a terminal, rendering each frame as block
// characters over tcell and forwarding the arrow keys, Z/X (A/B), Enter
// (start) and Backspace (select) to the joypad.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/urfave/cli"

	dmgcore "github.com/mharlton/dmgcore"
)

const (
	width  = 160
	height = 144

	// Terminal characters are taller than wide; scale width more to
	// approximate the real aspect ratio.
	scaleX = 2
	scaleY = 1

	frameTime = time.Second / 60
)

// shadeChars follows the framebuffer's shade order, lightest (255) first:
// drawn in the white foreground colour, the full block is the brightest cell.
var shadeChars = []rune{'█', '▓', '▒', '░'}

type terminalRenderer struct {
	screen   tcell.Screen
	emulator *dmgcore.Emulator
	running  bool
}

func newTerminalRenderer(emu *dmgcore.Emulator) (*terminalRenderer, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize terminal: %w", err)
	}

	return &terminalRenderer{screen: screen, emulator: emu, running: true}, nil
}

func (t *terminalRenderer) Run() error {
	defer func() {
		slog.Info("finishing terminal")
		t.screen.Fini()
	}()

	t.screen.SetStyle(tcell.StyleDefault.
		Background(tcell.ColorBlack).
		Foreground(tcell.ColorWhite))
	t.screen.Clear()

	go t.handleInput()

	ticker := time.NewTicker(frameTime)
	defer ticker.Stop()

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)

	for t.running {
		select {
		case <-ticker.C:
			t.emulator.RunFrame()
			t.render()
			t.screen.Show()
		case <-signals:
			t.running = false
			slog.Info("received signal to stop")
			return nil
		}
	}

	return nil
}

// keyBindings maps a tcell key event to a joypad button name understood by
// Emulator.PressKey/ReleaseKey.
var keyBindings = map[tcell.Key]string{
	tcell.KeyUp:         "up",
	tcell.KeyDown:       "down",
	tcell.KeyLeft:       "left",
	tcell.KeyRight:      "right",
	tcell.KeyEnter:      "start",
	tcell.KeyBackspace2: "select",
}

var runeBindings = map[rune]string{
	'z': "a",
	'x': "b",
}

func (t *terminalRenderer) handleInput() {
	for t.running {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape {
				t.running = false
				return
			}

			var button string
			if name, ok := keyBindings[ev.Key()]; ok {
				button = name
			} else if name, ok := runeBindings[ev.Rune()]; ok {
				button = name
			}
			if button == "" {
				continue
			}

			if err := t.emulator.PressKey(button); err != nil {
				slog.Warn("ignoring unknown key binding", "button", button, "error", err)
				continue
			}
			go func(b string) {
				time.Sleep(frameTime)
				_ = t.emulator.ReleaseKey(b)
			}(button)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}
}

func (t *terminalRenderer) render() {
	frame := t.emulator.Screen()

	t.screen.Clear()

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			offset := (y*width + x) * 3
			value := frame[offset]

			shade := (259 - int(value)) / 64 // 255->0, 192->1, 96->2, 0->3
			if shade > 3 {
				shade = 3
			}

			style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
			char := shadeChars[shade]

			screenX := x * scaleX
			screenY := y * scaleY
			for sx := 0; sx < scaleX; sx++ {
				t.screen.SetContent(screenX+sx, screenY, char, nil, style)
			}
		}
	}
}

func main() {
	app := cli.NewApp()
	app.Name = "dmgcore"
	app.Usage = "dmgcore [options] <ROM file>"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "rom",
			Usage: "Path to the ROM file",
		},
		cli.BoolFlag{
			Name:  "skip-checksum",
			Usage: "Load the ROM even if its header checksum doesn't match",
		},
		cli.IntFlag{
			Name:  "frames",
			Usage: "Run headless for N frames instead of opening a terminal display (0 disables headless mode)",
			Value: 0,
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		slog.Error("error running emulator", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	romPath := c.String("rom")
	if romPath == "" {
		if c.NArg() > 0 {
			romPath = c.Args().Get(0)
		} else {
			cli.ShowAppHelp(c)
			return errors.New("no ROM path provided")
		}
	}

	emu, err := dmgcore.NewFromFile(romPath, c.Bool("skip-checksum"))
	if err != nil {
		return err
	}

	if frames := c.Int("frames"); frames > 0 {
		for i := 0; i < frames; i++ {
			emu.RunFrame()
		}
		slog.Info("ran headless", "frames", frames)
		return nil
	}

	renderer, err := newTerminalRenderer(emu)
	if err != nil {
		return err
	}
	return renderer.Run()
}
