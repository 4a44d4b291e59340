// Command oric runs the Oric-1/Atmos emulator: it loads the BASIC and font
// ROMs, optionally attaches a TAP tape image, and renders the machine's
// text-mode output through SDL2 at 50 frames per second.
package main

import (
	"fmt"
	"image/color"
	"log"
	"os"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	cli "gopkg.in/urfave/cli.v2"

	"github.com/pugo/oric-go/monitor"
	"github.com/pugo/oric-go/oric"
	"github.com/pugo/oric-go/rom"
)

func main() {
	app := &cli.App{
		Name:  "oric",
		Usage: "Oric-1/Atmos emulator",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "basic", Value: "basic11b.rom", Usage: "Path to the BASIC ROM image (loaded at 0xC000)"},
			&cli.StringFlag{Name: "font", Value: "font.rom", Usage: "Path to the character generator ROM image (loaded at 0xB400)"},
			&cli.StringFlag{Name: "tape", Usage: "Path to a TAP image to attach"},
			&cli.IntFlag{Name: "scale", Value: 2, Usage: "Window scale factor"},
			&cli.BoolFlag{Name: "monitor", Usage: "Start paused in the interactive monitor instead of running"},
			&cli.BoolFlag{Name: "debug", Usage: "Emit a register dump after every raster line"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	m, err := oric.New()
	if err != nil {
		return fmt.Errorf("init machine: %w", err)
	}

	if err := rom.Load(m.Bus, c.String("basic"), 0xC000); err != nil {
		return err
	}
	if err := rom.Load(m.Bus, c.String("font"), 0xB400); err != nil {
		return err
	}
	m.CPU.Reset()

	if path := c.String("tape"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read tape: %w", err)
		}
		if err := m.AttachTape(data); err != nil {
			return err
		}
	}

	if c.Bool("monitor") {
		_, err := monitor.New(m).Run()
		return err
	}

	return runSDL(m, c.Int("scale"), c.Bool("debug"))
}

func runSDL(m *oric.Machine, scale int, debug bool) error {
	if err := sdl.Init(sdl.INIT_EVERYTHING); err != nil {
		return fmt.Errorf("sdl init: %w", err)
	}
	defer sdl.Quit()

	w := int32(oric.FrameWidth * scale)
	h := int32(oric.FrameHeight * scale)
	window, err := sdl.CreateWindow("Oric", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, w, h, sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}
	defer renderer.Destroy()

	nextFrame := time.Now()
	for {
		for {
			done, err := m.RunRaster()
			if err != nil {
				return fmt.Errorf("run raster: %w", err)
			}
			if m.Brk {
				log.Printf("BRK hit at PC=%.4X, dropping to monitor", m.CPU.Snapshot().PC)
				_, err := monitor.New(m).Run()
				return err
			}
			if debug {
				log.Print(m.CPU.Debug())
			}
			if done {
				break
			}
		}

		drawFrame(renderer, m.Frame(), scale)
		renderer.Present()

		nextFrame = nextFrame.Add(20 * time.Millisecond)
		if d := time.Until(nextFrame); d > 0 {
			time.Sleep(d)
		} else {
			nextFrame = time.Now()
		}

		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				return nil
			case *sdl.KeyboardEvent:
				if bits, ok := keyBits[e.Keysym.Sym]; ok {
					m.Keyboard.KeyDown(bits, e.State == sdl.PRESSED)
				}
			}
		}
	}
}

func drawFrame(renderer *sdl.Renderer, frame [oric.FrameHeight][oric.FrameWidth]uint8, scale int) {
	for y := 0; y < oric.FrameHeight; y++ {
		for x := 0; x < oric.FrameWidth; x++ {
			rgb := oric.Palette[frame[y][x]&0x07]
			renderer.SetDrawColor(rgb[0], rgb[1], rgb[2], color.Opaque.A)
			rect := &sdl.Rect{X: int32(x * scale), Y: int32(y * scale), W: int32(scale), H: int32(scale)}
			renderer.FillRect(rect)
		}
	}
}
