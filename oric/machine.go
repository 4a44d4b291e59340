package oric

import (
	"github.com/pugo/oric-go/cpu"
	"github.com/pugo/oric-go/io"
	"github.com/pugo/oric-go/irq"
	"github.com/pugo/oric-go/psg"
	"github.com/pugo/oric-go/tape"
	"github.com/pugo/oric-go/via"
)

// Raster timing, per the Oric's 50Hz PAL-derived video timing.
const (
	CyclesPerRaster   = 64
	RastersPerFrame   = 312
	RasterVisibleFirst = 65
	RasterVisibleLast  = 288
)

// FrameWidth/FrameHeight are the rendered frame's pixel dimensions.
const (
	FrameWidth  = 240
	FrameHeight = 224
)

// irqLevel adapts the VIA's Raised() into the cpu.irq.Sender the CPU polls;
// it's a thin pass-through kept as a named type so Machine's wiring reads
// clearly.
type irqLevel struct {
	via *via.Chip
}

func (l irqLevel) Raised() bool { return l.via.Raised() }

var _ irq.Sender = irqLevel{}

// psgBus adapts the VIA's ORA register as the AY-3-8912's shared data bus.
// It holds the owning Machine and reads m.VIA at call time.
type psgBus struct {
	m *Machine
}

// DataBus reads ORA through its side-effect-free alias: the PSG latches
// this on every BDIR rising edge, and via.ORA's read path clears CA1's IRQ
// flag and pulses CA2's handshake line, which would otherwise mutate VIA
// interrupt state every time the sound chip reads data.
func (b psgBus) DataBus() uint8 { return b.m.VIA.Read(via.ORA2) }

// Machine is one fully wired Oric-1/Atmos: CPU, VIA, PSG, tape deck and
// keyboard sharing one 64k address space, advanced one CPU instruction at
// a time on a shared raster/frame clock.
type Machine struct {
	Bus *bus
	CPU *cpu.Chip
	VIA *via.Chip
	PSG *psg.Chip
	Tape *tape.Deck

	Keyboard Keyboard

	raster int

	// Running is a flag for a caller's own run loop; nothing in this
	// package sets or reads it.
	Running bool
	// Brk is set whenever the CPU most recently executed a BRK, so a
	// frontend can drop into the monitor the way the original firmware
	// would.
	Brk bool

	frame [FrameHeight][FrameWidth]uint8 // Palette index per pixel.
}

// New constructs a powered-on Oric with an empty (all-zero) RAM; load ROMs
// into it with the rom package and Reset the CPU before calling Step or
// RunRaster.
func New() (*Machine, error) {
	m := &Machine{}

	// CA2 drives the PSG's BC1 line, CB2 drives BDIR, matching the
	// machine's wiring of the VIA's handshake outputs to the sound chip's
	// bus-control inputs. The PSG's data bus reads back through the VIA's
	// ORA, so the two are built referencing each other via m.
	m.VIA = via.Init(&via.ChipDef{
		InputB: &m.Keyboard,
		CA2Listener: io.LevelListenerFunc(func(level bool) {
			if m.PSG != nil {
				m.PSG.SetBC1(level)
			}
		}),
		CB2Listener: io.LevelListenerFunc(func(level bool) {
			if m.PSG != nil {
				m.PSG.SetBDIR(level)
			}
		}),
	})
	m.PSG = psg.Init(&psg.ChipDef{Bus: psgBus{m: m}})
	m.Bus = newBus(m.VIA)
	m.Bus.PowerOn()

	c, err := cpu.Init(&cpu.ChipDef{
		Ram: m.Bus,
		Irq: irqLevel{via: m.VIA},
	})
	if err != nil {
		return nil, err
	}
	m.CPU = c
	return m, nil
}

// AttachTape loads a TAP image and wires its CB1 output to the VIA.
func (m *Machine) AttachTape(data []byte) error {
	d, err := tape.Attach(tapeVia{via: m.VIA}, data)
	if err != nil {
		return err
	}
	m.Tape = d
	return nil
}

type tapeVia struct{ via *via.Chip }

func (t tapeVia) WriteCB1(v bool) { t.via.WriteCB1(v) }

// Step executes exactly one CPU instruction and advances the VIA, PSG and
// tape deck by the same number of cycles it took, then updates the
// keyboard row latch from the VIA's port B output (mirrors the original
// firmware's UpdateKeyOutput, called once per instruction).
func (m *Machine) Step() (int, error) {
	cycles, err := m.CPU.Step()
	if err != nil {
		return 0, err
	}
	m.VIA.Step(cycles)
	if m.Tape != nil {
		m.Tape.Step(cycles)
	}
	m.Keyboard.SelectRow(m.VIA.Read(via.ORB))
	m.Keyboard.SetColumnMask(m.PSG.Register(psg.RegIOPortA))
	m.Brk = m.CPU.BrkFired()
	return cycles, nil
}

// RunRaster drives the machine for one raster line's worth of cycles, rendering
// the line if it falls in the visible window, and reports whether a full
// frame (312 lines) just completed. The caller is expected to call this in
// a loop and pace frame presentation itself (e.g. sleep 20ms after a
// completed frame), matching the single-threaded cooperative design: no
// component here suspends.
func (m *Machine) RunRaster() (frameDone bool, err error) {
	budget := CyclesPerRaster
	for budget > 0 {
		if m.Brk {
			return false, nil
		}
		used, stepErr := m.Step()
		if stepErr != nil {
			return false, stepErr
		}
		budget -= used
	}

	if m.raster >= RasterVisibleFirst && m.raster <= RasterVisibleLast {
		m.renderLine(m.raster - RasterVisibleFirst)
	}

	m.raster++
	if m.raster >= RastersPerFrame {
		m.raster = 0
		return true, nil
	}
	return false, nil
}

// Frame returns the most recently rendered frame buffer, one palette index
// (0-7) per pixel.
func (m *Machine) Frame() [FrameHeight][FrameWidth]uint8 {
	return m.frame
}
