// Package monitor implements a bubbletea-driven interactive debugger for a
// running oric.Machine: single-step, register/VIA/PSG dumps, a disassembly
// window around the program counter, and a quit command. Entered whenever
// the machine hits a BRK or the "-monitor" flag starts the machine paused.
package monitor

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pugo/oric-go/disassemble"
	"github.com/pugo/oric-go/oric"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true)
	pcStyle     = lipgloss.NewStyle().Reverse(true)
)

type model struct {
	machine *oric.Machine
	quiet   bool
	err     error
	status  string
}

// New returns a bubbletea program attached to machine.
func New(machine *oric.Machine) *tea.Program {
	return tea.NewProgram(model{machine: machine})
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "s": // Step one instruction.
		if _, err := m.machine.Step(); err != nil {
			m.err = err
			m.status = err.Error()
		} else {
			m.status = "stepped"
		}

	case "g": // Go: run until the next BRK.
		for {
			_, err := m.machine.Step()
			if err != nil {
				m.err = err
				m.status = err.Error()
				break
			}
			if m.machine.Brk {
				m.status = "hit BRK"
				break
			}
		}

	case "i": // Inspect: disassemble around PC.
		m.status = m.disassembleWindow()

	case "v": // VIA register dump.
		m.status = m.machine.VIA.Debug()

	case "p": // PSG register dump.
		m.status = m.machine.PSG.Debug()

	case "quiet":
		m.quiet = !m.quiet
	}

	return m, nil
}

func (m model) View() string {
	snap := m.machine.CPU.Snapshot()
	regs := fmt.Sprintf(
		"PC=%.4X A=%.2X X=%.2X Y=%.2X S=%.2X P=%.2X cyc=%d",
		snap.PC, snap.A, snap.X, snap.Y, snap.S, snap.P, snap.Cycles,
	)

	lines := []string{
		headerStyle.Render("oric monitor"),
		regs,
		"",
		m.disassembleWindow(),
		"",
	}
	if m.status != "" {
		lines = append(lines, m.status, "")
	}
	lines = append(lines, "[s]tep  [g]o  [i]nspect  [v]ia  [p]sg  [q]uit")
	return strings.Join(lines, "\n")
}

// disassembleWindow renders a handful of instructions starting at PC.
func (m model) disassembleWindow() string {
	pc := m.machine.CPU.Snapshot().PC
	var b strings.Builder
	for i := 0; i < 8; i++ {
		text, n := disassemble.Step(pc, m.machine.Bus)
		line := fmt.Sprintf("%.4X  %s", pc, text)
		if i == 0 {
			line = pcStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteByte('\n')
		pc += uint16(n)
	}
	return b.String()
}
