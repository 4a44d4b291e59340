package oric

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMachineResetsThroughResetVector(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.Bus.ram[0xFFFC] = 0x00
	m.Bus.ram[0xFFFD] = 0x90
	m.CPU.Reset()
	assert.Equal(t, uint16(0x9000), m.CPU.Snapshot().PC)
}

func TestWritesAboveROMBaseAreDiscarded(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.Bus.Write(0xC000, 0xAA)
	assert.Equal(t, uint8(0), m.Bus.Read(0xC000))
}

func TestVIAWindowBypassesRAM(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.Bus.Write(0x0300+uint16(2), 0xFF) // DDRB: all port B bits are outputs.
	m.Bus.Write(0x0300+uint16(0), 0x42) // ORB
	assert.Equal(t, uint8(0x42), m.VIA.Read(0))
}

func TestStepReturnsInstructionCycles(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.Bus.ram[0xFFFC] = 0x00
	m.Bus.ram[0xFFFD] = 0x10
	m.CPU.Reset()
	m.Bus.ram[0x1000] = 0xEA // NOP

	cycles, err := m.Step()
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	assert.Equal(t, 2, cycles)
}

func TestRunRasterStopsOnBRK(t *testing.T) {
	m, err := New()
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	m.Bus.ram[0xFFFC] = 0x00
	m.Bus.ram[0xFFFD] = 0x10
	m.CPU.Reset()
	m.Bus.ram[0x1000] = 0x00 // BRK

	_, err = m.RunRaster()
	if err != nil {
		t.Fatalf("RunRaster: %v", err)
	}
	assert.True(t, m.Brk)
}
