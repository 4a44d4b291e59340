package psg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeBus struct{ val uint8 }

func (f *fakeBus) DataBus() uint8 { return f.val }

func TestLatchAddressThenLoadData(t *testing.T) {
	bus := &fakeBus{}
	c := Init(&ChipDef{Bus: bus})

	// Select register 8 (amplitude A): BC1 high, bus = 8, rising BDIR.
	bus.val = RegAmplitudeA
	c.SetBC1(true)
	c.SetBDIR(true)
	c.SetBDIR(false)

	// Load data: BC1 low, bus = 0x0F, rising BDIR.
	bus.val = 0x0F
	c.SetBC1(false)
	c.SetBDIR(true)

	assert.Equal(t, uint8(0x0F), c.Register(RegAmplitudeA))
}

func TestOutOfRangeAddressIsIgnored(t *testing.T) {
	bus := &fakeBus{}
	c := Init(&ChipDef{Bus: bus})

	bus.val = 0xFE // Not a valid register index.
	c.SetBC1(true)
	c.SetBDIR(true)
	c.SetBDIR(false)

	// Loading data now should still target whatever register was last valid
	// (0, from Reset), not crash or silently pick 0xFE.
	bus.val = 0x07
	c.SetBC1(false)
	c.SetBDIR(true)
	assert.Equal(t, uint8(0x07), c.Register(0))
}
