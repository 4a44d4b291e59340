// Package via implements the MOS 6522 Versatile Interface Adapter as wired
// in the Oric-1/Atmos: port A carries the AY-3-8912 PSG's data bus, with CA2
// and CB2 driving the PSG's BC1 and BDIR bus-control lines; port B carries
// the keyboard row select and sense line; CB1 receives the tape deck's
// pulse train.
package via

import "github.com/pugo/oric-go/io"

// Register is one of the 16 addressable VIA registers (a_Offset & 0x0F on
// real hardware).
type Register uint8

const (
	ORB Register = iota
	ORA
	DDRB
	DDRA
	T1CL
	T1CH
	T1LL
	T1LH
	T2CL
	T2CH
	SR
	ACR
	PCR
	IFR
	IER
	ORA2 // Same as ORA but does not affect CA1/CA2 handshake state.
)

// IFR/IER interrupt source bits.
const (
	IRQCA2 = uint8(0x01)
	IRQCA1 = uint8(0x02)
	IRQSR  = uint8(0x04)
	IRQCB2 = uint8(0x08)
	IRQCB1 = uint8(0x10)
	IRQT2  = uint8(0x20)
	IRQT1  = uint8(0x40)
	IRQAny = uint8(0x80)
)

// PCR bit masks.
const (
	pcrMaskCA1 = uint8(0x01)
	pcrMaskCA2 = uint8(0x0E)
	pcrMaskCB1 = uint8(0x10)
	pcrMaskCB2 = uint8(0xE0)
)

// Chip holds the full register state of one 6522.
type Chip struct {
	ora, ddra uint8
	ira       uint8
	orb, ddrb uint8
	irb       uint8

	ca1, ca2 bool
	ca2Pulse bool
	cb1, cb2 bool
	cb2Pulse bool

	t1Latch  uint16
	t1Count  int32
	t1Run    bool
	t2Latch  uint16
	t2Count  int32
	t2Run    bool

	sr, acr, pcr uint8
	ifr, ier     uint8

	// inputB supplies the current state of port B's input lines (e.g. the
	// keyboard matrix row select feeds back a column readout here).
	inputB io.Port8

	ca2Listener io.LevelListener
	cb2Listener io.LevelListener

	irqRaised bool // Level cache: true whenever (ifr & ier & 0x7f) != 0.
}

// ChipDef configures a new VIA.
type ChipDef struct {
	// InputB optionally supplies live port-B input bits (e.g. keyboard
	// column readback); a nil value behaves as if those bits were always 1.
	InputB io.Port8
	// CA2Listener/CB2Listener are notified whenever the CA2/CB2 handshake
	// line changes state (oric.New wires them to the PSG's BC1 and BDIR).
	CA2Listener io.LevelListener
	CB2Listener io.LevelListener
}

// Init returns a powered-on 6522.
func Init(def *ChipDef) *Chip {
	c := &Chip{
		inputB:      def.InputB,
		ca2Listener: def.CA2Listener,
		cb2Listener: def.CB2Listener,
	}
	c.Reset()
	return c
}

// Reset returns every register to its documented power-on state.
func (c *Chip) Reset() {
	c.ora, c.ddra, c.ira = 0, 0, 0
	c.orb, c.ddrb, c.irb = 0, 0, 0
	c.ca1, c.ca2, c.ca2Pulse = false, false, false
	c.cb1, c.cb2, c.cb2Pulse = false, false, false
	c.t1Latch, c.t1Count, c.t1Run = 0, 0, false
	c.t2Latch, c.t2Count, c.t2Run = 0, 0, false
	c.sr, c.acr, c.pcr = 0, 0, 0
	c.ifr, c.ier = 0, 0
	c.irqRaised = false
}

// Raised implements irq.Sender: the VIA asserts IRQ whenever any enabled
// interrupt flag is set.
func (c *Chip) Raised() bool {
	return c.irqRaised
}

// Step advances the VIA by the given number of CPU cycles, decrementing
// both timers and delivering any pending CA2/CB2 pulse. Order matches the
// original firmware's Exec: pulses resolve before timers decrement.
func (c *Chip) Step(cycles int) {
	if c.ca2Pulse {
		c.ca2 = true
		c.ca2Pulse = false
		c.notifyCA2()
	}
	if c.cb2Pulse {
		c.cb2 = true
		c.cb2Pulse = false
		c.notifyCB2()
	}

	c.t1Count -= int32(cycles)
	if c.t1Count < 0 {
		switch c.acr & 0xC0 {
		case 0x00, 0x80: // One-shot.
			if c.t1Run {
				c.irqSet(IRQT1)
				c.t1Run = false
			}
			c.t1Count &= 0xFFFF
		case 0x40, 0xC0: // Continuous.
			if c.t1Run {
				c.irqSet(IRQT1)
			}
			c.t1Count += int32(c.t1Latch) + 2 // +2: boundary/reload compensation.
		}
	}

	c.t2Count -= int32(cycles)
	if c.t2Count < 0 {
		if c.t2Run {
			c.irqSet(IRQT2)
		}
		c.t2Count &= 0xFFFF
	}
}

// Read returns the value of an addressable register, applying read-time
// side effects (IRQ-flag clearing, CA2/CB2 auto-handshake).
func (c *Chip) Read(reg Register) uint8 {
	switch reg {
	case ORB:
		c.irqClear(IRQCB1)
		switch c.pcr & pcrMaskCB2 {
		case 0x00, 0x40:
			c.irqClear(IRQCB2)
		case 0x80:
			c.cb2 = false
			c.notifyCB2()
		case 0xA0:
			c.cb2 = false
			c.cb2Pulse = true
			c.notifyCB2()
		}
		return (c.orb & c.ddrb) | (c.inputByte() &^ c.ddrb)
	case ORA, ORA2:
		if reg == ORA {
			c.irqClear(IRQCA1)
			switch c.pcr & pcrMaskCA2 {
			case 0x00, 0x04:
				c.irqClear(IRQCA2)
			case 0x08:
				c.ca2 = false
				c.notifyCA2()
			case 0x0A:
				c.ca2 = false
				c.ca2Pulse = true
				c.notifyCA2()
			}
		}
		return (c.ora & c.ddra) | (c.ira &^ c.ddra)
	case DDRB:
		return c.ddrb
	case DDRA:
		return c.ddra
	case T1CL:
		c.irqClear(IRQT1)
		return uint8(c.t1Count & 0xFF)
	case T1CH:
		return uint8(c.t1Count >> 8)
	case T1LL:
		return uint8(c.t1Latch & 0xFF)
	case T1LH:
		return uint8(c.t1Latch >> 8)
	case T2CL:
		c.irqClear(IRQT2)
		return uint8(c.t2Count & 0xFF)
	case T2CH:
		return uint8(c.t2Count >> 8)
	case SR:
		c.irqClear(IRQSR)
		return c.sr
	case ACR:
		return c.acr
	case PCR:
		return c.pcr
	case IFR:
		return c.ifr
	case IER:
		return c.ier | 0x80
	}
	return 0
}

// Write updates an addressable register, applying write-time side effects.
func (c *Chip) Write(reg Register, v uint8) {
	switch reg {
	case ORB:
		c.orb = v
		c.irqClear(IRQCB1)
		switch c.pcr & pcrMaskCB2 {
		case 0x00, 0x40:
			c.irqClear(IRQCB2)
		case 0x80:
			c.cb2 = false
			c.notifyCB2()
		case 0xA0:
			c.cb2 = false
			c.cb2Pulse = true
			c.notifyCB2()
		}
	case ORA, ORA2:
		c.ora = v
		if reg == ORA {
			c.irqClear(IRQCA1)
			switch c.pcr & pcrMaskCA2 {
			case 0x00, 0x04:
				c.irqClear(IRQCA2)
			case 0x08:
				c.ca2 = false
				c.notifyCA2()
			case 0x0A:
				c.ca2 = false
				c.ca2Pulse = true
				c.notifyCA2()
			}
		}
	case DDRB:
		c.ddrb = v
	case DDRA:
		c.ddra = v
	case T1CL:
		c.t1Latch = (c.t1Latch & 0xFF00) | uint16(v)
	case T1CH:
		c.t1Latch = (uint16(v) << 8) | (c.t1Latch & 0x00FF)
		c.t1Count = int32(c.t1Latch)
		c.t1Run = true
		c.irqClear(IRQT1)
	case T1LL:
		c.t1Latch = (c.t1Latch & 0xFF00) | uint16(v)
	case T1LH:
		c.t1Latch = (uint16(v) << 8) | (c.t1Latch & 0x00FF)
		c.irqClear(IRQT1)
	case T2CL:
		c.t2Latch = (c.t2Latch & 0xFF00) | uint16(v)
	case T2CH:
		c.t2Latch = (uint16(v) << 8) | (c.t2Latch & 0x00FF)
		c.t2Count = int32(c.t2Latch)
		c.t2Run = true
		c.irqClear(IRQT2)
	case SR:
		c.sr = v
		c.irqClear(IRQSR)
	case ACR:
		c.acr = v
	case PCR:
		c.pcr = v
		// Manual output modes set the line immediately from the new PCR bits.
		if c.pcr&0x0C == 0x0C {
			c.ca2 = c.pcr&0x02 != 0
			c.notifyCA2()
		}
		if c.pcr&0xC0 == 0xC0 {
			c.cb2 = c.pcr&0x20 != 0
			c.notifyCB2()
		}
	case IFR:
		// Each 1 bit clears the corresponding flag.
		c.ifr &= (^v) & 0x7F
		if c.ifr&c.ier != 0 {
			c.ifr |= 0x80
		}
		c.refreshIRQ()
	case IER:
		if v&0x80 != 0 {
			c.ier |= v & 0x7F
		} else {
			c.ier &^= v & 0x7F
		}
		c.refreshIRQ()
	}
}

func (c *Chip) inputByte() uint8 {
	if c.inputB == nil {
		return 0xFF
	}
	return c.inputB.Input()
}

func (c *Chip) irqSet(bits uint8) {
	c.ifr |= bits
	if (c.ifr&c.ier)&0x7F != 0 {
		c.ifr |= 0x80
	}
	if bits&c.ier != 0 {
		c.irqRaised = true
	}
}

func (c *Chip) irqClear(bits uint8) {
	c.ifr &^= bits
	if (c.ifr & c.ier & 0x7F) == 0 {
		c.ifr &= 0x7F
		c.irqRaised = false
	}
}

func (c *Chip) refreshIRQ() {
	c.irqRaised = (c.ifr & c.ier & 0x7F) != 0
}

func (c *Chip) notifyCA2() {
	if c.ca2Listener != nil {
		c.ca2Listener.LevelChanged(c.ca2)
	}
}

func (c *Chip) notifyCB2() {
	if c.cb2Listener != nil {
		c.cb2Listener.LevelChanged(c.cb2)
	}
}

// WriteCA1 drives the CA1 handshake input line.
func (c *Chip) WriteCA1(v bool) {
	if c.ca1 == v {
		return
	}
	c.ca1 = v
	if (c.ca1 && c.pcr&pcrMaskCA1 != 0) || (!c.ca1 && c.pcr&pcrMaskCA1 == 0) {
		c.irqSet(IRQCA1)
		if !c.ca2 && c.pcr&pcrMaskCA2 == 0x08 {
			c.ca2 = true
			c.notifyCA2()
		}
	}
}

// WriteCA2 drives the CA2 handshake input line (only meaningful when PCR
// configures CA2 as an input).
func (c *Chip) WriteCA2(v bool) {
	if c.ca2 == v {
		return
	}
	c.ca2 = v
	if (c.ca2 && c.pcr&0x0C == 0x04) || (!c.ca2 && c.pcr&0x0C == 0x00) {
		c.irqSet(IRQCA2)
	}
	c.notifyCA2()
}

// WriteCB1 drives the CB1 handshake input line.
func (c *Chip) WriteCB1(v bool) {
	if c.cb1 == v {
		return
	}
	c.cb1 = v
	if (c.cb1 && c.pcr&pcrMaskCB1 != 0) || (!c.cb1 && c.pcr&pcrMaskCB1 == 0) {
		c.irqSet(IRQCB1)
		if !c.cb2 && c.pcr&pcrMaskCB2 == 0x80 {
			c.cb2 = true
			c.notifyCB2()
		}
	}
}

// WriteCB2 drives the CB2 handshake input line. The corresponding check in
// the original firmware tested ca2 instead of cb2 here; that's fixed below
// so the negative-edge branch actually looks at this line's own state.
func (c *Chip) WriteCB2(v bool) {
	if c.cb2 == v {
		return
	}
	c.cb2 = v
	if (c.cb2 && c.pcr&0xC0 == 0x40) || (!c.cb2 && c.pcr&0xC0 == 0x00) {
		c.irqSet(IRQCB2)
	}
	c.notifyCB2()
}

// Debug returns a one-line register dump for the monitor's "v" command.
func (c *Chip) Debug() string {
	return "ORA=" + hex8(c.ora) + " DDRA=" + hex8(c.ddra) +
		" ORB=" + hex8(c.orb) + " DDRB=" + hex8(c.ddrb) +
		" T1C=" + hex16(uint16(c.t1Count)) + " T1L=" + hex16(c.t1Latch) +
		" T2C=" + hex16(uint16(c.t2Count)) + " T2L=" + hex16(c.t2Latch) +
		" ACR=" + hex8(c.acr) + " PCR=" + hex8(c.pcr) +
		" IFR=" + hex8(c.ifr) + " IER=" + hex8(c.ier|0x80)
}

const hexDigits = "0123456789ABCDEF"

func hex8(v uint8) string {
	return string([]byte{hexDigits[v>>4], hexDigits[v&0x0F]})
}

func hex16(v uint16) string {
	return hex8(uint8(v>>8)) + hex8(uint8(v))
}
