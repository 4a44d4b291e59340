package oric

// Text-mode video RAM and character generator ROM base addresses.
const (
	textRAMBase = 0xBB80
	charROMBase = 0xB400
)

// Palette holds the 8 fixed colors text mode can address, as packed RGB.
var Palette = [8][3]uint8{
	{0x00, 0x00, 0x00}, // black
	{0xFF, 0x00, 0x00}, // red
	{0x00, 0xFF, 0x00}, // green
	{0xFF, 0xFF, 0x00}, // yellow
	{0x00, 0x00, 0xFF}, // blue
	{0xFF, 0x00, 0xFF}, // magenta
	{0x00, 0xFF, 0xFF}, // cyan
	{0xFF, 0xFF, 0xFF}, // white
}

// renderLine renders one visible scanline (y in [0, FrameHeight)) of the
// Oric's 40-column text mode into m.frame, tracking the running fg/bg
// color state the way the real video hardware's control bytes do.
func (m *Machine) renderLine(y int) {
	if y < 0 || y >= FrameHeight {
		return
	}
	fg, bg := uint8(7), uint8(0) // Power-on default: white on black.

	for col := 0; col < FrameWidth/6; col++ {
		addr := uint16(textRAMBase + (y/8)*40 + col)
		c := m.Bus.ram[addr]

		if c&0x60 == 0 {
			switch c & 0x18 {
			case 0x00:
				fg = c & 0x07
			case 0x10:
				bg = c & 0x07
			}
			for px := 0; px < 6; px++ {
				m.frame[y][col*6+px] = bg
			}
			continue
		}

		invert := c&0x80 != 0
		glyphRow := m.Bus.ram[uint16(charROMBase)+uint16(c&0x7F)*8+uint16(y%8)]

		for px := 0; px < 6; px++ {
			bit := glyphRow & (1 << uint(5-px))
			set := bit != 0
			if invert {
				set = !set
			}
			if set {
				m.frame[y][col*6+px] = fg
			} else {
				m.frame[y][col*6+px] = bg
			}
		}
	}
}
