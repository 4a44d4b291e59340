package oric

// Keyboard implements the Oric's 8x8 key matrix: VIA port B selects a row
// (bits 0-2), and the selected row's column bits are read back combined
// with the PSG's I/O port A, which acts as a column mask.
type Keyboard struct {
	rows [8]uint8

	// psgPortA mirrors the PSG's IOPortA register, used as an active-low
	// column mask the way the real hardware wires it.
	psgPortA uint8

	currentRow uint8
}

// KeyDown records a key transition. keyBits packs the matrix position as
// row<<3|column, matching the Oric's physical key numbering.
func (k *Keyboard) KeyDown(keyBits uint8, down bool) {
	row := keyBits >> 3
	bit := uint8(1) << (keyBits & 0x07)
	if down {
		k.rows[row] |= bit
	} else {
		k.rows[row] &^= bit
	}
}

// SelectRow is driven by the VIA's ORB write (the low 3 bits pick the
// active row).
func (k *Keyboard) SelectRow(orb uint8) {
	k.currentRow = orb & 0x07
}

// SetColumnMask mirrors the PSG's I/O port A register, which gates which
// columns of the active row are visible.
func (k *Keyboard) SetColumnMask(v uint8) {
	k.psgPortA = v
}

// Pressed reports whether any unmasked key is currently down in the
// selected row, which the VIA's port B bit 3 (the keyboard sense line)
// reflects back to the CPU.
func (k *Keyboard) Pressed() bool {
	return k.rows[k.currentRow]&(k.psgPortA^0xFF) != 0
}

// Input implements io.Port8 for the VIA's port-B input callback: every bit
// reads high except bit 3, which reflects Pressed().
func (k *Keyboard) Input() uint8 {
	v := uint8(0xFF)
	if k.Pressed() {
		v |= 0x08
	} else {
		v &^= 0x08
	}
	return v
}
