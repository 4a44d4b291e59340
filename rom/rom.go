// Package rom loads flat ROM binaries (the Oric's BASIC/boot ROM images)
// into a memory.Bank at a fixed base address.
package rom

import (
	"fmt"
	"os"

	"github.com/pugo/oric-go/memory"
)

// BadROM reports a ROM image that can't be loaded as requested.
type BadROM struct {
	Path   string
	Reason string
}

func (e BadROM) Error() string {
	return fmt.Sprintf("bad ROM %q: %s", e.Path, e.Reason)
}

// Load reads the file at path and writes it verbatim into bank starting at
// base. It does not reset bank first, since a ROM can legitimately be
// loaded into a window of a larger address space that's already populated.
func Load(bank memory.Bank, path string, base uint16) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return BadROM{Path: path, Reason: err.Error()}
	}
	if len(data) == 0 {
		return BadROM{Path: path, Reason: "empty file"}
	}
	if int(base)+len(data) > 1<<16 {
		return BadROM{Path: path, Reason: fmt.Sprintf("%d bytes at base 0x%.4X overruns 64k", len(data), base)}
	}
	for i, b := range data {
		bank.Write(base+uint16(i), b)
	}
	return nil
}
