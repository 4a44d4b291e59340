// Package memory defines the basic interfaces for working
// with a 6502 family memory map. Since each implementation
// that is emulated has specific mappings (including shadowed
// regions) this is defined as an interface.
package memory

type Bank interface {
	// Read returns the data byte stored at addr.
	Read(addr uint16) uint8
	// Write updates addr with the new value. For ROM addresses this is simply a no-op without
	// any error.
	Write(addr uint16, val uint8)
	// PowerOn performs power on reset of the memory. This is implementation specific as to
	// whether it's randomized or preset to all zeros.
	PowerOn()
	// Parent holds a reference (if non-nil) to the next level memory controller. A chain
	// of these can be created in order to find the top one and be able to query items
	// such as the databus state (from the last value to go over it). Some implementations
	// depend on transient databus state due to side effects.
	Parent() Bank
	// DatabusVal returns the last value seen to go across on the data bus.
	DatabusVal() uint8
}
