// Package addresses provides the address and size primitives shared by the
// rest of the analysis core: ROM file offsets, VRAM addresses, sizes, and
// the half-open ranges built on top of them.
package addresses

import "fmt"

// Rom is an opaque 32-bit file offset into the loaded binary.
type Rom uint32

// Sub returns the Size between two Rom offsets. Panics if rhs is greater
// than the receiver; callers that can't guarantee ordering should compare
// first.
func (r Rom) Sub(rhs Rom) Size {
	if rhs > r {
		panic(fmt.Sprintf("addresses: Rom subtraction underflow: %s - %s", r, rhs))
	}
	return Size(r - rhs)
}

// AddSize returns r advanced by size bytes.
func (r Rom) AddSize(size Size) Rom {
	return Rom(uint32(r) + uint32(size))
}

// Inner returns the raw 32-bit value.
func (r Rom) Inner() uint32 {
	return uint32(r)
}

func (r Rom) String() string {
	return fmt.Sprintf("Rom{0x%08X}", uint32(r))
}
