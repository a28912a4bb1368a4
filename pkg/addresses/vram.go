package addresses

import "fmt"

// Vram is an opaque 32-bit virtual runtime address.
type Vram uint32

// VramOffset is a signed difference between two Vram addresses.
type VramOffset int32

// Sub returns the signed offset (r - rhs).
func (r Vram) Sub(rhs Vram) VramOffset {
	return VramOffset(int64(r) - int64(rhs))
}

// AddOffset returns r shifted by a signed offset.
func (r Vram) AddOffset(off VramOffset) Vram {
	return Vram(int64(r) + int64(off))
}

// AddSize returns r advanced by size bytes.
func (r Vram) AddSize(size Size) Vram {
	return Vram(uint32(r) + uint32(size))
}

// Inner returns the raw 32-bit value.
func (r Vram) Inner() uint32 {
	return uint32(r)
}

func (r Vram) String() string {
	return fmt.Sprintf("Vram{0x%08X}", uint32(r))
}

func (o VramOffset) Inner() int32 {
	return int32(o)
}

func (o VramOffset) String() string {
	if o < 0 {
		return fmt.Sprintf("VramOffset{-0x%X}", uint32(-o))
	}
	return fmt.Sprintf("VramOffset{0x%X}", uint32(o))
}
