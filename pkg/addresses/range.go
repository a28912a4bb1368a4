package addresses

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// AddressRange is a half-open [start, end) range over any ordered address
// type (Rom or Vram). The zero value is not valid; use NewAddressRange.
type AddressRange[T constraints.Ordered] struct {
	start T
	end   T
}

// NewAddressRange builds a half-open range. Returns an error if end < start
// instead of panicking, since malformed ranges routinely arrive from user
// or ELF input rather than only from programmer error.
func NewAddressRange[T constraints.Ordered](start, end T) (AddressRange[T], error) {
	if end < start {
		return AddressRange[T]{}, &InvalidRangeError{Start: fmt.Sprint(start), End: fmt.Sprint(end)}
	}
	return AddressRange[T]{start: start, end: end}, nil
}

// MustAddressRange is NewAddressRange for call sites that already know the
// range is well formed (e.g. built from sorted literal constants).
func MustAddressRange[T constraints.Ordered](start, end T) AddressRange[T] {
	r, err := NewAddressRange(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

func (r AddressRange[T]) Start() T { return r.start }
func (r AddressRange[T]) End() T   { return r.end }

// InRange reports whether start <= value < end.
func (r AddressRange[T]) InRange(value T) bool {
	return r.start <= value && value < r.end
}

// ExpandRange grows the receiver so it also covers other, taking the
// smaller start and the larger end of the two.
func (r *AddressRange[T]) ExpandRange(other AddressRange[T]) {
	if other.start < r.start {
		r.start = other.start
	}
	if other.end >= r.end {
		r.end = other.end
	}
}

func (r AddressRange[T]) String() string {
	return fmt.Sprintf("{%v, %v}", r.start, r.end)
}

// InvalidRangeError is returned by NewAddressRange when end < start.
type InvalidRangeError struct {
	Start, End string
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("addresses: range end %s is smaller than start %s", e.End, e.Start)
}

// RomSize returns the byte size of a Rom range.
func RomSize(r AddressRange[Rom]) Size {
	return r.end.Sub(r.start)
}

// VramSize returns the byte size of a Vram range, computed via the signed
// offset so the result stays correct even though Vram itself has no
// built-in notion of ordering beyond its raw value.
func VramSize(r AddressRange[Vram]) Size {
	size, err := NewSizeFromVramOffset(r.end.Sub(r.start))
	if err != nil {
		// end >= start is guaranteed by the constructor, so the offset
		// can never be negative here.
		panic(err)
	}
	return size
}
