package metadata

import "github.com/mipsdisasm/spimdisasm/pkg/addresses"

// IgnoredAddressRange marks a span of VRAM in a segment's ignored-range
// table (spec.md §3). Segment.IsIgnored queries these spans; the
// preheater does not, so references into them are still promoted.
type IgnoredAddressRange struct {
	vram addresses.Vram
	size addresses.Size
}

func NewIgnoredAddressRange(vram addresses.Vram, size addresses.Size) IgnoredAddressRange {
	return IgnoredAddressRange{vram: vram, size: size}
}

func (r IgnoredAddressRange) Vram() addresses.Vram { return r.vram }
func (r IgnoredAddressRange) Size() addresses.Size { return r.size }

// Contains reports whether addr falls inside this ignored range.
func (r IgnoredAddressRange) Contains(addr addresses.Vram) bool {
	end := r.vram.AddSize(r.size)
	return r.vram <= addr && addr < end
}
