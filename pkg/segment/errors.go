package segment

import (
	"fmt"

	"github.com/mipsdisasm/spimdisasm/pkg/addresses"
)

// AddSymbolError is raised by Segment.AddSymbol when the requested vram
// falls outside the segment's vram range (spec.md §4.1).
type AddSymbolError struct {
	Vram        addresses.Vram
	SegmentName string
	SegmentVram addresses.AddressRange[addresses.Vram]
}

func (e *AddSymbolError) Error() string {
	return fmt.Sprintf("segment: can't add symbol at %s to segment %q: out of range %s",
		e.Vram, e.SegmentName, e.SegmentVram)
}

// AddLabelError is the label equivalent of AddSymbolError.
type AddLabelError struct {
	Vram        addresses.Vram
	SegmentName string
	SegmentVram addresses.AddressRange[addresses.Vram]
}

func (e *AddLabelError) Error() string {
	return fmt.Sprintf("segment: can't add label at %s to segment %q: out of range %s",
		e.Vram, e.SegmentName, e.SegmentVram)
}
