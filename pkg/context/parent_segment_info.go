package context

import (
	"github.com/mipsdisasm/spimdisasm/pkg/addresses"
	"github.com/mipsdisasm/spimdisasm/pkg/metadata"
)

// ParentSegmentInfo identifies which specific segment a section or
// symbol belongs to: the global segment (OverlayCategoryName is nil), or
// one particular overlay segment within a category, named by the Rom at
// which that overlay starts. It is the disambiguator the preheater uses
// when several overlapping overlay segments could all contain a given
// Vram (spec.md §4.6: "choosing the segment by containment ... by the
// active parent-segment path").
type ParentSegmentInfo struct {
	SegmentRom          addresses.Rom
	SegmentVram         addresses.Vram
	OverlayCategoryName *metadata.OverlayCategoryName
}

// IsGlobal reports whether this info names the global segment.
func (p ParentSegmentInfo) IsGlobal() bool { return p.OverlayCategoryName == nil }
