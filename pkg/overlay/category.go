// Package overlay implements the overlay registry (spec.md §3, §4.2):
// named groups of mutually-exclusive segments, plus the placeholder
// segment that answers "does some segment in this category contain
// address X?" without picking a specific overlay.
package overlay

import (
	"github.com/mipsdisasm/spimdisasm/pkg/addresses"
	"github.com/mipsdisasm/spimdisasm/pkg/metadata"
	"github.com/mipsdisasm/spimdisasm/pkg/segment"
)

// Category is a named group of overlay segments (spec.md §3's "overlay
// category").
type Category struct {
	name        metadata.OverlayCategoryName
	segments    map[addresses.Rom]*segment.Segment
	placeholder *segment.Segment
}

// NewCategory builds a Category from at least one overlay segment,
// keyed by each segment's Rom range start. The placeholder segment's
// range is the union of every member's RomVramRange (spec.md §3;
// SPEC_FULL.md item 7: Rom and Vram sub-ranges expand independently).
func NewCategory(name metadata.OverlayCategoryName, segments []*segment.Segment) (*Category, error) {
	if len(segments) == 0 {
		return nil, ErrNoOverlaysAdded
	}

	union := segments[0].RomVramRange()
	byRom := make(map[addresses.Rom]*segment.Segment, len(segments))
	for _, s := range segments {
		for _, other := range byRom {
			if romRangesOverlap(s.RomVramRange().Rom(), other.RomVramRange().Rom()) {
				return nil, &OverlappingRomRangesError{Category: name, A: s.Name(), B: other.Name()}
			}
		}
		union.ExpandRanges(s.RomVramRange())
		byRom[s.RomVramRange().Rom().Start()] = s
	}

	placeholder := segment.NewSegment(string(name), union, &name)
	return &Category{name: name, segments: byRom, placeholder: placeholder}, nil
}

// ErrNoOverlaysAdded is returned by NewCategory when given zero segments.
// Per SPEC_FULL.md item 6 (and spec.md §9c), this is legal: callers that
// never invoke add_overlay_category for a name simply skip the stage.
var ErrNoOverlaysAdded = errNoOverlaysAdded{}

type errNoOverlaysAdded struct{}

func (errNoOverlaysAdded) Error() string {
	return "overlay: a category must contain at least one overlay segment"
}

func romRangesOverlap(a, b addresses.AddressRange[addresses.Rom]) bool {
	return a.Start() < b.End() && b.Start() < a.End()
}

// OverlappingRomRangesError is returned by NewCategory when two member
// segments' Rom ranges overlap, violating the per-category invariant of
// spec.md §3.
type OverlappingRomRangesError struct {
	Category metadata.OverlayCategoryName
	A, B     string
}

func (e *OverlappingRomRangesError) Error() string {
	return "overlay: segments '" + e.A + "' and '" + e.B + "' in category '" + string(e.Category) + "' have overlapping rom ranges"
}

func (c *Category) Name() metadata.OverlayCategoryName { return c.name }

// PlaceholderSegment returns the union-range segment used for
// containment queries across every member of this category.
func (c *Category) PlaceholderSegment() *segment.Segment { return c.placeholder }

// SegmentAtRom returns the specific overlay whose Rom range starts at
// rom, if any.
func (c *Category) SegmentAtRom(rom addresses.Rom) (*segment.Segment, bool) {
	s, ok := c.segments[rom]
	return s, ok
}

// Segments returns every member segment of this category, in no
// particular order (the map preserves no ordering; callers that need
// determinism should sort by Rom themselves).
func (c *Category) Segments() map[addresses.Rom]*segment.Segment { return c.segments }

// Contains reports whether addr falls within the placeholder's (union)
// vram range, i.e. whether *some* segment in this category might own
// it.
func (c *Category) Contains(addr addresses.Vram) bool {
	return c.placeholder.VramRange().InRange(addr)
}

// SegmentContaining returns the specific member segment whose vram
// range contains addr, if any is currently active. Overlay segments
// within one category may overlap in Vram (spec.md §3), so this
// iterates every member rather than assuming uniqueness.
func (c *Category) SegmentContaining(addr addresses.Vram) (*segment.Segment, bool) {
	for _, s := range c.segments {
		if s.VramRange().InRange(addr) {
			return s, true
		}
	}
	return nil, false
}
