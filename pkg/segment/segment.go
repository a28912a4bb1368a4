// Package segment implements the segment store (spec.md §3, §4.1):
// the address-keyed symbol, label, and ignored-range tables that a
// single overlay or the global segment owns.
package segment

import (
	"github.com/mipsdisasm/spimdisasm/pkg/addresses"
	"github.com/mipsdisasm/spimdisasm/pkg/metadata"
)

// Segment owns a RomVramRange, an optional overlay category name, and
// the three ordered tables described in spec.md §3.
type Segment struct {
	name           string
	ranges         addresses.RomVramRange
	overlayCategory *metadata.OverlayCategoryName

	symbols        orderedSymbolMap
	labels         orderedLabelMap
	ignoredRanges  orderedIgnoredRangeMap
}

// NewSegment creates an empty segment covering ranges. overlayCategory
// is nil for the global segment.
func NewSegment(name string, ranges addresses.RomVramRange, overlayCategory *metadata.OverlayCategoryName) *Segment {
	return &Segment{name: name, ranges: ranges, overlayCategory: overlayCategory}
}

func (s *Segment) Name() string                         { return s.name }
func (s *Segment) RomVramRange() addresses.RomVramRange { return s.ranges }
func (s *Segment) VramRange() addresses.AddressRange[addresses.Vram] {
	return s.ranges.Vram()
}
func (s *Segment) OverlayCategory() *metadata.OverlayCategoryName { return s.overlayCategory }

// IsGlobal reports whether this is the global segment (no overlay
// category).
func (s *Segment) IsGlobal() bool { return s.overlayCategory == nil }

// AddSymbol creates or merges a symbol entry at vram (spec.md §4.1).
func (s *Segment) AddSymbol(vram addresses.Vram, symType metadata.SymbolType, generatedBy metadata.GeneratedBy) (*metadata.SymbolMetadata, error) {
	if !s.ranges.Vram().InRange(vram) {
		return nil, &AddSymbolError{Vram: vram, SegmentName: s.name, SegmentVram: s.ranges.Vram()}
	}
	return s.addSymbolUnchecked(vram, symType, generatedBy), nil
}

// AddSymbolUnranged is AddSymbol without the containment check, for
// segments like the platform symbol table that aren't backed by a
// single contiguous RomVramRange (spec.md §4.2).
func (s *Segment) AddSymbolUnranged(vram addresses.Vram, symType metadata.SymbolType, generatedBy metadata.GeneratedBy) *metadata.SymbolMetadata {
	return s.addSymbolUnchecked(vram, symType, generatedBy)
}

func (s *Segment) addSymbolUnchecked(vram addresses.Vram, symType metadata.SymbolType, generatedBy metadata.GeneratedBy) *metadata.SymbolMetadata {
	sym := metadata.NewSymbolMetadata(vram, symType, generatedBy)
	existing, found := s.symbols.insert(sym)
	if found {
		existing.MergeFrom(generatedBy, symType)
		return existing
	}
	return existing
}

// AddLabel creates or merges a label entry at vram (spec.md §4.1, §4.3).
func (s *Segment) AddLabel(vram addresses.Vram, labelType metadata.LabelType) (*metadata.ReferencedLabel, error) {
	if !s.ranges.Vram().InRange(vram) {
		return nil, &AddLabelError{Vram: vram, SegmentName: s.name, SegmentVram: s.ranges.Vram()}
	}

	label := metadata.NewReferencedLabel(vram, labelType)
	existing, found := s.labels.insert(label)
	if found {
		existing.SetAutodetectedType(labelType)
		return existing, nil
	}
	return existing, nil
}

// AddUserLabel declares a label whose type the user fixed explicitly; it
// can never be downgraded by later autodetection.
func (s *Segment) AddUserLabel(vram addresses.Vram, labelType metadata.LabelType) (*metadata.ReferencedLabel, error) {
	if !s.ranges.Vram().InRange(vram) {
		return nil, &AddLabelError{Vram: vram, SegmentName: s.name, SegmentVram: s.ranges.Vram()}
	}
	label := metadata.NewUserDeclaredLabel(vram, labelType)
	existing, found := s.labels.insert(label)
	if found {
		return existing, nil
	}
	return existing, nil
}

// AddIgnoredRange records a span of VRAM in this segment's ignored-range
// table; IsIgnored reports membership. FindSymbol and the preheater do
// not consult the table.
func (s *Segment) AddIgnoredRange(vram addresses.Vram, size addresses.Size) {
	s.ignoredRanges.insert(metadata.NewIgnoredAddressRange(vram, size))
}

// IsIgnored reports whether addr falls inside any ignored range.
func (s *Segment) IsIgnored(addr addresses.Vram) bool {
	return s.ignoredRanges.Contains(addr)
}

// FindSymbol implements the lookup contract of spec.md §4.1.
func (s *Segment) FindSymbol(vram addresses.Vram, settings FindSettings) *metadata.SymbolMetadata {
	return s.symbols.Find(vram, settings)
}

// FindLabel is an exact lookup; labels have no addended variant.
func (s *Segment) FindLabel(vram addresses.Vram) *metadata.ReferencedLabel {
	return s.labels.Find(vram)
}

// Symbols returns every symbol in ascending Vram order.
func (s *Segment) Symbols() []*metadata.SymbolMetadata { return s.symbols.All() }

// Labels returns every label in ascending Vram order.
func (s *Segment) Labels() []*metadata.ReferencedLabel { return s.labels.All() }

// IgnoredRanges returns every ignored range in ascending Vram order.
func (s *Segment) IgnoredRanges() []metadata.IgnoredAddressRange { return s.ignoredRanges.All() }
