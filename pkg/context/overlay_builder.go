package context

import (
	"github.com/mipsdisasm/spimdisasm/pkg/addresses"
	"github.com/mipsdisasm/spimdisasm/pkg/config"
	"github.com/mipsdisasm/spimdisasm/pkg/metadata"
	"github.com/mipsdisasm/spimdisasm/pkg/overlay"
	"github.com/mipsdisasm/spimdisasm/pkg/segment"
)

// ContextBuilderOverlay is the pipeline stage that collects overlay
// categories (spec.md §4.2). Calling AddOverlayCategory for a name that
// is never invoked is legal: that category simply never exists in the
// finished Context (SPEC_FULL.md item 6).
type ContextBuilderOverlay struct {
	cfg        config.GlobalConfig
	global     *segment.Segment
	platform   *segment.Segment
	categories map[metadata.OverlayCategoryName]*OverlaysBuilder
}

// AddOverlayCategory opens (or reopens) the named category's builder.
// Calling it twice with the same name accumulates into the same
// OverlaysBuilder rather than starting over.
func (b *ContextBuilderOverlay) AddOverlayCategory(name metadata.OverlayCategoryName) *OverlaysBuilder {
	if existing, ok := b.categories[name]; ok {
		return existing
	}
	ob := &OverlaysBuilder{name: name, parent: b}
	b.categories[name] = ob
	return ob
}

// Process closes the overlay stage and moves to the finder/heater/GOT
// stage, per spec.md §4.2's process().
func (b *ContextBuilderOverlay) Process() (*ContextBuilderFinderHeaterOverlays, error) {
	built := make(map[metadata.OverlayCategoryName]*overlay.Category, len(b.categories))
	for name, ob := range b.categories {
		if len(ob.segments) == 0 {
			continue
		}
		cat, err := overlay.NewCategory(name, ob.segments)
		if err != nil {
			return nil, err
		}
		built[name] = cat
	}

	return &ContextBuilderFinderHeaterOverlays{
		cfg:        b.cfg,
		global:     b.global,
		platform:   b.platform,
		categories: built,
	}, nil
}

// OverlaysBuilder accumulates the member segments of a single overlay
// category (spec.md §4.2, §3).
type OverlaysBuilder struct {
	name     metadata.OverlayCategoryName
	parent   *ContextBuilderOverlay
	segments []*segment.Segment
}

// AddSegment declares one overlay within this category, given the
// Rom/Vram range it occupies. Returns a SegmentModifier so the caller
// can immediately attach user symbols/labels to it.
func (b *OverlaysBuilder) AddSegment(name string, ranges addresses.RomVramRange) *SegmentModifier {
	cat := b.name
	s := segment.NewSegment(name, ranges, &cat)
	b.segments = append(b.segments, s)
	return &SegmentModifier{segment: s}
}

// EndOverlayCategory returns to the overlay stage so the caller can
// declare another category or call Process.
func (b *OverlaysBuilder) EndOverlayCategory() *ContextBuilderOverlay {
	return b.parent
}

// SegmentModifier lets the caller attach user-declared symbols, labels,
// and ignored ranges to a single overlay segment right after declaring
// it (spec.md §4.2).
type SegmentModifier struct {
	segment *segment.Segment
}

func (m *SegmentModifier) AddUserSymbol(vram addresses.Vram, symType metadata.SymbolType) (*metadata.SymbolMetadata, error) {
	sym, err := m.segment.AddSymbol(vram, symType, metadata.UserDeclared)
	if err != nil {
		return nil, &AddUserSymbolError{Vram: vram, Reason: err.Error()}
	}
	sym.SetUserDeclaredType(symType)
	return sym, nil
}

func (m *SegmentModifier) AddUserLabel(vram addresses.Vram, labelType metadata.LabelType) (*metadata.ReferencedLabel, error) {
	label, err := m.segment.AddUserLabel(vram, labelType)
	if err != nil {
		return nil, &AddUserSymbolError{Vram: vram, Reason: err.Error()}
	}
	return label, nil
}

func (m *SegmentModifier) AddIgnoredRange(vram addresses.Vram, size addresses.Size) {
	m.segment.AddIgnoredRange(vram, size)
}

func (m *SegmentModifier) Segment() *segment.Segment { return m.segment }
