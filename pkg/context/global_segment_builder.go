package context

import (
	"github.com/mipsdisasm/spimdisasm/pkg/addresses"
	"github.com/mipsdisasm/spimdisasm/pkg/config"
	"github.com/mipsdisasm/spimdisasm/pkg/metadata"
	"github.com/mipsdisasm/spimdisasm/pkg/segment"
)

// GlobalSegmentBuilder is the first stage of the pipeline (spec.md
// §4.2): it accumulates user symbols, user labels, platform symbols and
// ignored ranges against the single global segment before any overlay
// category exists.
type GlobalSegmentBuilder struct {
	cfg      config.GlobalConfig
	global   *segment.Segment
	platform *segment.Segment
}

// NewGlobalSegmentBuilder opens the pipeline with the global segment's
// address ranges, per spec.md §4.2's new_global_segment.
func NewGlobalSegmentBuilder(cfg config.GlobalConfig, ranges addresses.RomVramRange) *GlobalSegmentBuilder {
	return &GlobalSegmentBuilder{
		cfg:      cfg,
		global:   segment.NewSegment("global", ranges, nil),
		platform: segment.NewSegment("platform", addresses.RomVramRange{}, nil),
	}
}

// AddUserSymbol declares a symbol the user fixed explicitly; user
// declarations always take precedence over later autodetection
// (DESIGN.md, open question (d): a duplicate declaration merges).
func (b *GlobalSegmentBuilder) AddUserSymbol(vram addresses.Vram, symType metadata.SymbolType) (*metadata.SymbolMetadata, error) {
	sym, err := b.global.AddSymbol(vram, symType, metadata.UserDeclared)
	if err != nil {
		return nil, &AddUserSymbolError{Vram: vram, Reason: err.Error()}
	}
	sym.SetUserDeclaredType(symType)
	return sym, nil
}

// AddUserLabel declares a label the user fixed explicitly.
func (b *GlobalSegmentBuilder) AddUserLabel(vram addresses.Vram, labelType metadata.LabelType) (*metadata.ReferencedLabel, error) {
	label, err := b.global.AddUserLabel(vram, labelType)
	if err != nil {
		return nil, &AddUserSymbolError{Vram: vram, Reason: err.Error()}
	}
	return label, nil
}

// AddPlatformSymbol declares a symbol sourced from platform knowledge
// (libc/OS headers) rather than the binary under analysis itself
// (spec.md §4.2). Platform symbols live in their own segment so they
// never collide with addresses inside the binary's own ranges.
func (b *GlobalSegmentBuilder) AddPlatformSymbol(vram addresses.Vram, symType metadata.SymbolType) (*metadata.SymbolMetadata, error) {
	return b.platform.AddSymbolUnranged(vram, symType, metadata.UserDeclared), nil
}

// AddIgnoredRange records an address span in the global segment's
// ignored-range table, which Segment.IsIgnored answers from. The
// preheater does not consult that table: a reference landing inside an
// ignored span is still promoted into a symbol or label.
func (b *GlobalSegmentBuilder) AddIgnoredRange(vram addresses.Vram, size addresses.Size) {
	b.global.AddIgnoredRange(vram, size)
}

// FinishGlobalSegment closes this stage and moves to the overlay stage,
// per spec.md §4.2's finish_global_segment().
func (b *GlobalSegmentBuilder) FinishGlobalSegment() *ContextBuilderOverlay {
	return &ContextBuilderOverlay{
		cfg:        b.cfg,
		global:     b.global,
		platform:   b.platform,
		categories: make(map[metadata.OverlayCategoryName]*OverlaysBuilder),
	}
}
