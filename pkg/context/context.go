package context

import (
	"github.com/mipsdisasm/spimdisasm/pkg/addresses"
	"github.com/mipsdisasm/spimdisasm/pkg/config"
	"github.com/mipsdisasm/spimdisasm/pkg/got"
	"github.com/mipsdisasm/spimdisasm/pkg/metadata"
	"github.com/mipsdisasm/spimdisasm/pkg/overlay"
	"github.com/mipsdisasm/spimdisasm/pkg/segment"
)

// ContextBuilderFinderHeaterOverlays is the pipeline's last builder
// stage (spec.md §4.2): overlay categories are frozen, and the only
// remaining step is optionally attaching the Global Offset Table before
// calling Build.
type ContextBuilderFinderHeaterOverlays struct {
	cfg        config.GlobalConfig
	global     *segment.Segment
	platform   *segment.Segment
	categories map[metadata.OverlayCategoryName]*overlay.Category
	got        *got.GlobalOffsetTable
}

// AddGlobalOffsetTable attaches a parsed GOT. It's only legal once, and
// only when the global configuration's GpConfig says this binary is PIC
// (spec.md §4.2, §6).
func (b *ContextBuilderFinderHeaterOverlays) AddGlobalOffsetTable(table got.GlobalOffsetTable) error {
	if b.got != nil {
		return ErrGotAlreadyAdded
	}
	if !b.cfg.Pic() {
		return ErrGotNotPic
	}
	b.got = &table
	return nil
}

// Build finishes the pipeline, producing the immutable Context the rest
// of the analysis core reads from (spec.md §4.2).
func (b *ContextBuilderFinderHeaterOverlays) Build() *Context {
	return &Context{
		cfg:        b.cfg,
		global:     b.global,
		platform:   b.platform,
		categories: b.categories,
		got:        b.got,
	}
}

// Context is the finished, immutable product of the builder pipeline
// (spec.md §3, §4.2): the global segment, every overlay category, the
// platform symbol table, the global configuration, and (for PIC
// binaries) the Global Offset Table.
type Context struct {
	cfg        config.GlobalConfig
	global     *segment.Segment
	platform   *segment.Segment
	categories map[metadata.OverlayCategoryName]*overlay.Category
	got        *got.GlobalOffsetTable
}

func (c *Context) GlobalConfig() config.GlobalConfig { return c.cfg }
func (c *Context) GlobalSegment() *segment.Segment    { return c.global }
func (c *Context) PlatformSegment() *segment.Segment  { return c.platform }

// GlobalOffsetTable returns the attached GOT, if any.
func (c *Context) GlobalOffsetTable() (*got.GlobalOffsetTable, bool) {
	if c.got == nil {
		return nil, false
	}
	return c.got, true
}

// OverlayCategory looks up a category by name.
func (c *Context) OverlayCategory(name metadata.OverlayCategoryName) (*overlay.Category, bool) {
	cat, ok := c.categories[name]
	return cat, ok
}

// OverlayCategories returns every overlay category, keyed by name.
func (c *Context) OverlayCategories() map[metadata.OverlayCategoryName]*overlay.Category {
	return c.categories
}

// FindSegment resolves which segment owns vram, given the caller's
// current parent-segment path (spec.md §4.6): the global segment always
// wins if it contains vram, then the segment named by parent (if it's
// an overlay and still contains vram), then any other overlay category
// whose placeholder contains vram.
func (c *Context) FindSegment(vram addresses.Vram, parent ParentSegmentInfo) (*segment.Segment, bool) {
	if c.global.VramRange().InRange(vram) {
		return c.global, true
	}

	if !parent.IsGlobal() {
		if cat, ok := c.categories[*parent.OverlayCategoryName]; ok {
			if s, ok := cat.SegmentAtRom(parent.SegmentRom); ok && s.VramRange().InRange(vram) {
				return s, true
			}
		}
	}

	for _, cat := range c.categories {
		if s, ok := cat.SegmentContaining(vram); ok {
			return s, true
		}
	}
	return nil, false
}

// FindSymbol resolves a symbol the same way FindSegment resolves a
// segment, then looks it up within that segment, falling back to the
// platform segment (spec.md §4.1, §4.6).
func (c *Context) FindSymbol(vram addresses.Vram, parent ParentSegmentInfo, settings segment.FindSettings) *metadata.SymbolMetadata {
	if s, ok := c.FindSegment(vram, parent); ok {
		if sym := s.FindSymbol(vram, settings); sym != nil {
			return sym
		}
	}
	return c.platform.FindSymbol(vram, settings)
}
