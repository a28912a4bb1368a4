package analysis

import (
	"github.com/mipsdisasm/spimdisasm/pkg/addresses"
	"github.com/mipsdisasm/spimdisasm/pkg/context"
	"github.com/mipsdisasm/spimdisasm/pkg/metadata"
	"github.com/mipsdisasm/spimdisasm/pkg/segment"
)

// PreheatError is defined but never returned: preheating is total over
// valid inputs (spec.md §4.6, SPEC_FULL.md item 3 / spec.md §9 open
// question (a)). It is kept as a type so a future caller can match on it
// without a breaking change, exactly as the original leaves the
// possibility open without ever constructing one.
type PreheatError struct {
	Reason string
}

func (e *PreheatError) Error() string { return "analysis: preheat error: " + e.Reason }

// SectionAnalysisOutput bundles one analysed function/section's result
// with the addressing context the preheater needs to turn its ROM sites
// back into Vrams and to pick the right segment (spec.md §4.6).
type SectionAnalysisOutput struct {
	Result InstructionAnalysisResult
	Ranges addresses.RomVramRange
	Parent context.ParentSegmentInfo
}

// Preheater walks every preprocessed section's analysis output and
// writes references into the owning segments' symbol/label tables
// before any section is displayed (spec.md §4.6).
type Preheater struct{}

// NewPreheater returns a ready-to-use Preheater; it carries no state
// between calls to Preheat.
func NewPreheater() *Preheater { return &Preheater{} }

// Preheat applies every output in ROM order within each output (the
// analyser already emits references in increasing Rom order, spec.md
// §5) so referenced_by lists end up sorted.
func (p *Preheater) Preheat(ctx *context.Context, outputs []SectionAnalysisOutput) error {
	for _, out := range outputs {
		p.preheatOne(ctx, out)
	}
	return nil
}

func (p *Preheater) preheatOne(ctx *context.Context, out SectionAnalysisOutput) {
	for _, b := range out.Result.BranchTargets {
		fromVram, ok := out.Ranges.RomToVram(b.FromRom)
		if !ok {
			continue
		}
		p.promoteLabel(ctx, out.Parent, b.Target, fromVram, metadata.Branch)
	}

	for _, pairing := range out.Result.HiLoPairings {
		if pairing.Target == 0 {
			continue
		}
		fromVram, ok := out.Ranges.RomToVram(pairing.LoRom)
		if !ok {
			continue
		}

		target := pairing.Target
		if pairing.IsGpGot {
			if table, ok := ctx.GlobalOffsetTable(); ok {
				if gpCfg := ctx.GlobalConfig().GpConfig(); gpCfg != nil {
					gp := addresses.GpValue(gpCfg.GpValue().Inner())
					offset := int32(int64(pairing.Target.Inner()) - int64(gp.Inner()))
					if idx, ok := table.IndexForGpOffset(gp, offset); ok {
						if resolved, ok := table.SlotAt(idx); ok {
							target = resolved
						}
					}
				}
			}
		}

		p.promoteSymbol(ctx, out.Parent, target, fromVram, metadata.SymbolTypeData)
	}

	for _, jt := range out.Result.JrTables {
		fromVram, ok := out.Ranges.RomToVram(jt.JrRom)
		if !ok {
			continue
		}
		p.promoteSymbol(ctx, out.Parent, jt.TableVram, fromVram, metadata.SymbolTypeJumptable)
	}

	for _, ref := range out.Result.ReferencedVramsOutsideFunction {
		fromVram, ok := out.Ranges.RomToVram(ref.FromRom)
		if !ok {
			continue
		}
		p.promoteSymbol(ctx, out.Parent, ref.Target, fromVram, metadata.SymbolTypeFunction)
	}
}

func (p *Preheater) promoteLabel(ctx *context.Context, parent context.ParentSegmentInfo, target, from addresses.Vram, labelType metadata.LabelType) {
	seg, ok := ctx.FindSegment(target, parent)
	if !ok {
		return
	}
	label, err := seg.AddLabel(target, labelType)
	if err != nil {
		return
	}
	for _, existing := range label.ReferencedBy() {
		if existing == from {
			// Already recorded by an earlier preheat pass over the same
			// output: re-running preheat on an unchanged context must not
			// mutate it (spec.md §8).
			return
		}
	}
	label.AddReferencedBy(from)
}

func (p *Preheater) promoteSymbol(ctx *context.Context, parent context.ParentSegmentInfo, target, from addresses.Vram, symType metadata.SymbolType) {
	seg, ok := ctx.FindSegment(target, parent)
	if !ok {
		return
	}

	if existing := seg.FindSymbol(target, segment.FindSettings{AllowAddend: true}); existing != nil {
		if existing.Vram() != target && !existing.AllowRefWithAddend() {
			// Target falls inside existing's range but it forbids
			// addend references: record a separate exact-vram symbol
			// instead (spec.md §4.6).
			sym, err := seg.AddSymbol(target, symType, metadata.Autodetected)
			if err == nil {
				addReferenceOnce(sym, from, romFromVram(ctx, parent, from))
			}
			return
		}
		existing.SetAutodetectedType(symType)
		addReferenceOnce(existing, from, romFromVram(ctx, parent, from))
		return
	}

	sym, err := seg.AddSymbol(target, symType, metadata.Autodetected)
	if err != nil {
		return
	}
	addReferenceOnce(sym, from, romFromVram(ctx, parent, from))
}

// addReferenceOnce appends a back-reference only if it isn't already
// present, so re-running preheat on an unchanged set of outputs makes no
// mutations (spec.md §8: preheater idempotence).
func addReferenceOnce(sym *metadata.SymbolMetadata, from addresses.Vram, at addresses.Rom) {
	for _, ref := range sym.ReferencedBy() {
		if ref.From == from && ref.At == at {
			return
		}
	}
	sym.AddReferencedBy(from, at)
}

// romFromVram converts the referencing Vram back to a Rom via the
// segment that owns it, for the SymbolMetadata.Reference.At field. If no
// owning segment can be found (e.g. a platform symbol reference with no
// backing Rom) it returns the zero Rom, which is an acceptable
// degenerate back-reference: the From Vram remains meaningful on its
// own.
func romFromVram(ctx *context.Context, parent context.ParentSegmentInfo, v addresses.Vram) addresses.Rom {
	seg, ok := ctx.FindSegment(v, parent)
	if !ok {
		return 0
	}
	rom, ok := seg.RomVramRange().VramToRom(v)
	if !ok {
		return 0
	}
	return rom
}
