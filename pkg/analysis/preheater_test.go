package analysis

import (
	"testing"

	"github.com/mipsdisasm/spimdisasm/pkg/addresses"
	mdcontext "github.com/mipsdisasm/spimdisasm/pkg/context"
	"github.com/mipsdisasm/spimdisasm/pkg/config"
	"github.com/mipsdisasm/spimdisasm/pkg/endian"
	"github.com/mipsdisasm/spimdisasm/pkg/got"
	"github.com/mipsdisasm/spimdisasm/pkg/metadata"
	"github.com/mipsdisasm/spimdisasm/pkg/segment"
)

func buildPicContext(t *testing.T) *mdcontext.Context {
	t.Helper()
	gpCfg := config.NewGpConfig(addresses.Vram(0x10007FF0), true)
	cfg := config.NewGlobalConfig(endian.Big).WithGpConfig(gpCfg)

	ranges, err := addresses.NewRomVramRange(
		addresses.MustAddressRange(addresses.Rom(0), addresses.Rom(0x1000)),
		addresses.MustAddressRange(addresses.Vram(0x80000000), addresses.Vram(0x80001000)),
	)
	if err != nil {
		t.Fatal(err)
	}

	gb := mdcontext.NewGlobalSegmentBuilder(cfg, ranges)
	finder, err := gb.FinishGlobalSegment().Process()
	if err != nil {
		t.Fatal(err)
	}

	table := got.GlobalOffsetTable{
		Vram:   addresses.Vram(0x10000000),
		Locals: []got.LocalEntry{{Initial: 0x80000500}},
	}
	if err := finder.AddGlobalOffsetTable(table); err != nil {
		t.Fatal(err)
	}
	return finder.Build()
}

func TestPreheaterPromotesGpGotReference(t *testing.T) {
	ctx := buildPicContext(t)

	result := InstructionAnalysisResult{
		HiLoPairings: []HiLoPairing{
			{LoRom: addresses.Rom(0x100), Target: addresses.Vram(0x10000000), IsGpRel: true, IsGpGot: true},
		},
	}
	ranges, _ := addresses.NewRomVramRange(
		addresses.MustAddressRange(addresses.Rom(0), addresses.Rom(0x1000)),
		addresses.MustAddressRange(addresses.Vram(0x80000000), addresses.Vram(0x80001000)),
	)

	ph := NewPreheater()
	if err := ph.Preheat(ctx, []SectionAnalysisOutput{{Result: result, Ranges: ranges}}); err != nil {
		t.Fatal(err)
	}

	sym := ctx.GlobalSegment().FindSymbol(addresses.Vram(0x80000500), segment.FindSettings{AllowAddend: true})
	if sym == nil {
		t.Fatal("expected the GOT-resolved target to be promoted into the global segment")
	}
	if len(sym.ReferencedBy()) != 1 || sym.ReferencedBy()[0].From != addresses.Vram(0x80000100) {
		t.Errorf("unexpected referenced_by: %+v", sym.ReferencedBy())
	}
}

func TestPreheaterBranchTargetBecomesLabel(t *testing.T) {
	ctx := buildPicContext(t)

	result := InstructionAnalysisResult{
		BranchTargets: []BranchTarget{
			{FromRom: addresses.Rom(0x10), Target: addresses.Vram(0x80000200)},
		},
	}
	ranges, _ := addresses.NewRomVramRange(
		addresses.MustAddressRange(addresses.Rom(0), addresses.Rom(0x1000)),
		addresses.MustAddressRange(addresses.Vram(0x80000000), addresses.Vram(0x80001000)),
	)

	ph := NewPreheater()
	if err := ph.Preheat(ctx, []SectionAnalysisOutput{{Result: result, Ranges: ranges}}); err != nil {
		t.Fatal(err)
	}

	label := ctx.GlobalSegment().FindLabel(addresses.Vram(0x80000200))
	if label == nil {
		t.Fatal("expected branch target to become a label")
	}
	if label.LabelType() != metadata.Branch {
		t.Errorf("label type = %v, want Branch", label.LabelType())
	}
}

func TestPreheaterIdempotent(t *testing.T) {
	ctx := buildPicContext(t)
	ranges, _ := addresses.NewRomVramRange(
		addresses.MustAddressRange(addresses.Rom(0), addresses.Rom(0x1000)),
		addresses.MustAddressRange(addresses.Vram(0x80000000), addresses.Vram(0x80001000)),
	)
	result := InstructionAnalysisResult{
		BranchTargets: []BranchTarget{{FromRom: addresses.Rom(0x10), Target: addresses.Vram(0x80000200)}},
	}
	outputs := []SectionAnalysisOutput{{Result: result, Ranges: ranges}}

	ph := NewPreheater()
	if err := ph.Preheat(ctx, outputs); err != nil {
		t.Fatal(err)
	}
	countBefore := ctx.GlobalSegment().FindLabel(addresses.Vram(0x80000200)).ReferenceCounter()

	if err := ph.Preheat(ctx, outputs); err != nil {
		t.Fatal(err)
	}
	countAfter := ctx.GlobalSegment().FindLabel(addresses.Vram(0x80000200)).ReferenceCounter()

	if countAfter != countBefore {
		t.Fatalf("expected re-running preheat on the same outputs to make no further mutations, got %d -> %d", countBefore, countAfter)
	}
}
