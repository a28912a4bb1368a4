package context

import (
	"testing"

	"github.com/mipsdisasm/spimdisasm/pkg/addresses"
	"github.com/mipsdisasm/spimdisasm/pkg/config"
	"github.com/mipsdisasm/spimdisasm/pkg/endian"
	"github.com/mipsdisasm/spimdisasm/pkg/got"
	"github.com/mipsdisasm/spimdisasm/pkg/metadata"
	"github.com/mipsdisasm/spimdisasm/pkg/segment"
)

func globalRanges() addresses.RomVramRange {
	rom := addresses.MustAddressRange(addresses.Rom(0), addresses.Rom(0x1000))
	vram := addresses.MustAddressRange(addresses.Vram(0x80000000), addresses.Vram(0x80001000))
	r, err := addresses.NewRomVramRange(rom, vram)
	if err != nil {
		panic(err)
	}
	return r
}

func TestBuilderPipelineHappyPath(t *testing.T) {
	cfg := config.NewGlobalConfig(endian.Big)

	gb := NewGlobalSegmentBuilder(cfg, globalRanges())
	if _, err := gb.AddUserSymbol(addresses.Vram(0x80000010), metadata.SymbolTypeFunction); err != nil {
		t.Fatalf("AddUserSymbol: %v", err)
	}
	if _, err := gb.AddPlatformSymbol(addresses.Vram(0xDEADBEEF), metadata.SymbolTypeFunction); err != nil {
		t.Fatalf("AddPlatformSymbol: %v", err)
	}

	ov := gb.FinishGlobalSegment()

	overlayRom := addresses.MustAddressRange(addresses.Rom(0x1000), addresses.Rom(0x2000))
	overlayVram := addresses.MustAddressRange(addresses.Vram(0x80010000), addresses.Vram(0x80011000))
	overlayRanges, err := addresses.NewRomVramRange(overlayRom, overlayVram)
	if err != nil {
		t.Fatal(err)
	}

	ob := ov.AddOverlayCategory(metadata.OverlayCategoryName("actors"))
	mod := ob.AddSegment("actor_foo", overlayRanges)
	if _, err := mod.AddUserSymbol(addresses.Vram(0x80010010), metadata.SymbolTypeFunction); err != nil {
		t.Fatalf("overlay AddUserSymbol: %v", err)
	}
	ov2 := ob.EndOverlayCategory()

	finder, err := ov2.Process()
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	ctx := finder.Build()

	if _, ok := ctx.GlobalOffsetTable(); ok {
		t.Error("expected no GOT for a non-PIC config")
	}

	sym := ctx.FindSymbol(addresses.Vram(0x80000010), ParentSegmentInfo{}, segment.FindSettings{AllowAddend: true})
	if sym == nil || sym.SymbolType() != metadata.SymbolTypeFunction {
		t.Fatalf("global symbol not found: %+v", sym)
	}

	platformSym := ctx.FindSymbol(addresses.Vram(0xDEADBEEF), ParentSegmentInfo{}, segment.FindSettings{AllowAddend: true})
	if platformSym == nil {
		t.Fatal("expected platform symbol fallback to resolve")
	}

	cat := metadata.OverlayCategoryName("actors")
	overlayParent := ParentSegmentInfo{SegmentRom: addresses.Rom(0x1000), OverlayCategoryName: &cat}
	overlaySym := ctx.FindSymbol(addresses.Vram(0x80010010), overlayParent, segment.FindSettings{AllowAddend: true})
	if overlaySym == nil {
		t.Fatal("expected overlay symbol to resolve via parent segment info")
	}
}

func TestAddGlobalOffsetTableRequiresPic(t *testing.T) {
	cfg := config.NewGlobalConfig(endian.Big)
	gb := NewGlobalSegmentBuilder(cfg, globalRanges())
	finder, err := gb.FinishGlobalSegment().Process()
	if err != nil {
		t.Fatal(err)
	}

	err = finder.AddGlobalOffsetTable(got.GlobalOffsetTable{})
	if err != ErrGotNotPic {
		t.Fatalf("expected ErrGotNotPic, got %v", err)
	}
}

func TestAddGlobalOffsetTablePicSucceedsOnce(t *testing.T) {
	gpCfg := config.NewGpConfig(addresses.Vram(0x80010000), true)
	cfg := config.NewGlobalConfig(endian.Big).WithGpConfig(gpCfg)

	gb := NewGlobalSegmentBuilder(cfg, globalRanges())
	finder, err := gb.FinishGlobalSegment().Process()
	if err != nil {
		t.Fatal(err)
	}

	if err := finder.AddGlobalOffsetTable(got.GlobalOffsetTable{}); err != nil {
		t.Fatalf("first AddGlobalOffsetTable: %v", err)
	}
	if err := finder.AddGlobalOffsetTable(got.GlobalOffsetTable{}); err != ErrGotAlreadyAdded {
		t.Fatalf("expected ErrGotAlreadyAdded, got %v", err)
	}

	ctx := finder.Build()
	if _, ok := ctx.GlobalOffsetTable(); !ok {
		t.Error("expected Context to carry the attached GOT")
	}
}

func TestOverlappingOverlayRomRangesRejected(t *testing.T) {
	cfg := config.NewGlobalConfig(endian.Big)
	gb := NewGlobalSegmentBuilder(cfg, globalRanges())
	ov := gb.FinishGlobalSegment()

	rangeA, _ := addresses.NewRomVramRange(
		addresses.MustAddressRange(addresses.Rom(0x1000), addresses.Rom(0x2000)),
		addresses.MustAddressRange(addresses.Vram(0x80010000), addresses.Vram(0x80011000)),
	)
	rangeB, _ := addresses.NewRomVramRange(
		addresses.MustAddressRange(addresses.Rom(0x1800), addresses.Rom(0x2800)),
		addresses.MustAddressRange(addresses.Vram(0x80020000), addresses.Vram(0x80021000)),
	)

	ob := ov.AddOverlayCategory(metadata.OverlayCategoryName("actors"))
	ob.AddSegment("a", rangeA)
	ob.AddSegment("b", rangeB)

	if _, err := ob.EndOverlayCategory().Process(); err == nil {
		t.Fatal("expected overlapping rom ranges to be rejected")
	}
}
