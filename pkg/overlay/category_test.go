package overlay

import (
	"testing"

	"github.com/mipsdisasm/spimdisasm/pkg/addresses"
	"github.com/mipsdisasm/spimdisasm/pkg/metadata"
	"github.com/mipsdisasm/spimdisasm/pkg/segment"
)

func mustRV(t *testing.T, rom addresses.AddressRange[addresses.Rom], vram addresses.AddressRange[addresses.Vram]) addresses.RomVramRange {
	t.Helper()
	rv, err := addresses.NewRomVramRange(rom, vram)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return rv
}

func TestNewCategoryRejectsEmpty(t *testing.T) {
	if _, err := NewCategory("boot", nil); err != ErrNoOverlaysAdded {
		t.Fatalf("expected ErrNoOverlaysAdded, got %v", err)
	}
}

func TestNewCategoryUnionRange(t *testing.T) {
	catName := metadata.OverlayCategoryName("area")
	a := segment.NewSegment("area_a", mustRV(t,
		addresses.MustAddressRange(addresses.Rom(0x1000), addresses.Rom(0x2000)),
		addresses.MustAddressRange(addresses.Vram(0x80100000), addresses.Vram(0x80101000)),
	), &catName)
	b := segment.NewSegment("area_b", mustRV(t,
		addresses.MustAddressRange(addresses.Rom(0x2000), addresses.Rom(0x2800)),
		addresses.MustAddressRange(addresses.Vram(0x80100000), addresses.Vram(0x80100800)),
	), &catName)

	cat, err := NewCategory(catName, []*segment.Segment{a, b})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ph := cat.PlaceholderSegment()
	if ph.RomVramRange().Rom().Start() != addresses.Rom(0x1000) || ph.RomVramRange().Rom().End() != addresses.Rom(0x2800) {
		t.Errorf("unexpected placeholder rom range: %v", ph.RomVramRange().Rom())
	}
	if ph.RomVramRange().Vram().Start() != addresses.Vram(0x80100000) || ph.RomVramRange().Vram().End() != addresses.Vram(0x80101000) {
		t.Errorf("unexpected placeholder vram range: %v", ph.RomVramRange().Vram())
	}

	if !cat.Contains(addresses.Vram(0x80100400)) {
		t.Error("expected placeholder to contain an address inside both member's overlapping vram range")
	}
}

func TestNewCategoryRejectsOverlappingRom(t *testing.T) {
	catName := metadata.OverlayCategoryName("area")
	a := segment.NewSegment("a", mustRV(t,
		addresses.MustAddressRange(addresses.Rom(0x1000), addresses.Rom(0x2000)),
		addresses.MustAddressRange(addresses.Vram(0x80100000), addresses.Vram(0x80101000)),
	), &catName)
	b := segment.NewSegment("b", mustRV(t,
		addresses.MustAddressRange(addresses.Rom(0x1800), addresses.Rom(0x2800)),
		addresses.MustAddressRange(addresses.Vram(0x80200000), addresses.Vram(0x80201000)),
	), &catName)

	if _, err := NewCategory(catName, []*segment.Segment{a, b}); err == nil {
		t.Fatal("expected overlapping rom ranges to be rejected")
	}
}
