package section

import (
	"testing"

	"github.com/mipsdisasm/spimdisasm/pkg/addresses"
	"github.com/mipsdisasm/spimdisasm/pkg/context"
	"github.com/mipsdisasm/spimdisasm/pkg/relocation"
)

func testRanges(t *testing.T) addresses.RomVramRange {
	t.Helper()
	r, err := addresses.NewRomVramRange(
		addresses.MustAddressRange(addresses.Rom(0), addresses.Rom(0x10)),
		addresses.MustAddressRange(addresses.Vram(0x80000000), addresses.Vram(0x80000010)),
	)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

// Scenario 6 of spec.md §8: pipeline gate.
func TestDisplayOnPreprocessedFails(t *testing.T) {
	p := NewPreprocessed("sec", KindText, make([]byte, 16), testRanges(t), context.ParentSegmentInfo{})

	_, err := p.Display()
	nppy, ok := err.(*NotPostProcessedYet)
	if !ok {
		t.Fatalf("expected *NotPostProcessedYet, got %T: %v", err, err)
	}
	if nppy.Name != "sec" {
		t.Errorf("name = %q, want sec", nppy.Name)
	}

	processed, err := PostProcess(p, nil, nil)
	if err != nil {
		t.Fatalf("PostProcess: %v", err)
	}
	if processed.Name() != "sec" {
		t.Errorf("processed name = %q, want sec", processed.Name())
	}
}

func TestUserRelocationsOverrideAnalyzerRelocations(t *testing.T) {
	p := NewPreprocessed("sec", KindText, make([]byte, 16), testRanges(t), context.ParentSegmentInfo{})

	p.SetAnalyzerRelocation(relocation.RelocationInfo{
		Rom:  addresses.Rom(4),
		Type: relocation.RelocHi16,
	})

	userRelocs := map[addresses.Rom]relocation.RelocationInfo{
		addresses.Rom(4): {Rom: addresses.Rom(4), Type: relocation.RelocLo16},
	}

	processed, err := PostProcess(p, nil, userRelocs)
	if err != nil {
		t.Fatal(err)
	}

	got, ok := processed.RelocationAt(addresses.Rom(4))
	if !ok {
		t.Fatal("expected a relocation at rom 4")
	}
	if got.Type != relocation.RelocLo16 {
		t.Errorf("type = %v, want RelocLo16 (user override)", got.Type)
	}
}
