package got

import (
	"testing"

	"github.com/mipsdisasm/spimdisasm/pkg/addresses"
	"github.com/mipsdisasm/spimdisasm/pkg/elf"
)

// Scenario 1 of spec.md §8: GP canonicalisation.
func TestParseDynamicInfoAndCanonicalGp(t *testing.T) {
	entries := []elf.DynamicEntry{
		{Tag: elf.DT_PLTGOT, Value: 0x10000000},
		{Tag: elf.DT_MIPS_LOCAL_GOTNO, Value: 2},
		{Tag: elf.DT_MIPS_GOTSYM, Value: 3},
		{Tag: 0xBADF00D, Value: 0xDEAD}, // an ignored tag
	}

	info, ok := ParseDynamicInfo(entries)
	if !ok {
		t.Fatal("expected ParseDynamicInfo to succeed with all three tags present")
	}
	if got := info.CanonicalGp(); got != addresses.GpValue(0x10007FF0) {
		t.Errorf("canonical_gp = %v, want 0x10007FF0", got)
	}

	rawGot := []uint32{0xAAAA, 0xBBBB, 0x0, 0x1234}
	dynsym := make([]elf.DynSymEntry, 4)
	dynsym[3] = elf.DynSymEntry{StValue: 0x1234, Name: "some_global"}

	gotTable := Parse(addresses.Vram(0x10000010), rawGot, info, dynsym)

	if len(gotTable.Locals) != 2 || gotTable.Locals[0].Initial != 0xAAAA || gotTable.Locals[1].Initial != 0xBBBB {
		t.Fatalf("unexpected locals: %+v", gotTable.Locals)
	}
	if len(gotTable.Globals) != 1 || gotTable.Globals[0].Initial != 0x1234 || gotTable.Globals[0].SymValue != 0x1234 {
		t.Fatalf("unexpected globals: %+v", gotTable.Globals)
	}
}

func TestParseDynamicInfoMissingTag(t *testing.T) {
	entries := []elf.DynamicEntry{
		{Tag: elf.DT_PLTGOT, Value: 0x10000000},
		{Tag: elf.DT_MIPS_LOCAL_GOTNO, Value: 2},
		// DT_MIPS_GOTSYM missing
	}
	if _, ok := ParseDynamicInfo(entries); ok {
		t.Fatal("expected ParseDynamicInfo to fail when a required tag is missing")
	}
}

func TestGlobalOffsetTableSlotAt(t *testing.T) {
	table := GlobalOffsetTable{
		Vram: addresses.Vram(0x10000010),
		Locals: []LocalEntry{
			{Initial: 0x80001000},
		},
		Globals: []GlobalEntry{
			{Initial: 0x80002000, SymValue: 0x80002000},
			{Initial: 0, UndefinedCommonOrAbs: true},
		},
	}

	if v, ok := table.SlotAt(0); !ok || v != addresses.Vram(0x80001000) {
		t.Errorf("local slot: got %v, %v", v, ok)
	}
	if v, ok := table.SlotAt(1); !ok || v != addresses.Vram(0x80002000) {
		t.Errorf("global slot: got %v, %v", v, ok)
	}
	if _, ok := table.SlotAt(2); ok {
		t.Error("expected undefined global slot to miss")
	}
	if _, ok := table.SlotAt(99); ok {
		t.Error("expected out-of-range slot to miss")
	}
}
