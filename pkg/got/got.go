// Package got models the MIPS Global Offset Table (spec.md §3, §6): the
// local/global slot arrays PIC code indirects through, and the
// canonical $gp computation.
package got

import (
	"github.com/mipsdisasm/spimdisasm/pkg/addresses"
	"github.com/mipsdisasm/spimdisasm/pkg/elf"
)

// LocalEntry is a single local GOT slot: just its initial raw value
// (spec.md §3).
type LocalEntry struct {
	Initial uint32
}

// GlobalEntry bundles a global GOT slot's initial value with the
// corresponding dynamic symbol table entry's data (spec.md §3).
type GlobalEntry struct {
	Initial               uint32
	SymValue              uint32
	UndefinedCommonOrAbs  bool
	SymName               string
}

// GlobalOffsetTable is the parsed GOT (spec.md §3). Layout contract:
// slot i for i < len(Locals) is local; slot i >= len(Locals) corresponds
// to dynsym index GotSym + (i - len(Locals)).
type GlobalOffsetTable struct {
	Vram    addresses.Vram
	Locals  []LocalEntry
	Globals []GlobalEntry
}

// DynamicInfo is the subset of a parsed .dynamic section the GOT and
// canonical $gp computation need: the three tags spec.md §6 says the
// core consumes. A dynamic section missing any of the three means "not
// PIC", which is modelled by ParseDynamicInfo returning ok=false rather
// than an error.
type DynamicInfo struct {
	Pltgot      uint32
	LocalGotno  uint32
	Gotsym      uint32
}

// ParseDynamicInfo scans raw .dynamic entries for DT_PLTGOT,
// DT_MIPS_LOCAL_GOTNO, and DT_MIPS_GOTSYM, ignoring every other tag
// (spec.md §6). ok is false if any of the three is missing.
func ParseDynamicInfo(entries []elf.DynamicEntry) (DynamicInfo, bool) {
	var info DynamicInfo
	var havePltgot, haveLocalGotno, haveGotsym bool

	for _, e := range entries {
		switch e.Tag {
		case elf.DT_PLTGOT:
			info.Pltgot = e.Value
			havePltgot = true
		case elf.DT_MIPS_LOCAL_GOTNO:
			info.LocalGotno = e.Value
			haveLocalGotno = true
		case elf.DT_MIPS_GOTSYM:
			info.Gotsym = e.Value
			haveGotsym = true
		}
	}

	if !havePltgot || !haveLocalGotno || !haveGotsym {
		return DynamicInfo{}, false
	}
	return info, true
}

// CanonicalGp computes gp = pltgot + 0x7FF0 (spec.md §3).
func (d DynamicInfo) CanonicalGp() addresses.GpValue {
	return addresses.CanonicalGp(addresses.Vram(d.Pltgot))
}

// Parse builds a GlobalOffsetTable from the raw GOT words and the ELF's
// dynamic symbol table, following the layout contract of spec.md §3 and
// the original's global_offset_table.rs::parse_got.
func Parse(gotVram addresses.Vram, rawGot []uint32, dynInfo DynamicInfo, dynsym []elf.DynSymEntry) GlobalOffsetTable {
	localGotno := int(dynInfo.LocalGotno)
	if localGotno > len(rawGot) {
		localGotno = len(rawGot)
	}

	locals := make([]LocalEntry, 0, localGotno)
	for _, v := range rawGot[:localGotno] {
		locals = append(locals, LocalEntry{Initial: v})
	}

	remaining := rawGot[localGotno:]
	gotsym := int(dynInfo.Gotsym)

	globals := make([]GlobalEntry, 0, len(remaining))
	for i, initial := range remaining {
		symIdx := gotsym + i
		if symIdx >= len(dynsym) {
			break
		}
		entry := dynsym[symIdx]
		globals = append(globals, GlobalEntry{
			Initial:              initial,
			SymValue:             entry.StValue,
			UndefinedCommonOrAbs: entry.UndefinedCommonOrAbsolute(),
			SymName:              entry.Name,
		})
	}

	return GlobalOffsetTable{Vram: gotVram, Locals: locals, Globals: globals}
}

// SlotAt returns the resolved Vram an access to GOT slot index would
// read, if the index names a local slot or a global slot with a
// concrete (non-undefined) value.
func (g GlobalOffsetTable) SlotAt(index int) (addresses.Vram, bool) {
	if index < 0 {
		return 0, false
	}
	if index < len(g.Locals) {
		return addresses.Vram(g.Locals[index].Initial), true
	}
	gi := index - len(g.Locals)
	if gi >= len(g.Globals) {
		return 0, false
	}
	entry := g.Globals[gi]
	if entry.UndefinedCommonOrAbs {
		return 0, false
	}
	return addresses.Vram(entry.SymValue), true
}

// IndexForGpOffset converts a 16-bit signed $gp-relative offset (the
// immediate of a `lw rX, offset($gp)`) into a GOT slot index, given the
// canonical $gp value and the GOT's own base Vram. Each slot is 4 bytes.
func (g GlobalOffsetTable) IndexForGpOffset(gp addresses.GpValue, offset int32) (int, bool) {
	slotAddr := int64(gp.Inner()) + int64(offset)
	base := int64(g.Vram.Inner())
	delta := slotAddr - base
	if delta < 0 || delta%4 != 0 {
		return 0, false
	}
	return int(delta / 4), true
}
