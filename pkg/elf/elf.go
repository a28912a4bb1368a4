// Package elf describes the interfaces the core expects from an external
// ELF reader (spec.md §6). No ELF parsing happens here: this package is
// the narrow seam between "bytes on disk" and the analysis core, and a
// real ELF reader (e.g. a wrapper around a library like github.com/
// saferwall/pe's ELF cousins, or debug/elf) is expected to implement it.
package elf

import "github.com/mipsdisasm/spimdisasm/pkg/endian"

// SectionKind enumerates the ELF section kinds the core cares about
// (spec.md §6).
type SectionKind uint8

const (
	SectionText SectionKind = iota
	SectionData
	SectionRodata
	SectionBss
	SectionGccExceptTable
	SectionDynamic
	SectionMipsReginfo
	SectionGot
)

// Section is a single named, typed span of bytes supplied by the ELF
// reader collaborator.
type Section struct {
	Name string
	Kind SectionKind
	Data []byte
}

// DynamicEntry is one (tag, value) pair out of the ELF .dynamic section
// (spec.md §6: 8 bytes, 4-byte tag + 4-byte value, host endianness).
type DynamicEntry struct {
	Tag   uint32
	Value uint32
}

// The three DT_* tags the core consumes; every other tag is ignored
// (spec.md §6).
const (
	DT_PLTGOT           uint32 = 3
	DT_MIPS_LOCAL_GOTNO uint32 = 0x7000000a
	DT_MIPS_GOTSYM      uint32 = 0x70000013
)

// DynSymEntry is one entry of the ELF dynamic symbol table (spec.md §6).
type DynSymEntry struct {
	StValue uint32
	StShndx uint16
	Name    string
}

const (
	ShnUndef  uint16 = 0
	ShnAbs    uint16 = 0xfff1
	ShnCommon uint16 = 0xfff2
)

// UndefinedCommonOrAbsolute reports whether a dynamic symbol table entry
// points at no concrete section (spec.md §6 / GotGlobalEntry's "flag").
func (e DynSymEntry) UndefinedCommonOrAbsolute() bool {
	return e.StShndx == ShnUndef || e.StShndx == ShnAbs || e.StShndx == ShnCommon
}

// Reader is the external ELF reader collaborator (spec.md §1, §6): it
// supplies endianness, section bytes by kind, the raw dynamic table, and
// the dynamic symbol table. The analysis core never opens a file itself.
type Reader interface {
	Endian() endian.Endian
	Sections() []Section
	DynamicEntries() []DynamicEntry
	DynSymTable() []DynSymEntry
}

// ParseDynamicEntries decodes the raw bytes of a .dynamic section into
// DynamicEntry pairs (spec.md §6's binary layout: 8 bytes per entry,
// packed in the ELF's own endianness).
func ParseDynamicEntries(data []byte, e endian.Endian) []DynamicEntry {
	n := len(data) / 8
	entries := make([]DynamicEntry, 0, n)
	for i := 0; i < n; i++ {
		off := i * 8
		entries = append(entries, DynamicEntry{
			Tag:   e.ReadWord(data, off),
			Value: e.ReadWord(data, off+4),
		})
	}
	return entries
}

// MipsReginfo is the 24-byte .reginfo section layout (spec.md §6):
// ri_gprmask(4) ri_cprmask[4](16) ri_gp_value(4).
type MipsReginfo struct {
	RiGprmask uint32
	RiCprmask [4]uint32
	// RiGpValue is nil when the section encodes a zero value, which
	// spec.md §6 defines as "absent".
	RiGpValue *uint32
}

// ParseMipsReginfo decodes a .reginfo section. Returns false if data
// isn't exactly 24 bytes.
func ParseMipsReginfo(data []byte, e endian.Endian) (MipsReginfo, bool) {
	if len(data) != 0x18 {
		return MipsReginfo{}, false
	}
	var info MipsReginfo
	info.RiGprmask = e.ReadWord(data, 0)
	for i := 0; i < 4; i++ {
		info.RiCprmask[i] = e.ReadWord(data, 4+i*4)
	}
	gpValue := e.ReadWord(data, 20)
	if gpValue != 0 {
		info.RiGpValue = &gpValue
	}
	return info, true
}
