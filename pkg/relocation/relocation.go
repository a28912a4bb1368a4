// Package relocation models the per-ROM-site relocation records a
// section carries once post-processed (spec.md §4.7).
package relocation

import "github.com/mipsdisasm/spimdisasm/pkg/addresses"

// RelocationType classifies what kind of fixup a relocation site needs.
// The analysis core only threads these through; interpreting them into
// actual displayed operands is the (out-of-scope) display layer's job.
type RelocationType uint8

const (
	RelocNone RelocationType = iota
	RelocHi16
	RelocLo16
	RelocGpRel16
	RelocGot16
	RelocCall16
	Reloc26
	Reloc32
)

// RelocReferencedSym is the sum type spec.md §4.7 describes: a
// relocation either points at a concrete Vram, or names a symbol by
// string plus an addend (for symbols the core doesn't itself own, e.g.
// ones supplied by a linker script).
type RelocReferencedSym struct {
	address *addresses.Vram
	name    string
	addend  int32
	isName  bool
}

// NewAddressReferencedSym builds the Address(Vram) variant.
func NewAddressReferencedSym(vram addresses.Vram) RelocReferencedSym {
	return RelocReferencedSym{address: &vram}
}

// NewNameReferencedSym builds the SymName(name, addend) variant.
func NewNameReferencedSym(name string, addend int32) RelocReferencedSym {
	return RelocReferencedSym{name: name, addend: addend, isName: true}
}

func (r RelocReferencedSym) IsName() bool { return r.isName }

// Address returns the Vram variant's value. ok is false if this is
// actually the SymName variant.
func (r RelocReferencedSym) Address() (addresses.Vram, bool) {
	if r.isName || r.address == nil {
		return 0, false
	}
	return *r.address, true
}

// Name returns the SymName variant's fields. ok is false if this is
// actually the Address variant.
func (r RelocReferencedSym) Name() (string, int32, bool) {
	if !r.isName {
		return "", 0, false
	}
	return r.name, r.addend, true
}

// RelocationInfo binds a relocation site to its type and referenced
// symbol (spec.md §4.7).
type RelocationInfo struct {
	Rom     addresses.Rom
	Type    RelocationType
	RefSym  RelocReferencedSym
}
