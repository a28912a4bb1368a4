package segment

import (
	"sort"

	"golang.org/x/exp/slices"

	"github.com/mipsdisasm/spimdisasm/pkg/addresses"
	"github.com/mipsdisasm/spimdisasm/pkg/metadata"
)

// orderedSymbolMap is the "addended-ordered map" of spec.md §3/§9: a
// Vram-sorted vector of symbols supporting both an exact lookup and a
// "greatest entry whose range contains the query" lookup, implemented as
// a sorted slice plus binary search per the implementation note in
// spec.md §9 ("a sorted vector with binary search plus a size check").
type orderedSymbolMap struct {
	entries []*metadata.SymbolMetadata
}

// FindSettings controls how Find resolves a query address (spec.md §4.1).
type FindSettings struct {
	AllowAddend      bool
	CheckUpperLimit  bool
}

func (m *orderedSymbolMap) search(vram addresses.Vram) int {
	return sort.Search(len(m.entries), func(i int) bool {
		return m.entries[i].Vram() >= vram
	})
}

// insert adds sym in sorted position, or returns the pre-existing entry
// at the same vram without modifying the slice.
func (m *orderedSymbolMap) insert(sym *metadata.SymbolMetadata) (*metadata.SymbolMetadata, bool) {
	i := m.search(sym.Vram())
	if i < len(m.entries) && m.entries[i].Vram() == sym.Vram() {
		return m.entries[i], true
	}
	m.entries = slices.Insert(m.entries, i, sym)
	return sym, false
}

// Find implements spec.md §4.1's lookup contract: exact match when
// AllowAddend is false, or the greatest entry whose range contains the
// query when true.
func (m *orderedSymbolMap) Find(vram addresses.Vram, settings FindSettings) *metadata.SymbolMetadata {
	i := m.search(vram)

	if i < len(m.entries) && m.entries[i].Vram() == vram {
		return m.entries[i]
	}
	if !settings.AllowAddend {
		return nil
	}

	// i now points at the first entry with Vram > vram (or len(entries));
	// the candidate containing vram, if any, is the one just before it.
	if i == 0 {
		return nil
	}
	candidate := m.entries[i-1]
	size, hasSize := candidate.Size()
	if !hasSize {
		return nil
	}
	end := candidate.Vram().AddSize(size)
	if vram >= end {
		return nil
	}
	if settings.CheckUpperLimit && !candidate.AllowRefWithAddend() {
		return nil
	}
	return candidate
}

// All returns the symbols in ascending Vram order. The returned slice
// must not be mutated by callers.
func (m *orderedSymbolMap) All() []*metadata.SymbolMetadata {
	return m.entries
}
