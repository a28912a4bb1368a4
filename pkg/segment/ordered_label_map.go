package segment

import (
	"sort"

	"golang.org/x/exp/slices"

	"github.com/mipsdisasm/spimdisasm/pkg/addresses"
	"github.com/mipsdisasm/spimdisasm/pkg/metadata"
)

// orderedLabelMap is the labels table of spec.md §3: an ordered map
// keyed by Vram with exact lookup only (labels never support addended
// containment queries, unlike symbols).
type orderedLabelMap struct {
	entries []*metadata.ReferencedLabel
}

func (m *orderedLabelMap) search(vram addresses.Vram) int {
	return sort.Search(len(m.entries), func(i int) bool {
		return m.entries[i].Vram() >= vram
	})
}

func (m *orderedLabelMap) insert(label *metadata.ReferencedLabel) (*metadata.ReferencedLabel, bool) {
	i := m.search(label.Vram())
	if i < len(m.entries) && m.entries[i].Vram() == label.Vram() {
		return m.entries[i], true
	}
	m.entries = slices.Insert(m.entries, i, label)
	return label, false
}

func (m *orderedLabelMap) Find(vram addresses.Vram) *metadata.ReferencedLabel {
	i := m.search(vram)
	if i < len(m.entries) && m.entries[i].Vram() == vram {
		return m.entries[i]
	}
	return nil
}

func (m *orderedLabelMap) All() []*metadata.ReferencedLabel {
	return m.entries
}

// orderedIgnoredRangeMap holds the ignored_ranges table of spec.md §3,
// keyed by the range's starting Vram.
type orderedIgnoredRangeMap struct {
	entries []metadata.IgnoredAddressRange
}

func (m *orderedIgnoredRangeMap) insert(r metadata.IgnoredAddressRange) {
	i := sort.Search(len(m.entries), func(i int) bool {
		return m.entries[i].Vram() >= r.Vram()
	})
	m.entries = slices.Insert(m.entries, i, r)
}

// Contains reports whether addr falls within any ignored range.
// Ignored ranges are rare enough per segment that a linear scan over the
// sorted slice is simpler than an interval tree and every bit as
// correct; spec.md doesn't call out a performance requirement here.
func (m *orderedIgnoredRangeMap) Contains(addr addresses.Vram) bool {
	for _, r := range m.entries {
		if r.Vram() > addr {
			break
		}
		if r.Contains(addr) {
			return true
		}
	}
	return false
}

func (m *orderedIgnoredRangeMap) All() []metadata.IgnoredAddressRange {
	return m.entries
}
