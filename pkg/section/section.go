// Package section implements the per-section preprocessed→processed
// pipeline state machine (spec.md §4.7): a section is created with raw
// bytes and a range, accumulates relocations during post-processing, and
// only then becomes eligible for display.
package section

import (
	"fmt"
	"sort"

	"github.com/mipsdisasm/spimdisasm/pkg/addresses"
	"github.com/mipsdisasm/spimdisasm/pkg/context"
	"github.com/mipsdisasm/spimdisasm/pkg/relocation"
)

// Kind mirrors the ELF section kinds the core cares about (spec.md §6).
type Kind uint8

const (
	KindText Kind = iota
	KindData
	KindRodata
	KindBss
	KindGccExceptTable
)

// Preprocessed is a section that has bytes, a range, and parent-segment
// info, but has not yet gone through post_process (spec.md §4.7). It
// cannot be displayed.
type Preprocessed struct {
	name   string
	kind   Kind
	bytes  []byte
	ranges addresses.RomVramRange
	parent context.ParentSegmentInfo

	analyzerRelocs map[addresses.Rom]relocation.RelocationInfo
}

// NewPreprocessed creates a section in the preprocessed state.
func NewPreprocessed(name string, kind Kind, bytes []byte, ranges addresses.RomVramRange, parent context.ParentSegmentInfo) *Preprocessed {
	return &Preprocessed{name: name, kind: kind, bytes: bytes, ranges: ranges, parent: parent}
}

func (p *Preprocessed) Name() string                         { return p.name }
func (p *Preprocessed) Kind() Kind                            { return p.kind }
func (p *Preprocessed) Bytes() []byte                         { return p.bytes }
func (p *Preprocessed) RomVramRange() addresses.RomVramRange { return p.ranges }
func (p *Preprocessed) ParentSegmentInfo() context.ParentSegmentInfo { return p.parent }

// SetAnalyzerRelocation records a relocation the analyser derived, prior
// to post-processing. User relocations passed to PostProcess override
// these at identical ROM sites (spec.md §4.7).
func (p *Preprocessed) SetAnalyzerRelocation(info relocation.RelocationInfo) {
	if p.analyzerRelocs == nil {
		p.analyzerRelocs = make(map[addresses.Rom]relocation.RelocationInfo)
	}
	p.analyzerRelocs[info.Rom] = info
}

// SectionPostProcessError is returned by PostProcess when finishing a
// section fails (spec.md §4.7, §7).
type SectionPostProcessError struct {
	Name   string
	Reason string
}

func (e *SectionPostProcessError) Error() string {
	return fmt.Sprintf("section: post_process failed for %q: %s", e.Name, e.Reason)
}

// PostProcess consumes a Preprocessed section, merges in the caller's
// relocations (which win over analyser-derived ones at identical sites),
// and produces the Processed form (spec.md §4.7). ctx is threaded
// through for parity with the original signature even though this
// implementation doesn't need to mutate it; a real rodata-migration pass
// would use it here.
func PostProcess(p *Preprocessed, ctx *context.Context, userRelocs map[addresses.Rom]relocation.RelocationInfo) (*Processed, error) {
	merged := make(map[addresses.Rom]relocation.RelocationInfo, len(p.analyzerRelocs)+len(userRelocs))
	for rom, info := range p.analyzerRelocs {
		merged[rom] = info
	}
	for rom, info := range userRelocs {
		merged[rom] = info
	}

	return &Processed{
		name:   p.name,
		kind:   p.kind,
		bytes:  p.bytes,
		ranges: p.ranges,
		parent: p.parent,
		relocs: merged,
	}, nil
}

// Processed is a section that has completed post_process (spec.md
// §4.7). It is immutable and safe to display.
type Processed struct {
	name   string
	kind   Kind
	bytes  []byte
	ranges addresses.RomVramRange
	parent context.ParentSegmentInfo
	relocs map[addresses.Rom]relocation.RelocationInfo
}

func (p *Processed) Name() string                         { return p.name }
func (p *Processed) Kind() Kind                            { return p.kind }
func (p *Processed) RomVramRange() addresses.RomVramRange { return p.ranges }

// RelocationAt returns the relocation recorded at rom, if any.
func (p *Processed) RelocationAt(rom addresses.Rom) (relocation.RelocationInfo, bool) {
	r, ok := p.relocs[rom]
	return r, ok
}

// Relocations returns every relocation in ascending Rom order.
func (p *Processed) Relocations() []relocation.RelocationInfo {
	out := make([]relocation.RelocationInfo, 0, len(p.relocs))
	for _, r := range p.relocs {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rom < out[j].Rom })
	return out
}

// NotPostProcessedYet is returned by a display call on a section still
// in the Preprocessed state (spec.md §4.7, scenario 6 of §8).
type NotPostProcessedYet struct {
	Name      string
	VramStart addresses.Vram
	VramEnd   addresses.Vram
}

func (e *NotPostProcessedYet) Error() string {
	return fmt.Sprintf("section: %q (vram %s-%s) has not been post-processed yet", e.Name, e.VramStart, e.VramEnd)
}

// Display renders a Preprocessed section's text, which always fails: a
// preprocessed section is never display-ready (spec.md §4.7 scenario 6).
// Processed.Display (the real renderer) lives in the out-of-scope
// display layer; this stub only exists to witness the pipeline gate.
func (p *Preprocessed) Display() (string, error) {
	return "", &NotPostProcessedYet{
		Name:      p.name,
		VramStart: p.ranges.Vram().Start(),
		VramEnd:   p.ranges.Vram().End(),
	}
}
