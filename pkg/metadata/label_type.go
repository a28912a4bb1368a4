package metadata

// LabelType is the autodetected classification of a ReferencedLabel. It
// forms a small lattice (spec.md §4.3): Branch is the bottom, Jumptable
// sits above it, and GccExceptTable/AlternativeEntry are mutually
// top-equal and above everything else.
type LabelType uint8

const (
	Branch LabelType = iota
	Jumptable
	GccExceptTable
	AlternativeEntry

	labelTypeCount
)

func (t LabelType) String() string {
	switch t {
	case Branch:
		return "Branch"
	case Jumptable:
		return "Jumptable"
	case GccExceptTable:
		return "GccExceptTable"
	case AlternativeEntry:
		return "AlternativeEntry"
	default:
		return "LabelType(?)"
	}
}

// doesNewTakePrecedence is the fixed table from spec.md §4.3, reproduced
// from the original source's label_type.rs::does_new_takes_precedence.
// Indexed [new][old].
var doesNewTakePrecedence = [labelTypeCount][labelTypeCount]bool{
	Branch:           {false, false, false, false},
	Jumptable:        {true, true, false, false},
	GccExceptTable:   {true, true, true, true},
	AlternativeEntry: {true, true, true, true},
}

// DoesNewTakePrecedence reports whether newType should replace oldType
// under the label-type lattice.
func DoesNewTakePrecedence(newType, oldType LabelType) bool {
	return doesNewTakePrecedence[newType][oldType]
}
