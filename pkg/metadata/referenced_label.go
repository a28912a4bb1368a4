package metadata

import "github.com/mipsdisasm/spimdisasm/pkg/addresses"

// ReferencedLabel is a branch/jumptable/exception-table/alt-entry target
// discovered within a function, or declared by the user ahead of time
// (spec.md §3).
type ReferencedLabel struct {
	vram             addresses.Vram
	userDeclared     bool
	autodetectedType LabelType
	userDeclaredType *LabelType
	referencedBy     []addresses.Vram
}

// NewReferencedLabel creates an autodetected label.
func NewReferencedLabel(vram addresses.Vram, labelType LabelType) *ReferencedLabel {
	return &ReferencedLabel{
		vram:             vram,
		autodetectedType: labelType,
	}
}

// NewUserDeclaredLabel creates a label whose type was declared by the
// user and therefore can never be downgraded by autodetection.
func NewUserDeclaredLabel(vram addresses.Vram, labelType LabelType) *ReferencedLabel {
	l := NewReferencedLabel(vram, labelType)
	l.userDeclared = true
	l.userDeclaredType = &labelType
	return l
}

func (l *ReferencedLabel) Vram() addresses.Vram { return l.vram }
func (l *ReferencedLabel) UserDeclared() bool    { return l.userDeclared }

// LabelType returns the user-declared type if present, else the
// autodetected one.
func (l *ReferencedLabel) LabelType() LabelType {
	if l.userDeclaredType != nil {
		return *l.userDeclaredType
	}
	return l.autodetectedType
}

// ReferencedBy returns the list of Vrams that reference this label, in
// the order they were recorded (the preheater guarantees Rom order, see
// spec.md §5).
func (l *ReferencedLabel) ReferencedBy() []addresses.Vram { return l.referencedBy }

// ReferenceCounter is the number of references recorded.
func (l *ReferencedLabel) ReferenceCounter() int { return len(l.referencedBy) }

// AddReferencedBy appends a new referencing address.
func (l *ReferencedLabel) AddReferencedBy(from addresses.Vram) {
	l.referencedBy = append(l.referencedBy, from)
}

// SetAutodetectedType advances the autodetected type up the lattice; it
// never moves it down, and it never touches a user-declared type.
func (l *ReferencedLabel) SetAutodetectedType(newType LabelType) {
	if DoesNewTakePrecedence(newType, l.autodetectedType) {
		l.autodetectedType = newType
	}
}
