package metadata

import "github.com/mipsdisasm/spimdisasm/pkg/addresses"

// Reference is a single (from, at) back-reference: the Vram of the
// instruction/data word that pointed here, and the Rom of that site.
type Reference struct {
	From addresses.Vram
	At   addresses.Rom
}

// SymbolMetadata is a single entry in a Segment's symbol table
// (spec.md §3).
type SymbolMetadata struct {
	vram          addresses.Vram
	generatedBy   GeneratedBy
	size          *addresses.Size
	autodetected  SymbolType
	declared      *SymbolType
	referencedBy  []Reference
	nameSettings  SymbolNameGenerationSettings
	visibility    *string
	migration     RodataMigrationBehavior
	gotAccess     GotAccessKind
	allowAddend   bool
}

// NewSymbolMetadata creates a symbol entry. generatedBy is Autodetected
// unless the caller is recording a user declaration.
func NewSymbolMetadata(vram addresses.Vram, symType SymbolType, generatedBy GeneratedBy) *SymbolMetadata {
	s := &SymbolMetadata{
		vram:         vram,
		generatedBy:  generatedBy,
		autodetected: symType,
		nameSettings: DefaultSymbolNameGenerationSettings(),
		allowAddend:  true,
	}
	if generatedBy == UserDeclared {
		s.declared = &symType
	}
	return s
}

func (s *SymbolMetadata) Vram() addresses.Vram      { return s.vram }
func (s *SymbolMetadata) GeneratedBy() GeneratedBy  { return s.generatedBy }

// SymbolType returns the user-declared type if present, else the
// autodetected one (spec.md §3: "user-declared type supersedes
// autodetected").
func (s *SymbolMetadata) SymbolType() SymbolType {
	if s.declared != nil {
		return *s.declared
	}
	return s.autodetected
}

// SetUserDeclaredType records a user override; it always wins.
func (s *SymbolMetadata) SetUserDeclaredType(t SymbolType) {
	s.declared = &t
	s.generatedBy = UserDeclared
}

// SetAutodetectedType updates the autodetected type. It has no effect if
// a user declaration is present.
func (s *SymbolMetadata) SetAutodetectedType(t SymbolType) {
	s.autodetected = t
}

func (s *SymbolMetadata) Size() (addresses.Size, bool) {
	if s.size == nil {
		return 0, false
	}
	return *s.size, true
}

func (s *SymbolMetadata) SetSize(size addresses.Size) {
	s.size = &size
}

// ReferencedBy returns the symbol's back-reference list, in the order
// the preheater recorded them (ascending Rom, per spec.md §5).
func (s *SymbolMetadata) ReferencedBy() []Reference { return s.referencedBy }

func (s *SymbolMetadata) AddReferencedBy(from addresses.Vram, at addresses.Rom) {
	s.referencedBy = append(s.referencedBy, Reference{From: from, At: at})
}

func (s *SymbolMetadata) NameGenerationSettings() *SymbolNameGenerationSettings {
	return &s.nameSettings
}

func (s *SymbolMetadata) Visibility() (string, bool) {
	if s.visibility == nil {
		return "", false
	}
	return *s.visibility, true
}

func (s *SymbolMetadata) SetVisibility(v string) { s.visibility = &v }

func (s *SymbolMetadata) RodataMigrationBehavior() RodataMigrationBehavior { return s.migration }
func (s *SymbolMetadata) SetRodataMigrationBehavior(b RodataMigrationBehavior) {
	s.migration = b
}

func (s *SymbolMetadata) GotAccessKind() GotAccessKind { return s.gotAccess }
func (s *SymbolMetadata) SetGotAccessKind(k GotAccessKind) { s.gotAccess = k }

// AllowRefWithAddend reports whether a reference landing inside this
// symbol's range (rather than exactly on its vram) should resolve here.
func (s *SymbolMetadata) AllowRefWithAddend() bool { return s.allowAddend }
func (s *SymbolMetadata) SetAllowRefWithAddend(v bool) { s.allowAddend = v }

// MergeFrom folds a freshly autodetected observation into an existing
// entry: generatedBy is only ever promoted towards UserDeclared, and the
// autodetected type is simply overwritten (spec.md §4.1: "adding a
// symbol whose vram already exists merges").
func (s *SymbolMetadata) MergeFrom(generatedBy GeneratedBy, symType SymbolType) {
	if generatedBy == UserDeclared {
		s.generatedBy = UserDeclared
		s.SetUserDeclaredType(symType)
	} else {
		s.SetAutodetectedType(symType)
	}
}
