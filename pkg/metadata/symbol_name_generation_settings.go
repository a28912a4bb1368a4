package metadata

// SymbolNameGenerationSettings controls how the (out-of-scope) display
// layer would turn a SymbolMetadata into source-level names. The
// analysis core only stores these choices.
type SymbolNameGenerationSettings struct {
	useTypePrefix      bool
	customSuffix       string
	userDeclaredStart  string
	userDeclaredEnd    string
}

// DefaultSymbolNameGenerationSettings matches the common case: no custom
// naming, type-prefixed autogenerated names.
func DefaultSymbolNameGenerationSettings() SymbolNameGenerationSettings {
	return SymbolNameGenerationSettings{useTypePrefix: true}
}

func (s *SymbolNameGenerationSettings) UseTypePrefix() bool { return s.useTypePrefix }
func (s *SymbolNameGenerationSettings) SetUseTypePrefix(v bool) { s.useTypePrefix = v }

func (s *SymbolNameGenerationSettings) CustomSuffix() string { return s.customSuffix }
func (s *SymbolNameGenerationSettings) SetCustomSuffix(v string) { s.customSuffix = v }

func (s *SymbolNameGenerationSettings) UserDeclaredNameStart() string { return s.userDeclaredStart }
func (s *SymbolNameGenerationSettings) SetUserDeclaredNameStart(v string) { s.userDeclaredStart = v }

func (s *SymbolNameGenerationSettings) UserDeclaredNameEnd() string { return s.userDeclaredEnd }
func (s *SymbolNameGenerationSettings) SetUserDeclaredNameEnd(v string) { s.userDeclaredEnd = v }
