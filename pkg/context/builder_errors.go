package context

import (
	"fmt"

	"github.com/mipsdisasm/spimdisasm/pkg/addresses"
)

// AddUserSymbolError is raised by GlobalSegmentBuilder/SegmentModifier
// when a user-declared symbol or label can't be added because its vram
// lies outside the segment's range (spec.md §4.2). A duplicate
// declaration is merged into the existing entry, not rejected.
type AddUserSymbolError struct {
	Vram   addresses.Vram
	Reason string
}

func (e *AddUserSymbolError) Error() string {
	return fmt.Sprintf("context: can't add user symbol at %s: %s", e.Vram, e.Reason)
}

// AddPlatformSymbolError mirrors AddUserSymbolError for platform symbols
// (spec.md §4.2).
type AddPlatformSymbolError struct {
	Vram   addresses.Vram
	Reason string
}

func (e *AddPlatformSymbolError) Error() string {
	return fmt.Sprintf("context: can't add platform symbol at %s: %s", e.Vram, e.Reason)
}

// AddGlobalOffsetTableError is returned by
// ContextBuilderFinderHeaterOverlays.AddGlobalOffsetTable (spec.md §4.2).
type AddGlobalOffsetTableError struct {
	variant addGotErrorVariant
}

type addGotErrorVariant uint8

const (
	gotAlreadyAdded addGotErrorVariant = iota
	gotNotPic
)

var (
	// ErrGotAlreadyAdded is returned when a GOT has already been added
	// to this builder stage.
	ErrGotAlreadyAdded = &AddGlobalOffsetTableError{variant: gotAlreadyAdded}
	// ErrGotNotPic is returned when the global configuration hasn't been
	// set up for Position Independent Code.
	ErrGotNotPic = &AddGlobalOffsetTableError{variant: gotNotPic}
)

func (e *AddGlobalOffsetTableError) Error() string {
	switch e.variant {
	case gotAlreadyAdded:
		return "context: a GOT has already been added to this context"
	case gotNotPic:
		return "context: global configuration has not been configured for Position Independent Code (PIC)"
	default:
		return "context: error adding the Global Offset Table"
	}
}
