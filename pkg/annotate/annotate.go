// Package annotate lets a user supply address annotations (symbol
// types, label types, ignored ranges) as a small Lua script instead of a
// fixed data format, evaluated against the GlobalSegmentBuilder stage of
// the context pipeline (spec.md §1: "optional user annotations",
// §4.2). The scripting surface itself is out of the analysis core's
// described scope, but the core's own builder calls are exactly what it
// drives.
package annotate

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/mipsdisasm/spimdisasm/pkg/addresses"
	"github.com/mipsdisasm/spimdisasm/pkg/context"
	"github.com/mipsdisasm/spimdisasm/pkg/metadata"
)

var symbolTypeNames = map[string]metadata.SymbolType{
	"function":       metadata.SymbolTypeFunction,
	"data":           metadata.SymbolTypeData,
	"cstring":        metadata.SymbolTypeCString,
	"float32":        metadata.SymbolTypeFloat32,
	"float64":        metadata.SymbolTypeFloat64,
	"byte":           metadata.SymbolTypeByte,
	"short":          metadata.SymbolTypeShort,
	"word":           metadata.SymbolTypeWord,
	"dword":          metadata.SymbolTypeDword,
	"jumptable":      metadata.SymbolTypeJumptable,
	"gccexcepttable": metadata.SymbolTypeGccExceptTable,
}

var labelTypeNames = map[string]metadata.LabelType{
	"branch":           metadata.Branch,
	"jumptable":        metadata.Jumptable,
	"gccexcepttable":   metadata.GccExceptTable,
	"alternateentry":   metadata.AlternativeEntry,
}

// Evaluator runs annotation scripts against a single
// GlobalSegmentBuilder (spec.md §4.2's first pipeline stage).
type Evaluator struct {
	L       *lua.LState
	builder *context.GlobalSegmentBuilder
	err     error
}

// NewEvaluator creates an Evaluator bound to builder and registers the
// annotation API functions as Lua globals.
func NewEvaluator(builder *context.GlobalSegmentBuilder) *Evaluator {
	e := &Evaluator{L: lua.NewState(), builder: builder}
	e.registerAPI()
	return e
}

// Close releases the Lua interpreter's resources.
func (e *Evaluator) Close() { e.L.Close() }

// Run evaluates script. A Lua syntax or runtime error is returned
// directly; otherwise the first error raised by the Go-side builder calls
// (or an unknown type name) is returned once evaluation finishes.
func (e *Evaluator) Run(script string) error {
	if err := e.L.DoString(script); err != nil {
		return fmt.Errorf("annotate: script error: %w", err)
	}
	return e.err
}

func (e *Evaluator) registerAPI() {
	e.L.SetGlobal("symbol", e.L.NewFunction(e.luaSymbol))
	e.L.SetGlobal("label", e.L.NewFunction(e.luaLabel))
	e.L.SetGlobal("ignore", e.L.NewFunction(e.luaIgnore))
	e.L.SetGlobal("platform_symbol", e.L.NewFunction(e.luaPlatformSymbol))
}

func (e *Evaluator) luaSymbol(L *lua.LState) int {
	vram := addresses.Vram(uint32(L.CheckNumber(1)))
	typeName := L.CheckString(2)

	symType, ok := symbolTypeNames[typeName]
	if !ok {
		e.recordErr(fmt.Errorf("annotate: unknown symbol type %q", typeName))
		return 0
	}
	if _, err := e.builder.AddUserSymbol(vram, symType); err != nil {
		e.recordErr(err)
	}
	return 0
}

func (e *Evaluator) luaLabel(L *lua.LState) int {
	vram := addresses.Vram(uint32(L.CheckNumber(1)))
	typeName := L.CheckString(2)

	labelType, ok := labelTypeNames[typeName]
	if !ok {
		e.recordErr(fmt.Errorf("annotate: unknown label type %q", typeName))
		return 0
	}
	if _, err := e.builder.AddUserLabel(vram, labelType); err != nil {
		e.recordErr(err)
	}
	return 0
}

func (e *Evaluator) luaIgnore(L *lua.LState) int {
	vram := addresses.Vram(uint32(L.CheckNumber(1)))
	size := addresses.Size(uint32(L.CheckNumber(2)))
	e.builder.AddIgnoredRange(vram, size)
	return 0
}

func (e *Evaluator) luaPlatformSymbol(L *lua.LState) int {
	vram := addresses.Vram(uint32(L.CheckNumber(1)))
	typeName := L.CheckString(2)

	symType, ok := symbolTypeNames[typeName]
	if !ok {
		e.recordErr(fmt.Errorf("annotate: unknown symbol type %q", typeName))
		return 0
	}
	if _, err := e.builder.AddPlatformSymbol(vram, symType); err != nil {
		e.recordErr(err)
	}
	return 0
}

func (e *Evaluator) recordErr(err error) {
	if e.err == nil {
		e.err = err
	}
}
