package analysis

import (
	"github.com/mipsdisasm/spimdisasm/pkg/addresses"
	"github.com/mipsdisasm/spimdisasm/pkg/config"
	"github.com/mipsdisasm/spimdisasm/pkg/decoder"
	"github.com/mipsdisasm/spimdisasm/pkg/endian"
)

// StringGuesserFlags is a bitset controlling which string-layout
// heuristics the analyser (and its downstream consumers) may attempt
// (spec.md §4.5). A guess gated by one of these bits is still only a
// proposal: it never raises an error, it is simply withheld if the flag
// is clear or validation fails.
type StringGuesserFlags uint8

const (
	GuessCStrings StringGuesserFlags = 1 << iota
	GuessPascalStrings
	GuessWideStrings
)

func (f StringGuesserFlags) Has(bit StringGuesserFlags) bool { return f&bit != 0 }

// JrTableEntry records a `jr rX` the analyser suspects dispatches
// through a jumptable (spec.md §4.5).
type JrTableEntry struct {
	JrRom      addresses.Rom
	TableVram  addresses.Vram
	EntryCount int
	HasCount   bool
}

// OutsideReference pairs a referencing ROM site with the Vram it
// reaches outside the function under analysis (a `jal`/`j` target).
type OutsideReference struct {
	FromRom addresses.Rom
	Target  addresses.Vram
}

// BranchTarget pairs a branch instruction's ROM with the Vram it
// targets, so the preheater can record the referencing site.
type BranchTarget struct {
	FromRom addresses.Rom
	Target  addresses.Vram
}

// InstructionAnalysisResult is the output of sweeping one function
// (spec.md §4.5).
type InstructionAnalysisResult struct {
	BranchTargets                  []BranchTarget
	HiLoPairings                   []HiLoPairing
	JrTables                       []JrTableEntry
	ReferencedVramsOutsideFunction []OutsideReference
	FunctionEnds                   addresses.Rom
}

// InstructionAnalyzer sweeps a function's decoded instructions,
// maintaining a RegisterTracker (spec.md §4.5).
type InstructionAnalyzer struct {
	decoder decoder.Decoder
	endian  endian.Endian
}

// NewInstructionAnalyzer builds an analyser bound to an external decoder
// and the binary's endianness.
func NewInstructionAnalyzer(dec decoder.Decoder, en endian.Endian) *InstructionAnalyzer {
	return &InstructionAnalyzer{decoder: dec, endian: en}
}

// Analyze performs the single forward sweep described in spec.md §4.5:
// bytes is the function's raw instruction stream, ranges its
// RomVramRange, gpConfig the binary's (possibly nil/non-PIC) $gp
// configuration, and flags the enabled string-guessing heuristics
// (currently only gating whether later layers may try; the sweep itself
// does not decode data bytes).
func (a *InstructionAnalyzer) Analyze(bytes []byte, ranges addresses.RomVramRange, gpConfig *config.GpConfig, flags StringGuesserFlags) (InstructionAnalysisResult, error) {
	tracker := NewRegisterTracker()
	result := InstructionAnalysisResult{}

	words := len(bytes) / 4
	instrs := make([]decoder.Instruction, 0, words)
	for i := 0; i < words; i++ {
		word := a.endian.ReadWord(bytes, i*4)
		rom := ranges.Rom().Start().AddSize(addresses.Size(i * 4))
		vram, _ := ranges.RomToVram(rom)
		instr, err := a.decoder.Decode(word, rom, vram)
		if err != nil {
			return result, err
		}
		instrs = append(instrs, instr)
	}

	functionEnds := ranges.Rom().End()
	returned := false

	i := 0
	for i < len(instrs) {
		instr := instrs[i]

		if returned {
			// Unreachable code is still swept for completeness (spec.md
			// §4.5) but contributes no references.
			i++
			continue
		}

		a.stepOne(tracker, instr, gpConfig, &result)

		if instr.HasDelaySlot && i+1 < len(instrs) {
			// The delay slot is analysed with the pre-branch tracker
			// state for its inputs, but its own writes (e.g. a hi/lo pair
			// completed in the delay slot) still land in the tracker
			// before the branch's clobbering takes effect.
			delaySlot := instrs[i+1]
			a.stepOne(tracker, delaySlot, gpConfig, &result)
			i++

			if instr.IsJr && instr.Rs == decoder.RegisterRa {
				functionEnds = delaySlot.Rom.AddSize(addresses.Size(4))
				returned = true
			}
		}

		if instr.IsJal {
			tracker.OnJal()
		}
		if instr.IsJump || instr.IsBranch {
			tracker.OnUnconditionalControlFlowChange()
		}

		i++
	}

	result.FunctionEnds = functionEnds
	return result, nil
}

func (a *InstructionAnalyzer) stepOne(tracker *RegisterTracker, instr decoder.Instruction, gpConfig *config.GpConfig, result *InstructionAnalysisResult) {
	switch instr.Op {
	case decoder.OpLui:
		tracker.OnLui(instr.Rt, uint16(instr.Immediate), instr.Rom)

	case decoder.OpAddiu, decoder.OpOri:
		if pairing, ok := tracker.OnAddiu(instr.Rt, instr.Rs, instr.Immediate, instr.Rom, gpConfig); ok {
			result.HiLoPairings = append(result.HiLoPairings, pairing)
		}

	case decoder.OpLoad, decoder.OpStore:
		if pairing, ok := tracker.OnLoadStoreImm(instr.Rs, instr.Immediate, instr.Rom, gpConfig); ok {
			result.HiLoPairings = append(result.HiLoPairings, pairing)
		}

	case decoder.OpBranch:
		result.BranchTargets = append(result.BranchTargets, BranchTarget{FromRom: instr.Rom, Target: instr.BranchTarget})

	case decoder.OpJump, decoder.OpJal:
		if instr.JumpTarget != 0 {
			result.ReferencedVramsOutsideFunction = append(result.ReferencedVramsOutsideFunction, OutsideReference{FromRom: instr.Rom, Target: instr.JumpTarget})
		}

	case decoder.OpJr, decoder.OpJalr:
		branchInfo := BranchInfo{Rom: instr.Rom, IsJalr: instr.Op == decoder.OpJalr, LinkReg: instr.Rd}
		jrData := tracker.OnJr(instr.Rs, instr.Rom, branchInfo)
		if jrData.HasAddress && instr.Rs != decoder.RegisterRa {
			result.JrTables = append(result.JrTables, JrTableEntry{
				JrRom:     instr.Rom,
				TableVram: jrData.Address,
			})
		}
	}
}
