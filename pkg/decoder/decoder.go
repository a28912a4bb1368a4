// Package decoder describes the interface the core expects from an
// external MIPS instruction decoder (spec.md §1, §6). No decoding logic
// lives here — an implementation would wrap something like a Go port of
// rabbitizer, exposing per-instruction operand and control-flow
// classification.
package decoder

import "github.com/mipsdisasm/spimdisasm/pkg/addresses"

// Opcode loosely groups instruction families the analyser cares about.
// A real decoder will have a much larger internal opcode table; this is
// only the subset the register tracker and instruction analyser branch
// on.
type Opcode uint16

const (
	OpUnknown Opcode = iota
	OpLui
	OpAddiu
	OpOri
	OpLoad  // lb, lbu, lh, lhu, lw, lwc1, ldc1, ...
	OpStore // sb, sh, sw, swc1, sdc1, ...
	OpBranch
	OpJump
	OpJal
	OpJr
	OpJalr
	OpNop
	OpOther
)

// Instruction is a single decoded MIPS instruction (spec.md §6): opcode
// family, operand GPR indices, the 16-bit immediate, branch/jump
// targets, and the handful of boolean classifications the analyser
// drives its sweep with.
type Instruction struct {
	Rom  addresses.Rom
	Op   Opcode

	Rd, Rs, Rt int // general purpose register indices; -1 if not used

	Immediate   int16
	IsImmSigned bool

	BranchTarget addresses.Vram
	JumpTarget   addresses.Vram

	IsBranch bool
	IsJump   bool
	IsJal    bool
	IsJr     bool
	IsLoad   bool
	IsStore  bool

	// HasDelaySlot is true for every branch/jump; MIPS I's delay slot is
	// unconditional.
	HasDelaySlot bool
}

// Decoder decodes a single instruction's 4 bytes at a given Rom/Vram
// position (spec.md §6). A production implementation needs the
// endianness to interpret the word; that's threaded in by the caller
// rather than stored here, since the decoder is otherwise stateless.
type Decoder interface {
	Decode(word uint32, rom addresses.Rom, vram addresses.Vram) (Instruction, error)
}

// RegisterGp is the conventional GPR index of $gp ($28).
const RegisterGp = 28

// RegisterRa is the conventional GPR index of $ra ($31), the link
// register jal implicitly targets.
const RegisterRa = 31
