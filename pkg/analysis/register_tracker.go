// Package analysis implements the instruction-level analysis core
// (spec.md §4.4, §4.5): per-register abstract value tracking, the
// function sweep that drives it, and the cross-section preheater that
// turns raw references into typed symbol metadata.
package analysis

import (
	"github.com/mipsdisasm/spimdisasm/pkg/addresses"
	"github.com/mipsdisasm/spimdisasm/pkg/config"
	"github.com/mipsdisasm/spimdisasm/pkg/decoder"
)

const numGpRegisters = 32

// HiInfo records the most recent unpaired `lui` that wrote a register
// (spec.md §4.4).
type HiInfo struct {
	InstrRom addresses.Rom
	Value    uint32
}

// LoPairingInfo records the state left behind after a hi/lo pair was
// committed into a register (spec.md §4.4). Value is kept signed
// ("fishy" in the original, per SPEC_FULL.md item 5) so a negative addiu
// addend survives round-tripping.
type LoPairingInfo struct {
	InstrRom addresses.Rom
	Value    int64
	IsGpRel  bool
	IsGpGot  bool
}

// TrackedRegisterState is the abstract state the tracker keeps for one
// of the 32 general purpose registers (spec.md §4.4).
type TrackedRegisterState struct {
	Value   int64
	HiInfo  *HiInfo
	LoInfo  *LoPairingInfo
	IsGpRel bool
	IsGpGot bool
}

func (s *TrackedRegisterState) clear() {
	*s = TrackedRegisterState{}
}

// HiLoPairing is a single committed hi/lo pair (spec.md §4.5).
type HiLoPairing struct {
	HiRom    addresses.Rom
	LoRom    addresses.Rom
	Target   addresses.Vram
	IsGpRel  bool
	IsGpGot  bool
}

// BranchInfo is the handful of facts about the controlling branch/jump
// instruction a JrRegData needs to let the analyser later classify
// whether a `jr` is a plain return or a jumptable dispatch (SPEC_FULL.md
// item 4: the original's JrRegData carries a branch_info field).
type BranchInfo struct {
	Rom      addresses.Rom
	IsJalr   bool
	LinkReg  int
}

// JrRegData is what the tracker records when it sees a `jr`/`jalr`
// (spec.md §4.4): the ROM of the lo-pairing (if any) that last defined
// the jump-target register, the resolved address if the tracker could
// determine one, and the controlling branch's own info.
type JrRegData struct {
	LoRom      addresses.Rom
	Address    addresses.Vram
	HasAddress bool
	BranchInfo BranchInfo
}

// RegisterTracker holds per-register abstract state for a single
// function sweep (spec.md §4.4). The zero value is ready to use, with
// every register in its "unknown" state.
type RegisterTracker struct {
	regs [numGpRegisters]TrackedRegisterState
}

// NewRegisterTracker returns a tracker with every register unknown.
func NewRegisterTracker() *RegisterTracker {
	return &RegisterTracker{}
}

// State returns the current tracked state of register r for inspection;
// callers must not mutate it directly.
func (t *RegisterTracker) State(r int) TrackedRegisterState {
	return t.regs[r]
}

// OnLui processes a `lui rd, imm16` (spec.md §4.4): clears lo_info, sets
// hi_info, and sets value to the shifted immediate.
func (t *RegisterTracker) OnLui(rd int, imm16 uint16, rom addresses.Rom) {
	if rd == 0 {
		return
	}
	value := uint32(imm16) << 16
	t.regs[rd] = TrackedRegisterState{
		Value:  int64(int32(value)),
		HiInfo: &HiInfo{InstrRom: rom, Value: value},
	}
}

// OnAddiu processes `addiu rd, rs, imm16` (spec.md §4.4). If rs carries
// an open hi_info, this closes the pair and the returned pairing is
// valid (ok=true). The $gp special case is handled here whenever the
// caller passes a non-nil gpConfig: when rs is the $gp register, the pairing is marked
// gp-relative/gp-got directly without requiring a preceding lui.
func (t *RegisterTracker) OnAddiu(rd, rs int, imm16 int16, rom addresses.Rom, gpConfig *config.GpConfig) (HiLoPairing, bool) {
	rsState := t.regs[rs]

	if rs == decoder.RegisterGp && gpConfig != nil {
		value := int64(gpConfig.GpValue().Inner()) + int64(imm16)
		pairing := HiLoPairing{
			LoRom:   rom,
			Target:  addresses.Vram(uint32(value)),
			IsGpRel: true,
			IsGpGot: gpConfig != nil && gpConfig.Pic(),
		}
		if rd != 0 {
			t.regs[rd] = TrackedRegisterState{
				Value:   value,
				IsGpRel: true,
				IsGpGot: pairing.IsGpGot,
				LoInfo: &LoPairingInfo{
					InstrRom: rom,
					Value:    value,
					IsGpRel:  true,
					IsGpGot:  pairing.IsGpGot,
				},
			}
		}
		return pairing, true
	}

	if rsState.HiInfo == nil {
		if rd != 0 {
			t.regs[rd].clear()
		}
		return HiLoPairing{}, false
	}

	value := rsState.Value + int64(imm16)
	pairing := HiLoPairing{
		HiRom:  rsState.HiInfo.InstrRom,
		LoRom:  rom,
		Target: addresses.Vram(uint32(value)),
	}

	if rd != 0 {
		t.regs[rd] = TrackedRegisterState{
			Value: value,
			LoInfo: &LoPairingInfo{
				InstrRom: rom,
				Value:    value,
			},
		}
	}
	if rd != rs {
		t.regs[rs].HiInfo = nil
	}
	return pairing, true
}

// OnLoadStoreImm processes a load/store with `imm16(rs)` addressing
// (spec.md §4.4): identical pairing semantics to OnAddiu, but it takes
// no destination register and leaves every register's tracked state
// unchanged (the destination holds loaded memory content, not a
// materialised address). The gp/got classification of the access is
// carried only by the flags of the returned pairing.
func (t *RegisterTracker) OnLoadStoreImm(rs int, imm16 int16, rom addresses.Rom, gpConfig *config.GpConfig) (HiLoPairing, bool) {
	rsState := t.regs[rs]

	if rs == decoder.RegisterGp && gpConfig != nil {
		value := int64(gpConfig.GpValue().Inner()) + int64(imm16)
		return HiLoPairing{
			LoRom:   rom,
			Target:  addresses.Vram(uint32(value)),
			IsGpRel: true,
			IsGpGot: gpConfig != nil && gpConfig.Pic(),
		}, true
	}

	if rsState.HiInfo == nil {
		return HiLoPairing{}, false
	}

	value := rsState.Value + int64(imm16)
	return HiLoPairing{
		HiRom:   rsState.HiInfo.InstrRom,
		LoRom:   rom,
		Target:  addresses.Vram(uint32(value)),
		IsGpRel: rsState.IsGpRel,
		IsGpGot: rsState.IsGpGot,
	}, true
}

// OnJr records state for `jr rs`/`jalr rd, rs` (spec.md §4.4).
func (t *RegisterTracker) OnJr(rs int, rom addresses.Rom, branchInfo BranchInfo) JrRegData {
	state := t.regs[rs]
	data := JrRegData{BranchInfo: branchInfo}
	if state.LoInfo != nil {
		data.LoRom = state.LoInfo.InstrRom
		data.Address = addresses.Vram(uint32(state.Value))
		data.HasAddress = true
	}
	return data
}

// callerSaved are the MIPS o32 ABI registers clobbered across a call:
// $at, $v0-$v1, $a0-$a3, $t0-$t9, $ra.
var callerSaved = map[int]bool{
	1: true, 2: true, 3: true,
	4: true, 5: true, 6: true, 7: true,
	8: true, 9: true, 10: true, 11: true, 12: true, 13: true, 14: true, 15: true,
	24: true, 25: true,
	decoder.RegisterRa: true,
}

// OnJal invalidates caller-saved registers across a function call
// (spec.md §4.4).
func (t *RegisterTracker) OnJal() {
	for r := range callerSaved {
		t.regs[r].clear()
	}
}

// OnUnconditionalControlFlowChange clears hi/lo pairing state for every
// register, since no assumption about register contents can survive an
// unconditional jump/branch target change (spec.md §4.4: "on any
// unconditional control flow change, hi_info/lo_info for clobbered
// registers are cleared"). Registers whose lo_info already resolved to a
// concrete gp/got value are left alone, since those reflect data the
// delay slot or fallthrough code may still legitimately use.
func (t *RegisterTracker) OnUnconditionalControlFlowChange() {
	for i := range t.regs {
		if t.regs[i].IsGpRel || t.regs[i].IsGpGot {
			continue
		}
		t.regs[i].HiInfo = nil
		t.regs[i].LoInfo = nil
	}
}
