package analysis

import "github.com/mipsdisasm/spimdisasm/pkg/addresses"
import "github.com/mipsdisasm/spimdisasm/pkg/decoder"

// fakeDecoder decodes the small MIPS I subset the tests in this package
// exercise: lui, addiu, lw, jr. It is a stand-in for the real external
// decoder collaborator (spec.md §6).
type fakeDecoder struct{}

func (fakeDecoder) Decode(word uint32, rom addresses.Rom, vram addresses.Vram) (decoder.Instruction, error) {
	op := word >> 26
	rs := int((word >> 21) & 0x1F)
	rt := int((word >> 16) & 0x1F)
	imm := int16(word & 0xFFFF)

	instr := decoder.Instruction{Rom: rom, Rs: rs, Rt: rt, Rd: -1, Immediate: imm, IsImmSigned: true}

	switch op {
	case 0x0F: // lui
		instr.Op = decoder.OpLui
	case 0x09: // addiu
		instr.Op = decoder.OpAddiu
	case 0x23: // lw
		instr.Op = decoder.OpLoad
		instr.IsLoad = true
	case 0x00:
		funct := word & 0x3F
		switch funct {
		case 0x08: // jr
			instr.Op = decoder.OpJr
			instr.IsJr = true
			instr.HasDelaySlot = true
			instr.Rd = -1
		default:
			instr.Op = decoder.OpNop
		}
	default:
		instr.Op = decoder.OpNop
	}
	return instr, nil
}

func luiWord(rt int, imm16 uint16) uint32 {
	return (0x0F << 26) | (uint32(rt) << 16) | uint32(imm16)
}

func addiuWord(rt, rs int, imm16 uint16) uint32 {
	return (0x09 << 26) | (uint32(rs) << 21) | (uint32(rt) << 16) | uint32(imm16)
}

func lwWord(rt, rs int, imm16 uint16) uint32 {
	return (0x23 << 26) | (uint32(rs) << 21) | (uint32(rt) << 16) | uint32(imm16)
}
