package addresses

import "fmt"

// RomVramRange bundles a Rom range and a Vram range that describe the same
// span of bytes from two address spaces at once. The two ranges must have
// equal size.
type RomVramRange struct {
	rom  AddressRange[Rom]
	vram AddressRange[Vram]
}

// NewRomVramRange builds a RomVramRange, rejecting mismatched sizes.
func NewRomVramRange(rom AddressRange[Rom], vram AddressRange[Vram]) (RomVramRange, error) {
	if RomSize(rom) != VramSize(vram) {
		return RomVramRange{}, &MismatchedRangeSizeError{RomSize: RomSize(rom), VramSize: VramSize(vram)}
	}
	return RomVramRange{rom: rom, vram: vram}, nil
}

func (r RomVramRange) Rom() AddressRange[Rom]   { return r.rom }
func (r RomVramRange) Vram() AddressRange[Vram] { return r.vram }
func (r RomVramRange) Size() Size               { return RomSize(r.rom) }

// RomToVram converts a Rom offset that falls inside this range's Rom span
// into the corresponding Vram address.
func (r RomVramRange) RomToVram(rom Rom) (Vram, bool) {
	if !r.rom.InRange(rom) {
		return 0, false
	}
	offset := rom.Sub(r.rom.Start())
	return r.vram.Start().AddSize(offset), true
}

// VramToRom converts a Vram address that falls inside this range's Vram
// span into the corresponding Rom offset.
func (r RomVramRange) VramToRom(vram Vram) (Rom, bool) {
	if !r.vram.InRange(vram) {
		return 0, false
	}
	offset, err := NewSizeFromVramOffset(vram.Sub(r.vram.Start()))
	if err != nil {
		return 0, false
	}
	return r.rom.Start().AddSize(offset), true
}

// ExpandRanges grows both the Rom and Vram sub-ranges independently to
// also cover other (see SPEC_FULL.md item 7: the two axes expand without
// regard to each other).
func (r *RomVramRange) ExpandRanges(other RomVramRange) {
	r.rom.ExpandRange(other.rom)
	r.vram.ExpandRange(other.vram)
}

func (r RomVramRange) String() string {
	return fmt.Sprintf("RomVramRange{rom: %v, vram: %v}", r.rom, r.vram)
}

// MismatchedRangeSizeError is returned by NewRomVramRange when the Rom and
// Vram ranges describe spans of different sizes.
type MismatchedRangeSizeError struct {
	RomSize, VramSize Size
}

func (e *MismatchedRangeSizeError) Error() string {
	return fmt.Sprintf("addresses: rom range size %v does not match vram range size %v", e.RomSize, e.VramSize)
}
