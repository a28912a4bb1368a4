package addresses

import "fmt"

// GpValue is the 32-bit target of the MIPS $gp register.
type GpValue uint32

// CanonicalGp computes gp = pltgot + 0x7FF0, the canonical PIC $gp value.
func CanonicalGp(pltgot Vram) GpValue {
	return GpValue(uint32(pltgot) + 0x7FF0)
}

func (g GpValue) Inner() uint32 {
	return uint32(g)
}

func (g GpValue) String() string {
	return fmt.Sprintf("GpValue{0x%08X}", uint32(g))
}
