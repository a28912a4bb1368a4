package addresses

import "testing"

func TestRomSub(t *testing.T) {
	tests := []struct {
		name string
		a, b Rom
		want Size
	}{
		{"equal", Rom(0x1000), Rom(0x1000), Size(0)},
		{"simple", Rom(0x1010), Rom(0x1000), Size(0x10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Sub(tt.b)
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if tt.b.AddSize(got) != tt.a {
				t.Errorf("(a-b).AddSize(b) = %v, want %v", tt.b.AddSize(got), tt.a)
			}
		})
	}
}

func TestRomSubUnderflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on Rom subtraction underflow")
		}
	}()
	Rom(0x10).Sub(Rom(0x20))
}

func TestSizeFromVramOffset(t *testing.T) {
	if _, err := NewSizeFromVramOffset(VramOffset(-1)); err == nil {
		t.Fatal("expected error converting negative offset to Size")
	}
	size, err := NewSizeFromVramOffset(VramOffset(0x40))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if size != Size(0x40) {
		t.Errorf("got %v, want 0x40", size)
	}
}

func TestAddressRangeInRange(t *testing.T) {
	r := MustAddressRange(Vram(0x80000000), Vram(0x80000100))
	tests := []struct {
		addr Vram
		want bool
	}{
		{0x7FFFFFFF, false},
		{0x80000000, true},
		{0x80000080, true},
		{0x800000FF, true},
		{0x80000100, false},
	}
	for _, tt := range tests {
		if got := r.InRange(tt.addr); got != tt.want {
			t.Errorf("InRange(%v) = %v, want %v", tt.addr, got, tt.want)
		}
	}
}

func TestNewAddressRangeRejectsReversed(t *testing.T) {
	if _, err := NewAddressRange(Rom(0x100), Rom(0x10)); err == nil {
		t.Fatal("expected error constructing a reversed range")
	}
}

func TestRomVramRangeRequiresEqualSize(t *testing.T) {
	rom := MustAddressRange(Rom(0), Rom(0x10))
	vram := MustAddressRange(Vram(0x80000000), Vram(0x80000020))
	if _, err := NewRomVramRange(rom, vram); err == nil {
		t.Fatal("expected mismatched size error")
	}
}

func TestRomVramRangeConversions(t *testing.T) {
	rom := MustAddressRange(Rom(0x1000), Rom(0x1100))
	vram := MustAddressRange(Vram(0x80010000), Vram(0x80010100))
	rv, err := NewRomVramRange(rom, vram)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v, ok := rv.RomToVram(Rom(0x1050))
	if !ok || v != Vram(0x80010050) {
		t.Errorf("RomToVram = %v, %v; want 0x80010050, true", v, ok)
	}

	r, ok := rv.VramToRom(Vram(0x800100A0))
	if !ok || r != Rom(0x10A0) {
		t.Errorf("VramToRom = %v, %v; want 0x10A0, true", r, ok)
	}

	if _, ok := rv.RomToVram(Rom(0x2000)); ok {
		t.Error("expected RomToVram to fail for an out-of-range offset")
	}
}

func TestExpandRanges(t *testing.T) {
	a, _ := NewRomVramRange(
		MustAddressRange(Rom(0x100), Rom(0x200)),
		MustAddressRange(Vram(0x80001000), Vram(0x80001100)),
	)
	b, _ := NewRomVramRange(
		MustAddressRange(Rom(0x50), Rom(0x120)),
		MustAddressRange(Vram(0x80002130), Vram(0x80002200)),
	)
	a.ExpandRanges(b)

	if a.Rom().Start() != Rom(0x50) || a.Rom().End() != Rom(0x200) {
		t.Errorf("rom range not expanded correctly: %v", a.Rom())
	}
	if a.Vram().Start() != Vram(0x80001000) || a.Vram().End() != Vram(0x80002200) {
		t.Errorf("vram range not expanded correctly: %v", a.Vram())
	}
}

func TestCanonicalGp(t *testing.T) {
	if got := CanonicalGp(Vram(0x10000000)); got != GpValue(0x10007FF0) {
		t.Errorf("CanonicalGp = %v, want 0x10007FF0", got)
	}
}
