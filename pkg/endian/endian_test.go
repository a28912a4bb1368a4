package endian

import "testing"

func TestReadWord(t *testing.T) {
	tests := []struct {
		name   string
		endian Endian
		bytes  []byte
		want   uint32
	}{
		{"big", Big, []byte{0x12, 0x34, 0x56, 0x78}, 0x12345678},
		{"little", Little, []byte{0x78, 0x56, 0x34, 0x12}, 0x12345678},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.endian.ReadWord(tt.bytes, 0); got != tt.want {
				t.Errorf("ReadWord = 0x%X, want 0x%X", got, tt.want)
			}
		})
	}
}

func TestPutWordRoundTrip(t *testing.T) {
	for _, e := range []Endian{Big, Little} {
		buf := make([]byte, 4)
		e.PutWord(buf, 0, 0xDEADBEEF)
		if got := e.ReadWord(buf, 0); got != 0xDEADBEEF {
			t.Errorf("%v: round trip = 0x%X, want 0xDEADBEEF", e, got)
		}
	}
}

func TestReadHalf(t *testing.T) {
	if got := Big.ReadHalf([]byte{0xAB, 0xCD}, 0); got != 0xABCD {
		t.Errorf("got 0x%X, want 0xABCD", got)
	}
	if got := Little.ReadHalf([]byte{0xAB, 0xCD}, 0); got != 0xCDAB {
		t.Errorf("got 0x%X, want 0xCDAB", got)
	}
}

func TestReadDword(t *testing.T) {
	b := []byte{0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x02}
	if got := Big.ReadDword(b, 0); got != 0x0000000100000002 {
		t.Errorf("got 0x%X", got)
	}
}
