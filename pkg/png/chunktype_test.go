package png

import (
	"errors"
	"testing"
)

func TestChunkTypeFromBytes(t *testing.T) {
	t.Parallel()

	want := [4]byte{82, 117, 83, 116}
	ct := ChunkTypeFromBytes(want)
	if ct.Bytes() != want {
		t.Fatalf("bytes mismatch: got %v want %v", ct.Bytes(), want)
	}
	if !ct.IsValid() {
		t.Fatalf("expected %s to be valid", ct)
	}
}

func TestParseChunkType(t *testing.T) {
	t.Parallel()

	ct, err := ParseChunkType("RuSt")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ct != ChunkTypeFromBytes([4]byte{82, 117, 83, 116}) {
		t.Fatalf("parsed type mismatch: got %v", ct.Bytes())
	}
	if ct.String() != "RuSt" {
		t.Fatalf("string mismatch: got %q", ct.String())
	}
}

func TestParseChunkTypeLengthError(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", "a", "Rus", "RuStX", "RuStRuSt"} {
		_, err := ParseChunkType(s)
		if !errors.Is(err, ErrChunkTypeLength) {
			t.Fatalf("ParseChunkType(%q): expected length error, got %v", s, err)
		}
		var lerr *ChunkTypeLengthError
		if !errors.As(err, &lerr) {
			t.Fatalf("ParseChunkType(%q): expected *ChunkTypeLengthError, got %T", s, err)
		}
		if lerr.Len != len(s) {
			t.Fatalf("ParseChunkType(%q): length mismatch: got %d want %d", s, lerr.Len, len(s))
		}
	}
}

func TestParseChunkTypeIllegalCharacter(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"Ru1t", "Ru t", "RuS\x00", "@uSt", "RuS[", "Rüt"} {
		_, err := ParseChunkType(s)
		if !errors.Is(err, ErrIllegalCharacter) {
			t.Fatalf("ParseChunkType(%q): expected illegal character error, got %v", s, err)
		}
	}
}

func TestChunkTypeProperties(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code       string
		critical   bool
		public     bool
		reserved   bool
		safeToCopy bool
		valid      bool
	}{
		{"RuSt", true, false, true, true, true},
		{"ruSt", false, false, true, true, true},
		{"RUSt", true, true, true, true, true},
		{"Rust", true, false, false, true, false},
		{"RuST", true, false, true, false, true},
		{"IHDR", true, true, true, false, true},
		{"tEXt", false, true, true, true, true},
	}

	for _, tc := range tests {
		ct, err := ParseChunkType(tc.code)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.code, err)
		}
		if got := ct.IsCritical(); got != tc.critical {
			t.Errorf("%s IsCritical: got %v want %v", tc.code, got, tc.critical)
		}
		if got := ct.IsPublic(); got != tc.public {
			t.Errorf("%s IsPublic: got %v want %v", tc.code, got, tc.public)
		}
		if got := ct.IsReservedBitValid(); got != tc.reserved {
			t.Errorf("%s IsReservedBitValid: got %v want %v", tc.code, got, tc.reserved)
		}
		if got := ct.IsSafeToCopy(); got != tc.safeToCopy {
			t.Errorf("%s IsSafeToCopy: got %v want %v", tc.code, got, tc.safeToCopy)
		}
		if got := ct.IsValid(); got != tc.valid {
			t.Errorf("%s IsValid: got %v want %v", tc.code, got, tc.valid)
		}
	}
}

func TestChunkTypeFromBytesInvalid(t *testing.T) {
	t.Parallel()

	for _, b := range [][4]byte{
		{'R', 'u', '1', 't'},
		{'R', 'u', 's', 't'},
		{0, 0, 0, 0},
		{'R', 'u', 'S', 0xff},
	} {
		if ChunkTypeFromBytes(b).IsValid() {
			t.Fatalf("expected %v to be invalid", b)
		}
	}
}

func TestChunkTypeEqualityIsCaseSensitive(t *testing.T) {
	t.Parallel()

	a, _ := ParseChunkType("RuSt")
	b, _ := ParseChunkType("rust")
	if a == b {
		t.Fatalf("RuSt and rust must differ")
	}
	if a.Compare(b) >= 0 {
		t.Fatalf("expected RuSt < rust, got %d", a.Compare(b))
	}
	if a.Compare(a) != 0 {
		t.Fatalf("expected equal compare")
	}
}
