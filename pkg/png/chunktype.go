package png

import "bytes"

// propertyBit is bit 5 of each type byte; it selects between upper and
// lower case letters.
const propertyBit = 0x20

// ChunkType is the 4-byte type code of a chunk, e.g. "IHDR" or "tEXt".
//
// Each byte carries one property bit:
//
//	byte 0  ancillary (set) / critical (clear)
//	byte 1  private (set) / public (clear)
//	byte 2  reserved, must be clear
//	byte 3  safe to copy (set) / unsafe to copy (clear)
//
// Only the reserved bit affects validity; the other three are informational.
type ChunkType [4]byte

// ChunkTypeFromBytes wraps raw type bytes without checking them. Use IsValid
// to reject codes read off the wire.
func ChunkTypeFromBytes(b [4]byte) ChunkType {
	return ChunkType(b)
}

// ParseChunkType converts user supplied text into a ChunkType. The text must
// be exactly four ASCII letters. The reserved bit is not checked here, so
// "Rust" parses but is not valid.
func ParseChunkType(s string) (ChunkType, error) {
	if len(s) != 4 {
		return ChunkType{}, &ChunkTypeLengthError{Len: len(s)}
	}
	var t ChunkType
	for i := 0; i < 4; i++ {
		if !isASCIIAlpha(s[i]) {
			return ChunkType{}, ErrIllegalCharacter
		}
		t[i] = s[i]
	}
	return t, nil
}

func (t ChunkType) Bytes() [4]byte {
	return t
}

func (t ChunkType) String() string {
	return string(t[:])
}

func (t ChunkType) IsCritical() bool {
	return t[0]&propertyBit == 0
}

func (t ChunkType) IsPublic() bool {
	return t[1]&propertyBit == 0
}

func (t ChunkType) IsReservedBitValid() bool {
	return t[2]&propertyBit == 0
}

func (t ChunkType) IsSafeToCopy() bool {
	return t[3]&propertyBit != 0
}

// IsValid reports whether every byte is an ASCII letter and the reserved bit
// is clear.
func (t ChunkType) IsValid() bool {
	if !t.IsReservedBitValid() {
		return false
	}
	for _, b := range t {
		if !isASCIIAlpha(b) {
			return false
		}
	}
	return true
}

// Compare orders chunk types byte-wise, case-sensitively.
func (t ChunkType) Compare(other ChunkType) int {
	return bytes.Compare(t[:], other[:])
}

func isASCIIAlpha(b byte) bool {
	return ('A' <= b && b <= 'Z') || ('a' <= b && b <= 'z')
}
