package png

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"strings"
	"unicode/utf8"
)

const (
	chunkLengthSize = 4
	chunkTypeSize   = 4
	chunkCRCSize    = 4

	// ChunkOverhead is the number of bytes a chunk occupies besides its data.
	ChunkOverhead = chunkLengthSize + chunkTypeSize + chunkCRCSize

	// MaxChunkData is the largest payload representable by the length field.
	MaxChunkData = 1<<32 - 1
)

// Chunk is a single typed record of a PNG datastream. It is immutable once
// built; the CRC is derived from the type and data on demand.
type Chunk struct {
	typ  ChunkType
	data []byte
}

// NewChunk builds a chunk from a type and a copy of data. The type is not
// validated. It panics if data does not fit the 32-bit length field.
func NewChunk(t ChunkType, data []byte) *Chunk {
	if uint64(len(data)) > MaxChunkData {
		panic("png: chunk data too large")
	}
	buf := make([]byte, len(data))
	copy(buf, data)
	return &Chunk{typ: t, data: buf}
}

// ParseChunk decodes the chunk at the start of b. Bytes after the chunk are
// ignored.
func ParseChunk(b []byte) (*Chunk, error) {
	c, _, err := DecodeChunk(b)
	return c, err
}

// DecodeChunk decodes the chunk at the start of b and reports how many bytes
// it occupied. The returned chunk does not alias b.
//
// Layout: [Length(4, BE)][Type(4)][Data(Length)][CRC(4, BE)]
func DecodeChunk(b []byte) (*Chunk, int, error) {
	if len(b) < ChunkOverhead {
		return nil, 0, ErrTooShort
	}

	length := binary.BigEndian.Uint32(b[0:4])

	var t ChunkType
	copy(t[:], b[4:8])
	if !t.IsValid() {
		return nil, 0, &InvalidChunkTypeError{Type: t}
	}

	rest := b[chunkLengthSize+chunkTypeSize:]
	need := uint64(length) + chunkCRCSize
	if uint64(len(rest)) < need {
		return nil, 0, fmt.Errorf("%w: %s chunk declares %d data bytes, %d available: %w",
			ErrTruncated, t, length, max(len(rest)-chunkCRCSize, 0), io.ErrUnexpectedEOF)
	}

	n := int(length)
	data := make([]byte, n)
	copy(data, rest[:n])
	stored := binary.BigEndian.Uint32(rest[n : n+chunkCRCSize])

	c := &Chunk{typ: t, data: data}
	if computed := c.CRC(); computed != stored {
		return nil, 0, &CRCMismatchError{Type: t, Stored: stored, Computed: computed}
	}
	return c, ChunkOverhead + n, nil
}

// Length returns the number of data bytes.
func (c *Chunk) Length() uint32 {
	return uint32(len(c.data))
}

func (c *Chunk) Type() ChunkType {
	return c.typ
}

// Data returns the chunk payload. Callers must not modify it.
func (c *Chunk) Data() []byte {
	return c.data
}

// CRC computes CRC-32 (ISO-HDLC, as used by zlib) over the type and data.
func (c *Chunk) CRC() uint32 {
	h := crc32.NewIEEE()
	_, _ = h.Write(c.typ[:])
	_, _ = h.Write(c.data)
	return h.Sum32()
}

// DataString returns the payload as text, failing if it is not UTF-8.
func (c *Chunk) DataString() (string, error) {
	if !utf8.Valid(c.data) {
		return "", ErrInvalidUTF8
	}
	return string(c.data), nil
}

// Size is the encoded size of the chunk in bytes.
func (c *Chunk) Size() int {
	return ChunkOverhead + len(c.data)
}

// Bytes encodes the chunk in wire order: length, type, data, CRC.
func (c *Chunk) Bytes() []byte {
	return c.appendTo(make([]byte, 0, c.Size()))
}

func (c *Chunk) appendTo(buf []byte) []byte {
	buf = binary.BigEndian.AppendUint32(buf, c.Length())
	buf = append(buf, c.typ[:]...)
	buf = append(buf, c.data...)
	return binary.BigEndian.AppendUint32(buf, c.CRC())
}

func (c *Chunk) String() string {
	var sb strings.Builder
	sb.WriteString("Chunk {\n")
	fmt.Fprintf(&sb, "  Length: %d\n", c.Length())
	fmt.Fprintf(&sb, "  Type: %s\n", c.typ)
	fmt.Fprintf(&sb, "  Data: %d bytes\n", len(c.data))
	fmt.Fprintf(&sb, "  Crc: %d\n", c.CRC())
	sb.WriteString("}\n")
	return sb.String()
}
