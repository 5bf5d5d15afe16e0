package png

import (
	"bytes"
	"strings"
)

// Signature is the fixed 8-byte prefix of every PNG datastream:
// 0x89 'P' 'N' 'G' CR LF SUB LF.
var Signature = [8]byte{137, 80, 78, 71, 13, 10, 26, 10}

// PNG is a parsed datastream: the signature followed by an ordered list of
// chunks. Chunk order is preserved exactly, so an unmodified PNG serializes
// back to the bytes it was parsed from.
//
// A PNG is not safe for concurrent mutation.
type PNG struct {
	chunks []*Chunk
}

// FromChunks builds a PNG with the standard signature and the given chunks
// in order.
func FromChunks(chunks []*Chunk) *PNG {
	cs := make([]*Chunk, len(chunks))
	copy(cs, chunks)
	return &PNG{chunks: cs}
}

// Parse decodes a complete datastream. Chunks are read back to back until
// the buffer is exhausted; the first bad chunk fails the whole parse.
func Parse(b []byte) (*PNG, error) {
	if len(b) < len(Signature) || !bytes.Equal(b[:len(Signature)], Signature[:]) {
		return nil, ErrSignatureMismatch
	}

	var chunks []*Chunk
	off := len(Signature)
	for off < len(b) {
		c, n, err := DecodeChunk(b[off:])
		if err != nil {
			return nil, &ChunkError{Index: len(chunks), Offset: off, Err: err}
		}
		chunks = append(chunks, c)
		off += n
	}
	return &PNG{chunks: chunks}, nil
}

// AppendChunk adds c after the last chunk. Duplicate types are allowed.
func (p *PNG) AppendChunk(c *Chunk) {
	p.chunks = append(p.chunks, c)
}

// ChunkByType returns the first chunk whose type equals t, or nil.
func (p *PNG) ChunkByType(t string) *Chunk {
	if i := p.index(t); i >= 0 {
		return p.chunks[i]
	}
	return nil
}

// ChunksByType returns every chunk whose type equals t, in file order.
func (p *PNG) ChunksByType(t string) []*Chunk {
	var out []*Chunk
	for _, c := range p.chunks {
		if c.typ.String() == t {
			out = append(out, c)
		}
	}
	return out
}

// RemoveChunk removes and returns the first chunk whose type equals t. The
// remaining chunks keep their relative order.
func (p *PNG) RemoveChunk(t string) (*Chunk, error) {
	i := p.index(t)
	if i < 0 {
		return nil, &ChunkNotFoundError{Type: t}
	}
	c := p.chunks[i]
	copy(p.chunks[i:], p.chunks[i+1:])
	p.chunks[len(p.chunks)-1] = nil
	p.chunks = p.chunks[:len(p.chunks)-1]
	return c, nil
}

// Chunks returns the chunks in order. The slice is a copy; the chunks are
// shared and immutable.
func (p *PNG) Chunks() []*Chunk {
	out := make([]*Chunk, len(p.chunks))
	copy(out, p.chunks)
	return out
}

func (p *PNG) Len() int {
	return len(p.chunks)
}

// Size is the encoded size of the datastream in bytes.
func (p *PNG) Size() int {
	n := len(Signature)
	for _, c := range p.chunks {
		n += c.Size()
	}
	return n
}

// Bytes encodes the signature followed by every chunk.
func (p *PNG) Bytes() []byte {
	buf := make([]byte, 0, p.Size())
	buf = append(buf, Signature[:]...)
	for _, c := range p.chunks {
		buf = c.appendTo(buf)
	}
	return buf
}

func (p *PNG) String() string {
	var sb strings.Builder
	for _, c := range p.chunks {
		sb.WriteString(c.String())
	}
	return sb.String()
}

func (p *PNG) index(t string) int {
	for i, c := range p.chunks {
		if c.typ.String() == t {
			return i
		}
	}
	return -1
}
