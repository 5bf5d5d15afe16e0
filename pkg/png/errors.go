package png

import (
	"errors"
	"fmt"
)

var (
	ErrChunkTypeLength   = errors.New("png: chunk type must be 4 bytes")
	ErrIllegalCharacter  = errors.New("png: chunk type contains non-alphabetic characters")
	ErrTooShort          = errors.New("png: at least 12 bytes needed to decode a chunk")
	ErrInvalidChunkType  = errors.New("png: invalid chunk type")
	ErrTruncated         = errors.New("png: chunk data truncated")
	ErrCRCMismatch       = errors.New("png: chunk crc mismatch")
	ErrInvalidUTF8       = errors.New("png: chunk data is not valid UTF-8")
	ErrSignatureMismatch = errors.New("png: invalid PNG signature")
	ErrChunkNotFound     = errors.New("png: chunk not found")
)

// ChunkTypeLengthError reports a textual chunk type of the wrong size.
type ChunkTypeLengthError struct {
	Len int
}

func (e *ChunkTypeLengthError) Error() string {
	return fmt.Sprintf("png: chunk type must be 4 bytes, found %d", e.Len)
}

func (e *ChunkTypeLengthError) Unwrap() error {
	return ErrChunkTypeLength
}

type InvalidChunkTypeError struct {
	Type ChunkType
}

func (e *InvalidChunkTypeError) Error() string {
	return fmt.Sprintf("png: invalid chunk type %q", e.Type[:])
}

func (e *InvalidChunkTypeError) Unwrap() error {
	return ErrInvalidChunkType
}

// CRCMismatchError carries the checksum read from the wire and the one
// recomputed over the chunk type and data.
type CRCMismatchError struct {
	Type     ChunkType
	Stored   uint32
	Computed uint32
}

func (e *CRCMismatchError) Error() string {
	return fmt.Sprintf("png: crc mismatch in %s chunk: stored %08x, computed %08x", e.Type, e.Stored, e.Computed)
}

func (e *CRCMismatchError) Unwrap() error {
	return ErrCRCMismatch
}

// ChunkError locates a chunk decode failure inside a PNG datastream.
// Offset is relative to the start of the file, signature included.
type ChunkError struct {
	Index  int
	Offset int
	Err    error
}

func (e *ChunkError) Error() string {
	return fmt.Sprintf("png: chunk %d at offset %d: %v", e.Index, e.Offset, e.Err)
}

func (e *ChunkError) Unwrap() error {
	return e.Err
}

type ChunkNotFoundError struct {
	Type string
}

func (e *ChunkNotFoundError) Error() string {
	return fmt.Sprintf("png: no %q chunk", e.Type)
}

func (e *ChunkNotFoundError) Unwrap() error {
	return ErrChunkNotFound
}
