// Package png reads, edits and writes the chunk container of PNG files.
//
// It works on the datastream structure only: the signature and the sequence
// of chunks. Pixel data is never decoded and chunk semantics (IHDR shape,
// IEND placement) are not enforced.
//
// # Datastream Format
//
//	[Signature(8)][Chunk]...[Chunk]
//
// Each chunk, big-endian throughout:
//
//	[Length(4)][Type(4)][Data(Length)][CRC(4)]
//
// Fields:
//   - Length: number of data bytes
//   - Type: four ASCII letters, reserved bit (0x20 of byte 2) clear
//   - Data: opaque payload
//   - CRC: CRC-32 (ISO-HDLC) over Type and Data
//
// There is no padding between chunks; the end of the datastream is the end
// of the buffer.
//
// # Round Trips
//
// Chunk CRCs are verified on decode and recomputed on encode, so
// Parse(b).Bytes() reproduces b for any datastream that parses.
package png
