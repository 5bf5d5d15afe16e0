package stego

import (
	"encoding/hex"

	"github.com/goccy/go-json"
	"github.com/zeebo/blake3"

	"github.com/samcharles93/pngme/internal/sealed"
	"github.com/samcharles93/pngme/pkg/png"
)

// ChunkInfo describes one chunk without its data.
type ChunkInfo struct {
	Index      int    `json:"index"`
	Type       string `json:"type"`
	Length     uint32 `json:"length"`
	CRC        uint32 `json:"crc"`
	Critical   bool   `json:"critical"`
	Public     bool   `json:"public"`
	SafeToCopy bool   `json:"safe_to_copy"`
	Sealed     bool   `json:"sealed"`
}

// Summary lists the chunks of a PNG together with the size and BLAKE3-256
// digest of its encoding.
type Summary struct {
	Size   int         `json:"size"`
	BLAKE3 string      `json:"blake3"`
	Chunks []ChunkInfo `json:"chunks"`
}

func Summarize(p *png.PNG) Summary {
	raw := p.Bytes()
	sum := blake3.Sum256(raw)
	chunks := p.Chunks()

	s := Summary{
		Size:   len(raw),
		BLAKE3: hex.EncodeToString(sum[:]),
		Chunks: make([]ChunkInfo, len(chunks)),
	}
	for i, c := range chunks {
		t := c.Type()
		s.Chunks[i] = ChunkInfo{
			Index:      i,
			Type:       t.String(),
			Length:     c.Length(),
			CRC:        c.CRC(),
			Critical:   t.IsCritical(),
			Public:     t.IsPublic(),
			SafeToCopy: t.IsSafeToCopy(),
			Sealed:     sealed.IsSealed(c.Data()),
		}
	}
	return s
}

// JSON encodes the summary with two-space indentation.
func (s Summary) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}
