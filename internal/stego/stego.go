// Package stego hides text messages in PNG chunks and gets them back out.
//
// A message lives in the data of a single chunk of a caller-chosen type. It
// may be sealed with a passphrase first (see package sealed), in which case
// the chunk holds an age file instead of the text.
package stego

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/samcharles93/pngme/internal/sealed"
	"github.com/samcharles93/pngme/pkg/png"
)

// NonUTF8Text replaces the text of a message whose payload is not UTF-8.
const NonUTF8Text = "{Non UTF-8 data}"

var (
	ErrSealed          = errors.New("stego: message is sealed, passphrase required")
	ErrMessageTooLarge = errors.New("stego: message does not fit in a chunk")
	// ErrLooksSealed rejects a plain message that would read back as a
	// sealed payload.
	ErrLooksSealed = errors.New("stego: plain message starts with a sealed header")
)

// Options controls sealing. An empty Passphrase stores and reads plain text.
type Options struct {
	Passphrase string
}

// Message is a revealed chunk payload.
type Message struct {
	Chunk  *png.Chunk `json:"-"`
	Type   string     `json:"type"`
	Text   string     `json:"text"`
	UTF8   bool       `json:"utf8"`
	Sealed bool       `json:"sealed"`
	Length uint32     `json:"length"`
	CRC    uint32     `json:"crc"`
}

// Hide appends a chunk of type t carrying message, sealed when
// opts.Passphrase is set, and returns the new chunk.
func Hide(p *png.PNG, t png.ChunkType, message []byte, opts Options) (*png.Chunk, error) {
	if !t.IsValid() {
		return nil, &png.InvalidChunkTypeError{Type: t}
	}
	payload := message
	if opts.Passphrase != "" {
		var err error
		if payload, err = sealed.Seal(message, opts.Passphrase); err != nil {
			return nil, fmt.Errorf("stego: sealing message: %w", err)
		}
	} else if sealed.IsSealed(message) {
		return nil, ErrLooksSealed
	}
	if uint64(len(payload)) > png.MaxChunkData {
		return nil, fmt.Errorf("%w: %d bytes", ErrMessageTooLarge, len(payload))
	}
	c := png.NewChunk(t, payload)
	p.AppendChunk(c)
	return c, nil
}

// Reveal returns the message in the first chunk of type t.
func Reveal(p *png.PNG, t string, opts Options) (*Message, error) {
	c := p.ChunkByType(t)
	if c == nil {
		return nil, &png.ChunkNotFoundError{Type: t}
	}
	return reveal(c, opts)
}

// RevealAll returns the messages of every chunk of type t in file order.
func RevealAll(p *png.PNG, t string, opts Options) ([]*Message, error) {
	chunks := p.ChunksByType(t)
	if len(chunks) == 0 {
		return nil, &png.ChunkNotFoundError{Type: t}
	}
	out := make([]*Message, 0, len(chunks))
	for _, c := range chunks {
		m, err := reveal(c, opts)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}

// Strip removes the first chunk of type t and returns it.
func Strip(p *png.PNG, t string) (*png.Chunk, error) {
	return p.RemoveChunk(t)
}

func reveal(c *png.Chunk, opts Options) (*Message, error) {
	m := &Message{
		Chunk:  c,
		Type:   c.Type().String(),
		Length: c.Length(),
		CRC:    c.CRC(),
	}
	data := c.Data()
	if sealed.IsSealed(data) {
		m.Sealed = true
		if opts.Passphrase == "" {
			return nil, fmt.Errorf("%w: %s chunk", ErrSealed, m.Type)
		}
		var err error
		if data, err = sealed.Open(data, opts.Passphrase); err != nil {
			return nil, fmt.Errorf("stego: opening %s chunk: %w", m.Type, err)
		}
	}
	if utf8.Valid(data) {
		m.Text, m.UTF8 = string(data), true
	} else {
		m.Text = NonUTF8Text
	}
	return m, nil
}
