package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pngme/pkg/png"
)

var errNoChunkType = errors.New("chunk type required: pass it as an argument or set chunk_type in the config file")

// stdinIsTTY is a small seam for tests.
var stdinIsTTY = func() bool { return isTerminal(os.Stdin) }

// resolveChunkType validates the type argument, falling back to the config
// default when the argument is empty. Nothing touches the filesystem before
// this succeeds.
func resolveChunkType(arg, fallback string) (png.ChunkType, error) {
	s := arg
	if s == "" {
		s = fallback
	}
	if s == "" {
		return png.ChunkType{}, errNoChunkType
	}
	t, err := png.ParseChunkType(s)
	if err != nil {
		return png.ChunkType{}, err
	}
	if !t.IsValid() {
		return png.ChunkType{}, &png.InvalidChunkTypeError{Type: t}
	}
	return t, nil
}

func requireArgs(cmd *cli.Command, lo, hi int) error {
	n := cmd.NArg()
	if n >= lo && n <= hi {
		return nil
	}
	return fmt.Errorf("%s: expected arguments %s, got %d", cmd.Name, cmd.ArgsUsage, n)
}

// passphrase returns $PNGME_PASSPHRASE, or prompts for one without echo
// when stdin is a terminal. prompt is false for callers that treat a
// missing passphrase as "not sealed".
func passphrase(stderr io.Writer, prompt bool) (string, error) {
	if p := os.Getenv(envPassphrase); p != "" {
		return p, nil
	}
	if !prompt {
		return "", nil
	}
	if !stdinIsTTY() {
		return "", fmt.Errorf("%s is not set and stdin is not a terminal", envPassphrase)
	}
	p, err := readPassphrase("Passphrase: ", stderr)
	if err != nil {
		return "", err
	}
	if p == "" {
		return "", errors.New("empty passphrase")
	}
	return p, nil
}
