package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pngme/internal/logger"
	"github.com/samcharles93/pngme/internal/pngstore"
	"github.com/samcharles93/pngme/internal/stego"
	"github.com/samcharles93/pngme/pkg/png"
)

func decodeCmd(g *globalOptions) *cli.Command {
	var (
		all    bool
		asJSON bool
	)

	return &cli.Command{
		Name:      "decode",
		Usage:     "Reveal the message hidden in a PNG file",
		ArgsUsage: "<file> [type]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "all",
				Usage:       "print every chunk of the type, not just the first",
				Destination: &all,
			},
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print messages as JSON",
				Destination: &asJSON,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 1, 2); err != nil {
				return err
			}
			t, err := resolveChunkType(cmd.Args().Get(1), g.cfg.ChunkType)
			if err != nil {
				return err
			}

			p, err := pngstore.New(logger.FromContext(ctx)).Load(cmd.Args().Get(0))
			if err != nil {
				return err
			}

			stderr := cmd.Root().ErrWriter
			pass, err := passphrase(stderr, false)
			if err != nil {
				return err
			}
			msgs, err := reveal(p, t, all, stego.Options{Passphrase: pass})
			if errors.Is(err, stego.ErrSealed) && stdinIsTTY() {
				if pass, err = passphrase(stderr, true); err != nil {
					return err
				}
				msgs, err = reveal(p, t, all, stego.Options{Passphrase: pass})
			}
			if err != nil {
				return err
			}

			w := cmd.Root().Writer
			if asJSON {
				return writeMessagesJSON(w, msgs, all)
			}
			for _, m := range msgs {
				_, _ = fmt.Fprintf(w, "Chunk : %s\n", m.Chunk)
				_, _ = fmt.Fprintf(w, "Chunk data : %s\n", m.Text)
			}
			return nil
		},
	}
}

func reveal(p *png.PNG, t png.ChunkType, all bool, opts stego.Options) ([]*stego.Message, error) {
	if all {
		return stego.RevealAll(p, t.String(), opts)
	}
	m, err := stego.Reveal(p, t.String(), opts)
	if err != nil {
		return nil, err
	}
	return []*stego.Message{m}, nil
}

func writeMessagesJSON(w io.Writer, msgs []*stego.Message, all bool) error {
	var v any = msgs
	if !all {
		v = msgs[0]
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
