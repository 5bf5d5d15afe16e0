package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pngme/internal/logger"
	"github.com/samcharles93/pngme/internal/pngstore"
	"github.com/samcharles93/pngme/internal/stego"
)

func removeCmd(g *globalOptions) *cli.Command {
	return &cli.Command{
		Name:      "remove",
		Usage:     "Remove the first chunk of a type from a PNG file",
		ArgsUsage: "<file> [type]",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 1, 2); err != nil {
				return err
			}
			t, err := resolveChunkType(cmd.Args().Get(1), g.cfg.ChunkType)
			if err != nil {
				return err
			}

			path := cmd.Args().Get(0)
			store := pngstore.New(logger.FromContext(ctx))
			p, err := store.Load(path)
			if err != nil {
				return err
			}
			chunk, err := stego.Strip(p, t.String())
			if err != nil {
				return err
			}
			if err := store.Save(path, p); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.Root().Writer, "Removed chunk: %s", chunk)
			return nil
		},
	}
}
