package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pngme/internal/logger"
	"github.com/samcharles93/pngme/internal/pngstore"
	"github.com/samcharles93/pngme/internal/stego"
)

func printCmd() *cli.Command {
	var asJSON bool

	return &cli.Command{
		Name:      "print",
		Usage:     "Print every chunk of a PNG file",
		ArgsUsage: "<file>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "print a JSON summary with chunk properties and a BLAKE3 digest",
				Destination: &asJSON,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 1, 1); err != nil {
				return err
			}
			p, err := pngstore.New(logger.FromContext(ctx)).Load(cmd.Args().First())
			if err != nil {
				return err
			}

			w := cmd.Root().Writer
			if asJSON {
				b, err := stego.Summarize(p).JSON()
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(w, string(b))
				return err
			}
			for _, c := range p.Chunks() {
				_, _ = fmt.Fprintln(w, c)
			}
			return nil
		},
	}
}
