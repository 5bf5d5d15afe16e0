package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/samcharles93/pngme/internal/logger"
	"github.com/samcharles93/pngme/internal/pngstore"
	"github.com/samcharles93/pngme/internal/stego"
)

func encodeCmd() *cli.Command {
	var seal bool

	return &cli.Command{
		Name:      "encode",
		Usage:     "Hide a message in a PNG file",
		ArgsUsage: "<file> <type> <message> [output]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "seal",
				Usage:       "encrypt the message with $" + envPassphrase + " (prompts when unset)",
				Destination: &seal,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if err := requireArgs(cmd, 3, 4); err != nil {
				return err
			}
			args := cmd.Args()
			input, message := args.Get(0), args.Get(2)
			output := input
			if args.Len() == 4 {
				output = args.Get(3)
			}

			t, err := resolveChunkType(args.Get(1), "")
			if err != nil {
				return err
			}

			var opts stego.Options
			if seal {
				if opts.Passphrase, err = passphrase(cmd.Root().ErrWriter, true); err != nil {
					return err
				}
			}

			log := logger.FromContext(ctx)
			store := pngstore.New(log)
			p, err := store.Load(input)
			if err != nil {
				return err
			}
			chunk, err := stego.Hide(p, t, []byte(message), opts)
			if err != nil {
				return err
			}
			if err := store.Save(output, p); err != nil {
				return err
			}

			log.Debug("chunk encoded", "type", t.String(), "length", chunk.Length(), "sealed", seal, "output", output)
			_, _ = fmt.Fprintln(cmd.Root().Writer, "Chunk written successfully.")
			return nil
		},
	}
}
