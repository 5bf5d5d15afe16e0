package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "pngme:", err)
		os.Exit(1)
	}
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	g := &globalOptions{}
	return &cli.Command{
		Name:      "pngme",
		Usage:     "Hide messages in PNG files",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags:     g.flags(),
		Before:    g.before,
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			encodeCmd(),
			decodeCmd(g),
			removeCmd(g),
			printCmd(),
			serveCmd(g),
			versionCmd(),
		},
	}
}
