// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ExToozy
// Source: github.com/ExToozy/Archiver

// Command archiver creates, lists, extracts and edits ZIP archives.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"
)

// errReported marks an error already rendered to the user.
var errReported = errors.New("error reported")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args, os.Stdout, os.Stderr)
	stop()

	os.Exit(code)
}

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout io.Writer, stderr io.Writer) int {
	if err := newRootCommand(stdout, stderr).Run(ctx, args); err != nil {
		if !errors.Is(err, errReported) {
			_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		}

		return 1
	}

	return 0
}

// newRootCommand builds the command tree writing to stdout and stderr.
func newRootCommand(stdout io.Writer, stderr io.Writer) *cli.Command {
	a := &app{stdout: stdout, stderr: stderr}

	return &cli.Command{
		Name:      "archiver",
		Usage:     "Create, list, extract and edit ZIP archives",
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "level",
				Aliases: []string{"l"},
				Usage:   "deflate level for new entries (1-9, 0 selects the default)",
				Sources: cli.EnvVars("ARCHIVER_LEVEL"),
			},
			&cli.StringSliceFlag{
				Name:    "exclude",
				Aliases: []string{"x"},
				Usage:   "skip files matching `PATTERN` when creating (repeatable)",
				Sources: cli.EnvVars("ARCHIVER_EXCLUDE"),
			},
			&cli.BoolFlag{Name: "verbose", Aliases: []string{"v"}, Usage: "enable debug logging"},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: "print errors only"},
		},
		Commands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "Create an archive from a directory or a file",
				ArgsUsage: "<archive> <source>",
				Action:    a.create,
			},
			{
				Name:      "list",
				Aliases:   []string{"ls"},
				Usage:     "List archive entries",
				ArgsUsage: "<archive>",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "json", Usage: "print entries as JSON"},
				},
				Action: a.list,
			},
			{
				Name:      "extract",
				Usage:     "Extract every entry into a directory",
				ArgsUsage: "<archive> <outdir>",
				Action:    a.extract,
			},
			{
				Name:      "add",
				Usage:     "Add files to an archive under their base names",
				ArgsUsage: "<archive> <file>...",
				Action:    a.add,
			},
			{
				Name:      "remove",
				Aliases:   []string{"rm"},
				Usage:     "Remove entries by exact name",
				ArgsUsage: "<archive> <name>...",
				Action:    a.remove,
			},
		},
	}
}
