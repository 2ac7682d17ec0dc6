// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ExToozy
// Source: github.com/ExToozy/Archiver

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"

	archiver "github.com/ExToozy/Archiver"
)

var (
	errorColor = color.New(color.FgRed)
	warnColor  = color.New(color.FgYellow)
	okColor    = color.New(color.FgGreen)
)

// app holds output streams shared by all subcommands.
type app struct {
	stdout io.Writer
	stderr io.Writer
}

func (a *app) create(ctx context.Context, cmd *cli.Command) error {
	args, err := requireArgs(cmd, 2, 2)
	if err != nil {
		return err
	}

	m, err := a.newManager(cmd, args[0], a.printEvent(cmd))
	if err != nil {
		return err
	}

	if err := m.Create(ctx, args[1]); err != nil {
		return a.report(err)
	}

	a.message(cmd, okColor, "Archive %s created.", m.Path())
	return nil
}

func (a *app) list(ctx context.Context, cmd *cli.Command) error {
	args, err := requireArgs(cmd, 1, 1)
	if err != nil {
		return err
	}

	m, err := a.newManager(cmd, args[0], nil)
	if err != nil {
		return err
	}

	entries, err := m.List(ctx)
	if err != nil {
		return a.report(err)
	}

	if cmd.Bool("json") {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	for _, entry := range entries {
		if _, err := fmt.Fprintln(a.stdout, entry.String()); err != nil {
			return err
		}
	}

	return nil
}

func (a *app) extract(ctx context.Context, cmd *cli.Command) error {
	args, err := requireArgs(cmd, 2, 2)
	if err != nil {
		return err
	}

	var bar *progressbar.ProgressBar
	onEvent := func(ev archiver.Event) {
		if bar != nil && ev.Kind == archiver.EventExtracted {
			_ = bar.Add(1)
		}
	}

	m, err := a.newManager(cmd, args[0], onEvent)
	if err != nil {
		return err
	}

	if !cmd.Bool("quiet") {
		if entries, listErr := m.List(ctx); listErr == nil {
			bar = newProgressBar(a.stderr, len(entries))
		}
	}

	if err := m.ExtractAll(ctx, args[1]); err != nil {
		return a.report(err)
	}

	if bar != nil {
		_ = bar.Finish()
	}

	a.message(cmd, okColor, "Archive extracted to %s.", args[1])
	return nil
}

func (a *app) add(ctx context.Context, cmd *cli.Command) error {
	args, err := requireArgs(cmd, 2, -1)
	if err != nil {
		return err
	}

	m, err := a.newManager(cmd, args[0], a.printEvent(cmd))
	if err != nil {
		return err
	}

	if err := m.AddFiles(ctx, args[1:]); err != nil {
		return a.report(err)
	}

	return nil
}

func (a *app) remove(ctx context.Context, cmd *cli.Command) error {
	args, err := requireArgs(cmd, 2, -1)
	if err != nil {
		return err
	}

	m, err := a.newManager(cmd, args[0], a.printEvent(cmd))
	if err != nil {
		return err
	}

	if err := m.RemoveFiles(ctx, args[1:]); err != nil {
		return a.report(err)
	}

	return nil
}

// newManager builds a manager from global flags.
func (a *app) newManager(cmd *cli.Command, archivePath string, onEvent func(archiver.Event)) (*archiver.Manager, error) {
	level := slog.LevelWarn
	if cmd.Bool("verbose") {
		level = slog.LevelDebug
	}

	return archiver.New(archivePath, archiver.Options{
		Logger:           slog.New(slog.NewTextHandler(a.stderr, &slog.HandlerOptions{Level: level})),
		OnEvent:          onEvent,
		CompressionLevel: cmd.Int("level"),
		Collect: archiver.CollectOptions{
			Exclude: archiver.ExcludeRules(cmd.StringSlice("exclude")...),
		},
	})
}

// printEvent returns an event callback printing one line per event, or nil with --quiet.
func (a *app) printEvent(cmd *cli.Command) func(archiver.Event) {
	if cmd.Bool("quiet") {
		return nil
	}

	return func(ev archiver.Event) {
		switch ev.Kind {
		case archiver.EventWritten:
			_, _ = fmt.Fprintf(a.stdout, "File '%s' archived.\n", ev.Name)
		case archiver.EventAdded:
			_, _ = okColor.Fprintf(a.stdout, "File '%s' added to archive.\n", ev.Name)
		case archiver.EventSkipped:
			_, _ = warnColor.Fprintf(a.stdout, "File '%s' already exists in archive.\n", ev.Name)
		case archiver.EventRemoved:
			_, _ = fmt.Fprintf(a.stdout, "File '%s' removed from archive.\n", ev.Name)
		}
	}
}

// message prints a status line unless --quiet is set.
func (a *app) message(cmd *cli.Command, c *color.Color, format string, args ...any) {
	if cmd.Bool("quiet") {
		return
	}

	_, _ = c.Fprintf(a.stdout, format+"\n", args...)
}

// report renders user-facing errors and passes the rest through.
func (a *app) report(err error) error {
	switch {
	case errors.Is(err, archiver.ErrWrongArchive):
		_, _ = errorColor.Fprintf(a.stderr, "Wrong archive name: %v\n", err)
	case errors.Is(err, archiver.ErrPathNotFound):
		_, _ = errorColor.Fprintf(a.stderr, "Wrong file or directory name: %v\n", err)
	default:
		return err
	}

	return errReported
}

// requireArgs returns positional arguments when their count is within [minArgs, maxArgs].
// A negative maxArgs means no upper bound.
func requireArgs(cmd *cli.Command, minArgs int, maxArgs int) ([]string, error) {
	args := cmd.Args().Slice()
	if len(args) < minArgs || (maxArgs >= 0 && len(args) > maxArgs) {
		return nil, fmt.Errorf("usage: %s %s", cmd.FullName(), cmd.ArgsUsage)
	}

	return args, nil
}

// newProgressBar returns an extract progress bar writing to w.
func newProgressBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Extracting"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionOnCompletion(func() {
			_, _ = fmt.Fprintln(w)
		}),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer: "█", SaucerHead: "█", SaucerPadding: "░",
			BarStart: "[", BarEnd: "]",
		}),
	)
}
