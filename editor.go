// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ExToozy
// Source: github.com/ExToozy/Archiver

package archiver

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/scylladb/go-set/strset"
)

// rewritePlan describes one archive rewrite pass.
type rewritePlan struct {
	// keep selects source entries copied unchanged; nil keeps every entry.
	keep func(f *zip.File) bool
	// appends are filesystem paths added after the copy pass, named by base name.
	appends []string
}

// rewriteResult contains counters of one rewrite pass.
type rewriteResult struct {
	copied  int
	dropped int
	added   int
	skipped int
}

// AddFile adds one file to the archive. It is AddFiles with a single path.
func (m *Manager) AddFile(ctx context.Context, path string) error {
	return m.AddFiles(ctx, []string{path})
}

// AddFiles appends regular files to the archive under their base names.
//
// Existing entries are copied unchanged. A path whose base name is already an
// entry name is skipped and reported with EventSkipped; it never overwrites.
// The archive is replaced atomically once the full new content is written.
func (m *Manager) AddFiles(ctx context.Context, paths []string) error {
	startedAt := time.Now()

	res, err := m.rewriteArchive(ctx, rewritePlan{appends: paths})
	if err != nil {
		return err
	}

	m.log.Info("files added",
		slog.Int("added", res.added),
		slog.Int("skipped", res.skipped),
		slog.Int("entries", res.copied+res.added),
		slog.Duration("duration", time.Since(startedAt)),
	)

	return nil
}

// RemoveFile removes one entry by exact name. It is RemoveFiles with a single name.
func (m *Manager) RemoveFile(ctx context.Context, name string) error {
	return m.RemoveFiles(ctx, []string{name})
}

// RemoveFiles drops entries whose names exactly match one of names.
//
// Every other entry is copied unchanged into a new archive which then
// atomically replaces the original, even when nothing matched.
func (m *Manager) RemoveFiles(ctx context.Context, names []string) error {
	startedAt := time.Now()
	drop := strset.New(names...)

	res, err := m.rewriteArchive(ctx, rewritePlan{
		keep: func(f *zip.File) bool { return !drop.Has(f.Name) },
	})
	if err != nil {
		return err
	}

	m.log.Info("files removed",
		slog.Int("removed", res.dropped),
		slog.Int("entries", res.copied),
		slog.Duration("duration", time.Since(startedAt)),
	)

	return nil
}

// rewriteArchive copies kept entries and appends new files into a temp archive,
// then renames it over the original. The original stays untouched on any
// failure before the rename and the temp file is removed.
func (m *Manager) rewriteArchive(ctx context.Context, plan rewritePlan) (rewriteResult, error) {
	var res rewriteResult
	ctx = contextOrBackground(ctx)

	src, srcInfo, err := m.openArchive()
	if err != nil {
		return res, err
	}
	defer func() { _ = src.Close() }()

	tmp, err := os.CreateTemp(filepath.Dir(m.path), "."+filepath.Base(m.path)+".tmp-*")
	if err != nil {
		return res, fmt.Errorf("create temp archive: %w", err)
	}
	tmpPath := tmp.Name()
	success := false
	defer func() {
		if !success {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	buf, releaseBuf := acquireCopyBuffer()
	defer releaseBuf()

	zw := newZipWriter(tmp, m.opts.CompressionLevel)
	names := strset.NewWithSize(len(src.File) + len(plan.appends))

	for _, f := range src.File {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		if plan.keep != nil && !plan.keep(f) {
			res.dropped++
			m.emit(EventRemoved, f.Name, "")
			continue
		}

		if err := zw.Copy(f); err != nil {
			return res, fmt.Errorf("copy entry %s: %w", f.Name, err)
		}

		names.Add(f.Name)
		res.copied++
	}

	for _, path := range plan.appends {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		info, err := os.Stat(path)
		if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.Mode().IsRegular()) {
			return res, fmt.Errorf("%w: %s", ErrPathNotFound, path)
		}
		if err != nil {
			return res, fmt.Errorf("stat %s: %w", path, err)
		}

		name := filepath.Base(path)
		if names.Has(name) {
			res.skipped++
			m.emit(EventSkipped, name, path)
			continue
		}

		if _, err := writeFileEntry(zw, path, name, buf); err != nil {
			return res, err
		}

		names.Add(name)
		res.added++
		m.emit(EventAdded, name, path)
	}

	if err := zw.Close(); err != nil {
		return res, fmt.Errorf("finish temp archive: %w", err)
	}

	if err := tmp.Sync(); err != nil {
		return res, fmt.Errorf("sync temp archive: %w", err)
	}

	if err := tmp.Close(); err != nil {
		return res, fmt.Errorf("close temp archive: %w", err)
	}

	if err := os.Chmod(tmpPath, srcInfo.Mode().Perm()); err != nil {
		return res, fmt.Errorf("set temp archive mode: %w", err)
	}

	if err := m.rename(tmpPath, m.path); err != nil {
		return res, fmt.Errorf("replace archive: %w", err)
	}

	success = true
	return res, nil
}
