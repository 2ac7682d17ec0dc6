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
)

// Create writes a new archive from source, truncating any existing archive.
//
// A directory source is collected recursively and stored under paths relative
// to it; a regular file is stored under its base name. A failure while writing
// leaves a partial archive behind, so callers retry by calling Create again.
func (m *Manager) Create(ctx context.Context, source string) error {
	startedAt := time.Now()
	ctx = contextOrBackground(ctx)

	info, err := os.Stat(source)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !info.IsDir() && !info.Mode().IsRegular()) {
		return fmt.Errorf("%w: %s", ErrPathNotFound, source)
	}
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}

	root := filepath.Dir(source)
	names := []string{filepath.Base(source)}
	if info.IsDir() {
		root = source
		names, err = CollectWithOptions(source, m.opts.Collect)
		if err != nil {
			return err
		}

		names = m.withoutSelf(root, names)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0o750); err != nil {
		return fmt.Errorf("create archive directory: %w", err)
	}

	f, err := os.OpenFile(m.path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o644) //nolint:gosec // archives are shared files
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer func() {
		if f != nil {
			_ = f.Close()
		}
	}()

	buf, releaseBuf := acquireCopyBuffer()
	defer releaseBuf()

	zw := newZipWriter(f, m.opts.CompressionLevel)
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return err
		}

		fullPath := filepath.Join(root, filepath.FromSlash(name))
		if _, err := writeFileEntry(zw, fullPath, name, buf); err != nil {
			return err
		}

		m.emit(EventWritten, name, fullPath)
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("finish archive: %w", err)
	}

	if err := f.Sync(); err != nil {
		return fmt.Errorf("sync archive: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close archive: %w", err)
	}
	f = nil

	m.log.Info("archive created",
		slog.String("source", source),
		slog.Int("entries", len(names)),
		slog.Duration("duration", time.Since(startedAt)),
	)

	return nil
}

// withoutSelf drops the archive itself when it lives inside the collected tree.
func (m *Manager) withoutSelf(root string, names []string) []string {
	archiveAbs, err := filepath.Abs(m.path)
	if err != nil {
		return names
	}

	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return names
	}

	rel, err := filepath.Rel(rootAbs, archiveAbs)
	if err != nil {
		return names
	}

	self := filepath.ToSlash(rel)
	out := make([]string, 0, len(names))
	for _, name := range names {
		if name == self {
			continue
		}

		out = append(out, name)
	}

	return out
}

// writeFileEntry streams one regular file into zw as a new entry named name.
func writeFileEntry(zw *zip.Writer, fullPath string, name string, buf []byte) (int64, error) {
	src, err := os.Open(fullPath) //nolint:gosec // caller-provided source path
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", fullPath, err)
	}
	defer func() { _ = src.Close() }()

	info, err := src.Stat()
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", fullPath, err)
	}

	if !info.Mode().IsRegular() {
		return 0, fmt.Errorf("%w: %s", ErrPathNotFound, fullPath)
	}

	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return 0, fmt.Errorf("build header for %s: %w", name, err)
	}

	header.Name = name
	header.Method = zip.Deflate

	dst, err := zw.CreateHeader(header)
	if err != nil {
		return 0, fmt.Errorf("create entry %s: %w", name, err)
	}

	written, err := copyData(dst, src, buf)
	if err != nil {
		return written, fmt.Errorf("write entry %s: %w", name, err)
	}

	return written, nil
}
