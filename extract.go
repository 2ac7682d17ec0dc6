// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ExToozy
// Source: github.com/ExToozy/Archiver

package archiver

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
)

// ExtractAll writes every entry to outputDir in stored order, recreating
// relative paths and overwriting existing files.
func (m *Manager) ExtractAll(ctx context.Context, outputDir string) error {
	startedAt := time.Now()
	ctx = contextOrBackground(ctx)

	r, _, err := m.openArchive()
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	if err := os.MkdirAll(outputDir, 0o750); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	buf, releaseBuf := acquireCopyBuffer()
	defer releaseBuf()

	var written int64
	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return err
		}

		n, outPath, err := extractEntry(f, outputDir, buf)
		if err != nil {
			return err
		}

		written += n
		m.emit(EventExtracted, f.Name, outPath)
	}

	m.log.Info("archive extracted",
		slog.String("output", outputDir),
		slog.Int("entries", len(r.File)),
		slog.Int64("bytes", written),
		slog.Duration("duration", time.Since(startedAt)),
	)

	return nil
}

// extractEntry writes one entry below outputDir and returns bytes written and output path.
func extractEntry(f *zip.File, outputDir string, buf []byte) (int64, string, error) {
	relPath, err := safeEntryPath(f.Name)
	if err != nil {
		return 0, "", err
	}

	outPath := filepath.Join(outputDir, filepath.FromSlash(relPath))
	if strings.HasSuffix(f.Name, "/") {
		if err := os.MkdirAll(outPath, 0o750); err != nil {
			return 0, "", fmt.Errorf("create directory %s: %w", outPath, err)
		}

		return 0, outPath, nil
	}

	if err := os.MkdirAll(filepath.Dir(outPath), 0o750); err != nil {
		return 0, "", fmt.Errorf("create output directory %s: %w", filepath.Dir(outPath), err)
	}

	rc, err := f.Open()
	if err != nil {
		return 0, "", fmt.Errorf("open entry %s: %w", f.Name, err)
	}
	defer func() { _ = rc.Close() }()

	file, err := os.OpenFile(outPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, extractFileMode(f)) //nolint:gosec // path is normalized above
	if err != nil {
		return 0, "", fmt.Errorf("open %s: %w", f.Name, err)
	}

	written, copyErr := copyData(file, rc, buf)
	closeErr := file.Close()
	if copyErr != nil {
		return written, "", fmt.Errorf("write %s: %w", f.Name, copyErr)
	}

	if closeErr != nil {
		return written, "", fmt.Errorf("close %s: %w", f.Name, closeErr)
	}

	return written, outPath, nil
}

// extractFileMode returns permission bits for a newly created output file.
// Owner read and write bits are always set.
func extractFileMode(f *zip.File) os.FileMode {
	if perm := f.Mode().Perm(); perm != 0 {
		return perm | 0o600
	}

	return 0o600
}

// safeEntryPath converts an entry name into a cleaned slash path that stays
// inside the output directory. Backslashes count as separators.
func safeEntryPath(name string) (string, error) {
	slashed := strings.ReplaceAll(strings.TrimSpace(name), `\`, "/")

	switch {
	case slashed == "",
		strings.ContainsRune(slashed, 0),
		strings.HasPrefix(slashed, "/"),
		hasDriveLetter(slashed),
		slices.Contains(strings.Split(slashed, "/"), ".."):
		return "", fmt.Errorf("%w: %q", ErrInvalidExtractPath, name)
	}

	cleaned := path.Clean(slashed)
	if cleaned == "." {
		return "", fmt.Errorf("%w: %q", ErrInvalidExtractPath, name)
	}

	return cleaned, nil
}

// hasDriveLetter reports whether p starts with a volume name such as "C:".
func hasDriveLetter(p string) bool {
	if len(p) < 2 || p[1] != ':' {
		return false
	}

	lower := p[0] | 0x20
	return lower >= 'a' && lower <= 'z'
}
