// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ExToozy
// Source: github.com/ExToozy/Archiver

package archiver

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/klauspost/compress/zip"
)

// List returns entry metadata in stored order.
//
// Sizes come from the central directory. With Options.VerifyOnList every entry
// is also decompressed and checksummed, so corrupt payloads fail the listing.
func (m *Manager) List(ctx context.Context) ([]EntryInfo, error) {
	ctx = contextOrBackground(ctx)

	r, _, err := m.openArchive()
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Close() }()

	var buf []byte
	if m.opts.VerifyOnList {
		var releaseBuf func()
		buf, releaseBuf = acquireCopyBuffer()
		defer releaseBuf()
	}

	entries := make([]EntryInfo, 0, len(r.File))
	for _, f := range r.File {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		if m.opts.VerifyOnList {
			if err := drainEntry(f, buf); err != nil {
				return nil, err
			}
		}

		entries = append(entries, newEntryInfo(&f.FileHeader))
	}

	m.log.Info("archive listed", slog.Int("entries", len(entries)))

	return entries, nil
}

// ListEntries opens the archive at path and returns entry metadata without payload reads.
func ListEntries(path string) ([]EntryInfo, error) {
	m, err := New(path, Options{})
	if err != nil {
		return nil, err
	}

	return m.List(context.Background())
}

// drainEntry reads one entry payload to the end, validating its checksum.
func drainEntry(f *zip.File, buf []byte) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open entry %s: %w", f.Name, err)
	}
	defer func() { _ = rc.Close() }()

	if _, err := copyData(io.Discard, rc, buf); err != nil {
		return fmt.Errorf("read entry %s: %w", f.Name, err)
	}

	return nil
}
