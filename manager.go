// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ExToozy
// Source: github.com/ExToozy/Archiver

package archiver

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/klauspost/compress/zip"
)

// Manager performs archive operations against one archive path.
// It keeps no archive state between calls; callers must serialize
// operations that target the same path.
type Manager struct {
	log    *slog.Logger
	rename func(oldPath, newPath string) error
	path   string
	opts   Options
}

// New creates a manager for the archive at path. The archive need not exist yet.
func New(path string, opts Options) (*Manager, error) {
	trimmedPath := strings.TrimSpace(path)
	if trimmedPath == "" {
		return nil, ErrInvalidArchivePath
	}

	opts.applyDefaults()

	if err := validateCompressionLevel(opts.CompressionLevel); err != nil {
		return nil, err
	}

	if _, err := newExcludeMatcher(opts.Collect.Exclude, opts.Collect.MatcherOptions); err != nil {
		return nil, err
	}

	return &Manager{
		path:   trimmedPath,
		opts:   opts,
		log:    opts.Logger.With(slog.String("archive", trimmedPath)),
		rename: os.Rename,
	}, nil
}

// Path returns the archive path.
func (m *Manager) Path() string {
	return m.path
}

// emit delivers one notification to the configured callback.
func (m *Manager) emit(kind EventKind, name string, path string) {
	m.log.Debug("entry "+kind.String(), slog.String("entry", name), slog.String("path", path))

	if m.opts.OnEvent != nil {
		m.opts.OnEvent(Event{Kind: kind, Name: name, Path: path})
	}
}

// checkArchive fails with ErrWrongArchive unless the archive is an existing regular file.
func (m *Manager) checkArchive() (os.FileInfo, error) {
	info, err := os.Stat(m.path)
	if err != nil || !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s", ErrWrongArchive, m.path)
	}

	return info, nil
}

// openArchive validates and opens the archive for reading.
func (m *Manager) openArchive() (*zip.ReadCloser, os.FileInfo, error) {
	info, err := m.checkArchive()
	if err != nil {
		return nil, nil, err
	}

	r, err := zip.OpenReader(m.path)
	if err != nil {
		return nil, nil, fmt.Errorf("open archive: %w", err)
	}

	return r, info, nil
}

// contextOrBackground returns ctx or a background context when ctx is nil.
func contextOrBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}

	return ctx
}
