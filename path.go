// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ExToozy
// Source: github.com/ExToozy/Archiver

package archiver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

// Collect walks root and returns slash-separated paths of regular files relative to root.
// A regular-file root yields its base name only.
func Collect(root string) ([]string, error) {
	return CollectWithOptions(root, CollectOptions{})
}

// CollectWithOptions walks root like Collect and applies exclude rules from opts.
//
// Directory entries are visited in os.ReadDir order. Symlinks are followed;
// dangling links are skipped, and a directory already on the current descent
// is not entered again.
func CollectWithOptions(root string, opts CollectOptions) ([]string, error) {
	opts.applyDefaults()

	info, err := os.Stat(root)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrPathNotFound, root)
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", root, err)
	}

	if info.Mode().IsRegular() {
		return []string{filepath.Base(root)}, nil
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrPathNotFound, root)
	}

	matcher, err := newExcludeMatcher(opts.Exclude, opts.MatcherOptions)
	if err != nil {
		return nil, err
	}

	c := &collector{root: root, matcher: matcher}
	if err := c.walk("", info); err != nil {
		return nil, err
	}

	return c.paths, nil
}

// collector accumulates relative file paths during one walk.
type collector struct {
	matcher *excludeMatcher
	root    string
	paths   []string
	// descent holds directories from root down to the one being read.
	descent []os.FileInfo
}

// walk visits one directory given by its slash-separated path relative to root.
func (c *collector) walk(relDir string, dirInfo os.FileInfo) error {
	c.descent = append(c.descent, dirInfo)
	defer func() { c.descent = c.descent[:len(c.descent)-1] }()

	dir := filepath.Join(c.root, filepath.FromSlash(relDir))
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("read directory %s: %w", dir, err)
	}

	for _, entry := range entries {
		rel := path.Join(relDir, entry.Name())
		fullPath := filepath.Join(dir, entry.Name())
		mode := entry.Type()

		if mode&fs.ModeSymlink != 0 {
			target, err := os.Stat(fullPath)
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			if err != nil {
				return fmt.Errorf("stat %s: %w", rel, err)
			}
			mode = target.Mode().Type()
		}

		switch {
		case mode.IsDir():
			if c.matcher.Skip(rel, true) {
				continue
			}

			info, err := os.Stat(fullPath)
			if err != nil {
				return fmt.Errorf("stat %s: %w", rel, err)
			}
			if c.onDescent(info) {
				continue
			}

			if err := c.walk(rel, info); err != nil {
				return err
			}
		case mode.IsRegular():
			if c.matcher.Skip(rel, false) {
				continue
			}
			c.paths = append(c.paths, rel)
		}
	}

	return nil
}

// onDescent reports whether info is a directory already being walked above.
func (c *collector) onDescent(info os.FileInfo) bool {
	for _, seen := range c.descent {
		if os.SameFile(seen, info) {
			return true
		}
	}

	return false
}
