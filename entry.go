// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ExToozy
// Source: github.com/ExToozy/Archiver

package archiver

import (
	"fmt"
	"strings"
	"time"

	"github.com/klauspost/compress/zip"
)

// EntryInfo describes a single archive entry.
type EntryInfo struct {
	// Modified is the entry modification time from the container header.
	Modified time.Time `json:"modified,omitzero" yaml:"modified,omitempty"`
	// Name is the slash-separated entry path as stored in the archive.
	Name string `json:"name" yaml:"name"`
	// Size is the uncompressed size in bytes.
	Size int64 `json:"size" yaml:"size"`
	// CompressedSize is the stored payload size in bytes.
	CompressedSize int64 `json:"compressed_size" yaml:"compressed_size"`
	// Method is the ZIP compression method code (0 store, 8 deflate).
	Method uint16 `json:"method" yaml:"method"`
}

// newEntryInfo builds entry metadata from a container header.
func newEntryInfo(fh *zip.FileHeader) EntryInfo {
	return EntryInfo{
		Name:           fh.Name,
		Size:           int64(fh.UncompressedSize64), //nolint:gosec // ZIP64 sizes fit int64 in practice
		CompressedSize: int64(fh.CompressedSize64),   //nolint:gosec // ZIP64 sizes fit int64 in practice
		Method:         fh.Method,
		Modified:       fh.Modified,
	}
}

// CompressionRatio returns saved space in percent using integer math.
// It returns 0 for empty entries.
func (e EntryInfo) CompressionRatio() int64 {
	if e.Size == 0 {
		return 0
	}

	return 100 - (e.CompressedSize*100)/e.Size
}

// IsDir reports whether the entry is a directory placeholder.
func (e EntryInfo) IsDir() bool {
	return strings.HasSuffix(e.Name, "/")
}

// MethodName returns a readable compression method name.
func (e EntryInfo) MethodName() string {
	switch e.Method {
	case zip.Store:
		return "store"
	case zip.Deflate:
		return "deflate"
	default:
		return fmt.Sprintf("method(%d)", e.Method)
	}
}

// String renders the entry for listings. Empty entries render as the bare name.
func (e EntryInfo) String() string {
	if e.Size <= 0 {
		return e.Name
	}

	return fmt.Sprintf("%s %d Kb (%d Kb) compression: %d%%",
		e.Name, e.Size/1024, e.CompressedSize/1024, e.CompressionRatio())
}
