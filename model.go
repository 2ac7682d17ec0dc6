// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ExToozy
// Source: github.com/ExToozy/Archiver

package archiver

import (
	"log/slog"

	"github.com/klauspost/compress/flate"
	"github.com/woozymasta/pathrules"
)

// Default tuning values.
const (
	// CopyBufferSize is the fixed buffer size used by every entry stream copy.
	CopyBufferSize = 8 * 1024
	// DefaultCompressionLevel selects the deflate library default level.
	DefaultCompressionLevel = flate.DefaultCompression
)

// EventKind identifies a non-error notification emitted by archive operations.
type EventKind uint8

// Notification kinds.
const (
	// EventWritten reports an entry written by Create.
	EventWritten EventKind = iota + 1
	// EventAdded reports a new entry appended by AddFiles.
	EventAdded
	// EventSkipped reports an AddFiles path whose base name already exists in the archive.
	EventSkipped
	// EventRemoved reports an entry dropped by RemoveFiles.
	EventRemoved
	// EventExtracted reports an entry written to disk by ExtractAll.
	EventExtracted
)

// String returns a lower-case name of the event kind.
func (k EventKind) String() string {
	switch k {
	case EventWritten:
		return "written"
	case EventAdded:
		return "added"
	case EventSkipped:
		return "skipped"
	case EventRemoved:
		return "removed"
	case EventExtracted:
		return "extracted"
	default:
		return "unknown"
	}
}

// Event is one notification delivered through Options.OnEvent.
type Event struct {
	// Name is the archive entry name.
	Name string `json:"name" yaml:"name"`
	// Path is the filesystem path involved, when there is one.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	// Kind is the notification kind.
	Kind EventKind `json:"kind" yaml:"kind"`
}

// CollectOptions configures directory traversal.
type CollectOptions struct {
	// Exclude holds ordered path rules; matching files are skipped and matching directories are pruned.
	Exclude []pathrules.Rule `json:"exclude,omitempty" yaml:"exclude,omitempty"`
	// MatcherOptions control exclude rule matching.
	MatcherOptions pathrules.MatcherOptions `json:"matcher_options,omitzero" yaml:"matcher_options,omitzero"`
}

// Options configures a Manager.
type Options struct {
	// Logger receives debug records per entry and info records per operation.
	// Nil discards all records.
	Logger *slog.Logger `json:"-" yaml:"-"`
	// OnEvent is called for every non-error notification. Nil discards events.
	OnEvent func(Event) `json:"-" yaml:"-"`
	// Collect configures traversal used by Create.
	Collect CollectOptions `json:"collect,omitzero" yaml:"collect,omitzero"`
	// CompressionLevel is the deflate level for newly written entries.
	// Zero selects DefaultCompressionLevel; valid explicit values are 1..9.
	CompressionLevel int `json:"compression_level,omitempty" yaml:"compression_level,omitempty"`
	// VerifyOnList makes List decompress every entry to surface corruption.
	VerifyOnList bool `json:"verify_on_list,omitempty" yaml:"verify_on_list,omitempty"`
}

// applyDefaults fills zero-valued manager options with defaults.
func (opts *Options) applyDefaults() {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	if opts.CompressionLevel == 0 {
		opts.CompressionLevel = DefaultCompressionLevel
	}

	opts.Collect.applyDefaults()
}

// applyDefaults fills zero-valued collect options with defaults.
func (opts *CollectOptions) applyDefaults() {
	if opts.MatcherOptions.DefaultAction == pathrules.ActionUnknown {
		opts.MatcherOptions.DefaultAction = pathrules.ActionInclude
	}
}
