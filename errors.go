// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ExToozy
// Source: github.com/ExToozy/Archiver

package archiver

import "errors"

// Sentinel errors for archive operations. Use errors.Is in callers.
var (
	// ErrPathNotFound means a source path is neither an existing regular file
	// nor (for Create) a directory.
	ErrPathNotFound = errors.New("path is not a regular file or directory")
	// ErrWrongArchive means the archive path is missing or is not a regular file.
	ErrWrongArchive = errors.New("archive is missing or not a regular file")
	// ErrInvalidArchivePath means the manager was created with an empty archive path.
	ErrInvalidArchivePath = errors.New("invalid archive path")
	// ErrInvalidExtractPath means archive entry path is invalid for extraction destination.
	ErrInvalidExtractPath = errors.New("invalid extract path")
	// ErrInvalidCompressionLevel means the deflate level is outside the supported range.
	ErrInvalidCompressionLevel = errors.New("invalid compression level")
	// ErrInvalidExcludePattern means one or more collector exclude rules are invalid.
	ErrInvalidExcludePattern = errors.New("invalid exclude rules")
)
