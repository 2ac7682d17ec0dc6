// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ExToozy
// Source: github.com/ExToozy/Archiver

/*
Package archiver creates, lists, extracts and edits single-file ZIP archives.
Archives are standard ZIP containers readable by any ZIP tool. Entry payloads
are streamed through a fixed 8 KiB buffer; nothing is loaded fully into memory.

Mutation rules (summary):
  - AddFiles and RemoveFiles never open the archive for in-place writes;
  - the full new content is written to a temp file next to the archive;
  - one rename swaps the temp file over the archive;
  - any failure before the rename leaves the original archive untouched;
  - kept entries are copied raw, with their original compression.

# Creating

Create an archive from a directory tree or a single file:

	m, err := archiver.New("backup/site.zip", archiver.Options{})
	if err != nil {
	    return err
	}
	if err := m.Create(ctx, "site/"); err != nil {
	    return err
	}

Skip files during traversal with github.com/woozymasta/pathrules rules:

	m, err := archiver.New("backup/site.zip", archiver.Options{
	    Collect: archiver.CollectOptions{
	        Exclude: archiver.ExcludeRules("*.tmp", "build/**"),
	    },
	    CompressionLevel: 9,
	})

# Listing

	entries, err := m.List(ctx)
	if err != nil {
	    return err
	}
	for _, e := range entries {
	    fmt.Println(e) // "index.html 12 Kb (3 Kb) compression: 75%"
	}

# Extracting

	if err := m.ExtractAll(ctx, "restore/"); err != nil {
	    return err
	}

# Editing

Entries are matched by exact name. Added files are stored under their base
name and skipped when that name already exists:

	m, err := archiver.New("backup/site.zip", archiver.Options{
	    OnEvent: func(ev archiver.Event) {
	        log.Printf("%s %s", ev.Kind, ev.Name)
	    },
	})
	if err != nil {
	    return err
	}
	if err := m.AddFiles(ctx, []string{"notes/todo.txt"}); err != nil {
	    return err
	}
	if err := m.RemoveFile(ctx, "old/readme.txt"); err != nil {
	    return err
	}

Operations against one archive path must be serialized by the caller.
*/
package archiver
