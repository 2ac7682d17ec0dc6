// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ExToozy
// Source: github.com/ExToozy/Archiver

package archiver

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"

	"github.com/woozymasta/pathrules"
)

func TestCollect_RegularFileRoot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string][]byte{"notes.txt": []byte("n")})

	got, err := Collect(filepath.Join(dir, "notes.txt"))
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if !slices.Equal(got, []string{"notes.txt"}) {
		t.Fatalf("Collect=%v, want [notes.txt]", got)
	}
}

func TestCollect_NestedTree(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string][]byte{
		"a.txt":       []byte("a"),
		"b/c.txt":     []byte("c"),
		"b/d/e/f.txt": []byte("f"),
	})
	if err := os.MkdirAll(filepath.Join(dir, "empty", "nested"), 0o750); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	got, err := Collect(dir)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	slices.Sort(got)
	want := []string{"a.txt", "b/c.txt", "b/d/e/f.txt"}
	if !slices.Equal(got, want) {
		t.Fatalf("Collect=%v, want %v", got, want)
	}
}

func TestCollect_EmptyDirectory(t *testing.T) {
	t.Parallel()

	got, err := Collect(t.TempDir())
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if len(got) != 0 {
		t.Fatalf("Collect=%v, want empty", got)
	}
}

func TestCollect_MissingRoot(t *testing.T) {
	t.Parallel()

	_, err := Collect(filepath.Join(t.TempDir(), "missing"))
	if !errors.Is(err, ErrPathNotFound) {
		t.Fatalf("Collect err=%v, want %v", err, ErrPathNotFound)
	}
}

func TestCollect_FollowsSymlinkedDirectory(t *testing.T) {
	t.Parallel()

	tmp := t.TempDir()
	root := filepath.Join(tmp, "root")
	writeTree(t, root, map[string][]byte{"top.txt": []byte("t")})
	writeTree(t, filepath.Join(tmp, "real"), map[string][]byte{"inner.txt": []byte("i")})

	if err := os.Symlink(filepath.Join("..", "real"), filepath.Join(root, "linked")); err != nil {
		t.Skipf("symlink unsupported: %v", err)
	}
	if err := os.Symlink(filepath.Join(tmp, "real", "inner.txt"), filepath.Join(root, "link.txt")); err != nil {
		t.Skipf("symlink unsupported: %v", err)
	}

	got, err := Collect(root)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	slices.Sort(got)
	want := []string{"link.txt", "linked/inner.txt", "top.txt"}
	if !slices.Equal(got, want) {
		t.Fatalf("Collect=%v, want %v", got, want)
	}
}

func TestCollect_SymlinkCycleTerminates(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string][]byte{"sub/file.txt": []byte("x")})

	if err := os.Symlink(root, filepath.Join(root, "sub", "loop")); err != nil {
		t.Skipf("symlink unsupported: %v", err)
	}
	if err := os.Symlink(".", filepath.Join(root, "self")); err != nil {
		t.Skipf("symlink unsupported: %v", err)
	}

	got, err := Collect(root)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if !slices.Equal(got, []string{"sub/file.txt"}) {
		t.Fatalf("Collect=%v, want [sub/file.txt]", got)
	}
}

func TestCollect_SkipsDanglingSymlink(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeTree(t, root, map[string][]byte{"top.txt": []byte("t")})

	if err := os.Symlink(filepath.Join(root, "nowhere"), filepath.Join(root, "dangling")); err != nil {
		t.Skipf("symlink unsupported: %v", err)
	}

	got, err := Collect(root)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}

	if !slices.Equal(got, []string{"top.txt"}) {
		t.Fatalf("Collect=%v, want [top.txt]", got)
	}
}

func TestCollect_UnreadableDirectory(t *testing.T) {
	t.Parallel()

	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced for this user")
	}

	root := t.TempDir()
	writeTree(t, root, map[string][]byte{"locked/secret.txt": []byte("s")})

	locked := filepath.Join(root, "locked")
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatalf("Chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o750) })

	_, err := Collect(root)
	if err == nil {
		t.Fatal("Collect succeeded on unreadable directory")
	}
	if errors.Is(err, ErrPathNotFound) {
		t.Fatalf("Collect err=%v, want I/O error", err)
	}
	if !errors.Is(err, fs.ErrPermission) {
		t.Fatalf("Collect err=%v, want %v", err, fs.ErrPermission)
	}
}

func TestCollectWithOptions_Exclude(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeTree(t, dir, map[string][]byte{
		"keep.txt":  []byte("k"),
		"trace.log": []byte("t"),
	})

	got, err := CollectWithOptions(dir, CollectOptions{Exclude: ExcludeRules("*.log")})
	if err != nil {
		t.Fatalf("CollectWithOptions: %v", err)
	}

	if !slices.Equal(got, []string{"keep.txt"}) {
		t.Fatalf("CollectWithOptions=%v, want [keep.txt]", got)
	}
}

func TestNormalizeExcludeRules(t *testing.T) {
	t.Parallel()

	got := normalizeExcludeRules([]pathrules.Rule{
		{Pattern: "  ./cache\\*.bin "},
		{Pattern: "   "},
		{Action: pathrules.ActionInclude, Pattern: "keep.bin"},
	})

	if len(got) != 2 {
		t.Fatalf("len(rules)=%d, want 2", len(got))
	}
	if got[0].Pattern != "cache/*.bin" || got[0].Action != pathrules.ActionExclude {
		t.Fatalf("rules[0]=%+v, want exclude cache/*.bin", got[0])
	}
	if got[1].Action != pathrules.ActionInclude {
		t.Fatalf("rules[1].Action=%v, want include", got[1].Action)
	}
}

func TestExcludeMatcherSkip_NilMatcher(t *testing.T) {
	t.Parallel()

	m, err := newExcludeMatcher(nil, pathrules.MatcherOptions{})
	if err != nil {
		t.Fatalf("newExcludeMatcher: %v", err)
	}

	if m.Skip("anything.txt", false) {
		t.Fatal("nil matcher must not skip paths")
	}
}
