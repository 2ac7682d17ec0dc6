package archiver

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

const (
	benchDefaultEntries    = 128
	benchLargeIndexEntries = 20000
)

var (
	// benchListSink prevents compiler elimination in list benchmark loops.
	benchListSink int
)

func BenchmarkCreate(b *testing.B) {
	src := createBenchTree(b, benchDefaultEntries, []byte("content"))
	dir := b.TempDir()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m, err := New(filepath.Join(dir, "bench.zip"), Options{})
		if err != nil {
			b.Fatal(err)
		}

		if err := m.Create(context.Background(), src); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkListLargeIndex(b *testing.B) {
	path := createBenchArchive(b, benchLargeIndexEntries)
	m, err := New(path, Options{})
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		entries, err := m.List(context.Background())
		if err != nil {
			b.Fatal(err)
		}

		benchListSink += len(entries)
	}
}

func BenchmarkExtract(b *testing.B) {
	path := createBenchArchive(b, benchDefaultEntries)
	out := b.TempDir()
	m, err := New(path, Options{})
	if err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := m.ExtractAll(context.Background(), out); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEditAdd(b *testing.B) {
	template := createBenchArchive(b, benchDefaultEntries)
	dir := b.TempDir()
	addPath := filepath.Join(dir, "new_added.txt")
	if err := os.WriteFile(addPath, bytes.Repeat([]byte("add"), 2048), 0o600); err != nil {
		b.Fatal(err)
	}

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out := filepath.Join(dir, fmt.Sprintf("edit-add-%d.zip", i))
		if err := copyBenchFile(template, out); err != nil {
			b.Fatal(err)
		}

		m, err := New(out, Options{})
		if err != nil {
			b.Fatal(err)
		}

		if err := m.AddFile(context.Background(), addPath); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEditDelete(b *testing.B) {
	template := createBenchArchive(b, benchDefaultEntries)
	dir := b.TempDir()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		out := filepath.Join(dir, fmt.Sprintf("edit-delete-%d.zip", i))
		if err := copyBenchFile(template, out); err != nil {
			b.Fatal(err)
		}

		m, err := New(out, Options{})
		if err != nil {
			b.Fatal(err)
		}

		if err := m.RemoveFiles(context.Background(), []string{"e/f0.txt", "e/f1.txt", "e/f2.txt"}); err != nil {
			b.Fatal(err)
		}
	}
}

// createBenchTree writes numEntries files with identical payload below a temp directory.
func createBenchTree(b *testing.B, numEntries int, payload []byte) string {
	b.Helper()

	root := b.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "e"), 0o750); err != nil {
		b.Fatal(err)
	}

	for i := 0; i < numEntries; i++ {
		if err := os.WriteFile(filepath.Join(root, "e", fmt.Sprintf("f%d.txt", i)), payload, 0o600); err != nil {
			b.Fatal(err)
		}
	}

	return root
}

// createBenchArchive builds a deterministic benchmark archive with fixed-size text entries.
func createBenchArchive(b *testing.B, numEntries int) string {
	b.Helper()

	src := createBenchTree(b, numEntries, []byte("content"))
	out := filepath.Join(b.TempDir(), "bench.zip")

	m, err := New(out, Options{})
	if err != nil {
		b.Fatal(err)
	}

	if err := m.Create(context.Background(), src); err != nil {
		b.Fatal(err)
	}

	return out
}

// copyBenchFile copies fixture file to destination path.
func copyBenchFile(src string, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	return os.WriteFile(dst, data, 0o600)
}
