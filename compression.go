// SPDX-License-Identifier: MIT
// Copyright (c) 2026 ExToozy
// Source: github.com/ExToozy/Archiver

package archiver

import (
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zip"
)

var (
	// copyBufferPool reuses fixed-size entry copy buffers between operations.
	copyBufferPool = sync.Pool{
		New: func() any {
			return new([CopyBufferSize]byte)
		},
	}
)

// validateCompressionLevel reports whether level is accepted by the deflate writer.
func validateCompressionLevel(level int) error {
	if level == DefaultCompressionLevel || level == flate.HuffmanOnly {
		return nil
	}

	if level < flate.NoCompression || level > flate.BestCompression {
		return fmt.Errorf("%w: %d", ErrInvalidCompressionLevel, level)
	}

	return nil
}

// newZipWriter returns a ZIP writer whose Deflate method uses the given level.
func newZipWriter(out io.Writer, level int) *zip.Writer {
	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, level)
	})

	return zw
}

// acquireCopyBuffer returns reusable copy buffer and release callback.
func acquireCopyBuffer() ([]byte, func()) {
	arr := copyBufferPool.Get().(*[CopyBufferSize]byte) //nolint:forcetypeassert // pool contains only fixed-size buffers
	buf := arr[:]

	return buf, func() {
		copyBufferPool.Put(arr)
	}
}

// copyData streams src into dst through buf and returns the bytes written.
// Both sides are wrapped so io.CopyBuffer cannot switch to ReaderFrom or
// WriterTo and allocate its own buffer.
func copyData(dst io.Writer, src io.Reader, buf []byte) (int64, error) {
	if len(buf) == 0 {
		return 0, io.ErrShortBuffer
	}

	return io.CopyBuffer(struct{ io.Writer }{dst}, struct{ io.Reader }{src}, buf)
}
