package input

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1F, 0x8B}
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}
)

// NewReadSeeker returns a seekable view of r, transparently expanding gzip
// or zstd compressed streams. Plain streams pass through untouched; the
// decode pipeline needs to rewind between its pre-scan and main pass, so
// compressed input is expanded into memory.
func NewReadSeeker(r io.ReadSeeker) (io.ReadSeeker, error) {
	var magic [4]byte
	n, err := io.ReadFull(r, magic[:])
	if _, serr := r.Seek(0, io.SeekStart); serr != nil {
		return nil, fmt.Errorf("rewind input: %w", serr)
	}
	if err != nil || n < len(magic) {
		// Shorter than any compressed header; treat as plain.
		return r, nil
	}

	switch {
	case bytes.HasPrefix(magic[:], gzipMagic):
		zr, err := gzip.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("gzip input: %w", err)
		}
		defer zr.Close()
		data, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("expand gzip input: %w", err)
		}
		return bytes.NewReader(data), nil
	case bytes.Equal(magic[:], zstdMagic):
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, fmt.Errorf("zstd input: %w", err)
		}
		defer zr.Close()
		data, err := io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("expand zstd input: %w", err)
		}
		return bytes.NewReader(data), nil
	}
	return r, nil
}
