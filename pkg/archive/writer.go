package archive

import (
	"archive/tar"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Compression selects how the tar stream is compressed.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionGzip Compression = "gzip"
	CompressionZstd Compression = "zstd"
)

// ParseCompression parses a compression name. The empty string means none.
func ParseCompression(s string) (Compression, error) {
	switch c := Compression(strings.ToLower(strings.TrimSpace(s))); c {
	case "", CompressionNone:
		return CompressionNone, nil
	case CompressionGzip, "gz":
		return CompressionGzip, nil
	case CompressionZstd, "zst":
		return CompressionZstd, nil
	default:
		return "", fmt.Errorf("%w %q (must be none, gzip or zstd)", ErrUnknownCompression, s)
	}
}

// CompressionForPath guesses the compression from an output file name,
// e.g. "parts.tar.gz" selects gzip. Unknown suffixes mean none.
func CompressionForPath(path string) Compression {
	lower := strings.ToLower(path)
	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return CompressionGzip
	case strings.HasSuffix(lower, ".tar.zst"), strings.HasSuffix(lower, ".tzst"):
		return CompressionZstd
	default:
		return CompressionNone
	}
}

// Entry describes one member written to the archive.
type Entry struct {
	Name    string
	Size    int64
	ModTime time.Time
}

// Writer streams regular-file entries into a tar archive. It never seeks,
// so the destination may be a pipe or standard output.
type Writer struct {
	tw     *tar.Writer
	comp   io.WriteCloser // nil when uncompressed
	now    func() time.Time
	closed bool
}

// NewWriter starts a tar stream on w, optionally compressed.
// The caller must Close the Writer; w itself is never closed.
func NewWriter(w io.Writer, c Compression) (*Writer, error) {
	aw := &Writer{now: time.Now}

	switch c {
	case "", CompressionNone:
		aw.tw = tar.NewWriter(w)
	case CompressionGzip:
		gz := gzip.NewWriter(w)
		aw.comp = gz
		aw.tw = tar.NewWriter(gz)
	case CompressionZstd:
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
		}
		aw.comp = enc
		aw.tw = tar.NewWriter(enc)
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownCompression, string(c))
	}

	return aw, nil
}

// WriteEntry appends a regular file named name holding data. The
// modification time is the current UTC time at second resolution.
// Names are written as given; duplicates are allowed.
func (w *Writer) WriteEntry(name string, data []byte) (Entry, error) {
	if w.closed {
		return Entry{}, ErrClosed
	}

	entry := Entry{
		Name:    name,
		Size:    int64(len(data)),
		ModTime: w.now().UTC().Truncate(time.Second),
	}

	header := &tar.Header{
		Typeflag: tar.TypeReg,
		Name:     entry.Name,
		Size:     entry.Size,
		Mode:     0o644,
		ModTime:  entry.ModTime,
	}

	if err := w.tw.WriteHeader(header); err != nil {
		return Entry{}, fmt.Errorf("failed to write header for %q: %w", name, err)
	}
	if _, err := w.tw.Write(data); err != nil {
		return Entry{}, fmt.Errorf("failed to write %q: %w", name, err)
	}

	return entry, nil
}

// Close finishes the tar stream and flushes the compressor, if any.
// Closing an already closed Writer is a no-op.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	err := w.tw.Close()
	if err != nil {
		err = fmt.Errorf("failed to finish tar stream: %w", err)
	}
	if w.comp != nil {
		if cerr := w.comp.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("failed to flush compressed stream: %w", cerr))
		}
	}
	return err
}
