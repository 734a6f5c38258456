package archive

import "errors"

var (
	// ErrClosed is returned when writing to an archive that was already closed.
	ErrClosed = errors.New("archive: writer is closed")

	// ErrUnknownCompression is returned for an unsupported compression name.
	ErrUnknownCompression = errors.New("archive: unknown compression")
)
