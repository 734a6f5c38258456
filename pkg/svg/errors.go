package svg

import "errors"

// Sentinel errors returned while reading a source document.
var (
	// ErrEmptyDocument is returned when the input holds no XML at all.
	ErrEmptyDocument = errors.New("svg: empty document")

	// ErrNoRoot is returned when the document has no root element.
	ErrNoRoot = errors.New("svg: document has no root element")

	// ErrNotSVG is returned when the root element is not an <svg> element.
	ErrNotSVG = errors.New("svg: root element is not <svg>")
)
