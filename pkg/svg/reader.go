package svg

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/beevik/etree"
)

// Parse reads a complete SVG document from r.
// The whole document is held in memory.
func Parse(r io.Reader) (*etree.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	return ParseBytes(data)
}

// ParseBytes parses an SVG document held in memory.
func ParseBytes(data []byte) (*etree.Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}

	doc := etree.NewDocument()
	doc.ReadSettings.PreserveCData = true
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}

	root := doc.Root()
	if root == nil {
		return nil, ErrNoRoot
	}
	if root.Tag != "svg" {
		return nil, fmt.Errorf("%w: found <%s>", ErrNotSVG, root.FullTag())
	}

	return doc, nil
}

// ReadFile parses the SVG document stored at path.
func ReadFile(path string) (*etree.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %q: %w", path, err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Bytes serializes doc exactly as it is currently held in memory.
func Bytes(doc *etree.Document) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to serialize document: %w", err)
	}
	return buf.Bytes(), nil
}
