package layertar

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/kataras/layer-tar/pkg/archive"
	"github.com/kataras/layer-tar/pkg/formatter"
	"github.com/kataras/layer-tar/pkg/layers"
	"github.com/kataras/layer-tar/pkg/svg"

	"github.com/beevik/etree"
)

// Version is the current release.
const Version = "0.3.0"

// Options configures an export.
type Options struct {
	Input        io.Reader // source SVG; takes precedence over InputPath
	InputPath    string
	DocumentName string // used in the report, defaults to the base of InputPath
	Output       io.Writer
	Compression  archive.Compression // "" = none
	PathNames    bool                // name entries after the full layer path instead of the label
	Logger       Logger              // nil = no logging
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Result describes a finished export.
type Result struct {
	Layers     []layers.ExportedLayer // in archive order
	Duplicates []string               // entry names written more than once
	Markdown   string                 // formatted export report
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

// Run reads the source document and streams one SVG per leaf layer into a
// tar archive written to opts.Output.
func Run(opts Options) (*Result, error) {
	var (
		doc *etree.Document
		err error
	)

	switch {
	case opts.Input != nil:
		opts.logInfo("Reading document...")
		doc, err = svg.Parse(opts.Input)
	case opts.InputPath != "":
		opts.logInfo("Reading %s...", opts.InputPath)
		doc, err = svg.ReadFile(opts.InputPath)
	default:
		return nil, errors.New("no input document")
	}
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}

	return Export(doc, opts)
}

// Export writes one archive entry per leaf layer of doc, in depth-first
// order. Each entry is the template (doc without its named layers) holding
// a copy of that single leaf. doc is not modified.
//
// A failure stops the export. Entries written before it remain in the
// output; the archive is always closed.
func Export(doc *etree.Document, opts Options) (res *Result, err error) {
	if opts.Output == nil {
		return nil, errors.New("no output writer")
	}
	if opts.DocumentName == "" {
		opts.DocumentName = "document"
		if opts.InputPath != "" {
			opts.DocumentName = filepath.Base(opts.InputPath)
		}
	}

	// Build the template before anything reaches the output.
	opts.logInfo("Building template...")
	tpl, err := layers.NewTemplate(doc)
	if err != nil {
		return nil, err
	}

	aw, err := archive.NewWriter(opts.Output, opts.Compression)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer func() {
		if cerr := aw.Close(); cerr != nil {
			err = errors.Join(err, fmt.Errorf("close archive: %w", cerr))
			res = nil
		}
	}()

	result := &Result{}
	names := make([]string, 0)
	seen := make(map[string]bool)

	for leaf := range layers.Leaves(doc) {
		tpl.Swap(leaf.Element)

		data, err := tpl.Bytes()
		if err != nil {
			return nil, fmt.Errorf("serialize layer %q: %w", leaf.DisplayPath(), err)
		}

		name := archive.EntryName(leaf.Label)
		if opts.PathNames {
			name = archive.PathEntryName(leaf.Path)
		}

		entry, err := aw.WriteEntry(name, data)
		if err != nil {
			return nil, fmt.Errorf("write layer %q: %w", leaf.DisplayPath(), err)
		}

		if seen[name] {
			opts.logWarn("Duplicate entry name %s (layer %s)", name, leaf.DisplayPath())
		}
		seen[name] = true
		names = append(names, name)

		opts.logInfo("Exported %s → %s (%d bytes)", leaf.DisplayPath(), name, entry.Size)
		result.Layers = append(result.Layers, layers.ExportedLayer{
			Label: leaf.Label,
			Path:  leaf.Path,
			Entry: name,
			Size:  entry.Size,
		})
	}

	if len(result.Layers) == 0 {
		opts.logWarn("No named layers found, the archive is empty")
	}

	result.Duplicates = archive.DuplicateNames(names)
	result.Markdown = formatter.ToMarkdown(result.Layers, opts.DocumentName, result.Duplicates)

	return result, nil
}
