// Package layertar exports the leaf layers of an Inkscape SVG document as a
// tar archive of standalone SVG files.
//
// A leaf layer is a named layer (an SVG <g> with inkscape:groupmode="layer"
// and a non-empty inkscape:label) that has no named sublayers. For every
// leaf, in depth-first document order, the archive receives one entry
// holding the source document with all named layers removed plus that
// single leaf. Definitions, metadata and any drawing outside of layers are
// therefore repeated in every entry.
//
// The CLI lives in cmd/layer-tar; this root package exposes the same
// pipeline as a Go API.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named layertar:
//
//	import "github.com/kataras/layer-tar" // package layertar
//
// # Quick start
//
//	f, err := os.Create("parts.tar")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	result, err := layertar.Run(layertar.Options{
//	    InputPath: "robot.svg",
//	    Output:    f,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("%d layers exported\n", len(result.Layers))
//
// # Entry names
//
// Entries are named after the leaf's own label with "/" and "\" replaced by
// "_", plus ".svg". Names are not made unique: two leaves labeled "Part"
// produce two "Part.svg" entries, reported in [Result.Duplicates]. Set
// [Options.PathNames] to name entries after the whole layer path instead
// ("Body_Left.svg").
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output. A *logrus.Logger satisfies
// the interface as is.
package layertar
