package layers

import (
	"iter"
	"strings"

	"github.com/kataras/layer-tar/pkg/svg"

	"github.com/beevik/etree"
)

// PathSeparator joins the labels of a Leaf's Path for display.
const PathSeparator = " > "

// Leaf is a named layer with no named sublayers.
type Leaf struct {
	Label string
	// Path holds the labels from the outermost layer down to and including Label.
	Path []string
	// Element is the layer in the source document, not a copy.
	Element *etree.Element
}

// DisplayPath joins the leaf's path with PathSeparator, e.g. "Body > Left".
func (l Leaf) DisplayPath() string {
	return strings.Join(l.Path, PathSeparator)
}

// Leaves returns the leaf layers of doc in depth-first pre-order: parents are
// visited before children and siblings keep their document order. A layer
// with at least one named sublayer is never yielded itself.
//
// The source document is only read. The sequence may be ranged over more
// than once.
func Leaves(doc *etree.Document) iter.Seq[Leaf] {
	return func(yield func(Leaf) bool) {
		if doc == nil || doc.Root() == nil {
			return
		}
		walk(doc.Root(), nil, false, yield)
	}
}

// CollectLeaves materializes Leaves(doc) into a slice.
func CollectLeaves(doc *etree.Document) []Leaf {
	var leaves []Leaf
	for leaf := range Leaves(doc) {
		leaves = append(leaves, leaf)
	}
	return leaves
}

// walk visits node, whose own path is path. isLayer is false for the
// document root, which is never a leaf. It reports false once yield asks
// to stop.
func walk(node *etree.Element, path []string, isLayer bool, yield func(Leaf) bool) bool {
	children := svg.NamedLayers(node)
	if len(children) == 0 {
		if !isLayer {
			return true
		}
		return yield(Leaf{
			Label:   svg.Label(node),
			Path:    path,
			Element: node,
		})
	}

	for _, child := range children {
		// Full slice expression so siblings never share a backing array.
		childPath := append(path[:len(path):len(path)], svg.Label(child))
		if !walk(child, childPath, true, yield) {
			return false
		}
	}
	return true
}
