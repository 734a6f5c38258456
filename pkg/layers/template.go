package layers

import (
	"fmt"
	"strings"

	"github.com/kataras/layer-tar/pkg/svg"

	"github.com/beevik/etree"
)

// Template is a copy of a source document with every named layer removed.
// It holds at most one inserted layer at a time, see Swap.
type Template struct {
	doc     *etree.Document
	current *etree.Element
}

// NewTemplate deep-copies src and strips every named layer from the copy,
// at any depth. Non-layer content (defs, metadata, loose drawing elements,
// unlabeled layers) keeps its order. src is not modified.
func NewTemplate(src *etree.Document) (*Template, error) {
	if src == nil || src.Root() == nil {
		return nil, fmt.Errorf("build template: %w", svg.ErrNoRoot)
	}

	doc := src.Copy()

	// Collect first, detach afterwards: detaching while walking would hide
	// the descendants of a removed layer from the walk.
	found := collectNamedLayers(doc.Root(), nil)
	for _, layer := range found {
		detach(layer)
	}

	return &Template{doc: doc}, nil
}

// detach removes e from its parent together with the whitespace-only text
// that directly follows it, so no blank indented line is left behind.
func detach(e *etree.Element) {
	parent := e.Parent()
	if parent == nil {
		return
	}

	idx := e.Index()
	if next := idx + 1; next < len(parent.Child) {
		if cd, ok := parent.Child[next].(*etree.CharData); ok && strings.TrimSpace(cd.Data) == "" {
			parent.RemoveChildAt(next)
		}
	}
	parent.RemoveChildAt(idx)
}

func collectNamedLayers(node *etree.Element, found []*etree.Element) []*etree.Element {
	for _, child := range node.ChildElements() {
		if svg.IsNamedLayer(child) {
			found = append(found, child)
		}
		found = collectNamedLayers(child, found)
	}
	return found
}

// Document returns the template document in its current state.
func (t *Template) Document() *etree.Document {
	return t.doc
}

// Current returns the layer inserted by the last Swap, or nil.
func (t *Template) Current() *etree.Element {
	return t.current
}

// Swap inserts a deep copy of layer into the template root. The first call
// appends it as the last child of the root; later calls put the copy in
// place of the previously inserted one, at the same child index. The copy
// is returned.
//
// Namespace declarations the layer inherits from its ancestors are copied
// onto the inserted element unless the template root binds them the same
// way.
func (t *Template) Swap(layer *etree.Element) *etree.Element {
	inserted := layer.Copy()
	root := t.doc.Root()

	for _, decl := range svg.InheritedNamespaces(layer) {
		if svg.LookupNamespace(root, svg.DeclaredPrefix(decl)) == decl.Value {
			continue
		}
		inserted.CreateAttr(decl.FullKey(), decl.Value)
	}

	if t.current == nil {
		root.AddChild(inserted)
	} else {
		idx := t.current.Index()
		root.RemoveChildAt(idx)
		root.InsertChildAt(idx, inserted)
	}

	t.current = inserted
	return inserted
}

// Bytes serializes the template in its current state.
func (t *Template) Bytes() ([]byte, error) {
	return svg.Bytes(t.doc)
}
