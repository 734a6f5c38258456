package svg

import "github.com/beevik/etree"

// Namespaces used to recognise Inkscape layers.
const (
	Namespace         = "http://www.w3.org/2000/svg"
	InkscapeNamespace = "http://www.inkscape.org/namespaces/inkscape"

	// InkscapePrefix is the prefix Inkscape itself writes for its namespace.
	InkscapePrefix = "inkscape"

	// GroupModeLayer is the inkscape:groupmode value that turns a <g> into a layer.
	GroupModeLayer = "layer"
)

// IsLayer reports whether e is a layer element: an SVG <g> carrying
// inkscape:groupmode="layer". The label is not checked.
func IsLayer(e *etree.Element) bool {
	if e == nil || e.Tag != "g" {
		return false
	}
	if ns := namespaceOf(e); ns != "" && ns != Namespace {
		return false
	}
	return inkscapeAttr(e, "groupmode") == GroupModeLayer
}

// Label returns the inkscape:label of e, or "" when it has none.
func Label(e *etree.Element) string {
	if e == nil {
		return ""
	}
	return inkscapeAttr(e, "label")
}

// IsNamedLayer reports whether e is a layer with a non-empty label.
// Only named layers take part in the layer hierarchy; an unlabeled layer
// is treated like any other group.
func IsNamedLayer(e *etree.Element) bool {
	return IsLayer(e) && Label(e) != ""
}

// NamedLayers returns the direct children of e that are named layers,
// in document order.
func NamedLayers(e *etree.Element) []*etree.Element {
	if e == nil {
		return nil
	}

	var layers []*etree.Element
	for _, child := range e.ChildElements() {
		if IsNamedLayer(child) {
			layers = append(layers, child)
		}
	}
	return layers
}

// inkscapeAttr returns the value of the attribute key in the Inkscape
// namespace. Any prefix bound to InkscapeNamespace is accepted; the
// conventional prefix also counts while it is left undeclared.
func inkscapeAttr(e *etree.Element, key string) string {
	for _, a := range e.Attr {
		if a.Key != key || a.Space == "" {
			continue
		}
		switch LookupNamespace(e, a.Space) {
		case InkscapeNamespace:
			return a.Value
		case "":
			if a.Space == InkscapePrefix {
				return a.Value
			}
		}
	}
	return ""
}

// namespaceOf resolves the namespace URI of e from the xmlns declarations
// on e and its ancestors. Elements without any binding resolve to "".
func namespaceOf(e *etree.Element) string {
	return LookupNamespace(e, e.Space)
}

// LookupNamespace returns the URI bound to prefix in the scope of e, or ""
// when it is unbound. The empty prefix looks up the default namespace.
func LookupNamespace(e *etree.Element, prefix string) string {
	for el := e; el != nil; el = el.Parent() {
		for _, a := range el.Attr {
			if prefix == "" && a.Space == "" && a.Key == "xmlns" {
				return a.Value
			}
			if prefix != "" && a.Space == "xmlns" && a.Key == prefix {
				return a.Value
			}
		}
	}
	return ""
}

// InheritedNamespaces returns the namespace declarations that e receives
// from its ancestors, nearest first. Declarations shadowed by a closer
// ancestor, or by e itself, are left out.
func InheritedNamespaces(e *etree.Element) []etree.Attr {
	if e == nil {
		return nil
	}

	seen := make(map[string]bool)
	for _, a := range e.Attr {
		if isNamespaceDecl(a) {
			seen[a.FullKey()] = true
		}
	}

	var decls []etree.Attr
	for el := e.Parent(); el != nil; el = el.Parent() {
		for _, a := range el.Attr {
			if !isNamespaceDecl(a) || seen[a.FullKey()] {
				continue
			}
			seen[a.FullKey()] = true
			decls = append(decls, a)
		}
	}
	return decls
}

// DeclaredPrefix returns the prefix a namespace declaration binds, "" for
// the default namespace.
func DeclaredPrefix(decl etree.Attr) string {
	if decl.Space == "" {
		return ""
	}
	return decl.Key
}

func isNamespaceDecl(a etree.Attr) bool {
	return a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns")
}
