package layers

import (
	"testing"

	"github.com/kataras/layer-tar/pkg/svg"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	openSVG  = `<svg xmlns="http://www.w3.org/2000/svg" xmlns:inkscape="http://www.inkscape.org/namespaces/inkscape">`
	closeSVG = `</svg>`
)

func layer(label, body string) string {
	if label == "" {
		return `<g inkscape:groupmode="layer">` + body + `</g>`
	}
	return `<g inkscape:groupmode="layer" inkscape:label="` + label + `">` + body + `</g>`
}

func mustParse(t *testing.T, body string) *etree.Document {
	t.Helper()
	doc, err := svg.ParseBytes([]byte(openSVG + body + closeSVG))
	require.NoError(t, err)
	return doc
}

func mustSerialize(t *testing.T, doc *etree.Document) string {
	t.Helper()
	b, err := svg.Bytes(doc)
	require.NoError(t, err)
	return string(b)
}

// nested is A(B, C), loose content, D.
var nested = `<defs><linearGradient id="g1"/></defs>` +
	layer("A", layer("B", `<rect id="b"/>`)+layer("C", `<circle id="c"/>`)) +
	`<rect id="loose"/>` +
	layer("D", `<path id="d"/>`)

func labelsAndPaths(leaves []Leaf) (labels, paths []string) {
	for _, l := range leaves {
		labels = append(labels, l.Label)
		paths = append(paths, l.DisplayPath())
	}
	return labels, paths
}

func TestLeaves(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantLabels []string
		wantPaths  []string
	}{
		{
			name: "no layers",
			body: `<defs/><rect/>`,
		},
		{
			name:       "depth first, siblings in order",
			body:       nested,
			wantLabels: []string{"B", "C", "D"},
			wantPaths:  []string{"A > B", "A > C", "D"},
		},
		{
			name:       "empty layer is a leaf",
			body:       layer("Solo", ""),
			wantLabels: []string{"Solo"},
			wantPaths:  []string{"Solo"},
		},
		{
			name:       "unlabeled sublayer does not make an interior layer",
			body:       layer("Body", layer("", `<rect/>`)),
			wantLabels: []string{"Body"},
			wantPaths:  []string{"Body"},
		},
		{
			name: "unlabeled top level layer is invisible",
			body: layer("", layer("Inner", "")),
		},
		{
			name:       "interior layer with extra content is not yielded",
			body:       layer("Body", `<rect/>`+layer("", "")+layer("Left", "")+layer("Right", "")),
			wantLabels: []string{"Left", "Right"},
			wantPaths:  []string{"Body > Left", "Body > Right"},
		},
		{
			name:       "layer under a plain group is not reached",
			body:       `<g>` + layer("Hidden", "") + `</g>` + layer("Seen", ""),
			wantLabels: []string{"Seen"},
			wantPaths:  []string{"Seen"},
		},
		{
			name:       "deep nesting",
			body:       layer("1", layer("2", layer("3", layer("4", "")))+layer("2b", "")),
			wantLabels: []string{"4", "2b"},
			wantPaths:  []string{"1 > 2 > 3 > 4", "1 > 2b"},
		},
		{
			name:       "duplicate labels are both yielded",
			body:       layer("Part", "") + layer("Part", ""),
			wantLabels: []string{"Part", "Part"},
			wantPaths:  []string{"Part", "Part"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParse(t, tt.body)
			labels, paths := labelsAndPaths(CollectLeaves(doc))
			assert.Equal(t, tt.wantLabels, labels)
			assert.Equal(t, tt.wantPaths, paths)
		})
	}
}

func TestLeavesYieldsSourceElements(t *testing.T) {
	doc := mustParse(t, nested)
	leaves := CollectLeaves(doc)
	require.Len(t, leaves, 3)

	a := doc.Root().ChildElements()[1]
	assert.Same(t, a.ChildElements()[0], leaves[0].Element)
	assert.Same(t, a, leaves[0].Element.Parent())
}

func TestLeavesSiblingPathsAreIndependent(t *testing.T) {
	doc := mustParse(t, layer("A", layer("B", "")+layer("C", "")+layer("D", "")))
	leaves := CollectLeaves(doc)
	require.Len(t, leaves, 3)

	leaves[0].Path[1] = "changed"
	assert.Equal(t, []string{"A", "C"}, leaves[1].Path)
	assert.Equal(t, []string{"A", "D"}, leaves[2].Path)
}

func TestLeavesStopsEarly(t *testing.T) {
	doc := mustParse(t, nested)

	var seen []string
	for leaf := range Leaves(doc) {
		seen = append(seen, leaf.Label)
		if leaf.Label == "B" {
			break
		}
	}
	assert.Equal(t, []string{"B"}, seen)

	// A second range walks the tree again.
	labels, _ := labelsAndPaths(CollectLeaves(doc))
	assert.Equal(t, []string{"B", "C", "D"}, labels)
}

func TestLeavesNilDocument(t *testing.T) {
	assert.Empty(t, CollectLeaves(nil))
	assert.Empty(t, CollectLeaves(etree.NewDocument()))
}

func TestNewTemplate(t *testing.T) {
	doc := mustParse(t, nested)
	before := mustSerialize(t, doc)

	tpl, err := NewTemplate(doc)
	require.NoError(t, err)

	want := openSVG + `<defs><linearGradient id="g1"/></defs><rect id="loose"/>` + closeSVG
	assert.Equal(t, want, mustSerialize(t, tpl.Document()))
	assert.Nil(t, tpl.Current())

	// Source is untouched.
	assert.Equal(t, before, mustSerialize(t, doc))
}

func TestNewTemplateRemovesLayersAtAnyDepth(t *testing.T) {
	doc := mustParse(t, `<g id="plain">`+layer("Nested", `<rect/>`)+`<circle/></g>`+layer("", `<ellipse/>`+layer("Inner", "")))

	tpl, err := NewTemplate(doc)
	require.NoError(t, err)

	want := openSVG + `<g id="plain"><circle/></g>` + layer("", `<ellipse/>`) + closeSVG
	assert.Equal(t, want, mustSerialize(t, tpl.Document()))
}

func TestNewTemplateIsDeterministic(t *testing.T) {
	doc := mustParse(t, nested)

	first, err := NewTemplate(doc)
	require.NoError(t, err)
	second, err := NewTemplate(doc)
	require.NoError(t, err)

	assert.Equal(t, mustSerialize(t, first.Document()), mustSerialize(t, second.Document()))
	assert.NotSame(t, first.Document().Root(), second.Document().Root())
}

func TestNewTemplateWithoutRoot(t *testing.T) {
	_, err := NewTemplate(etree.NewDocument())
	assert.ErrorIs(t, err, svg.ErrNoRoot)

	_, err = NewTemplate(nil)
	assert.ErrorIs(t, err, svg.ErrNoRoot)
}

func TestTemplateSwap(t *testing.T) {
	doc := mustParse(t, nested)
	before := mustSerialize(t, doc)
	leaves := CollectLeaves(doc)
	require.Len(t, leaves, 3)

	tpl, err := NewTemplate(doc)
	require.NoError(t, err)

	base := openSVG + `<defs><linearGradient id="g1"/></defs><rect id="loose"/>`
	want := []string{
		base + layer("B", `<rect id="b"/>`) + closeSVG,
		base + layer("C", `<circle id="c"/>`) + closeSVG,
		base + layer("D", `<path id="d"/>`) + closeSVG,
	}

	for i, leaf := range leaves {
		inserted := tpl.Swap(leaf.Element)
		assert.NotSame(t, leaf.Element, inserted)
		assert.Same(t, inserted, tpl.Current())
		assert.Same(t, tpl.Document().Root(), inserted.Parent())
		assert.Equal(t, 2, inserted.Index())

		got, err := tpl.Bytes()
		require.NoError(t, err)
		assert.Equal(t, want[i], string(got))

		named := svg.NamedLayers(tpl.Document().Root())
		require.Len(t, named, 1)
		assert.Same(t, inserted, named[0])
	}

	assert.Equal(t, before, mustSerialize(t, doc))
}

func TestTemplateSwapKeepsPosition(t *testing.T) {
	doc := mustParse(t, layer("One", "")+layer("Two", ""))
	tpl, err := NewTemplate(doc)
	require.NoError(t, err)

	// Content added after the first insertion stays after the swapped layer.
	tpl.Swap(CollectLeaves(doc)[0].Element)
	tpl.Document().Root().CreateElement("desc")

	tpl.Swap(CollectLeaves(doc)[1].Element)
	children := tpl.Document().Root().ChildElements()
	require.Len(t, children, 2)
	assert.Equal(t, "Two", svg.Label(children[0]))
	assert.Equal(t, "desc", children[1].Tag)
}

func TestTemplateSwapCarriesInheritedNamespaces(t *testing.T) {
	const ink = "http://www.inkscape.org/namespaces/inkscape"
	src := `<svg xmlns="http://www.w3.org/2000/svg" xmlns:inkscape="` + ink + `">` +
		`<g xmlns:ink="` + ink + `" xmlns:inkscape="` + ink + `" ink:groupmode="layer" ink:label="Body">` +
		`<g ink:groupmode="layer" ink:label="Left"/>` +
		`</g></svg>`
	doc, err := svg.ParseBytes([]byte(src))
	require.NoError(t, err)

	leaves := CollectLeaves(doc)
	require.Len(t, leaves, 1)

	tpl, err := NewTemplate(doc)
	require.NoError(t, err)
	tpl.Swap(leaves[0].Element)

	got, err := tpl.Bytes()
	require.NoError(t, err)

	// xmlns:inkscape is already bound by the root and is not repeated.
	want := `<svg xmlns="http://www.w3.org/2000/svg" xmlns:inkscape="` + ink + `">` +
		`<g ink:groupmode="layer" ink:label="Left" xmlns:ink="` + ink + `"/></svg>`
	assert.Equal(t, want, string(got))

	// The emitted document stands on its own as a layered document.
	reread, err := svg.ParseBytes(got)
	require.NoError(t, err)
	labels, _ := labelsAndPaths(CollectLeaves(reread))
	assert.Equal(t, []string{"Left"}, labels)
}

func TestNewTemplateDropsWhitespaceAfterLayers(t *testing.T) {
	doc := mustParse(t, "\n  "+layer("A", "\n    "+layer("B", "")+"\n  ")+"\n  <rect/>\n  "+layer("C", "")+"\n")

	tpl, err := NewTemplate(doc)
	require.NoError(t, err)

	want := openSVG + "\n  <rect/>\n  " + closeSVG
	assert.Equal(t, want, mustSerialize(t, tpl.Document()))
}
