package formatter

import (
	"strings"
	"testing"

	"github.com/kataras/layer-tar/pkg/layers"

	"github.com/stretchr/testify/assert"
)

func TestToMarkdownEmpty(t *testing.T) {
	md := ToMarkdown(nil, "empty.svg", nil)

	assert.True(t, strings.HasPrefix(md, "# Leaf Layer Export - empty.svg\n"))
	assert.Contains(t, md, "- **Leaf layers**: 0\n")
	assert.Contains(t, md, "- **Total size**: 0 B\n")
	assert.Contains(t, md, "the archive is empty")
	assert.NotContains(t, md, "## Archive Entries")
}

func TestToMarkdown(t *testing.T) {
	exported := []layers.ExportedLayer{
		{Label: "Left", Path: []string{"Body", "Left"}, Entry: "Left.svg", Size: 1200},
		{Label: "Right", Path: []string{"Body", "Right"}, Entry: "Right.svg", Size: 800},
		{Label: "Part", Path: []string{"Part"}, Entry: "Part.svg", Size: 10},
		{Label: "Part", Path: []string{"Part"}, Entry: "Part.svg", Size: 10},
	}

	md := ToMarkdown(exported, "robot.svg", []string{"Part.svg"})

	assert.Contains(t, md, "- **Leaf layers**: 4\n")
	assert.Contains(t, md, "- **Total size**: 2.0 kB\n")
	assert.Contains(t, md, "- **Duplicate entry names**: 1\n")
	assert.Contains(t, md, "| 1 | `Left.svg` | Body > Left | 1.2 kB |\n")
	assert.Contains(t, md, "| 4 | `Part.svg` | Part | 10 B |\n")

	wantTree := "## Layer Tree\n\n" +
		"- Body\n" +
		"  - **Left** → `Left.svg`\n" +
		"  - **Right** → `Right.svg`\n" +
		"- **Part** → `Part.svg`\n" +
		"- **Part** → `Part.svg`\n"
	assert.Contains(t, md, wantTree)
	assert.Contains(t, md, "## Duplicate Entry Names\n\n")
	assert.Contains(t, md, "- `Part.svg`\n")
}

func TestWriteTreeRestartsAfterLeaf(t *testing.T) {
	exported := []layers.ExportedLayer{
		{Path: []string{"A", "B"}, Entry: "B.svg"},
		{Path: []string{"A", "B", "C"}, Entry: "C.svg"},
	}

	var sb strings.Builder
	writeTree(&sb, exported)

	want := "- A\n" +
		"  - **B** → `B.svg`\n" +
		"  - B\n" +
		"    - **C** → `C.svg`\n"
	assert.Equal(t, want, sb.String())
}

func TestEscaping(t *testing.T) {
	assert.Equal(t, `a\|b`, escapeCell("a|b"))
	assert.Equal(t, `snake\_case \*x\*`, escapeInline("snake_case *x*"))
}
