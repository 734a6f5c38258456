package formatter

import (
	"fmt"
	"strings"

	"github.com/kataras/layer-tar/pkg/layers"

	"github.com/dustin/go-humanize"
)

// ToMarkdown renders an export report: a summary, the archive entries in
// the order they were written, the layer tree they came from and any entry
// names that occur more than once.
func ToMarkdown(exported []layers.ExportedLayer, documentName string, duplicates []string) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Leaf Layer Export - %s\n\n", documentName))
	sb.WriteString("One SVG document is written per leaf layer. Each document holds the shared, layer-free content of the source plus that single layer.\n\n")

	var total int64
	for _, e := range exported {
		total += e.Size
	}

	// Summary
	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Leaf layers**: %d\n", len(exported)))
	sb.WriteString(fmt.Sprintf("- **Total size**: %s\n", humanize.Bytes(uint64(total))))
	if len(duplicates) > 0 {
		sb.WriteString(fmt.Sprintf("- **Duplicate entry names**: %d\n", len(duplicates)))
	}
	sb.WriteString("\n")

	if len(exported) == 0 {
		sb.WriteString("The document has no named layers; the archive is empty.\n")
		return sb.String()
	}

	// Entries
	sb.WriteString("## Archive Entries\n\n")
	sb.WriteString("| # | Entry | Layer | Size |\n")
	sb.WriteString("|---|-------|-------|------|\n")
	for i, e := range exported {
		sb.WriteString(fmt.Sprintf("| %d | `%s` | %s | %s |\n",
			i+1, e.Entry, escapeCell(strings.Join(e.Path, layers.PathSeparator)), humanize.Bytes(uint64(e.Size))))
	}
	sb.WriteString("\n")

	// Tree
	sb.WriteString("## Layer Tree\n\n")
	writeTree(&sb, exported)
	sb.WriteString("\n")

	if len(duplicates) > 0 {
		sb.WriteString("## Duplicate Entry Names\n\n")
		sb.WriteString("These names appear more than once in the archive. Tools that extract to a directory usually keep only the last one.\n\n")
		for _, name := range duplicates {
			sb.WriteString(fmt.Sprintf("- `%s`\n", name))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// writeTree prints the leaf paths as a nested list. Leaves arrive in
// depth-first order, so each one only needs the segments it does not share
// with the previous leaf.
func writeTree(sb *strings.Builder, exported []layers.ExportedLayer) {
	var prev []string
	for _, e := range exported {
		common := commonPrefix(prev, e.Path)
		// The previous leaf ends a branch, so at least its last segment
		// is printed again; this also covers two leaves with equal paths.
		if common > 0 && (common == len(e.Path) || common == len(prev)) {
			common--
		}

		for depth := common; depth < len(e.Path); depth++ {
			indent := strings.Repeat("  ", depth)
			if depth == len(e.Path)-1 {
				sb.WriteString(fmt.Sprintf("%s- **%s** → `%s`\n", indent, escapeInline(e.Path[depth]), e.Entry))
			} else {
				sb.WriteString(fmt.Sprintf("%s- %s\n", indent, escapeInline(e.Path[depth])))
			}
		}
		prev = e.Path
	}
}

func commonPrefix(a, b []string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

func escapeCell(s string) string {
	return strings.ReplaceAll(escapeInline(s), "|", `\|`)
}

func escapeInline(s string) string {
	return strings.NewReplacer("*", `\*`, "_", `\_`, "`", "\\`").Replace(s)
}
