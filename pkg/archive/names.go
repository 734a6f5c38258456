package archive

import "strings"

// Extension is appended to every entry name.
const Extension = ".svg"

// separatorReplacer flattens both slash styles regardless of the host OS so
// the same document yields the same archive everywhere.
var separatorReplacer = strings.NewReplacer("/", "_", `\`, "_")

// Sanitize replaces path separators in s with underscores so that s can be
// used as a flat file name.
func Sanitize(s string) string {
	return separatorReplacer.Replace(s)
}

// EntryName returns the archive entry name for a layer label,
// e.g. "left/arm" becomes "left_arm.svg".
//
// Names are not made unique: two layers with the same label produce two
// entries with the same name.
func EntryName(label string) string {
	return Sanitize(label) + Extension
}

// PathEntryName builds an entry name from every label on a layer's path,
// each sanitized and joined with an underscore, e.g. ["Body", "Left"]
// becomes "Body_Left.svg".
func PathEntryName(path []string) string {
	parts := make([]string, len(path))
	for i, p := range path {
		parts[i] = Sanitize(p)
	}
	return strings.Join(parts, "_") + Extension
}

// DuplicateNames returns every name that occurs more than once in names,
// in the order of its second occurrence.
func DuplicateNames(names []string) []string {
	seen := make(map[string]int, len(names))
	var dups []string
	for _, n := range names {
		seen[n]++
		if seen[n] == 2 {
			dups = append(dups, n)
		}
	}
	return dups
}
