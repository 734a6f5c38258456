package layers

// ExportedLayer records one leaf layer written to the archive.
type ExportedLayer struct {
	Label string
	Path  []string
	Entry string // archive entry name
	Size  int64  // serialized document size in bytes
}
