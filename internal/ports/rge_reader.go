package ports

// RgeReader reads the raw (depth, amplitude) columns of a single rge-file.
// Depth is returned in nm.
type RgeReader interface {
	ReadRge(path string) (depth []float64, amplitude []float64, err error)
}
