package search

import "context"

// Embedder converts text into embedding vectors.
// Implementations return one vector per input text, in input order, all of
// the same dimension.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// DimensionReporter is implemented by embedders that know their output
// dimension before any text is embedded.
type DimensionReporter interface {
	Dimension() int
}
