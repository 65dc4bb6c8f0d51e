// Package provider supplies the local sentence embedding model.
package provider

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/knights-analytics/hugot"
	"github.com/knights-analytics/hugot/pipelines"

	"github.com/helixml/campsite/domain/search"
)

// Model facts for sentence-transformers/all-MiniLM-L6-v2.
const (
	ModelName      = "sentence-transformers/all-MiniLM-L6-v2"
	ModelDimension = 384
)

const defaultBatchSize = 32

// runFunc embeds one batch of texts.
type runFunc func(texts []string) ([][]float32, error)

// sessionSingleton holds the process-wide hugot session and pipeline.
// ONNX Runtime allows one active session per process, and inference is not
// thread-safe, so the mutex guards both initialisation and every run.
var sessionSingleton struct {
	session  *hugot.Session
	pipeline *pipelines.FeatureExtractionPipeline
	mu       sync.Mutex
	ready    bool
}

// HugotEmbedding embeds text with all-MiniLM-L6-v2 through hugot. Vectors
// are mean pooled and L2 normalised, matching sentence-transformers output.
//
// Model files are looked up in modelDir: either modelDir itself or its first
// subdirectory containing tokenizer.json. Use tools/download-model to fetch
// them.
type HugotEmbedding struct {
	modelDir  string
	batchSize int
	run       runFunc
}

// HugotOption configures a HugotEmbedding.
type HugotOption func(*HugotEmbedding)

// WithBatchSize sets the number of texts per pipeline run.
func WithBatchSize(n int) HugotOption {
	return func(h *HugotEmbedding) {
		if n > 0 {
			h.batchSize = n
		}
	}
}

func withRunFunc(fn runFunc) HugotOption {
	return func(h *HugotEmbedding) { h.run = fn }
}

// NewHugotEmbedding creates a HugotEmbedding reading the model from modelDir.
// The model is loaded on first use.
func NewHugotEmbedding(modelDir string, opts ...HugotOption) *HugotEmbedding {
	h := &HugotEmbedding{
		modelDir:  modelDir,
		batchSize: defaultBatchSize,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Available reports whether model files exist in modelDir.
func (h *HugotEmbedding) Available() bool {
	_, err := h.modelPath()
	return err == nil
}

// Dimension returns the embedding dimension.
func (h *HugotEmbedding) Dimension() int { return ModelDimension }

// Embed returns one normalised vector per text, in order.
func (h *HugotEmbedding) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return [][]float32{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	run := h.run
	if run == nil {
		if err := h.initialize(); err != nil {
			return nil, fmt.Errorf("initialize hugot: %w", err)
		}
		run = runSharedPipeline
	}

	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += h.batchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		end := min(start+h.batchSize, len(texts))

		vectors, err := run(texts[start:end])
		if err != nil {
			return nil, fmt.Errorf("embed batch %d-%d: %w", start, end, err)
		}
		if len(vectors) != end-start {
			return nil, fmt.Errorf("embed batch %d-%d: got %d vectors", start, end, len(vectors))
		}
		out = append(out, vectors...)
	}
	return out, nil
}

// Close is a no-op. The session is process-global and released at exit.
func (h *HugotEmbedding) Close() error {
	return nil
}

func (h *HugotEmbedding) initialize() error {
	sessionSingleton.mu.Lock()
	defer sessionSingleton.mu.Unlock()

	if sessionSingleton.ready {
		return nil
	}

	modelPath, err := h.modelPath()
	if err != nil {
		return err
	}

	session, err := newHugotSession()
	if err != nil {
		return fmt.Errorf("create hugot session: %w", err)
	}

	pipeline, err := hugot.NewPipeline(session, hugot.FeatureExtractionConfig{
		ModelPath: modelPath,
		Name:      "campground-embeddings",
		Options: []hugot.FeatureExtractionOption{
			pipelines.WithNormalization(),
		},
	})
	if err != nil {
		_ = session.Destroy()
		return fmt.Errorf("create feature extraction pipeline: %w", err)
	}

	sessionSingleton.session = session
	sessionSingleton.pipeline = pipeline
	sessionSingleton.ready = true
	return nil
}

func runSharedPipeline(texts []string) ([][]float32, error) {
	sessionSingleton.mu.Lock()
	defer sessionSingleton.mu.Unlock()

	result, err := sessionSingleton.pipeline.RunPipeline(texts)
	if err != nil {
		return nil, fmt.Errorf("run embedding pipeline: %w", err)
	}
	return result.Embeddings, nil
}

// modelPath returns modelDir when it holds tokenizer.json, otherwise the
// first subdirectory that does.
func (h *HugotEmbedding) modelPath() (string, error) {
	if hasTokenizer(h.modelDir) {
		return h.modelDir, nil
	}

	entries, err := os.ReadDir(h.modelDir)
	if err != nil {
		return "", fmt.Errorf("read model directory %s: %w", h.modelDir, err)
	}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		candidate := filepath.Join(h.modelDir, entry.Name())
		if hasTokenizer(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("no model with tokenizer.json found in %s (run tools/download-model)", h.modelDir)
}

func hasTokenizer(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, "tokenizer.json"))
	return err == nil
}

var (
	_ search.Embedder          = (*HugotEmbedding)(nil)
	_ search.DimensionReporter = (*HugotEmbedding)(nil)
)
