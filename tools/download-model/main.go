// Tool that downloads the all-MiniLM-L6-v2 ONNX export used by the indexing
// job into EMBEDDING_MODEL_DIR (or the directory given as the first argument).
//
// Usage: go run ./tools/download-model [dest]
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knights-analytics/hugot"

	"github.com/helixml/campsite/infrastructure/provider"
	"github.com/helixml/campsite/internal/config"
)

func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	dest := cfg.ModelDir()
	if len(os.Args) > 1 {
		dest = os.Args[1]
	}

	if provider.NewHugotEmbedding(dest).Available() {
		fmt.Printf("Model already present in %s\n", dest)
		return
	}

	if err := os.MkdirAll(dest, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "create directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Downloading %s to %s...\n", provider.ModelName, dest)

	opts := hugot.NewDownloadOptions()
	opts.OnnxFilePath = filepath.Join("onnx", "model.onnx")
	modelPath, err := hugot.DownloadModel(provider.ModelName, dest, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "download model: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Model downloaded to %s\n", modelPath)
}
