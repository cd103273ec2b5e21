package cmd

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/spf13/viper"

	"github.com/secondbrain-dev/brain/memory"
	"github.com/secondbrain-dev/brain/memory/embedder/fastembed"
	"github.com/secondbrain-dev/brain/memory/embedder/mock"
)

// onnxBuilder is installed by the onnx build tag; without it the
// "onnx" embedder setting is rejected.
var onnxBuilder func() (memory.Embedder, func(), error)

// buildEmbedder constructs the configured embedder and its cleanup.
func buildEmbedder() (memory.Embedder, func(), error) {
	switch name := viper.GetString("embedder"); name {
	case "fastembed":
		embedder, err := fastembed.New(fastembed.Config{
			Model:    viper.GetString("model"),
			CacheDir: viper.GetString("model_cache_dir"),
		})
		if err != nil {
			return nil, nil, err
		}
		return embedder, func() { _ = embedder.Close() }, nil

	case "onnx":
		if onnxBuilder == nil {
			return nil, nil, goerr.New("onnx embedder requires a binary built with -tags onnx")
		}
		return onnxBuilder()

	case "mock":
		// Hash-based vectors with no semantics; only useful for
		// trying the CLI without model files.
		return mock.New(), func() {}, nil

	default:
		return nil, nil, goerr.New("unknown embedder", goerr.V("embedder", name))
	}
}
