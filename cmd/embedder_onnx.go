//go:build onnx

package cmd

import (
	"github.com/spf13/viper"

	"github.com/secondbrain-dev/brain/memory"
	"github.com/secondbrain-dev/brain/memory/embedder/onnx"
)

func init() {
	onnxBuilder = func() (memory.Embedder, func(), error) {
		embedder, err := onnx.New(onnx.Config{
			ModelPath:     viper.GetString("onnx_model_path"),
			TokenizerPath: viper.GetString("onnx_tokenizer_path"),
			LibraryPath:   viper.GetString("onnx_library_path"),
		})
		if err != nil {
			return nil, nil, err
		}
		return embedder, func() { _ = embedder.Close() }, nil
	}
}
