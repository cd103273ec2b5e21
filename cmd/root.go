// Package cmd implements the brain command-line interface. All
// commands are thin collaborators around memory.Manager; the scoring
// and storage logic lives in the memory package.
package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/secondbrain-dev/brain/memory"
	"github.com/secondbrain-dev/brain/memory/embedder/cached"
	chromemstore "github.com/secondbrain-dev/brain/memory/store/chromem"
)

var (
	cfgFile string
	verbose bool

	rootCmd = &cobra.Command{
		Use:   "brain",
		Short: "Your personal semantic memory assistant",
		Long: `brain stores short natural-language notes and recalls them later
with free-form queries, ranked by a blend of semantic similarity and
recency.

Examples:
  brain add "passport in blue suitcase"
  brain recall "where's my passport?"
  brain list
  brain forget a3f2`,
		SilenceUsage: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.brain/config.yml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func initConfig() {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	brainDir := filepath.Join(home, ".brain")

	viper.SetDefault("data_dir", filepath.Join(brainDir, "data"))
	viper.SetDefault("collection", "memories")
	viper.SetDefault("embedder", "fastembed")
	viper.SetDefault("model", "all-MiniLM-L6-v2")
	viper.SetDefault("model_cache_dir", filepath.Join(brainDir, "models"))
	viper.SetDefault("similarity_weight", 0.7)
	viper.SetDefault("recency_weight", 0.3)
	viper.SetDefault("recency_decay_rate", 0.1)
	viper.SetDefault("top_k_retrieval", 10)
	viper.SetDefault("top_n_results", 3)
	viper.SetDefault("confidence_threshold", 0.3)

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yml")
		viper.AddConfigPath(brainDir)
	}

	viper.SetEnvPrefix("BRAIN")
	viper.AutomaticEnv()

	// Missing config file is fine, the defaults stand.
	if err := viper.ReadInConfig(); err == nil {
		log.Debug("config loaded", "file", viper.ConfigFileUsed())
	}

	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

// newManager wires embedder, store and manager from the loaded
// configuration. The returned cleanup must run before exit.
func newManager(ctx context.Context) (*memory.Manager, func(), error) {
	embedder, closeEmbedder, err := buildEmbedder()
	if err != nil {
		return nil, nil, err
	}

	cachedEmbedder, err := cached.New(embedder)
	if err != nil {
		closeEmbedder()
		return nil, nil, err
	}

	store, err := chromemstore.New(ctx, chromemstore.Config{
		Path:       viper.GetString("data_dir"),
		Collection: viper.GetString("collection"),
		Dimensions: embedder.Dimensions(),
	})
	if err != nil {
		closeEmbedder()
		return nil, nil, err
	}

	cfg := &memory.Config{
		SimilarityWeight:    viper.GetFloat64("similarity_weight"),
		RecencyWeight:       viper.GetFloat64("recency_weight"),
		RecencyDecayRate:    viper.GetFloat64("recency_decay_rate"),
		TopKRetrieval:       viper.GetInt("top_k_retrieval"),
		TopNResults:         viper.GetInt("top_n_results"),
		ConfidenceThreshold: viper.GetFloat64("confidence_threshold"),
	}

	cleanup := func() {
		if err := store.Close(); err != nil {
			log.Warn("closing store", "error", err)
		}
		closeEmbedder()
	}
	return memory.NewManager(store, cachedEmbedder, cfg), cleanup, nil
}
