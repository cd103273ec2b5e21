package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show statistics about your memory storage",
	RunE: func(cmd *cobra.Command, args []string) error {
		manager, cleanup, err := newManager(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		stats, err := manager.Stats(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("\n%s\n\n", boldStyle.Render("Second Brain Statistics"))
		fmt.Printf("Total memories: %s\n", boldStyle.Render(fmt.Sprintf("%d", stats.Count)))
		if stats.Count > 0 {
			fmt.Printf("Latest memory:  %s\n", dimStyle.Render(relativeTime(stats.MostRecent)))
		}
		fmt.Printf("\nStorage location:    %s\n", dimStyle.Render(stats.Location))
		fmt.Printf("Embedding model:     %s\n", dimStyle.Render(stats.Model))
		fmt.Printf("Embedding dimension: %s\n", dimStyle.Render(fmt.Sprintf("%d", stats.Dimensions)))

		fmt.Printf("\n%s\n\n", boldStyle.Render("Configuration"))
		fmt.Printf("Similarity weight:    %v\n", viper.GetFloat64("similarity_weight"))
		fmt.Printf("Recency weight:       %v\n", viper.GetFloat64("recency_weight"))
		fmt.Printf("Recency decay rate:   %v\n", viper.GetFloat64("recency_decay_rate"))
		fmt.Printf("Confidence threshold: %v\n", viper.GetFloat64("confidence_threshold"))
		fmt.Printf("Top results:          %v\n", viper.GetInt("top_n_results"))
		fmt.Println()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
