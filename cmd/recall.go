package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	recallLimit     int
	recallThreshold float64
	recallDebug     bool
)

var recallCmd = &cobra.Command{
	Use:   "recall <query>...",
	Short: "Search your memories with natural language",
	Long: `Search your memories using natural language. Results are ranked by a
blend of semantic similarity and recency; low-confidence matches are
filtered out.

Example:
  brain recall "where did I put my passport?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.Join(args, " ")

		manager, cleanup, err := newManager(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		stats, err := manager.Stats(cmd.Context())
		if err != nil {
			return err
		}
		if stats.Count == 0 {
			fmt.Println(infoStyle.Render("Your brain is empty! Add some memories first."))
			fmt.Println(dimStyle.Render("\nTry: brain add \"your memory here\""))
			return nil
		}

		threshold := recallThreshold
		if !cmd.Flags().Changed("threshold") {
			threshold = viper.GetFloat64("confidence_threshold")
		}

		results, err := manager.Recall(cmd.Context(), query, recallLimit, threshold)
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Println(infoStyle.Render(fmt.Sprintf("No confident matches found for: %q", query)))
			fmt.Println(dimStyle.Render("\n(Try lowering --threshold, or 'brain list' to see everything)"))
			return nil
		}

		fmt.Printf("\n%s %d %s\n\n", boldStyle.Render("Found"), len(results), boldStyle.Render("matching memories:"))
		for i, result := range results {
			fmt.Printf("%s %s\n", boldStyle.Render(fmt.Sprintf("%d.", i+1)), result.Record.Text)

			meta := []string{
				dimStyle.Render("[" + result.Record.DisplayID() + "]"),
				dimStyle.Render(relativeTime(result.Record.CreatedAt)),
				scoreStyle(result.Final).Render(fmt.Sprintf("Score: %.2f", result.Final)),
			}
			fmt.Println("   " + strings.Join(meta, " · "))

			if recallDebug {
				fmt.Println(dimStyle.Render(fmt.Sprintf("   Debug: similarity=%.3f, recency=%.3f",
					result.Similarity, result.Recency)))
			}
			fmt.Println()
		}
		return nil
	},
}

func init() {
	recallCmd.Flags().IntVarP(&recallLimit, "limit", "n", 0, "number of results (default from config)")
	recallCmd.Flags().Float64VarP(&recallThreshold, "threshold", "t", 0, "confidence threshold (default from config)")
	recallCmd.Flags().BoolVar(&recallDebug, "debug", false, "show per-result scoring details")
	rootCmd.AddCommand(recallCmd)
}
