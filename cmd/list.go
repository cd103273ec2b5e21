package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:   "list [filter]...",
	Short: "List memories in reverse chronological order",
	Long: `List all memories, newest first, optionally filtered by a substring
match on the memory text. No scoring is applied; use recall for
semantic search.

Examples:
  brain list
  brain list passport
  brain list --limit 10`,
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
		if stats.Count == 0 {
			fmt.Println(infoStyle.Render("Your brain is empty! Add some memories first."))
			fmt.Println(dimStyle.Render("\nTry: brain add \"your memory here\""))
			return nil
		}

		filter := strings.Join(args, " ")
		records, err := manager.List(cmd.Context(), filter, listLimit)
		if err != nil {
			return err
		}

		if len(records) == 0 {
			fmt.Println(infoStyle.Render(fmt.Sprintf("No memories found matching: %q", filter)))
			return nil
		}

		if filter != "" {
			fmt.Printf("\n%s %q %s\n\n",
				boldStyle.Render("Memories matching"), filter,
				dimStyle.Render(fmt.Sprintf("(%d results)", len(records))))
		} else {
			fmt.Printf("\n%s %s\n\n",
				boldStyle.Render("All memories"),
				dimStyle.Render(fmt.Sprintf("(%d of %d)", len(records), stats.Count)))
		}

		for i, rec := range records {
			fmt.Printf("%s %s\n", boldStyle.Render(fmt.Sprintf("%d.", i+1)), preview(rec.Text))
			fmt.Println("   " + dimStyle.Render("["+rec.DisplayID()+"]") + " · " + dimStyle.Render(relativeTime(rec.CreatedAt)))
			fmt.Println()
		}
		return nil
	},
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "maximum number of results")
	rootCmd.AddCommand(listCmd)
}
