package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/secondbrain-dev/brain/memory"
)

var forgetYes bool

var forgetCmd = &cobra.Command{
	Use:   "forget <id>",
	Short: "Delete a specific memory",
	Long: `Delete a memory by its id. The short id shown in list and recall
output works as long as it is unambiguous.

Example:
  brain forget a3f2`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		manager, cleanup, err := newManager(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		rec, err := manager.Get(cmd.Context(), id)
		if err != nil {
			if errors.Is(err, memory.ErrNotFound) {
				fmt.Println(errorStyle.Render("No such memory: " + id))
				fmt.Println(dimStyle.Render("\nUse 'brain list' to see all memory ids"))
			}
			return err
		}

		fmt.Println()
		fmt.Println(boldStyle.Render("About to delete:"))
		fmt.Printf("\n[%s] %s\n", rec.DisplayID(), rec.Text)
		fmt.Println(dimStyle.Render("Added: " + relativeTime(rec.CreatedAt)))
		fmt.Println()

		if !forgetYes && !confirm(errorStyle.Render("Delete this memory?"), false) {
			fmt.Println(infoStyle.Render("Cancelled"))
			return nil
		}

		if err := manager.Delete(cmd.Context(), rec.ID); err != nil {
			return err
		}
		fmt.Println(successStyle.Render("✓ Memory deleted"))
		return nil
	},
}

func init() {
	forgetCmd.Flags().BoolVarP(&forgetYes, "yes", "y", false, "skip confirmation")
	rootCmd.AddCommand(forgetCmd)
}
