package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete ALL memories",
	Long:  "Delete every memory from your brain. This cannot be undone.",
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
			fmt.Println(infoStyle.Render("Your brain is already empty!"))
			return nil
		}

		if !clearYes {
			fmt.Println(errorStyle.Render(fmt.Sprintf("\nWARNING: this will delete ALL %d memories!", stats.Count)))
			fmt.Println(errorStyle.Render("This action CANNOT be undone.\n"))
			if !confirm("Are you absolutely sure?", false) {
				fmt.Println(infoStyle.Render("Cancelled"))
				return nil
			}
			if !confirm("Really delete everything?", false) {
				fmt.Println(infoStyle.Render("Cancelled"))
				return nil
			}
		}

		removed, err := manager.Clear(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(successStyle.Render(fmt.Sprintf("✓ Deleted all %d memories", removed)))
		return nil
	},
}

func init() {
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "skip confirmation")
	rootCmd.AddCommand(clearCmd)
}
