package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/secondbrain-dev/brain/memory"
)

var addNoConfirm bool

var addCmd = &cobra.Command{
	Use:   "add <text>...",
	Short: "Add a new memory",
	Long: `Add a new memory to your brain.

Example:
  brain add "My passport is in the blue suitcase"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		if strings.TrimSpace(text) == "" {
			fmt.Println(errorStyle.Render("Memory text cannot be empty"))
			return memory.ErrInvalidInput
		}

		if !addNoConfirm {
			fmt.Println()
			fmt.Println(boldStyle.Render("Memory ready to save:"))
			fmt.Printf("\n  %s\n\n", text)
			fmt.Println(dimStyle.Render("Timestamp: " + time.Now().Format("Jan 02, 2006 at 3:04 PM")))
			if !confirm("Save this memory?", true) {
				fmt.Println(infoStyle.Render("Cancelled"))
				return nil
			}
		}

		manager, cleanup, err := newManager(cmd.Context())
		if err != nil {
			return err
		}
		defer cleanup()

		rec, err := manager.Add(cmd.Context(), text, nil)
		if err != nil {
			if errors.Is(err, memory.ErrInvalidInput) {
				fmt.Println(errorStyle.Render("Memory text cannot be empty"))
			}
			return err
		}

		fmt.Println(successStyle.Render("✓ Memory saved!") + dimStyle.Render(" [ID: "+rec.DisplayID()+"]"))
		return nil
	},
}

func init() {
	addCmd.Flags().BoolVar(&addNoConfirm, "no-confirm", false, "skip the confirmation step")
	rootCmd.AddCommand(addCmd)
}
