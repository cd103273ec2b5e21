package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// previewMaxLength caps memory text shown in list output.
const previewMaxLength = 200

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	boldStyle    = lipgloss.NewStyle().Bold(true)

	scoreHigh = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	scoreMid  = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	scoreLow  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// scoreStyle colors a hybrid score by confidence band.
func scoreStyle(score float64) lipgloss.Style {
	switch {
	case score > 0.7:
		return scoreHigh
	case score > 0.5:
		return scoreMid
	default:
		return scoreLow
	}
}

// confirm asks a yes/no question on stdin and returns the answer,
// falling back to def on a bare return.
func confirm(prompt string, def bool) bool {
	hint := "y/N"
	if def {
		hint = "Y/n"
	}
	fmt.Printf("%s [%s]: ", prompt, hint)

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	case "n", "no":
		return false
	default:
		return def
	}
}

// relativeTime renders a timestamp the way a human reads it: recent
// moments relatively, older ones as a date.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}

	diff := time.Since(t)
	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		return fmt.Sprintf("%d min ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 48*time.Hour:
		return "yesterday"
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%d days ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 02, 2006")
	}
}

// preview truncates memory text for list display.
func preview(text string) string {
	if len(text) <= previewMaxLength {
		return text
	}
	return text[:previewMaxLength] + "..."
}
