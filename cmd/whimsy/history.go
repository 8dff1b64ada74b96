package main

import (
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/whimsy/internal/storage"
)

var (
	flagLimit int
	flagClear bool
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F89B2A"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#626262"))
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded sessions",
	Long: `Display the most recent sessions with their frame counts, clicks,
and the last FPS value shown, followed by a plot of FPS over time.

Examples:
  whimsy history
  whimsy history --limit 50
  whimsy history --clear`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagLimit, "limit", 20, "Number of sessions to show")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all recorded sessions")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearSessions(); err != nil {
			return err
		}
		fmt.Fprintln(out, "All sessions deleted.")
		return nil
	}

	sessions, err := store.RecentSessions(flagLimit)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, titleStyle.Render("Whimsy Sessions"))
	fmt.Fprintln(out)

	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'whimsy' to start one!")
		return nil
	}

	// Print header
	fmt.Fprintf(out, "  %-4s  %-16s  %-9s  %-7s  %-6s  %-6s  %s\n", "ID", "Started", "Duration", "Frames", "Clicks", "Hits", "FPS")
	fmt.Fprintf(out, "  %-4s  %-16s  %-9s  %-7s  %-6s  %-6s  %s\n", "--", "-------", "--------", "------", "------", "----", "---")

	for _, s := range sessions {
		fmt.Fprintf(out, "  %-4d  %-16s  %-9s  %-7d  %-6d  %-6d  %.1f\n",
			s.ID,
			s.StartedAt.Local().Format("2006-01-02 15:04"),
			s.Duration.Round(100*time.Millisecond).String(),
			s.Frames, s.Clicks, s.Hits, s.AverageFPS,
		)
	}

	if summary, err := store.Summary(); err == nil {
		fmt.Fprintln(out)
		fmt.Fprintln(out, dimStyle.Render(fmt.Sprintf(
			"%d sessions, %d frames, %d clicks (%d hits), mean %.1f FPS, best %.1f FPS",
			summary.Sessions, summary.TotalFrames, summary.TotalClicks, summary.TotalHits,
			summary.MeanFPS, summary.BestFPS,
		)))
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, asciigraph.Plot(fpsSeries(sessions),
		asciigraph.Height(10),
		asciigraph.Width(60),
		asciigraph.Caption("average FPS per session"),
	))
	return nil
}

// fpsSeries returns the average FPS of newest-first sessions, oldest first.
func fpsSeries(sessions []storage.Session) []float64 {
	fps := make([]float64, 0, len(sessions))
	for _, s := range slices.Backward(sessions) {
		fps = append(fps, s.AverageFPS)
	}
	return fps
}
