package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/they4kman/minefield/leaderboard"
)

var leaderboardTop int

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Show the fastest recorded wins",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if leaderboardArg == "" {
			return errors.New("no leaderboard file configured")
		}

		store, err := leaderboard.Open(leaderboardArg)
		if err != nil {
			return err
		}
		return printLeaderboard(cmd.OutOrStdout(), store.Top(leaderboardTop))
	},
}

func printLeaderboard(out io.Writer, entries []leaderboard.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(out, "No wins recorded yet")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tNAME\tTIME\tRECORDED")
	for i, entry := range entries {
		fmt.Fprintf(w, "%d\t%s\t%.1fs\t%s\n", i+1, entry.Name, entry.Time.Seconds(), entry.Recorded.Local().Format("2006-01-02 15:04"))
	}
	return w.Flush()
}

func init() {
	leaderboardCmd.Flags().IntVarP(&leaderboardTop, "top", "n", 10, "Number of entries to show (-1 for all)")
}
