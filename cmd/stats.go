package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindspeed/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show totals from the game event log",
	RunE: func(cmd *cobra.Command, args []string) error {
		dbPath, err := resolveDBPath(cmd)
		if err != nil {
			return fmt.Errorf("resolve DB path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer st.Close()

		counts, err := st.Repo().EventCounts(cmd.Context())
		if err != nil {
			return err
		}
		printStats(cmd.OutOrStdout(), counts)
		return nil
	},
}

func printStats(w io.Writer, c store.EventCounts) {
	accuracy := 0.0
	if c.Answered > 0 {
		accuracy = float64(c.Correct) / float64(c.Answered) * 100
	}
	fmt.Fprintf(w, "Games started:   %d\n", c.Started)
	fmt.Fprintf(w, "Games ended:     %d\n", c.Ended)
	fmt.Fprintf(w, "Answers:         %d\n", c.Answered)
	fmt.Fprintf(w, "Correct answers: %d (%.1f%%)\n", c.Correct, accuracy)
}
