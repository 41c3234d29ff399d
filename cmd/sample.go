package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindspeed/internal/clock"
	"github.com/abhisek/mindspeed/internal/problemgen"
)

var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Print one sample question per difficulty level",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		printSamples(cmd.OutOrStdout(), problemgen.Samples(newGenerator(cfg, clock.Real{})))
		return nil
	},
}

func init() {
	sampleCmd.Flags().Uint64("seed", 0, "Seed for reproducible questions (overrides MINDSPEED_SEED)")
}

func printSamples(w io.Writer, questions []problemgen.Question) {
	for _, q := range questions {
		fmt.Fprintf(w, "Level %d: %s = %g\n", q.Difficulty, q.Equation, q.Answer)
	}
}
