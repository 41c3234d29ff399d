package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindspeed/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlay(cmd)
	},
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Player name (skips the welcome screen)")
	cmd.Flags().Int("difficulty", 1, "Difficulty level, 1-4")
	cmd.Flags().Uint64("seed", 0, "Seed for reproducible questions (overrides MINDSPEED_SEED)")
}

// runPlay opens the store, builds the service, and launches the TUI.
func runPlay(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Logging would draw over the TUI.
	logger := slog.New(slog.DiscardHandler)

	svc, st, err := openService(cmd, cfg, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	name, _ := cmd.Flags().GetString("name")
	difficulty, _ := cmd.Flags().GetInt("difficulty")

	return app.Run(app.Options{
		Service:    svc,
		Name:       name,
		Difficulty: difficulty,
	})
}
