package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/mindspeed/internal/clock"
	"github.com/abhisek/mindspeed/internal/config"
	"github.com/abhisek/mindspeed/internal/problemgen"
	"github.com/abhisek/mindspeed/internal/session"
	"github.com/abhisek/mindspeed/internal/store"
)

// loadConfig reads the environment and applies the --seed flag, when the
// command has one and it was set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if f := cmd.Flags().Lookup("seed"); f != nil && f.Changed {
		seed, err := cmd.Flags().GetUint64("seed")
		if err != nil {
			return nil, err
		}
		cfg.Seed, cfg.HasSeed = seed, true
	}
	return cfg, nil
}

// newGenerator returns a seeded generator when cfg carries a seed.
func newGenerator(cfg *config.Config, clk clock.Clock) *problemgen.Arithmetic {
	src := problemgen.NewRandomSource()
	if cfg.HasSeed {
		src = problemgen.NewSource(cfg.Seed)
	}
	return problemgen.New(src, clk)
}

// openService opens the store and builds the game service on top of it.
// The caller closes the returned store.
func openService(cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) (*session.Service, *store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	clk := clock.Real{}
	svc := session.NewService(st, newGenerator(cfg, clk), clk, session.Config{
		BaseURL: cfg.APIBaseURL(),
	}, logger)
	return svc, st, nil
}
