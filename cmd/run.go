package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mpiekarski/quizdeck/internal/app"
	"github.com/mpiekarski/quizdeck/internal/config"
	"github.com/mpiekarski/quizdeck/internal/quiz"
	"github.com/mpiekarski/quizdeck/internal/store"
)

// runApp opens the store, seeds the demo set when appropriate, and
// launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.Close()

	repo := st.Sets()

	if !cfg.NoDemo {
		if err := seedDemo(cmd.Context(), repo); err != nil {
			return fmt.Errorf("seed demo set: %w", err)
		}
	}

	return app.Run(repo)
}

// seedDemo stores the built-in demo set when the store is empty, so a
// first run has something to play with.
func seedDemo(ctx context.Context, repo store.SetRepo) error {
	sets, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(sets) > 0 {
		return nil
	}
	return repo.Save(ctx, quiz.DemoSet())
}
