package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/quizwise/internal/app"
)

// runApp loads configuration and launches the TUI template browser.
func runApp(cmd *cobra.Command) error {
	e, err := openEnv(cmd, nil)
	if err != nil {
		return err
	}
	defer e.Close()

	e.log.Info("starting TUI", zap.Int("templates", e.catalog.Len()))
	return app.Run(e.catalog, e.rec, e.cfg.Quiz.DefaultQuestions)
}
