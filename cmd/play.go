package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/arithtrainer/internal/app"
	"github.com/abhisek/arithtrainer/internal/screens/game"
	"github.com/abhisek/arithtrainer/internal/screens/home"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the terminal game",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// runApp opens the store, loads preferences, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	logger, closeLog, err := newLogger(cmd, true)
	if err != nil {
		return err
	}
	defer closeLog()

	p, path, err := loadPreferences(cmd, logger)
	if err != nil {
		return err
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	cfg := p.GenerationConfig()
	return app.Run(app.Options{
		Deps: game.Deps{
			Config:    &cfg,
			Settings:  p.Settings(),
			EventRepo: st.EventRepo(),
			Logger:    logger,
		},
		Prefs: &home.PrefsFile{Prefs: p, Path: path},
	})
}
