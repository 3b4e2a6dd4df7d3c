package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/arithtrainer/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve problem generation and answer checking over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, closeLog, err := newLogger(cmd, false)
		if err != nil {
			return err
		}
		defer closeLog()

		p, path, err := loadPreferences(cmd, logger)
		if err != nil {
			return err
		}

		cfg := server.DefaultConfig()
		cfg.Addr, _ = cmd.Flags().GetString("addr")
		cfg.Rate, _ = cmd.Flags().GetFloat64("rate")
		cfg.Burst, _ = cmd.Flags().GetInt("burst")
		cfg.PrefsPath = path
		cfg.Version = version

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return server.New(cfg, p, logger).Run(ctx)
	},
}

func init() {
	defaults := server.DefaultConfig()
	serveCmd.Flags().String("addr", defaults.Addr, "Listen address")
	serveCmd.Flags().Float64("rate", defaults.Rate, "Requests per second allowed (0 disables rate limiting)")
	serveCmd.Flags().Int("burst", defaults.Burst, "Rate limiter burst size")
}
