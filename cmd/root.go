package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/arithtrainer/internal/prefs"
	"github.com/abhisek/arithtrainer/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "arithtrainer",
	Short: "Timed arithmetic drills in the terminal",
	Long: "Arithtrainer generates random arithmetic problems with exact decimal answers.\n" +
		"Run without a subcommand to start the terminal game.",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ARITHTRAINER_DB env var)")
	rootCmd.PersistentFlags().String("prefs", "", "Path to preferences file (overrides ARITHTRAINER_PREFS env var)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("log-file", "", "Write logs to this file instead of stderr")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(prefsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then ARITHTRAINER_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// resolvePrefsPath returns the preferences path using --prefs, then
// ARITHTRAINER_PREFS, then the default XDG path.
func resolvePrefsPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("prefs"); p != "" {
		return p, nil
	}
	return prefs.DefaultPath()
}

// openStore resolves the database path and opens the event store.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// loadPreferences reads the preferences file. A missing file yields the
// defaults; any other problem is an error.
func loadPreferences(cmd *cobra.Command, logger *slog.Logger) (prefs.Preferences, string, error) {
	path, err := resolvePrefsPath(cmd)
	if err != nil {
		return prefs.Preferences{}, "", fmt.Errorf("resolve preferences path: %w", err)
	}
	p, err := prefs.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("no preferences file, using defaults", "path", path)
		return p, path, nil
	}
	if err != nil {
		return prefs.Preferences{}, path, err
	}
	return p, path, nil
}

// newLogger builds the process logger from --log-level and --log-file.
// When quiet is set and no log file is given, logs are discarded so they
// do not draw over the terminal UI. The returned func closes the log file.
func newLogger(cmd *cobra.Command, quiet bool) (*slog.Logger, func(), error) {
	levelName, _ := cmd.Flags().GetString("log-level")
	level, err := parseLevel(levelName)
	if err != nil {
		return nil, nil, err
	}

	var w io.Writer = cmd.ErrOrStderr()
	closeFn := func() {}
	if path, _ := cmd.Flags().GetString("log-file"); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	} else if quiet {
		w = io.Discard
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn, nil
}

func parseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return 0, fmt.Errorf("invalid --log-level %q: want debug, info, warn or error", name)
	}
	return level, nil
}
