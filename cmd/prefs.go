package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/arithtrainer/internal/prefs"
)

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Manage the preferences file",
}

var prefsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default preferences file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolvePrefsPath(cmd)
		if err != nil {
			return err
		}
		force, _ := cmd.Flags().GetBool("force")
		if _, err := os.Stat(path); err == nil && !force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := prefs.Save(path, prefs.Default()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Wrote", path)
		return nil
	},
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, closeLog, err := newLogger(cmd, false)
		if err != nil {
			return err
		}
		defer closeLog()

		p, _, err := loadPreferences(cmd, logger)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(p, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change one preference and save the file",
	Long: `Change one preference and save the file. Numbers are clamped to the
range the setting allows; a missing file starts from the defaults.

Keys:
  mode                          range or sigfigs
  game_time                     round length in seconds
  toggles.<name>                flash_incorrect, show_correct, show_problem_text
  ops.<op>                      add, sub, mul, div (on/off)
  weights.<op>                  selection weight
  max_solution_sigfigs.<op>     answer sig fig cap
  ranges.<pair>.lo|hi           pair is add_A, add_B, mul_X, mul_Y
  sigfigs.<pair>.lo|hi          pair is A_sig, A_exp, B_sig, B_exp`,
	Args: cobra.ExactArgs(2),
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
		if err := p.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := prefs.Save(path, p); err != nil {
			return err
		}
		v, _ := p.Get(args[0])
		logger.Info("preference changed", "key", args[0], "value", v, "path", path)
		fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", args[0], v)
		return nil
	},
}

var prefsPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the preferences file path",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := resolvePrefsPath(cmd)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	prefsInitCmd.Flags().Bool("force", false, "Overwrite an existing file")

	prefsCmd.AddCommand(prefsInitCmd)
	prefsCmd.AddCommand(prefsShowCmd)
	prefsCmd.AddCommand(prefsSetCmd)
	prefsCmd.AddCommand(prefsPathCmd)
}
