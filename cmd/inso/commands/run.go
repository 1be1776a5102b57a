package commands

import (
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/inso/internal/adapters/detector"
	"go.trai.ch/inso/internal/core/domain"
	"go.trai.ch/zerr"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Execution utilities",
	}
	cmd.AddCommand(c.newRunTestCmd())
	return cmd
}

func (c *CLI) newRunTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test [identifier]",
		Short: "Run Insomnia unit test suites",
		Long: "Run the unit test suites of a workspace, API spec or single suite, " +
			"identified by name or id. Without an identifier you are asked to choose.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cwd, err := os.Getwd()
			if err != nil {
				return zerr.Wrap(err, "failed to get working directory")
			}

			cfg, err := c.app.LoadConfig(c.global.config, cwd)
			if err != nil {
				return err
			}

			var identifier string
			if len(args) == 1 {
				identifier = args[0]
			}

			passed, err := c.app.RunTests(cmd.Context(), identifier, c.runOptions(cmd, cfg.Options))
			if err != nil {
				return err
			}
			if !passed {
				return domain.ErrTestsFailed
			}
			return nil
		},
	}

	cmd.Flags().StringP("env", "e", "", "Environment to use")
	cmd.Flags().StringP("reporter", "r", domain.DefaultReporter,
		"Reporter to use: dot, list, spec, min, progress, or an external reporter")
	cmd.Flags().BoolP("bail", "b", false, "Abort after the first test failure")
	cmd.Flags().Bool("keepFile", false, "Do not delete the generated test file")
	cmd.Flags().StringP("testNamePattern", "t", "", "Run only tests whose names match the regex")
	return cmd
}

// runOptions merges flags over the config file defaults. A flag only wins when set explicitly.
func (c *CLI) runOptions(cmd *cobra.Command, defaults domain.RunDefaults) domain.RunOptions {
	pattern, _ := cmd.Flags().GetString("testNamePattern")

	return domain.RunOptions{
		Reporter:        stringFlag(cmd, "reporter", defaults.Reporter),
		CI:              detector.ResolveCI(boolFlag(cmd, "ci", defaults.CI)),
		Bail:            boolFlag(cmd, "bail", defaults.Bail),
		KeepFile:        boolFlag(cmd, "keepFile", defaults.KeepFile),
		TestNamePattern: pattern,
		Env:             stringFlag(cmd, "env", defaults.Env),
		Store: domain.StoreOptions{
			WorkingDir: stringFlag(cmd, "workingDir", defaults.WorkingDir),
			AppDataDir: stringFlag(cmd, "appDataDir", defaults.AppDataDir),
		},
		Verbose: boolFlag(cmd, "verbose", defaults.Verbose),
	}
}

func stringFlag(cmd *cobra.Command, name, fallback string) string {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	v, _ := cmd.Flags().GetString(name)
	return v
}

func boolFlag(cmd *cobra.Command, name string, fallback bool) bool {
	if !cmd.Flags().Changed(name) {
		return fallback
	}
	v, _ := cmd.Flags().GetBool(name)
	return v
}
