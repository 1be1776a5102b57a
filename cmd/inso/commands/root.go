// Package commands implements the CLI commands for inso.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/inso/internal/build"
	"go.trai.ch/inso/internal/core/domain"
	"go.trai.ch/inso/internal/core/ports"
)

// CLI represents the command line interface for inso.
type CLI struct {
	app     Application
	logger  ports.Logger
	rootCmd *cobra.Command
	global  globalFlags
}

// Application represents the application logic interface.
type Application interface {
	LoadConfig(path, cwd string) (*domain.Config, error)
	RunTests(ctx context.Context, identifier string, opts domain.RunOptions) (bool, error)
}

type globalFlags struct {
	workingDir string
	appDataDir string
	config     string
	ci         bool
	verbose    bool
	logJSON    bool
}

// jsonSwitcher is implemented by loggers that can emit JSON.
type jsonSwitcher interface {
	SetJSON(enable bool)
}

// New creates a new CLI instance with the given app and logger.
func New(a Application, log ports.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "inso",
		Short:         "Run API unit tests from an Insomnia data store",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		logger:  log,
		rootCmd: rootCmd,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&c.global.workingDir, "workingDir", "w", "", "Project directory holding the .insomnia data dir")
	pf.StringVar(&c.global.appDataDir, "appDataDir", "", "Insomnia application data directory")
	pf.StringVar(&c.global.config, "config", "", "Path to the configuration file")
	pf.BoolVar(&c.global.ci, "ci", false, "Run in CI, disabling all prompts")
	pf.BoolVar(&c.global.verbose, "verbose", false, "Report every stage of the run")
	pf.BoolVar(&c.global.logJSON, "logJson", false, "Write log entries as JSON")

	rootCmd.PersistentPreRun = func(_ *cobra.Command, _ []string) {
		if j, ok := c.logger.(jsonSwitcher); ok && c.global.logJSON {
			j.SetJSON(true)
		}
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
