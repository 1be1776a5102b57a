package domain

import "time"

// Telemetry backends selectable in the config file.
const (
	TelemetryNone     = "none"
	TelemetryOTel     = "otel"
	TelemetryProgrock = "progrock"
)

// Default values applied when the config file leaves a field unset.
const (
	DefaultRunnerTimeout  = 10 * time.Minute
	DefaultRequestTimeout = 30 * time.Second
)

// Config file names, in lookup order.
var ConfigFileNames = []string{".insorc.yaml", ".insorc.yml", ".insorc"}

// GitDataDirName is the directory holding a git-synced data store.
const GitDataDirName = ".insomnia"

// DefaultRunnerCommand is the mocha-compatible command used when none is configured.
func DefaultRunnerCommand() []string {
	return []string{"npx", "mocha"}
}

// Config is the resolved content of an .insorc file.
type Config struct {
	// Path is the file the config was read from; empty when defaults are used.
	Path string

	Options   RunDefaults
	Runner    RunnerConfig
	Request   RequestConfig
	Telemetry string
}

// RunDefaults are option defaults that command line flags override.
type RunDefaults struct {
	CI         bool
	Reporter   string
	Env        string
	Bail       bool
	KeepFile   bool
	WorkingDir string
	AppDataDir string
	Verbose    bool
}

// RunnerConfig configures the external test runner process.
type RunnerConfig struct {
	Command []string
	Timeout time.Duration
}

// RequestConfig configures requests sent on behalf of tests.
type RequestConfig struct {
	Timeout time.Duration
}

// NewDefaultConfig returns the configuration used when no config file exists.
func NewDefaultConfig() *Config {
	return &Config{
		Options: RunDefaults{Reporter: DefaultReporter},
		Runner: RunnerConfig{
			Command: DefaultRunnerCommand(),
			Timeout: DefaultRunnerTimeout,
		},
		Request:   RequestConfig{Timeout: DefaultRequestTimeout},
		Telemetry: TelemetryNone,
	}
}
