// Package config loads .insorc files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/inso/internal/core/domain"
	"go.trai.ch/inso/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader for YAML .insorc files.
type Loader struct {
	Logger ports.Logger
}

var _ ports.ConfigLoader = (*Loader)(nil)

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load returns the configuration for path.
//
// A file path is read directly. A directory is searched upwards for the
// nearest config file; when there is none the defaults are returned.
func (l *Loader) Load(path string) (*domain.Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	configPath := path
	if info.IsDir() {
		configPath, err = findConfigFile(path)
		if err != nil {
			return nil, err
		}
		if configPath == "" {
			return domain.NewDefaultConfig(), nil
		}
	}

	return l.loadFile(configPath)
}

// DiscoverRoot walks up from cwd to the nearest directory holding a git data
// directory or a config file. It returns cwd itself when neither is found.
func (l *Loader) DiscoverRoot(cwd string) (string, error) {
	abs, err := filepath.Abs(cwd)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve working directory")
	}

	for dir := abs; ; {
		if isDir(filepath.Join(dir, domain.GitDataDirName)) {
			return dir, nil
		}
		if found, _ := configFileIn(dir); found != "" {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return abs, nil
		}
		dir = parent
	}
}

func (l *Loader) loadFile(configPath string) (*domain.Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", configPath)
	}

	defaults := domain.NewDefaultConfig()
	file := File{
		Options:   OptionsDTO{Reporter: defaults.Options.Reporter},
		Runner:    RunnerDTO{Command: defaults.Runner.Command, Timeout: defaults.Runner.Timeout},
		Request:   RequestDTO{Timeout: defaults.Request.Timeout},
		Telemetry: defaults.Telemetry,
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", configPath)
	}

	if err := validate(&file); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	l.warnUnknownKeys(configPath, data)

	return toDomain(configPath, &file), nil
}

var knownKeys = map[string]struct{}{
	"options": {}, "runner": {}, "request": {}, "telemetry": {},
}

func (l *Loader) warnUnknownKeys(configPath string, data []byte) {
	if l.Logger == nil {
		return
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return
	}

	keys := make([]string, 0, len(raw))
	for k := range raw {
		if _, ok := knownKeys[k]; !ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	for _, k := range keys {
		l.Logger.Warn(fmt.Sprintf("ignoring unknown key %q in %s", k, configPath))
	}
}

func validate(file *File) error {
	switch file.Telemetry {
	case domain.TelemetryNone, domain.TelemetryOTel, domain.TelemetryProgrock:
	case "":
		file.Telemetry = domain.TelemetryNone
	default:
		return zerr.With(domain.ErrConfigParseFailed, "telemetry", file.Telemetry)
	}

	if len(file.Runner.Command) == 0 {
		return zerr.With(domain.ErrConfigParseFailed, "runner.command", "empty")
	}
	if file.Runner.Timeout < 0 {
		return zerr.With(domain.ErrConfigParseFailed, "runner.timeout", file.Runner.Timeout.String())
	}
	if file.Request.Timeout < 0 {
		return zerr.With(domain.ErrConfigParseFailed, "request.timeout", file.Request.Timeout.String())
	}
	return nil
}

func toDomain(path string, file *File) *domain.Config {
	reporter := file.Options.Reporter
	if reporter == "" {
		reporter = domain.DefaultReporter
	}

	return &domain.Config{
		Path: path,
		Options: domain.RunDefaults{
			CI:         file.Options.CI,
			Reporter:   reporter,
			Env:        file.Options.Env,
			Bail:       file.Options.Bail,
			KeepFile:   file.Options.KeepFile,
			WorkingDir: resolveRelative(path, file.Options.WorkingDir),
			AppDataDir: resolveRelative(path, file.Options.AppDataDir),
			Verbose:    file.Options.Verbose,
		},
		Runner: domain.RunnerConfig{
			Command: file.Runner.Command,
			Timeout: file.Runner.Timeout,
		},
		Request:   domain.RequestConfig{Timeout: file.Request.Timeout},
		Telemetry: file.Telemetry,
	}
}

// resolveRelative anchors a relative directory at the config file's directory.
func resolveRelative(configPath, dir string) string {
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(filepath.Dir(configPath), dir)
}

func findConfigFile(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", zerr.Wrap(err, "failed to resolve config search directory")
	}

	for {
		found, err := configFileIn(dir)
		if err != nil || found != "" {
			return found, err
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

func configFileIn(dir string) (string, error) {
	for _, name := range domain.ConfigFileNames {
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		switch {
		case err == nil && !info.IsDir():
			return candidate, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return "", zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", candidate)
		}
	}
	return "", nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
