package config

import "time"

// File is the on-disk shape of an .insorc file.
type File struct {
	Options   OptionsDTO `yaml:"options"`
	Runner    RunnerDTO  `yaml:"runner"`
	Request   RequestDTO `yaml:"request"`
	Telemetry string     `yaml:"telemetry"`
}

// OptionsDTO holds run option defaults.
type OptionsDTO struct {
	CI         bool   `yaml:"ci"`
	Reporter   string `yaml:"reporter"`
	Env        string `yaml:"env"`
	Bail       bool   `yaml:"bail"`
	KeepFile   bool   `yaml:"keepFile"`
	WorkingDir string `yaml:"workingDir"`
	AppDataDir string `yaml:"appDataDir"`
	Verbose    bool   `yaml:"verbose"`
}

// RunnerDTO configures the runner process.
type RunnerDTO struct {
	Command []string      `yaml:"command"`
	Timeout time.Duration `yaml:"timeout"`
}

// RequestDTO configures sent requests.
type RequestDTO struct {
	Timeout time.Duration `yaml:"timeout"`
}
