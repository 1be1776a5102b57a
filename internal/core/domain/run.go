package domain

import (
	"context"
	"net/http"
	"time"
)

// StoreOptions locates the data store to load.
type StoreOptions struct {
	// WorkingDir is searched for a git data directory (.insomnia).
	WorkingDir string
	// AppDataDir points at an application data directory holding NeDB files.
	AppDataDir string
}

// RunOptions configures a single invocation. It is built once at entry and never mutated.
type RunOptions struct {
	Reporter        string
	CI              bool
	Bail            bool
	KeepFile        bool
	TestNamePattern string
	Env             string
	Store           StoreOptions
	// Verbose reports pipeline stages through the logger.
	Verbose bool
}

// ReporterOrDefault returns the requested reporter, or DefaultReporter when unset.
func (o RunOptions) ReporterOrDefault() string {
	if o.Reporter == "" {
		return DefaultReporter
	}
	return o.Reporter
}

// Response is what a sent request returns to the test code.
type Response struct {
	StatusCode    int           `json:"status"`
	StatusMessage string        `json:"statusMessage"`
	Headers       http.Header   `json:"headers"`
	Data          string        `json:"data"`
	ResponseTime  time.Duration `json:"responseTime"`
}

// SendRequestFunc sends the stored request with the given id using the
// environment it was bound to.
type SendRequestFunc func(ctx context.Context, requestID string) (*Response, error)

// RunConfig is the final configuration handed to the runner.
type RunConfig struct {
	Reporter    string
	Bail        bool
	KeepFile    bool
	SendRequest SendRequestFunc
	TestFilter  string

	// Command is the runner invocation; the default runner command when empty.
	Command []string
	// Timeout bounds the runner process; zero means no limit.
	Timeout time.Duration
}

// TestPayload is one unit test as seen by the generator.
type TestPayload struct {
	Name             string
	Code             string
	DefaultRequestID string
}

// SuitePayload is one suite with its ordered tests as seen by the generator.
type SuitePayload struct {
	Name  string
	Tests []TestPayload
}

// TestFile is the generated, executable test artifact of a single run.
type TestFile struct {
	// Name is derived from the content, so identical inputs produce identical names.
	Name    string
	Content []byte
}
