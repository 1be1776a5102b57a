// Package shell runs generated test files with an external mocha-compatible command.
package shell

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/acarl005/stripansi"
	"github.com/google/uuid"
	"go.trai.ch/inso/internal/adapters/sender"
	"go.trai.ch/inso/internal/core/domain"
	"go.trai.ch/inso/internal/core/ports"
	"go.trai.ch/zerr"
)

//go:embed harness.js
var harness []byte

const (
	harnessFileName = "harness.js"
	// captureLimit is how much trailing runner output is kept for classification.
	captureLimit = 64 << 10
	// bridgeShutdownTimeout bounds waiting for in-flight bridge requests.
	bridgeShutdownTimeout = 5 * time.Second
	// waitDelay bounds waiting for output after the runner exits or is killed.
	waitDelay = 2 * time.Second
)

// invalidReporterMarkers are what mocha prints when it cannot load a reporter.
var invalidReporterMarkers = []string{"invalid reporter", "Unable to find reporter"}

// Runner implements ports.Runner by executing a mocha-compatible command.
type Runner struct {
	logger  ports.Logger
	stdout  io.Writer
	stderr  io.Writer
	tempDir string
}

var _ ports.Runner = (*Runner)(nil)

// NewRunner creates a Runner streaming child output to the process's stdout and stderr.
// The writers are captured here, so a later swap of os.Stdout does not hide reporter output.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{
		logger: logger,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// WithOutput redirects the child's stdout and stderr.
func (r *Runner) WithOutput(stdout, stderr io.Writer) *Runner {
	r.stdout = stdout
	r.stderr = stderr
	return r
}

// WithTempDir sets the parent directory for per-run directories.
func (r *Runner) WithTempDir(dir string) *Runner {
	r.tempDir = dir
	return r
}

// Run writes file next to the harness prelude and executes it.
// A non-zero exit is a failed run, not an error.
func (r *Runner) Run(ctx context.Context, file domain.TestFile, cfg domain.RunConfig) (bool, error) {
	runID := uuid.NewString()

	runDir, err := r.prepare(runID, file)
	if err != nil {
		return false, err
	}
	if cfg.KeepFile {
		r.logger.Info("Test file: " + filepath.Join(runDir, file.Name))
	} else {
		defer func() { _ = os.RemoveAll(runDir) }()
	}

	overrides := map[string]string{"INSO_RUN_ID": runID}
	if !domain.IsExternalReporter(cfg.Reporter) {
		overrides["INSO_SUPPRESS_CONSOLE"] = "1"
	}
	if cwd, err := os.Getwd(); err == nil {
		overrides["NODE_PATH"] = filepath.Join(cwd, "node_modules")
	}

	if cfg.SendRequest != nil {
		bridge := sender.NewBridge(cfg.SendRequest)
		url, err := bridge.Start()
		if err != nil {
			return false, zerr.Wrap(err, domain.ErrRunnerFailed.Error())
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), bridgeShutdownTimeout)
			defer cancel()
			_ = bridge.Close(shutdownCtx)
		}()
		overrides[sender.BridgeURLEnv] = url
	}

	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	command := cfg.Command
	if len(command) == 0 {
		command = domain.DefaultRunnerCommand()
	}
	args := append(command[1:len(command):len(command)], mochaArgs(runDir, file.Name, cfg)...)

	return r.exec(ctx, command[0], args, resolveEnvironment(os.Environ(), overrides), cfg.Reporter)
}

func (r *Runner) prepare(runID string, file domain.TestFile) (string, error) {
	base := r.tempDir
	if base == "" {
		base = os.TempDir()
	}

	runDir := filepath.Join(base, "inso-"+runID)
	if err := os.MkdirAll(runDir, 0o750); err != nil {
		return "", zerr.Wrap(err, domain.ErrRunnerFailed.Error())
	}

	files := map[string][]byte{
		harnessFileName: harness,
		file.Name:       file.Content,
	}
	for name, content := range files {
		//nolint:gosec // test files must be readable by the runner process
		if err := os.WriteFile(filepath.Join(runDir, name), content, 0o644); err != nil {
			_ = os.RemoveAll(runDir)
			return "", zerr.With(zerr.Wrap(err, domain.ErrRunnerFailed.Error()), "file", name)
		}
	}
	return runDir, nil
}

func mochaArgs(runDir, fileName string, cfg domain.RunConfig) []string {
	reporter := cfg.Reporter
	if reporter == "" {
		reporter = domain.DefaultReporter
	}

	args := []string{
		"--require", filepath.Join(runDir, harnessFileName),
		"--reporter", reporter,
	}
	if cfg.Bail {
		args = append(args, "--bail")
	}
	if cfg.TestFilter != "" {
		args = append(args, "--grep", cfg.TestFilter)
	}
	return append(args, filepath.Join(runDir, fileName))
}

func (r *Runner) exec(ctx context.Context, name string, args, env []string, reporter string) (bool, error) {
	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, env); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // user configured command
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}
	cmd.Env = env
	cmd.WaitDelay = waitDelay

	tail := &tailBuffer{limit: captureLimit}
	cmd.Stdout = io.MultiWriter(r.stdout, tail)
	cmd.Stderr = io.MultiWriter(r.stderr, tail)

	err := cmd.Run()
	if err == nil {
		return true, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return false, zerr.With(zerr.Wrap(ctxErr, domain.ErrRunnerFailed.Error()), "command", name)
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false, zerr.With(zerr.Wrap(err, domain.ErrRunnerFailed.Error()), "command", name)
	}

	output := stripansi.Strip(tail.String())
	for _, marker := range invalidReporterMarkers {
		if strings.Contains(output, marker) {
			return false, zerr.With(zerr.Wrap(domain.ErrInvalidReporter, "runner rejected reporter"), "reporter", reporter)
		}
	}
	return false, nil
}

// tailBuffer keeps the last limit bytes written to it. Safe for concurrent writers.
type tailBuffer struct {
	mu    sync.Mutex
	limit int
	buf   bytes.Buffer
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	n := len(p)
	if len(p) > t.limit {
		p = p[len(p)-t.limit:]
	}
	if over := t.buf.Len() + len(p) - t.limit; over > 0 {
		t.buf.Next(over)
	}
	t.buf.Write(p)
	return n, nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.buf.String()
}
