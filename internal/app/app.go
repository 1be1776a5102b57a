// Package app implements the application layer for inso.
package app

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.trai.ch/inso/internal/adapters/telemetry"          //nolint:depguard // Wired in app layer
	"go.trai.ch/inso/internal/adapters/telemetry/progrock" //nolint:depguard // Wired in app layer
	"go.trai.ch/inso/internal/core/domain"
	"go.trai.ch/inso/internal/core/ports"
	"go.trai.ch/inso/internal/engine/dispatcher"
	"go.trai.ch/inso/internal/engine/resolver"
	"go.trai.ch/zerr"
)

// Fatal messages reported when a run cannot start.
const (
	MsgNoSuites      = "No test suites found; cannot run tests."
	MsgNoEnvironment = "No environment identified; cannot run tests without a valid environment."
)

const tracerName = "inso"

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	storeLoader  ports.StoreLoader
	resolver     *resolver.Resolver
	generator    ports.Generator
	senders      ports.SenderFactory
	dispatcher   *dispatcher.Dispatcher
	logger       ports.Logger

	config *domain.Config
	tracer ports.Tracer
}

// New creates a new App instance.
func New(
	configLoader ports.ConfigLoader,
	storeLoader ports.StoreLoader,
	res *resolver.Resolver,
	gen ports.Generator,
	senders ports.SenderFactory,
	disp *dispatcher.Dispatcher,
	log ports.Logger,
) *App {
	return &App{
		configLoader: configLoader,
		storeLoader:  storeLoader,
		resolver:     res,
		generator:    gen,
		senders:      senders,
		dispatcher:   disp,
		logger:       log,
	}
}

// WithTracer fixes the tracer instead of deriving it from the configuration.
// This is primarily used for testing.
func (a *App) WithTracer(t ports.Tracer) *App {
	a.tracer = t
	return a
}

// LoadConfig reads the config file at path, or the nearest one above cwd when
// path is empty, and keeps it for subsequent runs.
func (a *App) LoadConfig(path, cwd string) (*domain.Config, error) {
	target := path
	if target == "" {
		target = cwd
	}

	cfg, err := a.configLoader.Load(target)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}
	a.config = cfg
	return cfg, nil
}

// RunTests resolves the suites and environment identifier stands for, generates
// the test file and dispatches it. It reports whether every test passed.
//
// A run that cannot start for lack of suites or an environment logs a fatal
// message and returns false with a nil error. Errors are reserved for failures
// of the data store, the prompt or the generator.
//
//nolint:cyclop,funlen // orchestration function
func (a *App) RunTests(ctx context.Context, identifier string, opts domain.RunOptions) (bool, error) {
	cfg := a.config
	if cfg == nil {
		cfg = domain.NewDefaultConfig()
	}

	tracer := a.newTracer(cfg, opts)
	defer func() {
		_ = tracer.Shutdown(context.WithoutCancel(ctx))
	}()

	ctx, span := tracer.Start(ctx, "inso.run",
		ports.WithAttribute("run.id", uuid.NewString()),
		ports.WithAttribute("identifier", identifier),
		ports.WithAttribute("reporter", opts.ReporterOrDefault()),
		ports.WithAttribute("reporter.external", domain.IsExternalReporter(opts.Reporter)),
		ports.WithAttribute("ci", opts.CI),
	)
	defer span.End()

	state := domain.RunStateIdle
	defer func() {
		span.SetAttribute("state", string(state))
	}()

	storeOpts, err := a.storeOptions(opts.Store)
	if err != nil {
		span.RecordError(err)
		return false, err
	}

	db, err := a.storeLoader.Load(ctx, storeOpts)
	if err != nil {
		span.RecordError(err)
		return false, zerr.Wrap(err, "failed to load data store")
	}

	state = domain.RunStateResolvingSuites
	var suites []domain.TestSuite
	err = stage(ctx, tracer, state, func(ctx context.Context, s ports.Span) error {
		var err error
		suites, err = a.resolver.ResolveSuites(ctx, db, identifier, opts.CI)
		_, _ = fmt.Fprintf(s, "resolved %d suites\n", len(suites))
		return err
	})
	if err != nil {
		state = domain.RunStateFailed
		return false, err
	}
	if len(suites) == 0 {
		state = domain.RunStateFailed
		a.logger.Fatal(MsgNoSuites)
		return false, nil
	}

	state = domain.RunStateResolvingEnvironment
	var env *domain.Environment
	err = stage(ctx, tracer, state, func(ctx context.Context, s ports.Span) error {
		var err error
		env, err = a.resolver.ResolveEnvironment(ctx, db, suites[0].ParentID, opts.Env, opts.CI)
		if env != nil {
			s.SetAttribute("environment", env.Name)
		}
		return err
	})
	if err != nil {
		state = domain.RunStateFailed
		return false, err
	}
	if env == nil {
		state = domain.RunStateFailed
		a.logger.Fatal(MsgNoEnvironment)
		return false, nil
	}

	state = domain.RunStateGenerating
	var file domain.TestFile
	err = stage(ctx, tracer, state, func(_ context.Context, s ports.Span) error {
		var err error
		file, err = a.generator.Generate(resolver.Payloads(db, suites))
		_, _ = fmt.Fprintf(s, "generated %s (%d bytes)\n", file.Name, len(file.Content))
		return err
	})
	if err != nil {
		state = domain.RunStateFailed
		return false, zerr.Wrap(err, "failed to generate test file")
	}

	state = domain.RunStateDispatching
	var passed bool
	_ = stage(ctx, tracer, state, func(ctx context.Context, s ports.Span) error {
		passed = a.dispatcher.Dispatch(ctx, file, domain.RunConfig{
			Reporter:    opts.Reporter,
			Bail:        opts.Bail,
			KeepFile:    opts.KeepFile,
			SendRequest: a.lazySender(env.ID, db, cfg.Request.Timeout),
			TestFilter:  opts.TestNamePattern,
			Command:     cfg.Runner.Command,
			Timeout:     cfg.Runner.Timeout,
		})
		s.SetAttribute("passed", passed)
		return nil
	})

	state = domain.ResultState(passed)
	return passed, nil
}

// storeOptions fills in the working directory from the project root when unset.
func (a *App) storeOptions(opts domain.StoreOptions) (domain.StoreOptions, error) {
	if opts.WorkingDir != "" || opts.AppDataDir != "" {
		return opts, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return opts, zerr.Wrap(err, "failed to get working directory")
	}
	root, err := a.configLoader.DiscoverRoot(cwd)
	if err != nil {
		return opts, zerr.Wrap(err, "failed to discover project root")
	}
	opts.WorkingDir = root
	return opts, nil
}

// lazySender binds the request sender on first use, so runs whose tests never
// send a request do not pay for it. Each request is bounded by timeout.
func (a *App) lazySender(envID string, db *domain.Database, timeout time.Duration) domain.SendRequestFunc {
	var (
		once sync.Once
		send domain.SendRequestFunc
		err  error
	)

	return func(ctx context.Context, requestID string) (*domain.Response, error) {
		once.Do(func() {
			send, err = a.senders.NewSender(ctx, envID, db)
		})
		if err != nil {
			return nil, err
		}

		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		return send(ctx, requestID)
	}
}

// newTracer selects the telemetry backend. Verbose runs always report stages
// through the logger.
func (a *App) newTracer(cfg *domain.Config, opts domain.RunOptions) ports.Tracer {
	if a.tracer != nil {
		return a.tracer
	}

	switch {
	case cfg.Telemetry == domain.TelemetryProgrock:
		return progrock.New(a.logger)
	case opts.Verbose:
		return telemetry.NewOTelTracer(tracerName, telemetry.NewLogBridge(a.logger)).WithLogger(a.logger)
	case cfg.Telemetry == domain.TelemetryOTel:
		return telemetry.NewOTelTracer(tracerName, telemetry.NewLogBridge(a.logger))
	default:
		return telemetry.NewNoOpTracer()
	}
}

// stage runs fn inside a span named after state, recording its error.
func stage(
	ctx context.Context,
	tracer ports.Tracer,
	state domain.RunState,
	fn func(context.Context, ports.Span) error,
) error {
	ctx, span := tracer.Start(ctx, string(state))
	defer span.End()

	if err := fn(ctx, span); err != nil {
		span.RecordError(err)
		return err
	}
	return nil
}
