package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/inso/internal/app"
	"go.trai.ch/inso/internal/core/domain"
	"go.trai.ch/inso/internal/core/ports"
	"go.trai.ch/inso/internal/core/ports/mocks"
	"go.trai.ch/inso/internal/engine/dispatcher"
	"go.trai.ch/inso/internal/engine/resolver"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	configLoader *mocks.MockConfigLoader
	storeLoader  *mocks.MockStoreLoader
	prompter     *mocks.MockPrompter
	generator    *mocks.MockGenerator
	senders      *mocks.MockSenderFactory
	runner       *mocks.MockRunner
	suppressor   *mocks.MockOutputSuppressor
	logger       *mocks.MockLogger
	app          *app.App
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		configLoader: mocks.NewMockConfigLoader(ctrl),
		storeLoader:  mocks.NewMockStoreLoader(ctrl),
		prompter:     mocks.NewMockPrompter(ctrl),
		generator:    mocks.NewMockGenerator(ctrl),
		senders:      mocks.NewMockSenderFactory(ctrl),
		runner:       mocks.NewMockRunner(ctrl),
		suppressor:   mocks.NewMockOutputSuppressor(ctrl),
		logger:       mocks.NewMockLogger(ctrl),
	}
	f.suppressor.EXPECT().Suppress(gomock.Any()).DoAndReturn(func(fn func() error) error {
		return fn()
	}).AnyTimes()

	f.app = app.New(
		f.configLoader,
		f.storeLoader,
		resolver.New(f.prompter),
		f.generator,
		f.senders,
		dispatcher.New(f.runner, f.suppressor, f.logger),
		f.logger,
	)
	return f
}

func database() *domain.Database {
	return &domain.Database{
		Workspaces: []domain.Workspace{{ID: "wrk_123", Name: "W1"}},
		TestSuites: []domain.TestSuite{{ID: "uts_auth", ParentID: "wrk_123", Name: "Auth Suite"}},
		UnitTests: []domain.UnitTest{
			{ID: "ut_1", ParentID: "uts_auth", Name: "logs in", Code: "expect(1).to.equal(1);", RequestID: "req_login"},
			{ID: "ut_2", ParentID: "uts_auth", Name: "rejects", Code: "expect(true).to.be.true;"},
		},
		Environments: []domain.Environment{
			{ID: "env_base", ParentID: "wrk_123", Name: "Base"},
			{ID: "env_prod", ParentID: "env_base", Name: "Production"},
			{ID: "env_stage", ParentID: "env_base", Name: "Staging"},
		},
	}
}

var store = domain.StoreOptions{WorkingDir: "/project"}

var testFile = domain.TestFile{Name: "abc.test.js", Content: []byte("describe()")}

func TestRunTests_AuthSuiteScenario(t *testing.T) {
	f := newFixture(t)
	db := database()

	var sendCalls sync.WaitGroup
	f.storeLoader.EXPECT().Load(gomock.Any(), store).Return(db, nil)
	f.generator.EXPECT().Generate([]domain.SuitePayload{{
		Name: "Auth Suite",
		Tests: []domain.TestPayload{
			{Name: "logs in", Code: "expect(1).to.equal(1);", DefaultRequestID: "req_login"},
			{Name: "rejects", Code: "expect(true).to.be.true;"},
		},
	}}).Return(testFile, nil)

	f.senders.EXPECT().NewSender(gomock.Any(), "env_prod", db).Return(
		func(ctx context.Context, requestID string) (*domain.Response, error) {
			defer sendCalls.Done()
			_, hasDeadline := ctx.Deadline()
			assert.True(t, hasDeadline, "requests are bounded by the request timeout")
			return &domain.Response{StatusCode: 200, Data: requestID}, nil
		}, nil,
	).Times(1)

	f.runner.EXPECT().Run(gomock.Any(), testFile, gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ domain.TestFile, cfg domain.RunConfig) (bool, error) {
			assert.Equal(t, "dot", cfg.Reporter)
			assert.True(t, cfg.Bail)
			assert.Equal(t, "logs", cfg.TestFilter)
			assert.Equal(t, domain.DefaultRunnerCommand(), cfg.Command)
			assert.Equal(t, domain.DefaultRunnerTimeout, cfg.Timeout)

			sendCalls.Add(2)
			for range 2 {
				resp, err := cfg.SendRequest(ctx, "req_login")
				require.NoError(t, err)
				assert.Equal(t, "req_login", resp.Data)
			}
			return true, nil
		})

	passed, err := f.app.RunTests(context.Background(), "Auth Suite", domain.RunOptions{
		Reporter:        "dot",
		CI:              true,
		Bail:            true,
		TestNamePattern: "logs",
		Env:             "Production",
		Store:           store,
	})
	require.NoError(t, err)
	assert.True(t, passed)
	sendCalls.Wait()
}

func TestRunTests_FailingRun(t *testing.T) {
	f := newFixture(t)
	f.storeLoader.EXPECT().Load(gomock.Any(), store).Return(database(), nil)
	f.generator.EXPECT().Generate(gomock.Any()).Return(testFile, nil)
	f.runner.EXPECT().Run(gomock.Any(), testFile, gomock.Any()).Return(false, nil)

	passed, err := f.app.RunTests(context.Background(), "wrk_123", domain.RunOptions{
		CI:    true,
		Env:   "Staging",
		Store: store,
	})
	require.NoError(t, err)
	assert.False(t, passed)
}

func TestRunTests_NoSuites(t *testing.T) {
	tests := []struct {
		name       string
		identifier string
	}{
		{"unknown identifier", "Nope"},
		{"no identifier in CI", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.storeLoader.EXPECT().Load(gomock.Any(), store).Return(database(), nil)
			f.logger.EXPECT().Fatal(app.MsgNoSuites)

			passed, err := f.app.RunTests(context.Background(), tt.identifier, domain.RunOptions{CI: true, Store: store})
			require.NoError(t, err)
			assert.False(t, passed)
		})
	}
}

func TestRunTests_NoEnvironment(t *testing.T) {
	tests := []struct {
		name string
		env  string
	}{
		{"unknown name", "Missing"},
		{"several sub environments in CI", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.storeLoader.EXPECT().Load(gomock.Any(), store).Return(database(), nil)
			f.logger.EXPECT().Fatal(app.MsgNoEnvironment)

			passed, err := f.app.RunTests(context.Background(), "Auth Suite", domain.RunOptions{
				CI:    true,
				Env:   tt.env,
				Store: store,
			})
			require.NoError(t, err)
			assert.False(t, passed)
		})
	}
}

func TestRunTests_InteractiveSelection(t *testing.T) {
	f := newFixture(t)
	db := database()
	f.storeLoader.EXPECT().Load(gomock.Any(), store).Return(db, nil)
	f.prompter.EXPECT().SelectSuites(gomock.Any(), db).Return(db.TestSuites, nil)
	f.prompter.EXPECT().SelectEnvironment(gomock.Any(), gomock.Len(2)).DoAndReturn(
		func(_ context.Context, candidates []domain.Environment) (*domain.Environment, error) {
			return &candidates[1], nil
		})
	f.generator.EXPECT().Generate(gomock.Any()).Return(testFile, nil)
	f.senders.EXPECT().NewSender(gomock.Any(), "env_stage", db).Return(
		func(context.Context, string) (*domain.Response, error) { return &domain.Response{}, nil }, nil,
	)
	f.runner.EXPECT().Run(gomock.Any(), testFile, gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ domain.TestFile, cfg domain.RunConfig) (bool, error) {
			_, err := cfg.SendRequest(ctx, "req_login")
			return err == nil, err
		})

	passed, err := f.app.RunTests(context.Background(), "", domain.RunOptions{Store: store})
	require.NoError(t, err)
	assert.True(t, passed)
}

func TestRunTests_PromptAborted(t *testing.T) {
	f := newFixture(t)
	f.storeLoader.EXPECT().Load(gomock.Any(), store).Return(database(), nil)
	f.prompter.EXPECT().SelectSuites(gomock.Any(), gomock.Any()).Return(nil, domain.ErrPromptAborted)

	passed, err := f.app.RunTests(context.Background(), "", domain.RunOptions{Store: store})
	assert.False(t, passed)
	assert.ErrorContains(t, err, domain.ErrPromptAborted.Error())
}

func TestRunTests_InfrastructureErrors(t *testing.T) {
	t.Run("store cannot be read", func(t *testing.T) {
		f := newFixture(t)
		f.storeLoader.EXPECT().Load(gomock.Any(), store).Return(nil, domain.ErrDataStoreReadFailed)

		passed, err := f.app.RunTests(context.Background(), "W1", domain.RunOptions{CI: true, Store: store})
		assert.False(t, passed)
		assert.ErrorContains(t, err, "failed to load data store")
	})

	t.Run("ambiguous identifier", func(t *testing.T) {
		f := newFixture(t)
		db := database()
		db.Workspaces = append(db.Workspaces, domain.Workspace{ID: "wrk_999", Name: "W1"})
		f.storeLoader.EXPECT().Load(gomock.Any(), store).Return(db, nil)

		passed, err := f.app.RunTests(context.Background(), "W1", domain.RunOptions{CI: true, Store: store})
		assert.False(t, passed)
		assert.ErrorContains(t, err, domain.ErrAmbiguousIdentifier.Error())
	})

	t.Run("generator fails", func(t *testing.T) {
		f := newFixture(t)
		f.storeLoader.EXPECT().Load(gomock.Any(), store).Return(database(), nil)
		f.generator.EXPECT().Generate(gomock.Any()).Return(domain.TestFile{}, domain.ErrGenerateFailed)

		passed, err := f.app.RunTests(context.Background(), "W1", domain.RunOptions{
			CI:    true,
			Env:   "Production",
			Store: store,
		})
		assert.False(t, passed)
		assert.ErrorContains(t, err, "failed to generate test file")
	})
}

func TestRunTests_ExternalReporterNotFound(t *testing.T) {
	f := newFixture(t)
	f.storeLoader.EXPECT().Load(gomock.Any(), store).Return(database(), nil)
	f.generator.EXPECT().Generate(gomock.Any()).Return(testFile, nil)
	f.runner.EXPECT().Run(gomock.Any(), testFile, gomock.Any()).Return(false, domain.ErrInvalidReporter)
	f.logger.EXPECT().Fatal("The following reporter `allure` was not found!")

	passed, err := f.app.RunTests(context.Background(), "W1", domain.RunOptions{
		Reporter: "allure",
		CI:       true,
		Env:      "Production",
		Store:    store,
	})
	require.NoError(t, err)
	assert.False(t, passed)
}

func TestRunTests_SenderErrorReachesTests(t *testing.T) {
	f := newFixture(t)
	db := database()
	f.storeLoader.EXPECT().Load(gomock.Any(), store).Return(db, nil)
	f.generator.EXPECT().Generate(gomock.Any()).Return(testFile, nil)
	f.senders.EXPECT().NewSender(gomock.Any(), "env_prod", db).Return(nil, domain.ErrEnvironmentNotFound).Times(1)
	f.runner.EXPECT().Run(gomock.Any(), testFile, gomock.Any()).DoAndReturn(
		func(ctx context.Context, _ domain.TestFile, cfg domain.RunConfig) (bool, error) {
			for range 2 {
				_, err := cfg.SendRequest(ctx, "req_login")
				assert.ErrorIs(t, err, domain.ErrEnvironmentNotFound)
			}
			return false, nil
		})

	passed, err := f.app.RunTests(context.Background(), "W1", domain.RunOptions{
		CI:    true,
		Env:   "Production",
		Store: store,
	})
	require.NoError(t, err)
	assert.False(t, passed)
}

func TestRunTests_DiscoversWorkingDir(t *testing.T) {
	f := newFixture(t)
	f.configLoader.EXPECT().DiscoverRoot(gomock.Any()).Return("/discovered", nil)
	f.storeLoader.EXPECT().Load(gomock.Any(), domain.StoreOptions{WorkingDir: "/discovered"}).
		Return(nil, domain.ErrDataStoreNotFound)

	_, err := f.app.RunTests(context.Background(), "W1", domain.RunOptions{CI: true})
	assert.ErrorContains(t, err, domain.ErrDataStoreNotFound.Error())
}

func TestRunTests_ExplicitAppDataDirSkipsDiscovery(t *testing.T) {
	f := newFixture(t)
	opts := domain.StoreOptions{AppDataDir: "/appdata"}
	f.storeLoader.EXPECT().Load(gomock.Any(), opts).Return(nil, domain.ErrDataStoreNotFound)

	_, err := f.app.RunTests(context.Background(), "W1", domain.RunOptions{CI: true, Store: opts})
	assert.ErrorContains(t, err, domain.ErrDataStoreNotFound.Error())
}

func TestLoadConfig(t *testing.T) {
	t.Run("discovers from cwd", func(t *testing.T) {
		f := newFixture(t)
		cfg := domain.NewDefaultConfig()
		f.configLoader.EXPECT().Load("/work").Return(cfg, nil)

		got, err := f.app.LoadConfig("", "/work")
		require.NoError(t, err)
		assert.Same(t, cfg, got)
	})

	t.Run("explicit path wins", func(t *testing.T) {
		f := newFixture(t)
		f.configLoader.EXPECT().Load("/etc/inso.yaml").Return(domain.NewDefaultConfig(), nil)

		_, err := f.app.LoadConfig("/etc/inso.yaml", "/work")
		require.NoError(t, err)
	})

	t.Run("wraps errors", func(t *testing.T) {
		f := newFixture(t)
		f.configLoader.EXPECT().Load("/work").Return(nil, domain.ErrConfigParseFailed)

		_, err := f.app.LoadConfig("", "/work")
		assert.ErrorContains(t, err, "failed to load configuration")
	})
}

func TestRunTests_UsesLoadedConfig(t *testing.T) {
	f := newFixture(t)
	cfg := domain.NewDefaultConfig()
	cfg.Runner.Command = []string{"node_modules/.bin/mocha"}
	cfg.Runner.Timeout = time.Minute
	f.configLoader.EXPECT().Load("/work").Return(cfg, nil)

	f.storeLoader.EXPECT().Load(gomock.Any(), store).Return(database(), nil)
	f.generator.EXPECT().Generate(gomock.Any()).Return(testFile, nil)
	f.runner.EXPECT().Run(gomock.Any(), testFile, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ domain.TestFile, rc domain.RunConfig) (bool, error) {
			assert.Equal(t, []string{"node_modules/.bin/mocha"}, rc.Command)
			assert.Equal(t, time.Minute, rc.Timeout)
			return true, nil
		})

	_, err := f.app.LoadConfig("", "/work")
	require.NoError(t, err)

	passed, err := f.app.RunTests(context.Background(), "W1", domain.RunOptions{CI: true, Env: "Production", Store: store})
	require.NoError(t, err)
	assert.True(t, passed)
}

// recordingTracer records span names and the attributes set on them.
type recordingTracer struct {
	mu    sync.Mutex
	names []string
	attrs map[string]any
	errs  []error
}

func (r *recordingTracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names = append(r.names, name)

	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	for k, v := range cfg.Attributes {
		r.attrs[name+"."+k] = v
	}
	return ctx, &recordingSpan{tracer: r, name: name}
}

func (r *recordingTracer) Shutdown(context.Context) error { return nil }

type recordingSpan struct {
	tracer *recordingTracer
	name   string
}

func (s *recordingSpan) Write(p []byte) (int, error) { return len(p), nil }

func (s *recordingSpan) End() {}

func (s *recordingSpan) RecordError(err error) {
	s.tracer.mu.Lock()
	defer s.tracer.mu.Unlock()
	s.tracer.errs = append(s.tracer.errs, err)
}

func (s *recordingSpan) SetAttribute(key string, value any) {
	s.tracer.mu.Lock()
	defer s.tracer.mu.Unlock()
	s.tracer.attrs[s.name+"."+key] = value
}

func TestRunTests_ReportsStages(t *testing.T) {
	f := newFixture(t)
	tracer := &recordingTracer{attrs: make(map[string]any)}
	f.app.WithTracer(tracer)

	f.storeLoader.EXPECT().Load(gomock.Any(), store).Return(database(), nil)
	f.generator.EXPECT().Generate(gomock.Any()).Return(testFile, nil)
	f.runner.EXPECT().Run(gomock.Any(), testFile, gomock.Any()).Return(true, nil)

	passed, err := f.app.RunTests(context.Background(), "Auth Suite", domain.RunOptions{
		CI:    true,
		Env:   "Production",
		Store: store,
	})
	require.NoError(t, err)
	require.True(t, passed)

	assert.Equal(t, []string{
		"inso.run",
		string(domain.RunStateResolvingSuites),
		string(domain.RunStateResolvingEnvironment),
		string(domain.RunStateGenerating),
		string(domain.RunStateDispatching),
	}, tracer.names)
	assert.Equal(t, string(domain.RunStatePassed), tracer.attrs["inso.run.state"])
	assert.Equal(t, "Auth Suite", tracer.attrs["inso.run.identifier"])
	assert.Equal(t, domain.DefaultReporter, tracer.attrs["inso.run.reporter"])
	assert.Equal(t, false, tracer.attrs["inso.run.reporter.external"])
	assert.Equal(t, "Production", tracer.attrs["resolving-environment.environment"])
	assert.Equal(t, true, tracer.attrs["dispatching.passed"])
	assert.Empty(t, tracer.errs)
}

func TestRunTests_FailedStageIsRecorded(t *testing.T) {
	f := newFixture(t)
	tracer := &recordingTracer{attrs: make(map[string]any)}
	f.app.WithTracer(tracer)

	f.storeLoader.EXPECT().Load(gomock.Any(), store).Return(database(), nil)
	f.prompter.EXPECT().SelectSuites(gomock.Any(), gomock.Any()).Return(nil, errors.New("tty gone"))

	_, err := f.app.RunTests(context.Background(), "", domain.RunOptions{Store: store})
	require.Error(t, err)

	assert.Equal(t, string(domain.RunStateFailed), tracer.attrs["inso.run.state"])
	require.Len(t, tracer.errs, 1)
	assert.ErrorContains(t, tracer.errs[0], "tty gone")
}

func TestRunTests_TelemetryBackends(t *testing.T) {
	tests := []struct {
		name      string
		telemetry string
		verbose   bool
	}{
		{"otel", domain.TelemetryOTel, false},
		{"progrock", domain.TelemetryProgrock, false},
		{"verbose", domain.TelemetryNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
			f.logger.EXPECT().Warn(gomock.Any()).AnyTimes()

			cfg := domain.NewDefaultConfig()
			cfg.Telemetry = tt.telemetry
			f.configLoader.EXPECT().Load("/work").Return(cfg, nil)
			_, err := f.app.LoadConfig("", "/work")
			require.NoError(t, err)

			f.storeLoader.EXPECT().Load(gomock.Any(), store).Return(database(), nil)
			f.generator.EXPECT().Generate(gomock.Any()).Return(testFile, nil)
			f.runner.EXPECT().Run(gomock.Any(), testFile, gomock.Any()).Return(true, nil)

			passed, err := f.app.RunTests(context.Background(), "W1", domain.RunOptions{
				CI:      true,
				Env:     "Production",
				Store:   store,
				Verbose: tt.verbose,
			})
			require.NoError(t, err)
			assert.True(t, passed)
		})
	}
}
