// Package datastore loads a read-only snapshot of test records from disk.
//
// Two layouts are understood: a git data directory (.insomnia/<Type>/*.yml,
// one YAML record per file) and an application data directory
// (insomnia.<Type>.db, NeDB append logs of JSON lines).
package datastore

import (
	"context"
	"os"
	"path/filepath"

	"go.trai.ch/inso/internal/core/domain"
	"go.trai.ch/inso/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Loader implements ports.StoreLoader.
type Loader struct {
	logger ports.Logger
	// defaultAppDataDir returns the platform application data directory.
	defaultAppDataDir func() (string, error)
}

var _ ports.StoreLoader = (*Loader)(nil)

// NewLoader creates a Loader.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{logger: logger, defaultAppDataDir: DefaultAppDataDir}
}

// DefaultAppDataDir is where the desktop application keeps its NeDB files.
func DefaultAppDataDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", zerr.Wrap(err, "failed to locate user config directory")
	}
	return filepath.Join(dir, "Insomnia"), nil
}

// source reads the raw records of one type and knows their encoding.
type source interface {
	records(ctx context.Context, typ string) ([]record, error)
	decode(data []byte, v any) error
}

// record is one undecoded record and the file it came from.
type record struct {
	path string
	data []byte
}

// Load picks a data store for opts and reads every record kind from it.
//
// An explicit AppDataDir wins. Otherwise a git data directory under
// WorkingDir is used, then the default application data directory.
func (l *Loader) Load(ctx context.Context, opts domain.StoreOptions) (*domain.Database, error) {
	src, err := l.locate(opts)
	if err != nil {
		return nil, err
	}

	db := &domain.Database{}
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		db.Workspaces, err = loadKind[domain.Workspace](ctx, src, domain.TypeWorkspace)
		return err
	})
	g.Go(func() (err error) {
		db.APISpecs, err = loadKind[domain.APISpec](ctx, src, domain.TypeAPISpec)
		return err
	})
	g.Go(func() (err error) {
		db.TestSuites, err = loadKind[domain.TestSuite](ctx, src, domain.TypeUnitTestSuite)
		return err
	})
	g.Go(func() (err error) {
		db.UnitTests, err = loadKind[domain.UnitTest](ctx, src, domain.TypeUnitTest)
		return err
	})
	g.Go(func() (err error) {
		db.Environments, err = loadKind[domain.Environment](ctx, src, domain.TypeEnvironment)
		return err
	})
	g.Go(func() (err error) {
		db.Requests, err = loadKind[domain.Request](ctx, src, domain.TypeRequest)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return db, nil
}

func (l *Loader) locate(opts domain.StoreOptions) (source, error) {
	if opts.AppDataDir != "" {
		if !isDir(opts.AppDataDir) {
			return nil, zerr.With(domain.ErrDataStoreNotFound, "app_data_dir", opts.AppDataDir)
		}
		return nedbSource{dir: opts.AppDataDir}, nil
	}

	workingDir := opts.WorkingDir
	if workingDir == "" {
		workingDir = "."
	}
	gitDir := filepath.Join(workingDir, domain.GitDataDirName)
	if isDir(gitDir) {
		return gitSource{dir: gitDir}, nil
	}

	fallback, err := l.defaultAppDataDir()
	if err == nil && isDir(fallback) {
		l.logger.Info("no " + domain.GitDataDirName + " directory in " + workingDir + ", using " + fallback)
		return nedbSource{dir: fallback}, nil
	}

	return nil, zerr.With(domain.ErrDataStoreNotFound, "working_dir", workingDir)
}

func loadKind[T any](ctx context.Context, src source, typ string) ([]T, error) {
	raw, err := src.records(ctx, typ)
	if err != nil {
		return nil, zerr.With(err, "type", typ)
	}

	out := make([]T, 0, len(raw))
	for _, r := range raw {
		var v T
		if err := src.decode(r.data, &v); err != nil {
			err = zerr.Wrap(err, domain.ErrDataStoreParseFailed.Error())
			return nil, zerr.With(zerr.With(err, "type", typ), "path", r.path)
		}
		out = append(out, v)
	}
	return out, nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
