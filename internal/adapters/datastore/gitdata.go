package datastore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/inso/internal/core/domain"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// gitSource reads .insomnia/<Type>/*.yml files in file name order.
type gitSource struct {
	dir string
}

func (s gitSource) records(ctx context.Context, typ string) ([]record, error) {
	typeDir := filepath.Join(s.dir, typ)
	entries, err := os.ReadDir(typeDir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDataStoreReadFailed.Error()), "path", typeDir)
	}

	out := make([]record, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !isYAML(entry.Name()) {
			continue
		}

		path := filepath.Join(typeDir, entry.Name())
		//nolint:gosec // path is built from a directory listing
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, domain.ErrDataStoreReadFailed.Error()), "path", path)
		}
		out = append(out, record{path: path, data: data})
	}
	return out, nil
}

func (gitSource) decode(data []byte, v any) error {
	return yaml.Unmarshal(data, v)
}

func isYAML(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yml" || ext == ".yaml"
}
