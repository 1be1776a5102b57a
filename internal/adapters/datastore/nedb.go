package datastore

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.trai.ch/inso/internal/core/domain"
	"go.trai.ch/zerr"
)

// maxLineSize bounds a single NeDB record; request bodies can be large.
const maxLineSize = 16 << 20

// nedbSource reads insomnia.<Type>.db append logs.
//
// A later line for the same _id replaces the earlier one in place and a
// "$$deleted" line removes it, so the result is the compacted collection in
// first-insertion order.
type nedbSource struct {
	dir string
}

type nedbHeader struct {
	ID      string `json:"_id"`
	Deleted bool   `json:"$$deleted"`
}

func (s nedbSource) records(ctx context.Context, typ string) ([]record, error) {
	path := filepath.Join(s.dir, "insomnia."+typ+".db")
	//nolint:gosec // path is built from the configured data directory
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDataStoreReadFailed.Error()), "path", path)
	}
	defer func() { _ = f.Close() }()

	var (
		order  []string
		listed = make(map[string]struct{})
		byID   = make(map[string][]byte)
	)

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for line := 1; scanner.Scan(); line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		data := bytes.TrimSpace(scanner.Bytes())
		if len(data) == 0 {
			continue
		}

		var h nedbHeader
		if err := json.Unmarshal(data, &h); err != nil {
			err = zerr.Wrap(err, domain.ErrDataStoreParseFailed.Error())
			return nil, zerr.With(zerr.With(err, "path", path), "line", line)
		}
		if h.ID == "" {
			continue
		}

		if h.Deleted {
			delete(byID, h.ID)
			continue
		}
		if _, ok := listed[h.ID]; !ok {
			listed[h.ID] = struct{}{}
			order = append(order, h.ID)
		}
		byID[h.ID] = bytes.Clone(data)
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDataStoreReadFailed.Error()), "path", path)
	}

	out := make([]record, 0, len(byID))
	for _, id := range order {
		if data, ok := byID[id]; ok {
			out = append(out, record{path: path, data: data})
		}
	}
	return out, nil
}

func (nedbSource) decode(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
