// Package sender sends stored requests on behalf of running tests.
package sender

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"go.trai.ch/inso/internal/core/domain"
	"go.trai.ch/inso/internal/core/ports"
	"go.trai.ch/zerr"
)

// maxResponseSize bounds the response body handed back to tests.
const maxResponseSize = 32 << 20

// Factory implements ports.SenderFactory over net/http.
type Factory struct {
	client *http.Client
}

var _ ports.SenderFactory = (*Factory)(nil)

// NewFactory creates a Factory. A nil client means http.DefaultClient.
func NewFactory(client *http.Client) *Factory {
	if client == nil {
		client = http.DefaultClient
	}
	return &Factory{client: client}
}

// NewSender binds the stored requests of db to the environment environmentID.
// The returned function only reads db and is safe for concurrent use.
func (f *Factory) NewSender(
	_ context.Context,
	environmentID string,
	db *domain.Database,
) (domain.SendRequestFunc, error) {
	env := db.EnvironmentByID(environmentID)
	if env == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrEnvironmentNotFound, "cannot bind sender"), "environment_id", environmentID)
	}
	vars := variables(db, env)

	return func(ctx context.Context, requestID string) (*domain.Response, error) {
		req := db.RequestByID(requestID)
		if req == nil {
			return nil, zerr.With(zerr.Wrap(domain.ErrRequestNotFound, "cannot send request"), "request_id", requestID)
		}
		return f.send(ctx, req, vars)
	}, nil
}

func (f *Factory) send(ctx context.Context, stored *domain.Request, vars map[string]any) (*domain.Response, error) {
	method := strings.ToUpper(stored.Method)
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if stored.Body.Text != "" {
		body = strings.NewReader(render(stored.Body.Text, vars))
	}

	url := render(stored.URL, vars)
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRequestFailed.Error()), "url", url)
	}

	for _, h := range stored.Headers {
		if h.Disabled || h.Name == "" {
			continue
		}
		req.Header.Add(render(h.Name, vars), render(h.Value, vars))
	}
	if stored.Body.MimeType != "" && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", stored.Body.MimeType)
	}

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.With(zerr.Wrap(err, domain.ErrRequestFailed.Error()), "request_id", stored.ID), "url", url)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRequestFailed.Error()), "request_id", stored.ID)
	}

	return &domain.Response{
		StatusCode:    resp.StatusCode,
		StatusMessage: statusMessage(resp),
		Headers:       resp.Header,
		Data:          string(data),
		ResponseTime:  time.Since(start),
	}, nil
}

// statusMessage returns the reason phrase of resp, e.g. "Not Found".
func statusMessage(resp *http.Response) string {
	if _, reason, ok := strings.Cut(resp.Status, " "); ok {
		return reason
	}
	return http.StatusText(resp.StatusCode)
}
