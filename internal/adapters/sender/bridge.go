package sender

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.trai.ch/inso/internal/core/domain"
	"go.trai.ch/zerr"
)

// BridgeURLEnv names the variable through which a child process finds the bridge.
const BridgeURLEnv = "INSO_BRIDGE_URL"

// Bridge exposes a SendRequestFunc to a child process over loopback HTTP.
type Bridge struct {
	send   domain.SendRequestFunc
	server *http.Server
	url    string
}

// wireResponse is the JSON shape test code receives.
type wireResponse struct {
	Status        int                 `json:"status"`
	StatusMessage string              `json:"statusMessage"`
	Headers       map[string][]string `json:"headers"`
	Data          string              `json:"data"`
	ResponseTime  float64             `json:"responseTime"`
}

type wireError struct {
	Error string `json:"error"`
}

// NewBridge creates a Bridge for send.
func NewBridge(send domain.SendRequestFunc) *Bridge {
	return &Bridge{send: send}
}

// Handler returns the bridge's router.
func (b *Bridge) Handler() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/send-request/{requestID}", b.handleSend).Methods(http.MethodPost)
	return r
}

// Start listens on an ephemeral loopback port and returns the base URL.
func (b *Bridge) Start() (string, error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", zerr.Wrap(err, "failed to start request bridge")
	}

	b.server = &http.Server{
		Handler:           b.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	b.url = "http://" + ln.Addr().String()

	go func() { _ = b.server.Serve(ln) }()
	return b.url, nil
}

// URL returns the base URL after Start.
func (b *Bridge) URL() string {
	return b.url
}

// Close stops the bridge, waiting for in-flight requests until ctx ends.
func (b *Bridge) Close(ctx context.Context) error {
	if b.server == nil {
		return nil
	}
	if err := b.server.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return zerr.Wrap(err, "failed to stop request bridge")
	}
	return nil
}

func (b *Bridge) handleSend(w http.ResponseWriter, r *http.Request) {
	requestID := mux.Vars(r)["requestID"]

	resp, err := b.send(r.Context(), requestID)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, domain.ErrRequestNotFound) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, wireError{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, wireResponse{
		Status:        resp.StatusCode,
		StatusMessage: resp.StatusMessage,
		Headers:       resp.Headers,
		Data:          resp.Data,
		ResponseTime:  float64(resp.ResponseTime) / float64(time.Millisecond),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
