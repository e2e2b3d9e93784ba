// Package http implements the HTTP transport for mentorvoice.
//
// This transport mounts every function at <path_prefix>/<name>, the same
// paths the front-end calls, and serves the OpenAPI docs through Swagger UI.
// Functions see every method so they can answer CORS preflight and 405
// themselves.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/RyanJHamby/MentorshipVoiceCloner/internal/docs"
	"github.com/RyanJHamby/MentorshipVoiceCloner/internal/message"
	"github.com/RyanJHamby/MentorshipVoiceCloner/internal/transport"
)

const (
	requestIDHeader = "X-Request-ID"
	maxBodyBytes    = 25 << 20 // 25 MB, several recorded samples as base64
)

// Transport implements transport.Transport over HTTP.
type Transport struct {
	port         int
	pathPrefix   string
	errorHeaders map[string]string

	mu     sync.Mutex
	server *http.Server
}

// Option configures a Transport.
type Option func(*Transport)

// WithErrorHeaders sets the headers written on errors the transport answers
// itself, before any function runs (oversized or unreadable bodies).
func WithErrorHeaders(h map[string]string) Option {
	return func(t *Transport) { t.errorHeaders = h }
}

// New creates a new HTTP transport on the given port, mounting functions
// under pathPrefix.
func New(port int, pathPrefix string, opts ...Option) *Transport {
	t := &Transport{port: port, pathPrefix: strings.TrimSuffix(pathPrefix, "/")}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "http" }

// Listen starts the HTTP server and routes incoming requests to the functions.
func (t *Transport) Listen(ctx context.Context, routes map[string]transport.Handler) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", t.port),
		Handler:           t.Handler(routes),
		ReadHeaderTimeout: 10 * time.Second,
	}
	t.mu.Lock()
	t.server = srv
	t.mu.Unlock()

	slog.Info("http transport listening", "port", t.port, "path_prefix", t.pathPrefix)

	go func() {
		<-ctx.Done()
		slog.Info("http transport shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return fmt.Errorf("http listen: %w", err)
	}
	return nil
}

// Handler builds the mux serving the functions and the Swagger UI.
func (t *Transport) Handler(routes map[string]transport.Handler) http.Handler {
	mux := http.NewServeMux()

	for name, h := range routes {
		path := t.pathPrefix + "/" + name
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			t.serveFunction(w, r, name, h)
		})
		slog.Debug("function mounted", "function", name, "path", path)
	}

	// Swagger UI serves the generated OpenAPI docs. doc.json is rendered from
	// a copy of the registered spec carrying this transport's base path.
	spec := *docs.SwaggerInfo
	spec.BasePath = t.pathPrefix
	doc := spec.ReadDoc()
	mux.HandleFunc("GET /swagger/doc.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		_, _ = w.Write([]byte(doc))
	})
	mux.Handle("GET /swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return mux
}

// serveFunction turns the request into an event, runs the function and writes
// its response verbatim.
func (t *Transport) serveFunction(w http.ResponseWriter, r *http.Request, name string, h transport.Handler) {
	id := r.Header.Get(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		slog.Warn("reading request body", "function", name, "request_id", id, "error", err)
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
			err = fmt.Errorf("request body exceeds %d bytes", tooLarge.Limit)
		}
		t.write(w, id, t.errorResponse(status, err.Error()))
		return
	}

	ev := &message.Event{
		ID:         id,
		Method:     r.Method,
		Path:       r.URL.Path,
		Headers:    flattenHeaders(r.Header),
		Body:       body,
		ReceivedAt: time.Now(),
	}

	resp := h(r.Context(), ev)
	t.write(w, id, resp)

	slog.Debug("function served", "function", name, "request_id", id, "method", r.Method, "status", resp.StatusCode)
}

func (t *Transport) write(w http.ResponseWriter, id string, resp *message.Response) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.Header().Set(requestIDHeader, id)
	w.WriteHeader(resp.StatusCode)
	if _, err := w.Write(resp.Body); err != nil {
		slog.Debug("writing response", "request_id", id, "error", err)
	}
}

// errorResponse builds the JSON error body for failures the transport
// answers without calling a function.
func (t *Transport) errorResponse(status int, msg string) *message.Response {
	headers := make(map[string]string, len(t.errorHeaders)+1)
	headers["Content-Type"] = "application/json"
	for k, v := range t.errorHeaders {
		headers[k] = v
	}
	body, _ := json.Marshal(message.ErrorBody{Error: msg})
	return &message.Response{StatusCode: status, Headers: headers, Body: body}
}

// Close gracefully shuts down the HTTP server.
func (t *Transport) Close() error {
	t.mu.Lock()
	srv := t.server
	t.mu.Unlock()
	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(ctx)
	}
	return nil
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}
