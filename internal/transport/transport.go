// Package transport defines the interface for pluggable function transports.
//
// The HTTP transport serves the functions themselves; the gRPC transport
// reports their health over the standard gRPC health protocol. Neither cares
// what a function does, only that it turns an event into a response.
package transport

import (
	"context"

	"github.com/RyanJHamby/MentorshipVoiceCloner/internal/message"
)

// Handler processes one invocation. It must always return a response.
type Handler func(ctx context.Context, ev *message.Event) *message.Response

// Transport is the interface that every transport adapter must implement.
type Transport interface {
	// Name returns the transport identifier (e.g., "http", "grpc").
	Name() string

	// Listen starts serving the given functions, keyed by name.
	// It blocks until the context is cancelled.
	Listen(ctx context.Context, routes map[string]Handler) error

	// Close gracefully shuts down the transport, draining in-flight work.
	Close() error
}
