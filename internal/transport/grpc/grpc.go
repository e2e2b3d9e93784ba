// Package grpc implements the gRPC transport for mentorvoice.
//
// The functions speak JSON over HTTP, so this transport does not serve them.
// It exposes the standard grpc.health.v1 service instead, with one entry per
// mounted function, for orchestrators that probe over gRPC.
package grpc

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sort"
	"sync"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/RyanJHamby/MentorshipVoiceCloner/internal/transport"
)

// ServicePrefix is prepended to function names to form health service names.
const ServicePrefix = "mentorvoice."

// Transport implements transport.Transport over gRPC.
type Transport struct {
	port   int
	health *health.Server

	mu     sync.Mutex
	server *grpc.Server
}

// New creates a new gRPC transport on the given port.
func New(port int) *Transport {
	return &Transport{port: port, health: health.NewServer()}
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "grpc" }

// Listen starts the gRPC server and marks every function as serving.
func (t *Transport) Listen(ctx context.Context, routes map[string]transport.Handler) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", t.port))
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}
	return t.Serve(ctx, lis, routes)
}

// Serve runs the gRPC server on an existing listener.
func (t *Transport) Serve(ctx context.Context, lis net.Listener, routes map[string]transport.Handler) error {
	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, t.health)
	t.mu.Lock()
	t.server = srv
	t.mu.Unlock()

	for _, name := range ServiceNames(routes) {
		t.health.SetServingStatus(name, healthpb.HealthCheckResponse_SERVING)
	}
	t.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)

	slog.Info("grpc transport listening", "addr", lis.Addr().String(), "services", len(routes))

	go func() {
		<-ctx.Done()
		slog.Info("grpc transport shutting down")
		t.health.Shutdown()
		srv.GracefulStop()
	}()

	return srv.Serve(lis)
}

// Close marks every service NOT_SERVING and gracefully stops the gRPC server.
func (t *Transport) Close() error {
	t.health.Shutdown()
	t.mu.Lock()
	srv := t.server
	t.mu.Unlock()
	if srv != nil {
		srv.GracefulStop()
	}
	return nil
}

// ServiceNames returns the health service names for routes, sorted.
func ServiceNames(routes map[string]transport.Handler) []string {
	names := make([]string, 0, len(routes))
	for name := range routes {
		names = append(names, ServicePrefix+name)
	}
	sort.Strings(names)
	return names
}
