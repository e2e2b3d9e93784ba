// Mentorvoice serves the voice cloning and text-to-speech functions behind
// the MentorVoice front-end, proxying both to ElevenLabs.
//
// Usage:
//
//	mentorvoice [flags]
//	mentorvoice --config /path/to/mentorvoice.yaml
//
// @title       MentorVoice API
// @version     1.0
// @description Voice cloning and text-to-speech functions proxied to ElevenLabs.
// @BasePath    /.netlify/functions
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/RyanJHamby/MentorshipVoiceCloner/internal/config"
	"github.com/RyanJHamby/MentorshipVoiceCloner/internal/elevenlabs"
	"github.com/RyanJHamby/MentorshipVoiceCloner/internal/function"
	"github.com/RyanJHamby/MentorshipVoiceCloner/internal/health"
	"github.com/RyanJHamby/MentorshipVoiceCloner/internal/quote"
	"github.com/RyanJHamby/MentorshipVoiceCloner/internal/transport"
	grpctransport "github.com/RyanJHamby/MentorshipVoiceCloner/internal/transport/grpc"
	httptransport "github.com/RyanJHamby/MentorshipVoiceCloner/internal/transport/http"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	showVersion := flag.Bool("version", false, "print version and exit")
	configFile := flag.String("config", "", "path to config file (e.g. configs/mentorvoice.yaml)")
	flag.Parse()

	if *showVersion {
		fmt.Printf("mentorvoice %s\n", version)
		os.Exit(0)
	}

	// Load configuration.
	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging.
	config.SetupLogging(cfg.Logging)
	slog.Info("mentorvoice starting", "version", version)

	// Create root context with signal handling for graceful shutdown.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// One vendor client serves both functions.
	client := elevenlabs.New(cfg.ElevenLabs)
	slog.Info("using ElevenLabs",
		"base_url", cfg.ElevenLabs.BaseURL,
		"model_id", cfg.ElevenLabs.ModelID,
		"timeout", cfg.ElevenLabs.Timeout)

	cors := function.CORS{AllowOrigin: cfg.CORS.AllowOrigin}
	fns := function.New(function.Options{
		Cloner:           client,
		Synthesizer:      client,
		Quotes:           quote.NewPicker(nil),
		CORS:             cors,
		VoiceDescription: cfg.ElevenLabs.VoiceDescription,
	})
	routes := fns.Routes()

	// Initialize enabled transports.
	var transports []transport.Transport

	if cfg.Transports.HTTP.Enabled {
		transports = append(transports, httptransport.New(
			cfg.Transports.HTTP.Port,
			cfg.Transports.HTTP.PathPrefix,
			httptransport.WithErrorHeaders(cors.Headers()),
		))
	}
	if cfg.Transports.GRPC.Enabled {
		transports = append(transports, grpctransport.New(cfg.Transports.GRPC.Port))
	}

	// Start health check server.
	healthServer := health.New(cfg.Server.HealthPort)
	go func() {
		if err := healthServer.ListenAndServe(ctx); err != nil {
			slog.Error("health server failed", "error", err)
		}
	}()

	// Start all transports.
	var wg sync.WaitGroup
	for _, t := range transports {
		wg.Add(1)
		go func(t transport.Transport) {
			defer wg.Done()
			slog.Info("starting transport", "name", t.Name())
			if err := t.Listen(ctx, routes); err != nil {
				slog.Error("transport failed", "name", t.Name(), "error", err)
				cancel()
			}
		}(t)
	}

	// Mark as ready once all transports are started.
	healthServer.SetReady(true)
	slog.Info("mentorvoice ready",
		"transports", len(transports),
		"functions", len(routes),
		"health_port", cfg.Server.HealthPort)

	// Block until shutdown signal.
	<-ctx.Done()
	healthServer.SetReady(false)
	slog.Info("shutdown signal received, draining...")

	// Close all transports gracefully.
	for _, t := range transports {
		if err := t.Close(); err != nil {
			slog.Error("transport close error", "name", t.Name(), "error", err)
		}
	}

	wg.Wait()
	slog.Info("mentorvoice stopped")
}
