// Package config handles loading and validating the mentorvoice configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is the root configuration for the mentorvoice daemon.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Transports TransportsConfig `mapstructure:"transports"`
	ElevenLabs ElevenLabsConfig `mapstructure:"elevenlabs"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig holds the health check server settings.
type ServerConfig struct {
	HealthPort int `mapstructure:"health_port"`
}

// TransportsConfig holds the configuration for each transport layer.
type TransportsConfig struct {
	GRPC GRPCConfig `mapstructure:"grpc"`
	HTTP HTTPConfig `mapstructure:"http"`
}

// GRPCConfig configures the gRPC health transport.
type GRPCConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// HTTPConfig configures the HTTP transport that serves the functions.
type HTTPConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Port       int    `mapstructure:"port"`
	PathPrefix string `mapstructure:"path_prefix"` // functions are mounted at <prefix>/<name>
}

// ElevenLabsConfig holds the vendor API settings.
type ElevenLabsConfig struct {
	APIKey           string        `mapstructure:"api_key"`
	BaseURL          string        `mapstructure:"base_url"`
	ModelID          string        `mapstructure:"model_id"`
	Stability        float64       `mapstructure:"stability"`
	SimilarityBoost  float64       `mapstructure:"similarity_boost"`
	VoiceDescription string        `mapstructure:"voice_description"`
	Timeout          time.Duration `mapstructure:"timeout"`
}

// CORSConfig holds the cross-origin settings added to every function response.
type CORSConfig struct {
	AllowOrigin string `mapstructure:"allow_origin"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text
}

// Load reads the configuration from file, environment variables, and defaults.
// A .env file in the working directory is loaded first when present.
// If configFile is non-empty it is used directly; otherwise the standard
// search order applies: ./mentorvoice.yaml, ./configs/mentorvoice.yaml, /etc/mentorvoice/mentorvoice.yaml.
func Load(configFile string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	v := viper.New()

	// Defaults
	v.SetDefault("server.health_port", 8081)
	v.SetDefault("transports.grpc.enabled", true)
	v.SetDefault("transports.grpc.port", 50051)
	v.SetDefault("transports.http.enabled", true)
	v.SetDefault("transports.http.port", 9999)
	v.SetDefault("transports.http.path_prefix", "/.netlify/functions")
	v.SetDefault("elevenlabs.base_url", "https://api.elevenlabs.io/v1")
	v.SetDefault("elevenlabs.model_id", "eleven_monolingual_v1")
	v.SetDefault("elevenlabs.stability", 0.75)
	v.SetDefault("elevenlabs.similarity_boost", 0.75)
	v.SetDefault("elevenlabs.voice_description", "Voice clone created with MentorVoice")
	v.SetDefault("elevenlabs.timeout", 30*time.Second)
	v.SetDefault("cors.allow_origin", "http://localhost:5173")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")

	// Config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("mentorvoice")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/mentorvoice")
	}

	// Environment variables: MENTORVOICE_ELEVENLABS_TIMEOUT, MENTORVOICE_CORS_ALLOW_ORIGIN, etc.
	v.SetEnvPrefix("MENTORVOICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The bare vendor variable is what the front-end's .env has always used.
	if err := v.BindEnv("elevenlabs.api_key", "MENTORVOICE_ELEVENLABS_API_KEY", "ELEVENLABS_API_KEY"); err != nil {
		return nil, fmt.Errorf("binding api key env: %w", err)
	}

	// Read config file (optional, env vars and defaults are sufficient)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Info("no config file found, using defaults and environment variables")
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	// Resolve env var references in sensitive fields (e.g., "${ELEVENLABS_API_KEY}")
	cfg.ElevenLabs.APIKey = resolveEnvRef(cfg.ElevenLabs.APIKey)
	cfg.ElevenLabs.BaseURL = strings.TrimSuffix(cfg.ElevenLabs.BaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration can serve requests.
func (c *Config) Validate() error {
	if c.ElevenLabs.APIKey == "" {
		return fmt.Errorf("elevenlabs api key must be provided (ELEVENLABS_API_KEY)")
	}
	if c.ElevenLabs.BaseURL == "" {
		return fmt.Errorf("elevenlabs base url must be provided")
	}
	if c.ElevenLabs.Timeout <= 0 {
		return fmt.Errorf("elevenlabs timeout must be positive: %s", c.ElevenLabs.Timeout)
	}
	if !c.Transports.HTTP.Enabled && !c.Transports.GRPC.Enabled {
		return fmt.Errorf("no transports enabled")
	}
	if c.Transports.HTTP.Enabled && (c.Transports.HTTP.Port <= 0 || c.Transports.HTTP.Port > 65535) {
		return fmt.Errorf("invalid http port: %d", c.Transports.HTTP.Port)
	}
	if c.Transports.GRPC.Enabled && (c.Transports.GRPC.Port <= 0 || c.Transports.GRPC.Port > 65535) {
		return fmt.Errorf("invalid grpc port: %d", c.Transports.GRPC.Port)
	}
	return nil
}

// resolveEnvRef replaces "${VAR_NAME}" patterns with the corresponding env var value.
func resolveEnvRef(val string) string {
	if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
		envKey := val[2 : len(val)-1]
		if envVal := os.Getenv(envKey); envVal != "" {
			return envVal
		}
	}
	return val
}

// SetupLogging configures the global slog logger based on config.
func SetupLogging(cfg LoggingConfig) {
	var level slog.Level
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if strings.ToLower(cfg.Format) == "text" {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
