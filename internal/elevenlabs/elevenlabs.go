// Package elevenlabs implements the tts interfaces using the ElevenLabs API.
//
// It uses the Add Voice endpoint (multipart upload of samples) for voice
// cloning, and the Text to Speech endpoint for synthesis.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/RyanJHamby/MentorshipVoiceCloner/internal/config"
	"github.com/RyanJHamby/MentorshipVoiceCloner/internal/tts"
)

const (
	apiKeyHeader = "xi-api-key"

	maxAudioBytes = 50 << 20
	maxErrorBytes = 64 << 10
)

// Client talks to the ElevenLabs API. It implements tts.VoiceCloner and
// tts.Synthesizer.
type Client struct {
	baseURL         string
	apiKey          string
	modelID         string
	stability       float64
	similarityBoost float64
	timeout         time.Duration
	maxAudioBytes   int64
	client          *http.Client
}

var (
	_ tts.VoiceCloner = (*Client)(nil)
	_ tts.Synthesizer = (*Client)(nil)
)

// New creates a new ElevenLabs client from config.
func New(cfg config.ElevenLabsConfig) *Client {
	return NewWithHTTPClient(cfg, &http.Client{})
}

// NewWithHTTPClient creates a client that sends requests through hc.
func NewWithHTTPClient(cfg config.ElevenLabsConfig, hc *http.Client) *Client {
	return &Client{
		baseURL:         strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:          cfg.APIKey,
		modelID:         cfg.ModelID,
		stability:       cfg.Stability,
		similarityBoost: cfg.SimilarityBoost,
		timeout:         cfg.Timeout,
		maxAudioBytes:   maxAudioBytes,
		client:          hc,
	}
}

// AddVoice uploads the samples as a multipart form and returns the new voice ID.
func (c *Client) AddVoice(ctx context.Context, req tts.AddVoiceRequest) (string, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	if err := writer.WriteField("name", req.Name); err != nil {
		return "", fmt.Errorf("writing name field: %w", err)
	}
	if err := writer.WriteField("description", req.Description); err != nil {
		return "", fmt.Errorf("writing description field: %w", err)
	}
	for _, s := range req.Samples {
		part, err := writer.CreatePart(filePartHeader("files", s.Filename, s.ContentType))
		if err != nil {
			return "", fmt.Errorf("creating file part %s: %w", s.Filename, err)
		}
		if _, err := part.Write(s.Data); err != nil {
			return "", fmt.Errorf("writing file part %s: %w", s.Filename, err)
		}
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("closing multipart writer: %w", err)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/voices/add", body)
	if err != nil {
		return "", fmt.Errorf("creating add voice request: %w", err)
	}
	httpReq.Header.Set(apiKeyHeader, c.apiKey)
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", &RequestError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", readAPIError(resp)
	}

	var result struct {
		VoiceID string `json:"voice_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", &RequestError{Err: fmt.Errorf("reading add voice response: %w", ctxErr)}
		}
		return "", &DecodeError{Err: err}
	}

	slog.Debug("voice added", "name", req.Name, "samples", len(req.Samples), "voice_id", result.VoiceID)
	return result.VoiceID, nil
}

// Synthesize sends text to the Text to Speech endpoint and returns the audio bytes.
func (c *Client) Synthesize(ctx context.Context, voiceID, text string) ([]byte, error) {
	reqBody := synthesisRequest{
		Text:    text,
		ModelID: c.modelID,
		VoiceSettings: voiceSettings{
			Stability:       c.stability,
			SimilarityBoost: c.similarityBoost,
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("marshalling synthesis request: %w", err)
	}

	ctx, cancel := c.withTimeout(ctx)
	defer cancel()

	endpoint := c.baseURL + "/text-to-speech/" + url.PathEscape(voiceID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(bodyBytes))
	if err != nil {
		return nil, fmt.Errorf("creating synthesis request: %w", err)
	}
	httpReq.Header.Set(apiKeyHeader, c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "audio/mpeg")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, readAPIError(resp)
	}

	audio, err := io.ReadAll(io.LimitReader(resp.Body, c.maxAudioBytes+1))
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	if int64(len(audio)) > c.maxAudioBytes {
		return nil, &DecodeError{Err: fmt.Errorf("%w: more than %d bytes", ErrAudioTooLarge, c.maxAudioBytes)}
	}

	slog.Debug("synthesis complete", "voice_id", voiceID, "text_length", len(text), "audio_bytes", len(audio))
	return audio, nil
}

func (c *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, c.timeout)
}

// --- Internal types and helpers ---

type synthesisRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings voiceSettings `json:"voice_settings"`
}

type voiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

func filePartHeader(field, filename, contentType string) textproto.MIMEHeader {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, field, filename))
	h.Set("Content-Type", contentType)
	return h
}

// readAPIError keeps at most maxErrorBytes of the body. A failed or truncated
// read still returns what arrived, and is logged.
func readAPIError(resp *http.Response) error {
	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes+1))
	if err != nil {
		slog.Warn("reading error response body", "status", resp.StatusCode, "read_bytes", len(respBody), "error", err)
	}
	if len(respBody) > maxErrorBytes {
		slog.Warn("error response body truncated", "status", resp.StatusCode, "limit_bytes", maxErrorBytes)
		respBody = respBody[:maxErrorBytes]
	}
	return &APIError{StatusCode: resp.StatusCode, Body: string(respBody)}
}
