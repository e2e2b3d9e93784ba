package function

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanJHamby/MentorshipVoiceCloner/internal/elevenlabs"
	"github.com/RyanJHamby/MentorshipVoiceCloner/internal/message"
	"github.com/RyanJHamby/MentorshipVoiceCloner/internal/quote"
	"github.com/RyanJHamby/MentorshipVoiceCloner/internal/tts"
)

type fakeCloner struct {
	calls []tts.AddVoiceRequest
	id    string
	err   error
}

func (f *fakeCloner) AddVoice(_ context.Context, req tts.AddVoiceRequest) (string, error) {
	f.calls = append(f.calls, req)
	return f.id, f.err
}

type synthCall struct {
	voiceID string
	text    string
}

type fakeSynthesizer struct {
	calls []synthCall
	audio []byte
	err   error
	panic bool
}

func (f *fakeSynthesizer) Synthesize(_ context.Context, voiceID, text string) ([]byte, error) {
	f.calls = append(f.calls, synthCall{voiceID: voiceID, text: text})
	if f.panic {
		panic("synthesizer exploded")
	}
	return f.audio, f.err
}

func newFunctions(c *fakeCloner, s *fakeSynthesizer) *Functions {
	return New(Options{
		Cloner:           c,
		Synthesizer:      s,
		Quotes:           quote.NewPicker(rand.NewPCG(1, 2)),
		CORS:             CORS{AllowOrigin: "http://localhost:5173"},
		VoiceDescription: "Voice clone created with MentorVoice",
	})
}

func post(body any) *message.Event {
	data, _ := json.Marshal(body)
	return &message.Event{ID: "req-1", Method: http.MethodPost, Body: data}
}

func decode(t *testing.T, resp *message.Response) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(resp.Body, &out))
	return out
}

func assertCORS(t *testing.T, resp *message.Response) {
	t.Helper()
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	assert.Equal(t, "http://localhost:5173", resp.Headers["Access-Control-Allow-Origin"])
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Headers"])
	assert.Equal(t, "OPTIONS,POST", resp.Headers["Access-Control-Allow-Methods"])
	assert.Equal(t, "true", resp.Headers["Access-Control-Allow-Credentials"])
}

func sample(data string) string {
	return base64.StdEncoding.EncodeToString([]byte(data))
}

func TestBothFunctions_MethodHandling(t *testing.T) {
	f := newFunctions(&fakeCloner{}, &fakeSynthesizer{})
	for name, h := range f.Routes() {
		t.Run(name+"/options", func(t *testing.T) {
			resp := h(context.Background(), &message.Event{Method: http.MethodOptions, Body: []byte("garbage")})
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, map[string]any{"message": "OK"}, decode(t, resp))
			assertCORS(t, resp)
		})
		t.Run(name+"/get", func(t *testing.T) {
			resp := h(context.Background(), &message.Event{Method: http.MethodGet})
			assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
			assert.Equal(t, map[string]any{"error": "Method not allowed"}, decode(t, resp))
			assertCORS(t, resp)
		})
	}
}

func TestCloneVoice_Success(t *testing.T) {
	cloner := &fakeCloner{id: "test_voice_123"}
	f := newFunctions(cloner, &fakeSynthesizer{})

	resp := f.CloneVoice(context.Background(), post(map[string]any{
		"voice_name":    "Test Voice",
		"voice_samples": []string{sample("first"), sample("second"), sample("third")},
	}))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{"voice_id": "test_voice_123"}, decode(t, resp))
	assertCORS(t, resp)

	require.Len(t, cloner.calls, 1)
	call := cloner.calls[0]
	assert.Equal(t, "Test Voice", call.Name)
	assert.Equal(t, "Voice clone created with MentorVoice", call.Description)
	require.Len(t, call.Samples, 3)
	for i, want := range []string{"first", "second", "third"} {
		assert.Equal(t, fmt.Sprintf("sample_%d.wav", i), call.Samples[i].Filename)
		assert.Equal(t, "audio/wav", call.Samples[i].ContentType)
		assert.Equal(t, want, string(call.Samples[i].Data))
	}
}

func TestCloneVoice_DefaultName(t *testing.T) {
	cloner := &fakeCloner{id: "v1"}
	f := newFunctions(cloner, &fakeSynthesizer{})

	resp := f.CloneVoice(context.Background(), post(map[string]any{
		"voice_samples": []string{sample("audio")},
	}))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, cloner.calls, 1)
	assert.Equal(t, DefaultVoiceName, cloner.calls[0].Name)
}

func TestCloneVoice_InputErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{name: "missing samples", body: `{"voice_name":"Test Voice"}`, wantStatus: 400, wantError: "No voice samples provided"},
		{name: "empty samples", body: `{"voice_samples":[]}`, wantStatus: 400, wantError: "No voice samples provided"},
		{name: "null samples", body: `{"voice_samples":null}`, wantStatus: 400, wantError: "No voice samples provided"},
		{name: "invalid base64", body: `{"voice_samples":["invalid_base64"]}`, wantStatus: 400, wantError: "Invalid voice sample format: "},
		{name: "second sample invalid", body: `{"voice_samples":["` + sample("ok") + `","%%%"]}`, wantStatus: 400, wantError: "Invalid voice sample format: "},
		{name: "not json", body: `{`, wantStatus: 500, wantError: "unexpected end of JSON input"},
		{name: "number sample", body: `{"voice_samples":[123]}`, wantStatus: 400, wantError: "Invalid voice sample format: sample 0 is not a base64 string: 123"},
		{name: "null sample", body: `{"voice_samples":["` + sample("ok") + `",null]}`, wantStatus: 400, wantError: "Invalid voice sample format: sample 1 is not a base64 string: null"},
		{name: "object sample", body: `{"voice_samples":[{"data":"x"}]}`, wantStatus: 400, wantError: "Invalid voice sample format: sample 0 is not a base64 string: "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cloner := &fakeCloner{id: "v1"}
			f := newFunctions(cloner, &fakeSynthesizer{})

			resp := f.CloneVoice(context.Background(), &message.Event{Method: http.MethodPost, Body: []byte(tt.body)})

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			body := decode(t, resp)
			assert.True(t, strings.HasPrefix(body["error"].(string), tt.wantError), "error %q", body["error"])
			assert.Empty(t, cloner.calls, "no upstream call expected")
			assertCORS(t, resp)
		})
	}
}

func TestCloneVoice_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name       string
		id         string
		err        error
		wantStatus int
		wantError  string
	}{
		{name: "api error passthrough", err: &elevenlabs.APIError{StatusCode: 400, Body: "API Error"}, wantStatus: 400, wantError: "API Error"},
		{name: "quota exceeded", err: &elevenlabs.APIError{StatusCode: 429, Body: `{"detail":"quota"}`}, wantStatus: 429, wantError: `{"detail":"quota"}`},
		{name: "missing voice id", id: "", wantStatus: 500, wantError: "No voice ID in response"},
		{name: "unparsable response", err: &elevenlabs.DecodeError{Err: errors.New("invalid character 'o'")}, wantStatus: 500, wantError: "Error parsing response: invalid character 'o'"},
		{name: "connection refused", err: &elevenlabs.RequestError{Err: errors.New("connection refused")}, wantStatus: 500, wantError: "connection refused"},
		{name: "timeout reading response", err: &elevenlabs.RequestError{Err: fmt.Errorf("reading add voice response: %w", context.DeadlineExceeded)}, wantStatus: 500, wantError: "reading add voice response: context deadline exceeded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFunctions(&fakeCloner{id: tt.id, err: tt.err}, &fakeSynthesizer{})

			resp := f.CloneVoice(context.Background(), post(map[string]any{
				"voice_samples": []string{sample("fake_audio_data")},
			}))

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, map[string]any{"error": tt.wantError}, decode(t, resp))
			assertCORS(t, resp)
		})
	}
}

func TestTextToSpeech_Success(t *testing.T) {
	synth := &fakeSynthesizer{audio: []byte("audio_content")}
	f := newFunctions(&fakeCloner{}, synth)

	resp := f.TextToSpeech(context.Background(), post(map[string]any{
		"text":          "Hello world",
		"voice_id":      "x",
		"include_quote": false,
	}))

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]any{
		"text":  "Hello world",
		"audio": base64.StdEncoding.EncodeToString([]byte("audio_content")),
	}, decode(t, resp))
	assertCORS(t, resp)

	require.Len(t, synth.calls, 1)
	assert.Equal(t, synthCall{voiceID: "x", text: "Hello world"}, synth.calls[0])
}

func TestTextToSpeech_WithQuote(t *testing.T) {
	tests := []struct {
		name     string
		position string
		check    func(t *testing.T, text, q string)
	}{
		{name: "start", position: "start", check: func(t *testing.T, text, q string) {
			assert.Equal(t, q+" Hello world", text)
		}},
		{name: "default", position: "", check: func(t *testing.T, text, q string) {
			assert.Equal(t, q+" Hello world", text)
		}},
		{name: "end", position: "end", check: func(t *testing.T, text, q string) {
			assert.Equal(t, "Hello world "+q, text)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			synth := &fakeSynthesizer{audio: []byte("audio_content")}
			f := newFunctions(&fakeCloner{}, synth)
			want := quote.NewPicker(rand.NewPCG(1, 2)).Pick()

			body := map[string]any{"text": "Hello world", "voice_id": "x", "include_quote": true}
			if tt.position != "" {
				body["quote_position"] = tt.position
			}
			resp := f.TextToSpeech(context.Background(), post(body))

			require.Equal(t, http.StatusOK, resp.StatusCode)
			text := decode(t, resp)["text"].(string)
			assert.Contains(t, quote.Quotes, want)
			tt.check(t, text, want)

			require.Len(t, synth.calls, 1)
			assert.Equal(t, text, synth.calls[0].text, "the spoken text is the returned text")
		})
	}
}

func TestTextToSpeech_MissingFields(t *testing.T) {
	for _, body := range []string{`{}`, `{"text":"Hello"}`, `{"voice_id":"x"}`, `{"text":"","voice_id":"x"}`} {
		t.Run(body, func(t *testing.T) {
			synth := &fakeSynthesizer{}
			f := newFunctions(&fakeCloner{}, synth)

			resp := f.TextToSpeech(context.Background(), &message.Event{Method: http.MethodPost, Body: []byte(body)})

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, map[string]any{"error": "Text and voice_id are required"}, decode(t, resp))
			assert.Empty(t, synth.calls)
			assertCORS(t, resp)
		})
	}
}

func TestTextToSpeech_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
	}{
		{name: "api error", err: &elevenlabs.APIError{StatusCode: 400, Body: "API Error"}, wantStatus: 400, wantError: "ElevenLabs API error: API Error"},
		{name: "unauthorized", err: &elevenlabs.APIError{StatusCode: 401, Body: "bad key"}, wantStatus: 401, wantError: "ElevenLabs API error: bad key"},
		{name: "timeout", err: &elevenlabs.RequestError{Err: context.DeadlineExceeded}, wantStatus: 500, wantError: "Error communicating with ElevenLabs API: context deadline exceeded"},
		{name: "audio too large", err: &elevenlabs.DecodeError{Err: fmt.Errorf("%w: more than 16 bytes", elevenlabs.ErrAudioTooLarge)}, wantStatus: 500, wantError: "elevenlabs: audio response too large: more than 16 bytes"},
		{name: "other", err: errors.New("boom"), wantStatus: 500, wantError: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFunctions(&fakeCloner{}, &fakeSynthesizer{err: tt.err})

			resp := f.TextToSpeech(context.Background(), post(map[string]any{"text": "Hello world", "voice_id": "x"}))

			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, map[string]any{"error": tt.wantError}, decode(t, resp))
			assertCORS(t, resp)
		})
	}
}

func TestRoutes_RecoverPanics(t *testing.T) {
	f := newFunctions(&fakeCloner{}, &fakeSynthesizer{panic: true})

	resp := f.Routes()[TextToSpeechName](context.Background(), post(map[string]any{"text": "Hi", "voice_id": "x"}))

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, map[string]any{"error": "synthesizer exploded"}, decode(t, resp))
	assertCORS(t, resp)
}
