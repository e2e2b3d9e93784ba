package function

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/RyanJHamby/MentorshipVoiceCloner/internal/elevenlabs"
	"github.com/RyanJHamby/MentorshipVoiceCloner/internal/message"
	"github.com/RyanJHamby/MentorshipVoiceCloner/internal/tts"
)

// DefaultVoiceName is used when the request does not name the voice.
const DefaultVoiceName = "My Voice Clone"

// CloneVoice decodes the base64 voice samples, uploads them to the vendor and
// returns the new voice ID.
//
// @Summary     Clone a voice
// @Description Decodes base64 voice samples and uploads them as sample_<n>.wav files to create a cloned voice.
// @Tags        functions
// @Accept      json
// @Produce     json
// @Param       request  body      message.CloneVoiceRequest  true  "Voice samples and name"
// @Success     200      {object}  message.CloneVoiceResult
// @Failure     400      {object}  message.ErrorBody  "No samples, or a sample is not valid base64"
// @Failure     405      {object}  message.ErrorBody  "Method not allowed"
// @Failure     500      {object}  message.ErrorBody  "Upstream or internal error"
// @Router      /clone_voice [post]
func (f *Functions) CloneVoice(ctx context.Context, ev *message.Event) *message.Response {
	if ev.Method == http.MethodOptions {
		return f.preflight()
	}
	if ev.Method != http.MethodPost {
		return f.fail(http.StatusMethodNotAllowed, "Method not allowed")
	}

	start := time.Now()
	logger := slog.With("request_id", ev.ID, "function", CloneVoiceName)

	var req message.CloneVoiceRequest
	if err := json.Unmarshal(ev.Body, &req); err != nil {
		logger.Warn("invalid request body", "error", err)
		return f.fail(http.StatusInternalServerError, err.Error())
	}
	if len(req.VoiceSamples) == 0 {
		return f.fail(http.StatusBadRequest, "No voice samples provided")
	}
	if req.VoiceName == "" {
		req.VoiceName = DefaultVoiceName
	}

	samples, err := decodeSamples(req.VoiceSamples)
	if err != nil {
		logger.Warn("invalid voice sample", "error", err)
		return f.fail(http.StatusBadRequest, "Invalid voice sample format: "+err.Error())
	}

	logger.Info("cloning voice", "voice_name", req.VoiceName, "samples", len(samples))
	voiceID, err := f.cloner.AddVoice(ctx, tts.AddVoiceRequest{
		Name:        req.VoiceName,
		Description: f.voiceDescription,
		Samples:     samples,
	})
	if err != nil {
		logger.Error("add voice failed", "error", err)
		return f.cloneFailure(err)
	}
	if voiceID == "" {
		logger.Error("add voice response had no voice id")
		return f.fail(http.StatusInternalServerError, "No voice ID in response")
	}

	logger.Info("voice cloned", "voice_id", voiceID, "duration", time.Since(start))
	return f.respond(http.StatusOK, message.CloneVoiceResult{VoiceID: voiceID})
}

// decodeSamples turns base64 strings into wav file parts, stopping at the
// first one that is not a string or does not decode.
func decodeSamples(encoded []json.RawMessage) ([]tts.Sample, error) {
	samples := make([]tts.Sample, 0, len(encoded))
	for i, raw := range encoded {
		if len(raw) == 0 || raw[0] != '"' {
			return nil, fmt.Errorf("sample %d is not a base64 string: %s", i, raw)
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		data, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, err
		}
		samples = append(samples, tts.Sample{
			Filename:    fmt.Sprintf("sample_%d.wav", i),
			ContentType: "audio/wav",
			Data:        data,
		})
	}
	return samples, nil
}

func (f *Functions) cloneFailure(err error) *message.Response {
	var apiErr *elevenlabs.APIError
	var decErr *elevenlabs.DecodeError
	switch {
	case errors.As(err, &apiErr):
		return f.fail(apiErr.StatusCode, apiErr.Body)
	case errors.As(err, &decErr):
		return f.fail(http.StatusInternalServerError, "Error parsing response: "+decErr.Error())
	default:
		return f.fail(http.StatusInternalServerError, err.Error())
	}
}
