package function

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/RyanJHamby/MentorshipVoiceCloner/internal/elevenlabs"
	"github.com/RyanJHamby/MentorshipVoiceCloner/internal/message"
	"github.com/RyanJHamby/MentorshipVoiceCloner/internal/quote"
)

// TextToSpeech speaks the request text with the given voice, optionally joined
// with a motivational quote, and returns the audio as base64.
//
// @Summary     Synthesize speech
// @Description Synthesizes text with a cloned voice. With include_quote, a random motivational quote is joined at quote_position.
// @Tags        functions
// @Accept      json
// @Produce     json
// @Param       request  body      message.TextToSpeechRequest  true  "Text, voice and quote options"
// @Success     200      {object}  message.TextToSpeechResult
// @Failure     400      {object}  message.ErrorBody  "Text or voice_id missing"
// @Failure     405      {object}  message.ErrorBody  "Method not allowed"
// @Failure     500      {object}  message.ErrorBody  "Upstream communication or internal error"
// @Router      /text_to_speech [post]
func (f *Functions) TextToSpeech(ctx context.Context, ev *message.Event) *message.Response {
	if ev.Method == http.MethodOptions {
		return f.preflight()
	}
	if ev.Method != http.MethodPost {
		return f.fail(http.StatusMethodNotAllowed, "Method not allowed")
	}

	start := time.Now()
	logger := slog.With("request_id", ev.ID, "function", TextToSpeechName)

	var req message.TextToSpeechRequest
	if err := json.Unmarshal(ev.Body, &req); err != nil {
		logger.Warn("invalid request body", "error", err)
		return f.fail(http.StatusInternalServerError, err.Error())
	}
	if req.Text == "" || req.VoiceID == "" {
		return f.fail(http.StatusBadRequest, "Text and voice_id are required")
	}

	text := req.Text
	if req.IncludeQuote {
		text = quote.Apply(text, f.quotes.Pick(), req.QuotePosition)
		logger.Debug("quote added", "position", req.QuotePosition)
	}

	logger.Info("synthesizing", "voice_id", req.VoiceID, "text_length", len(text))
	audio, err := f.synthesizer.Synthesize(ctx, req.VoiceID, text)
	if err != nil {
		logger.Error("synthesis failed", "error", err)
		return f.synthesisFailure(err)
	}

	result := message.TextToSpeechResult{Text: text}
	result.SetAudioBytes(audio)

	logger.Info("synthesis complete", "audio_bytes", len(audio), "duration", time.Since(start))
	return f.respond(http.StatusOK, result)
}

func (f *Functions) synthesisFailure(err error) *message.Response {
	var apiErr *elevenlabs.APIError
	var reqErr *elevenlabs.RequestError
	switch {
	case errors.As(err, &apiErr):
		return f.fail(apiErr.StatusCode, "ElevenLabs API error: "+apiErr.Body)
	case errors.As(err, &reqErr):
		return f.fail(http.StatusInternalServerError, "Error communicating with ElevenLabs API: "+reqErr.Error())
	default:
		return f.fail(http.StatusInternalServerError, err.Error())
	}
}
