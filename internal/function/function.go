// Package function implements the two mentorvoice functions: clone_voice and
// text_to_speech.
//
// Each function takes an invocation event (method + JSON body) and always
// returns a response: a status code, the CORS header set, and a JSON body
// holding either the result or {"error": ...}. No error escapes a function.
package function

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/RyanJHamby/MentorshipVoiceCloner/internal/message"
	"github.com/RyanJHamby/MentorshipVoiceCloner/internal/quote"
	"github.com/RyanJHamby/MentorshipVoiceCloner/internal/transport"
	"github.com/RyanJHamby/MentorshipVoiceCloner/internal/tts"
)

// Function names, used as route names by the transports.
const (
	CloneVoiceName   = "clone_voice"
	TextToSpeechName = "text_to_speech"
)

// Functions holds the dependencies shared by both functions.
type Functions struct {
	cloner           tts.VoiceCloner
	synthesizer      tts.Synthesizer
	quotes           *quote.Picker
	cors             CORS
	voiceDescription string
}

// Options configures a Functions value.
type Options struct {
	Cloner      tts.VoiceCloner
	Synthesizer tts.Synthesizer

	// Quotes picks the motivational quote; nil uses the global random source.
	Quotes *quote.Picker

	CORS CORS

	// VoiceDescription is sent with every cloned voice.
	VoiceDescription string
}

// New creates the functions from opts.
func New(opts Options) *Functions {
	quotes := opts.Quotes
	if quotes == nil {
		quotes = quote.NewPicker(nil)
	}
	return &Functions{
		cloner:           opts.Cloner,
		synthesizer:      opts.Synthesizer,
		quotes:           quotes,
		cors:             opts.CORS,
		voiceDescription: opts.VoiceDescription,
	}
}

// Routes returns both functions keyed by name, ready to mount on a transport.
func (f *Functions) Routes() map[string]transport.Handler {
	return map[string]transport.Handler{
		CloneVoiceName:   f.guard(CloneVoiceName, f.CloneVoice),
		TextToSpeechName: f.guard(TextToSpeechName, f.TextToSpeech),
	}
}

// guard turns a panic inside a function into a 500 response.
func (f *Functions) guard(name string, h transport.Handler) transport.Handler {
	return func(ctx context.Context, ev *message.Event) (resp *message.Response) {
		defer func() {
			if r := recover(); r != nil {
				slog.Error("function panicked", "function", name, "request_id", ev.ID, "panic", r)
				resp = f.fail(http.StatusInternalServerError, fmt.Sprint(r))
			}
		}()
		return h(ctx, ev)
	}
}
