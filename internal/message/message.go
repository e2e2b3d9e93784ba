// Package message defines the request and response types flowing through the
// mentorvoice functions.
package message

import (
	"encoding/base64"
	"encoding/json"
	"time"
)

// Event is a single function invocation, independent of the transport that
// received it. It mirrors what a serverless runtime hands to a function.
type Event struct {
	// ID identifies the invocation in logs (UUID unless the caller supplied one).
	ID string `json:"id"`

	// Method is the HTTP method (e.g., "POST", "OPTIONS").
	Method string `json:"http_method"`

	// Path is the request path the function was reached on.
	Path string `json:"path"`

	// Headers holds the inbound request headers, first value per key.
	Headers map[string]string `json:"headers,omitempty"`

	// Body is the raw request body. Functions decode it as JSON.
	Body []byte `json:"body,omitempty"`

	// ReceivedAt is when the transport accepted the request.
	ReceivedAt time.Time `json:"received_at"`
}

// Response is what a function returns: a status code, headers, and a JSON body.
type Response struct {
	StatusCode int               `json:"status_code"`
	Headers    map[string]string `json:"headers"`
	Body       []byte            `json:"body"`
}

// ErrorBody is the payload of every failed response.
type ErrorBody struct {
	Error string `json:"error"`
}

// StatusBody is the payload of a CORS preflight response.
type StatusBody struct {
	Message string `json:"message"`
}

// CloneVoiceRequest is the body accepted by the clone_voice function.
type CloneVoiceRequest struct {
	// VoiceSamples are base64-encoded audio recordings, in upload order.
	// Elements stay raw JSON; clone_voice rejects any that is not a string.
	VoiceSamples []json.RawMessage `json:"voice_samples" swaggertype:"array,string"`

	// VoiceName is the display name for the cloned voice.
	VoiceName string `json:"voice_name"`
}

// CloneVoiceResult is returned when the vendor created the voice.
type CloneVoiceResult struct {
	VoiceID string `json:"voice_id"`
}

// QuotePosition selects where a motivational quote is joined to the text.
type QuotePosition string

const (
	QuoteAtStart QuotePosition = "start"
	QuoteAtEnd   QuotePosition = "end"
)

// TextToSpeechRequest is the body accepted by the text_to_speech function.
type TextToSpeechRequest struct {
	Text          string        `json:"text"`
	VoiceID       string        `json:"voice_id"`
	IncludeQuote  bool          `json:"include_quote"`
	QuotePosition QuotePosition `json:"quote_position"`
}

// TextToSpeechResult carries the synthesized audio and the text that was spoken.
type TextToSpeechResult struct {
	// Audio is the vendor's audio payload as a base64-encoded string.
	Audio string `json:"audio"`

	// Text is the original text, or the text with a quote joined to it.
	Text string `json:"text"`
}

// SetAudioBytes base64-encodes raw audio bytes into Audio.
func (r *TextToSpeechResult) SetAudioBytes(audio []byte) {
	r.Audio = base64.StdEncoding.EncodeToString(audio)
}
