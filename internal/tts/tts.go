// Package tts defines the interfaces for voice cloning and text-to-speech
// synthesis.
//
// The functions depend only on these interfaces, so the vendor client can be
// swapped for a fake in tests.
package tts

import "context"

// Sample is one recorded voice sample, ready to upload.
type Sample struct {
	// Filename is the name given to the file part (e.g., "sample_0.wav").
	Filename string

	// ContentType is the MIME type of the audio (e.g., "audio/wav").
	ContentType string

	// Data is the decoded audio.
	Data []byte
}

// AddVoiceRequest describes a voice to create from samples.
type AddVoiceRequest struct {
	Name        string
	Description string
	Samples     []Sample
}

// VoiceCloner creates a cloned voice from audio samples.
type VoiceCloner interface {
	// AddVoice uploads the samples and returns the vendor's voice identifier.
	// An empty identifier with a nil error means the vendor answered without one.
	AddVoice(ctx context.Context, req AddVoiceRequest) (string, error)
}

// Synthesizer converts text to audio.
type Synthesizer interface {
	// Synthesize speaks text with the given voice and returns the raw audio.
	Synthesize(ctx context.Context, voiceID, text string) ([]byte, error)
}
