// Package quote holds the motivational quotes that can be spoken alongside a
// user's text.
package quote

import (
	"math/rand/v2"
	"sync"

	"github.com/RyanJHamby/MentorshipVoiceCloner/internal/message"
)

// Quotes is the fixed list a quote is drawn from.
var Quotes = []string{
	"Believe you can and you're halfway there.",
	"The future belongs to those who believe in the beauty of their dreams.",
	"Success is not final, failure is not fatal: it is the courage to continue that counts.",
	"Don't watch the clock; do what it does. Keep going.",
	"Everything you've ever wanted is on the other side of fear.",
}

// Picker draws quotes uniformly at random. It is safe for concurrent use.
type Picker struct {
	mu  sync.Mutex
	rng *rand.Rand // nil uses the global generator
}

// NewPicker returns a picker backed by src, or by the global generator when
// src is nil. Tests pass a seeded source to make selection deterministic.
func NewPicker(src rand.Source) *Picker {
	p := &Picker{}
	if src != nil {
		p.rng = rand.New(src)
	}
	return p
}

// Pick returns one quote from Quotes.
func (p *Picker) Pick() string {
	if p == nil || p.rng == nil {
		return Quotes[rand.IntN(len(Quotes))]
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return Quotes[p.rng.IntN(len(Quotes))]
}

// Apply joins quote to text with a single space. QuoteAtStart and the empty
// position put the quote first; any other position puts it last.
func Apply(text, quote string, pos message.QuotePosition) string {
	if pos == "" || pos == message.QuoteAtStart {
		return quote + " " + text
	}
	return text + " " + quote
}
