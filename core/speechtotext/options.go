package speechtotext

import (
	"context"
	"errors"
	"strings"
	"time"
)

const (
	DefaultLocale  = "en-US"
	DefaultTimeout = 10 * time.Second
)

var (
	// ErrUnavailable reports that no recognizer is configured or the platform
	// cannot capture audio. Callers fall back to another input method.
	ErrUnavailable = errors.New("speech recognition unavailable")
	// ErrNoSpeech reports that listening ended without a usable utterance.
	ErrNoSpeech = errors.New("no speech recognized")
)

// Recognizer captures exactly one utterance per call. It never reports
// partial results.
type Recognizer interface {
	Recognize(ctx context.Context, opts ...RecognizeOption) (string, error)
}

type RecognizeOptions struct {
	// Locale is the BCP 47 language tag to recognize.
	Locale string
	// Timeout bounds how long to wait for speech to start and finish.
	Timeout time.Duration
}

type RecognizeOption func(*RecognizeOptions)

func NewRecognizeOptions(opts ...RecognizeOption) RecognizeOptions {
	options := RecognizeOptions{Locale: DefaultLocale, Timeout: DefaultTimeout}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return options
}

func WithLocale(locale string) RecognizeOption {
	return func(o *RecognizeOptions) {
		if locale != "" {
			o.Locale = locale
		}
	}
}

func WithTimeout(timeout time.Duration) RecognizeOption {
	return func(o *RecognizeOptions) { o.Timeout = timeout }
}

// Normalize lower-cases and trims a transcript.
func Normalize(transcript string) string {
	return strings.ToLower(strings.TrimSpace(transcript))
}
