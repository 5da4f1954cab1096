package texttospeech

import (
	"context"
	"strings"
)

// Synthesizer speaks text and returns once the spoken audio has finished
// playing, the context is cancelled or synthesis fails.
type Synthesizer interface {
	Speak(ctx context.Context, text string, opts ...SpeakOption) error
}

// VoiceLister is implemented by synthesizers that offer more than one voice.
type VoiceLister interface {
	Voices(ctx context.Context) ([]Voice, error)
}

type Voice struct {
	ID       string
	Name     string
	Language string
}

type SpeakOptions struct {
	// Voice is the voice to speak with, nil leaves the choice to the
	// synthesizer.
	Voice *Voice
	// Rate, Pitch and Volume are relative to 1.0. Synthesizers that cannot
	// honour them ignore them.
	Rate   float64
	Pitch  float64
	Volume float64
	// Mood is a free-form delivery hint such as "celebrating".
	Mood string
}

type SpeakOption func(*SpeakOptions)

func DefaultSpeakOptions() SpeakOptions {
	return SpeakOptions{Rate: 1, Pitch: 1, Volume: 1}
}

// NewSpeakOptions applies opts on top of the defaults.
func NewSpeakOptions(opts ...SpeakOption) SpeakOptions {
	options := DefaultSpeakOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}
	return options
}

func WithVoice(voice Voice) SpeakOption {
	return func(o *SpeakOptions) { o.Voice = &voice }
}

func WithRate(rate float64) SpeakOption {
	return func(o *SpeakOptions) {
		if rate > 0 {
			o.Rate = rate
		}
	}
}

func WithPitch(pitch float64) SpeakOption {
	return func(o *SpeakOptions) {
		if pitch > 0 {
			o.Pitch = pitch
		}
	}
}

func WithVolume(volume float64) SpeakOption {
	return func(o *SpeakOptions) {
		if volume >= 0 && volume <= 1 {
			o.Volume = volume
		}
	}
}

func WithMood(mood string) SpeakOption {
	return func(o *SpeakOptions) { o.Mood = mood }
}

// SelectVoice picks the first voice speaking language whose name contains
// one of preferredNames, falling back to the first voice speaking language.
// Languages match on their primary subtag, so "en-US" accepts "en-GB".
func SelectVoice(voices []Voice, language string, preferredNames ...string) (Voice, bool) {
	primary := primaryLanguage(language)

	matchesLanguage := func(voice Voice) bool {
		return primary == "" || primaryLanguage(voice.Language) == primary
	}

	for _, voice := range voices {
		if !matchesLanguage(voice) {
			continue
		}
		for _, name := range preferredNames {
			if name != "" && strings.Contains(strings.ToLower(voice.Name), strings.ToLower(name)) {
				return voice, true
			}
		}
	}

	for _, voice := range voices {
		if matchesLanguage(voice) {
			return voice, true
		}
	}

	return Voice{}, false
}

func primaryLanguage(tag string) string {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if i := strings.IndexAny(tag, "-_"); i >= 0 {
		tag = tag[:i]
	}
	return tag
}
