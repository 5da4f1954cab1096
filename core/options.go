package tutor

import (
	"time"

	"github.com/koscakluka/ema-tutor/core/events"
	"github.com/koscakluka/ema-tutor/core/speechtotext"
	"github.com/koscakluka/ema-tutor/core/texttospeech"
)

const DefaultEncouragement = "That's not quite right, but keep trying! What do you think the answer is?"

// Timings holds the pauses between playback phases. Zero values are allowed
// and make the player advance immediately.
type Timings struct {
	// SettleDelay separates the end of a question from listening.
	SettleDelay time.Duration
	// StepDelay separates a statement from the next step.
	StepDelay time.Duration
	// MatchDelay separates a correct answer from the next step.
	MatchDelay time.Duration
	// RetryDelay separates a wrong answer from listening again.
	RetryDelay time.Duration
	// ErrorRetryDelay separates a recognition error from listening again.
	ErrorRetryDelay time.Duration

	NarrationTimeout   time.Duration
	RecognitionTimeout time.Duration
}

func DefaultTimings() Timings {
	return Timings{
		SettleDelay:        1000 * time.Millisecond,
		StepDelay:          1500 * time.Millisecond,
		MatchDelay:         1000 * time.Millisecond,
		RetryDelay:         3000 * time.Millisecond,
		ErrorRetryDelay:    2000 * time.Millisecond,
		NarrationTimeout:   30 * time.Second,
		RecognitionTimeout: speechtotext.DefaultTimeout,
	}
}

type PlayerOption func(*Player)

func WithSynthesizer(synthesizer texttospeech.Synthesizer) PlayerOption {
	return func(p *Player) { p.output.set(synthesizer) }
}

func WithRecognizer(recognizer speechtotext.Recognizer) PlayerOption {
	return func(p *Player) { p.input.set(recognizer) }
}

func WithTimings(timings Timings) PlayerOption {
	return func(p *Player) {
		p.timings = timings
		p.output.timeout = timings.NarrationTimeout
		p.input.timeout = timings.RecognitionTimeout
	}
}

// WithLanguage overrides the script language used for voice selection and
// recognition.
func WithLanguage(language string) PlayerOption {
	return func(p *Player) {
		if language != "" {
			p.output.language = language
			p.input.locale = language
		}
	}
}

// WithPreferredVoices lists voice name fragments tried in order before
// falling back to any voice in the language.
func WithPreferredVoices(names ...string) PlayerOption {
	return func(p *Player) { p.output.preferredVoices = append([]string(nil), names...) }
}

func WithSpeakOptions(opts ...texttospeech.SpeakOption) PlayerOption {
	return func(p *Player) { p.output.speakOptions = append(p.output.speakOptions, opts...) }
}

func WithEncouragement(line string) PlayerOption {
	return func(p *Player) { p.encouragement = line }
}

// WithMaxAttempts gives up on a question after n wrong answers. Zero keeps
// asking forever.
func WithMaxAttempts(n int) PlayerOption {
	return func(p *Player) {
		if n >= 0 {
			p.maxAttempts = n
		}
	}
}

// WithStateChangedCallback registers the receiver of every SessionState
// change. It is called in order from the player's goroutines and must not
// call Start or Stop.
func WithStateChangedCallback(callback func(SessionState)) PlayerOption {
	return func(p *Player) {
		if callback != nil {
			p.onStateChanged = callback
		} else {
			p.onStateChanged = noopStateChanged
		}
	}
}

// WithEventCallback registers the receiver of playback events. The same
// ordering rules as WithStateChangedCallback apply.
func WithEventCallback(callback func(events.Event)) PlayerOption {
	return func(p *Player) {
		if callback != nil {
			p.emitEvent = callback
		} else {
			p.emitEvent = noopEventEmitter
		}
	}
}

func WithPlatform(platform *Platform) PlayerOption {
	return func(p *Player) {
		if platform != nil {
			p.platform = platform
		}
	}
}
