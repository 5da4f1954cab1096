package tutor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/koscakluka/ema-tutor/core/events"
	"github.com/koscakluka/ema-tutor/core/script"
	"github.com/koscakluka/ema-tutor/core/speechtotext"
	"github.com/koscakluka/ema-tutor/core/texttospeech"
)

type synthesizerStub struct {
	mu      sync.Mutex
	spoken  []string
	options []texttospeech.SpeakOptions
	// block makes Speak wait for cancellation.
	block bool
	err   error
}

func (s *synthesizerStub) Speak(ctx context.Context, text string, opts ...texttospeech.SpeakOption) error {
	s.mu.Lock()
	s.spoken = append(s.spoken, text)
	s.options = append(s.options, texttospeech.NewSpeakOptions(opts...))
	block, err := s.block, s.err
	s.mu.Unlock()

	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	return err
}

func (s *synthesizerStub) Spoken() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.spoken...)
}

func (s *synthesizerStub) Options() []texttospeech.SpeakOptions {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]texttospeech.SpeakOptions(nil), s.options...)
}

type listingSynthesizerStub struct {
	synthesizerStub
	voices []texttospeech.Voice
}

func (s *listingSynthesizerStub) Voices(context.Context) ([]texttospeech.Voice, error) {
	return s.voices, nil
}

// recognizerStub replays responses in order and then blocks until the
// context is cancelled.
type recognizerStub struct {
	mu        sync.Mutex
	calls     int
	responses []recognition
	options   []speechtotext.RecognizeOptions
}

func (r *recognizerStub) Recognize(ctx context.Context, opts ...speechtotext.RecognizeOption) (string, error) {
	r.mu.Lock()
	r.calls++
	r.options = append(r.options, speechtotext.NewRecognizeOptions(opts...))
	var next *recognition
	if len(r.responses) > 0 {
		response := r.responses[0]
		r.responses = r.responses[1:]
		next = &response
	}
	r.mu.Unlock()

	if next != nil {
		return next.text, next.err
	}
	<-ctx.Done()
	return "", ctx.Err()
}

func (r *recognizerStub) Calls() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

type recorder struct {
	mu     sync.Mutex
	states []SessionState
	events []events.Event
}

func (r *recorder) options() []PlayerOption {
	return []PlayerOption{
		WithStateChangedCallback(func(state SessionState) {
			r.mu.Lock()
			r.states = append(r.states, state)
			r.mu.Unlock()
		}),
		WithEventCallback(func(event events.Event) {
			r.mu.Lock()
			r.events = append(r.events, event)
			r.mu.Unlock()
		}),
	}
}

func (r *recorder) States() []SessionState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]SessionState(nil), r.states...)
}

func (r *recorder) Events() []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]events.Event(nil), r.events...)
}

func (r *recorder) Kinds() []events.Kind {
	kinds := []events.Kind{}
	for _, event := range r.Events() {
		kinds = append(kinds, event.Kind())
	}
	return kinds
}

func (r *recorder) Count(kind events.Kind) int {
	count := 0
	for _, event := range r.Events() {
		if event.Kind() == kind {
			count++
		}
	}
	return count
}

func (r *recorder) SawState(match func(SessionState) bool) bool {
	for _, state := range r.States() {
		if match(state) {
			return true
		}
	}
	return false
}

func newTestPlayer(s script.Script, r *recorder, opts ...PlayerOption) *Player {
	base := []PlayerOption{WithTimings(Timings{}), WithPlatform(NewPlatform())}
	base = append(base, r.options()...)
	return NewPlayer(s, append(base, opts...)...)
}

func waitUntil(t *testing.T, description string, condition func() bool) {
	t.Helper()

	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()
	timeout := time.After(2 * time.Second)
	for !condition() {
		select {
		case <-ticker.C:
		case <-timeout:
			t.Fatalf("timed out waiting until %s", description)
		}
	}
}

func waitForPlayer(t *testing.T, p *Player) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := p.Wait(ctx); err != nil {
		t.Fatalf("expected playback to finish, got %v", err)
	}
}

func questionScript() script.Script {
	return script.Script{
		Name:     "addition",
		Language: "en-US",
		Steps: []script.Step{
			{Text: "What's 5 plus 3?", RequiresAnswer: true, ExpectedAnswer: "8", Prompt: "5 + 3"},
			{Text: "Great job!"},
		},
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
