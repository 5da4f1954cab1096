// Package tutor plays voice lesson scripts: it narrates each step, listens
// for a spoken answer when a step asks a question, and either celebrates and
// moves on or encourages the learner and listens again.
package tutor

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/koscakluka/ema-tutor/core/events"
	"github.com/koscakluka/ema-tutor/core/script"
	"github.com/koscakluka/ema-tutor/core/speechtotext"
	"github.com/koscakluka/ema-tutor/core/texttospeech"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Player walks a script one step at a time. Every Start begins a new
// generation; work started under an older generation can no longer change
// the state.
type Player struct {
	script script.Script

	output        speechOutput
	input         speechInput
	timings       Timings
	encouragement string
	maxAttempts   int
	platform      *Platform

	onStateChanged func(SessionState)
	emitEvent      eventEmitter

	// notifyMu serializes state changes together with their delivery so
	// receivers observe them in order.
	notifyMu sync.Mutex

	mu         sync.Mutex
	state      SessionState
	generation uint64
	cancel     context.CancelFunc
	lease      *Lease
	answers    chan string
	done       chan struct{}
}

// NewPlayer builds a player for a copy of s.
func NewPlayer(s script.Script, opts ...PlayerOption) *Player {
	p := &Player{
		script:         s.Clone(),
		encouragement:  DefaultEncouragement,
		platform:       DefaultPlatform,
		onStateChanged: noopStateChanged,
		emitEvent:      noopEventEmitter,
	}
	p.output.language = s.Language
	p.input.locale = s.Language
	if p.input.locale == "" {
		p.input.locale = speechtotext.DefaultLocale
	}
	WithTimings(DefaultTimings())(p)

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Script returns a copy of the script being played.
func (p *Player) Script() script.Script {
	return p.script.Clone()
}

// State returns the current snapshot.
func (p *Player) State() SessionState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Start begins playback from the first step. It returns false without doing
// anything when the player is already playing. Cancelling ctx stops playback.
func (p *Player) Start(ctx context.Context) bool {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	p.mu.Lock()
	if p.state.IsPlaying {
		p.mu.Unlock()
		return false
	}

	p.generation++
	generation := p.generation
	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.lease = p.platform.Acquire(cancel)
	p.answers = make(chan string, 1)
	p.done = make(chan struct{})
	p.state = SessionState{SessionID: uuid.NewString(), IsPlaying: true}

	state := p.state
	lease, answers, done := p.lease, p.answers, p.done
	p.mu.Unlock()

	p.onStateChanged(state)
	p.emitEvent(events.NewPlaybackStarted(generation, state.SessionID, p.script.Name, len(p.script.Steps)))

	go p.run(runCtx, generation, lease, answers, done)
	return true
}

// Stop cancels narration and listening and resets the state to idle. It is
// safe to call at any time, any number of times.
func (p *Player) Stop() {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	p.mu.Lock()
	previous := p.state
	stoppedGeneration := p.generation
	p.generation++
	p.release()
	p.state = SessionState{}
	p.mu.Unlock()

	if !previous.IsPlaying {
		return
	}

	p.onStateChanged(SessionState{})
	p.emitEvent(events.NewPlaybackStopped(stoppedGeneration, previous.SessionID, previous.CurrentStepIndex))
}

// SubmitAnswer hands in a typed answer for the question being waited on. It
// is judged exactly like a recognized one. It returns false when no answer
// is expected or one is already pending.
func (p *Player) SubmitAnswer(text string) bool {
	text = speechtotext.Normalize(text)
	if text == "" {
		return false
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.state.IsWaitingForAnswer || p.answers == nil {
		return false
	}

	select {
	case p.answers <- text:
		return true
	default:
		return false
	}
}

// Wait blocks until the current playback ends or ctx is done.
func (p *Player) Wait(ctx context.Context) error {
	p.mu.Lock()
	done := p.done
	p.mu.Unlock()

	if done == nil {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// release must be called with mu held.
func (p *Player) release() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	if p.lease != nil {
		p.lease.Release()
		p.lease = nil
	}
}

// update applies fn to the state if generation is still current and playing.
func (p *Player) update(ctx context.Context, generation uint64, fn func(*SessionState)) bool {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	p.mu.Lock()
	if generation != p.generation || !p.state.IsPlaying {
		p.mu.Unlock()
		staleCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", "state")))
		return false
	}
	fn(&p.state)
	state := p.state
	p.mu.Unlock()

	p.onStateChanged(state)
	return true
}

func (p *Player) emit(ctx context.Context, generation uint64, event events.Event) {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	p.mu.Lock()
	current := generation == p.generation
	p.mu.Unlock()

	if !current {
		staleCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", "event")))
		return
	}
	p.emitEvent(event)
}

// finish resets the state after a run, unless Stop or a newer Start already
// did.
func (p *Player) finish(generation uint64, completed bool) {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	p.mu.Lock()
	if generation != p.generation {
		p.mu.Unlock()
		return
	}
	previous := p.state
	p.release()
	p.state = SessionState{}
	p.mu.Unlock()

	p.onStateChanged(SessionState{})
	if completed {
		p.emitEvent(events.NewPlaybackEnded(generation, previous.SessionID))
	} else {
		p.emitEvent(events.NewPlaybackStopped(generation, previous.SessionID, previous.CurrentStepIndex))
	}
}

func (p *Player) run(ctx context.Context, generation uint64, lease *Lease, answers chan string, done chan struct{}) {
	defer close(done)

	ctx, span := tracer.Start(ctx, "play script", trace.WithAttributes(
		attribute.String("script.name", p.script.Name),
		attribute.Int("script.steps", len(p.script.Steps)),
		attribute.Int64("playback.generation", int64(generation)),
	))
	defer span.End()

	voice := p.output.selectVoice(ctx)
	if voice != nil {
		span.SetAttributes(attribute.String("voice.id", voice.ID))
	}

	completed := p.play(ctx, generation, lease, voice, answers)
	span.SetAttributes(attribute.Bool("playback.completed", completed))
	p.finish(generation, completed)
}

func (p *Player) play(ctx context.Context, generation uint64, lease *Lease, voice *texttospeech.Voice, answers chan string) bool {
	last := len(p.script.Steps) - 1
	for i, step := range p.script.Steps {
		if !lease.held() {
			logger.Info("speech platform taken by another session", "step", i)
			return false
		}
		if !p.update(ctx, generation, func(s *SessionState) {
			s.CurrentStepIndex = i
			s.IsSpeaking = false
			s.IsListening = false
			s.IsWaitingForAnswer = false
			s.LastRecognizedText = ""
			s.Attempts = 0
		}) {
			return false
		}

		p.narrate(ctx, generation, i, step, voice)
		if ctx.Err() != nil {
			return false
		}

		if step.RequiresAnswer {
			if !p.awaitAnswer(ctx, generation, i, step, voice, answers) {
				return false
			}
			continue
		}

		if i < last && !sleep(ctx, p.timings.StepDelay) {
			return false
		}
	}
	return true
}

func (p *Player) narrate(ctx context.Context, generation uint64, index int, step script.Step, voice *texttospeech.Voice) {
	ctx, span := tracer.Start(ctx, "narrate step", trace.WithAttributes(attribute.Int("step.index", index)))
	defer span.End()

	if !p.update(ctx, generation, func(s *SessionState) { s.IsSpeaking = true }) {
		return
	}
	p.emit(ctx, generation, events.NewStepNarrationStarted(generation, index, step.Text))
	narrationCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", "step")))

	err := p.output.speak(ctx, step.Text, step.Voice, voice)
	if err != nil && ctx.Err() == nil {
		logger.Warn("narration failed", "step", index, "error", err)
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	p.update(ctx, generation, func(s *SessionState) { s.IsSpeaking = false })
	p.emit(ctx, generation, events.NewStepNarrationEnded(generation, index, err))
}

// awaitAnswer listens until the step is answered correctly or given up. It
// returns false when playback was stopped.
func (p *Player) awaitAnswer(ctx context.Context, generation uint64, index int, step script.Step, voice *texttospeech.Voice, answers chan string) bool {
	ctx, span := tracer.Start(ctx, "await answer", trace.WithAttributes(attribute.Int("step.index", index)))
	defer span.End()

	drain(answers)
	if !p.update(ctx, generation, func(s *SessionState) { s.IsWaitingForAnswer = true }) {
		return false
	}
	p.emit(ctx, generation, events.NewAnswerWaiting(generation, index, step.Prompt))

	if !sleep(ctx, p.timings.SettleDelay) {
		return false
	}

	manualOnly := !p.input.isConfigured()
	attempts := 0
	for {
		answer, manual, err := p.listen(ctx, generation, index, attempts+1, manualOnly, answers)
		if ctx.Err() != nil {
			return false
		}
		if err != nil {
			p.emit(ctx, generation, events.NewRecognitionFailed(generation, index, err))
			if errors.Is(err, speechtotext.ErrUnavailable) {
				logger.Info("speech recognition unavailable, waiting for a typed answer", "step", index, "error", err)
				manualOnly = true
				continue
			}
			logger.Debug("recognition failed, listening again", "step", index, "error", err)
			span.RecordError(err)
			if !sleep(ctx, p.timings.ErrorRetryDelay) {
				return false
			}
			continue
		}

		attempts++
		if !p.update(ctx, generation, func(s *SessionState) {
			s.LastRecognizedText = answer
			s.Attempts = attempts
		}) {
			return false
		}
		p.emit(ctx, generation, events.NewAnswerRecognized(generation, index, answer, manual))

		if MatchAnswer(answer, step.ExpectedAnswer) {
			answerCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "matched")))
			span.SetAttributes(attribute.Int("answer.attempts", attempts))
			if !p.update(ctx, generation, func(s *SessionState) { s.IsWaitingForAnswer = false }) {
				return false
			}
			p.emit(ctx, generation, events.NewAnswerMatched(generation, index, answer, attempts))
			return sleep(ctx, p.timings.MatchDelay)
		}

		answerCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "mismatched")))
		p.emit(ctx, generation, events.NewAnswerMismatched(generation, index, answer, step.ExpectedAnswer, attempts))

		if p.maxAttempts > 0 && attempts >= p.maxAttempts {
			answerCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", "exhausted")))
			if !p.update(ctx, generation, func(s *SessionState) { s.IsWaitingForAnswer = false }) {
				return false
			}
			p.emit(ctx, generation, events.NewAnswerAttemptsExhausted(generation, index, attempts))
			return sleep(ctx, p.timings.MatchDelay)
		}

		p.encourage(ctx, generation, voice)
		if !sleep(ctx, p.timings.RetryDelay) {
			return false
		}
	}
}

type recognition struct {
	text string
	err  error
}

// listen returns one answer, either recognized or submitted. With manualOnly
// set the recognizer is not used.
func (p *Player) listen(ctx context.Context, generation uint64, index, attempt int, manualOnly bool, answers chan string) (string, bool, error) {
	if manualOnly {
		select {
		case answer := <-answers:
			return answer, true, nil
		case <-ctx.Done():
			return "", false, ctx.Err()
		}
	}

	if !p.update(ctx, generation, func(s *SessionState) { s.IsListening = true }) {
		return "", false, context.Canceled
	}
	p.emit(ctx, generation, events.NewListeningStarted(generation, index, attempt))
	listenCounter.Add(ctx, 1)

	listenCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan recognition, 1)
	go func() {
		text, err := p.input.recognize(listenCtx)
		results <- recognition{text: text, err: err}
	}()

	stopListening := func() {
		p.update(ctx, generation, func(s *SessionState) { s.IsListening = false })
	}

	select {
	case result := <-results:
		stopListening()
		return result.text, false, result.err
	case answer := <-answers:
		cancel()
		stopListening()
		return answer, true, nil
	case <-ctx.Done():
		return "", false, ctx.Err()
	}
}

func (p *Player) encourage(ctx context.Context, generation uint64, voice *texttospeech.Voice) {
	if p.encouragement == "" {
		return
	}

	if !p.update(ctx, generation, func(s *SessionState) { s.IsSpeaking = true }) {
		return
	}
	narrationCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", "encouragement")))
	if err := p.output.speak(ctx, p.encouragement, "supportive", voice); err != nil && ctx.Err() == nil {
		logger.Warn("encouragement failed", "error", err)
	}
	p.update(ctx, generation, func(s *SessionState) { s.IsSpeaking = false })
}

func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}

func drain(answers chan string) {
	for {
		select {
		case <-answers:
		default:
			return
		}
	}
}
