// Package lesson runs a question-by-question learning session with hearts,
// stars and spoken feedback.
package lesson

import (
	"context"
	"fmt"
	"sync"

	"github.com/jinzhu/copier"
	"github.com/koscakluka/ema-tutor/core/events"
	"github.com/koscakluka/ema-tutor/core/speechtotext"
	"github.com/koscakluka/ema-tutor/core/texttospeech"
	"github.com/koscakluka/ema-tutor/internal/utils"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	DefaultHearts = 3

	PraiseLine    = "Excellent! That's correct! You're doing great!"
	SupportLine   = "Not quite right, but that's okay! Let me help you."
	NotHeardLine  = "I didn't catch that. Let's try again!"
	defaultLocale = speechtotext.DefaultLocale
)

// Feedback is the result of the last check. Correct is nil when there is no
// feedback to show.
type Feedback struct {
	Correct *bool
	Answer  string
	Message string
}

type Summary struct {
	Score          int
	TotalQuestions int
	Stars          int
	Hearts         int
	Complete       bool
}

type Session struct {
	questions []Question

	synthesizer  texttospeech.Synthesizer
	recognizer   speechtotext.Recognizer
	locale       string
	speakOptions []texttospeech.SpeakOption
	emitEvent    func(events.Event)

	mu       sync.Mutex
	current  int
	score    int
	stars    int
	hearts   int
	complete bool
	feedback Feedback
}

type SessionOption func(*Session)

func WithSynthesizer(synthesizer texttospeech.Synthesizer) SessionOption {
	return func(s *Session) { s.synthesizer = synthesizer }
}

func WithRecognizer(recognizer speechtotext.Recognizer) SessionOption {
	return func(s *Session) { s.recognizer = recognizer }
}

func WithLocale(locale string) SessionOption {
	return func(s *Session) {
		if locale != "" {
			s.locale = locale
		}
	}
}

func WithSpeakOptions(opts ...texttospeech.SpeakOption) SessionOption {
	return func(s *Session) { s.speakOptions = append(s.speakOptions, opts...) }
}

func WithHearts(hearts int) SessionOption {
	return func(s *Session) {
		if hearts > 0 {
			s.hearts = hearts
		}
	}
}

func WithEventCallback(callback func(events.Event)) SessionOption {
	return func(s *Session) {
		if callback != nil {
			s.emitEvent = callback
		}
	}
}

// NewSession starts at the first of a copy of questions. Lessons speak slower
// and higher than the default voice.
func NewSession(questions []Question, opts ...SessionOption) (*Session, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("lesson has no questions")
	}

	var copied []Question
	if err := copier.CopyWithOption(&copied, &questions, copier.Option{DeepCopy: true}); err != nil {
		return nil, fmt.Errorf("failed to copy questions: %w", err)
	}

	s := &Session{
		questions:    copied,
		locale:       defaultLocale,
		hearts:       DefaultHearts,
		speakOptions: []texttospeech.SpeakOption{texttospeech.WithRate(0.8), texttospeech.WithPitch(1.2)},
		emitEvent:    func(events.Event) {},
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *Session) Current() Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.questions[s.current]
}

func (s *Session) Index() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

func (s *Session) Len() int {
	return len(s.questions)
}

// Progress is the percentage of questions reached, counting the current one.
func (s *Session) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return float64(s.current+1) / float64(len(s.questions)) * 100
}

func (s *Session) Feedback() Feedback {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feedback
}

func (s *Session) ClearFeedback() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedback = Feedback{}
}

// Next moves to the following question. On the last question it completes
// the session and returns false.
func (s *Session) Next() bool {
	s.mu.Lock()
	s.feedback = Feedback{}
	if s.current < len(s.questions)-1 {
		s.current++
		s.mu.Unlock()
		return true
	}

	alreadyComplete := s.complete
	s.complete = true
	score, total := s.score, len(s.questions)
	s.mu.Unlock()

	if !alreadyComplete {
		s.emitEvent(events.NewLessonCompleted(score, total))
	}
	return false
}

func (s *Session) Previous() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.feedback = Feedback{}
	if s.current == 0 {
		return false
	}
	s.current--
	return true
}

// Ask speaks the current question with its number.
func (s *Session) Ask(ctx context.Context) error {
	s.mu.Lock()
	text := fmt.Sprintf("Question %d. %s", s.current+1, s.questions[s.current].Question)
	s.mu.Unlock()
	return s.say(ctx, text)
}

func (s *Session) Repeat(ctx context.Context) error {
	return s.say(ctx, s.Current().Question)
}

// Hint speaks the current hint. Questions without one stay silent.
func (s *Session) Hint(ctx context.Context) error {
	hint := s.Current().Hint
	if hint == "" {
		return nil
	}
	return s.say(ctx, hint)
}

// Check grades answer against the current question, updates the score and
// speaks the feedback. Only exact matches after normalization are correct.
func (s *Session) Check(ctx context.Context, answer string) Feedback {
	answer = speechtotext.Normalize(answer)

	s.mu.Lock()
	question := s.questions[s.current]
	correct := answer == speechtotext.Normalize(question.Answer)
	feedback := Feedback{Correct: utils.Ptr(correct), Answer: answer}
	if correct {
		s.score++
		s.stars++
		feedback.Message = PraiseLine
	} else {
		s.hearts = max(0, s.hearts-1)
		feedback.Message = SupportLine
	}
	s.feedback = feedback
	index, hearts := s.current, s.hearts
	s.mu.Unlock()

	s.emitEvent(events.NewLessonAnswerChecked(index, answer, correct, hearts))
	if err := s.say(ctx, feedback.Message); err != nil {
		logger.Warn("failed to speak feedback", "error", err)
	}
	return feedback
}

// Listen recognizes one answer and checks it. Without a recognizer it
// returns speechtotext.ErrUnavailable so the caller can ask for typed input.
func (s *Session) Listen(ctx context.Context) (Feedback, error) {
	if s.recognizer == nil {
		return Feedback{}, speechtotext.ErrUnavailable
	}

	ctx, span := tracer.Start(ctx, "listen for lesson answer")
	defer span.End()
	span.SetAttributes(attribute.Int("question.index", s.Index()))

	answer, err := s.recognizer.Recognize(ctx, speechtotext.WithLocale(s.locale))
	if err == nil && speechtotext.Normalize(answer) == "" {
		err = speechtotext.ErrNoSpeech
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		if ctx.Err() == nil {
			if sayErr := s.say(ctx, NotHeardLine); sayErr != nil {
				logger.Warn("failed to speak retry prompt", "error", sayErr)
			}
		}
		return Feedback{}, fmt.Errorf("failed to recognize answer: %w", err)
	}

	return s.Check(ctx, answer), nil
}

func (s *Session) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Summary{
		Score:          s.score,
		TotalQuestions: len(s.questions),
		Stars:          s.stars,
		Hearts:         s.hearts,
		Complete:       s.complete,
	}
}

func (s *Session) say(ctx context.Context, text string) error {
	if s.synthesizer == nil {
		return nil
	}
	if err := s.synthesizer.Speak(ctx, text, s.speakOptions...); err != nil {
		return fmt.Errorf("failed to speak: %w", err)
	}
	return nil
}
