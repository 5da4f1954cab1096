package tutor

import (
	"context"
	"fmt"
	"time"

	"github.com/koscakluka/ema-tutor/core/speechtotext"
)

type speechInput struct {
	// recognizer is nil when speech input is not available; answers can then
	// only be submitted manually.
	recognizer speechtotext.Recognizer

	locale  string
	timeout time.Duration
}

func (s *speechInput) set(recognizer speechtotext.Recognizer) {
	if s != nil {
		s.recognizer = recognizer
	}
}

func (s *speechInput) isConfigured() bool {
	return s != nil && s.recognizer != nil
}

// recognize listens for one utterance and returns it normalized.
func (s *speechInput) recognize(ctx context.Context) (string, error) {
	if !s.isConfigured() {
		return "", speechtotext.ErrUnavailable
	}

	opts := []speechtotext.RecognizeOption{speechtotext.WithLocale(s.locale)}
	if s.timeout > 0 {
		opts = append(opts, speechtotext.WithTimeout(s.timeout))
	}

	transcript, err := s.recognizer.Recognize(ctx, opts...)
	if err != nil {
		return "", fmt.Errorf("failed to recognize answer: %w", err)
	}

	transcript = speechtotext.Normalize(transcript)
	if transcript == "" {
		return "", speechtotext.ErrNoSpeech
	}
	return transcript, nil
}
