package tutor

import (
	"context"
	"fmt"
	"time"

	"github.com/koscakluka/ema-tutor/core/texttospeech"
)

type speechOutput struct {
	// synthesizer is nil when speech output is not available; speaking then
	// completes immediately.
	synthesizer texttospeech.Synthesizer

	language        string
	preferredVoices []string
	speakOptions    []texttospeech.SpeakOption
	// timeout bounds a single narration so a stuck synthesizer cannot hang
	// playback.
	timeout time.Duration
}

func (s *speechOutput) set(synthesizer texttospeech.Synthesizer) {
	if s != nil {
		s.synthesizer = synthesizer
	}
}

func (s *speechOutput) isConfigured() bool {
	return s != nil && s.synthesizer != nil
}

// selectVoice picks the session voice. A nil result leaves the choice to the
// synthesizer.
func (s *speechOutput) selectVoice(ctx context.Context) *texttospeech.Voice {
	if !s.isConfigured() {
		return nil
	}

	lister, ok := s.synthesizer.(texttospeech.VoiceLister)
	if !ok {
		return nil
	}

	voices, err := lister.Voices(ctx)
	if err != nil {
		logger.Warn("failed to list voices", "error", err)
		return nil
	}

	voice, ok := texttospeech.SelectVoice(voices, s.language, s.preferredVoices...)
	if !ok {
		logger.Debug("no voice for language", "language", s.language)
		return nil
	}
	return &voice
}

// speak narrates text and returns once it has been spoken, failed or timed
// out.
func (s *speechOutput) speak(ctx context.Context, text string, mood string, voice *texttospeech.Voice) error {
	if !s.isConfigured() {
		return nil
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	opts := append([]texttospeech.SpeakOption{}, s.speakOptions...)
	if voice != nil {
		opts = append(opts, texttospeech.WithVoice(*voice))
	}
	if mood != "" {
		opts = append(opts, texttospeech.WithMood(mood))
	}

	if err := s.synthesizer.Speak(ctx, text, opts...); err != nil {
		return fmt.Errorf("failed to speak: %w", err)
	}
	return nil
}
