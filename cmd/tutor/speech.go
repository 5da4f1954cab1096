package main

import (
	"fmt"

	"github.com/koscakluka/ema-tutor/core/audio/miniaudio"
	"github.com/koscakluka/ema-tutor/core/audio/portaudio"
	"github.com/koscakluka/ema-tutor/core/speechtotext"
	sttdeepgram "github.com/koscakluka/ema-tutor/core/speechtotext/deepgram"
	"github.com/koscakluka/ema-tutor/core/texttospeech"
	ttsdeepgram "github.com/koscakluka/ema-tutor/core/texttospeech/deepgram"
	"github.com/koscakluka/ema-tutor/internal/config"
)

const portaudioBufferSize = 1024

type audioDevice interface {
	ttsdeepgram.AudioOutput
	sttdeepgram.AudioInput
	Close()
}

// speech holds the adapters handed to the player. Either may be nil, in
// which case the player narrates silently or waits for typed answers.
type speech struct {
	synthesizer texttospeech.Synthesizer
	recognizer  speechtotext.Recognizer
	device      audioDevice
}

func newSpeech(cfg config.Config) (*speech, error) {
	s := &speech{}

	switch cfg.AudioBackend {
	case config.AudioNone:
		return s, nil
	case config.AudioPortaudio:
		device, err := portaudio.NewClient(portaudioBufferSize)
		if err != nil {
			return nil, fmt.Errorf("failed to open portaudio: %w", err)
		}
		s.device = device
	default:
		device, err := miniaudio.NewClient()
		if err != nil {
			return nil, fmt.Errorf("failed to open miniaudio: %w", err)
		}
		s.device = device
	}

	if cfg.Deepgram.APIKey == "" {
		logger.Warn("DEEPGRAM_API_KEY is not set, speech is disabled")
		return s, nil
	}

	synthesizer, err := ttsdeepgram.NewTextToSpeechClient(s.device,
		ttsdeepgram.WithAPIKey(cfg.Deepgram.APIKey),
		ttsdeepgram.WithVoiceID(cfg.Voice),
	)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to create text to speech client: %w", err)
	}
	s.synthesizer = synthesizer

	recognizer, err := sttdeepgram.NewTranscriptionClient(s.device,
		sttdeepgram.WithAPIKey(cfg.Deepgram.APIKey),
		sttdeepgram.WithModel(cfg.Deepgram.Model),
	)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("failed to create speech to text client: %w", err)
	}
	s.recognizer = recognizer

	return s, nil
}

func (s *speech) Close() {
	if s != nil && s.device != nil {
		s.device.Close()
		s.device = nil
	}
}
