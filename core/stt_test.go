package tutor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/koscakluka/ema-tutor/core/speechtotext"
)

func TestSpeechInputUnconfiguredIsUnavailable(t *testing.T) {
	input := speechInput{}

	if _, err := input.recognize(context.Background()); !errors.Is(err, speechtotext.ErrUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
}

func TestSpeechInputNormalizesTranscript(t *testing.T) {
	recognizer := &recognizerStub{responses: []recognition{{text: "  The Answer Is 8 "}}}
	input := speechInput{recognizer: recognizer, locale: "en-GB", timeout: time.Second}

	transcript, err := input.recognize(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if transcript != "the answer is 8" {
		t.Fatalf("expected normalized transcript, got %q", transcript)
	}
	if options := recognizer.options[0]; options.Locale != "en-GB" || options.Timeout != time.Second {
		t.Fatalf("expected locale and timeout to be forwarded, got %+v", options)
	}
}

func TestSpeechInputEmptyTranscriptIsNoSpeech(t *testing.T) {
	input := speechInput{recognizer: &recognizerStub{responses: []recognition{{text: "   "}}}}

	if _, err := input.recognize(context.Background()); !errors.Is(err, speechtotext.ErrNoSpeech) {
		t.Fatalf("expected no speech error, got %v", err)
	}
}

func TestSpeechInputWrapsRecognizerErrors(t *testing.T) {
	cause := errors.New("socket closed")
	input := speechInput{recognizer: &recognizerStub{responses: []recognition{{err: cause}}}}

	if _, err := input.recognize(context.Background()); !errors.Is(err, cause) {
		t.Fatalf("expected wrapped recognizer error, got %v", err)
	}
}

func TestDefaultTimingsPreserveOriginalPacing(t *testing.T) {
	timings := DefaultTimings()

	if timings.SettleDelay != time.Second || timings.StepDelay != 1500*time.Millisecond {
		t.Fatalf("expected settle 1s and step 1.5s, got %s and %s", timings.SettleDelay, timings.StepDelay)
	}
	if timings.MatchDelay != time.Second || timings.RetryDelay != 3*time.Second || timings.ErrorRetryDelay != 2*time.Second {
		t.Fatalf("expected match 1s, retry 3s and error retry 2s, got %+v", timings)
	}
}
