package events

import (
	"errors"
	"testing"
)

func TestConstructorsEmitExpectedKinds(t *testing.T) {
	testCases := []struct {
		name     string
		event    Event
		expected Kind
	}{
		{name: "playback started", event: NewPlaybackStarted(1, "id", "demo", 5), expected: KindPlaybackStarted},
		{name: "playback ended", event: NewPlaybackEnded(1, "id"), expected: KindPlaybackEnded},
		{name: "playback stopped", event: NewPlaybackStopped(1, "id", 2), expected: KindPlaybackStopped},
		{name: "narration started", event: NewStepNarrationStarted(1, 0, "hi"), expected: KindStepNarrationStarted},
		{name: "narration ended", event: NewStepNarrationEnded(1, 0, nil), expected: KindStepNarrationEnded},
		{name: "answer waiting", event: NewAnswerWaiting(1, 1, "5 + 3"), expected: KindAnswerWaiting},
		{name: "listening started", event: NewListeningStarted(1, 1, 1), expected: KindListeningStarted},
		{name: "answer recognized", event: NewAnswerRecognized(1, 1, "8", false), expected: KindAnswerRecognized},
		{name: "answer matched", event: NewAnswerMatched(1, 1, "8", 1), expected: KindAnswerMatched},
		{name: "answer mismatched", event: NewAnswerMismatched(1, 1, "7", "8", 1), expected: KindAnswerMismatched},
		{name: "recognition failed", event: NewRecognitionFailed(1, 1, errors.New("boom")), expected: KindRecognitionFailed},
		{name: "attempts exhausted", event: NewAnswerAttemptsExhausted(1, 1, 3), expected: KindAnswerAttemptsExhausted},
		{name: "lesson answer checked", event: NewLessonAnswerChecked(0, "hola", true, 3), expected: KindLessonAnswerChecked},
		{name: "lesson completed", event: NewLessonCompleted(4, 5), expected: KindLessonCompleted},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			if got := testCase.event.Kind(); got != testCase.expected {
				t.Fatalf("expected kind %q, got %q", testCase.expected, got)
			}
			if testCase.event.Timestamp().IsZero() {
				t.Fatalf("expected timestamp to be set")
			}
		})
	}
}

func TestEventsCarryGeneration(t *testing.T) {
	event := NewAnswerMatched(7, 1, "8", 2)

	if got := event.Generation(); got != 7 {
		t.Fatalf("expected generation 7, got %d", got)
	}
	if got := NewLessonCompleted(1, 1).Generation(); got != 0 {
		t.Fatalf("expected lesson events to carry generation 0, got %d", got)
	}
}

func TestPlaybackEndedAndStoppedKindsAreDistinct(t *testing.T) {
	if NewPlaybackEnded(1, "id").Kind() == NewPlaybackStopped(1, "id", 0).Kind() {
		t.Fatalf("expected ended and stopped kinds to differ")
	}
}
