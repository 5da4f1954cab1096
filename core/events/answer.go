package events

const (
	KindAnswerWaiting           Kind = "answer.waiting"
	KindListeningStarted        Kind = "answer.listening_started"
	KindAnswerRecognized        Kind = "answer.recognized"
	KindAnswerMatched           Kind = "answer.matched"
	KindAnswerMismatched        Kind = "answer.mismatched"
	KindRecognitionFailed       Kind = "answer.recognition_failed"
	KindAnswerAttemptsExhausted Kind = "answer.attempts_exhausted"
)

type AnswerWaiting struct {
	Base
	StepIndex int
	Prompt    string
}

func NewAnswerWaiting(generation uint64, stepIndex int, prompt string) AnswerWaiting {
	return AnswerWaiting{Base: NewBase(KindAnswerWaiting, generation), StepIndex: stepIndex, Prompt: prompt}
}

type ListeningStarted struct {
	Base
	StepIndex int
	Attempt   int
}

func NewListeningStarted(generation uint64, stepIndex, attempt int) ListeningStarted {
	return ListeningStarted{Base: NewBase(KindListeningStarted, generation), StepIndex: stepIndex, Attempt: attempt}
}

// AnswerRecognized carries the normalized answer text. Manual is set when the
// answer was typed instead of spoken.
type AnswerRecognized struct {
	Base
	StepIndex int
	Text      string
	Manual    bool
}

func NewAnswerRecognized(generation uint64, stepIndex int, text string, manual bool) AnswerRecognized {
	return AnswerRecognized{Base: NewBase(KindAnswerRecognized, generation), StepIndex: stepIndex, Text: text, Manual: manual}
}

type AnswerMatched struct {
	Base
	StepIndex int
	Text      string
	Attempts  int
}

func NewAnswerMatched(generation uint64, stepIndex int, text string, attempts int) AnswerMatched {
	return AnswerMatched{Base: NewBase(KindAnswerMatched, generation), StepIndex: stepIndex, Text: text, Attempts: attempts}
}

type AnswerMismatched struct {
	Base
	StepIndex int
	Text      string
	Expected  string
	Attempts  int
}

func NewAnswerMismatched(generation uint64, stepIndex int, text, expected string, attempts int) AnswerMismatched {
	return AnswerMismatched{
		Base:      NewBase(KindAnswerMismatched, generation),
		StepIndex: stepIndex,
		Text:      text,
		Expected:  expected,
		Attempts:  attempts,
	}
}

type RecognitionFailed struct {
	Base
	StepIndex int
	Err       error
}

func NewRecognitionFailed(generation uint64, stepIndex int, err error) RecognitionFailed {
	return RecognitionFailed{Base: NewBase(KindRecognitionFailed, generation), StepIndex: stepIndex, Err: err}
}

type AnswerAttemptsExhausted struct {
	Base
	StepIndex int
	Attempts  int
}

func NewAnswerAttemptsExhausted(generation uint64, stepIndex, attempts int) AnswerAttemptsExhausted {
	return AnswerAttemptsExhausted{Base: NewBase(KindAnswerAttemptsExhausted, generation), StepIndex: stepIndex, Attempts: attempts}
}
