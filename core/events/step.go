package events

const (
	KindStepNarrationStarted Kind = "step.narration_started"
	KindStepNarrationEnded   Kind = "step.narration_ended"
)

type StepNarrationStarted struct {
	Base
	StepIndex int
	Text      string
}

func NewStepNarrationStarted(generation uint64, stepIndex int, text string) StepNarrationStarted {
	return StepNarrationStarted{Base: NewBase(KindStepNarrationStarted, generation), StepIndex: stepIndex, Text: text}
}

// StepNarrationEnded marks the end of narration. A non-nil Err means speech
// failed; playback continues regardless.
type StepNarrationEnded struct {
	Base
	StepIndex int
	Err       error
}

func NewStepNarrationEnded(generation uint64, stepIndex int, err error) StepNarrationEnded {
	return StepNarrationEnded{Base: NewBase(KindStepNarrationEnded, generation), StepIndex: stepIndex, Err: err}
}
