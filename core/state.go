package tutor

// SessionState is the snapshot pushed to the presentation layer. The zero
// value is the idle state.
type SessionState struct {
	SessionID          string
	CurrentStepIndex   int
	IsPlaying          bool
	IsSpeaking         bool
	IsListening        bool
	IsWaitingForAnswer bool
	LastRecognizedText string
	// Attempts counts judged answers for the current question.
	Attempts int
}

// Phase names what the player is doing right now.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseNarrating  Phase = "narrating"
	PhaseWaiting    Phase = "waiting"
	PhaseListening  Phase = "listening"
	PhaseInProgress Phase = "in_progress"
)

// Phase summarizes the state for display.
func (s SessionState) Phase() Phase {
	switch {
	case !s.IsPlaying:
		return PhaseIdle
	case s.IsSpeaking:
		return PhaseNarrating
	case s.IsListening:
		return PhaseListening
	case s.IsWaitingForAnswer:
		return PhaseWaiting
	default:
		return PhaseInProgress
	}
}

func (s SessionState) IsIdle() bool {
	return s == SessionState{}
}
