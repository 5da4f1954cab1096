package events

const (
	KindPlaybackStarted Kind = "playback.started"
	KindPlaybackEnded   Kind = "playback.ended"
	KindPlaybackStopped Kind = "playback.stopped"
)

// PlaybackStarted marks the start of a new playback session.
type PlaybackStarted struct {
	Base
	SessionID  string
	ScriptName string
	Steps      int
}

func NewPlaybackStarted(generation uint64, sessionID, scriptName string, steps int) PlaybackStarted {
	return PlaybackStarted{
		Base:       NewBase(KindPlaybackStarted, generation),
		SessionID:  sessionID,
		ScriptName: scriptName,
		Steps:      steps,
	}
}

// PlaybackEnded marks that the final step completed.
type PlaybackEnded struct {
	Base
	SessionID string
}

func NewPlaybackEnded(generation uint64, sessionID string) PlaybackEnded {
	return PlaybackEnded{Base: NewBase(KindPlaybackEnded, generation), SessionID: sessionID}
}

// PlaybackStopped marks playback that ended before the final step, either on
// request or because another player took over the speech platform.
type PlaybackStopped struct {
	Base
	SessionID string
	StepIndex int
}

func NewPlaybackStopped(generation uint64, sessionID string, stepIndex int) PlaybackStopped {
	return PlaybackStopped{Base: NewBase(KindPlaybackStopped, generation), SessionID: sessionID, StepIndex: stepIndex}
}
