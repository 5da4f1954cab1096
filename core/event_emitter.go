package tutor

import "github.com/koscakluka/ema-tutor/core/events"

type eventEmitter func(events.Event)

func noopEventEmitter(events.Event) {}

func noopStateChanged(SessionState) {}
