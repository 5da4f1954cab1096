package main

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	tutor "github.com/koscakluka/ema-tutor/core"
	"github.com/koscakluka/ema-tutor/core/events"
	"github.com/koscakluka/ema-tutor/core/script"
)

func newTestDemoModel(t *testing.T) *demoModel {
	t.Helper()
	s := script.Script{
		Name: "test",
		Steps: []script.Step{
			{Text: "Hello"},
			{Text: "What is 1 + 1?", RequiresAnswer: true, ExpectedAnswer: "2", Prompt: "1 + 1"},
		},
	}
	updates := make(playerUpdates, 64)
	opts := append(updates.options(),
		tutor.WithTimings(tutor.Timings{}),
		tutor.WithPlatform(tutor.NewPlatform()),
	)
	m := newDemoModelWithPlayer(context.Background(), s, tutor.NewPlayer(s, opts...), updates)
	t.Cleanup(m.player.Stop)
	return m
}

// pump feeds player updates into the model until done reports true.
func pump(t *testing.T, m *demoModel, done func(tea.Msg) bool) {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case msg := <-m.updates:
			m.Update(msg)
			if done(msg) {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for player update, state %+v", m.state)
		}
	}
}

func TestDemoModelPlaysAndAcceptsTypedAnswer(t *testing.T) {
	m := newTestDemoModel(t)

	_, cmd := m.Update(keyMsg(" "))
	if cmd == nil {
		t.Fatalf("expected start command")
	}
	cmd()

	pump(t, m, func(msg tea.Msg) bool {
		state, ok := msg.(stateMsg)
		return ok && state.IsWaitingForAnswer
	})
	if !m.input.Focused() {
		t.Fatalf("expected answer input to be focused")
	}
	if !strings.Contains(m.View(), "1 + 1") {
		t.Fatalf("expected prompt in view")
	}
	if !strings.Contains(m.View(), "Question 1 of 1") {
		t.Fatalf("expected question number in view")
	}

	m.Update(keyMsg("2"))
	m.Update(keyMsg("enter"))

	pump(t, m, func(msg tea.Msg) bool {
		event, ok := msg.(eventMsg)
		if !ok {
			return false
		}
		_, ended := event.event.(events.PlaybackEnded)
		return ended
	})
	if m.state.IsPlaying {
		t.Fatalf("expected playback to have ended, got %+v", m.state)
	}
	if !strings.Contains(m.status, "Demo finished") {
		t.Fatalf("expected finished status, got %q", m.status)
	}
}

func TestDemoModelStopKeyStopsPlayback(t *testing.T) {
	m := newTestDemoModel(t)
	_, start := m.Update(keyMsg(" "))
	start()

	pump(t, m, func(msg tea.Msg) bool {
		state, ok := msg.(stateMsg)
		return ok && state.IsWaitingForAnswer
	})

	_, cmd := m.Update(keyMsg("esc"))
	if cmd == nil {
		t.Fatalf("expected stop command")
	}
	cmd()

	pump(t, m, func(msg tea.Msg) bool {
		state, ok := msg.(stateMsg)
		return ok && tutor.SessionState(state).IsIdle()
	})
	if m.input.Focused() {
		t.Fatalf("expected answer input to be blurred after stop")
	}
}

func TestDemoModelDescribesEvents(t *testing.T) {
	m := newTestDemoModel(t)

	m.describe(events.NewPlaybackStarted(1, "session", "test", 2))
	if m.status != "Playing test" {
		t.Fatalf("expected playing status, got %q", m.status)
	}
	m.describe(events.NewPlaybackStopped(1, "session", 1))
	if !strings.Contains(m.status, "Stopped") {
		t.Fatalf("expected stopped status, got %q", m.status)
	}
}
