package main

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/koscakluka/ema-tutor/core/lesson"
	"github.com/koscakluka/ema-tutor/core/speechtotext"
)

func newTestLessonModel(t *testing.T) *lessonModel {
	t.Helper()
	session, err := lesson.NewSession(lesson.DefaultQuestions())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	return newLessonModelWithSession(context.Background(), session)
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func TestLessonModelTypedAnswerIsChecked(t *testing.T) {
	m := newTestLessonModel(t)

	m.Update(keyMsg("tab"))
	if !m.typing {
		t.Fatalf("expected typing mode after tab")
	}
	m.Update(keyMsg("5"))
	_, cmd := m.Update(keyMsg("enter"))
	if cmd == nil {
		t.Fatalf("expected a check command")
	}
	if m.busy != "checking" {
		t.Fatalf("expected busy checking, got %q", m.busy)
	}

	m.Update(cmd())
	if m.feedback.Correct == nil || !*m.feedback.Correct {
		t.Fatalf("expected correct feedback, got %+v", m.feedback)
	}
	if got := m.session.Summary().Stars; got != 1 {
		t.Fatalf("expected 1 star, got %d", got)
	}
	if !strings.Contains(m.View(), lesson.PraiseLine) {
		t.Fatalf("expected praise in view")
	}
}

func TestLessonModelIgnoresKeysWhileBusy(t *testing.T) {
	m := newTestLessonModel(t)
	m.busy = "speaking"

	m.Update(keyMsg("n"))
	if m.session.Index() != 0 {
		t.Fatalf("expected to stay on first question, got %d", m.session.Index())
	}
}

func TestLessonModelNextSchedulesAsk(t *testing.T) {
	m := newTestLessonModel(t)

	_, cmd := m.Update(keyMsg("n"))
	if cmd == nil {
		t.Fatalf("expected ask to be scheduled")
	}
	if m.session.Index() != 1 {
		t.Fatalf("expected second question, got %d", m.session.Index())
	}

	// an ask for a question no longer shown is dropped
	if _, cmd := m.Update(askMsg{index: 0}); cmd != nil {
		t.Fatalf("expected stale ask to be ignored")
	}
	if _, cmd := m.Update(askMsg{index: 1}); cmd == nil {
		t.Fatalf("expected ask command for current question")
	}
}

func TestLessonModelListenWithoutRecognizer(t *testing.T) {
	m := newTestLessonModel(t)

	_, cmd := m.Update(keyMsg("l"))
	if cmd == nil {
		t.Fatalf("expected listen command")
	}
	msg := cmd()
	checked, ok := msg.(checkedMsg)
	if !ok {
		t.Fatalf("expected checkedMsg, got %T", msg)
	}
	if !errors.Is(checked.err, speechtotext.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", checked.err)
	}

	m.Update(msg)
	if m.busy != "" {
		t.Fatalf("expected model to be idle, got %q", m.busy)
	}
	if !strings.Contains(m.View(), "press tab") {
		t.Fatalf("expected typing hint in view")
	}
}

func TestLessonModelShowsSummaryWhenComplete(t *testing.T) {
	m := newTestLessonModel(t)
	for range m.session.Len() {
		m.Update(keyMsg("n"))
	}

	if !m.session.Summary().Complete {
		t.Fatalf("expected lesson to be complete")
	}
	if !strings.Contains(m.View(), "Lesson complete!") {
		t.Fatalf("expected summary view")
	}
	if _, cmd := m.Update(keyMsg("enter")); cmd == nil {
		t.Fatalf("expected quit command")
	}
}

func TestLessonModelClearFeedbackKeepsNewerFeedback(t *testing.T) {
	m := newTestLessonModel(t)
	stale := lesson.Feedback{Correct: new(bool)}
	current := lesson.Feedback{Correct: new(bool), Message: "newer"}
	m.feedback = current

	m.Update(clearFeedbackMsg{feedback: stale})
	if m.feedback.Message != "newer" {
		t.Fatalf("expected newer feedback to survive, got %+v", m.feedback)
	}

	m.Update(clearFeedbackMsg{feedback: current})
	if m.feedback.Correct != nil {
		t.Fatalf("expected feedback cleared, got %+v", m.feedback)
	}
}
