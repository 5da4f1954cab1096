package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/koscakluka/ema-tutor/core/lesson"
	"github.com/koscakluka/ema-tutor/core/speechtotext"
	"github.com/koscakluka/ema-tutor/internal/config"
)

const (
	askDelay      = time.Second
	feedbackShown = 3 * time.Second
)

type askMsg struct{ index int }

type spokenMsg struct{ err error }

type checkedMsg struct {
	feedback lesson.Feedback
	err      error
}

type clearFeedbackMsg struct{ feedback lesson.Feedback }

type lessonModel struct {
	ctx     context.Context
	session *lesson.Session

	busy     string
	typing   bool
	feedback lesson.Feedback
	err      error

	input    textinput.Model
	progress progress.Model
	spinner  spinner.Model
	width    int
}

func newLessonModel(ctx context.Context, cfg config.Config, speech *speech) (*lessonModel, error) {
	session, err := lesson.NewSession(lesson.DefaultQuestions(),
		lesson.WithSynthesizer(speech.synthesizer),
		lesson.WithRecognizer(speech.recognizer),
		lesson.WithLocale(cfg.Language),
	)
	if err != nil {
		return nil, err
	}
	return newLessonModelWithSession(ctx, session), nil
}

func newLessonModelWithSession(ctx context.Context, session *lesson.Session) *lessonModel {
	input := textinput.New()
	input.Placeholder = "type your answer"
	input.CharLimit = 32

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = statusStyle

	return &lessonModel{
		ctx:      ctx,
		session:  session,
		input:    input,
		progress: progress.New(progress.WithDefaultGradient(), progress.WithWidth(40)),
		spinner:  spin,
		width:    defaultWidth,
	}
}

func (m *lessonModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.scheduleAsk())
}

// scheduleAsk reads the question aloud shortly after it is shown.
func (m *lessonModel) scheduleAsk() tea.Cmd {
	index := m.session.Index()
	return tea.Tick(askDelay, func(time.Time) tea.Msg { return askMsg{index: index} })
}

func (m *lessonModel) speak(busy string, say func(context.Context) error) tea.Cmd {
	m.busy = busy
	return func() tea.Msg { return spokenMsg{err: say(m.ctx)} }
}

func (m *lessonModel) check(answer string) tea.Cmd {
	m.busy = "checking"
	return func() tea.Msg {
		return checkedMsg{feedback: m.session.Check(m.ctx, answer)}
	}
}

func (m *lessonModel) listen() tea.Cmd {
	m.busy = "listening"
	return func() tea.Msg {
		feedback, err := m.session.Listen(m.ctx)
		return checkedMsg{feedback: feedback, err: err}
	}
}

func (m *lessonModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case askMsg:
		if msg.index != m.session.Index() || m.busy != "" {
			return m, nil
		}
		return m, m.speak("speaking", m.session.Ask)

	case spokenMsg:
		m.busy = ""
		if msg.err != nil && !errors.Is(msg.err, context.Canceled) {
			m.err = msg.err
		}
		return m, nil

	case checkedMsg:
		m.busy = ""
		if msg.err != nil {
			m.err = msg.err
			if errors.Is(msg.err, speechtotext.ErrUnavailable) {
				m.err = errors.New("speech recognition is not available, press tab to type your answer")
			}
			return m, nil
		}
		m.err = nil
		m.feedback = msg.feedback
		m.input.SetValue("")
		feedback := msg.feedback
		return m, tea.Tick(feedbackShown, func(time.Time) tea.Msg { return clearFeedbackMsg{feedback: feedback} })

	case clearFeedbackMsg:
		if m.feedback.Correct == msg.feedback.Correct {
			m.feedback = lesson.Feedback{}
			m.session.ClearFeedback()
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *lessonModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.typing {
		switch msg.String() {
		case "esc", "tab":
			m.typing = false
			m.input.Blur()
			return m, nil
		case "enter":
			if m.busy != "" || strings.TrimSpace(m.input.Value()) == "" {
				return m, nil
			}
			return m, m.check(m.input.Value())
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	if m.session.Summary().Complete {
		if msg.String() == "q" || msg.String() == "enter" {
			return m, tea.Quit
		}
		return m, nil
	}

	if m.busy != "" {
		return m, nil
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		m.typing = true
		return m, m.input.Focus()
	case "h":
		return m, m.speak("hint", m.session.Hint)
	case "r":
		return m, m.speak("speaking", m.session.Repeat)
	case "l":
		return m, m.listen()
	case "n":
		m.feedback = lesson.Feedback{}
		if !m.session.Next() {
			return m, nil
		}
		return m, m.scheduleAsk()
	case "p":
		m.feedback = lesson.Feedback{}
		if !m.session.Previous() {
			return m, nil
		}
		return m, m.scheduleAsk()
	}
	return m, nil
}

func (m *lessonModel) View() string {
	summary := m.session.Summary()
	if summary.Complete {
		return containerPad.Render(m.summaryView(summary))
	}

	question := m.session.Current()
	var b strings.Builder

	b.WriteString(titleStyle.Render(fmt.Sprintf("Question %d of %d", m.session.Index()+1, m.session.Len())))
	b.WriteString("\n")
	b.WriteString(m.progress.ViewAs(m.session.Progress()/100) + "\n\n")
	b.WriteString(heartStyle.Render(strings.Repeat("♥ ", summary.Hearts)) + "  ")
	b.WriteString(starStyle.Render(fmt.Sprintf("★ %d", summary.Stars)) + "\n\n")

	b.WriteString(promptStyle.Render(question.Visual) + "\n")
	b.WriteString(currentStyle.Render(wrap(question.Question, m.width)) + "\n")
	if len(question.Options) > 0 {
		b.WriteString(pendingStyle.Render(strings.Join(question.Options, " / ")) + "\n")
	}
	b.WriteString("\n")

	if m.busy != "" {
		b.WriteString(m.spinner.View() + " " + m.busy + "\n")
	}
	if m.feedback.Correct != nil {
		if *m.feedback.Correct {
			b.WriteString(correctStyle.Render(m.feedback.Message) + "\n")
		} else {
			b.WriteString(wrongStyle.Render(m.feedback.Message) + "\n")
		}
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(wrap(m.err.Error(), m.width)) + "\n")
	}
	if m.typing {
		b.WriteString(m.input.View() + "\n")
	}

	help := "l: listen • tab: type • h: hint • r: repeat • n/p: next/previous • q: quit"
	if m.typing {
		help = "enter: check • esc: back"
	}
	b.WriteString(helpStyle.Render(wrap(help, m.width)))

	return containerPad.Render(b.String())
}

func (m *lessonModel) summaryView(summary lesson.Summary) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Lesson complete!") + "\n")
	b.WriteString(fmt.Sprintf("You answered %d of %d questions correctly.\n", summary.Score, summary.TotalQuestions))
	b.WriteString(starStyle.Render(strings.Repeat("★ ", summary.Stars)) + "\n")
	b.WriteString(heartStyle.Render(strings.Repeat("♥ ", summary.Hearts)) + "\n")
	b.WriteString(helpStyle.Render("enter or q: quit"))
	return b.String()
}
