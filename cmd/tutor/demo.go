package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	tutor "github.com/koscakluka/ema-tutor/core"
	"github.com/koscakluka/ema-tutor/core/events"
	"github.com/koscakluka/ema-tutor/core/script"
	"github.com/koscakluka/ema-tutor/core/texttospeech"
	"github.com/koscakluka/ema-tutor/internal/config"
)

type stateMsg tutor.SessionState

type eventMsg struct{ event events.Event }

// playerUpdates bridges player callbacks into the program. Callbacks block
// while the buffer is full, so Start and Stop are only ever called from
// commands, never from Update.
type playerUpdates chan tea.Msg

func (u playerUpdates) options() []tutor.PlayerOption {
	return []tutor.PlayerOption{
		tutor.WithStateChangedCallback(func(state tutor.SessionState) { u <- stateMsg(state) }),
		tutor.WithEventCallback(func(event events.Event) { u <- eventMsg{event: event} }),
	}
}

func (u playerUpdates) next() tea.Cmd {
	return func() tea.Msg { return <-u }
}

type demoModel struct {
	ctx     context.Context
	player  *tutor.Player
	script  script.Script
	updates playerUpdates

	state   tutor.SessionState
	status  string
	err     error
	input   textinput.Model
	spinner spinner.Model
	width   int
}

func newDemoModel(ctx context.Context, cfg config.Config, speech *speech) (*demoModel, error) {
	s := script.LandingDemo()
	if cfg.ScriptFile != "" {
		loaded, err := script.Load(cfg.ScriptFile)
		if err != nil {
			return nil, err
		}
		s = loaded
	}

	updates := make(playerUpdates, 64)
	opts := append(updates.options(),
		tutor.WithSynthesizer(speech.synthesizer),
		tutor.WithRecognizer(speech.recognizer),
		tutor.WithTimings(cfg.PlayerTimings()),
		tutor.WithPreferredVoices(cfg.PreferredVoices...),
		tutor.WithSpeakOptions(texttospeech.WithRate(0.9), texttospeech.WithPitch(1.1), texttospeech.WithVolume(1)),
		tutor.WithEncouragement(cfg.Encouragement),
		tutor.WithMaxAttempts(cfg.MaxAttempts),
	)
	if s.Language == "" {
		opts = append(opts, tutor.WithLanguage(cfg.Language))
	}

	return newDemoModelWithPlayer(ctx, s, tutor.NewPlayer(s, opts...), updates), nil
}

func newDemoModelWithPlayer(ctx context.Context, s script.Script, player *tutor.Player, updates playerUpdates) *demoModel {
	input := textinput.New()
	input.Placeholder = "type your answer"
	input.CharLimit = 64

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = statusStyle

	return &demoModel{
		ctx:     ctx,
		player:  player,
		script:  s,
		updates: updates,
		status:  "Press space to hear the demo",
		input:   input,
		spinner: spin,
		width:   defaultWidth,
	}
}

func (m *demoModel) Init() tea.Cmd {
	return tea.Batch(m.updates.next(), m.spinner.Tick)
}

func (m *demoModel) start() tea.Cmd {
	return func() tea.Msg {
		m.player.Start(m.ctx)
		return nil
	}
}

func (m *demoModel) stop() tea.Cmd {
	return func() tea.Msg {
		m.player.Stop()
		return nil
	}
}

func (m *demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case stateMsg:
		m.state = tutor.SessionState(msg)
		cmds := []tea.Cmd{m.updates.next()}
		if m.state.IsWaitingForAnswer && !m.input.Focused() {
			cmds = append(cmds, m.input.Focus())
		} else if !m.state.IsWaitingForAnswer && m.input.Focused() {
			m.input.Blur()
			m.input.SetValue("")
		}
		return m, tea.Batch(cmds...)

	case eventMsg:
		m.describe(msg.event)
		return m, m.updates.next()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *demoModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Sequence(m.stop(), tea.Quit)
	}

	if m.input.Focused() {
		switch msg.String() {
		case "esc":
			return m, m.stop()
		case "enter":
			answer := m.input.Value()
			if m.player.SubmitAnswer(answer) {
				m.input.SetValue("")
				m.err = nil
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case " ":
		if m.state.IsIdle() {
			return m, m.start()
		}
		return m, m.stop()
	case "q":
		return m, tea.Sequence(m.stop(), tea.Quit)
	}
	return m, nil
}

// describe turns playback events into the status line.
func (m *demoModel) describe(event events.Event) {
	switch e := event.(type) {
	case events.PlaybackStarted:
		m.status = "Playing " + e.ScriptName
		m.err = nil
	case events.PlaybackEnded:
		m.status = "Demo finished. Press space to play again"
	case events.PlaybackStopped:
		m.status = "Stopped. Press space to play again"
	case events.StepNarrationEnded:
		if e.Err != nil {
			m.err = e.Err
		}
	case events.AnswerWaiting:
		m.status = "Your turn! Say or type the answer"
	case events.AnswerMatched:
		m.status = correctStyle.Render("Correct: " + e.Text)
	case events.AnswerMismatched:
		m.status = wrongStyle.Render(fmt.Sprintf("Not quite (%q), try again", e.Text))
	case events.RecognitionFailed:
		m.err = e.Err
	case events.AnswerAttemptsExhausted:
		m.status = "Let's move on"
	}
}

// questionNumber counts the question steps up to the current one.
func (m *demoModel) questionNumber() int {
	n := 0
	for _, step := range m.script.Steps[:m.state.CurrentStepIndex+1] {
		if step.RequiresAnswer {
			n++
		}
	}
	return n
}

func (m *demoModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Voice demo"))
	b.WriteString("\n")

	for i, step := range m.script.Steps {
		line := wrap(step.Text, m.width)
		switch {
		case !m.state.IsPlaying:
			line = pendingStyle.Render(line)
		case i < m.state.CurrentStepIndex:
			line = doneStyle.Render(line)
		case i == m.state.CurrentStepIndex:
			line = currentStyle.Render("▶ " + line)
		default:
			line = pendingStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	b.WriteString("\n")

	if m.state.IsWaitingForAnswer {
		b.WriteString(statusStyle.Render(fmt.Sprintf("Question %d of %d", m.questionNumber(), m.script.QuestionCount())) + "\n")
		if prompt := m.script.Steps[m.state.CurrentStepIndex].Prompt; prompt != "" {
			b.WriteString(promptStyle.Render(prompt) + "\n")
		}
	}

	switch m.state.Phase() {
	case tutor.PhaseNarrating:
		b.WriteString(m.spinner.View() + " speaking\n")
	case tutor.PhaseListening:
		b.WriteString(m.spinner.View() + " listening\n")
	}
	b.WriteString(statusStyle.Render(m.status) + "\n")

	if m.state.LastRecognizedText != "" {
		b.WriteString(fmt.Sprintf("Heard: %q (attempt %d)\n", m.state.LastRecognizedText, m.state.Attempts))
	}
	if m.err != nil {
		b.WriteString(errorStyle.Render(wrap(m.err.Error(), m.width)) + "\n")
	}
	if m.input.Focused() {
		b.WriteString(m.input.View() + "\n")
	}

	help := "space: play/stop • q: quit"
	if m.input.Focused() {
		help = "enter: submit answer • esc: stop"
	}
	b.WriteString(helpStyle.Render(help))

	return containerPad.Render(b.String())
}
