package tui

import (
	"context"
	"fmt"
	"strings"

	"vr-therapy-platform/internal/domain/entity"
	"vr-therapy-platform/internal/usecase"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Select: key.NewBinding(key.WithKeys("enter", "right", "l"), key.WithHelp("enter", "answer")),
	Back:   key.NewBinding(key.WithKeys("left", "h", "backspace"), key.WithHelp("←", "previous")),
	Quit:   key.NewBinding(key.WithKeys("ctrl+c", "q", "esc"), key.WithHelp("q", "quit")),
}

// savedMsg reports the outcome of persisting a completed flow
type savedMsg struct {
	result *entity.OnboardingResult
	err    error
}

// OnboardingModel walks a guardian or therapist through the questionnaire
// one question at a time
type OnboardingModel struct {
	ctx        context.Context
	onboarding usecase.OnboardingUsecase
	flow       *usecase.OnboardingFlow

	cursor    int
	saving    bool
	result    *entity.OnboardingResult
	err       error
	cancelled bool
}

func NewOnboardingModel(ctx context.Context, onboarding usecase.OnboardingUsecase, flow *usecase.OnboardingFlow) OnboardingModel {
	return OnboardingModel{
		ctx:        ctx,
		onboarding: onboarding,
		flow:       flow,
	}
}

func (m OnboardingModel) Init() tea.Cmd {
	return nil
}

func (m OnboardingModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case savedMsg:
		m.saving = false
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit

	case tea.KeyMsg:
		if key.Matches(msg, keys.Quit) {
			m.cancelled = m.result == nil
			return m, tea.Quit
		}
		if m.saving || m.flow.Completed() {
			return m, nil
		}

		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.flow.Current().Options)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Select):
			return m.answer()
		case key.Matches(msg, keys.Back):
			m.err = m.flow.Retreat()
			m.cursor = m.candidateIndex()
		}
	}

	return m, nil
}

func (m OnboardingModel) answer() (tea.Model, tea.Cmd) {
	option := m.flow.Current().Options[m.cursor]
	if err := m.flow.SelectAnswer(option.Value); err != nil {
		m.err = err
		return m, nil
	}

	completed, err := m.flow.Advance()
	if err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil
	m.cursor = m.candidateIndex()

	if !completed {
		return m, nil
	}

	m.saving = true
	return m, m.save()
}

func (m OnboardingModel) save() tea.Cmd {
	flow := m.flow
	return func() tea.Msg {
		result, err := m.onboarding.Complete(m.ctx, flow)
		return savedMsg{result: result, err: err}
	}
}

// candidateIndex places the cursor on the preselected answer, if any
func (m OnboardingModel) candidateIndex() int {
	current := m.flow.Current()
	if current == nil {
		return 0
	}
	for i, opt := range current.Options {
		if opt.Value == m.flow.Candidate() {
			return i
		}
	}
	return 0
}

func (m OnboardingModel) View() string {
	var b strings.Builder

	switch {
	case m.result != nil:
		b.WriteString(successStyle.Render("Onboarding complete"))
		b.WriteString(fmt.Sprintf("\n\nTotal score: %d\n", m.result.TotalScore))
		if len(m.result.RecommendedScenes) > 0 {
			b.WriteString("Recommended scenes: " + strings.Join(m.result.RecommendedScenes, ", "))
		}
	case m.saving:
		b.WriteString(titleStyle.Render("Saving answers..."))
	case m.flow.Completed():
		b.WriteString(titleStyle.Render("Answers recorded"))
	default:
		question := m.flow.Current()
		b.WriteString(helpStyle.Render(fmt.Sprintf("Question %d of %d", m.flow.Index()+1, m.flow.Total())))
		b.WriteString("\n")
		b.WriteString(categoryStyle.Render(question.Category))
		b.WriteString("\n")
		b.WriteString(titleStyle.Render(question.Question))
		b.WriteString("\n\n")
		for i, opt := range question.Options {
			if i == m.cursor {
				b.WriteString(cursorStyle.Render("> " + opt.Label))
			} else {
				b.WriteString(optionStyle.Render("  " + opt.Label))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(helpLine(keys.Up, keys.Down, keys.Select, keys.Back, keys.Quit)))
	}

	if m.err != nil {
		b.WriteString("\n\n")
		b.WriteString(errorStyle.Render(m.err.Error()))
	}

	return cardStyle.Render(b.String())
}

func helpLine(bindings ...key.Binding) string {
	parts := make([]string, len(bindings))
	for i, binding := range bindings {
		help := binding.Help()
		parts[i] = help.Key + " " + help.Desc
	}
	return strings.Join(parts, " • ")
}

// Result returns the saved result once the flow has been persisted
func (m OnboardingModel) Result() *entity.OnboardingResult {
	return m.result
}

// Err returns the last error shown to the user
func (m OnboardingModel) Err() error {
	return m.err
}

// Cancelled reports whether the user quit before the result was saved
func (m OnboardingModel) Cancelled() bool {
	return m.cancelled
}
