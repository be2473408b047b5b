package ui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ilkoid/onelife/internal/app"
	"github.com/ilkoid/onelife/pkg/events"
	"github.com/ilkoid/onelife/pkg/tui"
	"github.com/ilkoid/onelife/pkg/utils"
)

// Update обрабатывает клавиши, события анализа и результат Analyze.
func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.input.Width = inputWidth(msg.Width)
		_, cmd := m.base.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tui.EventMsg:
		m.applyEvent(events.Event(msg))
		_, cmd := m.base.Update(msg)
		m.updateHint()
		return m, cmd

	case analysisDoneMsg:
		m.pending = false
		m.lastErr = msg.err
		if msg.err != nil && !errors.Is(msg.err, app.ErrBusy) {
			utils.Warn("Analysis finished with error", "error", msg.err)
		}
		m.updateHint()
		return m, nil
	}

	// Тики спиннера, мышь, мигание курсора
	_, baseCmd := m.base.Update(msg)
	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	return m, tea.Batch(baseCmd, inputCmd)
}

func (m MainModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.base.Keys()

	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case m.phase == app.PhaseInput && key.Matches(msg, keys.Submit):
		return m.submit()

	case m.phase == app.PhaseResult && key.Matches(msg, keys.NewAnalysis):
		return m.reset()
	}

	if m.phase == app.PhaseInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	// В остальных фазах клавиши прокручивают отчёт
	_, cmd := m.base.Update(msg)
	return m, cmd
}

// submit запускает анализ. Пустая ссылка и повторный Enter игнорируются.
func (m MainModel) submit() (tea.Model, tea.Cmd) {
	link := strings.TrimSpace(m.input.Value())
	if link == "" || m.busy() {
		return m, nil
	}

	m.pending = true
	m.lastErr = nil
	m.input.Blur()
	m.updateHint()
	return m, m.analyzeCmd(link)
}

// analyzeCmd выполняет анализ вне цикла Update; прогресс приходит событиями.
func (m MainModel) analyzeCmd(link string) tea.Cmd {
	orch, ctx := m.orch, m.ctx
	return func() tea.Msg {
		return analysisDoneMsg{err: orch.Analyze(ctx, link)}
	}
}

// reset возвращает экран ввода. Во время стрима недоступен.
func (m MainModel) reset() (tea.Model, tea.Cmd) {
	if m.busy() {
		return m, nil
	}
	if err := m.orch.Reset(m.ctx); err != nil {
		utils.Warn("Reset rejected", "error", err)
		return m, nil
	}

	m.phase = app.PhaseInput
	m.link = ""
	m.lastErr = nil
	m.input.Reset()
	m.updateHint()
	return m, m.input.Focus()
}

func (m *MainModel) applyEvent(event events.Event) {
	data, ok := event.Data.(events.PhaseData)
	if !ok {
		return
	}
	m.phase = app.Phase(data.To)
	switch m.phase {
	case app.PhaseInput:
		m.link = ""
	default:
		if data.Link != "" {
			m.link = data.Link
		}
	}
}

// busy - анализ запущен или ещё стримит.
func (m MainModel) busy() bool {
	return m.pending || m.orch.Snapshot().Busy
}

// canSubmit - в поле есть ссылка и анализ не идёт.
func (m MainModel) canSubmit() bool {
	return strings.TrimSpace(m.input.Value()) != "" && !m.busy()
}

// canReset - клавиша нового анализа показывается только в result и не во время стрима.
func (m MainModel) canReset() bool {
	return m.phase == app.PhaseResult && !m.busy()
}

func (m *MainModel) updateHint() {
	keys := m.base.Keys()
	hint := ""
	switch {
	case m.phase == app.PhaseInput:
		hint = keys.Submit.Help().Key + " · " + m.texts.Submit
	case m.canReset():
		hint = keys.NewAnalysis.Help().Key + " · " + m.texts.NewAnalysis
	}
	m.base.GetStatusBarMgr().SetHint(hint)
}
