package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/ilkoid/onelife/internal/app"
	"github.com/ilkoid/onelife/pkg/utils"
)

// View рендерит экран текущей фазы.
func (m MainModel) View() string {
	if !m.base.Ready() {
		return ""
	}
	switch m.phase {
	case app.PhaseInput:
		return m.viewInput()
	case app.PhaseAnalyzing:
		return m.viewAnalyzing()
	default:
		return m.viewResult()
	}
}

// centered размещает блок по центру над статус-баром.
func (m MainModel) centered(block string) string {
	width, height := m.base.Size()
	body := lipgloss.Place(width, max(height-1, 1), lipgloss.Center, lipgloss.Center, block)
	return body + "\n" + m.base.RenderStatusLine()
}

func (m MainModel) viewInput() string {
	s := m.styles
	width, _ := m.base.Size()
	boxWidth := min(width, maxInputWidth) - 2

	block := lipgloss.JoinVertical(lipgloss.Center,
		s.Logo.Render(logo+m.cfg.Brand),
		s.Headline.Render(m.texts.Headline),
		"",
		s.Tagline.Width(boxWidth).Align(lipgloss.Center).Render(m.texts.Tagline),
		"",
		s.InputBox.Width(boxWidth).Render(m.input.View()),
		m.submitStyle().Render(m.texts.Submit),
		"",
		s.Chips(m.texts.Chips),
	)
	return m.centered(block)
}

// submitStyle - кнопка приглушена, пока Enter ничего не отправит.
func (m MainModel) submitStyle() lipgloss.Style {
	if m.canSubmit() {
		return m.styles.Button
	}
	return m.styles.ButtonOff
}

func (m MainModel) viewAnalyzing() string {
	s := m.styles
	block := lipgloss.JoinVertical(lipgloss.Center,
		s.Spinner.Render(m.base.GetStatusBarMgr().SpinnerView())+" "+s.Title.Render(m.texts.AnalyzingTitle),
		"",
		s.Hint.Render(m.texts.AnalyzingHint),
		"",
		s.Link.Render(utils.Truncate(m.link, maxInputWidth)),
	)
	return m.centered(block)
}

func (m MainModel) viewResult() string {
	s := m.styles
	width, _ := m.base.Size()

	header := strings.Join([]string{
		s.Title.Render(logo + fmt.Sprintf(m.texts.ReportTitle, m.cfg.Brand)),
		s.Link.Render(utils.Truncate(m.link, max(width-4, 10))),
		s.DividerLine(width),
	}, "\n")

	footerLine := s.Footer.Render(fmt.Sprintf(m.texts.Footer, m.cfg.Brand))
	if m.canReset() {
		footerLine += "   " + s.Hint.Render(m.base.Keys().NewAnalysis.Help().Key+" · "+m.texts.NewAnalysis)
	}
	footer := s.DividerLine(width) + "\n" + footerLine

	return strings.Join([]string{
		header,
		m.base.ContentView(),
		footer,
		m.base.RenderStatusLine(),
	}, "\n")
}
