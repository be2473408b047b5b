// Package tui предоставляет reusable UI компоненты и стили.
//
// components.go содержит стили экранов ввода, анализа и результата,
// собранные из одной ColorScheme.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles - набор стилей для экранов TUI.
type Styles struct {
	Logo       lipgloss.Style
	Headline   lipgloss.Style
	Tagline    lipgloss.Style
	InputBox   lipgloss.Style
	Button     lipgloss.Style
	// ButtonOff - кнопка, пока отправка недоступна (пустое поле, идёт анализ)
	ButtonOff  lipgloss.Style
	Chip       lipgloss.Style
	Spinner    lipgloss.Style
	Title      lipgloss.Style
	Hint       lipgloss.Style
	Link       lipgloss.Style
	Footer     lipgloss.Style
	Error      lipgloss.Style
	Divider    lipgloss.Style
	StatusLine lipgloss.Style
}

// NewStyles строит стили из цветовой схемы.
func NewStyles(colors ColorScheme) Styles {
	return Styles{
		Logo:     lipgloss.NewStyle().Foreground(colors.Brand).Bold(true),
		Headline: lipgloss.NewStyle().Foreground(colors.Text).Bold(true),
		Tagline:  lipgloss.NewStyle().Foreground(colors.Muted),
		InputBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Border).
			Padding(0, 1),
		Button: lipgloss.NewStyle().
			Foreground(colors.StatusBackground).
			Background(colors.Brand).
			Bold(true).
			Padding(0, 2),
		ButtonOff: lipgloss.NewStyle().
			Foreground(colors.Muted).
			Background(colors.StatusBackground).
			Faint(true).
			Padding(0, 2),
		Chip: lipgloss.NewStyle().
			Foreground(colors.Muted).
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colors.Border).
			Padding(0, 1),
		Spinner: lipgloss.NewStyle().Foreground(colors.Brand),
		Title:   lipgloss.NewStyle().Foreground(colors.Brand).Bold(true),
		Hint:    lipgloss.NewStyle().Foreground(colors.Muted).Italic(true),
		Link:    lipgloss.NewStyle().Foreground(colors.Muted).Underline(true),
		Footer:  lipgloss.NewStyle().Foreground(colors.Muted),
		Error:   lipgloss.NewStyle().Foreground(colors.ErrorMessage).Bold(true),
		Divider: lipgloss.NewStyle().Foreground(colors.Border),
		StatusLine: lipgloss.NewStyle().
			Foreground(colors.StatusForeground).
			Background(colors.StatusBackground),
	}
}

// DividerLine возвращает горизонтальную разделительную линию.
func (s Styles) DividerLine(width int) string {
	return s.Divider.Render(strings.Repeat("─", max(width, 0)))
}

// Chips рендерит ряд плашек в одну строку.
func (s Styles) Chips(labels []string) string {
	chips := make([]string, 0, len(labels))
	for _, l := range labels {
		chips = append(chips, s.Chip.Render(l))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}
