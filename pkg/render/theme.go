package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/ilkoid/onelife/pkg/tui"
)

// Theme - набор lipgloss стилей терминального рендера.
type Theme struct {
	Title      lipgloss.Style
	TitleRule  lipgloss.Style
	Section    map[Tone]lipgloss.Style
	Subsection lipgloss.Style
	Text       lipgloss.Style
	Strong     lipgloss.Style
	Link       lipgloss.Style
	LinkURL    lipgloss.Style
	Code       lipgloss.Style
	ListBox    lipgloss.Style
	Marker     lipgloss.Style
	QuoteGlyph lipgloss.Style
	Quote      lipgloss.Style // рамка pull-quote
	QuoteText  lipgloss.Style
	Rule       lipgloss.Style
}

// NewTheme строит стили из цветовой схемы.
func NewTheme(scheme tui.ColorScheme) Theme {
	return Theme{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(scheme.Brand),
		TitleRule: lipgloss.NewStyle().Foreground(scheme.Brand),
		Section: map[Tone]lipgloss.Style{
			ToneNeutral:  lipgloss.NewStyle().Bold(true).Foreground(scheme.Neutral),
			TonePositive: lipgloss.NewStyle().Bold(true).Foreground(scheme.Positive),
			ToneNegative: lipgloss.NewStyle().Bold(true).Foreground(scheme.Negative),
			ToneVerdict:  lipgloss.NewStyle().Bold(true).Foreground(scheme.Verdict),
		},
		Subsection: lipgloss.NewStyle().Bold(true).Foreground(scheme.Muted),
		Text:       lipgloss.NewStyle().Foreground(scheme.Text),
		Strong:     lipgloss.NewStyle().Bold(true).Foreground(scheme.Highlight),
		Link:       lipgloss.NewStyle().Underline(true).Foreground(scheme.Brand),
		LinkURL:    lipgloss.NewStyle().Foreground(scheme.Muted),
		Code:       lipgloss.NewStyle().Foreground(scheme.Muted),
		ListBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(scheme.Border).
			Padding(0, 1),
		Marker:     lipgloss.NewStyle().Foreground(scheme.Brand),
		QuoteGlyph: lipgloss.NewStyle().Bold(true).Foreground(scheme.Brand),
		QuoteText:  lipgloss.NewStyle().Italic(true).Foreground(scheme.Verdict),
		Quote: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(scheme.Brand).
			PaddingLeft(1),
		Rule: lipgloss.NewStyle().Foreground(scheme.Border),
	}
}

// DefaultTheme - тема из схемы onelife.
func DefaultTheme() Theme {
	return NewTheme(tui.DefaultColorScheme())
}
