// Package tui предоставляет color schemes и стили для TUI компонентов.
//
// ColorSchemes позволяют пользователям кастомизировать внешний вид TUI
// через ui.color_scheme в config.yaml без изменения кода.
package tui

import "github.com/charmbracelet/lipgloss"

// ColorScheme определяет цвета для различных элементов TUI и отчёта.
//
// Каждое поле - это lipgloss.Color (может быть hex, ANSI, или named color).
type ColorScheme struct {
	// Status Bar
	StatusBackground lipgloss.Color // Фон статус-бара
	StatusForeground lipgloss.Color // Текст в статус-баре

	// Brand
	Brand lipgloss.Color // Логотип, заголовок отчёта, глиф цитаты

	// Report
	Text      lipgloss.Color // Основной текст абзацев
	Muted     lipgloss.Color // Подзаголовки, ссылки, подписи
	Highlight lipgloss.Color // Жирный текст
	Neutral   lipgloss.Color // Обычная H2 секция
	Positive  lipgloss.Color // Сильные стороны
	Negative  lipgloss.Color // Слабые стороны
	Verdict   lipgloss.Color // Итоговый вердикт

	// Input Area
	InputPrompt  lipgloss.Color // Приглашение ввода
	ErrorMessage lipgloss.Color // Ошибки

	// UI Elements
	Border lipgloss.Color // Границы и разделители
}

// ColorSchemes предоставляет предустановленные цветовые схемы.
//
// Пользователи могут использовать их напрямую или создать свои на основе.
var ColorSchemes = map[string]ColorScheme{
	"onelife": {
		StatusBackground: lipgloss.Color("#111111"),
		StatusForeground: lipgloss.Color("#D4AF37"),
		Brand:            lipgloss.Color("#D4AF37"),
		Text:             lipgloss.Color("#D1D5DB"),
		Muted:            lipgloss.Color("#9CA3AF"),
		Highlight:        lipgloss.Color("#FFFFFF"),
		Neutral:          lipgloss.Color("#D4AF37"),
		Positive:         lipgloss.Color("#34D399"),
		Negative:         lipgloss.Color("#FB7185"),
		Verdict:          lipgloss.Color("#F5E6B3"),
		InputPrompt:      lipgloss.Color("#D4AF37"),
		ErrorMessage:     lipgloss.Color("#F87171"),
		Border:           lipgloss.Color("#3F3F46"),
	},
	"default": {
		StatusBackground: lipgloss.Color("235"),
		StatusForeground: lipgloss.Color("252"),
		Brand:            lipgloss.Color("220"),
		Text:             lipgloss.Color("252"),
		Muted:            lipgloss.Color("242"),
		Highlight:        lipgloss.Color("231"),
		Neutral:          lipgloss.Color("220"),
		Positive:         lipgloss.Color("42"),
		Negative:         lipgloss.Color("204"),
		Verdict:          lipgloss.Color("229"),
		InputPrompt:      lipgloss.Color("252"),
		ErrorMessage:     lipgloss.Color("196"),
		Border:           lipgloss.Color("240"),
	},
	"light": {
		StatusBackground: lipgloss.Color("255"),
		StatusForeground: lipgloss.Color("0"),
		Brand:            lipgloss.Color("136"),
		Text:             lipgloss.Color("236"),
		Muted:            lipgloss.Color("8"),
		Highlight:        lipgloss.Color("0"),
		Neutral:          lipgloss.Color("136"),
		Positive:         lipgloss.Color("28"),
		Negative:         lipgloss.Color("160"),
		Verdict:          lipgloss.Color("94"),
		InputPrompt:      lipgloss.Color("0"),
		ErrorMessage:     lipgloss.Color("1"),
		Border:           lipgloss.Color("8"),
	},
	"dracula": {
		StatusBackground: lipgloss.Color("#282a36"),
		StatusForeground: lipgloss.Color("#f8f8f2"),
		Brand:            lipgloss.Color("#f1fa8c"),
		Text:             lipgloss.Color("#f8f8f2"),
		Muted:            lipgloss.Color("#6272a4"),
		Highlight:        lipgloss.Color("#ffffff"),
		Neutral:          lipgloss.Color("#bd93f9"),
		Positive:         lipgloss.Color("#50fa7b"),
		Negative:         lipgloss.Color("#ff5555"),
		Verdict:          lipgloss.Color("#f1fa8c"),
		InputPrompt:      lipgloss.Color("#f8f8f2"),
		ErrorMessage:     lipgloss.Color("#ff5555"),
		Border:           lipgloss.Color("#44475a"),
	},
}

// DefaultColorScheme возвращает схему по умолчанию.
//
// Используется как fallback когда схема не найдена.
func DefaultColorScheme() ColorScheme {
	return ColorSchemes["onelife"]
}

// GetColorScheme возвращает цветовую схему по имени.
//
// Если схема не найдена, возвращает onelife.
func GetColorScheme(name string) ColorScheme {
	if scheme, ok := ColorSchemes[name]; ok {
		return scheme
	}
	return DefaultColorScheme()
}
