package ui

const (
	logo = "◆ "

	// Строки над и под viewport в фазе result:
	// заголовок, ссылка, разделитель / разделитель, подпись.
	headerLines = 3
	footerLines = 2

	maxInputWidth = 72
)

// inputWidth - ширина поля ссылки для экрана ввода.
func inputWidth(termWidth int) int {
	// рамка + отступы + prompt
	return max(min(termWidth, maxInputWidth)-6, 10)
}
