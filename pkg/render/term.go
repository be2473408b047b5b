package render

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
)

const (
	minTermWidth = 20

	quoteGlyph = "❝"
)

// TermRenderer рисует Document для терминала.
//
// Ширина задаётся при создании: при resize TUI создаёт новый рендерер.
type TermRenderer struct {
	theme Theme
	width int
}

// NewTermRenderer создаёт рендерер; ширина меньше 20 поднимается до 20.
func NewTermRenderer(theme Theme, width int) *TermRenderer {
	return &TermRenderer{theme: theme, width: max(width, minTermWidth)}
}

// Width возвращает ширину, под которую переносится текст.
func (r *TermRenderer) Width() int {
	return r.width
}

// Render возвращает документ как строку с ANSI стилями.
//
// Блоки разделены пустой строкой, подзаголовок прижат к следующему блоку.
func (r *TermRenderer) Render(doc Document) string {
	var sb strings.Builder
	for i, b := range doc.Blocks {
		if i > 0 {
			sb.WriteString("\n")
			if doc.Blocks[i-1].Kind != BlockSubsection {
				sb.WriteString("\n")
			}
		}
		sb.WriteString(r.block(b))
	}
	return sb.String()
}

func (r *TermRenderer) block(b Block) string {
	t := r.theme
	switch b.Kind {
	case BlockTitle:
		title := r.fill(t.Title.Render(strings.ToUpper(SpansText(b.Spans))), r.width)
		rule := t.TitleRule.Render(strings.Repeat("━", min(lineWidth(title), r.width)))
		return title + "\n" + rule

	case BlockSection:
		style, ok := t.Section[b.Tone]
		if !ok {
			style = t.Section[ToneNeutral]
		}
		line := r.fill(style.Render(b.Tone.Icon()+" "+SpansText(b.Spans)), r.width)
		if b.Tone == ToneVerdict {
			// Вердикт отделён от остального отчёта двойной линией
			return t.Rule.Render(strings.Repeat("═", r.width)) + "\n\n" + line
		}
		return line

	case BlockSubsection:
		return r.fill(t.Subsection.Render(strings.ToUpper(SpansText(b.Spans))), r.width)

	case BlockParagraph:
		return r.fill(r.spans(b.Spans, t.Text), r.width)

	case BlockList:
		return r.list(b.Items)

	case BlockQuote:
		inner := r.width - 2
		body := t.Quote.Render(r.fill(r.spans(b.Spans, t.QuoteText), inner))
		return t.QuoteGlyph.Render(quoteGlyph) + "\n" + body

	case BlockRule:
		return t.Rule.Render(strings.Repeat("─", r.width))

	case BlockCode:
		lines := strings.Split(b.Code, "\n")
		for i, l := range lines {
			lines[i] = t.Code.Render("  " + l)
		}
		return strings.Join(lines, "\n")

	default:
		return ""
	}
}

// list рисует пункты в рамке; маркер висит, продолжения строк выровнены под текст.
func (r *TermRenderer) list(items []ListItem) string {
	t := r.theme
	// Рамка (2) + padding (2)
	inner := max(r.width-4, minTermWidth-4)

	lines := make([]string, 0, len(items))
	for _, it := range items {
		marker := "◆"
		switch {
		case it.Number > 0:
			marker = strconv.Itoa(it.Number) + "."
		case it.Depth > 0:
			marker = "◇"
		}
		prefix := strings.Repeat("  ", it.Depth) + marker + " "
		pw := ansi.PrintableRuneWidth(prefix)

		body := r.fill(r.spans(it.Spans, t.Text), max(inner-pw, 8))
		for i, l := range strings.Split(body, "\n") {
			if i == 0 {
				lines = append(lines, t.Marker.Render(prefix)+l)
				continue
			}
			lines = append(lines, strings.Repeat(" ", pw)+l)
		}
	}
	return t.ListBox.Render(strings.Join(lines, "\n"))
}

func (r *TermRenderer) spans(spans []Span, base lipgloss.Style) string {
	var sb strings.Builder
	for _, s := range spans {
		style := base
		if s.Style.Has(StyleStrong) {
			style = r.theme.Strong
		}
		if s.Style.Has(StyleEmphasis) {
			style = style.Italic(true)
		}
		if s.Style.Has(StyleCode) {
			style = r.theme.Code
		}
		if s.URL != "" {
			sb.WriteString(r.theme.Link.Render(s.Text))
			if s.URL != s.Text {
				sb.WriteString(" " + r.theme.LinkURL.Render("("+fitURL(s.URL, r.width/2)+")"))
			}
			continue
		}
		sb.WriteString(style.Render(s.Text))
	}
	return sb.String()
}

// fill переносит по словам и режет слова длиннее строки.
func (r *TermRenderer) fill(s string, width int) string {
	return wrap.String(wordwrap.String(s, width), width)
}

func lineWidth(s string) int {
	w := 0
	for _, l := range strings.Split(s, "\n") {
		w = max(w, ansi.PrintableRuneWidth(l))
	}
	return w
}

// fitURL укорачивает длинную ссылку: сначала убирает схему, потом режет с "…".
func fitURL(url string, limit int) string {
	if limit <= 0 || ansi.PrintableRuneWidth(url) <= limit {
		return url
	}
	if _, rest, ok := strings.Cut(url, "://"); ok {
		url = rest
		if ansi.PrintableRuneWidth(url) <= limit {
			return url
		}
	}
	runes := []rune(url)
	if len(runes) <= limit {
		return url
	}
	return string(runes[:limit-1]) + "…"
}
