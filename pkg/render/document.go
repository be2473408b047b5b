// Package render превращает накопленный markdown ответ модели в документ
// из визуальных блоков и рисует его в терминал или в HTML.
//
// Документ не хранится: он целиком пересчитывается из текста после каждого
// фрагмента. Parse - чистая функция, повторный вызов на том же тексте даёт
// равный Document.
package render

import "strings"

// BlockKind - вид визуального блока.
type BlockKind int

const (
	BlockTitle      BlockKind = iota // H1
	BlockSection                     // H2, с тоном
	BlockSubsection                  // H3 и глубже
	BlockParagraph
	BlockList
	BlockQuote // pull-quote с итоговой рекомендацией
	BlockRule
	BlockCode
)

func (k BlockKind) String() string {
	switch k {
	case BlockTitle:
		return "title"
	case BlockSection:
		return "section"
	case BlockSubsection:
		return "subsection"
	case BlockParagraph:
		return "paragraph"
	case BlockList:
		return "list"
	case BlockQuote:
		return "quote"
	case BlockRule:
		return "rule"
	case BlockCode:
		return "code"
	default:
		return "unknown"
	}
}

// SpanStyle - битовая маска инлайн стилей.
type SpanStyle uint8

const (
	StyleStrong SpanStyle = 1 << iota
	StyleEmphasis
	StyleCode
)

// Has проверяет наличие флага.
func (s SpanStyle) Has(flag SpanStyle) bool { return s&flag != 0 }

// Span - кусок инлайн текста с единым стилем.
//
// URL непустой для ссылок.
type Span struct {
	Text  string
	Style SpanStyle
	URL   string
}

// ListItem - пункт списка. Depth > 0 для вложенных списков.
type ListItem struct {
	Spans  []Span
	Depth  int
	Number int // 0 для маркированного списка
}

// Block - один визуальный блок документа.
type Block struct {
	Kind  BlockKind
	Spans []Span     // заголовки, абзац, цитата
	Tone  Tone       // только BlockSection
	Items []ListItem // только BlockList
	Code  string     // только BlockCode
	Lang  string     // только BlockCode
}

// Text возвращает текст блока без стилей.
func (b Block) Text() string {
	switch b.Kind {
	case BlockList:
		lines := make([]string, len(b.Items))
		for i, it := range b.Items {
			lines[i] = SpansText(it.Spans)
		}
		return strings.Join(lines, "\n")
	case BlockCode:
		return b.Code
	default:
		return SpansText(b.Spans)
	}
}

// Document - результат Parse.
type Document struct {
	Blocks []Block
}

// Empty сообщает, что в документе нет ни одного блока.
func (d Document) Empty() bool { return len(d.Blocks) == 0 }

// Title возвращает текст первого H1 или пустую строку.
func (d Document) Title() string {
	for _, b := range d.Blocks {
		if b.Kind == BlockTitle {
			return b.Text()
		}
	}
	return ""
}

// SpansText склеивает текст спанов.
func SpansText(spans []Span) string {
	var sb strings.Builder
	for _, s := range spans {
		sb.WriteString(s.Text)
	}
	return sb.String()
}
