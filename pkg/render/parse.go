package render

import (
	"regexp"
	"strings"

	"github.com/ilkoid/onelife/pkg/utils"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Parser строит Document из markdown.
//
// Thread-safe: goldmark парсер создаёт контекст на каждый Parse,
// Classifier только читает правила.
type Parser struct {
	md         goldmark.Markdown
	classifier *Classifier
}

// ParserOption настраивает Parser.
type ParserOption func(*Parser)

// WithClassifier задаёт классификатор H2 заголовков.
func WithClassifier(c *Classifier) ParserOption {
	return func(p *Parser) {
		if c != nil {
			p.classifier = c
		}
	}
}

// NewParser создаёт парсер с Linkify (голые URL становятся ссылками).
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{
		md:         goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Strikethrough)),
		classifier: NewClassifier(nil),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

var defaultParser = NewParser()

// Parse разбирает текст парсером по умолчанию.
func Parse(markdown string) Document {
	return defaultParser.Parse(markdown)
}

// Parse пересчитывает документ из текста целиком.
//
// Незавершённая разметка (открытый ** или fence без пары) разбирается
// как есть: на следующем фрагменте документ будет пересчитан.
func (p *Parser) Parse(markdown string) Document {
	src := []byte(Prepare(markdown))
	root := p.md.Parser().Parse(text.NewReader(src))

	b := &builder{src: src, classifier: p.classifier}
	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		b.block(n)
	}
	return Document{Blocks: b.blocks}
}

// gluedHeading находит заголовок H2-H6, приклеенный к концу предложения:
// при стриминге модель иногда теряет перевод строки перед "## ".
// H1 и знаки кроме .!? не трогаем: "lokality: # 1" - обычный текст.
var gluedHeading = regexp.MustCompile(`([.!?])[ \t]+(#{2,6}[ \t]+\S)`)

// splitGluedHeadings переносит приклеенные заголовки на новую строку,
// пропуская совпадения внутри `code` спанов.
func splitGluedHeadings(line string) string {
	matches := gluedHeading.FindAllStringSubmatchIndex(line, -1)
	if matches == nil {
		return line
	}

	var sb strings.Builder
	last := 0
	for _, m := range matches {
		// Нечётное число ` до совпадения - мы внутри code спана
		if strings.Count(line[:m[0]], "`")%2 == 1 {
			continue
		}
		sb.WriteString(line[last:m[3]])
		sb.WriteString("\n\n")
		last = m[4]
	}
	sb.WriteString(line[last:])
	return sb.String()
}

// Prepare нормализует текст перед парсингом: переводы строк,
// обёртку ```markdown и заголовки без перевода строки.
func Prepare(markdown string) string {
	s := utils.StripMarkdownFence(utils.NormalizeNewlines(markdown))
	if !strings.Contains(s, "#") {
		return s
	}

	lines := strings.Split(s, "\n")
	inFence := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") || strings.HasPrefix(trimmed, "~~~") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		lines[i] = splitGluedHeadings(line)
	}
	return strings.Join(lines, "\n")
}

type builder struct {
	src        []byte
	classifier *Classifier
	blocks     []Block
}

func (b *builder) add(blk Block) {
	b.blocks = append(b.blocks, blk)
}

func (b *builder) block(n ast.Node) {
	switch node := n.(type) {
	case *ast.Heading:
		spans := b.inline(node)
		if len(spans) == 0 {
			// "## " без текста: заголовок ещё стримится
			return
		}
		switch node.Level {
		case 1:
			b.add(Block{Kind: BlockTitle, Spans: spans})
		case 2:
			b.add(Block{Kind: BlockSection, Spans: spans, Tone: b.classifier.Classify(SpansText(spans))})
		default:
			b.add(Block{Kind: BlockSubsection, Spans: spans})
		}

	case *ast.Paragraph, *ast.TextBlock:
		if spans := b.inline(node); len(spans) > 0 {
			b.add(Block{Kind: BlockParagraph, Spans: spans})
		}

	case *ast.List:
		var items []ListItem
		b.listItems(node, 0, &items)
		if len(items) > 0 {
			b.add(Block{Kind: BlockList, Items: items})
		}

	case *ast.Blockquote:
		if spans := b.quote(node); len(spans) > 0 {
			b.add(Block{Kind: BlockQuote, Spans: spans})
		}

	case *ast.ThematicBreak:
		b.add(Block{Kind: BlockRule})

	case *ast.FencedCodeBlock:
		b.add(Block{Kind: BlockCode, Code: b.lines(node), Lang: string(node.Language(b.src))})

	case *ast.CodeBlock:
		b.add(Block{Kind: BlockCode, Code: b.lines(node)})

	case *ast.HTMLBlock:
		// Сырой HTML из ответа модели не выводится

	default:
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			b.block(c)
		}
	}
}

func (b *builder) listItems(list *ast.List, depth int, items *[]ListItem) {
	number := list.Start
	for li := list.FirstChild(); li != nil; li = li.NextSibling() {
		var (
			spans  []Span
			nested []*ast.List
		)
		for c := li.FirstChild(); c != nil; c = c.NextSibling() {
			if sub, ok := c.(*ast.List); ok {
				nested = append(nested, sub)
				continue
			}
			part := b.inline(c)
			if len(part) == 0 {
				continue
			}
			if len(spans) > 0 {
				spans = append(spans, Span{Text: " "})
			}
			spans = append(spans, part...)
		}

		item := ListItem{Spans: mergeSpans(spans), Depth: depth}
		if list.IsOrdered() {
			item.Number = number
			number++
		}
		// "- " без текста: пункт ещё стримится
		if len(item.Spans) > 0 {
			*items = append(*items, item)
		}

		for _, sub := range nested {
			b.listItems(sub, depth+1, items)
		}
	}
}

// quote склеивает абзацы цитаты через перевод строки.
func (b *builder) quote(q *ast.Blockquote) []Span {
	var spans []Span
	for c := q.FirstChild(); c != nil; c = c.NextSibling() {
		part := b.inline(c)
		if len(part) == 0 {
			continue
		}
		if len(spans) > 0 {
			spans = append(spans, Span{Text: "\n"})
		}
		spans = append(spans, part...)
	}
	return mergeSpans(spans)
}

func (b *builder) lines(n ast.Node) string {
	var sb strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		sb.Write(seg.Value(b.src))
	}
	return strings.TrimRight(sb.String(), "\n")
}

func (b *builder) inline(n ast.Node) []Span {
	var out []Span
	b.collect(n, 0, "", &out)
	return trimSpans(mergeSpans(out))
}

func (b *builder) collect(parent ast.Node, style SpanStyle, url string, out *[]Span) {
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			*out = append(*out, Span{Text: string(node.Segment.Value(b.src)), Style: style, URL: url})
			switch {
			case node.HardLineBreak():
				*out = append(*out, Span{Text: "\n", Style: style, URL: url})
			case node.SoftLineBreak():
				*out = append(*out, Span{Text: " ", Style: style, URL: url})
			}

		case *ast.String:
			*out = append(*out, Span{Text: string(node.Value), Style: style, URL: url})

		case *ast.CodeSpan:
			b.collect(node, style|StyleCode, url, out)

		case *ast.Emphasis:
			flag := StyleEmphasis
			if node.Level >= 2 {
				flag = StyleStrong
			}
			b.collect(node, style|flag, url, out)

		case *ast.Link:
			b.collect(node, style, string(node.Destination), out)

		case *ast.AutoLink:
			*out = append(*out, Span{
				Text:  string(node.Label(b.src)),
				Style: style,
				URL:   string(node.URL(b.src)),
			})

		case *ast.RawHTML:

		default:
			b.collect(node, style, url, out)
		}
	}
}

// mergeSpans склеивает соседние спаны с одинаковым стилем и ссылкой.
func mergeSpans(spans []Span) []Span {
	if len(spans) == 0 {
		return nil
	}
	out := make([]Span, 0, len(spans))
	for _, s := range spans {
		if s.Text == "" {
			continue
		}
		if n := len(out); n > 0 && out[n-1].Style == s.Style && out[n-1].URL == s.URL {
			out[n-1].Text += s.Text
			continue
		}
		out = append(out, s)
	}
	return out
}

// trimSpans убирает пробелы по краям блока.
func trimSpans(spans []Span) []Span {
	for len(spans) > 0 {
		spans[0].Text = strings.TrimLeft(spans[0].Text, " \t\n")
		if spans[0].Text != "" {
			break
		}
		spans = spans[1:]
	}
	for len(spans) > 0 {
		last := len(spans) - 1
		spans[last].Text = strings.TrimRight(spans[last].Text, " \t\n")
		if spans[last].Text != "" {
			break
		}
		spans = spans[:last]
	}
	if len(spans) == 0 {
		return nil
	}
	return spans
}
