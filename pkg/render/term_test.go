package render

import (
	"strings"
	"testing"

	"github.com/muesli/reflow/ansi"
	"github.com/stretchr/testify/assert"
)

func TestTermRenderer_Blocks(t *testing.T) {
	doc := Parse("# Intro\n\nSome text.\n\n## Silné stránky\n- Great location\n\n### Detaily\n\n## Verdikt\n\n> Buy\n")
	out := NewTermRenderer(DefaultTheme(), 60).Render(doc)

	assert.Contains(t, out, "INTRO")
	assert.Contains(t, out, "━")
	assert.Contains(t, out, "Some text.")
	assert.Contains(t, out, "✔")
	assert.Contains(t, out, "Silné stránky")
	assert.Contains(t, out, "◆")
	assert.Contains(t, out, "Great location")
	assert.Contains(t, out, "╭")
	assert.Contains(t, out, "DETAILY")
	assert.Contains(t, out, "═")
	assert.Contains(t, out, "✦")
	assert.Contains(t, out, "❝")
	assert.Contains(t, out, "Buy")
}

func TestTermRenderer_WrapsToWidth(t *testing.T) {
	long := strings.Repeat("slovo ", 40)
	doc := Parse(long + "\n\n- " + long + "\n\n" + strings.Repeat("x", 120))

	for _, width := range []int{20, 40, 72} {
		out := NewTermRenderer(DefaultTheme(), width).Render(doc)
		for _, line := range strings.Split(out, "\n") {
			assert.LessOrEqual(t, ansi.PrintableRuneWidth(line), width, "width %d: %q", width, line)
		}
	}
}

func TestTermRenderer_MinimumWidth(t *testing.T) {
	assert.Equal(t, minTermWidth, NewTermRenderer(DefaultTheme(), 3).Width())
}

func TestTermRenderer_Links(t *testing.T) {
	out := NewTermRenderer(DefaultTheme(), 80).Render(Parse("[inzerát](https://example.com/a)"))
	assert.Contains(t, out, "inzerát")
	assert.Contains(t, out, "(https://example.com/a)")
}

func TestFitURL(t *testing.T) {
	assert.Equal(t, "https://a.sk/x", fitURL("https://a.sk/x", 40))
	assert.Equal(t, "a.sk/very/long", fitURL("https://a.sk/very/long", 14))
	assert.Equal(t, "a.sk/very/l…", fitURL("https://a.sk/very/long", 12))
}
