package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTMLRenderer_Structure(t *testing.T) {
	doc := Parse("# Intro\n\nSome **text**.\n\n## Silné stránky\n- Great location\n\n### Detaily\n\n> Invest with caution\n")
	out, err := NewHTMLRenderer().Render(doc)
	require.NoError(t, err)

	assert.Contains(t, out, `<article class="report">`)
	assert.Contains(t, out, `<h1 class="report-title">Intro</h1>`)
	assert.Contains(t, out, `<strong class="hl">text</strong>`)
	assert.Contains(t, out, `section-positive`)
	assert.Contains(t, out, "✔")
	assert.Contains(t, out, "Silné stránky")
	assert.Contains(t, out, `<ul class="points">`)
	assert.Contains(t, out, "Great location")
	assert.Contains(t, out, `<h3 class="subsection">Detaily</h3>`)
	assert.Contains(t, out, `<blockquote class="pull-quote">`)
	assert.Contains(t, out, "Invest with caution")
}

func TestHTMLRenderer_LinksOpenInNewContext(t *testing.T) {
	out, err := NewHTMLRenderer().Render(Parse("[inzerát](https://example.com/a)"))
	require.NoError(t, err)

	assert.Contains(t, out, `href="https://example.com/a"`)
	assert.Contains(t, out, `target="_blank"`)
	assert.Contains(t, out, "noreferrer")
	assert.Contains(t, out, "noopener")
}

func TestHTMLRenderer_Sanitizes(t *testing.T) {
	doc := Document{Blocks: []Block{
		{Kind: BlockParagraph, Spans: []Span{
			{Text: "<script>alert(1)</script>"},
			{Text: "klik", URL: "javascript:alert(1)"},
		}},
	}}
	out, err := NewHTMLRenderer().Render(doc)
	require.NoError(t, err)

	assert.NotContains(t, out, "<script>")
	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, "klik")
}

func TestHTMLRenderer_EmptyDocument(t *testing.T) {
	out, err := NewHTMLRenderer().Render(Document{})
	require.NoError(t, err)
	assert.Equal(t, `<article class="report"></article>`, out)
}
