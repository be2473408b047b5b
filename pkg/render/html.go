package render

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

const htmlTemplates = `
{{- define "doc" -}}
<article class="report">{{range .Blocks}}{{template "block" .}}{{end}}</article>
{{- end -}}

{{- define "block" -}}
{{- $k := kind . -}}
{{- if eq $k "title" -}}
<h1 class="report-title">{{spans .Spans}}</h1>
{{- else if eq $k "section" -}}
<h2 class="section section-{{tone .}}"><span class="section-icon">{{icon .}}</span> {{spans .Spans}}</h2>
{{- else if eq $k "subsection" -}}
<h3 class="subsection">{{spans .Spans}}</h3>
{{- else if eq $k "paragraph" -}}
<p>{{spans .Spans}}</p>
{{- else if eq $k "list" -}}
<ul class="points">{{range .Items}}<li class="point depth-{{.Depth}}"><span class="point-marker">{{marker .}}</span> {{spans .Spans}}</li>{{end}}</ul>
{{- else if eq $k "quote" -}}
<blockquote class="pull-quote"><span class="quote-glyph">❝</span><p>{{spans .Spans}}</p></blockquote>
{{- else if eq $k "rule" -}}
<hr>
{{- else if eq $k "code" -}}
<pre class="code"><code class="language-{{.Lang}}">{{.Code}}</code></pre>
{{- end -}}
{{- end -}}
`

// HTMLRenderer рисует Document в безопасный HTML фрагмент.
//
// Разметка строится через html/template, затем проходит через bluemonday:
// ссылки открываются в новой вкладке и не передают referrer.
type HTMLRenderer struct {
	tmpl   *template.Template
	policy *bluemonday.Policy
}

// NewHTMLRenderer создаёт рендерер.
func NewHTMLRenderer() *HTMLRenderer {
	funcs := template.FuncMap{
		"kind":   func(b Block) string { return b.Kind.String() },
		"tone":   func(b Block) string { return b.Tone.String() },
		"icon":   func(b Block) string { return b.Tone.Icon() },
		"marker": listMarker,
		"spans":  spansHTML,
	}
	return &HTMLRenderer{
		tmpl:   template.Must(template.New("render").Funcs(funcs).Parse(htmlTemplates)),
		policy: NewPolicy(),
	}
}

// NewPolicy - политика санитизации отчёта.
//
// UGC политика плюс классы для оформления и target="_blank" на ссылках.
func NewPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("article", "span")
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("target").Matching(regexp.MustCompile(`^_blank$`)).OnElements("a")
	p.RequireNoReferrerOnLinks(true)
	p.AddTargetBlankToFullyQualifiedLinks(true)
	return p
}

// Render возвращает санитизированный HTML документа.
func (r *HTMLRenderer) Render(doc Document) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "doc", doc); err != nil {
		return "", fmt.Errorf("render html: %w", err)
	}
	return r.policy.SanitizeReader(&buf).String(), nil
}

func listMarker(it ListItem) string {
	switch {
	case it.Number > 0:
		return fmt.Sprintf("%d.", it.Number)
	case it.Depth > 0:
		return "◇"
	default:
		return "◆"
	}
}

// spansHTML собирает инлайн разметку. Текст экранируется здесь,
// ссылки проверяет bluemonday.
func spansHTML(spans []Span) template.HTML {
	var sb strings.Builder
	for _, s := range spans {
		h := strings.ReplaceAll(template.HTMLEscapeString(s.Text), "\n", "<br>")
		if s.Style.Has(StyleCode) {
			h = "<code>" + h + "</code>"
		}
		if s.Style.Has(StyleEmphasis) {
			h = "<em>" + h + "</em>"
		}
		if s.Style.Has(StyleStrong) {
			h = `<strong class="hl">` + h + "</strong>"
		}
		if s.URL != "" {
			h = `<a href="` + template.HTMLEscapeString(s.URL) + `" target="_blank" rel="noopener noreferrer">` + h + "</a>"
		}
		sb.WriteString(h)
	}
	return template.HTML(sb.String())
}
