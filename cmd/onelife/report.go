package main

import (
	"fmt"
	"io"

	"github.com/ilkoid/onelife/pkg/render"
	"github.com/ilkoid/onelife/pkg/tui"
)

// Форматы вывода отчёта.
const (
	formatTerm = "term"
	formatHTML = "html"
	formatRaw  = "raw"
)

// reportWriter печатает готовый markdown отчёт в выбранном формате.
type reportWriter struct {
	format string
	width  int
	parser *render.Parser
	colors tui.ColorScheme
}

func validateFormat(format string, allowed ...string) error {
	for _, f := range allowed {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("unknown format %q (allowed: %v)", format, allowed)
}

// Write парсит markdown и пишет результат в w.
func (rw reportWriter) Write(w io.Writer, markdown string) error {
	if rw.format == formatRaw {
		_, err := fmt.Fprintln(w, markdown)
		return err
	}

	doc := rw.parser.Parse(markdown)
	switch rw.format {
	case formatHTML:
		html, err := render.NewHTMLRenderer().Render(doc)
		if err != nil {
			return fmt.Errorf("render html: %w", err)
		}
		_, err = fmt.Fprintln(w, html)
		return err
	default:
		out := render.NewTermRenderer(render.NewTheme(rw.colors), rw.width).Render(doc)
		_, err := fmt.Fprintln(w, out)
		return err
	}
}
