package main

import (
	"context"
	"errors"
	"fmt"

	analysis "github.com/ilkoid/onelife/internal/app"
	appcomponents "github.com/ilkoid/onelife/pkg/app"
	"github.com/ilkoid/onelife/pkg/events"
	"github.com/ilkoid/onelife/pkg/utils"
	"github.com/spf13/cobra"
)

// NewAnalyzeCmd создаёт команду analyze.
func NewAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <link>",
		Short: "Analyse one listing and print the report",
		Long: `Analyze runs a single analysis without the terminal UI.

Formats:
  term  styled report for the terminal (default)
  html  sanitized HTML fragment
  raw   markdown fragments as they arrive

Examples:
  onelife analyze https://www.nehnutelnosti.sk/detail/123
  onelife analyze --format raw --model demo https://example.sk/flat`,
		Args: cobra.ExactArgs(1),
		RunE: runAnalyze,
	}

	cmd.Flags().StringP("format", "f", formatTerm, "Output format: term, html, raw")
	cmd.Flags().IntP("width", "w", 0, "Wrap width for term format (default: ui.max_width)")

	return cmd
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := validateFormat(format, formatTerm, formatHTML, formatRaw); err != nil {
		return err
	}
	width, _ := cmd.Flags().GetInt("width")

	flags := readGlobalFlags(cmd)
	cfg, _, err := loadConfig(flags)
	if err != nil {
		return err
	}
	debugOn := initWriterLogging(cmd, cfg, flags)

	ctx := cmd.Context()
	c, err := appcomponents.Initialize(ctx, cfg, flags.model)
	if err != nil {
		return err
	}
	if width <= 0 {
		width = cfg.UI.MaxWidth
	}

	out := cmd.OutOrStdout()
	var done events.DoneData
	emitter := events.EmitterFunc(func(_ context.Context, e events.Event) {
		switch data := e.Data.(type) {
		case events.FragmentData:
			if format == formatRaw {
				fmt.Fprint(out, data.Chunk)
			}
		case events.DoneData:
			done = data
		}
	})

	orch := c.NewOrchestrator(analysis.WithEmitter(traceEmitter(cfg, debugOn, c.Model.ModelName, emitter)))
	analyzeErr := orch.Analyze(ctx, args[0])
	if errors.Is(analyzeErr, analysis.ErrEmptyLink) {
		return analyzeErr
	}

	if format == formatRaw {
		// Фрагменты уже напечатаны; при ошибке дописываем извинение
		fmt.Fprintln(out)
		if done.Failed {
			fmt.Fprintln(out, c.Texts.Apology)
		}
		return analyzeErr
	}

	rw := reportWriter{format: format, width: width, parser: c.Parser, colors: c.Colors}
	if err := rw.Write(out, done.Content); err != nil {
		return err
	}

	if analyzeErr != nil {
		utils.Error("Analysis failed", "error", analyzeErr)
	}
	return analyzeErr
}
