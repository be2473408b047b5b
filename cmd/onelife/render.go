package main

import (
	"fmt"
	"io"
	"os"

	appcomponents "github.com/ilkoid/onelife/pkg/app"
	"github.com/ilkoid/onelife/pkg/tui"
	"github.com/spf13/cobra"
)

// NewRenderCmd создаёт команду render: отрисовка готового markdown без LLM.
func NewRenderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render [file|-]",
		Short: "Render a saved markdown report",
		Long: `Render draws a markdown report with the same heading classification
and styles as the terminal UI. Reads stdin when the file is "-" or omitted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runRender,
	}

	cmd.Flags().StringP("format", "f", formatTerm, "Output format: term, html")
	cmd.Flags().IntP("width", "w", 0, "Wrap width for term format (default: ui.max_width)")

	return cmd
}

func runRender(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := validateFormat(format, formatTerm, formatHTML); err != nil {
		return err
	}
	width, _ := cmd.Flags().GetInt("width")

	flags := readGlobalFlags(cmd)
	cfg, _, err := loadConfig(flags)
	if err != nil {
		return err
	}
	initWriterLogging(cmd, cfg, flags)

	parser, err := appcomponents.NewParser(cfg)
	if err != nil {
		return err
	}
	if width <= 0 {
		width = cfg.UI.MaxWidth
	}

	markdown, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	rw := reportWriter{
		format: format,
		width:  width,
		parser: parser,
		colors: tui.GetColorScheme(cfg.UI.ColorScheme),
	}
	return rw.Write(cmd.OutOrStdout(), markdown)
}

func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read report: %w", err)
	}
	return string(data), nil
}
