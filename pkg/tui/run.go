package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// runConfig - параметры запуска Bubble Tea программы.
type runConfig struct {
	altScreen bool
	mouse     bool
	extra     []tea.ProgramOption
}

// RunOption - функция для кастомизации запуска TUI.
type RunOption func(*runConfig)

// WithAltScreen включает или выключает полноэкранный режим (по умолчанию включён).
func WithAltScreen(enabled bool) RunOption {
	return func(c *runConfig) {
		c.altScreen = enabled
	}
}

// WithMouse включает или выключает колесо мыши (по умолчанию включено).
func WithMouse(enabled bool) RunOption {
	return func(c *runConfig) {
		c.mouse = enabled
	}
}

// WithProgramOptions передаёт произвольные tea.ProgramOption (ввод/вывод в тестах).
func WithProgramOptions(opts ...tea.ProgramOption) RunOption {
	return func(c *runConfig) {
		c.extra = append(c.extra, opts...)
	}
}

// Run запускает модель и блокируется до выхода.
//
// Правило 11: отмена ctx завершает программу; это не считается ошибкой.
//
//	model := ui.New(ctx, orch, emitter.Subscribe(), ui.Config{...})
//	if err := tui.Run(ctx, model); err != nil {
//	    log.Fatal(err)
//	}
func Run(ctx context.Context, model tea.Model, opts ...RunOption) error {
	if model == nil {
		return fmt.Errorf("model is nil")
	}

	cfg := runConfig{altScreen: true, mouse: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.altScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if cfg.mouse {
		programOpts = append(programOpts, tea.WithMouseCellMotion())
	}
	programOpts = append(programOpts, cfg.extra...)

	p := tea.NewProgram(model, programOpts...)
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
