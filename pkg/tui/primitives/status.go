package primitives

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
)

// StatusBarManager - строка состояния внизу экрана: спиннер, модель,
// прогресс потока и подсказка по клавишам.
type StatusBarManager struct {
	spinner      spinner.Model
	isProcessing bool
	debugMode    bool
	model        string
	hint         string
	fragments    int
	bytes        int
	mu           sync.RWMutex

	cfg StatusBarConfig
}

// StatusBarConfig holds color configuration for the status bar
type StatusBarConfig struct {
	SpinnerColor    lipgloss.Color
	IdleColor       lipgloss.Color
	BackgroundColor lipgloss.Color
	DebugColor      lipgloss.Color
	DebugText       lipgloss.Color
	ExtraText       lipgloss.Color

	// ReadyLabel показывается вместо спиннера в покое
	ReadyLabel string
}

// DefaultStatusBarConfig returns the default status bar colors
func DefaultStatusBarConfig() StatusBarConfig {
	return StatusBarConfig{
		SpinnerColor:    lipgloss.Color("#D4AF37"),
		IdleColor:       lipgloss.Color("242"),
		BackgroundColor: lipgloss.Color("235"),
		DebugColor:      lipgloss.Color("196"),
		DebugText:       lipgloss.Color("15"),
		ExtraText:       lipgloss.Color("252"),
		ReadyLabel:      "✓ Ready",
	}
}

// NewStatusBarManager creates a new StatusBarManager with the given configuration
func NewStatusBarManager(cfg StatusBarConfig) *StatusBarManager {
	if cfg.ReadyLabel == "" {
		cfg.ReadyLabel = "✓ Ready"
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(cfg.SpinnerColor)

	return &StatusBarManager{
		spinner: s,
		cfg:     cfg,
	}
}

// Tick запускает анимацию спиннера.
func (sm *StatusBarManager) Tick() tea.Cmd {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.spinner.Tick
}

// Update продвигает спиннер. Остальные сообщения игнорируются.
func (sm *StatusBarManager) Update(msg tea.Msg) tea.Cmd {
	tick, ok := msg.(spinner.TickMsg)
	if !ok {
		return nil
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()

	var cmd tea.Cmd
	sm.spinner, cmd = sm.spinner.Update(tick)
	return cmd
}

// SpinnerView - кадр спиннера без фона, для экрана анализа.
func (sm *StatusBarManager) SpinnerView() string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.spinner.View()
}

// Render returns the status bar as a styled string
func (sm *StatusBarManager) Render() string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	segment := lipgloss.NewStyle().
		Background(sm.cfg.BackgroundColor).
		Foreground(sm.cfg.ExtraText).
		Padding(0, 1)

	spinnerText := sm.cfg.ReadyLabel
	color := sm.cfg.IdleColor
	if sm.isProcessing {
		spinnerText = sm.spinner.View()
		color = sm.cfg.SpinnerColor
	}
	out := segment.Foreground(color).Render(spinnerText)

	if sm.debugMode {
		out += lipgloss.NewStyle().
			Background(sm.cfg.DebugColor).
			Foreground(sm.cfg.DebugText).
			Bold(true).
			Padding(0, 1).
			Render("DEBUG")
	}
	if sm.model != "" {
		out += segment.Render(sm.model)
	}
	if sm.fragments > 0 {
		out += segment.Render(fmt.Sprintf("%d × %s", sm.fragments, humanize.Bytes(uint64(sm.bytes))))
	}
	if sm.hint != "" {
		out += segment.Foreground(sm.cfg.IdleColor).Render(sm.hint)
	}
	return out
}

// SetProcessing sets the processing state (shows spinner when true)
func (sm *StatusBarManager) SetProcessing(processing bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.isProcessing = processing
}

// IsProcessing returns the current processing state
func (sm *StatusBarManager) IsProcessing() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.isProcessing
}

// SetDebugMode toggles DEBUG indicator
func (sm *StatusBarManager) SetDebugMode(enabled bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.debugMode = enabled
}

// IsDebugMode returns the current debug mode state
func (sm *StatusBarManager) IsDebugMode() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.debugMode
}

// SetModel задаёт имя модели из конфига.
func (sm *StatusBarManager) SetModel(name string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.model = name
}

// SetHint задаёт подсказку по клавишам для текущей фазы.
func (sm *StatusBarManager) SetHint(hint string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.hint = hint
}

// SetProgress обновляет число фрагментов и размер накопленного текста.
// fragments == 0 скрывает сегмент.
func (sm *StatusBarManager) SetProgress(fragments, bytes int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.fragments = fragments
	sm.bytes = bytes
}

// Progress returns the last reported progress
func (sm *StatusBarManager) Progress() (fragments, bytes int) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.fragments, sm.bytes
}
