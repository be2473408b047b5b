// Package ui реализует Bubble Tea TUI анализа недвижимости.
//
// Три экрана по фазам сессии: ввод ссылки, анализ (спиннер) и отчёт.
// Область отчёта (viewport, статус-бар, события) берётся из pkg/tui.BaseModel,
// сам анализ выполняет app.Orchestrator в отдельной tea.Cmd.
package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ilkoid/onelife/internal/app"
	"github.com/ilkoid/onelife/pkg/events"
	"github.com/ilkoid/onelife/pkg/render"
	"github.com/ilkoid/onelife/pkg/tui"
	"github.com/ilkoid/onelife/pkg/tui/primitives"
)

// analysisDoneMsg приходит, когда Orchestrator.Analyze вернулся.
type analysisDoneMsg struct {
	err error
}

// Config - настройки TUI из config.yaml.
type Config struct {
	Brand           string
	ModelName       string
	Colors          tui.ColorScheme
	ScrollThreshold int
	MaxWidth        int // Максимальная ширина отчёта, 0 = вся ширина терминала
	Debug           bool
	Parser          *render.Parser
}

// MainModel представляет главную модель UI (Bubble Tea Model).
//
// Фаза берётся из событий EventPhaseChanged, а не из Snapshot: экран
// показывает ровно то, что уже пришло через канал событий.
type MainModel struct {
	base   *tui.BaseModel
	input  textinput.Model
	orch   *app.Orchestrator
	texts  app.Texts
	styles tui.Styles
	cfg    Config
	ctx    context.Context

	phase   app.Phase
	link    string
	pending bool // Analyze запущен, analysisDoneMsg ещё не пришёл
	lastErr error
}

// New создаёт начальное состояние UI.
//
// sub должен быть подписчиком того же emitter, что передан в Orchestrator.
func New(ctx context.Context, orch *app.Orchestrator, sub events.Subscriber, cfg Config) MainModel {
	texts := orch.Texts()
	if cfg.Brand == "" {
		cfg.Brand = "ONE LIFE"
	}
	if cfg.Parser == nil {
		cfg.Parser = render.NewParser()
	}

	theme := render.NewTheme(cfg.Colors)
	parser := cfg.Parser
	maxWidth := cfg.MaxWidth
	renderReport := func(markdown string, width int) string {
		if maxWidth > 0 {
			width = min(width, maxWidth)
		}
		return render.NewTermRenderer(theme, width).Render(parser.Parse(markdown))
	}

	status := primitives.DefaultStatusBarConfig()
	status.SpinnerColor = cfg.Colors.Brand
	status.BackgroundColor = cfg.Colors.StatusBackground
	status.ExtraText = cfg.Colors.StatusForeground
	status.IdleColor = cfg.Colors.Muted
	status.ReadyLabel = texts.Ready

	base := tui.NewBaseModel(ctx, sub, tui.BaseConfig{
		Renderer:        renderReport,
		Status:          status,
		ScrollThreshold: cfg.ScrollThreshold,
	})
	base.SetChrome(headerLines + footerLines)
	base.GetStatusBarMgr().SetModel(cfg.ModelName)
	base.GetStatusBarMgr().SetDebugMode(cfg.Debug)

	ti := textinput.New()
	ti.Placeholder = texts.Placeholder
	ti.Prompt = "› "
	ti.CharLimit = 2048
	ti.Focus()

	m := MainModel{
		base:   base,
		input:  ti,
		orch:   orch,
		texts:  texts,
		styles: tui.NewStyles(cfg.Colors),
		cfg:    cfg,
		ctx:    ctx,
		phase:  orch.Snapshot().Phase,
	}
	m.updateHint()
	return m
}

// Init запускает мигание курсора, чтение событий и спиннер.
func (m MainModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		m.base.Init(),
	)
}

// Phase возвращает фазу, которую сейчас показывает экран.
func (m MainModel) Phase() app.Phase {
	return m.phase
}

// LastError - ошибка последнего анализа (nil при успехе).
func (m MainModel) LastError() error {
	return m.lastErr
}
