// Package tui предоставляет reusable helpers для подключения Bubble Tea TUI к анализу.
//
// base.go содержит BaseModel - область отчёта на основе primitives:
// viewport, статус-бар и обработку событий. Экраны ввода и анализа
// строятся поверх неё в internal/ui.
//
// Rule 6: только reusable код, без app-specific логики.
// Rule 11: хранит context.Context для распространения отмены.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ilkoid/onelife/pkg/events"
	"github.com/ilkoid/onelife/pkg/tui/primitives"
)

// BaseModel представляет область отчёта на основе primitives.
//
// Не содержит бизнес-логики и зависит только от абстракций (pkg/events).
// Рендеринг markdown приходит снаружи через primitives.ReportRenderer.
//
// Thread-safe через primitives (каждый primitive использует sync.RWMutex).
type BaseModel struct {
	viewportMgr *primitives.ViewportManager
	statusMgr   *primitives.StatusBarManager
	eventHdlr   *primitives.EventHandler

	// Dependencies (Port interface only - Rule 6 compliant)
	eventSub events.Subscriber

	ctx context.Context

	ready    bool
	showHelp bool
	width    int
	height   int
	chrome   int // Строки, занятые заголовком и подвалом расширенной модели

	help help.Model
	keys KeyMap
}

// BaseConfig - настройки области отчёта.
type BaseConfig struct {
	Renderer        primitives.ReportRenderer
	Status          primitives.StatusBarConfig
	ScrollThreshold int
	Keys            KeyMap
}

// NewBaseModel создаёт новую BaseModel с primitives.
//
// Rule 11: принимает родительский контекст для распространения отмены.
func NewBaseModel(ctx context.Context, eventSub events.Subscriber, cfg BaseConfig) *BaseModel {
	vm := primitives.NewViewportManager(primitives.ViewportConfig{
		MinWidth:        20,
		MinHeight:       1,
		ScrollThreshold: cfg.ScrollThreshold,
	})
	if cfg.Status.ReadyLabel == "" {
		cfg.Status = primitives.DefaultStatusBarConfig()
	}
	sm := primitives.NewStatusBarManager(cfg.Status)
	eh := primitives.NewEventHandler(vm, sm, cfg.Renderer)

	keys := cfg.Keys
	if len(keys.Quit.Keys()) == 0 {
		keys = DefaultKeyMap()
	}

	return &BaseModel{
		viewportMgr: vm,
		statusMgr:   sm,
		eventHdlr:   eh,
		eventSub:    eventSub,
		ctx:         ctx,
		help:        help.New(),
		keys:        keys,
	}
}

// Init запускает чтение событий и анимацию спиннера.
func (m *BaseModel) Init() tea.Cmd {
	return tea.Batch(
		m.nextEvent(),
		m.statusMgr.Tick(),
	)
}

func (m *BaseModel) nextEvent() tea.Cmd {
	return ReceiveEventCmd(m.eventSub, func(e events.Event) tea.Msg {
		return EventMsg(e)
	})
}

// Update реализует tea.Model интерфейс.
//
// Обрабатывает:
//   - tea.WindowSizeMsg: изменение размера и перерисовка отчёта
//   - tea.KeyMsg: выход, help, прокрутка
//   - EventMsg: события анализа
//   - spinner.TickMsg: тики спиннера (делегируется StatusBarManager)
func (m *BaseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKeyPress(msg)

	case EventMsg:
		m.eventHdlr.HandleEvent(events.Event(msg))
		return m, m.nextEvent()

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.viewportMgr.ScrollUp(3)
		case tea.MouseButtonWheelDown:
			m.viewportMgr.ScrollDown(3)
		}
		return m, nil

	case spinner.TickMsg:
		return m, m.statusMgr.Update(msg)
	}
	return m, nil
}

func (m *BaseModel) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit

	case key.Matches(msg, m.keys.ToggleHelp):
		m.SetShowHelp(!m.showHelp)
		return nil

	case key.Matches(msg, m.keys.ScrollUp):
		_, h := m.viewportMgr.GetDimensions()
		m.viewportMgr.ScrollUp(h)
		return nil

	case key.Matches(msg, m.keys.ScrollDown):
		_, h := m.viewportMgr.GetDimensions()
		m.viewportMgr.ScrollDown(h)
		return nil
	}
	// Стрелки, j/k и т.п. обрабатывает сам viewport
	return m.viewportMgr.Update(msg)
}

// resize пересчитывает высоту viewport и перерисовывает отчёт под новую ширину.
func (m *BaseModel) resize() {
	if !m.ready {
		return
	}
	helpHeight := 0
	if m.showHelp {
		helpHeight = lipgloss.Height(m.help.View(m.keys)) + 1
	}
	// +1 строка статус-бара
	m.viewportMgr.HandleResize(m.width, m.height-m.chrome-helpHeight-1)
	m.eventHdlr.Rerender()
}

// View возвращает viewport, help (если включен) и статус-бар.
func (m *BaseModel) View() string {
	if !m.ready {
		return ""
	}
	return m.ContentView() + "\n" + m.statusMgr.Render()
}

// ContentView - viewport и help без статус-бара, чтобы расширенная модель
// могла вставить свой подвал между ними.
func (m *BaseModel) ContentView() string {
	parts := []string{m.viewportMgr.View()}
	if m.showHelp {
		parts = append(parts, m.help.View(m.keys))
	}
	return strings.Join(parts, "\n")
}

// ===== PUBLIC API FOR EXTENSIONS =====

// SetChrome резервирует строки под заголовок и подвал расширенной модели.
func (m *BaseModel) SetChrome(lines int) {
	if lines == m.chrome {
		return
	}
	m.chrome = max(lines, 0)
	m.resize()
}

// SetProcessing устанавливает статус обработки (показывает спиннер).
func (m *BaseModel) SetProcessing(processing bool) {
	m.statusMgr.SetProcessing(processing)
}

// IsProcessing возвращает текущий статус обработки.
func (m *BaseModel) IsProcessing() bool {
	return m.statusMgr.IsProcessing()
}

// Ready сообщает, пришёл ли первый WindowSizeMsg.
func (m *BaseModel) Ready() bool {
	return m.ready
}

// Size возвращает размер терминала.
func (m *BaseModel) Size() (width, height int) {
	return m.width, m.height
}

// Keys возвращает KeyMap.
func (m *BaseModel) Keys() KeyMap {
	return m.keys
}

// GetViewportMgr возвращает ViewportManager для прямого доступа.
func (m *BaseModel) GetViewportMgr() *primitives.ViewportManager {
	return m.viewportMgr
}

// GetStatusBarMgr возвращает StatusBarManager для прямого доступа.
func (m *BaseModel) GetStatusBarMgr() *primitives.StatusBarManager {
	return m.statusMgr
}

// GetEventHandler возвращает EventHandler для прямого доступа.
func (m *BaseModel) GetEventHandler() *primitives.EventHandler {
	return m.eventHdlr
}

// GetContext возвращает родительский контекст (Rule 11).
func (m *BaseModel) GetContext() context.Context {
	return m.ctx
}

// GetSubscriber возвращает подписчик на события.
func (m *BaseModel) GetSubscriber() events.Subscriber {
	return m.eventSub
}

// ShowHelp возвращает статус отображения help.
func (m *BaseModel) ShowHelp() bool {
	return m.showHelp
}

// SetShowHelp устанавливает статус отображения help.
func (m *BaseModel) SetShowHelp(show bool) {
	m.showHelp = show
	m.help.ShowAll = show
	m.resize()
}

// RenderStatusLine возвращает отрендеренную строку статуса.
func (m *BaseModel) RenderStatusLine() string {
	return m.statusMgr.Render()
}

// Ensure BaseModel implements tea.Model
var _ tea.Model = (*BaseModel)(nil)
