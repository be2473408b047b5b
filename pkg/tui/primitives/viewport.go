package primitives

import (
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wrap"
)

// ViewportManager держит viewport с отчётом и решает, когда прокручивать вниз.
//
// Отчёт перерисовывается целиком на каждый фрагмент, поэтому контент
// не дописывается, а заменяется через SetContent.
//
// Правила прокрутки:
//  1. "Был внизу" считается ДО изменения контента или высоты
//  2. Высота минимум 1, иначе viewport перестаёт скроллиться
//  3. YOffset зажимается в [0, total-height]
//  4. Все операции под мьютексом
type ViewportManager struct {
	viewport  viewport.Model
	content   string // Отрендеренный отчёт без переноса под viewport
	threshold int    // Сколько строк от низа считается "внизу"
	mu        sync.RWMutex
}

// ViewportConfig holds configuration for ViewportManager
type ViewportConfig struct {
	MinWidth        int
	MinHeight       int
	ScrollThreshold int // ui.scroll_threshold
}

// NewViewportManager creates a new ViewportManager
func NewViewportManager(cfg ViewportConfig) *ViewportManager {
	return &ViewportManager{
		viewport:  viewport.New(max(cfg.MinWidth, 1), max(cfg.MinHeight, 1)),
		threshold: max(cfg.ScrollThreshold, 0),
	}
}

// HandleResize задаёт новые размеры области отчёта.
func (vm *ViewportManager) HandleResize(width, height int) {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	// Правило 1: до изменения высоты
	follow := vm.nearBottomLocked()

	vm.viewport.Width = max(width, 20)
	vm.viewport.Height = max(height, 1) // Правило 2
	vm.applyLocked(follow)
}

// SetContent заменяет отчёт. Возвращает true, если вид прокрутился вниз.
func (vm *ViewportManager) SetContent(content string) bool {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	follow := vm.nearBottomLocked()
	vm.content = content
	vm.applyLocked(follow)
	return follow
}

// Clear убирает контент и возвращает прокрутку наверх.
func (vm *ViewportManager) Clear() {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	vm.content = ""
	vm.viewport.SetContent("")
	vm.viewport.GotoTop()
}

func (vm *ViewportManager) applyLocked(follow bool) {
	lines := strings.Split(vm.content, "\n")
	for i, line := range lines {
		lines[i] = wrap.String(line, vm.viewport.Width)
	}
	vm.viewport.SetContent(strings.Join(lines, "\n"))

	if follow {
		vm.viewport.GotoBottom()
		return
	}
	// Правило 3
	maxOffset := max(vm.viewport.TotalLineCount()-vm.viewport.Height, 0)
	if vm.viewport.YOffset > maxOffset {
		vm.viewport.SetYOffset(maxOffset)
	}
}

// nearBottomLocked: пользователь в пределах threshold строк от низа.
// Пустой viewport считается "внизу", чтобы первый фрагмент включил слежение.
func (vm *ViewportManager) nearBottomLocked() bool {
	total := vm.viewport.TotalLineCount()
	if total <= vm.viewport.Height {
		return true
	}
	return vm.viewport.YOffset+vm.viewport.Height >= total-vm.threshold
}

// NearBottom сообщает, следит ли viewport за концом отчёта.
func (vm *ViewportManager) NearBottom() bool {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.nearBottomLocked()
}

// Update передаёт клавиши и колесо мыши во viewport.
func (vm *ViewportManager) Update(msg tea.Msg) tea.Cmd {
	vm.mu.Lock()
	defer vm.mu.Unlock()

	var cmd tea.Cmd
	vm.viewport, cmd = vm.viewport.Update(msg)
	return cmd
}

// View returns the visible part of the report
func (vm *ViewportManager) View() string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.viewport.View()
}

// GetViewport returns the underlying viewport.Model
func (vm *ViewportManager) GetViewport() viewport.Model {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.viewport
}

// Content returns the current (unwrapped) content
func (vm *ViewportManager) Content() string {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.content
}

// ScrollUp scrolls the viewport up by n lines
func (vm *ViewportManager) ScrollUp(n int) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.viewport.ScrollUp(n)
}

// ScrollDown scrolls the viewport down by n lines
func (vm *ViewportManager) ScrollDown(n int) {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.viewport.ScrollDown(n)
}

// GotoTop scrolls to the top of the viewport
func (vm *ViewportManager) GotoTop() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.viewport.GotoTop()
}

// GotoBottom scrolls to the bottom of the viewport
func (vm *ViewportManager) GotoBottom() {
	vm.mu.Lock()
	defer vm.mu.Unlock()
	vm.viewport.GotoBottom()
}

// GetDimensions returns the current viewport dimensions
func (vm *ViewportManager) GetDimensions() (width, height int) {
	vm.mu.RLock()
	defer vm.mu.RUnlock()
	return vm.viewport.Width, vm.viewport.Height
}
