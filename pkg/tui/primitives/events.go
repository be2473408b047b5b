// Package primitives предоставляет reusable low-level UI компоненты.
//
// Это foundational primitives для экрана отчёта:
//   - ViewportManager: viewport с прокруткой "следить, если внизу"
//   - StatusBarManager: статус-бар со спиннером и прогрессом потока
//   - EventHandler: применяет события анализа к viewport и статус-бару
package primitives

import (
	"sync"

	"github.com/ilkoid/onelife/pkg/events"
)

// ReportRenderer превращает накопленный markdown в строку заданной ширины.
//
// Вызывается на каждый фрагмент и на каждый resize, поэтому отчёт
// всегда перерисовывается из полного текста.
type ReportRenderer func(markdown string, width int) string

// EventHandler связывает события анализа с viewport и статус-баром.
//
// Thread-safe: uses sync.RWMutex for concurrent access.
type EventHandler struct {
	viewportMgr *ViewportManager
	statusMgr   *StatusBarManager
	render      ReportRenderer
	text        string
	mu          sync.RWMutex
}

// NewEventHandler creates a new EventHandler.
//
// render == nil означает показ markdown как есть.
func NewEventHandler(vm *ViewportManager, sm *StatusBarManager, render ReportRenderer) *EventHandler {
	if render == nil {
		render = func(markdown string, _ int) string { return markdown }
	}
	return &EventHandler{
		viewportMgr: vm,
		statusMgr:   sm,
		render:      render,
	}
}

// HandleEvent применяет одно событие. Возвращает true, если отчёт перерисован.
func (eh *EventHandler) HandleEvent(event events.Event) bool {
	switch data := event.Data.(type) {
	case events.PhaseData:
		switch data.To {
		case "analyzing":
			eh.statusMgr.SetProcessing(true)
			eh.statusMgr.SetProgress(0, 0)
			eh.setText("")
			eh.viewportMgr.Clear()
		case "input":
			eh.statusMgr.SetProcessing(false)
			eh.statusMgr.SetProgress(0, 0)
			eh.setText("")
			eh.viewportMgr.Clear()
		}
		return false

	case events.FragmentData:
		eh.setText(data.Accumulated)
		eh.statusMgr.SetProgress(data.Index, len(data.Accumulated))

	case events.ErrorData:
		eh.setText(data.Message)

	case events.DoneData:
		eh.statusMgr.SetProcessing(false)
		if data.Failed {
			// Текст уже заменён извинением в ErrorData
			return false
		}
		eh.setText(data.Content)

	default:
		return false
	}

	eh.Rerender()
	return true
}

// Rerender перерисовывает текущий текст под текущую ширину viewport.
func (eh *EventHandler) Rerender() {
	width, _ := eh.viewportMgr.GetDimensions()
	eh.viewportMgr.SetContent(eh.render(eh.Text(), width))
}

// Text returns the markdown currently shown
func (eh *EventHandler) Text() string {
	eh.mu.RLock()
	defer eh.mu.RUnlock()
	return eh.text
}

func (eh *EventHandler) setText(text string) {
	eh.mu.Lock()
	defer eh.mu.Unlock()
	eh.text = text
}
