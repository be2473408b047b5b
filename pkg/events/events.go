// Package events предоставляет интерфейсы для реализации Port & Adapter паттерна.
//
// Это Port (интерфейс) для подписки на события анализа.
// Позволяет подключать любые UI (TUI, Web, CLI) без изменения логики оркестратора.
//
// # Port & Adapter Pattern
//
//	Port - это интерфейс (Emitter, Subscriber), определённый в библиотеке.
//	Adapter - это реализация интерфейса для конкретного UI (TUI, Web, etc).
//
// # Basic Usage
//
//	// В UI (internal/ui/):
//	emitter := events.NewChanEmitter(64)
//	orch := app.NewOrchestrator(provider, app.WithEmitter(emitter))
//	sub := emitter.Subscribe()
//	for event := range sub.Events() {
//	    switch event.Type {
//	    case events.EventPhaseChanged:
//	        ui.switchScreen(event.Data)
//	    case events.EventFragment:
//	        ui.rerender(event.Data)
//	    }
//	}
//
// # Thread Safety
//
// Все реализации интерфейсов должны быть thread-safe.
//
// # Rule 11: Context Propagation
//
// Emitter.Emit() принимает context.Context для отмены операции.
package events

import (
	"context"
	"time"
)

// EventType представляет тип события анализа.
type EventType string

const (
	// EventPhaseChanged отправляется при каждой смене фазы (input/analyzing/result).
	EventPhaseChanged EventType = "phase"

	// EventFragment отправляется для каждого фрагмента от провайдера.
	// UI перерисовывает документ из Accumulated.
	EventFragment EventType = "fragment"

	// EventError отправляется когда анализ завершился ошибкой.
	// Message содержит извинение, которое заменило накопленный текст.
	EventError EventType = "error"

	// EventDone отправляется последним событием анализа (успех или ошибка).
	EventDone EventType = "done"
)

// EventData - sealed interface для данных события.
//
// Только типы из пакета events могут реализовать этот интерфейс,
// что обеспечивает compile-time type safety.
type EventData interface {
	eventData()
}

// PhaseData содержит данные для EventPhaseChanged.
type PhaseData struct {
	From string
	To   string
	Link string
}

func (PhaseData) eventData() {}

// FragmentData содержит данные для EventFragment.
type FragmentData struct {
	// Chunk - инкрементальные данные (delta)
	Chunk string

	// Accumulated - весь текст на данный момент
	Accumulated string

	// Index - номер фрагмента, начиная с 1
	Index int
}

func (FragmentData) eventData() {}

// ErrorData содержит данные для EventError.
type ErrorData struct {
	Err     error
	Message string
}

func (ErrorData) eventData() {}

// DoneData содержит итог анализа для EventDone.
type DoneData struct {
	RunID     string
	Content   string
	Fragments int
	Failed    bool
	Duration  time.Duration
}

func (DoneData) eventData() {}

// Event представляет событие анализа.
//
// Data содержит типизированные данные события (EventData):
//   - EventPhaseChanged: PhaseData
//   - EventFragment: FragmentData
//   - EventError: ErrorData
//   - EventDone: DoneData
type Event struct {
	Type      EventType
	Data      EventData
	Timestamp time.Time
}

// New создаёт событие с текущим временем.
func New(t EventType, data EventData) Event {
	return Event{Type: t, Data: data, Timestamp: time.Now()}
}

// Emitter - это Port для отправки событий.
//
// Emitter инвертирует зависимость: оркестратор (internal/app) зависит
// от этого интерфейса, а не от конкретного UI.
//
// Rule 11: все операции должны уважать context.Context.
type Emitter interface {
	// Emit отправляет событие.
	//
	// Если context отменён, операция должна прерваться.
	Emit(ctx context.Context, event Event)
}

// EmitterFunc позволяет использовать функцию как Emitter.
//
// Так web адаптер пишет SSE прямо в http.ResponseWriter без канала.
type EmitterFunc func(ctx context.Context, event Event)

// Emit вызывает f(ctx, event).
func (f EmitterFunc) Emit(ctx context.Context, event Event) {
	f(ctx, event)
}

// Subscriber позволяет читать события из канала.
//
// Rule 5: thread-safe операции.
type Subscriber interface {
	// Events возвращает read-only канал событий.
	Events() <-chan Event

	// Close освобождает ресурсы подписчика.
	Close()
}
