package events

import (
	"context"
	"sync"
)

// ChanEmitter - стандартная реализация Emitter через канал.
//
// Thread-safe.
// Используется TUI: bubbletea читает канал через tui.ReceiveEventCmd.
type ChanEmitter struct {
	mu        sync.RWMutex
	ch        chan Event
	done      chan struct{}
	closeOnce sync.Once
	closed    bool
}

// NewChanEmitter создаёт новый ChanEmitter с буферизованным каналом.
//
// buffer определяет размер буфера канала.
// Если buffer = 0, канал будет небуферизованным (blocking).
func NewChanEmitter(buffer int) *ChanEmitter {
	return &ChanEmitter{
		ch:   make(chan Event, buffer),
		done: make(chan struct{}),
	}
}

// Emit отправляет событие в канал.
//
// Thread-safe.
// Rule 11: уважает context.Context.
// После Close или отмены context событие молча отбрасывается.
func (e *ChanEmitter) Emit(ctx context.Context, event Event) {
	// RLock держится на время отправки: Close не закроет канал под нами
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return
	}

	select {
	case e.ch <- event:
	case <-ctx.Done():
	case <-e.done:
	}
}

// Subscribe возвращает Subscriber для чтения событий.
//
// Все подписчики читают из одного канала: событие получает только один из них.
func (e *ChanEmitter) Subscribe() Subscriber {
	return &chanSubscriber{ch: e.ch}
}

// Close закрывает канал и освобождает ресурсы.
//
// Thread-safe, повторный вызов безопасен.
// Заблокированные в Emit отправители освобождаются через done.
func (e *ChanEmitter) Close() {
	e.closeOnce.Do(func() {
		close(e.done)

		e.mu.Lock()
		defer e.mu.Unlock()
		e.closed = true
		close(e.ch)
	})
}

// chanSubscriber реализует Subscriber интерфейс.
type chanSubscriber struct {
	ch <-chan Event
}

// Events возвращает read-only канал событий.
func (s *chanSubscriber) Events() <-chan Event {
	return s.ch
}

// Close закрывает подписчика (no-op для shared channel).
//
// Реальный канал закрывается только через ChanEmitter.Close().
func (s *chanSubscriber) Close() {}

// Ensure ChanEmitter implements Emitter
var _ Emitter = (*ChanEmitter)(nil)

// Ensure chanSubscriber implements Subscriber
var _ Subscriber = (*chanSubscriber)(nil)

// Ensure EmitterFunc implements Emitter
var _ Emitter = EmitterFunc(nil)
