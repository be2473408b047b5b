// Package llm предоставляет типы и интерфейсы для работы с LLM провайдерами.
//
// Этот файл определяет абстракции для потоковой передачи (streaming) ответов от LLM.
package llm

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// StreamingProvider - интерфейс для LLM провайдеров с поддержкой стриминга.
//
// # Rule 4: LLM Abstraction
//
// Работаем через интерфейс, конкретные реализации (Gemini, OpenAI, replay)
// скрыты за этой абстракцией.
type StreamingProvider interface {
	Provider

	// GenerateStream открывает поток фрагментов ответа.
	//
	// Ошибка возвращается сразу, если поток не удалось установить.
	// Ошибки в середине потока доступны через Stream.Err() после закрытия Chunks().
	GenerateStream(ctx context.Context, messages []Message, opts ...any) (*Stream, error)
}

// ChunkType определяет тип стримингового чанка.
type ChunkType string

const (
	// ChunkContent - обычный контент ответа.
	ChunkContent ChunkType = "content"
)

// StreamChunk представляет одну порцию данных из потокового ответа.
type StreamChunk struct {
	// Type определяет тип чанка
	Type ChunkType

	// Delta - новый фрагмент текста
	Delta string

	// Content - накопленный текст на данный момент (включая Delta)
	Content string

	// Index - порядковый номер фрагмента, начиная с 1
	Index int
}

// StreamState - явное состояние потока.
type StreamState int

const (
	// StreamOpen - поток ещё отдаёт фрагменты.
	StreamOpen StreamState = iota
	// StreamDone - поток исчерпан штатно.
	StreamDone
	// StreamFailed - провайдер вернул ошибку.
	StreamFailed
	// StreamClosed - потребитель закрыл поток раньше времени.
	StreamClosed
)

func (s StreamState) String() string {
	switch s {
	case StreamOpen:
		return "open"
	case StreamDone:
		return "done"
	case StreamFailed:
		return "failed"
	case StreamClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// ErrStreamClosed возвращается Err() если поток закрыт через Close().
var ErrStreamClosed = errors.New("stream closed by consumer")

// EmitFunc передаёт очередной фрагмент потребителю.
//
// Возвращает ошибку если потребитель закрыл поток (продюсер должен остановиться).
type EmitFunc func(delta string) error

// ProduceFunc - тело продюсера: вызывает emit для каждого фрагмента по порядку.
type ProduceFunc func(ctx context.Context, emit EmitFunc) error

// Stream - handle ленивой конечной последовательности фрагментов.
//
// Фрагменты приходят строго по порядку через Chunks(). Канал закрывается,
// когда продюсер закончил; после этого State() и Err() финальны.
//
// Thread-safe.
type Stream struct {
	chunks chan StreamChunk
	done   chan struct{}
	cancel context.CancelFunc

	mu     sync.Mutex
	state  StreamState
	err    error
	closed bool
}

// NewStream запускает продюсера в отдельной goroutine и возвращает handle.
func NewStream(ctx context.Context, produce ProduceFunc) *Stream {
	ctx, cancel := context.WithCancel(ctx)
	s := &Stream{
		chunks: make(chan StreamChunk),
		done:   make(chan struct{}),
		cancel: cancel,
		state:  StreamOpen,
	}
	go s.run(ctx, produce)
	return s
}

func (s *Stream) run(ctx context.Context, produce ProduceFunc) {
	var (
		acc   strings.Builder
		index int
	)

	emit := func(delta string) error {
		if delta == "" {
			return nil
		}
		acc.WriteString(delta)
		index++
		chunk := StreamChunk{
			Type:    ChunkContent,
			Delta:   delta,
			Content: acc.String(),
			Index:   index,
		}
		select {
		case s.chunks <- chunk:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	err := produce(ctx, emit)
	s.finish(err)
	s.cancel()

	close(s.chunks)
	close(s.done)
}

// finish фиксирует финальное состояние до закрытия канала.
func (s *Stream) finish(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.closed:
		s.state = StreamClosed
		s.err = ErrStreamClosed
	case err != nil:
		s.state = StreamFailed
		s.err = err
	default:
		s.state = StreamDone
	}
}

// Chunks возвращает read-only канал фрагментов.
func (s *Stream) Chunks() <-chan StreamChunk {
	return s.chunks
}

// Done закрывается после того как поток перешёл в финальное состояние.
func (s *Stream) Done() <-chan struct{} {
	return s.done
}

// State возвращает текущее состояние потока.
func (s *Stream) State() StreamState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Err возвращает ошибку потока (nil для StreamOpen и StreamDone).
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Close отменяет продюсера и дожидается его завершения.
//
// Безопасно вызывать повторно и после штатного завершения.
func (s *Stream) Close() {
	s.mu.Lock()
	if s.state == StreamOpen {
		s.closed = true
	}
	s.mu.Unlock()

	s.cancel()
	// Вычитываем остаток, чтобы продюсер не завис на отправке
	for range s.chunks {
	}
	<-s.done
}

// Collect вычитывает поток до конца и возвращает накопленный текст.
func (s *Stream) Collect() (string, error) {
	var acc strings.Builder
	for chunk := range s.Chunks() {
		acc.WriteString(chunk.Delta)
	}
	return acc.String(), s.Err()
}

// GenerateAsStream - fallback для WithStream(false): выполняет обычный Generate
// и отдаёт весь ответ одним фрагментом.
func GenerateAsStream(ctx context.Context, p Provider, messages []Message, opts ...any) *Stream {
	return NewStream(ctx, func(ctx context.Context, emit EmitFunc) error {
		msg, err := p.Generate(ctx, messages, opts...)
		if err != nil {
			return err
		}
		return emit(msg.Content)
	})
}
