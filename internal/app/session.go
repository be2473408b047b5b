// Package app содержит состояние сессии анализа и оркестратор запроса.
//
// Правила пакета:
//   - Rule 5: Thread-safe доступ через sync.RWMutex
//   - Rule 6: Application-specific логика, может импортировать pkg/
//   - Rule 7: Все ошибки возвращаются, никаких panic
package app

import (
	"errors"
	"strings"
	"sync"
)

// Phase - фаза жизненного цикла экрана.
type Phase string

const (
	PhaseInput     Phase = "input"
	PhaseAnalyzing Phase = "analyzing"
	PhaseResult    Phase = "result"
)

var (
	// ErrEmptyLink - ссылка пустая после trim. Интерфейс молча игнорирует отправку.
	ErrEmptyLink = errors.New("link is empty")

	// ErrBusy - анализ уже идёт, второй запрос не запускается.
	ErrBusy = errors.New("analysis already in progress")

	// ErrInvalidPhase - операция недопустима в текущей фазе.
	ErrInvalidPhase = errors.New("invalid phase for this operation")
)

// Snapshot - неизменяемая копия состояния сессии для UI.
type Snapshot struct {
	Phase     Phase
	Link      string
	Text      string
	Busy      bool
	Failed    bool
	Fragments int
}

// Session - состояние одного экрана анализа.
//
// Писатель один (Orchestrator), читатели (UI) получают Snapshot.
// Текст только растёт до Reset; исключение - Fail, который заменяет его целиком.
type Session struct {
	mu        sync.RWMutex
	phase     Phase
	link      string
	text      strings.Builder
	busy      bool
	failed    bool
	fragments int
}

// NewSession создаёт сессию в фазе input.
func NewSession() *Session {
	return &Session{phase: PhaseInput}
}

// Begin переводит input → analyzing и выставляет busy.
func (s *Session) Begin(link string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return ErrBusy
	}
	if s.phase != PhaseInput {
		return ErrInvalidPhase
	}

	s.phase = PhaseAnalyzing
	s.link = link
	s.text.Reset()
	s.busy = true
	s.failed = false
	s.fragments = 0
	return nil
}

// Append дописывает фрагмент. Первый фрагмент переводит analyzing → result.
//
// Возвращает накопленный текст, номер фрагмента и признак смены фазы.
// Вне активного анализа фрагмент игнорируется.
func (s *Session) Append(fragment string) (text string, index int, promoted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.busy {
		return s.text.String(), s.fragments, false
	}

	s.text.WriteString(fragment)
	s.fragments++
	if s.phase == PhaseAnalyzing {
		s.phase = PhaseResult
		promoted = true
	}
	return s.text.String(), s.fragments, promoted
}

// Fail заменяет весь накопленный текст сообщением и завершает анализ в фазе result.
func (s *Session) Fail(message string) (promoted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.text.Reset()
	s.text.WriteString(message)
	s.failed = true
	return s.finishLocked()
}

// Complete завершает анализ. Поток без фрагментов тоже заканчивается в result.
func (s *Session) Complete() (promoted bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finishLocked()
}

func (s *Session) finishLocked() bool {
	s.busy = false
	if s.phase == PhaseAnalyzing {
		s.phase = PhaseResult
		return true
	}
	return false
}

// Reset возвращает сессию в input и очищает ссылку и текст.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.busy {
		return ErrBusy
	}
	s.phase = PhaseInput
	s.link = ""
	s.text.Reset()
	s.failed = false
	s.fragments = 0
	return nil
}

// Snapshot возвращает копию состояния.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Phase:     s.phase,
		Link:      s.link,
		Text:      s.text.String(),
		Busy:      s.busy,
		Failed:    s.failed,
		Fragments: s.fragments,
	}
}

// Phase возвращает текущую фазу.
func (s *Session) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// Busy сообщает, идёт ли анализ.
func (s *Session) Busy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.busy
}
