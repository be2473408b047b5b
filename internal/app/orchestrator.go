package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/ilkoid/onelife/pkg/events"
	"github.com/ilkoid/onelife/pkg/llm"
	"github.com/ilkoid/onelife/pkg/prompt"
	"github.com/ilkoid/onelife/pkg/utils"
)

// Orchestrator запускает анализ ссылки и ведёт Session по фазам.
//
// Rule 4: работает с провайдером только через llm.StreamingProvider.
// Rule 11: UI подписывается на события через events.Emitter.
type Orchestrator struct {
	session  *Session
	provider llm.StreamingProvider
	prompt   *prompt.PromptFile
	data     prompt.Data
	texts    Texts
	emitter  events.Emitter
	opts     []any
}

// Option настраивает Orchestrator.
type Option func(*Orchestrator)

// WithEmitter задаёт получателя событий.
func WithEmitter(e events.Emitter) Option {
	return func(o *Orchestrator) { o.emitter = e }
}

// WithTexts задаёт локализованные строки (в частности, извинение).
func WithTexts(t Texts) Option {
	return func(o *Orchestrator) { o.texts = t }
}

// WithPrompt задаёт шаблон промпта.
func WithPrompt(pf *prompt.PromptFile) Option {
	return func(o *Orchestrator) {
		if pf != nil {
			o.prompt = pf
		}
	}
}

// WithPromptData задаёт локацию и бренд для шаблона промпта.
func WithPromptData(location, brand string) Option {
	return func(o *Orchestrator) {
		o.data.Location = location
		o.data.Brand = brand
	}
}

// WithGenerateOptions передаёт опции провайдеру на каждый запрос.
func WithGenerateOptions(opts ...any) Option {
	return func(o *Orchestrator) { o.opts = append(o.opts, opts...) }
}

// WithSession подставляет существующую сессию.
func WithSession(s *Session) Option {
	return func(o *Orchestrator) {
		if s != nil {
			o.session = s
		}
	}
}

// NewOrchestrator создаёт оркестратор с новой сессией в фазе input.
func NewOrchestrator(provider llm.StreamingProvider, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		session:  NewSession(),
		provider: provider,
		prompt:   prompt.LoadDefault(),
		data:     prompt.Data{Location: "Bratislava - Staré Mesto", Brand: "ONE LIFE"},
		texts:    TextsFor(DefaultLocale),
		emitter:  events.EmitterFunc(func(context.Context, events.Event) {}),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Analyze анализирует ссылку и блокируется до конца потока.
//
// Пустая после trim ссылка: ErrEmptyLink, провайдер не вызывается, фаза не меняется.
// Идущий анализ: ErrBusy.
// Ошибка провайдера (при открытии или посреди потока) заменяет текст извинением,
// фаза становится result; ошибка возвращается вызывающему обёрнутой.
func (o *Orchestrator) Analyze(ctx context.Context, link string) error {
	link = strings.TrimSpace(link)
	if link == "" {
		utils.Debug("Empty link ignored")
		return ErrEmptyLink
	}

	if err := o.session.Begin(link); err != nil {
		return err
	}

	runID := uuid.NewString()
	start := time.Now()
	o.emitPhase(ctx, PhaseInput, PhaseAnalyzing, link)
	utils.Info("Analysis started", "run_id", runID, "link", link)

	err := o.consume(ctx, link)

	if err != nil {
		if o.session.Fail(o.texts.Apology) {
			o.emitPhase(ctx, PhaseAnalyzing, PhaseResult, link)
		}
		utils.Error("Analysis failed", "run_id", runID, "error", err,
			"duration_ms", time.Since(start).Milliseconds())
		o.emit(ctx, events.EventError, events.ErrorData{Err: err, Message: o.texts.Apology})
	} else if o.session.Complete() {
		o.emitPhase(ctx, PhaseAnalyzing, PhaseResult, link)
	}

	snap := o.session.Snapshot()
	if err == nil {
		utils.Info("Analysis completed", "run_id", runID,
			"fragments", snap.Fragments,
			"chars", len([]rune(snap.Text)),
			"duration_ms", time.Since(start).Milliseconds())
	}
	o.emit(ctx, events.EventDone, events.DoneData{
		RunID:     runID,
		Content:   snap.Text,
		Fragments: snap.Fragments,
		Failed:    err != nil,
		Duration:  time.Since(start),
	})

	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}
	return nil
}

// consume открывает поток и дописывает фрагменты строго по порядку.
func (o *Orchestrator) consume(ctx context.Context, link string) error {
	data := o.data
	data.Link = link
	messages, err := o.prompt.RenderMessages(data)
	if err != nil {
		return fmt.Errorf("render prompt: %w", err)
	}

	stream, err := o.provider.GenerateStream(ctx, messages, o.opts...)
	if err != nil {
		return err
	}
	defer stream.Close()

	for chunk := range stream.Chunks() {
		text, index, promoted := o.session.Append(chunk.Delta)
		if promoted {
			o.emitPhase(ctx, PhaseAnalyzing, PhaseResult, link)
		}
		o.emit(ctx, events.EventFragment, events.FragmentData{
			Chunk:       chunk.Delta,
			Accumulated: text,
			Index:       index,
		})
	}
	return stream.Err()
}

// Reset возвращает сессию в input. Во время анализа - ErrBusy.
func (o *Orchestrator) Reset(ctx context.Context) error {
	prev := o.session.Phase()
	if err := o.session.Reset(); err != nil {
		return err
	}
	if prev != PhaseInput {
		o.emitPhase(ctx, prev, PhaseInput, "")
	}
	return nil
}

// Snapshot возвращает текущее состояние сессии.
func (o *Orchestrator) Snapshot() Snapshot {
	return o.session.Snapshot()
}

// Texts возвращает локализованные строки.
func (o *Orchestrator) Texts() Texts {
	return o.texts
}

func (o *Orchestrator) emitPhase(ctx context.Context, from, to Phase, link string) {
	o.emit(ctx, events.EventPhaseChanged, events.PhaseData{From: string(from), To: string(to), Link: link})
}

func (o *Orchestrator) emit(ctx context.Context, t events.EventType, data events.EventData) {
	o.emitter.Emit(ctx, events.New(t, data))
}
