package debug

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ilkoid/onelife/pkg/events"
	"github.com/ilkoid/onelife/pkg/utils"
)

// RecorderConfig конфигурация для создания Recorder.
type RecorderConfig struct {
	// LogsDir - директория для трейсов, пусто = текущая
	LogsDir string

	// Model - имя модели для трейса
	Model string

	// IncludeFragments - писать текст каждого фрагмента
	IncludeFragments bool

	// MaxResultSize - максимальный размер FinalResult (превышение обрезается), 0 = без ограничений
	MaxResultSize int
}

// Recorder - Emitter-декоратор: записывает события анализа и передаёт их дальше.
//
// Один Recorder обслуживает последовательные анализы одной сессии: трейс
// начинается на переходе в analyzing и сохраняется на EventDone.
//
// Потокобезопасен.
type Recorder struct {
	mu sync.Mutex

	config RecorderConfig
	next   events.Emitter

	trace    *RunTrace
	start    time.Time
	lastPath string
}

// NewRecorder создаёт Recorder поверх next (nil допустим).
//
// Если LogsDir не существует, пытается создать её.
func NewRecorder(cfg RecorderConfig, next events.Emitter) (*Recorder, error) {
	if cfg.LogsDir != "" {
		if err := os.MkdirAll(cfg.LogsDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create logs directory: %w", err)
		}
	}
	return &Recorder{config: cfg, next: next}, nil
}

// Emit записывает событие и передаёт его следующему Emitter.
func (r *Recorder) Emit(ctx context.Context, event events.Event) {
	r.record(event)
	if r.next != nil {
		r.next.Emit(ctx, event)
	}
}

func (r *Recorder) record(event events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	switch data := event.Data.(type) {
	case events.PhaseData:
		if data.To == "analyzing" {
			r.begin(data.Link, event.Timestamp)
		}
		if r.trace != nil {
			r.trace.Phases = append(r.trace.Phases, PhaseChange{From: data.From, To: data.To, At: r.since(event.Timestamp)})
		}

	case events.FragmentData:
		if r.trace == nil {
			return
		}
		f := Fragment{Index: data.Index, Bytes: len(data.Chunk), At: r.since(event.Timestamp)}
		if r.config.IncludeFragments {
			f.Content = data.Chunk
		}
		r.trace.Fragments = append(r.trace.Fragments, f)

	case events.ErrorData:
		if r.trace != nil && data.Err != nil {
			r.trace.Error = data.Err.Error()
		}

	case events.DoneData:
		if r.trace == nil {
			return
		}
		r.trace.RunID = data.RunID
		r.trace.Duration = data.Duration.Milliseconds()
		r.trace.FinalResult = truncateString(data.Content, r.config.MaxResultSize)
		r.buildSummary(data.Failed)

		path, err := r.save()
		if err != nil {
			utils.Warn("Failed to save debug trace", "run_id", data.RunID, "error", err)
		} else {
			r.lastPath = path
			utils.Debug("Debug trace saved", "run_id", data.RunID, "path", path)
		}
		r.trace = nil
	}
}

// begin начинает новый трейс; незавершённый предыдущий отбрасывается.
func (r *Recorder) begin(link string, at time.Time) {
	if at.IsZero() {
		at = time.Now()
	}
	r.start = at
	r.trace = &RunTrace{
		Timestamp: at,
		Link:      link,
		Model:     r.config.Model,
	}
}

func (r *Recorder) since(at time.Time) int64 {
	if at.IsZero() {
		at = time.Now()
	}
	return at.Sub(r.start).Milliseconds()
}

func (r *Recorder) buildSummary(failed bool) {
	s := Summary{Fragments: len(r.trace.Fragments), Failed: failed}
	for _, f := range r.trace.Fragments {
		s.TotalBytes += f.Bytes
	}
	if len(r.trace.Fragments) > 0 {
		s.FirstFragmentMs = r.trace.Fragments[0].At
	}
	r.trace.Summary = s
}

// save сериализует трейс в <LogsDir>/run_<RunID>.json.
func (r *Recorder) save() (string, error) {
	data, err := json.MarshalIndent(r.trace, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal debug trace: %w", err)
	}

	name := "run_" + r.trace.RunID + ".json"
	path := name
	if r.config.LogsDir != "" {
		path = filepath.Join(r.config.LogsDir, name)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write debug trace: %w", err)
	}
	return path, nil
}

// LastPath возвращает путь к последнему сохранённому трейсу.
func (r *Recorder) LastPath() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastPath
}

// truncateString обрезает строку с индикатором обрезки.
func truncateString(s string, maxSize int) string {
	if maxSize <= 0 || len(s) <= maxSize {
		return s
	}
	return s[:maxSize] + "... (truncated)"
}

// Ensure Recorder implements Emitter
var _ events.Emitter = (*Recorder)(nil)
