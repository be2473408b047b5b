// Package replay реализует офлайн LLM провайдера: проигрывает готовый
// markdown отчёт фрагментами с паузой.
//
// Используется для демо без API ключа, в тестах и для воспроизведения
// сбоев посреди стрима (fail_after).
package replay

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilkoid/onelife/pkg/config"
	"github.com/ilkoid/onelife/pkg/llm"
	"github.com/ilkoid/onelife/pkg/utils"
)

//go:embed sample_report.md
var sampleReport string

// ErrInjectedFailure - ошибка, которую провайдер отдаёт после fail_after фрагментов
// (или после последнего, если фрагментов меньше).
var ErrInjectedFailure = errors.New("replay: injected upstream failure")

// Client проигрывает фиксированный текст.
type Client struct {
	text      string
	chunkSize int
	delay     time.Duration
	failAfter int
}

// NewClient создаёт replay провайдера.
//
// Пустой Fixture - встроенный пример отчёта.
func NewClient(modelDef config.ModelDef) (*Client, error) {
	text := sampleReport
	if modelDef.Fixture != "" {
		raw, err := os.ReadFile(modelDef.Fixture)
		if err != nil {
			return nil, &config.ConfigError{Field: "fixture", Reason: err.Error()}
		}
		text = string(raw)
	}

	chunkSize := modelDef.ChunkSize
	if chunkSize <= 0 {
		chunkSize = 24
	}

	return &Client{
		text:      text,
		chunkSize: chunkSize,
		delay:     modelDef.Delay,
		failAfter: modelDef.FailAfter,
	}, nil
}

// Generate возвращает весь текст сразу.
func (c *Client) Generate(ctx context.Context, messages []llm.Message, opts ...any) (llm.Message, error) {
	if c.failAfter > 0 {
		return llm.Message{}, ErrInjectedFailure
	}
	if err := ctx.Err(); err != nil {
		return llm.Message{}, err
	}
	return llm.Message{Role: llm.RoleAssistant, Content: c.text}, nil
}

// GenerateStream отдаёт текст фрагментами по chunkSize рун.
func (c *Client) GenerateStream(ctx context.Context, messages []llm.Message, opts ...any) (*llm.Stream, error) {
	if !llm.IsStreamingMode(opts...) {
		return llm.GenerateAsStream(ctx, c, messages, opts...), nil
	}

	chunks := Split(c.text, c.chunkSize)
	utils.Debug("Replay stream started", "chunks", len(chunks), "delay", c.delay)

	return llm.NewStream(ctx, func(ctx context.Context, emit llm.EmitFunc) error {
		for i, chunk := range chunks {
			if c.failAfter > 0 && i == c.failAfter {
				return fmt.Errorf("after %d fragments: %w", i, ErrInjectedFailure)
			}
			if i > 0 && c.delay > 0 {
				select {
				case <-time.After(c.delay):
				case <-ctx.Done():
					return ctx.Err()
				}
			}
			if err := emit(chunk); err != nil {
				return err
			}
		}
		// fail_after не меньше числа фрагментов: сбой после последнего
		if c.failAfter > 0 {
			return fmt.Errorf("after %d fragments: %w", len(chunks), ErrInjectedFailure)
		}
		return nil
	}), nil
}

// Split режет текст на куски по size рун (не байт, чтобы не рвать диакритику).
func Split(text string, size int) []string {
	if size <= 0 || text == "" {
		return nil
	}
	runes := []rune(text)
	out := make([]string, 0, len(runes)/size+1)
	for start := 0; start < len(runes); start += size {
		end := min(start+size, len(runes))
		out = append(out, string(runes[start:end]))
	}
	return out
}

// SampleReport возвращает встроенный пример отчёта.
func SampleReport() string {
	return sampleReport
}

// Ensure Client implements StreamingProvider
var _ llm.StreamingProvider = (*Client)(nil)
