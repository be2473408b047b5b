package factory

import (
	"context"
	"fmt"

	"github.com/ilkoid/onelife/pkg/config"
	"github.com/ilkoid/onelife/pkg/llm"
	"github.com/ilkoid/onelife/pkg/llm/gemini"
	"github.com/ilkoid/onelife/pkg/llm/openai"
	"github.com/ilkoid/onelife/pkg/llm/replay"
)

// NewLLMProvider создает провайдера на основе конфигурации модели.
//
// Ошибки конфигурации (нет ключа, нет модели) возвращаются как *config.ConfigError.
func NewLLMProvider(ctx context.Context, modelDef config.ModelDef) (llm.StreamingProvider, error) {
	var (
		provider llm.StreamingProvider
		err      error
	)

	// Типизированный nil не должен превращаться в ненулевой интерфейс
	switch modelDef.Provider {
	case "gemini", "google":
		var c *gemini.Client
		if c, err = gemini.NewClient(ctx, modelDef); err == nil {
			provider = c
		}

	case "zai", "openai", "deepseek", "openrouter":
		var c *openai.Client
		if c, err = openai.NewClient(modelDef); err == nil {
			provider = c
		}

	case "replay":
		var c *replay.Client
		if c, err = replay.NewClient(modelDef); err == nil {
			provider = c
		}

	default:
		return nil, fmt.Errorf("unknown provider type: %s", modelDef.Provider)
	}

	if err != nil {
		return nil, fmt.Errorf("create %s provider: %w", modelDef.Provider, err)
	}
	return provider, nil
}
