// Package gemini реализует LLM провайдера поверх Google Gen AI SDK.
//
// В отличие от OpenAI-совместимого адаптера поддерживает Google Search
// grounding: модель сама проверяет локацию и цены в поиске.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ilkoid/onelife/pkg/config"
	"github.com/ilkoid/onelife/pkg/llm"
	"github.com/ilkoid/onelife/pkg/utils"
	"google.golang.org/genai"
)

// Client реализует llm.StreamingProvider для Gemini API.
type Client struct {
	models   *genai.Models
	defaults llm.GenerateOptions
}

// NewClient создаёт клиента Gemini.
//
// Отсутствие API ключа - *config.ConfigError до любого сетевого вызова.
func NewClient(ctx context.Context, modelDef config.ModelDef) (*Client, error) {
	if modelDef.APIKey == "" {
		return nil, &config.ConfigError{Field: "api_key", Reason: "is not defined for provider " + modelDef.Provider}
	}

	cc := &genai.ClientConfig{
		APIKey:  modelDef.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if modelDef.BaseURL != "" {
		cc.HTTPOptions.BaseURL = modelDef.BaseURL
	}

	api, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("gemini client init: %w", err)
	}

	return &Client{
		models: api.Models,
		defaults: llm.GenerateOptions{
			Model:       modelDef.ModelName,
			Temperature: modelDef.Temperature,
			MaxTokens:   modelDef.MaxTokens,
			Search:      modelDef.Search,
		},
	}, nil
}

// Generate выполняет обычный (не потоковый) запрос.
func (c *Client) Generate(ctx context.Context, messages []llm.Message, opts ...any) (llm.Message, error) {
	startTime := time.Now()
	o := llm.ApplyGenerateOptions(c.defaults, opts...)
	contents, cfg := buildRequest(messages, o)

	resp, err := c.models.GenerateContent(ctx, o.Model, contents, cfg)
	if err != nil {
		utils.Error("Gemini request failed", "error", err, "model", o.Model,
			"duration_ms", time.Since(startTime).Milliseconds())
		return llm.Message{}, fmt.Errorf("gemini api error: %w", err)
	}

	text := resp.Text()
	utils.Info("Gemini response received",
		"model", o.Model,
		"content_length", len(text),
		"duration_ms", time.Since(startTime).Milliseconds())

	return llm.Message{Role: llm.RoleAssistant, Content: text}, nil
}

// GenerateStream открывает потоковую генерацию.
//
// SDK отдаёт iter.Seq2 - он ленивый, поэтому ошибка установки соединения
// приходит первым элементом и попадает в Stream.Err().
func (c *Client) GenerateStream(ctx context.Context, messages []llm.Message, opts ...any) (*llm.Stream, error) {
	if !llm.IsStreamingMode(opts...) {
		return llm.GenerateAsStream(ctx, c, messages, opts...), nil
	}

	o := llm.ApplyGenerateOptions(c.defaults, opts...)
	contents, cfg := buildRequest(messages, o)

	utils.Debug("Gemini stream started", "model", o.Model, "search", o.Search)

	return llm.NewStream(ctx, func(ctx context.Context, emit llm.EmitFunc) error {
		for resp, err := range c.models.GenerateContentStream(ctx, o.Model, contents, cfg) {
			if err != nil {
				return fmt.Errorf("gemini api error: %w", err)
			}
			if err := emit(resp.Text()); err != nil {
				return err
			}
		}
		return nil
	}), nil
}

// buildRequest раскладывает сообщения: system уходит в SystemInstruction,
// остальные - в contents с ролями user/model.
func buildRequest(messages []llm.Message, o llm.GenerateOptions) ([]*genai.Content, *genai.GenerateContentConfig) {
	cfg := &genai.GenerateContentConfig{}

	var system []string
	contents := make([]*genai.Content, 0, len(messages))
	for _, m := range messages {
		switch m.Role {
		case llm.RoleSystem:
			system = append(system, m.Content)
		case llm.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	if len(system) > 0 {
		cfg.SystemInstruction = genai.NewContentFromText(strings.Join(system, "\n\n"), genai.RoleUser)
	}
	if o.Temperature > 0 {
		cfg.Temperature = genai.Ptr(float32(o.Temperature))
	}
	if o.MaxTokens > 0 {
		cfg.MaxOutputTokens = int32(o.MaxTokens)
	}
	if o.Search {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}

	return contents, cfg
}

// Ensure Client implements StreamingProvider
var _ llm.StreamingProvider = (*Client)(nil)
