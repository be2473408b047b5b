// Package openai реализует адаптер LLM провайдера для OpenAI-совместимых API.
//
// Работает с OpenAI, OpenRouter, DeepSeek, Zai и OpenAI-совместимым
// endpoint Gemini (base_url). Соблюдает правило 4 манифеста: работает
// только через интерфейс llm.StreamingProvider.
package openai

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/ilkoid/onelife/pkg/config"
	"github.com/ilkoid/onelife/pkg/llm"
	"github.com/ilkoid/onelife/pkg/utils"
	openai "github.com/sashabaranov/go-openai"
)

// Client реализует интерфейс llm.StreamingProvider для OpenAI-совместимых API.
type Client struct {
	api      *openai.Client
	defaults llm.GenerateOptions
}

// NewClient создает OpenAI клиент на основе конфигурации модели.
//
// Отсутствие API ключа - *config.ConfigError при создании, а не при первом запросе.
//
// Правило 2: Все настройки из конфигурации, никакого хардкода.
func NewClient(modelDef config.ModelDef) (*Client, error) {
	if modelDef.APIKey == "" {
		return nil, &config.ConfigError{Field: "api_key", Reason: "is not defined for provider " + modelDef.Provider}
	}
	if modelDef.ModelName == "" {
		return nil, &config.ConfigError{Field: "model_name", Reason: "is required for provider " + modelDef.Provider}
	}

	// Поддержка custom BaseURL для non-OpenAI провайдеров (Zai, DeepSeek и т.д.)
	cfg := openai.DefaultConfig(modelDef.APIKey)
	if modelDef.BaseURL != "" {
		cfg.BaseURL = modelDef.BaseURL
	}

	return &Client{
		api: openai.NewClientWithConfig(cfg),
		defaults: llm.GenerateOptions{
			Model:       modelDef.ModelName,
			Temperature: modelDef.Temperature,
			MaxTokens:   modelDef.MaxTokens,
			Search:      modelDef.Search,
		},
	}, nil
}

// Generate выполняет запрос к API и возвращает полный ответ модели.
//
// Правило 7: Все ошибки возвращаются, никаких panic.
func (c *Client) Generate(ctx context.Context, messages []llm.Message, opts ...any) (llm.Message, error) {
	startTime := time.Now()
	req := c.buildRequest(messages, opts...)

	utils.Debug("LLM request started", "model", req.Model, "messages_count", len(messages))

	resp, err := c.api.CreateChatCompletion(ctx, req)
	if err != nil {
		utils.Error("LLM API request failed",
			"error", err,
			"model", req.Model,
			"duration_ms", time.Since(startTime).Milliseconds())
		return llm.Message{}, fmt.Errorf("openai api error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return llm.Message{}, fmt.Errorf("no choices in response")
	}

	choice := resp.Choices[0].Message
	utils.Info("LLM response received",
		"model", req.Model,
		"content_length", len(choice.Content),
		"duration_ms", time.Since(startTime).Milliseconds())

	return llm.Message{Role: llm.RoleAssistant, Content: choice.Content}, nil
}

// GenerateStream открывает SSE поток chat completions.
//
// Ошибка установки соединения (4xx/5xx, сеть) возвращается сразу;
// ошибки в середине потока - через Stream.Err().
func (c *Client) GenerateStream(ctx context.Context, messages []llm.Message, opts ...any) (*llm.Stream, error) {
	if !llm.IsStreamingMode(opts...) {
		return llm.GenerateAsStream(ctx, c, messages, opts...), nil
	}

	req := c.buildRequest(messages, opts...)
	req.Stream = true

	utils.Debug("LLM stream started", "model", req.Model, "messages_count", len(messages))

	stream, err := c.api.CreateChatCompletionStream(ctx, req)
	if err != nil {
		utils.Error("LLM stream request failed", "error", err, "model", req.Model)
		return nil, fmt.Errorf("openai api error: %w", err)
	}

	return llm.NewStream(ctx, func(ctx context.Context, emit llm.EmitFunc) error {
		defer stream.Close()

		for {
			resp, err := stream.Recv()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("openai stream error: %w", err)
			}
			if len(resp.Choices) == 0 {
				continue
			}
			if err := emit(resp.Choices[0].Delta.Content); err != nil {
				return err
			}
		}
	}), nil
}

// buildRequest собирает запрос из дефолтов модели и runtime опций.
func (c *Client) buildRequest(messages []llm.Message, opts ...any) openai.ChatCompletionRequest {
	o := llm.ApplyGenerateOptions(c.defaults, opts...)
	if o.Search {
		// Chat Completions API не умеет grounding, просто предупреждаем
		utils.Warn("search grounding is not supported by openai provider, ignoring", "model", o.Model)
	}

	openaiMsgs := make([]openai.ChatCompletionMessage, len(messages))
	for i, m := range messages {
		openaiMsgs[i] = mapToOpenAI(m)
	}

	return openai.ChatCompletionRequest{
		Model:       o.Model,
		Messages:    openaiMsgs,
		Temperature: float32(o.Temperature),
		MaxTokens:   o.MaxTokens,
	}
}

// mapToOpenAI конвертирует наше внутреннее сообщение в формат SDK.
func mapToOpenAI(m llm.Message) openai.ChatCompletionMessage {
	role := openai.ChatMessageRoleUser
	switch m.Role {
	case llm.RoleSystem:
		role = openai.ChatMessageRoleSystem
	case llm.RoleAssistant:
		role = openai.ChatMessageRoleAssistant
	}
	return openai.ChatCompletionMessage{Role: role, Content: m.Content}
}

// Ensure Client implements StreamingProvider
var _ llm.StreamingProvider = (*Client)(nil)
