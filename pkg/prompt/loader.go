// Загрузка и Рендер - чтение файла и text/template.

package prompt

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"text/template"

	"github.com/ilkoid/onelife/pkg/llm"
	"gopkg.in/yaml.v3"
)

//go:embed prompts/property_analysis.yaml
var defaultPrompt []byte

// Load загружает и парсит YAML файл промпта
func Load(path string) (*PromptFile, error) {
	// 1. Проверяем наличие
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("prompt file not found: %s", path)
	}

	// 2. Читаем байты
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read error: %w", err)
	}

	return Parse(data)
}

// LoadDefault возвращает встроенный промпт анализа недвижимости.
func LoadDefault() *PromptFile {
	pf, err := Parse(defaultPrompt)
	if err != nil {
		// Встроенный файл проверяется тестами
		panic(fmt.Sprintf("embedded prompt is invalid: %v", err))
	}
	return pf
}

// LoadOrDefault загружает path, а для пустого path - встроенный промпт.
func LoadOrDefault(path string) (*PromptFile, error) {
	if path == "" {
		return LoadDefault(), nil
	}
	return Load(path)
}

// Parse парсит YAML промпта и проверяет, что в нём есть user сообщение.
func Parse(data []byte) (*PromptFile, error) {
	var pf PromptFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("yaml parse error: %w", err)
	}

	hasUser := false
	for i, msg := range pf.Messages {
		switch msg.Role {
		case "system", "assistant":
		case "user":
			hasUser = true
		default:
			return nil, fmt.Errorf("message #%d: unknown role %q", i, msg.Role)
		}
	}
	if !hasUser {
		return nil, fmt.Errorf("prompt must contain at least one user message")
	}

	return &pf, nil
}

// RenderMessages принимает данные (struct или map) и возвращает готовые сообщения
// где все {{.Field}} заменены на значения.
func (pf *PromptFile) RenderMessages(data any) ([]llm.Message, error) {
	rendered := make([]llm.Message, len(pf.Messages))

	for i, msg := range pf.Messages {
		// Отсутствующее поле - ошибка, а не "<no value>" в промпте
		tmpl, err := template.New("msg").Option("missingkey=error").Parse(msg.Content)
		if err != nil {
			return nil, fmt.Errorf("template parse error in message #%d (%s): %w", i, msg.Role, err)
		}

		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return nil, fmt.Errorf("template execute error in message #%d: %w", i, err)
		}

		rendered[i] = llm.Message{
			Role:    llm.Role(msg.Role),
			Content: buf.String(),
		}
	}

	return rendered, nil
}

// Options переводит PromptConfig в опции провайдера.
func (pf *PromptFile) Options() []any {
	var opts []any
	if pf.Config.Temperature > 0 {
		opts = append(opts, llm.WithTemperature(pf.Config.Temperature))
	}
	if pf.Config.MaxTokens > 0 {
		opts = append(opts, llm.WithMaxTokens(pf.Config.MaxTokens))
	}
	if pf.Config.Search != nil {
		opts = append(opts, llm.WithSearch(*pf.Config.Search))
	}
	return opts
}
