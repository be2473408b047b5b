package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AppConfig - корневая структура конфигурации.
// Она зеркалит структуру config.yaml.
type AppConfig struct {
	Models ModelsConfig `yaml:"models"`
	App    AppSpecific  `yaml:"app"`
	UI     UIConfig     `yaml:"ui"`
	Server ServerConfig `yaml:"server"`
	Render RenderConfig `yaml:"render"`
}

// ModelsConfig - настройки AI моделей.
type ModelsConfig struct {
	DefaultChat string              `yaml:"default_chat"` // Алиас модели для анализа (например, "gemini-flash")
	Definitions map[string]ModelDef `yaml:"definitions"`  // Словарь определений моделей
}

// ModelDef - параметры конкретной модели.
type ModelDef struct {
	Provider    string  `yaml:"provider"`   // "gemini", "openai", "replay" и т.д.
	ModelName   string  `yaml:"model_name"` // Реальное имя в API
	APIKey      string  `yaml:"api_key"`    // Поддерживает ${VAR}
	BaseURL     string  `yaml:"base_url"`   // Для OpenAI-совместимых API
	MaxTokens   int     `yaml:"max_tokens"`
	Temperature float64 `yaml:"temperature"`

	// Search включает web-поиск на стороне провайдера (Google Search grounding).
	Search bool `yaml:"search"`

	// Stream - nil означает "по умолчанию" (стриминг включён).
	Stream *bool `yaml:"stream"`

	// Поля для replay провайдера (офлайн демо).
	Fixture   string        `yaml:"fixture"`    // Путь к markdown файлу, пусто = встроенный пример
	ChunkSize int           `yaml:"chunk_size"` // Размер фрагмента в рунах
	Delay     time.Duration `yaml:"delay"`      // Пауза между фрагментами ("40ms")
	FailAfter int           `yaml:"fail_after"` // Ошибка после N фрагментов, 0 = без ошибки
}

// StreamEnabled возвращает true если стриминг не выключен явно.
func (m ModelDef) StreamEnabled() bool {
	return m.Stream == nil || *m.Stream
}

// AppSpecific - общие настройки приложения.
type AppSpecific struct {
	Debug      bool   `yaml:"debug"`
	Locale     string `yaml:"locale"`      // "sk" (по умолчанию) или "en"
	LogDir     string `yaml:"log_dir"`     // Куда писать onelife-*.log
	PromptFile string `yaml:"prompt_file"` // Пусто = встроенный промпт
	Brand      string `yaml:"brand"`
	Location   string `yaml:"location"`
}

// UIConfig - настройки TUI.
type UIConfig struct {
	ColorScheme     string `yaml:"color_scheme"`
	ScrollThreshold int    `yaml:"scroll_threshold"` // Строк от низа, при которых работает автоскролл
	MaxWidth        int    `yaml:"max_width"`        // Максимальная ширина документа
}

// ServerConfig - настройки web-интерфейса.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// RenderConfig - настройки рендера отчёта.
type RenderConfig struct {
	// HeadingRules переопределяют встроенные правила классификации H2 заголовков.
	// Порядок важен: побеждает первое совпавшее правило.
	HeadingRules []HeadingRuleConfig `yaml:"heading_rules"`
}

// HeadingRuleConfig - одно правило: тон и ключевые слова (подстроки без учёта регистра).
type HeadingRuleConfig struct {
	Tone     string   `yaml:"tone"` // positive, negative, verdict, neutral
	Keywords []string `yaml:"keywords"`
}

// ConfigError - ошибка конфигурации (например, отсутствует API ключ).
//
// Возвращается конструкторами провайдеров, проверяется через errors.As.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: %s: %s", e.Field, e.Reason)
}

// IsConfigError проверяет, является ли err (или обёрнутая им ошибка) ConfigError.
func IsConfigError(err error) bool {
	var ce *ConfigError
	return errors.As(err, &ce)
}

// Load читает YAML файл, подставляет ENV переменные и возвращает готовую структуру.
func Load(path string) (*AppConfig, error) {
	// 1. Проверяем существование файла
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found at: %s", path)
	}

	// 2. Читаем файл целиком
	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return Parse(rawBytes)
}

// LoadOrDefault работает как Load, но при отсутствии файла возвращает Default().
//
// Позволяет запускать приложение только с переменной окружения API_KEY.
func LoadOrDefault(path string) (*AppConfig, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		return &cfg, nil
	}
	return Load(path)
}

// Parse подставляет ENV переменные в сырой YAML и парсит его.
func Parse(raw []byte) (*AppConfig, error) {
	// os.ExpandEnv заменяет ${VAR} или $VAR на значение из системы.
	contentWithEnv := os.ExpandEnv(string(raw))

	var cfg AppConfig
	if err := yaml.Unmarshal([]byte(contentWithEnv), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	cfg = cfg.GetDefaults()

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Default возвращает конфигурацию по умолчанию: Gemini с ключом из $API_KEY.
func Default() AppConfig {
	cfg := AppConfig{
		Models: ModelsConfig{
			DefaultChat: "gemini-flash",
			Definitions: map[string]ModelDef{
				"gemini-flash": {
					Provider:  "gemini",
					ModelName: "gemini-2.5-flash",
					APIKey:    os.Getenv("API_KEY"),
					Search:    true,
				},
				"demo": {
					Provider: "replay",
				},
			},
		},
	}
	return cfg.GetDefaults()
}

// GetDefaults возвращает копию с дефолтными значениями для незаполненных полей.
func (c AppConfig) GetDefaults() AppConfig {
	result := c // Копируем текущие значения

	if result.App.Locale == "" {
		result.App.Locale = "sk"
	}
	if result.App.LogDir == "" {
		result.App.LogDir = "."
	}
	if result.App.Brand == "" {
		result.App.Brand = "ONE LIFE"
	}
	if result.App.Location == "" {
		result.App.Location = "Bratislava - Staré Mesto"
	}
	if result.UI.ColorScheme == "" {
		result.UI.ColorScheme = "onelife"
	}
	if result.UI.ScrollThreshold == 0 {
		result.UI.ScrollThreshold = 3
	}
	if result.UI.MaxWidth == 0 {
		result.UI.MaxWidth = 100
	}
	if result.Server.Addr == "" {
		result.Server.Addr = ":8080"
	}

	if len(result.Models.Definitions) > 0 {
		defs := make(map[string]ModelDef, len(result.Models.Definitions))
		for name, def := range result.Models.Definitions {
			defs[name] = def.GetDefaults()
		}
		result.Models.Definitions = defs
	}

	return result
}

// GetDefaults заполняет дефолты модели в зависимости от провайдера.
func (m ModelDef) GetDefaults() ModelDef {
	result := m

	switch result.Provider {
	case "gemini", "google":
		if result.ModelName == "" {
			result.ModelName = "gemini-2.5-flash"
		}
	case "replay":
		if result.ModelName == "" {
			result.ModelName = "replay"
		}
		if result.ChunkSize == 0 {
			result.ChunkSize = 24
		}
		if result.Delay == 0 {
			result.Delay = 40 * time.Millisecond
		}
	}

	return result
}

// validate проверяет обязательные поля.
//
// API ключ здесь НЕ проверяется: его отсутствие - ConfigError конструктора провайдера.
func (c *AppConfig) validate() error {
	if len(c.Models.Definitions) == 0 {
		return fmt.Errorf("models.definitions must contain at least one model")
	}
	if c.Models.DefaultChat == "" {
		return fmt.Errorf("models.default_chat is required")
	}
	if _, ok := c.Models.Definitions[c.Models.DefaultChat]; !ok {
		return fmt.Errorf("default_chat model '%s' is not defined in definitions", c.Models.DefaultChat)
	}
	for name, def := range c.Models.Definitions {
		if def.Provider == "" {
			return fmt.Errorf("model '%s': provider is required", name)
		}
		if def.ChunkSize < 0 || def.FailAfter < 0 {
			return fmt.Errorf("model '%s': chunk_size and fail_after must not be negative", name)
		}
	}
	if c.UI.ScrollThreshold < 0 {
		return fmt.Errorf("ui.scroll_threshold must not be negative")
	}
	for i, rule := range c.Render.HeadingRules {
		if len(rule.Keywords) == 0 {
			return fmt.Errorf("render.heading_rules[%d]: keywords are required", i)
		}
	}
	return nil
}

// GetChatModel возвращает конфигурацию модели по умолчанию или по имени.
func (c *AppConfig) GetChatModel(name string) (ModelDef, bool) {
	if name == "" {
		name = c.Models.DefaultChat
	}
	m, ok := c.Models.Definitions[name]
	return m, ok
}
