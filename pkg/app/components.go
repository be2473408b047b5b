// Package app собирает компоненты приложения из конфигурации: провайдера,
// промпт, тексты локали и парсер отчёта. Используется всеми командами
// (TUI, analyze, serve), чтобы инициализация не дублировалась.
//
// Rule 4: провайдер доступен только через llm.StreamingProvider.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	analysis "github.com/ilkoid/onelife/internal/app"
	"github.com/ilkoid/onelife/pkg/config"
	"github.com/ilkoid/onelife/pkg/factory"
	"github.com/ilkoid/onelife/pkg/llm"
	"github.com/ilkoid/onelife/pkg/prompt"
	"github.com/ilkoid/onelife/pkg/render"
	"github.com/ilkoid/onelife/pkg/tui"
	"github.com/ilkoid/onelife/pkg/utils"
)

// Components содержит всё, что нужно для запуска анализа.
type Components struct {
	Config     *config.AppConfig
	ModelAlias string
	Model      config.ModelDef
	Provider   llm.StreamingProvider
	Prompt     *prompt.PromptFile
	Texts      analysis.Texts
	Parser     *render.Parser
	Colors     tui.ColorScheme
}

// ConfigPathFinder определяет стратегию поиска пути к config.yaml.
//
// По умолчанию используется DefaultConfigPathFinder, но можно
// реализовать свою стратегию для тестов или специальных случаев.
type ConfigPathFinder interface {
	FindConfigPath() string
}

// DefaultConfigPathFinder реализует стандартную стратегию поиска config.yaml.
//
// Порядок поиска:
//  1. Флаг --config (если указан)
//  2. $ONELIFE_CONFIG
//  3. Текущая директория (./config.yaml)
//  4. Директория бинарника
//  5. Пользовательский конфиг (~/.config/onelife/config.yaml)
//
// Если ничего не найдено, возвращается ./config.yaml: LoadOrDefault
// подставит встроенные настройки.
type DefaultConfigPathFinder struct {
	// ConfigFlag - значение флага --config, если указан
	ConfigFlag string
}

// FindConfigPath находит путь к config.yaml.
func (f *DefaultConfigPathFinder) FindConfigPath() string {
	if f.ConfigFlag != "" {
		return resolveAbsPath(f.ConfigFlag)
	}
	if env := os.Getenv("ONELIFE_CONFIG"); env != "" {
		return resolveAbsPath(env)
	}

	candidates := []string{"config.yaml"}
	if execPath, err := os.Executable(); err == nil {
		candidates = append(candidates, filepath.Join(filepath.Dir(execPath), "config.yaml"))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, "onelife", "config.yaml"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return resolveAbsPath(p)
		}
	}

	return resolveAbsPath("config.yaml")
}

// InitializeConfig находит и загружает конфигурацию.
//
// Явно указанный файл обязан существовать; найденный по умолчанию путь
// может отсутствовать (тогда используются встроенные настройки).
//
// Правило 2: все настройки в YAML с поддержкой ENV-переменных.
func InitializeConfig(finder ConfigPathFinder, explicit bool) (*config.AppConfig, string, error) {
	cfgPath := finder.FindConfigPath()

	load := config.LoadOrDefault
	if explicit {
		load = config.Load
	}
	cfg, err := load(cfgPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config from %s: %w", cfgPath, err)
	}
	return cfg, cfgPath, nil
}

// Initialize создаёт компоненты для модели modelAlias (пусто = default_chat).
//
// Отсутствующий API ключ возвращается как *config.ConfigError из конструктора
// провайдера, до первого запроса.
func Initialize(ctx context.Context, cfg *config.AppConfig, modelAlias string) (*Components, error) {
	if modelAlias == "" {
		modelAlias = cfg.Models.DefaultChat
	}
	modelDef, ok := cfg.GetChatModel(modelAlias)
	if !ok {
		return nil, fmt.Errorf("model '%s' is not defined in models.definitions", modelAlias)
	}

	provider, err := factory.NewLLMProvider(ctx, modelDef)
	if err != nil {
		return nil, err
	}

	pf, err := prompt.LoadOrDefault(cfg.App.PromptFile)
	if err != nil {
		return nil, fmt.Errorf("load prompt: %w", err)
	}

	parser, err := NewParser(cfg)
	if err != nil {
		return nil, err
	}

	utils.Info("Components initialized",
		"model", modelAlias,
		"provider", modelDef.Provider,
		"model_name", modelDef.ModelName,
		"stream", modelDef.StreamEnabled(),
		"locale", cfg.App.Locale)

	return &Components{
		Config:     cfg,
		ModelAlias: modelAlias,
		Model:      modelDef,
		Provider:   provider,
		Prompt:     pf,
		Texts:      analysis.TextsFor(cfg.App.Locale),
		Parser:     parser,
		Colors:     tui.GetColorScheme(cfg.UI.ColorScheme),
	}, nil
}

// GenerateOptions - опции провайдера из промпта и модели.
func (c *Components) GenerateOptions() []any {
	opts := c.Prompt.Options()
	if !c.Model.StreamEnabled() {
		opts = append(opts, llm.WithStream(false))
	}
	return opts
}

// OrchestratorOptions возвращает опции для нового Orchestrator.
//
// Emitter не входит: каждая поверхность подключает свой.
func (c *Components) OrchestratorOptions() []analysis.Option {
	return []analysis.Option{
		analysis.WithTexts(c.Texts),
		analysis.WithPrompt(c.Prompt),
		analysis.WithPromptData(c.Config.App.Location, c.Config.App.Brand),
		analysis.WithGenerateOptions(c.GenerateOptions()...),
	}
}

// NewOrchestrator создаёт Orchestrator с опциями из конфигурации.
func (c *Components) NewOrchestrator(extra ...analysis.Option) *analysis.Orchestrator {
	return analysis.NewOrchestrator(c.Provider, append(c.OrchestratorOptions(), extra...)...)
}

// NewParser создаёт парсер отчёта с правилами заголовков из render.heading_rules.
//
// Не требует провайдера: используется и командой render.
func NewParser(cfg *config.AppConfig) (*render.Parser, error) {
	if len(cfg.Render.HeadingRules) == 0 {
		return render.NewParser(), nil
	}
	rules, err := render.RulesFromConfig(cfg.Render.HeadingRules)
	if err != nil {
		return nil, fmt.Errorf("render.heading_rules: %w", err)
	}
	return render.NewParser(render.WithClassifier(render.NewClassifier(rules))), nil
}

// resolveAbsPath преобразует путь в абсолютный (если это не уже абсолютный путь).
func resolveAbsPath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}
