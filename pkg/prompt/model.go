// Структуры данных - описывает формат YAML файла промпта.
package prompt

// PromptFile описывает структуру YAML-файла с промптом
type PromptFile struct {
	Config   PromptConfig `yaml:"config"`
	Messages []Message    `yaml:"messages"`
}

// PromptConfig - настройки модели для конкретного промпта.
// Нулевые значения означают "как в ModelDef".
type PromptConfig struct {
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	Search      *bool   `yaml:"search"` // nil = как в ModelDef
}

// Message - одно сообщение в чате
type Message struct {
	Role    string `yaml:"role"`    // system, user, assistant
	Content string `yaml:"content"` // Шаблон с {{.Variables}}
}

// Data - переменные шаблона анализа.
type Data struct {
	Link     string // Ссылка на объявление, уже без пробелов по краям
	Location string // Ожидаемая локация, например "Bratislava - Staré Mesto"
	Brand    string // Бренд, от имени которого пишется отчёт
}
