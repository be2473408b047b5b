// Package utils предоставляет вспомогательные функции для обработки данных.
//
// Включает утилиты для очистки ответов LLM перед рендером.
package utils

import (
	"strings"
)

// fenceLanguages - метки, с которыми модель оборачивает весь ответ в code fence.
var fenceLanguages = []string{"markdown", "md", ""}

// StripMarkdownFence удаляет markdown-обёртку вокруг всего ответа.
//
// Gemini иногда возвращает отчёт обёрнутым в code block:
//
//	```markdown
//	# Úvod
//	...
//	```
//
// Во время стриминга закрывающего ``` ещё может не быть, поэтому
// открывающий fence снимается и без пары. Fence внутри текста не трогаем.
//
// Примеры:
//
//	"```markdown\n# A\n```" → "# A"
//	"```md\n# A\npartial" → "# A\npartial"
//	"# A\n```go\nx\n```" → без изменений
func StripMarkdownFence(s string) string {
	trimmed := strings.TrimLeft(s, " \t\r\n")
	if !strings.HasPrefix(trimmed, "```") {
		return s
	}

	firstLine, rest, found := strings.Cut(trimmed, "\n")
	if !found {
		// Пока пришёл только сам fence - показывать нечего
		return ""
	}

	lang := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(firstLine, "```")))
	if !isMarkdownFence(lang) {
		return s
	}

	body := strings.TrimRight(rest, " \t\r\n")
	body = strings.TrimSuffix(body, "```")
	return strings.TrimRight(body, " \t\r\n")
}

func isMarkdownFence(lang string) bool {
	for _, l := range fenceLanguages {
		if lang == l {
			return true
		}
	}
	return false
}

// NormalizeNewlines приводит переносы строк к \n.
func NormalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Truncate укорачивает строку до указанной длины (по символам, не байтам).
// Корректно обрабатывает Unicode (включая словацкий текст).
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
