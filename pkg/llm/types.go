// Базовые типы - определяем универсальный язык общения с моделями
package llm

// Role - роль автора сообщения.
type Role string

// Константы для удобства
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message - одно сообщение в запросе к модели.
type Message struct {
	Role    Role
	Content string
}

// SystemMessage и UserMessage - короткие конструкторы.
func SystemMessage(content string) Message { return Message{Role: RoleSystem, Content: content} }

func UserMessage(content string) Message { return Message{Role: RoleUser, Content: content} }
