// Интерфейс Провайдера через который работает всё приложение.

package llm

import "context"

// Provider - контракт для любого AI-сервиса (синхронная генерация).
type Provider interface {
	// Generate отправляет историю сообщений и возвращает полный ответ модели.
	//
	// opts - GenerateOption и StreamOption (лишние типы игнорируются).
	Generate(ctx context.Context, messages []Message, opts ...any) (Message, error)
}
