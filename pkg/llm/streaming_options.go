// Package llm предоставляет функциональные опции для настройки стриминга.
package llm

// StreamOptions - параметры стриминга.
type StreamOptions struct {
	// Enabled - включен ли стриминг (default: true, opt-out).
	//
	// false: GenerateStream выполняет обычный Generate и отдаёт ответ одним фрагментом.
	Enabled bool
}

// StreamOption - функциональная опция для настройки стриминга.
type StreamOption func(*StreamOptions)

// WithStream включает или выключает стриминг.
//
//	provider.GenerateStream(ctx, msgs, WithStream(false)) // fallback на Generate
func WithStream(enabled bool) StreamOption {
	return func(o *StreamOptions) {
		o.Enabled = enabled
	}
}

// DefaultStreamOptions возвращает дефолтные значения для StreamOptions.
func DefaultStreamOptions() StreamOptions {
	return StreamOptions{Enabled: true}
}

// IsStreamingMode проверяет, включен ли стриминг в опциях.
//
// По умолчанию возвращает true (opt-out дизайн).
func IsStreamingMode(opts ...any) bool {
	so := DefaultStreamOptions()
	for _, opt := range opts {
		if streamOpt, ok := opt.(StreamOption); ok && streamOpt != nil {
			streamOpt(&so)
		}
	}
	return so.Enabled
}
