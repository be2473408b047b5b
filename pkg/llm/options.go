// Package llm provides options pattern for LLM generation parameters.
//
// Options are set at initialization (from config.yaml) and can be
// overridden at runtime by passing them to Generate / GenerateStream.
package llm

// GenerateOptions holds parameters for LLM generation.
type GenerateOptions struct {
	// Model is the model identifier (e.g., "gemini-2.5-flash")
	Model string

	// Temperature controls randomness in responses. Zero keeps the provider default.
	Temperature float64

	// MaxTokens limits the response length. Zero keeps the provider default.
	MaxTokens int

	// Search enables provider-side web search grounding (Google Search for Gemini).
	Search bool
}

// GenerateOption is a functional option for configuring GenerateOptions.
type GenerateOption func(*GenerateOptions)

// WithModel sets the model for generation.
func WithModel(model string) GenerateOption {
	return func(o *GenerateOptions) {
		o.Model = model
	}
}

// WithTemperature sets the temperature for generation.
func WithTemperature(temp float64) GenerateOption {
	return func(o *GenerateOptions) {
		o.Temperature = temp
	}
}

// WithMaxTokens sets the maximum tokens for generation.
func WithMaxTokens(tokens int) GenerateOption {
	return func(o *GenerateOptions) {
		o.MaxTokens = tokens
	}
}

// WithSearch enables or disables web search grounding.
func WithSearch(enabled bool) GenerateOption {
	return func(o *GenerateOptions) {
		o.Search = enabled
	}
}

// ApplyGenerateOptions applies every GenerateOption found in opts on top of base.
// Values of other types (StreamOption etc.) are skipped.
func ApplyGenerateOptions(base GenerateOptions, opts ...any) GenerateOptions {
	for _, opt := range opts {
		if o, ok := opt.(GenerateOption); ok && o != nil {
			o(&base)
		}
	}
	return base
}
