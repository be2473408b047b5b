package prompt

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ilkoid/onelife/pkg/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefault_RendersAnalysisPrompt(t *testing.T) {
	pf := LoadDefault()

	msgs, err := pf.RenderMessages(Data{
		Link:     "https://www.nehnutelnosti.sk/detail/123",
		Location: "Bratislava - Staré Mesto",
		Brand:    "ONE LIFE",
	})
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	assert.Equal(t, llm.RoleSystem, msgs[0].Role)
	assert.Contains(t, msgs[0].Content, "Si senior realitný expert pre ONE LIFE")

	assert.Equal(t, llm.RoleUser, msgs[1].Role)
	assert.Contains(t, msgs[1].Content, "Analyzuj túto nehnuteľnosť na základe odkazu: https://www.nehnutelnosti.sk/detail/123.")
	assert.Contains(t, msgs[1].Content, "Lokalita: Bratislava - Staré Mesto")
	assert.Contains(t, msgs[1].Content, "**ONE LIFE Verdikt**")
	assert.Contains(t, msgs[1].Content, "**Silné stránky**")
}

func TestLoadDefault_OptionsEnableSearch(t *testing.T) {
	opts := LoadDefault().Options()
	got := llm.ApplyGenerateOptions(llm.GenerateOptions{}, opts...)
	assert.True(t, got.Search)
}

func TestRenderMessages_MissingKeyFails(t *testing.T) {
	pf := &PromptFile{Messages: []Message{{Role: "user", Content: "{{.Nope}}"}}}
	_, err := pf.RenderMessages(map[string]string{"Link": "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "message #0")
}

func TestParse_Validation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"no user", "messages:\n  - role: system\n    content: x\n", "at least one user message"},
		{"bad role", "messages:\n  - role: tool\n    content: x\n", `unknown role "tool"`},
		{"bad yaml", "messages: [", "yaml parse error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadOrDefault_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	body := `
config:
  temperature: 0.2
  max_tokens: 900
messages:
  - role: user
    content: "Property: {{.Link}}"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	pf, err := LoadOrDefault(path)
	require.NoError(t, err)

	msgs, err := pf.RenderMessages(Data{Link: "https://example.com/1"})
	require.NoError(t, err)
	assert.Equal(t, []llm.Message{llm.UserMessage("Property: https://example.com/1")}, msgs)

	got := llm.ApplyGenerateOptions(llm.GenerateOptions{}, pf.Options()...)
	assert.Equal(t, llm.GenerateOptions{Temperature: 0.2, MaxTokens: 900}, got)

	_, err = LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "prompt file not found")
}
