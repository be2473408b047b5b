package replay

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ilkoid/onelife/pkg/config"
	"github.com/ilkoid/onelife/pkg/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	tests := []struct {
		name string
		text string
		size int
		want []string
	}{
		{"empty", "", 4, nil},
		{"zero size", "abc", 0, nil},
		{"exact", "abcd", 2, []string{"ab", "cd"}},
		{"remainder", "abcde", 2, []string{"ab", "cd", "e"}},
		{"diacritics by rune", "Silné", 3, []string{"Sil", "né"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(tt.text, tt.size))
		})
	}
}

func TestGenerateStream_ReplaysWholeText(t *testing.T) {
	c, err := NewClient(config.ModelDef{Provider: "replay", ChunkSize: 7})
	require.NoError(t, err)

	stream, err := c.GenerateStream(context.Background(), nil)
	require.NoError(t, err)

	text, err := stream.Collect()
	require.NoError(t, err)
	assert.Equal(t, SampleReport(), text)
	assert.Equal(t, llm.StreamDone, stream.State())
	assert.Contains(t, text, "## Silné stránky")
	assert.Contains(t, text, "## ONE LIFE Verdikt")
}

func TestGenerateStream_FailAfter(t *testing.T) {
	c, err := NewClient(config.ModelDef{Provider: "replay", ChunkSize: 5, FailAfter: 2})
	require.NoError(t, err)

	stream, err := c.GenerateStream(context.Background(), nil)
	require.NoError(t, err)

	var n int
	for range stream.Chunks() {
		n++
	}
	assert.Equal(t, 2, n)
	assert.ErrorIs(t, stream.Err(), ErrInjectedFailure)
	assert.Equal(t, llm.StreamFailed, stream.State())
}

func TestGenerateStream_FailAfterBeyondFragments(t *testing.T) {
	c, err := NewClient(config.ModelDef{Provider: "replay", ChunkSize: 1 << 20, FailAfter: 5})
	require.NoError(t, err)

	stream, err := c.GenerateStream(context.Background(), nil)
	require.NoError(t, err)

	var b strings.Builder
	for chunk := range stream.Chunks() {
		b.WriteString(chunk.Delta)
	}
	assert.Equal(t, SampleReport(), b.String())
	assert.ErrorIs(t, stream.Err(), ErrInjectedFailure)
	assert.Equal(t, llm.StreamFailed, stream.State())
}

func TestGenerateStream_DelayRespectsCancel(t *testing.T) {
	c, err := NewClient(config.ModelDef{Provider: "replay", ChunkSize: 1, Delay: time.Hour})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	stream, err := c.GenerateStream(ctx, nil)
	require.NoError(t, err)

	first := <-stream.Chunks()
	assert.Equal(t, "#", first.Delta)
	cancel()

	for range stream.Chunks() {
	}
	assert.ErrorIs(t, stream.Err(), context.Canceled)
}

func TestNewClient_Fixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.md")
	require.NoError(t, os.WriteFile(path, []byte("# Test\n\nBody"), 0o644))

	c, err := NewClient(config.ModelDef{Provider: "replay", Fixture: path})
	require.NoError(t, err)

	msg, err := c.Generate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, "# Test\n\nBody", msg.Content)

	_, err = NewClient(config.ModelDef{Provider: "replay", Fixture: filepath.Join(t.TempDir(), "missing.md")})
	require.Error(t, err)
	assert.True(t, config.IsConfigError(err))
}

func TestGenerateStream_NonStreamingMode(t *testing.T) {
	c, err := NewClient(config.ModelDef{Provider: "replay", ChunkSize: 3})
	require.NoError(t, err)

	stream, err := c.GenerateStream(context.Background(), nil, llm.WithStream(false))
	require.NoError(t, err)

	var chunks []string
	for ch := range stream.Chunks() {
		chunks = append(chunks, ch.Delta)
	}
	require.Len(t, chunks, 1)
	assert.True(t, strings.HasPrefix(chunks[0], "# Analýza"))
}
