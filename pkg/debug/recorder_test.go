package debug

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ilkoid/onelife/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(base time.Time, ms int) time.Time {
	return base.Add(time.Duration(ms) * time.Millisecond)
}

func runEvents(base time.Time, failed bool) []events.Event {
	evs := []events.Event{
		{Type: events.EventPhaseChanged, Data: events.PhaseData{From: "input", To: "analyzing", Link: "https://example.sk/1"}, Timestamp: base},
		{Type: events.EventPhaseChanged, Data: events.PhaseData{From: "analyzing", To: "result", Link: "https://example.sk/1"}, Timestamp: at(base, 120)},
		{Type: events.EventFragment, Data: events.FragmentData{Chunk: "# Byt\n", Accumulated: "# Byt\n", Index: 1}, Timestamp: at(base, 120)},
		{Type: events.EventFragment, Data: events.FragmentData{Chunk: "Text", Accumulated: "# Byt\nText", Index: 2}, Timestamp: at(base, 150)},
	}
	content := "# Byt\nText"
	if failed {
		evs = append(evs, events.Event{Type: events.EventError,
			Data: events.ErrorData{Err: errors.New("upstream reset"), Message: "sorry"}, Timestamp: at(base, 160)})
		content = "sorry"
	}
	return append(evs, events.Event{Type: events.EventDone, Data: events.DoneData{
		RunID: "run-1", Content: content, Fragments: 2, Failed: failed, Duration: 170 * time.Millisecond,
	}, Timestamp: at(base, 170)})
}

func readTrace(t *testing.T, path string) RunTrace {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var trace RunTrace
	require.NoError(t, json.Unmarshal(data, &trace))
	return trace
}

func TestRecorder_SavesTraceAndForwards(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "traces")
	var forwarded []events.EventType
	next := events.EmitterFunc(func(_ context.Context, e events.Event) {
		forwarded = append(forwarded, e.Type)
	})

	r, err := NewRecorder(RecorderConfig{LogsDir: dir, Model: "replay"}, next)
	require.NoError(t, err)

	for _, e := range runEvents(time.Now(), false) {
		r.Emit(context.Background(), e)
	}

	assert.Len(t, forwarded, 5)
	assert.Equal(t, filepath.Join(dir, "run_run-1.json"), r.LastPath())

	trace := readTrace(t, r.LastPath())
	assert.Equal(t, "run-1", trace.RunID)
	assert.Equal(t, "https://example.sk/1", trace.Link)
	assert.Equal(t, "replay", trace.Model)
	assert.Equal(t, int64(170), trace.Duration)
	require.Len(t, trace.Phases, 2)
	assert.Equal(t, PhaseChange{From: "analyzing", To: "result", At: 120}, trace.Phases[1])
	require.Len(t, trace.Fragments, 2)
	assert.Empty(t, trace.Fragments[0].Content)
	assert.Equal(t, Summary{Fragments: 2, TotalBytes: 10, FirstFragmentMs: 120}, trace.Summary)
	assert.Equal(t, "# Byt\nText", trace.FinalResult)
	assert.Empty(t, trace.Error)
}

func TestRecorder_FailureAndOptions(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRecorder(RecorderConfig{LogsDir: dir, IncludeFragments: true, MaxResultSize: 3}, nil)
	require.NoError(t, err)

	for _, e := range runEvents(time.Now(), true) {
		r.Emit(context.Background(), e)
	}

	trace := readTrace(t, r.LastPath())
	assert.Equal(t, "upstream reset", trace.Error)
	assert.True(t, trace.Summary.Failed)
	assert.Equal(t, "# Byt\n", trace.Fragments[0].Content)
	assert.Equal(t, "sor... (truncated)", trace.FinalResult)
}

func TestRecorder_IgnoresEventsOutsideRun(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRecorder(RecorderConfig{LogsDir: dir}, nil)
	require.NoError(t, err)

	r.Emit(context.Background(), events.New(events.EventFragment, events.FragmentData{Chunk: "x", Index: 1}))
	r.Emit(context.Background(), events.New(events.EventDone, events.DoneData{RunID: "orphan"}))
	r.Emit(context.Background(), events.New(events.EventPhaseChanged, events.PhaseData{From: "result", To: "input"}))

	assert.Empty(t, r.LastPath())
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "abc", truncateString("abc", 0))
	assert.Equal(t, "abc", truncateString("abc", 3))
	assert.Equal(t, "ab... (truncated)", truncateString("abc", 2))
}
