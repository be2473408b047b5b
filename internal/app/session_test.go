package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Lifecycle(t *testing.T) {
	s := NewSession()
	assert.Equal(t, Snapshot{Phase: PhaseInput}, s.Snapshot())

	require.NoError(t, s.Begin("https://example.com/1"))
	assert.Equal(t, PhaseAnalyzing, s.Phase())
	assert.True(t, s.Busy())

	text, index, promoted := s.Append("a")
	assert.Equal(t, "a", text)
	assert.Equal(t, 1, index)
	assert.True(t, promoted)

	text, index, promoted = s.Append("b")
	assert.Equal(t, "ab", text)
	assert.Equal(t, 2, index)
	assert.False(t, promoted)

	assert.False(t, s.Complete())
	assert.Equal(t, Snapshot{Phase: PhaseResult, Link: "https://example.com/1", Text: "ab", Fragments: 2}, s.Snapshot())

	require.NoError(t, s.Reset())
	assert.Equal(t, Snapshot{Phase: PhaseInput}, s.Snapshot())
}

func TestSession_BeginGuards(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Begin("x"))
	assert.ErrorIs(t, s.Begin("y"), ErrBusy)
	assert.ErrorIs(t, s.Reset(), ErrBusy)

	s.Complete()
	assert.ErrorIs(t, s.Begin("y"), ErrInvalidPhase)
}

func TestSession_FailReplacesText(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Begin("x"))
	s.Append("partial ")
	s.Append("report")

	assert.False(t, s.Fail("sorry"))
	snap := s.Snapshot()
	assert.Equal(t, "sorry", snap.Text)
	assert.Equal(t, PhaseResult, snap.Phase)
	assert.True(t, snap.Failed)
	assert.False(t, snap.Busy)
}

func TestSession_CompleteWithoutFragments(t *testing.T) {
	s := NewSession()
	require.NoError(t, s.Begin("x"))
	assert.True(t, s.Complete())
	assert.Equal(t, PhaseResult, s.Phase())
	assert.Empty(t, s.Snapshot().Text)
}

func TestSession_AppendOutsideAnalysisIgnored(t *testing.T) {
	s := NewSession()
	text, index, promoted := s.Append("late")
	assert.Empty(t, text)
	assert.Zero(t, index)
	assert.False(t, promoted)
	assert.Equal(t, PhaseInput, s.Phase())
}

func TestTextsFor(t *testing.T) {
	assert.Equal(t,
		"Ospravedlňujeme sa, ale momentálne sa nepodarilo spojiť s analytickým centrom. Skúste to prosím neskôr alebo skontrolujte správnosť odkazu.",
		TextsFor("sk").Apology)
	assert.Equal(t, TextsFor("sk"), TextsFor("de"))
	assert.Equal(t, "Analyzing property", TextsFor("en").AnalyzingTitle)
}
