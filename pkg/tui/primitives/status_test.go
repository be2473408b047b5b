package primitives

import (
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusBarManager_ProcessingState(t *testing.T) {
	sm := NewStatusBarManager(DefaultStatusBarConfig())

	output := sm.Render()
	assert.Contains(t, output, "✓ Ready")
	assert.False(t, sm.IsProcessing())

	sm.SetProcessing(true)
	output = sm.Render()
	assert.NotContains(t, output, "✓ Ready")
	assert.NotEmpty(t, output)
	assert.True(t, sm.IsProcessing())
}

func TestStatusBarManager_ReadyLabel(t *testing.T) {
	cfg := DefaultStatusBarConfig()
	cfg.ReadyLabel = "✓ Pripravené"
	sm := NewStatusBarManager(cfg)
	assert.Contains(t, sm.Render(), "✓ Pripravené")

	cfg.ReadyLabel = ""
	sm = NewStatusBarManager(cfg)
	assert.Contains(t, sm.Render(), "✓ Ready")
}

func TestStatusBarManager_DebugMode(t *testing.T) {
	sm := NewStatusBarManager(DefaultStatusBarConfig())

	assert.NotContains(t, sm.Render(), "DEBUG")
	sm.SetDebugMode(true)
	assert.Contains(t, sm.Render(), "DEBUG")
	assert.True(t, sm.IsDebugMode())
}

func TestStatusBarManager_ModelAndHint(t *testing.T) {
	sm := NewStatusBarManager(DefaultStatusBarConfig())
	sm.SetModel("gemini-2.5-flash")
	sm.SetHint("ctrl+n nová analýza")

	output := sm.Render()
	assert.Contains(t, output, "gemini-2.5-flash")
	assert.Contains(t, output, "ctrl+n nová analýza")
}

func TestStatusBarManager_Progress(t *testing.T) {
	sm := NewStatusBarManager(DefaultStatusBarConfig())

	sm.SetProgress(0, 0)
	assert.NotContains(t, sm.Render(), "×")

	sm.SetProgress(12, 2048)
	output := sm.Render()
	assert.Contains(t, output, "12 ×")
	assert.Contains(t, output, "2.0 kB")

	f, b := sm.Progress()
	assert.Equal(t, 12, f)
	assert.Equal(t, 2048, b)
}

func TestStatusBarManager_SpinnerTick(t *testing.T) {
	sm := NewStatusBarManager(DefaultStatusBarConfig())
	require.NotNil(t, sm.Tick())

	assert.Nil(t, sm.Update("not a tick"))

	before := sm.SpinnerView()
	cmd := sm.Update(sm.spinner.Tick())
	assert.NotNil(t, cmd)
	assert.NotEqual(t, before, sm.SpinnerView())
}

func TestStatusBarManager_IgnoresForeignTick(t *testing.T) {
	sm := NewStatusBarManager(DefaultStatusBarConfig())
	other := spinner.New()

	// Тик чужого спиннера не двигает наш кадр
	before := sm.SpinnerView()
	sm.Update(other.Tick())
	assert.Equal(t, before, sm.SpinnerView())
}
