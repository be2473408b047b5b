package tui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ilkoid/onelife/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBase(t *testing.T) (*BaseModel, *events.ChanEmitter) {
	t.Helper()
	emitter := events.NewChanEmitter(16)
	t.Cleanup(emitter.Close)

	model := NewBaseModel(context.Background(), emitter.Subscribe(), BaseConfig{
		Renderer: func(markdown string, width int) string {
			return strings.ToUpper(markdown)
		},
		ScrollThreshold: 3,
	})
	return model, emitter
}

func resize(m *BaseModel, w, h int) *BaseModel {
	next, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return next.(*BaseModel)
}

func TestBaseModel_NewBaseModel(t *testing.T) {
	model, _ := newTestBase(t)

	assert.NotNil(t, model.GetViewportMgr())
	assert.NotNil(t, model.GetStatusBarMgr())
	assert.NotNil(t, model.GetEventHandler())
	assert.NotNil(t, model.GetContext())
	assert.NotNil(t, model.GetSubscriber())
	assert.Equal(t, DefaultKeyMap().Quit.Keys(), model.Keys().Quit.Keys())
	assert.NotNil(t, model.Init())
}

func TestBaseModel_WindowSize(t *testing.T) {
	model, _ := newTestBase(t)
	assert.Empty(t, model.View())
	assert.False(t, model.Ready())

	model = resize(model, 80, 24)
	assert.True(t, model.Ready())

	w, h := model.GetViewportMgr().GetDimensions()
	assert.Equal(t, 80, w)
	assert.Equal(t, 23, h) // минус статус-бар

	model.SetChrome(5)
	_, h = model.GetViewportMgr().GetDimensions()
	assert.Equal(t, 18, h)
}

func TestBaseModel_Quit(t *testing.T) {
	model, _ := newTestBase(t)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestBaseModel_ToggleHelp(t *testing.T) {
	model, _ := newTestBase(t)
	model = resize(model, 80, 24)
	_, before := model.GetViewportMgr().GetDimensions()

	model.Update(tea.KeyMsg{Type: tea.KeyCtrlH})
	assert.True(t, model.ShowHelp())
	_, after := model.GetViewportMgr().GetDimensions()
	assert.Less(t, after, before)
	assert.Contains(t, model.View(), "new analysis")

	model.Update(tea.KeyMsg{Type: tea.KeyCtrlH})
	assert.False(t, model.ShowHelp())
}

func TestBaseModel_EventMsgRendersReport(t *testing.T) {
	model, _ := newTestBase(t)
	model = resize(model, 80, 24)

	_, cmd := model.Update(EventMsg(events.New(events.EventPhaseChanged, events.PhaseData{From: "input", To: "analyzing"})))
	assert.NotNil(t, cmd)
	assert.True(t, model.IsProcessing())

	model.Update(EventMsg(events.New(events.EventFragment, events.FragmentData{Accumulated: "# úvod", Index: 1})))
	assert.Contains(t, model.View(), "# ÚVOD")

	model.Update(EventMsg(events.New(events.EventDone, events.DoneData{Content: "# úvod", Fragments: 1})))
	assert.False(t, model.IsProcessing())
}

func TestBaseModel_ResizeRerenders(t *testing.T) {
	emitter := events.NewChanEmitter(4)
	defer emitter.Close()

	var widths []int
	model := NewBaseModel(context.Background(), emitter.Subscribe(), BaseConfig{
		Renderer: func(markdown string, width int) string {
			widths = append(widths, width)
			return markdown
		},
	})
	model = resize(model, 80, 24)
	model.Update(EventMsg(events.New(events.EventFragment, events.FragmentData{Accumulated: "x", Index: 1})))
	model = resize(model, 60, 24)

	assert.Equal(t, 60, widths[len(widths)-1])
}

func TestBaseModel_ScrollKeys(t *testing.T) {
	model, _ := newTestBase(t)
	model = resize(model, 80, 6) // viewport 5 строк

	lines := make([]string, 30)
	for i := range lines {
		lines[i] = "r"
	}
	model.Update(EventMsg(events.New(events.EventFragment, events.FragmentData{Accumulated: strings.Join(lines, "\n"), Index: 1})))
	require.Equal(t, 25, model.GetViewportMgr().GetViewport().YOffset)

	model.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	assert.Equal(t, 20, model.GetViewportMgr().GetViewport().YOffset)

	model.Update(tea.MouseMsg{Button: tea.MouseButtonWheelUp})
	assert.Equal(t, 17, model.GetViewportMgr().GetViewport().YOffset)

	model.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	assert.Equal(t, 22, model.GetViewportMgr().GetViewport().YOffset)
}

func TestBaseModel_ReceivesFromSubscriber(t *testing.T) {
	model, emitter := newTestBase(t)

	emitter.Emit(context.Background(), events.New(events.EventFragment, events.FragmentData{Accumulated: "a", Index: 1}))
	msg := model.nextEvent()()

	got, ok := msg.(EventMsg)
	require.True(t, ok)
	assert.Equal(t, events.EventFragment, got.Type)
}

func TestReceiveEventCmd_ClosedChannelQuits(t *testing.T) {
	emitter := events.NewChanEmitter(1)
	sub := emitter.Subscribe()
	emitter.Close()

	msg := ReceiveEventCmd(sub, func(e events.Event) tea.Msg { return EventMsg(e) })()
	assert.Equal(t, tea.QuitMsg{}, msg)

	assert.Nil(t, ReceiveEventCmd(nil, func(e events.Event) tea.Msg { return EventMsg(e) }))
}

func TestStyles(t *testing.T) {
	s := NewStyles(DefaultColorScheme())

	chips := s.Chips([]string{"Lokalita", "Cena", "Potenciál"})
	for _, c := range []string{"Lokalita", "Cena", "Potenciál"} {
		assert.Contains(t, chips, c)
	}
	assert.Contains(t, s.DividerLine(5), "─────")
	assert.Empty(t, strings.TrimSpace(s.DividerLine(-1)))
	assert.True(t, s.Button.GetBold())
	assert.True(t, s.ButtonOff.GetFaint())
}
