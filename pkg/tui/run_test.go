package tui

import (
	"bytes"
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// quitModel завершает программу на первом сообщении.
type quitModel struct{}

func (quitModel) Init() tea.Cmd                       { return tea.Quit }
func (quitModel) Update(tea.Msg) (tea.Model, tea.Cmd) { return quitModel{}, nil }
func (quitModel) View() string                        { return "" }

func TestRun_NilModel(t *testing.T) {
	err := Run(context.Background(), nil)
	require.Error(t, err)
}

func TestRun_QuitsCleanly(t *testing.T) {
	var out bytes.Buffer
	err := Run(context.Background(), quitModel{},
		WithAltScreen(false),
		WithMouse(false),
		WithProgramOptions(tea.WithInput(nil), tea.WithOutput(&out)),
	)
	assert.NoError(t, err)
}
