package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
models:
  default_chat: demo
  definitions:
    demo:
      provider: replay
      delay: 1ms
    broken:
      provider: replay
      delay: 1ms
      fail_after: 2
app:
  locale: en
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o644))
	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestAnalyze_Raw(t *testing.T) {
	cfg := writeTestConfig(t)

	out, logs, err := execute(t, "", "analyze", "--config", cfg, "--format", "raw", "  https://example.sk/flat  ")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "# Analýza nehnuteľnosti"))
	assert.Contains(t, out, "> Invest with caution")
	assert.Contains(t, logs, "Analysis completed")
}

func TestAnalyze_TermAndHTML(t *testing.T) {
	cfg := writeTestConfig(t)

	out, _, err := execute(t, "", "analyze", "-c", cfg, "https://example.sk/flat")
	require.NoError(t, err)
	assert.Contains(t, out, "Invest with caution")
	assert.NotContains(t, out, "## ")

	out, _, err = execute(t, "", "analyze", "-c", cfg, "-f", "html", "https://example.sk/flat")
	require.NoError(t, err)
	assert.Contains(t, out, `<article class="report">`)
}

func TestAnalyze_FailurePrintsApology(t *testing.T) {
	cfg := writeTestConfig(t)

	out, _, err := execute(t, "", "analyze", "-c", cfg, "-m", "broken", "-f", "raw", "https://example.sk/flat")
	require.Error(t, err)
	assert.Contains(t, out, "We are sorry")
}

func TestAnalyze_Validation(t *testing.T) {
	cfg := writeTestConfig(t)

	_, _, err := execute(t, "", "analyze", "-c", cfg, "-f", "pdf", "x")
	assert.ErrorContains(t, err, "unknown format")

	_, _, err = execute(t, "", "analyze", "-c", cfg, "   ")
	assert.ErrorContains(t, err, "link is empty")

	_, _, err = execute(t, "", "analyze", "-c", filepath.Join(t.TempDir(), "none.yaml"), "x")
	assert.Error(t, err)
}

func TestRender_Stdin(t *testing.T) {
	cfg := writeTestConfig(t)
	report := "# Byt\n\n## Silné stránky\n\n- tichá lokalita\n"

	out, _, err := execute(t, report, "render", "-c", cfg, "-f", "html")
	require.NoError(t, err)
	assert.Contains(t, out, "section-positive")
	assert.Contains(t, out, "tichá lokalita")

	out, _, err = execute(t, report, "render", "-c", cfg, "--width", "40", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Silné stránky")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "onelife version "))
}

func TestAnalyze_DebugWritesTrace(t *testing.T) {
	logDir := t.TempDir()
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := testConfig + "  log_dir: " + logDir + "\n"
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	_, logs, err := execute(t, "", "analyze", "-c", path, "--debug", "-f", "raw", "https://example.sk/flat")
	require.NoError(t, err)
	assert.Contains(t, logs, "DEBUG: Debug trace saved")

	traces, err := filepath.Glob(filepath.Join(logDir, "debug_logs", "run_*.json"))
	require.NoError(t, err)
	assert.Len(t, traces, 1)
}
