package web

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/ilkoid/onelife/internal/app"
	"github.com/ilkoid/onelife/pkg/config"
	"github.com/ilkoid/onelife/pkg/llm/replay"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sseEvent struct {
	Name string
	Data string
}

func parseSSE(t *testing.T, body string) []sseEvent {
	t.Helper()
	var out []sseEvent
	for _, block := range strings.Split(body, "\n\n") {
		if strings.TrimSpace(block) == "" {
			continue
		}
		var ev sseEvent
		for _, line := range strings.Split(block, "\n") {
			switch {
			case strings.HasPrefix(line, "event: "):
				ev.Name = strings.TrimPrefix(line, "event: ")
			case strings.HasPrefix(line, "data: "):
				ev.Data = strings.TrimPrefix(line, "data: ")
			}
		}
		out = append(out, ev)
	}
	return out
}

func newTestServer(t *testing.T, def config.ModelDef) *httptest.Server {
	t.Helper()
	def.Provider = "replay"
	provider, err := replay.NewClient(def)
	require.NoError(t, err)

	srv := httptest.NewServer(NewServer(provider).Routes())
	t.Cleanup(srv.Close)
	return srv
}

func analyze(t *testing.T, srv *httptest.Server, link string) []sseEvent {
	t.Helper()
	resp, err := http.Get(srv.URL + "/analyze?link=" + url.QueryEscape(link))
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return parseSSE(t, string(body))
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, config.ModelDef{})

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))
}

func TestIndexPage(t *testing.T) {
	srv := newTestServer(t, config.ModelDef{})

	resp, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	page := string(body)
	texts := app.TextsFor("sk")

	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	assert.Contains(t, page, "ONE LIFE")
	assert.Contains(t, page, texts.Tagline)
	assert.Contains(t, page, texts.Submit)
	assert.Contains(t, page, "ONE LIFE Report")
	assert.Contains(t, page, "scrollHeight - 100")
	// Обрыв соединения до done: извинение вместо недописанного отчёта
	assert.Contains(t, page, "if (!completed) { report.textContent = apology; }")
	assert.NotContains(t, page, "if (!report.innerHTML)")
	assert.Contains(t, page, "completed = true;")
	// Кнопка неактивна при пустом поле
	assert.Contains(t, page, `<button id="submit" type="submit" disabled>`)
	assert.Contains(t, page, "submit.disabled = !input.value.trim() || source !== null;")
	for _, chip := range texts.Chips {
		assert.Contains(t, page, chip)
	}
}

func TestAnalyze_EmptyLinkRedirects(t *testing.T) {
	srv := newTestServer(t, config.ModelDef{})
	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}

	for _, link := range []string{"", "   "} {
		resp, err := client.Get(srv.URL + "/analyze?link=" + url.QueryEscape(link))
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
		assert.Equal(t, "/", resp.Header.Get("Location"))
	}
}

func TestAnalyze_StreamsRenderedReport(t *testing.T) {
	srv := newTestServer(t, config.ModelDef{})

	evs := analyze(t, srv, "  https://www.nehnutelnosti.sk/detail/1  ")
	require.GreaterOrEqual(t, len(evs), 4)

	var first phasePayload
	require.Equal(t, "phase", evs[0].Name)
	require.NoError(t, json.Unmarshal([]byte(evs[0].Data), &first))
	assert.Equal(t, phasePayload{From: "input", To: "analyzing", Link: "https://www.nehnutelnosti.sk/detail/1"}, first)

	var second phasePayload
	require.Equal(t, "phase", evs[1].Name)
	require.NoError(t, json.Unmarshal([]byte(evs[1].Data), &second))
	assert.Equal(t, "result", second.To)

	var renders []renderPayload
	for _, ev := range evs {
		if ev.Name == "render" {
			var p renderPayload
			require.NoError(t, json.Unmarshal([]byte(ev.Data), &p))
			renders = append(renders, p)
		}
	}
	require.NotEmpty(t, renders)
	for i, r := range renders {
		assert.Equal(t, i+1, r.Index)
		assert.True(t, strings.HasPrefix(r.HTML, `<article class="report">`))
	}
	final := renders[len(renders)-1].HTML
	assert.Contains(t, final, "Invest with caution")
	assert.Contains(t, final, "section-positive")
	assert.Contains(t, final, "section-verdict")

	last := evs[len(evs)-1]
	require.Equal(t, "done", last.Name)
	var done donePayload
	require.NoError(t, json.Unmarshal([]byte(last.Data), &done))
	assert.False(t, done.Failed)
	assert.Equal(t, len(renders), done.Fragments)
	assert.NotEmpty(t, done.RunID)
}

func TestAnalyze_FailureStreamsApology(t *testing.T) {
	srv := newTestServer(t, config.ModelDef{FailAfter: 2})

	evs := analyze(t, srv, "https://example.com/byt")

	names := make([]string, 0, len(evs))
	for _, ev := range evs {
		names = append(names, ev.Name)
	}
	assert.Equal(t, []string{"phase", "phase", "render", "render", "render", "error", "done"}, names)

	var apology renderPayload
	require.NoError(t, json.Unmarshal([]byte(evs[4].Data), &apology))
	assert.Contains(t, apology.HTML, "Ospravedlňujeme sa")

	var done donePayload
	require.NoError(t, json.Unmarshal([]byte(evs[6].Data), &done))
	assert.True(t, done.Failed)
}
