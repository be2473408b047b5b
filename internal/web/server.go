// Package web отдаёт анализ через HTTP: страницу с формой и поток
// Server-Sent Events с перерисованным отчётом на каждый фрагмент.
//
// Каждый запрос /analyze получает свою Session и Orchestrator, между
// запросами ничего не хранится.
package web

import (
	"context"
	_ "embed"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ilkoid/onelife/internal/app"
	"github.com/ilkoid/onelife/pkg/events"
	"github.com/ilkoid/onelife/pkg/llm"
	"github.com/ilkoid/onelife/pkg/render"
	"github.com/ilkoid/onelife/pkg/utils"
)

//go:embed templates/index.html
var indexHTML string

// Server - HTTP поверхность анализа.
type Server struct {
	provider llm.StreamingProvider
	orchOpts []app.Option
	texts    app.Texts
	brand    string
	parser   *render.Parser
	html     *render.HTMLRenderer
	page     *template.Template
}

// Option настраивает Server.
type Option func(*Server)

// WithOrchestratorOptions передаётся каждому Orchestrator (prompt, данные, опции генерации).
func WithOrchestratorOptions(opts ...app.Option) Option {
	return func(s *Server) {
		s.orchOpts = append(s.orchOpts, opts...)
	}
}

// WithTexts задаёт локализованные строки страницы и извинения.
func WithTexts(t app.Texts) Option {
	return func(s *Server) {
		s.texts = t
	}
}

// WithBrand задаёт название бренда в заголовках.
func WithBrand(brand string) Option {
	return func(s *Server) {
		if brand != "" {
			s.brand = brand
		}
	}
}

// WithParser задаёт парсер с правилами заголовков из конфига.
func WithParser(p *render.Parser) Option {
	return func(s *Server) {
		if p != nil {
			s.parser = p
		}
	}
}

// NewServer создаёт сервер поверх провайдера.
func NewServer(provider llm.StreamingProvider, opts ...Option) *Server {
	s := &Server{
		provider: provider,
		texts:    app.TextsFor(app.DefaultLocale),
		brand:    "ONE LIFE",
		parser:   render.NewParser(),
		html:     render.NewHTMLRenderer(),
		page:     template.Must(template.New("index").Parse(indexHTML)),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes возвращает chi роутер со всеми маршрутами.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/", s.handleIndex)
	r.Get("/analyze", s.handleAnalyze)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	return r
}

type pageData struct {
	Brand string
	Texts app.Texts
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.page.Execute(w, pageData{Brand: s.brand, Texts: s.texts}); err != nil {
		utils.Error("Render index page", "error", err)
	}
}

// handleAnalyze стримит события одного анализа.
//
// Пустая ссылка: 303 обратно на форму, провайдер не вызывается.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	link := strings.TrimSpace(r.URL.Query().Get("link"))
	if link == "" {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	sse, err := newSSEWriter(w)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	emitter := events.EmitterFunc(func(ctx context.Context, e events.Event) {
		s.forward(sse, e)
	})
	opts := append([]app.Option{app.WithTexts(s.texts)}, s.orchOpts...)
	opts = append(opts, app.WithEmitter(emitter))
	orch := app.NewOrchestrator(s.provider, opts...)

	if err := orch.Analyze(r.Context(), link); err != nil && !errors.Is(err, context.Canceled) {
		utils.Warn("Analysis request failed", "request_id", middleware.GetReqID(r.Context()), "error", err)
	}
}

type phasePayload struct {
	From string `json:"from"`
	To   string `json:"to"`
	Link string `json:"link,omitempty"`
}

type renderPayload struct {
	HTML  string `json:"html"`
	Index int    `json:"index"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type donePayload struct {
	RunID      string `json:"run_id"`
	Fragments  int    `json:"fragments"`
	Failed     bool   `json:"failed"`
	DurationMS int64  `json:"duration_ms"`
}

// forward переводит событие анализа в SSE. Ошибки записи означают,
// что клиент ушёл; контекст запроса отменит анализ сам.
func (s *Server) forward(sse *sseWriter, e events.Event) {
	var err error
	switch data := e.Data.(type) {
	case events.PhaseData:
		err = sse.Send("phase", phasePayload{From: data.From, To: data.To, Link: data.Link})

	case events.FragmentData:
		err = s.sendRender(sse, data.Accumulated, data.Index)

	case events.ErrorData:
		// Отчёт целиком заменяется извинением
		if err = s.sendRender(sse, data.Message, 0); err == nil {
			err = sse.Send("error", errorPayload{Message: data.Message})
		}

	case events.DoneData:
		err = sse.Send("done", donePayload{
			RunID:      data.RunID,
			Fragments:  data.Fragments,
			Failed:     data.Failed,
			DurationMS: data.Duration.Milliseconds(),
		})
	}
	if err != nil {
		utils.Debug("SSE write failed", "event", e.Type, "error", err)
	}
}

func (s *Server) sendRender(sse *sseWriter, markdown string, index int) error {
	html, err := s.html.Render(s.parser.Parse(markdown))
	if err != nil {
		return err
	}
	return sse.Send("render", renderPayload{HTML: html, Index: index})
}

// requestLogger пишет строку лога на каждый запрос.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		utils.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"request_id", middleware.GetReqID(r.Context()),
			"duration_ms", time.Since(start).Milliseconds())
	})
}
