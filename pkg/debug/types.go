// Package debug записывает трейс каждого анализа в JSON файл.
//
// Трейс содержит смены фаз, тайминги фрагментов и итог: по нему видно,
// как быстро провайдер отдал первый фрагмент и где оборвался поток.
package debug

import "time"

// RunTrace - полный трейс одного анализа.
type RunTrace struct {
	// RunID - идентификатор запуска из DoneData (используется в имени файла)
	RunID string `json:"run_id"`

	// Timestamp - время начала анализа
	Timestamp time.Time `json:"timestamp"`

	Link  string `json:"link"`
	Model string `json:"model,omitempty"`

	// Duration - общая длительность в миллисекундах
	Duration int64 `json:"duration_ms"`

	Phases    []PhaseChange `json:"phases"`
	Fragments []Fragment    `json:"fragments"`
	Summary   Summary       `json:"summary"`

	// FinalResult - итоговый текст (отчёт или извинение)
	FinalResult string `json:"final_result,omitempty"`

	// Error - ошибка провайдера, если анализ упал
	Error string `json:"error,omitempty"`
}

// PhaseChange - одна смена фазы; At отсчитывается от начала анализа.
type PhaseChange struct {
	From string `json:"from"`
	To   string `json:"to"`
	At   int64  `json:"at_ms"`
}

// Fragment - один фрагмент потока.
type Fragment struct {
	Index int   `json:"index"`
	Bytes int   `json:"bytes"`
	At    int64 `json:"at_ms"`

	// Content пишется только при RecorderConfig.IncludeFragments
	Content string `json:"content,omitempty"`
}

// Summary - агрегированная статистика анализа.
type Summary struct {
	Fragments       int   `json:"fragments"`
	TotalBytes      int   `json:"total_bytes"`
	FirstFragmentMs int64 `json:"first_fragment_ms"`
	Failed          bool  `json:"failed"`
}
