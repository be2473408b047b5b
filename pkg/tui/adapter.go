// Package tui - переиспользуемая часть терминального интерфейса анализа:
// BaseModel (viewport отчёта, статус-бар, help), цветовые схемы, стили
// и мост между pkg/events и Bubble Tea.
//
// Экраны конкретного приложения живут в internal/ui и собираются поверх
// BaseModel. Зависимость односторонняя: pkg/render импортирует tui ради
// ColorScheme, поэтому рендер отчёта передаётся сюда функцией
// (primitives.ReportRenderer).
//
//	emitter := events.NewChanEmitter(256)
//	orch := app.NewOrchestrator(provider, app.WithEmitter(emitter))
//	base := tui.NewBaseModel(ctx, emitter.Subscribe(), tui.BaseConfig{Renderer: render})
//
// Rule 6: только reusable код, без app-specific логики.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/ilkoid/onelife/pkg/events"
)

// EventMsg - событие анализа, пришедшее в Update как tea.Msg.
type EventMsg events.Event

// ReceiveEventCmd читает одно событие из sub и превращает его в сообщение.
//
// После обработки сообщения Update должен снова вернуть ReceiveEventCmd,
// иначе чтение остановится. Закрытый канал (emitter.Close) завершает
// программу через tea.QuitMsg; nil подписчик не читается вовсе.
func ReceiveEventCmd(sub events.Subscriber, toMsg func(events.Event) tea.Msg) tea.Cmd {
	if sub == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-sub.Events()
		if !ok {
			return tea.QuitMsg{}
		}
		return toMsg(event)
	}
}
