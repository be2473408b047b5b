// Onelife - AI анализ объявлений о недвижимости.
//
// Использование:
//
//	onelife                         # интерактивный TUI
//	onelife analyze <link>          # один анализ в stdout
//	onelife serve --addr :8080      # web-интерфейс со стримингом через SSE
//	onelife render report.md        # отрисовать готовый markdown отчёт
//
// Конфигурация ищется через pkg/app.DefaultConfigPathFinder; без файла
// используются встроенные настройки с ключом из $API_KEY.
package main

func main() {
	Execute()
}
