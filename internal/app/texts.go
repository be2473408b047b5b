package app

// Texts - локализованные строки интерфейса.
type Texts struct {
	Headline       string   // "Real Estate Intelligence"
	Tagline        string   // Подсказка над полем ввода
	Placeholder    string   // Плейсхолдер поля ссылки
	Submit         string   // Кнопка отправки
	Chips          []string // Что оценивает анализ
	AnalyzingTitle string
	AnalyzingHint  string
	ReportTitle    string // Заголовок результата, %s = бренд
	NewAnalysis    string // Кнопка / клавиша сброса
	Footer         string // Подпись внизу отчёта, %s = бренд
	Apology        string // Заменяет отчёт при любой ошибке провайдера
	Ready          string // Статус-бар в покое
}

var texts = map[string]Texts{
	"sk": {
		Headline:       "Real Estate Intelligence",
		Tagline:        "Vložte odkaz na inzerát pre získanie expertnej analýzy nehnuteľnosti v Bratislave.",
		Placeholder:    "https://www.nehnutelnosti.sk/...",
		Submit:         "ANALYZOVAŤ",
		Chips:          []string{"Lokalita", "Cena", "Potenciál"},
		AnalyzingTitle: "Analyzujem nehnuteľnosť",
		AnalyzingHint:  "Zbieram dáta, porovnávam trhové ceny...",
		ReportTitle:    "%s Report",
		NewAnalysis:    "Nová Analýza",
		Footer:         "%s Real Estate Intelligence",
		Apology:        "Ospravedlňujeme sa, ale momentálne sa nepodarilo spojiť s analytickým centrom. Skúste to prosím neskôr alebo skontrolujte správnosť odkazu.",
		Ready:          "✓ Pripravené",
	},
	"en": {
		Headline:       "Real Estate Intelligence",
		Tagline:        "Paste a listing link to get an expert analysis of a Bratislava property.",
		Placeholder:    "https://www.nehnutelnosti.sk/...",
		Submit:         "ANALYZE",
		Chips:          []string{"Location", "Price", "Potential"},
		AnalyzingTitle: "Analyzing property",
		AnalyzingHint:  "Collecting data, comparing market prices...",
		ReportTitle:    "%s Report",
		NewAnalysis:    "New Analysis",
		Footer:         "%s Real Estate Intelligence",
		Apology:        "We are sorry, the analysis centre could not be reached right now. Please try again later or check that the link is correct.",
		Ready:          "✓ Ready",
	},
}

// DefaultLocale используется для неизвестных локалей.
const DefaultLocale = "sk"

// TextsFor возвращает строки локали; неизвестная локаль = словацкий.
func TextsFor(locale string) Texts {
	if t, ok := texts[locale]; ok {
		return t
	}
	return texts[DefaultLocale]
}
