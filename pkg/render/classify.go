package render

import (
	"fmt"
	"strings"

	"github.com/ilkoid/onelife/pkg/config"
	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Tone - закрытый набор вариантов оформления H2 секции.
type Tone int

const (
	ToneNeutral Tone = iota
	TonePositive
	ToneNegative
	ToneVerdict
)

func (t Tone) String() string {
	switch t {
	case TonePositive:
		return "positive"
	case ToneNegative:
		return "negative"
	case ToneVerdict:
		return "verdict"
	default:
		return "neutral"
	}
}

// Icon возвращает глиф секции.
func (t Tone) Icon() string {
	switch t {
	case TonePositive:
		return "✔"
	case ToneNegative:
		return "✘"
	case ToneVerdict:
		return "✦"
	default:
		return "▍"
	}
}

// ParseTone разбирает имя тона из конфига.
func ParseTone(s string) (Tone, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "neutral":
		return ToneNeutral, nil
	case "positive":
		return TonePositive, nil
	case "negative":
		return ToneNegative, nil
	case "verdict":
		return ToneVerdict, nil
	default:
		return ToneNeutral, fmt.Errorf("unknown tone %q", s)
	}
}

// HeadingRule сопоставляет набор ключевых слов с тоном.
type HeadingRule struct {
	Tone     Tone
	Keywords []string
}

// DefaultRules - встроенные правила для словацких и английских отчётов.
//
// Порядок важен: первое совпадение побеждает.
func DefaultRules() []HeadingRule {
	return []HeadingRule{
		{Tone: TonePositive, Keywords: []string{"silné", "plus", "strength"}},
		{Tone: ToneNegative, Keywords: []string{"slabé", "mínus", "weakness"}},
		{Tone: ToneVerdict, Keywords: []string{"verdikt", "verdict"}},
	}
}

// RulesFromConfig переводит render.heading_rules в правила.
// Пустой список означает DefaultRules.
func RulesFromConfig(cfg []config.HeadingRuleConfig) ([]HeadingRule, error) {
	if len(cfg) == 0 {
		return DefaultRules(), nil
	}
	rules := make([]HeadingRule, 0, len(cfg))
	for i, rc := range cfg {
		tone, err := ParseTone(rc.Tone)
		if err != nil {
			return nil, fmt.Errorf("heading_rules[%d]: %w", i, err)
		}
		rules = append(rules, HeadingRule{Tone: tone, Keywords: rc.Keywords})
	}
	return rules, nil
}

// Classifier выбирает тон H2 заголовка по подстроке без учёта регистра.
//
// Ключевые слова свёрнуты заранее, Classify только читает их:
// безопасно для параллельного использования.
type Classifier struct {
	rules []HeadingRule
}

// NewClassifier создаёт классификатор; nil или пустые rules = DefaultRules.
func NewClassifier(rules []HeadingRule) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRules()
	}
	folded := make([]HeadingRule, len(rules))
	for i, r := range rules {
		kws := make([]string, 0, len(r.Keywords))
		for _, kw := range r.Keywords {
			if kw = strings.TrimSpace(kw); kw != "" {
				kws = append(kws, fold(kw))
			}
		}
		folded[i] = HeadingRule{Tone: r.Tone, Keywords: kws}
	}
	return &Classifier{rules: folded}
}

// Classify возвращает тон первого совпавшего правила или ToneNeutral.
func (c *Classifier) Classify(heading string) Tone {
	h := fold(heading)
	for _, r := range c.rules {
		for _, kw := range r.Keywords {
			if strings.Contains(h, kw) {
				return r.Tone
			}
		}
	}
	return ToneNeutral
}

// fold приводит строку к NFC и сворачивает регистр.
// cases.Caser хранит состояние, поэтому создаётся на каждый вызов.
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}
