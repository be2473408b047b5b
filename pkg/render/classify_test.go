package render

import (
	"testing"

	"github.com/ilkoid/onelife/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifier_DefaultRules(t *testing.T) {
	c := NewClassifier(nil)
	tests := []struct {
		heading string
		want    Tone
	}{
		{"Silné stránky", TonePositive},
		{"SILNÉ STRÁNKY", TonePositive},
		{"Strengths", TonePositive},
		{"Slabé stránky", ToneNegative},
		{"Weaknesses", ToneNegative},
		{"ONE LIFE Verdikt", ToneVerdict},
		{"Final verdict", ToneVerdict},
		{"Úvod", ToneNeutral},
		{"", ToneNeutral},
		// e + combining acute
		{"Silne\u0301 stránky", TonePositive},
	}
	for _, tt := range tests {
		t.Run(tt.heading, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Classify(tt.heading))
		})
	}
}

func TestClassifier_FirstRuleWins(t *testing.T) {
	c := NewClassifier([]HeadingRule{
		{Tone: ToneVerdict, Keywords: []string{"záver"}},
		{Tone: TonePositive, Keywords: []string{"záver", " ", "iný"}},
	})
	assert.Equal(t, ToneVerdict, c.Classify("Záver"))
	assert.Equal(t, TonePositive, c.Classify("iný nadpis"))
	assert.Equal(t, ToneNeutral, c.Classify("nadpis"))
}

func TestRulesFromConfig(t *testing.T) {
	rules, err := RulesFromConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, DefaultRules(), rules)

	rules, err = RulesFromConfig([]config.HeadingRuleConfig{
		{Tone: "Negative", Keywords: []string{"riziká"}},
	})
	require.NoError(t, err)
	assert.Equal(t, []HeadingRule{{Tone: ToneNegative, Keywords: []string{"riziká"}}}, rules)

	_, err = RulesFromConfig([]config.HeadingRuleConfig{{Tone: "loud", Keywords: []string{"x"}}})
	assert.ErrorContains(t, err, `heading_rules[0]: unknown tone "loud"`)
}

func TestTone_IconsAndNames(t *testing.T) {
	assert.Equal(t, "✔", TonePositive.Icon())
	assert.Equal(t, "✘", ToneNegative.Icon())
	assert.Equal(t, "✦", ToneVerdict.Icon())
	assert.Equal(t, "▍", ToneNeutral.Icon())
	assert.Equal(t, "verdict", ToneVerdict.String())
}
