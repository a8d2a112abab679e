package companion

import (
	"testing"

	"github.com/auraleaf/aura-api/internal/lexicon"
	"github.com/stretchr/testify/assert"
)

func TestDetectTheme(t *testing.T) {
	lex := lexicon.Default()

	tests := []struct {
		name string
		text string
		want lexicon.Theme
	}{
		{"anxiety keyword", "I've been so anxious lately", lexicon.ThemeAnxiety},
		{"sadness keyword", "I keep crying at night", lexicon.ThemeSadness},
		{"stress keyword", "the pressure at work is constant", lexicon.ThemeStress},
		{"loneliness keyword", "I feel so isolated from everyone", lexicon.ThemeLoneliness},
		{"anger keyword", "I'm furious about what happened", lexicon.ThemeAnger},
		{"case insensitive", "I AM SO WORRIED", lexicon.ThemeAnxiety},
		{"substring match", "worrying thoughts all day", lexicon.ThemeGeneral},
		{"multi-theme resolves by priority", "I feel anxious and stressed", lexicon.ThemeAnxiety},
		{"sadness beats anger in priority", "sad and angry at once", lexicon.ThemeSadness},
		{"overwhelmed maps to stress first", "I'm overwhelmed by everything", lexicon.ThemeStress},
		{"no match", "what a lovely morning", lexicon.ThemeGeneral},
		{"empty string", "", lexicon.ThemeGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectTheme(lex, tt.text))
		})
	}
}

func TestDetectTheme_Deterministic(t *testing.T) {
	lex := lexicon.Default()

	for i := 0; i < 10; i++ {
		assert.Equal(t, lexicon.ThemeAnxiety, DetectTheme(lex, "feeling nervous about tomorrow"))
	}
}

func TestDetectCrisis(t *testing.T) {
	lex := lexicon.Default()

	tests := []struct {
		name string
		text string
		want bool
	}{
		{"direct phrase", "I want to die", true},
		{"self-harm phrase", "I want to kill myself", true},
		{"benign text", "nothing alarming here", false},
		{"upper case", "I WANT TO DIE", true},
		{"mixed case", "everything feels Hopeless", true},
		{"embedded phrase", "sometimes I think about suicide a lot", true},
		{"negated still matches", "I do not want to die", true},
		{"no crisis content", "I feel anxious about my exam", false},
		{"empty string", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectCrisis(lex, tt.text))
		})
	}
}
