package companion

import (
	"strings"

	"github.com/auraleaf/aura-api/internal/lexicon"
)

// DetectTheme classifies free text against the lexicon's keyword lists.
// Themes are tested in the lexicon's fixed priority order and the first match
// wins; text matching nothing resolves to general. The function is total over
// any string, including the empty string.
func DetectTheme(lex *lexicon.Lexicon, text string) lexicon.Theme {
	lower := strings.ToLower(text)

	for _, theme := range lex.ThemeOrder() {
		for _, kw := range lex.Keywords(theme) {
			if strings.Contains(lower, kw) {
				return theme
			}
		}
	}

	return lexicon.ThemeGeneral
}

// DetectCrisis reports whether text contains any crisis keyword,
// case-insensitively. A single substring match is sufficient; there is no
// scoring and no negation handling. The false-positive bias toward caution
// ("I do not want to die" still matches) is intentional.
func DetectCrisis(lex *lexicon.Lexicon, text string) bool {
	lower := strings.ToLower(text)

	for _, kw := range lex.CrisisKeywords() {
		if strings.Contains(lower, kw) {
			return true
		}
	}

	return false
}
