package lexicon

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Theme is one of the fixed emotional categories used to select a response bank
type Theme string

const (
	ThemeAnxiety    Theme = "anxiety"
	ThemeSadness    Theme = "sadness"
	ThemeStress     Theme = "stress"
	ThemeLoneliness Theme = "loneliness"
	ThemeAnger      Theme = "anger"
	ThemeOverwhelm  Theme = "overwhelm"
	ThemeGeneral    Theme = "general"
)

// Strategy is a catalog-stored self-help technique offered as a follow-up
// resource message
type Strategy struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Theme       Theme  `yaml:"theme"`
}

// Resource points at an external professional support service
type Resource struct {
	Name        string `yaml:"name"`
	Contact     string `yaml:"contact"`
	Description string `yaml:"description"`
}

// Lexicon is the static catalog the classifier and response generator read
// from. It is loaded once at startup and never mutated afterwards.
type Lexicon struct {
	themeOrder []Theme
	keywords   map[Theme][]string
	crisis     []string
	responses  map[Theme][]string
	strategies []Strategy
	resources  []Resource
}

// ThemeOrder returns the classification priority order. The first theme whose
// keywords match wins, so the slice order is load-bearing.
func (l *Lexicon) ThemeOrder() []Theme {
	return l.themeOrder
}

// Keywords returns the keyword list for a theme, in catalog order
func (l *Lexicon) Keywords(t Theme) []string {
	return l.keywords[t]
}

// CrisisKeywords returns the flat crisis keyword list
func (l *Lexicon) CrisisKeywords() []string {
	return l.crisis
}

// Responses returns the response bank for a theme. An unknown or empty theme
// yields the general bank.
func (l *Lexicon) Responses(t Theme) []string {
	if bank, ok := l.responses[t]; ok && len(bank) > 0 {
		return bank
	}
	return l.responses[ThemeGeneral]
}

// StrategiesFor returns coping strategies tagged with the theme or with general
func (l *Lexicon) StrategiesFor(t Theme) []Strategy {
	var out []Strategy
	for _, s := range l.strategies {
		if s.Theme == t || s.Theme == ThemeGeneral {
			out = append(out, s)
		}
	}
	return out
}

// Resources returns the professional resource catalog
func (l *Lexicon) Resources() []Resource {
	return l.resources
}

// file is the YAML shape of an external lexicon override. Sections left empty
// inherit the built-in catalog.
type file struct {
	Themes []struct {
		Name      Theme    `yaml:"name"`
		Keywords  []string `yaml:"keywords"`
		Responses []string `yaml:"responses"`
	} `yaml:"themes"`
	CrisisKeywords []string   `yaml:"crisis_keywords"`
	Strategies     []Strategy `yaml:"strategies"`
	Resources      []Resource `yaml:"resources"`
}

// LoadFile reads a YAML lexicon override and merges it over the built-in
// catalog. Theme order follows the file's declaration order.
func LoadFile(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon file: %w", err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon file: %w", err)
	}

	lex := Default()

	if len(f.Themes) > 0 {
		order := make([]Theme, 0, len(f.Themes))
		keywords := make(map[Theme][]string, len(f.Themes))
		responses := make(map[Theme][]string, len(f.Themes))
		for _, t := range f.Themes {
			if t.Name == "" {
				return nil, fmt.Errorf("lexicon theme with empty name")
			}
			if t.Name != ThemeGeneral {
				order = append(order, t.Name)
			}
			keywords[t.Name] = t.Keywords
			responses[t.Name] = t.Responses
		}
		if len(responses[ThemeGeneral]) == 0 {
			return nil, fmt.Errorf("lexicon file must define a general response bank")
		}
		lex.themeOrder = order
		lex.keywords = keywords
		lex.responses = responses
	}
	if len(f.CrisisKeywords) > 0 {
		lex.crisis = f.CrisisKeywords
	}
	if len(f.Strategies) > 0 {
		lex.strategies = f.Strategies
	}
	if len(f.Resources) > 0 {
		lex.resources = f.Resources
	}

	return lex, nil
}
