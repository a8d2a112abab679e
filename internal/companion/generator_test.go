package companion

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/auraleaf/aura-api/internal/domain"
	"github.com/auraleaf/aura-api/internal/lexicon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(t *testing.T, cfg Config) *Generator {
	t.Helper()
	return NewGenerator(lexicon.Default(), cfg, rand.NewSource(42))
}

func TestGenerate_CrisisOverridesTheme(t *testing.T) {
	gen := newTestGenerator(t, Config{PersonalizationProbability: 1.0})

	// the text matches the anxiety bank too; crisis must win
	reply := gen.Generate("I'm anxious and I want to die", "")

	assert.Equal(t, domain.MessageWarning, reply.Type)
	assert.Contains(t, reply.Content, "988")
	assert.Contains(t, reply.Content, "Crisis Text Line")
	assert.Contains(t, reply.Content, "Your safety is the most important thing right now", "crisis response is the fixed safety text")

	for _, bank := range lexicon.Default().Responses(lexicon.ThemeAnxiety) {
		assert.NotEqual(t, bank, reply.Content)
	}
}

func TestGenerate_CrisisPersonalization(t *testing.T) {
	gen := newTestGenerator(t, Config{})

	reply := gen.Generate("it all feels hopeless", "maya")
	assert.True(t, strings.HasPrefix(reply.Content, "maya, "))

	reply = gen.Generate("it all feels hopeless", "")
	assert.True(t, strings.HasPrefix(reply.Content, "I'm very concerned"))
}

func TestGenerate_SamplesFromThemeBank(t *testing.T) {
	gen := newTestGenerator(t, Config{PersonalizationProbability: 0})
	bank := lexicon.Default().Responses(lexicon.ThemeSadness)

	for i := 0; i < 20; i++ {
		reply := gen.Generate("I've been really sad", "maya")
		assert.Equal(t, domain.MessageNormal, reply.Type)
		assert.Contains(t, bank, reply.Content, "reply must come verbatim from the theme bank")
	}
}

func TestGenerate_PersonalizationForced(t *testing.T) {
	gen := newTestGenerator(t, Config{PersonalizationProbability: 1.0})
	bank := lexicon.Default().Responses(lexicon.ThemeAnxiety)

	reply := gen.Generate("feeling nervous", "Maya")

	require.True(t, strings.HasPrefix(reply.Content, "Maya, "))
	rest := strings.TrimPrefix(reply.Content, "Maya, ")

	// the template's first letter is lowercased after the name
	var matched bool
	for _, template := range bank {
		if rest == lowerFirst(template) {
			matched = true
		}
	}
	assert.True(t, matched, "personalized reply must be a lowercased bank template")
}

func TestGenerate_PersonalizationSkippedWithoutName(t *testing.T) {
	gen := newTestGenerator(t, Config{PersonalizationProbability: 1.0})
	bank := lexicon.Default().Responses(lexicon.ThemeAnxiety)

	reply := gen.Generate("feeling nervous", "")
	assert.Contains(t, bank, reply.Content)
}

func TestShouldOfferStrategy_Probabilities(t *testing.T) {
	always := newTestGenerator(t, Config{FollowupProbability: 1.0})
	never := newTestGenerator(t, Config{FollowupProbability: 0})

	for i := 0; i < 20; i++ {
		assert.True(t, always.ShouldOfferStrategy())
		assert.False(t, never.ShouldOfferStrategy())
	}
}

func TestStrategyMessage(t *testing.T) {
	gen := newTestGenerator(t, Config{})

	t.Run("anxiety strategy", func(t *testing.T) {
		content, ok := gen.StrategyMessage(lexicon.ThemeAnxiety)
		require.True(t, ok)
		assert.Contains(t, content, "Here's a coping technique that might help:")
		assert.Contains(t, content, "Would you like to try this together")
	})

	t.Run("unknown theme still gets general strategies", func(t *testing.T) {
		content, ok := gen.StrategyMessage(lexicon.Theme("nonsense"))
		require.True(t, ok)
		assert.Contains(t, content, "**")
	})
}

func TestUniformDelay(t *testing.T) {
	gen := newTestGenerator(t, Config{})
	base := 1500 * time.Millisecond
	jitter := time.Second

	for i := 0; i < 100; i++ {
		d := gen.UniformDelay(base, jitter)
		assert.GreaterOrEqual(t, d, base)
		assert.Less(t, d, base+jitter)
	}

	assert.Equal(t, base, gen.UniformDelay(base, 0))
}

func TestWelcomeMessage(t *testing.T) {
	gen := newTestGenerator(t, Config{})

	t.Run("with name", func(t *testing.T) {
		msg := gen.WelcomeMessage("maya")
		assert.Contains(t, msg, "Hello maya!")
		assert.Contains(t, msg, "How are you feeling today, maya?")
		assert.Contains(t, msg, "Important Disclaimer")
		assert.Contains(t, msg, "741741")
	})

	t.Run("without name", func(t *testing.T) {
		msg := gen.WelcomeMessage("")
		assert.Contains(t, msg, "Hello!")
		assert.Contains(t, msg, "How are you feeling today?")
	})
}

func TestResourceListMessage(t *testing.T) {
	gen := newTestGenerator(t, Config{})

	msg := gen.ResourceListMessage()
	for _, r := range lexicon.Default().Resources() {
		assert.Contains(t, msg, r.Name)
		assert.Contains(t, msg, r.Contact)
	}
	assert.Contains(t, msg, "sign of strength")
}

func TestLowerFirst(t *testing.T) {
	assert.Equal(t, "anxiety can...", lowerFirst("Anxiety can..."))
	assert.Equal(t, "already lower", lowerFirst("already lower"))
	assert.Equal(t, "", lowerFirst(""))
	assert.Equal(t, "élan", lowerFirst("Élan"))
}
