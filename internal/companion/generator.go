package companion

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/auraleaf/aura-api/internal/domain"
	"github.com/auraleaf/aura-api/internal/lexicon"
)

// Config holds the generator's policy knobs. Both probabilities are
// configuration, not constants: tests and deployments tune them.
type Config struct {
	// PersonalizationProbability is the chance a reply is prefixed with the
	// user's first name
	PersonalizationProbability float64
	// FollowupProbability is the independent chance a coping-strategy
	// follow-up message is offered after a reply
	FollowupProbability float64
}

// Reply is a generated companion response
type Reply struct {
	Content string
	Type    domain.MessageType
}

// Generator produces canned companion replies from the lexicon. Sampling goes
// through a single injectable random source so tests can force both branches
// of every probabilistic decision.
type Generator struct {
	lex *lexicon.Lexicon
	cfg Config

	mu  sync.Mutex
	rng *rand.Rand
}

// NewGenerator creates a generator over the given lexicon. A nil source is
// replaced with a time-seeded one.
func NewGenerator(lex *lexicon.Lexicon, cfg Config, src rand.Source) *Generator {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Generator{
		lex: lex,
		cfg: cfg,
		rng: rand.New(src),
	}
}

// Generate produces a reply for the user's text. Crisis detection always
// overrides theme selection; otherwise one template is sampled uniformly from
// the matching theme's bank and occasionally personalized with the user's
// first name.
func (g *Generator) Generate(text, firstName string) Reply {
	if DetectCrisis(g.lex, text) {
		return Reply{
			Content: g.crisisMessage(firstName),
			Type:    domain.MessageWarning,
		}
	}

	theme := DetectTheme(g.lex, text)
	bank := g.lex.Responses(theme)

	g.mu.Lock()
	selected := bank[g.rng.Intn(len(bank))]
	personalize := g.rng.Float64() < g.cfg.PersonalizationProbability
	g.mu.Unlock()

	if personalize && firstName != "" {
		selected = fmt.Sprintf("%s, %s", firstName, lowerFirst(selected))
	}

	return Reply{
		Content: selected,
		Type:    domain.MessageNormal,
	}
}

// ThemeOf classifies text against the generator's lexicon
func (g *Generator) ThemeOf(text string) lexicon.Theme {
	return DetectTheme(g.lex, text)
}

// ShouldOfferStrategy draws the independent follow-up decision
func (g *Generator) ShouldOfferStrategy() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rng.Float64() < g.cfg.FollowupProbability
}

// StrategyMessage renders a coping-strategy follow-up for the theme, sampling
// uniformly over strategies tagged with the theme or with general. It reports
// false when no strategy applies.
func (g *Generator) StrategyMessage(theme lexicon.Theme) (string, bool) {
	strategies := g.lex.StrategiesFor(theme)
	if len(strategies) == 0 {
		return "", false
	}

	g.mu.Lock()
	strategy := strategies[g.rng.Intn(len(strategies))]
	g.mu.Unlock()

	content := fmt.Sprintf(
		"Here's a coping technique that might help:\n\n**%s**\n%s\n\nWould you like to try this together, or would you prefer to explore something else?",
		strategy.Name, strategy.Description,
	)
	return content, true
}

// UniformDelay returns base plus a uniform draw in [0, jitter)
func (g *Generator) UniformDelay(base, jitter time.Duration) time.Duration {
	if jitter <= 0 {
		return base
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return base + time.Duration(g.rng.Int63n(int64(jitter)))
}

// WelcomeMessage renders the fixed disclaimer shown once per fresh conversation
func (g *Generator) WelcomeMessage(firstName string) string {
	greeting := "Hello!"
	closing := "How are you feeling today?"
	if firstName != "" {
		greeting = fmt.Sprintf("Hello %s!", firstName)
		closing = fmt.Sprintf("How are you feeling today, %s?", firstName)
	}

	return fmt.Sprintf(`%s I'm your Aura companion - a supportive space for emotional wellness and self-reflection.

**Important Disclaimer:** I'm an AI assistant designed to provide general emotional support and wellness information. I am not a licensed therapist, counselor, or medical professional. If you're experiencing a mental health crisis, thoughts of self-harm, or need professional help, please contact:

• **Crisis Text Line**: Text HOME to 741741
• **National Suicide Prevention Lifeline**: 988
• **Emergency Services**: 911

I'm here to listen, offer evidence-based coping strategies, and help you explore your feelings in a supportive way. %s`, greeting, closing)
}

// ResourceListMessage renders the professional resource catalog as a message
func (g *Generator) ResourceListMessage() string {
	entries := make([]string, 0, len(g.lex.Resources()))
	for _, r := range g.lex.Resources() {
		entries = append(entries, fmt.Sprintf("**%s**\n%s\n%s", r.Name, r.Contact, r.Description))
	}

	return fmt.Sprintf(`Here are some professional resources that might be helpful:

%s

Remember, seeking professional help is a sign of strength, not weakness. These resources are staffed by trained professionals who can provide the specialized support you deserve.`, strings.Join(entries, "\n\n"))
}

// crisisMessage is the fixed safety response. Content is constant aside from
// the name; no sampling is involved.
func (g *Generator) crisisMessage(firstName string) string {
	prefix := ""
	if firstName != "" {
		prefix = firstName + ", "
	}

	return fmt.Sprintf(`%sI'm very concerned about what you've shared. Your safety is the most important thing right now. Please reach out for immediate professional support:

**Crisis Text Line**: Text HOME to 741741
**National Suicide Prevention Lifeline**: Call or text 988
**Emergency Services**: Call 911

You don't have to go through this alone. There are people trained to help who want to support you through this difficult time. Please consider reaching out to one of these resources right now.

Would you like me to help you think about who in your life you could also reach out to for support?`, prefix)
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
