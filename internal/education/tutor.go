// Package education answers financial-literacy questions from a small
// knowledge base, adapted to the user's level and language.
package education

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"github.com/rs/zerolog"
)

const menuResponse = "I can teach you about SIPs, Stocks, Mutual Funds, and Inflation. What would you like to learn?"

// TextGenerator produces free-form text for questions outside the knowledge
// base. Implementations may call an LLM; a nil generator disables the
// fallback entirely.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// Tutor serves educational content. The random source only picks intro
// lines, so tests can seed it for stable output.
type Tutor struct {
	kb        map[Topic]map[Level]entry
	rng       *rand.Rand
	generator TextGenerator
	log       zerolog.Logger
}

// Option configures a Tutor.
type Option func(*Tutor)

// WithRand replaces the intro-line random source.
func WithRand(rng *rand.Rand) Option {
	return func(t *Tutor) { t.rng = rng }
}

// WithGenerator enables the LLM fallback for topics the knowledge base
// does not cover.
func WithGenerator(g TextGenerator) Option {
	return func(t *Tutor) { t.generator = g }
}

// New builds a Tutor over the built-in knowledge base.
func New(log zerolog.Logger, opts ...Option) *Tutor {
	t := &Tutor{
		kb:  knowledgeBase(),
		rng: rand.New(rand.NewSource(rand.Int63())),
		log: log.With().Str("component", "tutor").Logger(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// DetectTopic maps a free-form query to a known topic by keyword. The
// second return is false when no topic matches.
func DetectTopic(query string) (Topic, bool) {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "sip"):
		return TopicSIP, true
	case strings.Contains(q, "stock"), strings.Contains(q, "share"), strings.Contains(q, "equity"):
		return TopicStock, true
	case strings.Contains(q, "mutual fund"), strings.Contains(q, "mf"):
		return TopicMutualFund, true
	case strings.Contains(q, "inflation"), strings.Contains(q, "cost"):
		return TopicInflation, true
	}
	return "", false
}

// Answer returns an educational response for the query. Unknown levels fall
// back to beginner and unknown languages to English. Queries outside the
// knowledge base go to the text generator when one is configured, otherwise
// the topic menu is returned.
func (t *Tutor) Answer(ctx context.Context, query string, level Level, lang Language) string {
	topic, ok := DetectTopic(query)
	if !ok {
		return t.fallback(ctx, query)
	}

	levels := t.kb[topic]
	contents, ok := levels[level]
	if !ok {
		contents = levels[LevelBeginner]
		level = LevelBeginner
	}
	explanation, ok := contents[lang]
	if !ok {
		explanation = contents[LangEnglish]
	}

	intro := intros[t.rng.Intn(len(intros))]
	heading := strings.ToUpper(string(topic))
	return fmt.Sprintf("%s\n\n**%s (%s):**\n%s", intro, heading, titleCase(string(level)), explanation)
}

func (t *Tutor) fallback(ctx context.Context, query string) string {
	if t.generator == nil {
		return menuResponse
	}
	prompt := fmt.Sprintf(
		"You are a friendly personal-finance tutor for Indian users. Answer the question below in 3-4 sentences, in simple language, without giving regulated investment advice.\n\nQuestion: %s", query)
	answer, err := t.generator.GenerateText(ctx, prompt)
	if err != nil {
		t.log.Warn().Err(err).Msg("text generator failed, serving topic menu")
		return menuResponse
	}
	return answer
}

// SuggestLearningPath proposes topics to study next for a user profile.
func (t *Tutor) SuggestLearningPath(profile string) []string {
	if profile == "saver" {
		return []string{"What is Inflation?", "Introduction to Mutual Funds", "Why SIP?"}
	}
	return []string{"Advanced Stock Valuation", "Direct vs Regular Mutual Funds", "Asset Allocation"}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
