package answer

import (
	"context"
	"fmt"
	"strings"

	"line-faq-bot/pkg/llm"
)

// Result carries the user-facing answer text. Degraded marks that the
// completion call failed and Text holds the canned apology instead, with
// Cause explaining why.
type Result struct {
	Text     string
	Degraded bool
	Cause    error
}

// Generator turns a composed prompt into the reply text.
type Generator struct {
	provider llm.Provider
	model    string
	apology  string
}

func NewGenerator(provider llm.Provider, model, apology string) *Generator {
	return &Generator{
		provider: provider,
		model:    model,
		apology:  apology,
	}
}

// Generate never fails: any transport or API error degrades to the apology
// text so the user always receives some reply.
func (g *Generator) Generate(ctx context.Context, prompt string) Result {
	raw, err := g.provider.Generate(ctx, prompt,
		llm.WithModel(g.model),
		llm.WithTemperature(0.7),
	)
	if err != nil {
		return Result{
			Text:     g.apology,
			Degraded: true,
			Cause:    fmt.Errorf("generation call failed: %w", err),
		}
	}

	return Result{Text: normalize(raw)}
}

// normalize trims whitespace and strips markdown bold markers, which the
// messaging platform renders literally.
func normalize(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "**", ""))
}
