package classify

import (
	"context"
	"fmt"
	"strings"

	"line-faq-bot/pkg/llm"
	"line-faq-bot/pkg/store"
)

// Result reports the resolved category. Degraded marks that the classifier
// fell back to the default category, with Cause explaining why.
type Result struct {
	Category store.Category
	Degraded bool
	Cause    error
}

// Classifier maps a free-text question onto the fixed category set with a
// single low-randomness completion call.
type Classifier struct {
	provider     llm.Provider
	model        string
	systemPrompt string
}

func NewClassifier(provider llm.Provider, model, systemPrompt string) *Classifier {
	return &Classifier{
		provider:     provider,
		model:        model,
		systemPrompt: systemPrompt,
	}
}

// Classify never fails: transport errors and out-of-set answers both degrade
// to the default category so the caller can keep the dialogue moving. The
// caller can inspect Result.Degraded to see that a fallback occurred.
func (c *Classifier) Classify(ctx context.Context, question string) Result {
	history := []llm.Message{
		{Role: llm.RoleSystem, Content: c.systemPrompt},
		{Role: llm.RoleUser, Content: "ユーザーの質問: " + question},
	}

	reply, err := c.provider.Chat(ctx, history,
		llm.WithModel(c.model),
		llm.WithTemperature(0),
	)
	if err != nil {
		return Result{
			Category: store.DefaultCategory,
			Degraded: true,
			Cause:    fmt.Errorf("classification call failed: %w", err),
		}
	}

	category, ok := store.ParseCategory(strings.TrimSpace(reply))
	if !ok {
		return Result{
			Category: store.DefaultCategory,
			Degraded: true,
			Cause:    fmt.Errorf("classifier answered outside the label set: %q", reply),
		}
	}

	return Result{Category: category}
}
