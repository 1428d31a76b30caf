package prompt

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"line-faq-bot/pkg/store"
	"line-faq-bot/pkg/template"
)

const questionHeader = "【ユーザーからの質問】"

// DefaultMaxRunes bounds the composed prompt so an oversized template bundle
// or question is rejected per request instead of failing downstream at the
// completion API's input limit.
const DefaultMaxRunes = 30000

var ErrPromptTooLong = errors.New("composed prompt exceeds the length bound")

// Composer builds the final completion prompt from the template bundle and
// the raw user question.
type Composer struct {
	templates *template.Store
	maxRunes  int
}

func NewComposer(templates *template.Store, maxRunes int) *Composer {
	if maxRunes <= 0 {
		maxRunes = DefaultMaxRunes
	}
	return &Composer{
		templates: templates,
		maxRunes:  maxRunes,
	}
}

// Compose returns base + "\n\n" + reference + "\n\n" + labeled question.
// The same (category, question) against an unchanged template bundle composes
// byte-identically.
func (c *Composer) Compose(category store.Category, question string) (string, error) {
	base, err := c.templates.Base()
	if err != nil {
		return "", err
	}
	reference, err := c.templates.Reference(category)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString(base)
	b.WriteString("\n\n")
	b.WriteString(reference)
	b.WriteString("\n\n")
	b.WriteString(questionHeader)
	b.WriteString("\n")
	b.WriteString(question)

	composed := b.String()
	if n := utf8.RuneCountInString(composed); n > c.maxRunes {
		return "", fmt.Errorf("%w: %d runes", ErrPromptTooLong, n)
	}

	return composed, nil
}
