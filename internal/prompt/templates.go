// Package prompt turns a resolved sentiment and the caller's prompt into the
// seed text fed to the generator.
package prompt

import (
	"fmt"
	"strings"

	"moodgen/internal/domain"
)

type Engine struct {
	templates map[domain.SentimentLabel]string
}

// NewEngine builds the seed template table. Each template must contain
// exactly one %s placeholder for the prompt; anything else is a
// configuration mistake caught here, keeping BuildSeed total at runtime.
func NewEngine(positive, negative, neutral string) (*Engine, error) {
	e := &Engine{templates: map[domain.SentimentLabel]string{
		domain.SentimentPositive: positive,
		domain.SentimentNegative: negative,
		domain.SentimentNeutral:  neutral,
	}}
	for label, tpl := range e.templates {
		if strings.Count(tpl, "%s") != 1 {
			return nil, fmt.Errorf("seed template for %s must contain exactly one %%s placeholder, got %q", label, tpl)
		}
	}
	return e, nil
}

// BuildSeed is pure: the same (label, prompt) pair always yields the same
// seed. A label outside the table is a TemplateLookupError.
func (e *Engine) BuildSeed(label domain.SentimentLabel, prompt string) (string, error) {
	tpl, ok := e.templates[label]
	if !ok {
		return "", &domain.TemplateLookupError{Label: label}
	}
	return fmt.Sprintf(tpl, prompt), nil
}
