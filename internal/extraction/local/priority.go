package local

import (
	"strings"

	"github.com/phrazzld/tasksift/internal/domain"
)

// PriorityClassifier assigns a priority from keyword evidence. It is a pure
// function of the text it is given.
type PriorityClassifier struct {
	tiers []compiledRule
	hints []compiledRule
}

// NewPriorityClassifier builds a classifier from the vocabulary's priority
// tiers and remote answer hints.
func NewPriorityClassifier(v *Vocabulary) (*PriorityClassifier, error) {
	tiers, err := compileRules(v.PriorityTiers)
	if err != nil {
		return nil, err
	}
	hints, err := compileRules(v.PriorityHints)
	if err != nil {
		return nil, err
	}
	return &PriorityClassifier{tiers: tiers, hints: hints}, nil
}

// Classify returns the priority of a task with the given title and
// description. Tiers are checked in order, so a text with both an ALTA and a
// CRITICA keyword is CRITICA. Without evidence the result is MEDIA.
func (c *PriorityClassifier) Classify(title, description string) domain.Priority {
	return c.ClassifyText(strings.ToLower(title + " " + description))
}

// ClassifyText classifies already combined text.
func (c *PriorityClassifier) ClassifyText(text string) domain.Priority {
	return firstMatch(c.tiers, strings.ToLower(text))
}

// InterpretAnswer reads a priority from a free-form model answer: an exact
// level name first, then the hint fragments, then MEDIA.
func (c *PriorityClassifier) InterpretAnswer(answer string) domain.Priority {
	if p, err := domain.ParsePriority(answer); err == nil {
		return p
	}
	return firstMatch(c.hints, strings.ToLower(answer))
}

func firstMatch(rules []compiledRule, text string) domain.Priority {
	for _, rule := range rules {
		if containsAny(text, rule.keywords) {
			return rule.level
		}
	}
	return domain.DefaultPriority
}
