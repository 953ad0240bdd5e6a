package local

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Pattern families that mark a segment as a task.
const (
	FamilyListMarker        = "list_marker"
	FamilyModal             = "modal"
	FamilyActionVerb        = "action_verb"
	FamilyDeadline          = "deadline"
	FamilySubjectObligation = "subject_obligation"
)

// minTitleLength is exclusive: a title must be longer than this many characters.
const minTitleLength = 5

type patternRules struct {
	listMarkers []*regexp.Regexp
	strip       *regexp.Regexp
	modal       []string
	verbs       []string
	deadline    []string
	subject     *regexp.Regexp
}

func compilePatterns(v *Vocabulary) (*patternRules, error) {
	rules := &patternRules{
		modal:    lowerAll(v.ModalPhrases),
		verbs:    lowerAll(v.ActionVerbs),
		deadline: lowerAll(v.DeadlinePhrases),
	}

	for _, expr := range v.ListMarkers {
		re, err := regexp.Compile(expr)
		if err != nil {
			return nil, fmt.Errorf("%w: list marker %q: %v", ErrInvalidVocabulary, expr, err)
		}
		rules.listMarkers = append(rules.listMarkers, re)
	}

	if len(rules.listMarkers) > 0 {
		if v.ListMarkerStrip == "" {
			return nil, fmt.Errorf("%w: list_marker_strip is required with list markers", ErrInvalidVocabulary)
		}
		strip, err := regexp.Compile(v.ListMarkerStrip)
		if err != nil {
			return nil, fmt.Errorf("%w: list marker strip %q: %v", ErrInvalidVocabulary, v.ListMarkerStrip, err)
		}
		rules.strip = strip
	}

	if verbs := lowerAll(v.ObligationVerbs); len(verbs) > 0 {
		quoted := make([]string, len(verbs))
		for i, verb := range verbs {
			quoted[i] = regexp.QuoteMeta(verb)
		}
		rules.subject = regexp.MustCompile(`^\p{L}+\s+(?:` + strings.Join(quoted, "|") + `)`)
	}

	return rules, nil
}

// detect reports whether segment is a task and returns its title and the
// pattern family that matched. Families are tried in a fixed order; only a
// list marker changes the title.
func (p *patternRules) detect(segment string) (title, family string, ok bool) {
	title, family = segment, ""

	lower := strings.ToLower(segment)
	switch {
	case p.isListItem(segment):
		title = strings.TrimSpace(p.strip.ReplaceAllString(segment, ""))
		family = FamilyListMarker
	case containsAny(lower, p.modal):
		family = FamilyModal
	case hasWordPrefix(lower, p.verbs):
		family = FamilyActionVerb
	case containsAny(lower, p.deadline):
		family = FamilyDeadline
	case p.subject != nil && p.subject.MatchString(lower):
		family = FamilySubjectObligation
	default:
		return "", "", false
	}

	if utf8.RuneCountInString(title) <= minTitleLength {
		return "", "", false
	}
	return title, family, true
}

func (p *patternRules) isListItem(segment string) bool {
	for _, re := range p.listMarkers {
		if re.MatchString(segment) {
			return true
		}
	}
	return false
}

// hasWordPrefix reports whether text starts with one of words followed by
// the end of text or a non-letter, non-digit character.
func hasWordPrefix(text string, words []string) bool {
	for _, w := range words {
		if !strings.HasPrefix(text, w) {
			continue
		}
		next, _ := utf8.DecodeRuneInString(text[len(w):])
		if !unicode.IsLetter(next) && !unicode.IsDigit(next) {
			return true
		}
	}
	return false
}
