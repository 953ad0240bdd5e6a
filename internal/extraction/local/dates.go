package local

import (
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/phrazzld/tasksift/internal/domain"
)

// Clock returns the current instant. It anchors relative dates.
type Clock func() time.Time

type dateAnchor struct {
	weekday string
	day     string
	date    domain.Date
}

type weekdayRule struct {
	weekday time.Weekday
	names   []string
}

type dateRules struct {
	today        []string
	tomorrow     []string
	anchors      []dateAnchor
	weekdays     []weekdayRule
	prepositions []string
}

func compileDates(v DateVocabulary) (*dateRules, error) {
	rules := &dateRules{
		today:        lowerAll(v.Today),
		tomorrow:     lowerAll(v.Tomorrow),
		prepositions: lowerAll(v.DeadlinePrepositions),
	}

	for _, a := range v.Anchors {
		date, err := domain.ParseDate(a.Date)
		if err != nil {
			return nil, fmt.Errorf("%w: anchor %q: %v", ErrInvalidVocabulary, a.Weekday, err)
		}
		if a.Day < 1 || a.Day > 31 || strings.TrimSpace(a.Weekday) == "" {
			return nil, fmt.Errorf("%w: anchor %q/%d is incomplete", ErrInvalidVocabulary, a.Weekday, a.Day)
		}
		rules.anchors = append(rules.anchors, dateAnchor{
			weekday: strings.ToLower(strings.TrimSpace(a.Weekday)),
			day:     strconv.Itoa(a.Day),
			date:    date,
		})
	}

	for _, w := range v.Weekdays {
		weekday, err := parseWeekday(w.Weekday)
		if err != nil {
			return nil, err
		}
		rules.weekdays = append(rules.weekdays, weekdayRule{weekday: weekday, names: lowerAll(w.Names)})
	}

	return rules, nil
}

// DateResolver infers a due date from a text fragment using a small rule
// table. It is not a general date parser: most input resolves to no date.
type DateResolver struct {
	rules    *dateRules
	clock    Clock
	location *time.Location
}

// NewDateResolver builds a resolver from the date tables. A nil clock uses
// time.Now and a nil location uses time.Local.
func NewDateResolver(v DateVocabulary, clock Clock, location *time.Location) (*DateResolver, error) {
	rules, err := compileDates(v)
	if err != nil {
		return nil, err
	}
	if clock == nil {
		clock = time.Now
	}
	if location == nil {
		location = time.Local
	}
	return &DateResolver{rules: rules, clock: clock, location: location}, nil
}

// Today returns the anchor date for relative resolution.
func (r *DateResolver) Today() domain.Date {
	return domain.DateOf(r.clock().In(r.location))
}

// Date rule names reported by Match.
const (
	RuleToday               = "today"
	RuleTomorrow            = "tomorrow"
	RuleAnchor              = "anchor"
	RuleWeekday             = "weekday"
	RuleDeadlinePreposition = "deadline_preposition"
)

// DateMatch is the outcome of date resolution. Rule is empty when nothing
// matched. Date is nil when no date could be inferred.
type DateMatch struct {
	Date *domain.Date
	Rule string
}

// Resolve returns the due date implied by text, or nil.
func (r *DateResolver) Resolve(text string) *domain.Date {
	return r.Match(text).Date
}

// Match applies the rules in order and reports the first that matches:
// today, tomorrow, calibration anchors, weekday names, deadline
// prepositions. A deadline preposition yields no date because the date it
// names cannot be recovered from the phrase alone.
func (r *DateResolver) Match(text string) DateMatch {
	words := wordSet(text)
	today := r.Today()

	if words.hasAny(r.rules.today) {
		return DateMatch{Date: &today, Rule: RuleToday}
	}
	if words.hasAny(r.rules.tomorrow) {
		d := today.AddDays(1)
		return DateMatch{Date: &d, Rule: RuleTomorrow}
	}

	for _, a := range r.rules.anchors {
		if words.has(a.weekday) && words.has(a.day) {
			d := a.date
			return DateMatch{Date: &d, Rule: RuleAnchor}
		}
	}

	for _, w := range r.rules.weekdays {
		if words.hasAny(w.names) {
			offset := (int(w.weekday) - int(today.Weekday()) + 7) % 7
			d := today.AddDays(offset)
			return DateMatch{Date: &d, Rule: RuleWeekday}
		}
	}

	if words.hasAny(r.rules.prepositions) {
		return DateMatch{Rule: RuleDeadlinePreposition}
	}

	return DateMatch{}
}

// words is the set of lowercase words in a text fragment. Multi-word
// phrases are matched against the space-joined word sequence.
type words struct {
	set    map[string]struct{}
	joined string
}

func wordSet(text string) words {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return words{set: set, joined: " " + strings.Join(fields, " ") + " "}
}

func (w words) has(word string) bool {
	if strings.Contains(word, " ") {
		return strings.Contains(w.joined, " "+word+" ")
	}
	_, ok := w.set[word]
	return ok
}

func (w words) hasAny(list []string) bool {
	for _, word := range list {
		if w.has(word) {
			return true
		}
	}
	return false
}
