package local

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/phrazzld/tasksift/internal/domain"
)

// ErrInvalidVocabulary is returned when a vocabulary cannot be used.
var ErrInvalidVocabulary = errors.New("invalid vocabulary")

// Vocabulary holds every locale-bound table used by the local engine and by
// the remote prompt builder. Entries are matched case-insensitively and with
// diacritics as written.
type Vocabulary struct {
	// ListMarkers are regular expressions recognizing bulleted or numbered lines.
	ListMarkers []string `yaml:"list_markers"`
	// ListMarkerStrip removes the marker from the start of a list line.
	ListMarkerStrip string `yaml:"list_marker_strip"`
	// ModalPhrases express obligation ("hay que", "must") anywhere in a segment.
	ModalPhrases []string `yaml:"modal_phrases"`
	// ActionVerbs are imperative verbs recognized at the start of a segment.
	ActionVerbs []string `yaml:"action_verbs"`
	// DeadlinePhrases mark urgency or a deadline anywhere in a segment.
	DeadlinePhrases []string `yaml:"deadline_phrases"`
	// ObligationVerbs follow a leading bare word ("Juan debe ...").
	ObligationVerbs []string `yaml:"obligation_verbs"`

	Dates DateVocabulary `yaml:"dates"`

	// PriorityTiers are evaluated in order; the first tier with a keyword
	// contained in the text wins.
	PriorityTiers []PriorityRule `yaml:"priority_tiers"`
	// PriorityHints interpret a free-form remote priority answer.
	PriorityHints []PriorityRule `yaml:"priority_hints"`

	Contexts ContextVocabulary `yaml:"contexts"`
}

// DateVocabulary holds the date resolution tables.
type DateVocabulary struct {
	Today    []string `yaml:"today"`
	Tomorrow []string `yaml:"tomorrow"`
	// Anchors map a weekday name plus a day number to a fixed calendar date.
	Anchors []DateAnchor `yaml:"anchors"`
	// Weekdays resolve to the next occurrence of that weekday.
	Weekdays []WeekdayRule `yaml:"weekdays"`
	// DeadlinePrepositions stop resolution without a date.
	DeadlinePrepositions []string `yaml:"deadline_prepositions"`
}

// DateAnchor is a calibration rule: text naming Weekday and Day resolves to Date.
type DateAnchor struct {
	Weekday string `yaml:"weekday"`
	Day     int    `yaml:"day"`
	Date    string `yaml:"date"`
}

// WeekdayRule maps day names to a weekday, e.g. "miércoles" to "Wednesday".
type WeekdayRule struct {
	Weekday string   `yaml:"weekday"`
	Names   []string `yaml:"names"`
}

// PriorityRule assigns Level when any keyword is present.
type PriorityRule struct {
	Level    string   `yaml:"level"`
	Keywords []string `yaml:"keywords"`
}

// ContextVocabulary describes each usage context for the remote prompt.
type ContextVocabulary struct {
	Descriptions map[string]string `yaml:"descriptions"`
	Default      string            `yaml:"default"`
}

// DefaultVocabulary returns the built-in Spanish vocabulary with English aliases.
func DefaultVocabulary() *Vocabulary {
	return &Vocabulary{
		ListMarkers: []string{
			`^[-*•]\s*.+`,
			`^\d+[.):]\s*.+`,
		},
		ListMarkerStrip: `^[-*•\d.):]+\s*`,
		ModalPhrases: []string{
			"debe", "tiene que", "necesita", "hay que", "tengo que", "tienes que",
			"must", "has to", "needs to", "have to",
		},
		ActionVerbs: []string{
			"hacer", "revisar", "enviar", "llamar", "comprar", "estudiar", "reunir",
			"contactar", "completar", "terminar", "preparar", "organizar", "planificar",
			"coordinar", "inscribir", "pagar", "limpiar", "cambiar", "agendar",
			"actualizar", "documentar", "ejecutar", "restaurar", "identificar", "corregir",
			"do", "review", "send", "call", "buy", "study", "prepare", "organize",
			"schedule", "update", "document", "execute", "restore", "identify", "correct",
		},
		DeadlinePhrases: []string{
			"antes del", "antes de", "para el", "para hoy", "urgente", "importante",
			"deadline", "fecha límite",
			"before the", "by the", "for today", "urgent", "important",
		},
		ObligationVerbs: []string{
			"debe", "tiene", "necesita", "va a",
			"must", "has", "needs", "is going to",
		},
		Dates: DateVocabulary{
			Today:    []string{"hoy", "today"},
			Tomorrow: []string{"mañana", "tomorrow"},
			Anchors: []DateAnchor{
				{Weekday: "viernes", Day: 19, Date: "2025-07-19"},
				{Weekday: "lunes", Day: 22, Date: "2025-07-22"},
			},
			Weekdays: []WeekdayRule{
				{Weekday: "Wednesday", Names: []string{"miércoles", "wednesday"}},
			},
			DeadlinePrepositions: []string{"antes del", "para el", "before the", "for the"},
		},
		PriorityTiers: []PriorityRule{
			{Level: "CRITICA", Keywords: []string{
				"urgente", "examen", "emergencia", "crítico", "deadline",
				"urgent", "exam", "emergency", "critical",
			}},
			{Level: "ALTA", Keywords: []string{
				"importante", "reunión", "cliente", "proyecto", "entrega",
				"important", "meeting", "client", "project", "delivery",
			}},
			{Level: "BAJA", Keywords: []string{
				"opcional", "cuando pueda", "algún día",
				"optional", "whenever", "someday",
			}},
		},
		PriorityHints: []PriorityRule{
			{Level: "CRITICA", Keywords: []string{"critica", "critical"}},
			{Level: "ALTA", Keywords: []string{"alta", "high"}},
			{Level: "BAJA", Keywords: []string{"baja", "low"}},
		},
		Contexts: ContextVocabulary{
			Descriptions: map[string]string{
				"student":  "Estudiante universitario (priorizar exámenes, proyectos académicos)",
				"work":     "Profesional (priorizar reuniones, deadlines laborales)",
				"personal": "Personal (priorizar salud, familia, finanzas)",
			},
			Default: "Mixto (equilibrar trabajo, estudios y vida personal)",
		},
	}
}

// LoadVocabulary reads a YAML vocabulary from path on top of the defaults.
// Fields missing from the file keep their default values. A list present in
// the file replaces the default list; context descriptions are merged.
func LoadVocabulary(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read %s: %v", ErrInvalidVocabulary, path, err)
	}

	return ParseVocabulary(data)
}

// ParseVocabulary decodes YAML vocabulary data on top of the defaults.
func ParseVocabulary(data []byte) (*Vocabulary, error) {
	vocab := DefaultVocabulary()
	if err := yaml.Unmarshal(data, vocab); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidVocabulary, err)
	}

	if err := vocab.Validate(); err != nil {
		return nil, err
	}

	return vocab, nil
}

// Validate checks that every table can be compiled into rules.
func (v *Vocabulary) Validate() error {
	if _, err := compilePatterns(v); err != nil {
		return err
	}
	if _, err := compileDates(v.Dates); err != nil {
		return err
	}
	if _, err := compileRules(v.PriorityTiers); err != nil {
		return fmt.Errorf("priority_tiers: %w", err)
	}
	if _, err := compileRules(v.PriorityHints); err != nil {
		return fmt.Errorf("priority_hints: %w", err)
	}
	if strings.TrimSpace(v.Contexts.Default) == "" {
		return fmt.Errorf("%w: contexts.default cannot be empty", ErrInvalidVocabulary)
	}
	return nil
}

// ContextDescription returns the description of taskContext, or the default
// description for an empty or unknown context.
func (v *Vocabulary) ContextDescription(taskContext string) string {
	if desc, ok := v.Contexts.Descriptions[taskContext]; ok {
		return desc
	}
	return v.Contexts.Default
}

// compiledRule is a PriorityRule with a parsed level and lowercased keywords.
type compiledRule struct {
	level    domain.Priority
	keywords []string
}

func compileRules(rules []PriorityRule) ([]compiledRule, error) {
	compiled := make([]compiledRule, 0, len(rules))
	for _, rule := range rules {
		level, err := domain.ParsePriority(rule.Level)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidVocabulary, err)
		}
		compiled = append(compiled, compiledRule{level: level, keywords: lowerAll(rule.Keywords)})
	}
	return compiled, nil
}

func parseWeekday(name string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), strings.TrimSpace(name)) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown weekday %q", ErrInvalidVocabulary, name)
}

func lowerAll(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			out = append(out, w)
		}
	}
	return out
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}
