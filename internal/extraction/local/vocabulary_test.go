package local

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultVocabularyIsValid(t *testing.T) {
	t.Parallel()

	require.NoError(t, DefaultVocabulary().Validate())
}

func TestContextDescription(t *testing.T) {
	t.Parallel()

	v := DefaultVocabulary()
	tests := map[string]string{
		"student":  "Estudiante universitario (priorizar exámenes, proyectos académicos)",
		"work":     "Profesional (priorizar reuniones, deadlines laborales)",
		"personal": "Personal (priorizar salud, familia, finanzas)",
		"mixed":    "Mixto (equilibrar trabajo, estudios y vida personal)",
		"":         "Mixto (equilibrar trabajo, estudios y vida personal)",
		"gaming":   "Mixto (equilibrar trabajo, estudios y vida personal)",
	}
	for taskContext, want := range tests {
		assert.Equal(t, want, v.ContextDescription(taskContext), "context %q", taskContext)
	}
}

func TestLoadVocabularyOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "vocabulary.yaml")
	data := `
action_verbs: [kaufen, anrufen]
dates:
  today: [heute]
priority_tiers:
  - level: CRITICA
    keywords: [dringend]
contexts:
  descriptions:
    work: "Arbeit"
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	v, err := LoadVocabulary(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"kaufen", "anrufen"}, v.ActionVerbs)
	assert.Equal(t, []string{"heute"}, v.Dates.Today)
	assert.Equal(t, []string{"mañana", "tomorrow"}, v.Dates.Tomorrow, "unset fields keep defaults")
	assert.Equal(t, DefaultVocabulary().ModalPhrases, v.ModalPhrases)
	require.Len(t, v.PriorityTiers, 1)
	assert.Equal(t, "Arbeit", v.ContextDescription("work"))
	assert.Equal(t, "Personal (priorizar salud, familia, finanzas)", v.ContextDescription("personal"))

	e, err := NewExtractor(v, WithClock(fixedClock(monday)))
	require.NoError(t, err)
	assert.Equal(t, "CRITICA", e.Classifier().Classify("Milch kaufen dringend", "").String())
}

func TestParseVocabularyErrors(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"malformed yaml":  "action_verbs: [unterminated",
		"bad list regex":  "list_markers: ['^[']",
		"unknown level":   "priority_tiers: [{level: URGENT, keywords: [x]}]",
		"bad anchor date": "dates: {anchors: [{weekday: viernes, day: 19, date: tomorrow}]}",
		"empty default":   "contexts: {default: ''}",
		"strip missing":   "list_marker_strip: ''",
	}

	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ParseVocabulary([]byte(data))
			assert.ErrorIs(t, err, ErrInvalidVocabulary)
		})
	}
}

func TestLoadVocabularyMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadVocabulary(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrInvalidVocabulary)
}
