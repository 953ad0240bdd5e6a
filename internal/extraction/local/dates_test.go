package local

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tasksift/internal/domain"
)

// monday is 2025-07-14, a Monday.
var monday = time.Date(2025, time.July, 14, 10, 30, 0, 0, time.UTC)

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func newTestResolver(t *testing.T, now time.Time) *DateResolver {
	t.Helper()
	r, err := NewDateResolver(DefaultVocabulary().Dates, fixedClock(now), time.UTC)
	require.NoError(t, err)
	return r
}

func TestDateResolver(t *testing.T) {
	t.Parallel()

	r := newTestResolver(t, monday)
	today := domain.NewDate(2025, time.July, 14)

	tests := []struct {
		name string
		text string
		want *domain.Date
		rule string
	}{
		{"today spanish", "Enviar el informe hoy", ptr(today), RuleToday},
		{"today english", "Send the report TODAY", ptr(today), RuleToday},
		{"tomorrow spanish", "Llamar al médico mañana", ptr(today.AddDays(1)), RuleTomorrow},
		{"tomorrow english", "Buy milk tomorrow", ptr(today.AddDays(1)), RuleTomorrow},
		{"today wins over tomorrow", "hoy o mañana", ptr(today), RuleToday},
		{"friday anchor", "Entregar el viernes 19", ptr(domain.NewDate(2025, time.July, 19)), RuleAnchor},
		{"monday anchor", "Reunión el lunes 22 a las 9", ptr(domain.NewDate(2025, time.July, 22)), RuleAnchor},
		{"anchor needs the day number", "Entregar el viernes 20", nil, ""},
		{"anchor day is a whole number", "Entregar el viernes 2019", nil, ""},
		{"wednesday from monday", "Revisar el código el miércoles", ptr(today.AddDays(2)), RuleWeekday},
		{"wednesday english", "Review the code on Wednesday", ptr(today.AddDays(2)), RuleWeekday},
		{"deadline preposition", "Pagar antes del cierre", nil, RuleDeadlinePreposition},
		{"for the", "Prepare slides for the talk", nil, RuleDeadlinePreposition},
		{"no rule", "Comprar pan", nil, ""},
		{"word inside another word", "Ahoyar el terreno", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			match := r.Match(tt.text)
			assert.Equal(t, tt.want, match.Date)
			assert.Equal(t, tt.rule, match.Rule)
			assert.Equal(t, tt.want, r.Resolve(tt.text))
		})
	}
}

func TestDateResolverWeekdayIsTodayWhenSameDay(t *testing.T) {
	t.Parallel()

	wednesday := time.Date(2025, time.July, 16, 8, 0, 0, 0, time.UTC)
	r := newTestResolver(t, wednesday)

	got := r.Resolve("Enviar el miércoles")
	require.NotNil(t, got)
	assert.Equal(t, "2025-07-16", got.String())
}

func TestDateResolverWeekdayWrapsToNextWeek(t *testing.T) {
	t.Parallel()

	thursday := time.Date(2025, time.July, 17, 8, 0, 0, 0, time.UTC)
	r := newTestResolver(t, thursday)

	got := r.Resolve("Enviar el miércoles")
	require.NotNil(t, got)
	assert.Equal(t, "2025-07-23", got.String())
}

func TestDateResolverUsesLocation(t *testing.T) {
	t.Parallel()

	// 02:00 UTC on the 15th is still the 14th five hours west.
	now := time.Date(2025, time.July, 15, 2, 0, 0, 0, time.UTC)
	r, err := NewDateResolver(DefaultVocabulary().Dates, fixedClock(now), time.FixedZone("UTC-5", -5*3600))
	require.NoError(t, err)

	assert.Equal(t, "2025-07-14", r.Today().String())
}

func TestNewDateResolverRejectsBadTables(t *testing.T) {
	t.Parallel()

	bad := []DateVocabulary{
		{Anchors: []DateAnchor{{Weekday: "viernes", Day: 19, Date: "19/07/2025"}}},
		{Anchors: []DateAnchor{{Weekday: "", Day: 19, Date: "2025-07-19"}}},
		{Weekdays: []WeekdayRule{{Weekday: "Miercoles", Names: []string{"miércoles"}}}},
	}

	for _, v := range bad {
		_, err := NewDateResolver(v, nil, nil)
		assert.ErrorIs(t, err, ErrInvalidVocabulary)
	}
}

func ptr[T any](v T) *T {
	return &v
}
