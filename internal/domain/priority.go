package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Priority is the urgency classification attached to every extracted task.
// The zero value is not a valid priority; use PriorityMedia as the default.
type Priority int

// The four priority levels, ordered by rank.
const (
	PriorityBaja Priority = iota + 1
	PriorityMedia
	PriorityAlta
	PriorityCritica
)

// DefaultPriority is assigned when no evidence points to another level.
const DefaultPriority = PriorityMedia

// priorityMeta is the presentation metadata carried by each level.
type priorityMeta struct {
	name  string
	icon  string
	color string
}

var priorityTable = map[Priority]priorityMeta{
	PriorityBaja:    {name: "BAJA", icon: "🟢", color: "#4ade80"},
	PriorityMedia:   {name: "MEDIA", icon: "🟡", color: "#f59e0b"},
	PriorityAlta:    {name: "ALTA", icon: "🔴", color: "#ef4444"},
	PriorityCritica: {name: "CRITICA", icon: "🚨", color: "#dc2626"},
}

// Priorities returns all levels in ascending rank order.
func Priorities() []Priority {
	return []Priority{PriorityBaja, PriorityMedia, PriorityAlta, PriorityCritica}
}

// ParsePriority matches s against the level names, ignoring case and
// surrounding whitespace.
func ParsePriority(s string) (Priority, error) {
	name := strings.ToUpper(strings.TrimSpace(s))
	for _, p := range Priorities() {
		if priorityTable[p].name == name {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidPriority, s)
}

// Valid reports whether p is one of the four defined levels.
func (p Priority) Valid() bool {
	_, ok := priorityTable[p]
	return ok
}

// String returns the level name, e.g. "CRITICA".
func (p Priority) String() string {
	if meta, ok := priorityTable[p]; ok {
		return meta.name
	}
	return fmt.Sprintf("Priority(%d)", int(p))
}

// Icon returns the glyph used to display the level.
func (p Priority) Icon() string { return priorityTable[p].icon }

// Color returns the hex color code used to display the level.
func (p Priority) Color() string { return priorityTable[p].color }

// Level returns the numeric rank, 1 (BAJA) through 4 (CRITICA).
func (p Priority) Level() int {
	if !p.Valid() {
		return 0
	}
	return int(p)
}

// Compare returns -1, 0 or +1 depending on whether p ranks below, equal to
// or above other.
func (p Priority) Compare(other Priority) int {
	switch {
	case p.Level() < other.Level():
		return -1
	case p.Level() > other.Level():
		return 1
	default:
		return 0
	}
}

// MarshalJSON encodes the priority as its level name.
func (p Priority) MarshalJSON() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPriority, int(p))
	}
	return json.Marshal(p.String())
}

// UnmarshalJSON decodes a level name.
func (p *Priority) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPriority, err)
	}
	parsed, err := ParsePriority(name)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
