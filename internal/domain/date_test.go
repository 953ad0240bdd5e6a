package domain

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	t.Parallel()

	d, err := ParseDate("2025-07-19")
	if err != nil {
		t.Fatalf("ParseDate returned error: %v", err)
	}
	if d != (Date{Year: 2025, Month: time.July, Day: 19}) {
		t.Errorf("ParseDate = %+v", d)
	}
	if d.Weekday() != time.Saturday {
		t.Errorf("Weekday = %s, want Saturday", d.Weekday())
	}

	for _, input := range []string{"", "null", "19/07/2025", "2025-02-30"} {
		if _, err := ParseDate(input); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q) error = %v, want ErrInvalidDate", input, err)
		}
	}
}

func TestDateAddDays(t *testing.T) {
	t.Parallel()

	d := NewDate(2024, time.December, 31)
	if got := d.AddDays(1).String(); got != "2025-01-01" {
		t.Errorf("AddDays(1) = %s, want 2025-01-01", got)
	}
	if got := d.AddDays(-31).String(); got != "2024-11-30" {
		t.Errorf("AddDays(-31) = %s, want 2024-11-30", got)
	}
	if got := NewDate(2025, time.July, 32).String(); got != "2025-08-01" {
		t.Errorf("NewDate normalization = %s, want 2025-08-01", got)
	}
}

func TestDateJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(NewDate(2025, time.July, 22))
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if string(data) != `"2025-07-22"` {
		t.Errorf("Marshal = %s", data)
	}

	var d Date
	if err := json.Unmarshal([]byte(`"2025-07-19"`), &d); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if d.String() != "2025-07-19" {
		t.Errorf("Unmarshal = %s", d)
	}

	if err := json.Unmarshal([]byte(`42`), &d); !errors.Is(err, ErrInvalidDate) {
		t.Errorf("expected ErrInvalidDate, got %v", err)
	}
}

func TestDateOfUsesLocation(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC-5", -5*60*60)
	instant := time.Date(2025, time.July, 20, 2, 0, 0, 0, time.UTC)

	if got := DateOf(instant.In(loc)).String(); got != "2025-07-19" {
		t.Errorf("DateOf in UTC-5 = %s, want 2025-07-19", got)
	}
}
