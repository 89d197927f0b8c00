package dates

import (
	"strings"
	"testing"
	"time"
)

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

func TestResolveToday(t *testing.T) {
	res := Resolve("today", "")
	if res.Err != nil {
		t.Fatalf("Resolve(today) returned error: %v", res.Err)
	}
	if !sameDay(res.Date, time.Now()) {
		t.Errorf("Resolve(today) = %v, want today's date", res.Date)
	}
	if res.Value != Format(res.Date, "") {
		t.Errorf("Value = %q, want default-formatted date", res.Value)
	}
}

func TestResolveRelativeOffsets(t *testing.T) {
	now := time.Now()
	tests := []struct {
		input string
		want  time.Time
	}{
		{"today + 3 days", now.AddDate(0, 0, 3)},
		{"Today+1day", now.AddDate(0, 0, 1)},
		{"tomorrow - 1 week", now.AddDate(0, 0, 1-7)},
		{"yesterday + 2 months", now.AddDate(0, 2, -1)},
		{"TODAY - 1 YEAR", now.AddDate(-1, 0, 0)},
	}

	for _, tt := range tests {
		res := Resolve(tt.input, "")
		if res.Err != nil {
			t.Errorf("Resolve(%q) returned error: %v", tt.input, res.Err)
			continue
		}
		if !sameDay(res.Date, tt.want) {
			t.Errorf("Resolve(%q) = %v, want %v", tt.input, res.Date, tt.want)
		}
	}
}

func TestResolveNextMonday(t *testing.T) {
	res := Resolve("next Monday", "")
	if res.Err != nil {
		t.Fatalf("Resolve(next Monday) returned error: %v", res.Err)
	}
	if res.Date.Weekday() != time.Monday {
		t.Errorf("Resolve(next Monday) fell on %v", res.Date.Weekday())
	}
	if !res.Date.After(time.Now()) {
		t.Errorf("Resolve(next Monday) = %v, want a future date", res.Date)
	}
}

func TestResolveAbsolute(t *testing.T) {
	res := Resolve("2025-01-15", "")
	if res.Err != nil {
		t.Fatalf("Resolve(2025-01-15) returned error: %v", res.Err)
	}
	if res.Value != "2025/01/15" {
		t.Errorf("Value = %q, want 2025/01/15", res.Value)
	}
}

func TestResolveEmpty(t *testing.T) {
	for _, input := range []string{"", "   "} {
		res := Resolve(input, "")
		if res.Err == nil || res.Err.Error() != "Empty input" {
			t.Errorf("Resolve(%q).Err = %v, want Empty input", input, res.Err)
		}
		if res.Value != "" {
			t.Errorf("Resolve(%q).Value = %q, want empty", input, res.Value)
		}
		if !res.Date.IsZero() {
			t.Errorf("Resolve(%q).Date = %v, want zero", input, res.Date)
		}
	}
}

func TestResolveUnparseable(t *testing.T) {
	res := Resolve("  hello world  ", "")
	if res.Err == nil {
		t.Fatal("expected error for unparseable input")
	}
	if !strings.Contains(res.Err.Error(), "Could not parse date: hello world") {
		t.Errorf("unexpected error message: %v", res.Err)
	}
	if res.Value != "hello world" {
		t.Errorf("Value = %q, want trimmed original input", res.Value)
	}
	if !res.Date.IsZero() {
		t.Errorf("Date = %v, want zero", res.Date)
	}
}

func TestResolveAppliesFormat(t *testing.T) {
	res := Resolve("2025-01-15", "DD/MM/YYYY")
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.Value != "15/01/2025" {
		t.Errorf("Value = %q, want 15/01/2025", res.Value)
	}
}

func TestIsDateLike(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"today", true},
		{"Tomorrow", true},
		{"next monday", true},
		{"Next Friday", true},
		{"next month", true},
		{"today + 3 days", true},
		{"yesterday - 2 weeks", true},
		{"2025-01-15", true},
		{"2025/1/5", true},
		{"12/31/2025", true},
		{"2025-01-15T14:30:00Z", true},
		{"", false},
		{"   ", false},
		{"hello", false},
		{"banana", false},
	}

	for _, tt := range tests {
		if got := IsDateLike(tt.input); got != tt.want {
			t.Errorf("IsDateLike(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
