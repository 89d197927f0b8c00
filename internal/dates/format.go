package dates

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// DefaultFormat is applied when no explicit format is given
const DefaultFormat = "YYYY/MM/DD"

// formatTokens in longest-match-first order. Anything that is not a token
// passes through unchanged, including non-Latin separators like 年/月/日.
var formatTokens = []struct {
	token  string
	render func(t time.Time) string
}{
	{"YYYY", func(t time.Time) string { return fmt.Sprintf("%04d", t.Year()) }},
	{"YY", func(t time.Time) string { return fmt.Sprintf("%02d", t.Year()%100) }},
	{"MMM", func(t time.Time) string { return t.Format("Jan") }},
	{"MM", func(t time.Time) string { return fmt.Sprintf("%02d", int(t.Month())) }},
	{"M", func(t time.Time) string { return fmt.Sprintf("%d", int(t.Month())) }},
	{"DD", func(t time.Time) string { return fmt.Sprintf("%02d", t.Day()) }},
	{"D", func(t time.Time) string { return fmt.Sprintf("%d", t.Day()) }},
	{"HH", func(t time.Time) string { return fmt.Sprintf("%02d", t.Hour()) }},
	{"mm", func(t time.Time) string { return fmt.Sprintf("%02d", t.Minute()) }},
	{"ss", func(t time.Time) string { return fmt.Sprintf("%02d", t.Second()) }},
}

// Format renders t through the format's token stream (YYYY, YY, MMM, MM, M,
// DD, D, HH, mm, ss). An empty format falls back to DefaultFormat.
func Format(t time.Time, format string) string {
	if format == "" {
		format = DefaultFormat
	}

	var b strings.Builder
	for i := 0; i < len(format); {
		matched := false
		for _, ft := range formatTokens {
			if strings.HasPrefix(format[i:], ft.token) {
				b.WriteString(ft.render(t))
				i += len(ft.token)
				matched = true
				break
			}
		}
		if matched {
			continue
		}
		r, size := utf8.DecodeRuneInString(format[i:])
		b.WriteRune(r)
		i += size
	}
	return b.String()
}

// referenceDate is the fixed date used to probe candidate formats
var referenceDate = time.Date(2025, time.January, 15, 14, 30, 0, 0, time.Local)

// ValidateFormat reports whether format can render a date. A nil return
// means the format is usable.
func ValidateFormat(format string) error {
	if strings.TrimSpace(format) == "" {
		return errors.New("Format cannot be empty")
	}
	if !utf8.ValidString(format) {
		return fmt.Errorf("Invalid format: %s", format)
	}
	Format(referenceDate, format)
	return nil
}

// FormatExample pairs a format with its rendering of the reference date
type FormatExample struct {
	Format      string
	Example     string
	Description string
}

// FormatExamples returns the format suggestions shown in the variable
// configuration dialog.
func FormatExamples() []FormatExample {
	formats := []struct{ format, description string }{
		{"YYYY/MM/DD", "year/month/day"},
		{"YYYY-MM-DD", "year-month-day"},
		{"MM/DD/YYYY", "month/day/year"},
		{"DD/MM/YYYY", "day/month/year"},
		{"YYYY年MM月DD日", "Japanese style"},
		{"YYYY/MM/DD HH:mm", "date and time"},
		{"YYYY-MM-DD HH:mm:ss", "date and time with seconds"},
		{"MMM DD, YYYY", "English style"},
	}

	examples := make([]FormatExample, 0, len(formats))
	for _, f := range formats {
		examples = append(examples, FormatExample{
			Format:      f.format,
			Example:     Format(referenceDate, f.format),
			Description: f.description,
		})
	}
	return examples
}
