// Package dates resolves natural-language, relative and absolute date text
// into formatted date strings.
package dates

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// Result is the uniform outcome of a date-resolution attempt. On failure Err
// is non-nil and Value carries the trimmed original input as a fallback.
type Result struct {
	Value string
	Err   error
	Date  time.Time // zero when the input could not be resolved
}

// Resolved reports whether the input produced a usable date
func (r Result) Resolved() bool {
	return r.Err == nil && !r.Date.IsZero()
}

// relativePattern matches offset expressions like "today + 3 days" or
// "Tomorrow - 1 week".
var relativePattern = regexp.MustCompile(`(?i)^(today|tomorrow|yesterday)\s*([+-])\s*(\d+)\s*(day|week|month|year)s?$`)

var parser = newParser()

func newParser() *when.Parser {
	p := when.New(nil)
	p.Add(en.All...)
	p.Add(common.All...)
	return p
}

// Resolve interprets input as a relative offset expression, a free-form
// natural-language phrase, or an absolute date string, in that order, and
// renders the result through format (DefaultDateFormat when empty).
//
// The relative-offset grammar is checked before the free-form parser: the
// parser would otherwise match the bare "today" inside "today + 3 days" and
// silently drop the offset.
func Resolve(input, format string) Result {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return Result{Value: "", Err: errors.New("Empty input")}
	}

	if m := relativePattern.FindStringSubmatch(trimmed); m != nil {
		d := resolveRelative(m)
		return Result{Value: Format(d, format), Date: d}
	}

	if r, err := parser.Parse(trimmed, time.Now()); err == nil && r != nil && coversInput(r, trimmed) {
		return Result{Value: Format(r.Time, format), Date: r.Time}
	}

	if d, err := dateparse.ParseLocal(trimmed); err == nil {
		return Result{Value: Format(d, format), Date: d}
	}

	return Result{Value: trimmed, Err: fmt.Errorf("Could not parse date: %s", trimmed)}
}

// coversInput requires the natural-language match to span the whole input, so
// phrases with unrecognized trailing text fall through to the next stage
func coversInput(r *when.Result, input string) bool {
	return r.Index == 0 && len(r.Text) == len(input)
}

func resolveRelative(m []string) time.Time {
	base := time.Now()
	switch strings.ToLower(m[1]) {
	case "tomorrow":
		base = base.AddDate(0, 0, 1)
	case "yesterday":
		base = base.AddDate(0, 0, -1)
	}

	n, _ := strconv.Atoi(m[3])
	if m[2] == "-" {
		n = -n
	}

	switch strings.ToLower(m[4]) {
	case "day":
		return base.AddDate(0, 0, n)
	case "week":
		return base.AddDate(0, 0, 7*n)
	case "month":
		return base.AddDate(0, n, 0)
	default: // year
		return base.AddDate(n, 0, 0)
	}
}

// naturalKeywords are phrases whose presence marks a string as date-like
var naturalKeywords = []string{
	"today", "tomorrow", "yesterday", "now",
	"next monday", "next tuesday", "next wednesday", "next thursday", "next friday", "next saturday", "next sunday",
	"last monday", "last tuesday", "last wednesday", "last thursday", "last friday", "last saturday", "last sunday",
	"this monday", "this tuesday", "this wednesday", "this thursday", "this friday", "this saturday", "this sunday",
	"next week", "last week", "next month", "last month", "next year", "last year",
}

// structuralPatterns are common literal date shapes (YYYY/MM/DD and friends)
var structuralPatterns = []*regexp.Regexp{
	regexp.MustCompile(`^\d{4}/\d{1,2}/\d{1,2}$`),
	regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`),
	regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`),
	regexp.MustCompile(`^\d{1,2}-\d{1,2}-\d{4}$`),
	regexp.MustCompile(`^\d{4}/\d{1,2}/\d{1,2}\s+\d{1,2}:\d{1,2}(:\d{1,2})?$`),
	regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}T\d{1,2}:\d{1,2}(:\d{1,2})?(\.\d{3})?Z?$`),
}

// IsDateLike reports whether a plain string should be treated as a date. It
// recognizes the natural-language keywords, the relative-offset grammar,
// common structural date shapes, and anything the full resolution pipeline
// can make sense of.
func IsDateLike(value string) bool {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return false
	}

	lower := strings.ToLower(trimmed)
	for _, kw := range naturalKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}

	if relativePattern.MatchString(lower) {
		return true
	}

	for _, p := range structuralPatterns {
		if p.MatchString(trimmed) {
			if _, err := dateparse.ParseLocal(trimmed); err == nil {
				return true
			}
		}
	}

	return Resolve(trimmed, "").Resolved()
}
