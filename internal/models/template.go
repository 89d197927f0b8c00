package models

import (
	"fmt"
	"strings"
	"time"
)

// UIType identifies the input widget a variable is edited with
type UIType string

const (
	UITypeText     UIType = "text"
	UITypeNumber   UIType = "number"
	UITypeRadio    UIType = "radio"
	UITypeSelect   UIType = "select"
	UITypeCheckbox UIType = "checkbox"
	UITypeDate     UIType = "date"
)

// DefaultDateFormat is used whenever a date variable has no explicit format
const DefaultDateFormat = "YYYY/MM/DD"

// Template represents a reusable text template with {{placeholder}} spans
type Template struct {
	// Frontmatter fields
	ID        string           `yaml:"id"`
	Name      string           `yaml:"name"`
	Variables []VariableConfig `yaml:"variables"`
	CreatedAt time.Time        `yaml:"created_at"`
	UpdatedAt time.Time        `yaml:"updated_at"`

	// Content fields
	Content  string `yaml:"-"` // The template text after frontmatter
	FilePath string `yaml:"-"` // Path to the file
}

// VariableConfig holds the per-placeholder configuration for one template
// variable. Options is set only for radio/select variables; DateFormat and
// NaturalLanguageInput only for date variables.
type VariableConfig struct {
	Name                 string `yaml:"name"`
	DefaultFunction      string `yaml:"default_function"`
	UIType               UIType `yaml:"ui_type"`
	CurrentValue         any    `yaml:"current_value"`
	Options              []any  `yaml:"options,omitempty"`
	DateFormat           string `yaml:"date_format,omitempty"`
	NaturalLanguageInput string `yaml:"natural_language_input,omitempty"`
}

// VariableValue maps variable names to their live editable values
type VariableValue map[string]any

// Implement list.Item interface for bubbles list component

// FilterValue returns the value used for filtering in lists
func (t Template) FilterValue() string {
	return cleanString(t.Name)
}

// Title satisfies the list.Item interface
func (t Template) Title() string {
	if t.Name != "" {
		return cleanString(t.Name)
	}
	return cleanString(t.ID)
}

// Description satisfies the list.Item interface
func (t Template) Description() string {
	parts := []string{}

	switch n := len(t.Variables); n {
	case 0:
		parts = append(parts, "no variables")
	case 1:
		parts = append(parts, "1 variable")
	default:
		parts = append(parts, fmt.Sprintf("%d variables", n))
	}

	if !t.UpdatedAt.IsZero() {
		parts = append(parts, "Last edited: "+t.UpdatedAt.Format("2006-01-02 15:04"))
	}

	return cleanString(strings.Join(parts, " • "))
}

// cleanString removes control characters that might break list rendering
func cleanString(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			b.WriteByte(' ')
		case r >= 32 && r != 127:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
