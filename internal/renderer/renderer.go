// Package renderer substitutes resolved variable values into template text.
package renderer

import (
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/t02uk/tttttemplate/internal/dates"
	"github.com/t02uk/tttttemplate/internal/models"
)

var placeholderPattern = regexp.MustCompile(`\{\{\s*([^{}]+?)\s*\}\}`)

// Render replaces every {{name}} span that has a bound value and leaves
// unbound spans verbatim. It never fails; a half-typed placeholder simply
// does not match and survives untouched.
func Render(content string, values models.VariableValue) string {
	if strings.TrimSpace(content) == "" {
		return content
	}

	return placeholderPattern.ReplaceAllStringFunc(content, func(span string) string {
		m := placeholderPattern.FindStringSubmatch(span)
		name := strings.TrimSpace(m[1])
		value, ok := values[name]
		if !ok {
			return span
		}
		return formatValue(value)
	})
}

// formatValue renders a variable value the way a Handlebars context would:
// scalars print directly, arrays join with commas
func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time:
		return dates.Format(v, "")
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		parts := make([]string, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			parts[i] = formatValue(rv.Index(i).Interface())
		}
		return strings.Join(parts, ",")
	}

	return fmt.Sprint(value)
}
