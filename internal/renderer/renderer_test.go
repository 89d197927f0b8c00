package renderer

import (
	"testing"

	"github.com/t02uk/tttttemplate/internal/models"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name    string
		content string
		values  models.VariableValue
		want    string
	}{
		{
			name:    "bound placeholders replaced",
			content: "Hello {{name}}!",
			values:  models.VariableValue{"name": "World"},
			want:    "Hello World!",
		},
		{
			name:    "unbound placeholders left verbatim",
			content: "Hello {{name}}, due {{due}}",
			values:  models.VariableValue{"name": "Alice"},
			want:    "Hello Alice, due {{due}}",
		},
		{
			name:    "whitespace inside braces",
			content: "Hi {{ name }}",
			values:  models.VariableValue{"name": "Bob"},
			want:    "Hi Bob",
		},
		{
			name:    "numbers and booleans",
			content: "{{n}} and {{b}}",
			values:  models.VariableValue{"n": 42, "b": true},
			want:    "42 and true",
		},
		{
			name:    "float without trailing zeros",
			content: "{{f}}",
			values:  models.VariableValue{"f": 2.5},
			want:    "2.5",
		},
		{
			name:    "arrays join with commas",
			content: "choose: {{opts}}",
			values:  models.VariableValue{"opts": []any{"a", "b"}},
			want:    "choose: a,b",
		},
		{
			name:    "half-typed placeholder survives",
			content: "Hello {{na",
			values:  models.VariableValue{"na": "x"},
			want:    "Hello {{na",
		},
		{
			name:    "empty content",
			content: "",
			values:  models.VariableValue{"name": "x"},
			want:    "",
		},
		{
			name:    "nil value renders empty",
			content: "[{{x}}]",
			values:  models.VariableValue{"x": nil},
			want:    "[]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Render(tt.content, tt.values); got != tt.want {
				t.Errorf("Render = %q, want %q", got, tt.want)
			}
		})
	}
}
