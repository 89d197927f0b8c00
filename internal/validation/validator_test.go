package validation

import (
	"strings"
	"testing"

	"github.com/t02uk/tttttemplate/internal/models"
)

func validTemplate() *models.Template {
	return &models.Template{
		ID:      "greeting",
		Name:    "Greeting",
		Content: "Hello {{name}}",
		Variables: []models.VariableConfig{
			{Name: "name", DefaultFunction: `"name"`, UIType: models.UITypeText, CurrentValue: ""},
		},
	}
}

func TestValidateTemplateAccepts(t *testing.T) {
	result := ValidateTemplate(validTemplate())
	if !result.Valid {
		t.Fatalf("expected valid, got errors: %+v", result.Errors)
	}
	if result.ToAppError() != nil {
		t.Error("ToAppError of a valid result should be nil")
	}
}

func TestValidateTemplateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.Template)
		want   string
	}{
		{
			name:   "missing id",
			mutate: func(tm *models.Template) { tm.ID = " " },
			want:   "template ID is required",
		},
		{
			name:   "missing name",
			mutate: func(tm *models.Template) { tm.Name = "" },
			want:   "template name is required",
		},
		{
			name:   "broken default expression",
			mutate: func(tm *models.Template) { tm.Variables[0].DefaultFunction = `[1,` },
			want:   "does not compile",
		},
		{
			name:   "options on text variable",
			mutate: func(tm *models.Template) { tm.Variables[0].Options = []any{"a"} },
			want:   "options are only allowed",
		},
		{
			name: "date format on text variable",
			mutate: func(tm *models.Template) {
				tm.Variables[0].DateFormat = "YYYY/MM/DD"
			},
			want: "only allowed for date variables",
		},
		{
			name: "empty date format rejected on date variable",
			mutate: func(tm *models.Template) {
				tm.Variables[0].UIType = models.UITypeDate
				tm.Variables[0].DateFormat = "   "
			},
			want: "Format cannot be empty",
		},
		{
			name: "duplicate variable names",
			mutate: func(tm *models.Template) {
				tm.Variables = append(tm.Variables, tm.Variables[0])
			},
			want: "duplicate variable name",
		},
		{
			name:   "unknown ui type",
			mutate: func(tm *models.Template) { tm.Variables[0].UIType = "slider" },
			want:   "unknown ui type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tm := validTemplate()
			tt.mutate(tm)
			result := ValidateTemplate(tm)
			if result.Valid {
				t.Fatal("expected validation failure")
			}
			appErr := result.ToAppError()
			if appErr == nil || !strings.Contains(appErr.Error(), tt.want) {
				t.Errorf("error = %v, want substring %q", appErr, tt.want)
			}
		})
	}
}
