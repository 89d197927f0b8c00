// Package validation checks templates and their variable configurations
// before they reach storage.
package validation

import (
	"fmt"
	"strings"

	"github.com/t02uk/tttttemplate/internal/dates"
	"github.com/t02uk/tttttemplate/internal/errors"
	"github.com/t02uk/tttttemplate/internal/evaluator"
	"github.com/t02uk/tttttemplate/internal/models"
)

// ValidationResult represents the result of validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// ValidationError represents a field validation error
type ValidationError struct {
	Field   string
	Message string
}

func (r *ValidationResult) addError(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

// ToAppError converts validation failures to the standard error type
func (r *ValidationResult) ToAppError() *errors.AppError {
	if r.Valid {
		return nil
	}
	messages := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		messages[i] = fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return errors.ValidationError(strings.Join(messages, "; "))
}

var validUITypes = map[models.UIType]bool{
	models.UITypeText:     true,
	models.UITypeNumber:   true,
	models.UITypeRadio:    true,
	models.UITypeSelect:   true,
	models.UITypeCheckbox: true,
	models.UITypeDate:     true,
}

// ValidateTemplate checks a template record and all its variables
func ValidateTemplate(t *models.Template) *ValidationResult {
	result := &ValidationResult{Valid: true}

	if strings.TrimSpace(t.ID) == "" {
		result.addError("id", "template ID is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		result.addError("name", "template name is required")
	}

	seen := map[string]bool{}
	for i := range t.Variables {
		v := &t.Variables[i]
		field := fmt.Sprintf("variables[%d]", i)
		if v.Name != "" {
			field = "variables." + v.Name
		}

		if seen[v.Name] {
			result.addError(field, "duplicate variable name")
		}
		seen[v.Name] = true

		validateVariable(v, field, result)
	}

	return result
}

func validateVariable(v *models.VariableConfig, field string, result *ValidationResult) {
	if strings.TrimSpace(v.Name) == "" {
		result.addError(field, "variable name is required")
	}

	if !validUITypes[v.UIType] {
		result.addError(field, fmt.Sprintf("unknown ui type %q", v.UIType))
	}

	if strings.TrimSpace(v.DefaultFunction) != "" {
		if err := evaluator.Check(v.DefaultFunction); err != nil {
			result.addError(field, fmt.Sprintf("default expression does not compile: %v", err))
		}
	}

	isChoice := v.UIType == models.UITypeRadio || v.UIType == models.UITypeSelect
	if v.Options != nil && !isChoice {
		result.addError(field, fmt.Sprintf("options are only allowed for radio/select, not %s", v.UIType))
	}

	if v.UIType == models.UITypeDate {
		if v.DateFormat != "" {
			if err := dates.ValidateFormat(v.DateFormat); err != nil {
				result.addError(field, fmt.Sprintf("invalid date format: %v", err))
			}
		}
	} else if v.DateFormat != "" {
		result.addError(field, "date format is only allowed for date variables")
	}
}
