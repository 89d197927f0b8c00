// Package uitype classifies evaluated default values into input widget kinds.
package uitype

import (
	"reflect"
	"time"

	"github.com/t02uk/tttttemplate/internal/dates"
	"github.com/t02uk/tttttemplate/internal/models"
)

// Detect maps a runtime value to the UI type its variable should be edited
// with. First match wins: nil is text, booleans are checkboxes, numbers are
// number inputs, dates and date-like strings are date inputs, arrays become
// radio groups (or selects when the elements are objects), everything else
// falls back to text.
func Detect(value any) models.UIType {
	if value == nil {
		return models.UITypeText
	}

	switch v := value.(type) {
	case bool:
		return models.UITypeCheckbox
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64, float32, float64:
		return models.UITypeNumber
	case time.Time:
		return models.UITypeDate
	case string:
		if dates.IsDateLike(v) {
			return models.UITypeDate
		}
		return models.UITypeText
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		if rv.Len() > 0 && isObject(rv.Index(0)) {
			return models.UITypeSelect
		}
		return models.UITypeRadio
	}

	return models.UITypeText
}

// isObject reports whether an array element is a non-nil object, which turns
// the array into select options of {value, label} shape
func isObject(elem reflect.Value) bool {
	for elem.Kind() == reflect.Interface || elem.Kind() == reflect.Pointer {
		if elem.IsNil() {
			return false
		}
		elem = elem.Elem()
	}
	return elem.Kind() == reflect.Map || elem.Kind() == reflect.Struct
}

// Options returns the value itself as the options list when it is an array,
// and nil otherwise. Elements are passed through untouched.
func Options(value any) []any {
	if value == nil {
		return nil
	}
	if opts, ok := value.([]any); ok {
		return opts
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil
	}
	opts := make([]any, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		opts[i] = rv.Index(i).Interface()
	}
	return opts
}
