// Package registry keeps the per-template variable set synchronized with the
// placeholders present in the template text.
package registry

import (
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/t02uk/tttttemplate/internal/dates"
	"github.com/t02uk/tttttemplate/internal/evaluator"
	"github.com/t02uk/tttttemplate/internal/models"
	"github.com/t02uk/tttttemplate/internal/template"
	"github.com/t02uk/tttttemplate/internal/uitype"
)

// Registry owns the variable configurations and live values for one open
// template. It is driven strictly sequentially by the editing surface; no
// operation ever returns an error or panics.
type Registry struct {
	variables []models.VariableConfig
	values    models.VariableValue
}

// Patch is a partial update applied to one variable's configuration. Nil
// fields are left untouched.
type Patch struct {
	DefaultFunction      *string
	UIType               *models.UIType
	CurrentValue         *any
	Options              *[]any
	DateFormat           *string
	NaturalLanguageInput *string
}

// New creates an empty registry
func New() *Registry {
	return &Registry{values: models.VariableValue{}}
}

// Load seeds the registry from a stored template's variables. Date variables
// that were produced from a natural-language phrase are re-resolved, so a
// template saved with "today" opens with the current today rather than a
// stale cached date.
func (r *Registry) Load(vars []models.VariableConfig) {
	r.variables = append([]models.VariableConfig(nil), vars...)
	r.values = make(models.VariableValue, len(vars))

	for i := range r.variables {
		v := &r.variables[i]
		if v.UIType == models.UITypeDate && v.NaturalLanguageInput != "" {
			if res := dates.Resolve(v.NaturalLanguageInput, v.DateFormat); res.Err == nil {
				v.CurrentValue = res.Value
			}
		}
		if v.CurrentValue == nil {
			v.CurrentValue = ""
		}
		r.values[v.Name] = v.CurrentValue
	}
}

// Reconcile diffs the placeholder names extracted from text against the
// registered variables. Names no longer present are dropped, newly appearing
// names get a default configuration, and surviving variables are left
// untouched. A no-op when the name set is unchanged.
func (r *Registry) Reconcile(text string) {
	names := template.Extract(text)

	nameSet := make(map[string]bool, len(names))
	for _, n := range names {
		nameSet[n] = true
	}
	existing := make(map[string]bool, len(r.variables))
	for _, v := range r.variables {
		existing[v.Name] = true
	}

	added := []string{}
	for _, n := range names {
		if !existing[n] {
			added = append(added, n)
		}
	}
	removed := false
	for _, v := range r.variables {
		if !nameSet[v.Name] {
			removed = true
			break
		}
	}
	if len(added) == 0 && !removed {
		return
	}

	kept := make([]models.VariableConfig, 0, len(r.variables)+len(added))
	for _, v := range r.variables {
		if nameSet[v.Name] {
			kept = append(kept, v)
		} else {
			delete(r.values, v.Name)
		}
	}
	for _, n := range added {
		kept = append(kept, models.VariableConfig{
			Name:            n,
			DefaultFunction: strconv.Quote(n),
			UIType:          models.UITypeText,
			CurrentValue:    "",
		})
		r.values[n] = n
	}
	r.variables = kept
}

// UpdateConfig merges patch into the named variable's configuration. Unknown
// names are a no-op. A patched CurrentValue also updates the live value map
// so both views stay consistent.
func (r *Registry) UpdateConfig(name string, patch Patch) {
	i := r.indexOf(name)
	if i < 0 {
		return
	}
	v := &r.variables[i]

	if patch.DefaultFunction != nil {
		v.DefaultFunction = *patch.DefaultFunction
	}
	if patch.UIType != nil {
		v.UIType = *patch.UIType
	}
	if patch.Options != nil {
		v.Options = *patch.Options
	}
	if patch.DateFormat != nil {
		v.DateFormat = *patch.DateFormat
	}
	if patch.NaturalLanguageInput != nil {
		v.NaturalLanguageInput = *patch.NaturalLanguageInput
	}
	if patch.CurrentValue != nil {
		v.CurrentValue = *patch.CurrentValue
		r.values[name] = *patch.CurrentValue
	}

	normalize(v)
}

// UpdateValue sets the live value for name without touching its stored
// configuration. Unknown names are a no-op.
func (r *Registry) UpdateValue(name string, value any) {
	if r.indexOf(name) < 0 {
		return
	}
	r.values[name] = value
}

// RefreshDefaults re-runs evaluation, classification and date resolution for
// every variable with a default expression. The stored configuration is only
// rewritten when the derived UI type or options actually changed; the live
// value is always refreshed. Evaluation failures fall back to the variable's
// previous value.
func (r *Registry) RefreshDefaults() {
	for i := range r.variables {
		v := &r.variables[i]
		if strings.TrimSpace(v.DefaultFunction) == "" {
			continue
		}

		value, err := evaluator.Evaluate(v.DefaultFunction)
		if err != nil {
			r.values[v.Name] = v.CurrentValue
			continue
		}

		newType := uitype.Detect(value)
		newOptions := uitype.Options(value)

		if newType == models.UITypeDate {
			value = r.resolveDateDefault(v, value)
		}

		if newType != v.UIType || !reflect.DeepEqual(newOptions, v.Options) {
			v.UIType = newType
			v.Options = newOptions
			v.CurrentValue = value
			if newType == models.UITypeDate && v.DateFormat == "" {
				v.DateFormat = models.DefaultDateFormat
			}
			normalize(v)
		}
		r.values[v.Name] = value
	}
}

// resolveDateDefault renders an evaluated date default through the variable's
// format, remembering the raw phrase so it can be re-resolved later
func (r *Registry) resolveDateDefault(v *models.VariableConfig, value any) any {
	switch d := value.(type) {
	case time.Time:
		return dates.Format(d, v.DateFormat)
	case string:
		res := dates.Resolve(d, v.DateFormat)
		if res.Err != nil {
			return d
		}
		v.NaturalLanguageInput = d
		return res.Value
	}
	return value
}

// Variables returns a snapshot of the ordered variable configurations.
// Options slices are copied too, so mutating the snapshot never touches
// registry state.
func (r *Registry) Variables() []models.VariableConfig {
	vars := append([]models.VariableConfig(nil), r.variables...)
	for i := range vars {
		vars[i].Options = append([]any(nil), vars[i].Options...)
	}
	return vars
}

// Values returns a copy of the live value map
func (r *Registry) Values() models.VariableValue {
	values := make(models.VariableValue, len(r.values))
	for k, v := range r.values {
		values[k] = v
	}
	return values
}

// Get returns a snapshot of the configuration for name, if registered
func (r *Registry) Get(name string) (models.VariableConfig, bool) {
	i := r.indexOf(name)
	if i < 0 {
		return models.VariableConfig{}, false
	}
	v := r.variables[i]
	v.Options = append([]any(nil), v.Options...)
	return v, true
}

func (r *Registry) indexOf(name string) int {
	for i := range r.variables {
		if r.variables[i].Name == name {
			return i
		}
	}
	return -1
}

// normalize enforces the config invariants: options exist only for
// radio/select, date fields only for date variables
func normalize(v *models.VariableConfig) {
	if v.UIType != models.UITypeRadio && v.UIType != models.UITypeSelect {
		v.Options = nil
	}
	if v.UIType != models.UITypeDate {
		v.DateFormat = ""
		v.NaturalLanguageInput = ""
	}
}
