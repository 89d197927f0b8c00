package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/t02uk/tttttemplate/internal/dates"
	"github.com/t02uk/tttttemplate/internal/models"
	"github.com/t02uk/tttttemplate/internal/registry"
)

// varField is one widget in the variable fill form. Which parts are active
// depends on the variable's UI type.
type varField struct {
	name        string
	uiType      models.UIType
	input       textinput.Model // text/number/date
	options     []any           // radio/select
	optionIndex int
	checked     bool
	errMsg      string
}

// VariableForm renders one input widget per registered variable and writes
// edits back into the registry's live value map.
type VariableForm struct {
	registry *registry.Registry
	fields   []*varField
	focused  int
}

// NewVariableForm builds a form over the registry's current variable set
func NewVariableForm(reg *registry.Registry) *VariableForm {
	f := &VariableForm{registry: reg}
	f.Rebuild()
	return f
}

// Rebuild re-derives the widget list from the registry, keeping focus on the
// same variable when it survives
func (f *VariableForm) Rebuild() {
	var focusedName string
	if f.focused >= 0 && f.focused < len(f.fields) {
		focusedName = f.fields[f.focused].name
	}

	values := f.registry.Values()
	vars := f.registry.Variables()
	fields := make([]*varField, 0, len(vars))

	for _, v := range vars {
		field := &varField{name: v.Name, uiType: v.UIType}

		switch v.UIType {
		case models.UITypeRadio, models.UITypeSelect:
			field.options = v.Options
			field.optionIndex = indexOfOption(v.Options, values[v.Name])
		case models.UITypeCheckbox:
			field.checked, _ = values[v.Name].(bool)
		default:
			input := textinput.New()
			input.CharLimit = 0
			input.Width = 40
			input.SetValue(valueString(values[v.Name]))
			if v.UIType == models.UITypeDate {
				input.Placeholder = "today, next Monday, 2025-01-15..."
			}
			field.input = input
		}

		fields = append(fields, field)
	}

	f.fields = fields
	f.focused = 0
	for i, field := range fields {
		if field.name == focusedName {
			f.focused = i
			break
		}
	}
	f.applyFocus()
}

// Update handles fill-form key events
func (f *VariableForm) Update(msg tea.Msg) tea.Cmd {
	if len(f.fields) == 0 {
		return nil
	}
	field := f.fields[f.focused]

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return f.updateTextInput(field, msg)
	}

	switch keyMsg.String() {
	case "tab", "down":
		f.nextField()
		return nil
	case "shift+tab", "up":
		f.prevField()
		return nil
	}

	switch field.uiType {
	case models.UITypeRadio, models.UITypeSelect:
		switch keyMsg.String() {
		case "left", "h":
			f.cycleOption(field, -1)
		case "right", "l", "enter", " ":
			f.cycleOption(field, 1)
		}
		return nil

	case models.UITypeCheckbox:
		switch keyMsg.String() {
		case " ", "enter", "x":
			field.checked = !field.checked
			f.registry.UpdateValue(field.name, field.checked)
		}
		return nil

	case models.UITypeDate:
		if keyMsg.String() == "enter" {
			f.resolveDateField(field)
			return nil
		}
		return f.updateTextInput(field, msg)

	default:
		return f.updateTextInput(field, msg)
	}
}

func (f *VariableForm) updateTextInput(field *varField, msg tea.Msg) tea.Cmd {
	switch field.uiType {
	case models.UITypeRadio, models.UITypeSelect, models.UITypeCheckbox:
		return nil
	}

	var cmd tea.Cmd
	field.input, cmd = field.input.Update(msg)

	switch field.uiType {
	case models.UITypeNumber:
		raw := field.input.Value()
		if raw == "" {
			// an emptied field must not keep rendering the old number
			f.registry.UpdateValue(field.name, "")
			field.errMsg = ""
		} else if n, err := strconv.ParseFloat(raw, 64); err == nil {
			f.registry.UpdateValue(field.name, n)
			field.errMsg = ""
		} else {
			field.errMsg = "not a number"
		}
	case models.UITypeDate:
		// value committed on enter via resolveDateField
	default:
		f.registry.UpdateValue(field.name, field.input.Value())
	}
	return cmd
}

// resolveDateField runs the typed phrase through the date resolver and
// commits the rendered value on success
func (f *VariableForm) resolveDateField(field *varField) {
	cfg, ok := f.registry.Get(field.name)
	if !ok {
		return
	}

	res := dates.Resolve(field.input.Value(), cfg.DateFormat)
	if res.Err != nil {
		field.errMsg = res.Err.Error()
		return
	}
	field.errMsg = ""
	field.input.SetValue(res.Value)

	raw := strings.TrimSpace(field.input.Value())
	var value any = res.Value
	f.registry.UpdateConfig(field.name, registry.Patch{
		CurrentValue:         &value,
		NaturalLanguageInput: &raw,
	})
}

func (f *VariableForm) cycleOption(field *varField, delta int) {
	if len(field.options) == 0 {
		return
	}
	field.optionIndex = (field.optionIndex + delta + len(field.options)) % len(field.options)
	f.registry.UpdateValue(field.name, optionValue(field.options[field.optionIndex]))
}

// FocusedName returns the name of the currently focused variable
func (f *VariableForm) FocusedName() string {
	if f.focused < 0 || f.focused >= len(f.fields) {
		return ""
	}
	return f.fields[f.focused].name
}

func (f *VariableForm) nextField() {
	f.focused = (f.focused + 1) % len(f.fields)
	f.applyFocus()
}

func (f *VariableForm) prevField() {
	f.focused = (f.focused - 1 + len(f.fields)) % len(f.fields)
	f.applyFocus()
}

func (f *VariableForm) applyFocus() {
	for i, field := range f.fields {
		switch field.uiType {
		case models.UITypeRadio, models.UITypeSelect, models.UITypeCheckbox:
			continue
		}
		if i == f.focused {
			field.input.Focus()
		} else {
			field.input.Blur()
		}
	}
}

// View renders the form
func (f *VariableForm) View() string {
	if len(f.fields) == 0 {
		return mutedStyle.Render("This template has no variables.")
	}

	var b strings.Builder
	for i, field := range f.fields {
		label := field.name
		if i == f.focused {
			b.WriteString(focusedStyle.Render("▸ " + label))
		} else {
			b.WriteString(labelStyle.Render("  " + label))
		}
		b.WriteString(badgeStyle.Render("  [" + string(field.uiType) + "]"))
		b.WriteString("\n")

		b.WriteString("  " + f.widgetView(field))
		if field.errMsg != "" {
			b.WriteString("  " + errorStyle.Render(field.errMsg))
		}
		b.WriteString("\n\n")
	}
	return b.String()
}

func (f *VariableForm) widgetView(field *varField) string {
	switch field.uiType {
	case models.UITypeRadio, models.UITypeSelect:
		if len(field.options) == 0 {
			return mutedStyle.Render("(no options)")
		}
		parts := make([]string, len(field.options))
		for i, opt := range field.options {
			label := optionLabel(opt)
			if i == field.optionIndex {
				parts[i] = focusedStyle.Render("(•) " + label)
			} else {
				parts[i] = mutedStyle.Render("( ) " + label)
			}
		}
		return strings.Join(parts, "  ")

	case models.UITypeCheckbox:
		if field.checked {
			return focusedStyle.Render("[x] yes")
		}
		return mutedStyle.Render("[ ] no")

	default:
		return field.input.View()
	}
}

// optionValue unwraps a {value, label} object to its value; primitives pass
// through
func optionValue(opt any) any {
	if obj, ok := opt.(map[string]any); ok {
		if v, ok := obj["value"]; ok {
			return v
		}
	}
	return opt
}

// optionLabel picks the display text for an option
func optionLabel(opt any) string {
	if obj, ok := opt.(map[string]any); ok {
		if l, ok := obj["label"]; ok {
			return valueString(l)
		}
		if v, ok := obj["value"]; ok {
			return valueString(v)
		}
	}
	return valueString(opt)
}

func indexOfOption(options []any, value any) int {
	for i, opt := range options {
		if valueString(optionValue(opt)) == valueString(value) {
			return i
		}
	}
	return 0
}

func valueString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
