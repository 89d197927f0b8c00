package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/t02uk/tttttemplate/internal/dates"
	"github.com/t02uk/tttttemplate/internal/evaluator"
	"github.com/t02uk/tttttemplate/internal/models"
	"github.com/t02uk/tttttemplate/internal/registry"
	"github.com/t02uk/tttttemplate/internal/uitype"
)

// Config form field indices
const (
	configFunctionField = iota
	configFormatField
)

// ConfigForm edits one variable's default expression and date format
type ConfigForm struct {
	varName   string
	inputs    []textinput.Model
	focused   int
	submitted bool
	errMsg    string
}

// NewConfigForm builds a config form pre-filled from the variable's current
// configuration
func NewConfigForm(v models.VariableConfig) *ConfigForm {
	inputs := make([]textinput.Model, 2)

	inputs[configFunctionField] = textinput.New()
	inputs[configFunctionField].Placeholder = `"literal" or ["a", "b"] or now()`
	inputs[configFunctionField].SetValue(v.DefaultFunction)
	inputs[configFunctionField].Focus()
	inputs[configFunctionField].CharLimit = 0
	inputs[configFunctionField].Width = 60

	inputs[configFormatField] = textinput.New()
	inputs[configFormatField].Placeholder = models.DefaultDateFormat
	inputs[configFormatField].SetValue(v.DateFormat)
	inputs[configFormatField].CharLimit = 100
	inputs[configFormatField].Width = 40

	return &ConfigForm{
		varName: v.Name,
		inputs:  inputs,
	}
}

// Update handles config form updates
func (f *ConfigForm) Update(msg tea.Msg) tea.Cmd {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "tab", "shift+tab", "up", "down":
			f.inputs[f.focused].Blur()
			f.focused = (f.focused + 1) % len(f.inputs)
			f.inputs[f.focused].Focus()
			return nil
		case "enter", "ctrl+s":
			f.submitted = true
			return nil
		}
	}

	var cmd tea.Cmd
	f.inputs[f.focused], cmd = f.inputs[f.focused].Update(msg)
	return cmd
}

// IsSubmitted returns whether the form has been submitted
func (f *ConfigForm) IsSubmitted() bool {
	return f.submitted
}

// Apply validates the edited configuration and writes it into the registry,
// then replays default evaluation for every variable. Returns an error
// message on rejection; the previous configuration stays in place.
func (f *ConfigForm) Apply(reg *registry.Registry) error {
	f.submitted = false

	fn := strings.TrimSpace(f.inputs[configFunctionField].Value())
	if fn != "" {
		if err := evaluator.Check(fn); err != nil {
			f.errMsg = fmt.Sprintf("expression: %v", err)
			return fmt.Errorf("%s", f.errMsg)
		}
	}

	format := strings.TrimSpace(f.inputs[configFormatField].Value())
	if format != "" {
		if err := dates.ValidateFormat(format); err != nil {
			f.errMsg = err.Error()
			return err
		}
	}

	patch := registry.Patch{DefaultFunction: &fn}

	// The format must ride along with the type the new expression produces,
	// not the stored type: a text variable being configured into a date would
	// otherwise have its format wiped before the refresh reclassifies it.
	detected := models.UITypeText
	if v, ok := reg.Get(f.varName); ok {
		detected = v.UIType
	}
	if fn != "" {
		if value, err := evaluator.Evaluate(fn); err == nil {
			detected = uitype.Detect(value)
		}
	}
	if detected == models.UITypeDate {
		if format == "" {
			format = models.DefaultDateFormat
		}
		patch.UIType = &detected
		patch.DateFormat = &format
	}
	reg.UpdateConfig(f.varName, patch)
	reg.RefreshDefaults()

	f.errMsg = ""
	return nil
}

// View renders the config form with format suggestions
func (f *ConfigForm) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Configure {{" + f.varName + "}}"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Default expression"))
	b.WriteString("\n" + f.inputs[configFunctionField].View() + "\n\n")

	b.WriteString(labelStyle.Render("Date format"))
	b.WriteString(mutedStyle.Render("  (date variables only)"))
	b.WriteString("\n" + f.inputs[configFormatField].View() + "\n")

	if f.errMsg != "" {
		b.WriteString("\n" + errorStyle.Render(f.errMsg) + "\n")
	}

	b.WriteString("\n" + mutedStyle.Render("Format examples:") + "\n")
	for _, ex := range dates.FormatExamples() {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("  %-22s %s\n", ex.Format, ex.Example)))
	}

	b.WriteString(helpStyle.Render("enter: apply • tab: next field • esc: cancel"))
	return b.String()
}
