package ui

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/t02uk/tttttemplate/internal/clipboard"
	"github.com/t02uk/tttttemplate/internal/models"
	"github.com/t02uk/tttttemplate/internal/registry"
	"github.com/t02uk/tttttemplate/internal/service"
)

// createGlamourRenderer creates a glamour renderer with improved contrast handling
func createGlamourRenderer(wordWrap int) (*glamour.TermRenderer, error) {
	// Check for environment variable override first
	if style := os.Getenv("GLAMOUR_STYLE"); style != "" {
		return glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(wordWrap),
		)
	}

	profile := termenv.ColorProfile()
	hasDarkBg := lipgloss.HasDarkBackground()

	var styleOption glamour.TermRendererOption
	if hasDarkBg {
		switch profile {
		case termenv.TrueColor, termenv.ANSI256:
			styleOption = glamour.WithStandardStyle("dark")
		default:
			styleOption = glamour.WithAutoStyle()
		}
	} else {
		switch profile {
		case termenv.TrueColor, termenv.ANSI256:
			styleOption = glamour.WithStandardStyle("light")
		default:
			styleOption = glamour.WithAutoStyle()
		}
	}

	return glamour.NewTermRenderer(
		styleOption,
		glamour.WithColorProfile(profile),
		glamour.WithWordWrap(wordWrap),
	)
}

// Commands for async operations
type loadCompleteMsg struct {
	templates []*models.Template
	err       error
}

type statusClearMsg struct{}

type copyResultMsg struct {
	status string
	err    error
}

// loadTemplatesCmd loads the template library (fast with cache)
func loadTemplatesCmd(svc *service.Service) tea.Cmd {
	return func() tea.Msg {
		templates, err := svc.ListTemplates()
		if err != nil {
			templates = []*models.Template{}
		}
		return loadCompleteMsg{templates: templates, err: err}
	}
}

func clearStatusCmd() tea.Cmd {
	return tea.Tick(3*time.Second, func(time.Time) tea.Msg {
		return statusClearMsg{}
	})
}

func copyCmd(text string) tea.Cmd {
	return func() tea.Msg {
		status, err := clipboard.CopyWithFallback(text)
		return copyResultMsg{status: status, err: err}
	}
}

// ViewMode represents the current view in the TUI
type ViewMode int

const (
	ViewTemplateList ViewMode = iota
	ViewEditTemplate
	ViewFillVariables
	ViewConfigVariable
	ViewPreview
)

// Editor focus targets
const (
	editFocusName = iota
	editFocusContent
)

// Model is the main TUI model
type Model struct {
	svc      *service.Service
	viewMode ViewMode
	width    int
	height   int

	// template list
	list        list.Model
	searchInput textinput.Model
	searching   bool

	// template editor
	nameInput   textinput.Model
	contentArea textarea.Model
	editFocus   int

	// currently open template and its variable state
	current    *models.Template
	registry   *registry.Registry
	varForm    *VariableForm
	configForm *ConfigForm

	// preview
	preview  viewport.Model
	rendered string

	statusMsg string
	errMsg    string
}

// NewModel creates the initial model
func NewModel(svc *service.Service) Model {
	initializeStyles()

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(ColorPrimary).
		BorderLeftForeground(ColorPrimary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(ColorTextMuted).
		BorderLeftForeground(ColorPrimary)

	l := list.New([]list.Item{}, delegate, 0, 0)
	l.Title = "Templates"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = titleStyle

	search := textinput.New()
	search.Placeholder = "Search templates..."
	search.Width = 40

	name := textinput.New()
	name.Placeholder = "Template name"
	name.CharLimit = 100
	name.Width = 50

	content := textarea.New()
	content.Placeholder = "Write your template here. Use {{name}} for variables."
	content.CharLimit = 0

	return Model{
		svc:         svc,
		viewMode:    ViewTemplateList,
		list:        l,
		searchInput: search,
		nameInput:   name,
		contentArea: content,
		preview:     viewport.New(0, 0),
	}
}

func (m Model) Init() tea.Cmd {
	return loadTemplatesCmd(m.svc)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.list.SetSize(msg.Width-4, msg.Height-6)
		m.contentArea.SetWidth(msg.Width - 8)
		m.contentArea.SetHeight(msg.Height - 12)
		m.preview.Width = msg.Width - 4
		m.preview.Height = msg.Height - 6
		return m, nil

	case loadCompleteMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		}
		m.setListItems(msg.templates)
		return m, nil

	case statusClearMsg:
		m.statusMsg = ""
		return m, nil

	case copyResultMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		} else {
			m.statusMsg = msg.status
		}
		return m, clearStatusCmd()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	switch m.viewMode {
	case ViewTemplateList:
		return m.updateTemplateList(msg)
	case ViewEditTemplate:
		return m.updateEditTemplate(msg)
	case ViewFillVariables:
		return m.updateFillVariables(msg)
	case ViewConfigVariable:
		return m.updateConfigVariable(msg)
	case ViewPreview:
		return m.updatePreview(msg)
	}
	return m, nil
}

func (m Model) updateTemplateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.searching {
			switch keyMsg.String() {
			case "esc":
				m.searching = false
				m.searchInput.Blur()
				m.searchInput.SetValue("")
				return m, loadTemplatesCmd(m.svc)
			case "enter":
				m.searching = false
				m.searchInput.Blur()
				return m, nil
			default:
				var cmd tea.Cmd
				m.searchInput, cmd = m.searchInput.Update(msg)
				results, err := m.svc.SearchTemplates(m.searchInput.Value())
				if err == nil {
					m.setListItems(results)
				}
				return m, cmd
			}
		}

		switch keyMsg.String() {
		case "q":
			return m, tea.Quit
		case "/":
			m.searching = true
			m.searchInput.Focus()
			return m, nil
		case "n":
			return m.startEdit(nil), nil
		case "e":
			if t := m.selectedTemplate(); t != nil {
				return m.startEdit(t), nil
			}
			return m, nil
		case "d":
			if t := m.selectedTemplate(); t != nil {
				if err := m.svc.DeleteTemplate(t.ID); err != nil {
					m.errMsg = err.Error()
				} else {
					m.statusMsg = fmt.Sprintf("Deleted %q", t.Name)
				}
				return m, tea.Batch(loadTemplatesCmd(m.svc), clearStatusCmd())
			}
			return m, nil
		case "r":
			return m, loadTemplatesCmd(m.svc)
		case "enter":
			if t := m.selectedTemplate(); t != nil {
				return m.openTemplate(t.ID)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateEditTemplate(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.viewMode = ViewTemplateList
			return m, loadTemplatesCmd(m.svc)
		case "tab":
			if m.editFocus == editFocusName {
				m.editFocus = editFocusContent
				m.nameInput.Blur()
				m.contentArea.Focus()
			} else {
				m.editFocus = editFocusName
				m.contentArea.Blur()
				m.nameInput.Focus()
			}
			return m, nil
		case "ctrl+s":
			return m.saveEditedTemplate()
		}
	}

	var cmd tea.Cmd
	if m.editFocus == editFocusName {
		m.nameInput, cmd = m.nameInput.Update(msg)
	} else {
		m.contentArea, cmd = m.contentArea.Update(msg)
		// keep the variable set in lockstep with the content
		m.registry.Reconcile(m.contentArea.Value())
	}
	return m, cmd
}

func (m Model) updateFillVariables(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			m.viewMode = ViewTemplateList
			return m, loadTemplatesCmd(m.svc)
		case "ctrl+e":
			name := m.varForm.FocusedName()
			if v, ok := m.registry.Get(name); ok {
				m.configForm = NewConfigForm(v)
				m.viewMode = ViewConfigVariable
			}
			return m, nil
		case "ctrl+r":
			m.registry.RefreshDefaults()
			m.varForm.Rebuild()
			m.statusMsg = "Defaults refreshed"
			return m, clearStatusCmd()
		case "ctrl+p":
			return m.showPreview()
		case "ctrl+y":
			rendered := m.svc.RenderTemplate(m.current, m.registry.Values())
			return m, copyCmd(rendered)
		case "ctrl+s":
			m.current.Variables = m.registry.Variables()
			if err := m.svc.SaveTemplate(m.current); err != nil {
				m.errMsg = err.Error()
			} else {
				m.statusMsg = "Saved"
			}
			return m, clearStatusCmd()
		}
	}

	return m, m.varForm.Update(msg)
}

func (m Model) updateConfigVariable(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
		m.configForm = nil
		m.viewMode = ViewFillVariables
		return m, nil
	}

	cmd := m.configForm.Update(msg)
	if m.configForm.IsSubmitted() {
		if err := m.configForm.Apply(m.registry); err == nil {
			m.configForm = nil
			m.varForm.Rebuild()
			m.viewMode = ViewFillVariables
			m.statusMsg = "Variable configured"
			return m, clearStatusCmd()
		}
	}
	return m, cmd
}

func (m Model) updatePreview(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc", "q":
			m.viewMode = ViewFillVariables
			return m, nil
		case "ctrl+y":
			return m, copyCmd(m.rendered)
		}
	}

	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

// startEdit switches into the editor, seeded from the given template or empty
// for a new one
func (m Model) startEdit(t *models.Template) Model {
	m.current = t
	m.registry = registry.New()

	if t != nil {
		m.nameInput.SetValue(t.Name)
		m.contentArea.SetValue(t.Content)
		m.registry.Load(t.Variables)
		m.registry.Reconcile(t.Content)
	} else {
		m.nameInput.SetValue("")
		m.contentArea.SetValue("")
	}

	m.editFocus = editFocusName
	m.contentArea.Blur()
	m.nameInput.Focus()
	m.viewMode = ViewEditTemplate
	return m
}

func (m Model) saveEditedTemplate() (tea.Model, tea.Cmd) {
	m.registry.Reconcile(m.contentArea.Value())
	m.registry.RefreshDefaults()

	if m.current == nil {
		m.current = m.svc.CreateTemplate(m.nameInput.Value(), m.contentArea.Value())
	} else {
		m.current.Name = m.nameInput.Value()
		m.current.Content = m.contentArea.Value()
	}
	m.current.Variables = m.registry.Variables()

	if err := m.svc.SaveTemplate(m.current); err != nil {
		m.errMsg = err.Error()
		return m, nil
	}

	m.errMsg = ""
	m.statusMsg = fmt.Sprintf("Saved %q", m.current.Name)
	m.viewMode = ViewTemplateList
	return m, tea.Batch(loadTemplatesCmd(m.svc), clearStatusCmd())
}

// openTemplate loads a template into the fill view with a fresh registry
func (m Model) openTemplate(id string) (tea.Model, tea.Cmd) {
	template, reg, err := m.svc.OpenTemplate(id)
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}

	m.current = template
	m.registry = reg
	m.varForm = NewVariableForm(reg)
	m.errMsg = ""
	m.viewMode = ViewFillVariables
	return m, nil
}

func (m Model) showPreview() (tea.Model, tea.Cmd) {
	m.rendered = m.svc.RenderTemplate(m.current, m.registry.Values())

	wrap := m.width - 8
	if wrap < 20 {
		wrap = 60
	}
	renderer, err := createGlamourRenderer(wrap)
	if err != nil {
		m.errMsg = err.Error()
		return m, nil
	}

	out, err := renderer.Render(m.rendered)
	if err != nil {
		out = m.rendered
	}
	m.preview.SetContent(out)
	m.preview.GotoTop()
	m.viewMode = ViewPreview
	return m, nil
}

func (m *Model) setListItems(templates []*models.Template) {
	items := make([]list.Item, len(templates))
	for i, t := range templates {
		items[i] = t
	}
	m.list.SetItems(items)
}

func (m Model) selectedTemplate() *models.Template {
	item := m.list.SelectedItem()
	if t, ok := item.(*models.Template); ok {
		return t
	}
	return nil
}

func (m Model) View() string {
	var body string

	switch m.viewMode {
	case ViewTemplateList:
		body = m.viewTemplateList()
	case ViewEditTemplate:
		body = m.viewEditTemplate()
	case ViewFillVariables:
		body = m.viewFillVariables()
	case ViewConfigVariable:
		body = m.configForm.View()
	case ViewPreview:
		body = m.viewPreview()
	}

	return body + m.statusLine()
}

func (m Model) viewTemplateList() string {
	var b strings.Builder
	if m.searching {
		b.WriteString(m.searchInput.View() + "\n")
	}
	b.WriteString(m.list.View())
	b.WriteString(helpStyle.Render("enter: fill • n: new • e: edit • d: delete • /: search • q: quit"))
	return b.String()
}

func (m Model) viewEditTemplate() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Edit Template") + "\n\n")

	b.WriteString(labelStyle.Render("Name") + "\n")
	b.WriteString(m.nameInput.View() + "\n\n")

	b.WriteString(labelStyle.Render("Content") + "\n")
	b.WriteString(m.contentArea.View() + "\n")

	names := make([]string, 0)
	for _, v := range m.registry.Variables() {
		names = append(names, v.Name)
	}
	if len(names) > 0 {
		b.WriteString(mutedStyle.Render("Variables: "+strings.Join(names, ", ")) + "\n")
	}

	b.WriteString(helpStyle.Render("ctrl+s: save • tab: switch field • esc: back"))
	return b.String()
}

func (m Model) viewFillVariables() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.current.Name) + "\n\n")
	b.WriteString(m.varForm.View())
	b.WriteString(helpStyle.Render("ctrl+p: preview • ctrl+y: copy • ctrl+e: configure • ctrl+r: refresh defaults • ctrl+s: save • esc: back"))
	return b.String()
}

func (m Model) viewPreview() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Preview: "+m.current.Name) + "\n")
	b.WriteString(paneStyle.Render(m.preview.View()) + "\n")
	b.WriteString(helpStyle.Render("ctrl+y: copy • esc: back"))
	return b.String()
}

func (m Model) statusLine() string {
	if m.errMsg != "" {
		return "\n" + errorStyle.Render(m.errMsg)
	}
	if m.statusMsg != "" {
		return "\n" + statusStyle.Render(m.statusMsg)
	}
	return ""
}
