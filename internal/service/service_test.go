package service

import (
	"testing"

	"github.com/t02uk/tttttemplate/internal/models"
	"github.com/t02uk/tttttemplate/internal/registry"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc, err := NewServiceWithDir(t.TempDir())
	if err != nil {
		t.Fatalf("NewServiceWithDir failed: %v", err)
	}
	if err := svc.InitLibrary(); err != nil {
		t.Fatalf("InitLibrary failed: %v", err)
	}
	return svc
}

func TestCreateTemplateDerivesVariables(t *testing.T) {
	svc := newTestService(t)

	tmpl := svc.CreateTemplate("Greeting", "Hi {{user}}, due {{due}}")
	if tmpl.ID == "" {
		t.Error("expected a generated ID")
	}
	if len(tmpl.Variables) != 2 {
		t.Fatalf("got %d variables, want 2", len(tmpl.Variables))
	}
	if tmpl.Variables[0].Name != "user" || tmpl.Variables[1].Name != "due" {
		t.Errorf("unexpected variable order: %+v", tmpl.Variables)
	}
	if tmpl.Variables[0].UIType != models.UITypeText {
		t.Errorf("new variables should default to text, got %v", tmpl.Variables[0].UIType)
	}
}

func TestSaveAndListTemplates(t *testing.T) {
	svc := newTestService(t)

	tmpl := svc.CreateTemplate("Greeting", "Hello {{name}}")
	if err := svc.SaveTemplate(tmpl); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}

	templates, err := svc.ListTemplates()
	if err != nil {
		t.Fatalf("ListTemplates failed: %v", err)
	}
	if len(templates) != 1 || templates[0].Name != "Greeting" {
		t.Errorf("unexpected templates: %+v", templates)
	}
}

func TestSaveTemplateRejectsInvalid(t *testing.T) {
	svc := newTestService(t)

	tmpl := svc.CreateTemplate("", "Hello {{name}}")
	if err := svc.SaveTemplate(tmpl); err == nil {
		t.Error("expected validation error for empty name")
	}
}

func TestSearchTemplates(t *testing.T) {
	svc := newTestService(t)

	for _, name := range []string{"Meeting notes", "Daily standup", "Invoice"} {
		tmpl := svc.CreateTemplate(name, "{{body}}")
		if err := svc.SaveTemplate(tmpl); err != nil {
			t.Fatalf("SaveTemplate failed: %v", err)
		}
	}

	results, err := svc.SearchTemplates("invoce")
	if err != nil {
		t.Fatalf("SearchTemplates failed: %v", err)
	}
	if len(results) != 1 || results[0].Name != "Invoice" {
		t.Errorf("fuzzy search results: %+v", results)
	}

	all, err := svc.SearchTemplates("")
	if err != nil {
		t.Fatalf("SearchTemplates failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("empty query should return all templates, got %d", len(all))
	}
}

func TestOpenTemplateSeedsRegistry(t *testing.T) {
	svc := newTestService(t)

	tmpl := svc.CreateTemplate("Greeting", "Hello {{name}}")
	var value any = "Alice"
	reg := registry.New()
	reg.Load(tmpl.Variables)
	reg.UpdateConfig("name", registry.Patch{CurrentValue: &value})
	tmpl.Variables = reg.Variables()

	if err := svc.SaveTemplate(tmpl); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}

	_, opened, err := svc.OpenTemplate(tmpl.ID)
	if err != nil {
		t.Fatalf("OpenTemplate failed: %v", err)
	}
	if opened.Values()["name"] != "Alice" {
		t.Errorf("live value = %v, want Alice", opened.Values()["name"])
	}
}

func TestRenderTemplate(t *testing.T) {
	svc := newTestService(t)

	tmpl := svc.CreateTemplate("Greeting", "Hello {{name}}, due {{due}}")
	out := svc.RenderTemplate(tmpl, models.VariableValue{"name": "Alice"})
	if out != "Hello Alice, due {{due}}" {
		t.Errorf("rendered = %q", out)
	}
}

func TestDeleteTemplate(t *testing.T) {
	svc := newTestService(t)

	tmpl := svc.CreateTemplate("Greeting", "Hello {{name}}")
	if err := svc.SaveTemplate(tmpl); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}
	if err := svc.DeleteTemplate(tmpl.ID); err != nil {
		t.Fatalf("DeleteTemplate failed: %v", err)
	}
	if _, err := svc.GetTemplate(tmpl.ID); err == nil {
		t.Error("expected error for deleted template")
	}
}
