package storage

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/t02uk/tttttemplate/internal/models"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	s, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("NewStorage failed: %v", err)
	}
	if err := s.InitLibrary(); err != nil {
		t.Fatalf("InitLibrary failed: %v", err)
	}
	return s
}

func sampleTemplate() *models.Template {
	now := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)
	return &models.Template{
		ID:      "greeting",
		Name:    "Greeting",
		Content: "Hello {{name}}, due {{due}}",
		Variables: []models.VariableConfig{
			{
				Name:            "name",
				DefaultFunction: `"name"`,
				UIType:          models.UITypeText,
				CurrentValue:    "",
			},
			{
				Name:                 "due",
				DefaultFunction:      `"next Monday"`,
				UIType:               models.UITypeDate,
				CurrentValue:         "2025/03/03",
				DateFormat:           models.DefaultDateFormat,
				NaturalLanguageInput: "next Monday",
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStorage(t)
	want := sampleTemplate()

	if err := s.SaveTemplate(want); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}

	got, err := s.LoadTemplate("greeting")
	if err != nil {
		t.Fatalf("LoadTemplate failed: %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestListTemplates(t *testing.T) {
	s := newTestStorage(t)

	first := sampleTemplate()
	second := sampleTemplate()
	second.ID = "other"
	second.Name = "Other"
	second.UpdatedAt = second.UpdatedAt.Add(time.Hour)

	for _, tmpl := range []*models.Template{first, second} {
		if err := s.SaveTemplate(tmpl); err != nil {
			t.Fatalf("SaveTemplate failed: %v", err)
		}
	}

	templates, err := s.ListTemplates()
	if err != nil {
		t.Fatalf("ListTemplates failed: %v", err)
	}
	if len(templates) != 2 {
		t.Fatalf("got %d templates, want 2", len(templates))
	}
	// Most recently updated first
	if templates[0].ID != "other" {
		t.Errorf("first listed = %s, want other", templates[0].ID)
	}
}

func TestDeleteTemplate(t *testing.T) {
	s := newTestStorage(t)
	tmpl := sampleTemplate()

	if err := s.SaveTemplate(tmpl); err != nil {
		t.Fatalf("SaveTemplate failed: %v", err)
	}
	if err := s.DeleteTemplate(tmpl.ID); err != nil {
		t.Fatalf("DeleteTemplate failed: %v", err)
	}
	if _, err := s.LoadTemplate(tmpl.ID); err == nil {
		t.Error("expected error loading deleted template")
	}
}

func TestLoadMissingTemplate(t *testing.T) {
	s := newTestStorage(t)
	if _, err := s.LoadTemplate("ghost"); err == nil {
		t.Error("expected error for missing template")
	}
}
