// Package service provides business logic for template management
package service

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/sahilm/fuzzy"

	"github.com/t02uk/tttttemplate/internal/errors"
	"github.com/t02uk/tttttemplate/internal/models"
	"github.com/t02uk/tttttemplate/internal/registry"
	"github.com/t02uk/tttttemplate/internal/renderer"
	"github.com/t02uk/tttttemplate/internal/storage"
	"github.com/t02uk/tttttemplate/internal/validation"
)

// Service provides business logic for template management
type Service struct {
	storage   *storage.Storage
	templates []*models.Template // cached for fast list/search access
}

// NewService creates a new service instance. The library root comes from
// TTTTEMPLATE_DIR when set.
func NewService() (*Service, error) {
	rootPath := os.Getenv("TTTTEMPLATE_DIR")
	return NewServiceWithDir(rootPath)
}

// NewServiceWithDir creates a service over an explicit library root
func NewServiceWithDir(rootPath string) (*Service, error) {
	store, err := storage.NewStorage(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return &Service{storage: store}, nil
}

// InitLibrary creates the library directory structure
func (s *Service) InitLibrary() error {
	if err := s.storage.InitLibrary(); err != nil {
		return errors.StorageError("init library", err)
	}
	return nil
}

// ListTemplates returns all templates, most recently updated first
func (s *Service) ListTemplates() ([]*models.Template, error) {
	if s.templates != nil {
		return s.templates, nil
	}
	templates, err := s.storage.ListTemplates()
	if err != nil {
		return nil, errors.StorageError("list templates", err)
	}
	s.templates = templates
	return templates, nil
}

// templateSource adapts cached templates for fuzzy matching
type templateSource []*models.Template

func (ts templateSource) String(i int) string {
	return ts[i].Name + " " + ts[i].ID
}

func (ts templateSource) Len() int {
	return len(ts)
}

// SearchTemplates performs a fuzzy search over template names and IDs
func (s *Service) SearchTemplates(query string) ([]*models.Template, error) {
	templates, err := s.ListTemplates()
	if err != nil {
		return nil, err
	}
	if query == "" {
		return templates, nil
	}

	matches := fuzzy.FindFrom(query, templateSource(templates))
	results := make([]*models.Template, len(matches))
	for i, m := range matches {
		results[i] = templates[m.Index]
	}
	return results, nil
}

// GetTemplate loads a template by ID
func (s *Service) GetTemplate(id string) (*models.Template, error) {
	template, err := s.storage.LoadTemplate(id)
	if err != nil {
		return nil, errors.NotFoundError("template", id)
	}
	return template, nil
}

// CreateTemplate builds a new template record from a name and content. The
// variable configurations are derived from the placeholders in the content.
func (s *Service) CreateTemplate(name, content string) *models.Template {
	reg := registry.New()
	reg.Reconcile(content)

	now := time.Now()
	return &models.Template{
		ID:        uuid.NewString(),
		Name:      name,
		Content:   content,
		Variables: reg.Variables(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SaveTemplate validates and persists a template, refreshing timestamps
func (s *Service) SaveTemplate(template *models.Template) error {
	if result := validation.ValidateTemplate(template); !result.Valid {
		return result.ToAppError()
	}

	now := time.Now()
	if template.CreatedAt.IsZero() {
		template.CreatedAt = now
	}
	template.UpdatedAt = now

	if err := s.storage.SaveTemplate(template); err != nil {
		return errors.StorageError("save template", err)
	}

	s.templates = nil // invalidate cache
	return nil
}

// DeleteTemplate removes a template from the library
func (s *Service) DeleteTemplate(id string) error {
	if err := s.storage.DeleteTemplate(id); err != nil {
		return errors.StorageError("delete template", err)
	}
	s.templates = nil
	return nil
}

// OpenTemplate loads a template and seeds a variable registry from its stored
// configuration, re-resolving natural-language dates to the current clock
func (s *Service) OpenTemplate(id string) (*models.Template, *registry.Registry, error) {
	template, err := s.GetTemplate(id)
	if err != nil {
		return nil, nil, err
	}

	reg := registry.New()
	reg.Load(template.Variables)
	reg.Reconcile(template.Content)

	return template, reg, nil
}

// RenderTemplate substitutes values into the template content, leaving
// unbound placeholders verbatim
func (s *Service) RenderTemplate(template *models.Template, values models.VariableValue) string {
	return renderer.Render(template.Content, values)
}
