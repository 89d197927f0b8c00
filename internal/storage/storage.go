// Package storage persists template records as markdown files with YAML
// frontmatter.
package storage

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/t02uk/tttttemplate/internal/models"
	"gopkg.in/yaml.v3"
)

// Storage handles all file system operations for templates
type Storage struct {
	rootPath string
}

// NewStorage creates a new storage instance rooted at rootPath, defaulting to
// ~/.tttttemplate
func NewStorage(rootPath string) (*Storage, error) {
	if rootPath == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		rootPath = filepath.Join(homeDir, ".tttttemplate")
	}

	return &Storage{rootPath: rootPath}, nil
}

// InitLibrary creates the directory structure for a template library
func (s *Storage) InitLibrary() error {
	dirs := []string{
		s.rootPath,
		filepath.Join(s.rootPath, "templates"),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// GetBaseDir returns the root path of the storage
func (s *Storage) GetBaseDir() string {
	return s.rootPath
}

func (s *Storage) templatePath(id string) string {
	return filepath.Join("templates", id+".md")
}

// SaveTemplate saves a template to a markdown file with YAML frontmatter
func (s *Storage) SaveTemplate(template *models.Template) error {
	if template.FilePath == "" {
		template.FilePath = s.templatePath(template.ID)
	}
	fullPath := filepath.Join(s.rootPath, template.FilePath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	content, err := serializeTemplate(template)
	if err != nil {
		return fmt.Errorf("failed to serialize template: %w", err)
	}

	if err := os.WriteFile(fullPath, content, 0644); err != nil {
		return fmt.Errorf("failed to write template file: %w", err)
	}

	return nil
}

// LoadTemplate loads a template by ID
func (s *Storage) LoadTemplate(id string) (*models.Template, error) {
	path := s.templatePath(id)
	fullPath := filepath.Join(s.rootPath, path)

	content, err := os.ReadFile(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read template file: %w", err)
	}

	template, err := parseTemplateFile(content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	template.FilePath = path
	return template, nil
}

// ListTemplates loads every template in the library, skipping files that fail
// to parse
func (s *Storage) ListTemplates() ([]*models.Template, error) {
	pattern := filepath.Join(s.rootPath, "templates", "*.md")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	templates := make([]*models.Template, 0, len(files))
	for _, file := range files {
		id := strings.TrimSuffix(filepath.Base(file), ".md")
		template, err := s.LoadTemplate(id)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping template %s: %v\n", file, err)
			continue
		}
		templates = append(templates, template)
	}

	sort.Slice(templates, func(i, j int) bool {
		return templates[i].UpdatedAt.After(templates[j].UpdatedAt)
	})

	return templates, nil
}

// DeleteTemplate removes a template file
func (s *Storage) DeleteTemplate(id string) error {
	fullPath := filepath.Join(s.rootPath, s.templatePath(id))
	if err := os.Remove(fullPath); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}
	return nil
}

func parseTemplateFile(content []byte) (*models.Template, error) {
	scanner := bufio.NewScanner(bytes.NewReader(content))

	if !scanner.Scan() || scanner.Text() != "---" {
		return nil, fmt.Errorf("missing frontmatter delimiter")
	}

	var frontmatterLines []string
	for scanner.Scan() {
		line := scanner.Text()
		if line == "---" {
			break
		}
		frontmatterLines = append(frontmatterLines, line)
	}

	var template models.Template
	if err := yaml.Unmarshal([]byte(strings.Join(frontmatterLines, "\n")), &template); err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	var contentLines []string
	for scanner.Scan() {
		contentLines = append(contentLines, scanner.Text())
	}
	template.Content = strings.TrimLeft(strings.Join(contentLines, "\n"), " \t\n")

	return &template, nil
}

func serializeTemplate(template *models.Template) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("---\n")

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(template); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}

	buf.WriteString("---\n")

	if template.Content != "" {
		buf.WriteString("\n")
		buf.WriteString(template.Content)
		if !strings.HasSuffix(template.Content, "\n") {
			buf.WriteString("\n")
		}
	}

	return buf.Bytes(), nil
}
