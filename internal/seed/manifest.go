// Package seed reads the open-data dump manifest and maps dump records onto events.
package seed

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

// FieldMap names the record keys holding each event column.
type FieldMap struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Location    string `yaml:"location"`
	StartDate   string `yaml:"start_date"`
	EndDate     string `yaml:"end_date"`
}

// Source is one JSON dump. Category is either fixed for the whole file or
// read from CategoryField, translated through CategoryMap, with
// DefaultCategory as the fallback.
type Source struct {
	Path            string            `yaml:"path"`
	Fields          FieldMap          `yaml:"fields"`
	Category        string            `yaml:"category"`
	CategoryField   string            `yaml:"category_field"`
	CategoryMap     map[string]string `yaml:"category_map"`
	DefaultCategory string            `yaml:"default_category"`

	// normalized CategoryMap, built when the manifest is parsed
	categoryLookup map[string]string
}

type Manifest struct {
	Sources []Source `yaml:"sources"`
}

// LoadManifest parses a manifest file. Relative source paths are resolved
// against the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed manifest: %w", err)
	}

	manifest, err := ParseManifest(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	base := filepath.Dir(path)
	for i := range manifest.Sources {
		if !filepath.IsAbs(manifest.Sources[i].Path) {
			manifest.Sources[i].Path = filepath.Join(base, manifest.Sources[i].Path)
		}
	}
	return manifest, nil
}

func ParseManifest(data []byte) (*Manifest, error) {
	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("invalid seed manifest: %w", err)
	}

	for i := range manifest.Sources {
		if err := manifest.Sources[i].validate(); err != nil {
			return nil, fmt.Errorf("source %d: %w", i, err)
		}
	}
	return &manifest, nil
}

func (s *Source) validate() error {
	if s.Path == "" {
		return fmt.Errorf("path is required")
	}
	if s.Fields.Title == "" || s.Fields.StartDate == "" || s.Fields.EndDate == "" {
		return fmt.Errorf("%s: fields.title, fields.start_date and fields.end_date are required", s.Path)
	}
	if s.Category == "" && s.CategoryField == "" {
		return fmt.Errorf("%s: one of category or category_field is required", s.Path)
	}

	lookup, err := normalizeCategoryMap(s.CategoryMap)
	if err != nil {
		return fmt.Errorf("%s: %w", s.Path, err)
	}
	s.categoryLookup = lookup
	return nil
}
