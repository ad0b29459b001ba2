// Package organize plans and executes the reorganization of classified
// datasets into a target folder layout.
package organize

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/geoshelf/geoshelf/internal/common"
	"github.com/geoshelf/geoshelf/internal/model"
)

// Template names with dedicated placement policies.
const (
	TemplateStandard = "Standard GIS Project"
	TemplateFlat     = "Simple Flat Structure"
)

// Organizer holds the loaded templates and plans/executes organization runs.
type Organizer struct {
	templates []model.OrganizationTemplate
}

// New creates an organizer loaded with the built-in templates.
func New() *Organizer {
	return &Organizer{templates: DefaultTemplates()}
}

// DefaultTemplates returns the built-in organization templates.
func DefaultTemplates() []model.OrganizationTemplate {
	return []model.OrganizationTemplate{
		{
			Name:        TemplateStandard,
			Description: "Standard GIS project organization with separate folders for vector, raster, and output data",
			FolderStructure: model.FolderTree{Roots: []*model.FolderNode{
				{Name: "vector", Children: []*model.FolderNode{
					{Name: "basemaps"},
					{Name: "transportation"},
					{Name: "points_of_interest"},
					{Name: "hydrography"},
					{Name: "boundaries"},
					{Name: "other"},
				}},
				{Name: "raster", Children: []*model.FolderNode{
					{Name: "elevation"},
					{Name: "imagery"},
					{Name: "land_cover"},
					{Name: "other"},
				}},
				{Name: "output", Children: []*model.FolderNode{
					{Name: "maps"},
					{Name: "analysis"},
					{Name: "exports"},
				}},
				{Name: "metadata"},
				{Name: "documentation"},
			}},
		},
		{
			Name:        TemplateFlat,
			Description: "Simple flat organization with categories as folders",
			FolderStructure: model.FolderTree{Roots: []*model.FolderNode{
				{Name: "basemaps"},
				{Name: "transportation"},
				{Name: "points_of_interest"},
				{Name: "hydrography"},
				{Name: "elevation"},
				{Name: "land_cover"},
				{Name: "imagery"},
				{Name: "other"},
			}},
		},
	}
}

// Templates returns the loaded templates in load order.
func (o *Organizer) Templates() []model.OrganizationTemplate {
	out := make([]model.OrganizationTemplate, len(o.templates))
	copy(out, o.templates)
	return out
}

// Template returns the template with the given name.
func (o *Organizer) Template(name string) (model.OrganizationTemplate, error) {
	for _, t := range o.templates {
		if t.Name == name {
			return t, nil
		}
	}
	return model.OrganizationTemplate{}, fmt.Errorf("%w: %q", common.ErrTemplateNotFound, name)
}

// LoadTemplates reads additional template definitions from a JSON file and
// appends them to the loaded set.
func (o *Organizer) LoadTemplates(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read templates file: %w", err)
	}

	var templates []model.OrganizationTemplate
	if err := json.Unmarshal(data, &templates); err != nil {
		return fmt.Errorf("failed to parse templates file: %w", err)
	}

	for i := range templates {
		if templates[i].Name == "" {
			templates[i].Name = "Custom Template"
		}
	}
	o.templates = append(o.templates, templates...)

	slog.Info("Loaded custom organization templates", "count", len(templates), "path", path)
	return nil
}

// SaveTemplate upserts a template by name into a JSON templates file,
// creating the file when absent.
func (o *Organizer) SaveTemplate(template model.OrganizationTemplate, path string) error {
	var templates []model.OrganizationTemplate

	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &templates); err != nil {
			return fmt.Errorf("failed to parse existing templates file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read templates file: %w", err)
	}

	replaced := false
	for i, existing := range templates {
		if existing.Name == template.Name {
			templates[i] = template
			replaced = true
			break
		}
	}
	if !replaced {
		templates = append(templates, template)
	}

	data, err := json.MarshalIndent(templates, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode templates: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write templates file: %w", err)
	}

	slog.Info("Saved organization template", "name", template.Name, "path", path)
	return nil
}
