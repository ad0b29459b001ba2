package organize

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/geoshelf/geoshelf/internal/model"
)

// Plan computes an ordered operation list placing each classified dataset
// into the template's layout under destinationRoot. Planning performs no
// filesystem I/O; identical inputs produce identical plans.
func (o *Organizer) Plan(results []model.ClassificationResult, templateName, destinationRoot string) (*model.OrganizationPlan, error) {
	template, err := o.Template(templateName)
	if err != nil {
		return nil, err
	}

	plan := &model.OrganizationPlan{
		SourceFiles:     results,
		Template:        template,
		DestinationRoot: destinationRoot,
	}

	seen := make(map[string]bool, len(results))
	collided := make(map[string]bool)

	for _, result := range results {
		destFolder := destinationFolder(template, result, destinationRoot)
		destName := destinationName(template, result)
		destination := filepath.Join(destFolder, destName)

		if seen[destination] && !collided[destination] {
			plan.Collisions = append(plan.Collisions, destination)
			collided[destination] = true
		}
		seen[destination] = true

		plan.Operations = append(plan.Operations, model.Operation{
			Kind:        model.OperationMove,
			Source:      result.Metadata.Path,
			Destination: destination,
			Category:    result.Category,
			Metadata:    result.Metadata,
		})
	}

	return plan, nil
}

// destinationFolder applies the template's placement policy.
func destinationFolder(template model.OrganizationTemplate, result model.ClassificationResult, root string) string {
	category := result.Category

	switch template.Name {
	case TemplateStandard:
		// Bucket by format into the vector/raster split. Unrecognized
		// formats fall into vector; this mirrors historical behavior
		// and is not a deliberate classification.
		base := "vector"
		if !model.VectorFormats[result.Metadata.Format] && result.Metadata.Format == model.FormatGeoTIFF {
			base = "raster"
		}

		sub := "other"
		if branch := template.FolderStructure.Root(base); branch != nil && branch.HasChild(category) {
			sub = category
		}
		return filepath.Join(root, base, sub)

	case TemplateFlat:
		if template.FolderStructure.HasRoot(category) {
			return filepath.Join(root, category)
		}
		return filepath.Join(root, "other")

	default:
		// Custom templates place by category regardless of whether the
		// template declares that folder.
		return filepath.Join(root, category)
	}
}

// destinationName applies the template's naming convention: the literal
// prefix first, then the category prefix, yielding
// <category>_<prefix>_<name> order in the final string.
func destinationName(template model.OrganizationTemplate, result model.ClassificationResult) string {
	name := result.Metadata.Name
	nc := template.NamingConvention
	if nc == nil {
		return name
	}
	if nc.Prefix != "" {
		name = fmt.Sprintf("%s_%s", nc.Prefix, name)
	}
	if nc.CategoryPrefix {
		name = fmt.Sprintf("%s_%s", result.Category, name)
	}
	return name
}

// Preview builds a side-effect-free summary of a plan: the folder tree the
// plan would produce plus a flat operation list with destinations relative
// to the destination root.
func (o *Organizer) Preview(plan *model.OrganizationPlan) *model.OrganizationPreview {
	preview := &model.OrganizationPreview{
		Template:        plan.Template.Name,
		DestinationRoot: plan.DestinationRoot,
		FileCount:       len(plan.Operations),
		FolderStructure: make(map[string]any),
		Operations:      make([]model.PreviewOperation, 0, len(plan.Operations)),
	}

	for _, op := range plan.Operations {
		rel, err := filepath.Rel(plan.DestinationRoot, op.Destination)
		if err != nil {
			rel = op.Destination
		}

		current := preview.FolderStructure
		for _, folder := range strings.Split(filepath.Dir(rel), string(filepath.Separator)) {
			if folder == "." || folder == "" {
				continue
			}
			next, ok := current[folder].(map[string]any)
			if !ok {
				next = make(map[string]any)
				current[folder] = next
			}
			current = next
		}

		preview.Operations = append(preview.Operations, model.PreviewOperation{
			Source:      op.Source,
			Destination: rel,
			Category:    op.Category,
		})
	}

	return preview
}
