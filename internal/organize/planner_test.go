package organize

import (
	"path/filepath"
	"testing"

	"github.com/geoshelf/geoshelf/internal/common"
	"github.com/geoshelf/geoshelf/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func classified(name string, format model.FileFormat, category string) model.ClassificationResult {
	return model.ClassificationResult{
		Metadata: model.FileMetadata{
			Path:   filepath.Join("/data", name),
			Name:   name,
			Format: format,
		},
		Category:   category,
		Confidence: 0.7,
	}
}

func TestPlan_UnknownTemplate(t *testing.T) {
	o := New()
	_, err := o.Plan(nil, "No Such Template", "/dest")
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrTemplateNotFound)
}

func TestPlan_EmptyBatch(t *testing.T) {
	o := New()
	plan, err := o.Plan(nil, TemplateStandard, "/dest")
	require.NoError(t, err)
	assert.Empty(t, plan.Operations)
	assert.Empty(t, plan.Collisions)
	assert.Equal(t, TemplateStandard, plan.Template.Name)
}

func TestPlan_StandardTemplatePlacement(t *testing.T) {
	tests := []struct {
		name     string
		result   model.ClassificationResult
		wantDest string
	}{
		{
			name:     "vector format in declared category",
			result:   classified("roads.shp", model.FormatShapefile, "transportation"),
			wantDest: filepath.Join("/dest", "vector", "transportation", "roads.shp"),
		},
		{
			name:     "raster format in declared category",
			result:   classified("dem.tif", model.FormatGeoTIFF, "elevation"),
			wantDest: filepath.Join("/dest", "raster", "elevation", "dem.tif"),
		},
		{
			name:     "unrecognized format defaults to vector",
			result:   classified("scene.kml", model.FormatKML, "transportation"),
			wantDest: filepath.Join("/dest", "vector", "transportation", "scene.kml"),
		},
		{
			name:     "undeclared category lands in other",
			result:   classified("parcels.shp", model.FormatShapefile, "cadastre"),
			wantDest: filepath.Join("/dest", "vector", "other", "parcels.shp"),
		},
		{
			name:     "unclassified raster lands in raster other",
			result:   classified("scan.tif", model.FormatGeoTIFF, "unclassified"),
			wantDest: filepath.Join("/dest", "raster", "other", "scan.tif"),
		},
	}

	o := New()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := o.Plan([]model.ClassificationResult{tt.result}, TemplateStandard, "/dest")
			require.NoError(t, err)
			require.Len(t, plan.Operations, 1)

			op := plan.Operations[0]
			assert.Equal(t, model.OperationMove, op.Kind)
			assert.Equal(t, tt.result.Metadata.Path, op.Source)
			assert.Equal(t, tt.wantDest, op.Destination)
			assert.Equal(t, tt.result.Category, op.Category)
		})
	}
}

func TestPlan_FlatTemplatePlacement(t *testing.T) {
	o := New()

	plan, err := o.Plan([]model.ClassificationResult{
		classified("rivers.shp", model.FormatShapefile, "hydrography"),
		classified("soil.shp", model.FormatShapefile, "pedology"),
	}, TemplateFlat, "/dest")
	require.NoError(t, err)
	require.Len(t, plan.Operations, 2)

	assert.Equal(t, filepath.Join("/dest", "hydrography", "rivers.shp"), plan.Operations[0].Destination)
	assert.Equal(t, filepath.Join("/dest", "other", "soil.shp"), plan.Operations[1].Destination)
}

func TestPlan_CustomTemplateUsesCategoryDirectly(t *testing.T) {
	o := New()
	o.templates = append(o.templates, model.OrganizationTemplate{
		Name:        "Archive",
		Description: "archival layout",
		FolderStructure: model.FolderTree{Roots: []*model.FolderNode{
			{Name: "incoming"},
		}},
	})

	plan, err := o.Plan([]model.ClassificationResult{
		classified("towers.geojson", model.FormatGeoJSON, "utilities"),
	}, "Archive", "/dest")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/dest", "utilities", "towers.geojson"), plan.Operations[0].Destination)
}

func TestPlan_NamingConvention(t *testing.T) {
	o := New()
	o.templates = append(o.templates, model.OrganizationTemplate{
		Name: "Prefixed",
		NamingConvention: &model.NamingConvention{
			Prefix:         "proj",
			CategoryPrefix: true,
		},
	})

	plan, err := o.Plan([]model.ClassificationResult{
		classified("wells.shp", model.FormatShapefile, "hydrography"),
	}, "Prefixed", "/dest")
	require.NoError(t, err)

	// The literal prefix is applied first, then the category is
	// prepended, so the category ends up leading the final name.
	assert.Equal(t,
		filepath.Join("/dest", "hydrography", "hydrography_proj_wells.shp"),
		plan.Operations[0].Destination)
}

func TestPlan_Deterministic(t *testing.T) {
	o := New()
	results := []model.ClassificationResult{
		classified("a.shp", model.FormatShapefile, "basemaps"),
		classified("b.tif", model.FormatGeoTIFF, "elevation"),
		classified("c.geojson", model.FormatGeoJSON, "hydrography"),
	}

	first, err := o.Plan(results, TemplateStandard, "/dest")
	require.NoError(t, err)
	second, err := o.Plan(results, TemplateStandard, "/dest")
	require.NoError(t, err)

	assert.Equal(t, first.Operations, second.Operations)
}

func TestPlan_SurfacesDestinationCollisions(t *testing.T) {
	o := New()

	a := classified("dupe.shp", model.FormatShapefile, "basemaps")
	b := classified("dupe.shp", model.FormatShapefile, "basemaps")
	b.Metadata.Path = "/elsewhere/dupe.shp"

	plan, err := o.Plan([]model.ClassificationResult{a, b}, TemplateFlat, "/dest")
	require.NoError(t, err)

	// Both operations survive; the collision is reported, not resolved.
	require.Len(t, plan.Operations, 2)
	require.Len(t, plan.Collisions, 1)
	assert.Equal(t, filepath.Join("/dest", "basemaps", "dupe.shp"), plan.Collisions[0])
}

func TestPreview(t *testing.T) {
	o := New()
	plan, err := o.Plan([]model.ClassificationResult{
		classified("roads.shp", model.FormatShapefile, "transportation"),
		classified("dem.tif", model.FormatGeoTIFF, "elevation"),
	}, TemplateStandard, "/dest")
	require.NoError(t, err)

	preview := o.Preview(plan)

	assert.Equal(t, TemplateStandard, preview.Template)
	assert.Equal(t, 2, preview.FileCount)
	require.Len(t, preview.Operations, 2)
	assert.Equal(t, filepath.Join("vector", "transportation", "roads.shp"), preview.Operations[0].Destination)
	assert.Equal(t, "transportation", preview.Operations[0].Category)

	vector, ok := preview.FolderStructure["vector"].(map[string]any)
	require.True(t, ok)
	_, ok = vector["transportation"].(map[string]any)
	assert.True(t, ok)
	raster, ok := preview.FolderStructure["raster"].(map[string]any)
	require.True(t, ok)
	_, ok = raster["elevation"].(map[string]any)
	assert.True(t, ok)
}
