package organize

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/geoshelf/geoshelf/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func fixtureResult(t *testing.T, dir, name string, format model.FileFormat, category string) model.ClassificationResult {
	t.Helper()
	path := filepath.Join(dir, name)
	writeFixture(t, path, "fixture: "+name)
	return model.ClassificationResult{
		Metadata: model.FileMetadata{Path: path, Name: name, Format: format},
		Category: category,
	}
}

func TestExecute_CopiesFilesAndCreatesStructure(t *testing.T) {
	srcDir := t.TempDir()
	destRoot := filepath.Join(t.TempDir(), "organized")

	o := New()
	plan, err := o.Plan([]model.ClassificationResult{
		fixtureResult(t, srcDir, "roads.shp", model.FormatShapefile, "transportation"),
		fixtureResult(t, srcDir, "dem.tif", model.FormatGeoTIFF, "elevation"),
	}, TemplateStandard, destRoot)
	require.NoError(t, err)

	result := o.Execute(plan, false)

	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Successful)
	assert.Zero(t, result.Failed)
	assert.False(t, result.Timestamp.IsZero())

	// Copied datasets.
	assert.FileExists(t, filepath.Join(destRoot, "vector", "transportation", "roads.shp"))
	assert.FileExists(t, filepath.Join(destRoot, "raster", "elevation", "dem.tif"))

	// Template folders exist even when no operation targets them.
	assert.DirExists(t, filepath.Join(destRoot, "output", "maps"))
	assert.DirExists(t, filepath.Join(destRoot, "metadata"))

	// Sources are untouched.
	assert.FileExists(t, filepath.Join(srcDir, "roads.shp"))
}

func TestExecute_DryRunLeavesFilesystemUnchanged(t *testing.T) {
	srcDir := t.TempDir()
	destRoot := filepath.Join(t.TempDir(), "organized")

	o := New()
	plan, err := o.Plan([]model.ClassificationResult{
		fixtureResult(t, srcDir, "rivers.geojson", model.FormatGeoJSON, "hydrography"),
	}, TemplateFlat, destRoot)
	require.NoError(t, err)

	result := o.Execute(plan, true)

	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Successful)
	assert.Contains(t, result.Message, "[DRY RUN]")

	// Nothing was created, not even the destination root.
	assert.NoDirExists(t, destRoot)
}

func TestExecute_ContinuesAfterFailedOperation(t *testing.T) {
	srcDir := t.TempDir()
	destRoot := filepath.Join(t.TempDir(), "organized")

	good := fixtureResult(t, srcDir, "lakes.shp", model.FormatShapefile, "hydrography")
	missing := model.ClassificationResult{
		Metadata: model.FileMetadata{
			Path:   filepath.Join(srcDir, "gone.shp"),
			Name:   "gone.shp",
			Format: model.FormatShapefile,
		},
		Category: "hydrography",
	}

	o := New()
	plan, err := o.Plan([]model.ClassificationResult{missing, good}, TemplateFlat, destRoot)
	require.NoError(t, err)

	result := o.Execute(plan, false)

	assert.False(t, result.Success)
	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 1, result.Failed)
	assert.Contains(t, result.Message, "1 errors")

	// The failure did not abort the remaining operation.
	assert.FileExists(t, filepath.Join(destRoot, "hydrography", "lakes.shp"))
}

func TestExecute_DirectoryDatasetReplacesExistingDestination(t *testing.T) {
	srcDir := t.TempDir()
	destRoot := filepath.Join(t.TempDir(), "organized")

	gdb := filepath.Join(srcDir, "survey.gdb")
	writeFixture(t, filepath.Join(gdb, "a00000001.gdbtable"), "table data")
	writeFixture(t, filepath.Join(gdb, "timestamps"), "ts")

	result := model.ClassificationResult{
		Metadata: model.FileMetadata{Path: gdb, Name: "survey.gdb", Format: model.FormatGeodatabase},
		Category: "basemaps",
	}

	o := New()
	plan, err := o.Plan([]model.ClassificationResult{result}, TemplateFlat, destRoot)
	require.NoError(t, err)

	// Pre-existing stale destination directory gets replaced wholesale.
	stale := plan.Operations[0].Destination
	writeFixture(t, filepath.Join(stale, "stale.gdbtable"), "old")

	execResult := o.Execute(plan, false)

	assert.True(t, execResult.Success)
	assert.FileExists(t, filepath.Join(stale, "a00000001.gdbtable"))
	assert.FileExists(t, filepath.Join(stale, "timestamps"))
	assert.NoFileExists(t, filepath.Join(stale, "stale.gdbtable"))
}

func TestExecute_PreservesFileMode(t *testing.T) {
	srcDir := t.TempDir()
	destRoot := filepath.Join(t.TempDir(), "organized")

	src := filepath.Join(srcDir, "contours.geojson")
	writeFixture(t, src, "{}")
	require.NoError(t, os.Chmod(src, 0o640))

	o := New()
	plan, err := o.Plan([]model.ClassificationResult{{
		Metadata: model.FileMetadata{Path: src, Name: "contours.geojson", Format: model.FormatGeoJSON},
		Category: "elevation",
	}}, TemplateFlat, destRoot)
	require.NoError(t, err)

	result := o.Execute(plan, false)
	require.True(t, result.Success)

	info, err := os.Stat(filepath.Join(destRoot, "elevation", "contours.geojson"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}
