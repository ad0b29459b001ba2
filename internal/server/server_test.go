package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/geoshelf/geoshelf/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "properties": {"name": "Main Canal"},
      "geometry": {"type": "LineString", "coordinates": [[-120.0, 35.0], [-119.5, 36.0]]}
    }
  ]
}`

func newTestServer(t *testing.T) (*Server, *storage.SQLiteCatalog) {
	t.Helper()
	catalog, err := storage.NewSQLiteCatalog(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	require.NoError(t, catalog.Migrate(context.Background()))
	t.Cleanup(func() { _ = catalog.Close() })
	return New(WithCatalog(catalog)), catalog
}

func doJSON(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	s.Handler().ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
	return payload
}

func TestHealthz(t *testing.T) {
	s, _ := newTestServer(t)
	recorder := doJSON(t, s, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestScanEndpoint(t *testing.T) {
	s, catalog := newTestServer(t)

	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "canal_hydro.geojson"), []byte(testGeoJSON), 0o600))

	recorder := doJSON(t, s, http.MethodPost, "/api/scan", map[string]string{"directory": dataDir})
	require.Equal(t, http.StatusOK, recorder.Code)

	payload := decodeBody(t, recorder)
	assert.Equal(t, float64(1), payload["count"])

	// The scan is persisted with its classification.
	records, err := catalog.ListDatasets(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "canal_hydro.geojson", records[0].Name)
	assert.Equal(t, "hydrography", records[0].Category)
}

func TestScanEndpoint_BadDirectory(t *testing.T) {
	s, _ := newTestServer(t)

	recorder := doJSON(t, s, http.MethodPost, "/api/scan", map[string]string{"directory": "/does/not/exist"})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "Invalid directory path", decodeBody(t, recorder)["error"])
}

func TestClassifyEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	dataDir := t.TempDir()
	path := filepath.Join(dataDir, "streets_road.geojson")
	require.NoError(t, os.WriteFile(path, []byte(testGeoJSON), 0o600))

	recorder := doJSON(t, s, http.MethodPost, "/api/classify", map[string]any{"file_paths": []string{path}})
	require.Equal(t, http.StatusOK, recorder.Code)

	payload := decodeBody(t, recorder)
	classifications, ok := payload["classifications"].(map[string]any)
	require.True(t, ok)
	entry, ok := classifications[path].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "transportation", entry["category"])
}

func TestClassifyEndpoint_NoFiles(t *testing.T) {
	s, _ := newTestServer(t)

	recorder := doJSON(t, s, http.MethodPost, "/api/classify", map[string]any{"file_paths": []string{}})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestOrganizeEndpoint_DryRun(t *testing.T) {
	s, catalog := newTestServer(t)

	sourceDir := t.TempDir()
	targetDir := filepath.Join(t.TempDir(), "organized")
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "wells_hydro.geojson"), []byte(testGeoJSON), 0o600))

	recorder := doJSON(t, s, http.MethodPost, "/api/organize", map[string]any{
		"source_directory": sourceDir,
		"target_directory": targetDir,
		"dry_run":          true,
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	payload := decodeBody(t, recorder)
	assert.Equal(t, true, payload["success"])
	assert.Equal(t, float64(1), payload["organized_files"])
	// Dry run leaves the filesystem untouched.
	assert.NoDirExists(t, targetDir)

	runs, err := catalog.ListRuns(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.True(t, runs[0].DryRun)
}

func TestOrganizeEndpoint_UnknownTemplate(t *testing.T) {
	s, _ := newTestServer(t)

	sourceDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(sourceDir, "a.geojson"), []byte(testGeoJSON), 0o600))

	recorder := doJSON(t, s, http.MethodPost, "/api/organize", map[string]any{
		"source_directory": sourceDir,
		"target_directory": t.TempDir(),
		"template":         "No Such Template",
	})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestMetadataExtractEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	dataDir := t.TempDir()
	path := filepath.Join(dataDir, "wells.geojson")
	require.NoError(t, os.WriteFile(path, []byte(testGeoJSON), 0o600))

	recorder := doJSON(t, s, http.MethodPost, "/api/metadata/extract", map[string]string{"file_path": path})
	require.Equal(t, http.StatusOK, recorder.Code)

	payload := decodeBody(t, recorder)
	meta, ok := payload["metadata"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "wells.geojson", meta["title"])
	assert.Equal(t, "GeoJSON", meta["file_format"])
}

func TestMetadataSaveEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	dataDir := t.TempDir()
	path := filepath.Join(dataDir, "wells.geojson")
	require.NoError(t, os.WriteFile(path, []byte(testGeoJSON), 0o600))

	recorder := doJSON(t, s, http.MethodPost, "/api/metadata/save", map[string]any{
		"file_path": path,
		"format":    "iso",
		"metadata":  map[string]any{"title": "Wells", "abstract": "Test wells."},
	})
	require.Equal(t, http.StatusOK, recorder.Code)

	payload := decodeBody(t, recorder)
	assert.Equal(t, true, payload["success"])

	outputPath, ok := payload["output_path"].(string)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dataDir, "wells_iso.xml"), outputPath)
	assert.FileExists(t, outputPath)
}

func TestRulesAndTemplatesEndpoints(t *testing.T) {
	s, _ := newTestServer(t)

	recorder := doJSON(t, s, http.MethodGet, "/api/rules", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	rules, ok := decodeBody(t, recorder)["rules"].([]any)
	require.True(t, ok)
	assert.Len(t, rules, 6)

	recorder = doJSON(t, s, http.MethodGet, "/api/templates", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	templates, ok := decodeBody(t, recorder)["templates"].([]any)
	require.True(t, ok)
	assert.Len(t, templates, 2)
}

func TestDatasetEndpoints_WithoutCatalog(t *testing.T) {
	s := New()
	recorder := doJSON(t, s, http.MethodGet, "/api/datasets", nil)
	assert.Equal(t, http.StatusNotImplemented, recorder.Code)
}

func TestListDatasetsEndpoint(t *testing.T) {
	s, _ := newTestServer(t)

	dataDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "canal_hydro.geojson"), []byte(testGeoJSON), 0o600))
	recorder := doJSON(t, s, http.MethodPost, "/api/scan", map[string]string{"directory": dataDir})
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doJSON(t, s, http.MethodGet, "/api/datasets?category=hydrography", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, float64(1), decodeBody(t, recorder)["count"])

	recorder = doJSON(t, s, http.MethodGet, "/api/datasets?category=elevation", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, float64(0), decodeBody(t, recorder)["count"])
}
