// Package metadata extracts, merges, validates, auto-completes and exports
// descriptive metadata records for geospatial datasets.
package metadata

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/geoshelf/geoshelf/internal/model"
)

// RawMetadata is the untyped mapping a sidecar parser produces. String
// values carry most fields; bounding-box scalars are float64 and keywords
// a string slice.
type RawMetadata map[string]any

// Manager handles metadata extraction, enhancement and validation.
type Manager struct{}

// NewManager creates a metadata manager.
func NewManager() *Manager {
	return &Manager{}
}

// sidecarExtensions are the filename extensions tried when looking for a
// metadata file sharing the dataset's base name.
var sidecarExtensions = []string{".xml", ".meta", ".metadata"}

// ExtractExisting looks for sidecar metadata for the dataset at path.
// It first tries files sharing the dataset's base name with a metadata
// extension, then scans the sibling directory for any metadata file whose
// parsed content references the dataset by name. Returns nil when nothing
// usable is found; parse failures are logged, never fatal.
func (m *Manager) ExtractExisting(path string) RawMetadata {
	base := strings.TrimSuffix(path, filepath.Ext(path))

	for _, ext := range sidecarExtensions {
		sidecar := base + ext
		if _, err := os.Stat(sidecar); err == nil {
			if raw := parseSidecar(sidecar); raw != nil {
				return raw
			}
		}
	}

	fileName := filepath.Base(path)
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		return nil
	}
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".xml") && !strings.HasSuffix(name, ".meta") {
			continue
		}
		raw := parseSidecar(filepath.Join(filepath.Dir(path), name))
		if raw == nil {
			continue
		}
		if ref, ok := raw["filename"].(string); ok && ref == fileName {
			return raw
		}
	}

	return nil
}

// stringFields maps raw metadata keys to setters on the enhanced record.
// One entry per field keeps the merge contract explicit and statically
// checkable.
var stringFields = map[string]func(*model.EnhancedMetadata, string){
	"title":                func(e *model.EnhancedMetadata, v string) { e.Title = v },
	"abstract":             func(e *model.EnhancedMetadata, v string) { e.Abstract = v },
	"purpose":              func(e *model.EnhancedMetadata, v string) { e.Purpose = v },
	"creation_date":        func(e *model.EnhancedMetadata, v string) { e.CreationDate = v },
	"publication_date":     func(e *model.EnhancedMetadata, v string) { e.PublicationDate = v },
	"revision_date":        func(e *model.EnhancedMetadata, v string) { e.RevisionDate = v },
	"contact_organization": func(e *model.EnhancedMetadata, v string) { e.ContactOrganization = v },
	"contact_person":       func(e *model.EnhancedMetadata, v string) { e.ContactPerson = v },
	"contact_email":        func(e *model.EnhancedMetadata, v string) { e.ContactEmail = v },
	"lineage":              func(e *model.EnhancedMetadata, v string) { e.Lineage = v },
	"positional_accuracy":  func(e *model.EnhancedMetadata, v string) { e.PositionalAccuracy = v },
	"attribute_accuracy":   func(e *model.EnhancedMetadata, v string) { e.AttributeAccuracy = v },
	"completeness":         func(e *model.EnhancedMetadata, v string) { e.Completeness = v },
	"distribution_format":  func(e *model.EnhancedMetadata, v string) { e.DistributionFormat = v },
	"online_resource":      func(e *model.EnhancedMetadata, v string) { e.OnlineResource = v },
}

var bboxFields = map[string]func(*model.EnhancedMetadata, float64){
	"bbox_west":  func(e *model.EnhancedMetadata, v float64) { e.BBoxWest = &v },
	"bbox_east":  func(e *model.EnhancedMetadata, v float64) { e.BBoxEast = &v },
	"bbox_north": func(e *model.EnhancedMetadata, v float64) { e.BBoxNorth = &v },
	"bbox_south": func(e *model.EnhancedMetadata, v float64) { e.BBoxSouth = &v },
}

// CreateEnhanced seeds an enhanced record from file metadata and overlays
// any fields present in existing sidecar metadata. Existing values always
// win over defaults.
func (m *Manager) CreateEnhanced(meta model.FileMetadata, existing RawMetadata) *model.EnhancedMetadata {
	enhanced := &model.EnhancedMetadata{
		Title:            meta.Name,
		CreationDate:     time.Now().UTC().Format(time.RFC3339),
		FileFormat:       string(meta.Format),
		FileSize:         meta.Size,
		FeatureCount:     meta.FeatureCount,
		CoordinateSystem: meta.CRS,
	}

	if len(meta.GeometryTypes) > 0 {
		enhanced.GeometryType = meta.GeometryTypes[0]
	}

	if meta.Bounds != nil {
		enhanced.BBoxWest = model.Float64Ptr(meta.Bounds.West)
		enhanced.BBoxEast = model.Float64Ptr(meta.Bounds.East)
		enhanced.BBoxNorth = model.Float64Ptr(meta.Bounds.North)
		enhanced.BBoxSouth = model.Float64Ptr(meta.Bounds.South)
	}

	if len(meta.AttributeSchema) > 0 {
		enhanced.AttributeList = sortedKeys(meta.AttributeSchema)
	}

	for key, set := range stringFields {
		if v, ok := existing[key].(string); ok && v != "" {
			set(enhanced, v)
		}
	}
	for key, set := range bboxFields {
		if v, ok := asFloat(existing[key]); ok {
			set(enhanced, v)
		}
	}
	if kw, ok := asStringSlice(existing["keywords"]); ok && len(kw) > 0 {
		enhanced.Keywords = kw
	}

	return enhanced
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

func asStringSlice(v any) ([]string, bool) {
	switch s := v.(type) {
	case []string:
		return s, true
	case []any:
		out := make([]string, 0, len(s))
		for _, item := range s {
			str, ok := item.(string)
			if !ok {
				return nil, false
			}
			out = append(out, str)
		}
		return out, true
	}
	return nil, false
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
