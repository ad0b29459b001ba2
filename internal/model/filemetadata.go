// Package model defines the core domain models used throughout the application.
package model

import "time"

// FileFormat is the tag assigned to a dataset based on its container format.
type FileFormat string

// Recognized dataset formats.
const (
	FormatShapefile   FileFormat = "Shapefile"
	FormatGeoJSON     FileFormat = "GeoJSON"
	FormatJSON        FileFormat = "JSON"
	FormatGeodatabase FileFormat = "File Geodatabase"
	FormatGeoPackage  FileFormat = "GeoPackage"
	FormatKML         FileFormat = "KML"
	FormatGeoTIFF     FileFormat = "GeoTIFF"
	FormatUnknown     FileFormat = "Unknown"
)

// VectorFormats lists the formats treated as vector data when bucketing
// datasets into a vector/raster folder split.
var VectorFormats = map[FileFormat]bool{
	FormatShapefile:   true,
	FormatGeoJSON:     true,
	FormatGeodatabase: true,
}

// BoundingBox is a west/east/south/north extent in geographic coordinates.
type BoundingBox struct {
	West  float64 `json:"west"`
	East  float64 `json:"east"`
	South float64 `json:"south"`
	North float64 `json:"north"`
}

// FileMetadata is the structured record the file reader produces for a
// single dataset. It is the input shape for classification, organization
// and metadata enhancement.
type FileMetadata struct {
	LastModified    time.Time         `json:"last_modified"`
	AttributeSchema map[string]string `json:"attribute_schema,omitempty"`
	Path            string            `json:"path"`
	Name            string            `json:"name"`
	Format          FileFormat        `json:"format"`
	CRS             string            `json:"crs,omitempty"`
	GeometryTypes   []string          `json:"geometry_types,omitempty"`
	Bounds          *BoundingBox      `json:"bounds,omitempty"`
	Size            int64             `json:"size"`
	LayerCount      int               `json:"layer_count"`
	FeatureCount    int64             `json:"feature_count"`
}
