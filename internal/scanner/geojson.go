package scanner

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/geoshelf/geoshelf/internal/model"
)

// geojsonDocument covers the portions of a FeatureCollection the scanner
// inspects. Geometry coordinates stay raw so the extent walker can handle
// any nesting depth.
type geojsonDocument struct {
	Type     string           `json:"type"`
	BBox     []float64        `json:"bbox"`
	CRS      *geojsonCRS      `json:"crs"`
	Features []geojsonFeature `json:"features"`
	Geometry *geojsonGeometry `json:"geometry"`
}

type geojsonCRS struct {
	Properties struct {
		Name string `json:"name"`
	} `json:"properties"`
}

type geojsonFeature struct {
	Geometry   *geojsonGeometry `json:"geometry"`
	Properties map[string]any   `json:"properties"`
}

type geojsonGeometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// inspectGeoJSON fills feature count, geometry types, attribute schema,
// CRS and extent from a GeoJSON document.
func (s *Scanner) inspectGeoJSON(path string, meta *model.FileMetadata) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var doc geojsonDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}

	switch doc.Type {
	case "FeatureCollection":
	case "Feature":
		doc.Features = []geojsonFeature{{Geometry: doc.Geometry}}
	default:
		return fmt.Errorf("parsing %s: unsupported GeoJSON type %q", path, doc.Type)
	}

	meta.CRS = geojsonCRSName(doc.CRS)
	meta.FeatureCount = int64(len(doc.Features))

	geomTypes := make(map[string]bool)
	ext := newExtent()
	for _, feature := range doc.Features {
		if feature.Geometry == nil {
			continue
		}
		geomTypes[feature.Geometry.Type] = true
		ext.addCoordinates(feature.Geometry.Coordinates)
	}
	for name := range geomTypes {
		meta.GeometryTypes = append(meta.GeometryTypes, name)
	}
	sort.Strings(meta.GeometryTypes)

	// The first feature's properties stand in for the layer schema.
	for _, feature := range doc.Features {
		if len(feature.Properties) == 0 {
			continue
		}
		schema := make(map[string]string, len(feature.Properties))
		for key, value := range feature.Properties {
			schema[key] = jsonTypeName(value)
		}
		meta.AttributeSchema = schema
		break
	}

	switch {
	case len(doc.BBox) >= 4:
		meta.Bounds = &model.BoundingBox{
			West:  doc.BBox[0],
			South: doc.BBox[1],
			East:  doc.BBox[2],
			North: doc.BBox[3],
		}
	case ext.valid:
		meta.Bounds = &model.BoundingBox{
			West:  ext.west,
			East:  ext.east,
			South: ext.south,
			North: ext.north,
		}
	}

	return nil
}

// geojsonCRSName maps the legacy crs member to an EPSG-style name. An
// absent member means the 2016 spec default.
func geojsonCRSName(crs *geojsonCRS) string {
	if crs == nil || crs.Properties.Name == "" {
		return "EPSG:4326"
	}
	name := crs.Properties.Name
	if strings.Contains(name, "CRS84") {
		return "EPSG:4326"
	}
	// urn:ogc:def:crs:EPSG::3857
	if idx := strings.LastIndex(name, ":"); idx >= 0 && strings.Contains(name, "EPSG") {
		return "EPSG:" + name[idx+1:]
	}
	return name
}

func jsonTypeName(value any) string {
	switch value.(type) {
	case string:
		return "string"
	case float64:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}

// extent accumulates a bounding box from raw coordinate arrays.
type extent struct {
	west, east, south, north float64
	valid                    bool
}

func newExtent() *extent {
	return &extent{}
}

func (e *extent) add(lon, lat float64) {
	if !e.valid {
		e.west, e.east, e.south, e.north = lon, lon, lat, lat
		e.valid = true
		return
	}
	if lon < e.west {
		e.west = lon
	}
	if lon > e.east {
		e.east = lon
	}
	if lat < e.south {
		e.south = lat
	}
	if lat > e.north {
		e.north = lat
	}
}

// addCoordinates walks a coordinates value of any nesting depth. A leaf
// is a position: an array starting with two numbers.
func (e *extent) addCoordinates(raw json.RawMessage) {
	if len(raw) == 0 {
		return
	}
	var nested []json.RawMessage
	if err := json.Unmarshal(raw, &nested); err != nil || len(nested) == 0 {
		return
	}

	var lon float64
	if err := json.Unmarshal(nested[0], &lon); err == nil {
		if len(nested) < 2 {
			return
		}
		var lat float64
		if err := json.Unmarshal(nested[1], &lat); err != nil {
			return
		}
		e.add(lon, lat)
		return
	}

	for _, child := range nested {
		e.addCoordinates(child)
	}
}
