package classify

import "github.com/geoshelf/geoshelf/internal/model"

// DefaultRules returns the built-in classification rule set. Rules are
// evaluated in this order; priority breaks ties between matches.
func DefaultRules() []model.ClassificationRule {
	return []model.ClassificationRule{
		{
			Name:            "Base Maps",
			Description:     "Base map layers like administrative boundaries",
			Category:        "basemaps",
			FilenamePattern: `(boundary|admin|border|limits)`,
			GeometryTypes:   []string{"Polygon", "MultiPolygon"},
		},
		{
			Name:            "Roads",
			Description:     "Road network data",
			Category:        "transportation",
			FilenamePattern: `(road|street|highway|transportation)`,
			GeometryTypes:   []string{"LineString", "MultiLineString"},
		},
		{
			Name:            "Points of Interest",
			Description:     "POI data",
			Category:        "points_of_interest",
			FilenamePattern: `(poi|point|location|facility)`,
			GeometryTypes:   []string{"Point", "MultiPoint"},
		},
		{
			Name:            "Hydrography",
			Description:     "Water features",
			Category:        "hydrography",
			FilenamePattern: `(water|river|stream|lake|hydro)`,
			GeometryTypes:   []string{"Polygon", "MultiPolygon", "LineString"},
		},
		{
			Name:            "Elevation",
			Description:     "Elevation data",
			Category:        "elevation",
			FilenamePattern: `(dem|elevation|contour|height|dtm)`,
		},
		{
			Name:            "Land Cover",
			Description:     "Land cover or land use data",
			Category:        "land_cover",
			FilenamePattern: `(land|cover|use|lulc|vegetation)`,
			GeometryTypes:   []string{"Polygon", "MultiPolygon"},
		},
	}
}
