package model

import "time"

// DatasetAttribute is one column of a dataset's attribute table as stored
// in the catalog.
type DatasetAttribute struct {
	Name        string `json:"name"`
	DataType    string `json:"data_type,omitempty"`
	Description string `json:"description,omitempty"`
}

// DatasetRecord is a catalog entry for one dataset: the scanned facts
// plus the curated metadata and classification attached to them. Path is
// the natural key; ID is assigned on first save.
type DatasetRecord struct {
	DateIndexed      time.Time          `json:"date_indexed"`
	ID               string             `json:"id"`
	Path             string             `json:"path"`
	Name             string             `json:"name"`
	Format           FileFormat         `json:"format"`
	Title            string             `json:"title,omitempty"`
	Abstract         string             `json:"abstract,omitempty"`
	CreationDate     string             `json:"creation_date,omitempty"`
	ModificationDate string             `json:"modification_date,omitempty"`
	CoordinateSystem string             `json:"coordinate_system,omitempty"`
	Category         string             `json:"category,omitempty"`
	Subcategory      string             `json:"subcategory,omitempty"`
	Keywords         []string           `json:"keywords,omitempty"`
	Attributes       []DatasetAttribute `json:"attributes,omitempty"`
	BBoxWest         *float64           `json:"bbox_west,omitempty"`
	BBoxEast         *float64           `json:"bbox_east,omitempty"`
	BBoxSouth        *float64           `json:"bbox_south,omitempty"`
	BBoxNorth        *float64           `json:"bbox_north,omitempty"`
	Size             int64              `json:"size"`
}
