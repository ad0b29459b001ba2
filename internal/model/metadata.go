package model

// EnhancedMetadata is the descriptive record managed for each dataset. It
// is built from file metadata plus any pre-existing sidecar metadata, may
// be auto-completed, and exports to FGDC or ISO 19115 XML.
//
// Optional scalar fields use pointers so "unset" is distinguishable from a
// zero value; this matters for the bounding box all-or-nothing invariant.
type EnhancedMetadata struct {
	BBoxWest  *float64 `json:"bbox_west,omitempty"`
	BBoxEast  *float64 `json:"bbox_east,omitempty"`
	BBoxNorth *float64 `json:"bbox_north,omitempty"`
	BBoxSouth *float64 `json:"bbox_south,omitempty"`

	Title    string `json:"title"`
	Abstract string `json:"abstract,omitempty"`
	Purpose  string `json:"purpose,omitempty"`

	CreationDate    string `json:"creation_date,omitempty"`
	PublicationDate string `json:"publication_date,omitempty"`
	RevisionDate    string `json:"revision_date,omitempty"`

	ContactOrganization string `json:"contact_organization,omitempty"`
	ContactPerson       string `json:"contact_person,omitempty"`
	ContactEmail        string `json:"contact_email,omitempty"`

	CoordinateSystem string `json:"coordinate_system,omitempty"`

	Lineage            string `json:"lineage,omitempty"`
	PositionalAccuracy string `json:"positional_accuracy,omitempty"`
	AttributeAccuracy  string `json:"attribute_accuracy,omitempty"`
	Completeness       string `json:"completeness,omitempty"`

	DistributionFormat string `json:"distribution_format,omitempty"`
	OnlineResource     string `json:"online_resource,omitempty"`

	GeometryType string `json:"geometry_type,omitempty"`
	FileFormat   string `json:"file_format,omitempty"`

	Keywords      []string `json:"keywords,omitempty"`
	AttributeList []string `json:"attribute_list,omitempty"`

	FeatureCount int64 `json:"feature_count,omitempty"`
	FileSize     int64 `json:"file_size,omitempty"`
}

// HasBBox reports whether the full bounding-box quartet is set.
func (m *EnhancedMetadata) HasBBox() bool {
	return m.BBoxWest != nil && m.BBoxEast != nil && m.BBoxNorth != nil && m.BBoxSouth != nil
}

// AnyBBox reports whether any bounding-box scalar is set.
func (m *EnhancedMetadata) AnyBBox() bool {
	return m.BBoxWest != nil || m.BBoxEast != nil || m.BBoxNorth != nil || m.BBoxSouth != nil
}

// Clone returns a deep copy of the record. Slices and pointer fields are
// duplicated so mutating the copy never touches the original.
func (m *EnhancedMetadata) Clone() *EnhancedMetadata {
	out := *m
	out.BBoxWest = cloneFloat(m.BBoxWest)
	out.BBoxEast = cloneFloat(m.BBoxEast)
	out.BBoxNorth = cloneFloat(m.BBoxNorth)
	out.BBoxSouth = cloneFloat(m.BBoxSouth)
	if m.Keywords != nil {
		out.Keywords = append([]string(nil), m.Keywords...)
	}
	if m.AttributeList != nil {
		out.AttributeList = append([]string(nil), m.AttributeList...)
	}
	return &out
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}

// Float64Ptr returns a pointer to v. Convenience for building records.
func Float64Ptr(v float64) *float64 { return &v }
