package metadata

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/geoshelf/geoshelf/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fgdcSidecar = `<?xml version="1.0"?>
<metadata>
  <idinfo>
    <citation>
      <citeinfo>
        <title>County Roads</title>
        <pubdate>2023-05-01</pubdate>
      </citeinfo>
    </citation>
    <descript>
      <abstract>Road centerlines for the county.</abstract>
      <purpose>Transportation planning.</purpose>
    </descript>
    <keywords>
      <theme>
        <themekey>roads</themekey>
        <themekey>transportation</themekey>
      </theme>
    </keywords>
    <spdom>
      <bounding>
        <westbc>-122.5</westbc>
        <eastbc>-121.7</eastbc>
        <northbc>38.2</northbc>
        <southbc>37.6</southbc>
      </bounding>
    </spdom>
    <ptcontac>
      <cntinfo>
        <cntorg>County GIS Office</cntorg>
        <cntperp>
          <cntper>Pat Doe</cntper>
        </cntperp>
        <cntemail>gis@county.example</cntemail>
      </cntinfo>
    </ptcontac>
  </idinfo>
</metadata>`

const isoSidecar = `<?xml version="1.0"?>
<MD_Metadata xmlns="http://www.isotc211.org/2005/gmd" xmlns:gco="http://www.isotc211.org/2005/gco">
  <dateStamp>
    <gco:DateTime>2022-11-30T08:00:00Z</gco:DateTime>
  </dateStamp>
  <identificationInfo>
    <MD_DataIdentification>
      <citation>
        <CI_Citation>
          <title>
            <gco:CharacterString>Hydrography Layer</gco:CharacterString>
          </title>
        </CI_Citation>
      </citation>
      <abstract>
        <gco:CharacterString>Streams and lakes.</gco:CharacterString>
      </abstract>
      <extent>
        <EX_Extent>
          <geographicElement>
            <EX_GeographicBoundingBox>
              <westBoundLongitude><gco:Decimal>-120.0</gco:Decimal></westBoundLongitude>
              <eastBoundLongitude><gco:Decimal>-119.0</gco:Decimal></eastBoundLongitude>
              <southBoundLatitude><gco:Decimal>35.0</gco:Decimal></southBoundLatitude>
              <northBoundLatitude><gco:Decimal>36.0</gco:Decimal></northBoundLatitude>
            </EX_GeographicBoundingBox>
          </geographicElement>
        </EX_Extent>
      </extent>
    </MD_DataIdentification>
  </identificationInfo>
</MD_Metadata>`

func TestExtractExisting_FGDCSidecar(t *testing.T) {
	tmpDir := t.TempDir()
	dataset := filepath.Join(tmpDir, "roads.shp")
	require.NoError(t, os.WriteFile(dataset, []byte("shp"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "roads.xml"), []byte(fgdcSidecar), 0o600))

	m := NewManager()
	raw := m.ExtractExisting(dataset)
	require.NotNil(t, raw)

	assert.Equal(t, "County Roads", raw["title"])
	assert.Equal(t, "2023-05-01", raw["publication_date"])
	assert.Equal(t, "Road centerlines for the county.", raw["abstract"])
	assert.Equal(t, "Transportation planning.", raw["purpose"])
	assert.Equal(t, []string{"roads", "transportation"}, raw["keywords"])
	assert.Equal(t, -122.5, raw["bbox_west"])
	assert.Equal(t, 38.2, raw["bbox_north"])
	assert.Equal(t, "County GIS Office", raw["contact_organization"])
	assert.Equal(t, "Pat Doe", raw["contact_person"])
	assert.Equal(t, "gis@county.example", raw["contact_email"])
}

func TestExtractExisting_ISOSidecar(t *testing.T) {
	tmpDir := t.TempDir()
	dataset := filepath.Join(tmpDir, "hydro.gpkg")
	require.NoError(t, os.WriteFile(dataset, []byte("gpkg"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "hydro.xml"), []byte(isoSidecar), 0o600))

	m := NewManager()
	raw := m.ExtractExisting(dataset)
	require.NotNil(t, raw)

	assert.Equal(t, "Hydrography Layer", raw["title"])
	assert.Equal(t, "Streams and lakes.", raw["abstract"])
	assert.Equal(t, "2022-11-30T08:00:00Z", raw["creation_date"])
	assert.Equal(t, -120.0, raw["bbox_west"])
	assert.Equal(t, 36.0, raw["bbox_north"])
}

func TestExtractExisting_TextSidecar(t *testing.T) {
	tmpDir := t.TempDir()
	dataset := filepath.Join(tmpDir, "poi.geojson")
	require.NoError(t, os.WriteFile(dataset, []byte("{}"), 0o600))

	text := "Title: Points of Interest\nAbstract: Downtown POI\nContact_Email: poi@example.org\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "poi.meta"), []byte(text), 0o600))

	m := NewManager()
	raw := m.ExtractExisting(dataset)
	require.NotNil(t, raw)

	assert.Equal(t, "Points of Interest", raw["title"])
	assert.Equal(t, "Downtown POI", raw["abstract"])
	assert.Equal(t, "poi@example.org", raw["contact_email"])
}

func TestExtractExisting_SiblingReferencesFile(t *testing.T) {
	tmpDir := t.TempDir()
	dataset := filepath.Join(tmpDir, "parcels.shp")
	require.NoError(t, os.WriteFile(dataset, []byte("shp"), 0o600))

	// No sidecar shares the base name; a sibling metadata file names the
	// dataset explicitly.
	sibling := "Filename: parcels.shp\nTitle: Parcel Fabric\n"
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "catalog.meta"), []byte(sibling), 0o600))

	m := NewManager()
	raw := m.ExtractExisting(dataset)
	require.NotNil(t, raw)
	assert.Equal(t, "Parcel Fabric", raw["title"])
}

func TestExtractExisting_NoSidecar(t *testing.T) {
	tmpDir := t.TempDir()
	dataset := filepath.Join(tmpDir, "lonely.shp")
	require.NoError(t, os.WriteFile(dataset, []byte("shp"), 0o600))

	m := NewManager()
	assert.Nil(t, m.ExtractExisting(dataset))
}

func TestExtractExisting_MalformedSidecarIsNotFatal(t *testing.T) {
	tmpDir := t.TempDir()
	dataset := filepath.Join(tmpDir, "bad.shp")
	require.NoError(t, os.WriteFile(dataset, []byte("shp"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "bad.xml"), []byte("<not valid"), 0o600))

	m := NewManager()
	assert.Nil(t, m.ExtractExisting(dataset))
}

func TestCreateEnhanced_SeedsFromFileMetadata(t *testing.T) {
	m := NewManager()

	meta := model.FileMetadata{
		Path:         "/data/rivers.shp",
		Name:         "rivers.shp",
		Format:       model.FormatShapefile,
		Size:         4096,
		CRS:          "EPSG:4326",
		FeatureCount: 120,
		GeometryTypes: []string{
			"LineString",
			"MultiLineString",
		},
		AttributeSchema: map[string]string{
			"name":   "str",
			"length": "float64",
		},
		Bounds:       &model.BoundingBox{West: -120, East: -119, South: 35, North: 36},
		LastModified: time.Now(),
	}

	enhanced := m.CreateEnhanced(meta, nil)

	assert.Equal(t, "rivers.shp", enhanced.Title)
	assert.NotEmpty(t, enhanced.CreationDate)
	assert.Equal(t, "Shapefile", enhanced.FileFormat)
	assert.Equal(t, int64(4096), enhanced.FileSize)
	assert.Equal(t, int64(120), enhanced.FeatureCount)
	assert.Equal(t, "EPSG:4326", enhanced.CoordinateSystem)
	assert.Equal(t, "LineString", enhanced.GeometryType)
	assert.Equal(t, []string{"length", "name"}, enhanced.AttributeList)
	require.True(t, enhanced.HasBBox())
	assert.Equal(t, -120.0, *enhanced.BBoxWest)
	assert.Equal(t, 36.0, *enhanced.BBoxNorth)
}

func TestCreateEnhanced_ExistingValuesWin(t *testing.T) {
	m := NewManager()

	meta := model.FileMetadata{
		Name:   "rivers.shp",
		Format: model.FormatShapefile,
		Bounds: &model.BoundingBox{West: -120, East: -119, South: 35, North: 36},
	}
	existing := RawMetadata{
		"title":         "River Network",
		"abstract":      "All perennial streams.",
		"keywords":      []string{"water", "streams"},
		"bbox_west":     -121.0,
		"contact_email": "hydro@example.org",
	}

	enhanced := m.CreateEnhanced(meta, existing)

	assert.Equal(t, "River Network", enhanced.Title)
	assert.Equal(t, "All perennial streams.", enhanced.Abstract)
	assert.Equal(t, []string{"water", "streams"}, enhanced.Keywords)
	assert.Equal(t, "hydro@example.org", enhanced.ContactEmail)
	// Sidecar bbox overrides the scanned bounds.
	assert.Equal(t, -121.0, *enhanced.BBoxWest)
	assert.Equal(t, -119.0, *enhanced.BBoxEast)
}
