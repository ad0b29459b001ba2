package scanner

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/geoshelf/geoshelf/internal/model"
)

const (
	shpFileCode   = 9994
	shpHeaderSize = 100
)

// shpGeometryNames maps shapefile shape type codes (including Z and M
// variants) to GeoJSON-style geometry names.
var shpGeometryNames = map[int32]string{
	1:  "Point",
	3:  "LineString",
	5:  "Polygon",
	8:  "MultiPoint",
	11: "Point",
	13: "LineString",
	15: "Polygon",
	18: "MultiPoint",
	21: "Point",
	23: "LineString",
	25: "Polygon",
	28: "MultiPoint",
}

// inspectShapefile reads the .shp main-file header for geometry type and
// extent, counts records, and pulls the attribute schema from the .dbf
// sibling when one exists.
func (s *Scanner) inspectShapefile(path string, meta *model.FileMetadata) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	header := make([]byte, shpHeaderSize)
	if _, err := io.ReadFull(f, header); err != nil {
		return fmt.Errorf("reading %s: short header: %w", path, err)
	}
	if binary.BigEndian.Uint32(header[0:4]) != shpFileCode {
		return fmt.Errorf("reading %s: not a shapefile", path)
	}

	shapeType := int32(binary.LittleEndian.Uint32(header[32:36]))
	if name, ok := shpGeometryNames[shapeType]; ok {
		meta.GeometryTypes = []string{name}
	}

	west := float64FromLE(header[36:44])
	south := float64FromLE(header[44:52])
	east := float64FromLE(header[52:60])
	north := float64FromLE(header[60:68])
	if shapeType != 0 && (west != 0 || south != 0 || east != 0 || north != 0) {
		meta.Bounds = &model.BoundingBox{West: west, East: east, South: south, North: north}
	}

	meta.FeatureCount = countShapefileRecords(f)

	if schema := readDBFSchema(strings.TrimSuffix(path, ".shp") + ".dbf"); len(schema) > 0 {
		meta.AttributeSchema = schema
	}
	if crs := readPRJ(strings.TrimSuffix(path, ".shp") + ".prj"); crs != "" {
		meta.CRS = crs
	}

	return nil
}

func float64FromLE(b []byte) float64 {
	return math.Float64frombits(binary.LittleEndian.Uint64(b))
}

// countShapefileRecords walks the record headers after the main header.
// Each record header carries its content length, so counting is a series
// of seeks.
func countShapefileRecords(f *os.File) int64 {
	if _, err := f.Seek(shpHeaderSize, io.SeekStart); err != nil {
		return 0
	}
	var count int64
	header := make([]byte, 8)
	for {
		if _, err := io.ReadFull(f, header); err != nil {
			return count
		}
		contentWords := binary.BigEndian.Uint32(header[4:8])
		if _, err := f.Seek(int64(contentWords)*2, io.SeekCurrent); err != nil {
			return count
		}
		count++
	}
}

// dbf field type codes.
var dbfTypeNames = map[byte]string{
	'C': "string",
	'N': "number",
	'F': "number",
	'L': "boolean",
	'D': "date",
}

// readDBFSchema reads the field descriptor array of a dBASE attribute
// table. Missing or malformed tables yield an empty schema.
func readDBFSchema(path string) map[string]string {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	header := make([]byte, 32)
	if _, err := io.ReadFull(f, header); err != nil {
		return nil
	}

	schema := make(map[string]string)
	descriptor := make([]byte, 32)
	for {
		if _, err := io.ReadFull(f, descriptor[:1]); err != nil {
			break
		}
		if descriptor[0] == 0x0d {
			break
		}
		if _, err := io.ReadFull(f, descriptor[1:]); err != nil {
			break
		}
		name := strings.TrimRight(string(descriptor[0:11]), "\x00")
		typeName, ok := dbfTypeNames[descriptor[11]]
		if !ok {
			typeName = "unknown"
		}
		schema[name] = typeName
	}
	return schema
}

// readPRJ returns the WKT from a .prj sidecar when one exists.
func readPRJ(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
