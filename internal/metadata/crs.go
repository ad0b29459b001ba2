package metadata

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Textual patterns an EPSG code may hide behind, tried in order.
var epsgPatterns = []*regexp.Regexp{
	regexp.MustCompile(`EPSG:(\d+)`),
	regexp.MustCompile(`EPSG[\s_-](\d+)`),
	regexp.MustCompile(`epsg:(\d+)`),
	regexp.MustCompile(`SRID=(\d+)`),
	regexp.MustCompile(`AUTHORITY\["EPSG","(\d+)"\]`),
}

var utmZoneRe = regexp.MustCompile(`UTM zone (\d+)`)

// UTM zone EPSG base offsets.
const (
	utmNorthBase = 32600
	utmSouthBase = 32700
)

// wktPrefixes maps known well-known-text prefixes to an EPSG code. An
// empty code marks prefixes needing further parsing (UTM zone extraction).
var wktPrefixes = []struct {
	prefix string
	code   string
}{
	{prefix: `GEOGCS["WGS 84"`, code: "EPSG:4326"},
	{prefix: `PROJCS["WGS 84 / UTM zone`, code: ""},
	{prefix: `PROJCS["NAD83`, code: ""},
}

// StandardizeCRS normalizes a coordinate-reference-system string to an
// EPSG:code form when one can be recognized; otherwise the input is
// returned unchanged.
func StandardizeCRS(crs string) string {
	for _, re := range epsgPatterns {
		if match := re.FindStringSubmatch(crs); match != nil {
			return "EPSG:" + match[1]
		}
	}

	for _, entry := range wktPrefixes {
		if !strings.HasPrefix(crs, entry.prefix) {
			continue
		}
		if entry.code != "" {
			return entry.code
		}
		if strings.Contains(crs, "UTM zone") {
			if match := utmZoneRe.FindStringSubmatch(crs); match != nil {
				zone, err := strconv.Atoi(match[1])
				if err != nil {
					break
				}
				if strings.Contains(crs, "Southern Hemisphere") || strings.Contains(strings.ToLower(crs), ", south") {
					return fmt.Sprintf("EPSG:%d", utmSouthBase+zone)
				}
				return fmt.Sprintf("EPSG:%d", utmNorthBase+zone)
			}
		}
	}

	return crs
}
