package metadata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardizeCRS(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "already standard", input: "EPSG:4326", want: "EPSG:4326"},
		{name: "lowercase epsg", input: "epsg:3857", want: "EPSG:3857"},
		{name: "space separated", input: "EPSG 26910", want: "EPSG:26910"},
		{name: "underscore separated", input: "EPSG_26910", want: "EPSG:26910"},
		{name: "srid form", input: "SRID=4269", want: "EPSG:4269"},
		{
			name:  "authority clause in wkt",
			input: `PROJCS["something",AUTHORITY["EPSG","2227"]]`,
			want:  "EPSG:2227",
		},
		{
			name:  "wgs84 geographic wkt",
			input: `GEOGCS["WGS 84",DATUM["WGS_1984"]]`,
			want:  "EPSG:4326",
		},
		{
			name:  "utm north zone",
			input: `PROJCS["WGS 84 / UTM zone 10N",GEOGCS["WGS 84"]]`,
			want:  "EPSG:32610",
		},
		{
			name:  "utm southern hemisphere",
			input: `PROJCS["WGS 84 / UTM zone 33, Southern Hemisphere",GEOGCS["WGS 84"]]`,
			want:  "EPSG:32733",
		},
		{name: "unrecognized passes through", input: "Local Grid", want: "Local Grid"},
		{name: "empty passes through", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StandardizeCRS(tt.input))
		})
	}
}
