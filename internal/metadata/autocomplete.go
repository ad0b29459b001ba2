package metadata

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/geoshelf/geoshelf/internal/model"
)

var (
	titleSplitRe = regexp.MustCompile(`[^a-zA-Z0-9]+`)
	epsgCodeRe   = regexp.MustCompile(`EPSG:(\d+)`)
)

// AutoComplete fills plausible values for missing fields and returns a new
// record; the input is never mutated.
func (m *Manager) AutoComplete(record *model.EnhancedMetadata) *model.EnhancedMetadata {
	enhanced := record.Clone()

	if enhanced.CreationDate == "" {
		enhanced.CreationDate = time.Now().UTC().Format(time.RFC3339)
	}

	if enhanced.Abstract == "" {
		enhanced.Abstract = synthesizeAbstract(enhanced)
	}

	if len(enhanced.Keywords) == 0 {
		enhanced.Keywords = synthesizeKeywords(enhanced)
	}

	return enhanced
}

// synthesizeAbstract builds a short description from whatever facts the
// record carries. Each sentence appears only when its source data exists.
func synthesizeAbstract(record *model.EnhancedMetadata) string {
	var parts []string

	if record.Title != "" {
		parts = append(parts, fmt.Sprintf("This dataset contains %s.", record.Title))
	}
	if record.GeometryType != "" {
		parts = append(parts, fmt.Sprintf("It consists of %s features.", record.GeometryType))
	}
	if record.FeatureCount > 0 {
		parts = append(parts, fmt.Sprintf("The dataset contains %d features.", record.FeatureCount))
	}
	if len(record.AttributeList) > 0 {
		shown := record.AttributeList
		suffix := "."
		if len(shown) > 5 {
			suffix = fmt.Sprintf(" and %d more.", len(shown)-5)
			shown = shown[:5]
		}
		parts = append(parts, fmt.Sprintf("Attributes include: %s%s", strings.Join(shown, ", "), suffix))
	}
	if record.HasBBox() {
		parts = append(parts, fmt.Sprintf("Geographic extent: %.2fW to %.2fE, %.2fS to %.2fN.",
			*record.BBoxWest, *record.BBoxEast, *record.BBoxSouth, *record.BBoxNorth))
	}

	return strings.Join(parts, " ")
}

// synthesizeKeywords derives keywords from the geometry type, significant
// title words and any EPSG marker in the coordinate system string.
func synthesizeKeywords(record *model.EnhancedMetadata) []string {
	set := make(map[string]bool)

	if record.GeometryType != "" {
		set[strings.ToLower(record.GeometryType)] = true
	}

	if record.Title != "" {
		for _, word := range titleSplitRe.Split(record.Title, -1) {
			if len(word) > 3 {
				set[strings.ToLower(word)] = true
			}
		}
	}

	if strings.Contains(record.CoordinateSystem, "EPSG") {
		set["EPSG"] = true
		if match := epsgCodeRe.FindStringSubmatch(record.CoordinateSystem); match != nil {
			set["EPSG:"+match[1]] = true
		}
	}

	if len(set) == 0 {
		return nil
	}
	keywords := make([]string, 0, len(set))
	for k := range set {
		keywords = append(keywords, k)
	}
	sort.Strings(keywords)
	return keywords
}
