package metadata

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/geoshelf/geoshelf/internal/model"
)

var (
	// isoDateRe accepts a full ISO date, optionally with time, fraction
	// and offset: 2024-01-31 or 2024-01-31T12:00:00+02:00.
	isoDateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}(T\d{2}:\d{2}:\d{2}(.\d+)?(Z|[+-]\d{2}:\d{2})?)?$`)
	// compactDateRe accepts the 8-digit compact form: 20240131.
	compactDateRe = regexp.MustCompile(`^\d{8}$`)

	emailRe = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
)

// isValidDate reports whether the value matches one of the two accepted
// textual date shapes.
func isValidDate(value string) bool {
	return isoDateRe.MatchString(value) || compactDateRe.MatchString(value)
}

func isValidEmail(value string) bool {
	return emailRe.MatchString(value)
}

// Validate checks the record for structural and semantic issues. Findings
// are returned as data; the record is valid only when the list is empty.
// Advisory findings (missing abstract or keywords) count against validity
// like everything else.
func (m *Manager) Validate(record *model.EnhancedMetadata) (bool, []string) {
	var issues []string

	if strings.TrimSpace(record.Title) == "" {
		issues = append(issues, "Title is required")
	}

	dates := []struct {
		label string
		value string
	}{
		{"Creation Date", record.CreationDate},
		{"Publication Date", record.PublicationDate},
		{"Revision Date", record.RevisionDate},
	}
	for _, d := range dates {
		if d.value != "" && !isValidDate(d.value) {
			issues = append(issues, fmt.Sprintf("%s has invalid format", d.label))
		}
	}

	if record.AnyBBox() {
		if !record.HasBBox() {
			issues = append(issues, "Incomplete bounding box coordinates")
		} else {
			if *record.BBoxWest > *record.BBoxEast {
				issues = append(issues, "West longitude must be less than East longitude")
			}
			if *record.BBoxSouth > *record.BBoxNorth {
				issues = append(issues, "South latitude must be less than North latitude")
			}
			if *record.BBoxWest < -180 || *record.BBoxWest > 180 {
				issues = append(issues, "West longitude must be between -180 and 180")
			}
			if *record.BBoxEast < -180 || *record.BBoxEast > 180 {
				issues = append(issues, "East longitude must be between -180 and 180")
			}
			if *record.BBoxSouth < -90 || *record.BBoxSouth > 90 {
				issues = append(issues, "South latitude must be between -90 and 90")
			}
			if *record.BBoxNorth < -90 || *record.BBoxNorth > 90 {
				issues = append(issues, "North latitude must be between -90 and 90")
			}
		}
	}

	if record.ContactEmail != "" && !isValidEmail(record.ContactEmail) {
		issues = append(issues, "Invalid contact email format")
	}

	if record.Abstract == "" {
		issues = append(issues, "Abstract is recommended but missing")
	}
	if len(record.Keywords) == 0 {
		issues = append(issues, "Keywords are recommended but missing")
	}

	return len(issues) == 0, issues
}
