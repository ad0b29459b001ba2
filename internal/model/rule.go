package model

// ClassificationRule matches datasets against structural signals and assigns
// a semantic category. A rule with no predicates matches every input, which
// is how catch-all rules are expressed.
type ClassificationRule struct {
	AttributeContains map[string]string `json:"attribute_contains,omitempty"`
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	Category          string            `json:"category"`
	FilenamePattern   string            `json:"filename_pattern,omitempty"`
	GeometryTypes     []string          `json:"geometry_types,omitempty"`
	Priority          int               `json:"priority"`
}

// ClassificationResult is the verdict for a single dataset. It is created
// once per classification call and never mutated.
type ClassificationResult struct {
	Metadata      FileMetadata `json:"metadata"`
	Category      string       `json:"category"`
	SuggestedPath string       `json:"suggested_path,omitempty"`
	MatchingRules []string     `json:"matching_rules"`
	Confidence    float64      `json:"confidence"`
}

// CategoryUnclassified is the category assigned when no rule matches.
const CategoryUnclassified = "unclassified"
