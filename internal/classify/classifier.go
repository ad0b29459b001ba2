// Package classify implements the rule-based classification engine that
// assigns semantic categories to geospatial datasets.
package classify

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/geoshelf/geoshelf/internal/common"
	"github.com/geoshelf/geoshelf/internal/model"
)

// Classifier evaluates a prioritized rule set against dataset metadata.
type Classifier struct {
	rules []compiledRule
}

type compiledRule struct {
	re   *regexp.Regexp
	rule model.ClassificationRule
}

// New creates a classifier loaded with the default rule set.
func New() *Classifier {
	c := &Classifier{}
	for _, rule := range DefaultRules() {
		// Default rules carry known-good patterns.
		_ = c.AddRule(rule)
	}
	return c
}

// NewWithRules creates a classifier with the given rules only.
func NewWithRules(rules []model.ClassificationRule) (*Classifier, error) {
	c := &Classifier{}
	for _, rule := range rules {
		if err := c.AddRule(rule); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// AddRule appends a rule to the set. Rules are never de-duplicated; a rule
// added twice matches twice. Returns an error if the filename pattern does
// not compile.
func (c *Classifier) AddRule(rule model.ClassificationRule) error {
	cr := compiledRule{rule: rule}
	if rule.FilenamePattern != "" {
		re, err := common.CompileFold(rule.FilenamePattern)
		if err != nil {
			return fmt.Errorf("rule %q: invalid filename pattern: %w", rule.Name, err)
		}
		cr.re = re
	}
	c.rules = append(c.rules, cr)
	return nil
}

// Rules returns a copy of the loaded rules in load order.
func (c *Classifier) Rules() []model.ClassificationRule {
	out := make([]model.ClassificationRule, len(c.rules))
	for i, cr := range c.rules {
		out[i] = cr.rule
	}
	return out
}

// LoadRules reads additional rule definitions from a JSON file and appends
// them to the rule set. Missing fields default: category to "other",
// priority to 0.
func (c *Classifier) LoadRules(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read rules file: %w", err)
	}

	var defs []ruleDefinition
	if err := json.Unmarshal(data, &defs); err != nil {
		return fmt.Errorf("failed to parse rules file: %w", err)
	}

	for _, def := range defs {
		if err := c.AddRule(def.toRule()); err != nil {
			return err
		}
	}

	slog.Info("Loaded custom classification rules", "count", len(defs), "path", path)
	return nil
}

// SaveRules writes the current rule set to a JSON file.
func (c *Classifier) SaveRules(path string) error {
	defs := make([]ruleDefinition, len(c.rules))
	for i, cr := range c.rules {
		defs[i] = definitionFromRule(cr.rule)
	}

	data, err := json.MarshalIndent(defs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode rules: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write rules file: %w", err)
	}

	slog.Info("Saved classification rules", "count", len(defs), "path", path)
	return nil
}

// Classify evaluates every rule against the record and returns the verdict
// of the highest-priority match. Ties keep load order. When nothing
// matches the dataset lands in the unclassified bucket with confidence 0.
func (c *Classifier) Classify(meta model.FileMetadata) model.ClassificationResult {
	var matches []compiledRule
	for _, cr := range c.rules {
		if c.matches(cr, meta) {
			matches = append(matches, cr)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].rule.Priority > matches[j].rule.Priority
	})

	if len(matches) == 0 {
		return model.ClassificationResult{
			Metadata:      meta,
			Category:      model.CategoryUnclassified,
			Confidence:    0.0,
			MatchingRules: []string{},
			SuggestedPath: filepath.Join(model.CategoryUnclassified, meta.Name),
		}
	}

	top := matches[0].rule
	confidence := 0.5 + 0.1*float64(len(matches)) + 0.1*float64(top.Priority)
	if confidence > 1.0 {
		confidence = 1.0
	}

	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.rule.Name
	}

	return model.ClassificationResult{
		Metadata:      meta,
		Category:      top.Category,
		Confidence:    confidence,
		MatchingRules: names,
		SuggestedPath: filepath.Join(top.Category, meta.Name),
	}
}

// ClassifyBatch classifies each record independently, preserving input order.
func (c *Classifier) ClassifyBatch(metas []model.FileMetadata) []model.ClassificationResult {
	results := make([]model.ClassificationResult, 0, len(metas))
	for _, meta := range metas {
		results = append(results, c.Classify(meta))
	}
	return results
}

// matches checks every predicate on the rule; a rule with no predicates
// matches everything.
func (c *Classifier) matches(cr compiledRule, meta model.FileMetadata) bool {
	if cr.re != nil && !cr.re.MatchString(meta.Name) {
		return false
	}

	if len(cr.rule.AttributeContains) > 0 && len(meta.AttributeSchema) > 0 {
		for name := range cr.rule.AttributeContains {
			if _, ok := meta.AttributeSchema[name]; !ok {
				return false
			}
		}
	}

	// The geometry predicate is skipped when the record carries no
	// geometry types, not failed.
	if len(cr.rule.GeometryTypes) > 0 && len(meta.GeometryTypes) > 0 {
		allowed := make(map[string]bool, len(cr.rule.GeometryTypes))
		for _, g := range cr.rule.GeometryTypes {
			allowed[g] = true
		}
		found := false
		for _, g := range meta.GeometryTypes {
			if allowed[g] {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// ruleDefinition is the external JSON shape of a rule.
type ruleDefinition struct {
	AttributeContains map[string]string `json:"attribute_contains,omitempty"`
	Name              string            `json:"name"`
	Description       string            `json:"description"`
	Category          string            `json:"category"`
	FilenamePattern   string            `json:"filename_pattern,omitempty"`
	GeometryTypes     []string          `json:"geometry_types,omitempty"`
	Priority          int               `json:"priority"`
}

func (d ruleDefinition) toRule() model.ClassificationRule {
	rule := model.ClassificationRule{
		Name:              d.Name,
		Description:       d.Description,
		Category:          d.Category,
		Priority:          d.Priority,
		FilenamePattern:   d.FilenamePattern,
		AttributeContains: d.AttributeContains,
		GeometryTypes:     d.GeometryTypes,
	}
	if rule.Name == "" {
		rule.Name = "Unknown"
	}
	if rule.Category == "" {
		rule.Category = "other"
	}
	return rule
}

func definitionFromRule(rule model.ClassificationRule) ruleDefinition {
	return ruleDefinition{
		Name:              rule.Name,
		Description:       rule.Description,
		Category:          rule.Category,
		Priority:          rule.Priority,
		FilenamePattern:   rule.FilenamePattern,
		AttributeContains: rule.AttributeContains,
		GeometryTypes:     rule.GeometryTypes,
	}
}
