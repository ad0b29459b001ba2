package model

import (
	"encoding/json"
	"fmt"
	"sort"
)

// FolderNode is one folder in a template's layout tree. Sibling names are
// unique; children may be empty for leaf folders.
type FolderNode struct {
	Name     string
	Children []*FolderNode
}

// Child returns the direct child with the given name, or nil.
func (n *FolderNode) Child(name string) *FolderNode {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// HasChild reports whether a direct child with the given name exists.
func (n *FolderNode) HasChild(name string) bool {
	return n.Child(name) != nil
}

// FolderTree is the root of a template layout. The root itself is unnamed;
// its children are the top-level folders.
type FolderTree struct {
	Roots []*FolderNode
}

// Root returns the top-level folder with the given name, or nil.
func (t *FolderTree) Root(name string) *FolderNode {
	for _, r := range t.Roots {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// HasRoot reports whether a top-level folder with the given name exists.
func (t *FolderTree) HasRoot(name string) bool {
	return t.Root(name) != nil
}

// UnmarshalJSON reads the external nested name->subtree mapping form.
// Siblings are sorted by name so that loading is deterministic regardless
// of map iteration order.
func (t *FolderTree) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("folder structure must be an object: %w", err)
	}
	roots, err := foldersFromRaw(raw)
	if err != nil {
		return err
	}
	t.Roots = roots
	return nil
}

// MarshalJSON writes the nested name->subtree mapping form.
func (t FolderTree) MarshalJSON() ([]byte, error) {
	return json.Marshal(foldersToMap(t.Roots))
}

func foldersFromRaw(raw map[string]json.RawMessage) ([]*FolderNode, error) {
	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	nodes := make([]*FolderNode, 0, len(names))
	for _, name := range names {
		var sub map[string]json.RawMessage
		if err := json.Unmarshal(raw[name], &sub); err != nil {
			return nil, fmt.Errorf("subtree of %q must be an object: %w", name, err)
		}
		children, err := foldersFromRaw(sub)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, &FolderNode{Name: name, Children: children})
	}
	return nodes, nil
}

func foldersToMap(nodes []*FolderNode) map[string]any {
	out := make(map[string]any, len(nodes))
	for _, n := range nodes {
		out[n.Name] = foldersToMap(n.Children)
	}
	return out
}

// NamingConvention renames files as they are organized. Prefix is prepended
// literally; CategoryPrefix additionally prepends the category name.
type NamingConvention struct {
	Prefix         string `json:"prefix,omitempty"`
	CategoryPrefix bool   `json:"category_prefix,omitempty"`
}

// OrganizationTemplate describes a target folder layout for a dataset
// collection. Templates are immutable after load except for explicit saves.
type OrganizationTemplate struct {
	NamingConvention     *NamingConvention `json:"naming_convention,omitempty"`
	Name                 string            `json:"name"`
	Description          string            `json:"description"`
	FolderStructure      FolderTree        `json:"folder_structure"`
	MetadataRequirements []string          `json:"metadata_requirements,omitempty"`
}
