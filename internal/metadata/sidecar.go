package metadata

import (
	"encoding/json"
	"encoding/xml"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// parseSidecar reads a metadata file and dispatches on its format: XML for
// .xml, JSON for .json, plain key:value text otherwise. Failures are
// logged and reported as "no data available".
func parseSidecar(path string) RawMetadata {
	lower := strings.ToLower(path)

	var (
		raw RawMetadata
		err error
	)
	switch {
	case strings.HasSuffix(lower, ".xml"):
		raw, err = parseXMLSidecar(path)
	case strings.HasSuffix(lower, ".json"):
		raw, err = parseJSONSidecar(path)
	default:
		raw, err = parseTextSidecar(path)
	}

	if err != nil {
		slog.Error("Failed to parse metadata file", "path", path, "error", err)
		return nil
	}
	return raw
}

// xmlNode is a generic XML element tree used to read both metadata schema
// dialects without binding to either one's namespaces.
type xmlNode struct {
	XMLName xml.Name
	Content string    `xml:",chardata"`
	Nodes   []xmlNode `xml:",any"`
}

// find walks the descendant path of local element names and returns the
// first match.
func (n *xmlNode) find(path ...string) *xmlNode {
	if len(path) == 0 {
		return n
	}
	for i := range n.Nodes {
		child := &n.Nodes[i]
		if child.XMLName.Local == path[0] {
			if found := child.find(path[1:]...); found != nil {
				return found
			}
		}
	}
	return nil
}

// findAll returns every descendant element with the given local name.
func (n *xmlNode) findAll(name string) []*xmlNode {
	var out []*xmlNode
	for i := range n.Nodes {
		child := &n.Nodes[i]
		if child.XMLName.Local == name {
			out = append(out, child)
		}
		out = append(out, child.findAll(name)...)
	}
	return out
}

func (n *xmlNode) text() string {
	return strings.TrimSpace(n.Content)
}

// parseXMLSidecar detects the schema dialect by root tag: FGDC-style
// documents use a plain "metadata" root, ISO documents an MD_Metadata
// root. Anything else falls back to collecting direct child text.
func parseXMLSidecar(path string) (RawMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var root xmlNode
	if err := xml.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	rootTag := strings.ToLower(root.XMLName.Local)
	switch {
	case strings.Contains(rootTag, "fgdc") || rootTag == "metadata":
		return parseFGDC(&root), nil
	case strings.Contains(rootTag, "iso") || strings.Contains(root.XMLName.Local, "MD_Metadata"):
		return parseISO(&root), nil
	}

	// Generic fallback: direct children with text content.
	raw := RawMetadata{}
	for _, child := range root.Nodes {
		if text := strings.TrimSpace(child.Content); text != "" {
			raw[child.XMLName.Local] = text
		}
	}
	return raw, nil
}

// parseFGDC reads the flat nested-tag dialect.
func parseFGDC(root *xmlNode) RawMetadata {
	raw := RawMetadata{}

	if idinfo := root.find("idinfo"); idinfo != nil {
		if cite := idinfo.find("citation", "citeinfo"); cite != nil {
			if title := cite.find("title"); title != nil && title.text() != "" {
				raw["title"] = title.text()
			}
			if pubdate := cite.find("pubdate"); pubdate != nil && pubdate.text() != "" {
				raw["publication_date"] = pubdate.text()
			}
		}
		if abstract := idinfo.find("descript", "abstract"); abstract != nil && abstract.text() != "" {
			raw["abstract"] = abstract.text()
		}
		if purpose := idinfo.find("descript", "purpose"); purpose != nil && purpose.text() != "" {
			raw["purpose"] = purpose.text()
		}

		var keywords []string
		for _, key := range idinfo.findAll("themekey") {
			if key.text() != "" {
				keywords = append(keywords, key.text())
			}
		}
		if len(keywords) > 0 {
			raw["keywords"] = keywords
		}

		if contact := idinfo.find("ptcontac", "cntinfo"); contact != nil {
			if org := contact.find("cntorg"); org != nil && org.text() != "" {
				raw["contact_organization"] = org.text()
			}
			if person := contact.find("cntperp", "cntper"); person != nil && person.text() != "" {
				raw["contact_person"] = person.text()
			}
			if email := contact.find("cntemail"); email != nil && email.text() != "" {
				raw["contact_email"] = email.text()
			}
		}
	}

	if bounds := root.findAll("bounding"); len(bounds) > 0 {
		parseFGDCBounds(bounds[0], raw)
	}

	return raw
}

func parseFGDCBounds(bounding *xmlNode, raw RawMetadata) {
	for tag, key := range map[string]string{
		"westbc":  "bbox_west",
		"eastbc":  "bbox_east",
		"northbc": "bbox_north",
		"southbc": "bbox_south",
	} {
		if node := bounding.find(tag); node != nil {
			if v, err := strconv.ParseFloat(node.text(), 64); err == nil {
				raw[key] = v
			}
		}
	}
}

// parseISO reads the namespaced standards-body dialect. Matching is by
// local name so namespace prefixes do not matter.
func parseISO(root *xmlNode) RawMetadata {
	raw := RawMetadata{}

	if ident := root.find("identificationInfo"); ident != nil {
		if titles := ident.findAll("title"); len(titles) > 0 {
			if text := deepText(titles[0]); text != "" {
				raw["title"] = text
			}
		}
		if abstracts := ident.findAll("abstract"); len(abstracts) > 0 {
			if text := deepText(abstracts[0]); text != "" {
				raw["abstract"] = text
			}
		}
	}

	for _, date := range root.findAll("DateTime") {
		if date.text() != "" {
			raw["creation_date"] = date.text()
			break
		}
	}

	if boxes := root.findAll("EX_GeographicBoundingBox"); len(boxes) > 0 {
		parseISOBounds(boxes[0], raw)
	}

	return raw
}

func parseISOBounds(bbox *xmlNode, raw RawMetadata) {
	for tag, key := range map[string]string{
		"westBoundLongitude": "bbox_west",
		"eastBoundLongitude": "bbox_east",
		"southBoundLatitude": "bbox_south",
		"northBoundLatitude": "bbox_north",
	} {
		nodes := bbox.findAll(tag)
		if len(nodes) == 0 {
			continue
		}
		if v, err := strconv.ParseFloat(deepText(nodes[0]), 64); err == nil {
			raw[key] = v
		}
	}
}

// deepText returns the element's own text, or the first non-empty text of
// any descendant (ISO wraps values in gco:CharacterString / gco:Decimal).
func deepText(n *xmlNode) string {
	if text := n.text(); text != "" {
		return text
	}
	for i := range n.Nodes {
		if text := deepText(&n.Nodes[i]); text != "" {
			return text
		}
	}
	return ""
}

func parseJSONSidecar(path string) (RawMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw RawMetadata
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// parseTextSidecar reads plain "key: value" lines; keys are lowercased.
func parseTextSidecar(path string) (RawMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	raw := RawMetadata{}
	for _, line := range strings.Split(string(data), "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		raw[strings.ToLower(strings.TrimSpace(key))] = strings.TrimSpace(value)
	}
	return raw, nil
}
