package domain

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tidy rewrites a raw reference document into parseable YAML. Two upstream
// conventions block a structural parse: simulations that never reach a
// bucket's level are written as YAML comments, and those lines carry a
// trailing "did not reach" annotation instead of year fields. Commented
// entries become ordinary sequence items and the annotation becomes the
// 9999/9999 sentinel year pair.
func Tidy(text string) string {
	text = strings.ReplaceAll(text, "# {", "- {")
	for _, level := range Levels {
		marker := fmt.Sprintf("} -- did not reach %s°C", formatLevel(level))
		text = strings.ReplaceAll(text, marker, ", start_year: 9999, end_year: 9999}")
	}
	return text
}

// ParseDocument tidies and parses one phase's reference document text.
// Bucket order and per-bucket record order are preserved from the source.
// Any structural failure is fatal and wrapped in a ParseError: a document
// that does not parse after tidying means the upstream format changed, and
// every lookup against it would be suspect.
func ParseDocument(text, phase string) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(Tidy(text)), &root); err != nil {
		return nil, &ParseError{Phase: phase, Err: err}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, &ParseError{Phase: phase, Err: errors.New("empty document")}
	}

	// Walk the mapping node directly instead of unmarshalling into a map,
	// which would lose the document's bucket order.
	mapping := root.Content[0]
	if mapping.Kind != yaml.MappingNode {
		return nil, &ParseError{Phase: phase, Err: fmt.Errorf("line %d: expected mapping at document root, got %s", mapping.Line, nodeKind(mapping.Kind))}
	}

	doc := &Document{Phase: phase, Buckets: make([]Bucket, 0, len(mapping.Content)/2)}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, value := mapping.Content[i], mapping.Content[i+1]

		var records []Record
		if err := value.Decode(&records); err != nil {
			return nil, &ParseError{Phase: phase, Err: fmt.Errorf("bucket %s: %w", key.Value, err)}
		}
		doc.Buckets = append(doc.Buckets, Bucket{Name: key.Value, Records: records})
	}
	return doc, nil
}

func nodeKind(k yaml.Kind) string {
	switch k {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
