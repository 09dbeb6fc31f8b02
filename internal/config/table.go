package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-acfjson/pkg/fieldtree"
	"github.com/goliatone/go-acfjson/pkg/normalize"
)

// TypeTable is a per-type default table written as a YAML mapping. Key order
// in the file is kept.
type TypeTable normalize.Table

// UnmarshalYAML reads a mapping node pair by pair.
func (t *TypeTable) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: type table must be a mapping", node.Line)
	}
	table := make(TypeTable, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		keyNode, valueNode := node.Content[i], node.Content[i+1]
		value, err := nodeValue(valueNode)
		if err != nil {
			return err
		}
		table = append(table, normalize.Default{Key: keyNode.Value, Value: value})
	}
	*t = table
	return nil
}

// nodeValue converts a YAML node into the value shapes fieldtree stores:
// mappings become ordered objects.
func nodeValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return nodeValue(node.Alias)
	case yaml.MappingNode:
		obj := fieldtree.NewObject()
		for i := 0; i+1 < len(node.Content); i += 2 {
			value, err := nodeValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			obj.Set(node.Content[i].Value, value)
		}
		return obj, nil
	case yaml.SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, child := range node.Content {
			value, err := nodeValue(child)
			if err != nil {
				return nil, err
			}
			out = append(out, value)
		}
		return out, nil
	default:
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("line %d: %w", node.Line, err)
		}
		return value, nil
	}
}
