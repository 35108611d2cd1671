package manifest

import (
	"bytes"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formembed/pkg/embed"
)

// Encode writes definitions as a manifest document that Parse reads back to
// the same definitions. Defaults (inline type, popup modal, default label,
// enabled sync library) are omitted.
func Encode(definitions []Definition) ([]byte, error) {
	embeds := mappingNode()
	for _, def := range definitions {
		if def.Name == "" {
			return nil, fmt.Errorf("manifest: encode: embed name is required")
		}
		appendPair(embeds, def.Name, definitionNode(def))
	}

	root := mappingNode()
	appendPair(root, "embeds", embeds)

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(root); err != nil {
		return nil, fmt.Errorf("manifest: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("manifest: encode: %w", err)
	}
	return buf.Bytes(), nil
}

func definitionNode(def Definition) *yaml.Node {
	node := mappingNode()
	appendPair(node, "form", stringNode(def.Form))
	if def.Type != "" && def.Type != embed.TypeInline {
		appendPair(node, "type", stringNode(string(def.Type)))
	}
	if def.Modal != "" && def.Modal != embed.ModalPopup {
		appendPair(node, "modal", stringNode(string(def.Modal)))
	}
	if def.Label != "" && def.Label != embed.DefaultLabel {
		appendPair(node, "label", stringNode(def.Label))
	}
	if def.Seamless {
		appendPair(node, "seamless", boolNode(true))
	}
	if !def.Library.Enabled || def.Library.Async {
		library := mappingNode()
		library.Style = yaml.FlowStyle
		appendPair(library, "enabled", boolNode(def.Library.Enabled))
		appendPair(library, "async", boolNode(def.Library.Async))
		appendPair(node, "library", library)
	}
	if len(def.Options) > 0 {
		options := mappingNode()
		for _, opt := range def.Options {
			appendPair(options, opt.Name, valueNode(opt.Value))
		}
		appendPair(node, "options", options)
	}
	if len(def.Hidden) > 0 {
		hidden := mappingNode()
		for _, field := range def.Hidden {
			appendPair(hidden, field.Name, stringNode(field.Value))
		}
		appendPair(node, "hidden", hidden)
	}
	if def.Title != "" {
		appendPair(node, "title", stringNode(def.Title))
	}
	if def.Description != "" {
		appendPair(node, "description", stringNode(def.Description))
	}
	return node
}

func valueNode(value embed.Value) *yaml.Node {
	switch value.Kind() {
	case embed.KindBool:
		b, _ := value.Interface().(bool)
		return boolNode(b)
	case embed.KindInt:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: value.Text()}
	case embed.KindList:
		items, _ := value.Interface().([]string)
		seq := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq", Style: yaml.FlowStyle}
		for _, item := range items {
			seq.Content = append(seq.Content, stringNode(item))
		}
		return seq
	case embed.KindMap:
		pairs, _ := value.Interface().([]embed.Pair)
		m := mappingNode()
		m.Style = yaml.FlowStyle
		for _, pair := range pairs {
			appendPair(m, pair.Key, valueNode(pair.Value))
		}
		return m
	case embed.KindNull:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
	default:
		return stringNode(value.Text())
	}
}

func mappingNode() *yaml.Node {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func stringNode(value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: value}
}

func boolNode(value bool) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(value)}
}

func appendPair(mapping *yaml.Node, key string, value *yaml.Node) {
	mapping.Content = append(mapping.Content, stringNode(key), value)
}
