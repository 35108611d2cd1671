package manifest

import (
	"bytes"
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formembed/pkg/embed"
)

type definitionFile struct {
	Form        string       `yaml:"form"`
	Type        string       `yaml:"type"`
	Modal       string       `yaml:"modal"`
	Label       string       `yaml:"label"`
	Seamless    bool         `yaml:"seamless"`
	Library     *libraryFile `yaml:"library"`
	Options     yaml.Node    `yaml:"options"`
	Hidden      yaml.Node    `yaml:"hidden"`
	Title       string       `yaml:"title"`
	Description string       `yaml:"description"`
}

type libraryFile struct {
	Enabled *bool `yaml:"enabled"`
	Async   bool  `yaml:"async"`
}

// Parse decodes a manifest document. source is only used in error messages
// and recorded on each definition. Every embed is validated by building it,
// and all failures are returned combined.
func Parse(data []byte, source string) ([]Definition, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("manifest: file %s is empty", source)
	}

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("manifest: parse %s: %w", source, err)
	}

	doc := unwrapDocument(&root)
	if doc == nil || doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("manifest: file %s must contain a mapping", source)
	}

	embedsNode := mappingValue(doc, "embeds")
	if embedsNode == nil {
		return nil, fmt.Errorf("manifest: file %s defines no embeds", source)
	}
	if embedsNode.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("manifest: file %s: embeds must be a mapping (line %d)", source, embedsNode.Line)
	}

	var (
		defs []Definition
		errs error
		seen = make(map[string]struct{}, len(embedsNode.Content)/2)
	)
	for i := 0; i+1 < len(embedsNode.Content); i += 2 {
		keyNode, valueNode := embedsNode.Content[i], embedsNode.Content[i+1]
		name := strings.TrimSpace(keyNode.Value)
		if name == "" {
			errs = multierr.Append(errs, fmt.Errorf("manifest: file %s defines an embed with an empty name (line %d)", source, keyNode.Line))
			continue
		}
		if _, exists := seen[name]; exists {
			errs = multierr.Append(errs, fmt.Errorf("manifest: file %s defines embed %q twice", source, name))
			continue
		}
		seen[name] = struct{}{}

		def, err := decodeDefinition(name, valueNode, source)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		if _, err := def.Builder(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("%w (file %s)", err, source))
			continue
		}
		defs = append(defs, def)
	}
	if errs != nil {
		return nil, errs
	}
	return defs, nil
}

func decodeDefinition(name string, node *yaml.Node, source string) (Definition, error) {
	var raw definitionFile
	if err := node.Decode(&raw); err != nil {
		return Definition{}, fmt.Errorf("manifest: embed %q (file %s): %w", name, source, err)
	}

	def := Definition{
		Name:        name,
		Source:      source,
		Form:        strings.TrimSpace(raw.Form),
		Label:       raw.Label,
		Seamless:    raw.Seamless,
		Library:     Library{Enabled: true},
		Title:       strings.TrimSpace(raw.Title),
		Description: raw.Description,
	}

	def.Type = embed.TypeInline
	if strings.TrimSpace(raw.Type) != "" {
		typ, err := embed.ParseType(raw.Type)
		if err != nil {
			return Definition{}, fmt.Errorf("manifest: embed %q (file %s): %w", name, source, err)
		}
		def.Type = typ
	}

	if strings.TrimSpace(raw.Modal) != "" {
		modal, err := embed.ParseModalType(raw.Modal)
		if err != nil {
			return Definition{}, fmt.Errorf("manifest: embed %q (file %s): %w", name, source, err)
		}
		def.Modal = modal
	}

	if raw.Library != nil {
		if raw.Library.Enabled != nil {
			def.Library.Enabled = *raw.Library.Enabled
		}
		def.Library.Async = raw.Library.Async
	}

	var err error
	if def.Options, err = decodeOptions(&raw.Options); err != nil {
		return Definition{}, fmt.Errorf("manifest: embed %q (file %s): %w", name, source, err)
	}
	if def.Hidden, err = decodeHidden(&raw.Hidden); err != nil {
		return Definition{}, fmt.Errorf("manifest: embed %q (file %s): %w", name, source, err)
	}
	return def, nil
}

func decodeOptions(node *yaml.Node) ([]embed.Option, error) {
	node = resolveAlias(node)
	if isAbsent(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("options must be a mapping (line %d)", node.Line)
	}

	out := make([]embed.Option, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := strings.TrimSpace(node.Content[i].Value)
		if key == "" {
			return nil, fmt.Errorf("option with empty name (line %d)", node.Content[i].Line)
		}
		value, err := valueFromNode(node.Content[i+1])
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", key, err)
		}
		out = append(out, embed.Option{Name: key, Value: value})
	}
	return out, nil
}

func decodeHidden(node *yaml.Node) ([]embed.HiddenField, error) {
	node = resolveAlias(node)
	if isAbsent(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("hidden must be a mapping (line %d)", node.Line)
	}

	out := make([]embed.HiddenField, 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := strings.TrimSpace(node.Content[i].Value)
		if key == "" {
			return nil, fmt.Errorf("hidden field with empty name (line %d)", node.Content[i].Line)
		}
		valueNode := resolveAlias(node.Content[i+1])
		if valueNode.Kind != yaml.ScalarNode || valueNode.ShortTag() == "!!null" {
			return nil, fmt.Errorf("hidden field %q must be a scalar (line %d)", key, valueNode.Line)
		}
		out = append(out, embed.HiddenField{Name: key, Value: valueNode.Value})
	}
	return out, nil
}

// ParseValue resolves a single option value using YAML scalar rules, so
// "true" is a boolean, "12" an integer, "[a, b]" a list and "{k: v}" a map.
// Input that YAML cannot read as a value, such as "#0445AF" or "@handle", is
// kept verbatim as a string, as is input YAML would strip a comment from.
// An empty string yields an empty string value.
func ParseValue(raw string) (embed.Value, error) {
	if strings.TrimSpace(raw) == "" {
		return embed.String(raw), nil
	}
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &root); err != nil {
		return embed.String(raw), nil
	}
	node := unwrapDocument(&root)
	if node == nil || node.Kind == 0 || hasComment(&root) {
		return embed.String(raw), nil
	}
	value, err := valueFromNode(node)
	if err != nil {
		return embed.Value{}, fmt.Errorf("manifest: parse value %q: %w", raw, err)
	}
	return value, nil
}

// valueFromNode converts an option node. Lists hold scalars and maps hold
// string keys with non-null scalar values.
func valueFromNode(node *yaml.Node) (embed.Value, error) {
	node = resolveAlias(node)
	switch node.Kind {
	case yaml.ScalarNode:
		return scalarValue(node)
	case yaml.SequenceNode:
		items := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			item = resolveAlias(item)
			if item.Kind != yaml.ScalarNode || item.ShortTag() == "!!null" {
				return embed.Value{}, fmt.Errorf("list items must be non-null scalars (line %d)", item.Line)
			}
			items = append(items, item.Value)
		}
		return embed.List(items...), nil
	case yaml.MappingNode:
		pairs := make([]embed.Pair, 0, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			entry := resolveAlias(node.Content[i+1])
			if entry.Kind != yaml.ScalarNode || entry.ShortTag() == "!!null" {
				return embed.Value{}, fmt.Errorf("map value %q must be a non-null scalar (line %d)", node.Content[i].Value, entry.Line)
			}
			value, err := scalarValue(entry)
			if err != nil {
				return embed.Value{}, err
			}
			pairs = append(pairs, embed.Pair{Key: node.Content[i].Value, Value: value})
		}
		return embed.Map(pairs...), nil
	default:
		return embed.Value{}, fmt.Errorf("unsupported value (line %d)", node.Line)
	}
}

func scalarValue(node *yaml.Node) (embed.Value, error) {
	switch node.ShortTag() {
	case "!!null":
		return embed.Null(), nil
	case "!!bool":
		var b bool
		if err := node.Decode(&b); err != nil {
			return embed.Value{}, fmt.Errorf("decode bool (line %d): %w", node.Line, err)
		}
		return embed.Bool(b), nil
	case "!!int":
		var i int64
		if err := node.Decode(&i); err != nil {
			return embed.Value{}, fmt.Errorf("decode int (line %d): %w", node.Line, err)
		}
		return embed.Int(i), nil
	default:
		return embed.String(node.Value), nil
	}
}

func unwrapDocument(node *yaml.Node) *yaml.Node {
	if node == nil {
		return nil
	}
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		return node.Content[0]
	}
	return node
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return resolveAlias(node.Content[i+1])
		}
	}
	return nil
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	return node
}

func hasComment(node *yaml.Node) bool {
	if node == nil {
		return false
	}
	if node.HeadComment != "" || node.LineComment != "" || node.FootComment != "" {
		return true
	}
	for _, child := range node.Content {
		if hasComment(child) {
			return true
		}
	}
	return false
}

func isAbsent(node *yaml.Node) bool {
	return node == nil || node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null")
}
