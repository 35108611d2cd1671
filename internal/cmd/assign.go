package cmd

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formembed/pkg/embed"
	"github.com/goliatone/go-formembed/pkg/manifest"
)

// splitAssignment splits "name=value" on the first '='.
func splitAssignment(raw string) (string, string, error) {
	name, value, ok := strings.Cut(raw, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", "", fmt.Errorf("expected name=value, got %q", raw)
	}
	return name, value, nil
}

// parseOptions turns repeated --option flags into options. Values follow YAML
// scalar rules, so "name=null" removes an option set earlier.
func parseOptions(raw []string) ([]embed.Option, error) {
	out := make([]embed.Option, 0, len(raw))
	for _, item := range raw {
		name, rawValue, err := splitAssignment(item)
		if err != nil {
			return nil, fmt.Errorf("option: %w", err)
		}
		value, err := manifest.ParseValue(rawValue)
		if err != nil {
			return nil, fmt.Errorf("option %q: %w", name, err)
		}
		out = append(out, embed.Option{Name: name, Value: value})
	}
	return out, nil
}

// parseHidden turns repeated --hidden flags into hidden fields. Values are
// kept verbatim.
func parseHidden(raw []string) ([]embed.HiddenField, error) {
	out := make([]embed.HiddenField, 0, len(raw))
	for _, item := range raw {
		name, value, err := splitAssignment(item)
		if err != nil {
			return nil, fmt.Errorf("hidden: %w", err)
		}
		out = append(out, embed.HiddenField{Name: name, Value: value})
	}
	return out, nil
}
