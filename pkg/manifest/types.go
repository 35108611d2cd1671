package manifest

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-formembed/pkg/embed"
)

// Library mirrors embed.Builder.SetLoadLib.
type Library struct {
	Enabled bool
	Async   bool
}

// Definition is one named embed declared in a manifest.
type Definition struct {
	Name   string
	Source string

	Form     string
	Type     embed.Type
	Modal    embed.ModalType
	Label    string
	Seamless bool
	Library  Library
	Options  []embed.Option
	Hidden   []embed.HiddenField

	// Title and Description only feed preview pages.
	Title       string
	Description string
}

// Builder returns a configured embed builder. Settings that do not apply to
// the definition's type fail with embed.ErrBadOperation.
func (d Definition) Builder() (*embed.Builder, error) {
	if strings.TrimSpace(d.Form) == "" {
		return nil, fmt.Errorf("manifest: embed %q: form is required", d.Name)
	}

	b, err := embed.New(embed.ID(d.Form), d.Type)
	if err != nil {
		return nil, fmt.Errorf("manifest: embed %q: %w", d.Name, err)
	}

	b.SetOptions(d.Options, true).
		SetHiddenFields(d.Hidden, true).
		SetLoadLib(d.Library.Enabled, d.Library.Async)

	if d.Seamless {
		if _, err := b.SetSeamless(true); err != nil {
			return nil, fmt.Errorf("manifest: embed %q: %w", d.Name, err)
		}
	}
	if d.Label != "" {
		if _, err := b.SetLabel(d.Label); err != nil {
			return nil, fmt.Errorf("manifest: embed %q: %w", d.Name, err)
		}
	}
	if d.Modal != "" {
		if _, err := b.SetModalType(d.Modal); err != nil {
			return nil, fmt.Errorf("manifest: embed %q: %w", d.Name, err)
		}
	}
	return b, nil
}

// DisplayTitle returns Title, falling back to the embed name.
func (d Definition) DisplayTitle() string {
	if title := strings.TrimSpace(d.Title); title != "" {
		return title
	}
	return d.Name
}

// Store holds definitions keyed by name, remembering declaration order.
type Store struct {
	definitions map[string]Definition
	order       []string
}

// NewStore builds a store from definitions, rejecting duplicate or empty
// names.
func NewStore(definitions ...Definition) (*Store, error) {
	store := &Store{definitions: make(map[string]Definition, len(definitions))}
	for _, def := range definitions {
		if err := store.add(def); err != nil {
			return nil, err
		}
	}
	return store, nil
}

func (s *Store) add(def Definition) error {
	name := strings.TrimSpace(def.Name)
	if name == "" {
		return fmt.Errorf("manifest: embed name is required (file %s)", def.Source)
	}
	if existing, exists := s.definitions[name]; exists {
		return fmt.Errorf("manifest: duplicate embed %q (files %s and %s)", name, existing.Source, def.Source)
	}
	def.Name = name
	s.definitions[name] = def
	s.order = append(s.order, name)
	return nil
}

// Definition returns the named definition.
func (s *Store) Definition(name string) (Definition, bool) {
	if s == nil {
		return Definition{}, false
	}
	def, ok := s.definitions[strings.TrimSpace(name)]
	return def, ok
}

// Names lists embed names in declaration order.
func (s *Store) Names() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.order...)
}

// Definitions lists definitions in declaration order.
func (s *Store) Definitions() []Definition {
	if s == nil {
		return nil
	}
	out := make([]Definition, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.definitions[name])
	}
	return out
}

// Empty reports whether the store holds any definitions.
func (s *Store) Empty() bool {
	return s == nil || len(s.order) == 0
}
