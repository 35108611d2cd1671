package prompt

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-formembed/pkg/embed"
	"github.com/goliatone/go-formembed/pkg/manifest"
)

// AskDefinition walks the user through one embed definition. Questions that
// do not apply to the chosen embed type are skipped, and the result is
// validated by building it.
func AskDefinition(ctx context.Context, d Driver) (manifest.Definition, error) {
	if d == nil {
		return manifest.Definition{}, errors.New("prompt: driver is nil")
	}

	name, err := d.Input(ctx, InputConfig{
		Message:   "Embed name",
		Help:      "Key used to refer to this embed in the manifest.",
		Validator: required("embed name"),
	})
	if err != nil {
		return manifest.Definition{}, err
	}
	form, err := d.Input(ctx, InputConfig{
		Message:   "Form ID",
		Help:      "Identifier found in the form's share URL.",
		Validator: required("form id"),
	})
	if err != nil {
		return manifest.Definition{}, err
	}

	def := manifest.Definition{
		Name:    strings.TrimSpace(name),
		Form:    strings.TrimSpace(form),
		Library: manifest.Library{Enabled: true},
	}

	types := []string{string(embed.TypeInline), string(embed.TypeModal)}
	idx, err := d.Select(ctx, SelectConfig{Message: "Embed type", Options: types})
	if err != nil {
		return manifest.Definition{}, err
	}
	if idx < 0 || idx >= len(types) {
		return manifest.Definition{}, fmt.Errorf("prompt: invalid embed type selection %d", idx)
	}
	def.Type = embed.Type(types[idx])

	if def.Type == embed.TypeModal {
		if err := askModal(ctx, d, &def); err != nil {
			return manifest.Definition{}, err
		}
	} else {
		seamless, err := d.Confirm(ctx, ConfirmConfig{Message: "Hide form chrome (seamless)?"})
		if err != nil {
			return manifest.Definition{}, err
		}
		def.Seamless = seamless
	}

	if err := askLibrary(ctx, d, &def); err != nil {
		return manifest.Definition{}, err
	}
	if def.Options, err = askOptions(ctx, d); err != nil {
		return manifest.Definition{}, err
	}
	if def.Hidden, err = askHidden(ctx, d); err != nil {
		return manifest.Definition{}, err
	}

	title, err := d.Input(ctx, InputConfig{Message: "Preview title (optional)"})
	if err != nil {
		return manifest.Definition{}, err
	}
	def.Title = strings.TrimSpace(title)

	if _, err := def.Builder(); err != nil {
		return manifest.Definition{}, err
	}
	return def, nil
}

func askModal(ctx context.Context, d Driver, def *manifest.Definition) error {
	modals := embed.ModalTypes()
	options := make([]string, 0, len(modals))
	for _, m := range modals {
		options = append(options, string(m))
	}
	idx, err := d.Select(ctx, SelectConfig{Message: "Modal style", Options: options})
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(modals) {
		return fmt.Errorf("prompt: invalid modal selection %d", idx)
	}
	if modals[idx] != embed.ModalPopup {
		def.Modal = modals[idx]
	}

	label, err := d.Input(ctx, InputConfig{Message: "Button label", Default: embed.DefaultLabel})
	if err != nil {
		return err
	}
	if label = strings.TrimSpace(label); label != "" && label != embed.DefaultLabel {
		def.Label = label
	}
	return nil
}

func askLibrary(ctx context.Context, d Driver, def *manifest.Definition) error {
	enabled, err := d.Confirm(ctx, ConfirmConfig{Message: "Include the embed library script?", Default: true})
	if err != nil {
		return err
	}
	def.Library.Enabled = enabled
	if !enabled {
		return nil
	}
	async, err := d.Confirm(ctx, ConfirmConfig{Message: "Load it asynchronously?"})
	if err != nil {
		return err
	}
	def.Library.Async = async
	return nil
}

func askOptions(ctx context.Context, d Driver) ([]embed.Option, error) {
	var out []embed.Option
	for {
		more, err := d.Confirm(ctx, ConfirmConfig{Message: "Add an option?"})
		if err != nil || !more {
			return out, err
		}
		name, err := d.Input(ctx, InputConfig{
			Message:   "Option name",
			Help:      "camelCase names become data-tf-* attributes.",
			Validator: required("option name"),
		})
		if err != nil {
			return nil, err
		}
		raw, err := d.Input(ctx, InputConfig{
			Message: "Option value",
			Help:    "YAML scalar: true, 42, [a, b] or {k: v}.",
		})
		if err != nil {
			return nil, err
		}
		value, err := manifest.ParseValue(raw)
		if err != nil {
			if infoErr := d.Info(ctx, err.Error()); infoErr != nil {
				return nil, infoErr
			}
			continue
		}
		out = append(out, embed.Option{Name: strings.TrimSpace(name), Value: value})
	}
}

func askHidden(ctx context.Context, d Driver) ([]embed.HiddenField, error) {
	var out []embed.HiddenField
	for {
		more, err := d.Confirm(ctx, ConfirmConfig{Message: "Add a hidden field?"})
		if err != nil || !more {
			return out, err
		}
		name, err := d.Input(ctx, InputConfig{Message: "Hidden field name", Validator: required("hidden field name")})
		if err != nil {
			return nil, err
		}
		value, err := d.Input(ctx, InputConfig{Message: "Hidden field value"})
		if err != nil {
			return nil, err
		}
		out = append(out, embed.HiddenField{Name: strings.TrimSpace(name), Value: value})
	}
}

func required(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", what)
		}
		return nil
	}
}
