package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formembed/internal/prompt"
	"github.com/goliatone/go-formembed/pkg/manifest"
)

func newInitCmd(a *app) *cobra.Command {
	var appendTo bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create or extend a manifest interactively",
		Long: `Ask for embed settings and write them to the manifest file.

Without --append the manifest must not exist yet.

Example:
  formembed init
  formembed init --manifest site/embeds.yaml --append`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runInit(cmd, appendTo)
		},
	}
	cmd.Flags().BoolVar(&appendTo, "append", false, "Add embeds to an existing manifest")
	return cmd
}

func (a *app) runInit(cmd *cobra.Command, appendTo bool) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var existing []manifest.Definition
	switch _, err := os.Stat(a.manifest); {
	case err == nil && !appendTo:
		return fmt.Errorf("manifest already exists: %s (use --append)", a.manifest)
	case err == nil:
		store, err := manifest.LoadFile(a.manifest)
		if err != nil {
			return err
		}
		existing = store.Definitions()
	case !errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("stat manifest: %w", err)
	}

	driver := a.driver
	if driver == nil {
		driver = prompt.NewSurveyDriver(cmd.OutOrStdout())
	}

	defs, err := askDefinitions(ctx, driver, existing)
	if err != nil {
		return err
	}

	data, err := manifest.Encode(defs)
	if err != nil {
		return err
	}
	if err := os.WriteFile(a.manifest, data, 0o644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	a.logger.Info("manifest written", zap.String("path", a.manifest), zap.Int("embeds", len(defs)))
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d embed(s) to %s\n", len(defs), a.manifest)
	return nil
}

// askDefinitions collects embeds until the user stops, rejecting names that
// are already taken. The store validates the final set.
func askDefinitions(ctx context.Context, d prompt.Driver, existing []manifest.Definition) ([]manifest.Definition, error) {
	defs := append([]manifest.Definition(nil), existing...)
	taken := make(map[string]struct{}, len(defs))
	for _, def := range defs {
		taken[def.Name] = struct{}{}
	}

	for {
		def, err := prompt.AskDefinition(ctx, d)
		if err != nil {
			return nil, err
		}
		if _, dup := taken[def.Name]; dup {
			if err := d.Info(ctx, fmt.Sprintf("embed %q already exists, skipped", def.Name)); err != nil {
				return nil, err
			}
		} else {
			taken[def.Name] = struct{}{}
			defs = append(defs, def)
		}

		more, err := d.Confirm(ctx, prompt.ConfirmConfig{Message: "Add another embed?"})
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}

	if _, err := manifest.NewStore(defs...); err != nil {
		return nil, err
	}
	return defs, nil
}
