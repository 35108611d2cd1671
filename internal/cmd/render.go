package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formembed/pkg/embed"
	"github.com/goliatone/go-formembed/pkg/manifest"
	"github.com/goliatone/go-formembed/pkg/orchestrator"
)

type renderFlags struct {
	form        string
	typ         string
	modal       string
	label       string
	seamless    bool
	noLib       bool
	async       bool
	options     []string
	hidden      []string
	renderer    string
	output      string
	title       string
	description string
}

func newRenderCmd(a *app) *cobra.Command {
	f := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render [name]",
		Short: "Render one embed",
		Long: `Render one embed to stdout or a file.

With a name, the embed is read from the manifest and the other flags act
as overrides; --form and --type cannot be combined with a name. Without a
name, --form is required and the embed is described entirely by flags.

Example:
  formembed render --form abc123 --option hideHeaders=true --hidden source=blog
  formembed render --form abc123 --type modal --modal slider --label "Chat"
  formembed render contact --renderer preview --output contact.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			return a.runRender(cmd, f, name)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.form, "form", "", "Form ID")
	flags.StringVar(&f.typ, "type", string(embed.TypeInline), "Embed type: inline or modal")
	flags.StringVar(&f.modal, "modal", "", "Modal style: popup, slider or popover")
	flags.StringVar(&f.label, "label", "", "Button label for modal embeds")
	flags.BoolVar(&f.seamless, "seamless", false, "Hide form chrome (inline only)")
	flags.BoolVar(&f.noLib, "no-lib", false, "Omit the embed library script tag")
	flags.BoolVar(&f.async, "async", false, "Load the embed library asynchronously")
	flags.StringArrayVarP(&f.options, "option", "o", nil, "Embed option as name=value (repeatable)")
	flags.StringArrayVar(&f.hidden, "hidden", nil, "Hidden field as name=value (repeatable)")
	flags.StringVarP(&f.renderer, "renderer", "r", "", "Renderer: snippet or preview ($"+envRenderer+")")
	flags.StringVar(&f.output, "output", "", "Output file (stdout if empty)")
	flags.StringVar(&f.title, "title", "", "Preview page title")
	flags.StringVar(&f.description, "description", "", "Preview page description (HTML allowed)")
	return cmd
}

func (a *app) runRender(cmd *cobra.Command, f *renderFlags, name string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	options, err := parseOptions(f.options)
	if err != nil {
		return err
	}
	hidden, err := parseHidden(f.hidden)
	if err != nil {
		return err
	}

	var (
		gen *orchestrator.Orchestrator
		req = orchestrator.Request{Renderer: a.rendererFor(f.renderer)}
	)
	if name != "" {
		for _, flag := range []string{"form", "type"} {
			if cmd.Flags().Changed(flag) {
				return fmt.Errorf("--%s cannot be combined with embed name %q", flag, name)
			}
		}
		gen = orchestrator.New(
			orchestrator.WithManifestFile(a.manifest),
			orchestrator.WithLogger(a.logger),
			a.previewOptions(),
			orchestrator.WithTransformer(overrides(cmd, f, options, hidden)),
		)
		req.Name = name
		req.Title = f.title
		req.Description = f.description
	} else {
		def, err := definitionFromFlags(cmd, f, options, hidden)
		if err != nil {
			return err
		}
		gen = orchestrator.New(
			orchestrator.WithStore(emptyStore()),
			orchestrator.WithLogger(a.logger),
			a.previewOptions(),
		)
		req.Definition = &def
	}

	output, err := gen.Generate(ctx, req)
	if err != nil {
		return err
	}
	return a.writeOutput(cmd, f.output, output)
}

// definitionFromFlags describes an embed from flags alone. Flags that do not
// apply to the chosen type are only rejected when the user set them.
func definitionFromFlags(cmd *cobra.Command, f *renderFlags, options []embed.Option, hidden []embed.HiddenField) (manifest.Definition, error) {
	if strings.TrimSpace(f.form) == "" {
		return manifest.Definition{}, fmt.Errorf("--form is required when no embed name is given")
	}
	typ, err := embed.ParseType(f.typ)
	if err != nil {
		return manifest.Definition{}, err
	}

	def := manifest.Definition{
		Name:        "cli",
		Form:        strings.TrimSpace(f.form),
		Type:        typ,
		Label:       f.label,
		Seamless:    f.seamless,
		Library:     manifest.Library{Enabled: !f.noLib, Async: f.async},
		Options:     options,
		Hidden:      hidden,
		Title:       f.title,
		Description: f.description,
	}
	if cmd.Flags().Changed("modal") {
		modal, err := embed.ParseModalType(f.modal)
		if err != nil {
			return manifest.Definition{}, err
		}
		def.Modal = modal
	}
	return def, nil
}

// overrides applies render flags on top of a manifest embed. Flags that do
// not fit the embed's type fail the same way they do without a name.
func overrides(cmd *cobra.Command, f *renderFlags, options []embed.Option, hidden []embed.HiddenField) orchestrator.Transformer {
	changed := cmd.Flags().Changed
	return orchestrator.TransformerFunc(func(_ context.Context, _ string, b *embed.Builder) error {
		b.SetOptions(options, true).SetHiddenFields(hidden, true)
		if changed("no-lib") || changed("async") {
			enabled, async := b.LoadLib()
			if changed("no-lib") {
				enabled = !f.noLib
			}
			if changed("async") {
				async = f.async
			}
			b.SetLoadLib(enabled, async)
		}
		if changed("seamless") {
			if _, err := b.SetSeamless(f.seamless); err != nil {
				return err
			}
		}
		if changed("label") {
			if _, err := b.SetLabel(f.label); err != nil {
				return err
			}
		}
		if changed("modal") {
			modal, err := embed.ParseModalType(f.modal)
			if err != nil {
				return err
			}
			if _, err := b.SetModalType(modal); err != nil {
				return err
			}
		}
		return nil
	})
}

func (a *app) writeOutput(cmd *cobra.Command, path string, data []byte) error {
	if path == "" {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	a.logger.Info("embed written", zap.String("path", path), zap.Int("bytes", len(data)))
	fmt.Fprintf(cmd.OutOrStdout(), "Embed written to %s\n", path)
	return nil
}

func emptyStore() *manifest.Store {
	store, _ := manifest.NewStore()
	return store
}
