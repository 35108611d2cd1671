package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gosimple/slug"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formembed/pkg/orchestrator"
)

func newBuildCmd(a *app) *cobra.Command {
	var (
		outDir   string
		renderer string
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Render every manifest embed into a directory",
		Long: `Render every embed declared in the manifest and write one file per embed.

File names are slugs of the embed names, e.g. "Spring Survey" becomes
spring-survey.html.

Example:
  formembed build --out public/embeds
  formembed build --renderer preview --out previews`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBuild(cmd, outDir, a.rendererFor(renderer))
		},
	}
	cmd.Flags().StringVar(&outDir, "out", "embeds", "Output directory")
	cmd.Flags().StringVarP(&renderer, "renderer", "r", "", "Renderer: snippet or preview ($"+envRenderer+")")
	return cmd
}

func (a *app) runBuild(cmd *cobra.Command, outDir, renderer string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	gen := orchestrator.New(
		orchestrator.WithManifestFile(a.manifest),
		orchestrator.WithLogger(a.logger),
		a.previewOptions(),
	)
	outputs, err := gen.GenerateAll(ctx, renderer)
	if err != nil {
		return err
	}

	files, err := outputFileNames(outputs)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	for i, out := range outputs {
		path := filepath.Join(outDir, files[i])
		if err := os.WriteFile(path, out.Body, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		a.logger.Info("embed written",
			zap.String("embed", out.Name),
			zap.String("renderer", out.Renderer),
			zap.String("path", path),
		)
		fmt.Fprintln(cmd.OutOrStdout(), path)
	}
	return nil
}

// outputFileNames maps outputs to file names, failing before anything is
// written when two embeds share a file name.
func outputFileNames(outputs []orchestrator.Output) ([]string, error) {
	files := make([]string, 0, len(outputs))
	owners := make(map[string]string, len(outputs))
	for _, out := range outputs {
		file := outputFileName(out.Name)
		if prior, clash := owners[file]; clash {
			return nil, fmt.Errorf("embeds %q and %q both map to %s", prior, out.Name, file)
		}
		owners[file] = out.Name
		files = append(files, file)
	}
	return files, nil
}

func outputFileName(name string) string {
	s := slug.Make(name)
	if s == "" {
		s = "embed"
	}
	return s + ".html"
}
