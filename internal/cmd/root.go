package cmd

import (
	"errors"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-formembed/internal/prompt"
	"github.com/goliatone/go-formembed/pkg/orchestrator"
	"github.com/goliatone/go-formembed/pkg/renderers/preview"
)

const (
	envManifest  = "FORMEMBED_MANIFEST"
	envRenderer  = "FORMEMBED_RENDERER"
	envLogLevel  = "FORMEMBED_LOG_LEVEL"
	envTemplates = "FORMEMBED_TEMPLATES"
	envSite      = "FORMEMBED_SITE"

	defaultManifest = "embeds.yaml"
	defaultEnvFile  = ".env"
)

// app carries state shared by every subcommand.
type app struct {
	envFile   string
	manifest  string
	renderer  string
	logLevel  string
	templates string
	site      string

	logger *zap.Logger
	driver prompt.Driver
}

func newRootCmd(version string) *cobra.Command {
	return newRootCmdFor(&app{logger: zap.NewNop()}, version)
}

func newRootCmdFor(a *app, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "formembed",
		Short: "Generate embed snippets for hosted forms",
		Long: `formembed turns form IDs and embed settings into the HTML snippets that
place a hosted form on a page, either inline or behind a button.

Render a one-off snippet:   formembed render --form abc123 --type modal
Render from a manifest:     formembed render newsletter
Write every embed to disk:  formembed build --out public/embeds
Create a manifest:          formembed init`,
		Version:           version,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.envFile, "env-file", defaultEnvFile, "Dotenv file with FORMEMBED_* defaults")
	flags.StringVarP(&a.manifest, "manifest", "m", defaultManifest, "Manifest file ($"+envManifest+")")
	flags.StringVar(&a.logLevel, "log-level", "warn", "Log level: debug, info, warn, error ($"+envLogLevel+")")
	flags.StringVar(&a.templates, "templates", "", "Directory holding templates/page.tpl for preview pages ($"+envTemplates+")")
	flags.StringVar(&a.site, "site", "", "Site name shown on preview pages ($"+envSite+")")

	root.AddCommand(
		newRenderCmd(a),
		newBuildCmd(a),
		newListCmd(a),
		newInitCmd(a),
	)
	return root
}

// Execute runs the CLI.
func Execute(version string) error {
	return newRootCmd(version).Execute()
}

// setup loads the dotenv file, lets the environment fill flags the user did
// not set, and builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := loadEnv(a.envFile); err != nil {
		return err
	}

	flags := cmd.Flags()
	if !flags.Changed("manifest") {
		if v := strings.TrimSpace(os.Getenv(envManifest)); v != "" {
			a.manifest = v
		}
	}
	if !flags.Changed("log-level") {
		if v := strings.TrimSpace(os.Getenv(envLogLevel)); v != "" {
			a.logLevel = v
		}
	}
	if !flags.Changed("templates") {
		a.templates = strings.TrimSpace(os.Getenv(envTemplates))
	}
	if !flags.Changed("site") {
		a.site = strings.TrimSpace(os.Getenv(envSite))
	}
	a.renderer = strings.TrimSpace(os.Getenv(envRenderer))

	logger, err := newLogger(a.logLevel)
	if err != nil {
		return err
	}
	a.logger = logger
	return nil
}

// previewOptions carries the preview page settings into an orchestrator.
func (a *app) previewOptions() orchestrator.Option {
	return orchestrator.WithPreviewOptions(
		preview.WithTemplatesDir(a.templates),
		preview.WithSiteName(a.site),
	)
}

// rendererFor prefers an explicit flag value, then the environment.
func (a *app) rendererFor(flag string) string {
	if flag = strings.TrimSpace(flag); flag != "" {
		return flag
	}
	return a.renderer
}

// loadEnv reads path into the process environment without overriding values
// that are already set. A missing file is not an error.
func loadEnv(path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}
