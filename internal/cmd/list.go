package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/goliatone/go-formembed/pkg/embed"
	"github.com/goliatone/go-formembed/pkg/manifest"
)

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the embeds declared in the manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := manifest.LoadFile(a.manifest)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tFORM\tTYPE\tTITLE")
			for _, def := range store.Definitions() {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", def.Name, def.Form, describeType(def), def.DisplayTitle())
			}
			return w.Flush()
		},
	}
}

func describeType(def manifest.Definition) string {
	if def.Type != embed.TypeModal {
		return string(embed.TypeInline)
	}
	modal := def.Modal
	if modal == "" {
		modal = embed.ModalPopup
	}
	return string(def.Type) + "/" + string(modal)
}
