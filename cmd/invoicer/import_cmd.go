package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"invoicer/internal/api"
	"invoicer/internal/config"
)

func newImportCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Import a YAML document as a new record",
		Long:  "Import a YAML invoice document. Reads from stdin when no file is given. Missing fields receive their documented defaults.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var document io.Reader = os.Stdin
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				document = f
			}

			return withClient(cfg, func(client *api.Client) error {
				created, err := client.Import(cmd.Context(), document)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(created)
				}
				return writePlain("%s\n", created.ID)
			})
		},
	}
}
