package main

import (
	"errors"
	"io"
	"os"

	"github.com/spf13/cobra"

	"invoicer/internal/api"
	"invoicer/internal/config"
)

func newExportCmd(cfg *config.Config) *cobra.Command {
	var (
		outPath     string
		includeLogo bool
	)

	cmd := &cobra.Command{
		Use:   "export <id>",
		Short: "Export an invoice record as YAML",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("record id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				var out io.Writer = os.Stdout
				if outPath != "" {
					f, err := os.Create(outPath)
					if err != nil {
						return err
					}
					defer f.Close()
					out = f
				}
				return client.ExportInvoice(cmd.Context(), args[0], includeLogo, out)
			})
		},
	}

	cmd.Flags().StringVarP(&outPath, "out", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&includeLogo, "include-logo", false, "embed the stored logo as base64")
	return cmd
}
