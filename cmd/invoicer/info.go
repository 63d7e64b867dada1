package main

import (
	"github.com/spf13/cobra"

	"invoicer/internal/api"
	"invoicer/internal/config"
)

func newInfoCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show server and data directory info",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				info, err := client.GetInfo(cmd.Context())
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(info)
				}
				return writePlain("db: %s\nassets: %s\nartifacts: %s\nendpoint: %s\npdf backend: %s\nrecords: %d\n",
					info.DBPath, info.AssetsDir, info.ArtifactsDir,
					info.EndpointURL, info.PDFBackend, info.RecordCount)
			})
		},
	}
}
