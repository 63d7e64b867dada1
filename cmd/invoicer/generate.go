package main

import (
	"errors"

	"github.com/spf13/cobra"

	"invoicer/internal/api"
	"invoicer/internal/config"
)

func newGenerateCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var formatName string

	cmd := &cobra.Command{
		Use:   "generate <id>",
		Short: "Generate an invoice document",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("record id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.Generate(cmd.Context(), args[0], formatName)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				return writePlain("%s\n", resp.Artifact.Path)
			})
		},
	}

	cmd.Flags().StringVarP(&formatName, "format", "f", "pdf", "document format (pdf, docx)")
	return cmd
}
