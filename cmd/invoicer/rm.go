package main

import (
	"errors"

	"github.com/spf13/cobra"

	"invoicer/internal/api"
	"invoicer/internal/config"
)

func newRmCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete an invoice record",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("record id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				if err := client.DeleteInvoice(cmd.Context(), args[0]); err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(map[string]string{"deleted": args[0]})
				}
				return writePlain("deleted %s\n", args[0])
			})
		},
	}
}
