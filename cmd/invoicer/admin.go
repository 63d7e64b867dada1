package main

import (
	"errors"

	"github.com/spf13/cobra"

	"invoicer/internal/api"
	"invoicer/internal/config"
)

func newAdminCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative maintenance",
	}

	cmd.AddCommand(newAdminGCCmd(cfg, jsonOutput))
	cmd.AddCommand(newAdminClearCmd(cfg, jsonOutput))
	return cmd
}

func newAdminGCCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var apply bool

	cmd := &cobra.Command{
		Use:   "gc",
		Short: "Sweep asset entries no record references",
		Long:  "List logo assets that no invoice record references. Dry run by default; pass --apply to delete them.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cfg, func(client *api.Client) error {
				resp, err := client.AdminSweep(cmd.Context(), apply)
				if err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(resp)
				}
				if resp.DryRun {
					return writePlain("%d unreferenced assets (dry run, pass --apply to delete)\n", resp.Candidates)
				}
				return writePlain("deleted %d of %d unreferenced assets (%d failed)\n",
					resp.Deleted, resp.Candidates, resp.Failed)
			})
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "delete unreferenced assets")
	return cmd
}

func newAdminClearCmd(cfg *config.Config, jsonOutput *bool) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every record and stored asset",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("refusing to clear without --yes")
			}
			return withClient(cfg, func(client *api.Client) error {
				if err := client.AdminClear(cmd.Context(), true); err != nil {
					return err
				}
				if *jsonOutput {
					return writeJSON(map[string]string{"status": "cleared"})
				}
				return writePlain("cleared\n")
			})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")
	return cmd
}
