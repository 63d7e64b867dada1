package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"invoicer/internal/config"
)

func newRootCmd(cfg *config.Config) *cobra.Command {
	var (
		jsonOutput bool
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "invoicer",
		Short: "Invoicer keeps invoice records and drives document generation",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			warning, err := configureLoggerForCLI(logLevel, cfg.LogLevel)
			if err != nil {
				return err
			}
			if warning != "" {
				fmt.Fprintln(os.Stderr, warning)
			}
			return nil
		},
	}

	cmd.Version = version
	cmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output JSON")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newSrvCmd(cfg),
		newAddCmd(cfg, &jsonOutput),
		newShowCmd(cfg, &jsonOutput),
		newUpdateCmd(cfg, &jsonOutput),
		newListCmd(cfg, &jsonOutput),
		newRmCmd(cfg, &jsonOutput),
		newGenerateCmd(cfg, &jsonOutput),
		newExportCmd(cfg),
		newImportCmd(cfg, &jsonOutput),
		newInfoCmd(cfg, &jsonOutput),
		newAdminCmd(cfg, &jsonOutput),
		newConfigCmd(cfg),
	)

	return cmd
}
