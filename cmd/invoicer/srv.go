package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"invoicer/internal/assetstore"
	"invoicer/internal/config"
	"invoicer/internal/invoices"
	"invoicer/internal/kvstore"
	"invoicer/internal/render"
	"invoicer/internal/server"
)

func newSrvCmd(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "srv",
		Short: "Run the invoicer API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg == nil {
				return fmt.Errorf("config not initialized")
			}
			if cfg.DataDir == "" {
				return fmt.Errorf("data dir is required")
			}

			logger := slog.Default().With("component", "server")

			addr, err := server.ListenAddr(cfg.APIURL)
			if err != nil {
				return err
			}

			if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
				return err
			}

			logger.Info("opening database", "path", cfg.DBPath())
			kv, err := kvstore.Open(cfg.DBPath())
			if err != nil {
				return err
			}
			defer kv.Close()

			assets, err := assetstore.NewLocalCAS(cfg.AssetsDir())
			if err != nil {
				return err
			}

			artifacts, err := render.NewArtifactDir(cfg.ArtifactsDir())
			if err != nil {
				return err
			}

			records := invoices.NewStore(kv, assets)
			renderer := render.NewClient(cfg.EndpointURL, cfg.PDFBackend, assets, artifacts)

			srv := server.New(addr, records, renderer, server.Info{
				DBPath:       cfg.DBPath(),
				AssetsDir:    cfg.AssetsDir(),
				ArtifactsDir: cfg.ArtifactsDir(),
				EndpointURL:  cfg.EndpointURL,
				PDFBackend:   cfg.PDFBackend,
			}, logger)
			return srv.ListenAndServe()
		},
	}
}
