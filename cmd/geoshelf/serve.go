package main

import (
	"github.com/spf13/cobra"

	"github.com/geoshelf/geoshelf/internal/config"
	"github.com/geoshelf/geoshelf/internal/server"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog over an HTTP JSON API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := initCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = catalog.Close() }()

			classifier, err := initClassifier()
			if err != nil {
				return err
			}
			organizer, err := initOrganizer()
			if err != nil {
				return err
			}

			if addr == "" {
				addr = config.Load().ServerAddr
			}

			srv := server.New(
				server.WithCatalog(catalog),
				server.WithClassifier(classifier),
				server.WithOrganizer(organizer),
			)
			return srv.Run(addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
