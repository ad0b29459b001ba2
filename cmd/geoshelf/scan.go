package main

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/geoshelf/geoshelf/internal/cli"
	"github.com/geoshelf/geoshelf/internal/scanner"
	"github.com/geoshelf/geoshelf/internal/server"
)

func scanCmd() *cobra.Command {
	var noCatalog bool

	cmd := &cobra.Command{
		Use:   "scan <directory>",
		Short: "Scan a directory for geospatial datasets",
		Long: `Walks the directory recursively, reads structural metadata from every
supported dataset, classifies each one and records it in the catalog.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			classifier, err := initClassifier()
			if err != nil {
				return err
			}

			files, err := scanner.New().ScanDirectory(args[0])
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Println(cli.FormatWarning("No supported datasets found"))
				return nil
			}

			byCategory := make(map[string]int)

			if noCatalog {
				for _, file := range files {
					byCategory[classifier.Classify(file).Category]++
				}
			} else {
				catalog, err := initCatalog(ctx)
				if err != nil {
					return err
				}
				defer func() { _ = catalog.Close() }()

				bar := progressbar.Default(int64(len(files)), "Cataloging datasets")
				for _, file := range files {
					result := classifier.Classify(file)
					byCategory[result.Category]++

					record := server.RecordFromScan(file, result)
					if err := catalog.SaveDataset(ctx, record); err != nil {
						return fmt.Errorf("failed to catalog %s: %w", file.Path, err)
					}
					_ = bar.Add(1)
				}
				_ = bar.Finish()
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Found %d datasets", len(files))))
			for category, count := range byCategory {
				fmt.Printf("  %s %d\n", cli.SubtleStyle.Render(category+":"), count)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noCatalog, "no-catalog", false, "classify only, do not write to the catalog")
	return cmd
}
