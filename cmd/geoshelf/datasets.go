package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geoshelf/geoshelf/internal/cli"
	"github.com/geoshelf/geoshelf/internal/model"
)

func datasetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "datasets",
		Short: "Browse the dataset catalog",
	}
	cmd.AddCommand(datasetsListCmd())
	return cmd
}

func datasetsListCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cataloged datasets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			catalog, err := initCatalog(ctx)
			if err != nil {
				return err
			}
			defer func() { _ = catalog.Close() }()

			records, err := catalog.ListDatasets(ctx, category)
			if err != nil {
				return err
			}
			printDatasets(records)
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "filter by category")
	return cmd
}

func printDatasets(records []model.DatasetRecord) {
	if len(records) == 0 {
		fmt.Println(cli.FormatWarning("No datasets found"))
		return
	}
	for _, record := range records {
		fmt.Println(cli.BoldStyle.Render(record.Name))
		fmt.Printf("  path:     %s\n", record.Path)
		fmt.Printf("  format:   %s\n", record.Format)
		if record.Category != "" {
			fmt.Printf("  category: %s\n", record.Category)
		}
	}
}
