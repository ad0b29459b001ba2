package main

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/geoshelf/geoshelf/internal/cli"
	"github.com/geoshelf/geoshelf/internal/metadata"
	"github.com/geoshelf/geoshelf/internal/metadata/export"
	"github.com/geoshelf/geoshelf/internal/scanner"
)

func metadataCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metadata",
		Short: "Extract, validate and export dataset metadata",
	}
	cmd.AddCommand(metadataExtractCmd())
	cmd.AddCommand(metadataExportCmd())
	return cmd
}

func metadataExtractCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "extract <file>",
		Short: "Show the enhanced metadata record for a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			manager := metadata.NewManager()

			meta, err := scanner.New().Extract(args[0])
			if err != nil {
				return err
			}

			enhanced := manager.CreateEnhanced(meta, manager.ExtractExisting(args[0]))
			data, err := json.MarshalIndent(enhanced, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to render metadata: %w", err)
			}
			fmt.Println(string(data))
			return nil
		},
	}
}

func metadataExportCmd() *cobra.Command {
	var (
		format       string
		autoComplete bool
		skipValidate bool
	)

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "Export dataset metadata as FGDC or ISO 19115 XML",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			manager := metadata.NewManager()

			meta, err := scanner.New().Extract(args[0])
			if err != nil {
				return err
			}
			record := manager.CreateEnhanced(meta, manager.ExtractExisting(args[0]))

			if autoComplete {
				record = manager.AutoComplete(record)
			}

			if !skipValidate {
				if valid, issues := manager.Validate(record); !valid {
					for _, issue := range issues {
						fmt.Println(cli.FormatWarning(issue))
					}
				}
			}

			format = strings.ToLower(format)
			base := strings.TrimSuffix(args[0], filepath.Ext(args[0]))
			outputPath := base + "_" + format + ".xml"

			var ok bool
			if format == "iso" {
				ok = export.ToISO(record, outputPath)
			} else {
				ok = export.ToFGDC(record, outputPath)
			}
			if !ok {
				return fmt.Errorf("failed to write %s metadata to %s", format, outputPath)
			}

			fmt.Println(cli.FormatSuccess("Wrote " + outputPath))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "fgdc", "metadata standard (fgdc, iso)")
	cmd.Flags().BoolVar(&autoComplete, "auto-complete", false, "fill missing fields before export")
	cmd.Flags().BoolVar(&skipValidate, "skip-validation", false, "do not report validation issues")
	return cmd
}
