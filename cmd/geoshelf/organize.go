package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geoshelf/geoshelf/internal/cli"
	"github.com/geoshelf/geoshelf/internal/organize"
	"github.com/geoshelf/geoshelf/internal/scanner"
)

func organizeCmd() *cobra.Command {
	var (
		templateName string
		dryRun       bool
		previewOnly  bool
	)

	cmd := &cobra.Command{
		Use:   "organize <source> <destination>",
		Short: "Organize datasets into a template folder structure",
		Long: `Scans the source directory, classifies every dataset, plans the move
into the destination folder structure and executes the plan. Use
--dry-run to log the operations without touching the filesystem.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			source, destination := args[0], args[1]

			classifier, err := initClassifier()
			if err != nil {
				return err
			}
			organizer, err := initOrganizer()
			if err != nil {
				return err
			}

			files, err := scanner.New().ScanDirectory(source)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				fmt.Println(cli.FormatWarning("No supported datasets found"))
				return nil
			}

			results := classifier.ClassifyBatch(files)
			plan, err := organizer.Plan(results, templateName, destination)
			if err != nil {
				return err
			}

			preview := organizer.Preview(plan)
			fmt.Println(cli.FormatTitle(fmt.Sprintf("Organizing %d datasets with %q", preview.FileCount, preview.Template)))
			fmt.Println(cli.RenderFolderTree(preview.FolderStructure))
			for _, collision := range plan.Collisions {
				fmt.Println(cli.FormatWarning("Destination collision: " + collision))
			}
			if previewOnly {
				return nil
			}

			result := organizer.Execute(plan, dryRun)

			if catalog, err := initCatalog(ctx); err == nil {
				if _, recordErr := catalog.RecordRun(ctx, result, dryRun); recordErr != nil {
					fmt.Println(cli.FormatWarning("Failed to record run: " + recordErr.Error()))
				}
				_ = catalog.Close()
			}

			if result.Success {
				fmt.Println(cli.FormatSuccess(result.Message))
			} else {
				fmt.Println(cli.FormatError(result.Message))
			}
			fmt.Printf("  %d succeeded, %d failed in %s\n", result.Successful, result.Failed, result.ExecutionTime)
			return nil
		},
	}

	cmd.Flags().StringVarP(&templateName, "template", "t", organize.TemplateStandard, "organization template name")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "log operations without moving any files")
	cmd.Flags().BoolVar(&previewOnly, "preview", false, "show the plan and exit")
	return cmd
}
