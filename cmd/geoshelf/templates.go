package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geoshelf/geoshelf/internal/cli"
	"github.com/geoshelf/geoshelf/internal/model"
)

func templatesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Inspect and export organization templates",
	}
	cmd.AddCommand(templatesListCmd())
	cmd.AddCommand(templatesSaveCmd())
	return cmd
}

func templatesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available organization templates",
		RunE: func(_ *cobra.Command, _ []string) error {
			organizer, err := initOrganizer()
			if err != nil {
				return err
			}

			for _, template := range organizer.Templates() {
				fmt.Println(cli.FormatTitle(template.Name))
				if template.Description != "" {
					fmt.Println(cli.SubtitleStyle.Render(template.Description))
				}
				fmt.Println(cli.RenderFolderTree(treeAsMap(template.FolderStructure)))
				fmt.Println()
			}
			return nil
		},
	}
}

func templatesSaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "save <name> <path>",
		Short: "Write a template to a JSON file, replacing any entry with the same name",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			organizer, err := initOrganizer()
			if err != nil {
				return err
			}

			template, err := organizer.Template(args[0])
			if err != nil {
				return err
			}
			if err := organizer.SaveTemplate(template, args[1]); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Wrote " + args[1]))
			return nil
		},
	}
}

func treeAsMap(tree model.FolderTree) map[string]any {
	out := make(map[string]any, len(tree.Roots))
	for _, root := range tree.Roots {
		out[root.Name] = nodeAsMap(root)
	}
	return out
}

func nodeAsMap(node *model.FolderNode) map[string]any {
	out := make(map[string]any, len(node.Children))
	for _, child := range node.Children {
		out[child.Name] = nodeAsMap(child)
	}
	return out
}
