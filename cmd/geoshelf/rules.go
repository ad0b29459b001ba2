package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/geoshelf/geoshelf/internal/cli"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Inspect and export classification rules",
	}
	cmd.AddCommand(rulesListCmd())
	cmd.AddCommand(rulesExportCmd())
	return cmd
}

func rulesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the active classification rules",
		RunE: func(_ *cobra.Command, _ []string) error {
			classifier, err := initClassifier()
			if err != nil {
				return err
			}

			for _, rule := range classifier.Rules() {
				fmt.Println(cli.BoldStyle.Render(rule.Name))
				fmt.Printf("  category: %s\n", rule.Category)
				if rule.FilenamePattern != "" {
					fmt.Printf("  pattern:  %s\n", rule.FilenamePattern)
				}
				if rule.Priority != 0 {
					fmt.Printf("  priority: %d\n", rule.Priority)
				}
			}
			return nil
		},
	}
}

func rulesExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <path>",
		Short: "Write the active rule set to a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			classifier, err := initClassifier()
			if err != nil {
				return err
			}
			if err := classifier.SaveRules(args[0]); err != nil {
				return err
			}
			fmt.Println(cli.FormatSuccess("Wrote " + args[0]))
			return nil
		},
	}
}
