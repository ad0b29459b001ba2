package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/geoshelf/geoshelf/internal/cli"
	"github.com/geoshelf/geoshelf/internal/scanner"
)

func classifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify <file>...",
		Short: "Classify datasets against the rule set",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			classifier, err := initClassifier()
			if err != nil {
				return err
			}
			sc := scanner.New()

			for _, path := range args {
				meta, err := sc.Extract(path)
				if err != nil {
					fmt.Println(cli.FormatError(fmt.Sprintf("%s: %v", path, err)))
					continue
				}

				result := classifier.Classify(meta)
				fmt.Println(cli.BoldStyle.Render(meta.Name))
				fmt.Printf("  category:   %s\n", result.Category)
				fmt.Printf("  confidence: %.2f\n", result.Confidence)
				fmt.Printf("  suggested:  %s\n", result.SuggestedPath)
				if len(result.MatchingRules) > 0 {
					fmt.Printf("  rules:      %s\n", strings.Join(result.MatchingRules, ", "))
				}
			}
			return nil
		},
	}
}
