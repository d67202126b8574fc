package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reelmatch/internal/parse"
)

func newParseCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <name>...",
		Short: "Show how file names are parsed into title and year",
		Args:  cobra.MinimumNArgs(1),
		Annotations: map[string]string{
			"skipConfigLoad": "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range args {
				parsed := parse.Parse(name)
				fmt.Fprintf(out, "%s\n", name)
				fmt.Fprintf(out, "  title: %s\n", parsed.Title)
				if parsed.Year > 0 {
					fmt.Fprintf(out, "  year:  %d\n", parsed.Year)
				}
				if terms := parse.SplitMixedTitle(parsed.Title); len(terms) > 1 {
					fmt.Fprintf(out, "  terms: %s\n", strings.Join(terms, " | "))
				}
			}
			return nil
		},
	}
}
