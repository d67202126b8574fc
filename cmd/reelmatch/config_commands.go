package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"reelmatch/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the reelmatch configuration",
	}

	configCmd.AddCommand(newConfigInitCommand(ctx))
	configCmd.AddCommand(newConfigShowCommand(ctx))

	return configCmd
}

func newConfigInitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write an annotated sample configuration file",
		Annotations: map[string]string{
			"skipConfigLoad": "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if ctx.configFlag != nil {
				path = strings.TrimSpace(*ctx.configFlag)
			}
			if path == "" {
				defaultPath, err := config.DefaultConfigPath()
				if err != nil {
					return err
				}
				path = defaultPath
			}
			if err := config.WriteSample(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", path)
			return nil
		},
	}
}

func newConfigShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Cache dir:    %s\n", cfg.CacheDir)
			fmt.Fprintf(out, "Log dir:      %s\n", cfg.LogDir)
			fmt.Fprintf(out, "Library dirs: %s\n", formatList(cfg.LibraryDirs))
			fmt.Fprintf(out, "Log level:    %s\n", cfg.LogLevel)
			fmt.Fprintf(out, "Log format:   %s\n", cfg.LogFormat)
			fmt.Fprintf(out, "TMDB enabled: %s\n", yesNo(cfg.TMDBEnabled()))
			fmt.Fprintf(out, "TMDB language: %s\n", cfg.TMDB.Language)
			fmt.Fprintln(out, "Scrape policy:")
			fmt.Fprintf(out, "  fuzzy_threshold:          %.2f\n", cfg.Scrape.FuzzyThreshold)
			fmt.Fprintf(out, "  no_year_floor:            %.2f\n", cfg.Scrape.NoYearFloor)
			fmt.Fprintf(out, "  single_result_confidence: %.2f\n", cfg.Scrape.SingleResultConfidence)
			fmt.Fprintf(out, "  cache_search_limit:       %d\n", cfg.Scrape.CacheSearchLimit)
			fmt.Fprintf(out, "  max_candidates:           %d\n", cfg.Scrape.MaxCandidates)
			return nil
		},
	}
}

func formatList(values []string) string {
	if len(values) == 0 {
		return "(none)"
	}
	return strings.Join(values, ", ")
}
