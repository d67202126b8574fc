package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"reelmatch/internal/catalog"
)

func newCacheCommand(ctx *commandContext) *cobra.Command {
	cacheCmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect the local catalog cache",
	}

	cacheCmd.AddCommand(newCacheStatsCommand(ctx))
	cacheCmd.AddCommand(newCacheSearchCommand(ctx))

	return cacheCmd
}

func newCacheStatsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog cache contents",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			movies, err := store.Count(cmd.Context(), catalog.KindMovie)
			if err != nil {
				return err
			}
			shows, err := store.Count(cmd.Context(), catalog.KindTV)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Database: %s\n", store.Path())
			fmt.Fprintf(out, "Movies:   %d\n", movies)
			fmt.Fprintf(out, "TV shows: %d\n", shows)
			return nil
		},
	}
}

func newCacheSearchCommand(ctx *commandContext) *cobra.Command {
	var kindFlag string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <title>",
		Short: "Search cached entries by title",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(kindFlag)
			if err != nil {
				return err
			}
			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			entries, err := store.SearchByTitle(cmd.Context(), kind, args[0], limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No cached entries match.")
				return nil
			}

			tbl := newResultTable(
				numCol("TMDB ID"), col("Title"), col("Chinese Title"), numCol("Year"), numCol("Popularity"))
			for _, entry := range entries {
				year := ""
				if y := entry.Year(); y > 0 {
					year = strconv.Itoa(y)
				}
				tbl.addRow(entry.ID, entry.Title, entry.TitleCN, year,
					fmt.Sprintf("%.1f", entry.Popularity))
			}
			fmt.Fprintln(out, tbl.render())
			return nil
		},
	}

	cmd.Flags().StringVar(&kindFlag, "kind", "movie", "Media kind (movie or tv)")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum entries to show")
	return cmd
}
