package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"reelmatch/internal/scanner"
)

func newScanCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "scan [path...]",
		Short: "Walk library folders and list discovered media files",
		RunE: func(cmd *cobra.Command, args []string) error {
			roots, err := ctx.libraryRoots(args)
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			files, err := scanner.New(logger).Scan(cmd.Context(), roots)
			if err != nil {
				return err
			}
			files = scanner.DeduplicateByTitle(files)

			out := cmd.OutOrStdout()
			if len(files) == 0 {
				fmt.Fprintln(out, "No media files found.")
				return nil
			}

			tbl := newResultTable(col("Title"), numCol("Year"), col("File"), col("Strm"))
			for _, f := range files {
				year := ""
				if f.ParsedYear > 0 {
					year = strconv.Itoa(f.ParsedYear)
				}
				tbl.addRow(f.ParsedTitle, year, f.Name, yesNo(f.IsStrm))
			}
			fmt.Fprintln(out, tbl.render())
			fmt.Fprintf(out, "%d media files after deduplication\n", len(files))
			return nil
		},
	}
}
