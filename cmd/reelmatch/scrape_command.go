package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"reelmatch/internal/matching"
	"reelmatch/internal/scanner"
	"reelmatch/internal/scrape"
)

func newScrapeCommand(ctx *commandContext) *cobra.Command {
	var kindFlag string
	var noNetwork bool
	var showDebug bool

	cmd := &cobra.Command{
		Use:   "scrape [path...]",
		Short: "Match scanned media files against the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := parseKind(kindFlag)
			if err != nil {
				return err
			}
			roots, err := ctx.libraryRoots(args)
			if err != nil {
				return err
			}
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			lock := flock.New(filepath.Join(cfg.CacheDir, "reelmatch.lock"))
			ok, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire scrape lock: %w", err)
			}
			if !ok {
				return scrape.ErrJobRunning
			}
			defer lock.Unlock()

			store, err := ctx.openStore()
			if err != nil {
				return err
			}
			defer store.Close()

			var provider scrape.Provider
			if !noNetwork {
				provider, err = ctx.newProvider()
				if err != nil {
					return err
				}
			}

			files, err := scanner.New(logger).Scan(cmd.Context(), roots)
			if err != nil {
				return err
			}
			for i := range files {
				files[i].Kind = kind
			}
			files = scanner.DeduplicateByTitle(files)

			out := cmd.OutOrStdout()
			if len(files) == 0 {
				fmt.Fprintln(out, "No media files found.")
				return nil
			}

			opts := scrape.Options{
				Policy: matching.Policy{
					FuzzyThreshold: cfg.Scrape.FuzzyThreshold,
					NoYearFloor:    cfg.Scrape.NoYearFloor,
					YearTolerance:  matching.DefaultPolicy().YearTolerance,
					MaxCandidates:  cfg.Scrape.MaxCandidates,
				},
				SingleResultConfidence: cfg.Scrape.SingleResultConfidence,
				CacheSearchLimit:       cfg.Scrape.CacheSearchLimit,
			}
			runner := scrape.NewRunner(scrape.New(store, provider, opts, logger))

			// An interrupt requests cooperative cancellation: the in-flight
			// item finishes, partial results are still printed.
			sigCtx, stopSignals := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stopSignals()

			if _, err := runner.Start(sigCtx, files); err != nil {
				return err
			}
			go func() {
				<-sigCtx.Done()
				runner.Cancel()
			}()

			stopDisplay := startProgressDisplay(out, runner.Progress)
			results := runner.Wait()
			stopDisplay()

			if progress, ok := runner.Progress(); ok && progress.Status == scrape.StatusCancelled {
				fmt.Fprintln(out, "Scrape cancelled; partial results below.")
			}
			printScrapeResults(out, results, showDebug)
			return nil
		},
	}

	cmd.Flags().StringVar(&kindFlag, "kind", "movie", "Media kind to match (movie or tv)")
	cmd.Flags().BoolVar(&noNetwork, "no-network", false, "Resolve against the local cache only")
	cmd.Flags().BoolVar(&showDebug, "debug-unmatched", false, "Show diagnostics for unmatched files")
	return cmd
}

// startProgressDisplay polls the job and refreshes a single status line while
// it runs. It is a no-op when output is not a terminal.
func startProgressDisplay(out io.Writer, progress func() (scrape.Progress, bool)) func() {
	file, ok := out.(*os.File)
	if !ok || !isTerminal(file.Fd()) {
		return func() {}
	}

	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		ticker := time.NewTicker(200 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				fmt.Fprint(out, "\r\033[K")
				return
			case <-ticker.C:
				if p, ok := progress(); ok {
					fmt.Fprintf(out, "\r\033[K%d/%d  %s", p.Processed, p.Total, p.CurrentItem)
				}
			}
		}
	}()
	return func() {
		close(done)
		<-finished
	}
}

func printScrapeResults(out io.Writer, results []scrape.ItemResult, showDebug bool) {
	matched := newResultTable(
		col("File"), col("Matched Title"), numCol("TMDB ID"), numCol("Confidence"), col("Type"))
	unmatchedCols := []column{col("Unmatched File"), col("Parsed Title")}
	if showDebug {
		unmatchedCols = append(unmatchedCols, col("Reason"), col("Candidates"), col("Best Rejected"))
	}
	unmatched := newResultTable(unmatchedCols...)

	for _, r := range results {
		if r.Matched {
			matched.addRow(r.File.Name, r.Title, r.TMDBID,
				fmt.Sprintf("%.2f", r.Confidence), string(r.Type))
			continue
		}
		if showDebug && r.Debug != nil {
			unmatched.addRow(r.File.Name, r.File.ParsedTitle, r.Debug.Reason,
				fmt.Sprintf("cache=%d live=%d", r.Debug.CacheCount, r.Debug.LiveCount),
				debugBest(r.Debug))
			continue
		}
		unmatched.addRow(r.File.Name, r.File.ParsedTitle)
	}

	if !matched.empty() {
		fmt.Fprintln(out, matched.render())
	}
	if !unmatched.empty() {
		fmt.Fprintln(out, unmatched.render())
	}
	fmt.Fprintf(out, "%d matched, %d unmatched\n", len(matched.rows), len(unmatched.rows))
}

func debugBest(debug *scrape.DebugInfo) string {
	if debug.BestTitle == "" {
		return "-"
	}
	return fmt.Sprintf("%s (%.2f)", debug.BestTitle, debug.BestSimilarity)
}
