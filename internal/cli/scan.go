package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/obsmith/semvault/internal/model"
	"github.com/obsmith/semvault/internal/pipeline"
)

var (
	outJSON        string
	outMD          string
	outYAML        string
	recursive      bool
	scanTimeout    time.Duration
	workers        int
	filesPerSecond float64
	noCache        bool
	noFooter       bool
)

// scanCmd represents the scan command
var scanCmd = &cobra.Command{
	Use:   "scan <folder>",
	Short: "Scan one folder and report its semantic tags",
	Long: `Scan extracts tag markers from one vault folder (local scope):
- Discover markdown documents, optionally recursing into subfolders
- Parse markers in parallel with per-file error isolation
- Reconcile duplicates and contradictions by id
- Resolve parent/child hierarchy and flag orphans

Example:
  semvault scan ./03_PUBLICATIONS
  semvault scan ./Notes --json tags.json --md tags.md
  semvault scan ./Glossary --recursive=false --workers 4`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)

	// Output flags
	scanCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path")
	scanCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path")
	scanCmd.Flags().StringVar(&outYAML, "yaml", "", "output YAML path")
	scanCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")

	// Scan flags
	scanCmd.Flags().BoolVar(&recursive, "recursive", true, "recurse into subfolders")
	scanCmd.Flags().DurationVar(&scanTimeout, "timeout", 5*time.Minute, "overall scan timeout")
	scanCmd.Flags().IntVar(&workers, "workers", 0, "parse worker count (0 = config default)")
	scanCmd.Flags().Float64Var(&filesPerSecond, "files-per-second", 0, "throttle file dispatch (0 = unthrottled)")
	scanCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the per-file extraction cache")
}

func runScan(cmd *cobra.Command, args []string) error {
	folder := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
	defer cancel()

	cfg := loadConfig()
	if workers > 0 {
		cfg.Concurrency.Workers = workers
	}
	if filesPerSecond > 0 {
		cfg.Concurrency.FilesPerSecond = filesPerSecond
	}
	if noCache {
		cfg.Cache.Enabled = false
	}
	cfg.Output.IncludeFooter = !noFooter

	if verbose {
		fmt.Fprintf(os.Stderr, "Scanning: %s\n", folder)
		fmt.Fprintf(os.Stderr, "Recursive: %v\n", recursive)
		fmt.Fprintf(os.Stderr, "Workers: %d\n", cfg.Concurrency.Workers)
		fmt.Fprintln(os.Stderr)
	}

	a := pipeline.NewAggregator(cfg)
	res, err := a.AggregateLocal(ctx, folder, recursive)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	return renderResult(res, cfg.Output.IncludeFooter)
}

// renderResult writes the projections selected by the output flags and
// always prints the one-screen digest.
func renderResult(res *model.AggregationResult, includeFooter bool) error {
	r := pipeline.NewRenderer(includeFooter)

	if outJSON != "" {
		if err := r.RenderJSON(res, outJSON); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote JSON: %s\n", outJSON)
		}
	}
	if outYAML != "" {
		if err := r.RenderYAML(res, outYAML); err != nil {
			return fmt.Errorf("render YAML: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote YAML: %s\n", outYAML)
		}
	}
	if outMD != "" {
		if err := r.RenderMarkdown(res, outMD); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote Markdown: %s\n", outMD)
		}
	}

	r.RenderSummary(res)
	return nil
}
