package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/obsmith/semvault/internal/pipeline"
)

var (
	aggTimeout     time.Duration
	withRegistries bool
	registryDir    string
)

// aggregateCmd represents the aggregate command
var aggregateCmd = &cobra.Command{
	Use:   "aggregate",
	Short: "Aggregate tags across the whole vault",
	Long: `Aggregate runs a global-scope scan over the conventional vault folders
(03_PUBLICATIONS, Glossary, Notes by default) and merges every extracted
record into one batch before deduplication, so duplicates that span
folders are caught.

With --registries it also writes one registry file per storage bucket
(axioms, claims, evidence, ...) into the master folder.

Example:
  semvault aggregate --vault ~/vault
  semvault aggregate --vault ~/vault --json vault.json --registries`,
	Args: cobra.NoArgs,
	RunE: runAggregate,
}

func init() {
	rootCmd.AddCommand(aggregateCmd)

	aggregateCmd.Flags().StringVar(&outJSON, "json", "", "output JSON path")
	aggregateCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path")
	aggregateCmd.Flags().StringVar(&outYAML, "yaml", "", "output YAML path")
	aggregateCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown output")
	aggregateCmd.Flags().BoolVar(&withRegistries, "registries", false, "write per-bucket registry files")
	aggregateCmd.Flags().StringVar(&registryDir, "registry-dir", "", "registry output dir (default: <vault>/<master folder>)")
	aggregateCmd.Flags().DurationVar(&aggTimeout, "timeout", 10*time.Minute, "overall aggregation timeout")
	aggregateCmd.Flags().IntVar(&workers, "workers", 0, "parse worker count (0 = config default)")
	aggregateCmd.Flags().Float64Var(&filesPerSecond, "files-per-second", 0, "throttle file dispatch (0 = unthrottled)")
	aggregateCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the per-file extraction cache")
}

func runAggregate(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), aggTimeout)
	defer cancel()

	cfg := loadConfig()
	if cfg.Vault.Path == "" {
		return fmt.Errorf("vault path not set (use --vault, SEMVAULT_VAULT_PATH, or the config file)")
	}
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
		fmt.Fprintf(os.Stderr, "Vault: %s\n", cfg.Vault.Path)
		fmt.Fprintf(os.Stderr, "Folders: %v\n", cfg.Vault.GlobalFolders)
		fmt.Fprintln(os.Stderr)
	}

	a := pipeline.NewAggregator(cfg)
	res, err := a.AggregateGlobal(ctx)
	if err != nil {
		return fmt.Errorf("aggregate failed: %w", err)
	}

	if withRegistries {
		dir := registryDir
		if dir == "" {
			dir = filepath.Join(cfg.Vault.Path, cfg.Vault.MasterFolder)
		}
		r := pipeline.NewRenderer(cfg.Output.IncludeFooter)
		if err := r.RenderRegistries(res, dir); err != nil {
			return fmt.Errorf("render registries: %w", err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote registries: %s\n", dir)
		}
	}

	return renderResult(res, cfg.Output.IncludeFooter)
}
