package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/obsmith/semvault/internal/pipeline"
)

var (
	graphJSON    string
	graphTimeout time.Duration
)

// graphCmd represents the graph command
var graphCmd = &cobra.Command{
	Use:   "graph <folder>",
	Short: "Mine cross-document relationship edges",
	Long: `Graph derives a directed edge set from raw document text, independent of
tag markers: wikilinks, paper code mentions, law references, explicit
cross-reference markers, and evidence-for markers.

Targets are loosely matched textual identifiers, not tag UUIDs; the edge
set feeds visualizations, never the canonical registries.

Example:
  semvault graph ./03_PUBLICATIONS --json edges.json`,
	Args: cobra.ExactArgs(1),
	RunE: runGraph,
}

func init() {
	rootCmd.AddCommand(graphCmd)

	graphCmd.Flags().StringVar(&graphJSON, "json", "", "output JSON path (default: stdout)")
	graphCmd.Flags().BoolVar(&recursive, "recursive", true, "recurse into subfolders")
	graphCmd.Flags().DurationVar(&graphTimeout, "timeout", 5*time.Minute, "overall mining timeout")
}

func runGraph(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), graphTimeout)
	defer cancel()

	cfg := loadConfig()
	a := pipeline.NewAggregator(cfg)

	res, err := a.DeriveGraph(ctx, args[0], recursive)
	if err != nil {
		return fmt.Errorf("graph failed: %w", err)
	}

	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal edges: %w", err)
	}

	if graphJSON == "" {
		fmt.Println(string(data))
	} else {
		if err := os.WriteFile(graphJSON, append(data, '\n'), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", graphJSON, err)
		}
		if verbose {
			fmt.Fprintf(os.Stderr, "Wrote edges: %s\n", graphJSON)
		}
	}

	fmt.Fprintf(os.Stderr, "%d edges across %d files (%d with edges)\n",
		len(res.Edges), res.Stats.Files, res.Stats.FilesWithEdges)
	return nil
}
