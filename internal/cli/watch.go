package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/obsmith/semvault/internal/pipeline"
	"github.com/obsmith/semvault/internal/walker"
)

var debounce time.Duration

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch <folder>",
	Short: "Rescan a folder whenever its notes change",
	Long: `Watch monitors a folder and reruns a full local scan after changes
settle. Events are debounced so a burst of editor writes triggers one
rescan, and every rescan is a full pass: there is no incremental state
to drift out of sync.

Example:
  semvault watch ./Notes
  semvault watch ./03_PUBLICATIONS --debounce 2s --md report.md`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().DurationVar(&debounce, "debounce", 1*time.Second, "quiet period before a rescan")
	watchCmd.Flags().BoolVar(&recursive, "recursive", true, "recurse into subfolders")
	watchCmd.Flags().StringVar(&outJSON, "json", "", "rewrite this JSON report on each rescan")
	watchCmd.Flags().StringVar(&outMD, "md", "", "rewrite this Markdown report on each rescan")
	watchCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
}

func runWatch(cmd *cobra.Command, args []string) error {
	folder := args[0]
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := loadConfig()
	cfg.Output.IncludeFooter = !noFooter
	a := pipeline.NewAggregator(cfg)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = w.Close() }()

	if err := addWatches(w, folder, recursive, cfg.Scan.SkipDirs); err != nil {
		return err
	}

	rescan := func() {
		res, err := a.AggregateLocal(ctx, folder, recursive)
		if err != nil {
			fmt.Fprintf(os.Stderr, "rescan failed: %v\n", err)
			return
		}
		if err := renderResult(res, cfg.Output.IncludeFooter); err != nil {
			fmt.Fprintf(os.Stderr, "render failed: %v\n", err)
		}
	}

	// Initial scan before any event arrives.
	rescan()
	fmt.Fprintf(os.Stderr, "Watching %s (debounce %v; Ctrl-C to stop)\n", folder, debounce)

	var timer *time.Timer
	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			// A created directory needs its own watch before files in it
			// produce events.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && recursive {
					_ = addWatches(w, event.Name, true, cfg.Scan.SkipDirs)
				}
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			pending = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(os.Stderr, "watch error: %v\n", err)
		case <-pending:
			pending = nil
			rescan()
		}
	}
}

// relevant filters events down to markdown content changes.
func relevant(event fsnotify.Event) bool {
	if event.Op.Has(fsnotify.Chmod) {
		return false
	}
	if event.Op.Has(fsnotify.Create) {
		// Could be a new directory; decided by the caller.
		return true
	}
	return strings.EqualFold(filepath.Ext(event.Name), ".md")
}

// addWatches registers folder and, when recursive, every non-skipped
// subfolder. fsnotify watches are per-directory, not per-tree.
func addWatches(w *fsnotify.Watcher, folder string, recursive bool, skipDirs []string) error {
	dirs, err := walker.DiscoverDirs(folder, recursive, skipDirs)
	if err != nil {
		return err
	}
	for _, dir := range dirs {
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	return nil
}
