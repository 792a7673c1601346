// Package pipeline orchestrates discovery, extraction, deduplication, and
// hierarchy building into aggregation results.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/obsmith/semvault/internal/cache"
	"github.com/obsmith/semvault/internal/dedup"
	"github.com/obsmith/semvault/internal/extract"
	"github.com/obsmith/semvault/internal/graph"
	"github.com/obsmith/semvault/internal/hierarchy"
	"github.com/obsmith/semvault/internal/model"
	"github.com/obsmith/semvault/internal/walker"
	"github.com/obsmith/semvault/internal/worker"
)

// kindBuckets maps well-known kinds to their registry bucket names. Unknown
// kinds fall back to their lowercased name; they are valid data, not errors.
var kindBuckets = map[string]string{
	"Axiom":          "axioms",
	"Claim":          "claims",
	"Concept":        "concepts",
	"Evidence":       "evidence",
	"EvidenceBundle": "evidence",
	"Relationship":   "coherence",
	"Theory":         "theories",
	"Breakthrough":   "breakthroughs",
	"Timeline":       "timeline",
	"Math":           "math",
	"Progression":    "progression",
}

// BucketFor returns the registry bucket name for a kind.
func BucketFor(kind string) string {
	if bucket, ok := kindBuckets[kind]; ok {
		return bucket
	}
	return strings.ToLower(kind)
}

// Aggregator runs the extraction pipeline over local or global scope. It is
// stateless between calls: each run is a pure function of the filesystem and
// the config it was built with. Re-running is always a full rescan.
type Aggregator struct {
	cfg       *model.Config
	extractor *extract.TagExtractor
	reader    *Reader
	batch     *worker.BatchProcessor
	blocked   map[string]bool
}

// NewAggregator creates an aggregator from an explicit config.
func NewAggregator(cfg *model.Config) *Aggregator {
	var c cache.Cache
	if cfg.Cache.Enabled {
		if cfg.Cache.Dir != "" {
			c = cache.NewLayeredCache(cfg.Cache.TTL, cfg.Cache.Dir, cfg.Cache.TTL)
		} else {
			c = cache.NewMemoryCache(cfg.Cache.TTL, 10*time.Minute)
		}
	}

	blocked := make(map[string]bool, len(cfg.Scan.Blocklist))
	for _, kind := range cfg.Scan.Blocklist {
		blocked[strings.ToLower(kind)] = true
	}

	a := &Aggregator{
		cfg:       cfg,
		extractor: extract.NewTagExtractor(cfg.Scan.ContextLines),
		reader:    NewReader(c, cfg.Scan.MaxFileBytes),
		blocked:   blocked,
	}
	a.batch = worker.NewBatchProcessor(a.parseFile,
		cfg.Concurrency.Workers, cfg.Concurrency.FilesPerSecond, cfg.Concurrency.Burst)
	return a
}

func (a *Aggregator) parseFile(ctx context.Context, file worker.FileRef) ([]model.SemanticRecord, error) {
	content, err := a.reader.Read(file.Path)
	if err != nil {
		return nil, err
	}
	return a.extractor.Extract(content, file.Rel), nil
}

// AggregateLocal scans one target folder. A missing folder is a hard error:
// an empty result would be indistinguishable from a vault with no tags.
func (a *Aggregator) AggregateLocal(ctx context.Context, folder string, recursive bool) (*model.AggregationResult, error) {
	paths, err := walker.Discover(folder, recursive, a.cfg.Scan.SkipDirs)
	if err != nil {
		return nil, err
	}

	records, scanErrs := a.extractAll(ctx, fileRefs(paths, folder))

	res := a.analyze(records, len(paths), scanErrs)
	res.Scope = model.ScopeLocal
	res.Root = folder
	res.OutputHint = a.cfg.Output.LocalFolder
	return res, nil
}

// AggregateGlobal scans the configured vault subfolders and merges all
// records into one batch before deduplication, so cross-folder duplicates
// are caught. A missing vault root is a hard error; a missing subfolder is
// reported in the error list and skipped.
func (a *Aggregator) AggregateGlobal(ctx context.Context) (*model.AggregationResult, error) {
	root := a.cfg.Vault.Path
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("vault not found: %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault is not a folder: %s", root)
	}

	var files []worker.FileRef
	var scanErrs []model.ScanError
	for _, sub := range a.cfg.Vault.GlobalFolders {
		folder := filepath.Join(root, sub)
		paths, err := walker.Discover(folder, true, a.cfg.Scan.SkipDirs)
		if err != nil {
			scanErrs = append(scanErrs, model.ScanError{Path: folder, Message: err.Error()})
			continue
		}
		// Provenance stays relative to the vault root, not the subfolder.
		files = append(files, fileRefs(paths, root)...)
	}

	records, extractErrs := a.extractAll(ctx, files)
	scanErrs = append(scanErrs, extractErrs...)

	res := a.analyze(records, len(files), scanErrs)
	res.Scope = model.ScopeGlobal
	res.Root = root

	res.Buckets = make(map[string]string, len(res.ByKind))
	for kind := range res.ByKind {
		res.Buckets[kind] = BucketFor(kind)
	}
	return res, nil
}

// DeriveGraph mines cross-document relationship edges from a folder's raw
// text. This runs independently of tag extraction.
func (a *Aggregator) DeriveGraph(ctx context.Context, folder string, recursive bool) (*graph.Result, error) {
	paths, err := walker.Discover(folder, recursive, a.cfg.Scan.SkipDirs)
	if err != nil {
		return nil, err
	}

	b := graph.NewBuilder()
	for _, path := range paths {
		if ctx.Err() != nil {
			break
		}
		content, err := a.reader.Read(path)
		if err != nil {
			continue
		}
		source := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		b.AddDocument(source, content)
	}
	return b.Result(), nil
}

// extractAll parses every file through the worker pool, then merges records
// in deterministic order: results sorted by relative path, records within a
// file already line-ascending from the extractor.
func (a *Aggregator) extractAll(ctx context.Context, files []worker.FileRef) ([]model.SemanticRecord, []model.ScanError) {
	results := a.batch.ProcessFiles(ctx, files)

	sort.Slice(results, func(i, j int) bool {
		return results[i].File.Rel < results[j].File.Rel
	})

	var records []model.SemanticRecord
	var scanErrs []model.ScanError
	for _, res := range results {
		if res.Err != nil {
			scanErrs = append(scanErrs, model.ScanError{Path: res.File.Rel, Message: res.Err.Error()})
			continue
		}
		records = append(records, res.Records...)
	}
	return records, scanErrs
}

// analyze runs the single-threaded post-processing passes over the merged
// record list: blocklist filtering, identity dedup, hierarchy, statistics.
func (a *Aggregator) analyze(records []model.SemanticRecord, filesScanned int, scanErrs []model.ScanError) *model.AggregationResult {
	if len(a.blocked) > 0 {
		kept := records[:0:0]
		for _, rec := range records {
			if !a.blocked[strings.ToLower(rec.Kind)] {
				kept = append(kept, rec)
			}
		}
		records = kept
	}

	d := dedup.ByID(records)
	tree := hierarchy.Build(d.Unique)

	byKind := make(map[string][]model.SemanticRecord)
	stats := model.TagStats{
		Total:          len(records),
		Unique:         len(d.Unique),
		ByKind:         make(map[string]int),
		FilesScanned:   filesScanned,
		Duplicates:     len(d.Duplicates),
		Contradictions: len(d.Contradictions),
		Orphaned:       len(tree.Orphans),
	}
	for _, rec := range d.Unique {
		byKind[rec.Kind] = append(byKind[rec.Kind], rec)
		stats.ByKind[rec.Kind]++
		if _, err := uuid.Parse(rec.ID); err == nil {
			stats.WellFormedIDs++
		}
	}

	return &model.AggregationResult{
		ByKind:         byKind,
		Duplicates:     d.Duplicates,
		Contradictions: d.Contradictions,
		Orphaned:       tree.Orphans,
		Stats:          stats,
		Errors:         scanErrs,
	}
}

// fileRefs pairs absolute paths with their root-relative form.
func fileRefs(paths []string, root string) []worker.FileRef {
	refs := make([]worker.FileRef, 0, len(paths))
	for _, path := range paths {
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = path
		}
		refs = append(refs, worker.FileRef{Path: path, Rel: filepath.ToSlash(rel)})
	}
	return refs
}
