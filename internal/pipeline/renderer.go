package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/obsmith/semvault/internal/model"
)

// Renderer projects an AggregationResult into user-facing artifacts. All
// projections are derived views; the JSON form is the lossless one.
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a renderer.
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the full result as indented JSON.
func (r *Renderer) RenderJSON(res *model.AggregationResult, path string) error {
	data, err := json.MarshalIndent(res, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

// RenderYAML writes the full result as YAML.
func (r *Renderer) RenderYAML(res *model.AggregationResult, path string) error {
	data, err := yaml.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	return writeFile(path, data)
}

// RenderMarkdown writes a human-readable report.
func (r *Renderer) RenderMarkdown(res *model.AggregationResult, path string) error {
	return writeFile(path, []byte(r.Markdown(res)))
}

// Markdown builds the report text. Kinds and findings iterate in sorted
// order so identical inputs yield identical reports.
func (r *Renderer) Markdown(res *model.AggregationResult) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Semantic Tag Report\n\n")
	fmt.Fprintf(&b, "Scope: %s  \nRoot: `%s`\n\n", res.Scope, res.Root)

	b.WriteString("## Statistics\n\n")
	b.WriteString("| Metric | Count |\n|---|---|\n")
	fmt.Fprintf(&b, "| Files scanned | %d |\n", res.Stats.FilesScanned)
	fmt.Fprintf(&b, "| Tags extracted | %d |\n", res.Stats.Total)
	fmt.Fprintf(&b, "| Unique | %d |\n", res.Stats.Unique)
	fmt.Fprintf(&b, "| Duplicates | %d |\n", res.Stats.Duplicates)
	fmt.Fprintf(&b, "| Contradictions | %d |\n", res.Stats.Contradictions)
	fmt.Fprintf(&b, "| Orphaned | %d |\n", res.Stats.Orphaned)
	fmt.Fprintf(&b, "| Well-formed IDs | %d |\n\n", res.Stats.WellFormedIDs)

	for _, kind := range res.Kinds() {
		records := res.ByKind[kind]
		fmt.Fprintf(&b, "## %s (%d)\n\n", kind, len(records))
		for _, rec := range records {
			fmt.Fprintf(&b, "- **%s** `%s`", rec.Label, rec.ID)
			if rec.Subkind != "" {
				fmt.Fprintf(&b, " (%s)", rec.FullKind())
			}
			if rec.HasParent() {
				fmt.Fprintf(&b, " ← parent `%s`", rec.ParentID)
			}
			fmt.Fprintf(&b, " — %s:%d\n", rec.Source.File, rec.Source.Line)
		}
		b.WriteString("\n")
	}

	if len(res.Contradictions) > 0 {
		b.WriteString("## Contradictions\n\n")
		b.WriteString("Same id, different label. These need human review:\n\n")
		for _, pair := range res.Contradictions {
			fmt.Fprintf(&b, "- `%s`: %q at %s:%d vs %q at %s:%d\n",
				pair.Canonical.ID,
				pair.Canonical.Label, pair.Canonical.Source.File, pair.Canonical.Source.Line,
				pair.Flagged.Label, pair.Flagged.Source.File, pair.Flagged.Source.Line)
		}
		b.WriteString("\n")
	}

	if len(res.Orphaned) > 0 {
		b.WriteString("## Orphaned\n\n")
		b.WriteString("Parent id does not resolve within this scan:\n\n")
		for _, rec := range res.Orphaned {
			fmt.Fprintf(&b, "- **%s** `%s` → missing parent `%s` (%s:%d)\n",
				rec.Label, rec.ID, rec.ParentID, rec.Source.File, rec.Source.Line)
		}
		b.WriteString("\n")
	}

	if len(res.Errors) > 0 {
		b.WriteString("## Scan Errors\n\n")
		for _, e := range res.Errors {
			fmt.Fprintf(&b, "- `%s`: %s\n", e.Path, e.Message)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		fmt.Fprintf(&b, "---\nGenerated %s by semvault\n", time.Now().Format(time.RFC3339))
	}

	return b.String()
}

// RenderRegistries writes one registry file per bucket into dir. Kinds that
// share a bucket land in the same file.
func (r *Renderer) RenderRegistries(res *model.AggregationResult, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create registry dir: %w", err)
	}

	byBucket := make(map[string][]string)
	for _, kind := range res.Kinds() {
		bucket := res.Buckets[kind]
		if bucket == "" {
			bucket = BucketFor(kind)
		}
		byBucket[bucket] = append(byBucket[bucket], kind)
	}

	buckets := make([]string, 0, len(byBucket))
	for bucket := range byBucket {
		buckets = append(buckets, bucket)
	}
	sort.Strings(buckets)

	for _, bucket := range buckets {
		var b strings.Builder
		fmt.Fprintf(&b, "# Registry: %s\n\n", bucket)
		b.WriteString("| Label | Kind | ID | Parent | Source |\n|---|---|---|---|---|\n")
		for _, kind := range byBucket[bucket] {
			for _, rec := range res.ByKind[kind] {
				parent := rec.ParentID
				if parent == "" {
					parent = "-"
				}
				fmt.Fprintf(&b, "| %s | %s | `%s` | `%s` | %s:%d |\n",
					rec.Label, rec.FullKind(), rec.ID, parent, rec.Source.File, rec.Source.Line)
			}
		}
		if r.includeFooter {
			fmt.Fprintf(&b, "\nGenerated %s by semvault\n", time.Now().Format(time.RFC3339))
		}

		path := filepath.Join(dir, bucket+"_registry.md")
		if err := writeFile(path, []byte(b.String())); err != nil {
			return err
		}
	}
	return nil
}

// RenderSummary prints a one-screen digest to stdout.
func (r *Renderer) RenderSummary(res *model.AggregationResult) {
	fmt.Printf("Scanned %d files under %s (%s scope)\n",
		res.Stats.FilesScanned, res.Root, res.Scope)
	fmt.Printf("  %d tags, %d unique, %d duplicates, %d contradictions, %d orphaned\n",
		res.Stats.Total, res.Stats.Unique,
		res.Stats.Duplicates, res.Stats.Contradictions, res.Stats.Orphaned)
	for _, kind := range res.Kinds() {
		fmt.Printf("  %-16s %d\n", kind, res.Stats.ByKind[kind])
	}
	if len(res.Errors) > 0 {
		fmt.Printf("  %d files failed to scan\n", len(res.Errors))
	}
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
