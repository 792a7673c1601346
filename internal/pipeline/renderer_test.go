package pipeline

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/obsmith/semvault/internal/model"
)

func sampleResult() *model.AggregationResult {
	rec := model.SemanticRecord{
		Kind: "Axiom", ID: "aa11", Label: "First Cause",
		Source: model.SourceLocation{File: "a.md", Line: 3},
	}
	return &model.AggregationResult{
		Scope:  model.ScopeGlobal,
		Root:   "/vault",
		ByKind: map[string][]model.SemanticRecord{"Axiom": {rec}},
		Stats: model.TagStats{
			Total: 1, Unique: 1, FilesScanned: 1,
			ByKind: map[string]int{"Axiom": 1},
		},
		Buckets: map[string]string{"Axiom": "axioms"},
	}
}

func TestRenderJSON_RoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.json")
	r := NewRenderer(false)
	if err := r.RenderJSON(sampleResult(), path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var got model.AggregationResult
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatal(err)
	}
	if got.Root != "/vault" || got.Stats.Unique != 1 {
		t.Errorf("decoded = %+v", got)
	}
}

func TestMarkdown_Content(t *testing.T) {
	r := NewRenderer(false)
	md := r.Markdown(sampleResult())

	for _, want := range []string{
		"# Semantic Tag Report",
		"| Files scanned | 1 |",
		"## Axiom (1)",
		"**First Cause** `aa11`",
		"a.md:3",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Contains(md, "Generated") {
		t.Error("footer rendered with includeFooter disabled")
	}
}

func TestMarkdown_Footer(t *testing.T) {
	r := NewRenderer(true)
	if !strings.Contains(r.Markdown(sampleResult()), "Generated") {
		t.Error("footer missing")
	}
}

func TestMarkdown_Findings(t *testing.T) {
	res := sampleResult()
	canonical := res.ByKind["Axiom"][0]
	flagged := canonical
	flagged.Label = "Prime Mover"
	flagged.Source = model.SourceLocation{File: "b.md", Line: 7}
	res.Contradictions = []model.RecordPair{{Canonical: canonical, Flagged: flagged}}
	orphan := model.SemanticRecord{
		Kind: "Claim", ID: "bb22", Label: "Stray", ParentID: "ff99",
		Source: model.SourceLocation{File: "c.md", Line: 1},
	}
	res.Orphaned = []model.SemanticRecord{orphan}
	res.Errors = []model.ScanError{{Path: "bad.md", Message: "open: permission denied"}}

	md := NewRenderer(false).Markdown(res)
	for _, want := range []string{
		"## Contradictions",
		`"First Cause" at a.md:3 vs "Prime Mover" at b.md:7`,
		"## Orphaned",
		"missing parent `ff99`",
		"## Scan Errors",
		"`bad.md`: open: permission denied",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q", want)
		}
	}
}

func TestRenderRegistries(t *testing.T) {
	res := sampleResult()
	res.ByKind["Evidence"] = []model.SemanticRecord{{
		Kind: "Evidence", ID: "cc33", Label: "Measurement",
		Source: model.SourceLocation{File: "e.md", Line: 2},
	}}
	res.ByKind["EvidenceBundle"] = []model.SemanticRecord{{
		Kind: "EvidenceBundle", ID: "dd44", Label: "Bundle",
		Source: model.SourceLocation{File: "e.md", Line: 9},
	}}
	res.Buckets = map[string]string{
		"Axiom": "axioms", "Evidence": "evidence", "EvidenceBundle": "evidence",
	}

	dir := t.TempDir()
	if err := NewRenderer(false).RenderRegistries(res, dir); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "evidence_registry.md"))
	if err != nil {
		t.Fatal(err)
	}
	// Both kinds share the evidence bucket and land in one registry.
	if !strings.Contains(string(data), "Measurement") || !strings.Contains(string(data), "Bundle") {
		t.Errorf("evidence registry:\n%s", data)
	}

	if _, err := os.Stat(filepath.Join(dir, "axioms_registry.md")); err != nil {
		t.Errorf("axioms registry missing: %v", err)
	}
}
