package model

import "sort"

// TagStats summarizes one extraction run. Derived, recomputed every run;
// never persisted as authoritative state.
type TagStats struct {
	Total          int            `json:"total"`           // records extracted (post-blocklist)
	Unique         int            `json:"unique"`          // canonical records after identity dedup
	ByKind         map[string]int `json:"by_kind"`         // canonical counts per kind
	FilesScanned   int            `json:"files_scanned"`   // documents visited
	Duplicates     int            `json:"duplicates"`      // same id, same label
	Contradictions int            `json:"contradictions"`  // same id, different label
	Orphaned       int            `json:"orphaned"`        // parent id unresolved in batch
	WellFormedIDs  int            `json:"well_formed_ids"` // canonical ids that parse as RFC 4122 UUIDs
}

// ScanError records a per-file failure that did not abort the batch.
type ScanError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Scope of an aggregation run.
const (
	ScopeLocal  = "local"
	ScopeGlobal = "global"
)

// AggregationResult is the sole artifact the core hands to collaborators
// (report writers, DB sync, graph renderers). It contains everything needed
// to reconstruct any downstream projection losslessly.
type AggregationResult struct {
	Scope          string                      `json:"scope"`
	Root           string                      `json:"root"` // scanned folder (local) or vault root (global)
	ByKind         map[string][]SemanticRecord `json:"records_by_kind"`
	Duplicates     []RecordPair                `json:"duplicates"`
	Contradictions []RecordPair                `json:"contradictions"`
	Orphaned       []SemanticRecord            `json:"orphaned"`
	Stats          TagStats                    `json:"stats"`
	Errors         []ScanError                 `json:"errors,omitempty"`

	// OutputHint is the conventional relative location a writer collaborator
	// should place local reports in. The core never writes files itself.
	OutputHint string `json:"output_hint,omitempty"`

	// Buckets maps each kind present in the result to its registry bucket
	// name. Populated in global scope only.
	Buckets map[string]string `json:"buckets,omitempty"`
}

// Kinds returns the kinds present in the result in sorted order, so every
// user-visible projection iterates deterministically.
func (r *AggregationResult) Kinds() []string {
	kinds := make([]string, 0, len(r.ByKind))
	for kind := range r.ByKind {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// Records returns all canonical records across kinds, ordered by kind then
// extraction order.
func (r *AggregationResult) Records() []SemanticRecord {
	var out []SemanticRecord
	for _, kind := range r.Kinds() {
		out = append(out, r.ByKind[kind]...)
	}
	return out
}
