package model

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// KindCustom is the kind assigned to markers that carry a subkind
// (syntax `Custom:SubName`).
const KindCustom = "Custom"

// SourceLocation is the provenance of an extracted record.
type SourceLocation struct {
	File string `json:"file"` // path relative to the scan root
	Line int    `json:"line"` // 1-based
}

// SemanticRecord is one inline tag marker decoded from a vault note.
//
// Records are created once during parsing and never mutated; later stages
// only classify them (unique/duplicate/contradiction/orphan) and organize
// them into aggregate structures.
type SemanticRecord struct {
	Kind     string         `json:"kind"`                // Axiom, Claim, Concept, ... (open-ended)
	Subkind  string         `json:"subkind,omitempty"`   // set only when Kind == KindCustom
	ID       string         `json:"id"`                  // identity key (UUID-shaped token)
	Label    string         `json:"label"`               // human-readable title
	ParentID string         `json:"parent_id,omitempty"` // empty = no parent
	Source   SourceLocation `json:"source"`
	Context  string         `json:"context,omitempty"` // surrounding source lines, display only
}

// HasParent reports whether the record declares a parent.
func (r SemanticRecord) HasParent() bool {
	return r.ParentID != ""
}

// FullKind returns the kind as written in the marker, including the subkind.
func (r SemanticRecord) FullKind() string {
	if r.Subkind != "" {
		return r.Kind + ":" + r.Subkind
	}
	return r.Kind
}

// NormalizedLabel lowercases the label and collapses runs of whitespace.
// Used by content-based deduplication, never for identity.
func (r SemanticRecord) NormalizedLabel() string {
	return strings.ToLower(strings.Join(strings.Fields(r.Label), " "))
}

// ContentHash identifies records that describe the same concept under
// different machine identifiers (e.g. copy-pasted blocks with fresh UUIDs).
func (r SemanticRecord) ContentHash() string {
	sum := sha256.Sum256([]byte(r.Kind + ":" + r.NormalizedLabel()))
	return hex.EncodeToString(sum[:])[:12]
}

// Marker re-serializes the record into its source marker form. Parsing the
// returned string yields a record identical to r up to provenance.
func (r SemanticRecord) Marker() string {
	parent := r.ParentID
	if parent == "" {
		parent = "null"
	}
	return fmt.Sprintf(`%%%%tag::%s::%s::"%s"::%s%%%%`, r.FullKind(), r.ID, r.Label, parent)
}

// RecordPair links a flagged record to the canonical record it collides with.
type RecordPair struct {
	Canonical SemanticRecord `json:"canonical"`
	Flagged   SemanticRecord `json:"flagged"`
}

// EdgeKind classifies a mined cross-document relationship.
type EdgeKind string

const (
	EdgeLinksTo    EdgeKind = "links_to"   // wikilink target
	EdgeReferences EdgeKind = "references" // paper code mention
	EdgeInvokes    EdgeKind = "invokes"    // law reference
	EdgeCrossRefs  EdgeKind = "cross_refs" // explicit cross-reference marker
	EdgeSupports   EdgeKind = "supports"   // evidence-for marker
)

// RelationshipEdge is a directed edge mined from raw document text. Targets
// are loosely matched textual identifiers (wikilink targets, paper codes),
// not tag UUIDs.
type RelationshipEdge struct {
	Source string   `json:"source"` // logical document name
	Target string   `json:"target"`
	Kind   EdgeKind `json:"kind"`
}
