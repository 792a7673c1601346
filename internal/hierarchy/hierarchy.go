// Package hierarchy organizes canonical records into a parent→children tree.
package hierarchy

import "github.com/obsmith/semvault/internal/model"

// Tree is the parent→children index over one canonical record set. Every
// input record is classified into exactly one of Roots, children (reachable
// via Children), or Orphans.
type Tree struct {
	// Children maps a record id to the records that declare it as parent.
	// Orphans never appear as map keys' children since their parent id is
	// absent from the batch.
	Children map[string][]model.SemanticRecord

	// Roots have no parent reference.
	Roots []model.SemanticRecord

	// Orphans declare a parent id that does not resolve within the batch.
	// They are findings, not rejects: callers still include them in output.
	Orphans []model.SemanticRecord

	byID map[string]model.SemanticRecord
}

// Build indexes records by id and classifies each one. Resolution happens
// against the canonical (post-dedup) set the caller supplies; a parent that
// lost a contradiction elsewhere still resolves by its surviving identity.
// Runs in O(n) over a hash index, which matters for vault-wide batches.
func Build(records []model.SemanticRecord) *Tree {
	t := &Tree{
		Children: make(map[string][]model.SemanticRecord),
		byID:     make(map[string]model.SemanticRecord, len(records)),
	}

	for _, rec := range records {
		t.byID[rec.ID] = rec
	}

	for _, rec := range records {
		switch {
		case !rec.HasParent():
			t.Roots = append(t.Roots, rec)
		case t.resolves(rec.ParentID):
			t.Children[rec.ParentID] = append(t.Children[rec.ParentID], rec)
		default:
			t.Orphans = append(t.Orphans, rec)
		}
	}

	return t
}

func (t *Tree) resolves(id string) bool {
	_, ok := t.byID[id]
	return ok
}

// ChildrenOf returns the records subordinate to id, in input order.
func (t *Tree) ChildrenOf(id string) []model.SemanticRecord {
	return t.Children[id]
}

// Lookup returns the canonical record for id.
func (t *Tree) Lookup(id string) (model.SemanticRecord, bool) {
	rec, ok := t.byID[id]
	return rec, ok
}

// Parent returns the resolved parent of rec, if any.
func (t *Tree) Parent(rec model.SemanticRecord) (model.SemanticRecord, bool) {
	if !rec.HasParent() {
		return model.SemanticRecord{}, false
	}
	return t.Lookup(rec.ParentID)
}
