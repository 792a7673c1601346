// Package dedup reconciles duplicate and contradictory records across an
// extraction batch.
//
// Two independent passes are provided. ByID resolves identity collisions
// (same id) and is the pass every aggregation runs. ByContent collapses
// records that describe the same concept under different machine
// identifiers; it is opt-in and composes with ByID in either order.
package dedup

import "github.com/obsmith/semvault/internal/model"

// Result partitions an input batch. Every input record lands in exactly one
// of the three sets, so
//
//	len(Unique) + len(Duplicates) + len(Contradictions) == len(input)
type Result struct {
	Unique         []model.SemanticRecord
	Duplicates     []model.RecordPair
	Contradictions []model.RecordPair
}

// ByID groups records by id. Within a group the first-seen record is
// canonical (callers must present records in deterministic scan order);
// every later record with the same label is a duplicate of it, and every
// later record with a different label is a contradiction. Contradictions are
// findings for human review, never auto-resolved.
func ByID(records []model.SemanticRecord) Result {
	var res Result
	canonical := make(map[string]model.SemanticRecord, len(records))

	for _, rec := range records {
		first, seen := canonical[rec.ID]
		if !seen {
			canonical[rec.ID] = rec
			res.Unique = append(res.Unique, rec)
			continue
		}
		pair := model.RecordPair{Canonical: first, Flagged: rec}
		if first.Label == rec.Label {
			res.Duplicates = append(res.Duplicates, pair)
		} else {
			res.Contradictions = append(res.Contradictions, pair)
		}
	}

	return res
}

// ByContent groups records by (kind, normalized label), collapsing
// copy-pasted markers that were re-minted with fresh ids. Labels that differ
// only in case or spacing count as the same content. The pass reports later
// records as duplicates of the first; it never produces contradictions,
// since content equality is its grouping key.
func ByContent(records []model.SemanticRecord) Result {
	var res Result
	canonical := make(map[string]model.SemanticRecord, len(records))

	for _, rec := range records {
		key := rec.ContentHash()
		first, seen := canonical[key]
		if !seen {
			canonical[key] = rec
			res.Unique = append(res.Unique, rec)
			continue
		}
		res.Duplicates = append(res.Duplicates, model.RecordPair{Canonical: first, Flagged: rec})
	}

	return res
}
