package dedup

import (
	"testing"

	"github.com/obsmith/semvault/internal/model"
)

func rec(kind, id, label string) model.SemanticRecord {
	return model.SemanticRecord{Kind: kind, ID: id, Label: label}
}

func TestByID_DistinctIDsAllUnique(t *testing.T) {
	in := []model.SemanticRecord{
		rec("Axiom", "a1", "First Cause"),
		rec("Claim", "b2", "Derived"),
		rec("Concept", "c3", "Idea"),
	}

	res := ByID(in)
	if len(res.Unique) != 3 || len(res.Duplicates) != 0 || len(res.Contradictions) != 0 {
		t.Fatalf("unexpected partition: %d unique, %d dup, %d contra",
			len(res.Unique), len(res.Duplicates), len(res.Contradictions))
	}
}

func TestByID_SameIDSameLabelIsDuplicate(t *testing.T) {
	in := []model.SemanticRecord{
		rec("Axiom", "a1", "First Cause"),
		rec("Axiom", "a1", "First Cause"),
		rec("Axiom", "a1", "First Cause"),
	}

	res := ByID(in)
	if len(res.Unique) != 1 {
		t.Errorf("expected 1 unique, got %d", len(res.Unique))
	}
	if len(res.Duplicates) != 2 {
		t.Errorf("expected 2 duplicate pairs, got %d", len(res.Duplicates))
	}
	for _, pair := range res.Duplicates {
		if pair.Canonical.Label != "First Cause" {
			t.Errorf("canonical should be the first-seen record")
		}
	}
}

func TestByID_SameIDDifferentLabelIsContradiction(t *testing.T) {
	in := []model.SemanticRecord{
		rec("Axiom", "a1", "First Cause"),
		rec("Axiom", "a1", "Prime Mover"),
	}

	res := ByID(in)
	if len(res.Contradictions) != 1 {
		t.Fatalf("expected 1 contradiction, got %d", len(res.Contradictions))
	}
	pair := res.Contradictions[0]
	if pair.Canonical.Label != "First Cause" || pair.Flagged.Label != "Prime Mover" {
		t.Errorf("expected first-seen to win as canonical, got %+v", pair)
	}
	if len(res.Duplicates) != 0 {
		t.Errorf("contradictions must not also count as duplicates")
	}
}

func TestByID_AccountingProperty(t *testing.T) {
	in := []model.SemanticRecord{
		rec("Axiom", "a1", "First Cause"),
		rec("Axiom", "a1", "First Cause"),
		rec("Axiom", "a1", "Prime Mover"),
		rec("Claim", "b2", "Derived"),
		rec("Claim", "b2", "Derived"),
		rec("Concept", "c3", "Idea"),
	}

	res := ByID(in)
	total := len(res.Unique) + len(res.Duplicates) + len(res.Contradictions)
	if total != len(in) {
		t.Errorf("partition must account for every input record: %d != %d", total, len(in))
	}
}

func TestByID_FirstSeenOrderIsDeterministic(t *testing.T) {
	in := []model.SemanticRecord{
		rec("Axiom", "a1", "From A"),
		rec("Axiom", "a1", "From B"),
	}

	for i := 0; i < 50; i++ {
		res := ByID(in)
		if res.Unique[0].Label != "From A" {
			t.Fatalf("run %d: canonical changed to %q", i, res.Unique[0].Label)
		}
	}
}

func TestByContent_CollapsesFreshUUIDCopies(t *testing.T) {
	in := []model.SemanticRecord{
		rec("Concept", "a1", "Wave Function"),
		rec("Concept", "b2", "wave function"),
		rec("Concept", "c3", "Wave  Function"),
		rec("Claim", "d4", "Wave Function"),
	}

	res := ByContent(in)
	if len(res.Unique) != 2 {
		t.Errorf("expected 2 unique (Concept + Claim), got %d", len(res.Unique))
	}
	if len(res.Duplicates) != 2 {
		t.Errorf("expected 2 duplicates, got %d", len(res.Duplicates))
	}
	if len(res.Contradictions) != 0 {
		t.Errorf("content pass never produces contradictions")
	}
}

func TestPassesCompose(t *testing.T) {
	in := []model.SemanticRecord{
		rec("Concept", "a1", "Wave Function"),
		rec("Concept", "a1", "Wave Function"), // identity duplicate
		rec("Concept", "b2", "wave function"), // content duplicate of a1
	}

	afterID := ByID(in)
	if len(afterID.Unique) != 2 {
		t.Fatalf("expected 2 unique after ByID, got %d", len(afterID.Unique))
	}

	afterContent := ByContent(afterID.Unique)
	if len(afterContent.Unique) != 1 {
		t.Errorf("expected 1 unique after composing passes, got %d", len(afterContent.Unique))
	}
}
