// Package graph mines cross-document relationships that are not expressed
// through explicit parent links: wikilinks, paper codes, law references, and
// cross-reference/evidence markers.
//
// Mining is deliberately permissive. The consumer is a visualization aid,
// not a correctness-critical index, so low-rate false positives are
// acceptable. Wikilinks are the backbone of the source format and must be
// captured exhaustively.
package graph

import (
	"regexp"
	"strings"

	"github.com/obsmith/semvault/internal/model"
)

// One pattern family per edge kind. Each family is independent; a document
// line can feed several of them.
var (
	wikilinkPattern = regexp.MustCompile(`\[\[([^\]|]+)(?:\|[^\]]+)?\]\]`)
	paperPattern    = regexp.MustCompile(`\b(P(?:0[1-9]|1[0-2]))\b`)
	lawPattern      = regexp.MustCompile(`\bLaw\s+([IVX]+)\b`)
	crossRefPattern = regexp.MustCompile(`==sent:cross-ref:([^:]+):`)
	evidencePattern = regexp.MustCompile(`==\w+:evidence:([^:]+):`)
)

// ExtractEdges mines all directed edges from one document's raw text.
// source is the document's logical name (typically the file stem).
func ExtractEdges(content, source string) []model.RelationshipEdge {
	var edges []model.RelationshipEdge

	for _, m := range wikilinkPattern.FindAllStringSubmatch(content, -1) {
		target := strings.TrimSpace(m[1])
		if target == "" {
			continue
		}
		edges = append(edges, model.RelationshipEdge{Source: source, Target: target, Kind: model.EdgeLinksTo})
	}

	for _, m := range paperPattern.FindAllStringSubmatch(content, -1) {
		target := m[1]
		// A paper mentioning its own code is not a relationship.
		if strings.HasPrefix(source, target) {
			continue
		}
		edges = append(edges, model.RelationshipEdge{Source: source, Target: target, Kind: model.EdgeReferences})
	}

	for _, m := range lawPattern.FindAllStringSubmatch(content, -1) {
		edges = append(edges, model.RelationshipEdge{Source: source, Target: "Law_" + m[1], Kind: model.EdgeInvokes})
	}

	for _, m := range crossRefPattern.FindAllStringSubmatch(content, -1) {
		edges = append(edges, model.RelationshipEdge{Source: source, Target: strings.TrimSpace(m[1]), Kind: model.EdgeCrossRefs})
	}

	for _, m := range evidencePattern.FindAllStringSubmatch(content, -1) {
		edges = append(edges, model.RelationshipEdge{Source: source, Target: strings.TrimSpace(m[1]), Kind: model.EdgeSupports})
	}

	return edges
}
