package graph

import (
	"sort"

	"github.com/obsmith/semvault/internal/model"
)

// LinkStats summarizes one graph mining run.
type LinkStats struct {
	Files          int                    `json:"files"`
	FilesWithEdges int                    `json:"files_with_edges"`
	Blocks         int                    `json:"blocks"`
	ByKind         map[model.EdgeKind]int `json:"by_kind"`
}

// DocumentBlock is a decoded block marker together with the document that
// holds it. Blocks are the graph's typed node material; edges alone carry
// no subtype or content.
type DocumentBlock struct {
	Source string `json:"source"`
	Block
}

// Result is the assembled edge and block set for a set of documents.
type Result struct {
	Edges  []model.RelationshipEdge `json:"edges"`
	Blocks []DocumentBlock          `json:"blocks,omitempty"`
	Stats  LinkStats                `json:"stats"`
}

// Builder accumulates edges and blocks across documents and assembles a
// deduplicated, deterministically ordered result. A Builder is single-use
// per scan.
type Builder struct {
	edges  []model.RelationshipEdge
	blocks []DocumentBlock
	files  int
	hits   int
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddDocument mines one document, folding its edges and block markers into
// the builder.
func (b *Builder) AddDocument(source, content string) {
	b.files++
	edges := ExtractEdges(content, source)
	if len(edges) > 0 {
		b.hits++
		b.edges = append(b.edges, edges...)
	}
	for _, block := range ParseBlocks(content) {
		b.blocks = append(b.blocks, DocumentBlock{Source: source, Block: block})
	}
}

// Result deduplicates edges by (source, target, kind) and returns them
// sorted, with stats. No reliance on map iteration order is user-visible.
func (b *Builder) Result() *Result {
	seen := make(map[model.RelationshipEdge]bool, len(b.edges))
	unique := make([]model.RelationshipEdge, 0, len(b.edges))
	byKind := make(map[model.EdgeKind]int)

	for _, edge := range b.edges {
		if seen[edge] {
			continue
		}
		seen[edge] = true
		unique = append(unique, edge)
		byKind[edge.Kind]++
	}

	sort.Slice(unique, func(i, j int) bool {
		a, c := unique[i], unique[j]
		if a.Source != c.Source {
			return a.Source < c.Source
		}
		if a.Target != c.Target {
			return a.Target < c.Target
		}
		return a.Kind < c.Kind
	})

	blocks := make([]DocumentBlock, len(b.blocks))
	copy(blocks, b.blocks)
	sort.SliceStable(blocks, func(i, j int) bool {
		return blocks[i].Source < blocks[j].Source
	})

	return &Result{
		Edges:  unique,
		Blocks: blocks,
		Stats: LinkStats{
			Files:          b.files,
			FilesWithEdges: b.hits,
			Blocks:         len(blocks),
			ByKind:         byKind,
		},
	}
}
