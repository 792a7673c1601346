package graph

import (
	"regexp"
	"strings"
)

// blockPattern matches the inline block convention
//
//	==BLOCKTYPE:SUBTYPE:REFID:UUID==content==
//
// This grammar is a companion to the tag marker grammar and serves only the
// graph deriver; the two are kept separate because they have different
// consumers.
var blockPattern = regexp.MustCompile(`==(\w+):(\w+):([^:=]+):([^=]+)==\s*([^=]*)==?`)

// Block is one decoded inline block marker.
type Block struct {
	BlockType string `json:"block_type"`
	Subtype   string `json:"subtype"`
	RefID     string `json:"ref_id"`
	UUID      string `json:"uuid"`
	Content   string `json:"content"`
}

// ParseBlocks decodes every block marker in content, in document order.
func ParseBlocks(content string) []Block {
	var blocks []Block
	for _, m := range blockPattern.FindAllStringSubmatch(content, -1) {
		blocks = append(blocks, Block{
			BlockType: m[1],
			Subtype:   m[2],
			RefID:     strings.TrimSpace(m[3]),
			UUID:      strings.TrimSpace(m[4]),
			Content:   strings.TrimSpace(m[5]),
		})
	}
	return blocks
}
