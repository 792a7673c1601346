// Package extract decodes inline semantic tag markers from note text.
//
// The grammar is deliberately isolated behind TagExtractor so that changes
// to the marker syntax never ripple into deduplication or hierarchy logic.
package extract

import (
	"regexp"
	"strings"

	"github.com/obsmith/semvault/internal/model"
)

// tagPattern matches one inline marker of the shape
//
//	%%tag::TYPE::ID::"LABEL"::PARENT%%
//
// TYPE may carry a single-colon subtype (Custom:Postulate). ID is restricted
// to hex digits and dashes; anything else simply fails to match, which is the
// intended graceful degradation over partial or malformed markup.
var tagPattern = regexp.MustCompile(`(?i)%%tag::([^:%]+(?::[^:%]+)?)::([a-f0-9-]+)::"([^"]+)"::([^%]*)%%`)

// TagExtractor turns raw document text into semantic records.
type TagExtractor struct {
	contextLines int
}

// NewTagExtractor creates an extractor that captures contextLines lines of
// surrounding text per record.
func NewTagExtractor(contextLines int) *TagExtractor {
	if contextLines < 0 {
		contextLines = 0
	}
	return &TagExtractor{contextLines: contextLines}
}

// Extract parses every marker in content and returns records in
// line-ascending order. relPath becomes the records' source file. Parsing is
// pure: the same content always yields the same records.
//
// Matching is per-line so line numbers are well defined; a marker may not
// span lines, and multiple markers on one line are all extracted.
func (e *TagExtractor) Extract(content, relPath string) []model.SemanticRecord {
	lines := strings.Split(content, "\n")
	var records []model.SemanticRecord

	for i, line := range lines {
		matches := tagPattern.FindAllStringSubmatch(line, -1)
		if matches == nil {
			continue
		}
		lineNum := i + 1

		for _, m := range matches {
			kind, subkind := splitKind(m[1])
			records = append(records, model.SemanticRecord{
				Kind:     kind,
				Subkind:  subkind,
				ID:       m[2],
				Label:    m[3],
				ParentID: normalizeParent(m[4]),
				Source: model.SourceLocation{
					File: relPath,
					Line: lineNum,
				},
				Context: e.context(lines, i),
			})
		}
	}

	return records
}

// splitKind separates a subtyped TYPE field. A colon forces the kind to the
// generic Custom marker regardless of what was written before it.
func splitKind(raw string) (kind, subkind string) {
	raw = strings.TrimSpace(raw)
	if idx := strings.Index(raw, ":"); idx >= 0 {
		return model.KindCustom, strings.TrimSpace(raw[idx+1:])
	}
	return raw, ""
}

// normalizeParent maps the "null" literal and the empty field to "no parent".
func normalizeParent(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || strings.EqualFold(raw, "null") {
		return ""
	}
	return raw
}

// context captures surrounding lines for display and debugging. It never
// participates in record identity.
func (e *TagExtractor) context(lines []string, idx int) string {
	if e.contextLines == 0 {
		return ""
	}
	start := idx - e.contextLines
	if start < 0 {
		start = 0
	}
	end := idx + e.contextLines + 1
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start:end], "\n")
}
