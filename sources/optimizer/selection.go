package optimizer

import (
	"fmt"
	"sort"
	"strings"
)

const (
	contextHeader    = "# Relevant report excerpts"
	contextSeparator = "\n\n---\n\n"
)

// SelectTopChunks scores every chunk and keeps the k best. Ties keep document order.
func (x *Optimizer) SelectTopChunks(query string, chunks []Chunk, k int) []ScoredChunk {
	if k <= 0 || len(chunks) == 0 {
		return []ScoredChunk{}
	}

	terms := x.queryTerms(query)
	scored := make([]ScoredChunk, 0, len(chunks))
	for _, chunk := range chunks {
		scored = append(scored, scoreTerms(terms, chunk))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].RelevanceScore > scored[j].RelevanceScore
	})

	if k < len(scored) {
		scored = scored[:k]
	}
	return scored
}

// RebuildContext renders selected chunks as one document. No chunks means an empty context.
func RebuildContext(chunks []ScoredChunk) string {
	if len(chunks) == 0 {
		return ""
	}

	parts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		parts = append(parts, fmt.Sprintf("## %s\n_Relevance: %.1f/10_\n\n%s", chunk.SectionTitle, chunk.RelevanceScore, chunk.Text))
	}

	return fmt.Sprintf("%s (%d sections)\n\n%s", contextHeader, len(chunks), strings.Join(parts, contextSeparator))
}
