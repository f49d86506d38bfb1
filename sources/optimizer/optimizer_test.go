package optimizer

import (
	"fmt"
	"reportassist/sources/routing"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOptimizer() *Optimizer {
	return NewOptimizer(DefaultOptimizerConfig(), DefaultStopwords())
}

func paragraph(topic string, n int) string {
	return strings.Repeat(fmt.Sprintf("Le groupe publie ses indicateurs sur %s pour l'exercice. ", topic), n)
}

func reportDocument() string {
	return strings.Join([]string{
		"# Émissions de carbone",
		paragraph("les émissions de carbone du scope 1 et du scope 2", 12),
		"## Diversité et inclusion",
		paragraph("la diversité des équipes et la parité", 12),
		"## Gouvernance",
		paragraph("le conseil d'administration et la gouvernance", 12),
		"## Gestion de l'eau",
		paragraph("la consommation d'eau des usines", 12),
	}, "\n\n")
}

func TestChunkBySection(t *testing.T) {
	optimizer := newTestOptimizer()

	chunks := optimizer.ChunkBySection(reportDocument())

	require.Len(t, chunks, 4)
	assert.Equal(t, "Émissions de carbone", chunks[0].SectionTitle)
	assert.Equal(t, "Gestion de l'eau", chunks[3].SectionTitle)

	ids := map[string]bool{}
	for _, chunk := range chunks {
		assert.False(t, ids[chunk.ID], "duplicate id %s", chunk.ID)
		ids[chunk.ID] = true
		assert.Equal(t, (chunk.Metadata.LengthChars+3)/4, chunk.Metadata.EstimatedTokens)
		assert.NotContains(t, chunk.Text, "#")
	}
}

func TestChunkBySectionDropsShortSections(t *testing.T) {
	optimizer := newTestOptimizer()

	document := "Court.\n\n# Titre vide\nTrop court.\n\n# Section utile\n" + paragraph("la gouvernance", 3)
	chunks := optimizer.ChunkBySection(document)

	require.Len(t, chunks, 1)
	assert.Equal(t, "Section utile", chunks[0].SectionTitle)
	assert.Equal(t, "chunk-0", chunks[0].ID)
}

func TestChunkBySectionKeepsLongPreamble(t *testing.T) {
	optimizer := newTestOptimizer()

	document := paragraph("le périmètre du rapport", 2) + "\n# Section\n" + paragraph("la gouvernance", 2)
	chunks := optimizer.ChunkBySection(document)

	require.Len(t, chunks, 2)
	assert.Equal(t, "Introduction", chunks[0].SectionTitle)
}

func TestChunkBySectionEmptyAndHeaderless(t *testing.T) {
	optimizer := newTestOptimizer()

	assert.Empty(t, optimizer.ChunkBySection(""))
	assert.Empty(t, optimizer.ChunkBySection("   \n\n "))
	assert.Empty(t, optimizer.ChunkBySection("ok"))

	document := paragraph("les émissions", 3) + "\n\n" + paragraph("la parité", 3)
	chunks := optimizer.ChunkBySection(document)
	require.NotEmpty(t, chunks)
	assert.Equal(t, "Part 1", chunks[0].SectionTitle)
}

func TestChunkByParagraphSplitsLargeDocuments(t *testing.T) {
	optimizer := NewOptimizer(&OptimizerConfig{MinChunkChars: 10, MaxParagraphChunkChars: 200, SimpleTopK: 3, MediumTopK: 5}, DefaultStopwords())

	paragraphs := make([]string, 0, 6)
	for i := 0; i < 6; i++ {
		paragraphs = append(paragraphs, strings.Repeat("x", 150))
	}

	chunks := optimizer.ChunkBySection(strings.Join(paragraphs, "\n\n"))
	assert.Len(t, chunks, 6)
}

func TestScoreRelevance(t *testing.T) {
	optimizer := newTestOptimizer()
	chunks := optimizer.ChunkBySection(reportDocument())

	scored := optimizer.ScoreRelevance("Quelles sont les émissions de carbone ?", chunks[0])
	other := optimizer.ScoreRelevance("Quelles sont les émissions de carbone ?", chunks[2])

	assert.Greater(t, scored.RelevanceScore, other.RelevanceScore)
	assert.Contains(t, scored.MatchedTerms, "emissions")
	assert.Contains(t, scored.MatchedTerms, "carbone")
	assert.LessOrEqual(t, scored.RelevanceScore, 10.0)
}

func TestScoreRelevanceBounds(t *testing.T) {
	optimizer := newTestOptimizer()
	chunk := Chunk{SectionTitle: "alpha beta gamma delta", Text: strings.Repeat("alpha beta gamma delta epsilon zeta ", 20)}

	scored := optimizer.ScoreRelevance("alpha beta gamma delta epsilon zeta", chunk)
	assert.Equal(t, 10.0, scored.RelevanceScore)

	empty := optimizer.ScoreRelevance("", chunk)
	assert.Equal(t, 0.0, empty.RelevanceScore)
	assert.Empty(t, empty.MatchedTerms)

	stop := optimizer.ScoreRelevance("le la les a", chunk)
	assert.Equal(t, 0.0, stop.RelevanceScore)
	assert.Empty(t, stop.MatchedTerms)
}

func TestSelectTopChunks(t *testing.T) {
	optimizer := newTestOptimizer()
	chunks := optimizer.ChunkBySection(reportDocument())

	assert.Empty(t, optimizer.SelectTopChunks("gouvernance", chunks, 0))
	assert.Len(t, optimizer.SelectTopChunks("gouvernance", chunks, 100), len(chunks))

	top := optimizer.SelectTopChunks("gouvernance du conseil", chunks, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "Gouvernance", top[0].SectionTitle)
	assert.GreaterOrEqual(t, top[0].RelevanceScore, top[1].RelevanceScore)
}

func TestSelectTopChunksKeepsDocumentOrderOnTies(t *testing.T) {
	optimizer := newTestOptimizer()
	chunks := optimizer.ChunkBySection(reportDocument())

	top := optimizer.SelectTopChunks("", chunks, 3)
	require.Len(t, top, 3)
	assert.Equal(t, chunks[0].ID, top[0].ID)
	assert.Equal(t, chunks[1].ID, top[1].ID)
	assert.Equal(t, chunks[2].ID, top[2].ID)
}

func TestRebuildContext(t *testing.T) {
	assert.Equal(t, "", RebuildContext(nil))

	context := RebuildContext([]ScoredChunk{
		{Chunk: Chunk{SectionTitle: "Gouvernance", Text: "Texte A"}, RelevanceScore: 7.5},
		{Chunk: Chunk{SectionTitle: "Eau", Text: "Texte B"}, RelevanceScore: 1},
	})

	assert.True(t, strings.HasPrefix(context, "# Relevant report excerpts (2 sections)"))
	assert.Contains(t, context, "## Gouvernance\n_Relevance: 7.5/10_\n\nTexte A")
	assert.Contains(t, context, "\n\n---\n\n## Eau")
}

func TestOptimizeContextComplexKeepsEverything(t *testing.T) {
	optimizer := newTestOptimizer()
	document := reportDocument()

	result := optimizer.OptimizeContext(document, "Analyser en profondeur", routing.LevelComplex)

	assert.Equal(t, document, result.Context)
	assert.Equal(t, 0.0, result.Metadata.Reduction)
	assert.Equal(t, result.Metadata.OriginalTokens, result.Metadata.OptimizedTokens)
}

func TestOptimizeContextSimpleUsesThreeChunks(t *testing.T) {
	optimizer := newTestOptimizer()

	result := optimizer.OptimizeContext(reportDocument(), "Quelle est la consommation d'eau ?", routing.LevelSimple)

	assert.Equal(t, 3, result.Metadata.ChunksUsed)
	assert.Less(t, result.Metadata.OptimizedTokens, result.Metadata.OriginalTokens)
	assert.Greater(t, result.Metadata.Reduction, 0.0)
	assert.Contains(t, result.Context, "## Gestion de l'eau")
}

func TestOptimizeContextMediumCapsAtSectionCount(t *testing.T) {
	optimizer := newTestOptimizer()

	result := optimizer.OptimizeContext(reportDocument(), "Expliquer la politique de diversité", routing.LevelMedium)

	assert.Equal(t, 4, result.Metadata.ChunksUsed)
}

func TestOptimizeContextSmallDocument(t *testing.T) {
	optimizer := newTestOptimizer()

	document := "# Eau\n" + paragraph("l'eau", 1)
	result := optimizer.OptimizeContext(document, "eau", routing.LevelSimple)

	assert.Equal(t, 1, result.Metadata.ChunksUsed)
	assert.LessOrEqual(t, result.Metadata.Reduction, 0.0)
}

func TestOptimizeContextWithoutChunks(t *testing.T) {
	optimizer := newTestOptimizer()

	result := optimizer.OptimizeContext("", "eau", routing.LevelSimple)
	assert.Equal(t, "", result.Context)
	assert.Equal(t, 0, result.Metadata.ChunksUsed)
	assert.Equal(t, 0.0, result.Metadata.Reduction)
}
