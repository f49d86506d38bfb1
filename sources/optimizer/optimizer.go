package optimizer

import (
	"reportassist/sources/configuration"
	"reportassist/sources/routing"
	"reportassist/sources/texting"
)

type OptimizerConfig struct {
	MinChunkChars          int
	MaxParagraphChunkChars int
	SimpleTopK             int
	MediumTopK             int
}

func NewOptimizerConfig(config *configuration.Config) *OptimizerConfig {
	return &OptimizerConfig{
		MinChunkChars:          config.Optimizer.MinChunkChars,
		MaxParagraphChunkChars: config.Optimizer.MaxParagraphChunkChars,
		SimpleTopK:             config.Optimizer.SimpleTopK,
		MediumTopK:             config.Optimizer.MediumTopK,
	}
}

func DefaultOptimizerConfig() *OptimizerConfig {
	return &OptimizerConfig{MinChunkChars: 50, MaxParagraphChunkChars: 1500, SimpleTopK: 3, MediumTopK: 5}
}

// Optimizer shrinks the knowledge context to the sections relevant to a query.
// It holds no mutable state and is safe for concurrent use.
type Optimizer struct {
	config    *OptimizerConfig
	stopwords Stopwords
}

func NewOptimizer(config *OptimizerConfig, stopwords Stopwords) *Optimizer {
	return &Optimizer{config: config, stopwords: stopwords}
}

// OptimizeContext keeps the whole context for complex queries and the top sections otherwise:
// three for simple queries, five for medium ones.
func (x *Optimizer) OptimizeContext(fullContext, query string, level routing.Level) OptimizedContext {
	originalTokens := texting.EstimateTokens(fullContext)
	unchanged := OptimizedContext{
		Context:  fullContext,
		Metadata: ContextMetadata{OriginalTokens: originalTokens, OptimizedTokens: originalTokens},
	}

	k := x.config.MediumTopK
	switch level {
	case routing.LevelComplex:
		return unchanged
	case routing.LevelSimple:
		k = x.config.SimpleTopK
	}

	chunks := x.ChunkBySection(fullContext)
	if len(chunks) == 0 {
		return unchanged
	}

	selected := x.SelectTopChunks(query, chunks, k)
	context := RebuildContext(selected)
	optimizedTokens := texting.EstimateTokens(context)

	return OptimizedContext{
		Context: context,
		Metadata: ContextMetadata{
			OriginalTokens:  originalTokens,
			OptimizedTokens: optimizedTokens,
			ChunksUsed:      len(selected),
			Reduction:       reduction(originalTokens, optimizedTokens),
		},
	}
}

func reduction(original, optimized int) float64 {
	if original == 0 {
		return 0
	}
	return (1 - float64(optimized)/float64(original)) * 100
}
