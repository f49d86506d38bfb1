package optimizer

type ChunkMetadata struct {
	LengthChars     int
	EstimatedTokens int
}

// Chunk is a labeled slice of the knowledge document, the unit of relevance scoring.
type Chunk struct {
	ID           string
	SectionTitle string
	Text         string
	Metadata     ChunkMetadata
}

type ScoredChunk struct {
	Chunk
	RelevanceScore float64
	MatchedTerms   []string
}

type ContextMetadata struct {
	OriginalTokens  int
	OptimizedTokens int
	ChunksUsed      int
	// Reduction is the token saving in percent. Small documents can go negative because the
	// rebuilt layout adds a header and separators.
	Reduction float64
}

type OptimizedContext struct {
	Context  string
	Metadata ContextMetadata
}
