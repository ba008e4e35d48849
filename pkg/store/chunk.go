package store

// Chunk is a bounded slice of a document's text used as a retrieval unit.
// Chunks are immutable once created and only addressable through the corpus
// that holds them.
type Chunk struct {
	Text     string            `json:"text"`
	Metadata map[string]string `json:"metadata"`
}

// ScoredChunk pairs a chunk with its relevance score, in [0,1].
// Only used transiently while ranking; scores are discarded downstream.
type ScoredChunk struct {
	Chunk Chunk   `json:"chunk"`
	Score float64 `json:"score"`
}
