package lexical

import (
	"sort"
	"strings"
	"sync"

	"docchat-be/pkg/store"
)

// Index holds the chunks of the single most-recently uploaded document and
// scores them against a query by term overlap. At most one uploaded corpus
// exists process-wide; a new upload replaces the previous one wholesale.
//
// Queries racing with a replacement see either the fully-old or the fully-new
// corpus, never a mix: the chunk slice is swapped in a single assignment under
// the lock and never mutated afterwards.
type Index struct {
	mu     sync.RWMutex
	chunks []store.Chunk
	active bool
}

func NewIndex() *Index {
	return &Index{}
}

// Index replaces the entire held corpus atomically and activates the
// uploaded-document retrieval path.
func (idx *Index) Index(chunks []store.Chunk) {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.chunks = chunks
	idx.active = true
}

// Reset drops the uploaded corpus, reverting retrieval to the default corpus.
func (idx *Index) Reset() {
	idx.mu.Lock()
	defer idx.mu.Unlock()
	idx.chunks = nil
	idx.active = false
}

// Active reports whether an uploaded corpus is currently held.
func (idx *Index) Active() bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.active && len(idx.chunks) > 0
}

// Query scores every chunk against the query and returns at most k results in
// descending score order. Ties keep the original chunk order so results are
// deterministic.
func (idx *Index) Query(text string, k int) []store.ScoredChunk {
	idx.mu.RLock()
	chunks := idx.chunks
	idx.mu.RUnlock()

	if k <= 0 || len(chunks) == 0 {
		return nil
	}

	scored := make([]store.ScoredChunk, len(chunks))
	query := strings.ToLower(text)
	for i, c := range chunks {
		scored[i] = store.ScoredChunk{
			Chunk: c,
			Score: Similarity(query, strings.ToLower(c.Text)),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}

// Similarity computes the term-overlap score between a lowercased query and a
// lowercased text. A query word counts as matched when any text word contains
// it or is contained by it. The substring test is deliberately permissive to
// catch partial and stemmed matches; it is known to over-match on short words
// and is kept as-is for compatibility.
func Similarity(query, text string) float64 {
	queryWords := strings.Fields(query)
	if len(queryWords) == 0 {
		return 0
	}
	textWords := strings.Fields(text)

	matches := 0
	for _, q := range queryWords {
		for _, t := range textWords {
			if strings.Contains(t, q) || strings.Contains(q, t) {
				matches++
				break
			}
		}
	}

	return float64(matches) / float64(len(queryWords))
}
