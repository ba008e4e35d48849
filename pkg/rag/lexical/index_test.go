package lexical

import (
	"fmt"
	"sync"
	"testing"

	"docchat-be/pkg/store"
)

func chunk(text string) store.Chunk {
	return store.Chunk{Text: text, Metadata: map[string]string{"source": "uploaded_document"}}
}

func TestSimilarity(t *testing.T) {
	tests := []struct {
		name  string
		query string
		text  string
		want  float64
	}{
		{
			name:  "full match via substrings",
			query: "refund policy",
			text:  "our refund policy allows returns within 30 days",
			want:  1.0,
		},
		{
			name:  "half match",
			query: "refund window",
			text:  "our refund policy allows returns within 30 days",
			want:  0.5,
		},
		{
			name:  "no match",
			query: "quantum physics",
			text:  "our refund policy allows returns within 30 days",
			want:  0,
		},
		{
			name:  "empty query",
			query: "",
			text:  "anything",
			want:  0,
		},
		{
			name:  "plural does not substring-match singular",
			query: "policies",
			text:  "policy document",
			want:  0,
		},
		{
			name:  "short word over-matching",
			query: "a",
			text:  "the warranty lasts two years",
			want:  1.0, // "a" is a substring of "warranty"; known permissiveness
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Similarity(tt.query, tt.text)
			if got != tt.want {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.query, tt.text, got, tt.want)
			}
		})
	}
}

func TestQueryRankingAndTies(t *testing.T) {
	idx := NewIndex()
	idx.Index([]store.Chunk{
		chunk("nothing relevant here at all"),
		chunk("the warranty lasts two years"),
		chunk("warranty claims are processed weekly"),
	})

	results := idx.Query("How long is the warranty?", 2)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Score < results[1].Score {
		t.Errorf("results not in descending score order: %v then %v", results[0].Score, results[1].Score)
	}

	// Ties must keep original chunk order.
	idx.Index([]store.Chunk{chunk("warranty first"), chunk("warranty second")})
	tied := idx.Query("warranty", 2)
	if tied[0].Chunk.Text != "warranty first" || tied[1].Chunk.Text != "warranty second" {
		t.Errorf("tie-break did not preserve chunk order: %q, %q", tied[0].Chunk.Text, tied[1].Chunk.Text)
	}
}

func TestQueryTopKBounds(t *testing.T) {
	idx := NewIndex()
	idx.Index([]store.Chunk{chunk("one"), chunk("two")})

	if got := idx.Query("one two", 5); len(got) != 2 {
		t.Errorf("k larger than corpus should return all chunks, got %d", len(got))
	}
	if got := idx.Query("one", 0); got != nil {
		t.Errorf("k=0 should return nothing, got %v", got)
	}
}

func TestIndexReplacementAtomicity(t *testing.T) {
	idx := NewIndex()

	corpusA := []store.Chunk{chunk("alpha a1"), chunk("alpha a2")}
	idx.Index(corpusA)
	idx.Index([]store.Chunk{chunk("beta b1"), chunk("beta b2")})

	for _, r := range idx.Query("alpha beta", 10) {
		if r.Chunk.Text == "alpha a1" || r.Chunk.Text == "alpha a2" {
			t.Fatalf("query returned chunk from replaced corpus: %q", r.Chunk.Text)
		}
	}
}

func TestConcurrentSwapNeverMixesCorpora(t *testing.T) {
	idx := NewIndex()

	generation := func(n int) []store.Chunk {
		gen := fmt.Sprintf("gen-%d", n)
		return []store.Chunk{
			{Text: "warranty chunk a", Metadata: map[string]string{"gen": gen}},
			{Text: "warranty chunk b", Metadata: map[string]string{"gen": gen}},
		}
	}
	idx.Index(generation(0))

	var wg sync.WaitGroup
	stop := make(chan struct{})

	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 1; i < 200; i++ {
			idx.Index(generation(i))
		}
		close(stop)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			results := idx.Query("warranty", 10)
			if len(results) == 0 {
				continue
			}
			first := results[0].Chunk.Metadata["gen"]
			for _, r := range results {
				if r.Chunk.Metadata["gen"] != first {
					t.Errorf("observed mixed corpora: %q vs %q", first, r.Chunk.Metadata["gen"])
					return
				}
			}
		}
	}()

	wg.Wait()
}

func TestReset(t *testing.T) {
	idx := NewIndex()
	if idx.Active() {
		t.Error("fresh index should not be active")
	}
	idx.Index([]store.Chunk{chunk("doc")})
	if !idx.Active() {
		t.Error("index should be active after Index")
	}
	idx.Reset()
	if idx.Active() {
		t.Error("index should be inactive after Reset")
	}
	if got := idx.Query("doc", 5); got != nil {
		t.Errorf("query after reset should return nothing, got %v", got)
	}
}
