package utils

import (
	"strings"
	"testing"
)

func TestSplitTextShortInput(t *testing.T) {
	chunks, err := SplitText("hello", 500, 100)
	if err != nil {
		t.Fatalf("SplitText returned error: %v", err)
	}
	if len(chunks) != 1 || chunks[0] != "hello" {
		t.Errorf("short input should yield exactly one chunk, got %v", chunks)
	}
}

func TestSplitTextEmptyInput(t *testing.T) {
	chunks, err := SplitText("", 500, 100)
	if err != nil {
		t.Fatalf("SplitText returned error: %v", err)
	}
	if len(chunks) != 1 || chunks[0] != "" {
		t.Errorf("empty input should yield a single empty chunk, got %v", chunks)
	}
}

func TestSplitTextInvalidOverlap(t *testing.T) {
	if _, err := SplitText("some text", 100, 100); err == nil {
		t.Error("overlap == chunkSize should be rejected")
	}
	if _, err := SplitText("some text", 100, 150); err == nil {
		t.Error("overlap > chunkSize should be rejected")
	}
	if _, err := SplitText("some text", 0, 0); err == nil {
		t.Error("zero chunk size should be rejected")
	}
}

func TestSplitTextChunkBounds(t *testing.T) {
	text := strings.Repeat("abcdefghij", 130) // 1300 chars
	chunks, err := SplitText(text, 500, 100)
	if err != nil {
		t.Fatalf("SplitText returned error: %v", err)
	}
	if len(chunks) < 2 {
		t.Fatalf("expected multiple chunks, got %d", len(chunks))
	}
	for i, c := range chunks {
		if len([]rune(c)) > 500 {
			t.Errorf("chunk %d exceeds chunk size: %d runes", i, len([]rune(c)))
		}
	}
}

// Round trip: dropping the first 'overlap' runes of every chunk after the
// first and concatenating must reproduce the input losslessly.
func TestSplitTextRoundTrip(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		chunkSize int
		overlap   int
	}{
		{"exact multiple", strings.Repeat("x", 1200), 500, 100},
		{"ragged tail", strings.Repeat("paragraphs of policy text. ", 60), 500, 100},
		{"small windows", "the quick brown fox jumps over the lazy dog", 10, 3},
		{"unicode", strings.Repeat("héllo wörld ünïcode ", 40), 50, 10},
		{"no overlap", strings.Repeat("z", 777), 250, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := SplitText(tt.text, tt.chunkSize, tt.overlap)
			if err != nil {
				t.Fatalf("SplitText returned error: %v", err)
			}

			var sb strings.Builder
			for i, c := range chunks {
				runes := []rune(c)
				if i == 0 {
					sb.WriteString(c)
					continue
				}
				if len(runes) <= tt.overlap {
					t.Fatalf("chunk %d shorter than overlap (%d runes)", i, len(runes))
				}
				sb.WriteString(string(runes[tt.overlap:]))
			}

			if sb.String() != tt.text {
				t.Errorf("round trip mismatch: got %d chars, want %d", sb.Len(), len(tt.text))
			}
		})
	}
}
