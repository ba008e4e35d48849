package utils

import "fmt"

// SplitText splits a long string into chunks of at most 'chunkSize' runes.
// Each chunk after the first begins 'overlap' runes before the end of the
// previous one, so dropping the first 'overlap' runes of every chunk after
// the first and concatenating reconstructs the original text exactly.
// This is a simple character-based splitter. Ideally, use a tokenizer-aware splitter.
func SplitText(text string, chunkSize int, overlap int) ([]string, error) {
	if chunkSize <= 0 {
		return nil, fmt.Errorf("invalid chunk size %d", chunkSize)
	}
	if overlap < 0 || overlap >= chunkSize {
		return nil, fmt.Errorf("invalid overlap %d for chunk size %d", overlap, chunkSize)
	}

	runes := []rune(text)
	totalLen := len(runes)
	if totalLen <= chunkSize {
		return []string{text}, nil
	}

	step := chunkSize - overlap

	var chunks []string
	for i := 0; i < totalLen; i += step {
		end := i + chunkSize
		if end > totalLen {
			end = totalLen
		}

		chunks = append(chunks, string(runes[i:end]))

		if end == totalLen {
			break
		}
	}

	return chunks, nil
}
