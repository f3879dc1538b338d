package encoding

import (
	"math"
	"sort"
	"strings"

	"newswire/internal/store"
)

// FitVocabulary builds a vocabulary over the distinct tokens of the given
// normalized documents. Feature indexes are assigned in lexicographic word
// order, contiguous from zero, and each entry records the number of
// documents the word appears in. The corpus size is captured so later
// incremental encodes reuse the same idf statistics.
func FitVocabulary(texts []string) *store.Vocabulary {
	docFreq := make(map[string]int)
	for _, text := range texts {
		seen := make(map[string]struct{})
		for _, token := range strings.Fields(text) {
			if _, ok := seen[token]; ok {
				continue
			}
			seen[token] = struct{}{}
			docFreq[token]++
		}
	}

	words := make([]string, 0, len(docFreq))
	for word := range docFreq {
		words = append(words, word)
	}
	sort.Strings(words)

	vocab := &store.Vocabulary{FittedDocuments: len(texts)}
	for i, word := range words {
		vocab.Entries = append(vocab.Entries, store.VocabularyEntry{
			Word:         word,
			FeatureIndex: i,
			DocFrequency: docFreq[word],
		})
	}
	return vocab
}

// idfWeights computes the smoothed inverse document frequencies frozen into
// the vocabulary: ln((1+n)/(1+df)) + 1, where n is the fitted corpus size.
func idfWeights(vocab *store.Vocabulary) []float64 {
	weights := make([]float64, vocab.Size())
	n := float64(vocab.FittedDocuments)
	for _, entry := range vocab.Entries {
		weights[entry.FeatureIndex] = math.Log((1+n)/(1+float64(entry.DocFrequency))) + 1
	}
	return weights
}

// Transform encodes documents against a fitted vocabulary. Each vector is
// the raw term counts weighted by the vocabulary's frozen idf, then L2
// normalized. Tokens outside the vocabulary are ignored; a document with no
// known tokens encodes to the zero vector.
func Transform(vocab *store.Vocabulary, texts []string) [][]float32 {
	index := vocab.Index()
	idf := idfWeights(vocab)

	vectors := make([][]float32, len(texts))
	for d, text := range texts {
		weighted := make([]float64, vocab.Size())
		for _, token := range strings.Fields(text) {
			if i, ok := index[token]; ok {
				weighted[i] += idf[i]
			}
		}

		var norm float64
		for _, v := range weighted {
			norm += v * v
		}
		norm = math.Sqrt(norm)

		vector := make([]float32, vocab.Size())
		if norm > 0 {
			for i, v := range weighted {
				vector[i] = float32(v / norm)
			}
		}
		vectors[d] = vector
	}
	return vectors
}
