package encoding

import (
	"errors"
	"fmt"
)

// ErrInvalidThreshold is returned when a similarity threshold falls outside
// the half-open interval [0, 1).
var ErrInvalidThreshold = errors.New("similarity threshold must satisfy 0 <= t < 1")

// ErrNoVocabulary is returned by an incremental encode when no vocabulary
// has been fitted yet. A rebuild fits one.
var ErrNoVocabulary = errors.New("no fitted vocabulary, run a rebuild first")

// InconsistentVocabularyError reports that stored vectors were encoded
// against a feature space of a different width than the current vocabulary,
// which makes incremental encoding unsound.
type InconsistentVocabularyError struct {
	VocabularySize int
	StoredWidth    int
}

func (e *InconsistentVocabularyError) Error() string {
	return fmt.Sprintf(
		"stored vectors have width %d but the vocabulary has %d features, rebuild required",
		e.StoredWidth, e.VocabularySize,
	)
}
