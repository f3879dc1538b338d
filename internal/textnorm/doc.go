// Package textnorm turns raw article text into bag-of-words documents:
// lowercased, diacritic-folded, lemmatized tokens with stop words,
// punctuation, and whitespace removed, joined by single spaces.
package textnorm
