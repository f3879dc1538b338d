package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldTransformer decomposes to NFKD, strips combining marks, and
// recomposes, so "café" and "cafe" normalize to the same token.
var foldTransformer = transform.Chain(
	norm.NFKD,
	runes.Remove(runes.In(unicode.Mn)),
	norm.NFC,
)

func foldDiacritics(text string) string {
	folded, _, err := transform.String(foldTransformer, text)
	if err != nil {
		return text
	}
	return folded
}

func isTokenRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '\''
}

// tokenize lowercases the text, folds diacritics, and splits it into runs
// of letters, digits, and internal apostrophes. Punctuation and whitespace
// never survive as tokens.
func tokenize(text string) []string {
	text = strings.ToLower(foldDiacritics(text))

	var tokens []string
	start := -1
	for i, r := range text {
		if isTokenRune(r) {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			if token := trimApostrophes(text[start:i]); token != "" {
				tokens = append(tokens, token)
			}
			start = -1
		}
	}
	if start >= 0 {
		if token := trimApostrophes(text[start:]); token != "" {
			tokens = append(tokens, token)
		}
	}
	return tokens
}

func trimApostrophes(token string) string {
	return strings.Trim(token, "'")
}
