package textnorm

import "strings"

// Irregular forms that suffix rules cannot reach.
var irregularLemmas = map[string]string{
	"am": "be", "are": "be", "is": "be", "was": "be", "were": "be",
	"been": "be", "being": "be",
	"has": "have", "had": "have", "having": "have",
	"does": "do", "did": "do", "done": "do",
	"goes": "go", "went": "go", "gone": "go",
	"said": "say", "says": "say",
	"made": "make", "makes": "make",
	"took": "take", "taken": "take", "takes": "take",
	"came": "come", "comes": "come",
	"got": "get", "gotten": "get", "gets": "get",
	"gave": "give", "given": "give", "gives": "give",
	"found": "find", "finds": "find",
	"told": "tell", "tells": "tell",
	"knew": "know", "known": "know", "knows": "know",
	"thought": "think", "thinks": "think",
	"saw": "see", "seen": "see", "sees": "see",
	"left": "leave", "leaves": "leave",
	"felt": "feel", "feels": "feel",
	"kept": "keep", "keeps": "keep",
	"held": "hold", "holds": "hold",
	"brought": "bring", "brings": "bring",
	"began": "begin", "begun": "begin", "begins": "begin",
	"wrote": "write", "written": "write", "writes": "write",
	"ran": "run", "runs": "run", "running": "run",
	"children": "child", "men": "man", "women": "woman",
	"people": "person", "feet": "foot", "teeth": "tooth",
	"mice": "mouse", "lives": "life", "wives": "wife",
	"better": "good", "best": "good", "worse": "bad", "worst": "bad",
}

func isVowel(b byte) bool {
	switch b {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}

// lemmatize reduces a token to a base form using a table of irregular
// forms and conservative suffix rules. Short tokens pass through
// unchanged, suffix rules only fire when the stem stays pronounceable.
func lemmatize(token string) string {
	if lemma, ok := irregularLemmas[token]; ok {
		return lemma
	}
	if len(token) <= 3 {
		return token
	}

	switch {
	case strings.HasSuffix(token, "ies") && len(token) > 4:
		return token[:len(token)-3] + "y"
	case strings.HasSuffix(token, "sses"):
		return token[:len(token)-2]
	case strings.HasSuffix(token, "xes") || strings.HasSuffix(token, "zes") ||
		strings.HasSuffix(token, "ches") || strings.HasSuffix(token, "shes"):
		return token[:len(token)-2]
	case strings.HasSuffix(token, "ss") || strings.HasSuffix(token, "us") || strings.HasSuffix(token, "is"):
		return token
	case strings.HasSuffix(token, "ing") && len(token) > 5:
		return stripParticipleSuffix(token, 3)
	case strings.HasSuffix(token, "ied") && len(token) > 4:
		return token[:len(token)-3] + "y"
	case strings.HasSuffix(token, "ed") && len(token) > 4:
		return stripParticipleSuffix(token, 2)
	case strings.HasSuffix(token, "s"):
		return token[:len(token)-1]
	}
	return token
}

// stripParticipleSuffix removes an -ing or -ed suffix, undoing consonant
// doubling ("running" -> "run") and restoring a trailing e when the stem
// ends consonant+consonant+vowel patterns that need it ("making" -> "make").
func stripParticipleSuffix(token string, suffixLen int) string {
	stem := token[:len(token)-suffixLen]
	n := len(stem)
	if n >= 2 && stem[n-1] == stem[n-2] && !isVowel(stem[n-1]) && stem[n-1] != 'l' && stem[n-1] != 's' {
		return stem[:n-1]
	}
	if n >= 3 && !isVowel(stem[n-1]) && isVowel(stem[n-2]) && !isVowel(stem[n-3]) {
		switch stem[n-1] {
		case 'w', 'x', 'y':
		default:
			return stem + "e"
		}
	}
	return stem
}
