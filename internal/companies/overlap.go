package companies

import (
	"regexp"
	"strings"
)

var nonAlpha = regexp.MustCompile(`[^a-zA-Z]+`)

var overlapStopWords = map[string]bool{
	"the": true, "and": true, "but": true, "for": true, "with": true, "from": true,
	"was": true, "are": true, "been": true, "this": true, "that": true, "its": true,
	"our": true, "they": true, "their": true, "you": true, "your": true, "she": true,
	"him": true, "her": true, "them": true, "does": true, "did": true, "has": true,
	"have": true, "had": true, "not": true, "very": true, "just": true, "also": true,
	"about": true, "into": true, "over": true, "such": true, "than": true, "then": true,
	"each": true, "every": true, "all": true, "both": true, "few": true, "more": true,
	"most": true, "some": true, "any": true, "other": true, "what": true, "which": true,
	"who": true, "how": true, "where": true, "when": true, "will": true, "can": true,
	"would": true, "could": true, "should": true, "out": true, "get": true, "got": true,
	"like": true, "know": true, "think": true, "want": true, "need": true, "use": true,
	"using": true, "used": true, "one": true, "even": true, "still": true, "really": true,
	"much": true, "way": true, "going": true, "being": true, "there": true, "here": true,
	"new": true, "best": true, "top": true, "www": true, "com": true, "http": true,
	"https": true, "org": true, "net": true,
}

// TokenSet extracts lowercase ASCII-letter tokens of three or more characters, minus stop words
func TokenSet(text string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, t := range nonAlpha.Split(strings.ToLower(text), -1) {
		if len(t) >= 3 && !overlapStopWords[t] {
			set[t] = struct{}{}
		}
	}
	return set
}

// Jaccard returns |a∩b| / |a∪b|, or 0 when both sets are empty
func Jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	intersection := 0
	for t := range small {
		if _, ok := large[t]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}
