package companies

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const (
	// MaxCompetitorNames caps the normalized competitor list
	MaxCompetitorNames = 8
	maxNameWords       = 2
)

var nameSuffixes = map[string]bool{
	"inc": true, "ltd": true, "llc": true, "corp": true, "corporation": true, "co": true,
	"ai": true, "platform": true, "software": true, "solutions": true, "services": true,
	"tool": true, "tools": true, "app": true, "apps": true, "technology": true, "technologies": true,
	"group": true, "global": true, "labs": true, "studio": true, "studios": true,
	"discovery": true, "systems": true, "network": true, "networks": true,
}

// Words that mark an article headline rather than a company
var articleSignals = map[string]bool{
	"top": true, "best": true, "how": true, "what": true, "why": true, "review": true,
	"comparison": true, "guide": true, "list": true, "ways": true, "things": true,
	"tips": true, "report": true,
	"january": true, "february": true, "march": true, "april": true, "may": true, "june": true,
	"july": true, "august": true, "september": true, "october": true, "november": true, "december": true,
}

// NormalizeName strips parentheticals and generic suffixes, keeps at most two words and
// capitalizes all-lowercase words. ok is false when nothing usable remains.
func NormalizeName(raw string) (string, bool) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", false
	}

	for _, w := range strings.FieldsFunc(strings.ToLower(name), func(r rune) bool {
		return !unicode.IsLetter(r)
	}) {
		if articleSignals[w] {
			return "", false
		}
	}

	name = strings.TrimSpace(parenthetical.ReplaceAllString(name, " "))
	words := strings.Fields(name)

	for len(words) > 0 && isNameSuffix(words[len(words)-1]) {
		words = words[:len(words)-1]
	}
	for len(words) > 0 && isNameSuffix(words[0]) {
		words = words[1:]
	}
	if len(words) == 0 {
		return "", false
	}
	if len(words) > maxNameWords {
		words = words[:maxNameWords]
	}

	out := make([]string, len(words))
	for i, w := range words {
		if isLower(w) {
			out[i] = capitalize(w)
		} else {
			out[i] = w
		}
	}

	result := strings.Join(out, " ")
	if utf8.RuneCountInString(result) < 2 {
		return "", false
	}
	return result, true
}

// NormalizeNames normalizes, dedupes case-insensitively and caps the list at MaxCompetitorNames
func NormalizeNames(raw []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, MaxCompetitorNames)

	for _, r := range raw {
		name, ok := NormalizeName(r)
		if !ok {
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, name)
		if len(result) >= MaxCompetitorNames {
			break
		}
	}
	return result
}

func isNameSuffix(word string) bool {
	return nameSuffixes[strings.TrimRight(strings.ToLower(word), ".,")]
}

// isLower reports whether w has at least one cased letter and no upper-case letters
func isLower(w string) bool {
	cased := false
	for _, r := range w {
		if unicode.IsUpper(r) || unicode.IsTitle(r) {
			return false
		}
		if unicode.IsLower(r) {
			cased = true
		}
	}
	return cased
}

func capitalize(w string) string {
	r, size := utf8.DecodeRuneInString(w)
	if r == utf8.RuneError {
		return w
	}
	return string(unicode.ToUpper(r)) + w[size:]
}
