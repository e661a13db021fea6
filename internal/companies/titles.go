package companies

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

const maxCompetitorTitleLength = 40

var (
	titleSeparators = regexp.MustCompile(`[|\-\x{2013}\x{2014}:]`)
	parenthetical   = regexp.MustCompile(`\s*\(.*?\)\s*`)

	foundingYearPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:founded|established|started|launched|est\.?)\s*(?:in\s*)?(\d{4})`),
		regexp.MustCompile(`(?i)\bsince\s+(\d{4})`),
	}
)

// Listicle, guide and comparison phrasing
var titleBlacklistPhrases = []string{
	"what is", "how to", "guide", "top ", "list of", "best ",
	"software development", "industry", "vs ", "versus ",
	"review", "comparison", "tutorial", "explained",
	"definition", "meaning", "overview",
}

// Generic category pages end with one of these
var titleBlacklistSuffixes = []string{
	"software", "platform", "industry", "law", "legaltech",
	"solutions", "services", "tools", "apps", "companies",
}

// IsValidCompetitorTitle reports whether a result title looks like a company or product page
func IsValidCompetitorTitle(title, domain string) bool {
	if domain == "" {
		return false
	}
	title = strings.TrimSpace(title)
	if title == "" || utf8.RuneCountInString(title) > maxCompetitorTitleLength {
		return false
	}

	lower := strings.ToLower(title)
	for _, phrase := range titleBlacklistPhrases {
		if strings.Contains(lower, phrase) {
			return false
		}
	}
	for _, suffix := range titleBlacklistSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return false
		}
	}
	return true
}

// ExtractCompanyName takes the first title segment before a separator, falling back to the domain root
func ExtractCompanyName(title, url string) string {
	if title != "" {
		first := titleSeparators.Split(title, 2)[0]
		name := parenthetical.ReplaceAllString(strings.TrimSpace(first), "")
		if n := utf8.RuneCountInString(name); n > 2 && n < 60 {
			return name
		}
	}
	if root := DomainRoot(url); root != "" {
		return root
	}
	return "Unknown"
}

// ExtractFoundingYear finds a plausible founding year in text ("founded in 2018", "est. 2015", "since 2020").
// Years outside [1990, currentYear] are ignored.
func ExtractFoundingYear(text string, currentYear int) (int, bool) {
	for _, pattern := range foundingYearPatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			year, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if year >= 1990 && year <= currentYear {
				return year, true
			}
		}
	}
	return 0, false
}

// TitleCase upper-cases the first letter of every letter run and lower-cases the rest
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}
