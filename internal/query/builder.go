// Package query derives the deterministic keyword and query bundle shared by every agent.
package query

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/ajharbinger/ideascore/internal/models"
)

var tokenSplitter = regexp.MustCompile(`[\s\-_,;:.!?'"()\[\]{}]+`)

// Kept small so domain words are never removed.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "as": true, "is": true, "was": true,
	"are": true, "be": true, "been": true, "this": true, "that": true, "it": true,
	"its": true, "we": true, "our": true, "they": true, "their": true, "using": true,
	"based": true, "which": true, "who": true, "how": true, "what": true, "where": true,
	"when": true, "will": true, "can": true, "do": true, "does": true, "has": true,
	"have": true, "had": true, "not": true, "no": true, "so": true, "very": true,
	"just": true, "also": true, "about": true, "into": true, "over": true, "such": true,
	"than": true, "then": true, "each": true, "every": true, "all": true, "both": true,
	"few": true, "more": true, "most": true, "some": true, "any": true, "other": true,
}

var revenueDescriptors = map[string][]string{
	models.RevenueSubscription:   {"subscription", "saas"},
	models.RevenueOneTime:        {"purchase", "one-time"},
	models.RevenueMarketplaceFee: {"marketplace", "platform"},
	models.RevenueAds:            {"ad-supported", "free platform"},
}

var customerLabels = map[string]string{
	models.CustomerIndividual: "individuals",
	models.CustomerSMB:        "small businesses",
	models.CustomerMidMarket:  "mid-market companies",
	models.CustomerEnterprise: "enterprises",
}

var painPhrases = []string{"problem", "pain", "issue", "frustration", "struggling with", "hate"}

// Tokenize splits text into lowercase alphabetic tokens of three or more letters, minus stop words.
func Tokenize(text string) []string {
	var tokens []string
	for _, t := range tokenSplitter.Split(strings.ToLower(text), -1) {
		if len(t) > 2 && isAlpha(t) && !stopWords[t] {
			tokens = append(tokens, t)
		}
	}
	return tokens
}

// IsStopWord reports whether w is in the builder's stop-word set
func IsStopWord(w string) bool {
	return stopWords[w]
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

// dedupe drops blank and case-insensitive duplicate entries, keeping first-seen order
func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		key := strings.ToLower(item)
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// Build derives the QueryBundle for an idea. It performs no I/O and is deterministic.
func Build(idea models.Idea) models.QueryBundle {
	industry := strings.ToLower(strings.TrimSpace(idea.Industry))
	description := strings.ToLower(strings.TrimSpace(idea.Description))
	name := strings.ToLower(strings.TrimSpace(idea.Name))
	geography := strings.ToLower(strings.TrimSpace(idea.Geography))
	customerType := strings.TrimSpace(idea.TargetCustomerType)
	customerSize := firstNonEmpty(strings.TrimSpace(idea.CustomerSize), models.CustomerSMB)
	revenueModel := firstNonEmpty(strings.TrimSpace(idea.RevenueModel), models.RevenueSubscription)

	descTokens := Tokenize(description)
	industryTokens := Tokenize(industry)

	audience, ok := customerLabels[customerSize]
	if !ok {
		audience = strings.ToLower(customerSize)
	}
	revTags, ok := revenueDescriptors[revenueModel]
	if !ok {
		revTags = []string{strings.ToLower(revenueModel)}
	}

	// Core keywords
	var core []string
	if len(industryTokens) > 0 && len(descTokens) > 0 {
		core = append(core, industryTokens[0]+" "+descTokens[0])
	}
	if industry != "" {
		core = append(core, audience+" "+industry)
	}
	core = append(core, revTags[0]+" "+industry)
	if len(descTokens) >= 2 {
		core = append(core, descTokens[0]+" "+descTokens[1])
	}
	if len(industryTokens) >= 2 {
		core = append(core, industry)
	}
	core = dedupe(core)

	// Tier-1 trend keywords: short, idea-specific
	var trend []string
	switch {
	case len(strings.Fields(industry)) <= 3:
		trend = append(trend, industry)
	case len(industryTokens) > 0:
		trend = append(trend, industryTokens[0])
	default:
		trend = append(trend, industry)
	}
	if len(descTokens) > 0 {
		trend = append(trend, descTokens[0]+" software")
		if len(descTokens) >= 2 {
			trend = append(trend, descTokens[0]+" "+descTokens[1])
		}
	}
	trend = append(trend, revTags[0]+" market")
	if len(industryTokens) > 0 {
		trend = append(trend, audience+" "+industryTokens[0])
	}
	trend = dedupe(trend)

	// Tier-2: category level
	var tier2 []string
	if industry != "" {
		tier2 = append(tier2, industry+" software", industry+" market")
	}
	if len(descTokens) > 0 && len(industryTokens) > 0 {
		tier2 = append(tier2, descTokens[0]+" "+industryTokens[0])
	}
	if industry != "" {
		tier2 = append(tier2, revTags[0]+" "+industry)
	}
	tier2 = dedupe(tier2)

	// Tier-3: broad market
	var tier3 []string
	if industry != "" {
		tier3 = append(tier3, industry)
	}
	if len(industryTokens) > 0 {
		tier3 = append(tier3, industryTokens[0]+" technology")
	}
	tier3 = append(tier3, revTags[0]+" market")
	if customerType != "" {
		tier3 = append(tier3, strings.ToLower(customerType)+" software")
	}
	tier3 = dedupe(tier3)

	// Pain-focused queries
	var pain []string
	for _, p := range painPhrases[:3] {
		pain = append(pain, fmt.Sprintf("%s %s %s", audience, p, industry))
	}
	for _, p := range painPhrases[3:5] {
		pain = append(pain, fmt.Sprintf("%s %s for %s", industry, p, audience))
	}
	if geography != "" && geography != "global" && geography != "worldwide" {
		pain = append(pain, fmt.Sprintf("%s problems in %s", industry, geography))
	}
	if customerType != "" {
		pain = append(pain, fmt.Sprintf("%s %s complaints", strings.ToLower(customerType), industry))
	}
	pain = dedupe(pain)

	competitors := CompetitorQueries(description, industry, customerType, revenueModel, "")

	// Industry tags
	var tags []string
	tags = append(tags, industryTokens...)
	tags = append(tags, revTags...)
	if customerType != "" {
		tags = append(tags, strings.ToLower(customerType))
	}
	tags = append(tags, descTokens[:min(2, len(descTokens))]...)
	tags = dedupe(tags)

	// Every list carries at least one entry
	if len(core) == 0 {
		core = []string{firstNonEmpty(industry, description, name, "startup")}
	}
	if len(trend) == 0 {
		trend = []string{firstNonEmpty(industry, description, "market trends")}
	}
	if len(tier2) == 0 {
		tier2 = []string{firstNonEmpty(industry, "startup") + " software"}
	}
	if len(tier3) == 0 {
		tier3 = []string{"market trends"}
	}
	if len(pain) == 0 {
		pain = []string{firstNonEmpty(industry, description, "startup") + " problems"}
	}
	if len(competitors) == 0 {
		competitors = []string{firstNonEmpty(industry, description, "startup") + " competitors"}
	}
	if len(tags) == 0 {
		tags = []string{"startup"}
	}

	return models.QueryBundle{
		CoreKeywords:      core,
		TrendKeywords:     trend,
		Tier2Keywords:     tier2,
		Tier3Keywords:     tier3,
		PainQueries:       pain,
		CompetitorQueries: competitors,
		IndustryTags:      tags,
	}
}
