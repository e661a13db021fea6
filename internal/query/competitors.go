package query

import (
	"strings"
)

// CompetitorQueryCount is the fixed size of the company-discovery query set
const CompetitorQueryCount = 5

// CompetitorQueries builds the locked set of five company-discovery queries.
// currentSolution falls back to the first three description words longer than two characters.
func CompetitorQueries(description, industry, customerType, revenueModel, currentSolution string) []string {
	desc := strings.TrimSpace(description)
	ind := strings.TrimSpace(industry)
	cust := strings.TrimSpace(customerType)
	rev := strings.TrimSpace(revenueModel)
	sol := strings.TrimSpace(currentSolution)

	if sol == "" {
		var words []string
		for _, w := range strings.Fields(strings.ToLower(desc)) {
			if len(w) > 2 {
				words = append(words, w)
			}
			if len(words) == 3 {
				break
			}
		}
		if len(words) > 0 {
			sol = strings.Join(words, " ")
		} else {
			sol = ind
		}
	}

	q1 := "Companies in " + ind
	if desc != "" {
		q1 = "Companies working on similar idea " + desc
	}

	q2 := "Big companies in " + truncate(desc, 50)
	if ind != "" {
		q2 = "Big companies in " + ind
	}

	q3 := "Startups in " + firstNonEmpty(ind, truncate(desc, 40))
	if ind != "" && cust != "" {
		q3 = ind + " startups for " + cust
	}

	q4 := "Platforms in " + firstNonEmpty(ind, truncate(desc, 40))
	if rev != "" && ind != "" {
		q4 = rev + " platforms in " + ind
	}

	q5 := strings.TrimSpace(sol + " competitors")

	return []string{q1, q2, q3, q4, q5}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
