package agents

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/ajharbinger/ideascore/internal/companies"
	"github.com/ajharbinger/ideascore/internal/logger"
	"github.com/ajharbinger/ideascore/internal/models"
	"github.com/ajharbinger/ideascore/internal/providers"
)

const (
	// densitySaturation is the competitor count at which density reaches 1
	densitySaturation = 20.0
	descriptionChars  = 500
)

// CompetitorAgent discovers and characterizes competitors with a semantic
// company-discovery provider
type CompetitorAgent struct {
	discoverer  CompanyDiscoverer
	logger      logger.Logger
	concurrency int
	now         func() time.Time
}

// NewCompetitorAgent creates the agent. log may be nil.
func NewCompetitorAgent(discoverer CompanyDiscoverer, log logger.Logger) *CompetitorAgent {
	if log == nil {
		log = logger.Discard()
	}
	return &CompetitorAgent{
		discoverer:  discoverer,
		logger:      log.With("agent", "competitor_discovery"),
		concurrency: defaultConcurrency,
		now:         time.Now,
	}
}

// Candidate is one discovered company that survived filtering
type Candidate struct {
	Name        string
	Domain      string
	Description string
	FoundedYear int // 0 when unknown
}

// Run issues the competitor queries concurrently, filters the merged results
// and computes density, overlap and age metrics
func (a *CompetitorAgent) Run(ctx context.Context, bundle models.QueryBundle) Outcome[models.CompetitorSignals] {
	start := time.Now()

	results := fanOut(ctx, bundle.CompetitorQueries, a.concurrency, a.discoverer.Discover)
	failure := failureSummary("company discovery", results)

	if succeeded(results) == 0 {
		a.logger.Warn("competitor discovery unavailable", "reason", failure)
		return Unavailable(EmptyCompetitorSignals(), failure)
	}

	var raw []providers.DiscoveryResult
	for _, r := range results {
		if r.err == nil {
			raw = append(raw, r.value...)
		}
	}

	candidates, rejected := FilterCandidates(raw, a.now().Year())
	signals := ComputeCompetitorSignals(candidates, referenceTokens(bundle), a.now().Year())

	a.logger.Info("competitor signals computed",
		"raw_results", len(raw),
		"competitors", signals.CompetitorCount,
		"rejected", rejected,
		"density", signals.CompetitorDensityScore,
		"overlap", signals.FeatureOverlapScore,
		"duration", time.Since(start))

	if failure != "" {
		return Degraded(signals, failure)
	}
	return OK(signals)
}

// FilterCandidates drops excluded domains, editorial URLs and listicle-style
// titles, keeping the first result per domain. It returns the survivors and
// how many results were rejected.
func FilterCandidates(results []providers.DiscoveryResult, currentYear int) ([]Candidate, int) {
	seen := make(map[string]struct{})
	var (
		candidates []Candidate
		rejected   int
	)

	for _, r := range results {
		if strings.TrimSpace(r.URL) == "" {
			continue
		}
		domain := companies.ExtractDomain(r.URL)
		if companies.IsExcludedDomain(domain) || companies.IsEditorialURL(r.URL) {
			rejected++
			continue
		}
		if _, dup := seen[domain]; dup {
			continue
		}
		seen[domain] = struct{}{}

		if !companies.IsValidCompetitorTitle(r.Title, domain) {
			rejected++
			continue
		}

		description := strings.TrimSpace(truncateRunes(r.Text, descriptionChars) + " " + strings.Join(r.Highlights, " "))
		c := Candidate{
			Name:        companies.ExtractCompanyName(r.Title, r.URL),
			Domain:      domain,
			Description: description,
		}
		if year, ok := companies.ExtractFoundingYear(description, currentYear); ok {
			c.FoundedYear = year
		}
		candidates = append(candidates, c)
	}
	return candidates, rejected
}

// ComputeCompetitorSignals derives count, names, age, density and overlap from candidates
func ComputeCompetitorSignals(candidates []Candidate, reference map[string]struct{}, currentYear int) models.CompetitorSignals {
	if len(candidates) == 0 {
		return EmptyCompetitorSignals()
	}

	var (
		names    []string
		ages     []float64
		overlaps []float64
	)
	for _, c := range candidates {
		if name := strings.TrimSpace(c.Name); name != "" && !strings.EqualFold(name, "unknown") {
			names = append(names, name)
		}
		if c.FoundedYear > 0 && currentYear >= c.FoundedYear {
			ages = append(ages, float64(currentYear-c.FoundedYear))
		}
		if tokens := companies.TokenSet(c.Description); len(tokens) > 0 {
			overlaps = append(overlaps, companies.Jaccard(tokens, reference))
		}
	}

	return models.CompetitorSignals{
		CompetitorCount:        len(candidates),
		CompetitorNames:        nonNil(companies.NormalizeNames(names)),
		AvgCompanyAge:          round(mean(ages), 2),
		CompetitorDensityScore: round(DensityScore(len(candidates)), 4),
		FeatureOverlapScore:    round(clamp(mean(overlaps), 0, 1), 4),
	}
}

// DensityScore saturates at 1 once densitySaturation competitors are found
func DensityScore(count int) float64 {
	return math.Min(float64(count)/densitySaturation, 1)
}

// EmptyCompetitorSignals is the neutral signal used when discovery yields nothing
func EmptyCompetitorSignals() models.CompetitorSignals {
	return models.CompetitorSignals{CompetitorNames: []string{}}
}

// referenceTokens is the idea's own vocabulary: industry tags and core keywords
func referenceTokens(bundle models.QueryBundle) map[string]struct{} {
	ref := make(map[string]struct{})
	for _, s := range append(append([]string{}, bundle.IndustryTags...), bundle.CoreKeywords...) {
		for tok := range companies.TokenSet(s) {
			ref[tok] = struct{}{}
		}
	}
	return ref
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
