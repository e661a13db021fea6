package agents

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ajharbinger/ideascore/internal/logger"
	"github.com/ajharbinger/ideascore/internal/models"
	"github.com/ajharbinger/ideascore/internal/providers"
)

// Default score when no signal category is present
const problemDefaultScore = 35.0

// defaultRecencyMonths is assumed when no article carries a publication date
const defaultRecencyMonths = 24.0

var painKeywords = []string{
	"manual", "slow", "inefficient", "error-prone", "expensive", "tedious",
	"cumbersome", "frustrating", "outdated", "broken", "complicated",
	"time-consuming", "unreliable", "costly", "difficult", "painful",
	"annoying", "clunky", "legacy",
}

var manualKeywords = []string{
	"manual", "spreadsheet", "email-based", "human review", "paper-based",
	"handwritten", "excel", "copy-paste", "phone call", "fax", "pen and paper",
	"word document", "manual entry", "manual process", "data entry",
}

var complaintPhrases = []string{
	"too slow", "too expensive", "takes too long", "waste of time", "hard to use",
	"not intuitive", "always breaks", "poor support", "no alternative", "stuck with",
	"forced to use", "hate using", "error prone", "constant errors", "unreliable",
}

var (
	painKeywordSet = toSet(painKeywords)
	wordPattern    = regexp.MustCompile(`[a-z]{3,}`)
)

// ProblemIntensityAgent measures how painful the target problem is from
// content-search evidence and web-search intent ratios
type ProblemIntensityAgent struct {
	content     ContentSearcher
	counts      SearchCounter
	logger      logger.Logger
	concurrency int
	now         func() time.Time
}

// NewProblemIntensityAgent creates the agent. log may be nil.
func NewProblemIntensityAgent(content ContentSearcher, counts SearchCounter, log logger.Logger) *ProblemIntensityAgent {
	if log == nil {
		log = logger.Discard()
	}
	return &ProblemIntensityAgent{
		content:     content,
		counts:      counts,
		logger:      log.With("agent", "problem_intensity"),
		concurrency: defaultConcurrency,
		now:         time.Now,
	}
}

// painEvidence is what the content fetch extracts
type painEvidence struct {
	articles         int
	avgRecency       float64
	complaintDensity float64
	topComplaints    []string
	manualDetected   bool
	manualSteps      int
	timeWasteHours   float64
	keywords         []string
}

// intentRatios is what the search-count fetch extracts
type intentRatios struct {
	problemRatio      float64
	alternativesRatio float64
	problemQueries    int
}

// Run collects evidence and intent concurrently and scores them
func (a *ProblemIntensityAgent) Run(ctx context.Context, idea models.Idea) Outcome[models.ProblemIntensitySignals] {
	start := time.Now()

	var (
		wg             sync.WaitGroup
		contentResults []queryResult[[]providers.ContentResult]
		countResults   []queryResult[providers.SearchCount]
	)
	contentQueries := ContentQueries(idea)
	problemQueries, generalQueries := CountQueries(idea)

	wg.Add(2)
	go func() {
		defer wg.Done()
		contentResults = fanOut(ctx, contentQueries, a.concurrency, a.content.Search)
	}()
	go func() {
		defer wg.Done()
		countResults = fanOut(ctx, append(append([]string{}, problemQueries...), generalQueries...), a.concurrency, a.counts.Count)
	}()
	wg.Wait()

	evidence := extractPainEvidence(mergeByURL(contentResults), a.now())
	ratios := computeIntentRatios(countResults[:len(problemQueries)], countResults[len(problemQueries):])
	signals := scoreProblemIntensity(evidence, ratios)

	contentFailure := failureSummary("content search", contentResults)
	countFailure := failureSummary("search count", countResults)

	a.logger.Info("problem intensity computed",
		"score", signals.ProblemIntensityScore,
		"confidence", signals.ConfidenceLevel,
		"articles", evidence.articles,
		"problem_ratio", ratios.problemRatio,
		"duration", time.Since(start))

	if succeeded(contentResults) == 0 && succeeded(countResults) == 0 {
		reason := joinReasons(contentFailure, countFailure)
		a.logger.Warn("problem intensity unavailable, using default signal", "reason", reason)
		return Unavailable(EmptyProblemIntensitySignals(), reason)
	}
	if reason := joinReasons(contentFailure, countFailure); reason != "" {
		a.logger.Warn("problem intensity computed from partial data", "reason", reason)
		return Degraded(signals, reason)
	}
	return OK(signals)
}

// ContentQueries builds the pain, manual-workflow, inefficiency, cost and alternatives queries
func ContentQueries(idea models.Idea) []string {
	industry := strings.TrimSpace(idea.Industry)
	customer := firstNonEmpty(idea.TargetCustomerType, "customers")
	geo := strings.TrimSpace(idea.Geography)
	problem := problemPhrase(idea)
	solution := solutionRef(idea)

	queries := []string{
		fmt.Sprintf("how to fix %s for %s", problem, customer),
		fmt.Sprintf("%s problems with %s", customer, industry),
		fmt.Sprintf("manual process for %s in %s", problem, industry),
		fmt.Sprintf("problems with %s in %s", solution, industry),
	}
	if geo != "" && !strings.EqualFold(geo, "global") && !strings.EqualFold(geo, "worldwide") {
		queries = append(queries, fmt.Sprintf("%s inefficiencies in %s", industry, geo))
	}
	queries = append(queries,
		fmt.Sprintf("why %s is expensive or slow for %s", industry, customer),
		fmt.Sprintf("alternatives to %s", solution),
	)
	return queries
}

// CountQueries builds the problem-oriented and baseline queries for the intent ratio
func CountQueries(idea models.Idea) (problem, general []string) {
	industry := strings.TrimSpace(idea.Industry)
	phrase := problemPhrase(idea)

	problem = []string{
		fmt.Sprintf("how to fix %s", phrase),
		fmt.Sprintf("alternatives to %s", solutionRef(idea)),
		fmt.Sprintf("manual way to %s", phrase),
		fmt.Sprintf("%s pain points", industry),
	}
	general = []string{
		fmt.Sprintf("%s software", industry),
		fmt.Sprintf("%s market", industry),
	}
	return problem, general
}

func problemPhrase(idea models.Idea) string {
	return firstNonEmpty(idea.Description, strings.TrimSpace(idea.Industry)+" workflow")
}

func solutionRef(idea models.Idea) string {
	return firstNonEmpty(idea.Name, strings.TrimSpace(idea.Industry)+" tools")
}

// mergeByURL flattens content results in query order, keeping the first hit per URL
func mergeByURL(results []queryResult[[]providers.ContentResult]) []providers.ContentResult {
	seen := make(map[string]struct{})
	var merged []providers.ContentResult
	for _, r := range results {
		if r.err != nil {
			continue
		}
		for _, item := range r.value {
			key := strings.TrimRight(strings.TrimSpace(item.URL), "/")
			if key == "" {
				continue
			}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, item)
		}
	}
	return merged
}

// rankedCounter counts strings and ranks them by count, then first appearance
type rankedCounter struct {
	counts map[string]int
	order  []string
}

func newRankedCounter() *rankedCounter {
	return &rankedCounter{counts: make(map[string]int)}
}

func (c *rankedCounter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

func (c *rankedCounter) top(n int) []string {
	ranked := append([]string{}, c.order...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return c.counts[ranked[i]] > c.counts[ranked[j]]
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

func extractPainEvidence(results []providers.ContentResult, now time.Time) painEvidence {
	var (
		ev                 painEvidence
		passages           int
		complaintPassages  int
		manualHits         int
		recencies          []float64
		tokens             = newRankedCounter()
		complaintsByPhrase = newRankedCounter()
	)

	for _, r := range results {
		combined := strings.ToLower(r.Title + " " + r.Text)
		if strings.TrimSpace(combined) == "" {
			continue
		}
		passages++

		if containsAny(combined, painKeywords) {
			ev.articles++
		}

		hasComplaint := false
		for _, phrase := range complaintPhrases {
			if strings.Contains(combined, phrase) {
				hasComplaint = true
				complaintsByPhrase.add(phrase)
			}
		}
		if hasComplaint {
			complaintPassages++
		}

		for _, kw := range manualKeywords {
			if strings.Contains(combined, kw) {
				ev.manualDetected = true
				manualHits++
			}
		}

		for _, tok := range wordPattern.FindAllString(combined, -1) {
			tokens.add(tok)
		}

		if !r.Published.IsZero() {
			months := now.Sub(r.Published).Hours() / 24 / 30
			recencies = append(recencies, math.Max(0, months))
		}
	}

	ev.avgRecency = defaultRecencyMonths
	if len(recencies) > 0 {
		ev.avgRecency = round(mean(recencies), 1)
	}
	if passages > 0 {
		ev.complaintDensity = round(float64(complaintPassages)/float64(passages), 4)
	}
	ev.topComplaints = complaintsByPhrase.top(5)

	for _, tok := range tokens.top(50) {
		if _, ok := painKeywordSet[tok]; ok {
			ev.keywords = append(ev.keywords, tok)
			if len(ev.keywords) == 10 {
				break
			}
		}
	}

	if ev.manualDetected {
		ev.manualSteps = min(manualHits*2, 15)
		ev.timeWasteHours = round(math.Min(float64(manualHits)*1.5, 20), 1)
	}
	return ev
}

func computeIntentRatios(problem, general []queryResult[providers.SearchCount]) intentRatios {
	var (
		r                  intentRatios
		problemCounts      []float64
		generalCounts      []float64
		alternativesCount  float64
		totalProblemResult float64
	)

	for _, res := range problem {
		if res.err != nil {
			continue
		}
		count := float64(res.value.TotalResults)
		problemCounts = append(problemCounts, count)
		totalProblemResult += count
		if strings.Contains(strings.ToLower(res.query), "alternative") {
			alternativesCount = count
		}
	}
	for _, res := range general {
		if res.err == nil {
			generalCounts = append(generalCounts, float64(res.value.TotalResults))
		}
	}

	r.problemQueries = len(problemCounts)
	avgProblem, avgGeneral := mean(problemCounts), mean(generalCounts)
	if total := avgProblem + avgGeneral; total > 0 {
		r.problemRatio = clamp(avgProblem/total, 0, 1)
	}
	if totalProblemResult > 0 {
		r.alternativesRatio = clamp(alternativesCount/totalProblemResult, 0, 1)
	}
	return r
}

// scoreProblemIntensity turns extracted evidence and intent ratios into the
// bucketed component scores, the guarded composite and a confidence level
func scoreProblemIntensity(ev painEvidence, ratios intentRatios) models.ProblemIntensitySignals {
	searchIntent := searchIntentScore(ratios.problemRatio)
	evidence := evidenceStrengthScore(ev.articles, ev.avgRecency)
	complaint := complaintScore(ev.complaintDensity, len(ev.topComplaints))
	manual := manualCostScore(ev.manualDetected, ev.timeWasteHours)

	raw := 0.30*searchIntent + 0.25*complaint + 0.25*manual + 0.20*evidence

	present := 0
	for _, p := range []bool{
		ratios.problemQueries > 0 && ratios.problemRatio > 0,
		ev.articles > 0,
		ev.complaintDensity > 0,
		ev.manualDetected,
	} {
		if p {
			present++
		}
	}

	score := applyGuardrails(raw, present, ev.manualDetected, complaint)
	confidence := confidenceFor(present)

	explanation := fmt.Sprintf("Problem intensity = %.1f (confidence=%s). ", score, confidence) + strings.Join([]string{
		fmt.Sprintf("Search intent: %.0f (ratio=%.2f)", searchIntent, ratios.problemRatio),
		fmt.Sprintf("Evidence: %.0f (%d articles, %.0fmo avg)", evidence, ev.articles, ev.avgRecency),
		fmt.Sprintf("Complaints: %.0f (density=%.2f)", complaint, ev.complaintDensity),
		fmt.Sprintf("Manual cost: %.0f (detected=%t, %.1fh/wk)", manual, ev.manualDetected, ev.timeWasteHours),
	}, " | ")

	return models.ProblemIntensitySignals{
		TotalProblemQueries:     ratios.problemQueries,
		ProblemQueryRatio:       round(ratios.problemRatio, 4),
		AlternativesQueryRatio:  round(ratios.alternativesRatio, 4),
		PainArticlesCount:       ev.articles,
		AvgRecencyMonths:        ev.avgRecency,
		ComplaintDensity:        ev.complaintDensity,
		TopComplaints:           nonNil(ev.topComplaints),
		ManualProcessDetected:   ev.manualDetected,
		ManualStepsCount:        ev.manualSteps,
		EstimatedTimeWasteHours: ev.timeWasteHours,
		PainKeywords:            nonNil(ev.keywords),
		SearchIntentScore:       searchIntent,
		EvidenceStrengthScore:   evidence,
		ComplaintScore:          complaint,
		ManualCostScore:         manual,
		ProblemIntensityScore:   score,
		ConfidenceLevel:         confidence,
		Explanation:             explanation,
	}
}

// EmptyProblemIntensitySignals is the neutral signal used when no provider answered
func EmptyProblemIntensitySignals() models.ProblemIntensitySignals {
	return models.ProblemIntensitySignals{
		AvgRecencyMonths:      defaultRecencyMonths,
		TopComplaints:         []string{},
		PainKeywords:          []string{},
		SearchIntentScore:     30,
		EvidenceStrengthScore: 30,
		ComplaintScore:        35,
		ManualCostScore:       30,
		ProblemIntensityScore: problemDefaultScore,
		ConfidenceLevel:       models.ConfidenceLow,
		Explanation:           "No data available; all signals missing. Default score 35.",
	}
}

func searchIntentScore(ratio float64) float64 {
	switch {
	case ratio > 0.6:
		return 75
	case ratio >= 0.4:
		return 60
	case ratio >= 0.2:
		return 45
	default:
		return 30
	}
}

func evidenceStrengthScore(articles int, recencyMonths float64) float64 {
	switch {
	case articles == 0:
		return 30
	case articles >= 3 && recencyMonths <= 12:
		return 70
	case articles >= 2 || recencyMonths <= 18:
		return 55
	default:
		return 45
	}
}

func complaintScore(density float64, distinct int) float64 {
	switch {
	case density >= 0.5 && distinct >= 3:
		return 70
	case density >= 0.25 || distinct >= 2:
		return 55
	case density > 0 || distinct >= 1:
		return 40
	default:
		return 35
	}
}

func manualCostScore(detected bool, hoursPerWeek float64) float64 {
	switch {
	case !detected:
		return 30
	case hoursPerWeek > 10:
		return 80
	case hoursPerWeek >= 5:
		return 65
	default:
		return 50
	}
}

// applyGuardrails caps the composite under sparse evidence. The result is never 0 or 100.
func applyGuardrails(raw float64, present int, manualDetected bool, complaint float64) float64 {
	if present == 0 {
		return problemDefaultScore
	}
	score := raw
	if present < 2 {
		score = math.Min(score, 55)
	}
	if !manualDetected && complaint < 45 {
		score = math.Min(score, 60)
	}
	return round(clamp(score, 1, 99), 2)
}

func confidenceFor(present int) models.ConfidenceLevel {
	switch {
	case present >= 3:
		return models.ConfidenceHigh
	case present == 2:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}
