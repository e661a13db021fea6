package scoring

import (
	"math"

	"github.com/ajharbinger/ideascore/internal/models"
)

// Module names, in the fixed order used for breakdowns and tie-breaking
const (
	ModuleProblemIntensity     = "Problem Intensity"
	ModuleMarketTiming         = "Market Timing"
	ModuleCompetitionPressure  = "Competition Pressure"
	ModuleMarketPotential      = "Market Potential"
	ModuleExecutionFeasibility = "Execution Feasibility"
)

// Final score weights. They sum to 1.
const (
	WeightProblemIntensity     = 0.25
	WeightMarketTiming         = 0.25
	WeightCompetitionPressure  = 0.20
	WeightMarketPotential      = 0.15
	WeightExecutionFeasibility = 0.15
)

// Verdict and risk thresholds
const (
	StrongThreshold   = 75.0
	ModerateThreshold = 55.0
)

// ScoringEngine turns normalized signals into module scores and a final viability score
type ScoringEngine struct{}

// NewScoringEngine creates a new scoring engine instance
func NewScoringEngine() *ScoringEngine {
	return &ScoringEngine{}
}

// ScoreResult is the output of one scoring run
type ScoreResult struct {
	Scores    models.ModuleScores           `json:"module_scores"`
	Breakdown map[string]models.ScoreDetail `json:"breakdown"`
	Summary   models.Summary                `json:"summary"`
}

type module struct {
	name    string
	weight  float64
	formula string
	score   func(models.NormalizedSignals) float64
}

var modules = []module{
	{
		name:    ModuleProblemIntensity,
		weight:  WeightProblemIntensity,
		formula: "pain_intensity",
		score: func(n models.NormalizedSignals) float64 {
			return n.PainIntensity
		},
	},
	{
		name:    ModuleMarketTiming,
		weight:  WeightMarketTiming,
		formula: "0.4*market_growth + 0.3*market_momentum + 0.3*demand_strength",
		score: func(n models.NormalizedSignals) float64 {
			return 0.4*n.MarketGrowth + 0.3*n.MarketMomentum + 0.3*n.DemandStrength
		},
	},
	{
		name:    ModuleCompetitionPressure,
		weight:  WeightCompetitionPressure,
		formula: "100 - (0.6*competition_density + 0.4*feature_overlap)",
		score: func(n models.NormalizedSignals) float64 {
			return 100 - (0.6*n.CompetitionDensity + 0.4*n.FeatureOverlap)
		},
	},
	{
		name:    ModuleMarketPotential,
		weight:  WeightMarketPotential,
		formula: "0.6*demand_strength + 0.4*market_growth",
		score: func(n models.NormalizedSignals) float64 {
			return 0.6*n.DemandStrength + 0.4*n.MarketGrowth
		},
	},
	{
		name:    ModuleExecutionFeasibility,
		weight:  WeightExecutionFeasibility,
		formula: "100 - (0.6*tech_complexity_score + 0.4*regulatory_risk_score)",
		score: func(n models.NormalizedSignals) float64 {
			return 100 - (0.6*n.TechComplexityScore + 0.4*n.RegulatoryRiskScore)
		},
	},
}

// Score computes module scores, their weighted contributions and the summary
func (e *ScoringEngine) Score(signals models.NormalizedSignals) *ScoreResult {
	result := &ScoreResult{Breakdown: make(map[string]models.ScoreDetail, len(modules))}

	scores := make([]float64, len(modules))
	final := 0.0
	for i, m := range modules {
		scores[i] = clamp(m.score(signals))
		contribution := m.weight * scores[i]
		final += contribution

		result.Breakdown[m.name] = models.ScoreDetail{
			Score:        round2(scores[i]),
			Weight:       m.weight,
			Contribution: round2(contribution),
			Formula:      m.formula,
		}
	}

	result.Scores = models.ModuleScores{
		ProblemIntensity:     round2(scores[0]),
		MarketTiming:         round2(scores[1]),
		CompetitionPressure:  round2(scores[2]),
		MarketPotential:      round2(scores[3]),
		ExecutionFeasibility: round2(scores[4]),
		FinalViabilityScore:  round2(clamp(final)),
	}
	result.Summary = Summarize(result.Scores)
	return result
}

// ComputeScores returns only the module scores
func (e *ScoringEngine) ComputeScores(signals models.NormalizedSignals) models.ModuleScores {
	return e.Score(signals).Scores
}

// Summarize derives a verdict, a risk level and the strongest and weakest modules.
// Ties resolve to the module listed first.
func Summarize(s models.ModuleScores) models.Summary {
	summary := models.Summary{}

	switch {
	case s.FinalViabilityScore >= StrongThreshold:
		summary.Verdict = models.VerdictStrong
	case s.FinalViabilityScore >= ModerateThreshold:
		summary.Verdict = models.VerdictModerate
	default:
		summary.Verdict = models.VerdictWeak
	}

	switch {
	case s.CompetitionPressure < 40 || s.ExecutionFeasibility < 30:
		summary.RiskLevel = models.RiskHigh
	case s.CompetitionPressure < 60 || s.ExecutionFeasibility < 50:
		summary.RiskLevel = models.RiskMedium
	default:
		summary.RiskLevel = models.RiskLow
	}

	values := []float64{s.ProblemIntensity, s.MarketTiming, s.CompetitionPressure, s.MarketPotential, s.ExecutionFeasibility}
	best, worst := 0, 0
	for i, v := range values {
		if v > values[best] {
			best = i
		}
		if v < values[worst] {
			worst = i
		}
	}
	summary.KeyStrength = modules[best].name
	summary.KeyRisk = modules[worst].name
	return summary
}

func clamp(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
