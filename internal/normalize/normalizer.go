package normalize

import (
	"fmt"
	"math"

	"github.com/ajharbinger/ideascore/internal/models"
)

const (
	// MissingGrowthDefault is the neutral growth score for a raw growth of exactly 0
	MissingGrowthDefault = 40.0
	// LowConfidenceCap bounds the market signals when no trend data was found
	LowConfidenceCap = 50.0
	// GrowthCeiling is the hard cap for raw growth at or above 20%
	GrowthCeiling = 80.0
)

// Explanation keys, one per normalized field
const (
	FieldPainIntensity       = "pain_intensity"
	FieldDemandStrength      = "demand_strength"
	FieldMarketGrowth        = "market_growth"
	FieldMarketMomentum      = "market_momentum"
	FieldCompetitionDensity  = "competition_density"
	FieldFeatureOverlap      = "feature_overlap"
	FieldTechComplexityScore = "tech_complexity_score"
	FieldRegulatoryRiskScore = "regulatory_risk_score"
)

// Input is everything the normalizer reads
type Input struct {
	Problem        models.ProblemIntensitySignals
	Trend          models.TrendDemandSignals
	Competitor     models.CompetitorSignals
	TechComplexity float64
	RegulatoryRisk float64
}

// Normalize maps raw agent signals and the caller's risk attributes onto 0-100.
// It is pure: equal inputs give equal outputs.
func Normalize(in Input) models.NormalizedSignals {
	demand := scale(in.Trend.DemandStrength)
	growth := GrowthScore(in.Trend.GrowthRate5Y)
	momentum := scale(in.Trend.Momentum)

	if !in.Trend.TrendDataAvailable {
		demand = math.Min(demand, LowConfidenceCap)
		growth = math.Min(growth, LowConfidenceCap)
		momentum = math.Min(momentum, LowConfidenceCap)
	}

	confidenceNote := ""
	if !in.Trend.TrendDataAvailable {
		confidenceNote = fmt.Sprintf(" No trend data: capped at %.0f.", LowConfidenceCap)
	}

	return models.NormalizedSignals{
		PainIntensity:       round2(clamp100(in.Problem.ProblemIntensityScore)),
		DemandStrength:      round2(demand),
		MarketGrowth:        round2(growth),
		MarketMomentum:      round2(momentum),
		CompetitionDensity:  round2(scale(in.Competitor.CompetitorDensityScore)),
		FeatureOverlap:      round2(scale(in.Competitor.FeatureOverlapScore)),
		TechComplexityScore: round2(scale(in.TechComplexity)),
		RegulatoryRiskScore: round2(scale(in.RegulatoryRisk)),

		Explanations: map[string]models.Explanation{
			FieldPainIntensity: {
				RawValue:    round4(in.Problem.ProblemIntensityScore),
				Formula:     "pass-through of the problem intensity score",
				Description: fmt.Sprintf("Search intent, evidence, complaints and manual cost. Confidence: %s. %s", in.Problem.ConfidenceLevel, truncate(in.Problem.Explanation, 120)),
			},
			FieldDemandStrength: {
				RawValue:    round4(in.Trend.DemandStrength),
				Formula:     "raw x 100",
				Description: "Search-interest volume boosted by growth, or the search-count proxy when interest is weak." + confidenceNote,
			},
			FieldMarketGrowth: {
				RawValue:    round4(in.Trend.GrowthRate5Y),
				Formula:     "tiered: >=20% -> 80, 10-20% -> 65-80, 3-10% -> 50-65, 0-3% -> 35-50, 0 -> 40, decline -> 10-20",
				Description: "Tiered ranges keep search-interest growth from reading as real market growth." + confidenceNote,
			},
			FieldMarketMomentum: {
				RawValue:    round4(in.Trend.Momentum),
				Formula:     "raw x 100",
				Description: "Last 6 months of interest relative to the prior 6 months." + confidenceNote,
			},
			FieldCompetitionDensity: {
				RawValue:    round4(in.Competitor.CompetitorDensityScore),
				Formula:     "raw x 100",
				Description: "Market crowding from the number of discovered competitors.",
			},
			FieldFeatureOverlap: {
				RawValue:    round4(in.Competitor.FeatureOverlapScore),
				Formula:     "raw x 100",
				Description: "Jaccard similarity of competitor descriptions against the idea's keywords.",
			},
			FieldTechComplexityScore: {
				RawValue:    round4(in.TechComplexity),
				Formula:     "raw x 100",
				Description: "Caller-supplied technical complexity.",
			},
			FieldRegulatoryRiskScore: {
				RawValue:    round4(in.RegulatoryRisk),
				Formula:     "raw x 100",
				Description: "Caller-supplied regulatory risk.",
			},
		},
	}
}

// GrowthScore maps a raw 5-year growth rate to 0-100 with tiered ranges.
// Raw growth can reach 2.0, so everything from 20% up is held at GrowthCeiling.
func GrowthScore(raw float64) float64 {
	switch {
	case raw >= 0.20:
		return GrowthCeiling
	case raw >= 0.10:
		return clamp100(65 + (raw-0.10)/0.10*15)
	case raw >= 0.03:
		return clamp100(50 + (raw-0.03)/0.07*15)
	case raw > 0:
		return clamp100(35 + raw/0.03*15)
	case raw == 0:
		return MissingGrowthDefault
	default:
		return clamp100(10 + math.Max(raw+1, 0)*10)
	}
}

func scale(raw float64) float64 {
	return clamp100(raw * 100)
}

func clamp100(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(100, v))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }

func round4(v float64) float64 { return math.Round(v*10000) / 10000 }

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
