package normalize

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ajharbinger/ideascore/internal/models"
)

func sampleInput() Input {
	return Input{
		Problem: models.ProblemIntensitySignals{
			ProblemIntensityScore: 70.25,
			ConfidenceLevel:       models.ConfidenceHigh,
			Explanation:           "Problem intensity = 70.2 (confidence=high).",
		},
		Trend: models.TrendDemandSignals{
			DemandStrength:      0.42,
			GrowthRate5Y:        0.15,
			Momentum:            0.61,
			TrendDataAvailable:  true,
			TrendDataSourceTier: models.TrendTier1,
		},
		Competitor: models.CompetitorSignals{
			CompetitorDensityScore: 0.35,
			FeatureOverlapScore:    0.1234,
		},
		TechComplexity: 0.4,
		RegulatoryRisk: 0.25,
	}
}

func TestNormalize(t *testing.T) {
	ns := Normalize(sampleInput())

	assert.Equal(t, 70.25, ns.PainIntensity)
	assert.Equal(t, 42.0, ns.DemandStrength)
	assert.Equal(t, 72.5, ns.MarketGrowth)
	assert.Equal(t, 61.0, ns.MarketMomentum)
	assert.Equal(t, 35.0, ns.CompetitionDensity)
	assert.Equal(t, 12.34, ns.FeatureOverlap)
	assert.Equal(t, 40.0, ns.TechComplexityScore)
	assert.Equal(t, 25.0, ns.RegulatoryRiskScore)

	assert.Len(t, ns.Explanations, 8)
	assert.Equal(t, 0.15, ns.Explanations[FieldMarketGrowth].RawValue)
	assert.Contains(t, ns.Explanations[FieldPainIntensity].Description, "Confidence: high")
}

func TestGrowthScore_SaturatesAt80(t *testing.T) {
	assert.Equal(t, 80.0, GrowthScore(0.20))
	assert.Equal(t, 80.0, GrowthScore(0.35))
	assert.Equal(t, 80.0, GrowthScore(2.0))
}

func TestGrowthScore_Tiers(t *testing.T) {
	tests := []struct {
		raw      float64
		expected float64
	}{
		{0.10, 65},
		{0.03, 50},
		{0.015, 42.5},
		{0, MissingGrowthDefault},
		{-0.5, 15},
		{-1, 10},
		{-3, 10},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.expected, GrowthScore(tt.raw), 1e-9, "raw growth %v", tt.raw)
	}
}

func TestGrowthScore_Monotonic(t *testing.T) {
	// Exactly 0 is the missing-data sentinel and is checked separately
	prev := -1.0
	for i := -100; i <= 200; i++ {
		if i == 0 {
			continue
		}
		raw := float64(i) / 100
		got := GrowthScore(raw)
		if got < prev {
			t.Fatalf("GrowthScore not monotonic at %v: %v < %v", raw, got, prev)
		}
		if got < 0 || got > 100 {
			t.Fatalf("GrowthScore(%v) = %v out of range", raw, got)
		}
		prev = got
	}
}

func TestNormalize_TrendUnavailableCapsMarketSignals(t *testing.T) {
	in := sampleInput()
	in.Trend = models.TrendDemandSignals{
		DemandStrength:     0.9,
		GrowthRate5Y:       0.5,
		Momentum:           0.95,
		TrendDataAvailable: false,
	}

	ns := Normalize(in)

	assert.Equal(t, LowConfidenceCap, ns.DemandStrength)
	assert.Equal(t, LowConfidenceCap, ns.MarketGrowth)
	assert.Equal(t, LowConfidenceCap, ns.MarketMomentum)
	assert.Contains(t, ns.Explanations[FieldMarketGrowth].Description, "No trend data")
}

func TestNormalize_EmptyTrendSignals(t *testing.T) {
	in := sampleInput()
	in.Trend = models.TrendDemandSignals{TrendDataSourceTier: models.TrendTierNone}

	ns := Normalize(in)

	assert.Equal(t, 0.0, ns.DemandStrength)
	assert.Equal(t, MissingGrowthDefault, ns.MarketGrowth)
	assert.Equal(t, 0.0, ns.MarketMomentum)
}

func TestNormalize_ClampsOutOfRange(t *testing.T) {
	in := sampleInput()
	in.Problem.ProblemIntensityScore = 140
	in.Competitor.CompetitorDensityScore = 1.7
	in.TechComplexity = -0.2

	ns := Normalize(in)

	assert.Equal(t, 100.0, ns.PainIntensity)
	assert.Equal(t, 100.0, ns.CompetitionDensity)
	assert.Equal(t, 0.0, ns.TechComplexityScore)
}

func TestNormalize_Idempotent(t *testing.T) {
	first := Normalize(sampleInput())
	second := Normalize(sampleInput())

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical output for identical input:\n%+v\n%+v", first, second)
	}
}
