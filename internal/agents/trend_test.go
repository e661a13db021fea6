package agents

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajharbinger/ideascore/internal/errors"
	"github.com/ajharbinger/ideascore/internal/models"
	"github.com/ajharbinger/ideascore/internal/providers"
)

type fakeSeries struct {
	mu      sync.Mutex
	byKey   map[string][]float64
	errs    map[string]error
	fallErr error
	calls   []string
}

func (f *fakeSeries) InterestOverTime(ctx context.Context, keyword, geo string) ([]float64, error) {
	f.mu.Lock()
	f.calls = append(f.calls, keyword)
	f.mu.Unlock()

	if err, ok := f.errs[keyword]; ok {
		return nil, err
	}
	if s, ok := f.byKey[keyword]; ok {
		return s, nil
	}
	if f.fallErr != nil {
		return nil, f.fallErr
	}
	return nil, errors.ParseError("no interest_over_time data for "+keyword, nil)
}

func constant(n int, v float64) []float64 {
	s := make([]float64, n)
	for i := range s {
		s[i] = v
	}
	return s
}

func trendBundle() models.QueryBundle {
	return models.QueryBundle{
		TrendKeywords: []string{"invoice reconciliation", "reconciliation software"},
		Tier2Keywords: []string{"fintech software"},
		Tier3Keywords: []string{"fintech"},
	}
}

func TestTrendAgent_FallsBackToTier2(t *testing.T) {
	series := &fakeSeries{byKey: map[string][]float64{
		"invoice reconciliation":  constant(60, 0),
		"reconciliation software": constant(60, 0),
		"fintech software":        constant(60, 50),
	}}
	agent := NewTrendAgent(series, nil, nil)

	out := agent.Run(context.Background(), trendBundle())

	require.Equal(t, StateOK, out.State)
	s := out.Value
	assert.True(t, s.TrendDataAvailable)
	assert.Equal(t, models.TrendTier2, s.TrendDataSourceTier)
	assert.Equal(t, []string{"fintech software"}, s.KeywordsUsed)
	assert.Equal(t, 50.0, s.AvgSearchVolume)
	assert.Equal(t, 0.5, s.DemandStrength)
	assert.Equal(t, 0.5, s.Momentum)
	assert.Equal(t, 0.0, s.Volatility)
	assert.NotContains(t, series.calls, "fintech", "tier 3 should not be queried once tier 2 is usable")
}

func TestTrendAgent_Tier1Metrics(t *testing.T) {
	rising := append(append(constant(12, 10), constant(12, 15)...), constant(12, 20)...)
	series := &fakeSeries{byKey: map[string][]float64{"invoice reconciliation": rising}}
	agent := NewTrendAgent(series, nil, nil)

	out := agent.Run(context.Background(), trendBundle())

	// The second tier-1 keyword has no data, which is not a failure
	require.Equal(t, StateOK, out.State)
	s := out.Value
	assert.Equal(t, models.TrendTier1, s.TrendDataSourceTier)
	assert.Equal(t, 15.0, s.AvgSearchVolume)
	assert.Equal(t, 1.0, s.GrowthRate5Y)
	assert.Equal(t, 0.5, s.Momentum)
	assert.Equal(t, 0.3, s.DemandStrength)
	assert.False(t, s.DemandFloorApplied)
	assert.False(t, s.SearchProxyApplied)
}

func TestTrendAgent_AllTiersFailIsUnavailable(t *testing.T) {
	series := &fakeSeries{fallErr: errors.TransientError("serpapi_trends request timeout", nil)}
	agent := NewTrendAgent(series, nil, nil)

	out := agent.Run(context.Background(), trendBundle())

	require.Equal(t, StateUnavailable, out.State)
	assert.Contains(t, out.Reason, "no usable trend data in any tier")
	assert.Contains(t, out.Reason, "tier_3: TRANSIENT_ERROR")
	assert.False(t, out.Value.TrendDataAvailable)
	assert.Equal(t, models.TrendTierNone, out.Value.TrendDataSourceTier)
	assert.Equal(t, 0.0, out.Value.DemandStrength)
	assert.Len(t, series.calls, 4)
}

func TestTrendAgent_PartialFailureIsDegraded(t *testing.T) {
	series := &fakeSeries{
		byKey: map[string][]float64{"reconciliation software": constant(60, 40)},
		errs:  map[string]error{"invoice reconciliation": errors.FromStatus(503, "unavailable")},
	}
	agent := NewTrendAgent(series, nil, nil)

	out := agent.Run(context.Background(), trendBundle())

	require.Equal(t, StateDegraded, out.State)
	assert.Contains(t, out.Reason, "tier_1")
	assert.Equal(t, models.TrendTier1, out.Value.TrendDataSourceTier)
	assert.Equal(t, 0.4, out.Value.DemandStrength)
}

func TestTrendAgent_WeakDemandUsesSearchProxy(t *testing.T) {
	series := &fakeSeries{byKey: map[string][]float64{"invoice reconciliation": constant(60, 2)}}
	counts := &fakeCounter{count: func(q string) (providers.SearchCount, error) {
		return providers.SearchCount{TotalResults: 300_000_000}, nil
	}}
	agent := NewTrendAgent(series, counts, nil)

	out := agent.Run(context.Background(), trendBundle())

	require.Equal(t, StateOK, out.State)
	assert.True(t, out.Value.SearchProxyApplied)
	assert.False(t, out.Value.DemandFloorApplied)
	assert.Equal(t, 0.3, out.Value.DemandStrength)
}

func TestTrendAgent_WeakDemandFloor(t *testing.T) {
	series := &fakeSeries{byKey: map[string][]float64{"invoice reconciliation": constant(60, 2)}}
	agent := NewTrendAgent(series, failingCounter(errors.ConfigurationError("SERPAPI_KEY is not set")), nil)

	out := agent.Run(context.Background(), trendBundle())

	require.Equal(t, StateOK, out.State)
	assert.True(t, out.Value.DemandFloorApplied)
	assert.Equal(t, demandFloor, out.Value.DemandStrength)
	assert.Equal(t, 2.0, out.Value.AvgSearchVolume)
}

func TestAverageSeries(t *testing.T) {
	got := AverageSeries([][]float64{{10, 20, 30}, {20, 41}})
	assert.Equal(t, []float64{15, 31, 30}, got)
}

func TestGrowthRate5Y(t *testing.T) {
	assert.Equal(t, 0.0, GrowthRate5Y(constant(23, 50)), "needs 24 points")
	assert.Equal(t, 0.0, GrowthRate5Y(append(constant(12, 0), constant(12, 40)...)), "zero baseline")
	assert.Equal(t, 2.0, GrowthRate5Y(append(constant(12, 10), constant(12, 90)...)), "clamped high")
	assert.Equal(t, -0.5, GrowthRate5Y(append(constant(12, 40), constant(12, 20)...)))
}

func TestMomentum(t *testing.T) {
	assert.Equal(t, neutralMomentum, Momentum(constant(11, 30)), "short series is neutral")
	assert.Equal(t, neutralMomentum, Momentum(append(constant(6, 0), constant(6, 30)...)), "zero baseline is neutral")
	assert.Equal(t, 0.75, Momentum(append(constant(6, 10), constant(6, 15)...)))
	assert.Equal(t, 1.0, Momentum(append(constant(6, 10), constant(6, 40)...)))
	assert.Equal(t, 0.0, Momentum(append(constant(6, 10), constant(6, 0)...)))
}

func TestVolatility(t *testing.T) {
	assert.Equal(t, 0.0, Volatility([]float64{5}))
	assert.Equal(t, 0.0, Volatility(constant(5, 0)))
	assert.InDelta(t, 0.7071, Volatility([]float64{1, 3}), 1e-4)
	assert.Equal(t, 1.0, Volatility([]float64{0, 0, 0, 100}))
}

func TestDemandStrength(t *testing.T) {
	assert.Equal(t, 0.5, DemandStrength(50, 0))
	assert.Equal(t, 1.0, DemandStrength(80, 0.5))
	assert.Equal(t, 0.0, DemandStrength(50, -1))
	assert.Equal(t, 1.0, DemandStrength(150, 0))
}

func TestDemandProxy(t *testing.T) {
	assert.Equal(t, 0.25, DemandProxy(providers.SearchCount{TotalResults: 250_000_000, RelatedSearches: 8}))
	assert.Equal(t, 1.0, DemandProxy(providers.SearchCount{TotalResults: 5_000_000_000}))
	assert.Equal(t, 0.4, DemandProxy(providers.SearchCount{RelatedSearches: 8}))
	assert.Equal(t, 0.0, DemandProxy(providers.SearchCount{}))
}
