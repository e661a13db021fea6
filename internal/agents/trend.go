package agents

import (
	"context"
	"math"
	"time"

	"github.com/ajharbinger/ideascore/internal/errors"
	"github.com/ajharbinger/ideascore/internal/logger"
	"github.com/ajharbinger/ideascore/internal/models"
	"github.com/ajharbinger/ideascore/internal/providers"
)

const (
	// demandFloor separates "measured but weak" from "no data"
	demandFloor = 0.05
	// neutralMomentum is reported when there is no baseline to compare against
	neutralMomentum = 0.5
	// proxyKeywords is how many tier-1 keywords feed the search-count proxy
	proxyKeywords = 2
)

// TrendAgent measures demand trajectory from search-interest series, falling
// back through keyword tiers until one yields usable data
type TrendAgent struct {
	series      TimeSeriesSource
	counts      SearchCounter
	logger      logger.Logger
	concurrency int
}

// NewTrendAgent creates the agent. counts feeds the weak-demand proxy. log may be nil.
func NewTrendAgent(series TimeSeriesSource, counts SearchCounter, log logger.Logger) *TrendAgent {
	if log == nil {
		log = logger.Discard()
	}
	return &TrendAgent{
		series:      series,
		counts:      counts,
		logger:      log.With("agent", "trend_demand"),
		concurrency: defaultConcurrency,
	}
}

type trendTier struct {
	name     string
	keywords []string
}

// TrendMetrics are the measurements taken from one aggregated series
type TrendMetrics struct {
	AvgVolume  float64
	Growth     float64
	Momentum   float64
	Volatility float64
	Demand     float64
}

// Run tries tier 1, 2 and 3 keywords in order and stops at the first usable tier
func (a *TrendAgent) Run(ctx context.Context, bundle models.QueryBundle) Outcome[models.TrendDemandSignals] {
	start := time.Now()

	tiers := []trendTier{{models.TrendTier1, bundle.TrendKeywords}}
	if len(bundle.Tier2Keywords) > 0 {
		tiers = append(tiers, trendTier{models.TrendTier2, bundle.Tier2Keywords})
	}
	if len(bundle.Tier3Keywords) > 0 {
		tiers = append(tiers, trendTier{models.TrendTier3, bundle.Tier3Keywords})
	}

	var failures []string
	for _, tier := range tiers {
		if ctx.Err() != nil {
			failures = append(failures, ctx.Err().Error())
			break
		}

		results := fanOut(ctx, tier.keywords, a.concurrency, func(ctx context.Context, kw string) ([]float64, error) {
			// Worldwide interest; idea geography is free text, not a region code
			return a.series.InterestOverTime(ctx, kw, "")
		})

		var perKeyword [][]float64
		for _, r := range results {
			switch {
			case r.err == nil && len(r.value) > 0:
				perKeyword = append(perKeyword, r.value)
			case r.err != nil && errors.Code(r.err) != errors.ErrCodeParse:
				// An empty timeline is "no data", anything else is a provider failure
				failures = append(failures, tier.name+": "+r.err.Error())
			}
		}

		if len(perKeyword) == 0 {
			a.logger.Debug("no trend data for tier", "tier", tier.name, "keywords", tier.keywords)
			continue
		}

		series := AverageSeries(perKeyword)
		metrics := ComputeTrendMetrics(series)
		if !isUsable(metrics) {
			a.logger.Debug("trend data not usable", "tier", tier.name)
			continue
		}

		a.logger.Info("trend tier selected", "tier", tier.name, "points", len(series))
		signals := a.buildSignals(ctx, bundle, tier, metrics)

		a.logger.Info("trend demand computed",
			"tier", tier.name,
			"demand_strength", signals.DemandStrength,
			"growth", signals.GrowthRate5Y,
			"momentum", signals.Momentum,
			"duration", time.Since(start))

		if len(failures) > 0 {
			return Degraded(signals, joinReasons(failures...))
		}
		return OK(signals)
	}

	reason := "no usable trend data in any tier"
	if len(failures) > 0 {
		reason = joinReasons(append([]string{reason}, failures...)...)
	}
	a.logger.Warn("trend data unavailable", "reason", reason)
	return Unavailable(EmptyTrendSignals(), reason)
}

func (a *TrendAgent) buildSignals(ctx context.Context, bundle models.QueryBundle, tier trendTier, m TrendMetrics) models.TrendDemandSignals {
	signals := models.TrendDemandSignals{
		TrendDataAvailable:  true,
		TrendDataSourceTier: tier.name,
		KeywordsUsed:        tier.keywords,
	}

	demand := m.Demand
	if demand < demandFloor {
		if proxy, ok := a.searchProxy(ctx, bundle.TrendKeywords); ok {
			demand = math.Max(demand, math.Min(1, proxy))
			signals.SearchProxyApplied = true
			a.logger.Info("weak demand raised by search-count proxy", "demand_strength", demand)
		} else {
			demand = math.Max(demand, demandFloor)
			signals.DemandFloorApplied = true
			a.logger.Warn("demand strength unavailable, applying low-confidence floor", "floor", demandFloor)
		}
	}

	signals.AvgSearchVolume = round(m.AvgVolume, 2)
	signals.GrowthRate5Y = round(m.Growth, 4)
	signals.Momentum = round(m.Momentum, 4)
	signals.Volatility = round(m.Volatility, 4)
	signals.DemandStrength = round(demand, 4)
	return signals
}

// searchProxy averages the non-zero web-search-count proxies of the top keywords
func (a *TrendAgent) searchProxy(ctx context.Context, keywords []string) (float64, bool) {
	if a.counts == nil || len(keywords) == 0 {
		return 0, false
	}
	if len(keywords) > proxyKeywords {
		keywords = keywords[:proxyKeywords]
	}

	var proxies []float64
	for _, r := range fanOut(ctx, keywords, a.concurrency, a.counts.Count) {
		if r.err != nil {
			a.logger.Debug("search-count proxy failed", "keyword", r.query, "error", r.err.Error())
			continue
		}
		if p := DemandProxy(r.value); p > 0 {
			proxies = append(proxies, p)
		}
	}
	if len(proxies) == 0 {
		return 0, false
	}
	return mean(proxies), true
}

// DemandProxy normalizes a search count into [0,1]: total results over 1e9,
// else related searches over 20
func DemandProxy(c providers.SearchCount) float64 {
	if c.TotalResults > 0 {
		return math.Min(float64(c.TotalResults)/1e9, 1)
	}
	if c.RelatedSearches > 0 {
		return math.Min(float64(c.RelatedSearches)/20, 1)
	}
	return 0
}

// EmptyTrendSignals is the neutral signal used when no tier produced data
func EmptyTrendSignals() models.TrendDemandSignals {
	return models.TrendDemandSignals{
		TrendDataAvailable:  false,
		TrendDataSourceTier: models.TrendTierNone,
	}
}

// AverageSeries averages keyword series point by point. Shorter series
// contribute only to the points they cover. Values are rounded to whole points.
func AverageSeries(perKeyword [][]float64) []float64 {
	maxLen := 0
	for _, s := range perKeyword {
		maxLen = max(maxLen, len(s))
	}

	averaged := make([]float64, maxLen)
	for i := range averaged {
		sum, n := 0.0, 0
		for _, s := range perKeyword {
			if i < len(s) {
				sum += s[i]
				n++
			}
		}
		averaged[i] = math.Round(sum / float64(n))
	}
	return averaged
}

// ComputeTrendMetrics measures volume, growth, momentum, volatility and demand
func ComputeTrendMetrics(series []float64) TrendMetrics {
	avg := mean(series)
	growth := GrowthRate5Y(series)
	return TrendMetrics{
		AvgVolume:  avg,
		Growth:     growth,
		Momentum:   Momentum(series),
		Volatility: Volatility(series),
		Demand:     DemandStrength(avg, growth),
	}
}

// GrowthRate5Y compares the last 12 points with the first 12, clamped to [-1, 2].
// Needs at least 24 points.
func GrowthRate5Y(series []float64) float64 {
	if len(series) < 24 {
		return 0
	}
	first := mean(series[:12])
	last := mean(series[len(series)-12:])
	if first == 0 {
		return 0
	}
	return clamp((last-first)/first, -1, 2)
}

// Momentum maps the change of the last 6 points over the prior 6 into [0,1].
// 0.5 is neutral. Needs at least 12 points.
func Momentum(series []float64) float64 {
	if len(series) < 12 {
		return neutralMomentum
	}
	n := len(series)
	prev := mean(series[n-12 : n-6])
	last := mean(series[n-6:])
	if prev == 0 {
		return neutralMomentum
	}
	raw := (last - prev) / prev
	return clamp((raw+1)/2, 0, 1)
}

// Volatility is the sample standard deviation over the mean, clamped to [0,1]
func Volatility(series []float64) float64 {
	if len(series) < 2 {
		return 0
	}
	m := mean(series)
	if m == 0 {
		return 0
	}
	var ss float64
	for _, v := range series {
		ss += (v - m) * (v - m)
	}
	stdev := math.Sqrt(ss / float64(len(series)-1))
	return clamp(stdev/m, 0, 1)
}

// DemandStrength scales average volume (0-100) to [0,1] and boosts it by growth
func DemandStrength(avgVolume, growth float64) float64 {
	volume := clamp(avgVolume/100, 0, 1)
	return clamp(volume*(1+growth), 0, 1)
}

func isUsable(m TrendMetrics) bool {
	return m.Demand > 0 || m.Growth != 0 || m.Momentum != neutralMomentum
}
