package models

// ConfidenceLevel is a coarse label for how many independent signal categories contributed to a score
type ConfidenceLevel string

const (
	ConfidenceLow    ConfidenceLevel = "low"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceHigh   ConfidenceLevel = "high"
)

// Trend keyword tiers
const (
	TrendTier1    = "tier_1"
	TrendTier2    = "tier_2"
	TrendTier3    = "tier_3"
	TrendTierNone = "none"
)

// QueryBundle is the keyword and query set derived once per idea. Every list is non-empty.
type QueryBundle struct {
	CoreKeywords      []string `json:"core_keywords"`
	TrendKeywords     []string `json:"trend_keywords"`
	Tier2Keywords     []string `json:"tier2_keywords"`
	Tier3Keywords     []string `json:"tier3_keywords"`
	PainQueries       []string `json:"pain_queries"`
	CompetitorQueries []string `json:"competitor_queries"`
	IndustryTags      []string `json:"industry_tags"`
}

// ProblemIntensitySignals measures how painful the target problem is
type ProblemIntensitySignals struct {
	// Search intent
	TotalProblemQueries    int     `json:"total_problem_queries"`
	ProblemQueryRatio      float64 `json:"problem_query_ratio"`
	AlternativesQueryRatio float64 `json:"alternatives_query_ratio"`

	// Evidence
	PainArticlesCount int     `json:"pain_articles_count"`
	AvgRecencyMonths  float64 `json:"avg_recency_months"`

	// Complaints
	ComplaintDensity float64  `json:"complaint_density"`
	TopComplaints    []string `json:"top_complaints"`

	// Manual process
	ManualProcessDetected   bool    `json:"manual_process_detected"`
	ManualStepsCount        int     `json:"manual_steps_count"`
	EstimatedTimeWasteHours float64 `json:"estimated_time_waste_hours"`

	PainKeywords []string `json:"pain_keywords"`

	SearchIntentScore     float64         `json:"search_intent_score"`
	EvidenceStrengthScore float64         `json:"evidence_strength_score"`
	ComplaintScore        float64         `json:"complaint_score"`
	ManualCostScore       float64         `json:"manual_cost_score"`
	ProblemIntensityScore float64         `json:"problem_intensity_score"`
	ConfidenceLevel       ConfidenceLevel `json:"confidence_level"`
	Explanation           string          `json:"explanation"`
}

// TrendDemandSignals measures market demand trajectory from search interest
type TrendDemandSignals struct {
	AvgSearchVolume     float64  `json:"avg_search_volume"`
	GrowthRate5Y        float64  `json:"growth_rate_5y"`
	Momentum            float64  `json:"momentum_score"`
	Volatility          float64  `json:"volatility_index"`
	DemandStrength      float64  `json:"demand_strength_score"`
	TrendDataAvailable  bool     `json:"trend_data_available"`
	TrendDataSourceTier string   `json:"trend_data_source_tier"`
	KeywordsUsed        []string `json:"keywords_used,omitempty"`

	// Set when the web-search-count proxy raised a weak demand value
	SearchProxyApplied bool `json:"search_proxy_applied"`
	// Set when demand was raised to the low-confidence floor instead of left at zero
	DemandFloorApplied bool `json:"demand_floor_applied"`
}

// CompetitorSignals characterizes discovered competitors
type CompetitorSignals struct {
	CompetitorCount        int      `json:"competitor_count"`
	CompetitorNames        []string `json:"competitor_names"`
	AvgCompanyAge          float64  `json:"avg_company_age"`
	CompetitorDensityScore float64  `json:"competitor_density_score"`
	FeatureOverlapScore    float64  `json:"feature_overlap_score"`
}

// Explanation is the audit record for one normalized field. It is not used in scoring.
type Explanation struct {
	RawValue    float64 `json:"raw_value"`
	Formula     string  `json:"formula"`
	Description string  `json:"description"`
}

// NormalizedSignals holds every scoring input on a 0-100 scale
type NormalizedSignals struct {
	PainIntensity       float64 `json:"pain_intensity"`
	DemandStrength      float64 `json:"demand_strength"`
	MarketGrowth        float64 `json:"market_growth"`
	MarketMomentum      float64 `json:"market_momentum"`
	CompetitionDensity  float64 `json:"competition_density"`
	FeatureOverlap      float64 `json:"feature_overlap"`
	TechComplexityScore float64 `json:"tech_complexity_score"`
	RegulatoryRiskScore float64 `json:"regulatory_risk_score"`

	Explanations map[string]Explanation `json:"explanation"`
}

// ModuleScores are the five module scores and the weighted final score
type ModuleScores struct {
	ProblemIntensity     float64 `json:"problem_intensity"`
	MarketTiming         float64 `json:"market_timing"`
	CompetitionPressure  float64 `json:"competition_pressure"`
	MarketPotential      float64 `json:"market_potential"`
	ExecutionFeasibility float64 `json:"execution_feasibility"`
	FinalViabilityScore  float64 `json:"final_viability_score"`
}

// ScoreDetail is the audit record for one module's share of the final score
type ScoreDetail struct {
	Score        float64 `json:"score"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
	Formula      string  `json:"formula"`
}
