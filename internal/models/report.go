package models

import (
	"time"

	"github.com/google/uuid"
)

// Verdicts
const (
	VerdictStrong   = "Strong"
	VerdictModerate = "Moderate"
	VerdictWeak     = "Weak"
)

// Risk levels
const (
	RiskHigh   = "High"
	RiskMedium = "Medium"
	RiskLow    = "Low"
)

// Summary is the rule-based reading of the module scores
type Summary struct {
	Verdict     string `json:"verdict"`
	RiskLevel   string `json:"risk_level"`
	KeyStrength string `json:"key_strength"`
	KeyRisk     string `json:"key_risk"`
}

// AgentStatus reports how one agent finished: ok, degraded or unavailable
type AgentStatus struct {
	State  string `json:"state"`
	Reason string `json:"reason,omitempty"`
}

// AgentStatuses groups the status of the three agents
type AgentStatuses struct {
	Problem    AgentStatus `json:"problem"`
	Trend      AgentStatus `json:"trend"`
	Competitor AgentStatus `json:"competitor"`
}

// EvaluationReport is the final artifact of one pipeline run
type EvaluationReport struct {
	EvaluationID        uuid.UUID              `json:"evaluation_id"`
	IdeaName            string                 `json:"idea_name"`
	NormalizedSignals   NormalizedSignals      `json:"normalized_signals"`
	ModuleScores        ModuleScores           `json:"module_scores"`
	ScoreBreakdown      map[string]ScoreDetail `json:"score_breakdown"`
	CompetitorNames     []string               `json:"competitor_names"`
	TrendDataAvailable  bool                   `json:"trend_data_available"`
	TrendDataSourceTier string                 `json:"trend_data_source_tier"`
	ProblemConfidence   ConfidenceLevel        `json:"problem_confidence"`
	AgentStatus         AgentStatuses          `json:"agent_status"`
	Summary             Summary                `json:"summary"`
	ElapsedMS           int64                  `json:"elapsed_ms"`
	EvaluatedAt         time.Time              `json:"evaluated_at"`
}
