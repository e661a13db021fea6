package pipeline

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ajharbinger/ideascore/internal/agents"
	"github.com/ajharbinger/ideascore/internal/logger"
	"github.com/ajharbinger/ideascore/internal/models"
	"github.com/ajharbinger/ideascore/internal/normalize"
	"github.com/ajharbinger/ideascore/internal/query"
	"github.com/ajharbinger/ideascore/internal/scoring"
)

// DefaultAgentTimeout bounds a single agent when no timeout is configured
const DefaultAgentTimeout = 60 * time.Second

// Providers are the external collaborators the agents call
type Providers struct {
	Content    agents.ContentSearcher
	Counts     agents.SearchCounter
	Series     agents.TimeSeriesSource
	Discoverer agents.CompanyDiscoverer
}

// Evaluator runs one idea through query building, the three agents,
// normalization and scoring
type Evaluator struct {
	problem      *agents.ProblemIntensityAgent
	trend        *agents.TrendAgent
	competitor   *agents.CompetitorAgent
	engine       *scoring.ScoringEngine
	agentTimeout time.Duration
	logger       logger.Logger
	now          func() time.Time
}

// NewEvaluator wires the agents to their providers. log may be nil.
func NewEvaluator(p Providers, agentTimeout time.Duration, log logger.Logger) *Evaluator {
	if log == nil {
		log = logger.Discard()
	}
	if agentTimeout <= 0 {
		agentTimeout = DefaultAgentTimeout
	}
	return &Evaluator{
		problem:      agents.NewProblemIntensityAgent(p.Content, p.Counts, log),
		trend:        agents.NewTrendAgent(p.Series, p.Counts, log),
		competitor:   agents.NewCompetitorAgent(p.Discoverer, log),
		engine:       scoring.NewScoringEngine(),
		agentTimeout: agentTimeout,
		logger:       log.With("component", "evaluator"),
		now:          time.Now,
	}
}

// agentResults collects the three agent outcomes after fan-in
type agentResults struct {
	problem    agents.Outcome[models.ProblemIntensitySignals]
	trend      agents.Outcome[models.TrendDemandSignals]
	competitor agents.Outcome[models.CompetitorSignals]
}

// Evaluate validates the idea and produces a complete report. The only error
// returned is a validation error: agent failures degrade the report instead.
func (e *Evaluator) Evaluate(ctx context.Context, idea models.Idea) (*models.EvaluationReport, error) {
	start := time.Now()

	idea = idea.WithDefaults()
	if err := idea.Validate(); err != nil {
		return nil, err
	}

	bundle := query.Build(idea)
	e.logger.Info("evaluation started",
		"idea", idea.Name,
		"core_keywords", len(bundle.CoreKeywords),
		"competitor_queries", len(bundle.CompetitorQueries))

	results := e.runAgents(ctx, idea, bundle)

	signals := normalize.Normalize(normalize.Input{
		Problem:        results.problem.Value,
		Trend:          results.trend.Value,
		Competitor:     results.competitor.Value,
		TechComplexity: idea.TechComplexity,
		RegulatoryRisk: idea.RegulatoryRisk,
	})
	scored := e.engine.Score(signals)

	report := &models.EvaluationReport{
		EvaluationID:        uuid.New(),
		IdeaName:            idea.Name,
		NormalizedSignals:   signals,
		ModuleScores:        scored.Scores,
		ScoreBreakdown:      scored.Breakdown,
		CompetitorNames:     results.competitor.Value.CompetitorNames,
		TrendDataAvailable:  results.trend.Value.TrendDataAvailable,
		TrendDataSourceTier: results.trend.Value.TrendDataSourceTier,
		ProblemConfidence:   results.problem.Value.ConfidenceLevel,
		AgentStatus: models.AgentStatuses{
			Problem:    results.problem.Status(),
			Trend:      results.trend.Status(),
			Competitor: results.competitor.Status(),
		},
		Summary:     scored.Summary,
		ElapsedMS:   time.Since(start).Milliseconds(),
		EvaluatedAt: e.now().UTC(),
	}
	if report.CompetitorNames == nil {
		report.CompetitorNames = []string{}
	}

	e.logger.Info("evaluation completed",
		"evaluation_id", report.EvaluationID,
		"idea", idea.Name,
		"final_score", report.ModuleScores.FinalViabilityScore,
		"verdict", report.Summary.Verdict,
		"problem_state", report.AgentStatus.Problem.State,
		"trend_state", report.AgentStatus.Trend.State,
		"competitor_state", report.AgentStatus.Competitor.State,
		"elapsed_ms", report.ElapsedMS)

	return report, nil
}

// runAgents launches the three agents concurrently and waits for all of them.
// Each agent gets its own timeout so a slow one never cancels its siblings.
func (e *Evaluator) runAgents(ctx context.Context, idea models.Idea, bundle models.QueryBundle) agentResults {
	var (
		wg      sync.WaitGroup
		results agentResults
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		agentCtx, cancel := context.WithTimeout(ctx, e.agentTimeout)
		defer cancel()
		results.problem = e.problem.Run(agentCtx, idea)
	}()
	go func() {
		defer wg.Done()
		agentCtx, cancel := context.WithTimeout(ctx, e.agentTimeout)
		defer cancel()
		results.trend = e.trend.Run(agentCtx, bundle)
	}()
	go func() {
		defer wg.Done()
		agentCtx, cancel := context.WithTimeout(ctx, e.agentTimeout)
		defer cancel()
		results.competitor = e.competitor.Run(agentCtx, bundle)
	}()
	wg.Wait()

	return results
}
