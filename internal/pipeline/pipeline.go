// Package pipeline runs the multi-stage evaluation of a pitch deck: profile
// extraction, founder discovery and enrichment, repository analysis,
// viability scoring, competitor mapping, compliance review, follow-up
// question generation, and a one-line summary.
//
// The pipeline is resilient by construction. Every stage after input
// validation degrades instead of failing: a model call that errors or
// returns garbage yields the stage's typed default, and the report still
// comes back with status success. Only unusable input produces an error
// report.
package pipeline

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/deckray/deckray/internal/adapters/competitorsearch"
	"github.com/deckray/deckray/internal/adapters/github"
	"github.com/deckray/deckray/internal/adapters/gitroll"
	"github.com/deckray/deckray/internal/adapters/llm"
	"github.com/deckray/deckray/internal/adapters/websearch"
	"github.com/deckray/deckray/internal/domain/model"
	"github.com/deckray/deckray/pkg/logger"
	"github.com/deckray/deckray/pkg/metrics"
)

// CodeHost is the subset of the code-hosting API the pipeline consumes.
type CodeHost interface {
	GetUserProfile(ctx context.Context, username string) (*github.Profile, error)
	GetUserRepositories(ctx context.Context, username string) ([]github.Repo, error)
	SearchRepositories(ctx context.Context, query string) ([]github.Repo, error)
}

// Scanner is the subset of the developer-scan API the pipeline consumes.
type Scanner interface {
	InitiateScan(ctx context.Context, username string) (string, error)
	WaitForCompletion(ctx context.Context, scanID string) gitroll.ScanStatus
}

// Step timing keys, fixed so report consumers can rely on them.
const (
	stepProjectAnalysis    = "step1_project_analysis"
	stepViabilityAnalysis  = "step2_viability_analysis"
	stepFounderAnalysis    = "step3_founder_analysis"
	stepGitHubAnalysis     = "step4_github_analysis"
	stepCompetitorAnalysis = "step5_competitor_analysis"
	stepComplianceAnalysis = "step6_compliance_analysis"
	stepSummaryGeneration  = "step7_summary_generation"
	stepFollowupQuestions  = "step8_followup_questions"
)

// Runner orchestrates the analysis stages over a fixed set of adapters.
type Runner struct {
	completer   llm.Completer
	person      websearch.PersonLookup
	code        CodeHost
	scanner     Scanner
	searcher    competitorsearch.Searcher
	log         logger.Logger
	now         func() time.Time
	newID       func() string
	stageLimit  time.Duration
	scanCeiling time.Duration

	enrichWorkers int
	deckPrefix    int
	founderPrefix int

	// timingMu serializes StepTiming writes from concurrent stages.
	timingMu sync.Mutex
}

// NewRunner creates a pipeline runner. A Completer is required; every other
// adapter has a degraded default (stub lookups, no code host, no scanner).
func NewRunner(completer llm.Completer, opts ...Option) (*Runner, error) {
	if completer == nil {
		return nil, ErrNoCompleter
	}

	r := &Runner{
		completer:     completer,
		person:        websearch.NewStub(),
		searcher:      competitorsearch.NewStub(),
		log:           logger.Get().Named("pipeline"),
		now:           time.Now,
		newID:         uuid.NewString,
		stageLimit:    2 * time.Minute,
		scanCeiling:   5 * time.Minute,
		enrichWorkers: 3,
		deckPrefix:    3000,
		founderPrefix: 4000,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Analyze evaluates one deck and returns the aggregate report. It never
// returns an error; input problems surface as a status=error report.
func (r *Runner) Analyze(ctx context.Context, doc model.Document, projectNameHint string) model.Report {
	started := r.now()
	report := model.Report{
		ID:            r.newID(),
		Status:        model.StatusSuccess,
		FileProcessed: doc.Filename,
		StepTiming:    map[string]float64{},
	}

	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error(ctx, "analysis panicked", logger.Any("panic", rec))
			report.Status = model.StatusError
			report.AnalysisCompleted = false
			report.Message = fmt.Sprintf("internal error: %v", rec)
		}
		report.ProcessingTimeSeconds = r.now().Sub(started).Seconds()
		metrics.RecordAnalysisCompleted(report.Status, report.ProcessingTimeSeconds)
	}()

	metrics.RecordAnalysisStarted()

	if strings.TrimSpace(doc.Text) == "" {
		report.Status = model.StatusError
		report.AnalysisCompleted = false
		report.Message = "document contains no extractable text"
		return report
	}
	report.AnalysisCompleted = true

	// Stage 1: the project profile gates everything downstream.
	project := r.timedProject(ctx, &report, stepProjectAnalysis, doc, projectNameHint)

	// Independent stages run concurrently into their own slots.
	var (
		wg          sync.WaitGroup
		viability   model.Viability
		founders    []model.Founder
		competitors model.CompetitorReport
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		viability = r.timedViability(ctx, &report, stepViabilityAnalysis, project, doc.Text)
	}()
	go func() {
		defer wg.Done()
		founders = r.timedFounders(ctx, &report, stepFounderAnalysis, doc.Text, project)
	}()
	go func() {
		defer wg.Done()
		competitors = r.timedCompetitors(ctx, &report, stepCompetitorAnalysis, project)
	}()
	wg.Wait()

	repos := r.timedRepositories(ctx, &report, stepGitHubAnalysis, doc.Text, founders)
	compliance := r.timedCompliance(ctx, &report, stepComplianceAnalysis, project, founders)
	summary := r.timedSummary(ctx, &report, stepSummaryGeneration, project, viability)
	questions := r.timedQuestions(ctx, &report, stepFollowupQuestions, project, viability, founders, competitors)

	report.ProjectName = project.ProjectName
	report.Summary = summary
	report.ViabilityScore = viability.Score
	report.ViabilityExplanation = viability.Explanation
	report.ViabilityBreakdown = model.ViabilityBreakdown{
		TeamScore:          viability.TeamScore,
		MarketScore:        viability.MarketScore,
		ProductScore:       viability.ProductScore,
		BusinessModelScore: viability.BusinessModelScore,
		ExecutionScore:     viability.ExecutionScore,
	}
	report.RiskFactors = viability.RiskFactors
	report.Strengths = viability.Strengths
	report.PenaltiesApplied = viability.PenaltiesApplied
	report.BonusesApplied = viability.BonusesApplied
	report.CriticalConcerns = viability.CriticalConcerns
	report.Recommendation = viability.Recommendation
	report.Founders = founders
	report.GitHubAnalysis = repos
	report.CompetitorAnalysis = competitors
	report.ComplianceAnalysis = compliance
	report.FollowupQuestions = questions
	report.DetailedAnalysis = model.DetailedAnalysis{
		Description:   project.Description,
		Problem:       project.ProblemStatement,
		Solution:      project.Solution,
		TargetMarket:  project.TargetMarket,
		BusinessModel: project.BusinessModel,
	}
	report.Message = "analysis completed"

	return report
}

// stageCtx bounds one stage's external calls.
func (r *Runner) stageCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.stageLimit)
}

func (r *Runner) recordTiming(report *model.Report, step string, started time.Time) {
	elapsed := r.now().Sub(started).Seconds()
	r.timingMu.Lock()
	report.StepTiming[step] = elapsed
	r.timingMu.Unlock()
	metrics.RecordStageDuration(step, elapsed)
}

func (r *Runner) timedProject(ctx context.Context, report *model.Report, step string, doc model.Document, hint string) model.Project {
	started := r.now()
	defer r.recordTiming(report, step, started)

	sctx, cancel := r.stageCtx(ctx)
	defer cancel()
	return r.extractProject(sctx, doc.Text, hint)
}

func (r *Runner) timedViability(ctx context.Context, report *model.Report, step string, project model.Project, deckText string) model.Viability {
	started := r.now()
	defer r.recordTiming(report, step, started)

	sctx, cancel := r.stageCtx(ctx)
	defer cancel()
	return r.scoreViability(sctx, project, deckText)
}

func (r *Runner) timedFounders(ctx context.Context, report *model.Report, step string, deckText string, project model.Project) []model.Founder {
	started := r.now()
	defer r.recordTiming(report, step, started)

	// Enrichment waits on developer scans, so this stage's limit must sit
	// above the scan ceiling or the ceiling could never be reached.
	sctx, cancel := context.WithTimeout(ctx, r.stageLimit+r.scanCeiling)
	defer cancel()
	founders := r.extractFounders(sctx, deckText)
	return r.enrichFounders(sctx, founders, project)
}

func (r *Runner) timedCompetitors(ctx context.Context, report *model.Report, step string, project model.Project) model.CompetitorReport {
	started := r.now()
	defer r.recordTiming(report, step, started)

	sctx, cancel := r.stageCtx(ctx)
	defer cancel()
	return r.analyzeCompetitors(sctx, project)
}

func (r *Runner) timedRepositories(ctx context.Context, report *model.Report, step string, deckText string, founders []model.Founder) []model.Repository {
	started := r.now()
	defer r.recordTiming(report, step, started)

	sctx, cancel := r.stageCtx(ctx)
	defer cancel()
	return r.analyzeRepositories(sctx, deckText, founders)
}

func (r *Runner) timedCompliance(ctx context.Context, report *model.Report, step string, project model.Project, founders []model.Founder) model.Compliance {
	started := r.now()
	defer r.recordTiming(report, step, started)

	sctx, cancel := r.stageCtx(ctx)
	defer cancel()
	return r.analyzeCompliance(sctx, project, founders)
}

func (r *Runner) timedSummary(ctx context.Context, report *model.Report, step string, project model.Project, viability model.Viability) string {
	started := r.now()
	defer r.recordTiming(report, step, started)

	sctx, cancel := r.stageCtx(ctx)
	defer cancel()
	return r.summarize(sctx, project, viability)
}

func (r *Runner) timedQuestions(ctx context.Context, report *model.Report, step string, project model.Project, viability model.Viability, founders []model.Founder, competitors model.CompetitorReport) model.QuestionSet {
	started := r.now()
	defer r.recordTiming(report, step, started)

	sctx, cancel := r.stageCtx(ctx)
	defer cancel()
	return r.generateQuestions(sctx, project, viability, founders, competitors)
}
