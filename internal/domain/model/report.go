// Package model contains domain records passed between pipeline stages.
package model

import "time"

// Format identifies the declared type of an uploaded deck document.
type Format string

// Supported document formats.
const (
	FormatPDF      Format = "pdf"
	FormatPPTX     Format = "pptx"
	FormatDOCX     Format = "docx"
	FormatTXT      Format = "txt"
	FormatMarkdown Format = "md"
)

// Document is the extracted text of an uploaded deck.
// Text must be non-empty before the pipeline accepts it.
type Document struct {
	Text     string
	Filename string
	Format   Format
}

// Project holds the business profile extracted from the deck.
// Created once by the deck-extraction stage and immutable afterward.
type Project struct {
	ProjectName      string `json:"project_name"`
	Description      string `json:"description"`
	ProblemStatement string `json:"problem_statement"`
	Solution         string `json:"solution"`
	TargetMarket     string `json:"target_market"`
	BusinessModel    string `json:"business_model"`
}

// Founder is a team member extracted from the deck, later enriched with
// external lookup results and scoring.
type Founder struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	DeckBio string `json:"deck_bio"`

	// Enrichment fields, populated by the enrichment stage.
	LinkedIn string `json:"linkedin"`
	Twitter  string `json:"twitter"`
	GitHub   string `json:"github"`
	Bio      string `json:"bio"`
	Company  string `json:"company"`

	Score          float64  `json:"score"`
	TechnicalScore float64  `json:"technical_score"`
	BusinessScore  float64  `json:"business_score"`
	Contribution   string   `json:"contribution"`
	Strengths      []string `json:"strengths"`
	Improvements   []string `json:"areas_for_improvement"`

	GitRollUserID    string   `json:"gitroll_user_id,omitempty"`
	GitRollScore     *float64 `json:"gitroll_score"`
	SearchSuccessful bool     `json:"search_successful"`
}

// Activity classifies how recently a repository was updated.
type Activity string

// Activity buckets, computed from the time since the last update.
const (
	ActivityVeryHigh Activity = "very_high"
	ActivityHigh     Activity = "high"
	ActivityMedium   Activity = "medium"
	ActivityLow      Activity = "low"
	ActivityUnknown  Activity = "unknown"
)

// Repository describes one code repository linked to the project or a founder.
type Repository struct {
	URL         string    `json:"repo"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Language    string    `json:"main_lang"`
	Stars       int       `json:"stars"`
	Forks       int       `json:"forks"`
	Activity    Activity  `json:"activity"`
	LastUpdated time.Time `json:"last_updated"`
	Size        int       `json:"size"`
}

// Viability is the VC-style assessment of the project.
type Viability struct {
	Score              float64  `json:"score"`
	TeamScore          float64  `json:"team_score"`
	MarketScore        float64  `json:"market_score"`
	ProductScore       float64  `json:"product_score"`
	BusinessModelScore float64  `json:"business_model_score"`
	ExecutionScore     float64  `json:"execution_score"`
	Explanation        string   `json:"explanation"`
	RiskFactors        []string `json:"risk_factors"`
	Strengths          []string `json:"strengths"`
	PenaltiesApplied   []string `json:"penalties_applied"`
	BonusesApplied     []string `json:"bonuses_applied"`
	CriticalConcerns   []string `json:"critical_concerns"`
	Recommendation     string   `json:"recommendation"`
}

// Competitor is one discovered competing company.
type Competitor struct {
	Name           string  `json:"name"`
	Description    string  `json:"description"`
	Website        string  `json:"website"`
	Funding        string  `json:"funding"`
	Founded        string  `json:"founded"`
	Employees      string  `json:"employees"`
	RelevanceScore float64 `json:"relevance_score"`
}

// CompetitorReport is the competitive-landscape assessment.
// MarketSaturation is derived from the competitor count, never model-supplied.
type CompetitorReport struct {
	Competitors          []Competitor `json:"competitors"`
	MarketSaturation     string       `json:"market_saturation"`
	CompetitiveAdvantage string       `json:"competitive_advantage"`
	ThreatLevel          string       `json:"threat_level"`
	KeyDifferentiators   []string     `json:"key_differentiators"`
	MarketGaps           []string     `json:"market_gaps"`
	Recommendations      []string     `json:"recommendations"`
}

// ComplianceRisk is a single structured compliance risk.
type ComplianceRisk struct {
	Risk       string `json:"risk"`
	Severity   string `json:"severity"`
	Impact     string `json:"impact"`
	Mitigation string `json:"mitigation"`
}

// LegalRisk is a single structured legal risk.
type LegalRisk struct {
	Risk         string `json:"risk"`
	Probability  string `json:"probability"`
	Consequences string `json:"consequences"`
}

// Compliance is the regulatory and legal assessment.
type Compliance struct {
	ComplianceScore       float64          `json:"compliance_score"`
	RiskLevel             string           `json:"risk_level"`
	ComplianceRisks       []ComplianceRisk `json:"compliance_risks"`
	RegulatoryRequirement []string         `json:"regulatory_requirements"`
	LegalRisks            []LegalRisk      `json:"legal_risks"`
	DataPrivacyConcerns   []string         `json:"data_privacy_concerns"`
	Recommendations       []string         `json:"recommendations"`
	RequiredLicenses      []string         `json:"required_licenses"`
	Jurisdictions         []string         `json:"jurisdictions"`
}

// Question is one due-diligence follow-up question.
type Question struct {
	Question  string `json:"question"`
	Category  string `json:"category"`
	Priority  string `json:"priority"`
	Rationale string `json:"rationale"`
}

// QuestionSet is the follow-up question output. Questions is capped at ten;
// PriorityQuestions is the positional first three, preserving model order.
type QuestionSet struct {
	Questions         []Question     `json:"questions"`
	TotalQuestions    int            `json:"total_questions"`
	Categories        map[string]int `json:"categories"`
	PriorityQuestions []Question     `json:"priority_questions"`
}

// ViabilityBreakdown mirrors the per-dimension scores in the report surface.
type ViabilityBreakdown struct {
	TeamScore          float64 `json:"team_score"`
	MarketScore        float64 `json:"market_score"`
	ProductScore       float64 `json:"product_score"`
	BusinessModelScore float64 `json:"business_model_score"`
	ExecutionScore     float64 `json:"execution_score"`
}

// DetailedAnalysis is the narrative block of the report surface.
type DetailedAnalysis struct {
	Description   string `json:"description"`
	Problem       string `json:"problem"`
	Solution      string `json:"solution"`
	TargetMarket  string `json:"target_market"`
	BusinessModel string `json:"business_model"`
}

// Report is the aggregate produced by one pipeline run.
// It is created fresh per run, returned to the caller, and not persisted.
type Report struct {
	ID     string `json:"id"`
	Status string `json:"status"`

	ProjectName          string             `json:"project_name"`
	Summary              string             `json:"summary"`
	ViabilityScore       float64            `json:"viability_score"`
	ViabilityExplanation string             `json:"viability_explanation"`
	ViabilityBreakdown   ViabilityBreakdown `json:"viability_breakdown"`
	RiskFactors          []string           `json:"risk_factors"`
	Strengths            []string           `json:"strengths"`
	PenaltiesApplied     []string           `json:"penalties_applied"`
	BonusesApplied       []string           `json:"bonuses_applied"`
	CriticalConcerns     []string           `json:"critical_concerns"`
	Recommendation       string             `json:"recommendation"`

	Founders           []Founder        `json:"founders"`
	GitHubAnalysis     []Repository     `json:"github_analysis"`
	CompetitorAnalysis CompetitorReport `json:"competitor_analysis"`
	ComplianceAnalysis Compliance       `json:"compliance_analysis"`
	FollowupQuestions  QuestionSet      `json:"followup_questions"`
	DetailedAnalysis   DetailedAnalysis `json:"detailed_analysis"`

	AnalysisCompleted     bool               `json:"analysis_completed"`
	Message               string             `json:"message"`
	FileProcessed         string             `json:"file_processed"`
	ProcessingTimeSeconds float64            `json:"processing_time_seconds"`
	StepTiming            map[string]float64 `json:"step_timing"`
}

// Report status values. Error is reserved for input-stage failures; every
// downstream degradation still reports success with visible sentinel text.
const (
	StatusSuccess = "success"
	StatusError   = "error"
)
