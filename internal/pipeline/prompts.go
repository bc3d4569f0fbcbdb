package pipeline

import (
	"fmt"
	"strings"

	"github.com/deckray/deckray/internal/adapters/competitorsearch"
	"github.com/deckray/deckray/internal/domain/model"
)

// Prompt builders for every model call. Each returns a single user prompt;
// instructions and deck content travel together. Deck text is truncated to
// a per-stage prefix cap so one oversized deck cannot blow the context
// window.

// prefix returns at most n runes of s without splitting a UTF-8 sequence.
func prefix(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func deckExtractionPrompt(deckText string, limit int) string {
	return fmt.Sprintf(`You are a startup analyst. Extract the business profile from this pitch deck.

Respond with ONLY a JSON object with exactly these keys:
{
  "project_name": "the startup's name",
  "description": "one-paragraph description of what the company does",
  "problem_statement": "the problem being solved",
  "solution": "how the product solves it",
  "target_market": "who the customers are",
  "business_model": "how the company makes money"
}

Use "Unknown" for anything the deck does not state.

Pitch deck:
%s`, prefix(deckText, limit))
}

func founderExtractionPrompt(deckText string, limit int) string {
	return fmt.Sprintf(`You are a startup analyst. Identify the founders and key team members in this pitch deck. Look for a team, founders, or about-us section and for names paired with titles such as CEO, CTO, CMO, CFO, Founder, Co-founder, Director, Head of, VP, or President.

Respond with ONLY a JSON object:
{
  "founders": [
    {"name": "Full Name", "role": "their title", "bio": "anything the deck says about them"}
  ]
}

Only include real people named in the deck. Return {"founders": []} if nobody is named.

Pitch deck:
%s`, prefix(deckText, limit))
}

func founderScoringPrompt(f model.Founder, project model.Project, signals string) string {
	return fmt.Sprintf(`You are evaluating a startup founder for investment due diligence.

Founder: %s
Role: %s
Company: %s
Deck bio: %s

External signals collected:
%s

Score this founder. Respond with ONLY a JSON object:
{
  "score": 0-10 overall founder quality,
  "technical_score": 0-10,
  "business_score": 0-10,
  "contribution": "what this person brings to the company",
  "strengths": ["..."],
  "areas_for_improvement": ["..."]
}`, f.Name, f.Role, project.ProjectName, f.DeckBio, signals)
}

func viabilityPrompt(project model.Project, deckText string, limit int) string {
	return fmt.Sprintf(`You are a venture capital analyst producing a viability assessment.

Company: %s
Description: %s
Problem: %s
Solution: %s
Target market: %s
Business model: %s

Score each dimension 0-10, then compute the weighted overall score yourself:
team 30%%, market 25%%, product 20%%, business model 15%%, execution 10%%.
Apply penalties for: no named team, no revenue model, unrealistic market claims,
no evidence of traction, regulatory exposure without a plan. Apply bonuses for:
proven founders, existing revenue, defensible technology, clear go-to-market.
List every penalty and bonus you applied. The overall score you return is final.

Respond with ONLY a JSON object:
{
  "score": weighted overall 0-10,
  "team_score": 0-10,
  "market_score": 0-10,
  "product_score": 0-10,
  "business_model_score": 0-10,
  "execution_score": 0-10,
  "explanation": "reasoning in 2-3 sentences",
  "risk_factors": ["..."],
  "strengths": ["..."],
  "penalties_applied": ["..."],
  "bonuses_applied": ["..."],
  "critical_concerns": ["..."],
  "recommendation": "invest | watch | pass | more research needed"
}

Pitch deck excerpt:
%s`, project.ProjectName, project.Description, project.ProblemStatement,
		project.Solution, project.TargetMarket, project.BusinessModel,
		prefix(deckText, limit))
}

func competitorPrompt(project model.Project, hits []competitorsearch.Hit) string {
	var sb strings.Builder
	for _, hit := range hits {
		fmt.Fprintf(&sb, "- %s (%s): %s\n", hit.Name, hit.URL, hit.Snippet)
	}
	if sb.Len() == 0 {
		sb.WriteString("(no search results available)\n")
	}

	return fmt.Sprintf(`You are a market analyst mapping the competitive landscape for a startup.

Company: %s
Description: %s
Target market: %s

Search results:
%s
Respond with ONLY a JSON object:
{
  "competitors": [
    {"name": "...", "description": "...", "website": "...", "funding": "...", "founded": "...", "employees": "...", "relevance_score": 0-10}
  ],
  "competitive_advantage": "...",
  "threat_level": "low | medium | high",
  "key_differentiators": ["..."],
  "market_gaps": ["..."],
  "recommendations": ["..."]
}`, project.ProjectName, project.Description, project.TargetMarket, sb.String())
}

func compliancePrompt(project model.Project, founders []model.Founder) string {
	names := make([]string, 0, len(founders))
	for _, f := range founders {
		names = append(names, fmt.Sprintf("%s (%s)", f.Name, f.Role))
	}

	return fmt.Sprintf(`You are a regulatory and legal analyst. Assess this startup across these areas: data privacy, consumer protection, financial regulation, industry licensing, employment law, intellectual property, cross-border rules, advertising standards, platform liability, and AI governance.

Company: %s
Description: %s
Business model: %s
Target market: %s
Team: %s

Respond with ONLY a JSON object:
{
  "compliance_score": 0-10 where 10 is lowest regulatory burden,
  "risk_level": "low | medium | high",
  "compliance_risks": [{"risk": "...", "severity": "low|medium|high", "impact": "...", "mitigation": "..."}],
  "regulatory_requirements": ["..."],
  "legal_risks": [{"risk": "...", "probability": "low|medium|high", "consequences": "..."}],
  "data_privacy_concerns": ["..."],
  "recommendations": ["..."],
  "required_licenses": ["..."],
  "jurisdictions": ["..."]
}`, project.ProjectName, project.Description, project.BusinessModel,
		project.TargetMarket, strings.Join(names, ", "))
}

func followupPrompt(project model.Project, viability model.Viability, founders []model.Founder, competitors model.CompetitorReport) string {
	return fmt.Sprintf(`You are preparing an investor for a due-diligence call with a startup.

Company: %s
Description: %s
Viability score: %.1f/10
Key risks: %s
Founders: %d named
Competitors found: %d

Generate exactly 10 follow-up questions: 3 about the team, 2 about the market,
2 about technology, 2 about the business model, 1 about risks. Order them most
important first.

Respond with ONLY a JSON object:
{
  "questions": [
    {"question": "...", "category": "team|market|technology|business|risk", "priority": "high|medium|low", "rationale": "..."}
  ]
}`, project.ProjectName, project.Description, viability.Score,
		strings.Join(viability.RiskFactors, "; "), len(founders),
		len(competitors.Competitors))
}

func summaryPrompt(project model.Project, viability model.Viability) string {
	return fmt.Sprintf(`Write a single-sentence executive summary of this startup analysis. No preamble, no quotes, one line only.

Company: %s
Description: %s
Viability score: %.1f/10
Recommendation: %s`, project.ProjectName, project.Description, viability.Score,
		viability.Recommendation)
}
