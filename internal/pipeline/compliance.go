package pipeline

import (
	"context"

	"github.com/deckray/deckray/internal/domain/model"
	"github.com/deckray/deckray/internal/domain/parse"
	"github.com/deckray/deckray/pkg/logger"
	"github.com/deckray/deckray/pkg/metrics"
)

const neutralComplianceScore = 5.0

// analyzeCompliance runs the regulatory and legal review.
func (r *Runner) analyzeCompliance(ctx context.Context, project model.Project, founders []model.Founder) model.Compliance {
	raw, err := r.completer.Complete(ctx, compliancePrompt(project, founders))
	if err != nil {
		metrics.RecordStageFailure(stepComplianceAnalysis)
		r.log.Error(ctx, "compliance analysis failed", logger.Error(err))
		return defaultCompliance()
	}

	obj, strategy := parse.Object(raw, nil, nil)
	metrics.RecordParserRung(string(strategy))
	if obj == nil {
		metrics.RecordStageFailure(stepComplianceAnalysis)
		return defaultCompliance()
	}

	return model.Compliance{
		ComplianceScore:       clampScore(parse.Number(obj["compliance_score"], neutralComplianceScore)),
		RiskLevel:             parse.String(obj["risk_level"], "unknown"),
		ComplianceRisks:       complianceRisks(parse.List(obj, "compliance_risks")),
		RegulatoryRequirement: parse.StringList(obj["regulatory_requirements"]),
		LegalRisks:            legalRisks(parse.List(obj, "legal_risks")),
		DataPrivacyConcerns:   parse.StringList(obj["data_privacy_concerns"]),
		Recommendations:       parse.StringList(obj["recommendations"]),
		RequiredLicenses:      parse.StringList(obj["required_licenses"]),
		Jurisdictions:         parse.StringList(obj["jurisdictions"]),
	}
}

func complianceRisks(items []any) []model.ComplianceRisk {
	var risks []model.ComplianceRisk
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		risk := parse.String(entry["risk"], "")
		if risk == "" {
			continue
		}
		risks = append(risks, model.ComplianceRisk{
			Risk:       risk,
			Severity:   parse.String(entry["severity"], "unknown"),
			Impact:     parse.String(entry["impact"], ""),
			Mitigation: parse.String(entry["mitigation"], ""),
		})
	}
	return risks
}

func legalRisks(items []any) []model.LegalRisk {
	var risks []model.LegalRisk
	for _, item := range items {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		risk := parse.String(entry["risk"], "")
		if risk == "" {
			continue
		}
		risks = append(risks, model.LegalRisk{
			Risk:         risk,
			Probability:  parse.String(entry["probability"], "unknown"),
			Consequences: parse.String(entry["consequences"], ""),
		})
	}
	return risks
}

func defaultCompliance() model.Compliance {
	return model.Compliance{
		ComplianceScore: neutralComplianceScore,
		RiskLevel:       "unknown",
	}
}
