// Package service generates crisis responses. Everything here is
// lookup-based and deterministic: in a crisis the output must be instant
// and reviewable, so no AI capability is involved.
package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smartlabel/smartlabel-backend/internal/crisis/domain"
	labeldomain "github.com/smartlabel/smartlabel-backend/internal/label/domain"
	"github.com/smartlabel/smartlabel-backend/internal/label/market"
	"github.com/smartlabel/smartlabel-backend/pkg/errors"
	"github.com/smartlabel/smartlabel-backend/pkg/httputil"
	"github.com/smartlabel/smartlabel-backend/pkg/logger"
	"github.com/smartlabel/smartlabel-backend/pkg/messaging"
)

// EventPublisher announces generated crisis responses
type EventPublisher interface {
	Publish(ctx context.Context, eventType string, data interface{}) error
}

// Service generates crisis responses
type Service struct {
	events EventPublisher
	logger *logger.Logger
}

// New creates the crisis service. events may be nil.
func New(events EventPublisher, log *logger.Logger) *Service {
	return &Service{
		events: events,
		logger: log.WithComponent("crisis-service"),
	}
}

// Generate validates the scenario and produces the full crisis response:
// revised labels per market, communication materials, an action plan and
// an impact assessment.
func (s *Service) Generate(ctx context.Context, scenario *domain.Scenario) (*domain.Response, error) {
	if err := httputil.Validate(scenario); err != nil {
		return nil, err
	}
	for _, m := range scenario.AffectedMarkets {
		if !market.IsSupported(m) {
			return nil, errors.UnknownMarket(string(m))
		}
	}

	now := time.Now().UTC()
	response := &domain.Response{
		CrisisID:               "crisis-" + uuid.New().String(),
		Scenario:               *scenario,
		RevisedLabels:          s.revisedLabels(scenario, now),
		CommunicationMaterials: communicationMaterials(scenario),
		ActionPlan:             actionPlan(scenario),
		EstimatedImpact:        assessImpact(scenario),
		GeneratedAt:            now,
	}

	s.publish(ctx, response)

	s.logger.Info().
		Str("crisis_id", response.CrisisID).
		Str("crisis_type", scenario.CrisisType).
		Str("severity", scenario.Severity).
		Int("markets", len(scenario.AffectedMarkets)).
		Msg("crisis response generated")

	return response, nil
}

func (s *Service) publish(ctx context.Context, response *domain.Response) {
	if s.events == nil {
		return
	}

	markets := make([]string, len(response.Scenario.AffectedMarkets))
	for i, m := range response.Scenario.AffectedMarkets {
		markets[i] = string(m)
	}

	data := messaging.CrisisResponseGeneratedEvent{
		CrisisID:   response.CrisisID,
		CrisisType: response.Scenario.CrisisType,
		Severity:   response.Scenario.Severity,
		Markets:    markets,
	}
	if err := s.events.Publish(ctx, messaging.EventCrisisResponseGenerated, data); err != nil {
		s.logger.Error().Err(err).Str("crisis_id", response.CrisisID).Msg("failed to publish crisis event")
	}
}

// revisedLabels builds one crisis label per affected market
func (s *Service) revisedLabels(scenario *domain.Scenario, now time.Time) map[labeldomain.Market]*labeldomain.Label {
	labels := make(map[labeldomain.Market]*labeldomain.Label, len(scenario.AffectedMarkets))

	for _, m := range scenario.AffectedMarkets {
		cfg, err := market.ConfigFor(m)
		if err != nil {
			continue
		}

		allergens := "Please check with manufacturer before consumption"
		if scenario.CrisisType == domain.TypeAllergen {
			allergens = "CRITICAL ALLERGEN WARNING: " + scenario.Description
		}

		labels[m] = &labeldomain.Label{
			LabelID:   "crisis-label-" + string(m) + "-" + uuid.New().String(),
			ProductID: scenario.AffectedProducts[0],
			Market:    m,
			Language:  cfg.Language,
			LabelData: labeldomain.LabelData{
				LegalLabel: labeldomain.LegalLabel{
					Ingredients: fmt.Sprintf("CRISIS UPDATE: %s. Original ingredients may be affected.", scenario.Description),
					Allergens:   allergens,
					Nutrition:   labeldomain.NutritionFactSheet{},
				},
				Marketing: labeldomain.MarketingInfo{
					Short: "IMPORTANT SAFETY NOTICE - " + scenario.AffectedProducts[0],
				},
				Warnings:        crisisWarnings(scenario.CrisisType, scenario.Severity, m),
				ComplianceNotes: complianceNotes(scenario.CrisisType, m, now),
			},
			MarketData: labeldomain.MarketSpecificData{
				Certifications:         []string{"Crisis Response Label"},
				LocalRegulations:       crisisRegulations(m),
				CulturalConsiderations: culturalConsiderations(m),
				LanguageVariant:        cfg.LanguageVariant,
			},
			CreatedAt:   now,
			GeneratedBy: domain.GeneratedByCrisis,
		}
	}

	return labels
}

func crisisWarnings(crisisType, severity string, m labeldomain.Market) []string {
	base := map[string][]string{
		domain.TypeContamination: {
			"DO NOT CONSUME - POTENTIAL CONTAMINATION",
			"RETURN TO STORE IMMEDIATELY",
			"CONTACT POISON CONTROL IF CONSUMED",
		},
		domain.TypeAllergen: {
			"CRITICAL ALLERGEN WARNING",
			"MAY CONTAIN UNDECLARED ALLERGENS",
			"DO NOT CONSUME IF ALLERGIC",
		},
		domain.TypePackaging: {
			"INCORRECT PACKAGING DETECTED",
			"VERIFY PRODUCT CONTENTS BEFORE USE",
			"CONTACT MANUFACTURER FOR REPLACEMENT",
		},
		domain.TypeRegulatory: {
			"REGULATORY COMPLIANCE ISSUE",
			"PRODUCT RECALL IN EFFECT",
			"AWAIT FURTHER INSTRUCTIONS",
		},
		domain.TypeSupplyChain: {
			"SUPPLY CHAIN DISRUPTION",
			"INGREDIENT SOURCE COMPROMISED",
			"QUALITY ASSURANCE UNDER REVIEW",
		},
	}

	warnings, ok := base[crisisType]
	if !ok {
		warnings = []string{"GENERAL SAFETY NOTICE"}
	}
	out := make([]string, 0, len(warnings)+2)

	if severity == domain.SeverityCritical {
		out = append(out, "CRITICAL SAFETY ALERT")
	}
	out = append(out, warnings...)

	switch m {
	case labeldomain.MarketEU, labeldomain.MarketES:
		out = append(out, "EFSA NOTIFICATION FILED")
	case labeldomain.MarketBR:
		out = append(out, "ANVISA NOTIFICATION FILED")
	}

	return out
}

func complianceNotes(crisisType string, m labeldomain.Market, now time.Time) []string {
	notes := []string{
		"Crisis type: " + crisisType,
		"Market: " + string(m),
		"Generated: " + now.Format(time.RFC3339),
	}

	switch m {
	case labeldomain.MarketEU, labeldomain.MarketES:
		notes = append(notes,
			"EU Food Safety Authority notified",
			"HACCP procedures activated")
	case labeldomain.MarketBR:
		notes = append(notes,
			"ANVISA notification submitted",
			"Brazilian food safety protocols engaged")
	case labeldomain.MarketAO:
		notes = append(notes,
			"Angola food authority contacted",
			"Portuguese language materials prepared")
	case labeldomain.MarketMO:
		notes = append(notes,
			"Macau food safety bureau informed",
			"Dual authority reporting (China/Portugal) initiated")
	}

	return notes
}

func communicationMaterials(scenario *domain.Scenario) []domain.CommunicationMaterial {
	materials := make([]domain.CommunicationMaterial, 0, len(scenario.AffectedMarkets)*5)

	for _, m := range scenario.AffectedMarkets {
		language := market.LanguageFor(m)
		critical := scenario.Severity == domain.SeverityCritical

		add := func(materialType, content string, reviewRequired bool) {
			materials = append(materials, domain.CommunicationMaterial{
				Type:           materialType,
				Market:         m,
				Language:       language,
				Content:        content,
				Urgency:        scenario.Severity,
				ReviewRequired: reviewRequired,
			})
		}

		add(domain.MaterialPressRelease, pressRelease(scenario, m), critical)
		add(domain.MaterialRegulatoryNotice, regulatoryNotice(scenario, m), true)
		add(domain.MaterialCustomerEmail, customerEmail(scenario), false)
		add(domain.MaterialSocialMedia, socialMediaResponse(scenario), critical)
		add(domain.MaterialInternalMemo, internalMemo(scenario, m), false)
	}

	return materials
}

func actionPlan(scenario *domain.Scenario) []domain.ActionItem {
	actions := []domain.ActionItem{
		{
			Action:      "Halt production and distribution of affected products",
			Priority:    domain.SeverityCritical,
			Timeframe:   "Immediate (0-15 minutes)",
			Responsible: "Production Manager",
		},
		{
			Action:      "Notify regulatory authorities",
			Priority:    domain.SeverityCritical,
			Timeframe:   "Within 2 hours",
			Responsible: "Compliance Officer",
		},
	}

	switch scenario.CrisisType {
	case domain.TypeContamination:
		actions = append(actions, domain.ActionItem{
			Action:      "Initiate product recall process",
			Priority:    domain.SeverityCritical,
			Timeframe:   "Within 4 hours",
			Responsible: "Quality Assurance Manager",
		})
	case domain.TypeAllergen:
		actions = append(actions, domain.ActionItem{
			Action:      "Update allergen management procedures",
			Priority:    domain.SeverityHigh,
			Timeframe:   "Within 24 hours",
			Responsible: "Food Safety Manager",
		})
	case domain.TypePackaging:
		actions = append(actions, domain.ActionItem{
			Action:      "Audit packaging supplier",
			Priority:    domain.SeverityHigh,
			Timeframe:   "Within 48 hours",
			Responsible: "Supply Chain Manager",
		})
	}

	actions = append(actions,
		domain.ActionItem{
			Action:      "Issue public communication",
			Priority:    scenario.Severity,
			Timeframe:   "Within 6 hours",
			Responsible: "Communications Manager",
		},
		domain.ActionItem{
			Action:      "Customer service crisis protocol activation",
			Priority:    domain.SeverityHigh,
			Timeframe:   "Within 1 hour",
			Responsible: "Customer Service Manager",
		},
	)

	return actions
}

func assessImpact(scenario *domain.Scenario) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s SEVERITY crisis affecting %d product(s) across %d market(s). ",
		strings.ToUpper(scenario.Severity), len(scenario.AffectedProducts), len(scenario.AffectedMarkets))

	switch scenario.CrisisType {
	case domain.TypeContamination:
		b.WriteString("HIGH RISK to consumer safety. Immediate recall recommended. ")
	case domain.TypeAllergen:
		b.WriteString("CRITICAL RISK for allergic consumers. Targeted recall necessary. ")
	case domain.TypePackaging:
		b.WriteString("MODERATE RISK from labeling errors. Corrective labeling required. ")
	case domain.TypeRegulatory:
		b.WriteString("COMPLIANCE RISK. Legal review and product reformulation may be needed. ")
	case domain.TypeSupplyChain:
		b.WriteString("QUALITY RISK. Supply chain audit and ingredient verification required. ")
	}

	fmt.Fprintf(&b, "Expected recovery time: %s", recoveryTime(scenario.CrisisType))
	return b.String()
}

func recoveryTime(crisisType string) string {
	times := map[string]string{
		domain.TypeContamination: "2-4 weeks",
		domain.TypeAllergen:      "1-3 weeks",
		domain.TypePackaging:     "3-7 days",
		domain.TypeRegulatory:    "4-12 weeks",
		domain.TypeSupplyChain:   "2-8 weeks",
	}
	if t, ok := times[crisisType]; ok {
		return t
	}
	return "1-4 weeks"
}

func crisisRegulations(m labeldomain.Market) []string {
	regulations := map[labeldomain.Market][]string{
		labeldomain.MarketEU: {"EU Regulation 178/2002", "EFSA Guidelines"},
		labeldomain.MarketES: {"Spanish Food Safety Code", "EU Compliance"},
		labeldomain.MarketAO: {"Angola Food Safety Act", "Portuguese Standards"},
		labeldomain.MarketMO: {"Macau Food Safety Code", "China Food Safety Law"},
		labeldomain.MarketBR: {"ANVISA Resolution", "Brazilian Food Code"},
	}
	if r, ok := regulations[m]; ok {
		return r
	}
	return []string{"Local Food Safety Regulations"}
}

func culturalConsiderations(m labeldomain.Market) []string {
	considerations := map[labeldomain.Market][]string{
		labeldomain.MarketEU: {"Multi-cultural sensitivity", "GDPR compliance in communications"},
		labeldomain.MarketES: {"Spanish cultural norms", "Regional autonomy considerations"},
		labeldomain.MarketAO: {"Portuguese colonial legacy awareness", "Local economic sensitivity"},
		labeldomain.MarketMO: {"Chinese-Portuguese cultural bridge", "Gaming industry considerations"},
		labeldomain.MarketBR: {"Brazilian cultural directness", "Large population impact awareness"},
	}
	if c, ok := considerations[m]; ok {
		return c
	}
	return []string{"Local cultural norms"}
}

func marketRegulator(m labeldomain.Market) string {
	regulators := map[labeldomain.Market]string{
		labeldomain.MarketEU: "European Food Safety Authority (EFSA)",
		labeldomain.MarketES: "Spanish Agency for Food Safety and Nutrition (AESAN)",
		labeldomain.MarketAO: "Angola National Food Safety Authority",
		labeldomain.MarketMO: "Macau Food and Drug Administration",
		labeldomain.MarketBR: "Brazilian Health Surveillance Agency (ANVISA)",
	}
	if r, ok := regulators[m]; ok {
		return r
	}
	return "Local Food Safety Authority"
}

func pressRelease(scenario *domain.Scenario, m labeldomain.Market) string {
	return fmt.Sprintf(`IMMEDIATE RELEASE - %s FOOD SAFETY NOTICE

Product Safety Alert: %s

Our company is issuing an immediate safety notice regarding %s.

We are taking immediate action to address this %s issue affecting products distributed in %s. Consumer safety is our highest priority.

Immediate Actions:
- Production halt initiated
- Regulatory authorities notified
- Customer service lines activated

Consumers should discontinue use immediately and contact our customer service at [CONTACT INFO].

We will provide regular updates as the situation develops.`,
		strings.ToUpper(scenario.Severity),
		strings.Join(scenario.AffectedProducts, ", "),
		scenario.Description,
		scenario.CrisisType,
		m)
}

func regulatoryNotice(scenario *domain.Scenario, m labeldomain.Market) string {
	return fmt.Sprintf(`REGULATORY NOTIFICATION - CRISIS RESPONSE

Authority: %s
Product(s): %s
Issue: %s

Classification: %s severity %s

Actions Taken:
1. Immediate production cessation
2. Distribution halt implemented
3. Internal crisis team activated

Timeline: %s

Contact: [Regulatory Affairs Contact Information]

This notification is submitted in compliance with local food safety regulations.`,
		marketRegulator(m),
		strings.Join(scenario.AffectedProducts, ", "),
		scenario.Description,
		strings.ToUpper(scenario.Severity),
		scenario.CrisisType,
		scenario.Timeline)
}

func customerEmail(scenario *domain.Scenario) string {
	return fmt.Sprintf(`Subject: Important Safety Notice - %s

Dear Valued Customer,

We are writing to inform you of an important safety matter regarding %s.

Issue: %s

For your safety, please:
- Discontinue use of the affected product(s) immediately
- Check your pantry for any of these products
- Contact us for a full refund or replacement

Your safety is our top priority. We sincerely apologize for any inconvenience.

Customer Service: [CONTACT INFO]
Available 24/7 during this crisis

Best regards,
Customer Safety Team`,
		scenario.AffectedProducts[0],
		strings.Join(scenario.AffectedProducts, ", "),
		scenario.Description)
}

func socialMediaResponse(scenario *domain.Scenario) string {
	return fmt.Sprintf("🚨 SAFETY ALERT: We're issuing an immediate notice for %s due to %s. "+
		"Please discontinue use and contact us for support. Your safety is our priority. #FoodSafety #ImportantNotice",
		strings.Join(scenario.AffectedProducts, ", "),
		scenario.Description)
}

func internalMemo(scenario *domain.Scenario, m labeldomain.Market) string {
	return fmt.Sprintf(`INTERNAL CRISIS MEMO - CONFIDENTIAL

TO: All Staff, %s Operations
FROM: Crisis Response Team
RE: %s Crisis - Code %s

SITUATION: %s

IMMEDIATE ACTIONS REQUIRED:
1. All hands on deck for crisis response
2. Refer all media inquiries to Communications
3. Document all actions taken
4. Report to crisis command center hourly

TIMELINE: %s

This is a %s priority situation. Follow all established crisis protocols.

Crisis Hotline: [INTERNAL NUMBER]`,
		m,
		strings.ToUpper(scenario.CrisisType),
		strings.ToUpper(scenario.Severity),
		scenario.Description,
		scenario.Timeline,
		scenario.Severity)
}
