package domain

import (
	"time"

	label "github.com/smartlabel/smartlabel-backend/internal/label/domain"
)

// Crisis types
const (
	TypeContamination = "contamination"
	TypeAllergen      = "allergen"
	TypePackaging     = "packaging"
	TypeRegulatory    = "regulatory"
	TypeSupplyChain   = "supply-chain"
)

// Severity levels
const (
	SeverityLow      = "low"
	SeverityMedium   = "medium"
	SeverityHigh     = "high"
	SeverityCritical = "critical"
)

// GeneratedByCrisis marks labels produced by the crisis response path
const GeneratedByCrisis = "crisis-response-system"

// Scenario describes an unfolding product crisis
type Scenario struct {
	CrisisType       string         `json:"crisisType" validate:"required,oneof=contamination allergen packaging regulatory supply-chain"`
	Severity         string         `json:"severity" validate:"required,oneof=low medium high critical"`
	AffectedProducts []string       `json:"affectedProducts" validate:"required,min=1"`
	AffectedMarkets  []label.Market `json:"affectedMarkets" validate:"required,min=1"`
	Description      string         `json:"description" validate:"required"`
	Timeline         string         `json:"timeline"`
}

// CommunicationMaterial is one piece of crisis communication for a market
type CommunicationMaterial struct {
	Type           string       `json:"type"`
	Market         label.Market `json:"market"`
	Language       string       `json:"language"`
	Content        string       `json:"content"`
	Urgency        string       `json:"urgency"`
	ReviewRequired bool         `json:"reviewRequired"`
}

// Communication material types
const (
	MaterialPressRelease     = "press-release"
	MaterialRegulatoryNotice = "regulatory-notice"
	MaterialCustomerEmail    = "customer-email"
	MaterialSocialMedia      = "social-media"
	MaterialInternalMemo     = "internal-memo"
)

// ActionItem is one step of the crisis action plan
type ActionItem struct {
	Action      string `json:"action"`
	Priority    string `json:"priority"`
	Timeframe   string `json:"timeframe"`
	Responsible string `json:"responsible"`
	Completed   bool   `json:"completed"`
}

// Response is the full generated crisis response
type Response struct {
	CrisisID               string                        `json:"crisisId"`
	Scenario               Scenario                      `json:"scenario"`
	RevisedLabels          map[label.Market]*label.Label `json:"revisedLabels"`
	CommunicationMaterials []CommunicationMaterial       `json:"communicationMaterials"`
	ActionPlan             []ActionItem                  `json:"actionPlan"`
	EstimatedImpact        string                        `json:"estimatedImpact"`
	GeneratedAt            time.Time                     `json:"generatedAt"`
}
