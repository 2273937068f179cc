package domain

import "time"

// Market is a supported market code
type Market string

const (
	MarketEU Market = "EU"
	MarketES Market = "ES"
	MarketUS Market = "US"
	MarketUK Market = "UK"
	MarketBR Market = "BR"
	MarketAO Market = "AO"
	MarketMO Market = "MO"
	MarketAE Market = "AE"
)

// Language codes used on labels
const (
	LangEnglish      = "en"
	LangSpanish      = "es"
	LangPortuguese   = "pt"
	LangPortugueseBR = "pt-BR"
	LangChinese      = "zh"
	LangArabic       = "ar"
)

// How a label was produced
const (
	GeneratedByAI       = "ai-bedrock"
	GeneratedByFallback = "fallback"
)

// Well-known nutrition fact sheet keys
const (
	NutrientEnergy        = "energy"
	NutrientFat           = "fat"
	NutrientSaturatedFat  = "saturatedFat"
	NutrientCarbohydrates = "carbohydrates"
	NutrientSugars        = "sugars"
	NutrientProtein       = "protein"
	NutrientSalt          = "salt"
	NutrientFiber         = "fiber"
)

// NutritionValue is a single measured quantity
type NutritionValue struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

// NutritionServingInfo holds the per-100g value a nutrient must declare,
// plus optional per-serving and daily-value figures
type NutritionServingInfo struct {
	Per100g           NutritionValue  `json:"per100g"`
	PerServing        *NutritionValue `json:"perServing,omitempty"`
	PercentDailyValue *float64        `json:"percentDailyValue,omitempty"`
}

// NutritionFactSheet maps nutrient names to their declared values
type NutritionFactSheet map[string]NutritionServingInfo

// LegalLabel is the legally mandated part of a label
type LegalLabel struct {
	Ingredients string             `json:"ingredients"`
	Allergens   string             `json:"allergens"`
	Nutrition   NutritionFactSheet `json:"nutrition"`
}

// MarketingInfo is the non-mandated marketing copy
type MarketingInfo struct {
	Short string `json:"short"`
}

// LabelData is the full content of a label for one market
type LabelData struct {
	LegalLabel      LegalLabel    `json:"legalLabel"`
	Marketing       MarketingInfo `json:"marketing"`
	Warnings        []string      `json:"warnings"`
	ComplianceNotes []string      `json:"complianceNotes"`
}

// MarketSpecificData carries market regulatory context alongside the label
type MarketSpecificData struct {
	Certifications         []string `json:"certifications"`
	LocalRegulations       []string `json:"localRegulations"`
	CulturalConsiderations []string `json:"culturalConsiderations"`
	LanguageVariant        string   `json:"languageVariant,omitempty"`
}

// Label is a generated, persisted label document
type Label struct {
	LabelID        string             `json:"labelId"`
	ProductID      string             `json:"productId,omitempty"`
	Market         Market             `json:"market"`
	Language       string             `json:"language"`
	LabelData      LabelData          `json:"labelData"`
	MarketData     MarketSpecificData `json:"marketSpecificData"`
	TranslatedData *LabelData         `json:"translatedData,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
	GeneratedBy    string             `json:"generatedBy"`
}

// ProductData is the input to label generation
type ProductData struct {
	Name        string             `json:"name" validate:"required"`
	Ingredients []string           `json:"ingredients"`
	Allergens   []string           `json:"allergens"`
	Nutrition   NutritionFactSheet `json:"nutrition"`
	Market      Market             `json:"market,omitempty"`
	Language    string             `json:"language,omitempty"`
	ProductID   string             `json:"productId,omitempty"`
}

// MarketError records why one market of a multi-market request failed
type MarketError struct {
	Market  Market `json:"market"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MultiMarketResult is the outcome of a fan-out generation request.
// Labels and Errors are disjoint by market; a market appears in exactly one.
type MultiMarketResult struct {
	Labels      map[Market]*Label `json:"labels"`
	Errors      []MarketError     `json:"errors,omitempty"`
	GeneratedAt time.Time         `json:"generatedAt"`
}

// CategoryScores breaks a compliance score down by review category
type CategoryScores struct {
	Nutrition      int `json:"nutrition"`
	Ingredients    int `json:"ingredients"`
	Allergens      int `json:"allergens"`
	Certifications int `json:"certifications"`
	Legal          int `json:"legal"`
}

// ComplianceScore is a deterministic regulatory review of a label
type ComplianceScore struct {
	Overall         int            `json:"overall"`
	Categories      CategoryScores `json:"categories"`
	Issues          []string       `json:"issues"`
	Recommendations []string       `json:"recommendations"`
}
