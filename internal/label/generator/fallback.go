package generator

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/smartlabel/smartlabel-backend/internal/label/domain"
	"github.com/smartlabel/smartlabel-backend/internal/label/market"
)

// defaultNutrition fills the macros a label must declare when the input
// sheet omits them.
var defaultNutrition = domain.NutritionFactSheet{
	domain.NutrientEnergy:        {Per100g: domain.NutritionValue{Value: 100, Unit: "kcal"}},
	domain.NutrientFat:           {Per100g: domain.NutritionValue{Value: 0, Unit: "g"}},
	domain.NutrientCarbohydrates: {Per100g: domain.NutritionValue{Value: 25, Unit: "g"}},
	domain.NutrientProtein:       {Per100g: domain.NutritionValue{Value: 0, Unit: "g"}},
}

// synthesizeFallback builds a deterministic label from the product data
// alone. It is the degraded path for every generation failure, so it must
// not itself fail.
func (c *Client) synthesizeFallback(pd *domain.ProductData, cfg market.Config) *domain.Label {
	source := c.translator.DetectLanguage(strings.Join(pd.Ingredients, " "))
	ingredients := c.translator.TranslateFrom(pd.Ingredients, source, cfg.Language)

	label := &domain.Label{
		LabelID:   uuid.New().String(),
		ProductID: pd.ProductID,
		Market:    cfg.Code,
		Language:  cfg.Language,
		LabelData: domain.LabelData{
			LegalLabel: domain.LegalLabel{
				Ingredients: ingredients,
				Allergens:   allergenStatement(pd.Allergens),
				Nutrition:   mergedNutrition(pd.Nutrition),
			},
			Marketing: domain.MarketingInfo{
				Short: fmt.Sprintf("%s. Quality product prepared for the %s market.", pd.Name, cfg.Label),
			},
			Warnings: []string{
				fmt.Sprintf("Label generated without AI assistance for the %s market", cfg.Label),
			},
			ComplianceNotes: []string{
				fmt.Sprintf("Review against %s before distribution", strings.Join(cfg.Requirements, ", ")),
			},
		},
		MarketData: domain.MarketSpecificData{
			Certifications:         []string{},
			LocalRegulations:       cfg.Regulations,
			CulturalConsiderations: []string{},
			LanguageVariant:        cfg.LanguageVariant,
		},
		CreatedAt:   time.Now().UTC(),
		GeneratedBy: domain.GeneratedByFallback,
	}

	if cfg.SecondaryLanguage != "" {
		translated := label.LabelData
		translated.LegalLabel.Ingredients = c.translator.TranslateFrom(pd.Ingredients, source, cfg.SecondaryLanguage)
		label.TranslatedData = &translated
	}

	return label
}

// allergenStatement renders the allergen declaration, defaulting to an
// explicit negative statement when none are declared.
func allergenStatement(allergens []string) string {
	declared := make([]string, 0, len(allergens))
	for _, a := range allergens {
		if strings.TrimSpace(a) != "" {
			declared = append(declared, strings.TrimSpace(a))
		}
	}
	if len(declared) == 0 {
		return "No declared allergens"
	}
	return "Contains: " + strings.Join(declared, ", ")
}

// mergedNutrition overlays the provided sheet on the default macros
func mergedNutrition(provided domain.NutritionFactSheet) domain.NutritionFactSheet {
	merged := make(domain.NutritionFactSheet, len(defaultNutrition)+len(provided))
	for k, v := range defaultNutrition {
		merged[k] = v
	}
	for k, v := range provided {
		if v.Per100g.Unit != "" {
			merged[k] = v
		}
	}
	return merged
}
