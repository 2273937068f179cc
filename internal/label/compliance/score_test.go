package compliance

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/smartlabel/smartlabel-backend/internal/label/domain"
)

func nutrition(keys int) domain.NutritionFactSheet {
	names := []string{
		domain.NutrientEnergy, domain.NutrientFat, domain.NutrientSaturatedFat,
		domain.NutrientCarbohydrates, domain.NutrientSugars, domain.NutrientProtein,
		domain.NutrientSalt, domain.NutrientFiber,
	}
	sheet := make(domain.NutritionFactSheet, keys)
	for i := 0; i < keys && i < len(names); i++ {
		sheet[names[i]] = domain.NutritionServingInfo{
			Per100g: domain.NutritionValue{Value: 1, Unit: "g"},
		}
	}
	return sheet
}

func labelFor(market domain.Market) *domain.Label {
	return &domain.Label{
		LabelID: "test",
		Market:  market,
		LabelData: domain.LabelData{
			LegalLabel: domain.LegalLabel{
				Ingredients: strings.Repeat("ingredient, ", 10), // >100 chars
				Allergens:   "Contains: nuts, milk",
				Nutrition:   nutrition(6),
			},
			Warnings:        []string{},
			ComplianceNotes: []string{"note one", "note two", "note three"},
		},
	}
}

func TestScoreDeterministic(t *testing.T) {
	label := labelFor(domain.MarketEU)
	first := Score(label)
	second := Score(label)
	assert.Equal(t, first, second)
}

func TestScoreBestCase(t *testing.T) {
	score := Score(labelFor(domain.MarketEU))

	assert.Equal(t, 95, score.Categories.Nutrition)
	assert.Equal(t, 90, score.Categories.Ingredients)
	assert.Equal(t, 95, score.Categories.Allergens)
	assert.Equal(t, 85, score.Categories.Certifications)
	assert.Equal(t, 90, score.Categories.Legal)
	assert.Equal(t, 91, score.Overall) // round(455/5)
	assert.Empty(t, score.Issues)
}

func TestScoreNutritionTiers(t *testing.T) {
	tests := []struct {
		keys      int
		want      int
		hasIssue  bool
		hasRec    bool
	}{
		{6, 95, false, false},
		{4, 75, false, true},
		{3, 45, true, false},
		{0, 45, true, false},
	}

	for _, tt := range tests {
		label := labelFor(domain.MarketEU)
		label.LabelData.LegalLabel.Nutrition = nutrition(tt.keys)
		score := Score(label)

		assert.Equal(t, tt.want, score.Categories.Nutrition, "keys=%d", tt.keys)
		if tt.hasIssue {
			assert.Contains(t, score.Issues, "Missing essential nutrition information")
		}
		if tt.hasRec {
			assert.Contains(t, score.Recommendations, "Consider adding more detailed nutrition information")
		}
	}
}

func TestScoreIngredientTiers(t *testing.T) {
	label := labelFor(domain.MarketEU)

	label.LabelData.LegalLabel.Ingredients = strings.Repeat("a", 101)
	assert.Equal(t, 90, Score(label).Categories.Ingredients)

	label.LabelData.LegalLabel.Ingredients = strings.Repeat("a", 51)
	assert.Equal(t, 70, Score(label).Categories.Ingredients)

	label.LabelData.LegalLabel.Ingredients = "salt"
	score := Score(label)
	assert.Equal(t, 40, score.Categories.Ingredients)
	assert.Contains(t, score.Issues, "Ingredients list too brief for regulatory compliance")
}

func TestScoreAllergenTiers(t *testing.T) {
	label := labelFor(domain.MarketEU)

	label.LabelData.LegalLabel.Allergens = "May contain traces of nuts"
	assert.Equal(t, 95, Score(label).Categories.Allergens)

	label.LabelData.LegalLabel.Allergens = "nuts, milk, soy"
	assert.Equal(t, 75, Score(label).Categories.Allergens)

	label.LabelData.LegalLabel.Allergens = "nuts"
	score := Score(label)
	assert.Equal(t, 60, score.Categories.Allergens)
	assert.Contains(t, score.Recommendations, "Improve allergen declaration format")
}

func TestScoreCertificationsByMarket(t *testing.T) {
	assert.Equal(t, 85, Score(labelFor(domain.MarketEU)).Categories.Certifications)
	assert.Equal(t, 85, Score(labelFor(domain.MarketES)).Categories.Certifications)

	br := Score(labelFor(domain.MarketBR))
	assert.Equal(t, 80, br.Categories.Certifications)
	assert.Contains(t, br.Recommendations, "Consider ANVISA-specific certifications")

	for _, m := range []domain.Market{domain.MarketUS, domain.MarketUK, domain.MarketAO, domain.MarketMO, domain.MarketAE} {
		score := Score(labelFor(m))
		assert.Equal(t, 70, score.Categories.Certifications, string(m))
		assert.Contains(t, score.Recommendations, "Research local certification requirements")
	}
}

func TestScoreLegalTiers(t *testing.T) {
	label := labelFor(domain.MarketEU)

	label.LabelData.Warnings = []string{}
	label.LabelData.ComplianceNotes = []string{"a", "b", "c"}
	assert.Equal(t, 90, Score(label).Categories.Legal)

	label.LabelData.Warnings = []string{"warning"}
	label.LabelData.ComplianceNotes = []string{"a", "b"}
	assert.Equal(t, 75, Score(label).Categories.Legal)

	label.LabelData.Warnings = []string{"w1", "w2"}
	label.LabelData.ComplianceNotes = []string{"a"}
	score := Score(label)
	assert.Equal(t, 55, score.Categories.Legal)
	assert.Contains(t, score.Issues, "Potential legal compliance gaps detected")
}
