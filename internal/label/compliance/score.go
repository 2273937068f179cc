// Package compliance scores labels against market expectations. The scorer
// is deterministic: the same label always produces the same score, so the
// constants below are a contract, not tuning knobs.
package compliance

import (
	"math"
	"strings"

	"github.com/smartlabel/smartlabel-backend/internal/label/domain"
)

// Score reviews a label and returns category scores, issues and
// recommendations.
func Score(label *domain.Label) *domain.ComplianceScore {
	score := &domain.ComplianceScore{
		Issues:          []string{},
		Recommendations: []string{},
	}

	score.Categories.Nutrition = scoreNutrition(label, score)
	score.Categories.Ingredients = scoreIngredients(label, score)
	score.Categories.Allergens = scoreAllergens(label, score)
	score.Categories.Certifications = scoreCertifications(label, score)
	score.Categories.Legal = scoreLegal(label, score)

	sum := score.Categories.Nutrition +
		score.Categories.Ingredients +
		score.Categories.Allergens +
		score.Categories.Certifications +
		score.Categories.Legal
	score.Overall = int(math.Round(float64(sum) / 5.0))

	return score
}

func scoreNutrition(label *domain.Label, out *domain.ComplianceScore) int {
	declared := len(label.LabelData.LegalLabel.Nutrition)
	switch {
	case declared >= 6:
		return 95
	case declared >= 4:
		out.Recommendations = append(out.Recommendations,
			"Consider adding more detailed nutrition information")
		return 75
	default:
		out.Issues = append(out.Issues,
			"Missing essential nutrition information")
		return 45
	}
}

func scoreIngredients(label *domain.Label, out *domain.ComplianceScore) int {
	length := len(label.LabelData.LegalLabel.Ingredients)
	switch {
	case length > 100:
		return 90
	case length > 50:
		out.Recommendations = append(out.Recommendations,
			"Consider more detailed ingredient descriptions")
		return 70
	default:
		out.Issues = append(out.Issues,
			"Ingredients list too brief for regulatory compliance")
		return 40
	}
}

func scoreAllergens(label *domain.Label, out *domain.ComplianceScore) int {
	allergens := strings.ToLower(label.LabelData.LegalLabel.Allergens)
	switch {
	case strings.Contains(allergens, "contains") || strings.Contains(allergens, "may contain"):
		return 95
	case len(allergens) > 10:
		return 75
	default:
		out.Recommendations = append(out.Recommendations,
			"Improve allergen declaration format")
		return 60
	}
}

func scoreCertifications(label *domain.Label, out *domain.ComplianceScore) int {
	switch label.Market {
	case domain.MarketEU, domain.MarketES:
		return 85
	case domain.MarketBR:
		out.Recommendations = append(out.Recommendations,
			"Consider ANVISA-specific certifications")
		return 80
	default:
		out.Recommendations = append(out.Recommendations,
			"Research local certification requirements")
		return 70
	}
}

func scoreLegal(label *domain.Label, out *domain.ComplianceScore) int {
	warnings := len(label.LabelData.Warnings)
	notes := len(label.LabelData.ComplianceNotes)
	switch {
	case warnings == 0 && notes > 2:
		return 90
	case warnings <= 1 && notes > 1:
		return 75
	default:
		out.Issues = append(out.Issues,
			"Potential legal compliance gaps detected")
		return 55
	}
}
