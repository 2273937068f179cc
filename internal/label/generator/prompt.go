package generator

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/smartlabel/smartlabel-backend/internal/label/domain"
	"github.com/smartlabel/smartlabel-backend/internal/label/market"
)

// buildPrompt renders the generation prompt for one market. The response
// format is pinned to the label document shape so the parser can decode
// the model output directly.
func buildPrompt(pd *domain.ProductData, cfg market.Config) string {
	var b strings.Builder

	allergens := "Not specified"
	if len(pd.Allergens) > 0 {
		allergens = strings.Join(pd.Allergens, ", ")
	}

	nutrition := "Not provided"
	if len(pd.Nutrition) > 0 {
		if data, err := json.MarshalIndent(pd.Nutrition, "", "  "); err == nil {
			nutrition = string(data)
		}
	}

	fmt.Fprintf(&b, "You are an expert food labeling specialist for the %s market. "+
		"Generate a compliant food label for the following product.\n\n", cfg.Label)

	b.WriteString("PRODUCT INFORMATION:\n")
	fmt.Fprintf(&b, "- Name: %s\n", pd.Name)
	fmt.Fprintf(&b, "- Ingredients: %s\n", strings.Join(pd.Ingredients, ", "))
	fmt.Fprintf(&b, "- Allergens: %s\n", allergens)
	fmt.Fprintf(&b, "- Nutrition Data: %s\n", nutrition)
	fmt.Fprintf(&b, "- Target Market: %s\n\n", cfg.Code)

	b.WriteString("REQUIREMENTS:\n")
	fmt.Fprintf(&b, "- %s\n", cfg.Instructions)
	for _, reg := range cfg.Regulations {
		fmt.Fprintf(&b, "- %s\n", reg)
	}
	b.WriteString("- Format ingredients in descending order by weight\n")
	b.WriteString("- Include appropriate warnings for any health risks\n")
	b.WriteString("- Provide compliance notes for regulatory requirements\n")
	if cfg.SecondaryLanguage != "" {
		fmt.Fprintf(&b, "- Provide a translatedData block with the label content in %q\n",
			cfg.SecondaryLanguage)
	}

	fmt.Fprintf(&b, "\nRESPONSE FORMAT (JSON only, no additional text):\n%s\n", responseFormat)
	b.WriteString("\nGenerate the label now:")

	return b.String()
}

const responseFormat = `{
  "labelData": {
    "legalLabel": {
      "ingredients": "Comma-separated ingredients in descending order by weight",
      "allergens": "Clear allergen statement in the market's label language",
      "nutrition": {
        "energy": {"per100g": {"value": 0, "unit": "kcal"}},
        "fat": {"per100g": {"value": 0, "unit": "g"}},
        "saturatedFat": {"per100g": {"value": 0, "unit": "g"}},
        "carbohydrates": {"per100g": {"value": 0, "unit": "g"}},
        "sugars": {"per100g": {"value": 0, "unit": "g"}},
        "protein": {"per100g": {"value": 0, "unit": "g"}},
        "salt": {"per100g": {"value": 0, "unit": "g"}}
      }
    },
    "marketing": {
      "short": "Compelling, compliant marketing description (2-3 sentences max)"
    },
    "warnings": ["Array of any mandatory warnings based on ingredients/allergens"],
    "complianceNotes": ["Array of specific regulatory compliance notes for this market"]
  },
  "marketSpecificData": {
    "certifications": ["Certifications relevant to this market"],
    "localRegulations": ["Regulations this label satisfies"],
    "culturalConsiderations": ["Cultural notes for this market"]
  },
  "translatedData": null
}`
