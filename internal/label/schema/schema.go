// Package schema validates the documents flowing through the label
// pipeline before they reach generation or storage.
package schema

import (
	"fmt"
	"strings"

	"github.com/smartlabel/smartlabel-backend/internal/label/domain"
	"github.com/smartlabel/smartlabel-backend/internal/label/market"
	"github.com/smartlabel/smartlabel-backend/pkg/errors"
	"github.com/smartlabel/smartlabel-backend/pkg/httputil"
)

// ValidateProductData checks generation input. It returns a validation
// error carrying every violation keyed by field path.
func ValidateProductData(pd *domain.ProductData) error {
	details := make(map[string]string)

	if err := httputil.Validate(pd); err != nil {
		var appErr *errors.AppError
		if errors.As(err, &appErr) {
			for k, v := range appErr.Details {
				details[k] = v
			}
		}
	}

	if len(pd.Ingredients) == 0 {
		details["ingredients"] = "at least one ingredient is required"
	} else {
		nonBlank := 0
		for _, ing := range pd.Ingredients {
			if strings.TrimSpace(ing) != "" {
				nonBlank++
			}
		}
		if nonBlank == 0 {
			details["ingredients"] = "at least one ingredient must be non-blank"
		}
	}

	if pd.Market != "" && !market.IsSupported(pd.Market) {
		return errors.UnknownMarket(string(pd.Market))
	}

	validateNutrition(pd.Nutrition, "nutrition", details)

	if len(details) > 0 {
		return errors.Validation(details)
	}
	return nil
}

// ValidateLabelData checks the content half of a label
func ValidateLabelData(data *domain.LabelData) error {
	details := make(map[string]string)
	validateLabelData(data, "labelData", details)
	if len(details) > 0 {
		return errors.Validation(details)
	}
	return nil
}

// ValidateLabel checks a complete label document before it is persisted
func ValidateLabel(label *domain.Label) error {
	details := make(map[string]string)

	if label.LabelID == "" {
		details["labelId"] = "this field is required"
	}
	if label.Market == "" {
		details["market"] = "this field is required"
	} else if !market.IsSupported(label.Market) {
		return errors.UnknownMarket(string(label.Market))
	}
	if label.CreatedAt.IsZero() {
		details["createdAt"] = "this field is required"
	}
	if label.GeneratedBy == "" {
		details["generatedBy"] = "this field is required"
	}

	validateLabelData(&label.LabelData, "labelData", details)

	if label.TranslatedData != nil {
		validateLabelData(label.TranslatedData, "translatedData", details)
	}

	if len(details) > 0 {
		return errors.Validation(details)
	}
	return nil
}

func validateLabelData(data *domain.LabelData, path string, details map[string]string) {
	if strings.TrimSpace(data.LegalLabel.Ingredients) == "" {
		details[path+".legalLabel.ingredients"] = "this field is required"
	}
	if strings.TrimSpace(data.LegalLabel.Allergens) == "" {
		details[path+".legalLabel.allergens"] = "this field is required"
	}
	validateNutrition(data.LegalLabel.Nutrition, path+".legalLabel.nutrition", details)
}

// validateNutrition checks that every declared nutrient carries a per-100g
// value with a unit. Per-serving and daily-value figures are optional.
func validateNutrition(sheet domain.NutritionFactSheet, path string, details map[string]string) {
	for name, info := range sheet {
		if info.Per100g.Unit == "" {
			details[fmt.Sprintf("%s.%s.per100g", path, name)] = "a per-100g value with a unit is required"
		}
		if info.Per100g.Value < 0 {
			details[fmt.Sprintf("%s.%s.per100g", path, name)] = "must not be negative"
		}
		if info.PerServing != nil && info.PerServing.Unit == "" {
			details[fmt.Sprintf("%s.%s.perServing", path, name)] = "a unit is required"
		}
	}
}
