package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartlabel/smartlabel-backend/internal/label/domain"
	"github.com/smartlabel/smartlabel-backend/pkg/errors"
)

func validProduct() *domain.ProductData {
	return &domain.ProductData{
		Name:        "Organic Granola",
		Ingredients: []string{"oats", "honey", "almond"},
		Allergens:   []string{"nuts"},
		Nutrition: domain.NutritionFactSheet{
			domain.NutrientEnergy: {Per100g: domain.NutritionValue{Value: 450, Unit: "kcal"}},
			domain.NutrientFat:    {Per100g: domain.NutritionValue{Value: 12, Unit: "g"}},
		},
		Market: domain.MarketEU,
	}
}

func validLabel() *domain.Label {
	return &domain.Label{
		LabelID:  "b9f9e6f3-8f4c-4a44-b8cf-0a4dc3a1f001",
		Market:   domain.MarketEU,
		Language: domain.LangEnglish,
		LabelData: domain.LabelData{
			LegalLabel: domain.LegalLabel{
				Ingredients: "oats, honey, almond",
				Allergens:   "Contains: nuts",
				Nutrition: domain.NutritionFactSheet{
					domain.NutrientEnergy: {Per100g: domain.NutritionValue{Value: 450, Unit: "kcal"}},
				},
			},
		},
		CreatedAt:   time.Now().UTC(),
		GeneratedBy: domain.GeneratedByAI,
	}
}

func requireValidation(t *testing.T, err error) map[string]string {
	t.Helper()
	require.Error(t, err)
	var appErr *errors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
	assert.Equal(t, 400, appErr.StatusCode)
	return appErr.Details
}

func TestValidateProductDataOK(t *testing.T) {
	assert.NoError(t, ValidateProductData(validProduct()))
}

func TestValidateProductDataMissingName(t *testing.T) {
	pd := validProduct()
	pd.Name = ""

	details := requireValidation(t, ValidateProductData(pd))
	assert.Contains(t, details, "Name")
}

func TestValidateProductDataIngredients(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		pd := validProduct()
		pd.Ingredients = nil
		details := requireValidation(t, ValidateProductData(pd))
		assert.Contains(t, details, "ingredients")
	})

	t.Run("all blank", func(t *testing.T) {
		pd := validProduct()
		pd.Ingredients = []string{"  ", ""}
		details := requireValidation(t, ValidateProductData(pd))
		assert.Contains(t, details, "ingredients")
	})
}

func TestValidateProductDataUnknownMarket(t *testing.T) {
	pd := validProduct()
	pd.Market = "XX"

	err := ValidateProductData(pd)
	require.Error(t, err)
	assert.ErrorIs(t, err, errors.ErrUnknownMarket)
}

func TestValidateProductDataNutritionMissingPer100g(t *testing.T) {
	pd := validProduct()
	pd.Nutrition["protein"] = domain.NutritionServingInfo{}

	details := requireValidation(t, ValidateProductData(pd))
	assert.Contains(t, details, "nutrition.protein.per100g")
}

func TestValidateProductDataCollectsAllViolations(t *testing.T) {
	pd := validProduct()
	pd.Name = ""
	pd.Ingredients = nil
	pd.Nutrition["salt"] = domain.NutritionServingInfo{}

	details := requireValidation(t, ValidateProductData(pd))
	assert.Len(t, details, 3)
}

func TestValidateLabelOK(t *testing.T) {
	assert.NoError(t, ValidateLabel(validLabel()))
}

func TestValidateLabelMissingFields(t *testing.T) {
	label := validLabel()
	label.LabelID = ""
	label.CreatedAt = time.Time{}
	label.LabelData.LegalLabel.Allergens = " "

	details := requireValidation(t, ValidateLabel(label))
	assert.Contains(t, details, "labelId")
	assert.Contains(t, details, "createdAt")
	assert.Contains(t, details, "labelData.legalLabel.allergens")
}

func TestValidateLabelTranslatedData(t *testing.T) {
	label := validLabel()
	label.TranslatedData = &domain.LabelData{}

	details := requireValidation(t, ValidateLabel(label))
	assert.Contains(t, details, "translatedData.legalLabel.ingredients")
}

func TestValidateLabelUnknownMarket(t *testing.T) {
	label := validLabel()
	label.Market = "ZZ"

	err := ValidateLabel(label)
	assert.ErrorIs(t, err, errors.ErrUnknownMarket)
}
