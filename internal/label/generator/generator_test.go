package generator

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartlabel/smartlabel-backend/internal/label/domain"
	"github.com/smartlabel/smartlabel-backend/internal/label/schema"
	apperrors "github.com/smartlabel/smartlabel-backend/pkg/errors"
	"github.com/smartlabel/smartlabel-backend/pkg/logger"
	"github.com/smartlabel/smartlabel-backend/pkg/retry"
	"github.com/smartlabel/smartlabel-backend/pkg/translation"
)

type fakeCapability struct {
	output   string
	err      error
	failures int
	calls    int
}

func (f *fakeCapability) Invoke(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil && f.calls <= f.failures {
		return "", f.err
	}
	if f.err != nil && f.failures == 0 {
		return "", f.err
	}
	return f.output, nil
}

const validModelOutput = `Here is the label:
{
  "labelData": {
    "legalLabel": {
      "ingredients": "oats, honey, almond",
      "allergens": "Contains: nuts",
      "nutrition": {
        "energy": {"per100g": {"value": 450, "unit": "kcal"}},
        "fat": {"per100g": {"value": 12, "unit": "g"}}
      }
    },
    "marketing": {"short": "Crunchy granola."},
    "warnings": [],
    "complianceNotes": ["Complies with Regulation (EU) No 1169/2011"]
  },
  "marketSpecificData": {
    "certifications": ["EU Organic"],
    "localRegulations": ["Allergens must be highlighted"],
    "culturalConsiderations": []
  }
}`

func newClient(t *testing.T, cap Capability) *Client {
	t.Helper()
	tr, err := translation.New()
	require.NoError(t, err)

	policy := retry.Policy{MaxAttempts: 3, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
	log := logger.New("generator-test", "test")
	return New(cap, tr, policy, 5*time.Second, log)
}

func product() *domain.ProductData {
	return &domain.ProductData{
		Name:        "Organic Granola",
		Ingredients: []string{"oats", "honey", "almond"},
		Allergens:   []string{"nuts"},
		Nutrition: domain.NutritionFactSheet{
			domain.NutrientEnergy: {Per100g: domain.NutritionValue{Value: 450, Unit: "kcal"}},
		},
	}
}

func TestGenerateFromModelOutput(t *testing.T) {
	c := newClient(t, &fakeCapability{output: validModelOutput})

	label, err := c.Generate(context.Background(), product(), domain.MarketEU)
	require.NoError(t, err)

	assert.Equal(t, domain.GeneratedByAI, label.GeneratedBy)
	assert.Equal(t, domain.MarketEU, label.Market)
	assert.Equal(t, domain.LangEnglish, label.Language)
	assert.NotEmpty(t, label.LabelID)
	assert.False(t, label.CreatedAt.IsZero())
	assert.Equal(t, "oats, honey, almond", label.LabelData.LegalLabel.Ingredients)
	assert.Equal(t, []string{"EU Organic"}, label.MarketData.Certifications)
}

func TestGenerateUnknownMarket(t *testing.T) {
	c := newClient(t, &fakeCapability{output: validModelOutput})

	_, err := c.Generate(context.Background(), product(), domain.Market("XX"))
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnknownMarket)
}

func TestGenerateFallsBackOnCapabilityFailure(t *testing.T) {
	c := newClient(t, &fakeCapability{err: errors.New("throttled")})

	label, err := c.Generate(context.Background(), product(), domain.MarketES)
	require.NoError(t, err)

	assert.Equal(t, domain.GeneratedByFallback, label.GeneratedBy)
	assert.Equal(t, domain.MarketES, label.Market)
	assert.Equal(t, domain.LangSpanish, label.Language)
	// Ingredients are translated into the market language
	assert.Contains(t, label.LabelData.LegalLabel.Ingredients, "almendra")
}

func TestGenerateFallsBackOnGarbageOutput(t *testing.T) {
	c := newClient(t, &fakeCapability{output: "I cannot help with that."})

	label, err := c.Generate(context.Background(), product(), domain.MarketEU)
	require.NoError(t, err)
	assert.Equal(t, domain.GeneratedByFallback, label.GeneratedBy)
}

func TestGenerateFallsBackOnInvalidModelOutput(t *testing.T) {
	tests := []struct {
		name   string
		output string
	}{
		{
			"empty allergens",
			`{"labelData": {"legalLabel": {"ingredients": "oats, honey", "allergens": "", "nutrition": {}}}}`,
		},
		{
			"nutrient without per100g unit",
			`{"labelData": {"legalLabel": {"ingredients": "oats", "allergens": "Contains: nuts",
			  "nutrition": {"energy": {"per100g": {"value": 450}}}}}}`,
		},
		{
			"invalid translated data",
			`{"labelData": {"legalLabel": {"ingredients": "oats", "allergens": "Contains: nuts", "nutrition": {}}},
			  "translatedData": {"legalLabel": {"ingredients": "", "allergens": "", "nutrition": {}}}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newClient(t, &fakeCapability{output: tt.output})

			label, err := c.Generate(context.Background(), product(), domain.MarketEU)
			require.NoError(t, err)

			// Invalid model output is never returned as AI-generated, and the
			// substitute label is itself schema-valid
			assert.Equal(t, domain.GeneratedByFallback, label.GeneratedBy)
			assert.NoError(t, schema.ValidateLabel(label))
		})
	}
}

func TestGenerateRetriesTransientFailures(t *testing.T) {
	fc := &fakeCapability{output: validModelOutput, err: errors.New("transient"), failures: 2}
	c := newClient(t, fc)

	label, err := c.Generate(context.Background(), product(), domain.MarketEU)
	require.NoError(t, err)
	assert.Equal(t, domain.GeneratedByAI, label.GeneratedBy)
	assert.Equal(t, 3, fc.calls)
}

func TestFallbackDefaults(t *testing.T) {
	c := newClient(t, &fakeCapability{err: errors.New("down")})

	pd := product()
	pd.Allergens = nil
	pd.Nutrition = nil

	label, err := c.Generate(context.Background(), pd, domain.MarketEU)
	require.NoError(t, err)

	legal := label.LabelData.LegalLabel
	assert.Equal(t, "No declared allergens", legal.Allergens)
	assert.Equal(t, 100.0, legal.Nutrition[domain.NutrientEnergy].Per100g.Value)
	assert.Equal(t, 25.0, legal.Nutrition[domain.NutrientCarbohydrates].Per100g.Value)
}

func TestFallbackMergesProvidedNutrition(t *testing.T) {
	c := newClient(t, &fakeCapability{err: errors.New("down")})

	label, err := c.Generate(context.Background(), product(), domain.MarketEU)
	require.NoError(t, err)

	legal := label.LabelData.LegalLabel
	assert.Equal(t, 450.0, legal.Nutrition[domain.NutrientEnergy].Per100g.Value)
	assert.Equal(t, 25.0, legal.Nutrition[domain.NutrientCarbohydrates].Per100g.Value)
}

func TestFallbackDualLanguageMarket(t *testing.T) {
	c := newClient(t, &fakeCapability{err: errors.New("down")})

	label, err := c.Generate(context.Background(), product(), domain.MarketMO)
	require.NoError(t, err)

	assert.Equal(t, domain.LangChinese, label.Language)
	require.NotNil(t, label.TranslatedData)
	assert.Contains(t, label.TranslatedData.LegalLabel.Ingredients, "amêndoa")
}

func TestFallbackLanguageVariant(t *testing.T) {
	c := newClient(t, &fakeCapability{err: errors.New("down")})

	label, err := c.Generate(context.Background(), product(), domain.MarketBR)
	require.NoError(t, err)
	assert.Equal(t, domain.LangPortugueseBR, label.MarketData.LanguageVariant)
}

func TestGenerateJuiceForEU(t *testing.T) {
	c := newClient(t, &fakeCapability{err: errors.New("down")})

	pd := &domain.ProductData{
		Name:        "Juice",
		Ingredients: []string{"Water", "Apple Juice"},
		Market:      domain.MarketEU,
	}

	label, err := c.Generate(context.Background(), pd, domain.MarketEU)
	require.NoError(t, err)

	assert.Equal(t, domain.MarketEU, label.Market)
	assert.False(t, label.CreatedAt.IsZero())

	// At least one nutrient carries a per-100g value
	found := false
	for _, info := range label.LabelData.LegalLabel.Nutrition {
		if info.Per100g.Unit != "" {
			found = true
		}
	}
	assert.True(t, found)

	// createdAt serializes as RFC 3339 / ISO-8601
	encoded, err := json.Marshal(label)
	require.NoError(t, err)
	assert.Regexp(t, `"createdAt":"\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}`, string(encoded))
}

func TestGenerateHonorsCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := newClient(t, &fakeCapability{output: validModelOutput})

	// A cancelled context still yields a label: the rate limiter wait fails
	// and the fallback path takes over.
	label, err := c.Generate(ctx, product(), domain.MarketEU)
	require.NoError(t, err)
	assert.Equal(t, domain.GeneratedByFallback, label.GeneratedBy)
}
