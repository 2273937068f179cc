// Package market holds the static registry of supported markets and the
// regulatory context each one imposes on a label.
package market

import (
	"github.com/smartlabel/smartlabel-backend/internal/label/domain"
	"github.com/smartlabel/smartlabel-backend/pkg/errors"
)

// Config describes one supported market
type Config struct {
	Code        domain.Market
	Label       string
	Language    string
	// SecondaryLanguage is set for dual-language markets (MO labels in
	// Chinese and Portuguese).
	SecondaryLanguage string
	// LanguageVariant is a regional variant recorded on the label when it
	// differs from the base language, e.g. "pt-BR".
	LanguageVariant string
	Flag            string
	Description     string
	Requirements    []string
	Regulations     []string
	// Instructions is the regulatory guidance handed to the generation
	// capability for this market.
	Instructions string
	// RateLimitPerMinute bounds generation calls for the market.
	RateLimitPerMinute int
}

var registry = map[domain.Market]Config{
	domain.MarketEU: {
		Code:        domain.MarketEU,
		Label:       "European Union",
		Language:    domain.LangEnglish,
		Flag:        "🇪🇺",
		Description: "EU food labeling regulations",
		Requirements: []string{
			"EU Food Information Regulation (FIC) No 1169/2011",
		},
		Regulations: []string{
			"Allergens must be highlighted",
			"Nutritional values per 100g/ml",
		},
		Instructions:       "Generate EU-compliant nutrition facts following Regulation (EU) No 1169/2011.",
		RateLimitPerMinute: 60,
	},
	domain.MarketES: {
		Code:        domain.MarketES,
		Label:       "Spain",
		Language:    domain.LangSpanish,
		Flag:        "🇪🇸",
		Description: "Spanish food safety standards",
		Requirements: []string{
			"EU Food Information Regulation (FIC)",
			"Spanish Royal Decree 1245/2008",
		},
		Regulations: []string{
			"Spanish language required",
			"Allergens must be highlighted",
			"Nutritional values per 100g/ml",
		},
		Instructions:       "Generate EU-compliant nutrition facts following Regulation (EU) No 1169/2011. Include Spanish translations where appropriate.",
		RateLimitPerMinute: 60,
	},
	domain.MarketUS: {
		Code:        domain.MarketUS,
		Label:       "United States",
		Language:    domain.LangEnglish,
		Flag:        "🇺🇸",
		Description: "FDA food labeling requirements",
		Requirements: []string{
			"FDA Food Labeling Requirements",
			"USDA Standards",
		},
		Regulations: []string{
			"English language required",
			"Nutritional values per serving",
			"Allergen declaration required",
		},
		Instructions:       "Generate FDA-compliant nutrition facts. Use per-serving values and declare the top allergens explicitly.",
		RateLimitPerMinute: 60,
	},
	domain.MarketUK: {
		Code:        domain.MarketUK,
		Label:       "United Kingdom",
		Language:    domain.LangEnglish,
		Flag:        "🇬🇧",
		Description: "UK food information regulations",
		Requirements: []string{
			"UK Food Information Regulations 2014",
			"FSA Guidelines",
		},
		Regulations: []string{
			"English language required",
			"Allergens must be highlighted",
			"Nutritional values per 100g/ml",
		},
		Instructions:       "Generate nutrition facts following the UK Food Information Regulations 2014 with FSA allergen emphasis.",
		RateLimitPerMinute: 60,
	},
	domain.MarketBR: {
		Code:            domain.MarketBR,
		Label:           "Brazil",
		Language:        domain.LangPortuguese,
		LanguageVariant: domain.LangPortugueseBR,
		Flag:            "🇧🇷",
		Description:     "Brazilian ANVISA standards",
		Requirements: []string{
			"ANVISA RDC 360/2003",
			"ANVISA RDC 429/2020",
		},
		Regulations: []string{
			"Front-of-pack labeling for high sugar, fat, sodium",
			"Nutritional values per portion",
		},
		Instructions:       "Generate nutrition facts following ANVISA Resolution RDC 429/2020. Use Portuguese language and include ALÉRGENOS prefix.",
		RateLimitPerMinute: 60,
	},
	domain.MarketAO: {
		Code:        domain.MarketAO,
		Label:       "Angola",
		Language:    domain.LangPortuguese,
		Flag:        "🇦🇴",
		Description: "Angolan food regulations (Portuguese)",
		Requirements: []string{
			"Angolan Food Safety Law",
			"CODEX Alimentarius",
		},
		Regulations: []string{
			"Portuguese language required",
			"Basic nutritional information",
		},
		Instructions:       "Generate nutrition facts following ARSO standards for African markets. Include Portuguese translations.",
		RateLimitPerMinute: 30,
	},
	domain.MarketMO: {
		Code:              domain.MarketMO,
		Label:             "Macau",
		Language:          domain.LangChinese,
		SecondaryLanguage: domain.LangPortuguese,
		Flag:              "🇲🇴",
		Description:       "Macau SAR regulations",
		Requirements: []string{
			"Macau Food Safety Law",
			"GB Standards (China)",
		},
		Regulations: []string{
			"Chinese and Portuguese language required",
			"Nutritional values per 100g/ml",
		},
		Instructions:       "Generate nutrition facts following Chinese/Macau SAR food labeling requirements. Include Chinese characters.",
		RateLimitPerMinute: 30,
	},
	domain.MarketAE: {
		Code:        domain.MarketAE,
		Label:       "UAE (Halal)",
		Language:    domain.LangArabic,
		Flag:        "🇦🇪",
		Description: "UAE Halal labeling standards",
		Requirements: []string{
			"UAE.S GSO 2055-1 (Halal)",
			"UAE.S 9:2013 (Labeling)",
		},
		Regulations: []string{
			"Halal certification required",
			"Arabic language required",
			"Nutritional values per 100g/ml",
		},
		Instructions:       "Include Halal certification requirements and compliance notes. Ensure all ingredients are Halal-compliant.",
		RateLimitPerMinute: 60,
	},
}

// order is the canonical market enumeration order
var order = []domain.Market{
	domain.MarketEU,
	domain.MarketES,
	domain.MarketUS,
	domain.MarketUK,
	domain.MarketBR,
	domain.MarketAO,
	domain.MarketMO,
	domain.MarketAE,
}

// ConfigFor returns the configuration for a market
func ConfigFor(m domain.Market) (Config, error) {
	cfg, ok := registry[m]
	if !ok {
		return Config{}, errors.UnknownMarket(string(m))
	}
	return cfg, nil
}

// AllMarkets returns the supported markets in canonical order
func AllMarkets() []domain.Market {
	out := make([]domain.Market, len(order))
	copy(out, order)
	return out
}

// IsSupported reports whether the market is in the registry
func IsSupported(m domain.Market) bool {
	_, ok := registry[m]
	return ok
}

// LanguageFor returns the primary label language for a market, defaulting
// to English for unknown markets.
func LanguageFor(m domain.Market) string {
	if cfg, ok := registry[m]; ok {
		return cfg.Language
	}
	return domain.LangEnglish
}
