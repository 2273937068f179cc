// Package generator produces market-compliant labels, preferring the AI
// capability and degrading to deterministic synthesis when it fails.
package generator

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/smartlabel/smartlabel-backend/internal/label/domain"
	"github.com/smartlabel/smartlabel-backend/internal/label/market"
	"github.com/smartlabel/smartlabel-backend/internal/label/schema"
	"github.com/smartlabel/smartlabel-backend/pkg/logger"
	"github.com/smartlabel/smartlabel-backend/pkg/retry"
	"github.com/smartlabel/smartlabel-backend/pkg/translation"
)

// Client generates labels for individual markets
type Client struct {
	capability Capability
	translator *translation.Translator
	policy     retry.Policy
	timeout    time.Duration
	logger     *logger.Logger

	mu       sync.Mutex
	limiters map[domain.Market]*rate.Limiter
}

// New creates a generation client. timeout bounds one market's generation
// attempt end to end, fallback included.
func New(capability Capability, translator *translation.Translator, policy retry.Policy, timeout time.Duration, log *logger.Logger) *Client {
	return &Client{
		capability: capability,
		translator: translator,
		policy:     policy,
		timeout:    timeout,
		logger:     log.WithComponent("generator"),
		limiters:   make(map[domain.Market]*rate.Limiter),
	}
}

// Generate produces a label for one market. Unknown markets are the only
// error; every generation failure is absorbed by fallback synthesis.
func (c *Client) Generate(ctx context.Context, pd *domain.ProductData, m domain.Market) (*domain.Label, error) {
	cfg, err := market.ConfigFor(m)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	log := c.logger.WithMarket(string(m))

	raw, err := c.invoke(ctx, pd, cfg)
	if err != nil {
		log.Warn().Err(err).Msg("generation failed, synthesizing fallback label")
		return c.synthesizeFallback(pd, cfg), nil
	}

	payload, err := parseModelOutput(raw)
	if err == nil {
		// Never trust unvalidated model output past this boundary
		err = schema.ValidateLabelData(payload.LabelData)
	}
	if err == nil && payload.TranslatedData != nil {
		err = schema.ValidateLabelData(payload.TranslatedData)
	}
	if err != nil {
		log.Warn().Err(err).Msg("unusable model output, synthesizing fallback label")
		return c.synthesizeFallback(pd, cfg), nil
	}

	label := &domain.Label{
		LabelID:        uuid.New().String(),
		ProductID:      pd.ProductID,
		Market:         m,
		Language:       cfg.Language,
		LabelData:      *payload.LabelData,
		TranslatedData: payload.TranslatedData,
		CreatedAt:      time.Now().UTC(),
		GeneratedBy:    domain.GeneratedByAI,
	}

	if payload.MarketData != nil {
		label.MarketData = *payload.MarketData
	} else {
		label.MarketData = domain.MarketSpecificData{
			Certifications:         []string{},
			LocalRegulations:       cfg.Regulations,
			CulturalConsiderations: []string{},
		}
	}
	if label.MarketData.LanguageVariant == "" {
		label.MarketData.LanguageVariant = cfg.LanguageVariant
	}

	log.Info().Str("label_id", label.LabelID).Msg("label generated")
	return label, nil
}

// invoke calls the capability under the market rate limit and retry policy
func (c *Client) invoke(ctx context.Context, pd *domain.ProductData, cfg market.Config) (string, error) {
	if err := c.limiter(cfg).Wait(ctx); err != nil {
		return "", err
	}

	prompt := buildPrompt(pd, cfg)

	var raw string
	err := c.policy.Do(ctx, func() error {
		out, err := c.capability.Invoke(ctx, prompt)
		if err != nil {
			return err
		}
		raw = out
		return nil
	})
	return raw, err
}

func (c *Client) limiter(cfg market.Config) *rate.Limiter {
	c.mu.Lock()
	defer c.mu.Unlock()

	lim, ok := c.limiters[cfg.Code]
	if !ok {
		perMinute := cfg.RateLimitPerMinute
		if perMinute <= 0 {
			perMinute = 60
		}
		lim = rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), perMinute)
		c.limiters[cfg.Code] = lim
	}
	return lim
}
