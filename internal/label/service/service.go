// Package service orchestrates label generation across markets and fronts
// the document store.
package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/smartlabel/smartlabel-backend/internal/label/compliance"
	"github.com/smartlabel/smartlabel-backend/internal/label/domain"
	"github.com/smartlabel/smartlabel-backend/internal/label/schema"
	"github.com/smartlabel/smartlabel-backend/internal/label/store"
	"github.com/smartlabel/smartlabel-backend/pkg/errors"
	"github.com/smartlabel/smartlabel-backend/pkg/logger"
)

// Generator produces a label for one market
type Generator interface {
	Generate(ctx context.Context, pd *domain.ProductData, m domain.Market) (*domain.Label, error)
}

// EventPublisher announces label lifecycle changes. Implementations must
// not fail the request.
type EventPublisher interface {
	PublishLabelGenerated(ctx context.Context, label *domain.Label)
	PublishLabelDeleted(ctx context.Context, labelID string)
}

// Service coordinates validation, generation, persistence and events
type Service struct {
	generator Generator
	store     store.Gateway
	events    EventPublisher
	logger    *logger.Logger
}

// New creates the label service. events may be nil when messaging is not
// configured.
func New(generator Generator, gateway store.Gateway, events EventPublisher, log *logger.Logger) *Service {
	return &Service{
		generator: generator,
		store:     gateway,
		events:    events,
		logger:    log.WithComponent("label-service"),
	}
}

// Generate validates the product data, generates a label for its market
// and persists it. The market defaults to EU when unset.
func (s *Service) Generate(ctx context.Context, pd *domain.ProductData) (*domain.Label, error) {
	if err := schema.ValidateProductData(pd); err != nil {
		return nil, err
	}

	m := pd.Market
	if m == "" {
		m = domain.MarketEU
	}

	label, err := s.generator.Generate(ctx, pd, m)
	if err != nil {
		return nil, err
	}

	if err := s.store.Put(ctx, label); err != nil {
		return nil, err
	}

	s.publishGenerated(ctx, label)
	return label, nil
}

// GenerateForMarkets validates once, then fans out one goroutine per
// distinct market. Labels and Errors partition the requested markets;
// generation failures never appear in Errors because the generator falls
// back instead of failing.
func (s *Service) GenerateForMarkets(ctx context.Context, pd *domain.ProductData, markets []domain.Market) (*domain.MultiMarketResult, error) {
	if err := schema.ValidateProductData(pd); err != nil {
		return nil, err
	}
	if len(markets) == 0 {
		return nil, errors.BadRequest("at least one market is required")
	}

	distinct := dedupe(markets)

	result := &domain.MultiMarketResult{
		Labels: make(map[domain.Market]*domain.Label, len(distinct)),
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)

	for _, m := range distinct {
		wg.Add(1)
		go func(m domain.Market) {
			defer wg.Done()

			label, err := s.generator.Generate(ctx, pd, m)
			if err != nil {
				mu.Lock()
				result.Errors = append(result.Errors, marketError(m, err))
				mu.Unlock()
				return
			}

			if err := s.store.Put(ctx, label); err != nil {
				s.logger.WithMarket(string(m)).Error().Err(err).Msg("failed to persist label")
				mu.Lock()
				result.Errors = append(result.Errors, marketError(m, err))
				mu.Unlock()
				return
			}

			s.publishGenerated(ctx, label)

			mu.Lock()
			result.Labels[m] = label
			mu.Unlock()
		}(m)
	}

	wg.Wait()

	// Stable error order for clients regardless of goroutine scheduling
	sort.Slice(result.Errors, func(i, j int) bool {
		return result.Errors[i].Market < result.Errors[j].Market
	})

	result.GeneratedAt = time.Now().UTC()
	return result, nil
}

// List returns all labels, newest first
func (s *Service) List(ctx context.Context) ([]*domain.Label, error) {
	labels, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(labels, func(i, j int) bool {
		return labels[i].CreatedAt.After(labels[j].CreatedAt)
	})
	return labels, nil
}

// Get returns one label by id
func (s *Service) Get(ctx context.Context, labelID string) (*domain.Label, error) {
	return s.store.Get(ctx, labelID)
}

// Delete removes a label by id
func (s *Service) Delete(ctx context.Context, labelID string) error {
	if err := s.store.Delete(ctx, labelID); err != nil {
		return err
	}
	if s.events != nil {
		s.events.PublishLabelDeleted(ctx, labelID)
	}
	return nil
}

// Compliance scores a stored label
func (s *Service) Compliance(ctx context.Context, labelID string) (*domain.ComplianceScore, error) {
	label, err := s.store.Get(ctx, labelID)
	if err != nil {
		return nil, err
	}
	return compliance.Score(label), nil
}

func (s *Service) publishGenerated(ctx context.Context, label *domain.Label) {
	if s.events != nil {
		s.events.PublishLabelGenerated(ctx, label)
	}
}

func marketError(m domain.Market, err error) domain.MarketError {
	var appErr *errors.AppError
	if errors.As(err, &appErr) {
		return domain.MarketError{Market: m, Code: appErr.Code, Message: appErr.Message}
	}
	return domain.MarketError{Market: m, Code: "INTERNAL_ERROR", Message: err.Error()}
}

func dedupe(markets []domain.Market) []domain.Market {
	seen := make(map[domain.Market]struct{}, len(markets))
	out := make([]domain.Market, 0, len(markets))
	for _, m := range markets {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	return out
}
