// Package store persists label documents. The Gateway interface hides the
// backend; DynamoDB, Postgres and in-memory implementations are selected
// by configuration.
package store

import (
	"context"

	"github.com/smartlabel/smartlabel-backend/internal/label/domain"
)

// Gateway is the label document store contract. Get and Delete return a
// NotFound error for unknown ids; Delete is not idempotent on purpose so
// callers can distinguish the second delete.
type Gateway interface {
	Put(ctx context.Context, label *domain.Label) error
	Get(ctx context.Context, labelID string) (*domain.Label, error)
	List(ctx context.Context) ([]*domain.Label, error)
	Delete(ctx context.Context, labelID string) error
	Health(ctx context.Context) map[string]string
}
