package store

import (
	"context"
	"sync"

	"github.com/smartlabel/smartlabel-backend/internal/label/domain"
	"github.com/smartlabel/smartlabel-backend/pkg/errors"
)

// Memory is an in-process Gateway for development and tests
type Memory struct {
	mu     sync.RWMutex
	labels map[string]*domain.Label
}

// NewMemory creates an empty in-memory store
func NewMemory() *Memory {
	return &Memory{labels: make(map[string]*domain.Label)}
}

func (m *Memory) Put(ctx context.Context, label *domain.Label) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := *label
	m.labels[label.LabelID] = &copied
	return nil
}

func (m *Memory) Get(ctx context.Context, labelID string) (*domain.Label, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	label, ok := m.labels[labelID]
	if !ok {
		return nil, errors.NotFound("label")
	}

	copied := *label
	return &copied, nil
}

func (m *Memory) List(ctx context.Context) ([]*domain.Label, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Label, 0, len(m.labels))
	for _, label := range m.labels {
		copied := *label
		out = append(out, &copied)
	}
	return out, nil
}

// Health reports the store status. The in-process store has no
// connection to fail.
func (m *Memory) Health(ctx context.Context) map[string]string {
	return map[string]string{
		"status":  "up",
		"backend": "memory",
	}
}

func (m *Memory) Delete(ctx context.Context, labelID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.labels[labelID]; !ok {
		return errors.NotFound("label")
	}
	delete(m.labels, labelID)
	return nil
}
