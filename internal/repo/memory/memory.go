package memory

import (
	"context"
	"sync"

	"github.com/hamed0406/sitesmoke/internal/domain"
	"github.com/hamed0406/sitesmoke/internal/repo"
)

var _ repo.RunStore = (*Store)(nil)

// Store keeps run history in memory. Good enough for a single API process;
// use the postgres store when history must outlive it.
type Store struct {
	mu   sync.RWMutex
	runs []domain.RunSummary
}

func New() *Store {
	return &Store{runs: make([]domain.RunSummary, 0, 16)}
}

func (m *Store) Append(ctx context.Context, s *domain.RunSummary) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, *s)
	return nil
}

func (m *Store) Latest(ctx context.Context) (*domain.RunSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.runs) == 0 {
		return nil, nil
	}
	cp := m.runs[len(m.runs)-1]
	return &cp, nil
}

func (m *Store) List(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if limit <= 0 || limit > len(m.runs) {
		limit = len(m.runs)
	}
	out := make([]domain.RunSummary, 0, limit)
	for i := len(m.runs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.runs[i])
	}
	return out, nil
}
