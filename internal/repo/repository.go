package repo

import (
	"context"

	"github.com/hamed0406/sitesmoke/internal/domain"
)

// RunStore persists run summaries. Port (interface); swap in any DB adapter
// later.
type RunStore interface {
	Append(ctx context.Context, s *domain.RunSummary) error
	// Latest returns nil, nil when no run has been recorded yet.
	Latest(ctx context.Context) (*domain.RunSummary, error)
	// List returns up to limit summaries, newest first.
	List(ctx context.Context, limit int) ([]domain.RunSummary, error)
}
