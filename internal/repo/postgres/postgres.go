package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/hamed0406/sitesmoke/internal/domain"
	"github.com/hamed0406/sitesmoke/internal/repo"
)

var _ repo.RunStore = (*Store)(nil)

// Store persists run history in Postgres. The full summary lives in a JSONB
// column; the headline counters are denormalized for cheap dashboard queries.
type Store struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func New(ctx context.Context, dsn string, log *zap.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	return &Store{pool: pool, log: log}, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// EnsureSchema creates the runs table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS runs (
    id               BIGSERIAL PRIMARY KEY,
    finished_at      TIMESTAMPTZ NOT NULL,
    duration_seconds DOUBLE PRECISION NOT NULL,
    total_sites      INT NOT NULL,
    sites_passed     INT NOT NULL,
    sites_failed     INT NOT NULL,
    total_tests      INT NOT NULL,
    total_passed     INT NOT NULL,
    total_failed     INT NOT NULL,
    summary          JSONB NOT NULL
)`
	if _, err := s.pool.Exec(ctx, ddl); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (s *Store) Append(ctx context.Context, sum *domain.RunSummary) error {
	payload, err := json.Marshal(sum)
	if err != nil {
		return fmt.Errorf("encode summary: %w", err)
	}
	const q = `
INSERT INTO runs (finished_at, duration_seconds, total_sites, sites_passed,
                  sites_failed, total_tests, total_passed, total_failed, summary)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = s.pool.Exec(ctx, q,
		sum.Timestamp, sum.DurationSeconds, sum.TotalSites, sum.SitesPassed,
		sum.SitesFailed, sum.TotalTests, sum.TotalPassed, sum.TotalFailed, payload,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	if s.log != nil {
		s.log.Debug("run_stored",
			zap.Int("total_sites", sum.TotalSites),
			zap.Int("sites_failed", sum.SitesFailed),
		)
	}
	return nil
}

func (s *Store) Latest(ctx context.Context) (*domain.RunSummary, error) {
	const q = `SELECT summary FROM runs ORDER BY finished_at DESC, id DESC LIMIT 1`
	var payload []byte
	err := s.pool.QueryRow(ctx, q).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select latest run: %w", err)
	}
	var sum domain.RunSummary
	if err := json.Unmarshal(payload, &sum); err != nil {
		return nil, fmt.Errorf("decode summary: %w", err)
	}
	return &sum, nil
}

func (s *Store) List(ctx context.Context, limit int) ([]domain.RunSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `SELECT summary FROM runs ORDER BY finished_at DESC, id DESC LIMIT $1`
	rows, err := s.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, fmt.Errorf("select runs: %w", err)
	}
	defer rows.Close()

	var out []domain.RunSummary
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		var sum domain.RunSummary
		if err := json.Unmarshal(payload, &sum); err != nil {
			return nil, fmt.Errorf("decode summary: %w", err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}
