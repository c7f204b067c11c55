package repo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"letterboxd-channel-bot/internal/domain"
	"letterboxd-channel-bot/internal/infra/metrics"
)

// Postgres хранит отпечатки обработанных записей в pgxpool.
type Postgres struct {
	pool *pgxpool.Pool
}

var _ domain.SeenRepo = (*Postgres)(nil)

// NewPostgres создаёт адаптер БД.
func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) connCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, 5*time.Second)
}

// EnsureSchema создаёт таблицу отпечатков, если её ещё нет.
// Безопасно вызывается на каждом старте процесса.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	ctx, cancel := p.connCtx(ctx)
	defer cancel()

	start := time.Now()
	_, err := p.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS seen_entries (
    fingerprint TEXT PRIMARY KEY,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)
`)
	metrics.ObserveNetworkRequest("postgres", "seen_entries_ensure", "seen_entries", start, err)
	return err
}

// Exists проверяет, встречался ли отпечаток раньше.
func (p *Postgres) Exists(ctx context.Context, fingerprint string) (bool, error) {
	ctx, cancel := p.connCtx(ctx)
	defer cancel()

	start := time.Now()
	var exists bool
	err := p.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM seen_entries WHERE fingerprint = $1)`, fingerprint).Scan(&exists)
	metrics.ObserveNetworkRequest("postgres", "seen_entries_exists", "seen_entries", start, err)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Insert записывает отпечаток. Повтор даёт ошибку уникальности: при
// единственном пишущем процессе после Exists=false её быть не должно.
func (p *Postgres) Insert(ctx context.Context, fingerprint string) error {
	ctx, cancel := p.connCtx(ctx)
	defer cancel()

	start := time.Now()
	_, err := p.pool.Exec(ctx, `INSERT INTO seen_entries (fingerprint) VALUES ($1)`, fingerprint)
	metrics.ObserveNetworkRequest("postgres", "seen_entries_insert", "seen_entries", start, err)
	return err
}
