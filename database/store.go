package database

import (
	"context"
	"fmt"

	"github.com/chaitanya039/sales-dashboard-backend/config"
	"github.com/chaitanya039/sales-dashboard-backend/models"
	"github.com/chaitanya039/sales-dashboard-backend/query"
)

// Store is the full sales store contract shared by PostgresStore and
// MemoryStore.
type Store interface {
	Ping(ctx context.Context) error
	Find(ctx context.Context, spec query.Spec) ([]models.SaleRecord, error)
	Count(ctx context.Context, p query.Predicate) (int64, error)
	Summarize(ctx context.Context, p query.Predicate) (models.Summary, error)
	DeleteAll(ctx context.Context) error
	InsertBatch(ctx context.Context, recs []models.SaleRecord) (int64, error)
	AcquireIngestLock(ctx context.Context) (func(), error)
}

var (
	_ Store = (*PostgresStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

// Open builds the store selected by cfg. For Postgres it connects and
// creates the schema; the returned func closes the pool.
func Open(ctx context.Context, cfg config.Config) (Store, func(), error) {
	switch cfg.StoreKind {
	case config.StoreMemory:
		return NewMemoryStore(), func() {}, nil
	case config.StorePostgres:
		pool, err := Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		if err := EnsureSchema(ctx, pool); err != nil {
			Close(pool)
			return nil, nil, err
		}
		return NewPostgresStore(pool), func() { Close(pool) }, nil
	}
	return nil, nil, fmt.Errorf("unknown store kind %q", cfg.StoreKind)
}
