package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chaitanya039/sales-dashboard-backend/models"
	"github.com/chaitanya039/sales-dashboard-backend/query"
)

// ingestLockKey is the advisory lock key guarding full-replace loads.
const ingestLockKey int64 = 0x5a1e5

// PostgresStore serves and loads sale records from the sales table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore wraps an open pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// Ping checks the connection.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Find returns one page of records matching spec, in spec order.
func (s *PostgresStore) Find(ctx context.Context, spec query.Spec) ([]models.SaleRecord, error) {
	where, args := CompileWhere(spec.Predicate)

	var sb strings.Builder
	sb.WriteString("SELECT ")
	sb.WriteString(strings.Join(models.Columns(), ", "))
	sb.WriteString(" FROM " + salesTable)
	if where != "" {
		sb.WriteString(" WHERE " + where)
	}
	sb.WriteString(" ORDER BY " + OrderBy(spec.Sort))
	limit, offset := max(spec.Page.PerPage, 0), max(spec.Page.Skip, 0)
	args = append(args, limit, offset)
	fmt.Fprintf(&sb, " LIMIT $%d OFFSET $%d", len(args)-1, len(args))

	rows, err := s.pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query sales: %w", err)
	}
	defer rows.Close()

	sales := make([]models.SaleRecord, 0, min(limit, query.MaxLimit))
	for rows.Next() {
		var rec models.SaleRecord
		if err := rows.Scan(rec.ScanTargets()...); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sales: %w", err)
	}
	return sales, nil
}

// Count returns the number of records matching p.
func (s *PostgresStore) Count(ctx context.Context, p query.Predicate) (int64, error) {
	where, args := CompileWhere(p)
	q := "SELECT COUNT(*) FROM " + salesTable
	if where != "" {
		q += " WHERE " + where
	}

	var total int64
	if err := s.pool.QueryRow(ctx, q, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count sales: %w", err)
	}
	return total, nil
}

// Summarize rolls up every record matching p into one Summary.
func (s *PostgresStore) Summarize(ctx context.Context, p query.Predicate) (models.Summary, error) {
	where, args := CompileWhere(p)
	q := `
		SELECT
			COALESCE(SUM(quantity), 0),
			COALESCE(SUM(total_amount), 0),
			COALESCE(SUM(discount_percentage), 0),
			COUNT(*),
			COALESCE(SUM(final_amount), 0)
		FROM ` + salesTable
	if where != "" {
		q += " WHERE " + where
	}

	var sum models.Summary
	err := s.pool.QueryRow(ctx, q, args...).Scan(
		&sum.TotalUnits, &sum.TotalAmount, &sum.TotalDiscount, &sum.TotalOrders, &sum.NetRevenue,
	)
	if err != nil {
		return models.Summary{}, fmt.Errorf("summarize sales: %w", err)
	}
	return sum, nil
}

// DeleteAll empties the sales table and restarts its insertion sequence.
func (s *PostgresStore) DeleteAll(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, "TRUNCATE TABLE "+salesTable+" RESTART IDENTITY"); err != nil {
		return fmt.Errorf("truncate sales: %w", err)
	}
	return nil
}

// InsertBatch writes recs with a single COPY and returns the rows copied.
func (s *PostgresStore) InsertBatch(ctx context.Context, recs []models.SaleRecord) (int64, error) {
	if len(recs) == 0 {
		return 0, nil
	}
	n, err := s.pool.CopyFrom(ctx, pgx.Identifier{salesTable}, models.Columns(),
		pgx.CopyFromSlice(len(recs), func(i int) ([]any, error) {
			return recs[i].Values(), nil
		}),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Detail != "" {
			return n, fmt.Errorf("copy into sales: %s (%s): %w", pgErr.Detail, pgErr.SQLState(), err)
		}
		return n, fmt.Errorf("copy into sales: %w", err)
	}
	return n, nil
}

// AcquireIngestLock takes a session advisory lock so that only one loader
// can replace the table at a time, across processes. The returned func
// releases it.
func (s *PostgresStore) AcquireIngestLock(ctx context.Context) (func(), error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire connection: %w", err)
	}

	var ok bool
	if err := conn.QueryRow(ctx, "SELECT pg_try_advisory_lock($1)", ingestLockKey).Scan(&ok); err != nil {
		conn.Release()
		return nil, fmt.Errorf("advisory lock: %w", err)
	}
	if !ok {
		conn.Release()
		return nil, ErrLockHeld
	}

	return func() {
		_, _ = conn.Exec(context.Background(), "SELECT pg_advisory_unlock($1)", ingestLockKey)
		conn.Release()
	}, nil
}
