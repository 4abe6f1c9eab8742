package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/chaitanya039/sales-dashboard-backend/models"
)

const salesTable = "sales"

// indexedColumns back the equality filters and the date range.
var indexedColumns = []string{"customer_region", "gender", "product_category", "payment_method", "date"}

// SchemaSQL returns the statements that create the sales table and its indexes.
func SchemaSQL() []string {
	cols := make([]string, 0, len(models.Fields)+1)
	cols = append(cols, "id BIGSERIAL PRIMARY KEY")
	for _, f := range models.Fields {
		typ := "TEXT NOT NULL DEFAULT ''"
		switch f.Kind {
		case models.KindNumber:
			typ = "DOUBLE PRECISION NOT NULL"
		case models.KindDate:
			typ = "TIMESTAMPTZ"
		}
		cols = append(cols, f.Column+" "+typ)
	}

	stmts := []string{
		fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (\n\t%s\n)", salesTable, strings.Join(cols, ",\n\t")),
	}
	for _, c := range indexedColumns {
		stmts = append(stmts, fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s (%s)", salesTable, c, salesTable, c))
	}
	return stmts
}

// EnsureSchema creates the sales table if it does not exist.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range SchemaSQL() {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
