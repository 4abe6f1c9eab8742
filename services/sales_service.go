package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chaitanya039/sales-dashboard-backend/metrics"
	"github.com/chaitanya039/sales-dashboard-backend/models"
	"github.com/chaitanya039/sales-dashboard-backend/query"
)

// ErrQueryExecution is returned when any storage read behind a listing fails.
var ErrQueryExecution = errors.New("query execution failed")

// DefaultQueryTimeout bounds one listing when no timeout is configured.
const DefaultQueryTimeout = 30 * time.Second

// SalesReader is the read side of the sales store.
type SalesReader interface {
	Find(ctx context.Context, spec query.Spec) ([]models.SaleRecord, error)
	Count(ctx context.Context, p query.Predicate) (int64, error)
	Summarize(ctx context.Context, p query.Predicate) (models.Summary, error)
}

// SalesService answers listing requests.
type SalesService struct {
	store   SalesReader
	metrics *metrics.Metrics
	timeout time.Duration
}

// NewSalesService builds a SalesService. m may be nil.
func NewSalesService(store SalesReader, m *metrics.Metrics, timeout time.Duration) *SalesService {
	if timeout <= 0 {
		timeout = DefaultQueryTimeout
	}
	return &SalesService{store: store, metrics: m, timeout: timeout}
}

// GetSales resolves params into one page of records, the total match count
// and the summary over every match.
//
// The page, count and summary are three independent reads issued in
// parallel. They share one predicate but not one snapshot, so a concurrent
// import can make them disagree.
func (s *SalesService) GetSales(ctx context.Context, params query.Params) (*models.SalesPage, error) {
	spec := query.Build(params)

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	var (
		records []models.SaleRecord
		total   int64
		summary models.Summary
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		defer s.observe("find", time.Now())
		records, err = s.store.Find(gctx, spec)
		return wrapStep("find", err)
	})
	g.Go(func() (err error) {
		defer s.observe("count", time.Now())
		total, err = s.store.Count(gctx, spec.Predicate)
		return wrapStep("count", err)
	})
	g.Go(func() (err error) {
		defer s.observe("summary", time.Now())
		summary, err = s.store.Summarize(gctx, spec.Predicate)
		return wrapStep("summary", err)
	})

	if err := g.Wait(); err != nil {
		s.metrics.QueryFailed()
		slog.Error("❌ [SALES] listing failed", "error", err)
		return nil, fmt.Errorf("%w: %w", ErrQueryExecution, err)
	}

	if records == nil {
		records = []models.SaleRecord{}
	}

	slog.Debug("📊 [SALES] listing served",
		"total", total, "page", spec.Page.CurrentPage, "limit", spec.Page.PerPage, "returned", len(records))

	return &models.SalesPage{
		TotalResults: total,
		CurrentPage:  spec.Page.CurrentPage,
		TotalPages:   spec.Page.TotalPages(total),
		Summary:      summary,
		Data:         records,
	}, nil
}

func (s *SalesService) observe(step string, start time.Time) {
	s.metrics.ObserveQueryStep(step, time.Since(start))
}

func wrapStep(step string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", step, err)
}
