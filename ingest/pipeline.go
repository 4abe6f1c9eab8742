// Package ingest loads the sales dataset from a delimited text source into a
// store, replacing whatever the store held before.
//
// A run clears the store, then streams rows through normalization into
// fixed-size batches. Rows are produced on one goroutine and handed over a
// channel buffered to one batch to a single writer that owns the batch
// buffer. The writer commits each full batch synchronously and swaps in a
// fresh buffer first, so commits land in source order. While a commit is in
// flight the producer keeps normalizing until the channel is full, so a run
// holds at most about two batches of records plus the row being read.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/rs/xid"
	"golang.org/x/sync/errgroup"

	"github.com/chaitanya039/sales-dashboard-backend/database"
	"github.com/chaitanya039/sales-dashboard-backend/metrics"
	"github.com/chaitanya039/sales-dashboard-backend/models"
)

// DefaultBatchSize is the number of records written per commit.
const DefaultBatchSize = 1000

var (
	// ErrIngestionFatal means clearing or committing failed and the run stopped.
	ErrIngestionFatal = errors.New("ingestion failed")
	// ErrSourceRead means the source could not be read.
	ErrSourceRead = errors.New("source read failed")
	// ErrRunInProgress means another run holds the store.
	ErrRunInProgress = errors.New("ingestion already running")
)

// Sink is where records are written.
type Sink interface {
	DeleteAll(ctx context.Context) error
	InsertBatch(ctx context.Context, recs []models.SaleRecord) (int64, error)
}

// Locker is implemented by sinks that can keep concurrent runs apart.
type Locker interface {
	AcquireIngestLock(ctx context.Context) (func(), error)
}

// Options tunes a Pipeline.
type Options struct {
	BatchSize int
	Strict    bool
	Metrics   *metrics.Metrics
	Logger    *slog.Logger
}

// Report describes a finished run. Inserted is accurate on failure too.
type Report struct {
	RunID    string
	Read     int64
	Inserted int64
	Rejected int64
	Batches  int
	Duration time.Duration
}

// Pipeline replaces a sink's contents with a source's rows.
type Pipeline struct {
	sink Sink
	opts Options
	mu   sync.Mutex
}

// New builds a Pipeline writing into sink.
func New(sink Sink, opts Options) *Pipeline {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Pipeline{sink: sink, opts: opts}
}

// Run executes one full-replace load of src. Only one run may be active per
// Pipeline, and per store when the sink is a Locker.
func (p *Pipeline) Run(ctx context.Context, src Source) (rep Report, err error) {
	rep.RunID = xid.New().String()
	log := p.opts.Logger.With("run_id", rep.RunID)
	start := time.Now()

	if !p.mu.TryLock() {
		return rep, ErrRunInProgress
	}
	defer p.mu.Unlock()

	if l, ok := p.sink.(Locker); ok {
		release, lerr := l.AcquireIngestLock(ctx)
		if errors.Is(lerr, database.ErrLockHeld) {
			return rep, ErrRunInProgress
		}
		if lerr != nil {
			return rep, fmt.Errorf("%w: lock store: %w", ErrIngestionFatal, lerr)
		}
		defer release()
	}

	defer func() {
		rep.Duration = time.Since(start)
		p.opts.Metrics.RunFinished(err)
		if err != nil {
			log.Error("❌ [IMPORT] import failed",
				"error", err, "total_inserted", rep.Inserted, "batches", rep.Batches, "rejected", rep.Rejected)
			return
		}
		log.Info("🎉 [IMPORT] import completed",
			"total_inserted", rep.Inserted, "batches", rep.Batches, "rejected", rep.Rejected,
			"elapsed", rep.Duration.Truncate(time.Millisecond))
	}()

	if err := ctx.Err(); err != nil {
		return rep, err
	}

	log.Info("🧹 [IMPORT] clearing old records")
	if err := p.sink.DeleteAll(ctx); err != nil {
		return rep, fmt.Errorf("%w: clear store: %w", ErrIngestionFatal, err)
	}

	log.Info("📥 [IMPORT] starting import", "batch_size", p.opts.BatchSize, "strict", p.opts.Strict)

	g, gctx := errgroup.WithContext(ctx)
	records := make(chan models.SaleRecord, p.opts.BatchSize)

	g.Go(func() error {
		return p.produce(gctx, src, records, &rep, log)
	})
	g.Go(func() error {
		return p.consume(gctx, records, &rep, log, start)
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, ErrSourceRead) || errors.Is(err, ErrIngestionFatal) {
			return rep, err
		}
		return rep, fmt.Errorf("import canceled: %w", err)
	}
	return rep, nil
}

// produce reads and normalizes rows. It closes out only on a clean end of
// stream so that the writer never flushes after a failure.
func (p *Pipeline) produce(ctx context.Context, src Source, out chan<- models.SaleRecord, rep *Report, log *slog.Logger) error {
	for {
		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			close(out)
			return nil
		}
		if err != nil {
			var rowErr *RowError
			if errors.As(err, &rowErr) {
				p.reject(rep, log, rowErr)
				continue
			}
			return fmt.Errorf("%w: %w", ErrSourceRead, err)
		}
		rep.Read++
		p.opts.Metrics.RecordRows("read", 1)

		rec, rej := Normalize(row, p.opts.Strict)
		if rej != nil {
			p.reject(rep, log, rej)
			continue
		}

		select {
		case out <- rec:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (p *Pipeline) reject(rep *Report, log *slog.Logger, err error) {
	rep.Rejected++
	p.opts.Metrics.RecordRows("rejected", 1)
	log.Warn("⚠️ [IMPORT] row rejected", "error", err)
}

// consume owns the batch buffer and is the only goroutine that writes to
// the sink.
func (p *Pipeline) consume(ctx context.Context, in <-chan models.SaleRecord, rep *Report, log *slog.Logger, start time.Time) error {
	size := p.opts.BatchSize
	batch := make([]models.SaleRecord, 0, size)
	lastFlush := start
	var lastTotal int64

	commit := func() error {
		if len(batch) == 0 {
			return nil
		}
		full := batch
		batch = make([]models.SaleRecord, 0, size)

		n, err := p.sink.InsertBatch(ctx, full)
		if err != nil {
			return fmt.Errorf("%w: commit batch #%d: %w", ErrIngestionFatal, rep.Batches+1, err)
		}
		rep.Inserted += n
		rep.Batches++
		p.opts.Metrics.RecordRows("inserted", n)
		p.opts.Metrics.BatchCommitted()

		now := time.Now()
		since := now.Sub(lastFlush)
		rps := float64(0)
		if since > 0 {
			rps = float64(rep.Inserted-lastTotal) / since.Seconds()
		}
		log.Info("⬆️ [IMPORT] batch committed",
			"batch", rep.Batches, "inserted", n, "total_inserted", rep.Inserted,
			"rps", int64(rps), "elapsed", now.Sub(start).Truncate(time.Millisecond))
		lastFlush, lastTotal = now, rep.Inserted
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case rec, ok := <-in:
			if !ok {
				return commit()
			}
			batch = append(batch, rec)
			if len(batch) >= size {
				if err := commit(); err != nil {
					return err
				}
			}
		}
	}
}
