package database

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/chaitanya039/sales-dashboard-backend/models"
	"github.com/chaitanya039/sales-dashboard-backend/query"
)

// MemoryStore keeps sale records in insertion order and evaluates predicates
// in process. It follows the same ordering rules as PostgresStore: unknown
// sort fields give natural order, NaN numbers and missing dates sort as the
// largest values, and ties keep insertion order.
type MemoryStore struct {
	mu      sync.RWMutex
	records []models.SaleRecord
	ingest  sync.Mutex
}

// NewMemoryStore returns a store preloaded with recs.
func NewMemoryStore(recs ...models.SaleRecord) *MemoryStore {
	return &MemoryStore{records: append([]models.SaleRecord(nil), recs...)}
}

// Ping always succeeds.
func (s *MemoryStore) Ping(context.Context) error { return nil }

// Len returns the number of stored records.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *MemoryStore) Find(ctx context.Context, spec query.Spec) ([]models.SaleRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	matched := s.matching(spec.Predicate)
	s.mu.RUnlock()

	if def, ok := models.LookupField(string(spec.Sort.Field)); ok && !spec.Sort.IsNatural() {
		desc := spec.Sort.Desc
		sort.SliceStable(matched, func(i, j int) bool {
			c := compareForSort(matched[i].Value(def.Name), matched[j].Value(def.Name))
			if desc {
				return c > 0
			}
			return c < 0
		})
	}

	start := min(max(spec.Page.Skip, 0), len(matched))
	end := start + min(max(spec.Page.PerPage, 0), len(matched)-start)
	return matched[start:end], nil
}

func (s *MemoryStore) Count(ctx context.Context, p query.Predicate) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	for i := range s.records {
		if query.Match(p, &s.records[i]) {
			n++
		}
	}
	return n, nil
}

func (s *MemoryStore) Summarize(ctx context.Context, p query.Predicate) (models.Summary, error) {
	if err := ctx.Err(); err != nil {
		return models.Summary{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var sum models.Summary
	for i := range s.records {
		if query.Match(p, &s.records[i]) {
			sum.Add(&s.records[i])
		}
	}
	return sum, nil
}

func (s *MemoryStore) DeleteAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	s.records = nil
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) InsertBatch(ctx context.Context, recs []models.SaleRecord) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	s.records = append(s.records, recs...)
	s.mu.Unlock()
	return int64(len(recs)), nil
}

// AcquireIngestLock rejects a second concurrent loader.
func (s *MemoryStore) AcquireIngestLock(context.Context) (func(), error) {
	if !s.ingest.TryLock() {
		return nil, ErrLockHeld
	}
	return s.ingest.Unlock, nil
}

// matching copies out the records that satisfy p. Callers hold mu.
func (s *MemoryStore) matching(p query.Predicate) []models.SaleRecord {
	out := make([]models.SaleRecord, 0)
	for i := range s.records {
		if query.Match(p, &s.records[i]) {
			out = append(out, s.records[i])
		}
	}
	return out
}

func compareForSort(a, b any) int {
	switch av := a.(type) {
	case string:
		bv, _ := b.(string)
		return strings.Compare(av, bv)
	case float64:
		bv, _ := b.(float64)
		switch an, bn := math.IsNaN(av), math.IsNaN(bv); {
		case an && bn:
			return 0
		case an:
			return 1
		case bn:
			return -1
		}
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case time.Time:
		bv, ok := b.(time.Time)
		if !ok {
			return -1
		}
		return av.Compare(bv)
	case nil:
		if b == nil {
			return 0
		}
		return 1
	}
	return 0
}
