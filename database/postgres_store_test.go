package database

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/chaitanya039/sales-dashboard-backend/models"
	"github.com/chaitanya039/sales-dashboard-backend/query"
)

const postgresImage = "postgres:17"

type PostgresStoreSuite struct {
	suite.Suite

	container *tcPostgres.PostgresContainer
	pool      *pgxpool.Pool
	store     *PostgresStore
}

func TestPostgresStore(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration suite in short mode")
	}
	testcontainers.SkipIfProviderIsNotHealthy(t)
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcPostgres.Run(ctx, postgresImage,
		tcPostgres.WithDatabase("sales_test"),
		tcPostgres.WithUsername("sales"),
		tcPostgres.WithPassword("sales"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.pool, err = Connect(ctx, dsn)
	s.Require().NoError(err)
	s.Require().NoError(EnsureSchema(ctx, s.pool))
	s.store = NewPostgresStore(s.pool)
}

func (s *PostgresStoreSuite) TearDownSuite() {
	Close(s.pool)
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.store.DeleteAll(context.Background()))
}

func (s *PostgresStoreSuite) seed() {
	recs := []models.SaleRecord{
		sale(1, "Nike Fan", 3),
		sale(2, "Bob", 1),
		sale(3, "nikita", 2),
		sale(4, "Alice", 1),
	}
	recs[0].Age, recs[1].Age, recs[2].Age, recs[3].Age = 25, 31, 20, 45
	recs[3].Date = nil

	n, err := s.store.InsertBatch(context.Background(), recs)
	s.Require().NoError(err)
	s.Require().EqualValues(len(recs), n)
}

func (s *PostgresStoreSuite) TestFindNaturalOrder() {
	s.seed()
	got, err := s.store.Find(context.Background(), query.Build(query.Params{Limit: "3"}))
	s.Require().NoError(err)
	s.Equal([]float64{1, 2, 3}, ids(got))
	s.NotNil(got[0].Date)
}

func (s *PostgresStoreSuite) TestFindSortedAndPaged() {
	s.seed()
	got, err := s.store.Find(context.Background(),
		query.Build(query.Params{Sort: "quantity", Order: "desc", Page: "1", Limit: "10"}))
	s.Require().NoError(err)
	s.Equal([]float64{1, 3, 2, 4}, ids(got))

	got, err = s.store.Find(context.Background(),
		query.Build(query.Params{Sort: "quantity", Order: "desc", Page: "2", Limit: "3"}))
	s.Require().NoError(err)
	s.Equal([]float64{4}, ids(got))
}

func (s *PostgresStoreSuite) TestHugeWindowIsCapped() {
	s.seed()
	got, err := s.store.Find(context.Background(),
		query.Build(query.Params{Page: "9223372036854775807", Limit: "9223372036854775807"}))
	s.Require().NoError(err)
	s.Empty(got)

	got, err = s.store.Find(context.Background(), query.Build(query.Params{Limit: "9223372036854775807"}))
	s.Require().NoError(err)
	s.Equal([]float64{1, 2, 3, 4}, ids(got))
}

func (s *PostgresStoreSuite) TestControlBytesInTermsAreHarmless() {
	s.seed()
	n, err := s.store.Count(context.Background(),
		query.Build(query.Params{Search: "ni\x00k\xff", Tags: "\x00", Region: "\xfe"}).Predicate)
	s.Require().NoError(err)
	s.EqualValues(2, n)
}

func (s *PostgresStoreSuite) TestUnknownSortFieldIsNaturalOrder() {
	s.seed()
	got, err := s.store.Find(context.Background(), query.Build(query.Params{Sort: "nope", Order: "desc"}))
	s.Require().NoError(err)
	s.Equal([]float64{1, 2, 3, 4}, ids(got))
}

func (s *PostgresStoreSuite) TestFilterSearchCountAndSummary() {
	s.seed()
	ctx := context.Background()
	p := query.Build(query.Params{Search: "NIK", AgeMin: "20", AgeMax: "30"}).Predicate

	n, err := s.store.Count(ctx, p)
	s.Require().NoError(err)
	s.EqualValues(2, n)

	sum, err := s.store.Summarize(ctx, p)
	s.Require().NoError(err)
	s.Equal(models.Summary{TotalUnits: 5, TotalAmount: 500, TotalOrders: 2, NetRevenue: 450}, sum)

	sum, err = s.store.Summarize(ctx, query.Equals{Field: models.FieldGender, Value: "nobody"})
	s.Require().NoError(err)
	s.Equal(models.Summary{}, sum)
}

func (s *PostgresStoreSuite) TestMalformedBoundMatchesNothing() {
	s.seed()
	n, err := s.store.Count(context.Background(), query.Build(query.Params{AgeMax: "old"}).Predicate)
	s.Require().NoError(err)
	s.EqualValues(0, n)
}

func (s *PostgresStoreSuite) TestNaNRoundTrip() {
	rec := sale(7, "nan", 1)
	rec.PricePerUnit = models.Number(math.NaN())
	_, err := s.store.InsertBatch(context.Background(), []models.SaleRecord{rec})
	s.Require().NoError(err)

	got, err := s.store.Find(context.Background(), query.Build(query.Params{}))
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.False(got[0].PricePerUnit.IsValid())
}

func (s *PostgresStoreSuite) TestIngestLockIsExclusive() {
	ctx := context.Background()
	release, err := s.store.AcquireIngestLock(ctx)
	s.Require().NoError(err)

	_, err = s.store.AcquireIngestLock(ctx)
	s.ErrorIs(err, ErrLockHeld)

	release()
	again, err := s.store.AcquireIngestLock(ctx)
	s.Require().NoError(err)
	again()
}
