package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chaitanya039/sales-dashboard-backend/database"
	"github.com/chaitanya039/sales-dashboard-backend/metrics"
	"github.com/chaitanya039/sales-dashboard-backend/models"
	"github.com/chaitanya039/sales-dashboard-backend/query"
	"github.com/chaitanya039/sales-dashboard-backend/services"
)

type envelope struct {
	StatusCode int             `json:"statusCode"`
	Data       json.RawMessage `json:"data"`
	Message    string          `json:"message"`
	Success    bool            `json:"success"`
}

func decode(t *testing.T, body io.Reader) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.NewDecoder(body).Decode(&env))
	return env
}

func newTestApp(t *testing.T, st *database.MemoryStore) func(path string) (int, envelope) {
	app := NewApp()
	SetupRoutes(app, Deps{
		Sales: services.NewSalesService(st, nil, time.Second),
		Store: st,
	})
	return func(path string) (int, envelope) {
		t.Helper()
		resp, err := app.Test(httptest.NewRequest("GET", path, nil), -1)
		require.NoError(t, err)
		defer resp.Body.Close()
		return resp.StatusCode, decode(t, resp.Body)
	}
}

func store() *database.MemoryStore {
	d := time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC)
	return database.NewMemoryStore(
		models.SaleRecord{TransactionID: 1, Date: &d, CustomerName: "Neha Shah", CustomerRegion: "North", Quantity: 2, FinalAmount: 100},
		models.SaleRecord{TransactionID: 2, Date: &d, CustomerName: "Rahul Verma", CustomerRegion: "South", Quantity: 3, FinalAmount: 50},
		models.SaleRecord{TransactionID: 3, CustomerName: "Neha Iyer", CustomerRegion: "South", Quantity: 1, FinalAmount: 25},
	)
}

func TestGetSales_Envelope(t *testing.T) {
	get := newTestApp(t, store())

	status, env := get("/api/v1/sales?search=neha&limit=1")
	require.Equal(t, 200, status)
	assert.True(t, env.Success)
	assert.Equal(t, "Success", env.Message)
	assert.Equal(t, 200, env.StatusCode)

	var page models.SalesPage
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, int64(2), page.TotalResults)
	assert.Equal(t, 2, page.TotalPages)
	assert.Equal(t, 1, page.CurrentPage)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "Neha Shah", page.Data[0].CustomerName)
	assert.Equal(t, models.Number(3), page.Summary.TotalUnits)
}

func TestGetSales_InvalidParamsAreIgnored(t *testing.T) {
	get := newTestApp(t, store())

	status, env := get("/api/v1/sales?page=-3&limit=abc&sort=DROP%20TABLE&ageMin=x&startDate=2023-01-01")
	require.Equal(t, 200, status)

	var page models.SalesPage
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, 1, page.CurrentPage)
	assert.Len(t, page.Data, 0, "a malformed age bound matches nothing")
}

func TestGetSales_RecordWithoutDateSerializesNull(t *testing.T) {
	get := newTestApp(t, store())

	status, env := get("/api/v1/sales?region=South&sort=transactionId&order=desc")
	require.Equal(t, 200, status)

	var raw struct {
		Data []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &raw))
	require.Len(t, raw.Data, 2)
	assert.Nil(t, raw.Data[0]["date"])
	assert.Equal(t, 3.0, raw.Data[0]["transactionId"])
}

type brokenStore struct{ *database.MemoryStore }

func (brokenStore) Ping(context.Context) error { return errors.New("dial tcp: refused") }

type failingReader struct{ *database.MemoryStore }

func (failingReader) Summarize(context.Context, query.Predicate) (models.Summary, error) {
	return models.Summary{}, errors.New("i/o timeout")
}

func TestGetSales_StorageFailureIsGeneric500(t *testing.T) {
	st := store()
	app := NewApp()
	SetupRoutes(app, Deps{
		Sales: services.NewSalesService(failingReader{st}, nil, time.Second),
		Store: st,
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/sales", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	env := decode(t, resp.Body)
	assert.Equal(t, 500, resp.StatusCode)
	assert.False(t, env.Success)
	assert.Equal(t, "Failed to retrieve sales", env.Message)
	assert.Equal(t, "null", string(env.Data))
}

func TestHealth(t *testing.T) {
	get := newTestApp(t, store())
	status, env := get("/health")
	assert.Equal(t, 200, status)
	assert.True(t, env.Success)

	app := NewApp()
	SetupRoutes(app, Deps{Sales: services.NewSalesService(store(), nil, 0), Store: brokenStore{store()}})
	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, 503, resp.StatusCode)
	assert.Equal(t, "Database ping failed", decode(t, resp.Body).Message)
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	get := newTestApp(t, store())
	status, env := get("/api/v1/nope")
	assert.Equal(t, 404, status)
	assert.False(t, env.Success)
	assert.Equal(t, 404, env.StatusCode)
}

func TestMetricsEndpoint(t *testing.T) {
	m := metrics.New(false)
	st := store()
	app := NewApp()
	SetupRoutes(app, Deps{Sales: services.NewSalesService(st, m, 0), Store: st, Registry: m.Registry})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/sales", nil), -1)
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = app.Test(httptest.NewRequest("GET", "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Contains(t, string(body), `sales_query_duration_seconds_count{step="find"} 1`)
}
