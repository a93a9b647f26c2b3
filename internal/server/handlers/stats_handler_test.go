package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/volaille/internal/domain/models"
	"github.com/mamadbah2/volaille/internal/server/handlers"
	"github.com/mamadbah2/volaille/internal/server/router"
	"github.com/mamadbah2/volaille/internal/service/stats"
)

type stubFetcher struct {
	records []models.ProductionRecord
}

func (f *stubFetcher) ProductionBetween(ctx context.Context, farmID string, start, end time.Time) ([]models.ProductionRecord, error) {
	if start.Year() < 2024 {
		return nil, nil // previous window
	}
	return f.records, nil
}

func (f *stubFetcher) FeedUsageBetween(ctx context.Context, farmID string, start, end time.Time) ([]models.UsageRecord, error) {
	return nil, nil
}

func (f *stubFetcher) MedicineUsageBetween(ctx context.Context, farmID string, start, end time.Time) ([]models.UsageRecord, error) {
	return nil, nil
}

func (f *stubFetcher) InventoryByFarm(ctx context.Context, farmID string) ([]models.InventoryItem, error) {
	return nil, nil
}

func (f *stubFetcher) BirdCount(ctx context.Context, farmID string) (int, error) {
	return 0, nil
}

func newTestRouter() http.Handler {
	fetcher := &stubFetcher{
		records: []models.ProductionRecord{
			{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Quantity: 120, Grade: models.GradeA, FarmID: "farm-1"},
		},
	}
	svc := stats.NewService(fetcher, nil, 2.5, nil)
	return router.New(handlers.NewStatsHandler(svc, nil), nil)
}

func TestProductionEndpoint(t *testing.T) {
	engine := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/farms/farm-1/stats/production?startDate=2024-01-01&endDate=2024-01-07", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		FarmID    string  `json:"farm_id"`
		TotalEggs float64 `json:"total_eggs"`
		Range     struct {
			Days int `json:"days"`
		} `json:"range"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, "farm-1", payload.FarmID)
	assert.Equal(t, 120.0, payload.TotalEggs)
	assert.Equal(t, 6, payload.Range.Days)
}

func TestProductionEndpointInvalidRange(t *testing.T) {
	engine := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/farms/farm-1/stats/production?startDate=2024-02-01&endDate=2024-01-01", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestFinancialEndpoint(t *testing.T) {
	engine := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/farms/farm-1/stats/financial?startDate=2024-01-01&endDate=2024-01-07", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload struct {
		Revenue float64 `json:"revenue"`
		Profit  float64 `json:"profit"`
		Margin  float64 `json:"margin"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	assert.Equal(t, 300.0, payload.Revenue) // 120 eggs * 2.5
	assert.Equal(t, 300.0, payload.Profit)
	assert.Equal(t, 100.0, payload.Margin)
}

func TestHealthz(t *testing.T) {
	engine := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
