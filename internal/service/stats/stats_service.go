package stats

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/mamadbah2/volaille/internal/analytics"
	"github.com/mamadbah2/volaille/internal/domain/models"
)

const dateLayout = "2006-01-02"

// RecordFetcher is the slice of the document store the analytics engine reads
// from. The engine never mutates fetched records.
type RecordFetcher interface {
	ProductionBetween(ctx context.Context, farmID string, start, end time.Time) ([]models.ProductionRecord, error)
	FeedUsageBetween(ctx context.Context, farmID string, start, end time.Time) ([]models.UsageRecord, error)
	MedicineUsageBetween(ctx context.Context, farmID string, start, end time.Time) ([]models.UsageRecord, error)
	InventoryByFarm(ctx context.Context, farmID string) ([]models.InventoryItem, error)
	BirdCount(ctx context.Context, farmID string) (int, error)
}

// Service composes the period resolver, record fetcher and aggregation engine
// into the summaries served over HTTP. It holds no mutable state of its own;
// the optional cache is the only shared resource.
type Service struct {
	fetcher   RecordFetcher
	cache     *analytics.Cache
	unitPrice float64
	now       func() time.Time
	logger    *zap.Logger
}

// NewService wires a stats service instance. The unit price is the configured
// egg sale price used by the financial calculator; cache may be nil.
func NewService(fetcher RecordFetcher, cache *analytics.Cache, unitPrice float64, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		fetcher:   fetcher,
		cache:     cache,
		unitPrice: unitPrice,
		now:       time.Now,
		logger:    logger,
	}
}

// Query selects the reporting window: either a relative period token or an
// explicit start/end pair.
type Query struct {
	Period    string
	StartDate string
	EndDate   string
}

func (s *Service) resolveRange(q Query) (analytics.DateRange, error) {
	if q.StartDate != "" || q.EndDate != "" {
		return analytics.ResolveRange(q.StartDate, q.EndDate)
	}
	return analytics.ResolvePeriod(q.Period, s.now()), nil
}

// RangeInfo echoes the resolved window back to the caller.
type RangeInfo struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Days  int    `json:"days"`
}

func rangeInfo(r analytics.DateRange) RangeInfo {
	return RangeInfo{
		Start: r.Start.Format(dateLayout),
		End:   r.End.Format(dateLayout),
		Days:  r.Days(),
	}
}

// ProductionSummary is the full production analytics payload for one window.
type ProductionSummary struct {
	FarmID            string                     `json:"farm_id"`
	Range             RangeInfo                  `json:"range"`
	TotalEggs         float64                    `json:"total_eggs"`
	RecordCount       int                        `json:"record_count"`
	DailyAverage      float64                    `json:"daily_average"`
	ByGrade           []analytics.DimensionShare `json:"by_grade"`
	ByShift           []analytics.DimensionShare `json:"by_shift"`
	ByPen             []analytics.DimensionShare `json:"by_pen"`
	ByCollector       []analytics.DimensionShare `json:"by_collector"`
	Daily             []analytics.DayValue       `json:"daily"`
	Trend             analytics.TrendResult      `json:"trend"`
	WithinPeriodTrend string                     `json:"within_period_trend"`
	ConsistencyScore  float64                    `json:"consistency_score"`
	PeakDay           *analytics.DayValue        `json:"peak_day"`
	LowDays           []analytics.DayValue       `json:"low_days"`
}

func emptyProductionSummary(farmID string, r analytics.DateRange) *ProductionSummary {
	return &ProductionSummary{
		FarmID:            farmID,
		Range:             rangeInfo(r),
		ByGrade:           []analytics.DimensionShare{},
		ByShift:           []analytics.DimensionShare{},
		ByPen:             []analytics.DimensionShare{},
		ByCollector:       []analytics.DimensionShare{},
		Daily:             []analytics.DayValue{},
		Trend:             analytics.Trend(0, 0),
		WithinPeriodTrend: analytics.DirectionStable,
		LowDays:           []analytics.DayValue{},
	}
}

// ProductionSummary aggregates egg production for the farm and window. An
// empty farm id short-circuits to the canonical zeroed payload; scoping is the
// access layer's job, not the engine's.
func (s *Service) ProductionSummary(ctx context.Context, farmID string, q Query) (*ProductionSummary, error) {
	r, err := s.resolveRange(q)
	if err != nil {
		return nil, err
	}
	if farmID == "" {
		return emptyProductionSummary(farmID, r), nil
	}

	loader := func(ctx context.Context) (interface{}, error) {
		return s.computeProductionSummary(ctx, farmID, r)
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		return value.(*ProductionSummary), nil
	}

	key := analytics.Key("stats", "production", farmID, r.Start.Format(dateLayout), r.End.Format(dateLayout))
	summary := new(ProductionSummary)
	if err := s.cache.FetchJSON(ctx, key, summary, loader); err != nil {
		return nil, err
	}
	return summary, nil
}

func (s *Service) computeProductionSummary(ctx context.Context, farmID string, r analytics.DateRange) (*ProductionSummary, error) {
	previous := analytics.PreviousWindow(r)

	var current, prior []models.ProductionRecord
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.fetcher.ProductionBetween(gctx, farmID, r.Start, r.End)
		return err
	})
	g.Go(func() error {
		var err error
		prior, err = s.fetcher.ProductionBetween(gctx, farmID, previous.Start, previous.End)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch production records: %w", err)
	}

	daily := analytics.AggregateProductionByDay(current)
	priorDaily := analytics.AggregateProductionByDay(prior)

	series := make([]analytics.DayValue, 0, len(daily.Keys))
	for _, d := range daily.Keys {
		series = append(series, analytics.DayValue{Date: d, Value: daily.Sums[d]})
	}

	summary := &ProductionSummary{
		FarmID:            farmID,
		Range:             rangeInfo(r),
		TotalEggs:         daily.Total,
		RecordCount:       daily.Count,
		DailyAverage:      analytics.Round2(daily.Total / float64(r.Days())),
		ByGrade:           analytics.PercentageBreakdown(analytics.AggregateProduction(current, analytics.ByGrade)),
		ByShift:           analytics.PercentageBreakdown(analytics.AggregateProduction(current, analytics.ByShift)),
		ByPen:             analytics.PercentageBreakdown(analytics.AggregateProduction(current, analytics.ByPen)),
		ByCollector:       analytics.PercentageBreakdown(analytics.AggregateProduction(current, analytics.ByCollector)),
		Daily:             series,
		Trend:             analytics.Trend(daily.Total, priorDaily.Total),
		WithinPeriodTrend: analytics.SplitHalfTrend(daily),
		ConsistencyScore:  analytics.ConsistencyScore(daily),
		PeakDay:           analytics.PeakDay(daily),
		LowDays:           analytics.LowDays(daily),
	}

	s.logger.Debug("production summary computed",
		zap.String("farm_id", farmID),
		zap.Float64("total_eggs", summary.TotalEggs),
		zap.Int("records", summary.RecordCount))
	return summary, nil
}

// FinancialReport is the derived money view for one window.
//
// ExpenseChange mirrors an unfinished ledger feature and always reports zero;
// it is kept in the payload so existing dashboard clients keep their field.
type FinancialReport struct {
	FarmID string    `json:"farm_id"`
	Range  RangeInfo `json:"range"`
	analytics.FinancialSummary
	TotalEggs      float64               `json:"total_eggs"`
	TotalBirds     int                   `json:"total_birds"`
	CostPerBird    float64               `json:"cost_per_bird"`
	InventoryValue float64               `json:"inventory_value"`
	RevenueTrend   analytics.TrendResult `json:"revenue_trend"`
	ExpenseChange  float64               `json:"expense_change"`
}

func emptyFinancialReport(farmID string, r analytics.DateRange) *FinancialReport {
	return &FinancialReport{
		FarmID:           farmID,
		Range:            rangeInfo(r),
		FinancialSummary: analytics.Financials(0, 0, nil, nil),
		RevenueTrend:     analytics.Trend(0, 0),
	}
}

// FinancialReport derives revenue, expense and profit figures for the farm
// and window.
func (s *Service) FinancialReport(ctx context.Context, farmID string, q Query) (*FinancialReport, error) {
	r, err := s.resolveRange(q)
	if err != nil {
		return nil, err
	}
	if farmID == "" {
		return emptyFinancialReport(farmID, r), nil
	}

	loader := func(ctx context.Context) (interface{}, error) {
		return s.computeFinancialReport(ctx, farmID, r)
	}

	if s.cache == nil {
		value, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		return value.(*FinancialReport), nil
	}

	key := analytics.Key("stats", "financial", farmID, r.Start.Format(dateLayout), r.End.Format(dateLayout))
	report := new(FinancialReport)
	if err := s.cache.FetchJSON(ctx, key, report, loader); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *Service) computeFinancialReport(ctx context.Context, farmID string, r analytics.DateRange) (*FinancialReport, error) {
	previous := analytics.PreviousWindow(r)

	var (
		current, prior []models.ProductionRecord
		feed, medicine []models.UsageRecord
		inventory      []models.InventoryItem
		birds          int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = s.fetcher.ProductionBetween(gctx, farmID, r.Start, r.End)
		return err
	})
	g.Go(func() error {
		var err error
		prior, err = s.fetcher.ProductionBetween(gctx, farmID, previous.Start, previous.End)
		return err
	})
	g.Go(func() error {
		var err error
		feed, err = s.fetcher.FeedUsageBetween(gctx, farmID, r.Start, r.End)
		return err
	})
	g.Go(func() error {
		var err error
		medicine, err = s.fetcher.MedicineUsageBetween(gctx, farmID, r.Start, r.End)
		return err
	})
	g.Go(func() error {
		var err error
		inventory, err = s.fetcher.InventoryByFarm(gctx, farmID)
		return err
	})
	g.Go(func() error {
		var err error
		birds, err = s.fetcher.BirdCount(gctx, farmID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch financial records: %w", err)
	}

	index := make(map[string]models.InventoryItem, len(inventory))
	for _, item := range inventory {
		index[item.ID] = item
	}

	totalEggs := analytics.AggregateProductionByDay(current).Total
	priorEggs := analytics.AggregateProductionByDay(prior).Total

	usage := []analytics.CategoryUsage{
		{Category: "feed", Records: feed},
		{Category: "medicine", Records: medicine},
	}
	financials := analytics.Financials(totalEggs, s.unitPrice, usage, index)

	report := &FinancialReport{
		FarmID:           farmID,
		Range:            rangeInfo(r),
		FinancialSummary: financials,
		TotalEggs:        totalEggs,
		TotalBirds:       birds,
		CostPerBird:      analytics.CostPerBird(financials.Expense, birds),
		InventoryValue:   analytics.InventoryHoldingValue(inventory),
		RevenueTrend:     analytics.Trend(financials.Revenue, analytics.Round2(priorEggs*s.unitPrice)),
	}
	return report, nil
}

// Overview is the compact dashboard card combining production and money
// figures.
type Overview struct {
	FarmID           string                `json:"farm_id"`
	Range            RangeInfo             `json:"range"`
	TotalEggs        float64               `json:"total_eggs"`
	ProductionTrend  analytics.TrendResult `json:"production_trend"`
	ConsistencyScore float64               `json:"consistency_score"`
	PeakDay          *analytics.DayValue   `json:"peak_day"`
	Revenue          float64               `json:"revenue"`
	Expense          float64               `json:"expense"`
	Profit           float64               `json:"profit"`
	Margin           float64               `json:"margin"`
}

// DashboardOverview composes the production and financial summaries into the
// dashboard card. Both underlying summaries go through the cache when one is
// configured.
func (s *Service) DashboardOverview(ctx context.Context, farmID string, q Query) (*Overview, error) {
	production, err := s.ProductionSummary(ctx, farmID, q)
	if err != nil {
		return nil, err
	}
	financial, err := s.FinancialReport(ctx, farmID, q)
	if err != nil {
		return nil, err
	}

	return &Overview{
		FarmID:           farmID,
		Range:            production.Range,
		TotalEggs:        production.TotalEggs,
		ProductionTrend:  production.Trend,
		ConsistencyScore: production.ConsistencyScore,
		PeakDay:          production.PeakDay,
		Revenue:          financial.Revenue,
		Expense:          financial.Expense,
		Profit:           financial.Profit,
		Margin:           financial.Margin,
	}, nil
}
