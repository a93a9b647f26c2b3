package analytics

import (
	"math"

	"github.com/mamadbah2/volaille/internal/domain/models"
)

// Aggregate is the result of reducing a record set: a grand total plus
// per-dimension sums. Keys preserves first-seen order so that iteration is
// deterministic for a given fetch order.
type Aggregate struct {
	Total  float64
	Count  int
	Keys   []string
	Sums   map[string]float64
	Counts map[string]int
}

// Value returns the summed amount for a dimension key, zero when absent.
func (a Aggregate) Value(key string) float64 {
	return a.Sums[key]
}

// AggregateBy reduces records into per-dimension sums. The key function may
// reject a record (ok=false) to drop it from the grouping while it still
// counts toward nothing; the amount function supplies the summed quantity.
func AggregateBy[T any](records []T, key func(T) (string, bool), amount func(T) float64) Aggregate {
	agg := Aggregate{
		Sums:   make(map[string]float64),
		Counts: make(map[string]int),
	}
	for _, record := range records {
		qty := amount(record)
		if math.IsNaN(qty) {
			qty = 0
		}
		k, ok := key(record)
		if !ok {
			continue
		}
		if _, seen := agg.Sums[k]; !seen {
			agg.Keys = append(agg.Keys, k)
		}
		agg.Sums[k] += qty
		agg.Counts[k]++
		agg.Total += qty
		agg.Count++
	}
	return agg
}

// ByGrade extracts the egg grade dimension. Records carrying an unknown grade
// are grouped under grade A rather than dropped.
func ByGrade(r models.ProductionRecord) (string, bool) {
	switch r.Grade {
	case models.GradeAA, models.GradeA, models.GradeB, models.GradeC:
		return string(r.Grade), true
	default:
		return string(models.GradeA), true
	}
}

// ByShift extracts the shift dimension. Unknown shifts are dropped from the
// grouping since there is no sensible default shift.
func ByShift(r models.ProductionRecord) (string, bool) {
	switch r.Shift {
	case models.ShiftMorning, models.ShiftAfternoon, models.ShiftEvening:
		return string(r.Shift), true
	default:
		return "", false
	}
}

// ByPen extracts the pen dimension.
func ByPen(r models.ProductionRecord) (string, bool) {
	return r.Pen, true
}

// ByCollector extracts the collector dimension.
func ByCollector(r models.ProductionRecord) (string, bool) {
	return r.Collector, true
}

func productionQuantity(r models.ProductionRecord) float64 {
	if r.Quantity < 0 {
		return 0
	}
	return float64(r.Quantity)
}

// AggregateProduction groups production records along the given dimension.
func AggregateProduction(records []models.ProductionRecord, key func(models.ProductionRecord) (string, bool)) Aggregate {
	return AggregateBy(records, key, productionQuantity)
}

// AggregateProductionByDay groups production quantities by calendar day.
// Keys are ISO YYYY-MM-DD strings.
func AggregateProductionByDay(records []models.ProductionRecord) Aggregate {
	return AggregateBy(records, func(r models.ProductionRecord) (string, bool) {
		return r.Date.Format(dateLayout), true
	}, productionQuantity)
}

// AggregateUsageByDay groups usage quantities by calendar day.
func AggregateUsageByDay(records []models.UsageRecord) Aggregate {
	return AggregateBy(records, func(r models.UsageRecord) (string, bool) {
		return r.Date.Format(dateLayout), true
	}, func(r models.UsageRecord) float64 { return r.QuantityUsed })
}

// DimensionShare is one row of a percentage breakdown.
type DimensionShare struct {
	Key        string  `json:"key"`
	Count      int     `json:"count"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// PercentageBreakdown expands an aggregate into per-key shares of the total.
// Shares are zero when the total is zero; rows follow the aggregate key order.
func PercentageBreakdown(a Aggregate) []DimensionShare {
	shares := make([]DimensionShare, 0, len(a.Keys))
	for _, key := range a.Keys {
		amount := a.Sums[key]
		var pct float64
		if a.Total > 0 {
			pct = Round2(amount / a.Total * 100)
		}
		shares = append(shares, DimensionShare{
			Key:        key,
			Count:      a.Counts[key],
			Amount:     amount,
			Percentage: pct,
		})
	}
	return shares
}

// Round2 rounds half away from zero to two decimal places. All money and
// percentage figures leaving the engine pass through it.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
