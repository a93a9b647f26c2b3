package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/volaille/internal/domain/models"
)

func day(value string) time.Time {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAggregateProductionByDay(t *testing.T) {
	records := []models.ProductionRecord{
		{Date: day("2024-01-01"), Quantity: 100, Grade: models.GradeA},
		{Date: day("2024-01-02"), Quantity: 50, Grade: models.GradeB},
	}

	agg := AggregateProductionByDay(records)

	assert.Equal(t, 150.0, agg.Total)
	assert.Equal(t, 2, agg.Count)
	assert.Equal(t, []string{"2024-01-01", "2024-01-02"}, agg.Keys)
	assert.Equal(t, 100.0, agg.Value("2024-01-01"))
	assert.Equal(t, 50.0, agg.Value("2024-01-02"))
}

func TestAggregateKeysKeepFirstSeenOrder(t *testing.T) {
	records := []models.ProductionRecord{
		{Date: day("2024-01-01"), Quantity: 10, Pen: "B"},
		{Date: day("2024-01-01"), Quantity: 20, Pen: "A"},
		{Date: day("2024-01-02"), Quantity: 30, Pen: "B"},
	}

	agg := AggregateProduction(records, ByPen)

	assert.Equal(t, []string{"B", "A"}, agg.Keys)
	assert.Equal(t, 40.0, agg.Value("B"))
	assert.Equal(t, 2, agg.Counts["B"])
}

func TestAggregateEmptyInput(t *testing.T) {
	agg := AggregateProduction(nil, ByGrade)

	assert.Zero(t, agg.Total)
	assert.Zero(t, agg.Count)
	assert.Empty(t, agg.Keys)
	assert.Empty(t, PercentageBreakdown(agg))
}

func TestByGradeFallsBackToA(t *testing.T) {
	records := []models.ProductionRecord{
		{Quantity: 10, Grade: "premium"},
		{Quantity: 5, Grade: models.GradeB},
	}

	agg := AggregateProduction(records, ByGrade)

	assert.Equal(t, 10.0, agg.Value("A"))
	assert.Equal(t, 5.0, agg.Value("B"))
}

func TestByShiftDropsUnknown(t *testing.T) {
	records := []models.ProductionRecord{
		{Quantity: 10, Shift: models.ShiftMorning},
		{Quantity: 7, Shift: "night"},
	}

	agg := AggregateProduction(records, ByShift)

	assert.Equal(t, 10.0, agg.Total)
	assert.Equal(t, []string{"morning"}, agg.Keys)
}

func TestPercentageBreakdownSumsToHundred(t *testing.T) {
	records := []models.ProductionRecord{
		{Quantity: 33, Grade: models.GradeAA},
		{Quantity: 33, Grade: models.GradeA},
		{Quantity: 34, Grade: models.GradeB},
	}

	shares := PercentageBreakdown(AggregateProduction(records, ByGrade))
	require.Len(t, shares, 3)

	var sum float64
	for _, share := range shares {
		sum += share.Percentage
	}
	assert.InDelta(t, 100, sum, 0.5)
}

func TestPercentageBreakdownZeroTotal(t *testing.T) {
	records := []models.ProductionRecord{
		{Quantity: 0, Grade: models.GradeA},
	}

	shares := PercentageBreakdown(AggregateProduction(records, ByGrade))
	require.Len(t, shares, 1)
	assert.Zero(t, shares[0].Percentage)
	assert.Equal(t, 1, shares[0].Count)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 33.33, Round2(100.0/3))
	assert.Equal(t, 2.68, Round2(2.675000001))
	assert.Equal(t, -2.68, Round2(-2.675000001)) // half away from zero

	for _, x := range []float64{0, 1.005, 99.994999, -12.345, 66.666666} {
		assert.Equal(t, Round2(x), Round2(Round2(x)))
	}
}
