package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrend(t *testing.T) {
	tests := []struct {
		name      string
		current   float64
		previous  float64
		pct       float64
		direction string
	}{
		{"growth", 150, 100, 50, DirectionUp},
		{"decline", 75, 100, -25, DirectionDown},
		{"flat", 100, 100, 0, DirectionStable},
		{"zero baseline with output", 50, 0, 100, DirectionUp},
		{"zero baseline no output", 0, 0, 0, DirectionStable},
		{"fractional", 110, 30, 266.67, DirectionUp},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := Trend(tc.current, tc.previous)
			assert.Equal(t, tc.current-tc.previous, result.ChangeAbsolute)
			assert.Equal(t, tc.pct, result.ChangePercent)
			assert.Equal(t, tc.direction, result.Direction)
		})
	}
}

func dailyAggregate(values map[string]float64, order []string) Aggregate {
	agg := Aggregate{Sums: make(map[string]float64), Counts: make(map[string]int)}
	for _, day := range order {
		agg.Keys = append(agg.Keys, day)
		agg.Sums[day] = values[day]
		agg.Counts[day] = 1
		agg.Total += values[day]
		agg.Count++
	}
	return agg
}

func TestSplitHalfTrend(t *testing.T) {
	tests := []struct {
		name      string
		values    map[string]float64
		direction string
	}{
		{
			name:      "rising week",
			values:    map[string]float64{"2024-01-01": 10, "2024-01-02": 12, "2024-01-03": 30, "2024-01-04": 40},
			direction: DirectionUp,
		},
		{
			name:      "falling week",
			values:    map[string]float64{"2024-01-01": 50, "2024-01-02": 40, "2024-01-03": 10, "2024-01-04": 5},
			direction: DirectionDown,
		},
		{
			// Odd count: first half is [0,mid) with one day, second half two days.
			name:      "odd count smaller first half",
			values:    map[string]float64{"2024-01-01": 20, "2024-01-02": 10, "2024-01-03": 10},
			direction: DirectionDown,
		},
		{
			name:      "empty series",
			values:    map[string]float64{},
			direction: DirectionStable,
		},
		{
			name:      "single day",
			values:    map[string]float64{"2024-01-01": 25},
			direction: DirectionUp,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			order := make([]string, 0, len(tc.values))
			for day := range tc.values {
				order = append(order, day)
			}
			agg := dailyAggregate(tc.values, order)
			assert.Equal(t, tc.direction, SplitHalfTrend(agg))
		})
	}
}
