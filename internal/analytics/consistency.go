package analytics

import (
	"math"
	"sort"
)

// DayValue pairs a calendar day with its total.
type DayValue struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// ConsistencyScore rates the uniformity of daily output on a 0-100 scale from
// the coefficient of variation of the daily totals. Zero variance scores 100;
// a zero or empty mean scores 0.
func ConsistencyScore(daily Aggregate) float64 {
	mean, stddev := meanStddev(daily)
	if mean <= 0 {
		return 0
	}
	score := 100 - (stddev/mean)*100
	if score < 0 {
		return 0
	}
	return Round2(score)
}

// PeakDay returns the highest-producing day, nil for an empty aggregate.
// Ties keep the first occurrence in key order.
func PeakDay(daily Aggregate) *DayValue {
	var peak *DayValue
	for _, day := range daily.Keys {
		value := daily.Sums[day]
		if peak == nil || value > peak.Value {
			peak = &DayValue{Date: day, Value: value}
		}
	}
	return peak
}

// LowDays lists the days producing under 70% of the mean, lowest first,
// capped at five entries.
func LowDays(daily Aggregate) []DayValue {
	mean, _ := meanStddev(daily)
	threshold := mean * 0.7

	low := make([]DayValue, 0)
	for _, day := range daily.Keys {
		if value := daily.Sums[day]; value < threshold {
			low = append(low, DayValue{Date: day, Value: value})
		}
	}

	sort.SliceStable(low, func(i, j int) bool { return low[i].Value < low[j].Value })
	if len(low) > 5 {
		low = low[:5]
	}
	return low
}

// meanStddev computes the mean and population standard deviation of the
// daily totals.
func meanStddev(daily Aggregate) (float64, float64) {
	n := float64(len(daily.Keys))
	if n == 0 {
		return 0, 0
	}

	var sum float64
	for _, day := range daily.Keys {
		sum += daily.Sums[day]
	}
	mean := sum / n

	var variance float64
	for _, day := range daily.Keys {
		diff := daily.Sums[day] - mean
		variance += diff * diff
	}
	variance /= n

	return mean, math.Sqrt(variance)
}
