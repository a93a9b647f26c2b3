package analytics

import "sort"

// Trend directions.
const (
	DirectionUp     = "up"
	DirectionDown   = "down"
	DirectionStable = "stable"
)

// TrendResult compares one metric across two periods of equal length.
type TrendResult struct {
	Current        float64 `json:"current"`
	Previous       float64 `json:"previous"`
	ChangeAbsolute float64 `json:"change_absolute"`
	ChangePercent  float64 `json:"change_percent"`
	Direction      string  `json:"direction"`
}

// Trend classifies the movement between a previous and a current total.
// A zero baseline with positive current reports +100% rather than an
// undefined ratio; exact equality is stable with no tolerance band.
func Trend(current, previous float64) TrendResult {
	change := current - previous
	var pct float64
	switch {
	case previous > 0:
		pct = Round2(change / previous * 100)
	case current > 0:
		pct = 100
	}

	direction := DirectionStable
	if current > previous {
		direction = DirectionUp
	} else if current < previous {
		direction = DirectionDown
	}

	return TrendResult{
		Current:        current,
		Previous:       previous,
		ChangeAbsolute: change,
		ChangePercent:  pct,
		Direction:      direction,
	}
}

// SplitHalfTrend derives a within-period direction from a daily aggregate by
// comparing the average of the first half of days against the second half.
// Days are ordered chronologically; on odd counts the first half is the
// smaller group.
func SplitHalfTrend(daily Aggregate) string {
	days := make([]string, len(daily.Keys))
	copy(days, daily.Keys)
	sort.Strings(days)

	mid := len(days) / 2
	firstAvg := average(daily, days[:mid])
	secondAvg := average(daily, days[mid:])

	switch {
	case secondAvg > firstAvg:
		return DirectionUp
	case secondAvg < firstAvg:
		return DirectionDown
	default:
		return DirectionStable
	}
}

func average(daily Aggregate, days []string) float64 {
	var sum float64
	for _, day := range days {
		sum += daily.Sums[day]
	}
	divisor := float64(len(days))
	if divisor == 0 {
		divisor = 1
	}
	return sum / divisor
}
