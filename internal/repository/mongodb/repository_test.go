package mongodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/volaille/internal/domain/models"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestProductionDocCanonical(t *testing.T) {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		doc  productionDoc
		want int
	}{
		{"canonical field wins", productionDoc{Date: date, Quantity: intPtr(120), Collected: intPtr(80)}, 120},
		{"legacy collected alias", productionDoc{Date: date, Collected: intPtr(80)}, 80},
		{"neither present", productionDoc{Date: date}, 0},
		{"negative clamped", productionDoc{Date: date, Quantity: intPtr(-5)}, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			record := tc.doc.canonical()
			assert.Equal(t, tc.want, record.Quantity)
			assert.Equal(t, date, record.Date)
		})
	}
}

func TestUsageDocCanonical(t *testing.T) {
	doc := usageDoc{ItemID: "feed-1", Used: floatPtr(12.5), FarmID: "farm-1"}
	record := doc.canonical()
	assert.Equal(t, models.UsageRecord{ItemID: "feed-1", QuantityUsed: 12.5, FarmID: "farm-1"}, record)

	both := usageDoc{QuantityUsed: floatPtr(3), Used: floatPtr(9)}
	assert.Equal(t, 3.0, both.canonical().QuantityUsed)

	negative := usageDoc{QuantityUsed: floatPtr(-1)}
	assert.Equal(t, 0.0, negative.canonical().QuantityUsed)
}
