package models

import "time"

// DailySnapshot represents the aggregated daily figures persisted by the scheduler.
type DailySnapshot struct {
	Date          time.Time `bson:"date" json:"date"`
	FarmID        string    `bson:"farm_id" json:"farm_id"`
	EggsCollected float64   `bson:"eggs_collected" json:"eggs_collected"`
	FeedCost      float64   `bson:"feed_cost" json:"feed_cost"`
	MedicineCost  float64   `bson:"medicine_cost" json:"medicine_cost"`
	Revenue       float64   `bson:"revenue" json:"revenue"`
	Expenses      float64   `bson:"expenses" json:"expenses"`
	Profit        float64   `bson:"profit" json:"profit"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
}
