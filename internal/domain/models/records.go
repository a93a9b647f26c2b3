package models

import "time"

// Shift identifies the collection shift of a production record.
type Shift string

const (
	ShiftMorning   Shift = "morning"
	ShiftAfternoon Shift = "afternoon"
	ShiftEvening   Shift = "evening"
)

// Grade identifies the commercial egg grade.
type Grade string

const (
	GradeAA Grade = "AA"
	GradeA  Grade = "A"
	GradeB  Grade = "B"
	GradeC  Grade = "C"
)

// ProductionRecord captures one egg collection entry.
type ProductionRecord struct {
	Date      time.Time `bson:"date" json:"date"`
	Shift     Shift     `bson:"shift" json:"shift"`
	Pen       string    `bson:"pen" json:"pen"`
	Quantity  int       `bson:"quantity" json:"quantity"`
	Grade     Grade     `bson:"grade" json:"grade"`
	Collector string    `bson:"collector" json:"collector"`
	FarmID    string    `bson:"farm_id" json:"farm_id"`
}

// UsageRecord captures consumption of a stocked item (feed or medicine).
type UsageRecord struct {
	Date         time.Time `bson:"date" json:"date"`
	ItemID       string    `bson:"item_id" json:"item_id"`
	QuantityUsed float64   `bson:"quantity_used" json:"quantity_used"`
	FarmID       string    `bson:"farm_id" json:"farm_id"`
}

// InventoryItem describes a stocked item priced per unit.
type InventoryItem struct {
	ID          string  `bson:"_id" json:"id"`
	Name        string  `bson:"name" json:"name"`
	Category    string  `bson:"category" json:"category"`
	CostPerUnit float64 `bson:"cost_per_unit" json:"cost_per_unit"`
	Stock       float64 `bson:"stock" json:"stock"`
	FarmID      string  `bson:"farm_id" json:"farm_id"`
}
