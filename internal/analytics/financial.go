package analytics

import "github.com/mamadbah2/volaille/internal/domain/models"

// CategoryUsage holds the usage records belonging to one expense category
// (feed, medicine, ...). Categories keep the order they are supplied in.
type CategoryUsage struct {
	Category string
	Records  []models.UsageRecord
}

// CategoryExpense is one row of the expense breakdown.
type CategoryExpense struct {
	Category   string  `json:"category"`
	Amount     float64 `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// FinancialSummary carries the derived money figures for a period.
//
// LaborCost and UtilitiesCost are acknowledged stubs carried over from the
// bookkeeping workflow: the farm does not log either yet, so they always
// report zero instead of guessing.
type FinancialSummary struct {
	Revenue             float64           `json:"revenue"`
	Expense             float64           `json:"expense"`
	Profit              float64           `json:"profit"`
	Margin              float64           `json:"margin"`
	CostPerUnitProduced float64           `json:"cost_per_unit_produced"`
	LaborCost           float64           `json:"labor_cost"`
	UtilitiesCost       float64           `json:"utilities_cost"`
	ByCategory          []CategoryExpense `json:"by_category"`
}

// Financials derives revenue, expense and profit figures from a produced
// quantity, the configured unit price and priced usage records. Usage whose
// item is missing from the index contributes zero expense rather than failing.
func Financials(quantity, unitPrice float64, usage []CategoryUsage, index map[string]models.InventoryItem) FinancialSummary {
	revenue := Round2(quantity * unitPrice)

	var totalExpense float64
	amounts := make([]float64, len(usage))
	for i, cat := range usage {
		var amount float64
		for _, record := range cat.Records {
			item, ok := index[record.ItemID]
			if !ok {
				continue
			}
			amount += record.QuantityUsed * item.CostPerUnit
		}
		amounts[i] = amount
		totalExpense += amount
	}
	totalExpense = Round2(totalExpense)

	// Zero-amount categories are dropped from the breakdown.
	byCategory := make([]CategoryExpense, 0, len(usage))
	for i, cat := range usage {
		if amounts[i] == 0 {
			continue
		}
		var pct float64
		if totalExpense > 0 {
			pct = Round2(amounts[i] / totalExpense * 100)
		}
		byCategory = append(byCategory, CategoryExpense{
			Category:   cat.Category,
			Amount:     Round2(amounts[i]),
			Percentage: pct,
		})
	}

	profit := Round2(revenue - totalExpense)

	var margin float64
	if revenue > 0 {
		margin = Round2(profit / revenue * 100)
	}

	var costPerUnit float64
	if quantity > 0 {
		costPerUnit = Round2(totalExpense / quantity)
	}

	return FinancialSummary{
		Revenue:             revenue,
		Expense:             totalExpense,
		Profit:              profit,
		Margin:              margin,
		CostPerUnitProduced: costPerUnit,
		ByCategory:          byCategory,
	}
}

// CostPerBird spreads an expense over the flock, zero when the flock size is
// unknown.
func CostPerBird(expense float64, totalBirds int) float64 {
	if totalBirds <= 0 {
		return 0
	}
	return Round2(expense / float64(totalBirds))
}

// InventoryHoldingValue sums the static stock value of inventory items.
func InventoryHoldingValue(items []models.InventoryItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Stock * item.CostPerUnit
	}
	return Round2(total)
}
