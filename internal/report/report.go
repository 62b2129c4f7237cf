// Package report computes summaries over in-memory transaction
// collections. Every function is pure: no storage access, no side
// effects, and an empty input is always a valid input.
package report

import (
	"sort"
	"strings"

	"fintrack/internal/core"
)

// Summary holds the headline totals. Expenses is a magnitude; Net is
// income minus expenses.
type Summary struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Net      float64 `json:"net"`
}

// MonthBucket is one calendar month of the series, keyed "YYYY-MM".
// Both totals are present even when one side has no entries.
type MonthBucket struct {
	Month   string  `json:"month"`
	Income  float64 `json:"income"`
	Expense float64 `json:"expense"`
}

// CategoryAmount is one ranked entry of a category breakdown.
type CategoryAmount struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// Total sums the amounts of all transactions of the given type.
func Total(txs []core.Transaction, typ core.Type) float64 {
	var sum float64
	for _, tx := range txs {
		if tx.Type == typ {
			sum += tx.Amount
		}
	}
	return sum
}

// Summarize computes income, expenses, and net over the collection.
func Summarize(txs []core.Transaction) Summary {
	income := Total(txs, core.Income)
	expenses := Total(txs, core.Expense)
	return Summary{
		Income:   income,
		Expenses: expenses,
		Net:      income - expenses,
	}
}

// ByCategory groups transactions of the given type by category,
// summing amounts. Transactions without a category land under the
// empty-string key; they are never dropped.
func ByCategory(txs []core.Transaction, typ core.Type) map[string]float64 {
	out := make(map[string]float64)
	for _, tx := range txs {
		if tx.Type == typ {
			out[tx.Category] += tx.Amount
		}
	}
	return out
}

// MonthlySeries buckets the collection by calendar month, in
// chronological order. A month with entries of only one type reports 0
// for the other.
func MonthlySeries(txs []core.Transaction) []MonthBucket {
	byMonth := make(map[string]*MonthBucket)
	for _, tx := range txs {
		key := tx.Date.MonthKey()
		bucket, ok := byMonth[key]
		if !ok {
			bucket = &MonthBucket{Month: key}
			byMonth[key] = bucket
		}
		switch tx.Type {
		case core.Income:
			bucket.Income += tx.Amount
		case core.Expense:
			bucket.Expense += tx.Amount
		}
	}

	out := make([]MonthBucket, 0, len(byMonth))
	for _, bucket := range byMonth {
		out = append(out, *bucket)
	}
	// "YYYY-MM" sorts chronologically as text.
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// TopCategories ranks categories of the given type by summed amount,
// descending, truncated to limit. Ties break on category name
// ascending so the output is deterministic.
func TopCategories(txs []core.Transaction, typ core.Type, limit int) []CategoryAmount {
	grouped := ByCategory(txs, typ)

	out := make([]CategoryAmount, 0, len(grouped))
	for category, amount := range grouped {
		out = append(out, CategoryAmount{Category: category, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount != out[j].Amount {
			return out[i].Amount > out[j].Amount
		}
		return out[i].Category < out[j].Category
	})

	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// BudgetUtilization reports spend/limit per configured category,
// clamped to 1.0: over-budget shows as fully saturated, not >100%.
// Spend matching is case-insensitive on the category name.
func BudgetUtilization(txs []core.Transaction, budgets map[string]float64) map[string]float64 {
	spent := make(map[string]float64)
	for _, tx := range txs {
		if tx.Type == core.Expense {
			spent[strings.ToLower(tx.Category)] += tx.Amount
		}
	}

	out := make(map[string]float64, len(budgets))
	for category, limit := range budgets {
		if limit <= 0 {
			out[category] = 0
			continue
		}
		ratio := spent[strings.ToLower(category)] / limit
		if ratio > 1 {
			ratio = 1
		}
		out[category] = ratio
	}
	return out
}
