package report

import (
	"testing"

	"fintrack/internal/core"
)

func tx(typ core.Type, amount float64, category string, year, month, day int) core.Transaction {
	return core.Transaction{
		Date:     core.NewDate(year, month, day),
		Type:     typ,
		Amount:   amount,
		Category: category,
	}
}

func TestSummarize(t *testing.T) {
	txs := []core.Transaction{
		tx(core.Income, 1000, "salary", 2024, 1, 5),
		tx(core.Expense, 200, "food", 2024, 1, 10),
		tx(core.Expense, 50, "food", 2024, 2, 1),
	}

	got := Summarize(txs)
	if got.Income != 1000 || got.Expenses != 250 || got.Net != 750 {
		t.Errorf("Summarize() = %+v, want income=1000 expenses=250 net=750", got)
	}

	// Income + expense totals must partition the full sum.
	var all float64
	for _, transaction := range txs {
		all += transaction.Amount
	}
	if got.Income+got.Expenses != all {
		t.Errorf("totals do not partition: %v + %v != %v", got.Income, got.Expenses, all)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	got := Summarize(nil)
	if got.Income != 0 || got.Expenses != 0 || got.Net != 0 {
		t.Errorf("Summarize(nil) = %+v, want zeros", got)
	}
}

func TestByCategory(t *testing.T) {
	t.Run("empty collection", func(t *testing.T) {
		got := ByCategory(nil, core.Expense)
		if len(got) != 0 {
			t.Errorf("ByCategory(nil) = %v, want empty map", got)
		}
	})

	t.Run("sums within category", func(t *testing.T) {
		txs := []core.Transaction{
			tx(core.Expense, 50, "food", 2024, 1, 1),
			tx(core.Expense, 30, "food", 2024, 1, 2),
		}
		got := ByCategory(txs, core.Expense)
		if len(got) != 1 || got["food"] != 80 {
			t.Errorf("ByCategory() = %v, want map[food:80]", got)
		}
	})

	t.Run("empty category keeps its own group", func(t *testing.T) {
		txs := []core.Transaction{
			tx(core.Expense, 10, "", 2024, 1, 1),
			tx(core.Expense, 5, "misc", 2024, 1, 2),
		}
		got := ByCategory(txs, core.Expense)
		if got[""] != 10 {
			t.Errorf("empty-category group = %v, want 10", got[""])
		}
	})

	t.Run("filters by type", func(t *testing.T) {
		txs := []core.Transaction{
			tx(core.Income, 100, "salary", 2024, 1, 1),
			tx(core.Expense, 40, "food", 2024, 1, 2),
		}
		got := ByCategory(txs, core.Income)
		if len(got) != 1 || got["salary"] != 100 {
			t.Errorf("ByCategory(income) = %v", got)
		}
	})
}

func TestMonthlySeries(t *testing.T) {
	txs := []core.Transaction{
		tx(core.Income, 1000, "salary", 2024, 1, 5),
		tx(core.Expense, 200, "food", 2024, 1, 10),
		tx(core.Expense, 50, "food", 2024, 2, 1),
	}

	got := MonthlySeries(txs)
	want := []MonthBucket{
		{Month: "2024-01", Income: 1000, Expense: 200},
		{Month: "2024-02", Income: 0, Expense: 50},
	}

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("bucket %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestMonthlySeriesChronologicalAcrossYears(t *testing.T) {
	txs := []core.Transaction{
		tx(core.Expense, 1, "a", 2024, 2, 1),
		tx(core.Expense, 2, "b", 2023, 12, 1),
		tx(core.Income, 3, "c", 2024, 1, 1),
	}

	got := MonthlySeries(txs)
	months := []string{"2023-12", "2024-01", "2024-02"}
	for i, m := range months {
		if got[i].Month != m {
			t.Errorf("position %d: month = %q, want %q", i, got[i].Month, m)
		}
	}
}

func TestMonthlySeriesEmpty(t *testing.T) {
	if got := MonthlySeries(nil); len(got) != 0 {
		t.Errorf("MonthlySeries(nil) = %v, want empty", got)
	}
}

func TestTopCategories(t *testing.T) {
	txs := []core.Transaction{
		tx(core.Expense, 300, "rent", 2024, 1, 1),
		tx(core.Expense, 80, "food", 2024, 1, 2),
		tx(core.Expense, 80, "books", 2024, 1, 3),
		tx(core.Expense, 20, "misc", 2024, 1, 4),
		tx(core.Income, 9999, "salary", 2024, 1, 5),
	}

	got := TopCategories(txs, core.Expense, 3)
	want := []CategoryAmount{
		{Category: "rent", Amount: 300},
		{Category: "books", Amount: 80}, // ties break on name ascending
		{Category: "food", Amount: 80},
	}

	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("position %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestTopCategoriesLimitLargerThanSet(t *testing.T) {
	txs := []core.Transaction{tx(core.Expense, 10, "food", 2024, 1, 1)}
	if got := TopCategories(txs, core.Expense, 5); len(got) != 1 {
		t.Errorf("len = %d, want 1", len(got))
	}
}

func TestBudgetUtilization(t *testing.T) {
	t.Run("over budget clamps to 1.0", func(t *testing.T) {
		txs := []core.Transaction{tx(core.Expense, 150, "food", 2024, 1, 1)}
		got := BudgetUtilization(txs, map[string]float64{"food": 100})
		if got["food"] != 1.0 {
			t.Errorf("ratio = %v, want 1.0 (clamped)", got["food"])
		}
	})

	t.Run("partial utilization", func(t *testing.T) {
		txs := []core.Transaction{tx(core.Expense, 25, "food", 2024, 1, 1)}
		got := BudgetUtilization(txs, map[string]float64{"food": 100})
		if got["food"] != 0.25 {
			t.Errorf("ratio = %v, want 0.25", got["food"])
		}
	})

	t.Run("case-insensitive category match", func(t *testing.T) {
		txs := []core.Transaction{tx(core.Expense, 50, "Food", 2024, 1, 1)}
		got := BudgetUtilization(txs, map[string]float64{"food": 100})
		if got["food"] != 0.5 {
			t.Errorf("ratio = %v, want 0.5", got["food"])
		}
	})

	t.Run("no spend reports zero", func(t *testing.T) {
		got := BudgetUtilization(nil, map[string]float64{"food": 100})
		if got["food"] != 0 {
			t.Errorf("ratio = %v, want 0", got["food"])
		}
	})

	t.Run("income never counts as spend", func(t *testing.T) {
		txs := []core.Transaction{tx(core.Income, 500, "food", 2024, 1, 1)}
		got := BudgetUtilization(txs, map[string]float64{"food": 100})
		if got["food"] != 0 {
			t.Errorf("ratio = %v, want 0", got["food"])
		}
	})
}
