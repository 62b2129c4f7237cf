package http

import (
	"fmt"
	"net/http"
	"sort"

	"fintrack/internal/core"
	applog "fintrack/internal/log"
	"fintrack/internal/report"
)

type budgetRow struct {
	Category string
	Percent  int
}

type dashboardData struct {
	Summary      report.Summary
	Months       []report.MonthBucket
	TopExpenses  []report.CategoryAmount
	Budgets      []budgetRow
	Transactions []transactionResponse
	Today        string
}

// handleDashboard renders the single-page dashboard from the latest
// ledger state. All derived numbers come from the report package; the
// template only formats.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		s.logger.ErrorContext(r.Context(), "Templates not loaded", applog.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	txs, err := s.store.ListAll(r.Context())
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Dashboard load error", applog.FieldError, err)
		http.Error(w, "storage error", http.StatusInternalServerError)
		return
	}

	data := dashboardData{
		Summary:     report.Summarize(txs),
		Months:      report.MonthlySeries(txs),
		TopExpenses: report.TopCategories(txs, core.Expense, 5),
		Today:       core.Today().String(),
	}

	utilization := report.BudgetUtilization(txs, s.budgets)
	for category, ratio := range utilization {
		data.Budgets = append(data.Budgets, budgetRow{
			Category: category,
			Percent:  int(ratio * 100),
		})
	}
	sort.Slice(data.Budgets, func(i, j int) bool {
		return data.Budgets[i].Category < data.Budgets[j].Category
	})

	for _, tx := range txs {
		data.Transactions = append(data.Transactions, toResponse(tx))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		s.logger.ErrorContext(r.Context(), "Dashboard template execution failed",
			applog.FieldError, err, "template", "index.html")
		http.Error(w, fmt.Sprintf("render dashboard: %v", err), http.StatusInternalServerError)
	}
}
