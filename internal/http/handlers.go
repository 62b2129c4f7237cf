package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"fintrack/internal/core"
	"fintrack/internal/csvio"
	applog "fintrack/internal/log"
	"fintrack/internal/report"
)

// transactionRequest is the JSON body for create and update. Date is
// optional on create and defaults to today.
type transactionRequest struct {
	Date     string  `json:"date"`
	Type     string  `json:"type"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Note     string  `json:"note"`
}

type transactionResponse struct {
	ID       int64   `json:"id"`
	Date     string  `json:"date"`
	Type     string  `json:"type"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Note     string  `json:"note"`
}

func toResponse(tx core.Transaction) transactionResponse {
	return transactionResponse{
		ID:       tx.ID,
		Date:     tx.Date.String(),
		Type:     string(tx.Type),
		Amount:   tx.Amount,
		Category: tx.Category,
		Note:     tx.Note,
	}
}

func (req transactionRequest) toTransaction() (core.Transaction, error) {
	tx := core.Transaction{
		Type:     core.Type(strings.ToLower(strings.TrimSpace(req.Type))),
		Amount:   req.Amount,
		Category: strings.TrimSpace(req.Category),
		Note:     strings.TrimSpace(req.Note),
	}
	if req.Date != "" {
		date, err := core.ParseDate(req.Date)
		if err != nil {
			return core.Transaction{}, err
		}
		tx.Date = date
	}
	return tx, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeCoreError maps the domain error taxonomy onto HTTP statuses:
// invalid input 422, not found 404, anything else 500.
func (s *Server) writeCoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidType),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidDate):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, core.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		s.logger.ErrorContext(r.Context(), "Storage error",
			applog.FieldError, err,
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path)
		writeError(w, http.StatusInternalServerError, "storage error")
	}
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	tx, err := req.toTransaction()
	if err != nil {
		s.writeCoreError(w, r, err)
		return
	}

	id, err := s.store.Insert(r.Context(), tx)
	if err != nil {
		s.writeCoreError(w, r, err)
		return
	}

	s.logger.InfoContext(r.Context(), "Transaction created",
		applog.FieldTxID, id,
		applog.FieldTxType, tx.Type,
		applog.FieldAmount, tx.Amount,
		applog.FieldCategory, tx.Category,
		applog.FieldOperation, applog.OpInsert)

	writeJSON(w, http.StatusCreated, map[string]any{"status": "success", "id": id})
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.store.ListAll(r.Context())
	if err != nil {
		s.writeCoreError(w, r, err)
		return
	}

	out := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toResponse(tx))
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid transaction id")
		return 0, false
	}
	return id, true
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	tx, err := req.toTransaction()
	if err != nil {
		s.writeCoreError(w, r, err)
		return
	}
	tx.ID = id

	if err := s.store.Update(r.Context(), tx); err != nil {
		s.writeCoreError(w, r, err)
		return
	}

	s.logger.InfoContext(r.Context(), "Transaction updated",
		applog.FieldTxID, id,
		applog.FieldOperation, applog.OpUpdate)

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}

	if err := s.store.Delete(r.Context(), id); err != nil {
		s.writeCoreError(w, r, err)
		return
	}

	s.logger.InfoContext(r.Context(), "Transaction deleted",
		applog.FieldTxID, id,
		applog.FieldOperation, applog.OpDelete)

	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	txs, err := s.store.ListAll(r.Context())
	if err != nil {
		s.writeCoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report.Summarize(txs))
}

// queryType reads ?type= with expense as the default.
func queryType(r *http.Request) (core.Type, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("type"))
	if raw == "" {
		return core.Expense, nil
	}
	typ := core.Type(strings.ToLower(raw))
	if !typ.Valid() {
		return "", core.ErrInvalidType
	}
	return typ, nil
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	typ, err := queryType(r)
	if err != nil {
		s.writeCoreError(w, r, err)
		return
	}

	txs, err := s.store.ListAll(r.Context())
	if err != nil {
		s.writeCoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report.ByCategory(txs, typ))
}

func (s *Server) handleMonthly(w http.ResponseWriter, r *http.Request) {
	txs, err := s.store.ListAll(r.Context())
	if err != nil {
		s.writeCoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report.MonthlySeries(txs))
}

func (s *Server) handleTopCategories(w http.ResponseWriter, r *http.Request) {
	typ, err := queryType(r)
	if err != nil {
		s.writeCoreError(w, r, err)
		return
	}

	limit := 5
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}

	txs, err := s.store.ListAll(r.Context())
	if err != nil {
		s.writeCoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report.TopCategories(txs, typ, limit))
}

func (s *Server) handleBudgets(w http.ResponseWriter, r *http.Request) {
	txs, err := s.store.ListAll(r.Context())
	if err != nil {
		s.writeCoreError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report.BudgetUtilization(txs, s.budgets))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	txs, err := s.store.ListAll(r.Context())
	if err != nil {
		s.writeCoreError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions_export.csv"`)
	if err := csvio.Write(w, txs); err != nil {
		s.logger.ErrorContext(r.Context(), "Export failed",
			applog.FieldError, err,
			applog.FieldOperation, applog.OpExport)
	}
}

// handleImport accepts a multipart upload (field "file") or a raw CSV
// body and appends it to the ledger, all-or-nothing.
func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	body := r.Body
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		file, _, err := r.FormFile("file")
		if err != nil {
			writeError(w, http.StatusBadRequest, "missing upload field 'file'")
			return
		}
		defer file.Close()
		body = file
	}

	imp := csvio.NewImporter(s.store)
	n, err := imp.ImportReader(r.Context(), body)
	if err != nil {
		var schemaErr *csvio.SchemaError
		if errors.As(err, &schemaErr) {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
				"error":   "missing required columns",
				"missing": schemaErr.Missing,
			})
			return
		}
		switch {
		case errors.Is(err, core.ErrInvalidType),
			errors.Is(err, core.ErrInvalidAmount),
			errors.Is(err, core.ErrInvalidDate):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			s.writeCoreError(w, r, err)
		}
		return
	}

	s.logger.InfoContext(r.Context(), "Import completed",
		applog.FieldRows, n,
		applog.FieldOperation, applog.OpImport)

	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "imported": n})
}
