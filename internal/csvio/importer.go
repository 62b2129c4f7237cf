package csvio

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"fintrack/internal/core"
)

// BatchInserter is the slice of the ledger store the importer needs.
type BatchInserter interface {
	InsertBatch(ctx context.Context, txs []core.Transaction) error
}

// Importer appends externally supplied transaction batches to the
// ledger, all-or-nothing.
type Importer struct {
	store BatchInserter
}

func NewImporter(store BatchInserter) *Importer {
	return &Importer{store: store}
}

// ImportBatch validates every row before any insert: a missing column
// surfaces as *SchemaError, and a malformed type, amount, or date in
// any row rejects the whole batch. Valid batches are written in a
// single SQL transaction.
func (imp *Importer) ImportBatch(ctx context.Context, rows []Row) (int, error) {
	txs := make([]core.Transaction, 0, len(rows))
	for i, row := range rows {
		tx, err := row.ToTransaction()
		if err != nil {
			return 0, fmt.Errorf("row %d: %w", i+2, err) // +2 accounts for the header line
		}
		txs = append(txs, tx)
	}

	if len(txs) == 0 {
		slog.InfoContext(ctx, "Import batch empty, nothing to write")
		return 0, nil
	}

	if err := imp.store.InsertBatch(ctx, txs); err != nil {
		return 0, fmt.Errorf("import batch: %w", err)
	}

	slog.InfoContext(ctx, "Import batch written", "rows", len(txs))
	return len(txs), nil
}

// ImportReader parses a CSV stream and imports it in one step.
func (imp *Importer) ImportReader(ctx context.Context, r io.Reader) (int, error) {
	rows, err := Parse(r)
	if err != nil {
		return 0, err
	}
	return imp.ImportBatch(ctx, rows)
}
