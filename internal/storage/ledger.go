package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

// Ledger is the SQLite-backed transaction store. It owns every
// lifecycle transition of persisted transactions; no other component
// writes to the table directly.
type Ledger struct {
	db *sql.DB
}

// Open creates the database file if needed, runs migrations, and
// returns a ready-to-use Ledger.
func Open(dbPath string) (*Ledger, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &Ledger{db: db}, nil
}

func (l *Ledger) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// Insert persists a new transaction and returns its assigned id. The
// date defaults to today when the caller leaves it zero. Each call
// commits before returning.
func (l *Ledger) Insert(ctx context.Context, tx core.Transaction) (int64, error) {
	if tx.Date.IsZero() {
		tx.Date = core.Today()
	}
	if err := tx.Validate(); err != nil {
		return 0, err
	}

	res, err := l.db.ExecContext(ctx,
		`INSERT INTO transactions (date, type, amount, category, note) VALUES (?, ?, ?, ?, ?)`,
		tx.Date.String(), string(tx.Type), tx.Amount, tx.Category, tx.Note,
	)
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted id: %w", err)
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", id,
		"type", tx.Type,
		"amount", tx.Amount,
		"date", tx.Date.String())

	return id, nil
}

// Update replaces all mutable fields of the transaction identified by
// tx.ID. Returns core.ErrNotFound when no such row exists.
func (l *Ledger) Update(ctx context.Context, tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}

	res, err := l.db.ExecContext(ctx,
		`UPDATE transactions SET date = ?, type = ?, amount = ?, category = ?, note = ? WHERE id = ?`,
		tx.Date.String(), string(tx.Type), tx.Amount, tx.Category, tx.Note, tx.ID,
	)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read affected rows: %w", err)
	}
	if affected == 0 {
		return core.ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction updated", "id", tx.ID)
	return nil
}

// Delete removes the transaction identified by id. Returns
// core.ErrNotFound when no such row exists; the store is never altered
// in that case. Ids are never reused (AUTOINCREMENT).
func (l *Ledger) Delete(ctx context.Context, id int64) error {
	res, err := l.db.ExecContext(ctx, `DELETE FROM transactions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("read affected rows: %w", err)
	}
	if affected == 0 {
		return core.ErrNotFound
	}

	slog.InfoContext(ctx, "Transaction deleted", "id", id)
	return nil
}

// ListAll returns every transaction ordered by date descending, then id
// descending. It always reflects the latest committed state.
func (l *Ledger) ListAll(ctx context.Context) ([]core.Transaction, error) {
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, date, type, amount, category, note FROM transactions ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return out, nil
}

// Get returns a single transaction by id, or core.ErrNotFound.
func (l *Ledger) Get(ctx context.Context, id int64) (core.Transaction, error) {
	row := l.db.QueryRowContext(ctx,
		`SELECT id, date, type, amount, category, note FROM transactions WHERE id = ?`, id)

	tx, err := scanTransaction(row)
	if err == sql.ErrNoRows {
		return core.Transaction{}, core.ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, err
	}
	return tx, nil
}

// Count returns the number of stored transactions.
func (l *Ledger) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := l.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}

// InsertBatch appends all transactions inside a single SQL transaction.
// Either every row is written or none is; the first invalid row aborts
// the whole batch.
func (l *Ledger) InsertBatch(ctx context.Context, txs []core.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	dbTx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch insert: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.PrepareContext(ctx,
		`INSERT INTO transactions (date, type, amount, category, note) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare batch insert: %w", err)
	}
	defer stmt.Close()

	for i, tx := range txs {
		if tx.Date.IsZero() {
			tx.Date = core.Today()
		}
		if err := tx.Validate(); err != nil {
			return fmt.Errorf("row %d: %w", i+1, err)
		}
		if _, err := stmt.ExecContext(ctx,
			tx.Date.String(), string(tx.Type), tx.Amount, tx.Category, tx.Note); err != nil {
			return fmt.Errorf("insert row %d: %w", i+1, err)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("commit batch insert: %w", err)
	}

	slog.InfoContext(ctx, "Batch inserted", "rows", len(txs))
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		tx       core.Transaction
		dateStr  string
		typeStr  string
		category sql.NullString
		note     sql.NullString
	)
	if err := row.Scan(&tx.ID, &dateStr, &typeStr, &tx.Amount, &category, &note); err != nil {
		if err == sql.ErrNoRows {
			return core.Transaction{}, err
		}
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}

	date, err := core.ParseDate(dateStr)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("parse stored date %q: %w", dateStr, err)
	}
	tx.Date = date
	tx.Type = core.Type(typeStr)
	tx.Category = category.String
	tx.Note = note.String

	return tx, nil
}
