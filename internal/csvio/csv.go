// Package csvio implements the portable tabular format for ledger
// import and export: comma-separated text with the fixed header
// date,type,amount,category,note.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"fintrack/internal/core"
)

// Columns is the required header set, in export order.
var Columns = []string{"date", "type", "amount", "category", "note"}

// Row is one parsed CSV record, fields still in text form. Value-level
// validation happens at the ledger boundary, not here.
type Row struct {
	Date     string
	Type     string
	Amount   string
	Category string
	Note     string
}

// SchemaError reports required columns missing from an import header.
// The whole batch is rejected; nothing is written.
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("CSV is missing columns: %s", strings.Join(e.Missing, ", "))
}

// Parse reads the full CSV stream. Header names are matched
// case-insensitively; extra columns (a supplied id, for example) are
// ignored. A missing required column yields a *SchemaError before any
// row is returned.
func Parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, &SchemaError{Missing: append([]string(nil), Columns...)}
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range Columns {
		if _, ok := col[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, &SchemaError{Missing: missing}
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(rows)+2, err)
		}
		rows = append(rows, Row{
			Date:     rec[col["date"]],
			Type:     rec[col["type"]],
			Amount:   rec[col["amount"]],
			Category: rec[col["category"]],
			Note:     rec[col["note"]],
		})
	}

	return rows, nil
}

// Write renders the transactions in their given order, without
// re-sorting. encoding/csv quoting keeps fields containing commas,
// quotes, or newlines round-trippable.
func Write(w io.Writer, txs []core.Transaction) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, tx := range txs {
		record := []string{
			tx.Date.String(),
			string(tx.Type),
			FormatAmount(tx.Amount),
			tx.Category,
			tx.Note,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write transaction %d: %w", tx.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// FormatAmount renders an amount at full precision, no fixed decimal
// truncation.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ToTransaction converts a parsed row into a domain transaction,
// normalizing the date and amount. The returned error carries the
// field that failed.
func (r Row) ToTransaction() (core.Transaction, error) {
	date, err := core.ParseDate(strings.TrimSpace(r.Date))
	if err != nil {
		return core.Transaction{}, fmt.Errorf("date %q: %w", r.Date, err)
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(r.Amount), 64)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("amount %q: %w", r.Amount, core.ErrInvalidAmount)
	}

	tx := core.Transaction{
		Date:     date,
		Type:     core.Type(strings.ToLower(strings.TrimSpace(r.Type))),
		Amount:   amount,
		Category: r.Category,
		Note:     r.Note,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, err
	}

	return tx, nil
}
