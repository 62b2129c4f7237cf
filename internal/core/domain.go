package core

import (
	"errors"
	"math"
	"time"
)

const (
	Income  Type = "income"
	Expense Type = "expense"
)

type (
	// Type is the direction of a transaction. Amounts are stored as
	// magnitudes; credit/debit comes solely from the Type.
	Type string

	// Date is a calendar date with no time component. Its canonical
	// text form is "YYYY-MM-DD".
	Date struct {
		time.Time
	}

	Transaction struct {
		ID       int64
		Date     Date
		Type     Type
		Amount   float64
		Category string
		Note     string
	}
)

var (
	ErrInvalidType   = errors.New("type must be income or expense")
	ErrInvalidAmount = errors.New("amount must be a non-negative number")
	ErrInvalidDate   = errors.New("invalid date")
	ErrNotFound      = errors.New("transaction not found")
)

const dateLayout = "2006-01-02"

func (t Type) Valid() bool {
	return t == Income || t == Expense
}

// ParseDate parses the canonical "YYYY-MM-DD" form.
func ParseDate(s string) (Date, error) {
	parsed, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: parsed}, nil
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

func (d Date) String() string {
	return d.Format(dateLayout)
}

// MonthKey returns the "YYYY-MM" bucket this date belongs to.
func (d Date) MonthKey() string {
	return d.Format("2006-01")
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

func (t Transaction) Validate() error {
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if t.Amount < 0 || math.IsNaN(t.Amount) || math.IsInf(t.Amount, 0) {
		return ErrInvalidAmount
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	return nil
}
