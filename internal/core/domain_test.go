package core

import (
	"errors"
	"math"
	"testing"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{name: "valid date", input: "2024-01-05"},
		{name: "leap day", input: "2024-02-29"},
		{name: "empty", input: "", wantErr: true},
		{name: "wrong layout", input: "05/01/2024", wantErr: true},
		{name: "with time component", input: "2024-01-05T10:00:00Z", wantErr: true},
		{name: "nonexistent day", input: "2023-02-30", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDate(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidDate) {
					t.Fatalf("ParseDate(%q) error = %v, want ErrInvalidDate", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.input, err)
			}
			if got := d.String(); got != tt.input {
				t.Errorf("round-trip mismatch: got %q, want %q", got, tt.input)
			}
		})
	}
}

func TestDateMonthKey(t *testing.T) {
	d := NewDate(2024, 1, 5)
	if got := d.MonthKey(); got != "2024-01" {
		t.Errorf("MonthKey() = %q, want %q", got, "2024-01")
	}
}

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{
		Date:     NewDate(2024, 1, 5),
		Type:     Income,
		Amount:   1000,
		Category: "salary",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	tests := []struct {
		name    string
		mutate  func(*Transaction)
		wantErr error
	}{
		{
			name:    "unknown type",
			mutate:  func(tx *Transaction) { tx.Type = "transfer" },
			wantErr: ErrInvalidType,
		},
		{
			name:    "empty type",
			mutate:  func(tx *Transaction) { tx.Type = "" },
			wantErr: ErrInvalidType,
		},
		{
			name:    "negative amount",
			mutate:  func(tx *Transaction) { tx.Amount = -1 },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "NaN amount",
			mutate:  func(tx *Transaction) { tx.Amount = math.NaN() },
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "zero date",
			mutate:  func(tx *Transaction) { tx.Date = Date{} },
			wantErr: ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid
			tt.mutate(&tx)
			if err := tx.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("zero amount is allowed", func(t *testing.T) {
		tx := valid
		tx.Amount = 0
		if err := tx.Validate(); err != nil {
			t.Errorf("zero amount rejected: %v", err)
		}
	})

	t.Run("empty category and note are allowed", func(t *testing.T) {
		tx := valid
		tx.Category = ""
		tx.Note = ""
		if err := tx.Validate(); err != nil {
			t.Errorf("empty optional fields rejected: %v", err)
		}
	})
}
