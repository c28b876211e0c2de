package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   Category
		wantOK bool
	}{
		{name: "exact match", input: "Groceries", want: CategoryGroceries, wantOK: true},
		{name: "case insensitive", input: "rent", want: CategoryRent, wantOK: true},
		{name: "surrounding whitespace", input: "  Income ", want: CategoryIncome, wantOK: true},
		{name: "unknown maps to Other", input: "Cryptocurrency", want: CategoryOther, wantOK: false},
		{name: "empty maps to Other", input: "", want: CategoryOther, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCategory(tt.input)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("ParseCategory(%q) = (%v, %v), want (%v, %v)", tt.input, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseTransactionType(t *testing.T) {
	if got, err := ParseTransactionType("debit"); err != nil || got != Debit {
		t.Errorf("ParseTransactionType(debit) = (%v, %v)", got, err)
	}
	if got, err := ParseTransactionType(" Credit\n"); err != nil || got != Credit {
		t.Errorf("ParseTransactionType(Credit) = (%v, %v)", got, err)
	}
	if _, err := ParseTransactionType("transfer"); err == nil {
		t.Error("expected error for unknown transaction type")
	}
}

func TestTransactionInput_Validate(t *testing.T) {
	valid := TransactionInput{
		Date:        NewDate(2024, time.January, 15),
		Description: "WHOLE FOODS MARKET",
		Amount:      89.90,
		Type:        Debit,
		Category:    CategoryGroceries,
	}

	tests := []struct {
		mutate  func(*TransactionInput)
		name    string
		wantErr bool
	}{
		{name: "valid input", mutate: func(_ *TransactionInput) {}, wantErr: false},
		{name: "zero date", mutate: func(in *TransactionInput) { in.Date = Date{} }, wantErr: true},
		{name: "zero amount", mutate: func(in *TransactionInput) { in.Amount = 0 }, wantErr: true},
		{name: "negative amount", mutate: func(in *TransactionInput) { in.Amount = -5 }, wantErr: true},
		{name: "bad type", mutate: func(in *TransactionInput) { in.Type = "Transfer" }, wantErr: true},
		{name: "bad category", mutate: func(in *TransactionInput) { in.Category = "Gadgets" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			tt.mutate(&in)
			err := in.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	txn := Transaction{
		ID:          "txn-1",
		Date:        NewDate(2024, time.March, 7),
		Description: "NETFLIX",
		Amount:      15.99,
		Type:        Debit,
		Category:    CategoryEntertainment,
	}

	data, err := json.Marshal(txn)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got Transaction
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got != txn {
		t.Errorf("round trip mismatch: got %+v, want %+v", got, txn)
	}
	if got.Date.String() != "2024-03-07" {
		t.Errorf("date string = %q, want 2024-03-07", got.Date.String())
	}
}

func TestDate_Ordering(t *testing.T) {
	a := NewDate(2024, time.January, 1)
	b := NewDate(2024, time.January, 3)

	if !a.Before(b) || b.Before(a) {
		t.Error("Before comparison wrong")
	}
	if !b.After(a) {
		t.Error("After comparison wrong")
	}
	if !a.AddDays(2).Equal(b) {
		t.Errorf("AddDays(2) = %v, want %v", a.AddDays(2), b)
	}
	if a.String() >= b.String() {
		t.Error("lexicographic order of ISO strings should match chronological order")
	}
}
