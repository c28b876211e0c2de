package model

import (
	"fmt"
	"strings"
)

// TransactionType indicates whether money flowed out of or into the account.
type TransactionType string

const (
	// Debit represents an outflow. Only debits count toward spending analytics.
	Debit TransactionType = "Debit"
	// Credit represents an inflow.
	Credit TransactionType = "Credit"
)

// ParseTransactionType parses a transaction type, case-insensitively.
func ParseTransactionType(s string) (TransactionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debit":
		return Debit, nil
	case "credit":
		return Credit, nil
	default:
		return "", fmt.Errorf("invalid transaction type %q", s)
	}
}

// Category is one of the closed set of spending categories.
type Category string

// The full category set. Category values outside this set are never stored.
const (
	CategoryGroceries     Category = "Groceries"
	CategoryTransport     Category = "Transport"
	CategoryEntertainment Category = "Entertainment"
	CategoryUtilities     Category = "Utilities"
	CategoryRent          Category = "Rent"
	CategoryShopping      Category = "Shopping"
	CategoryIncome        Category = "Income"
	CategoryOther         Category = "Other"
)

// Categories lists every valid category in display order.
var Categories = []Category{
	CategoryGroceries,
	CategoryTransport,
	CategoryEntertainment,
	CategoryUtilities,
	CategoryRent,
	CategoryShopping,
	CategoryIncome,
	CategoryOther,
}

// ParseCategory maps a string onto the closed category set. Unrecognized
// values map to CategoryOther rather than an error so that external
// suggestions can never introduce a category outside the set.
func ParseCategory(s string) (Category, bool) {
	needle := strings.ToLower(strings.TrimSpace(s))
	for _, c := range Categories {
		if strings.ToLower(string(c)) == needle {
			return c, true
		}
	}
	return CategoryOther, false
}

// Transaction is a single ledger entry. Amount is always a positive
// magnitude; the direction is carried by Type.
type Transaction struct {
	ID          string          `json:"id"`
	Date        Date            `json:"date"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    Category        `json:"category"`
}

// Validate checks the transaction invariants.
func (t Transaction) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("transaction has no id")
	}
	return t.Input().Validate()
}

// Input returns the transaction without its identity, for re-validation.
func (t Transaction) Input() TransactionInput {
	return TransactionInput{
		Date:        t.Date,
		Description: t.Description,
		Amount:      t.Amount,
		Type:        t.Type,
		Category:    t.Category,
	}
}

// TransactionInput is a transaction before an id has been assigned.
type TransactionInput struct {
	Date        Date
	Description string
	Amount      float64
	Type        TransactionType
	Category    Category
}

// Validate rejects inputs that would violate ledger invariants.
func (in TransactionInput) Validate() error {
	if in.Date.IsZero() {
		return fmt.Errorf("transaction date is required")
	}
	if in.Amount <= 0 {
		return fmt.Errorf("transaction amount must be positive, got %v", in.Amount)
	}
	if in.Type != Debit && in.Type != Credit {
		return fmt.Errorf("invalid transaction type %q", in.Type)
	}
	if _, ok := ParseCategory(string(in.Category)); !ok {
		return fmt.Errorf("invalid category %q", in.Category)
	}
	return nil
}
