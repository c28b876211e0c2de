// Package importer parses bank export files into transaction inputs.
// Parsed inputs may have an empty category; callers are expected to fill
// those in (usually via an advisory suggestion) before adding them to the
// ledger.
package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/finsight/finsight/internal/model"
)

// ReadCSV parses a CSV export with columns date,description,amount,type and
// an optional fifth category column. A header row and blank lines are
// skipped. Amounts are magnitudes; a negative amount is folded into a debit.
func ReadCSV(r io.Reader) ([]model.TransactionInput, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var inputs []model.TransactionInput
	line := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV: %w", err)
		}
		line++

		if isBlankRecord(record) || isHeaderRecord(record) {
			continue
		}
		if len(record) < 4 {
			return nil, fmt.Errorf("line %d: expected at least 4 columns, got %d", line, len(record))
		}

		input, err := parseCSVRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		inputs = append(inputs, input)
	}

	return inputs, nil
}

func parseCSVRecord(record []string) (model.TransactionInput, error) {
	date, err := model.ParseDate(strings.TrimSpace(record[0]))
	if err != nil {
		return model.TransactionInput{}, fmt.Errorf("invalid date %q: %w", record[0], err)
	}

	description := strings.TrimSpace(record[1])
	if description == "" {
		return model.TransactionInput{}, fmt.Errorf("description is empty")
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
	if err != nil {
		return model.TransactionInput{}, fmt.Errorf("invalid amount %q: %w", record[2], err)
	}

	txnType, err := model.ParseTransactionType(record[3])
	if err != nil {
		return model.TransactionInput{}, err
	}
	if amount < 0 {
		amount = -amount
		txnType = model.Debit
	}
	if amount == 0 {
		return model.TransactionInput{}, fmt.Errorf("amount is zero")
	}

	input := model.TransactionInput{
		Date:        date,
		Description: description,
		Amount:      amount,
		Type:        txnType,
	}

	if len(record) >= 5 && strings.TrimSpace(record[4]) != "" {
		category, ok := model.ParseCategory(record[4])
		if !ok {
			return model.TransactionInput{}, fmt.Errorf("unknown category %q", record[4])
		}
		input.Category = category
	}

	return input, nil
}

func isBlankRecord(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

func isHeaderRecord(record []string) bool {
	return len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "date")
}
