package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight/finsight/internal/model"
)

func TestParseImportFile(t *testing.T) {
	t.Run("csv by extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "export.csv")
		data := "date,description,amount,type\n2024-07-01,NETFLIX.COM,15.49,debit\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

		inputs, err := parseImportFile(path, "")
		require.NoError(t, err)
		require.Len(t, inputs, 1)
		assert.Equal(t, "NETFLIX.COM", inputs[0].Description)
	})

	t.Run("unknown extension needs --format", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "export.txt")
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))

		_, err := parseImportFile(path, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--format")
	})

	t.Run("format flag overrides extension", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "export.txt")
		data := "2024-07-01,UBER TRIP,24.50,debit\n"
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

		inputs, err := parseImportFile(path, "csv")
		require.NoError(t, err)
		require.Len(t, inputs, 1)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := parseImportFile(filepath.Join(t.TempDir(), "nope.csv"), "")
		assert.Error(t, err)
	})

	t.Run("bad format flag", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "export.csv")
		require.NoError(t, os.WriteFile(path, []byte(""), 0o600))

		_, err := parseImportFile(path, "xlsx")
		assert.Error(t, err)
	})
}

func TestFilterTransactions(t *testing.T) {
	txns := []model.Transaction{
		{ID: "a", Type: model.Debit, Category: model.CategoryGroceries},
		{ID: "b", Type: model.Credit, Category: model.CategoryIncome},
		{ID: "c", Type: model.Debit, Category: model.CategoryRent},
	}

	debits := filterTransactions(txns, func(t model.Transaction) bool { return t.Type == model.Debit })
	assert.Len(t, debits, 2)

	income := filterTransactions(txns, func(t model.Transaction) bool { return t.Category == model.CategoryIncome })
	require.Len(t, income, 1)
	assert.Equal(t, "b", income[0].ID)

	// Original slice is untouched.
	assert.Len(t, txns, 3)
}
