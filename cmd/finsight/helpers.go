package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/viper"

	"github.com/finsight/finsight/internal/advisor"
	"github.com/finsight/finsight/internal/analytics"
	"github.com/finsight/finsight/internal/common"
	"github.com/finsight/finsight/internal/config"
	"github.com/finsight/finsight/internal/ledger"
	"github.com/finsight/finsight/internal/model"
	"github.com/finsight/finsight/internal/storage"
)

// openLedger opens the blob store and loads the ledger. The returned cleanup
// closes the underlying database.
func openLedger(ctx context.Context) (*ledger.Store, func(), error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/finsight/finsight.db"
	}
	dbPath = config.ExpandPath(dbPath)

	blobs, err := storage.NewSQLiteStore(dbPath)
	if err != nil {
		return nil, nil, common.NewUserError(fmt.Sprintf("could not open your ledger database at %s", dbPath), err)
	}

	cleanup := func() {
		if closeErr := blobs.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}

	store := ledger.NewStore(blobs)
	if err := store.Load(ctx); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	// Recompute headline figures on every mutation.
	store.Subscribe(func(txns []model.Transaction) {
		spend := analytics.SpendByCategory(txns)
		var total float64
		for _, s := range spend {
			total += s.Amount
		}
		slog.Debug("Ledger updated", "transactions", len(txns), "debit_total", total)
	})

	return store, cleanup, nil
}

// newGateway builds the advisory gateway from configuration. Construction
// never fails; without a usable provider the gateway runs offline.
func newGateway() *advisor.Gateway {
	return advisor.NewGateway(config.LoadAdvisorConfig(), slog.Default())
}
