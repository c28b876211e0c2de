// Package ledger owns the canonical transaction list. The store is the only
// writer; everything else receives read-only snapshots.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/finsight/finsight/internal/model"
	"github.com/finsight/finsight/internal/storage"
)

// StorageKey is the fixed blob key the full ledger is persisted under.
const StorageKey = "finsight-transactions"

// Store holds the in-memory ledger and persists it through a BlobStore.
//
// The in-memory ledger is the source of truth for the session: persistence
// failures are logged and never roll back an applied mutation. Mutations with
// an unknown id are silent no-ops, logged at debug level.
type Store struct {
	blobs        storage.BlobStore
	transactions []model.Transaction
	subscribers  []func([]model.Transaction)
	newID        func() string
	mu           sync.RWMutex
}

// NewStore creates a ledger store backed by the given blob store. The ledger
// is empty until Load is called.
func NewStore(blobs storage.BlobStore) *Store {
	return &Store{
		blobs: blobs,
		newID: uuid.NewString,
	}
}

// Load restores the persisted ledger, seeding a starter ledger when nothing
// usable is stored. Malformed persisted data is logged and replaced by the
// seed; Load never fails because of bad stored bytes.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.blobs.Read(ctx, StorageKey)
	switch {
	case err == storage.ErrKeyNotFound:
		slog.Info("No persisted ledger found, seeding starter ledger")
		s.transactions = StarterLedger(model.Today())
	case err != nil:
		slog.Error("Failed to read persisted ledger, falling back to starter ledger", "error", err)
		s.transactions = StarterLedger(model.Today())
	default:
		var loaded []model.Transaction
		if jsonErr := json.Unmarshal(data, &loaded); jsonErr != nil {
			slog.Error("Persisted ledger is malformed, falling back to starter ledger", "error", jsonErr)
			s.transactions = StarterLedger(model.Today())
		} else {
			s.transactions = loaded
		}
	}

	s.sortLocked()
	s.persistLocked(ctx)
	return nil
}

// Transactions returns a snapshot of the ledger, date-descending.
func (s *Store) Transactions() []model.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Find returns the transaction with the given id, if present.
func (s *Store) Find(id string) (model.Transaction, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, txn := range s.transactions {
		if txn.ID == id {
			return txn, true
		}
	}
	return model.Transaction{}, false
}

// Add validates the input, assigns a fresh id, inserts the transaction and
// persists the ledger. The returned transaction carries the new id.
func (s *Store) Add(ctx context.Context, in model.TransactionInput) (model.Transaction, error) {
	if err := in.Validate(); err != nil {
		return model.Transaction{}, fmt.Errorf("invalid transaction: %w", err)
	}

	s.mu.Lock()
	txn := model.Transaction{
		ID:          s.newID(),
		Date:        in.Date,
		Description: in.Description,
		Amount:      in.Amount,
		Type:        in.Type,
		Category:    in.Category,
	}
	s.transactions = append([]model.Transaction{txn}, s.transactions...)
	s.sortLocked()
	s.persistLocked(ctx)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)
	return txn, nil
}

// AddBulk validates and inserts a batch, assigning each record a distinct id,
// and persists the ledger once for the whole batch.
func (s *Store) AddBulk(ctx context.Context, ins []model.TransactionInput) ([]model.Transaction, error) {
	for i, in := range ins {
		if err := in.Validate(); err != nil {
			return nil, fmt.Errorf("invalid transaction at index %d: %w", i, err)
		}
	}

	s.mu.Lock()
	added := make([]model.Transaction, 0, len(ins))
	for _, in := range ins {
		added = append(added, model.Transaction{
			ID:          s.newID(),
			Date:        in.Date,
			Description: in.Description,
			Amount:      in.Amount,
			Type:        in.Type,
			Category:    in.Category,
		})
	}
	s.transactions = append(added, s.transactions...)
	s.sortLocked()
	s.persistLocked(ctx)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)
	return added, nil
}

// Update replaces the transaction whose id matches. An unknown id leaves the
// ledger unchanged; no error is surfaced.
func (s *Store) Update(ctx context.Context, txn model.Transaction) error {
	if err := txn.Validate(); err != nil {
		return fmt.Errorf("invalid transaction: %w", err)
	}

	s.mu.Lock()
	replaced := false
	for i := range s.transactions {
		if s.transactions[i].ID == txn.ID {
			s.transactions[i] = txn
			replaced = true
			break
		}
	}
	if !replaced {
		s.mu.Unlock()
		slog.Debug("Update for unknown transaction id ignored", "id", txn.ID)
		return nil
	}
	s.sortLocked()
	s.persistLocked(ctx)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)
	return nil
}

// Delete removes the transaction with the given id. An unknown id is a no-op.
func (s *Store) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	kept := s.transactions[:0:0]
	removed := false
	for _, txn := range s.transactions {
		if txn.ID == id {
			removed = true
			continue
		}
		kept = append(kept, txn)
	}
	if !removed {
		s.mu.Unlock()
		slog.Debug("Delete for unknown transaction id ignored", "id", id)
		return
	}
	s.transactions = kept
	s.sortLocked()
	s.persistLocked(ctx)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(snapshot)
}

// Subscribe registers a callback invoked with a fresh snapshot after every
// mutation. Callbacks run synchronously on the mutating caller.
func (s *Store) Subscribe(fn func([]model.Transaction)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) notify(snapshot []model.Transaction) {
	s.mu.RLock()
	subs := make([]func([]model.Transaction), len(s.subscribers))
	copy(subs, s.subscribers)
	s.mu.RUnlock()

	for _, fn := range subs {
		fn(snapshot)
	}
}

// sortLocked keeps the ledger date-descending. Ties keep their current
// relative order.
func (s *Store) sortLocked() {
	sort.SliceStable(s.transactions, func(i, j int) bool {
		return s.transactions[j].Date.Before(s.transactions[i].Date)
	})
}

// persistLocked serializes the full ledger to the blob store. Failures are
// logged and swallowed: the in-memory ledger stays authoritative.
func (s *Store) persistLocked(ctx context.Context) {
	data, err := json.Marshal(s.transactions)
	if err != nil {
		slog.Error("Failed to serialize ledger", "error", err)
		return
	}
	if err := s.blobs.Write(ctx, StorageKey, data); err != nil {
		slog.Error("Failed to persist ledger", "error", err, "transactions", len(s.transactions))
	}
}

func (s *Store) snapshotLocked() []model.Transaction {
	out := make([]model.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}
