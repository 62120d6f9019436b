// Package storage is the persistent store behind a ledger: it keeps the
// transaction list and the user's preferences as separate blobs in a
// key-value backend and never lets a persistence fault escape.
package storage

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"ledger/internal/core"
	"ledger/internal/kv"
	"ledger/internal/log"
)

// Keys names the independent blobs in the backend.
type Keys struct {
	Transactions string
	Theme        string
	Tutorial     string
}

func DefaultKeys() Keys {
	return Keys{
		Transactions: "smart_expense_transactions_v1",
		Theme:        "smart_expense_theme_v1",
		Tutorial:     "smart_expense_tutorial_seen_v1",
	}
}

type Store struct {
	backend kv.Store
	keys    Keys
	logger  *log.Logger
	now     func() time.Time
	jitter  func(n int64) int64
}

type Option func(*Store)

func WithKeys(keys Keys) Option {
	return func(s *Store) { s.keys = keys }
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Store) { s.logger = logger.WithComponent(log.ComponentStorage) }
}

// WithClock replaces the time used to backfill missing dates and ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(backend kv.Store, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		keys:    DefaultKeys(),
		logger:  log.Discard(),
		now:     time.Now,
		jitter:  rand.Int63n,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load returns the stored transactions, newest first. Missing, corrupt or
// non-array data yields an empty list. Records that needed migration are
// written back immediately.
func (s *Store) Load(ctx context.Context) []core.Transaction {
	raw, ok, err := s.backend.Get(ctx, s.keys.Transactions)
	if err != nil {
		s.logger.LogFault(ctx, "Could not read transactions", err,
			log.OpLoad, log.ErrorTypeStorage, log.NewFields().WithKey(s.keys.Transactions))
		return []core.Transaction{}
	}
	if !ok || raw == "" {
		return []core.Transaction{}
	}

	txs, migrated, err := decodeTransactions(raw, s.now(), s.newID)
	if err != nil {
		s.logger.LogFault(ctx, "Ignoring unreadable transactions", err,
			log.OpLoad, log.ErrorTypeCorrupt, log.NewFields().WithKey(s.keys.Transactions))
		return []core.Transaction{}
	}

	if migrated {
		s.logger.InfoContext(ctx, "Migrated stored transactions",
			log.FieldOperation, log.OpMigrate,
			log.FieldCount, len(txs))
		s.Save(ctx, txs)
	}

	s.logger.DebugContext(ctx, "Transactions loaded",
		log.FieldOperation, log.OpLoad,
		log.FieldCount, len(txs),
		log.FieldMigrated, migrated)
	return txs
}

// Save overwrites the stored list. Failures are logged and dropped.
func (s *Store) Save(ctx context.Context, txs []core.Transaction) {
	if err := s.save(ctx, txs); err != nil {
		errorType := log.ErrorTypeStorage
		if errors.Is(err, kv.ErrQuotaExceeded) {
			errorType = log.ErrorTypeQuota
		}
		s.logger.LogFault(ctx, "Could not save transactions", err,
			log.OpSave, errorType, log.NewFields().WithKey(s.keys.Transactions))
	}
}

func (s *Store) save(ctx context.Context, txs []core.Transaction) error {
	raw, err := encodeTransactions(txs)
	if err != nil {
		return err
	}
	return s.backend.Set(ctx, s.keys.Transactions, raw)
}

// ClearTransactions removes the ledger blob only.
func (s *Store) ClearTransactions(ctx context.Context) {
	s.remove(ctx, log.OpClear, s.keys.Transactions)
}

// ResetAll removes the ledger blob, the theme and the tutorial flag.
func (s *Store) ResetAll(ctx context.Context) {
	s.remove(ctx, log.OpReset, s.keys.Transactions, s.keys.Theme, s.keys.Tutorial)
}

func (s *Store) remove(ctx context.Context, op string, keys ...string) {
	if err := s.backend.Delete(ctx, keys...); err != nil {
		s.logger.LogFault(ctx, "Could not remove stored data", err,
			op, log.ErrorTypeStorage, nil)
		return
	}
	s.logger.InfoContext(ctx, "Stored data removed", log.FieldOperation, op, log.FieldCount, len(keys))
}

// newID mirrors the ledger's scheme: time in milliseconds plus a random
// offset, bumped past ids in taken.
func (s *Store) newID(taken map[int64]bool) int64 {
	id := s.now().UnixMilli() + s.jitter(1000)
	for taken[id] {
		id++
	}
	return id
}
