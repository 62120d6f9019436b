// Package ledger holds the in-memory list of transactions, newest first,
// and persists it after every mutation.
package ledger

import (
	"context"
	"math"
	"math/rand"
	"time"

	"ledger/internal/core"
	"ledger/internal/log"
)

// Persister receives the full list after each mutation. Implementations
// handle their own failures; the ledger never sees them.
type Persister interface {
	Save(ctx context.Context, txs []core.Transaction)
}

// Ledger is owned by a single caller and is not safe for concurrent use.
type Ledger struct {
	txs    []core.Transaction
	store  Persister
	now    func() time.Time
	jitter func(n int64) int64
	logger *log.Logger
}

type Option func(*Ledger)

// WithClock replaces the time source used for ids and dates.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// WithJitter replaces the random tie-break added to ids; it must return a
// value in [0, n).
func WithJitter(jitter func(n int64) int64) Option {
	return func(l *Ledger) { l.jitter = jitter }
}

func WithLogger(logger *log.Logger) Option {
	return func(l *Ledger) { l.logger = logger.WithComponent(log.ComponentLedger) }
}

// New builds a ledger over txs, which must already be newest first.
func New(store Persister, txs []core.Transaction, opts ...Option) *Ledger {
	l := &Ledger{
		txs:    append([]core.Transaction(nil), txs...),
		store:  store,
		now:    time.Now,
		jitter: rand.Int63n,
		logger: log.Discard(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Add records a new transaction at the front of the list. The amount is
// stored as its absolute value; input is assumed validated by the caller.
func (l *Ledger) Add(ctx context.Context, description string, amount float64, typ core.TransactionType) core.Transaction {
	now := l.now()
	tx := core.Transaction{
		ID:          l.nextID(now),
		Description: description,
		Amount:      math.Abs(amount),
		Type:        typ,
		Date:        core.NewTimestamp(now),
	}

	l.txs = append([]core.Transaction{tx}, l.txs...)
	l.persist(ctx)

	l.logger.InfoContext(ctx, "Transaction added",
		log.NewFields().
			WithTransaction(tx.ID, tx.Description, tx.Amount, tx.Type.String()).
			WithOperation(log.OpAdd).
			ToSlice()...)
	return tx
}

// Delete removes the transaction with id. Returns false, and changes
// nothing but the persisted copy, when id is absent.
func (l *Ledger) Delete(ctx context.Context, id int64) bool {
	removed := false
	kept := l.txs[:0:0]
	for _, t := range l.txs {
		if t.ID == id {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	l.txs = kept
	l.persist(ctx)

	l.logger.DebugContext(ctx, "Transaction delete",
		log.FieldTransactionID, id,
		log.FieldOperation, log.OpDelete,
		"removed", removed)
	return removed
}

// Clear replaces the whole list with an empty one.
func (l *Ledger) Clear(ctx context.Context) {
	n := len(l.txs)
	l.txs = nil
	l.persist(ctx)
	l.logger.InfoContext(ctx, "Ledger cleared", log.FieldCount, n, log.FieldOperation, log.OpClear)
}

// Summary totals income and expense in list order. Non-finite amounts
// count as zero.
func (l *Ledger) Summary() core.Summary {
	var s core.Summary
	for _, t := range l.txs {
		amount := core.SafeAmount(t.Amount)
		if t.IsIncome() {
			s.Income += amount
		} else {
			s.Expense += amount
		}
	}
	s.Balance = s.Income - s.Expense
	return s
}

// Transactions returns a copy of the list, newest first.
func (l *Ledger) Transactions() []core.Transaction {
	return append([]core.Transaction(nil), l.txs...)
}

func (l *Ledger) Len() int {
	return len(l.txs)
}

func (l *Ledger) Get(id int64) (core.Transaction, bool) {
	for _, t := range l.txs {
		if t.ID == id {
			return t, true
		}
	}
	return core.Transaction{}, false
}

// nextID is the creation time in milliseconds plus a random offset below
// 1000, bumped until no existing transaction uses it.
func (l *Ledger) nextID(now time.Time) int64 {
	id := now.UnixMilli() + l.jitter(1000)
	for {
		if _, taken := l.Get(id); !taken {
			return id
		}
		id++
	}
}

func (l *Ledger) persist(ctx context.Context) {
	if l.store == nil {
		return
	}
	l.store.Save(ctx, l.Transactions())
}
