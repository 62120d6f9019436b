package services

import (
	"context"
	"time"

	"ledger/internal/categorizer"
	"ledger/internal/core"
	"ledger/internal/insights"
	"ledger/internal/ledger"
	"ledger/internal/log"
	"ledger/internal/storage"
)

// Snapshot is everything a front end needs to render after a change.
type Snapshot struct {
	Transactions []core.Transaction
	Summary      core.Summary
	Insights     core.Insights
	HasInsights  bool
}

// TrackerService ties the store, the ledger and the insight engine
// together: every mutation is persisted and followed by a fresh Snapshot.
type TrackerService struct {
	store      *storage.Store
	ledger     *ledger.Ledger
	classifier categorizer.Classifier
	logger     *log.Logger
	ledgerOpts []ledger.Option
}

type Option func(*TrackerService)

func WithLogger(logger *log.Logger) Option {
	return func(s *TrackerService) {
		s.logger = logger.WithComponent(log.ComponentApp)
		s.ledgerOpts = append(s.ledgerOpts, ledger.WithLogger(logger))
	}
}

// WithClock fixes the ledger's time source.
func WithClock(now func() time.Time) Option {
	return func(s *TrackerService) {
		s.ledgerOpts = append(s.ledgerOpts, ledger.WithClock(now))
	}
}

func NewTrackerService(store *storage.Store, classifier categorizer.Classifier, opts ...Option) *TrackerService {
	s := &TrackerService{
		store:      store,
		classifier: classifier,
		logger:     log.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	// Until Open runs the ledger is empty and unpersisted, so an early
	// mutation can never overwrite stored data.
	s.ledger = ledger.New(nil, nil, s.ledgerOpts...)
	return s
}

// Open loads persisted transactions into a fresh ledger backed by the store.
// Call it before any mutation that should be saved.
func (s *TrackerService) Open(ctx context.Context) Snapshot {
	txs := s.store.Load(ctx)
	s.ledger = ledger.New(s.store, txs, s.ledgerOpts...)
	s.logger.InfoContext(ctx, "Ledger opened", log.FieldCount, len(txs), log.FieldOperation, log.OpStartup)
	return s.Snapshot()
}

// Add records an entry the caller has already validated.
func (s *TrackerService) Add(ctx context.Context, e core.Entry) (core.Transaction, Snapshot) {
	tx := s.ledger.Add(ctx, e.Description, e.Amount, e.Type)
	s.logger.WithComponent(log.ComponentCategorizer).DebugContext(ctx, "Transaction categorized",
		log.FieldTransactionID, tx.ID,
		log.FieldCategory, s.classifier.Categorize(tx.Description).String())
	return tx, s.refresh(ctx)
}

// Delete removes a transaction by id. Unknown ids are a no-op.
func (s *TrackerService) Delete(ctx context.Context, id int64) (bool, Snapshot) {
	removed := s.ledger.Delete(ctx, id)
	return removed, s.refresh(ctx)
}

// ClearData drops all transactions but keeps preferences.
func (s *TrackerService) ClearData(ctx context.Context) Snapshot {
	s.ledger.Clear(ctx)
	s.store.ClearTransactions(ctx)
	return s.refresh(ctx)
}

// ResetAll drops transactions and preferences.
func (s *TrackerService) ResetAll(ctx context.Context) Snapshot {
	s.ledger.Clear(ctx)
	s.store.ResetAll(ctx)
	return s.refresh(ctx)
}

func (s *TrackerService) Snapshot() Snapshot {
	txs := s.ledger.Transactions()
	ins, ok := insights.Compute(txs, s.classifier)
	return Snapshot{
		Transactions: txs,
		Summary:      s.ledger.Summary(),
		Insights:     ins,
		HasInsights:  ok,
	}
}

// refresh recomputes the snapshot after a mutation.
func (s *TrackerService) refresh(ctx context.Context) Snapshot {
	snap := s.Snapshot()
	s.logger.WithComponent(log.ComponentInsights).DebugContext(ctx, "Insights recomputed",
		log.FieldCount, snap.Insights.ExpenseCount,
		"has_insights", snap.HasInsights)
	return snap
}

// Categorize exposes the classifier for display of individual rows.
func (s *TrackerService) Categorize(description string) core.Category {
	return s.classifier.Categorize(description)
}

func (s *TrackerService) Theme(ctx context.Context) core.Theme {
	return s.store.Theme(ctx)
}

func (s *TrackerService) SetTheme(ctx context.Context, name string) core.Theme {
	theme := s.store.SetTheme(ctx, name)
	s.logger.InfoContext(ctx, "Theme applied", log.FieldTheme, theme.String(), log.FieldOperation, log.OpTheme)
	return theme
}

func (s *TrackerService) ResetTheme(ctx context.Context) core.Theme {
	return s.store.ResetTheme(ctx)
}

func (s *TrackerService) TutorialSeen(ctx context.Context) bool {
	return s.store.TutorialSeen(ctx)
}

func (s *TrackerService) MarkTutorialSeen(ctx context.Context) {
	s.store.MarkTutorialSeen(ctx)
}
