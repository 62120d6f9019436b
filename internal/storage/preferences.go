package storage

import (
	"context"

	"ledger/internal/core"
	"ledger/internal/log"
)

const tutorialSeenValue = "1"

// Theme returns the stored theme; unset or unknown values read as default.
func (s *Store) Theme(ctx context.Context) core.Theme {
	raw, ok, err := s.backend.Get(ctx, s.keys.Theme)
	if err != nil {
		s.logger.LogFault(ctx, "Could not read theme", err,
			log.OpTheme, log.ErrorTypeStorage, log.NewFields().WithKey(s.keys.Theme))
		return core.DefaultTheme
	}
	if !ok {
		return core.DefaultTheme
	}
	return core.NormalizeTheme(raw)
}

// SetTheme stores the normalized theme and returns what was applied.
func (s *Store) SetTheme(ctx context.Context, name string) core.Theme {
	theme := core.NormalizeTheme(name)
	if err := s.backend.Set(ctx, s.keys.Theme, theme.String()); err != nil {
		s.logger.LogFault(ctx, "Could not save theme", err,
			log.OpTheme, log.ErrorTypeStorage, log.NewFields().WithKey(s.keys.Theme))
	}
	return theme
}

func (s *Store) ResetTheme(ctx context.Context) core.Theme {
	return s.SetTheme(ctx, core.DefaultTheme.String())
}

func (s *Store) TutorialSeen(ctx context.Context) bool {
	raw, ok, err := s.backend.Get(ctx, s.keys.Tutorial)
	if err != nil {
		s.logger.LogFault(ctx, "Could not read tutorial flag", err,
			log.OpLoad, log.ErrorTypeStorage, log.NewFields().WithKey(s.keys.Tutorial))
		return false
	}
	return ok && raw != ""
}

func (s *Store) MarkTutorialSeen(ctx context.Context) {
	if err := s.backend.Set(ctx, s.keys.Tutorial, tutorialSeenValue); err != nil {
		s.logger.LogFault(ctx, "Could not save tutorial flag", err,
			log.OpSave, log.ErrorTypeStorage, log.NewFields().WithKey(s.keys.Tutorial))
	}
}
