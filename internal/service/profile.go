package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmcdole/fitdeck/internal/domain"
)

// ProfileService reads and updates the signed-in profile
type ProfileService struct {
	store  domain.Store
	logger *slog.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(store domain.Store, logger *slog.Logger) *ProfileService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProfileService{
		store:  store,
		logger: logger,
	}
}

// Get returns the stored profile
func (s *ProfileService) Get(ctx context.Context) (domain.Profile, error) {
	if err := ctx.Err(); err != nil {
		return domain.Profile{}, err
	}
	return s.store.Profile()
}

// Logout clears the signed-in role
func (s *ProfileService) Logout(ctx context.Context) error {
	if err := updateProfile(ctx, s.store, func(p *domain.Profile) { p.Role = "" }); err != nil {
		return err
	}
	s.logger.Info("logged out")
	return nil
}

func updateProfile(ctx context.Context, store domain.Store, fn func(p *domain.Profile)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := store.Profile()
	if err != nil {
		return fmt.Errorf("reading profile: %w", err)
	}
	fn(&p)
	return store.SaveProfile(p)
}
