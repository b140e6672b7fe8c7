package alerts

import (
	"context"

	"guardian/internal/models"
	"guardian/internal/store"
)

// Service exposes the alert feed operations used by the dashboard and
// the alerts page.
type Service struct {
	store store.AlertStore
}

func NewService(s store.AlertStore) *Service {
	return &Service{store: s}
}

// ListActive returns alerts not yet dismissed.
func (s *Service) ListActive(ctx context.Context) ([]models.SystemAlert, error) {
	return s.store.ListActive(ctx)
}

// ListAll returns every alert, dismissed ones included.
func (s *Service) ListAll(ctx context.Context) ([]models.SystemAlert, error) {
	return s.store.ListAll(ctx)
}

func (s *Service) Create(ctx context.Context, a *models.SystemAlert) error {
	return s.store.Create(ctx, a)
}

func (s *Service) Dismiss(ctx context.Context, id string) error {
	return s.store.Dismiss(ctx, id)
}

func (s *Service) DismissAll(ctx context.Context) error {
	return s.store.DismissAll(ctx)
}
