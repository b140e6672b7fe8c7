package store

import (
	"context"

	"guardian/internal/models"
)

// ResourceStore owns the authoritative resource records. The UI layers
// hold transient copies only.
type ResourceStore interface {
	// List returns all resources in insertion order.
	List(ctx context.Context) ([]models.Resource, error)
	GetByID(ctx context.Context, id string) (*models.Resource, error)
	// Add assigns the id and lastUpdated timestamp before persisting.
	Add(ctx context.Context, r *models.Resource) error
	// Update refreshes lastUpdated; the id is immutable. Missing ids are
	// rejected with CodeNotFound.
	Update(ctx context.Context, r *models.Resource) error
	Delete(ctx context.Context, id string) error
	// Filter applies the store-level predicate: case-insensitive substring
	// search over name, description, location name and address, plus exact
	// category/status/organization matches. Empty arguments mean no
	// constraint.
	Filter(ctx context.Context, search string, category models.Category, status models.Status, organization string) ([]models.Resource, error)
}

// AlertStore owns system alerts. Dismissal flips a flag; alerts are
// never physically deleted.
type AlertStore interface {
	ListAll(ctx context.Context) ([]models.SystemAlert, error)
	ListActive(ctx context.Context) ([]models.SystemAlert, error)
	// Create assigns the id and timestamp before persisting.
	Create(ctx context.Context, a *models.SystemAlert) error
	Dismiss(ctx context.Context, id string) error
	DismissAll(ctx context.Context) error
}

func matchesFilter(r models.Resource, search string, category models.Category, status models.Status, organization string) bool {
	if search != "" && !searchMatches(r, search) {
		return false
	}
	if category != "" && r.Category != category {
		return false
	}
	if status != "" && r.Status != status {
		return false
	}
	if organization != "" && r.Organization != organization {
		return false
	}
	return true
}
