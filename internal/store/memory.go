package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"guardian/internal/models"
	appErr "guardian/pkg/errors"
)

// MemoryResourceStore is the in-memory ResourceStore used for tests and
// standalone deployments without a database.
type MemoryResourceStore struct {
	mu        sync.RWMutex
	resources []models.Resource
}

// NewMemoryResourceStore seeds the store with the given records as-is
// (ids and timestamps preserved).
func NewMemoryResourceStore(seed []models.Resource) *MemoryResourceStore {
	s := &MemoryResourceStore{resources: make([]models.Resource, len(seed))}
	copy(s.resources, seed)
	return s
}

func (s *MemoryResourceStore) List(ctx context.Context) ([]models.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Resource, len(s.resources))
	copy(out, s.resources)
	return out, nil
}

func (s *MemoryResourceStore) GetByID(ctx context.Context, id string) (*models.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.resources {
		if r.ID == id {
			cp := r
			return &cp, nil
		}
	}
	return nil, appErr.New(appErr.CodeNotFound, "resource not found").WithMeta("id", id)
}

func (s *MemoryResourceStore) Add(ctx context.Context, r *models.Resource) error {
	if err := r.Validate(); err != nil {
		return appErr.Wrap(err, appErr.CodeInvalid, "invalid resource")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	r.ID = uuid.NewString()
	r.LastUpdated = time.Now().UTC()
	s.resources = append(s.resources, *r)
	return nil
}

func (s *MemoryResourceStore) Update(ctx context.Context, r *models.Resource) error {
	if err := r.Validate(); err != nil {
		return appErr.Wrap(err, appErr.CodeInvalid, "invalid resource")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.resources {
		if s.resources[i].ID == r.ID {
			r.LastUpdated = time.Now().UTC()
			s.resources[i] = *r
			return nil
		}
	}
	return appErr.New(appErr.CodeNotFound, "resource not found").WithMeta("id", r.ID)
}

func (s *MemoryResourceStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.resources {
		if s.resources[i].ID == id {
			s.resources = append(s.resources[:i], s.resources[i+1:]...)
			return nil
		}
	}
	return appErr.New(appErr.CodeNotFound, "resource not found").WithMeta("id", id)
}

func (s *MemoryResourceStore) Filter(ctx context.Context, search string, category models.Category, status models.Status, organization string) ([]models.Resource, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.Resource
	for _, r := range s.resources {
		if matchesFilter(r, search, category, status, organization) {
			out = append(out, r)
		}
	}
	return out, nil
}

func searchMatches(r models.Resource, search string) bool {
	q := strings.ToLower(search)
	return strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(r.Description), q) ||
		strings.Contains(strings.ToLower(r.Location.Name), q) ||
		strings.Contains(strings.ToLower(r.Location.Address), q)
}

// MemoryAlertStore is the in-memory AlertStore.
type MemoryAlertStore struct {
	mu     sync.RWMutex
	alerts []models.SystemAlert
}

func NewMemoryAlertStore(seed []models.SystemAlert) *MemoryAlertStore {
	s := &MemoryAlertStore{alerts: make([]models.SystemAlert, len(seed))}
	copy(s.alerts, seed)
	return s
}

func (s *MemoryAlertStore) ListAll(ctx context.Context) ([]models.SystemAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.SystemAlert, len(s.alerts))
	copy(out, s.alerts)
	return out, nil
}

func (s *MemoryAlertStore) ListActive(ctx context.Context) ([]models.SystemAlert, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.SystemAlert
	for _, a := range s.alerts {
		if !a.Dismissed {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *MemoryAlertStore) Create(ctx context.Context, a *models.SystemAlert) error {
	if !a.Severity.Valid() {
		return appErr.New(appErr.CodeInvalid, "invalid alert severity").WithMeta("severity", string(a.Severity))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = uuid.NewString()
	a.Timestamp = time.Now().UTC()
	s.alerts = append(s.alerts, *a)
	return nil
}

func (s *MemoryAlertStore) Dismiss(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.alerts {
		if s.alerts[i].ID == id {
			s.alerts[i].Dismissed = true
			return nil
		}
	}
	return appErr.New(appErr.CodeNotFound, "alert not found").WithMeta("id", id)
}

func (s *MemoryAlertStore) DismissAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.alerts {
		s.alerts[i].Dismissed = true
	}
	return nil
}

var (
	_ ResourceStore = (*MemoryResourceStore)(nil)
	_ AlertStore    = (*MemoryAlertStore)(nil)
)
