package dashboard

import (
	"context"
	"sort"

	"guardian/internal/models"
	"guardian/internal/store"
)

// LowLevelPct marks battery or fuel readings that make a resource
// operationally critical.
const LowLevelPct = 20.0

// DefaultRecentLimit bounds the recent-activity feed.
const DefaultRecentLimit = 5

// Summary is the dashboard headline view of the fleet.
type Summary struct {
	Total      int                     `json:"total"`
	ByCategory map[models.Category]int `json:"byCategory"`
	ByStatus   map[models.Status]int   `json:"byStatus"`
	Critical   []models.Resource       `json:"critical"`
	Recent     []models.Resource       `json:"recent"`
}

// Service computes dashboard aggregates from the live store.
type Service struct {
	resources store.ResourceStore
}

func NewService(resources store.ResourceStore) *Service {
	return &Service{resources: resources}
}

// Summarize builds the dashboard aggregates. Critical resources are
// those unavailable or with battery/fuel below the low-level mark.
// Recent resources are the most recently updated, newest first.
func (s *Service) Summarize(ctx context.Context, recentLimit int) (*Summary, error) {
	resources, err := s.resources.List(ctx)
	if err != nil {
		return nil, err
	}
	if recentLimit <= 0 {
		recentLimit = DefaultRecentLimit
	}

	sum := &Summary{
		Total:      len(resources),
		ByCategory: make(map[models.Category]int),
		ByStatus:   make(map[models.Status]int),
	}
	for _, r := range resources {
		sum.ByCategory[r.Category]++
		sum.ByStatus[r.Status]++
		if isCritical(r) {
			sum.Critical = append(sum.Critical, r)
		}
	}

	recent := make([]models.Resource, len(resources))
	copy(recent, resources)
	sort.SliceStable(recent, func(i, j int) bool {
		return recent[i].LastUpdated.After(recent[j].LastUpdated)
	})
	if len(recent) > recentLimit {
		recent = recent[:recentLimit]
	}
	sum.Recent = recent
	return sum, nil
}

func isCritical(r models.Resource) bool {
	if r.Status == models.StatusUnavailable {
		return true
	}
	if t := r.Telemetry; t != nil {
		if t.Battery != nil && *t.Battery < LowLevelPct {
			return true
		}
		if t.Fuel != nil && *t.Fuel < LowLevelPct {
			return true
		}
	}
	return false
}
