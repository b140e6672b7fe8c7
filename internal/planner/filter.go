package planner

import (
	"math"
	"strings"

	"guardian/internal/geo"
	"guardian/internal/models"
)

// FilterAll is the sentinel meaning "no constraint" for category,
// status and organization.
const FilterAll = "all"

const (
	RadiusDefaultKm = 50.0
	RadiusMinKm     = 1.0
	RadiusMaxKm     = 500.0
)

// FilterState is the compound predicate applied to the annotated
// collection. It is the single source of truth mirrored to the URL.
type FilterState struct {
	SearchText   string  `json:"searchText"`
	Category     string  `json:"category"`
	Status       string  `json:"status"`
	Organization string  `json:"organization"`
	RadiusKm     float64 `json:"radiusKm"`
}

// DefaultFilterState returns the unconstrained state.
func DefaultFilterState() FilterState {
	return FilterState{
		Category:     FilterAll,
		Status:       FilterAll,
		Organization: FilterAll,
		RadiusKm:     RadiusDefaultKm,
	}
}

// IsDefault reports whether no clause constrains the collection.
func (s FilterState) IsDefault() bool {
	return s == DefaultFilterState()
}

// ClampRadius forces RadiusKm into its valid range, substituting the
// default for non-positive or NaN-ish input.
func (s FilterState) ClampRadius() FilterState {
	switch {
	case math.IsNaN(s.RadiusKm) || s.RadiusKm <= 0:
		s.RadiusKm = RadiusDefaultKm
	case s.RadiusKm < RadiusMinKm:
		s.RadiusKm = RadiusMinKm
	case s.RadiusKm > RadiusMaxKm:
		s.RadiusKm = RadiusMaxKm
	}
	return s
}

// Filter applies every active clause of state conjunctively, preserving
// input order. The reference point anchors the radius clause. Resources
// without coordinates always pass the radius clause so incomplete
// records stay visible.
func Filter(resources []models.AnnotatedResource, state FilterState, reference geo.Coordinate) []models.AnnotatedResource {
	state = state.ClampRadius()
	out := make([]models.AnnotatedResource, 0, len(resources))
	for _, r := range resources {
		if matches(r, state, reference) {
			out = append(out, r)
		}
	}
	return out
}

func matches(r models.AnnotatedResource, state FilterState, reference geo.Coordinate) bool {
	if q := strings.TrimSpace(state.SearchText); q != "" && !textMatches(r, q) {
		return false
	}
	if state.Category != "" && state.Category != FilterAll && string(r.Category) != state.Category {
		return false
	}
	if state.Status != "" && state.Status != FilterAll && string(r.Status) != state.Status {
		return false
	}
	if state.Organization != "" && state.Organization != FilterAll && r.Organization != state.Organization {
		return false
	}
	// The radius clause only applies once the user moves it off the
	// default; records without coordinates always pass it.
	if state.RadiusKm != RadiusDefaultKm {
		if c := r.Location.Coordinates; c != nil {
			if geo.DistanceKm(reference, *c) > state.RadiusKm {
				return false
			}
		}
	}
	return true
}

func textMatches(r models.AnnotatedResource, q string) bool {
	q = strings.ToLower(q)
	return strings.Contains(strings.ToLower(r.Name), q) ||
		strings.Contains(strings.ToLower(r.Description), q) ||
		strings.Contains(strings.ToLower(r.Location.Name), q) ||
		strings.Contains(strings.ToLower(r.CommuneName), q)
}
