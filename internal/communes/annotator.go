package communes

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"guardian/internal/geo"
	"guardian/internal/models"
	"guardian/pkg/logger"
)

// Resolver is the lookup dependency of the annotator. *Client and the
// in-process geoindex service both satisfy it.
type Resolver interface {
	FindCommunes(ctx context.Context, coords []geo.Coordinate) ([]LookupResult, error)
}

// Annotator attaches commune names to resources. Results are never
// cached across calls; the collection is re-resolved whenever it
// changes.
type Annotator struct {
	resolver Resolver
}

func NewAnnotator(r Resolver) *Annotator {
	return &Annotator{resolver: r}
}

// coordKey collapses coordinates that agree to ~0.1m so co-located
// resources share one lookup.
func coordKey(c geo.Coordinate) string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lng)
}

// Annotate resolves each unique coordinate once and maps the names
// back onto the full collection, preserving order. Lookup failure is
// absorbed: the resources come back without commune names and the
// cause is logged, since a missing label must not take down the view.
func (a *Annotator) Annotate(ctx context.Context, resources []models.Resource) []models.AnnotatedResource {
	out := models.Annotate(resources)

	var unique []geo.Coordinate
	index := make(map[string]int)
	for _, r := range resources {
		c := r.Location.Coordinates
		if c == nil {
			continue
		}
		key := coordKey(*c)
		if _, seen := index[key]; !seen {
			index[key] = len(unique)
			unique = append(unique, *c)
		}
	}
	if len(unique) == 0 {
		return out
	}

	results, err := a.resolver.FindCommunes(ctx, unique)
	if err != nil {
		logger.L().Warn("commune annotation skipped", zap.Error(err))
		return out
	}
	if len(results) != len(unique) {
		logger.L().Warn("commune annotation skipped",
			zap.Int("sent", len(unique)), zap.Int("received", len(results)))
		return out
	}

	for i := range out {
		c := out[i].Location.Coordinates
		if c == nil {
			continue
		}
		res := results[index[coordKey(*c)]]
		if res.Status == StatusFound {
			out[i].CommuneName = res.CommuneName
		}
	}
	return out
}
