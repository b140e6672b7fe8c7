package overlay

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	geojson "github.com/paulmach/go.geojson"
	"go.uber.org/zap"

	appErr "guardian/pkg/errors"
	"guardian/pkg/logger"
)

// Loader fetches commune boundary overlays for the currently filtered
// resource set. Communes whose boundary files are missing or broken
// are simply absent from the result; the map renders what it has.
type Loader struct {
	baseURL string
	http    *http.Client

	// gen invalidates slow in-flight loads. A load publishes its
	// result only if no newer load started after it.
	gen    atomic.Uint64
	mu     sync.RWMutex
	latest *geojson.FeatureCollection
}

func NewLoader(baseURL string) *Loader {
	return &Loader{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		latest:  geojson.NewFeatureCollection(),
	}
}

// Load fetches boundaries for the given commune names concurrently and
// returns the resulting collection. Names are deduplicated; empty
// names are skipped. Per-commune failures are logged and omitted, not
// surfaced.
func (l *Loader) Load(ctx context.Context, communeNames []string) *geojson.FeatureCollection {
	gen := l.gen.Add(1)

	names := uniqueNames(communeNames)
	features := make([]*geojson.Feature, len(names))

	var wg sync.WaitGroup
	for i, name := range names {
		wg.Add(1)
		go func(i int, name string) {
			defer wg.Done()
			f, err := l.loadOne(ctx, name)
			if err != nil {
				if !appErr.IsCode(err, appErr.CodeNotFound) {
					logger.L().Warn("boundary overlay skipped",
						zap.String("commune", name), zap.Error(err))
				}
				return
			}
			features[i] = f
		}(i, name)
	}
	wg.Wait()

	fc := geojson.NewFeatureCollection()
	for _, f := range features {
		if f != nil {
			fc.AddFeature(f)
		}
	}

	l.mu.Lock()
	if gen == l.gen.Load() {
		l.latest = fc
	}
	l.mu.Unlock()
	return fc
}

// Latest returns the most recently published overlay collection.
func (l *Loader) Latest() *geojson.FeatureCollection {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.latest
}

func (l *Loader) loadOne(ctx context.Context, communeName string) (*geojson.Feature, error) {
	shpBody, err := fetchBoundaryPart(ctx, l.http, l.baseURL+"/"+boundaryFileName(communeName, ".shp"))
	if err != nil {
		return nil, err
	}
	defer shpBody.Close()

	dbfBody, err := fetchBoundaryPart(ctx, l.http, l.baseURL+"/"+boundaryFileName(communeName, ".dbf"))
	if err != nil {
		return nil, err
	}
	defer dbfBody.Close()

	return parseBoundary(communeName, shpBody, dbfBody)
}

func uniqueNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	var out []string
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}
