package geoindex

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	shp "github.com/jonas-p/go-shp"
	"go.uber.org/zap"

	"guardian/internal/communes"
	"guardian/internal/geo"
	appErr "guardian/pkg/errors"
	"guardian/pkg/logger"
)

var boundaryFilePattern = regexp.MustCompile(`(?i)^gminy_JPT_NAZWA__(.+)\.shp$`)

type point struct{ x, y float64 }

type box struct{ minX, minY, maxX, maxY float64 }

func (b box) contains(p point) bool {
	return p.x >= b.minX && p.x <= b.maxX && p.y >= b.minY && p.y <= b.maxY
}

// polygon is one shapefile record: an outer ring plus any holes, in
// EPSG:2180. Even-odd ray casting over all rings handles both.
type polygon struct {
	box   box
	rings [][]point
}

func (p polygon) contains(pt point) bool {
	if !p.box.contains(pt) {
		return false
	}
	inside := false
	for _, ring := range p.rings {
		for i, j := 0, len(ring)-1; i < len(ring); j, i = i, i+1 {
			a, b := ring[i], ring[j]
			if (a.y > pt.y) != (b.y > pt.y) &&
				pt.x < (b.x-a.x)*(pt.y-a.y)/(b.y-a.y)+a.x {
				inside = !inside
			}
		}
	}
	return inside
}

type boundary struct {
	name     string
	box      box
	polygons []polygon
}

func (b boundary) contains(pt point) bool {
	if !b.box.contains(pt) {
		return false
	}
	for _, p := range b.polygons {
		if p.contains(pt) {
			return true
		}
	}
	return false
}

// Index resolves WGS84 points to commune names using locally stored
// boundary shapefiles. Built once at startup; reads are lock-free.
type Index struct {
	boundaries []boundary
}

// LoadDir scans dir for per-commune boundary shapefiles. Files that
// fail to parse are logged and skipped. An existing but empty dir
// yields an empty index, which answers every lookup with the
// no-shapefiles status.
func LoadDir(dir string) (*Index, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeUnavailable, "shapefiles directory unreadable")
	}

	idx := &Index{}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := boundaryFilePattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		name := strings.ReplaceAll(m[1], "_", " ")
		b, err := loadBoundary(filepath.Join(dir, e.Name()), name)
		if err != nil {
			logger.L().Warn("boundary shapefile skipped",
				zap.String("file", e.Name()), zap.Error(err))
			continue
		}
		idx.boundaries = append(idx.boundaries, *b)
	}
	logger.L().Info("boundary index loaded",
		zap.String("dir", dir), zap.Int("communes", len(idx.boundaries)))
	return idx, nil
}

func loadBoundary(path, name string) (*boundary, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "open shapefile failed")
	}
	defer r.Close()

	b := &boundary{name: name}
	first := true
	for r.Next() {
		_, shape := r.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok {
			continue
		}
		p := polygon{
			box: box{minX: poly.Box.MinX, minY: poly.Box.MinY, maxX: poly.Box.MaxX, maxY: poly.Box.MaxY},
		}
		for i, start := range poly.Parts {
			end := int32(len(poly.Points))
			if i+1 < len(poly.Parts) {
				end = poly.Parts[i+1]
			}
			ring := make([]point, 0, end-start)
			for _, pt := range poly.Points[start:end] {
				ring = append(ring, point{x: pt.X, y: pt.Y})
			}
			p.rings = append(p.rings, ring)
		}
		b.polygons = append(b.polygons, p)

		if first {
			b.box = p.box
			first = false
		} else {
			if p.box.minX < b.box.minX {
				b.box.minX = p.box.minX
			}
			if p.box.minY < b.box.minY {
				b.box.minY = p.box.minY
			}
			if p.box.maxX > b.box.maxX {
				b.box.maxX = p.box.maxX
			}
			if p.box.maxY > b.box.maxY {
				b.box.maxY = p.box.maxY
			}
		}
	}
	if len(b.polygons) == 0 {
		return nil, appErr.New(appErr.CodeNotFound, "shapefile holds no polygons")
	}
	return b, nil
}

// Empty reports whether no boundaries were loaded.
func (idx *Index) Empty() bool { return len(idx.boundaries) == 0 }

// Communes lists the loaded commune names.
func (idx *Index) Communes() []string {
	out := make([]string, len(idx.boundaries))
	for i, b := range idx.boundaries {
		out[i] = b.name
	}
	return out
}

// FindCommunes resolves each coordinate to the first commune whose
// boundary contains it, in input order. With an empty index every
// result carries the no-shapefiles status.
func (idx *Index) FindCommunes(ctx context.Context, coords []geo.Coordinate) ([]communes.LookupResult, error) {
	results := make([]communes.LookupResult, 0, len(coords))
	for _, c := range coords {
		item := communes.LookupResult{
			InputCoordinate: communes.LookupCoordinate{Lat: c.Lat, Lon: c.Lng},
		}
		if idx.Empty() {
			item.Status = communes.StatusNoShapefiles
			results = append(results, item)
			continue
		}
		x, y := geo.ToCS92(c)
		pt := point{x: x, y: y}
		item.Status = communes.StatusNotFound
		for _, b := range idx.boundaries {
			if b.contains(pt) {
				item.CommuneName = b.name
				item.Status = communes.StatusFound
				break
			}
		}
		results = append(results, item)
	}
	return results, nil
}

var _ communes.Resolver = (*Index)(nil)
