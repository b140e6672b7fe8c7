package overlay

import (
	"context"
	"math"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	shp "github.com/jonas-p/go-shp"

	"guardian/internal/geo"
)

// writeBoundaryFixture writes a commune boundary shapefile pair in
// EPSG:2180 covering a small square around the given center.
func writeBoundaryFixture(t *testing.T, dir, communeName string, center geo.Coordinate) {
	t.Helper()

	cx, cy := geo.ToCS92(center)
	const half = 1000.0 // meters
	points := []shp.Point{
		{X: cx - half, Y: cy - half},
		{X: cx + half, Y: cy - half},
		{X: cx + half, Y: cy + half},
		{X: cx - half, Y: cy + half},
		{X: cx - half, Y: cy - half},
	}

	path := filepath.Join(dir, boundaryFileName(communeName, ".shp"))
	w, err := shp.Create(path, shp.POLYGON)
	if err != nil {
		t.Fatalf("create shapefile: %v", err)
	}
	poly := &shp.Polygon{
		Box:       shp.Box{MinX: cx - half, MinY: cy - half, MaxX: cx + half, MaxY: cy + half},
		NumParts:  1,
		NumPoints: int32(len(points)),
		Parts:     []int32{0},
		Points:    points,
	}
	w.Write(poly)
	if err := w.SetFields([]shp.Field{shp.StringField("JPT_NAZWA_", 100)}); err != nil {
		t.Fatalf("set dbf fields: %v", err)
	}
	w.WriteAttribute(0, 0, communeName)
	w.Close()

	// go-shp names the attribute table "<stem>dbf"; the loader fetches
	// the conventional dotted name, so publish it under that.
	stem := strings.TrimSuffix(path, ".shp")
	if err := os.Rename(stem+"dbf", stem+".dbf"); err != nil && !os.IsNotExist(err) {
		t.Fatalf("rename dbf: %v", err)
	}
}

func TestLoaderLoadsBoundary(t *testing.T) {
	dir := t.TempDir()
	warsaw := geo.Coordinate{Lat: 52.2297, Lng: 21.0122}
	writeBoundaryFixture(t, dir, "Warszawa", warsaw)

	srv := httptest.NewServer(http.FileServer(http.Dir(dir)))
	defer srv.Close()

	l := NewLoader(srv.URL)
	fc := l.Load(context.Background(), []string{"Warszawa"})
	if len(fc.Features) != 1 {
		t.Fatalf("loaded %d features, want 1", len(fc.Features))
	}
	f := fc.Features[0]
	if name, err := f.PropertyString("communeName"); err != nil || name != "Warszawa" {
		t.Errorf("communeName property = %q, %v", name, err)
	}
	if !f.Geometry.IsPolygon() {
		t.Fatalf("geometry type = %v, want polygon", f.Geometry.Type)
	}

	// The reprojected ring must sit around the original WGS84 center.
	ring := f.Geometry.Polygon[0]
	if len(ring) != 5 {
		t.Fatalf("ring has %d positions, want 5", len(ring))
	}
	for _, pos := range ring {
		if math.Abs(pos[0]-warsaw.Lng) > 0.1 || math.Abs(pos[1]-warsaw.Lat) > 0.1 {
			t.Errorf("position %v too far from %v", pos, warsaw)
		}
	}
}

func TestLoaderOmitsMissingCommune(t *testing.T) {
	dir := t.TempDir()
	writeBoundaryFixture(t, dir, "Warszawa", geo.Coordinate{Lat: 52.2297, Lng: 21.0122})

	srv := httptest.NewServer(http.FileServer(http.Dir(dir)))
	defer srv.Close()

	l := NewLoader(srv.URL)
	fc := l.Load(context.Background(), []string{"Warszawa", "Atlantyda"})
	if len(fc.Features) != 1 {
		t.Fatalf("loaded %d features, want 1 (missing commune omitted)", len(fc.Features))
	}
}

func TestLoaderTreatsHTMLAsMissing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>not here</body></html>"))
	}))
	defer srv.Close()

	l := NewLoader(srv.URL)
	fc := l.Load(context.Background(), []string{"Warszawa"})
	if len(fc.Features) != 0 {
		t.Fatalf("loaded %d features from an HTML page, want 0", len(fc.Features))
	}
}

func TestLoaderDeduplicatesNames(t *testing.T) {
	got := uniqueNames([]string{"B", "A", "B", "", "A"})
	if len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Fatalf("uniqueNames = %v, want [A B]", got)
	}
}

func TestLoaderLatestSurvivesStaleLoads(t *testing.T) {
	dir := t.TempDir()
	writeBoundaryFixture(t, dir, "Warszawa", geo.Coordinate{Lat: 52.2297, Lng: 21.0122})

	srv := httptest.NewServer(http.FileServer(http.Dir(dir)))
	defer srv.Close()

	l := NewLoader(srv.URL)
	l.Load(context.Background(), []string{"Warszawa"})
	if len(l.Latest().Features) != 1 {
		t.Fatalf("Latest() has %d features, want 1", len(l.Latest().Features))
	}
}
