package geoindex

import (
	"context"
	"path/filepath"
	"testing"

	shp "github.com/jonas-p/go-shp"

	"guardian/internal/communes"
	"guardian/internal/geo"
)

// writeCommuneFixture writes a boundary shapefile covering a square of
// the given half-width (meters) around center, in EPSG:2180.
func writeCommuneFixture(t *testing.T, dir, fileStem string, center geo.Coordinate, halfM float64) {
	t.Helper()

	cx, cy := geo.ToCS92(center)
	points := []shp.Point{
		{X: cx - halfM, Y: cy - halfM},
		{X: cx + halfM, Y: cy - halfM},
		{X: cx + halfM, Y: cy + halfM},
		{X: cx - halfM, Y: cy + halfM},
		{X: cx - halfM, Y: cy - halfM},
	}
	w, err := shp.Create(filepath.Join(dir, "gminy_JPT_NAZWA__"+fileStem+".shp"), shp.POLYGON)
	if err != nil {
		t.Fatalf("create shapefile: %v", err)
	}
	w.Write(&shp.Polygon{
		Box:       shp.Box{MinX: cx - halfM, MinY: cy - halfM, MaxX: cx + halfM, MaxY: cy + halfM},
		NumParts:  1,
		NumPoints: int32(len(points)),
		Parts:     []int32{0},
		Points:    points,
	})
	if err := w.SetFields([]shp.Field{shp.StringField("JPT_NAZWA_", 100)}); err != nil {
		t.Fatalf("set dbf fields: %v", err)
	}
	w.WriteAttribute(0, 0, fileStem)
	w.Close()
}

func TestIndexFindCommunes(t *testing.T) {
	dir := t.TempDir()
	warsaw := geo.Coordinate{Lat: 52.2297, Lng: 21.0122}
	krakow := geo.Coordinate{Lat: 50.0647, Lng: 19.9450}
	writeCommuneFixture(t, dir, "Warszawa", warsaw, 5000)
	writeCommuneFixture(t, dir, "Krakow_Centrum", krakow, 5000)

	idx, err := LoadDir(dir)
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if idx.Empty() {
		t.Fatal("index is empty after loading fixtures")
	}

	// Gdańsk sits in neither square.
	results, err := idx.FindCommunes(context.Background(), []geo.Coordinate{
		warsaw,
		krakow,
		{Lat: 54.3520, Lng: 18.6466},
	})
	if err != nil {
		t.Fatalf("FindCommunes() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}

	if results[0].Status != communes.StatusFound || results[0].CommuneName != "Warszawa" {
		t.Errorf("warsaw result = %+v", results[0])
	}
	// Underscores in file names become spaces in commune names.
	if results[1].Status != communes.StatusFound || results[1].CommuneName != "Krakow Centrum" {
		t.Errorf("krakow result = %+v", results[1])
	}
	if results[2].Status != communes.StatusNotFound || results[2].CommuneName != "" {
		t.Errorf("gdansk result = %+v", results[2])
	}
}

func TestIndexEmptyDirReportsNoShapefiles(t *testing.T) {
	idx, err := LoadDir(t.TempDir())
	if err != nil {
		t.Fatalf("LoadDir() error = %v", err)
	}
	if !idx.Empty() {
		t.Fatal("index should be empty")
	}

	results, err := idx.FindCommunes(context.Background(), []geo.Coordinate{{Lat: 52, Lng: 21}})
	if err != nil {
		t.Fatalf("FindCommunes() error = %v", err)
	}
	if results[0].Status != communes.StatusNoShapefiles {
		t.Errorf("status = %q, want %q", results[0].Status, communes.StatusNoShapefiles)
	}
}

func TestIndexMissingDir(t *testing.T) {
	if _, err := LoadDir(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("LoadDir() on a missing directory should fail")
	}
}

func TestPolygonContains(t *testing.T) {
	square := polygon{
		box:   box{minX: 0, minY: 0, maxX: 10, maxY: 10},
		rings: [][]point{{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}}},
	}
	if !square.contains(point{5, 5}) {
		t.Error("center should be inside")
	}
	if square.contains(point{15, 5}) {
		t.Error("point east of the square should be outside")
	}

	// A hole punched in the middle flips containment there.
	holed := polygon{
		box: square.box,
		rings: [][]point{
			{{0, 0}, {10, 0}, {10, 10}, {0, 10}, {0, 0}},
			{{4, 4}, {6, 4}, {6, 6}, {4, 6}, {4, 4}},
		},
	}
	if holed.contains(point{5, 5}) {
		t.Error("point inside the hole should be outside")
	}
	if !holed.contains(point{2, 2}) {
		t.Error("point between hole and outer ring should be inside")
	}
}
