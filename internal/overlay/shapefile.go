package overlay

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	shp "github.com/jonas-p/go-shp"
	geojson "github.com/paulmach/go.geojson"

	"guardian/internal/geo"
	appErr "guardian/pkg/errors"
)

// boundaryFileName derives the published file name for a commune
// boundary. Spaces in commune names become underscores.
func boundaryFileName(communeName, ext string) string {
	return "gminy_JPT_NAZWA__" + strings.ReplaceAll(communeName, " ", "_") + ext
}

// fetchBoundaryPart downloads one half of a shp/dbf pair. Static file
// hosts answer missing paths with an HTML page and status 200, so an
// HTML content type counts as not found.
func fetchBoundaryPart(ctx context.Context, client *http.Client, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "build boundary request failed")
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, appErr.Wrap(err, appErr.CodeUnavailable, "boundary fetch failed")
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, appErr.New(appErr.CodeNotFound, fmt.Sprintf("boundary fetch returned %d", resp.StatusCode))
	}
	if ct := resp.Header.Get("Content-Type"); strings.Contains(ct, "text/html") {
		resp.Body.Close()
		return nil, appErr.New(appErr.CodeNotFound, "boundary path answered with an HTML page")
	}
	return resp.Body, nil
}

// parseBoundary reads a shp/dbf stream pair holding one commune's
// polygons in EPSG:2180, reprojects every ring to WGS84 and returns a
// single geojson feature tagged with the commune name.
func parseBoundary(communeName string, shpBody, dbfBody io.ReadCloser) (*geojson.Feature, error) {
	r := shp.SequentialReaderFromExt(shpBody, dbfBody)
	defer r.Close()

	var polygons [][][][]float64
	for r.Next() {
		_, shape := r.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok {
			continue
		}
		polygons = append(polygons, polygonRings(poly))
	}
	if err := r.Err(); err != nil && err != io.EOF {
		return nil, appErr.Wrap(err, appErr.CodeInternal, "parse boundary shapefile failed")
	}
	if len(polygons) == 0 {
		return nil, appErr.New(appErr.CodeNotFound, "boundary shapefile holds no polygons")
	}

	var f *geojson.Feature
	if len(polygons) == 1 {
		f = geojson.NewPolygonFeature(polygons[0])
	} else {
		f = geojson.NewMultiPolygonFeature(polygons...)
	}
	f.SetProperty("communeName", communeName)
	return f, nil
}

// polygonRings converts a shapefile polygon's parts into geojson ring
// arrays of [lng, lat] positions.
func polygonRings(poly *shp.Polygon) [][][]float64 {
	rings := make([][][]float64, 0, len(poly.Parts))
	for i, start := range poly.Parts {
		end := int32(len(poly.Points))
		if i+1 < len(poly.Parts) {
			end = poly.Parts[i+1]
		}
		ring := make([][]float64, 0, end-start)
		for _, p := range poly.Points[start:end] {
			c := geo.FromCS92(p.X, p.Y)
			ring = append(ring, []float64{c.Lng, c.Lat})
		}
		rings = append(rings, ring)
	}
	return rings
}
