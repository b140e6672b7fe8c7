package geo

import "github.com/wroge/wgs84"

// Commune boundary shapefiles are published in the Polish CS92 grid
// (ETRS89 / Poland CS92, EPSG:2180); markers and overlays need WGS84.
// EPSG:2180 is a transverse Mercator projection on ETRS89 with central
// meridian 19°E, scale 0.9993, false easting 500000 and false northing
// -5300000.
var (
	polandCS92   = wgs84.ETRS89().TransverseMercator(19, 0, 0.9993, 500000, -5300000)
	cs92ToLonLat = polandCS92.To(wgs84.LonLat())
	lonLatToCS92 = wgs84.LonLat().To(polandCS92)
)

// FromCS92 converts an EPSG:2180 easting/northing pair to WGS84.
func FromCS92(x, y float64) Coordinate {
	lon, lat, _ := cs92ToLonLat(x, y, 0)
	return Coordinate{Lat: lat, Lng: lon}
}

// ToCS92 converts a WGS84 coordinate to EPSG:2180 easting/northing.
func ToCS92(c Coordinate) (x, y float64) {
	x, y, _ = lonLatToCS92(c.Lng, c.Lat, 0)
	return x, y
}
