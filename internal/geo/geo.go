package geo

import "math"

const (
	EarthRadiusKm = 6371.0
	DegToRad      = math.Pi / 180.0
)

// Coordinate is a WGS84 point in degrees.
type Coordinate struct {
	Lat float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lng float64 `json:"lng" validate:"gte=-180,lte=180"`
}

// Valid reports whether the coordinate is inside WGS84 bounds.
func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lng >= -180 && c.Lng <= 180
}

// DistanceKm returns the great-circle distance between two coordinates
// using the Haversine formula.
func DistanceKm(a, b Coordinate) float64 {
	lat1 := a.Lat * DegToRad
	lat2 := b.Lat * DegToRad
	dlat := (b.Lat - a.Lat) * DegToRad
	dlng := (b.Lng - a.Lng) * DegToRad

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlng/2)*math.Sin(dlng/2)
	return EarthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// Bounds is a geographic bounding box.
type Bounds struct {
	SouthWest Coordinate `json:"southWest"`
	NorthEast Coordinate `json:"northEast"`
}

// BoundsOf computes the bounding box of the given coordinates.
// ok is false when the slice is empty.
func BoundsOf(coords []Coordinate) (b Bounds, ok bool) {
	if len(coords) == 0 {
		return Bounds{}, false
	}
	b = Bounds{SouthWest: coords[0], NorthEast: coords[0]}
	for _, c := range coords[1:] {
		b.SouthWest.Lat = math.Min(b.SouthWest.Lat, c.Lat)
		b.SouthWest.Lng = math.Min(b.SouthWest.Lng, c.Lng)
		b.NorthEast.Lat = math.Max(b.NorthEast.Lat, c.Lat)
		b.NorthEast.Lng = math.Max(b.NorthEast.Lng, c.Lng)
	}
	return b, true
}

// Center returns the midpoint of the bounding box.
func (b Bounds) Center() Coordinate {
	return Coordinate{
		Lat: (b.SouthWest.Lat + b.NorthEast.Lat) / 2,
		Lng: (b.SouthWest.Lng + b.NorthEast.Lng) / 2,
	}
}

// SpanKm returns the diagonal extent of the bounding box in kilometers.
func (b Bounds) SpanKm() float64 {
	return DistanceKm(b.SouthWest, b.NorthEast)
}
