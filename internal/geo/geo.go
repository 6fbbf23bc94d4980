package geo

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0

// Coordinate is a geographic point in degrees (WGS 84).
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsFinite reports whether both components are finite numbers. Values outside
// the usual [-90,90]/[-180,180] ranges are still accepted; only NaN and Inf
// are rejected.
func (c Coordinate) IsFinite() bool {
	return !math.IsNaN(c.Lat) && !math.IsInf(c.Lat, 0) &&
		!math.IsNaN(c.Lng) && !math.IsInf(c.Lng, 0)
}

// DistanceKm returns the haversine great-circle distance between two points
// in kilometers. Symmetric, and zero for equal points.
func DistanceKm(a, b Coordinate) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(a.Lat))*math.Cos(toRadians(b.Lat))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// PathDistanceKm returns the summed distance over consecutive pairs of the
// ordered point sequence. Sequences shorter than two points have length zero.
func PathDistanceKm(points []Coordinate) float64 {
	if len(points) < 2 {
		return 0
	}

	total := 0.0
	for i := 0; i < len(points)-1; i++ {
		total += DistanceKm(points[i], points[i+1])
	}
	return total
}

// EstimatedTimeHours returns the travel time for a distance at a nominal
// speed. The speed is a parameter so callers and tests can vary it.
func EstimatedTimeHours(distanceKm, speedKmh float64) float64 {
	return distanceKm / speedKmh
}

// Interpolate returns the point a fraction t of the way from a to b, linear
// per axis. t=0 yields a, t=1 yields b.
func Interpolate(a, b Coordinate, t float64) Coordinate {
	return Coordinate{
		Lat: a.Lat + (b.Lat-a.Lat)*t,
		Lng: a.Lng + (b.Lng-a.Lng)*t,
	}
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
