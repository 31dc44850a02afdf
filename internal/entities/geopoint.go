package entities

import "math"

const earthRadiusKm = 6371.0

// GeoPoint is a location resolved from a free-text address. Coordinates are
// kept as named latitude/longitude fields; every API surface and query in the
// system follows the (lat, lon) order.
type GeoPoint struct {
	Latitude         float64
	Longitude        float64
	FormattedAddress string
	City             string
	State            string
	ZipCode          string
	CountryCode      string
}

// DistanceKm returns the great-circle distance from the point to (lat, lon)
// in kilometers.
func (p GeoPoint) DistanceKm(lat, lon float64) float64 {
	dLat := radians(lat - p.Latitude)
	dLon := radians(lon - p.Longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(p.Latitude))*math.Cos(radians(lat))*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
