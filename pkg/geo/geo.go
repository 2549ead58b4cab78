// Package geo provides great-circle distance calculations between
// geographic coordinates.
package geo

import (
	"math"
)

// EarthRadiusMiles is the mean radius of the earth in miles, used for the
// spherical-earth approximation.
const EarthRadiusMiles = 3958.8

// Miles returns the haversine great-circle distance in miles between two
// points given in decimal degrees. The result is symmetric and zero for
// identical points.
func Miles(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	a := sinLat*sinLat +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*sinLon*sinLon
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMiles * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
