package core

import "github.com/golang/geo/s2"

// EarthRadiusKm is the mean Earth radius used for great-circle distances.
const EarthRadiusKm = 6371.0088

// Haversine returns the great-circle distance in kilometers between two
// latitude/longitude points given in degrees.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	from := s2.LatLngFromDegrees(lat1, lon1)
	to := s2.LatLngFromDegrees(lat2, lon2)
	return from.Distance(to).Radians() * EarthRadiusKm
}

// DeliveryDistance returns the distance between the restaurant and the
// delivery location of a record.
func DeliveryDistance(r Record) float64 {
	return Haversine(
		r.RestaurantLatitude, r.RestaurantLongitude,
		r.DeliveryLocationLatitude, r.DeliveryLocationLongitude,
	)
}
