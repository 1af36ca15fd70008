// ABOUTME: Great-circle math over WGS84 points
// ABOUTME: Haversine distance, path length, centers, bearings, and bounds

package geo

import (
	"math"

	"github.com/harper/trailbook/internal/models"
	"github.com/paulmach/orb"
	orbgeo "github.com/paulmach/orb/geo"
)

// EarthRadiusMeters is the mean Earth radius used by DistanceMeters.
const EarthRadiusMeters = 6371000.0

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}

// DistanceMeters returns the Haversine distance between two points.
// Inputs are not range checked.
func DistanceMeters(a, b models.GeoPoint) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// PathDistanceMeters sums DistanceMeters over consecutive pairs.
// Paths shorter than two points have zero length.
func PathDistanceMeters(path models.Path) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += DistanceMeters(path[i-1], path[i])
	}
	return total
}

// Center returns the arithmetic mean of latitudes and longitudes.
// This is not a geodesic centroid and drifts near the antimeridian and poles.
func Center(path models.Path) models.GeoPoint {
	if len(path) == 0 {
		return models.GeoPoint{}
	}
	var sumLat, sumLon float64
	for _, p := range path {
		sumLat += p.Lat
		sumLon += p.Lon
	}
	n := float64(len(path))
	return models.GeoPoint{Lat: sumLat / n, Lon: sumLon / n}
}

// ToOrb converts a point to orb's [lon, lat] representation.
// It and FromOrb are the only places the coordinate order is swapped.
func ToOrb(p models.GeoPoint) orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

// FromOrb converts an orb [lon, lat] point back to a GeoPoint.
func FromOrb(p orb.Point) models.GeoPoint {
	return models.GeoPoint{Lat: p.Lat(), Lon: p.Lon()}
}

// Bearing returns the initial bearing from a to b in degrees (-180, 180].
func Bearing(a, b models.GeoPoint) float64 {
	return orbgeo.Bearing(ToOrb(a), ToOrb(b))
}

// Bound returns the bounding box of a path.
func Bound(path models.Path) orb.Bound {
	mp := make(orb.MultiPoint, len(path))
	for i, p := range path {
		mp[i] = ToOrb(p)
	}
	return mp.Bound()
}
