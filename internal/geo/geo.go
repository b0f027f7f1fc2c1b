// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

// Package geo provides great-circle distance math, distance display
// formatting, and geo-cell derivation shared by the aggregator, the
// venue cache, and the recommendation orchestrator.
package geo

import (
	"fmt"
	"math"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371.0

// DistanceKm returns the great-circle distance between two coordinates
// in kilometers using the haversine formula.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	lat1Rad := lat1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	deltaLat := (lat2 - lat1) * math.Pi / 180
	deltaLon := (lon2 - lon1) * math.Pi / 180

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// DistanceM returns the great-circle distance in meters.
func DistanceM(lat1, lon1, lat2, lon2 float64) float64 {
	return DistanceKm(lat1, lon1, lat2, lon2) * 1000
}

// FormatDistance renders a distance for display: meters below 1km
// ("750m", "0m"), otherwise kilometers with one decimal ("4.2km").
func FormatDistance(km float64) string {
	if km < 0 {
		km = 0
	}
	if km < 1.0 {
		return fmt.Sprintf("%.0fm", km*1000)
	}
	return fmt.Sprintf("%.1fkm", km)
}

// CellKey identifies a geographic cache cell. Coordinates are rounded to
// cellPrecision decimal places so nearby queries share a cell.
type CellKey struct {
	Lat float64
	Lon float64
}

// cellPrecision is the number of decimal places kept when deriving a cell
// key. Two decimals is roughly a 1.1km cell at the equator, which matches
// the radius granularity of provider searches.
const cellPrecision = 2

// CellFor returns the cache cell containing the given coordinates.
func CellFor(lat, lon float64) CellKey {
	scale := math.Pow(10, cellPrecision)
	return CellKey{
		Lat: math.Round(lat*scale) / scale,
		Lon: math.Round(lon*scale) / scale,
	}
}

// String renders the cell key in a stable form usable as a cache key.
func (k CellKey) String() string {
	return fmt.Sprintf("cell:%.*f:%.*f", cellPrecision, k.Lat, cellPrecision, k.Lon)
}
