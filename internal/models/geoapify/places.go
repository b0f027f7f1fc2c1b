// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

// Package geoapify defines response types for the Geoapify Places API.
//
// Geoapify returns GeoJSON FeatureCollections; only the properties the
// aggregator consumes are modeled.
// API reference: https://apidocs.geoapify.com/docs/places/
package geoapify

// PlacesResponse is the GeoJSON envelope returned by GET /v2/places.
type PlacesResponse struct {
	Type     string    `json:"type"` // "FeatureCollection"
	Features []Feature `json:"features"`
}

// Feature is one GeoJSON feature (a place).
type Feature struct {
	Type       string     `json:"type"` // "Feature"
	Properties Properties `json:"properties"`
	Geometry   Geometry   `json:"geometry"`
}

// Properties carries the place attributes.
type Properties struct {
	PlaceID    string   `json:"place_id"`
	Name       string   `json:"name,omitempty"`
	Formatted  string   `json:"formatted,omitempty"` // full formatted address
	Street     string   `json:"street,omitempty"`
	City       string   `json:"city,omitempty"`
	Suburb     string   `json:"suburb,omitempty"`
	Lat        float64  `json:"lat"`
	Lon        float64  `json:"lon"`
	Categories []string `json:"categories,omitempty"` // e.g. "catering.restaurant.italian"

	Catering *Catering `json:"catering,omitempty"`

	OpeningHours string     `json:"opening_hours,omitempty"` // OSM syntax, e.g. "Mo-Su 11:00-23:00"
	Datasource   Datasource `json:"datasource,omitempty"`
}

// Catering holds restaurant-specific details when present.
type Catering struct {
	Cuisine string `json:"cuisine,omitempty"` // e.g. "italian;pizza"
}

// Datasource identifies where Geoapify sourced the record from.
type Datasource struct {
	Sourcename string `json:"sourcename,omitempty"` // usually "openstreetmap"
	Raw        Raw    `json:"raw,omitempty"`
}

// Raw exposes selected raw source tags.
type Raw struct {
	Cuisine string `json:"cuisine,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Website string `json:"website,omitempty"`
}

// Geometry is the GeoJSON point geometry ([lon, lat]).
type Geometry struct {
	Type        string    `json:"type"` // "Point"
	Coordinates []float64 `json:"coordinates"`
}
