// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

// Package foursquare defines response types for the Foursquare Places API (v3).
//
// Only the fields the aggregator consumes are modeled; the API returns many
// more. API reference: https://docs.foursquare.com/developer/reference/place-search
package foursquare

// SearchResponse is the envelope returned by GET /v3/places/search.
type SearchResponse struct {
	Results []Place `json:"results"`
}

// Place is a single Foursquare place listing.
type Place struct {
	FsqID      string     `json:"fsq_id"`
	Name       string     `json:"name"`
	Categories []Category `json:"categories,omitempty"`
	Geocodes   Geocodes   `json:"geocodes"`
	Location   Location   `json:"location"`

	// Rating is on Foursquare's 0-10 scale.
	Rating float64 `json:"rating,omitempty"`

	// Price is 1-4 (1 = cheap, 4 = very expensive).
	Price int `json:"price,omitempty"`

	Description string  `json:"description,omitempty"`
	Photos      []Photo `json:"photos,omitempty"`
	Hours       *Hours  `json:"hours,omitempty"`
}

// Category classifies a place ("Italian Restaurant", "Cocktail Bar", ...).
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Geocodes holds the coordinate sets for a place.
type Geocodes struct {
	Main LatLng `json:"main"`
}

// LatLng is a coordinate pair.
type LatLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Location holds address information.
type Location struct {
	FormattedAddress string `json:"formatted_address,omitempty"`
	Locality         string `json:"locality,omitempty"`
	Region           string `json:"region,omitempty"`
	Postcode         string `json:"postcode,omitempty"`
}

// Photo is a photo reference; the URL is Prefix + size + Suffix.
type Photo struct {
	ID     string `json:"id"`
	Prefix string `json:"prefix"`
	Suffix string `json:"suffix"`
}

// Hours holds opening-hours information.
type Hours struct {
	Display string `json:"display,omitempty"`
	OpenNow bool   `json:"open_now,omitempty"`
}
