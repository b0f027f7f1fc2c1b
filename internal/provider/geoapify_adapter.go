// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

package provider

import (
	"strings"
	"time"

	"github.com/JennePenne123/vibematch/internal/models"
	"github.com/JennePenne123/vibematch/internal/models/geoapify"
)

// adaptGeoapifyFeature normalizes one Geoapify GeoJSON feature into a
// VenueRecord. It fails fast with ErrNoPlaceID or ErrUnnamedPlace when the
// feature lacks the fields every downstream component depends on.
//
// Geoapify has no price or rating data, so those fields stay at their zero
// values; the aggregator fills them in when merging with a Foursquare record
// for the same place.
func adaptGeoapifyFeature(f *geoapify.Feature) (*models.VenueRecord, error) {
	if f.Properties.PlaceID == "" {
		return nil, ErrNoPlaceID
	}
	if strings.TrimSpace(f.Properties.Name) == "" {
		return nil, ErrUnnamedPlace
	}

	lat, lon := f.Properties.Lat, f.Properties.Lon
	if lat == 0 && lon == 0 && len(f.Geometry.Coordinates) == 2 {
		// GeoJSON order is [lon, lat].
		lon, lat = f.Geometry.Coordinates[0], f.Geometry.Coordinates[1]
	}

	now := time.Now().UTC()
	return &models.VenueRecord{
		ID:          "gap_" + f.Properties.PlaceID,
		Name:        strings.TrimSpace(f.Properties.Name),
		Address:     f.Properties.Formatted,
		Latitude:    lat,
		Longitude:   lon,
		CuisineType: geoapifyCuisine(&f.Properties),
		Hours:       f.Properties.OpeningHours,
		Tags:        geoapifyTags(f.Properties.Categories),
		Source:      "geoapify",
		ProviderIDs: map[string]string{"geoapify": f.Properties.PlaceID},
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// geoapifyCuisine derives the cuisine type from the catering details or,
// failing that, the most specific restaurant category suffix. OSM cuisine
// values can be semicolon-separated lists ("italian;pizza"); the first entry
// wins.
func geoapifyCuisine(p *geoapify.Properties) string {
	cuisine := ""
	if p.Catering != nil && p.Catering.Cuisine != "" {
		cuisine = p.Catering.Cuisine
	} else if p.Datasource.Raw.Cuisine != "" {
		cuisine = p.Datasource.Raw.Cuisine
	}
	if cuisine != "" {
		if i := strings.IndexByte(cuisine, ';'); i >= 0 {
			cuisine = cuisine[:i]
		}
		return titleCase(strings.ReplaceAll(cuisine, "_", " "))
	}

	for _, cat := range p.Categories {
		if rest, ok := strings.CutPrefix(cat, "catering.restaurant."); ok && rest != "" {
			return titleCase(strings.ReplaceAll(rest, "_", " "))
		}
	}
	return ""
}

// geoapifyTags turns category paths into searchable tags: the last segment of
// each catering category, deduplicated ("catering.restaurant.italian" ->
// "italian").
func geoapifyTags(categories []string) []string {
	if len(categories) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(categories))
	tags := make([]string, 0, len(categories))
	for _, cat := range categories {
		if !strings.HasPrefix(cat, "catering.") {
			continue
		}
		segs := strings.Split(cat, ".")
		tag := strings.ReplaceAll(segs[len(segs)-1], "_", " ")
		if tag == "" || tag == "catering" || tag == "restaurant" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	if len(tags) == 0 {
		return nil
	}
	return tags
}

// titleCase uppercases the first letter of each space-separated word. It
// replaces strings.Title, which is deprecated, and only needs to handle ASCII
// cuisine names.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
