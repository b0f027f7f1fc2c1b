// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

package provider

import (
	"strings"
	"time"

	"github.com/JennePenne123/vibematch/internal/models"
	"github.com/JennePenne123/vibematch/internal/models/foursquare"
)

// adaptFoursquarePlace normalizes one Foursquare listing into a VenueRecord.
// It fails fast with ErrNoPlaceID or ErrUnnamedPlace when the listing lacks
// the fields every downstream component depends on.
func adaptFoursquarePlace(p *foursquare.Place) (*models.VenueRecord, error) {
	if p.FsqID == "" {
		return nil, ErrNoPlaceID
	}
	if strings.TrimSpace(p.Name) == "" {
		return nil, ErrUnnamedPlace
	}

	now := time.Now().UTC()
	v := &models.VenueRecord{
		ID:          "fsq_" + p.FsqID,
		Name:        strings.TrimSpace(p.Name),
		Address:     p.Location.FormattedAddress,
		Latitude:    p.Geocodes.Main.Latitude,
		Longitude:   p.Geocodes.Main.Longitude,
		CuisineType: foursquareCuisine(p.Categories),
		PriceRange:  foursquarePrice(p.Price),
		Rating:      foursquareRating(p.Rating),
		Description: p.Description,
		Tags:        foursquareTags(p.Categories),
		Photos:      foursquarePhotoURLs(p.Photos),
		Source:      "foursquare",
		ProviderIDs: map[string]string{"foursquare": p.FsqID},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.Hours != nil {
		v.Hours = p.Hours.Display
	}
	return v, nil
}

// foursquareCuisine derives the cuisine type from the primary category,
// stripping the trailing "Restaurant" ("Italian Restaurant" -> "Italian").
func foursquareCuisine(categories []foursquare.Category) string {
	if len(categories) == 0 {
		return ""
	}
	name := categories[0].Name
	name = strings.TrimSuffix(name, " Restaurant")
	return strings.TrimSpace(name)
}

// foursquarePrice maps Foursquare's 1-4 price tier onto dollar signs.
func foursquarePrice(price int) models.PriceRange {
	switch price {
	case 1:
		return models.PriceCheap
	case 2:
		return models.PriceModerate
	case 3:
		return models.PriceExpensive
	case 4:
		return models.PriceLuxury
	}
	return ""
}

// foursquareRating converts Foursquare's 0-10 scale to the 0-5 scale used
// everywhere else. 0 means unrated on both scales.
func foursquareRating(rating float64) float64 {
	if rating <= 0 {
		return 0
	}
	return rating / 2
}

// foursquareTags lowercases the category names into searchable tags.
func foursquareTags(categories []foursquare.Category) []string {
	if len(categories) == 0 {
		return nil
	}
	tags := make([]string, 0, len(categories))
	for _, c := range categories {
		tag := strings.ToLower(strings.TrimSuffix(c.Name, " Restaurant"))
		tag = strings.TrimSpace(tag)
		if tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

// foursquarePhotoURLs assembles full photo URLs from prefix/suffix pairs.
func foursquarePhotoURLs(photos []foursquare.Photo) []string {
	if len(photos) == 0 {
		return nil
	}
	urls := make([]string, 0, len(photos))
	for _, p := range photos {
		if p.Prefix == "" || p.Suffix == "" {
			continue
		}
		urls = append(urls, p.Prefix+"original"+p.Suffix)
	}
	return urls
}
