// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

/*
geoapify.go - Geoapify Places API Client

This file implements a REST API client for the Geoapify Places API. The API
returns GeoJSON FeatureCollections sourced largely from OpenStreetMap; the
adapter in geoapify_adapter.go normalizes each feature into VenueRecord.

API Reference: https://apidocs.geoapify.com/docs/places/
*/

package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/JennePenne123/vibematch/internal/config"
	"github.com/JennePenne123/vibematch/internal/logging"
	"github.com/JennePenne123/vibematch/internal/metrics"
	"github.com/JennePenne123/vibematch/internal/models"
	"github.com/JennePenne123/vibematch/internal/models/geoapify"
)

// geoapifySearchLimit caps results per search.
const geoapifySearchLimit = 50

// Ensure GeoapifyClient implements Searcher
var _ Searcher = (*GeoapifyClient)(nil)

// GeoapifyClient provides access to the Geoapify Places API.
type GeoapifyClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewGeoapifyClient creates a new Geoapify Places API client.
func NewGeoapifyClient(cfg *config.GeoapifyConfig) *GeoapifyClient {
	return &GeoapifyClient{
		baseURL: strings.TrimSuffix(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Name returns the provider name.
func (c *GeoapifyClient) Name() string { return "geoapify" }

// Search queries Geoapify for catering venues near (lat, lon) and returns
// normalized records. Features without a place id or name are dropped with a
// debug log rather than failing the whole search.
func (c *GeoapifyClient) Search(ctx context.Context, lat, lon float64, radiusM int, categoryHints []string) ([]models.VenueRecord, error) {
	start := time.Now()

	params := url.Values{}
	params.Set("categories", geoapifyCategories(categoryHints))
	params.Set("filter", fmt.Sprintf("circle:%.6f,%.6f,%d", lon, lat, radiusM))
	params.Set("bias", fmt.Sprintf("proximity:%.6f,%.6f", lon, lat))
	params.Set("limit", strconv.Itoa(geoapifySearchLimit))
	params.Set("apiKey", c.apiKey)

	resp, err := c.doRequest(ctx, "/v2/places", params)
	if err != nil {
		metrics.ProviderRequests.WithLabelValues(c.Name(), "failure").Inc()
		return nil, fmt.Errorf("geoapify places request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		metrics.ProviderRequests.WithLabelValues(c.Name(), "failure").Inc()
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if readErr != nil {
			return nil, fmt.Errorf("geoapify places returned status %d (failed to read body)", resp.StatusCode)
		}
		return nil, fmt.Errorf("geoapify places returned status %d: %s", resp.StatusCode, string(body))
	}

	var placesResp geoapify.PlacesResponse
	if err := json.NewDecoder(resp.Body).Decode(&placesResp); err != nil {
		metrics.ProviderRequests.WithLabelValues(c.Name(), "failure").Inc()
		return nil, fmt.Errorf("failed to decode geoapify places response: %w", err)
	}

	venues := make([]models.VenueRecord, 0, len(placesResp.Features))
	for i := range placesResp.Features {
		venue, err := adaptGeoapifyFeature(&placesResp.Features[i])
		if err != nil {
			logging.Debug().Err(err).Str("name", placesResp.Features[i].Properties.Name).Msg("Skipping unusable geoapify listing")
			continue
		}
		venues = append(venues, *venue)
	}

	metrics.ProviderRequests.WithLabelValues(c.Name(), "success").Inc()
	metrics.ProviderRequestDuration.WithLabelValues(c.Name()).Observe(time.Since(start).Seconds())
	metrics.ProviderVenuesReturned.WithLabelValues(c.Name()).Observe(float64(len(venues)))

	return venues, nil
}

// geoapifyCategories maps cuisine hints onto Geoapify's category taxonomy.
// Hints that are part of the taxonomy become specific restaurant categories;
// anything else falls back to the generic catering.restaurant category, since
// an unknown category value would fail the whole request with a 400.
func geoapifyCategories(hints []string) string {
	if len(hints) == 0 {
		return "catering.restaurant"
	}
	cats := make([]string, 0, len(hints))
	for _, h := range hints {
		h = strings.ToLower(strings.TrimSpace(h))
		if _, ok := geoapifyCuisineCategories[h]; ok {
			cats = append(cats, "catering.restaurant."+h)
		}
	}
	if len(cats) == 0 {
		return "catering.restaurant"
	}
	return strings.Join(cats, ",")
}

// geoapifyCuisineCategories is the subset of Geoapify's catering.restaurant
// subcategories the hint mapper recognizes.
var geoapifyCuisineCategories = map[string]struct{}{
	"italian":     {},
	"french":      {},
	"japanese":    {},
	"sushi":       {},
	"chinese":     {},
	"thai":        {},
	"indian":      {},
	"mexican":     {},
	"korean":      {},
	"vietnamese":  {},
	"greek":       {},
	"spanish":     {},
	"turkish":     {},
	"american":    {},
	"seafood":     {},
	"steak_house": {},
	"pizza":       {},
	"burger":      {},
	"vegetarian":  {},
	"vegan":       {},
}

// doRequest performs a GET request to the Geoapify API. Authentication is via
// the apiKey query parameter already present in params.
func (c *GeoapifyClient) doRequest(ctx context.Context, endpoint string, params url.Values) (*http.Response, error) {
	reqURL := c.baseURL + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}
