// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

/*
foursquare.go - Foursquare Places API Client

This file implements a REST API client for the Foursquare Places API (v3).
It searches for dining venues near a point and normalizes the results into
VenueRecord via the adapter in foursquare_adapter.go.

API Reference: https://docs.foursquare.com/developer/reference/place-search
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
	"github.com/JennePenne123/vibematch/internal/models/foursquare"
)

// foursquareDiningCategory is the Foursquare category id for "Dining and
// Drinking"; it scopes every search to food venues.
const foursquareDiningCategory = "13000"

// foursquareSearchLimit caps results per search (Foursquare maximum is 50).
const foursquareSearchLimit = 50

// foursquareFields selects the response fields the adapter consumes; asking
// for a field list keeps responses small and avoids premium-tier fields.
const foursquareFields = "fsq_id,name,categories,geocodes,location,rating,price,description,photos,hours"

// Ensure FoursquareClient implements Searcher
var _ Searcher = (*FoursquareClient)(nil)

// FoursquareClient provides access to the Foursquare Places API.
type FoursquareClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewFoursquareClient creates a new Foursquare Places API client.
func NewFoursquareClient(cfg *config.FoursquareConfig) *FoursquareClient {
	return &FoursquareClient{
		baseURL: strings.TrimSuffix(cfg.URL, "/"),
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// Name returns the provider name.
func (c *FoursquareClient) Name() string { return "foursquare" }

// Search queries Foursquare for dining venues near (lat, lon) and returns
// normalized records. Listings without a usable place id or name are dropped
// with a debug log rather than failing the whole search.
func (c *FoursquareClient) Search(ctx context.Context, lat, lon float64, radiusM int, categoryHints []string) ([]models.VenueRecord, error) {
	start := time.Now()

	params := url.Values{}
	params.Set("ll", fmt.Sprintf("%.6f,%.6f", lat, lon))
	params.Set("radius", strconv.Itoa(radiusM))
	params.Set("categories", foursquareDiningCategory)
	params.Set("limit", strconv.Itoa(foursquareSearchLimit))
	params.Set("fields", foursquareFields)
	if len(categoryHints) > 0 {
		// Foursquare's query parameter does fuzzy matching over names and
		// categories, which is how cuisine hints are expressed in v3.
		params.Set("query", strings.Join(categoryHints, " "))
	}

	resp, err := c.doRequest(ctx, "/v3/places/search", params)
	if err != nil {
		metrics.ProviderRequests.WithLabelValues(c.Name(), "failure").Inc()
		return nil, fmt.Errorf("foursquare search request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		metrics.ProviderRequests.WithLabelValues(c.Name(), "failure").Inc()
		body, readErr := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if readErr != nil {
			return nil, fmt.Errorf("foursquare search returned status %d (failed to read body)", resp.StatusCode)
		}
		return nil, fmt.Errorf("foursquare search returned status %d: %s", resp.StatusCode, string(body))
	}

	var searchResp foursquare.SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&searchResp); err != nil {
		metrics.ProviderRequests.WithLabelValues(c.Name(), "failure").Inc()
		return nil, fmt.Errorf("failed to decode foursquare search response: %w", err)
	}

	venues := make([]models.VenueRecord, 0, len(searchResp.Results))
	for i := range searchResp.Results {
		venue, err := adaptFoursquarePlace(&searchResp.Results[i])
		if err != nil {
			logging.Debug().Err(err).Str("name", searchResp.Results[i].Name).Msg("Skipping unusable foursquare listing")
			continue
		}
		venues = append(venues, *venue)
	}

	metrics.ProviderRequests.WithLabelValues(c.Name(), "success").Inc()
	metrics.ProviderRequestDuration.WithLabelValues(c.Name()).Observe(time.Since(start).Seconds())
	metrics.ProviderVenuesReturned.WithLabelValues(c.Name()).Observe(float64(len(venues)))

	return venues, nil
}

// doRequest performs an authenticated GET request to the Foursquare API.
func (c *FoursquareClient) doRequest(ctx context.Context, endpoint string, params url.Values) (*http.Response, error) {
	reqURL := c.baseURL + endpoint
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", c.apiKey)
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}
