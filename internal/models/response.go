// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

package models

import "time"

// APIResponse is the envelope for every JSON response.
type APIResponse struct {
	Status   string      `json:"status"` // "success" or "error"
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response metadata.
type Metadata struct {
	Timestamp time.Time `json:"timestamp"`
	Count     int       `json:"count,omitempty"`
}

// APIError describes a failed request.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// HealthStatus reports service health for the health endpoint.
type HealthStatus struct {
	Status            string  `json:"status"` // "healthy" or "degraded"
	Version           string  `json:"version"`
	DatabaseConnected bool    `json:"database_connected"`
	FoursquareEnabled bool    `json:"foursquare_enabled"`
	GeoapifyEnabled   bool    `json:"geoapify_enabled"`
	CacheHitRate      float64 `json:"cache_hit_rate"`
	Uptime            float64 `json:"uptime_seconds"`
}
