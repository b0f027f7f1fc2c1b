// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

package api

import (
	"net/http"
	"time"

	"github.com/JennePenne123/vibematch/internal/models"
)

// version is set at build time via -ldflags.
var version = "dev"

// Health handles GET /api/v1/health. The service is healthy when the
// database answers; providers are optional and reported informationally.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	dbConnected := h.db != nil && h.db.Ping(r.Context()) == nil

	status := "healthy"
	if !dbConnected {
		status = "degraded"
	}

	health := models.HealthStatus{
		Status:            status,
		Version:           version,
		DatabaseConnected: dbConnected,
		Uptime:            time.Since(h.startTime).Seconds(),
	}
	if h.config != nil {
		health.FoursquareEnabled = h.config.Foursquare.Enabled
		health.GeoapifyEnabled = h.config.Geoapify.Enabled
	}
	if h.cache != nil {
		health.CacheHitRate = h.cache.Stats().HitRate()
	}

	code := http.StatusOK
	if status != "healthy" {
		code = http.StatusServiceUnavailable
	}

	respondJSON(w, code, &models.APIResponse{
		Status: "success",
		Data:   health,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
