// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

package api

import (
	"net/http"
	"time"

	"github.com/JennePenne123/vibematch/internal/models"
	"github.com/JennePenne123/vibematch/internal/recommend"
)

// RecommendationRequest is the POST /api/v1/recommendations body.
type RecommendationRequest struct {
	UserID    string  `json:"userId" validate:"required"`
	PartnerID string  `json:"partnerId,omitempty"`
	Latitude  float64 `json:"lat" validate:"latitude"`
	Longitude float64 `json:"lon" validate:"longitude"`

	// Limit is optional; zero uses the configured default and values above
	// the configured maximum are capped.
	Limit int `json:"limit,omitempty" validate:"min=0"`
}

// Recommendations handles POST /api/v1/recommendations. With a partnerId the
// pipeline runs in collaborative mode; otherwise solo.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	var req RecommendationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Request body is not valid JSON", err)
		return
	}

	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	recs, err := h.recommender.Recommend(r.Context(), &recommend.Request{
		UserID:    req.UserID,
		PartnerID: req.PartnerID,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		Limit:     req.Limit,
	})
	if err != nil {
		respondError(w, http.StatusInternalServerError, "RECOMMENDATION_FAILED", "Failed to compute recommendations", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   recs,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
			Count:     len(recs),
		},
	})
}
