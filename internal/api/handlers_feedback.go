// VibeMatch - AI Date Spot Recommendations
// Copyright 2026 JennePenne (JennePenne123)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/JennePenne123/vibematch

package api

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/JennePenne123/vibematch/internal/models"
)

// FeedbackRequest is the POST /api/v1/feedback body. The caller is assumed
// pre-authenticated; the handler validates shape only.
type FeedbackRequest struct {
	UserID    string `json:"userId" validate:"required"`
	PartnerID string `json:"partnerId,omitempty"`
	VenueID   string `json:"venueId" validate:"required"`

	// PredictedScore is the AI score shown before the date (0-100).
	PredictedScore   float64             `json:"predictedScore" validate:"gte=0,lte=100"`
	PredictedFactors models.MatchFactors `json:"predictedFactors"`

	// ActualRating is the post-date rating, 1-5 stars.
	ActualRating int `json:"actualRating" validate:"required,min=1,max=5"`
}

// Feedback handles POST /api/v1/feedback. Each accepted rating adjusts the
// user's learned weights and returns the updated learner state.
func (h *Handler) Feedback(w http.ResponseWriter, r *http.Request) {
	var req FeedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Request body is not valid JSON", err)
		return
	}

	if apiErr := validateRequest(&req); apiErr != nil {
		respondError(w, http.StatusBadRequest, apiErr.Code, apiErr.Message, nil)
		return
	}

	record := &models.FeedbackRecord{
		ID:               uuid.New(),
		UserID:           req.UserID,
		PartnerID:        req.PartnerID,
		VenueID:          req.VenueID,
		PredictedScore:   req.PredictedScore,
		PredictedFactors: req.PredictedFactors,
		ActualRating:     req.ActualRating,
		CreatedAt:        time.Now().UTC(),
	}

	outcome, err := h.feedback.ApplyFeedback(r.Context(), record)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "FEEDBACK_FAILED", "Failed to apply feedback", err)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   outcome,
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}
